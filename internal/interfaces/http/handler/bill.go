package handler

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/easybill/backend/internal/application/billing"
	"github.com/easybill/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
)

const billNotFound = "Bill not found"

// BillHandler handles bill-related HTTP requests
type BillHandler struct {
	BaseHandler
	billService *billing.BillService
}

// NewBillHandler creates a new BillHandler
func NewBillHandler(billService *billing.BillService) *BillHandler {
	return &BillHandler{
		billService: billService,
	}
}

// List godoc
// @ID           listBills
// @Summary      List bills
// @Description  Page through the account's bills, newest date first. q matches the bill number or customer name, case-insensitively.
// @Tags         bills
// @Produce      json
// @Param        q query string false "Bill number or customer name search"
// @Param        page query int false "Page number" default(1)
// @Param        limit query int false "Page size" default(10) maximum(100)
// @Success      200 {object} BillListResponse
// @Failure      401 {object} ErrorResponse
// @Failure      500 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /bills [get]
func (h *BillHandler) List(c *gin.Context) {
	result, err := h.billService.List(c.Request.Context(), middleware.GetAccountID(c), listFilter(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// Create godoc
// @ID           createBill
// @Summary      Create a bill
// @Description  Amounts are derived from the items and GST rate; totals are never accepted from the client
// @Tags         bills
// @Accept       json
// @Produce      json
// @Param        request body billing.CreateBillRequest true "Bill details"
// @Success      201 {object} billing.BillResponse
// @Failure      400 {object} ErrorResponse
// @Failure      401 {object} ErrorResponse
// @Failure      500 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /bills [post]
func (h *BillHandler) Create(c *gin.Context) {
	var req billing.CreateBillRequest
	if !h.bindJSON(c, &req) {
		return
	}

	result, err := h.billService.Create(c.Request.Context(), middleware.GetAccountID(c), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, result)
}

// GetByID godoc
// @ID           getBill
// @Summary      Get a bill
// @Tags         bills
// @Produce      json
// @Param        id path string true "Bill ID" format(uuid)
// @Success      200 {object} billing.BillResponse
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /bills/{id} [get]
func (h *BillHandler) GetByID(c *gin.Context) {
	id, ok := h.parseID(c, "id", billNotFound)
	if !ok {
		return
	}

	result, err := h.billService.GetByID(c.Request.Context(), middleware.GetAccountID(c), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// Update godoc
// @ID           updateBill
// @Summary      Update a bill
// @Description  Only the supplied fields change; items, when sent, replace the whole list
// @Tags         bills
// @Accept       json
// @Produce      json
// @Param        id path string true "Bill ID" format(uuid)
// @Param        request body billing.UpdateBillRequest true "Fields to change"
// @Success      200 {object} billing.BillResponse
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /bills/{id} [put]
func (h *BillHandler) Update(c *gin.Context) {
	id, ok := h.parseID(c, "id", billNotFound)
	if !ok {
		return
	}

	var req billing.UpdateBillRequest
	if !h.bindJSON(c, &req) {
		return
	}

	result, err := h.billService.Update(c.Request.Context(), middleware.GetAccountID(c), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// Delete godoc
// @ID           deleteBill
// @Summary      Delete a bill
// @Tags         bills
// @Produce      json
// @Param        id path string true "Bill ID" format(uuid)
// @Success      200 {object} dto.OKResponse
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /bills/{id} [delete]
func (h *BillHandler) Delete(c *gin.Context) {
	id, ok := h.parseID(c, "id", billNotFound)
	if !ok {
		return
	}

	if err := h.billService.Delete(c.Request.Context(), middleware.GetAccountID(c), id); err != nil {
		h.HandleError(c, err)
		return
	}

	h.OK(c)
}

// SetPaymentStatus godoc
// @ID           setBillPaymentStatus
// @Summary      Mark a bill paid or pending
// @Tags         bills
// @Accept       json
// @Produce      json
// @Param        id path string true "Bill ID" format(uuid)
// @Param        request body billing.PaymentStatusRequest true "New status"
// @Success      200 {object} billing.BillResponse
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /bills/{id}/payment [patch]
func (h *BillHandler) SetPaymentStatus(c *gin.Context) {
	id, ok := h.parseID(c, "id", billNotFound)
	if !ok {
		return
	}

	var req billing.PaymentStatusRequest
	if !h.bindJSON(c, &req) {
		return
	}

	result, err := h.billService.SetPaymentStatus(c.Request.Context(), middleware.GetAccountID(c), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// Document godoc
// @ID           getBillDocument
// @Summary      Printable invoice
// @Description  Render the bill as a PDF invoice
// @Tags         bills
// @Produce      application/pdf
// @Param        id path string true "Bill ID" format(uuid)
// @Success      200 {file} binary
// @Failure      404 {object} ErrorResponse
// @Failure      500 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /bills/{id}/pdf [get]
func (h *BillHandler) Document(c *gin.Context) {
	id, ok := h.parseID(c, "id", billNotFound)
	if !ok {
		return
	}

	doc, err := h.billService.RenderDocument(c.Request.Context(), middleware.GetAccountID(c), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("inline; filename=%s", strconv.Quote(doc.Filename)))
	c.Data(http.StatusOK, doc.ContentType, doc.Content)
}
