package handler

import (
	"github.com/easybill/backend/internal/application/customer"
	"github.com/easybill/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
)

const customerNotFound = "Customer not found"

// CustomerHandler handles customer-related HTTP requests
type CustomerHandler struct {
	BaseHandler
	customerService *customer.CustomerService
}

// NewCustomerHandler creates a new CustomerHandler
func NewCustomerHandler(customerService *customer.CustomerService) *CustomerHandler {
	return &CustomerHandler{
		customerService: customerService,
	}
}

// List godoc
// @ID           listCustomers
// @Summary      List customers
// @Description  Page through the account's customers, newest first. q matches name, phone or GST number.
// @Tags         customers
// @Produce      json
// @Param        q query string false "Search text"
// @Param        page query int false "Page number" default(1)
// @Param        limit query int false "Page size" default(10) maximum(100)
// @Success      200 {object} CustomerListResponse
// @Failure      401 {object} ErrorResponse
// @Failure      500 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /customers [get]
func (h *CustomerHandler) List(c *gin.Context) {
	result, err := h.customerService.List(c.Request.Context(), middleware.GetAccountID(c), listFilter(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// Create godoc
// @ID           createCustomer
// @Summary      Create a customer
// @Tags         customers
// @Accept       json
// @Produce      json
// @Param        request body customer.CreateCustomerRequest true "Customer details"
// @Success      201 {object} customer.CustomerResponse
// @Failure      400 {object} ErrorResponse
// @Failure      401 {object} ErrorResponse
// @Failure      500 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /customers [post]
func (h *CustomerHandler) Create(c *gin.Context) {
	var req customer.CreateCustomerRequest
	if !h.bindJSON(c, &req) {
		return
	}

	result, err := h.customerService.Create(c.Request.Context(), middleware.GetAccountID(c), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, result)
}

// GetByID godoc
// @ID           getCustomer
// @Summary      Get a customer
// @Tags         customers
// @Produce      json
// @Param        id path string true "Customer ID" format(uuid)
// @Success      200 {object} customer.CustomerResponse
// @Failure      401 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /customers/{id} [get]
func (h *CustomerHandler) GetByID(c *gin.Context) {
	id, ok := h.parseID(c, "id", customerNotFound)
	if !ok {
		return
	}

	result, err := h.customerService.GetByID(c.Request.Context(), middleware.GetAccountID(c), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// Update godoc
// @ID           updateCustomer
// @Summary      Update a customer
// @Description  Only the supplied fields change
// @Tags         customers
// @Accept       json
// @Produce      json
// @Param        id path string true "Customer ID" format(uuid)
// @Param        request body customer.UpdateCustomerRequest true "Fields to change"
// @Success      200 {object} customer.CustomerResponse
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /customers/{id} [put]
func (h *CustomerHandler) Update(c *gin.Context) {
	id, ok := h.parseID(c, "id", customerNotFound)
	if !ok {
		return
	}

	var req customer.UpdateCustomerRequest
	if !h.bindJSON(c, &req) {
		return
	}

	result, err := h.customerService.Update(c.Request.Context(), middleware.GetAccountID(c), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// Delete godoc
// @ID           deleteCustomer
// @Summary      Delete a customer
// @Description  Bills that referenced the customer keep its name and lose the reference
// @Tags         customers
// @Produce      json
// @Param        id path string true "Customer ID" format(uuid)
// @Success      200 {object} dto.OKResponse
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /customers/{id} [delete]
func (h *CustomerHandler) Delete(c *gin.Context) {
	id, ok := h.parseID(c, "id", customerNotFound)
	if !ok {
		return
	}

	if err := h.customerService.Delete(c.Request.Context(), middleware.GetAccountID(c), id); err != nil {
		h.HandleError(c, err)
		return
	}

	h.OK(c)
}

// Statement godoc
// @ID           getCustomerStatement
// @Summary      Customer statement
// @Description  All bills of the customer with the outstanding (pending) total
// @Tags         customers
// @Produce      json
// @Param        id path string true "Customer ID" format(uuid)
// @Success      200 {object} customer.StatementResponse
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /customers/{id}/statement [get]
func (h *CustomerHandler) Statement(c *gin.Context) {
	id, ok := h.parseID(c, "id", customerNotFound)
	if !ok {
		return
	}

	result, err := h.customerService.Statement(c.Request.Context(), middleware.GetAccountID(c), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}
