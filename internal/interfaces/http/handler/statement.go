package handler

import (
	"github.com/easybill/backend/internal/application/statement"
	"github.com/easybill/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
)

// StatementHandler serves account level revenue reports
type StatementHandler struct {
	BaseHandler
	statementService *statement.StatementService
}

// NewStatementHandler creates a new StatementHandler
func NewStatementHandler(statementService *statement.StatementService) *StatementHandler {
	return &StatementHandler{
		statementService: statementService,
	}
}

// MonthlySummaries godoc
// @ID           getMonthlySummaries
// @Summary      Monthly revenue
// @Description  Revenue, bill count and tax per calendar month, oldest first
// @Tags         statements
// @Produce      json
// @Success      200 {object} statement.MonthlySummariesResponse
// @Failure      401 {object} ErrorResponse
// @Failure      500 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /statements/monthly [get]
func (h *StatementHandler) MonthlySummaries(c *gin.Context) {
	result, err := h.statementService.MonthlySummaries(c.Request.Context(), middleware.GetAccountID(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}
