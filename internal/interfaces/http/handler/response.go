package handler

import (
	"github.com/easybill/backend/internal/application/billing"
	"github.com/easybill/backend/internal/application/customer"
)

// ErrorResponse represents an error API response for OpenAPI documentation
// @Description Standard error response
type ErrorResponse struct {
	Message   string            `json:"message" example:"Validation failed"`
	Code      string            `json:"code" example:"VALIDATION_FAILED"`
	Errors    []FieldErrorEntry `json:"errors,omitempty"`
	RequestID string            `json:"request_id,omitempty" example:"3f2c9a7e1b8d4c6f"`
}

// FieldErrorEntry describes one invalid field
// @Description Field level validation detail
type FieldErrorEntry struct {
	Field   string `json:"field" example:"items[0].quantity"`
	Message string `json:"message" example:"Quantity must be at least 1"`
}

// CustomerListResponse is a page of customers
// @Description Paginated customers
type CustomerListResponse struct {
	Items []customer.CustomerResponse `json:"items"`
	Total int64                       `json:"total" example:"42"`
	Page  int                         `json:"page" example:"1"`
	Pages int                         `json:"pages" example:"5"`
}

// BillListResponse is a page of bills
// @Description Paginated bills
type BillListResponse struct {
	Items []billing.BillResponse `json:"items"`
	Total int64                  `json:"total" example:"42"`
	Page  int                    `json:"page" example:"1"`
	Pages int                    `json:"pages" example:"5"`
}
