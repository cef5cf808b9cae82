// Package docs holds the OpenAPI description served at /swagger.
// Regenerate with: swag init -g cmd/server/main.go --v3.1
package docs

import "github.com/swaggo/swag/v2"

const docTemplate = `{
    "openapi": "3.1.0",
    "info": {
        "title": "{{.Title}}",
        "description": "{{escape .Description}}",
        "version": "{{.Version}}"
    },
    "servers": [{"url": "/api"}],
    "paths": {
        "/auth/register": {
            "post": {
                "operationId": "registerAccount",
                "tags": ["auth"],
                "summary": "Register an account",
                "requestBody": {"required": true, "content": {"application/json": {"schema": {"$ref": "#/components/schemas/identity.RegisterRequest"}}}},
                "responses": {
                    "201": {"description": "Created", "content": {"application/json": {"schema": {"$ref": "#/components/schemas/identity.AuthResponse"}}}},
                    "400": {"$ref": "#/components/responses/Error"}
                }
            }
        },
        "/auth/login": {
            "post": {
                "operationId": "loginAccount",
                "tags": ["auth"],
                "summary": "Log in",
                "requestBody": {"required": true, "content": {"application/json": {"schema": {"$ref": "#/components/schemas/identity.LoginRequest"}}}},
                "responses": {
                    "200": {"description": "OK", "content": {"application/json": {"schema": {"$ref": "#/components/schemas/identity.AuthResponse"}}}},
                    "400": {"$ref": "#/components/responses/Error"},
                    "401": {"$ref": "#/components/responses/Error"}
                }
            }
        },
        "/customers": {
            "get": {
                "operationId": "listCustomers",
                "tags": ["customers"],
                "summary": "List customers",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"$ref": "#/components/parameters/q"},
                    {"$ref": "#/components/parameters/page"},
                    {"$ref": "#/components/parameters/limit"}
                ],
                "responses": {
                    "200": {"description": "OK", "content": {"application/json": {"schema": {"$ref": "#/components/schemas/handler.CustomerListResponse"}}}},
                    "401": {"$ref": "#/components/responses/Error"}
                }
            },
            "post": {
                "operationId": "createCustomer",
                "tags": ["customers"],
                "summary": "Create a customer",
                "security": [{"BearerAuth": []}],
                "requestBody": {"required": true, "content": {"application/json": {"schema": {"$ref": "#/components/schemas/customer.CreateCustomerRequest"}}}},
                "responses": {
                    "201": {"description": "Created", "content": {"application/json": {"schema": {"$ref": "#/components/schemas/customer.CustomerResponse"}}}},
                    "400": {"$ref": "#/components/responses/Error"}
                }
            }
        },
        "/customers/{id}": {
            "parameters": [{"$ref": "#/components/parameters/id"}],
            "get": {
                "operationId": "getCustomer",
                "tags": ["customers"],
                "summary": "Get a customer",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "200": {"description": "OK", "content": {"application/json": {"schema": {"$ref": "#/components/schemas/customer.CustomerResponse"}}}},
                    "404": {"$ref": "#/components/responses/Error"}
                }
            },
            "put": {
                "operationId": "updateCustomer",
                "tags": ["customers"],
                "summary": "Update a customer",
                "security": [{"BearerAuth": []}],
                "requestBody": {"required": true, "content": {"application/json": {"schema": {"$ref": "#/components/schemas/customer.UpdateCustomerRequest"}}}},
                "responses": {
                    "200": {"description": "OK", "content": {"application/json": {"schema": {"$ref": "#/components/schemas/customer.CustomerResponse"}}}},
                    "400": {"$ref": "#/components/responses/Error"},
                    "404": {"$ref": "#/components/responses/Error"}
                }
            },
            "delete": {
                "operationId": "deleteCustomer",
                "tags": ["customers"],
                "summary": "Delete a customer",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "200": {"description": "OK", "content": {"application/json": {"schema": {"$ref": "#/components/schemas/dto.OKResponse"}}}},
                    "404": {"$ref": "#/components/responses/Error"}
                }
            }
        },
        "/customers/{id}/statement": {
            "parameters": [{"$ref": "#/components/parameters/id"}],
            "get": {
                "operationId": "getCustomerStatement",
                "tags": ["customers"],
                "summary": "Customer statement",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "200": {"description": "OK", "content": {"application/json": {"schema": {"$ref": "#/components/schemas/customer.StatementResponse"}}}},
                    "404": {"$ref": "#/components/responses/Error"}
                }
            }
        },
        "/bills": {
            "get": {
                "operationId": "listBills",
                "tags": ["bills"],
                "summary": "List bills",
                "description": "Page through the account's bills, newest date first. q matches the bill number or customer name, case-insensitively.",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"$ref": "#/components/parameters/q"},
                    {"$ref": "#/components/parameters/page"},
                    {"$ref": "#/components/parameters/limit"}
                ],
                "responses": {
                    "200": {"description": "OK", "content": {"application/json": {"schema": {"$ref": "#/components/schemas/handler.BillListResponse"}}}},
                    "401": {"$ref": "#/components/responses/Error"}
                }
            },
            "post": {
                "operationId": "createBill",
                "tags": ["bills"],
                "summary": "Create a bill",
                "security": [{"BearerAuth": []}],
                "requestBody": {"required": true, "content": {"application/json": {"schema": {"$ref": "#/components/schemas/billing.CreateBillRequest"}}}},
                "responses": {
                    "201": {"description": "Created", "content": {"application/json": {"schema": {"$ref": "#/components/schemas/billing.BillResponse"}}}},
                    "400": {"$ref": "#/components/responses/Error"}
                }
            }
        },
        "/bills/{id}": {
            "parameters": [{"$ref": "#/components/parameters/id"}],
            "get": {
                "operationId": "getBill",
                "tags": ["bills"],
                "summary": "Get a bill",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "200": {"description": "OK", "content": {"application/json": {"schema": {"$ref": "#/components/schemas/billing.BillResponse"}}}},
                    "404": {"$ref": "#/components/responses/Error"}
                }
            },
            "put": {
                "operationId": "updateBill",
                "tags": ["bills"],
                "summary": "Update a bill",
                "security": [{"BearerAuth": []}],
                "requestBody": {"required": true, "content": {"application/json": {"schema": {"$ref": "#/components/schemas/billing.UpdateBillRequest"}}}},
                "responses": {
                    "200": {"description": "OK", "content": {"application/json": {"schema": {"$ref": "#/components/schemas/billing.BillResponse"}}}},
                    "400": {"$ref": "#/components/responses/Error"},
                    "404": {"$ref": "#/components/responses/Error"}
                }
            },
            "delete": {
                "operationId": "deleteBill",
                "tags": ["bills"],
                "summary": "Delete a bill",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "200": {"description": "OK", "content": {"application/json": {"schema": {"$ref": "#/components/schemas/dto.OKResponse"}}}},
                    "404": {"$ref": "#/components/responses/Error"}
                }
            }
        },
        "/bills/{id}/payment": {
            "parameters": [{"$ref": "#/components/parameters/id"}],
            "patch": {
                "operationId": "setBillPaymentStatus",
                "tags": ["bills"],
                "summary": "Mark a bill paid or pending",
                "security": [{"BearerAuth": []}],
                "requestBody": {"required": true, "content": {"application/json": {"schema": {"$ref": "#/components/schemas/billing.PaymentStatusRequest"}}}},
                "responses": {
                    "200": {"description": "OK", "content": {"application/json": {"schema": {"$ref": "#/components/schemas/billing.BillResponse"}}}},
                    "400": {"$ref": "#/components/responses/Error"},
                    "404": {"$ref": "#/components/responses/Error"}
                }
            }
        },
        "/bills/{id}/pdf": {
            "parameters": [{"$ref": "#/components/parameters/id"}],
            "get": {
                "operationId": "getBillDocument",
                "tags": ["bills"],
                "summary": "Printable invoice",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "200": {"description": "OK", "content": {"application/pdf": {"schema": {"type": "string", "format": "binary"}}}},
                    "404": {"$ref": "#/components/responses/Error"}
                }
            }
        },
        "/statements/monthly": {
            "get": {
                "operationId": "getMonthlySummaries",
                "tags": ["statements"],
                "summary": "Monthly revenue",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "200": {"description": "OK", "content": {"application/json": {"schema": {"$ref": "#/components/schemas/statement.MonthlySummariesResponse"}}}},
                    "401": {"$ref": "#/components/responses/Error"}
                }
            }
        },
        "/health": {
            "get": {
                "operationId": "getHealth",
                "tags": ["system"],
                "summary": "Health check",
                "responses": {
                    "200": {"description": "OK", "content": {"application/json": {"schema": {"$ref": "#/components/schemas/dto.HealthResponse"}}}}
                }
            }
        }
    },
    "components": {
        "securitySchemes": {
            "BearerAuth": {"type": "http", "scheme": "bearer", "bearerFormat": "JWT"}
        },
        "parameters": {
            "id": {"name": "id", "in": "path", "required": true, "schema": {"type": "string", "format": "uuid"}},
            "q": {"name": "q", "in": "query", "schema": {"type": "string"}},
            "page": {"name": "page", "in": "query", "schema": {"type": "integer", "default": 1}},
            "limit": {"name": "limit", "in": "query", "schema": {"type": "integer", "default": 10, "maximum": 100}}
        },
        "responses": {
            "Error": {"description": "Error", "content": {"application/json": {"schema": {"$ref": "#/components/schemas/handler.ErrorResponse"}}}}
        },
        "schemas": {
            "handler.ErrorResponse": {
                "type": "object",
                "properties": {
                    "message": {"type": "string"},
                    "code": {"type": "string", "enum": ["VALIDATION_FAILED", "UNAUTHORIZED", "INVALID_REFERENCE", "DUPLICATE_KEY", "NOT_FOUND", "INTERNAL_ERROR", "RATE_LIMITED", "PAYLOAD_TOO_LARGE"]},
                    "errors": {"type": "array", "items": {"type": "object", "properties": {"field": {"type": "string"}, "message": {"type": "string"}}}},
                    "request_id": {"type": "string"}
                }
            },
            "dto.OKResponse": {"type": "object", "properties": {"ok": {"type": "boolean"}}},
            "dto.HealthResponse": {
                "type": "object",
                "properties": {"ok": {"type": "boolean"}, "time": {"type": "string", "format": "date-time"}, "database": {"type": "string"}}
            },
            "identity.RegisterRequest": {
                "type": "object",
                "required": ["companyName", "email", "password", "address", "pincode"],
                "properties": {
                    "companyName": {"type": "string"},
                    "gstin": {"type": "string"},
                    "email": {"type": "string", "format": "email"},
                    "password": {"type": "string", "minLength": 6},
                    "address": {"type": "string"},
                    "pincode": {"type": "integer"}
                }
            },
            "identity.LoginRequest": {
                "type": "object",
                "required": ["email", "password"],
                "properties": {"email": {"type": "string"}, "password": {"type": "string"}}
            },
            "identity.AccountResponse": {
                "type": "object",
                "properties": {
                    "id": {"type": "string", "format": "uuid"},
                    "companyName": {"type": "string"},
                    "gstin": {"type": "string"},
                    "email": {"type": "string"},
                    "address": {"type": "string"},
                    "pincode": {"type": "integer"},
                    "createdAt": {"type": "string", "format": "date-time"}
                }
            },
            "identity.AuthResponse": {
                "type": "object",
                "properties": {
                    "token": {"type": "string"},
                    "expiresAt": {"type": "string", "format": "date-time"},
                    "user": {"$ref": "#/components/schemas/identity.AccountResponse"}
                }
            },
            "customer.CreateCustomerRequest": {
                "type": "object",
                "required": ["name"],
                "properties": {"name": {"type": "string"}, "address": {"type": "string"}, "phone": {"type": "string"}, "gstNumber": {"type": "string"}}
            },
            "customer.UpdateCustomerRequest": {
                "type": "object",
                "properties": {"name": {"type": "string"}, "address": {"type": "string"}, "phone": {"type": "string"}, "gstNumber": {"type": "string"}}
            },
            "customer.CustomerResponse": {
                "type": "object",
                "properties": {
                    "id": {"type": "string", "format": "uuid"},
                    "name": {"type": "string"},
                    "address": {"type": "string"},
                    "phone": {"type": "string"},
                    "gstNumber": {"type": "string"},
                    "createdAt": {"type": "string", "format": "date-time"},
                    "updatedAt": {"type": "string", "format": "date-time"}
                }
            },
            "customer.StatementResponse": {
                "type": "object",
                "properties": {
                    "customerId": {"type": "string", "format": "uuid"},
                    "bills": {
                        "type": "array",
                        "items": {
                            "type": "object",
                            "properties": {
                                "id": {"type": "string", "format": "uuid"},
                                "billNumber": {"type": "string"},
                                "date": {"type": "string", "format": "date-time"},
                                "subtotal": {"type": "number"},
                                "gst": {"type": "number"},
                                "total": {"type": "number"},
                                "paymentStatus": {"type": "string", "enum": ["Paid", "Pending"]}
                            }
                        }
                    },
                    "outstanding": {"type": "number"}
                }
            },
            "handler.CustomerListResponse": {
                "type": "object",
                "properties": {
                    "items": {"type": "array", "items": {"$ref": "#/components/schemas/customer.CustomerResponse"}},
                    "total": {"type": "integer"},
                    "page": {"type": "integer"},
                    "pages": {"type": "integer"}
                }
            },
            "billing.LineItemRequest": {
                "type": "object",
                "properties": {"description": {"type": "string"}, "rate": {"type": "number"}, "quantity": {"type": "number"}}
            },
            "billing.CreateBillRequest": {
                "type": "object",
                "required": ["billNumber", "customerId", "items"],
                "properties": {
                    "billNumber": {"type": "string"},
                    "customerId": {"type": "string", "format": "uuid"},
                    "date": {"type": "string"},
                    "items": {"type": "array", "items": {"$ref": "#/components/schemas/billing.LineItemRequest"}},
                    "gstRate": {"type": "number"},
                    "paymentStatus": {"type": "string", "enum": ["Paid", "Pending"]},
                    "paymentMethod": {"type": "string"},
                    "notes": {"type": "string"}
                }
            },
            "billing.UpdateBillRequest": {
                "type": "object",
                "properties": {
                    "billNumber": {"type": "string"},
                    "customerId": {"type": "string", "format": "uuid"},
                    "date": {"type": "string"},
                    "items": {"type": "array", "items": {"$ref": "#/components/schemas/billing.LineItemRequest"}},
                    "gstRate": {"type": "number"},
                    "paymentStatus": {"type": "string", "enum": ["Paid", "Pending"]},
                    "paymentMethod": {"type": "string"},
                    "notes": {"type": "string"}
                }
            },
            "billing.PaymentStatusRequest": {
                "type": "object",
                "required": ["status"],
                "properties": {"status": {"type": "string", "enum": ["Paid", "Pending"]}, "method": {"type": "string"}}
            },
            "billing.BillResponse": {
                "type": "object",
                "properties": {
                    "id": {"type": "string", "format": "uuid"},
                    "billNumber": {"type": "string"},
                    "customerId": {"type": ["string", "null"], "format": "uuid"},
                    "customer": {
                        "type": "object",
                        "properties": {
                            "id": {"type": ["string", "null"], "format": "uuid"},
                            "name": {"type": "string"},
                            "address": {"type": "string"},
                            "phone": {"type": "string"},
                            "gstNumber": {"type": "string"},
                            "deleted": {"type": "boolean"}
                        }
                    },
                    "date": {"type": "string", "format": "date-time"},
                    "items": {
                        "type": "array",
                        "items": {
                            "type": "object",
                            "properties": {"description": {"type": "string"}, "rate": {"type": "number"}, "quantity": {"type": "number"}, "amount": {"type": "number"}}
                        }
                    },
                    "gstRate": {"type": "number"},
                    "paymentStatus": {"type": "string", "enum": ["Paid", "Pending"]},
                    "paymentMethod": {"type": "string"},
                    "notes": {"type": "string"},
                    "totals": {"type": "object", "properties": {"subtotal": {"type": "number"}, "gst": {"type": "number"}, "total": {"type": "number"}}},
                    "createdAt": {"type": "string", "format": "date-time"},
                    "updatedAt": {"type": "string", "format": "date-time"}
                }
            },
            "handler.BillListResponse": {
                "type": "object",
                "properties": {
                    "items": {"type": "array", "items": {"$ref": "#/components/schemas/billing.BillResponse"}},
                    "total": {"type": "integer"},
                    "page": {"type": "integer"},
                    "pages": {"type": "integer"}
                }
            },
            "statement.MonthlySummariesResponse": {
                "type": "object",
                "properties": {
                    "data": {
                        "type": "array",
                        "items": {
                            "type": "object",
                            "properties": {"month": {"type": "string", "example": "2024-02"}, "revenue": {"type": "number"}, "count": {"type": "integer"}, "tax": {"type": "number"}}
                        }
                    }
                }
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Title:            "EasyBill API",
	Description:      "Multi-tenant invoicing backend: accounts, customers, GST bills and revenue statements.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
