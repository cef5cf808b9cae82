package identity

import (
	"time"

	"github.com/easybill/backend/internal/domain/account"
	"github.com/google/uuid"
)

// RegisterRequest is the body of POST /api/auth/register
type RegisterRequest struct {
	CompanyName string `json:"companyName" binding:"required,max=200"`
	GSTIN       string `json:"gstin" binding:"max=20"`
	Email       string `json:"email" binding:"required,email,max=200"`
	Password    string `json:"password" binding:"required,min=6,max=72"`
	Address     string `json:"address" binding:"required,max=500"`
	Pincode     *int   `json:"pincode" binding:"required,min=0"`
}

// LoginRequest is the body of POST /api/auth/login
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// AccountResponse is the public view of an account. The password hash never leaves the service.
type AccountResponse struct {
	ID          uuid.UUID `json:"id"`
	CompanyName string    `json:"companyName"`
	GSTIN       string    `json:"gstin"`
	Email       string    `json:"email"`
	Address     string    `json:"address"`
	Pincode     int       `json:"pincode"`
	CreatedAt   time.Time `json:"createdAt"`
}

// AuthResponse carries a bearer token and the account it was issued for
type AuthResponse struct {
	Token     string          `json:"token"`
	ExpiresAt time.Time       `json:"expiresAt"`
	User      AccountResponse `json:"user"`
}

// ToAccountResponse converts an account to its response form
func ToAccountResponse(a *account.Account) AccountResponse {
	return AccountResponse{
		ID:          a.ID,
		CompanyName: a.CompanyName,
		GSTIN:       a.GSTIN,
		Email:       a.Email,
		Address:     a.Address,
		Pincode:     a.Pincode,
		CreatedAt:   a.CreatedAt,
	}
}
