package account

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/easybill/backend/internal/domain/shared"
	"golang.org/x/crypto/bcrypt"
)

// Password cost for bcrypt
const bcryptCost = 10

// MinPasswordLength is the shortest accepted password, in characters
const MinPasswordLength = 6

// MaxPasswordBytes is the longest password bcrypt accepts
const MaxPasswordBytes = 72

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// Account is the tenant: a company that owns its customers and bills.
// It is the aggregate root for identity operations.
type Account struct {
	shared.BaseEntity
	CompanyName  string
	GSTIN        string
	Email        string
	PasswordHash string
	Address      string
	Pincode      int
}

// NewAccount validates the registration data and hashes the password
func NewAccount(companyName, email, password, gstin, address string, pincode int) (*Account, error) {
	companyName = strings.TrimSpace(companyName)
	email = NormalizeEmail(email)
	address = strings.TrimSpace(address)

	var fields []shared.FieldError
	if companyName == "" {
		fields = append(fields, shared.FieldError{Field: "companyName", Message: "Company name is required"})
	}
	if !emailRegex.MatchString(email) {
		fields = append(fields, shared.FieldError{Field: "email", Message: "Valid email is required"})
	}
	switch {
	case utf8.RuneCountInString(password) < MinPasswordLength:
		fields = append(fields, shared.FieldError{Field: "password", Message: "Password must be at least 6 characters"})
	case len(password) > MaxPasswordBytes:
		fields = append(fields, shared.FieldError{Field: "password", Message: "Password must be at most 72 bytes"})
	}
	if address == "" {
		fields = append(fields, shared.FieldError{Field: "address", Message: "Address is required"})
	}
	if pincode < 0 {
		fields = append(fields, shared.FieldError{Field: "pincode", Message: "Pincode must be a number"})
	}
	if len(fields) > 0 {
		return nil, shared.NewValidationError(fields...)
	}

	hash, err := hashPassword(password)
	if err != nil {
		return nil, err
	}

	return &Account{
		BaseEntity:   shared.NewBaseEntity(),
		CompanyName:  companyName,
		GSTIN:        strings.TrimSpace(gstin),
		Email:        email,
		PasswordHash: hash,
		Address:      address,
		Pincode:      pincode,
	}, nil
}

// VerifyPassword checks a plaintext password against the stored hash
func (a *Account) VerifyPassword(password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(a.PasswordHash), []byte(password))
	return err == nil
}

// NormalizeEmail lower-cases and trims an email so lookups are case-insensitive
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
