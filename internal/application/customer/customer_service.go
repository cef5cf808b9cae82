package customer

import (
	"context"

	"github.com/easybill/backend/internal/domain/billing"
	"github.com/easybill/backend/internal/domain/customer"
	"github.com/easybill/backend/internal/domain/shared"
	"github.com/easybill/backend/internal/infrastructure/logger"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CustomerService handles customer-related business operations
type CustomerService struct {
	customerRepo customer.CustomerRepository
	billRepo     billing.BillRepository
}

// NewCustomerService creates a new CustomerService
func NewCustomerService(customerRepo customer.CustomerRepository, billRepo billing.BillRepository) *CustomerService {
	return &CustomerService{
		customerRepo: customerRepo,
		billRepo:     billRepo,
	}
}

// Create creates a new customer
func (s *CustomerService) Create(ctx context.Context, accountID uuid.UUID, req CreateCustomerRequest) (*CustomerResponse, error) {
	c, err := customer.NewCustomer(accountID, req.Name, req.Address, req.Phone, req.GSTNumber)
	if err != nil {
		return nil, err
	}

	if err := s.customerRepo.Save(ctx, c); err != nil {
		return nil, err
	}

	logger.L(ctx).Info("Customer created", zap.String("customer_id", c.ID.String()))
	response := ToCustomerResponse(c)
	return &response, nil
}

// List returns the account's customers, newest first, filtered by name
func (s *CustomerService) List(ctx context.Context, accountID uuid.UUID, filter shared.Filter) (*shared.Paginated[CustomerResponse], error) {
	customers, err := s.customerRepo.FindAllForAccount(ctx, accountID, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.customerRepo.CountForAccount(ctx, accountID, filter)
	if err != nil {
		return nil, err
	}

	page := shared.NewPaginated(ToCustomerResponses(customers), total, filter)
	return &page, nil
}

// GetByID retrieves a customer by ID
func (s *CustomerService) GetByID(ctx context.Context, accountID, customerID uuid.UUID) (*CustomerResponse, error) {
	c, err := s.find(ctx, accountID, customerID)
	if err != nil {
		return nil, err
	}
	response := ToCustomerResponse(c)
	return &response, nil
}

// Update changes the supplied fields of a customer
func (s *CustomerService) Update(ctx context.Context, accountID, customerID uuid.UUID, req UpdateCustomerRequest) (*CustomerResponse, error) {
	c, err := s.find(ctx, accountID, customerID)
	if err != nil {
		return nil, err
	}

	name, address, phone, gst := c.Name, c.Address, c.Phone, c.GSTNumber
	if req.Name != nil {
		name = *req.Name
	}
	if req.Address != nil {
		address = *req.Address
	}
	if req.Phone != nil {
		phone = *req.Phone
	}
	if req.GSTNumber != nil {
		gst = *req.GSTNumber
	}

	if err := c.Update(name, address, phone, gst); err != nil {
		return nil, err
	}
	if err := s.customerRepo.Save(ctx, c); err != nil {
		return nil, err
	}

	response := ToCustomerResponse(c)
	return &response, nil
}

// Delete removes a customer. Its bills stay and keep the customer's name.
func (s *CustomerService) Delete(ctx context.Context, accountID, customerID uuid.UUID) error {
	if err := s.customerRepo.DeleteForAccount(ctx, accountID, customerID); err != nil {
		if shared.IsNotFound(err) {
			return customer.ErrCustomerNotFound
		}
		return err
	}

	logger.L(ctx).Info("Customer deleted", zap.String("customer_id", customerID.String()))
	return nil
}

// Statement lists the customer's bills, newest first, with the pending balance
func (s *CustomerService) Statement(ctx context.Context, accountID, customerID uuid.UUID) (*StatementResponse, error) {
	if _, err := s.find(ctx, accountID, customerID); err != nil {
		return nil, err
	}

	bills, err := s.billRepo.FindByCustomer(ctx, accountID, customerID)
	if err != nil {
		return nil, err
	}

	response := ToStatementResponse(customerID, bills)
	return &response, nil
}

func (s *CustomerService) find(ctx context.Context, accountID, customerID uuid.UUID) (*customer.Customer, error) {
	c, err := s.customerRepo.FindByIDForAccount(ctx, accountID, customerID)
	if err != nil {
		if shared.IsNotFound(err) {
			return nil, customer.ErrCustomerNotFound
		}
		return nil, err
	}
	return c, nil
}
