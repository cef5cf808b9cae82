package customer

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/easybill/backend/internal/domain/billing"
	"github.com/easybill/backend/internal/domain/customer"
	"github.com/easybill/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockCustomerRepository struct {
	mock.Mock
}

func (m *MockCustomerRepository) FindByIDForAccount(ctx context.Context, accountID, id uuid.UUID) (*customer.Customer, error) {
	args := m.Called(ctx, accountID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*customer.Customer), args.Error(1)
}

func (m *MockCustomerRepository) FindAllForAccount(ctx context.Context, accountID uuid.UUID, filter shared.Filter) ([]customer.Customer, error) {
	args := m.Called(ctx, accountID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]customer.Customer), args.Error(1)
}

func (m *MockCustomerRepository) CountForAccount(ctx context.Context, accountID uuid.UUID, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, accountID, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockCustomerRepository) Save(ctx context.Context, c *customer.Customer) error {
	return m.Called(ctx, c).Error(0)
}

func (m *MockCustomerRepository) DeleteForAccount(ctx context.Context, accountID, id uuid.UUID) error {
	return m.Called(ctx, accountID, id).Error(0)
}

// MockBillRepository only answers FindByCustomer; the service uses nothing else
type MockBillRepository struct {
	mock.Mock
	billing.BillRepository
}

func (m *MockBillRepository) FindByCustomer(ctx context.Context, accountID, customerID uuid.UUID) ([]billing.Bill, error) {
	args := m.Called(ctx, accountID, customerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]billing.Bill), args.Error(1)
}

func mustCustomer(t *testing.T, accountID uuid.UUID, name string) *customer.Customer {
	t.Helper()
	c, err := customer.NewCustomer(accountID, name, "1 Main St", "555-0100", "")
	require.NoError(t, err)
	return c
}

func mustBill(t *testing.T, accountID, customerID uuid.UUID, number string, status billing.PaymentStatus, rate string) billing.Bill {
	t.Helper()
	date := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)
	b, err := billing.NewBill(accountID, billing.BillInput{
		BillNumber: number,
		CustomerID: customerID,
		Date:       &date,
		Items: []billing.LineItem{
			{Description: "Widget", Rate: decimal.RequireFromString(rate), Quantity: decimal.NewFromInt(2)},
		},
		GSTRate:       decimal.NewFromInt(18),
		PaymentStatus: status,
	})
	require.NoError(t, err)
	return *b
}

func TestCustomerService_Create(t *testing.T) {
	ctx := context.Background()
	accountID := uuid.New()

	t.Run("saves a valid customer", func(t *testing.T) {
		repo := new(MockCustomerRepository)
		svc := NewCustomerService(repo, new(MockBillRepository))
		repo.On("Save", ctx, mock.AnythingOfType("*customer.Customer")).Return(nil)

		resp, err := svc.Create(ctx, accountID, CreateCustomerRequest{Name: "  Acme  ", Phone: "555"})
		require.NoError(t, err)
		assert.Equal(t, "Acme", resp.Name)
		assert.Equal(t, "555", resp.Phone)
		assert.NotEqual(t, uuid.Nil, resp.ID)

		saved := repo.Calls[0].Arguments.Get(1).(*customer.Customer)
		assert.Equal(t, accountID, saved.AccountID)
		repo.AssertExpectations(t)
	})

	t.Run("rejects a blank name without saving", func(t *testing.T) {
		repo := new(MockCustomerRepository)
		svc := NewCustomerService(repo, new(MockBillRepository))

		_, err := svc.Create(ctx, accountID, CreateCustomerRequest{Name: "  "})
		assert.ErrorIs(t, err, shared.ErrValidation)
		repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})
}

func TestCustomerService_List(t *testing.T) {
	ctx := context.Background()
	accountID := uuid.New()
	repo := new(MockCustomerRepository)
	svc := NewCustomerService(repo, new(MockBillRepository))

	filter := shared.ParseFilter("ac", "2", "1")
	repo.On("FindAllForAccount", ctx, accountID, filter).Return([]customer.Customer{*mustCustomer(t, accountID, "Acme")}, nil)
	repo.On("CountForAccount", ctx, accountID, filter).Return(int64(3), nil)

	page, err := svc.List(ctx, accountID, filter)
	require.NoError(t, err)
	assert.Len(t, page.Items, 1)
	assert.Equal(t, int64(3), page.Total)
	assert.Equal(t, 2, page.Page)
	assert.Equal(t, 3, page.Pages)
}

func TestCustomerService_GetByID(t *testing.T) {
	ctx := context.Background()
	accountID := uuid.New()

	t.Run("maps a missing row to customer not found", func(t *testing.T) {
		repo := new(MockCustomerRepository)
		svc := NewCustomerService(repo, new(MockBillRepository))
		id := uuid.New()
		repo.On("FindByIDForAccount", ctx, accountID, id).Return(nil, shared.ErrNotFound)

		_, err := svc.GetByID(ctx, accountID, id)
		assert.ErrorIs(t, err, customer.ErrCustomerNotFound)
		assert.True(t, shared.IsNotFound(err))
	})

	t.Run("passes other errors through", func(t *testing.T) {
		repo := new(MockCustomerRepository)
		svc := NewCustomerService(repo, new(MockBillRepository))
		id := uuid.New()
		boom := errors.New("connection reset")
		repo.On("FindByIDForAccount", ctx, accountID, id).Return(nil, boom)

		_, err := svc.GetByID(ctx, accountID, id)
		assert.ErrorIs(t, err, boom)
	})
}

func TestCustomerService_Update(t *testing.T) {
	ctx := context.Background()
	accountID := uuid.New()
	existing := mustCustomer(t, accountID, "Acme")

	repo := new(MockCustomerRepository)
	svc := NewCustomerService(repo, new(MockBillRepository))
	repo.On("FindByIDForAccount", ctx, accountID, existing.ID).Return(existing, nil)
	repo.On("Save", ctx, existing).Return(nil)

	gst := "29ABCDE1234F1Z5"
	resp, err := svc.Update(ctx, accountID, existing.ID, UpdateCustomerRequest{GSTNumber: &gst})
	require.NoError(t, err)
	assert.Equal(t, "Acme", resp.Name)
	assert.Equal(t, "1 Main St", resp.Address)
	assert.Equal(t, gst, resp.GSTNumber)

	blank := ""
	_, err = svc.Update(ctx, accountID, existing.ID, UpdateCustomerRequest{Name: &blank})
	assert.ErrorIs(t, err, shared.ErrValidation)
	repo.AssertNumberOfCalls(t, "Save", 1)
}

func TestCustomerService_Delete(t *testing.T) {
	ctx := context.Background()
	accountID := uuid.New()
	repo := new(MockCustomerRepository)
	svc := NewCustomerService(repo, new(MockBillRepository))

	found, missing := uuid.New(), uuid.New()
	repo.On("DeleteForAccount", ctx, accountID, found).Return(nil)
	repo.On("DeleteForAccount", ctx, accountID, missing).Return(shared.ErrNotFound)

	assert.NoError(t, svc.Delete(ctx, accountID, found))
	assert.ErrorIs(t, svc.Delete(ctx, accountID, missing), customer.ErrCustomerNotFound)
}

func TestCustomerService_Statement(t *testing.T) {
	ctx := context.Background()
	accountID := uuid.New()
	c := mustCustomer(t, accountID, "Acme")

	t.Run("sums pending totals as outstanding", func(t *testing.T) {
		repo := new(MockCustomerRepository)
		bills := new(MockBillRepository)
		svc := NewCustomerService(repo, bills)

		repo.On("FindByIDForAccount", ctx, accountID, c.ID).Return(c, nil)
		bills.On("FindByCustomer", ctx, accountID, c.ID).Return([]billing.Bill{
			mustBill(t, accountID, c.ID, "B-2", billing.PaymentStatusPending, "50"),
			mustBill(t, accountID, c.ID, "B-1", billing.PaymentStatusPaid, "100"),
		}, nil)

		resp, err := svc.Statement(ctx, accountID, c.ID)
		require.NoError(t, err)
		assert.Equal(t, c.ID, resp.CustomerID)
		require.Len(t, resp.Bills, 2)
		assert.Equal(t, "B-2", resp.Bills[0].BillNumber)
		assert.Equal(t, "100", resp.Bills[0].Subtotal.String())
		assert.Equal(t, "18", resp.Bills[0].GST.String())
		assert.Equal(t, "118", resp.Bills[0].Total.String())
		assert.Equal(t, "Pending", resp.Bills[0].PaymentStatus)
		assert.Equal(t, "118", resp.Outstanding.String())
	})

	t.Run("customer without bills has zero outstanding", func(t *testing.T) {
		repo := new(MockCustomerRepository)
		bills := new(MockBillRepository)
		svc := NewCustomerService(repo, bills)

		repo.On("FindByIDForAccount", ctx, accountID, c.ID).Return(c, nil)
		bills.On("FindByCustomer", ctx, accountID, c.ID).Return([]billing.Bill{}, nil)

		resp, err := svc.Statement(ctx, accountID, c.ID)
		require.NoError(t, err)
		assert.Empty(t, resp.Bills)
		assert.NotNil(t, resp.Bills)
		assert.True(t, resp.Outstanding.IsZero())
	})

	t.Run("unknown customer is not found", func(t *testing.T) {
		repo := new(MockCustomerRepository)
		bills := new(MockBillRepository)
		svc := NewCustomerService(repo, bills)
		id := uuid.New()
		repo.On("FindByIDForAccount", ctx, accountID, id).Return(nil, shared.ErrNotFound)

		_, err := svc.Statement(ctx, accountID, id)
		assert.ErrorIs(t, err, customer.ErrCustomerNotFound)
		bills.AssertNotCalled(t, "FindByCustomer", mock.Anything, mock.Anything, mock.Anything)
	})
}
