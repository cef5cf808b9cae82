package billing

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/easybill/backend/internal/domain/account"
	"github.com/easybill/backend/internal/domain/billing"
	"github.com/easybill/backend/internal/domain/customer"
	"github.com/easybill/backend/internal/domain/shared"
	"github.com/easybill/backend/internal/infrastructure/storage"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockBillRepository struct {
	mock.Mock
}

func (m *MockBillRepository) FindByIDForAccount(ctx context.Context, accountID, id uuid.UUID) (*billing.Bill, error) {
	args := m.Called(ctx, accountID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*billing.Bill), args.Error(1)
}

func (m *MockBillRepository) FindAllForAccount(ctx context.Context, accountID uuid.UUID, filter shared.Filter) ([]billing.Bill, error) {
	args := m.Called(ctx, accountID, filter)
	return args.Get(0).([]billing.Bill), args.Error(1)
}

func (m *MockBillRepository) CountForAccount(ctx context.Context, accountID uuid.UUID, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, accountID, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockBillRepository) FindByCustomer(ctx context.Context, accountID, customerID uuid.UUID) ([]billing.Bill, error) {
	args := m.Called(ctx, accountID, customerID)
	return args.Get(0).([]billing.Bill), args.Error(1)
}

func (m *MockBillRepository) FindAllUnpaged(ctx context.Context, accountID uuid.UUID) ([]billing.Bill, error) {
	args := m.Called(ctx, accountID)
	return args.Get(0).([]billing.Bill), args.Error(1)
}

func (m *MockBillRepository) ExistsByBillNumber(ctx context.Context, accountID uuid.UUID, billNumber string, excludeID *uuid.UUID) (bool, error) {
	args := m.Called(ctx, accountID, billNumber, excludeID)
	return args.Bool(0), args.Error(1)
}

func (m *MockBillRepository) Save(ctx context.Context, bill *billing.Bill) error {
	return m.Called(ctx, bill).Error(0)
}

func (m *MockBillRepository) DeleteForAccount(ctx context.Context, accountID, id uuid.UUID) error {
	return m.Called(ctx, accountID, id).Error(0)
}

type MockCustomerRepository struct {
	mock.Mock
	customer.CustomerRepository
}

func (m *MockCustomerRepository) FindByIDForAccount(ctx context.Context, accountID, id uuid.UUID) (*customer.Customer, error) {
	args := m.Called(ctx, accountID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*customer.Customer), args.Error(1)
}

type MockAccountRepository struct {
	mock.Mock
	account.AccountRepository
}

func (m *MockAccountRepository) FindByID(ctx context.Context, id uuid.UUID) (*account.Account, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*account.Account), args.Error(1)
}

type fakeRenderer struct {
	doc *billing.InvoiceDocument
	err error
}

func (f *fakeRenderer) Render(_ context.Context, doc *billing.InvoiceDocument) ([]byte, error) {
	f.doc = doc
	if f.err != nil {
		return nil, f.err
	}
	return []byte("%PDF-1.4 " + doc.BillNumber), nil
}

type recordingCache struct {
	invalidated []uuid.UUID
	err         error
}

func (c *recordingCache) Get(context.Context, uuid.UUID) ([]billing.MonthlySummary, int64, bool, error) {
	return nil, 0, false, nil
}

func (c *recordingCache) Set(context.Context, uuid.UUID, int64, []billing.MonthlySummary) error {
	return nil
}

func (c *recordingCache) Invalidate(_ context.Context, accountID uuid.UUID) error {
	c.invalidated = append(c.invalidated, accountID)
	return c.err
}

type fixture struct {
	bills     *MockBillRepository
	customers *MockCustomerRepository
	accounts  *MockAccountRepository
	renderer  *fakeRenderer
	archive   *storage.MemoryArchive
	cache     *recordingCache
	svc       *BillService
}

func newFixture() *fixture {
	f := &fixture{
		bills:     new(MockBillRepository),
		customers: new(MockCustomerRepository),
		accounts:  new(MockAccountRepository),
		renderer:  &fakeRenderer{},
		archive:   storage.NewMemoryArchive(),
		cache:     &recordingCache{},
	}
	f.svc = NewBillService(f.bills, f.customers, f.accounts, f.renderer,
		WithDocumentArchive(f.archive),
		WithSummaryCache(f.cache),
	)
	return f
}

func mustCustomer(t *testing.T, accountID uuid.UUID) *customer.Customer {
	t.Helper()
	c, err := customer.NewCustomer(accountID, "Acme", "1 Main St", "555-0100", "27AAAPL1234C1ZV")
	require.NoError(t, err)
	return c
}

func mustBill(t *testing.T, accountID, customerID uuid.UUID, number string) *billing.Bill {
	t.Helper()
	date := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)
	b, err := billing.NewBill(accountID, billing.BillInput{
		BillNumber: number,
		CustomerID: customerID,
		Date:       &date,
		Items: []billing.LineItem{
			{Description: "Widget", Rate: decimal.RequireFromString("100.50"), Quantity: decimal.NewFromInt(2)},
			{Description: "Service", Rate: decimal.NewFromInt(50), Quantity: decimal.NewFromInt(1)},
		},
		GSTRate: decimal.NewFromInt(18),
	})
	require.NoError(t, err)
	return b
}

func amount(s string) shared.Amount {
	return shared.NewAmount(decimal.RequireFromString(s))
}

func validCreateRequest(customerID uuid.UUID) CreateBillRequest {
	return CreateBillRequest{
		BillNumber: "INV-001",
		CustomerID: customerID.String(),
		Date:       "2024-03-10",
		Items: []LineItemRequest{
			{Description: "Widget", Rate: amount("100.50"), Quantity: amount("2")},
			{Description: "Service", Rate: amount("50"), Quantity: amount("1")},
		},
		GSTRate: amount("18"),
	}
}

func TestBillService_Create(t *testing.T) {
	ctx := context.Background()
	accountID := uuid.New()

	t.Run("persists and returns computed totals", func(t *testing.T) {
		f := newFixture()
		c := mustCustomer(t, accountID)
		f.customers.On("FindByIDForAccount", ctx, accountID, c.ID).Return(c, nil)
		f.bills.On("ExistsByBillNumber", ctx, accountID, "INV-001", (*uuid.UUID)(nil)).Return(false, nil)
		f.bills.On("Save", ctx, mock.AnythingOfType("*billing.Bill")).Return(nil)

		resp, err := f.svc.Create(ctx, accountID, validCreateRequest(c.ID))
		require.NoError(t, err)

		assert.Equal(t, "INV-001", resp.BillNumber)
		assert.Equal(t, "Pending", resp.PaymentStatus)
		assert.Equal(t, "251", resp.Totals.Subtotal.String())
		assert.Equal(t, "45.18", resp.Totals.GST.String())
		assert.Equal(t, "296.18", resp.Totals.Total.String())
		assert.Equal(t, "201", resp.Items[0].Amount.String())
		assert.Equal(t, "Acme", resp.Customer.Name)
		assert.False(t, resp.Customer.Deleted)
		assert.Equal(t, time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC), resp.Date)
		assert.Equal(t, []uuid.UUID{accountID}, f.cache.invalidated)
	})

	t.Run("rejects a customer of another account", func(t *testing.T) {
		f := newFixture()
		foreign := uuid.New()
		f.customers.On("FindByIDForAccount", ctx, accountID, foreign).Return(nil, shared.ErrNotFound)

		_, err := f.svc.Create(ctx, accountID, validCreateRequest(foreign))
		assert.ErrorIs(t, err, shared.ErrInvalidReference)
		f.bills.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("malformed customer id is an invalid reference", func(t *testing.T) {
		f := newFixture()
		req := validCreateRequest(uuid.New())
		req.CustomerID = "not-a-uuid"

		_, err := f.svc.Create(ctx, accountID, req)
		assert.ErrorIs(t, err, shared.ErrInvalidReference)
	})

	t.Run("duplicate number is rejected before saving", func(t *testing.T) {
		f := newFixture()
		c := mustCustomer(t, accountID)
		f.customers.On("FindByIDForAccount", ctx, accountID, c.ID).Return(c, nil)
		f.bills.On("ExistsByBillNumber", ctx, accountID, "INV-001", (*uuid.UUID)(nil)).Return(true, nil)

		_, err := f.svc.Create(ctx, accountID, validCreateRequest(c.ID))
		assert.ErrorIs(t, err, shared.ErrDuplicateKey)
		f.bills.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("unique index violation during save maps to duplicate", func(t *testing.T) {
		f := newFixture()
		c := mustCustomer(t, accountID)
		f.customers.On("FindByIDForAccount", ctx, accountID, c.ID).Return(c, nil)
		f.bills.On("ExistsByBillNumber", ctx, accountID, "INV-001", (*uuid.UUID)(nil)).Return(false, nil)
		f.bills.On("Save", ctx, mock.Anything).Return(shared.ErrDuplicateKey)

		_, err := f.svc.Create(ctx, accountID, validCreateRequest(c.ID))
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, shared.CodeDuplicateKey, domainErr.Code)
		assert.Equal(t, "billNumber", domainErr.Fields[0].Field)
		assert.Empty(t, f.cache.invalidated)
	})

	t.Run("validation errors list every failing field", func(t *testing.T) {
		f := newFixture()
		req := validCreateRequest(uuid.New())
		req.BillNumber = ""
		req.Items = []LineItemRequest{{Description: "", Rate: amount("-1"), Quantity: amount("0")}}

		_, err := f.svc.Create(ctx, accountID, req)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, shared.CodeValidationFailed, domainErr.Code)
		assert.Len(t, domainErr.Fields, 4)
	})

	t.Run("bad date is a validation error", func(t *testing.T) {
		f := newFixture()
		req := validCreateRequest(uuid.New())
		req.Date = "10/03/2024"

		_, err := f.svc.Create(ctx, accountID, req)
		assert.ErrorIs(t, err, shared.ErrValidation)
	})
}

func TestBillService_List(t *testing.T) {
	ctx := context.Background()
	accountID := uuid.New()
	f := newFixture()
	c := mustCustomer(t, accountID)

	orphan := mustBill(t, accountID, c.ID, "INV-000")
	orphan.CustomerID = nil
	orphan.DeletedCustomerName = "Gone Ltd"

	bills := []billing.Bill{*mustBill(t, accountID, c.ID, "INV-002"), *mustBill(t, accountID, c.ID, "INV-001"), *orphan}
	filter := shared.ParseFilter("inv", "", "")
	f.bills.On("FindAllForAccount", ctx, accountID, filter).Return(bills, nil)
	f.bills.On("CountForAccount", ctx, accountID, filter).Return(int64(3), nil)
	f.customers.On("FindByIDForAccount", ctx, accountID, c.ID).Return(c, nil).Once()

	page, err := f.svc.List(ctx, accountID, filter)
	require.NoError(t, err)
	require.Len(t, page.Items, 3)
	assert.Equal(t, 1, page.Pages)
	assert.Equal(t, "296.18", page.Items[0].Totals.Total.String())
	assert.Equal(t, "Acme", page.Items[1].Customer.Name)

	sentinel := page.Items[2].Customer
	assert.True(t, sentinel.Deleted)
	assert.Nil(t, sentinel.ID)
	assert.Equal(t, "Gone Ltd", sentinel.Name)
	f.customers.AssertNumberOfCalls(t, "FindByIDForAccount", 1)
}

func TestBillService_GetByID(t *testing.T) {
	ctx := context.Background()
	accountID := uuid.New()
	f := newFixture()
	id := uuid.New()
	f.bills.On("FindByIDForAccount", ctx, accountID, id).Return(nil, shared.ErrNotFound)

	_, err := f.svc.GetByID(ctx, accountID, id)
	assert.ErrorIs(t, err, billing.ErrBillNotFound)
	assert.True(t, shared.IsNotFound(err))
}

func TestBillService_Update(t *testing.T) {
	ctx := context.Background()
	accountID := uuid.New()

	t.Run("applies only supplied fields", func(t *testing.T) {
		f := newFixture()
		c := mustCustomer(t, accountID)
		bill := mustBill(t, accountID, c.ID, "INV-001")
		f.bills.On("FindByIDForAccount", ctx, accountID, bill.ID).Return(bill, nil)
		f.bills.On("Save", ctx, bill).Return(nil)
		f.customers.On("FindByIDForAccount", ctx, accountID, c.ID).Return(c, nil)

		notes := "Net 30"
		rate := amount("5")
		resp, err := f.svc.Update(ctx, accountID, bill.ID, UpdateBillRequest{Notes: &notes, GSTRate: &rate})
		require.NoError(t, err)
		assert.Equal(t, "Net 30", resp.Notes)
		assert.Equal(t, "INV-001", resp.BillNumber)
		assert.Len(t, resp.Items, 2)
		assert.Equal(t, "12.55", resp.Totals.GST.String())
		assert.Len(t, f.cache.invalidated, 1)
		f.bills.AssertNotCalled(t, "ExistsByBillNumber", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("renumbering checks uniqueness excluding itself", func(t *testing.T) {
		f := newFixture()
		c := mustCustomer(t, accountID)
		bill := mustBill(t, accountID, c.ID, "INV-001")
		f.bills.On("FindByIDForAccount", ctx, accountID, bill.ID).Return(bill, nil)
		f.bills.On("ExistsByBillNumber", ctx, accountID, "INV-002", &bill.ID).Return(true, nil)

		number := "INV-002"
		_, err := f.svc.Update(ctx, accountID, bill.ID, UpdateBillRequest{BillNumber: &number})
		assert.ErrorIs(t, err, shared.ErrDuplicateKey)
		assert.Equal(t, "INV-001", bill.BillNumber)
	})

	t.Run("items replace the whole list", func(t *testing.T) {
		f := newFixture()
		c := mustCustomer(t, accountID)
		bill := mustBill(t, accountID, c.ID, "INV-001")
		f.bills.On("FindByIDForAccount", ctx, accountID, bill.ID).Return(bill, nil)
		f.bills.On("Save", ctx, bill).Return(nil)
		f.customers.On("FindByIDForAccount", ctx, accountID, c.ID).Return(c, nil)

		resp, err := f.svc.Update(ctx, accountID, bill.ID, UpdateBillRequest{
			Items: []LineItemRequest{{Description: "Consulting", Rate: amount("1000"), Quantity: amount("3")}},
		})
		require.NoError(t, err)
		require.Len(t, resp.Items, 1)
		assert.Equal(t, "3540", resp.Totals.Total.String())
	})

	t.Run("empty items are rejected", func(t *testing.T) {
		f := newFixture()
		_, err := f.svc.Update(ctx, accountID, uuid.New(), UpdateBillRequest{Items: []LineItemRequest{}})
		assert.ErrorIs(t, err, shared.ErrValidation)
	})

	t.Run("switching to a foreign customer is an invalid reference", func(t *testing.T) {
		f := newFixture()
		c := mustCustomer(t, accountID)
		bill := mustBill(t, accountID, c.ID, "INV-001")
		foreign := uuid.New()
		f.bills.On("FindByIDForAccount", ctx, accountID, bill.ID).Return(bill, nil)
		f.customers.On("FindByIDForAccount", ctx, accountID, foreign).Return(nil, shared.ErrNotFound)

		raw := foreign.String()
		_, err := f.svc.Update(ctx, accountID, bill.ID, UpdateBillRequest{CustomerID: &raw})
		assert.ErrorIs(t, err, shared.ErrInvalidReference)
	})
}

func TestBillService_Delete(t *testing.T) {
	ctx := context.Background()
	accountID := uuid.New()
	f := newFixture()
	c := mustCustomer(t, accountID)
	bill := mustBill(t, accountID, c.ID, "INV-001")
	require.NoError(t, f.archive.Archive(ctx, billing.ArchiveKey(bill), []byte("pdf")))

	f.bills.On("FindByIDForAccount", ctx, accountID, bill.ID).Return(bill, nil)
	f.bills.On("DeleteForAccount", ctx, accountID, bill.ID).Return(nil)

	require.NoError(t, f.svc.Delete(ctx, accountID, bill.ID))
	assert.Equal(t, 0, f.archive.Len())
	assert.Len(t, f.cache.invalidated, 1)

	missing := uuid.New()
	f.bills.On("FindByIDForAccount", ctx, accountID, missing).Return(nil, shared.ErrNotFound)
	assert.ErrorIs(t, f.svc.Delete(ctx, accountID, missing), billing.ErrBillNotFound)
}

func TestBillService_SetPaymentStatus(t *testing.T) {
	ctx := context.Background()
	accountID := uuid.New()

	t.Run("marks paid with a method", func(t *testing.T) {
		f := newFixture()
		c := mustCustomer(t, accountID)
		bill := mustBill(t, accountID, c.ID, "INV-001")
		f.bills.On("FindByIDForAccount", ctx, accountID, bill.ID).Return(bill, nil)
		f.bills.On("Save", ctx, bill).Return(nil)
		f.customers.On("FindByIDForAccount", ctx, accountID, c.ID).Return(c, nil)

		resp, err := f.svc.SetPaymentStatus(ctx, accountID, bill.ID, PaymentStatusRequest{Status: "Paid", Method: "UPI"})
		require.NoError(t, err)
		assert.Equal(t, "Paid", resp.PaymentStatus)
		assert.Equal(t, "UPI", resp.PaymentMethod)
	})

	t.Run("unknown status fails validation without loading", func(t *testing.T) {
		f := newFixture()
		_, err := f.svc.SetPaymentStatus(ctx, accountID, uuid.New(), PaymentStatusRequest{Status: "Refunded"})
		assert.ErrorIs(t, err, shared.ErrValidation)
		f.bills.AssertNotCalled(t, "FindByIDForAccount", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("cache failure does not fail the mutation", func(t *testing.T) {
		f := newFixture()
		f.cache.err = errors.New("redis down")
		c := mustCustomer(t, accountID)
		bill := mustBill(t, accountID, c.ID, "INV-001")
		f.bills.On("FindByIDForAccount", ctx, accountID, bill.ID).Return(bill, nil)
		f.bills.On("Save", ctx, bill).Return(nil)
		f.customers.On("FindByIDForAccount", ctx, accountID, c.ID).Return(c, nil)

		_, err := f.svc.SetPaymentStatus(ctx, accountID, bill.ID, PaymentStatusRequest{Status: "Paid"})
		assert.NoError(t, err)
	})
}

func TestBillService_RenderDocument(t *testing.T) {
	ctx := context.Background()
	seller, err := account.NewAccount("Acme Traders", "owner@acme.test", "secret1", "29ABCDE1234F1Z5", "12 MG Road", 560001)
	require.NoError(t, err)
	accountID := seller.ID

	t.Run("renders and archives the invoice", func(t *testing.T) {
		f := newFixture()
		c := mustCustomer(t, accountID)
		bill := mustBill(t, accountID, c.ID, "INV-007")
		f.bills.On("FindByIDForAccount", ctx, accountID, bill.ID).Return(bill, nil)
		f.accounts.On("FindByID", ctx, accountID).Return(seller, nil)
		f.customers.On("FindByIDForAccount", ctx, accountID, c.ID).Return(c, nil)

		doc, err := f.svc.RenderDocument(ctx, accountID, bill.ID)
		require.NoError(t, err)
		assert.Equal(t, "INV-007.pdf", doc.Filename)
		assert.Equal(t, "application/pdf", doc.ContentType)

		assert.Equal(t, "Acme Traders", f.renderer.doc.Seller.Name)
		assert.Equal(t, "12 MG Road - 560001", f.renderer.doc.Seller.Address)
		assert.Equal(t, "Acme", f.renderer.doc.BillTo.Name)
		assert.Equal(t, "296.18", f.renderer.doc.Totals.Total.String())

		archived, ok := f.archive.Get(billing.ArchiveKey(bill))
		require.True(t, ok)
		assert.Equal(t, doc.Content, archived)
		assert.Empty(t, f.cache.invalidated)
	})

	t.Run("bill of a deleted customer uses the kept name", func(t *testing.T) {
		f := newFixture()
		bill := mustBill(t, accountID, uuid.New(), "INV-008")
		bill.CustomerID = nil
		bill.DeletedCustomerName = "Gone Ltd"
		f.bills.On("FindByIDForAccount", ctx, accountID, bill.ID).Return(bill, nil)
		f.accounts.On("FindByID", ctx, accountID).Return(seller, nil)

		_, err := f.svc.RenderDocument(ctx, accountID, bill.ID)
		require.NoError(t, err)
		assert.Equal(t, "Gone Ltd", f.renderer.doc.BillTo.Name)
	})

	t.Run("renderer failure is returned", func(t *testing.T) {
		f := newFixture()
		f.renderer.err = errors.New("chrome crashed")
		c := mustCustomer(t, accountID)
		bill := mustBill(t, accountID, c.ID, "INV-009")
		f.bills.On("FindByIDForAccount", ctx, accountID, bill.ID).Return(bill, nil)
		f.accounts.On("FindByID", ctx, accountID).Return(seller, nil)
		f.customers.On("FindByIDForAccount", ctx, accountID, c.ID).Return(c, nil)

		_, err := f.svc.RenderDocument(ctx, accountID, bill.ID)
		assert.ErrorContains(t, err, "chrome crashed")
		assert.Equal(t, 0, f.archive.Len())
	})
}
