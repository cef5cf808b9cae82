package billing

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/easybill/backend/internal/domain/account"
	"github.com/easybill/backend/internal/domain/billing"
	"github.com/easybill/backend/internal/domain/customer"
	"github.com/easybill/backend/internal/domain/shared"
	"github.com/easybill/backend/internal/infrastructure/logger"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// BillService handles bill-related business operations
type BillService struct {
	billRepo     billing.BillRepository
	customerRepo customer.CustomerRepository
	accountRepo  account.AccountRepository
	renderer     billing.DocumentRenderer
	archive      billing.DocumentArchive
	cache        billing.SummaryCache
}

// BillServiceOption configures optional collaborators of BillService
type BillServiceOption func(*BillService)

// WithDocumentArchive stores every rendered invoice in archive
func WithDocumentArchive(archive billing.DocumentArchive) BillServiceOption {
	return func(s *BillService) {
		s.archive = archive
	}
}

// WithSummaryCache invalidates the account's monthly summaries on every bill mutation
func WithSummaryCache(cache billing.SummaryCache) BillServiceOption {
	return func(s *BillService) {
		s.cache = cache
	}
}

// NewBillService creates a new BillService
func NewBillService(
	billRepo billing.BillRepository,
	customerRepo customer.CustomerRepository,
	accountRepo account.AccountRepository,
	renderer billing.DocumentRenderer,
	opts ...BillServiceOption,
) *BillService {
	s := &BillService{
		billRepo:     billRepo,
		customerRepo: customerRepo,
		accountRepo:  accountRepo,
		renderer:     renderer,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Create validates and persists a new bill for one of the account's customers
func (s *BillService) Create(ctx context.Context, accountID uuid.UUID, req CreateBillRequest) (*BillResponse, error) {
	customerID, err := parseCustomerID(req.CustomerID)
	if err != nil {
		return nil, err
	}
	date, err := parseDate(req.Date)
	if err != nil {
		return nil, err
	}

	bill, err := billing.NewBill(accountID, billing.BillInput{
		BillNumber:    req.BillNumber,
		CustomerID:    customerID,
		Date:          date,
		Items:         toLineItems(req.Items),
		GSTRate:       req.GSTRate.Decimal,
		PaymentStatus: billing.PaymentStatus(req.PaymentStatus),
		PaymentMethod: req.PaymentMethod,
		Notes:         req.Notes,
	})
	if err != nil {
		return nil, err
	}

	c, err := s.ownedCustomer(ctx, accountID, customerID)
	if err != nil {
		return nil, err
	}
	if err := s.ensureUniqueNumber(ctx, accountID, bill.BillNumber, nil); err != nil {
		return nil, err
	}
	if err := s.save(ctx, bill); err != nil {
		return nil, err
	}

	logger.L(ctx).Info("Bill created",
		zap.String("bill_id", bill.ID.String()),
		zap.String("bill_number", bill.BillNumber),
	)
	s.invalidateSummaries(ctx, accountID)

	response := ToBillResponse(bill, c)
	return &response, nil
}

// List returns a page of the account's bills, newest date first
func (s *BillService) List(ctx context.Context, accountID uuid.UUID, filter shared.Filter) (*shared.Paginated[BillResponse], error) {
	bills, err := s.billRepo.FindAllForAccount(ctx, accountID, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.billRepo.CountForAccount(ctx, accountID, filter)
	if err != nil {
		return nil, err
	}

	resolved := make(map[uuid.UUID]*customer.Customer)
	items := make([]BillResponse, len(bills))
	for i := range bills {
		c, err := s.resolveCustomer(ctx, &bills[i], resolved)
		if err != nil {
			return nil, err
		}
		items[i] = ToBillResponse(&bills[i], c)
	}

	page := shared.NewPaginated(items, total, filter)
	return &page, nil
}

// GetByID returns one bill with its customer resolved
func (s *BillService) GetByID(ctx context.Context, accountID, billID uuid.UUID) (*BillResponse, error) {
	bill, err := s.find(ctx, accountID, billID)
	if err != nil {
		return nil, err
	}
	return s.respond(ctx, bill)
}

// Update applies a partial change to a bill
func (s *BillService) Update(ctx context.Context, accountID, billID uuid.UUID, req UpdateBillRequest) (*BillResponse, error) {
	patch, err := toPatch(req)
	if err != nil {
		return nil, err
	}
	if err := billing.ValidatePatch(patch); err != nil {
		return nil, err
	}

	bill, err := s.find(ctx, accountID, billID)
	if err != nil {
		return nil, err
	}

	if patch.CustomerID != nil {
		if _, err := s.ownedCustomer(ctx, accountID, *patch.CustomerID); err != nil {
			return nil, err
		}
	}
	if patch.BillNumber != nil {
		number := strings.TrimSpace(*patch.BillNumber)
		if number != bill.BillNumber {
			if err := s.ensureUniqueNumber(ctx, accountID, number, &bill.ID); err != nil {
				return nil, err
			}
		}
	}

	if err := bill.Apply(patch); err != nil {
		return nil, err
	}
	if err := s.save(ctx, bill); err != nil {
		return nil, err
	}

	logger.L(ctx).Info("Bill updated", zap.String("bill_id", bill.ID.String()))
	s.invalidateSummaries(ctx, accountID)

	return s.respond(ctx, bill)
}

// Delete removes a bill and its items, then drops its archived document
func (s *BillService) Delete(ctx context.Context, accountID, billID uuid.UUID) error {
	bill, err := s.find(ctx, accountID, billID)
	if err != nil {
		return err
	}

	if err := s.billRepo.DeleteForAccount(ctx, accountID, billID); err != nil {
		if shared.IsNotFound(err) {
			return billing.ErrBillNotFound
		}
		return err
	}

	logger.L(ctx).Info("Bill deleted", zap.String("bill_id", billID.String()))
	s.invalidateSummaries(ctx, accountID)

	if s.archive != nil {
		if err := s.archive.Remove(ctx, billing.ArchiveKey(bill)); err != nil {
			logger.L(ctx).Warn("Failed to remove archived invoice",
				zap.String("bill_id", billID.String()),
				zap.Error(err),
			)
		}
	}
	return nil
}

// SetPaymentStatus marks a bill Paid or Pending. A non-empty method replaces
// the payment method.
func (s *BillService) SetPaymentStatus(ctx context.Context, accountID, billID uuid.UUID, req PaymentStatusRequest) (*BillResponse, error) {
	status := billing.PaymentStatus(strings.TrimSpace(req.Status))
	if !status.IsValid() {
		return nil, shared.NewFieldError(shared.CodeValidationFailed, "Invalid status", "status", "Must be one of: Paid Pending")
	}

	bill, err := s.find(ctx, accountID, billID)
	if err != nil {
		return nil, err
	}
	if err := bill.SetPaymentStatus(status, strings.TrimSpace(req.Method)); err != nil {
		return nil, err
	}
	if err := s.save(ctx, bill); err != nil {
		return nil, err
	}

	logger.L(ctx).Info("Bill payment status changed",
		zap.String("bill_id", bill.ID.String()),
		zap.String("status", string(status)),
	)
	s.invalidateSummaries(ctx, accountID)

	return s.respond(ctx, bill)
}

// RenderDocument produces the printable invoice of a bill. Bill state is
// not changed; archiving the result is best effort.
func (s *BillService) RenderDocument(ctx context.Context, accountID, billID uuid.UUID) (*Document, error) {
	bill, err := s.find(ctx, accountID, billID)
	if err != nil {
		return nil, err
	}

	seller, err := s.accountRepo.FindByID(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("load issuing account: %w", err)
	}
	c, err := s.resolveCustomer(ctx, bill, nil)
	if err != nil {
		return nil, err
	}

	doc := billing.NewInvoiceDocument(bill, sellerParty(seller), billToParty(bill, c))
	content, err := s.renderer.Render(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("render invoice %s: %w", bill.BillNumber, err)
	}

	if s.archive != nil {
		if err := s.archive.Archive(ctx, billing.ArchiveKey(bill), content); err != nil {
			logger.L(ctx).Warn("Failed to archive rendered invoice",
				zap.String("bill_id", bill.ID.String()),
				zap.Error(err),
			)
		}
	}

	return &Document{
		Filename:    doc.Filename(),
		ContentType: "application/pdf",
		Content:     content,
	}, nil
}

func (s *BillService) find(ctx context.Context, accountID, billID uuid.UUID) (*billing.Bill, error) {
	bill, err := s.billRepo.FindByIDForAccount(ctx, accountID, billID)
	if err != nil {
		if shared.IsNotFound(err) {
			return nil, billing.ErrBillNotFound
		}
		return nil, err
	}
	return bill, nil
}

func (s *BillService) save(ctx context.Context, bill *billing.Bill) error {
	if err := s.billRepo.Save(ctx, bill); err != nil {
		if shared.IsDuplicateKey(err) {
			return billing.ErrDuplicateBillNumber
		}
		return err
	}
	return nil
}

// ownedCustomer rejects customers that are absent or belong to another account
func (s *BillService) ownedCustomer(ctx context.Context, accountID, customerID uuid.UUID) (*customer.Customer, error) {
	c, err := s.customerRepo.FindByIDForAccount(ctx, accountID, customerID)
	if err != nil {
		if shared.IsNotFound(err) {
			return nil, billing.ErrCustomerReference
		}
		return nil, err
	}
	return c, nil
}

func (s *BillService) ensureUniqueNumber(ctx context.Context, accountID uuid.UUID, number string, excludeID *uuid.UUID) error {
	exists, err := s.billRepo.ExistsByBillNumber(ctx, accountID, number, excludeID)
	if err != nil {
		return err
	}
	if exists {
		return billing.ErrDuplicateBillNumber
	}
	return nil
}

// resolveCustomer returns nil for a bill whose customer was deleted.
// seen, when non-nil, memoizes lookups across a page of bills.
func (s *BillService) resolveCustomer(ctx context.Context, bill *billing.Bill, seen map[uuid.UUID]*customer.Customer) (*customer.Customer, error) {
	if !bill.HasCustomer() {
		return nil, nil
	}
	id := *bill.CustomerID
	if c, ok := seen[id]; ok {
		return c, nil
	}

	c, err := s.customerRepo.FindByIDForAccount(ctx, bill.AccountID, id)
	if err != nil {
		if !shared.IsNotFound(err) {
			return nil, err
		}
		c = nil
	}
	if seen != nil {
		seen[id] = c
	}
	return c, nil
}

func (s *BillService) respond(ctx context.Context, bill *billing.Bill) (*BillResponse, error) {
	c, err := s.resolveCustomer(ctx, bill, nil)
	if err != nil {
		return nil, err
	}
	response := ToBillResponse(bill, c)
	return &response, nil
}

func (s *BillService) invalidateSummaries(ctx context.Context, accountID uuid.UUID) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx, accountID); err != nil {
		logger.L(ctx).Warn("Failed to invalidate monthly summaries", zap.Error(err))
	}
}

func toPatch(req UpdateBillRequest) (billing.BillPatch, error) {
	patch := billing.BillPatch{
		BillNumber:    req.BillNumber,
		PaymentMethod: req.PaymentMethod,
		Notes:         req.Notes,
	}

	if req.CustomerID != nil {
		id, err := parseCustomerID(*req.CustomerID)
		if err != nil {
			return patch, err
		}
		patch.CustomerID = &id
	}
	if req.Date != nil {
		date, err := parseDate(*req.Date)
		if err != nil {
			return patch, err
		}
		patch.Date = date
	}
	if req.Items != nil {
		patch.Items = toLineItems(req.Items)
	}
	if req.GSTRate != nil {
		rate := req.GSTRate.Decimal
		patch.GSTRate = &rate
	}
	if req.PaymentStatus != nil {
		status := billing.PaymentStatus(strings.TrimSpace(*req.PaymentStatus))
		patch.PaymentStatus = &status
	}
	return patch, nil
}

func sellerParty(a *account.Account) billing.Party {
	address := a.Address
	if a.Pincode > 0 {
		address = strings.TrimSpace(address + " - " + strconv.Itoa(a.Pincode))
	}
	return billing.Party{
		Name:    a.CompanyName,
		Address: address,
		TaxID:   a.GSTIN,
	}
}

func billToParty(b *billing.Bill, c *customer.Customer) billing.Party {
	if c == nil {
		return billing.Party{Name: b.DeletedCustomerName}
	}
	return billing.Party{
		Name:    c.Name,
		Address: c.Address,
		Phone:   c.Phone,
		TaxID:   c.GSTNumber,
	}
}
