package persistence

import (
	"context"

	"github.com/easybill/backend/internal/domain/billing"
	"github.com/easybill/backend/internal/domain/shared"
	"github.com/easybill/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormBillRepository implements BillRepository using GORM.
// Bills and their items are written in one transaction.
type GormBillRepository struct {
	db *gorm.DB
}

// NewGormBillRepository creates a new GormBillRepository
func NewGormBillRepository(db *gorm.DB) *GormBillRepository {
	return &GormBillRepository{db: db}
}

// FindByIDForAccount finds a bill with its items within an account
func (r *GormBillRepository) FindByIDForAccount(ctx context.Context, accountID, id uuid.UUID) (*billing.Bill, error) {
	var model models.BillModel
	if err := r.withItems(r.db.WithContext(ctx)).
		Where("account_id = ? AND id = ?", accountID, id).
		First(&model).Error; err != nil {
		return nil, notFound(err)
	}
	return model.ToDomain(), nil
}

// FindAllForAccount lists bills of an account by date descending
func (r *GormBillRepository) FindAllForAccount(ctx context.Context, accountID uuid.UUID, filter shared.Filter) ([]billing.Bill, error) {
	var billModels []models.BillModel
	err := r.withItems(r.scoped(ctx, accountID, filter)).
		Select("bills.*").
		Order("bills.date DESC").
		Order("bills.created_at DESC").
		Offset(filter.Offset()).
		Limit(filter.Limit).
		Find(&billModels).Error
	if err != nil {
		return nil, err
	}
	return toDomainBills(billModels), nil
}

// CountForAccount counts bills of an account matching the filter
func (r *GormBillRepository) CountForAccount(ctx context.Context, accountID uuid.UUID, filter shared.Filter) (int64, error) {
	var count int64
	if err := r.scoped(ctx, accountID, filter).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// FindByCustomer returns all bills of one customer, date descending
func (r *GormBillRepository) FindByCustomer(ctx context.Context, accountID, customerID uuid.UUID) ([]billing.Bill, error) {
	var billModels []models.BillModel
	err := r.withItems(r.db.WithContext(ctx)).
		Where("account_id = ? AND customer_id = ?", accountID, customerID).
		Order("date DESC").
		Order("created_at DESC").
		Find(&billModels).Error
	if err != nil {
		return nil, err
	}
	return toDomainBills(billModels), nil
}

// FindAllUnpaged returns every bill of the account with items loaded
func (r *GormBillRepository) FindAllUnpaged(ctx context.Context, accountID uuid.UUID) ([]billing.Bill, error) {
	var billModels []models.BillModel
	err := r.withItems(r.db.WithContext(ctx)).
		Where("account_id = ?", accountID).
		Order("date").
		Find(&billModels).Error
	if err != nil {
		return nil, err
	}
	return toDomainBills(billModels), nil
}

// ExistsByBillNumber checks whether the bill number is taken within the account
func (r *GormBillRepository) ExistsByBillNumber(ctx context.Context, accountID uuid.UUID, billNumber string, excludeID *uuid.UUID) (bool, error) {
	query := r.db.WithContext(ctx).Model(&models.BillModel{}).
		Where("account_id = ? AND bill_number = ?", accountID, billNumber)
	if excludeID != nil {
		query = query.Where("id <> ?", *excludeID)
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Save creates or updates a bill and replaces its items
func (r *GormBillRepository) Save(ctx context.Context, bill *billing.Bill) error {
	model := models.BillModelFromDomain(bill)

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Save(model).Error; err != nil {
			return err
		}
		if err := tx.Where("bill_id = ?", model.ID).Delete(&models.BillItemModel{}).Error; err != nil {
			return err
		}
		if len(model.Items) == 0 {
			return nil
		}
		return tx.Create(&model.Items).Error
	})
	if err != nil && isForeignKeyViolation(err) {
		return billing.ErrCustomerReference
	}
	return translateWriteError(err, billing.ErrDuplicateBillNumber)
}

// DeleteForAccount deletes a bill and its items
func (r *GormBillRepository) DeleteForAccount(ctx context.Context, accountID, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var model models.BillModel
		if err := tx.Select("id").Where("account_id = ? AND id = ?", accountID, id).First(&model).Error; err != nil {
			return notFound(err)
		}
		if err := tx.Where("bill_id = ?", id).Delete(&models.BillItemModel{}).Error; err != nil {
			return err
		}
		return tx.Where("account_id = ? AND id = ?", accountID, id).Delete(&models.BillModel{}).Error
	})
}

func (r *GormBillRepository) withItems(db *gorm.DB) *gorm.DB {
	return db.Preload("Items", func(db *gorm.DB) *gorm.DB {
		return db.Order("position")
	})
}

// scoped restricts to the account and applies the search across bill number
// and current or former customer name.
func (r *GormBillRepository) scoped(ctx context.Context, accountID uuid.UUID, filter shared.Filter) *gorm.DB {
	query := r.db.WithContext(ctx).Model(&models.BillModel{}).Where("bills.account_id = ?", accountID)
	if filter.Search != "" {
		pattern := likePattern(filter.Search)
		query = query.
			Joins("LEFT JOIN customers ON customers.id = bills.customer_id").
			Where("(LOWER(bills.bill_number) LIKE ? ESCAPE '!' OR LOWER(COALESCE(customers.name, bills.deleted_customer_name)) LIKE ? ESCAPE '!')",
				pattern, pattern)
	}
	return query
}

func toDomainBills(billModels []models.BillModel) []billing.Bill {
	bills := make([]billing.Bill, len(billModels))
	for i := range billModels {
		bills[i] = *billModels[i].ToDomain()
	}
	return bills
}

// Ensure GormBillRepository implements BillRepository
var _ billing.BillRepository = (*GormBillRepository)(nil)
