package persistence

import (
	"context"
	"time"

	"github.com/easybill/backend/internal/domain/customer"
	"github.com/easybill/backend/internal/domain/shared"
	"github.com/easybill/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormCustomerRepository implements CustomerRepository using GORM
type GormCustomerRepository struct {
	db *gorm.DB
}

// NewGormCustomerRepository creates a new GormCustomerRepository
func NewGormCustomerRepository(db *gorm.DB) *GormCustomerRepository {
	return &GormCustomerRepository{db: db}
}

// FindByIDForAccount finds a customer by ID within an account
func (r *GormCustomerRepository) FindByIDForAccount(ctx context.Context, accountID, id uuid.UUID) (*customer.Customer, error) {
	var model models.CustomerModel
	if err := r.db.WithContext(ctx).
		Where("account_id = ? AND id = ?", accountID, id).
		First(&model).Error; err != nil {
		return nil, notFound(err)
	}
	return model.ToDomain(), nil
}

// FindAllForAccount lists customers of an account, newest first
func (r *GormCustomerRepository) FindAllForAccount(ctx context.Context, accountID uuid.UUID, filter shared.Filter) ([]customer.Customer, error) {
	var customerModels []models.CustomerModel
	err := r.scoped(ctx, accountID, filter).
		Order("created_at DESC").
		Order("id").
		Offset(filter.Offset()).
		Limit(filter.Limit).
		Find(&customerModels).Error
	if err != nil {
		return nil, err
	}

	customers := make([]customer.Customer, len(customerModels))
	for i, model := range customerModels {
		customers[i] = *model.ToDomain()
	}
	return customers, nil
}

// CountForAccount counts customers of an account matching the filter
func (r *GormCustomerRepository) CountForAccount(ctx context.Context, accountID uuid.UUID, filter shared.Filter) (int64, error) {
	var count int64
	if err := r.scoped(ctx, accountID, filter).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Save creates or updates a customer
func (r *GormCustomerRepository) Save(ctx context.Context, c *customer.Customer) error {
	return r.db.WithContext(ctx).Save(models.CustomerModelFromDomain(c)).Error
}

// DeleteForAccount deletes a customer. Bills that reference it are detached
// and keep the customer's name in deleted_customer_name.
func (r *GormCustomerRepository) DeleteForAccount(ctx context.Context, accountID, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var model models.CustomerModel
		if err := tx.Where("account_id = ? AND id = ?", accountID, id).First(&model).Error; err != nil {
			return notFound(err)
		}

		if err := tx.Model(&models.BillModel{}).
			Where("account_id = ? AND customer_id = ?", accountID, id).
			Updates(map[string]any{
				"customer_id":           nil,
				"deleted_customer_name": model.Name,
				"updated_at":            time.Now().UTC(),
			}).Error; err != nil {
			return err
		}

		result := tx.Where("account_id = ? AND id = ?", accountID, id).Delete(&models.CustomerModel{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		return nil
	})
}

func (r *GormCustomerRepository) scoped(ctx context.Context, accountID uuid.UUID, filter shared.Filter) *gorm.DB {
	query := r.db.WithContext(ctx).Model(&models.CustomerModel{}).Where("account_id = ?", accountID)
	if filter.Search != "" {
		query = query.Where("LOWER(name) LIKE ? ESCAPE '!'", likePattern(filter.Search))
	}
	return query
}

// Ensure GormCustomerRepository implements CustomerRepository
var _ customer.CustomerRepository = (*GormCustomerRepository)(nil)
