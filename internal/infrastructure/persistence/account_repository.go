package persistence

import (
	"context"

	"github.com/easybill/backend/internal/domain/account"
	"github.com/easybill/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormAccountRepository implements AccountRepository using GORM
type GormAccountRepository struct {
	db *gorm.DB
}

// NewGormAccountRepository creates a new GormAccountRepository
func NewGormAccountRepository(db *gorm.DB) *GormAccountRepository {
	return &GormAccountRepository{db: db}
}

// FindByID finds an account by its ID
func (r *GormAccountRepository) FindByID(ctx context.Context, id uuid.UUID) (*account.Account, error) {
	var model models.AccountModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error; err != nil {
		return nil, notFound(err)
	}
	return model.ToDomain(), nil
}

// FindByEmail finds an account by normalized email
func (r *GormAccountRepository) FindByEmail(ctx context.Context, email string) (*account.Account, error) {
	var model models.AccountModel
	if err := r.db.WithContext(ctx).Where("email = ?", account.NormalizeEmail(email)).First(&model).Error; err != nil {
		return nil, notFound(err)
	}
	return model.ToDomain(), nil
}

// ExistsByEmail checks if an account with the given email exists
func (r *GormAccountRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.AccountModel{}).
		Where("email = ?", account.NormalizeEmail(email)).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Create inserts a new account
func (r *GormAccountRepository) Create(ctx context.Context, a *account.Account) error {
	err := r.db.WithContext(ctx).Create(models.AccountModelFromDomain(a)).Error
	return translateWriteError(err, account.ErrEmailTaken)
}

// Ensure GormAccountRepository implements AccountRepository
var _ account.AccountRepository = (*GormAccountRepository)(nil)
