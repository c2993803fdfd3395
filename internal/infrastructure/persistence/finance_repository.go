package persistence

import (
	"context"

	"github.com/aquaflow/backend/internal/domain/finance"
	"github.com/aquaflow/backend/internal/domain/shared"
	"github.com/aquaflow/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

func byCustomer(db *gorm.DB, customerID uuid.UUID, filter shared.Filter) *gorm.DB {
	db = db.Where("customer_id = ?", customerID).Order("created_at DESC, id")
	if filter.PageSize > 0 {
		db = db.Offset(filter.Offset()).Limit(filter.PageSize)
	}
	return db
}

// GormPaymentTransactionRepository implements finance.PaymentTransactionRepository
type GormPaymentTransactionRepository struct {
	db *gorm.DB
}

// NewGormPaymentTransactionRepository creates a new GormPaymentTransactionRepository
func NewGormPaymentTransactionRepository(db *gorm.DB) *GormPaymentTransactionRepository {
	return &GormPaymentTransactionRepository{db: db}
}

// Save stores a payment record
func (r *GormPaymentTransactionRepository) Save(ctx context.Context, tx *finance.PaymentTransaction) error {
	err := r.db.WithContext(ctx).Create(models.PaymentTransactionModelFromDomain(tx)).Error
	return translateError(err, "PaymentTransaction", tx.ID)
}

// FindByCustomer returns a customer's payments, newest first
func (r *GormPaymentTransactionRepository) FindByCustomer(ctx context.Context, customerID uuid.UUID, filter shared.Filter) ([]finance.PaymentTransaction, error) {
	var rows []models.PaymentTransactionModel
	if err := byCustomer(r.db.WithContext(ctx), customerID, filter).Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]finance.PaymentTransaction, len(rows))
	for i := range rows {
		out[i] = rows[i].ToDomain()
	}
	return out, nil
}

// CountByCustomer counts a customer's payments
func (r *GormPaymentTransactionRepository) CountByCustomer(ctx context.Context, customerID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.PaymentTransactionModel{}).
		Where("customer_id = ?", customerID).
		Count(&count).Error
	return count, err
}

// GormEmptyReturnRepository implements finance.EmptyReturnRepository
type GormEmptyReturnRepository struct {
	db *gorm.DB
}

// NewGormEmptyReturnRepository creates a new GormEmptyReturnRepository
func NewGormEmptyReturnRepository(db *gorm.DB) *GormEmptyReturnRepository {
	return &GormEmptyReturnRepository{db: db}
}

// Save stores an empty-container record
func (r *GormEmptyReturnRepository) Save(ctx context.Context, er *finance.EmptyReturn) error {
	err := r.db.WithContext(ctx).Create(models.EmptyReturnModelFromDomain(er)).Error
	return translateError(err, "EmptyReturn", er.ID)
}

// FindByCustomer returns a customer's records, newest first
func (r *GormEmptyReturnRepository) FindByCustomer(ctx context.Context, customerID uuid.UUID, filter shared.Filter) ([]finance.EmptyReturn, error) {
	var rows []models.EmptyReturnModel
	if err := byCustomer(r.db.WithContext(ctx), customerID, filter).Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]finance.EmptyReturn, len(rows))
	for i := range rows {
		out[i] = rows[i].ToDomain()
	}
	return out, nil
}

// CountByCustomer counts a customer's records
func (r *GormEmptyReturnRepository) CountByCustomer(ctx context.Context, customerID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.EmptyReturnModel{}).
		Where("customer_id = ?", customerID).
		Count(&count).Error
	return count, err
}

var (
	_ finance.PaymentTransactionRepository = (*GormPaymentTransactionRepository)(nil)
	_ finance.EmptyReturnRepository        = (*GormEmptyReturnRepository)(nil)
)
