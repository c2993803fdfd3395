package persistence

import (
	"context"
	"time"

	"github.com/aquaflow/backend/internal/domain/shared"
	"github.com/aquaflow/backend/internal/domain/trade"
	"github.com/aquaflow/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var purchaseQuery = listQuery{
	searchColumns: []string{"supplier_name"},
	filterColumns: map[string]string{"status": "status", "supplier_id": "supplier_id"},
	sortFields:    PurchaseSortFields,
	defaultSort:   "created_at",
}

// GormPurchaseRepository implements trade.PurchaseRepository using GORM
type GormPurchaseRepository struct {
	db *gorm.DB
}

// NewGormPurchaseRepository creates a new GormPurchaseRepository
func NewGormPurchaseRepository(db *gorm.DB) *GormPurchaseRepository {
	return &GormPurchaseRepository{db: db}
}

func (r *GormPurchaseRepository) withItems(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Preload("Items", byPosition)
}

// FindByID loads a purchase with its items
func (r *GormPurchaseRepository) FindByID(ctx context.Context, id uuid.UUID) (*trade.Purchase, error) {
	var model models.PurchaseModel
	if err := r.withItems(ctx).First(&model, "id = ?", id).Error; err != nil {
		return nil, translateError(err, "Purchase", id)
	}
	return model.ToDomain(), nil
}

// FindAll finds purchases matching the filter
func (r *GormPurchaseRepository) FindAll(ctx context.Context, filter shared.Filter) ([]trade.Purchase, error) {
	return r.find(purchaseQuery.list(r.withItems(ctx), filter))
}

// Count counts purchases matching the filter
func (r *GormPurchaseRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	err := purchaseQuery.where(r.db.WithContext(ctx).Model(&models.PurchaseModel{}), filter).Count(&count).Error
	return count, err
}

// FindBySupplier returns all of a supplier's purchases, newest first
func (r *GormPurchaseRepository) FindBySupplier(ctx context.Context, supplierID uuid.UUID) ([]trade.Purchase, error) {
	return r.find(r.withItems(ctx).
		Where("supplier_id = ?", supplierID).
		Order("created_at DESC, id"))
}

// FindOutstanding returns non-canceled purchases with debt remaining
func (r *GormPurchaseRepository) FindOutstanding(ctx context.Context, from, to *time.Time) ([]trade.Purchase, error) {
	query := r.withItems(ctx).
		Where("status <> ? AND total_amount > paid_amount", trade.StatusCanceled)
	if from != nil {
		query = query.Where("purchase_date >= ?", *from)
	}
	if to != nil {
		query = query.Where("purchase_date <= ?", *to)
	}
	return r.find(query.Order("purchase_date DESC, id"))
}

func (r *GormPurchaseRepository) find(query *gorm.DB) ([]trade.Purchase, error) {
	var rows []models.PurchaseModel
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]trade.Purchase, len(rows))
	for i := range rows {
		out[i] = *rows[i].ToDomain()
	}
	return out, nil
}

// Save creates a new purchase together with its items
func (r *GormPurchaseRepository) Save(ctx context.Context, purchase *trade.Purchase) error {
	err := r.db.WithContext(ctx).Create(models.PurchaseModelFromDomain(purchase)).Error
	return translateError(err, "Purchase", purchase.ID)
}

// SaveWithLock updates the purchase header guarded by its version
func (r *GormPurchaseRepository) SaveWithLock(ctx context.Context, purchase *trade.Purchase) error {
	err := updateVersioned(r.db.WithContext(ctx), &models.PurchaseModel{}, "Purchase", purchase.ID, purchase.Version,
		map[string]any{
			"paid_amount": purchase.PaidAmount.Int64(),
			"status":      purchase.Status,
			"notes":       purchase.Notes,
			"updated_at":  purchase.UpdatedAt,
		})
	if err != nil {
		return err
	}
	purchase.IncrementVersion()
	return nil
}

var _ trade.PurchaseRepository = (*GormPurchaseRepository)(nil)
