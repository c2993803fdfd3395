package persistence

import (
	"context"

	"github.com/aquaflow/backend/internal/domain/catalog"
	"github.com/aquaflow/backend/internal/domain/shared"
	"github.com/aquaflow/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var productQuery = listQuery{
	searchColumns: []string{"name"},
	sortFields:    ProductSortFields,
	defaultSort:   "created_at",
}

// GormProductRepository implements catalog.ProductRepository using GORM
type GormProductRepository struct {
	db *gorm.DB
}

// NewGormProductRepository creates a new GormProductRepository
func NewGormProductRepository(db *gorm.DB) *GormProductRepository {
	return &GormProductRepository{db: db}
}

// FindByID finds a product by its ID
func (r *GormProductRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Product, error) {
	var model models.ProductModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		return nil, translateError(err, "Product", id)
	}
	return model.ToDomain(), nil
}

// FindByIDs finds products by IDs
func (r *GormProductRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]catalog.Product, error) {
	if len(ids) == 0 {
		return []catalog.Product{}, nil
	}
	var rows []models.ProductModel
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&rows).Error; err != nil {
		return nil, err
	}
	return toProducts(rows), nil
}

// FindAll finds all products matching the filter
func (r *GormProductRepository) FindAll(ctx context.Context, filter shared.Filter) ([]catalog.Product, error) {
	var rows []models.ProductModel
	if err := productQuery.list(r.db.WithContext(ctx), filter).Find(&rows).Error; err != nil {
		return nil, err
	}
	return toProducts(rows), nil
}

// Count counts products matching the filter
func (r *GormProductRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	err := productQuery.where(r.db.WithContext(ctx).Model(&models.ProductModel{}), filter).Count(&count).Error
	return count, err
}

// Save creates a new product
func (r *GormProductRepository) Save(ctx context.Context, product *catalog.Product) error {
	err := r.db.WithContext(ctx).Create(models.ProductModelFromDomain(product)).Error
	return translateError(err, "Product", product.ID)
}

// SaveWithLock updates a product guarded by its version
func (r *GormProductRepository) SaveWithLock(ctx context.Context, product *catalog.Product) error {
	err := updateVersioned(r.db.WithContext(ctx), &models.ProductModel{}, "Product", product.ID, product.Version,
		map[string]any{
			"name":       product.Name,
			"unit":       product.Unit,
			"price":      product.Price.Int64(),
			"returnable": product.Returnable,
			"stock":      product.Stock,
			"updated_at": product.UpdatedAt,
		})
	if err != nil {
		return err
	}
	product.IncrementVersion()
	return nil
}

// Delete removes the product row if it still carries the loaded version
func (r *GormProductRepository) Delete(ctx context.Context, product *catalog.Product) error {
	result := r.db.WithContext(ctx).
		Where("id = ? AND version = ?", product.ID, product.Version).
		Delete(&models.ProductModel{})
	if result.Error != nil {
		return translateError(result.Error, "Product", product.ID)
	}
	if result.RowsAffected == 0 {
		return shared.ErrConcurrencyConflict.
			WithDetail("entity", "Product").
			WithDetail("id", product.ID.String())
	}
	return nil
}

func toProducts(rows []models.ProductModel) []catalog.Product {
	out := make([]catalog.Product, len(rows))
	for i := range rows {
		out[i] = *rows[i].ToDomain()
	}
	return out
}

var _ catalog.ProductRepository = (*GormProductRepository)(nil)
