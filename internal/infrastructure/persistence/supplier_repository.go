package persistence

import (
	"context"

	"github.com/aquaflow/backend/internal/domain/partner"
	"github.com/aquaflow/backend/internal/domain/shared"
	"github.com/aquaflow/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var supplierQuery = listQuery{
	searchColumns: []string{"name", "contact_person", "phone"},
	sortFields:    SupplierSortFields,
	defaultSort:   "created_at",
}

// GormSupplierRepository implements partner.SupplierRepository using GORM
type GormSupplierRepository struct {
	db *gorm.DB
}

// NewGormSupplierRepository creates a new GormSupplierRepository
func NewGormSupplierRepository(db *gorm.DB) *GormSupplierRepository {
	return &GormSupplierRepository{db: db}
}

// FindByID finds a supplier by ID
func (r *GormSupplierRepository) FindByID(ctx context.Context, id uuid.UUID) (*partner.Supplier, error) {
	var model models.SupplierModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		return nil, translateError(err, "Supplier", id)
	}
	return model.ToDomain(), nil
}

// FindAll finds all suppliers matching the filter
func (r *GormSupplierRepository) FindAll(ctx context.Context, filter shared.Filter) ([]partner.Supplier, error) {
	var rows []models.SupplierModel
	if err := supplierQuery.list(r.db.WithContext(ctx), filter).Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]partner.Supplier, len(rows))
	for i := range rows {
		out[i] = *rows[i].ToDomain()
	}
	return out, nil
}

// Count counts suppliers matching the filter
func (r *GormSupplierRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	err := supplierQuery.where(r.db.WithContext(ctx).Model(&models.SupplierModel{}), filter).Count(&count).Error
	return count, err
}

// Save creates a new supplier
func (r *GormSupplierRepository) Save(ctx context.Context, supplier *partner.Supplier) error {
	err := r.db.WithContext(ctx).Create(models.SupplierModelFromDomain(supplier)).Error
	return translateError(err, "Supplier", supplier.ID)
}

// SaveWithLock updates a supplier guarded by its version
func (r *GormSupplierRepository) SaveWithLock(ctx context.Context, supplier *partner.Supplier) error {
	err := updateVersioned(r.db.WithContext(ctx), &models.SupplierModel{}, "Supplier", supplier.ID, supplier.Version,
		map[string]any{
			"name":           supplier.Name,
			"contact_person": supplier.ContactPerson,
			"phone":          supplier.Phone,
			"email":          supplier.Email,
			"address":        supplier.Address,
			"updated_at":     supplier.UpdatedAt,
		})
	if err != nil {
		return err
	}
	supplier.IncrementVersion()
	return nil
}

var _ partner.SupplierRepository = (*GormSupplierRepository)(nil)
