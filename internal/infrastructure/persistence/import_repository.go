package persistence

import (
	"context"

	"github.com/aquaflow/backend/internal/domain/inventory"
	"github.com/aquaflow/backend/internal/domain/shared"
	"github.com/aquaflow/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var importQuery = listQuery{
	searchColumns: []string{"supplier_name", "note"},
	filterColumns: map[string]string{"supplier_id": "supplier_id"},
	sortFields:    ImportSortFields,
	defaultSort:   "created_at",
}

// GormImportRepository implements inventory.ImportRepository using GORM
type GormImportRepository struct {
	db *gorm.DB
}

// NewGormImportRepository creates a new GormImportRepository
func NewGormImportRepository(db *gorm.DB) *GormImportRepository {
	return &GormImportRepository{db: db}
}

// FindByID loads an import with its items
func (r *GormImportRepository) FindByID(ctx context.Context, id uuid.UUID) (*inventory.Import, error) {
	var model models.ImportModel
	if err := r.db.WithContext(ctx).Preload("Items", byPosition).First(&model, "id = ?", id).Error; err != nil {
		return nil, translateError(err, "Import", id)
	}
	return model.ToDomain(), nil
}

// FindAll finds imports matching the filter
func (r *GormImportRepository) FindAll(ctx context.Context, filter shared.Filter) ([]inventory.Import, error) {
	var rows []models.ImportModel
	if err := importQuery.list(r.db.WithContext(ctx).Preload("Items", byPosition), filter).Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]inventory.Import, len(rows))
	for i := range rows {
		out[i] = *rows[i].ToDomain()
	}
	return out, nil
}

// Count counts imports matching the filter
func (r *GormImportRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	err := importQuery.where(r.db.WithContext(ctx).Model(&models.ImportModel{}), filter).Count(&count).Error
	return count, err
}

// Save creates a new import together with its items
func (r *GormImportRepository) Save(ctx context.Context, imp *inventory.Import) error {
	err := r.db.WithContext(ctx).Create(models.ImportModelFromDomain(imp)).Error
	return translateError(err, "Import", imp.ID)
}

// Delete hard-deletes the import and its items
func (r *GormImportRepository) Delete(ctx context.Context, id uuid.UUID) error {
	db := r.db.WithContext(ctx)
	if err := db.Where("import_id = ?", id).Delete(&models.ImportItemModel{}).Error; err != nil {
		return err
	}
	result := db.Delete(&models.ImportModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.NewNotFoundError("Import", id)
	}
	return nil
}

var _ inventory.ImportRepository = (*GormImportRepository)(nil)
