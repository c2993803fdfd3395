package persistence

import (
	"context"
	"time"

	"github.com/aquaflow/backend/internal/domain/inventory"
	"github.com/aquaflow/backend/internal/domain/shared"
	"github.com/aquaflow/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormMovementLogRepository implements inventory.MovementLogRepository.
// Rows are only ever inserted.
type GormMovementLogRepository struct {
	db *gorm.DB
}

// NewGormMovementLogRepository creates a new GormMovementLogRepository
func NewGormMovementLogRepository(db *gorm.DB) *GormMovementLogRepository {
	return &GormMovementLogRepository{db: db}
}

// Append stores new log entries
func (r *GormMovementLogRepository) Append(ctx context.Context, logs ...*inventory.MovementLog) error {
	if len(logs) == 0 {
		return nil
	}
	rows := make([]*models.MovementLogModel, len(logs))
	for i, l := range logs {
		rows[i] = models.MovementLogModelFromDomain(l)
	}
	return r.db.WithContext(ctx).Create(&rows).Error
}

// FindByProduct returns a product's entries, newest first
func (r *GormMovementLogRepository) FindByProduct(ctx context.Context, productID uuid.UUID, filter shared.Filter) ([]inventory.MovementLog, error) {
	query := r.db.WithContext(ctx).
		Where("product_id = ?", productID).
		Order("created_at DESC, id")
	if filter.PageSize > 0 {
		query = query.Offset(filter.Offset()).Limit(filter.PageSize)
	}
	return r.find(query)
}

// CountByProduct counts a product's entries
func (r *GormMovementLogRepository) CountByProduct(ctx context.Context, productID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.MovementLogModel{}).
		Where("product_id = ?", productID).
		Count(&count).Error
	return count, err
}

// FindBetween returns all entries created in [from, to], newest first
func (r *GormMovementLogRepository) FindBetween(ctx context.Context, from, to time.Time) ([]inventory.MovementLog, error) {
	return r.find(r.db.WithContext(ctx).
		Where("created_at BETWEEN ? AND ?", from, to).
		Order("created_at DESC, id"))
}

type movementSum struct {
	ProductID uuid.UUID
	Type      inventory.MovementType
	Total     int64
}

// SumByProduct aggregates quantities per product and type over all time
func (r *GormMovementLogRepository) SumByProduct(ctx context.Context) ([]inventory.MovementTotals, error) {
	var sums []movementSum
	if err := r.db.WithContext(ctx).Model(&models.MovementLogModel{}).
		Select("product_id, type, SUM(quantity) AS total").
		Group("product_id, type").
		Order("product_id").
		Scan(&sums).Error; err != nil {
		return nil, err
	}

	var out []inventory.MovementTotals
	index := make(map[uuid.UUID]int)
	for _, s := range sums {
		i, ok := index[s.ProductID]
		if !ok {
			i = len(out)
			index[s.ProductID] = i
			out = append(out, inventory.MovementTotals{ProductID: s.ProductID})
		}
		out[i].Add(s.Type, s.Total)
	}
	return out, nil
}

func (r *GormMovementLogRepository) find(query *gorm.DB) ([]inventory.MovementLog, error) {
	var rows []models.MovementLogModel
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]inventory.MovementLog, len(rows))
	for i := range rows {
		out[i] = rows[i].ToDomain()
	}
	return out, nil
}

var _ inventory.MovementLogRepository = (*GormMovementLogRepository)(nil)
