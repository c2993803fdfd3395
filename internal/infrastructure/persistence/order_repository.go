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

var orderQuery = listQuery{
	searchColumns: []string{"customer_name"},
	filterColumns: map[string]string{"status": "status", "customer_id": "customer_id"},
	sortFields:    OrderSortFields,
	defaultSort:   "created_at",
}

// GormOrderRepository implements trade.OrderRepository using GORM.
// Orders are always loaded with their items.
type GormOrderRepository struct {
	db *gorm.DB
}

// NewGormOrderRepository creates a new GormOrderRepository
func NewGormOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

func (r *GormOrderRepository) withItems(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Preload("Items", byPosition)
}

// FindByID loads an order with its items
func (r *GormOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*trade.Order, error) {
	var model models.OrderModel
	if err := r.withItems(ctx).First(&model, "id = ?", id).Error; err != nil {
		return nil, translateError(err, "Order", id)
	}
	return model.ToDomain(), nil
}

// FindAll finds orders matching the filter
func (r *GormOrderRepository) FindAll(ctx context.Context, filter shared.Filter) ([]trade.Order, error) {
	return r.find(orderQuery.list(r.withItems(ctx), filter))
}

// Count counts orders matching the filter
func (r *GormOrderRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	err := orderQuery.where(r.db.WithContext(ctx).Model(&models.OrderModel{}), filter).Count(&count).Error
	return count, err
}

// FindByCustomer finds a customer's orders, newest first
func (r *GormOrderRepository) FindByCustomer(ctx context.Context, customerID uuid.UUID, filter shared.Filter) ([]trade.Order, error) {
	return r.find(orderQuery.list(r.withItems(ctx).Where("customer_id = ?", customerID), filter))
}

// FindByStatusBetween finds orders in a status placed within [from, to]
func (r *GormOrderRepository) FindByStatusBetween(ctx context.Context, status trade.Status, from, to time.Time) ([]trade.Order, error) {
	return r.find(r.withItems(ctx).
		Where("status = ? AND order_date BETWEEN ? AND ?", status, from, to).
		Order("order_date, id"))
}

// FindBetween finds orders in any status placed within [from, to]
func (r *GormOrderRepository) FindBetween(ctx context.Context, from, to time.Time) ([]trade.Order, error) {
	return r.find(r.withItems(ctx).
		Where("order_date BETWEEN ? AND ?", from, to).
		Order("order_date, id"))
}

func (r *GormOrderRepository) find(query *gorm.DB) ([]trade.Order, error) {
	var rows []models.OrderModel
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]trade.Order, len(rows))
	for i := range rows {
		out[i] = *rows[i].ToDomain()
	}
	return out, nil
}

// Save creates a new order together with its items
func (r *GormOrderRepository) Save(ctx context.Context, order *trade.Order) error {
	err := r.db.WithContext(ctx).Create(models.OrderModelFromDomain(order)).Error
	return translateError(err, "Order", order.ID)
}

// SaveWithLock updates the order header guarded by its version
func (r *GormOrderRepository) SaveWithLock(ctx context.Context, order *trade.Order) error {
	err := updateVersioned(r.db.WithContext(ctx), &models.OrderModel{}, "Order", order.ID, order.Version,
		map[string]any{
			"paid_amount":   order.PaidAmount.Int64(),
			"returnable_in": order.ReturnableIn,
			"status":        order.Status,
			"note":          order.Note,
			"updated_at":    order.UpdatedAt,
		})
	if err != nil {
		return err
	}
	order.IncrementVersion()
	return nil
}

var _ trade.OrderRepository = (*GormOrderRepository)(nil)
