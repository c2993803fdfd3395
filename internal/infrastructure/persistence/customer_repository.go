package persistence

import (
	"context"

	"github.com/aquaflow/backend/internal/domain/partner"
	"github.com/aquaflow/backend/internal/domain/shared"
	"github.com/aquaflow/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var customerQuery = listQuery{
	searchColumns: []string{"name", "phone"},
	filterColumns: map[string]string{"type": "type"},
	sortFields:    CustomerSortFields,
	defaultSort:   "created_at",
}

// GormCustomerRepository implements partner.CustomerRepository using GORM
type GormCustomerRepository struct {
	db *gorm.DB
}

// NewGormCustomerRepository creates a new GormCustomerRepository
func NewGormCustomerRepository(db *gorm.DB) *GormCustomerRepository {
	return &GormCustomerRepository{db: db}
}

// FindByID finds a customer by ID
func (r *GormCustomerRepository) FindByID(ctx context.Context, id uuid.UUID) (*partner.Customer, error) {
	var model models.CustomerModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		return nil, translateError(err, "Customer", id)
	}
	return model.ToDomain(), nil
}

// FindByPhone finds a customer by phone number
func (r *GormCustomerRepository) FindByPhone(ctx context.Context, phone string) (*partner.Customer, error) {
	var model models.CustomerModel
	if err := r.db.WithContext(ctx).First(&model, "phone = ?", phone).Error; err != nil {
		return nil, translateError(err, "Customer", phone)
	}
	return model.ToDomain(), nil
}

// FindAll finds all customers matching the filter
func (r *GormCustomerRepository) FindAll(ctx context.Context, filter shared.Filter) ([]partner.Customer, error) {
	var rows []models.CustomerModel
	if err := customerQuery.list(r.db.WithContext(ctx), filter).Find(&rows).Error; err != nil {
		return nil, err
	}
	return toCustomers(rows), nil
}

// FindWithDebt finds customers whose debt is above zero, largest first
func (r *GormCustomerRepository) FindWithDebt(ctx context.Context) ([]partner.Customer, error) {
	var rows []models.CustomerModel
	if err := r.db.WithContext(ctx).
		Where("debt > 0").
		Order("debt DESC, id").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return toCustomers(rows), nil
}

// Count counts customers matching the filter
func (r *GormCustomerRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	err := customerQuery.where(r.db.WithContext(ctx).Model(&models.CustomerModel{}), filter).Count(&count).Error
	return count, err
}

// Save creates a new customer. A taken phone number yields ALREADY_EXISTS.
func (r *GormCustomerRepository) Save(ctx context.Context, customer *partner.Customer) error {
	err := r.db.WithContext(ctx).Create(models.CustomerModelFromDomain(customer)).Error
	return translateError(err, "Customer", customer.ID)
}

// SaveWithLock updates a customer guarded by its version
func (r *GormCustomerRepository) SaveWithLock(ctx context.Context, customer *partner.Customer) error {
	m := models.CustomerModelFromDomain(customer)
	err := updateVersioned(r.db.WithContext(ctx), &models.CustomerModel{}, "Customer", customer.ID, customer.Version,
		map[string]any{
			"name":         m.Name,
			"phone":        m.Phone,
			"address":      m.Address,
			"type":         m.Type,
			"agency_level": m.AgencyLevel,
			"debt":         m.Debt,
			"empty_debt":   m.EmptyDebt,
			"updated_at":   customer.UpdatedAt,
		})
	if err != nil {
		return err
	}
	customer.IncrementVersion()
	return nil
}

func toCustomers(rows []models.CustomerModel) []partner.Customer {
	out := make([]partner.Customer, len(rows))
	for i := range rows {
		out[i] = *rows[i].ToDomain()
	}
	return out
}

var _ partner.CustomerRepository = (*GormCustomerRepository)(nil)
