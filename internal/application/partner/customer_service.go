package partner

import (
	"context"
	"errors"

	"github.com/aquaflow/backend/internal/application/ledger"
	"github.com/aquaflow/backend/internal/domain/partner"
	"github.com/aquaflow/backend/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CustomerService handles customer-related business operations
type CustomerService struct {
	exec   *ledger.Executor
	repos  ledger.Repositories
	logger *zap.Logger
}

// NewCustomerService creates a new CustomerService
func NewCustomerService(exec *ledger.Executor, repos ledger.Repositories, logger *zap.Logger) *CustomerService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CustomerService{exec: exec, repos: repos, logger: logger}
}

// Create creates a new customer with zero balances
func (s *CustomerService) Create(ctx context.Context, req CreateCustomerRequest, meta ledger.Meta) (*CustomerResponse, error) {
	customerType := partner.CustomerType(req.Type)
	if customerType == "" {
		customerType = partner.CustomerTypeRetail
	}

	var customer *partner.Customer
	op := ledger.Operation{Name: "customer.create", IdempotencyKey: meta.IdempotencyKey}
	err := s.exec.Run(ctx, op, func(ctx context.Context, u *ledger.Unit) error {
		// Check if phone already exists (if provided)
		if err := ensurePhoneFree(ctx, u.Customers(), req.Phone, uuid.Nil); err != nil {
			return err
		}

		var err error
		customer, err = partner.NewCustomer(req.Name, req.Phone, req.Address, customerType, req.AgencyLevel)
		if err != nil {
			return err
		}
		if err := u.Customers().Save(ctx, customer); err != nil {
			return err
		}
		u.Track(customer)
		return nil
	})
	if err != nil {
		s.logger.Warn("Customer creation rejected", zap.String("name", req.Name), zap.Error(err))
		return nil, err
	}

	s.logger.Info("Customer created",
		zap.String("customer_id", customer.ID.String()),
		zap.String("classification", customer.Classification()))
	response := ToCustomerResponse(customer)
	return &response, nil
}

// Update changes contact details and classification
func (s *CustomerService) Update(ctx context.Context, customerID uuid.UUID, req UpdateCustomerRequest, meta ledger.Meta) (*CustomerResponse, error) {
	var customer *partner.Customer
	op := ledger.Operation{
		Name:           "customer.update",
		IdempotencyKey: meta.IdempotencyKey,
		LockKeys:       []string{ledger.CustomerLockKey(customerID)},
	}
	err := s.exec.Run(ctx, op, func(ctx context.Context, u *ledger.Unit) error {
		var err error
		customer, err = u.Customers().FindByID(ctx, customerID)
		if err != nil {
			return err
		}
		if req.Phone != customer.Phone {
			if err := ensurePhoneFree(ctx, u.Customers(), req.Phone, customer.ID); err != nil {
				return err
			}
		}
		if err := customer.UpdateContact(req.Name, req.Phone, req.Address); err != nil {
			return err
		}
		if err := customer.Reclassify(partner.CustomerType(req.Type), req.AgencyLevel); err != nil {
			return err
		}
		if err := u.Customers().SaveWithLock(ctx, customer); err != nil {
			return err
		}
		u.Track(customer)
		return nil
	})
	if err != nil {
		s.logger.Warn("Customer update rejected", zap.String("customer_id", customerID.String()), zap.Error(err))
		return nil, err
	}

	s.logger.Info("Customer updated", zap.String("customer_id", customerID.String()))
	response := ToCustomerResponse(customer)
	return &response, nil
}

// ensurePhoneFree fails with ALREADY_EXISTS when another customer holds the
// phone number. Website orders find customers by phone, so it must be unique.
func ensurePhoneFree(ctx context.Context, repo partner.CustomerRepository, phone string, self uuid.UUID) error {
	phone = partner.NormalizePhone(phone)
	if phone == "" {
		return nil
	}
	existing, err := repo.FindByPhone(ctx, phone)
	if errors.Is(err, shared.ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	if existing.ID == self {
		return nil
	}
	return shared.NewDomainErrorWithDetails(shared.CodeAlreadyExists,
		"Customer with this phone already exists",
		map[string]any{"phone": phone, "customerId": existing.ID.String()})
}

// GetByID retrieves a customer with its balances
func (s *CustomerService) GetByID(ctx context.Context, customerID uuid.UUID) (*CustomerResponse, error) {
	customer, err := s.repos.Customers().FindByID(ctx, customerID)
	if err != nil {
		return nil, err
	}
	response := ToCustomerResponse(customer)
	return &response, nil
}

// List retrieves customers with search, type filter and pagination
func (s *CustomerService) List(ctx context.Context, filter CustomerListFilter) ([]CustomerResponse, int64, error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}

	domainFilter := shared.Filter{
		Page:     filter.Page,
		PageSize: filter.PageSize,
		OrderBy:  "name",
		OrderDir: "asc",
		Search:   filter.Search,
		Filters:  make(map[string]interface{}),
	}
	if filter.Type != "" {
		domainFilter.Filters["type"] = filter.Type
	}

	customers, err := s.repos.Customers().FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.repos.Customers().Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	return ToCustomerResponses(customers), total, nil
}
