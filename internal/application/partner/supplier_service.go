package partner

import (
	"context"

	"github.com/aquaflow/backend/internal/application/ledger"
	"github.com/aquaflow/backend/internal/domain/partner"
	"github.com/aquaflow/backend/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// SupplierService handles supplier-related business operations
type SupplierService struct {
	exec   *ledger.Executor
	repos  ledger.Repositories
	logger *zap.Logger
}

// NewSupplierService creates a new SupplierService
func NewSupplierService(exec *ledger.Executor, repos ledger.Repositories, logger *zap.Logger) *SupplierService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SupplierService{exec: exec, repos: repos, logger: logger}
}

// Create creates a new supplier
func (s *SupplierService) Create(ctx context.Context, req SupplierRequest, meta ledger.Meta) (*SupplierResponse, error) {
	var supplier *partner.Supplier
	op := ledger.Operation{Name: "supplier.create", IdempotencyKey: meta.IdempotencyKey}
	err := s.exec.Run(ctx, op, func(ctx context.Context, u *ledger.Unit) error {
		var err error
		supplier, err = partner.NewSupplier(req.Name, req.contact())
		if err != nil {
			return err
		}
		if err := u.Suppliers().Save(ctx, supplier); err != nil {
			return err
		}
		u.Track(supplier)
		return nil
	})
	if err != nil {
		s.logger.Warn("Supplier creation rejected", zap.String("name", req.Name), zap.Error(err))
		return nil, err
	}

	s.logger.Info("Supplier created", zap.String("supplier_id", supplier.ID.String()))
	response := ToSupplierResponse(supplier)
	return &response, nil
}

// Update replaces a supplier's name and contact details
func (s *SupplierService) Update(ctx context.Context, supplierID uuid.UUID, req SupplierRequest, meta ledger.Meta) (*SupplierResponse, error) {
	var supplier *partner.Supplier
	op := ledger.Operation{Name: "supplier.update", IdempotencyKey: meta.IdempotencyKey}
	err := s.exec.Run(ctx, op, func(ctx context.Context, u *ledger.Unit) error {
		var err error
		supplier, err = u.Suppliers().FindByID(ctx, supplierID)
		if err != nil {
			return err
		}
		if err := supplier.Update(req.Name, req.contact()); err != nil {
			return err
		}
		if err := u.Suppliers().SaveWithLock(ctx, supplier); err != nil {
			return err
		}
		u.Track(supplier)
		return nil
	})
	if err != nil {
		s.logger.Warn("Supplier update rejected", zap.String("supplier_id", supplierID.String()), zap.Error(err))
		return nil, err
	}

	s.logger.Info("Supplier updated", zap.String("supplier_id", supplierID.String()))
	response := ToSupplierResponse(supplier)
	return &response, nil
}

// GetByID retrieves a supplier by ID
func (s *SupplierService) GetByID(ctx context.Context, supplierID uuid.UUID) (*SupplierResponse, error) {
	supplier, err := s.repos.Suppliers().FindByID(ctx, supplierID)
	if err != nil {
		return nil, err
	}
	response := ToSupplierResponse(supplier)
	return &response, nil
}

// List retrieves suppliers with search and pagination
func (s *SupplierService) List(ctx context.Context, filter SupplierListFilter) ([]SupplierResponse, int64, error) {
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
	}

	suppliers, err := s.repos.Suppliers().FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.repos.Suppliers().Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	return ToSupplierResponses(suppliers), total, nil
}
