package inventory

import (
	"context"

	"github.com/aquaflow/backend/internal/application/ledger"
	"github.com/aquaflow/backend/internal/domain/inventory"
	"github.com/aquaflow/backend/internal/domain/shared"
	"github.com/aquaflow/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ImportService receives stock from suppliers and reverts imports
type ImportService struct {
	exec   *ledger.Executor
	repos  ledger.Repositories
	logger *zap.Logger
}

// NewImportService creates a new ImportService
func NewImportService(exec *ledger.Executor, repos ledger.Repositories, logger *zap.Logger) *ImportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ImportService{exec: exec, repos: repos, logger: logger}
}

// Create records an import and adds its quantities to stock, one import
// movement per line
func (s *ImportService) Create(ctx context.Context, req CreateImportRequest, meta ledger.Meta) (*ImportResponse, error) {
	if len(req.Items) == 0 {
		return nil, shared.NewValidationError("Import must contain at least one item")
	}
	prices := make([]valueobject.Money, len(req.Items))
	productIDs := make([]uuid.UUID, len(req.Items))
	for i, item := range req.Items {
		price, err := valueobject.NewMoneyFromDecimal(item.UnitPrice)
		if err != nil {
			return nil, err
		}
		prices[i] = price
		productIDs[i] = item.ProductID
	}
	productIDs = ledger.DistinctIDs(productIDs)

	var imp *inventory.Import
	op := ledger.Operation{
		Name:           "import.create",
		IdempotencyKey: meta.IdempotencyKey,
		LockKeys:       ledger.ProductLockKeys(productIDs),
	}
	err := s.exec.Run(ctx, op, func(ctx context.Context, u *ledger.Unit) error {
		supplier, err := u.Suppliers().FindByID(ctx, req.SupplierID)
		if err != nil {
			return err
		}
		products, err := ledger.LoadProducts(ctx, u.Products(), productIDs)
		if err != nil {
			return err
		}

		imp = inventory.NewImport(supplier, req.Note, meta.Actor)
		for i, item := range req.Items {
			if err := imp.AddItem(products[item.ProductID], item.Quantity, prices[i]); err != nil {
				return err
			}
		}

		source := inventory.DocumentSource(inventory.SourceTypeImport, imp.ID)
		logs := make([]*inventory.MovementLog, 0, len(imp.Items))
		for _, item := range imp.Items {
			entry, err := inventory.ApplyMovement(products[item.ProductID], inventory.MovementTypeImport, item.Quantity, imp.ReceiveNote(), source, meta.Actor)
			if err != nil {
				return err
			}
			logs = append(logs, entry)
		}

		if err := u.Imports().Save(ctx, imp); err != nil {
			return err
		}
		if err := ledger.SaveProducts(ctx, u, products, productIDs); err != nil {
			return err
		}
		if err := u.Movements().Append(ctx, logs...); err != nil {
			return err
		}
		imp.MarkCreated()
		u.Track(imp)
		return nil
	})
	if err != nil {
		s.logger.Warn("Import rejected",
			zap.String("supplier_id", req.SupplierID.String()),
			zap.Error(err))
		return nil, err
	}

	s.logger.Info("Import created",
		zap.String("import_id", imp.ID.String()),
		zap.String("supplier_id", imp.SupplierID.String()),
		zap.Int("items", len(imp.Items)))
	response := ToImportResponse(imp)
	return &response, nil
}

// Delete reverts an import. Every line is checked before anything is
// written; if any product no longer holds the imported quantity the whole
// deletion fails with IMPORT_IN_USE. Otherwise stock is reduced with export
// entries and the import is removed.
func (s *ImportService) Delete(ctx context.Context, importID uuid.UUID, meta ledger.Meta) error {
	existing, err := s.repos.Imports().FindByID(ctx, importID)
	if err != nil {
		return err
	}
	lockKeys := append([]string{ledger.ImportLockKey(importID)}, ledger.ProductLockKeys(existing.ProductIDs())...)

	op := ledger.Operation{
		Name:           "import.delete",
		IdempotencyKey: meta.IdempotencyKey,
		LockKeys:       lockKeys,
	}
	err = s.exec.Run(ctx, op, func(ctx context.Context, u *ledger.Unit) error {
		imp, err := u.Imports().FindByID(ctx, importID)
		if err != nil {
			return err
		}
		productIDs := imp.ProductIDs()
		products, err := ledger.LoadProducts(ctx, u.Products(), productIDs)
		if err != nil {
			return err
		}
		if err := imp.CheckReversible(products); err != nil {
			return err
		}

		source := inventory.DocumentSource(inventory.SourceTypeImportReversal, imp.ID)
		logs := make([]*inventory.MovementLog, 0, len(imp.Items))
		for _, item := range imp.Items {
			entry, err := inventory.ApplyMovement(products[item.ProductID], inventory.MovementTypeExport, item.Quantity, imp.ReversalNote(), source, meta.Actor)
			if err != nil {
				return err
			}
			logs = append(logs, entry)
		}

		if err := ledger.SaveProducts(ctx, u, products, productIDs); err != nil {
			return err
		}
		if err := u.Movements().Append(ctx, logs...); err != nil {
			return err
		}
		if err := u.Imports().Delete(ctx, imp.ID); err != nil {
			return err
		}
		imp.MarkDeleted()
		u.Track(imp)
		return nil
	})
	if err != nil {
		s.logger.Warn("Import deletion rejected",
			zap.String("import_id", importID.String()),
			zap.Error(err))
		return err
	}

	s.logger.Info("Import deleted", zap.String("import_id", importID.String()))
	return nil
}

// GetByID retrieves an import with its items
func (s *ImportService) GetByID(ctx context.Context, importID uuid.UUID) (*ImportResponse, error) {
	imp, err := s.repos.Imports().FindByID(ctx, importID)
	if err != nil {
		return nil, err
	}
	response := ToImportResponse(imp)
	return &response, nil
}

// List retrieves imports, newest first
func (s *ImportService) List(ctx context.Context, filter ImportListFilter) ([]ImportResponse, int64, error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}
	domainFilter := shared.Filter{Page: filter.Page, PageSize: filter.PageSize, OrderBy: "import_date", OrderDir: "desc"}

	imports, err := s.repos.Imports().FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.repos.Imports().Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	return ToImportResponses(imports), total, nil
}
