package inventory

import (
	"context"
	"time"

	"github.com/aquaflow/backend/internal/application/ledger"
	"github.com/aquaflow/backend/internal/domain/inventory"
	"github.com/aquaflow/backend/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// DateLayout is the accepted format for report dates
const DateLayout = "2006-01-02"

// MovementService records stock movements and serves inventory reports
type MovementService struct {
	exec   *ledger.Executor
	repos  ledger.Repositories
	logger *zap.Logger
}

// NewMovementService creates a new MovementService
func NewMovementService(exec *ledger.Executor, repos ledger.Repositories, logger *zap.Logger) *MovementService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &MovementService{exec: exec, repos: repos, logger: logger}
}

// ApplyMovement changes a product's stock and appends the log entry in the
// same transaction. Export and return fail with INSUFFICIENT_STOCK when the
// product holds less than the quantity.
func (s *MovementService) ApplyMovement(ctx context.Context, req ApplyMovementRequest, meta ledger.Meta) (*inventory.MovementLog, error) {
	movementType := inventory.MovementType(req.Type)
	if !movementType.IsValid() {
		return nil, shared.NewValidationError("Invalid movement type: " + req.Type)
	}

	var entry *inventory.MovementLog
	op := ledger.Operation{
		Name:           "inventory.apply_movement",
		IdempotencyKey: meta.IdempotencyKey,
		LockKeys:       []string{ledger.ProductLockKey(req.ProductID)},
	}
	err := s.exec.Run(ctx, op, func(ctx context.Context, u *ledger.Unit) error {
		product, err := u.Products().FindByID(ctx, req.ProductID)
		if err != nil {
			return err
		}
		entry, err = inventory.ApplyMovement(product, movementType, req.Quantity, req.Note, inventory.ManualSource(), meta.Actor)
		if err != nil {
			return err
		}
		if err := u.Products().SaveWithLock(ctx, product); err != nil {
			return err
		}
		u.Track(product)
		return u.Movements().Append(ctx, entry)
	})
	if err != nil {
		s.logger.Warn("Stock movement rejected",
			zap.String("product_id", req.ProductID.String()),
			zap.String("type", req.Type),
			zap.Int64("quantity", req.Quantity),
			zap.Error(err))
		return nil, err
	}

	s.logger.Info("Stock movement applied",
		zap.String("product_id", req.ProductID.String()),
		zap.String("type", req.Type),
		zap.Int64("quantity", req.Quantity),
		zap.Int64("stock_after", entry.StockAfter))
	return entry, nil
}

// GetMovementsByProduct returns a product's log entries, newest first
func (s *MovementService) GetMovementsByProduct(ctx context.Context, productID uuid.UUID, filter MovementListFilter) (shared.Paginated[inventory.MovementLog], error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}
	if _, err := s.repos.Products().FindByID(ctx, productID); err != nil {
		return shared.Paginated[inventory.MovementLog]{}, err
	}

	domainFilter := shared.Filter{Page: filter.Page, PageSize: filter.PageSize}
	logs, err := s.repos.Movements().FindByProduct(ctx, productID, domainFilter)
	if err != nil {
		return shared.Paginated[inventory.MovementLog]{}, err
	}
	total, err := s.repos.Movements().CountByProduct(ctx, productID)
	if err != nil {
		return shared.Paginated[inventory.MovementLog]{}, err
	}
	if logs == nil {
		logs = []inventory.MovementLog{}
	}
	return shared.NewPaginated(logs, total, filter.Page, filter.PageSize), nil
}

// GetInventoryReport lists every product with its all-time movement sums
func (s *MovementService) GetInventoryReport(ctx context.Context) ([]inventory.ReportLine, error) {
	products, err := s.repos.Products().FindAll(ctx, shared.Filter{})
	if err != nil {
		return nil, err
	}
	totals, err := s.repos.Movements().SumByProduct(ctx)
	if err != nil {
		return nil, err
	}
	return inventory.BuildReport(products, totals), nil
}

// GetInventoryReportByDate sums movements per product between two dates,
// both inclusive. The end date covers the whole day.
func (s *MovementService) GetInventoryReportByDate(ctx context.Context, req DatedReportRequest) (*DatedReportResponse, error) {
	if req.StartDate == "" || req.EndDate == "" {
		return nil, shared.NewValidationError("Start date and end date are required")
	}
	start, err := time.ParseInLocation(DateLayout, req.StartDate, time.Local)
	if err != nil {
		return nil, shared.NewValidationError("Invalid start date, expected YYYY-MM-DD")
	}
	end, err := time.ParseInLocation(DateLayout, req.EndDate, time.Local)
	if err != nil {
		return nil, shared.NewValidationError("Invalid end date, expected YYYY-MM-DD")
	}
	if end.Before(start) {
		return nil, shared.NewValidationError("End date must not be before start date")
	}

	r := inventory.NewDayRange(start, end)
	products, err := s.repos.Products().FindAll(ctx, shared.Filter{})
	if err != nil {
		return nil, err
	}
	logs, err := s.repos.Movements().FindBetween(ctx, r.From, r.To)
	if err != nil {
		return nil, err
	}
	return &DatedReportResponse{
		StartDate: r.From,
		EndDate:   r.To,
		Products:  inventory.BuildDatedReport(products, logs, r),
	}, nil
}
