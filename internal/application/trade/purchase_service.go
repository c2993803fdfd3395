package trade

import (
	"context"
	"fmt"

	"github.com/aquaflow/backend/internal/application/ledger"
	"github.com/aquaflow/backend/internal/domain/inventory"
	"github.com/aquaflow/backend/internal/domain/shared"
	"github.com/aquaflow/backend/internal/domain/shared/valueobject"
	"github.com/aquaflow/backend/internal/domain/trade"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// PurchaseService handles buying stock from suppliers
type PurchaseService struct {
	exec   *ledger.Executor
	repos  ledger.Repositories
	logger *zap.Logger
}

// NewPurchaseService creates a new PurchaseService
func NewPurchaseService(exec *ledger.Executor, repos ledger.Repositories, logger *zap.Logger) *PurchaseService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PurchaseService{exec: exec, repos: repos, logger: logger}
}

// Create records a purchase and receives its quantities into stock
func (s *PurchaseService) Create(ctx context.Context, req CreatePurchaseRequest, meta ledger.Meta) (*PurchaseResponse, error) {
	if len(req.Items) == 0 {
		return nil, shared.NewValidationError("Purchase must contain at least one item")
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

	var purchase *trade.Purchase
	op := ledger.Operation{
		Name:           "purchase.create",
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

		purchase = trade.NewPurchase(supplier, req.Notes, meta.Actor)
		for i, item := range req.Items {
			if err := purchase.AddItem(products[item.ProductID], item.Quantity, prices[i]); err != nil {
				return err
			}
		}
		if err := purchase.Place(); err != nil {
			return err
		}

		source := inventory.DocumentSource(inventory.SourceTypePurchase, purchase.ID)
		note := fmt.Sprintf("Purchase from %s", supplier.Name)
		logs := make([]*inventory.MovementLog, 0, len(purchase.Items))
		for _, item := range purchase.Items {
			entry, err := inventory.ApplyMovement(products[item.ProductID], inventory.MovementTypeImport, item.Quantity, note, source, meta.Actor)
			if err != nil {
				return err
			}
			logs = append(logs, entry)
		}

		if err := u.Purchases().Save(ctx, purchase); err != nil {
			return err
		}
		if err := ledger.SaveProducts(ctx, u, products, productIDs); err != nil {
			return err
		}
		if err := u.Movements().Append(ctx, logs...); err != nil {
			return err
		}
		u.Track(purchase)
		return nil
	})
	if err != nil {
		s.logger.Warn("Purchase rejected", zap.String("supplier_id", req.SupplierID.String()), zap.Error(err))
		return nil, err
	}

	s.logger.Info("Purchase created",
		zap.String("purchase_id", purchase.ID.String()),
		zap.String("supplier_id", purchase.SupplierID.String()),
		zap.String("total", purchase.TotalAmount.String()))
	response := ToPurchaseResponse(purchase)
	return &response, nil
}

// Pay records money paid to the supplier. Overpayment is accepted.
func (s *PurchaseService) Pay(ctx context.Context, purchaseID uuid.UUID, req PaymentRequest, meta ledger.Meta) (*PurchaseResponse, error) {
	amount, err := valueobject.NewMoneyFromDecimal(req.Amount)
	if err != nil {
		return nil, err
	}
	if !amount.IsPositive() {
		return nil, shared.NewValidationError("Payment amount must be positive")
	}

	purchase, err := s.mutate(ctx, "purchase.pay", purchaseID, meta, func(p *trade.Purchase) error {
		return p.ApplyPayment(amount)
	})
	if err != nil {
		s.logger.Warn("Purchase payment rejected", zap.String("purchase_id", purchaseID.String()), zap.Error(err))
		return nil, err
	}

	s.logger.Info("Purchase payment recorded",
		zap.String("purchase_id", purchaseID.String()),
		zap.String("amount", amount.String()))
	response := ToPurchaseResponse(purchase)
	return &response, nil
}

// UpdateStatus moves a purchase to a new status
func (s *PurchaseService) UpdateStatus(ctx context.Context, purchaseID uuid.UUID, req UpdateStatusRequest, meta ledger.Meta) (*PurchaseResponse, error) {
	purchase, err := s.mutate(ctx, "purchase.update_status", purchaseID, meta, func(p *trade.Purchase) error {
		return p.ChangeStatus(trade.Status(req.Status))
	})
	if err != nil {
		s.logger.Warn("Purchase status change rejected", zap.String("purchase_id", purchaseID.String()), zap.Error(err))
		return nil, err
	}

	s.logger.Info("Purchase status changed",
		zap.String("purchase_id", purchaseID.String()),
		zap.String("status", req.Status))
	response := ToPurchaseResponse(purchase)
	return &response, nil
}

func (s *PurchaseService) mutate(ctx context.Context, name string, purchaseID uuid.UUID, meta ledger.Meta, fn func(*trade.Purchase) error) (*trade.Purchase, error) {
	var purchase *trade.Purchase
	op := ledger.Operation{
		Name:           name,
		IdempotencyKey: meta.IdempotencyKey,
		LockKeys:       []string{ledger.PurchaseLockKey(purchaseID)},
	}
	err := s.exec.Run(ctx, op, func(ctx context.Context, u *ledger.Unit) error {
		var err error
		purchase, err = u.Purchases().FindByID(ctx, purchaseID)
		if err != nil {
			return err
		}
		if err := fn(purchase); err != nil {
			return err
		}
		if err := u.Purchases().SaveWithLock(ctx, purchase); err != nil {
			return err
		}
		u.Track(purchase)
		return nil
	})
	return purchase, err
}

// SupplierDebt derives what is owed to a supplier from its non-canceled
// purchases
func (s *PurchaseService) SupplierDebt(ctx context.Context, supplierID uuid.UUID) (*SupplierDebtResponse, error) {
	supplier, err := s.repos.Suppliers().FindByID(ctx, supplierID)
	if err != nil {
		return nil, err
	}
	purchases, err := s.repos.Purchases().FindBySupplier(ctx, supplierID)
	if err != nil {
		return nil, err
	}
	pending := 0
	for i := range purchases {
		if purchases[i].Status == trade.StatusPending {
			pending++
		}
	}
	debt, err := trade.SupplierDebt(purchases)
	if err != nil {
		return nil, err
	}
	return &SupplierDebtResponse{
		SupplierID:       supplier.ID,
		SupplierName:     supplier.Name,
		Debt:             debt.Decimal(),
		PendingPurchases: pending,
	}, nil
}

// GetByID retrieves a purchase with its items
func (s *PurchaseService) GetByID(ctx context.Context, purchaseID uuid.UUID) (*PurchaseResponse, error) {
	purchase, err := s.repos.Purchases().FindByID(ctx, purchaseID)
	if err != nil {
		return nil, err
	}
	response := ToPurchaseResponse(purchase)
	return &response, nil
}

// List retrieves purchases with filtering and pagination
func (s *PurchaseService) List(ctx context.Context, filter PurchaseListFilter) ([]PurchaseResponse, int64, error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}

	domainFilter := shared.Filter{
		Page:     filter.Page,
		PageSize: filter.PageSize,
		OrderBy:  "purchase_date",
		OrderDir: "desc",
		Filters:  make(map[string]interface{}),
	}
	if filter.SupplierID != nil {
		domainFilter.Filters["supplier_id"] = *filter.SupplierID
	}
	if filter.Status != "" {
		domainFilter.Filters["status"] = filter.Status
	}

	purchases, err := s.repos.Purchases().FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.repos.Purchases().Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	return ToPurchaseResponses(purchases), total, nil
}
