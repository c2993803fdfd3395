package trade

import (
	"context"
	"errors"
	"fmt"

	"github.com/aquaflow/backend/internal/application/ledger"
	"github.com/aquaflow/backend/internal/domain/inventory"
	"github.com/aquaflow/backend/internal/domain/partner"
	"github.com/aquaflow/backend/internal/domain/shared"
	"github.com/aquaflow/backend/internal/domain/shared/strategy"
	"github.com/aquaflow/backend/internal/domain/shared/valueobject"
	"github.com/aquaflow/backend/internal/domain/trade"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// OrderService handles the order lifecycle: placement, status, payments
// and container returns
type OrderService struct {
	exec    *ledger.Executor
	repos   ledger.Repositories
	pricing strategy.PricingStrategySelector
	logger  *zap.Logger
}

// NewOrderService creates a new OrderService
func NewOrderService(exec *ledger.Executor, repos ledger.Repositories, pricing strategy.PricingStrategySelector, logger *zap.Logger) *OrderService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &OrderService{exec: exec, repos: repos, pricing: pricing, logger: logger}
}

func validateCreateOrder(req CreateOrderRequest) error {
	if req.CustomerID == nil && req.Customer == nil {
		return shared.NewValidationError("Either customer_id or customer contact is required")
	}
	if req.CustomerID == nil && req.Customer.Phone == "" {
		return shared.NewValidationError("Phone number is required")
	}
	if len(req.Items) == 0 {
		return shared.NewValidationError("Order must contain at least one item")
	}
	for i, item := range req.Items {
		if item.ProductID == uuid.Nil {
			return shared.NewValidationError(fmt.Sprintf("Item %d: product is required", i+1))
		}
		if item.Quantity < 1 {
			return shared.NewValidationError(fmt.Sprintf("Item %d: quantity must be at least 1", i+1))
		}
	}
	return nil
}

// Create places an order. Every line is checked against the loaded stock,
// with repeated lines for one product summed, before any stock is taken.
// The customer's debt grows by the priced total and its empty debt by the
// returnable quantity.
func (s *OrderService) Create(ctx context.Context, req CreateOrderRequest, meta ledger.Meta) (*OrderResponse, error) {
	if err := validateCreateOrder(req); err != nil {
		return nil, err
	}

	productIDs := make([]uuid.UUID, 0, len(req.Items))
	requested := make(map[uuid.UUID]int64, len(req.Items))
	for _, item := range req.Items {
		productIDs = append(productIDs, item.ProductID)
		requested[item.ProductID] += item.Quantity
	}
	productIDs = ledger.DistinctIDs(productIDs)

	lockKeys := ledger.ProductLockKeys(productIDs)
	if req.CustomerID != nil {
		lockKeys = append(lockKeys, ledger.CustomerLockKey(*req.CustomerID))
	}

	var order *trade.Order
	op := ledger.Operation{
		Name:           "order.create",
		IdempotencyKey: meta.IdempotencyKey,
		LockKeys:       lockKeys,
	}
	err := s.exec.Run(ctx, op, func(ctx context.Context, u *ledger.Unit) error {
		customer, err := s.resolveCustomer(ctx, u, req)
		if err != nil {
			return err
		}
		products, err := ledger.LoadProducts(ctx, u.Products(), productIDs)
		if err != nil {
			return err
		}
		for _, id := range productIDs {
			if p := products[id]; !p.HasStock(requested[id]) {
				return p.InsufficientStockError(requested[id])
			}
		}

		order = trade.NewOrder(customer, req.Note, meta.Actor)
		for _, item := range req.Items {
			if err := order.AddItem(products[item.ProductID], item.Quantity); err != nil {
				return err
			}
		}
		if err := s.price(ctx, order, customer); err != nil {
			return err
		}
		if err := order.Place(); err != nil {
			return err
		}

		source := inventory.DocumentSource(inventory.SourceTypeOrder, order.ID)
		note := fmt.Sprintf("Order #%s", order.ID)
		logs := make([]*inventory.MovementLog, 0, len(order.Items))
		for _, item := range order.Items {
			entry, err := inventory.ApplyMovement(products[item.ProductID], inventory.MovementTypeExport, item.Quantity, note, source, meta.Actor)
			if err != nil {
				return err
			}
			logs = append(logs, entry)
		}

		if err := customer.ChargeDebt(order.TotalAmount, order.ID); err != nil {
			return err
		}
		if err := customer.AddEmptyDebt(order.ReturnableOut); err != nil {
			return err
		}

		if err := u.Orders().Save(ctx, order); err != nil {
			return err
		}
		if err := ledger.SaveProducts(ctx, u, products, productIDs); err != nil {
			return err
		}
		if err := u.Movements().Append(ctx, logs...); err != nil {
			return err
		}
		if err := u.Customers().SaveWithLock(ctx, customer); err != nil {
			return err
		}
		u.Track(order, customer)
		return nil
	})
	if err != nil {
		s.logger.Warn("Order rejected", zap.Error(err))
		return nil, err
	}

	s.logger.Info("Order created",
		zap.String("order_id", order.ID.String()),
		zap.String("customer_id", order.CustomerID.String()),
		zap.String("total", order.TotalAmount.String()),
		zap.String("pricing_strategy", order.PricingStrategy))
	response := ToOrderResponse(order)
	return &response, nil
}

// resolveCustomer loads the customer by id, or for website orders finds it
// by phone and creates a retail customer on first contact
func (s *OrderService) resolveCustomer(ctx context.Context, u *ledger.Unit, req CreateOrderRequest) (*partner.Customer, error) {
	if req.CustomerID != nil {
		return u.Customers().FindByID(ctx, *req.CustomerID)
	}

	contact := req.Customer
	phone := partner.NormalizePhone(contact.Phone)
	customer, err := u.Customers().FindByPhone(ctx, phone)
	if err == nil {
		return customer, nil
	}
	if !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}
	if contact.Name == "" || contact.Address == "" {
		return nil, shared.NewValidationError("Name and address are required for new customers")
	}
	customer, err = partner.NewRetailCustomer(contact.Name, phone, contact.Address)
	if err != nil {
		return nil, err
	}
	if err := u.Customers().Save(ctx, customer); err != nil {
		return nil, err
	}
	u.Track(customer)
	s.logger.Info("Customer created from order contact", zap.String("customer_id", customer.ID.String()))
	return customer, nil
}

func (s *OrderService) price(ctx context.Context, order *trade.Order, customer *partner.Customer) error {
	if s.pricing == nil {
		return nil
	}
	classification := customer.Classification()
	pricingStrategy := s.pricing.ForClassification(classification)
	if pricingStrategy == nil {
		return nil
	}
	result, err := pricingStrategy.CalculatePrice(ctx, strategy.PricingContext{
		CustomerID:     customer.ID,
		Classification: classification,
		Lines:          order.PricingLines(),
	})
	if err != nil {
		return err
	}
	return order.ApplyPricing(result)
}

// UpdateStatus moves an order to a new status. Only pending orders can
// change; balances are never touched.
func (s *OrderService) UpdateStatus(ctx context.Context, orderID uuid.UUID, req UpdateStatusRequest, meta ledger.Meta) (*OrderResponse, error) {
	var order *trade.Order
	op := ledger.Operation{
		Name:           "order.update_status",
		IdempotencyKey: meta.IdempotencyKey,
		LockKeys:       []string{ledger.OrderLockKey(orderID)},
	}
	err := s.exec.Run(ctx, op, func(ctx context.Context, u *ledger.Unit) error {
		var err error
		order, err = u.Orders().FindByID(ctx, orderID)
		if err != nil {
			return err
		}
		if err := order.ChangeStatus(trade.Status(req.Status)); err != nil {
			return err
		}
		if err := u.Orders().SaveWithLock(ctx, order); err != nil {
			return err
		}
		u.Track(order)
		return nil
	})
	if err != nil {
		s.logger.Warn("Order status change rejected", zap.String("order_id", orderID.String()), zap.Error(err))
		return nil, err
	}

	s.logger.Info("Order status changed",
		zap.String("order_id", orderID.String()),
		zap.String("status", req.Status))
	response := ToOrderResponse(order)
	return &response, nil
}

// UpdateReturnable records containers brought back against an order and
// lowers the customer's empty debt by the same count
func (s *OrderService) UpdateReturnable(ctx context.Context, orderID uuid.UUID, req ReturnRequest, meta ledger.Meta) (*OrderResponse, error) {
	if req.Quantity < 1 {
		return nil, shared.NewValidationError("Returned quantity must be at least 1")
	}

	order, err := s.mutateWithCustomer(ctx, "order.update_returnable", orderID, meta,
		func(order *trade.Order, customer *partner.Customer) error {
			if err := order.ApplyReturn(req.Quantity); err != nil {
				return err
			}
			return customer.ReturnEmpties(req.Quantity)
		})
	if err != nil {
		s.logger.Warn("Container return rejected",
			zap.String("order_id", orderID.String()),
			zap.Int64("quantity", req.Quantity),
			zap.Error(err))
		return nil, err
	}

	s.logger.Info("Containers returned",
		zap.String("order_id", orderID.String()),
		zap.Int64("quantity", req.Quantity),
		zap.Int64("outstanding", order.OutstandingReturnables()))
	response := ToOrderResponse(order)
	return &response, nil
}

// UpdatePayment records money received against an order. Paying more than
// the total is accepted and leaves the order and customer in credit.
func (s *OrderService) UpdatePayment(ctx context.Context, orderID uuid.UUID, req PaymentRequest, meta ledger.Meta) (*OrderResponse, error) {
	amount, err := valueobject.NewMoneyFromDecimal(req.Amount)
	if err != nil {
		return nil, err
	}
	if !amount.IsPositive() {
		return nil, shared.NewValidationError("Payment amount must be positive")
	}

	order, err := s.mutateWithCustomer(ctx, "order.update_payment", orderID, meta,
		func(order *trade.Order, customer *partner.Customer) error {
			if err := order.ApplyPayment(amount); err != nil {
				return err
			}
			return customer.ApplyPayment(amount, order.ID)
		})
	if err != nil {
		s.logger.Warn("Order payment rejected", zap.String("order_id", orderID.String()), zap.Error(err))
		return nil, err
	}

	s.logger.Info("Order payment recorded",
		zap.String("order_id", orderID.String()),
		zap.String("amount", amount.String()),
		zap.String("debt_remaining", order.DebtRemaining().String()))
	response := ToOrderResponse(order)
	return &response, nil
}

// mutateWithCustomer loads an order and its customer, applies fn and saves
// both in one transaction
func (s *OrderService) mutateWithCustomer(ctx context.Context, name string, orderID uuid.UUID, meta ledger.Meta, fn func(*trade.Order, *partner.Customer) error) (*trade.Order, error) {
	lockKeys := []string{ledger.OrderLockKey(orderID)}
	if existing, err := s.repos.Orders().FindByID(ctx, orderID); err == nil {
		lockKeys = append(lockKeys, ledger.CustomerLockKey(existing.CustomerID))
	}

	var order *trade.Order
	op := ledger.Operation{Name: name, IdempotencyKey: meta.IdempotencyKey, LockKeys: lockKeys}
	err := s.exec.Run(ctx, op, func(ctx context.Context, u *ledger.Unit) error {
		var err error
		order, err = u.Orders().FindByID(ctx, orderID)
		if err != nil {
			return err
		}
		customer, err := u.Customers().FindByID(ctx, order.CustomerID)
		if err != nil {
			return err
		}
		if err := fn(order, customer); err != nil {
			return err
		}
		if err := u.Orders().SaveWithLock(ctx, order); err != nil {
			return err
		}
		if err := u.Customers().SaveWithLock(ctx, customer); err != nil {
			return err
		}
		u.Track(order, customer)
		return nil
	})
	return order, err
}

// GetByID retrieves an order with its items
func (s *OrderService) GetByID(ctx context.Context, orderID uuid.UUID) (*OrderResponse, error) {
	order, err := s.repos.Orders().FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	response := ToOrderResponse(order)
	return &response, nil
}

// List retrieves orders with filtering and pagination
func (s *OrderService) List(ctx context.Context, filter OrderListFilter) ([]OrderResponse, int64, error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}

	domainFilter := shared.Filter{
		Page:     filter.Page,
		PageSize: filter.PageSize,
		OrderBy:  "order_date",
		OrderDir: "desc",
		Filters:  make(map[string]interface{}),
	}
	if filter.CustomerID != nil {
		domainFilter.Filters["customer_id"] = *filter.CustomerID
	}
	if filter.Status != "" {
		domainFilter.Filters["status"] = filter.Status
	}

	orders, err := s.repos.Orders().FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.repos.Orders().Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	return ToOrderResponses(orders), total, nil
}
