package finance

import (
	"context"

	"github.com/aquaflow/backend/internal/application/ledger"
	"github.com/aquaflow/backend/internal/domain/finance"
	"github.com/aquaflow/backend/internal/domain/partner"
	"github.com/aquaflow/backend/internal/domain/shared"
	"github.com/aquaflow/backend/internal/domain/shared/valueobject"
	"github.com/aquaflow/backend/internal/domain/trade"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ReconciliationService records customer payments and container returns
// that are not tied to a single order update, keeping the customer's
// balances and (optionally) one order in step with the record.
type ReconciliationService struct {
	exec   *ledger.Executor
	repos  ledger.Repositories
	logger *zap.Logger
}

// NewReconciliationService creates a new ReconciliationService
func NewReconciliationService(exec *ledger.Executor, repos ledger.Repositories, logger *zap.Logger) *ReconciliationService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ReconciliationService{exec: exec, repos: repos, logger: logger}
}

// RecordTransaction appends a payment record and lowers the customer's
// debt. When an order is given its paid amount rises by the same amount.
func (s *ReconciliationService) RecordTransaction(ctx context.Context, req RecordTransactionRequest, meta ledger.Meta) (*TransactionResponse, error) {
	amount, err := valueobject.NewMoneyFromDecimal(req.Amount)
	if err != nil {
		return nil, err
	}
	if !amount.IsPositive() {
		return nil, shared.NewValidationError("Payment amount must be positive")
	}

	var (
		record   *finance.PaymentTransaction
		customer *partner.Customer
	)
	op := ledger.Operation{
		Name:           "finance.record_transaction",
		IdempotencyKey: meta.IdempotencyKey,
		LockKeys:       lockKeys(req.CustomerID, req.OrderID),
	}
	err = s.exec.Run(ctx, op, func(ctx context.Context, u *ledger.Unit) error {
		var err error
		record, err = finance.NewPaymentTransaction(req.CustomerID, req.OrderID, amount,
			finance.PaymentMethod(req.Method), req.Note, meta.Actor)
		if err != nil {
			return err
		}
		customer, err = u.Customers().FindByID(ctx, req.CustomerID)
		if err != nil {
			return err
		}
		order, err := loadCustomerOrder(ctx, u, req.OrderID, customer.ID)
		if err != nil {
			return err
		}

		if order != nil {
			if err := order.ApplyPayment(amount); err != nil {
				return err
			}
		}
		if err := customer.ApplyPayment(amount, record.ID); err != nil {
			return err
		}

		if err := u.Payments().Save(ctx, record); err != nil {
			return err
		}
		if order != nil {
			if err := u.Orders().SaveWithLock(ctx, order); err != nil {
				return err
			}
			u.Track(order)
		}
		if err := u.Customers().SaveWithLock(ctx, customer); err != nil {
			return err
		}
		u.Track(customer)
		return nil
	})
	if err != nil {
		s.logger.Warn("Payment transaction rejected",
			zap.String("customer_id", req.CustomerID.String()),
			zap.Error(err))
		return nil, err
	}

	s.logger.Info("Payment transaction recorded",
		zap.String("transaction_id", record.ID.String()),
		zap.String("customer_id", customer.ID.String()),
		zap.String("amount", amount.String()),
		zap.String("method", string(record.Method)))
	response := ToTransactionResponse(record)
	response.CustomerDebt = customer.Debt.Decimal()
	return &response, nil
}

// RecordEmptyReturn appends a container record. Delivered containers add to
// the customer's empty debt and returned ones come off it; the balance may
// not go below zero. When an order is given the returned count also counts
// against that order's outstanding containers.
func (s *ReconciliationService) RecordEmptyReturn(ctx context.Context, req RecordEmptyReturnRequest, meta ledger.Meta) (*EmptyReturnResponse, error) {
	var (
		record   *finance.EmptyReturn
		customer *partner.Customer
	)
	op := ledger.Operation{
		Name:           "finance.record_empty_return",
		IdempotencyKey: meta.IdempotencyKey,
		LockKeys:       lockKeys(req.CustomerID, req.OrderID),
	}
	err := s.exec.Run(ctx, op, func(ctx context.Context, u *ledger.Unit) error {
		var err error
		record, err = finance.NewEmptyReturn(req.CustomerID, req.OrderID, req.Delivered, req.Returned, req.Note, meta.Actor)
		if err != nil {
			return err
		}
		customer, err = u.Customers().FindByID(ctx, req.CustomerID)
		if err != nil {
			return err
		}
		order, err := loadCustomerOrder(ctx, u, req.OrderID, customer.ID)
		if err != nil {
			return err
		}

		if order != nil && record.Returned > 0 {
			if err := order.ApplyReturn(record.Returned); err != nil {
				return err
			}
		}
		if err := customer.AddEmptyDebt(record.Delivered); err != nil {
			return err
		}
		if err := customer.ReturnEmpties(record.Returned); err != nil {
			return err
		}

		if err := u.EmptyReturns().Save(ctx, record); err != nil {
			return err
		}
		if order != nil && record.Returned > 0 {
			if err := u.Orders().SaveWithLock(ctx, order); err != nil {
				return err
			}
			u.Track(order)
		}
		if err := u.Customers().SaveWithLock(ctx, customer); err != nil {
			return err
		}
		u.Track(customer)
		return nil
	})
	if err != nil {
		s.logger.Warn("Empty return rejected",
			zap.String("customer_id", req.CustomerID.String()),
			zap.Int64("delivered", req.Delivered),
			zap.Int64("returned", req.Returned),
			zap.Error(err))
		return nil, err
	}

	s.logger.Info("Empty return recorded",
		zap.String("empty_return_id", record.ID.String()),
		zap.String("customer_id", customer.ID.String()),
		zap.Int64("net_change", record.NetChange()),
		zap.Int64("empty_debt", customer.EmptyDebt))
	response := ToEmptyReturnResponse(record)
	response.CustomerEmptyDebt = customer.EmptyDebt
	return &response, nil
}

// ListTransactions returns a customer's payment records, newest first
func (s *ReconciliationService) ListTransactions(ctx context.Context, customerID uuid.UUID, filter HistoryFilter) (shared.Paginated[TransactionResponse], error) {
	page, pageSize := pageOf(filter)
	if _, err := s.repos.Customers().FindByID(ctx, customerID); err != nil {
		return shared.Paginated[TransactionResponse]{}, err
	}
	records, err := s.repos.Payments().FindByCustomer(ctx, customerID, shared.Filter{Page: page, PageSize: pageSize})
	if err != nil {
		return shared.Paginated[TransactionResponse]{}, err
	}
	total, err := s.repos.Payments().CountByCustomer(ctx, customerID)
	if err != nil {
		return shared.Paginated[TransactionResponse]{}, err
	}
	items := make([]TransactionResponse, len(records))
	for i := range records {
		items[i] = ToTransactionResponse(&records[i])
	}
	return shared.NewPaginated(items, total, page, pageSize), nil
}

// ListEmptyReturns returns a customer's container records, newest first
func (s *ReconciliationService) ListEmptyReturns(ctx context.Context, customerID uuid.UUID, filter HistoryFilter) (shared.Paginated[EmptyReturnResponse], error) {
	page, pageSize := pageOf(filter)
	if _, err := s.repos.Customers().FindByID(ctx, customerID); err != nil {
		return shared.Paginated[EmptyReturnResponse]{}, err
	}
	records, err := s.repos.EmptyReturns().FindByCustomer(ctx, customerID, shared.Filter{Page: page, PageSize: pageSize})
	if err != nil {
		return shared.Paginated[EmptyReturnResponse]{}, err
	}
	total, err := s.repos.EmptyReturns().CountByCustomer(ctx, customerID)
	if err != nil {
		return shared.Paginated[EmptyReturnResponse]{}, err
	}
	items := make([]EmptyReturnResponse, len(records))
	for i := range records {
		items[i] = ToEmptyReturnResponse(&records[i])
	}
	return shared.NewPaginated(items, total, page, pageSize), nil
}

func pageOf(filter HistoryFilter) (int, int) {
	page, pageSize := filter.Page, filter.PageSize
	if page <= 0 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = 20
	}
	return page, pageSize
}

func lockKeys(customerID uuid.UUID, orderID *uuid.UUID) []string {
	keys := []string{ledger.CustomerLockKey(customerID)}
	if orderID != nil {
		keys = append(keys, ledger.OrderLockKey(*orderID))
	}
	return keys
}

// loadCustomerOrder loads the optional order and checks it belongs to the
// customer
func loadCustomerOrder(ctx context.Context, u *ledger.Unit, orderID *uuid.UUID, customerID uuid.UUID) (*trade.Order, error) {
	if orderID == nil {
		return nil, nil
	}
	order, err := u.Orders().FindByID(ctx, *orderID)
	if err != nil {
		return nil, err
	}
	if order.CustomerID != customerID {
		return nil, shared.NewDomainErrorWithDetails(shared.CodeValidation,
			"Order does not belong to the customer",
			map[string]any{
				"orderId":    order.ID.String(),
				"customerId": customerID.String(),
			})
	}
	return order, nil
}
