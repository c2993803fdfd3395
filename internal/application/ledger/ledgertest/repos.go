package ledgertest

import (
	"context"
	"slices"
	"sort"
	"strings"
	"time"

	"github.com/aquaflow/backend/internal/domain/catalog"
	"github.com/aquaflow/backend/internal/domain/finance"
	"github.com/aquaflow/backend/internal/domain/inventory"
	"github.com/aquaflow/backend/internal/domain/partner"
	"github.com/aquaflow/backend/internal/domain/shared"
	"github.com/aquaflow/backend/internal/domain/trade"
	"github.com/google/uuid"
)

func matches(search, name string) bool {
	return search == "" || strings.Contains(strings.ToLower(name), strings.ToLower(search))
}

type productRepo struct{ t *tx }

func (r productRepo) FindByID(_ context.Context, id uuid.UUID) (*catalog.Product, error) {
	r.t.store.mu.Lock()
	defer r.t.store.mu.Unlock()
	return r.t.products.find(id)
}

func (r productRepo) FindByIDs(_ context.Context, ids []uuid.UUID) ([]catalog.Product, error) {
	r.t.store.mu.Lock()
	defer r.t.store.mu.Unlock()
	out := make([]catalog.Product, 0, len(ids))
	for _, id := range ids {
		if p, ok := r.t.products.get(id); ok {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r productRepo) list(filter shared.Filter) []catalog.Product {
	r.t.store.mu.Lock()
	defer r.t.store.mu.Unlock()
	var out []catalog.Product
	for _, p := range r.t.products.all() {
		if matches(filter.Search, p.Name) {
			out = append(out, p)
		}
	}
	return out
}

func (r productRepo) FindAll(_ context.Context, filter shared.Filter) ([]catalog.Product, error) {
	return paginate(r.list(filter), filter), nil
}

func (r productRepo) Count(_ context.Context, filter shared.Filter) (int64, error) {
	return int64(len(r.list(filter))), nil
}

func (r productRepo) Save(_ context.Context, p *catalog.Product) error {
	r.t.store.mu.Lock()
	defer r.t.store.mu.Unlock()
	if err := r.t.products.insert(*p); err != nil {
		return err
	}
	return r.t.written()
}

func (r productRepo) SaveWithLock(_ context.Context, p *catalog.Product) error {
	r.t.store.mu.Lock()
	defer r.t.store.mu.Unlock()
	if err := r.t.products.update(p); err != nil {
		return err
	}
	return r.t.written()
}

func (r productRepo) Delete(_ context.Context, p *catalog.Product) error {
	r.t.store.mu.Lock()
	defer r.t.store.mu.Unlock()
	current, err := r.t.products.find(p.ID)
	if err != nil {
		return err
	}
	if current.Version != p.Version {
		return shared.ErrConcurrencyConflict
	}
	if err := r.t.products.remove(p.ID); err != nil {
		return err
	}
	return r.t.written()
}

type customerRepo struct{ t *tx }

func (r customerRepo) FindByID(_ context.Context, id uuid.UUID) (*partner.Customer, error) {
	r.t.store.mu.Lock()
	defer r.t.store.mu.Unlock()
	return r.t.customers.find(id)
}

func (r customerRepo) FindByPhone(_ context.Context, phone string) (*partner.Customer, error) {
	r.t.store.mu.Lock()
	defer r.t.store.mu.Unlock()
	for _, c := range r.t.customers.all() {
		if c.Phone == phone {
			return &c, nil
		}
	}
	return nil, shared.NewNotFoundError("Customer", phone)
}

func (r customerRepo) list(filter shared.Filter) []partner.Customer {
	r.t.store.mu.Lock()
	defer r.t.store.mu.Unlock()
	var out []partner.Customer
	for _, c := range r.t.customers.all() {
		if customerType, ok := filter.Filters["type"]; ok && string(c.Type) != customerType {
			continue
		}
		if matches(filter.Search, c.Name) || matches(filter.Search, c.Phone) {
			out = append(out, c)
		}
	}
	return out
}

func (r customerRepo) FindAll(_ context.Context, filter shared.Filter) ([]partner.Customer, error) {
	return paginate(r.list(filter), filter), nil
}

func (r customerRepo) FindWithDebt(_ context.Context) ([]partner.Customer, error) {
	var out []partner.Customer
	for _, c := range r.list(shared.Filter{}) {
		if c.Debt > 0 {
			out = append(out, c)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Debt > out[j].Debt })
	return out, nil
}

func (r customerRepo) Count(_ context.Context, filter shared.Filter) (int64, error) {
	return int64(len(r.list(filter))), nil
}

func (r customerRepo) Save(_ context.Context, c *partner.Customer) error {
	r.t.store.mu.Lock()
	defer r.t.store.mu.Unlock()
	if err := r.t.customers.insert(*c); err != nil {
		return err
	}
	return r.t.written()
}

func (r customerRepo) SaveWithLock(_ context.Context, c *partner.Customer) error {
	r.t.store.mu.Lock()
	defer r.t.store.mu.Unlock()
	if err := r.t.customers.update(c); err != nil {
		return err
	}
	return r.t.written()
}

type supplierRepo struct{ t *tx }

func (r supplierRepo) FindByID(_ context.Context, id uuid.UUID) (*partner.Supplier, error) {
	r.t.store.mu.Lock()
	defer r.t.store.mu.Unlock()
	return r.t.suppliers.find(id)
}

func (r supplierRepo) list(filter shared.Filter) []partner.Supplier {
	r.t.store.mu.Lock()
	defer r.t.store.mu.Unlock()
	var out []partner.Supplier
	for _, s := range r.t.suppliers.all() {
		if matches(filter.Search, s.Name) {
			out = append(out, s)
		}
	}
	return out
}

func (r supplierRepo) FindAll(_ context.Context, filter shared.Filter) ([]partner.Supplier, error) {
	return paginate(r.list(filter), filter), nil
}

func (r supplierRepo) Count(_ context.Context, filter shared.Filter) (int64, error) {
	return int64(len(r.list(filter))), nil
}

func (r supplierRepo) Save(_ context.Context, s *partner.Supplier) error {
	r.t.store.mu.Lock()
	defer r.t.store.mu.Unlock()
	if err := r.t.suppliers.insert(*s); err != nil {
		return err
	}
	return r.t.written()
}

func (r supplierRepo) SaveWithLock(_ context.Context, s *partner.Supplier) error {
	r.t.store.mu.Lock()
	defer r.t.store.mu.Unlock()
	if err := r.t.suppliers.update(s); err != nil {
		return err
	}
	return r.t.written()
}

type orderRepo struct{ t *tx }

func (r orderRepo) FindByID(_ context.Context, id uuid.UUID) (*trade.Order, error) {
	r.t.store.mu.Lock()
	defer r.t.store.mu.Unlock()
	return r.t.orders.find(id)
}

func (r orderRepo) list(keep func(trade.Order) bool) []trade.Order {
	r.t.store.mu.Lock()
	defer r.t.store.mu.Unlock()
	var out []trade.Order
	for _, o := range r.t.orders.all() {
		if keep(o) {
			out = append(out, o)
		}
	}
	return out
}

func orderFilter(filter shared.Filter) func(trade.Order) bool {
	return func(o trade.Order) bool {
		if status, ok := filter.Filters["status"]; ok && string(o.Status) != status {
			return false
		}
		if customerID, ok := filter.Filters["customer_id"]; ok && o.CustomerID != customerID {
			return false
		}
		return true
	}
}

func (r orderRepo) FindAll(_ context.Context, filter shared.Filter) ([]trade.Order, error) {
	return paginate(r.list(orderFilter(filter)), filter), nil
}

func (r orderRepo) Count(_ context.Context, filter shared.Filter) (int64, error) {
	return int64(len(r.list(orderFilter(filter)))), nil
}

func (r orderRepo) FindByCustomer(_ context.Context, customerID uuid.UUID, filter shared.Filter) ([]trade.Order, error) {
	out := r.list(func(o trade.Order) bool { return o.CustomerID == customerID })
	return paginate(out, filter), nil
}

func (r orderRepo) FindByStatusBetween(_ context.Context, status trade.Status, from, to time.Time) ([]trade.Order, error) {
	return r.list(func(o trade.Order) bool {
		return o.Status == status && !o.OrderDate.Before(from) && !o.OrderDate.After(to)
	}), nil
}

func (r orderRepo) FindBetween(_ context.Context, from, to time.Time) ([]trade.Order, error) {
	return r.list(func(o trade.Order) bool {
		return !o.OrderDate.Before(from) && !o.OrderDate.After(to)
	}), nil
}

func (r orderRepo) StatsByCustomer(_ context.Context, customerIDs []uuid.UUID) (map[uuid.UUID]trade.CustomerOrderStats, error) {
	wanted := make(map[uuid.UUID]bool, len(customerIDs))
	for _, id := range customerIDs {
		wanted[id] = true
	}
	return trade.SummarizeOrders(r.list(func(o trade.Order) bool { return wanted[o.CustomerID] })), nil
}

func (r orderRepo) FindRecent(_ context.Context, limit int) ([]trade.Order, error) {
	out := r.list(func(trade.Order) bool { return true })
	sort.SliceStable(out, func(i, j int) bool { return out[i].OrderDate.After(out[j].OrderDate) })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r orderRepo) Revenue(_ context.Context, q trade.SalesQuery) (trade.RevenueTotal, error) {
	return trade.SummarizeRevenue(r.list(func(trade.Order) bool { return true }), q), nil
}

func (r orderRepo) SalesByProduct(_ context.Context, q trade.SalesQuery) ([]trade.ProductSalesTotal, error) {
	return trade.SummarizeProductSales(r.list(func(trade.Order) bool { return true }), q), nil
}

func (r orderRepo) Save(_ context.Context, o *trade.Order) error {
	r.t.store.mu.Lock()
	defer r.t.store.mu.Unlock()
	if err := r.t.orders.insert(*o); err != nil {
		return err
	}
	return r.t.written()
}

func (r orderRepo) SaveWithLock(_ context.Context, o *trade.Order) error {
	r.t.store.mu.Lock()
	defer r.t.store.mu.Unlock()
	if err := r.t.orders.update(o); err != nil {
		return err
	}
	return r.t.written()
}

type purchaseRepo struct{ t *tx }

func (r purchaseRepo) FindByID(_ context.Context, id uuid.UUID) (*trade.Purchase, error) {
	r.t.store.mu.Lock()
	defer r.t.store.mu.Unlock()
	return r.t.purchases.find(id)
}

func (r purchaseRepo) list(keep func(trade.Purchase) bool) []trade.Purchase {
	r.t.store.mu.Lock()
	defer r.t.store.mu.Unlock()
	var out []trade.Purchase
	for _, p := range r.t.purchases.all() {
		if keep(p) {
			out = append(out, p)
		}
	}
	return out
}

func purchaseFilter(filter shared.Filter) func(trade.Purchase) bool {
	return func(p trade.Purchase) bool {
		if status, ok := filter.Filters["status"]; ok && string(p.Status) != status {
			return false
		}
		if supplierID, ok := filter.Filters["supplier_id"]; ok && p.SupplierID != supplierID {
			return false
		}
		return true
	}
}

func (r purchaseRepo) FindAll(_ context.Context, filter shared.Filter) ([]trade.Purchase, error) {
	return paginate(r.list(purchaseFilter(filter)), filter), nil
}

func (r purchaseRepo) Count(_ context.Context, filter shared.Filter) (int64, error) {
	return int64(len(r.list(purchaseFilter(filter)))), nil
}

func (r purchaseRepo) FindBySupplier(_ context.Context, supplierID uuid.UUID) ([]trade.Purchase, error) {
	return r.list(func(p trade.Purchase) bool { return p.SupplierID == supplierID }), nil
}

func (r purchaseRepo) FindOutstanding(_ context.Context, from, to *time.Time) ([]trade.Purchase, error) {
	return r.list(func(p trade.Purchase) bool {
		if p.Status == trade.StatusCanceled || p.DebtRemaining() <= 0 {
			return false
		}
		if from != nil && p.PurchaseDate.Before(*from) {
			return false
		}
		if to != nil && p.PurchaseDate.After(*to) {
			return false
		}
		return true
	}), nil
}

func (r purchaseRepo) StatsBySupplier(_ context.Context) (map[uuid.UUID]trade.SupplierPurchaseStats, error) {
	return trade.SummarizePurchases(r.list(func(trade.Purchase) bool { return true })), nil
}

func (r purchaseRepo) Save(_ context.Context, p *trade.Purchase) error {
	r.t.store.mu.Lock()
	defer r.t.store.mu.Unlock()
	if err := r.t.purchases.insert(*p); err != nil {
		return err
	}
	return r.t.written()
}

func (r purchaseRepo) SaveWithLock(_ context.Context, p *trade.Purchase) error {
	r.t.store.mu.Lock()
	defer r.t.store.mu.Unlock()
	if err := r.t.purchases.update(p); err != nil {
		return err
	}
	return r.t.written()
}

type importRepo struct{ t *tx }

func (r importRepo) FindByID(_ context.Context, id uuid.UUID) (*inventory.Import, error) {
	r.t.store.mu.Lock()
	defer r.t.store.mu.Unlock()
	return r.t.imports.find(id)
}

func (r importRepo) FindAll(_ context.Context, filter shared.Filter) ([]inventory.Import, error) {
	r.t.store.mu.Lock()
	defer r.t.store.mu.Unlock()
	return paginate(r.t.imports.all(), filter), nil
}

func (r importRepo) Count(_ context.Context, _ shared.Filter) (int64, error) {
	r.t.store.mu.Lock()
	defer r.t.store.mu.Unlock()
	return int64(len(r.t.imports.all())), nil
}

func (r importRepo) Save(_ context.Context, imp *inventory.Import) error {
	r.t.store.mu.Lock()
	defer r.t.store.mu.Unlock()
	if err := r.t.imports.insert(*imp); err != nil {
		return err
	}
	return r.t.written()
}

func (r importRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.t.store.mu.Lock()
	defer r.t.store.mu.Unlock()
	if err := r.t.imports.remove(id); err != nil {
		return err
	}
	return r.t.written()
}

type movementRepo struct{ t *tx }

// visible must be called with the store lock held
func (r movementRepo) visible() []inventory.MovementLog {
	out := make([]inventory.MovementLog, 0, len(r.t.store.movements)+len(r.t.movements))
	out = append(out, r.t.store.movements...)
	out = append(out, r.t.movements...)
	slices.Reverse(out)
	return out
}

func (r movementRepo) Append(_ context.Context, logs ...*inventory.MovementLog) error {
	r.t.store.mu.Lock()
	defer r.t.store.mu.Unlock()
	for _, l := range logs {
		r.t.movements = append(r.t.movements, *l)
	}
	return r.t.written()
}

func (r movementRepo) FindByProduct(_ context.Context, productID uuid.UUID, filter shared.Filter) ([]inventory.MovementLog, error) {
	r.t.store.mu.Lock()
	defer r.t.store.mu.Unlock()
	var out []inventory.MovementLog
	for _, l := range r.visible() {
		if l.ProductID == productID {
			out = append(out, l)
		}
	}
	return paginate(out, filter), nil
}

func (r movementRepo) CountByProduct(ctx context.Context, productID uuid.UUID) (int64, error) {
	all, err := r.FindByProduct(ctx, productID, shared.Filter{})
	return int64(len(all)), err
}

func (r movementRepo) FindBetween(_ context.Context, from, to time.Time) ([]inventory.MovementLog, error) {
	r.t.store.mu.Lock()
	defer r.t.store.mu.Unlock()
	var out []inventory.MovementLog
	for _, l := range r.visible() {
		if !l.CreatedAt.Before(from) && !l.CreatedAt.After(to) {
			out = append(out, l)
		}
	}
	return out, nil
}

func (r movementRepo) SumByProduct(_ context.Context) ([]inventory.MovementTotals, error) {
	r.t.store.mu.Lock()
	defer r.t.store.mu.Unlock()
	byProduct := make(map[uuid.UUID]*inventory.MovementTotals)
	var order []uuid.UUID
	for _, l := range r.visible() {
		t, ok := byProduct[l.ProductID]
		if !ok {
			t = &inventory.MovementTotals{ProductID: l.ProductID}
			byProduct[l.ProductID] = t
			order = append(order, l.ProductID)
		}
		t.Add(l.Type, l.Quantity)
	}
	out := make([]inventory.MovementTotals, 0, len(order))
	for _, id := range order {
		out = append(out, *byProduct[id])
	}
	return out, nil
}

type paymentRepo struct{ t *tx }

func (r paymentRepo) Save(_ context.Context, p *finance.PaymentTransaction) error {
	r.t.store.mu.Lock()
	defer r.t.store.mu.Unlock()
	r.t.payments = append(r.t.payments, *p)
	return r.t.written()
}

func (r paymentRepo) FindByCustomer(_ context.Context, customerID uuid.UUID, filter shared.Filter) ([]finance.PaymentTransaction, error) {
	r.t.store.mu.Lock()
	defer r.t.store.mu.Unlock()
	var out []finance.PaymentTransaction
	for _, p := range slices.Concat(r.t.store.payments, r.t.payments) {
		if p.CustomerID == customerID {
			out = append(out, p)
		}
	}
	slices.Reverse(out)
	return paginate(out, filter), nil
}

func (r paymentRepo) CountByCustomer(ctx context.Context, customerID uuid.UUID) (int64, error) {
	all, err := r.FindByCustomer(ctx, customerID, shared.Filter{})
	return int64(len(all)), err
}

type emptyReturnRepo struct{ t *tx }

func (r emptyReturnRepo) Save(_ context.Context, e *finance.EmptyReturn) error {
	r.t.store.mu.Lock()
	defer r.t.store.mu.Unlock()
	r.t.emptyReturns = append(r.t.emptyReturns, *e)
	return r.t.written()
}

func (r emptyReturnRepo) FindByCustomer(_ context.Context, customerID uuid.UUID, filter shared.Filter) ([]finance.EmptyReturn, error) {
	r.t.store.mu.Lock()
	defer r.t.store.mu.Unlock()
	var out []finance.EmptyReturn
	for _, e := range slices.Concat(r.t.store.emptyReturns, r.t.emptyReturns) {
		if e.CustomerID == customerID {
			out = append(out, e)
		}
	}
	slices.Reverse(out)
	return paginate(out, filter), nil
}

func (r emptyReturnRepo) CountByCustomer(ctx context.Context, customerID uuid.UUID) (int64, error) {
	all, err := r.FindByCustomer(ctx, customerID, shared.Filter{})
	return int64(len(all)), err
}
