package trade

import (
	"github.com/aquaflow/backend/internal/domain/shared"
	"github.com/aquaflow/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
)

// Event type constants
const (
	EventTypeOrderCreated        = "OrderCreated"
	EventTypeOrderStatusChanged  = "OrderStatusChanged"
	EventTypeOrderPaymentApplied = "OrderPaymentApplied"
	EventTypeOrderReturnApplied  = "OrderReturnApplied"
	EventTypePurchaseCreated     = "PurchaseCreated"
	EventTypePurchasePaid        = "PurchasePaid"
)

// OrderCreatedEvent is published when an order has been placed
type OrderCreatedEvent struct {
	shared.BaseDomainEvent
	OrderID       uuid.UUID         `json:"order_id"`
	CustomerID    uuid.UUID         `json:"customer_id"`
	TotalAmount   valueobject.Money `json:"total_amount"`
	ReturnableOut int64             `json:"returnable_out"`
	ItemCount     int               `json:"item_count"`
}

// NewOrderCreatedEvent creates a new OrderCreatedEvent
func NewOrderCreatedEvent(o *Order) *OrderCreatedEvent {
	return &OrderCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeOrderCreated, AggregateTypeOrder, o.ID),
		OrderID:         o.ID,
		CustomerID:      o.CustomerID,
		TotalAmount:     o.TotalAmount,
		ReturnableOut:   o.ReturnableOut,
		ItemCount:       len(o.Items),
	}
}

// OrderStatusChangedEvent is published on a status transition
type OrderStatusChangedEvent struct {
	shared.BaseDomainEvent
	OrderID    uuid.UUID `json:"order_id"`
	FromStatus Status    `json:"from_status"`
	ToStatus   Status    `json:"to_status"`
}

// NewOrderStatusChangedEvent creates a new OrderStatusChangedEvent
func NewOrderStatusChangedEvent(o *Order, from Status) *OrderStatusChangedEvent {
	return &OrderStatusChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeOrderStatusChanged, AggregateTypeOrder, o.ID),
		OrderID:         o.ID,
		FromStatus:      from,
		ToStatus:        o.Status,
	}
}

// OrderPaymentAppliedEvent is published when a payment is applied to an order
type OrderPaymentAppliedEvent struct {
	shared.BaseDomainEvent
	OrderID       uuid.UUID         `json:"order_id"`
	CustomerID    uuid.UUID         `json:"customer_id"`
	Amount        valueobject.Money `json:"amount"`
	DebtRemaining valueobject.Money `json:"debt_remaining"`
}

// NewOrderPaymentAppliedEvent creates a new OrderPaymentAppliedEvent
func NewOrderPaymentAppliedEvent(o *Order, amount valueobject.Money) *OrderPaymentAppliedEvent {
	return &OrderPaymentAppliedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeOrderPaymentApplied, AggregateTypeOrder, o.ID),
		OrderID:         o.ID,
		CustomerID:      o.CustomerID,
		Amount:          amount,
		DebtRemaining:   o.DebtRemaining(),
	}
}

// OrderReturnAppliedEvent is published when containers come back on an order
type OrderReturnAppliedEvent struct {
	shared.BaseDomainEvent
	OrderID      uuid.UUID `json:"order_id"`
	CustomerID   uuid.UUID `json:"customer_id"`
	Quantity     int64     `json:"quantity"`
	ReturnableIn int64     `json:"returnable_in"`
}

// NewOrderReturnAppliedEvent creates a new OrderReturnAppliedEvent
func NewOrderReturnAppliedEvent(o *Order, quantity int64) *OrderReturnAppliedEvent {
	return &OrderReturnAppliedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeOrderReturnApplied, AggregateTypeOrder, o.ID),
		OrderID:         o.ID,
		CustomerID:      o.CustomerID,
		Quantity:        quantity,
		ReturnableIn:    o.ReturnableIn,
	}
}

// PurchaseCreatedEvent is published when a purchase has been recorded
type PurchaseCreatedEvent struct {
	shared.BaseDomainEvent
	PurchaseID  uuid.UUID         `json:"purchase_id"`
	SupplierID  uuid.UUID         `json:"supplier_id"`
	TotalAmount valueobject.Money `json:"total_amount"`
}

// NewPurchaseCreatedEvent creates a new PurchaseCreatedEvent
func NewPurchaseCreatedEvent(p *Purchase) *PurchaseCreatedEvent {
	return &PurchaseCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypePurchaseCreated, AggregateTypePurchase, p.ID),
		PurchaseID:      p.ID,
		SupplierID:      p.SupplierID,
		TotalAmount:     p.TotalAmount,
	}
}

// PurchasePaidEvent is published when a payment is made against a purchase
type PurchasePaidEvent struct {
	shared.BaseDomainEvent
	PurchaseID    uuid.UUID         `json:"purchase_id"`
	SupplierID    uuid.UUID         `json:"supplier_id"`
	Amount        valueobject.Money `json:"amount"`
	DebtRemaining valueobject.Money `json:"debt_remaining"`
}

// NewPurchasePaidEvent creates a new PurchasePaidEvent
func NewPurchasePaidEvent(p *Purchase, amount valueobject.Money) *PurchasePaidEvent {
	return &PurchasePaidEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypePurchasePaid, AggregateTypePurchase, p.ID),
		PurchaseID:      p.ID,
		SupplierID:      p.SupplierID,
		Amount:          amount,
		DebtRemaining:   p.DebtRemaining(),
	}
}
