package partner

import (
	"github.com/aquaflow/backend/internal/domain/shared"
	"github.com/aquaflow/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
)

// Aggregate type constant
const AggregateTypeCustomer = "Customer"

// Event type constants
const (
	EventTypeCustomerCreated          = "CustomerCreated"
	EventTypeCustomerDebtChanged      = "CustomerDebtChanged"
	EventTypeCustomerEmptyDebtChanged = "CustomerEmptyDebtChanged"
)

// CustomerCreatedEvent is published when a new customer is created
type CustomerCreatedEvent struct {
	shared.BaseDomainEvent
	CustomerID  uuid.UUID    `json:"customer_id"`
	Name        string       `json:"name"`
	Phone       string       `json:"phone,omitempty"`
	Type        CustomerType `json:"type"`
	AgencyLevel int          `json:"agency_level,omitempty"`
}

// NewCustomerCreatedEvent creates a new CustomerCreatedEvent
func NewCustomerCreatedEvent(c *Customer) *CustomerCreatedEvent {
	return &CustomerCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeCustomerCreated, AggregateTypeCustomer, c.ID),
		CustomerID:      c.ID,
		Name:            c.Name,
		Phone:           c.Phone,
		Type:            c.Type,
		AgencyLevel:     c.AgencyLevel,
	}
}

// CustomerDebtChangedEvent is published when money owed by a customer changes
type CustomerDebtChangedEvent struct {
	shared.BaseDomainEvent
	CustomerID uuid.UUID         `json:"customer_id"`
	DebtBefore valueobject.Money `json:"debt_before"`
	DebtAfter  valueobject.Money `json:"debt_after"`
	SourceID   uuid.UUID         `json:"source_id"`
	SourceType string            `json:"source_type"`
}

// NewCustomerDebtChangedEvent creates a new CustomerDebtChangedEvent
func NewCustomerDebtChangedEvent(c *Customer, before valueobject.Money, sourceID uuid.UUID, sourceType string) *CustomerDebtChangedEvent {
	return &CustomerDebtChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeCustomerDebtChanged, AggregateTypeCustomer, c.ID),
		CustomerID:      c.ID,
		DebtBefore:      before,
		DebtAfter:       c.Debt,
		SourceID:        sourceID,
		SourceType:      sourceType,
	}
}

// CustomerEmptyDebtChangedEvent is published when outstanding containers change
type CustomerEmptyDebtChangedEvent struct {
	shared.BaseDomainEvent
	CustomerID      uuid.UUID `json:"customer_id"`
	EmptyDebtBefore int64     `json:"empty_debt_before"`
	EmptyDebtAfter  int64     `json:"empty_debt_after"`
}

// NewCustomerEmptyDebtChangedEvent creates a new CustomerEmptyDebtChangedEvent
func NewCustomerEmptyDebtChangedEvent(c *Customer, before int64) *CustomerEmptyDebtChangedEvent {
	return &CustomerEmptyDebtChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeCustomerEmptyDebtChanged, AggregateTypeCustomer, c.ID),
		CustomerID:      c.ID,
		EmptyDebtBefore: before,
		EmptyDebtAfter:  c.EmptyDebt,
	}
}
