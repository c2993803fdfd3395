package shared

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testAggregate struct {
	BaseAggregateRoot
}

func TestBaseAggregateRoot_PullDomainEvents(t *testing.T) {
	a := &testAggregate{BaseAggregateRoot: NewBaseAggregateRoot()}
	assert.Equal(t, 1, a.GetVersion())
	assert.Equal(t, a.GetCreatedAt(), a.GetUpdatedAt())

	a.AddDomainEvent(&BaseDomainEvent{ID: uuid.New(), Type: "StockChanged"})
	a.AddDomainEvent(&BaseDomainEvent{ID: uuid.New(), Type: "ProductPriceChanged"})
	require.Len(t, a.GetDomainEvents(), 2)

	pulled := a.PullDomainEvents()
	assert.Len(t, pulled, 2)
	assert.Equal(t, "StockChanged", pulled[0].EventType())
	assert.Empty(t, a.GetDomainEvents())
	assert.Empty(t, a.PullDomainEvents())
}

func TestBaseEntity_Touch(t *testing.T) {
	e := NewBaseEntity()
	created := e.CreatedAt
	time.Sleep(time.Millisecond)
	e.Touch()
	assert.True(t, e.UpdatedAt.After(created))
	assert.Equal(t, time.UTC, e.UpdatedAt.Location())
	assert.Equal(t, created, e.GetCreatedAt())
}

func TestNewBaseDomainEvent(t *testing.T) {
	id := uuid.New()
	e := NewBaseDomainEvent("OrderPaymentApplied", "Order", id)
	assert.NotEqual(t, uuid.Nil, e.EventID())
	assert.Equal(t, "OrderPaymentApplied", e.EventType())
	assert.Equal(t, id, e.AggregateID())
	assert.Equal(t, "Order", e.AggregateType())
	assert.False(t, e.OccurredAt().IsZero())
}
