package catalog

import (
	"errors"
	"math"
	"testing"

	"github.com/aquaflow/backend/internal/domain/shared"
	"github.com/aquaflow/backend/internal/domain/shared/valueobject"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestProduct(t *testing.T, stock int64) *Product {
	t.Helper()
	p, err := NewProduct("Bình 20L", "bình", valueobject.Money(1000), true)
	require.NoError(t, err)
	if stock > 0 {
		require.NoError(t, p.IncreaseStock(stock))
	}
	p.ClearDomainEvents()
	return p
}

func TestNewProduct(t *testing.T) {
	t.Run("creates product with valid inputs", func(t *testing.T) {
		p, err := NewProduct("  Bình   20L ", "bình", valueobject.Money(1000), true)
		require.NoError(t, err)

		assert.Equal(t, "Bình 20L", p.Name)
		assert.Equal(t, valueobject.Money(1000), p.Price)
		assert.True(t, p.Returnable)
		assert.Equal(t, int64(0), p.Stock)
		assert.Equal(t, 1, p.GetVersion())

		events := p.GetDomainEvents()
		require.Len(t, events, 1)
		assert.Equal(t, EventTypeProductCreated, events[0].EventType())
	})

	t.Run("fails with empty name", func(t *testing.T) {
		_, err := NewProduct("   ", "bình", 1000, false)
		require.Error(t, err)
		assert.True(t, errors.Is(err, shared.ErrValidation))
	})

	t.Run("fails with negative price", func(t *testing.T) {
		_, err := NewProduct("Ly 500ml", "ly", -1, false)
		require.Error(t, err)
	})

	t.Run("allows zero price", func(t *testing.T) {
		p, err := NewProduct("Ly 500ml", "ly", 0, false)
		require.NoError(t, err)
		assert.True(t, errors.Is(p.CanSell(), shared.ErrInvalidPrice))
	})
}

func TestProduct_DecreaseStock(t *testing.T) {
	t.Run("decreases when stock is sufficient", func(t *testing.T) {
		p := newTestProduct(t, 10)

		require.NoError(t, p.DecreaseStock(3))

		assert.Equal(t, int64(7), p.Stock)
		events := p.GetDomainEvents()
		require.Len(t, events, 1)
		stockEvent, ok := events[0].(*StockChangedEvent)
		require.True(t, ok)
		assert.Equal(t, int64(-3), stockEvent.Delta())
	})

	t.Run("takes the last unit", func(t *testing.T) {
		p := newTestProduct(t, 1)
		require.NoError(t, p.DecreaseStock(1))
		assert.Equal(t, int64(0), p.Stock)
	})

	t.Run("rejects overdraw and leaves stock unchanged", func(t *testing.T) {
		p := newTestProduct(t, 10)

		err := p.DecreaseStock(12)

		require.Error(t, err)
		assert.True(t, errors.Is(err, shared.ErrInsufficientStock))
		de, ok := shared.AsDomainError(err)
		require.True(t, ok)
		assert.Equal(t, int64(12), de.Details["requestedQuantity"])
		assert.Equal(t, int64(10), de.Details["availableStock"])
		assert.Equal(t, int64(10), p.Stock)
		assert.Empty(t, p.GetDomainEvents())
	})

	t.Run("rejects non-positive quantity", func(t *testing.T) {
		p := newTestProduct(t, 10)
		assert.True(t, errors.Is(p.DecreaseStock(0), shared.ErrValidation))
	})
}

func TestProduct_IncreaseStock(t *testing.T) {
	p := newTestProduct(t, 0)
	require.NoError(t, p.IncreaseStock(5))
	assert.Equal(t, int64(5), p.Stock)
	assert.Error(t, p.IncreaseStock(-1))

	t.Run("overflow leaves stock unchanged", func(t *testing.T) {
		full := newTestProduct(t, 0)
		full.Stock = math.MaxInt64 - 2
		err := full.IncreaseStock(3)
		require.Error(t, err)
		assert.True(t, errors.Is(err, shared.ErrValidation))
		assert.Equal(t, int64(math.MaxInt64-2), full.Stock)
		assert.Empty(t, full.GetDomainEvents())
	})
}

func TestProduct_UpdatePrice(t *testing.T) {
	p := newTestProduct(t, 0)

	require.NoError(t, p.UpdatePrice(1500))
	assert.Equal(t, valueobject.Money(1500), p.Price)

	events := p.GetDomainEvents()
	require.Len(t, events, 1)
	changed, ok := events[0].(*ProductPriceChangedEvent)
	require.True(t, ok)
	assert.Equal(t, valueobject.Money(1000), changed.OldPrice)

	assert.Error(t, p.UpdatePrice(-5))
}

func TestProduct_UpdateDetails(t *testing.T) {
	p := newTestProduct(t, 5)

	require.NoError(t, p.UpdateDetails("  Bình   19L ", "bình", false))
	assert.Equal(t, "Bình 19L", p.Name)
	assert.False(t, p.Returnable)
	assert.Equal(t, int64(5), p.Stock)
	events := p.GetDomainEvents()
	require.Len(t, events, 1)
	assert.Equal(t, EventTypeProductUpdated, events[0].EventType())

	t.Run("unchanged details record nothing", func(t *testing.T) {
		p.ClearDomainEvents()
		require.NoError(t, p.UpdateDetails("Bình 19L", "bình", false))
		assert.Empty(t, p.GetDomainEvents())
	})

	t.Run("blank name is rejected", func(t *testing.T) {
		err := p.UpdateDetails(" ", "bình", true)
		assert.True(t, errors.Is(err, shared.ErrValidation))
		assert.Equal(t, "Bình 19L", p.Name)
	})
}

func TestProduct_Remove(t *testing.T) {
	t.Run("unused product can go", func(t *testing.T) {
		p := newTestProduct(t, 0)
		require.NoError(t, p.Remove(0))
		events := p.GetDomainEvents()
		require.Len(t, events, 1)
		assert.Equal(t, EventTypeProductDeleted, events[0].EventType())
	})

	t.Run("stock on hand keeps it", func(t *testing.T) {
		p := newTestProduct(t, 3)
		assert.True(t, errors.Is(p.Remove(0), shared.ErrProductInUse))
		assert.Empty(t, p.GetDomainEvents())
	})

	t.Run("movement history keeps it", func(t *testing.T) {
		p := newTestProduct(t, 0)
		assert.True(t, errors.Is(p.Remove(2), shared.ErrProductInUse))
	})
}
