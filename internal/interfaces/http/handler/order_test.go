package handler

import (
	"net/http"
	"testing"

	partnerapp "github.com/aquaflow/backend/internal/application/partner"
	tradeapp "github.com/aquaflow/backend/internal/application/trade"
	"github.com/aquaflow/backend/internal/interfaces/http/dto"
	"github.com/aquaflow/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createOrder(t *testing.T, api *testAPI, customerID, productID uuid.UUID, qty int64) tradeapp.OrderResponse {
	t.Helper()
	w := api.do(http.MethodPost, "/orders", gin.H{
		"customer_id": customerID,
		"items":       []gin.H{{"product_id": productID, "quantity": qty}},
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	return decodeData[tradeapp.OrderResponse](t, w)
}

func TestOrderHandler_Create(t *testing.T) {
	t.Run("takes stock and books debt", func(t *testing.T) {
		api := newTestAPI(t)
		water := seedProduct(t, api, "Water 20L", 20000, 10)
		customer := seedRetailCustomer(t, api)

		order := createOrder(t, api, customer, water, 3)

		assert.Equal(t, "pending", order.Status)
		assert.True(t, order.Subtotal.Equal(decimal.NewFromInt(60000)))
		assert.True(t, order.DebtRemaining.Equal(order.TotalAmount))
		assert.Equal(t, int64(3), order.ReturnableOut)
		assert.Equal(t, int64(7), api.store.Product(water).Stock)

		c := api.store.Customer(customer)
		assert.Equal(t, order.TotalAmount.IntPart(), c.Debt.Int64())
		assert.Equal(t, int64(3), c.EmptyDebt)
	})

	t.Run("repeated lines are summed before the stock check", func(t *testing.T) {
		api := newTestAPI(t)
		water := seedProduct(t, api, "Water 20L", 20000, 10)
		customer := seedRetailCustomer(t, api)

		w := api.do(http.MethodPost, "/orders", gin.H{
			"customer_id": customer,
			"items": []gin.H{
				{"product_id": water, "quantity": 6},
				{"product_id": water, "quantity": 6},
			},
		})

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		info := decodeError(t, w)
		assert.Equal(t, dto.ErrCodeInsufficientStock, info.Code)
		assert.Equal(t, "Water 20L", info.Details["productName"])
		assert.EqualValues(t, 12, info.Details["requestedQuantity"])
		assert.EqualValues(t, 10, info.Details["availableStock"])
		assert.Equal(t, int64(10), api.store.Product(water).Stock)
	})

	t.Run("unpriced product is rejected", func(t *testing.T) {
		api := newTestAPI(t)
		cup := seedProduct(t, api, "Cup", 0, 10)
		customer := seedRetailCustomer(t, api)

		w := api.do(http.MethodPost, "/orders", gin.H{
			"customer_id": customer,
			"items":       []gin.H{{"product_id": cup, "quantity": 1}},
		})

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, dto.ErrCodeInvalidPrice, decodeError(t, w).Code)
	})

	t.Run("website order creates the customer by phone", func(t *testing.T) {
		api := newTestAPI(t)
		water := seedProduct(t, api, "Water 20L", 20000, 10)

		w := api.do(http.MethodPost, "/orders", gin.H{
			"customer": gin.H{"phone": "0987654321"},
			"items":    []gin.H{{"product_id": water, "quantity": 1}},
		})
		assert.Equal(t, http.StatusBadRequest, w.Code, "new phone needs name and address")

		w = api.do(http.MethodPost, "/orders", gin.H{
			"customer": gin.H{"phone": "0987654321", "name": "Hoa", "address": "12 Lê Lợi"},
			"items":    []gin.H{{"product_id": water, "quantity": 1}},
		})
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
		first := decodeData[tradeapp.OrderResponse](t, w)
		assert.Equal(t, "Hoa", first.CustomerName)

		w = api.do(http.MethodPost, "/orders", gin.H{
			"customer": gin.H{"phone": "0987654321"},
			"items":    []gin.H{{"product_id": water, "quantity": 1}},
		})
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
		assert.Equal(t, first.CustomerID, decodeData[tradeapp.OrderResponse](t, w).CustomerID)
	})

	t.Run("request validation", func(t *testing.T) {
		api := newTestAPI(t)

		w := api.do(http.MethodPost, "/orders", gin.H{"items": []gin.H{}})
		assert.Equal(t, http.StatusBadRequest, w.Code)

		w = api.do(http.MethodPost, "/orders", gin.H{
			"customer_id": uuid.New(),
			"items":       []gin.H{{"product_id": uuid.New(), "quantity": 0}},
		})
		require.Equal(t, http.StatusBadRequest, w.Code)
		info := decodeError(t, w)
		require.NotEmpty(t, info.Fields)
		assert.Equal(t, "items[0].quantity", info.Fields[0].Field)
	})
}

func TestOrderHandler_PaymentsAndReturns(t *testing.T) {
	api := newTestAPI(t)
	water := seedProduct(t, api, "Water 20L", 20000, 10)
	customer := seedRetailCustomer(t, api)
	order := createOrder(t, api, customer, water, 3)
	path := "/orders/" + order.ID.String()

	t.Run("overpayment becomes customer credit", func(t *testing.T) {
		amount := order.TotalAmount.Add(decimal.NewFromInt(10000))
		w := api.do(http.MethodPost, path+"/payments", gin.H{"amount": amount})

		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		paid := decodeData[tradeapp.OrderResponse](t, w)
		assert.True(t, paid.Overpaid)
		assert.True(t, paid.DebtRemaining.Equal(decimal.NewFromInt(-10000)))

		w = api.do(http.MethodGet, "/customers/"+customer.String(), nil)
		require.Equal(t, http.StatusOK, w.Code)
		c := decodeData[partnerapp.CustomerResponse](t, w)
		assert.True(t, c.CreditBalance.Equal(decimal.NewFromInt(10000)))
	})

	t.Run("fractional dong rejected", func(t *testing.T) {
		w := api.do(http.MethodPost, path+"/payments", gin.H{"amount": 100.5})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("idempotency key blocks a replay", func(t *testing.T) {
		w := api.do(http.MethodPost, path+"/payments", gin.H{"amount": 1000}, middleware.IdempotencyKeyHeader, "pay-42")
		require.Equal(t, http.StatusOK, w.Code)

		w = api.do(http.MethodPost, path+"/payments", gin.H{"amount": 1000}, middleware.IdempotencyKeyHeader, "pay-42")
		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Equal(t, dto.ErrCodeDuplicateRequest, decodeError(t, w).Code)
	})

	t.Run("returns are bounded by outstanding containers", func(t *testing.T) {
		w := api.do(http.MethodPost, path+"/returns", gin.H{"quantity": 2})
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		assert.Equal(t, int64(2), decodeData[tradeapp.OrderResponse](t, w).ReturnableIn)
		assert.Equal(t, int64(1), api.store.Customer(customer).EmptyDebt)

		w = api.do(http.MethodPost, path+"/returns", gin.H{"quantity": 2})
		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		assert.Equal(t, dto.ErrCodeReturnExceedsOutstanding, decodeError(t, w).Code)
	})

	t.Run("status moves once out of pending", func(t *testing.T) {
		w := api.do(http.MethodPatch, path+"/status", gin.H{"status": "completed"})
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		assert.Equal(t, "completed", decodeData[tradeapp.OrderResponse](t, w).Status)

		w = api.do(http.MethodPatch, path+"/status", gin.H{"status": "canceled"})
		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		assert.Equal(t, dto.ErrCodeInvalidTransition, decodeError(t, w).Code)

		w = api.do(http.MethodPatch, path+"/status", gin.H{"status": "shipped"})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("payments still accepted after completion", func(t *testing.T) {
		w := api.do(http.MethodPost, path+"/payments", gin.H{"amount": 5000})
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("list by customer", func(t *testing.T) {
		createOrder(t, api, seedRetailCustomerNamed(t, api, "Other", "0977000111"), water, 1)

		w := api.do(http.MethodGet, "/orders?customer_id="+customer.String(), nil)
		require.Equal(t, http.StatusOK, w.Code)
		env := decodeEnvelope[[]tradeapp.OrderResponse](t, w)
		require.Len(t, env.Data, 1)
		assert.Equal(t, order.ID, env.Data[0].ID)
		assert.Equal(t, int64(1), env.Meta.Total)

		w = api.do(http.MethodGet, "/orders?status=pending", nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Len(t, decodeData[[]tradeapp.OrderResponse](t, w), 1)
	})

	t.Run("unknown order", func(t *testing.T) {
		w := api.do(http.MethodPost, "/orders/"+uuid.NewString()+"/payments", gin.H{"amount": 1000})
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}
