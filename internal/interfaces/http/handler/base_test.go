package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	catalogapp "github.com/aquaflow/backend/internal/application/catalog"
	financeapp "github.com/aquaflow/backend/internal/application/finance"
	inventoryapp "github.com/aquaflow/backend/internal/application/inventory"
	"github.com/aquaflow/backend/internal/application/ledger"
	"github.com/aquaflow/backend/internal/application/ledger/ledgertest"
	partnerapp "github.com/aquaflow/backend/internal/application/partner"
	reportapp "github.com/aquaflow/backend/internal/application/report"
	tradeapp "github.com/aquaflow/backend/internal/application/trade"
	"github.com/aquaflow/backend/internal/domain/shared"
	"github.com/aquaflow/backend/internal/infrastructure/cache"
	infrastrategy "github.com/aquaflow/backend/internal/infrastructure/strategy"
	"github.com/aquaflow/backend/internal/interfaces/http/dto"
	"github.com/aquaflow/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
	middleware.SetupValidator()
}

// testAPI serves every handler over an in-memory ledger
type testAPI struct {
	store  *ledgertest.Store
	router *gin.Engine
}

func newTestAPI(t *testing.T) *testAPI {
	t.Helper()

	store := ledgertest.NewStore()
	repos := store.Repositories()
	exec := ledger.NewExecutor(store,
		ledger.WithRetry(ledger.RetryConfig{MaxAttempts: 3}),
		ledger.WithIdempotency(cache.NewInMemoryIdempotencyStore(), shared.DefaultIdempotencyConfig()),
	)
	registry, err := infrastrategy.NewRegistryWithDefaults(nil)
	require.NoError(t, err)

	reconciliation := financeapp.NewReconciliationService(exec, repos, nil)
	purchases := tradeapp.NewPurchaseService(exec, repos, nil)

	products := NewProductHandler(catalogapp.NewProductService(exec, repos, nil))
	customers := NewCustomerHandler(partnerapp.NewCustomerService(exec, repos, nil), reconciliation)
	suppliers := NewSupplierHandler(partnerapp.NewSupplierService(exec, repos, nil), purchases)
	orders := NewOrderHandler(tradeapp.NewOrderService(exec, repos, registry, nil))
	purchaseHandler := NewPurchaseHandler(purchases)
	imports := NewImportHandler(inventoryapp.NewImportService(exec, repos, nil))
	inventory := NewInventoryHandler(inventoryapp.NewMovementService(exec, repos, nil))
	finance := NewFinanceHandler(reconciliation)
	reports := NewReportHandler(reportapp.NewReportService(repos, nil))

	router := gin.New()
	router.Use(middleware.RequestID())

	router.POST("/products", products.Create)
	router.GET("/products", products.List)
	router.GET("/products/:id", products.GetByID)
	router.PUT("/products/:id", products.Update)
	router.DELETE("/products/:id", products.Delete)
	router.PATCH("/products/:id/price", products.UpdatePrice)

	router.POST("/customers", customers.Create)
	router.GET("/customers", customers.List)
	router.GET("/customers/:id", customers.GetByID)
	router.PUT("/customers/:id", customers.Update)
	router.GET("/customers/:id/transactions", customers.Transactions)
	router.GET("/customers/:id/empty-returns", customers.EmptyReturns)

	router.POST("/suppliers", suppliers.Create)
	router.GET("/suppliers", suppliers.List)
	router.GET("/suppliers/:id", suppliers.GetByID)
	router.PUT("/suppliers/:id", suppliers.Update)
	router.GET("/suppliers/:id/debt", suppliers.Debt)

	router.POST("/orders", orders.Create)
	router.GET("/orders", orders.List)
	router.GET("/orders/:id", orders.GetByID)
	router.PATCH("/orders/:id/status", orders.UpdateStatus)
	router.POST("/orders/:id/payments", orders.Pay)
	router.POST("/orders/:id/returns", orders.Return)

	router.POST("/purchases", purchaseHandler.Create)
	router.GET("/purchases", purchaseHandler.List)
	router.GET("/purchases/:id", purchaseHandler.GetByID)
	router.POST("/purchases/:id/payments", purchaseHandler.Pay)
	router.PATCH("/purchases/:id/status", purchaseHandler.UpdateStatus)

	router.POST("/imports", imports.Create)
	router.GET("/imports", imports.List)
	router.GET("/imports/:id", imports.GetByID)
	router.DELETE("/imports/:id", imports.Delete)

	router.POST("/inventory/movements", inventory.ApplyMovement)
	router.GET("/inventory/products/:id/movements", inventory.Movements)
	router.GET("/inventory/report", inventory.Report)
	router.GET("/inventory/report/by-date", inventory.ReportByDate)

	router.POST("/transactions", finance.RecordTransaction)
	router.POST("/empty-returns", finance.RecordEmptyReturn)

	router.GET("/reports/customer-debt", reports.CustomerDebt)
	router.GET("/reports/supplier-debt", reports.SupplierDebt)
	router.GET("/reports/sales", reports.Sales)
	router.GET("/reports/dashboard", reports.Dashboard)
	router.GET("/reports/revenue/daily", reports.DailyRevenue)
	router.GET("/reports/revenue/monthly", reports.MonthlyRevenue)
	router.GET("/reports/products/best-selling", reports.BestSelling)

	return &testAPI{store: store, router: router}
}

func (a *testAPI) do(method, path string, body any, headers ...string) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		if raw, ok := body.(string); ok {
			buf.WriteString(raw)
		} else {
			_ = json.NewEncoder(&buf).Encode(body)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	return w
}

// envelope mirrors dto.Response with a typed payload
type envelope[T any] struct {
	Success bool           `json:"success"`
	Data    T              `json:"data"`
	Error   *dto.ErrorInfo `json:"error"`
	Meta    *dto.Meta      `json:"meta"`
}

func decodeEnvelope[T any](t *testing.T, w *httptest.ResponseRecorder) envelope[T] {
	t.Helper()
	var env envelope[T]
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	return env
}

func decodeData[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	return decodeEnvelope[T](t, w).Data
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) *dto.ErrorInfo {
	t.Helper()
	env := decodeEnvelope[json.RawMessage](t, w)
	require.False(t, env.Success)
	require.NotNil(t, env.Error)
	return env.Error
}

func TestBaseHandler_HandleError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"not found", shared.ErrNotFound, http.StatusNotFound, dto.ErrCodeNotFound},
		{"validation", shared.NewDomainError(shared.CodeValidation, "bad"), http.StatusBadRequest, dto.ErrCodeValidation},
		{"invalid price", shared.NewDomainError(shared.CodeInvalidPrice, "zero"), http.StatusBadRequest, dto.ErrCodeInvalidPrice},
		{"insufficient stock", shared.ErrInsufficientStock, http.StatusUnprocessableEntity, dto.ErrCodeInsufficientStock},
		{"concurrency", shared.ErrConcurrencyConflict, http.StatusConflict, dto.ErrCodeConcurrencyConflict},
		{"already exists", shared.NewDomainError(shared.CodeAlreadyExists, "dup"), http.StatusConflict, dto.ErrCodeAlreadyExists},
		{"unknown", errors.New("disk on fire"), http.StatusInternalServerError, dto.ErrCodeInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
			c.Set(middleware.RequestIDKey, "req-1")

			h := &BaseHandler{}
			h.HandleError(c, tt.err)

			assert.Equal(t, tt.wantStatus, w.Code)
			info := decodeError(t, w)
			assert.Equal(t, tt.wantCode, info.Code)
			assert.Equal(t, "req-1", info.RequestID)
			assert.NotContains(t, info.Message, "disk on fire")
		})
	}
}

func TestBaseHandler_HandleErrorDetails(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/", nil)

	h := &BaseHandler{}
	h.HandleError(c, shared.ErrInsufficientStock.WithDetail("productName", "Water 20L"))

	info := decodeError(t, w)
	assert.Equal(t, "Water 20L", info.Details["productName"])
}

func TestRequestMeta(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/", nil)

	meta := requestMeta(c)
	assert.Nil(t, meta.Actor)
	assert.Empty(t, meta.IdempotencyKey)

	actor := uuid.New()
	c.Set(middleware.ActorIDKey, actor)
	c.Request.Header.Set(middleware.IdempotencyKeyHeader, "pay-1")

	meta = requestMeta(c)
	require.NotNil(t, meta.Actor)
	assert.Equal(t, actor, *meta.Actor)
	assert.Equal(t, "pay-1", meta.IdempotencyKey)
}

func TestGetRequestID(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	assert.Empty(t, getRequestID(c))

	c.Request.Header.Set(middleware.RequestIDHeader, "from-header")
	assert.Equal(t, "from-header", getRequestID(c))

	c.Set(middleware.RequestIDKey, "from-context")
	assert.Equal(t, "from-context", getRequestID(c))
}

func TestPageDefaults(t *testing.T) {
	page, size := 0, 0
	pageDefaults(&page, &size)
	assert.Equal(t, 1, page)
	assert.Equal(t, dto.DefaultPageSize, size)

	page, size = 3, 50
	pageDefaults(&page, &size)
	assert.Equal(t, 3, page)
	assert.Equal(t, 50, size)
}

func TestMalformedIDs(t *testing.T) {
	api := newTestAPI(t)

	for _, path := range []string{"/products/nope", "/orders/nope", "/customers/nope/transactions", "/imports/nope"} {
		w := api.do(http.MethodGet, path, nil)
		assert.Equal(t, http.StatusBadRequest, w.Code, path)
		assert.Equal(t, dto.ErrCodeBadRequest, decodeError(t, w).Code, path)
	}

	w := api.do(http.MethodGet, "/orders?customer_id=nope", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
