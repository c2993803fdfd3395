package handler

import (
	"net/http"
	"testing"
	"time"

	inventoryapp "github.com/aquaflow/backend/internal/application/inventory"
	"github.com/aquaflow/backend/internal/application/ledger/ledgertest"
	tradeapp "github.com/aquaflow/backend/internal/application/trade"
	"github.com/aquaflow/backend/internal/domain/inventory"
	"github.com/aquaflow/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInventoryHandler_Movements(t *testing.T) {
	api := newTestAPI(t)
	water := seedProduct(t, api, "Water 20L", 20000, 10)

	w := api.do(http.MethodPost, "/inventory/movements", gin.H{"product_id": water, "type": "import", "quantity": 5})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	log := decodeData[inventory.MovementLog](t, w)
	assert.Equal(t, int64(10), log.StockBefore)
	assert.Equal(t, int64(15), log.StockAfter)

	w = api.do(http.MethodPost, "/inventory/movements", gin.H{"product_id": water, "type": "export", "quantity": 4, "note": "broken"})
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, int64(11), api.store.Product(water).Stock)

	t.Run("export beyond stock", func(t *testing.T) {
		w := api.do(http.MethodPost, "/inventory/movements", gin.H{"product_id": water, "type": "export", "quantity": 12})
		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		assert.Equal(t, dto.ErrCodeInsufficientStock, decodeError(t, w).Code)
		assert.Equal(t, int64(11), api.store.Product(water).Stock)
	})

	t.Run("unknown type", func(t *testing.T) {
		w := api.do(http.MethodPost, "/inventory/movements", gin.H{"product_id": water, "type": "adjust", "quantity": 1})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("history is paged", func(t *testing.T) {
		w := api.do(http.MethodGet, "/inventory/products/"+water.String()+"/movements?page_size=1", nil)
		require.Equal(t, http.StatusOK, w.Code)
		env := decodeEnvelope[[]inventory.MovementLog](t, w)
		require.Len(t, env.Data, 1)
		assert.Equal(t, water, env.Data[0].ProductID)
		assert.Equal(t, int64(2), env.Meta.Total)
		assert.Equal(t, 2, env.Meta.TotalPages)
	})

	t.Run("report sums movements", func(t *testing.T) {
		w := api.do(http.MethodGet, "/inventory/report", nil)
		require.Equal(t, http.StatusOK, w.Code)
		lines := decodeData[[]inventory.ReportLine](t, w)
		require.Len(t, lines, 1)
		assert.Equal(t, int64(11), lines[0].CurrentStock)
		assert.Equal(t, int64(5), lines[0].TotalImported)
		assert.Equal(t, int64(4), lines[0].TotalExported)
	})

	t.Run("dated report", func(t *testing.T) {
		today := time.Now().Format(inventoryapp.DateLayout)

		w := api.do(http.MethodGet, "/inventory/report/by-date?start_date="+today+"&end_date="+today, nil)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		report := decodeData[inventoryapp.DatedReportResponse](t, w)
		require.Len(t, report.Products, 1)
		assert.Equal(t, int64(1), report.Products[0].NetChange)
		assert.Len(t, report.Products[0].Logs, 2)

		w = api.do(http.MethodGet, "/inventory/report/by-date?start_date="+today, nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)

		w = api.do(http.MethodGet, "/inventory/report/by-date?start_date=16/10/2026&end_date="+today, nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestImportHandler(t *testing.T) {
	api := newTestAPI(t)
	water := seedProduct(t, api, "Water 20L", 20000, 0)
	supplier := ledgertest.SeedSupplier(t, api.store, "Lavie").ID

	newImport := func(qty int64) inventoryapp.ImportResponse {
		t.Helper()
		w := api.do(http.MethodPost, "/imports", gin.H{
			"supplier_id": supplier,
			"items":       []gin.H{{"product_id": water, "quantity": qty, "unit_price": 12000}},
		})
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
		return decodeData[inventoryapp.ImportResponse](t, w)
	}

	first := newImport(10)
	assert.True(t, first.TotalAmount.Equal(decimal.NewFromInt(120000)))
	assert.Equal(t, "Lavie", first.SupplierName)
	assert.Equal(t, int64(10), api.store.Product(water).Stock)

	t.Run("get and list", func(t *testing.T) {
		w := api.do(http.MethodGet, "/imports/"+first.ID.String(), nil)
		require.Equal(t, http.StatusOK, w.Code)

		w = api.do(http.MethodGet, "/imports", nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Len(t, decodeData[[]inventoryapp.ImportResponse](t, w), 1)
	})

	t.Run("deleting consumed stock is refused as a whole", func(t *testing.T) {
		customer := seedRetailCustomer(t, api)
		w := api.do(http.MethodPost, "/orders", gin.H{
			"customer_id": customer,
			"items":       []gin.H{{"product_id": water, "quantity": 6}},
		})
		require.Equal(t, http.StatusCreated, w.Code)

		w = api.do(http.MethodDelete, "/imports/"+first.ID.String(), nil)
		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		info := decodeError(t, w)
		assert.Equal(t, dto.ErrCodeImportInUse, info.Code)
		assert.EqualValues(t, 10, info.Details["requiredStock"])
		assert.EqualValues(t, 4, info.Details["availableStock"])
		assert.Equal(t, int64(4), api.store.Product(water).Stock)
	})

	t.Run("delete reverses stock", func(t *testing.T) {
		second := newImport(5)
		require.Equal(t, int64(9), api.store.Product(water).Stock)

		w := api.do(http.MethodDelete, "/imports/"+second.ID.String(), nil)
		assert.Equal(t, http.StatusNoContent, w.Code)
		assert.Equal(t, int64(4), api.store.Product(water).Stock)

		w = api.do(http.MethodGet, "/imports/"+second.ID.String(), nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("unknown supplier", func(t *testing.T) {
		w := api.do(http.MethodPost, "/imports", gin.H{
			"supplier_id": uuid.New(),
			"items":       []gin.H{{"product_id": water, "quantity": 1}},
		})
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestPurchaseHandler(t *testing.T) {
	api := newTestAPI(t)
	water := seedProduct(t, api, "Water 20L", 20000, 0)
	supplier := ledgertest.SeedSupplier(t, api.store, "Lavie").ID

	create := func() tradeapp.PurchaseResponse {
		t.Helper()
		w := api.do(http.MethodPost, "/purchases", gin.H{
			"supplier_id": supplier,
			"items":       []gin.H{{"product_id": water, "quantity": 10, "unit_price": 12000}},
		})
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
		return decodeData[tradeapp.PurchaseResponse](t, w)
	}
	first := create()
	second := create()
	assert.True(t, first.TotalAmount.Equal(decimal.NewFromInt(120000)))

	w := api.do(http.MethodPost, "/purchases/"+first.ID.String()+"/payments", gin.H{"amount": 20000})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.True(t, decodeData[tradeapp.PurchaseResponse](t, w).DebtRemaining.Equal(decimal.NewFromInt(100000)))

	w = api.do(http.MethodGet, "/suppliers/"+supplier.String()+"/debt", nil)
	require.Equal(t, http.StatusOK, w.Code)
	debt := decodeData[tradeapp.SupplierDebtResponse](t, w)
	assert.True(t, debt.Debt.Equal(decimal.NewFromInt(220000)))
	assert.Equal(t, 2, debt.PendingPurchases)

	w = api.do(http.MethodPatch, "/purchases/"+second.ID.String()+"/status", gin.H{"status": "canceled"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = api.do(http.MethodGet, "/suppliers/"+supplier.String()+"/debt", nil)
	require.Equal(t, http.StatusOK, w.Code)
	debt = decodeData[tradeapp.SupplierDebtResponse](t, w)
	assert.True(t, debt.Debt.Equal(decimal.NewFromInt(100000)), "canceled purchases owe nothing")
	assert.Equal(t, 1, debt.PendingPurchases)

	w = api.do(http.MethodGet, "/purchases?status=canceled&supplier_id="+supplier.String(), nil)
	require.Equal(t, http.StatusOK, w.Code)
	list := decodeData[[]tradeapp.PurchaseResponse](t, w)
	require.Len(t, list, 1)
	assert.Equal(t, second.ID, list[0].ID)

	w = api.do(http.MethodGet, "/purchases/"+first.ID.String(), nil)
	assert.Equal(t, http.StatusOK, w.Code)
}
