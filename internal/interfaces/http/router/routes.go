package router

import (
	"github.com/aquaflow/backend/internal/interfaces/http/handler"
)

// Handlers bundles every handler served by the API
type Handlers struct {
	Product   *handler.ProductHandler
	Customer  *handler.CustomerHandler
	Supplier  *handler.SupplierHandler
	Order     *handler.OrderHandler
	Purchase  *handler.PurchaseHandler
	Import    *handler.ImportHandler
	Inventory *handler.InventoryHandler
	Finance   *handler.FinanceHandler
	Report    *handler.ReportHandler
	System    *handler.SystemHandler
}

// APIGroups lays out the /api/v1 resources
func APIGroups(h Handlers) []RouteRegistrar {
	products := NewDomainGroup("catalog", "/products")
	products.POST("", h.Product.Create)
	products.GET("", h.Product.List)
	products.GET("/:id", h.Product.GetByID)
	products.PUT("/:id", h.Product.Update)
	products.DELETE("/:id", h.Product.Delete)
	products.PATCH("/:id/price", h.Product.UpdatePrice)

	customers := NewDomainGroup("customers", "/customers")
	customers.POST("", h.Customer.Create)
	customers.GET("", h.Customer.List)
	customers.GET("/:id", h.Customer.GetByID)
	customers.PUT("/:id", h.Customer.Update)
	customers.GET("/:id/transactions", h.Customer.Transactions)
	customers.GET("/:id/empty-returns", h.Customer.EmptyReturns)

	suppliers := NewDomainGroup("suppliers", "/suppliers")
	suppliers.POST("", h.Supplier.Create)
	suppliers.GET("", h.Supplier.List)
	suppliers.GET("/:id", h.Supplier.GetByID)
	suppliers.PUT("/:id", h.Supplier.Update)
	suppliers.GET("/:id/debt", h.Supplier.Debt)

	orders := NewDomainGroup("orders", "/orders")
	orders.POST("", h.Order.Create)
	orders.GET("", h.Order.List)
	orders.GET("/:id", h.Order.GetByID)
	orders.PATCH("/:id/status", h.Order.UpdateStatus)
	orders.POST("/:id/payments", h.Order.Pay)
	orders.POST("/:id/returns", h.Order.Return)

	purchases := NewDomainGroup("purchases", "/purchases")
	purchases.POST("", h.Purchase.Create)
	purchases.GET("", h.Purchase.List)
	purchases.GET("/:id", h.Purchase.GetByID)
	purchases.POST("/:id/payments", h.Purchase.Pay)
	purchases.PATCH("/:id/status", h.Purchase.UpdateStatus)

	imports := NewDomainGroup("imports", "/imports")
	imports.POST("", h.Import.Create)
	imports.GET("", h.Import.List)
	imports.GET("/:id", h.Import.GetByID)
	imports.DELETE("/:id", h.Import.Delete)

	inventory := NewDomainGroup("inventory", "/inventory")
	inventory.POST("/movements", h.Inventory.ApplyMovement)
	inventory.GET("/products/:id/movements", h.Inventory.Movements)
	inventory.GET("/report", h.Inventory.Report)
	inventory.GET("/report/by-date", h.Inventory.ReportByDate)

	finance := NewDomainGroup("finance", "")
	finance.POST("/transactions", h.Finance.RecordTransaction)
	finance.POST("/empty-returns", h.Finance.RecordEmptyReturn)

	reports := NewDomainGroup("reports", "/reports")
	reports.GET("/customer-debt", h.Report.CustomerDebt)
	reports.GET("/supplier-debt", h.Report.SupplierDebt)
	reports.GET("/sales", h.Report.Sales)
	reports.GET("/dashboard", h.Report.Dashboard)
	reports.GET("/revenue/daily", h.Report.DailyRevenue)
	reports.GET("/revenue/monthly", h.Report.MonthlyRevenue)
	reports.GET("/products/best-selling", h.Report.BestSelling)

	system := NewDomainGroup("system", "/system")
	system.GET("/info", h.System.GetSystemInfo)

	return []RouteRegistrar{
		products, customers, suppliers, orders, purchases,
		imports, inventory, finance, reports, system,
	}
}
