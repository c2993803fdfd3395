package report

import (
	"sort"

	"github.com/aquaflow/backend/internal/domain/trade"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// topN bounds the product and customer rankings
const topN = 5

// DailySales is one day's completed sales
type DailySales struct {
	Date   string          `json:"date"`
	Orders int             `json:"orders"`
	Sales  decimal.Decimal `json:"sales"`
}

// ProductSales ranks a product by revenue
type ProductSales struct {
	ProductID   uuid.UUID       `json:"product_id"`
	ProductName string          `json:"product_name"`
	Quantity    int64           `json:"quantity"`
	Revenue     decimal.Decimal `json:"revenue"`
}

// CustomerSales ranks a customer by spend
type CustomerSales struct {
	CustomerID   uuid.UUID       `json:"customer_id"`
	CustomerName string          `json:"customer_name"`
	Orders       int             `json:"orders"`
	Spend        decimal.Decimal `json:"spend"`
}

// SalesSummary aggregates the completed orders of a period
type SalesSummary struct {
	Period            Period          `json:"period"`
	TotalOrders       int             `json:"total_orders"`
	TotalSales        decimal.Decimal `json:"total_sales"`
	TotalPaid         decimal.Decimal `json:"total_paid"`
	TotalDebt         decimal.Decimal `json:"total_debt"`
	AverageOrderValue decimal.Decimal `json:"average_order_value"`
	DailySales        []DailySales    `json:"daily_sales"`
	TopProducts       []ProductSales  `json:"top_products"`
	TopCustomers      []CustomerSales `json:"top_customers"`
}

// BuildSalesSummary totals completed orders placed in the period. Orders in
// other statuses or outside the period are skipped. Product revenue is
// taken at line prices before any order-level discount.
func BuildSalesSummary(period Period, orders []trade.Order) SalesSummary {
	sales, paid, debt := decimal.Zero, decimal.Zero, decimal.Zero
	daily := map[string]*DailySales{}
	products := map[uuid.UUID]*ProductSales{}
	customers := map[uuid.UUID]*CustomerSales{}

	count := 0
	for i := range orders {
		o := &orders[i]
		if o.Status != trade.StatusCompleted || !period.Contains(o.OrderDate) {
			continue
		}
		count++
		sales = sales.Add(o.TotalAmount.Decimal())
		paid = paid.Add(o.PaidAmount.Decimal())
		debt = debt.Add(o.DebtRemaining().Decimal())

		day := o.OrderDate.Format(DayLayout)
		if daily[day] == nil {
			daily[day] = &DailySales{Date: day, Sales: decimal.Zero}
		}
		daily[day].Orders++
		daily[day].Sales = daily[day].Sales.Add(o.TotalAmount.Decimal())

		for _, item := range o.Items {
			if products[item.ProductID] == nil {
				products[item.ProductID] = &ProductSales{ProductID: item.ProductID, ProductName: item.ProductName, Revenue: decimal.Zero}
			}
			p := products[item.ProductID]
			p.Quantity += item.Quantity
			p.Revenue = p.Revenue.Add(item.Total().Decimal())
		}

		if customers[o.CustomerID] == nil {
			customers[o.CustomerID] = &CustomerSales{CustomerID: o.CustomerID, CustomerName: o.CustomerName, Spend: decimal.Zero}
		}
		customers[o.CustomerID].Orders++
		customers[o.CustomerID].Spend = customers[o.CustomerID].Spend.Add(o.TotalAmount.Decimal())
	}

	s := SalesSummary{
		Period:            period,
		TotalOrders:       count,
		TotalSales:        sales,
		TotalPaid:         paid,
		TotalDebt:         debt,
		AverageOrderValue: decimal.Zero,
		DailySales:        make([]DailySales, 0, len(daily)),
		TopProducts:       make([]ProductSales, 0, len(products)),
		TopCustomers:      make([]CustomerSales, 0, len(customers)),
	}
	if count > 0 {
		s.AverageOrderValue = s.TotalSales.Div(decimal.NewFromInt(int64(count))).Round(0)
	}

	for _, d := range daily {
		s.DailySales = append(s.DailySales, *d)
	}
	sort.Slice(s.DailySales, func(i, j int) bool { return s.DailySales[i].Date < s.DailySales[j].Date })

	for _, p := range products {
		s.TopProducts = append(s.TopProducts, *p)
	}
	sort.Slice(s.TopProducts, func(i, j int) bool {
		if !s.TopProducts[i].Revenue.Equal(s.TopProducts[j].Revenue) {
			return s.TopProducts[i].Revenue.GreaterThan(s.TopProducts[j].Revenue)
		}
		return s.TopProducts[i].ProductName < s.TopProducts[j].ProductName
	})
	if len(s.TopProducts) > topN {
		s.TopProducts = s.TopProducts[:topN]
	}

	for _, c := range customers {
		s.TopCustomers = append(s.TopCustomers, *c)
	}
	sort.Slice(s.TopCustomers, func(i, j int) bool {
		if !s.TopCustomers[i].Spend.Equal(s.TopCustomers[j].Spend) {
			return s.TopCustomers[i].Spend.GreaterThan(s.TopCustomers[j].Spend)
		}
		return s.TopCustomers[i].CustomerName < s.TopCustomers[j].CustomerName
	})
	if len(s.TopCustomers) > topN {
		s.TopCustomers = s.TopCustomers[:topN]
	}
	return s
}
