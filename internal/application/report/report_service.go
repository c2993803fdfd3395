package report

import (
	"context"
	"time"

	"github.com/aquaflow/backend/internal/application/ledger"
	"github.com/aquaflow/backend/internal/domain/report"
	"github.com/aquaflow/backend/internal/domain/shared"
	"github.com/aquaflow/backend/internal/domain/trade"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// PeriodRequest selects the reporting window. Both dates are optional and
// default to the current month up to today.
type PeriodRequest struct {
	StartDate string `form:"start_date"`
	EndDate   string `form:"end_date"`
}

// ReportService builds the debt and sales read models
type ReportService struct {
	repos  ledger.Repositories
	logger *zap.Logger
	now    func() time.Time
}

// NewReportService creates a new ReportService
func NewReportService(repos ledger.Repositories, logger *zap.Logger) *ReportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ReportService{repos: repos, logger: logger, now: time.Now}
}

func (s *ReportService) period(req PeriodRequest) (report.Period, error) {
	now := s.now()
	def := report.MonthToDate(now)
	start, end := def.Start, now
	if req.StartDate != "" {
		t, err := time.ParseInLocation(report.DayLayout, req.StartDate, now.Location())
		if err != nil {
			return report.Period{}, shared.NewValidationError("Invalid start date, expected YYYY-MM-DD")
		}
		start = t
	}
	if req.EndDate != "" {
		t, err := time.ParseInLocation(report.DayLayout, req.EndDate, now.Location())
		if err != nil {
			return report.Period{}, shared.NewValidationError("Invalid end date, expected YYYY-MM-DD")
		}
		end = t
	}
	p := report.NewPeriod(start, end)
	if p.End.Before(p.Start) {
		return report.Period{}, shared.NewValidationError("End date cannot be before start date")
	}
	return p, nil
}

// ===================== Debt Reports =====================

// CustomerDebt lists owing customers with their last order and count of
// orders still unpaid, plus the unpaid remainder of the period's orders
// per day
func (s *ReportService) CustomerDebt(ctx context.Context, req PeriodRequest) (*report.CustomerDebtReport, error) {
	period, err := s.period(req)
	if err != nil {
		return nil, err
	}
	customers, err := s.repos.Customers().FindWithDebt(ctx)
	if err != nil {
		return nil, err
	}
	ids := make([]uuid.UUID, len(customers))
	for i := range customers {
		ids[i] = customers[i].ID
	}
	stats, err := s.repos.Orders().StatsByCustomer(ctx, ids)
	if err != nil {
		return nil, err
	}
	periodOrders, err := s.repos.Orders().FindBetween(ctx, period.Start, period.End)
	if err != nil {
		return nil, err
	}

	r := report.BuildCustomerDebtReport(period, customers, stats, periodOrders)
	s.logger.Debug("Customer debt report built",
		zap.Int("customers", r.TotalCustomers),
		zap.String("total_debt", r.TotalDebt.String()))
	return &r, nil
}

// SupplierDebt lists suppliers the business owes, with debt derived from
// their non-canceled purchases
func (s *ReportService) SupplierDebt(ctx context.Context, req PeriodRequest) (*report.SupplierDebtReport, error) {
	period, err := s.period(req)
	if err != nil {
		return nil, err
	}
	suppliers, err := s.repos.Suppliers().FindAll(ctx, shared.Filter{})
	if err != nil {
		return nil, err
	}
	stats, err := s.repos.Purchases().StatsBySupplier(ctx)
	if err != nil {
		return nil, err
	}
	outstanding, err := s.repos.Purchases().FindOutstanding(ctx, &period.Start, &period.End)
	if err != nil {
		return nil, err
	}

	r := report.BuildSupplierDebtReport(period, suppliers, stats, outstanding)
	s.logger.Debug("Supplier debt report built",
		zap.Int("suppliers", r.TotalSuppliers),
		zap.String("total_debt", r.TotalDebt.String()))
	return &r, nil
}

// ===================== Sales Report =====================

// Sales summarizes the completed orders placed in the period
func (s *ReportService) Sales(ctx context.Context, req PeriodRequest) (*report.SalesSummary, error) {
	period, err := s.period(req)
	if err != nil {
		return nil, err
	}
	orders, err := s.repos.Orders().FindByStatusBetween(ctx, trade.StatusCompleted, period.Start, period.End)
	if err != nil {
		return nil, err
	}
	summary := report.BuildSalesSummary(period, orders)
	return &summary, nil
}

// ===================== Revenue Reports =====================

// DailyRevenueRequest selects the day, today when empty
type DailyRevenueRequest struct {
	Date string `form:"date"`
}

// MonthlyRevenueRequest selects the month, the current one when empty
type MonthlyRevenueRequest struct {
	Year  int `form:"year" binding:"omitempty,min=2000,max=2100"`
	Month int `form:"month" binding:"omitempty,min=1,max=12"`
}

// BestSellingRequest ranks products over an optional, open-ended window
type BestSellingRequest struct {
	StartDate string `form:"start_date"`
	EndDate   string `form:"end_date"`
	Limit     int    `form:"limit" binding:"omitempty,min=1,max=100"`
}

const (
	defaultBestSellingLimit = 10
	dashboardRecentOrders   = 5
)

func (s *ReportService) parseDay(value, field string) (time.Time, error) {
	t, err := time.ParseInLocation(report.DayLayout, value, s.now().Location())
	if err != nil {
		return time.Time{}, shared.NewValidationError("Invalid " + field + ", expected YYYY-MM-DD")
	}
	return t, nil
}

// DailyRevenue lists the completed orders of a day
func (s *ReportService) DailyRevenue(ctx context.Context, req DailyRevenueRequest) (*report.DailyRevenue, error) {
	date := s.now()
	if req.Date != "" {
		t, err := s.parseDay(req.Date, "date")
		if err != nil {
			return nil, err
		}
		date = t
	}
	day := report.NewPeriod(date, date)
	orders, err := s.repos.Orders().FindByStatusBetween(ctx, trade.StatusCompleted, day.Start, day.End)
	if err != nil {
		return nil, err
	}
	r := report.BuildDailyRevenue(day, orders)
	return &r, nil
}

// MonthlyRevenue totals a month of completed orders day by day
func (s *ReportService) MonthlyRevenue(ctx context.Context, req MonthlyRevenueRequest) (*report.MonthlyRevenue, error) {
	now := s.now()
	year, month := now.Year(), now.Month()
	if req.Year != 0 {
		year = req.Year
	}
	if req.Month != 0 {
		month = time.Month(req.Month)
	}
	period := report.MonthPeriod(year, month, now.Location())
	orders, err := s.repos.Orders().FindByStatusBetween(ctx, trade.StatusCompleted, period.Start, period.End)
	if err != nil {
		return nil, err
	}
	r := report.BuildMonthlyRevenue(year, month, now.Location(), orders)
	return &r, nil
}

// BestSelling ranks products by quantity sold on completed orders
func (s *ReportService) BestSelling(ctx context.Context, req BestSellingRequest) ([]report.BestSeller, error) {
	q := trade.SalesQuery{Statuses: []trade.Status{trade.StatusCompleted}}
	if req.StartDate != "" {
		t, err := s.parseDay(req.StartDate, "start date")
		if err != nil {
			return nil, err
		}
		q.From = report.NewPeriod(t, t).Start
	}
	if req.EndDate != "" {
		t, err := s.parseDay(req.EndDate, "end date")
		if err != nil {
			return nil, err
		}
		q.To = report.NewPeriod(t, t).End
	}
	if !q.From.IsZero() && !q.To.IsZero() && q.To.Before(q.From) {
		return nil, shared.NewValidationError("End date cannot be before start date")
	}
	limit := req.Limit
	if limit <= 0 {
		limit = defaultBestSellingLimit
	}

	totals, err := s.repos.Orders().SalesByProduct(ctx, q)
	if err != nil {
		return nil, err
	}
	if len(totals) > limit {
		totals = totals[:limit]
	}
	ids := make([]uuid.UUID, len(totals))
	for i := range totals {
		ids[i] = totals[i].ProductID
	}
	products, err := s.repos.Products().FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	return report.BuildBestSellers(totals, products, limit), nil
}

// ===================== Dashboard =====================

// Dashboard summarizes the store: entity counts, revenue of non-canceled
// orders, the trailing week's orders per weekday, revenue per product and
// the latest orders
func (s *ReportService) Dashboard(ctx context.Context) (*report.Dashboard, error) {
	now := s.now()
	var (
		in  report.DashboardInput
		err error
	)
	if in.Customers, err = s.repos.Customers().Count(ctx, shared.Filter{}); err != nil {
		return nil, err
	}
	if in.Products, err = s.repos.Products().Count(ctx, shared.Filter{}); err != nil {
		return nil, err
	}
	if in.Orders, err = s.repos.Orders().Count(ctx, shared.Filter{}); err != nil {
		return nil, err
	}
	if in.Revenue, err = s.repos.Orders().Revenue(ctx, trade.SalesQuery{}); err != nil {
		return nil, err
	}
	if in.WeekOrders, err = s.repos.Orders().FindBetween(ctx, now.AddDate(0, 0, -7), now); err != nil {
		return nil, err
	}
	if in.ProductSales, err = s.repos.Orders().SalesByProduct(ctx, trade.SalesQuery{}); err != nil {
		return nil, err
	}
	if in.Recent, err = s.repos.Orders().FindRecent(ctx, dashboardRecentOrders); err != nil {
		return nil, err
	}

	d := report.BuildDashboard(in)
	s.logger.Debug("Dashboard built",
		zap.Int64("orders", d.Orders),
		zap.String("revenue", d.Revenue.String()))
	return &d, nil
}
