package handler

import (
	reportapp "github.com/aquaflow/backend/internal/application/report"
	"github.com/gin-gonic/gin"
)

// ReportHandler serves the debt, sales, revenue and dashboard reports.
// Dates are YYYY-MM-DD.
type ReportHandler struct {
	BaseHandler
	reportService *reportapp.ReportService
}

// NewReportHandler creates a new ReportHandler
func NewReportHandler(reportService *reportapp.ReportService) *ReportHandler {
	return &ReportHandler{
		reportService: reportService,
	}
}

// CustomerDebt handles GET /reports/customer-debt
func (h *ReportHandler) CustomerDebt(c *gin.Context) {
	var req reportapp.PeriodRequest
	if !h.bindQuery(c, &req) {
		return
	}

	report, err := h.reportService.CustomerDebt(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, report)
}

// SupplierDebt handles GET /reports/supplier-debt
func (h *ReportHandler) SupplierDebt(c *gin.Context) {
	var req reportapp.PeriodRequest
	if !h.bindQuery(c, &req) {
		return
	}

	report, err := h.reportService.SupplierDebt(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, report)
}

// Sales handles GET /reports/sales
func (h *ReportHandler) Sales(c *gin.Context) {
	var req reportapp.PeriodRequest
	if !h.bindQuery(c, &req) {
		return
	}

	report, err := h.reportService.Sales(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, report)
}

// Dashboard handles GET /reports/dashboard
func (h *ReportHandler) Dashboard(c *gin.Context) {
	dashboard, err := h.reportService.Dashboard(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, dashboard)
}

// DailyRevenue handles GET /reports/revenue/daily?date=YYYY-MM-DD
func (h *ReportHandler) DailyRevenue(c *gin.Context) {
	var req reportapp.DailyRevenueRequest
	if !h.bindQuery(c, &req) {
		return
	}

	report, err := h.reportService.DailyRevenue(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, report)
}

// MonthlyRevenue handles GET /reports/revenue/monthly?year=&month=
func (h *ReportHandler) MonthlyRevenue(c *gin.Context) {
	var req reportapp.MonthlyRevenueRequest
	if !h.bindQuery(c, &req) {
		return
	}

	report, err := h.reportService.MonthlyRevenue(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, report)
}

// BestSelling handles GET /reports/products/best-selling
func (h *ReportHandler) BestSelling(c *gin.Context) {
	var req reportapp.BestSellingRequest
	if !h.bindQuery(c, &req) {
		return
	}

	products, err := h.reportService.BestSelling(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, products)
}
