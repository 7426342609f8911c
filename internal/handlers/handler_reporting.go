package handlers

import (
	"log/slog"
	"net/http"

	"github.com/SscSPs/ledger_report_engine/internal/core/domain"
	portssvc "github.com/SscSPs/ledger_report_engine/internal/core/ports/services"
	"github.com/SscSPs/ledger_report_engine/internal/dto"
	"github.com/SscSPs/ledger_report_engine/internal/middleware"
	"github.com/gin-gonic/gin"
)

// reportingHandler handles HTTP requests related to financial reports
type reportingHandler struct {
	reportingService    portssvc.ReportingService
	trialBalanceService portssvc.TrialBalanceService
}

// newReportingHandler creates a new reportingHandler
func newReportingHandler(rs portssvc.ReportingService, tbs portssvc.TrialBalanceService) *reportingHandler {
	return &reportingHandler{
		reportingService:    rs,
		trialBalanceService: tbs,
	}
}

// registerReportingRoutes registers routes related to financial reports
func registerReportingRoutes(rg *gin.RouterGroup, rs portssvc.ReportingService, tbs portssvc.TrialBalanceService) {
	h := newReportingHandler(rs, tbs)

	rg.GET("/reports/:report_type", h.getReport)
	rg.GET("/trial-balance", h.getTrialBalance)
}

// getReport generates a balance sheet, income statement or cash flow statement
// for the requested period compared with its prior period.
func (h *reportingHandler) getReport(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	scope, ok := middleware.GetScopeFromContext(c)
	if !ok {
		logger.Error("Scope not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	reportType, err := domain.ParseReportType(c.Param("report_type"))
	if err != nil {
		respondError(c, logger, err, "Invalid report type")
		return
	}

	var query dto.PeriodQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		respondBindingError(c, logger, err)
		return
	}
	period, err := query.Period()
	if err != nil {
		respondError(c, logger, err, "Invalid period")
		return
	}

	logger = logger.With(
		slog.String("company_id", scope.CompanyID),
		slog.String("report_type", string(reportType)),
	)
	logger.Info("Received request to generate financial report")

	report, err := h.reportingService.GenerateReport(c.Request.Context(), scope, reportType, period)
	if err != nil {
		respondError(c, logger, err, "Failed to generate report")
		return
	}

	c.JSON(http.StatusOK, report)
}

// getTrialBalance generates the trial balance with beginning, midterm and ending cohorts.
func (h *reportingHandler) getTrialBalance(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	scope, ok := middleware.GetScopeFromContext(c)
	if !ok {
		logger.Error("Scope not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var query dto.TrialBalanceQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		respondBindingError(c, logger, err)
		return
	}
	period, err := query.Period()
	if err != nil {
		respondError(c, logger, err, "Invalid period")
		return
	}

	logger = logger.With(slog.String("company_id", scope.CompanyID))
	logger.Info("Received request to generate trial balance")

	report, err := h.trialBalanceService.TrialBalance(c.Request.Context(), scope, period, query.Sort())
	if err != nil {
		respondError(c, logger, err, "Failed to generate trial balance")
		return
	}

	c.JSON(http.StatusOK, report)
}
