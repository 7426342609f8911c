package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/ledger_report_engine/internal/core/ports/services"
	"github.com/SscSPs/ledger_report_engine/internal/dto"
	"github.com/SscSPs/ledger_report_engine/internal/middleware"
	"github.com/gin-gonic/gin"
)

type ledgerHandler struct {
	ledgerService portssvc.LedgerService
}

func registerLedgerRoutes(rg *gin.RouterGroup, ls portssvc.LedgerService) {
	h := &ledgerHandler{ledgerService: ls}
	rg.GET("/ledgers/:account_code", h.getAccountLedger)
}

// getAccountLedger returns the running-balance ledger of one account and its descendants.
func (h *ledgerHandler) getAccountLedger(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	scope, ok := middleware.GetScopeFromContext(c)
	if !ok {
		logger.Error("Scope not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
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

	accountCode := c.Param("account_code")
	logger = logger.With(slog.String("company_id", scope.CompanyID), slog.String("account_code", accountCode))

	ledger, err := h.ledgerService.AccountLedger(c.Request.Context(), scope, accountCode, period)
	if err != nil {
		respondError(c, logger, err, "Failed to generate account ledger")
		return
	}

	c.JSON(http.StatusOK, ledger)
}
