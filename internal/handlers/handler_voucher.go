package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/ledger_report_engine/internal/core/ports/services"
	"github.com/SscSPs/ledger_report_engine/internal/dto"
	"github.com/SscSPs/ledger_report_engine/internal/middleware"
	"github.com/gin-gonic/gin"
)

// voucherHandler handles HTTP requests for posting and reading vouchers
type voucherHandler struct {
	voucherService portssvc.VoucherSvc
}

func registerVoucherRoutes(rg *gin.RouterGroup, vs portssvc.VoucherSvc) {
	h := &voucherHandler{voucherService: vs}

	vouchers := rg.Group("/vouchers")
	{
		vouchers.POST("", h.postVoucher)
		vouchers.GET("/:voucher_id", h.getVoucher)
	}
}

// postVoucher validates and stores a balanced voucher.
func (h *voucherHandler) postVoucher(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	scope, ok := middleware.GetScopeFromContext(c)
	if !ok {
		logger.Error("Scope not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req dto.CreateVoucherRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, logger, err)
		return
	}

	voucher, err := h.voucherService.PostVoucher(c.Request.Context(), scope, req.ToDomain())
	if err != nil {
		respondError(c, logger, err, "Failed to post voucher")
		return
	}

	logger.Info("Voucher posted", slog.String("voucher_id", voucher.VoucherID))
	c.JSON(http.StatusCreated, dto.ToVoucherResponse(voucher))
}

func (h *voucherHandler) getVoucher(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	scope, ok := middleware.GetScopeFromContext(c)
	if !ok {
		logger.Error("Scope not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	voucher, err := h.voucherService.GetVoucher(c.Request.Context(), scope, c.Param("voucher_id"))
	if err != nil {
		respondError(c, logger, err, "Failed to get voucher")
		return
	}
	c.JSON(http.StatusOK, dto.ToVoucherResponse(voucher))
}
