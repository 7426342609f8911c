package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/SscSPs/ledger_report_engine/internal/core/domain"
	"github.com/gin-gonic/gin"
)

// TenantHeader carries the tenant resolved by the upstream gateway.
const TenantHeader = "X-Tenant-ID"

// TenantScope builds the computation scope from the tenant header and the
// company_id route parameter. Requests without a tenant are rejected.
func TenantScope() gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := GetLoggerFromContext(c)

		tenantID := strings.TrimSpace(c.GetHeader(TenantHeader))
		if tenantID == "" {
			logger.Warn("Missing tenant header", slog.String("header", TenantHeader))
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Missing " + TenantHeader + " header"})
			return
		}

		scope := domain.Scope{TenantID: tenantID, CompanyID: c.Param("company_id")}
		c.Set(string(scopeKey), scope)
		c.Request = c.Request.WithContext(context.WithValue(c.Request.Context(), scopeKey, scope))

		c.Next()
	}
}
