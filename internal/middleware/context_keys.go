package middleware

import (
	"github.com/SscSPs/ledger_report_engine/internal/core/domain"
	"github.com/gin-gonic/gin"
)

// scopeKey is the key used to store the resolved tenant scope in the Gin context.
const scopeKey = contextKey("scope")

// GetScopeFromContext retrieves the tenant scope set by TenantScope.
// The company id always comes from the route parameter.
func GetScopeFromContext(c *gin.Context) (domain.Scope, bool) {
	val, exists := c.Get(string(scopeKey))
	if !exists {
		if v := c.Request.Context().Value(scopeKey); v != nil {
			scope, ok := v.(domain.Scope)
			return scope, ok
		}
		return domain.Scope{}, false
	}

	scope, ok := val.(domain.Scope)
	return scope, ok
}
