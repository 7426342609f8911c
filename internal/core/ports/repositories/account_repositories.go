package repositories

import (
	"context"

	"github.com/SscSPs/ledger_report_engine/internal/core/domain"
)

// AccountFilter narrows an account lookup.
type AccountFilter struct {
	ForUserOnly bool     // only leaf accounts usable for posting
	Codes       []string // restrict to these codes when non-empty
}

// AccountReader defines read operations for chart-of-accounts data
type AccountReader interface {
	// FindAccounts retrieves the accounts of one type for a scope, in chart order.
	FindAccounts(ctx context.Context, scope domain.Scope, accountType domain.AccountType, filter AccountFilter) ([]domain.Account, error)

	// FindAccountsByIDs retrieves accounts keyed by id. Unknown ids are omitted from the result.
	FindAccountsByIDs(ctx context.Context, scope domain.Scope, accountIDs []string) (map[string]domain.Account, error)
}
