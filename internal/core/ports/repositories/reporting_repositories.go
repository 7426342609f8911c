package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/ledger_report_engine/internal/core/domain"
)

// LineItemReader defines read operations for posted line items
type LineItemReader interface {
	// FindLineItems retrieves the line items posted to accounts of the given types
	// whose voucher date lies in the inclusive window [start, end].
	FindLineItems(ctx context.Context, scope domain.Scope, accountTypes []domain.AccountType, start, end time.Time) ([]domain.LineItem, error)
}

// ReportingRepository combines the reads a report computation depends on
type ReportingRepository interface {
	AccountReader
	LineItemReader
}
