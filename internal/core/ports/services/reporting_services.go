package services

import (
	"context"

	"github.com/SscSPs/ledger_report_engine/internal/core/domain"
)

// ReportingService defines operations for generating financial statements
type ReportingService interface {
	// GenerateReport builds a statement for the period together with the derived prior period.
	GenerateReport(ctx context.Context, scope domain.Scope, reportType domain.ReportType, period domain.PeriodRange) (*domain.FinancialReport, error)
}

// TrialBalanceService defines operations for producing trial balances
type TrialBalanceService interface {
	// TrialBalance aggregates beginning, midterm and ending totals per account.
	TrialBalance(ctx context.Context, scope domain.Scope, period domain.PeriodRange, sort domain.TrialBalanceSort) (*domain.TrialBalanceReport, error)
}

// LedgerService defines operations for exporting account ledgers
type LedgerService interface {
	// AccountLedger returns the chronological ledger of one account over the period.
	AccountLedger(ctx context.Context, scope domain.Scope, accountCode string, period domain.PeriodRange) (*domain.AccountLedger, error)
}
