package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/SscSPs/ledger_report_engine/internal/apperrors"
	"github.com/SscSPs/ledger_report_engine/internal/core/domain"
	"github.com/SscSPs/ledger_report_engine/internal/core/ledger"
	portsrepo "github.com/SscSPs/ledger_report_engine/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/ledger_report_engine/internal/core/ports/services"
	"github.com/shopspring/decimal"
)

// ledgerService implements the LedgerService interface
type ledgerService struct {
	BaseService
	reportingRepo portsrepo.ReportingRepository
}

// NewLedgerService creates a new ledger export service
func NewLedgerService(repo portsrepo.ReportingRepository) portssvc.LedgerService {
	return &ledgerService{reportingRepo: repo}
}

var _ portssvc.LedgerService = (*ledgerService)(nil)

// AccountLedger returns the ledger of the account with the given code. The
// opening totals are the entries of the account and its descendants dated before
// the period; the rows are the in-window entries of the same subtree.
func (s *ledgerService) AccountLedger(ctx context.Context, scope domain.Scope, accountCode string, period domain.PeriodRange) (*domain.AccountLedger, error) {
	if err := period.Validate(); err != nil {
		return nil, err
	}

	data, err := fetchStatementData(ctx, s.reportingRepo, scope, domain.AllAccountTypes)
	if err != nil {
		s.LogError(ctx, err, "Failed to retrieve accounts for ledger", scopeAttrs(scope)...)
		return nil, fmt.Errorf("failed to retrieve accounts: %w", err)
	}

	forest := ledger.BuildForest(s.GetLogger(ctx), data.accounts)
	id, ok := forest.FindByCode(accountCode)
	if !ok {
		return nil, fmt.Errorf("%w: account with code %s", apperrors.ErrNotFound, accountCode)
	}

	subtree := map[string]bool{forest.Node(id).Account.AccountID: true}
	types := []domain.AccountType{forest.Node(id).Account.AccountType}
	for _, d := range forest.Descendants(id) {
		acc := forest.Node(d).Account
		subtree[acc.AccountID] = true
		if !containsType(types, acc.AccountType) {
			types = append(types, acc.AccountType)
		}
	}

	items, err := s.reportingRepo.FindLineItems(ctx, scope, types, domain.Epoch, period.End)
	if err != nil {
		s.LogError(ctx, err, "Failed to retrieve line items for ledger",
			slog.String("account_code", accountCode))
		return nil, fmt.Errorf("failed to retrieve line items: %w", err)
	}

	openingDebit, openingCredit := decimal.Zero, decimal.Zero
	for _, item := range items {
		if !subtree[item.AccountID] || item.Voucher.Date.After(period.End) {
			continue
		}
		if item.Voucher.Date.Before(period.Start) {
			if item.Debit {
				openingDebit = openingDebit.Add(item.Amount)
			} else {
				openingCredit = openingCredit.Add(item.Amount)
			}
			continue
		}
		forest.AddData(id, item)
	}
	forest.SetOpeningBalance(id, openingDebit, openingCredit)

	result := &domain.AccountLedger{
		Account:       forest.Node(id).Account,
		Period:        period,
		OpeningDebit:  openingDebit,
		OpeningCredit: openingCredit,
		Rows:          forest.Ledger(id),
		ClosingDebit:  openingDebit,
		ClosingCredit: openingCredit,
	}
	if n := len(result.Rows); n > 0 {
		result.ClosingDebit = result.Rows[n-1].DebitAmount
		result.ClosingCredit = result.Rows[n-1].CreditAmount
	}
	result.Balance = result.ClosingDebit.Sub(result.ClosingCredit)

	s.LogInfo(ctx, "Account ledger generated successfully",
		slog.String("account_code", accountCode),
		slog.Int("row_count", len(result.Rows)))
	return result, nil
}

func containsType(types []domain.AccountType, t domain.AccountType) bool {
	for _, known := range types {
		if known == t {
			return true
		}
	}
	return false
}
