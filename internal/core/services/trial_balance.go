package services

import (
	"fmt"
	"sort"
	"strings"

	"github.com/SscSPs/ledger_report_engine/internal/apperrors"
	"github.com/SscSPs/ledger_report_engine/internal/core/domain"
	"github.com/SscSPs/ledger_report_engine/internal/utils/decimalops"
	"github.com/shopspring/decimal"
)

// ErrInvalidSortKey is returned for a sort field or order outside the whitelist.
var ErrInvalidSortKey = fmt.Errorf("%w: invalid sort key", apperrors.ErrValidation)

type trialBalanceSortField int

const (
	sortByCode trialBalanceSortField = iota
	sortByName
	sortByAmount
)

// trialBalanceSortFields is the whitelist of accepted sort names.
var trialBalanceSortFields = map[string]trialBalanceSortField{
	"":            sortByCode,
	"code":        sortByCode,
	"accountcode": sortByCode,
	"name":        sortByName,
	"accountname": sortByName,
	"amount":      sortByAmount,
}

func resolveTrialBalanceSort(opt domain.TrialBalanceSort) (trialBalanceSortField, bool, error) {
	field, ok := trialBalanceSortFields[strings.ToLower(strings.TrimSpace(opt.SortBy))]
	if !ok {
		return 0, false, fmt.Errorf("%w: sort field %q", ErrInvalidSortKey, opt.SortBy)
	}
	switch strings.ToLower(strings.TrimSpace(opt.Order)) {
	case "", "asc":
		return field, false, nil
	case "desc":
		return field, true, nil
	}
	return 0, false, fmt.Errorf("%w: sort order %q", ErrInvalidSortKey, opt.Order)
}

// ProcessTrialBalance partitions items per account into the beginning cohort
// (before start), the midterm cohort (inside the period) and the cumulative ending
// cohort. Items after the period end are ignored. Only accounts with activity
// get a row.
func ProcessTrialBalance(accounts []domain.Account, items []domain.LineItem, period domain.PeriodRange, opt domain.TrialBalanceSort) (*domain.TrialBalanceReport, error) {
	if err := period.Validate(); err != nil {
		return nil, err
	}
	field, desc, err := resolveTrialBalanceSort(opt)
	if err != nil {
		return nil, err
	}

	byID := make(map[string]domain.Account, len(accounts))
	for _, acc := range accounts {
		if _, exists := byID[acc.AccountID]; !exists {
			byID[acc.AccountID] = acc
		}
	}

	rows := make(map[string]*domain.TrialBalanceItem)
	var order []string
	for _, item := range items {
		date := item.Voucher.Date
		if date.After(period.End) {
			continue
		}
		acc, ok := byID[item.AccountID]
		if !ok {
			return nil, fmt.Errorf("%w: account %s referenced by line item %s", apperrors.ErrNotFound, item.AccountID, item.LineItemID)
		}
		row, exists := rows[acc.AccountID]
		if !exists {
			row = &domain.TrialBalanceItem{AccountID: acc.AccountID, Code: acc.Code, Name: acc.Name, AccountType: acc.AccountType}
			rows[acc.AccountID] = row
			order = append(order, acc.AccountID)
		}

		beginning := date.Before(period.Start)
		switch {
		case beginning && item.Debit:
			row.BeginningDebit = row.BeginningDebit.Add(item.Amount)
		case beginning:
			row.BeginningCredit = row.BeginningCredit.Add(item.Amount)
		case item.Debit:
			row.MidtermDebit = row.MidtermDebit.Add(item.Amount)
		default:
			row.MidtermCredit = row.MidtermCredit.Add(item.Amount)
		}
	}

	report := &domain.TrialBalanceReport{Period: period, Items: make([]domain.TrialBalanceItem, 0, len(order))}
	for _, id := range order {
		row := rows[id]
		row.EndingDebit = row.BeginningDebit.Add(row.MidtermDebit)
		row.EndingCredit = row.BeginningCredit.Add(row.MidtermCredit)
		report.Items = append(report.Items, *row)
	}

	sortTrialBalance(report.Items, field, desc)

	var debits, credits []decimal.Decimal
	for _, row := range report.Items {
		t := &report.Totals
		t.BeginningDebit = t.BeginningDebit.Add(row.BeginningDebit)
		t.BeginningCredit = t.BeginningCredit.Add(row.BeginningCredit)
		t.MidtermDebit = t.MidtermDebit.Add(row.MidtermDebit)
		t.MidtermCredit = t.MidtermCredit.Add(row.MidtermCredit)
		t.EndingDebit = t.EndingDebit.Add(row.EndingDebit)
		t.EndingCredit = t.EndingCredit.Add(row.EndingCredit)
		debits = append(debits, row.EndingDebit)
		credits = append(credits, row.EndingCredit)
	}
	report.Balanced = decimalops.IsBalancedDecimal(debits, credits)
	return report, nil
}

func sortTrialBalance(items []domain.TrialBalanceItem, field trialBalanceSortField, desc bool) {
	less := func(a, b domain.TrialBalanceItem) bool {
		switch field {
		case sortByName:
			return a.Name < b.Name
		case sortByAmount:
			return a.EndingDebit.Sub(a.EndingCredit).LessThan(b.EndingDebit.Sub(b.EndingCredit))
		default:
			return a.Code < b.Code
		}
	}
	sort.SliceStable(items, func(i, j int) bool {
		if desc {
			return less(items[j], items[i])
		}
		return less(items[i], items[j])
	})
}
