package domain

import (
	"github.com/shopspring/decimal"
)

// StatementEntry is one position of a statement's content for a single period.
// Amount and Percentage are absent (Valid == false) for pure heading rows.
type StatementEntry struct {
	Code       string              `json:"code"`
	Name       string              `json:"name"`
	Amount     decimal.NullDecimal `json:"amount"`
	Percentage decimal.NullDecimal `json:"percentage"` // fraction, 0.25 means 25%
	Indent     int                 `json:"indent"`
}

// ReportRow is one rendered line of a statement comparing the current and prior periods.
type ReportRow struct {
	Code            string          `json:"code"`
	Name            string          `json:"name"`
	CurAmount       decimal.Decimal `json:"curAmount"`
	CurPercentage   decimal.Decimal `json:"curPercentage"` // whole percent, rounded half-up
	CurFormatted    string          `json:"curFormatted"`
	PriorAmount     decimal.Decimal `json:"priorAmount"`
	PriorPercentage decimal.Decimal `json:"priorPercentage"`
	PriorFormatted  string          `json:"priorFormatted"`
	Indent          int             `json:"indent"`
}

// FinancialReport is the output of one statement generation.
type FinancialReport struct {
	ReportType  ReportType  `json:"reportType"`
	Scope       Scope       `json:"scope"`
	Period      PeriodRange `json:"period"`
	PriorPeriod PeriodRange `json:"priorPeriod"`
	Content     []ReportRow `json:"content"`
	OtherInfo   any         `json:"otherInfo"`
}

// LedgerRow is a line item annotated with running totals.
type LedgerRow struct {
	LineItem
	DebitAmount  decimal.Decimal `json:"debitAmount"`
	CreditAmount decimal.Decimal `json:"creditAmount"`
	Balance      decimal.Decimal `json:"balance"`
}

// AccountLedger is the chronological record of one account over a period.
type AccountLedger struct {
	Account       Account         `json:"account"`
	Period        PeriodRange     `json:"period"`
	OpeningDebit  decimal.Decimal `json:"openingDebit"`
	OpeningCredit decimal.Decimal `json:"openingCredit"`
	Rows          []LedgerRow     `json:"rows"`
	ClosingDebit  decimal.Decimal `json:"closingDebit"`
	ClosingCredit decimal.Decimal `json:"closingCredit"`
	Balance       decimal.Decimal `json:"balance"`
}

// TrialBalanceItem holds per-account debit and credit totals for the three cohorts.
// Ending is cumulative: beginning plus midterm.
type TrialBalanceItem struct {
	AccountID       string          `json:"accountID"`
	Code            string          `json:"code"`
	Name            string          `json:"name"`
	AccountType     AccountType     `json:"accountType"`
	BeginningDebit  decimal.Decimal `json:"beginningDebit"`
	BeginningCredit decimal.Decimal `json:"beginningCredit"`
	MidtermDebit    decimal.Decimal `json:"midtermDebit"`
	MidtermCredit   decimal.Decimal `json:"midtermCredit"`
	EndingDebit     decimal.Decimal `json:"endingDebit"`
	EndingCredit    decimal.Decimal `json:"endingCredit"`
}

// TrialBalanceTotals sums every TrialBalanceItem column.
type TrialBalanceTotals struct {
	BeginningDebit  decimal.Decimal `json:"beginningDebit"`
	BeginningCredit decimal.Decimal `json:"beginningCredit"`
	MidtermDebit    decimal.Decimal `json:"midtermDebit"`
	MidtermCredit   decimal.Decimal `json:"midtermCredit"`
	EndingDebit     decimal.Decimal `json:"endingDebit"`
	EndingCredit    decimal.Decimal `json:"endingCredit"`
}

// TrialBalanceReport is the trial balance for one period.
type TrialBalanceReport struct {
	Period   PeriodRange        `json:"period"`
	Items    []TrialBalanceItem `json:"items"`
	Totals   TrialBalanceTotals `json:"totals"`
	Balanced bool               `json:"balanced"`
}

// TrialBalanceSort is the caller's requested ordering. Field names are mapped
// through a fixed whitelist before use.
type TrialBalanceSort struct {
	SortBy string `json:"sortBy"`
	Order  string `json:"order"`
}
