package domain

import (
	"fmt"
	"strings"

	"github.com/SscSPs/ledger_report_engine/internal/apperrors"
)

// AccountType defines the fundamental accounting type of an account.
type AccountType string

const (
	Asset     AccountType = "ASSET"
	Liability AccountType = "LIABILITY"
	Equity    AccountType = "EQUITY"
	Revenue   AccountType = "REVENUE"
	Expense   AccountType = "EXPENSE"
	Other     AccountType = "OTHER"
)

// AllAccountTypes lists the account types in chart-of-accounts order.
var AllAccountTypes = []AccountType{Asset, Liability, Equity, Revenue, Expense, Other}

// ParseAccountType converts a case-insensitive name into an AccountType.
func ParseAccountType(s string) (AccountType, error) {
	t := AccountType(strings.ToUpper(strings.TrimSpace(s)))
	for _, known := range AllAccountTypes {
		if t == known {
			return t, nil
		}
	}
	return "", fmt.Errorf("%w: unknown account type %q", apperrors.ErrValidation, s)
}

// NormalDebit reports the conventional normal balance side of the type
// (assets and expenses increase on the debit side).
func (t AccountType) NormalDebit() bool {
	return t == Asset || t == Expense
}

// Account is a chart-of-accounts record. It is reference data and is not
// modified while a report is being computed.
type Account struct {
	AccountID   string      `json:"accountID" yaml:"id"`
	Code        string      `json:"code" yaml:"code"`             // hierarchical, prefix based
	Name        string      `json:"name" yaml:"name"`             // display name
	AccountType AccountType `json:"accountType" yaml:"type"`      // ASSET, LIABILITY, etc.
	Debit       bool        `json:"debit" yaml:"debit"`           // normal balance side
	Liquidity   bool        `json:"liquidity" yaml:"liquidity"`   // cash or cash equivalent
	ParentCode  string      `json:"parentCode" yaml:"parentCode"` // empty for top-level accounts
	RootCode    string      `json:"rootCode" yaml:"rootCode"`     // top-level ancestor code
	Level       int         `json:"level" yaml:"level"`           // depth as recorded in the chart
	ForUser     bool        `json:"forUser" yaml:"forUser"`       // leaf usable for posting
}

// Scope identifies the tenant and company a computation runs for.
type Scope struct {
	TenantID  string `json:"tenantID"`
	CompanyID string `json:"companyID"`
}
