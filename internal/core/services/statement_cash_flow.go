package services

import (
	"fmt"
	"log/slog"
	"os"
	"sort"
	"strings"

	"github.com/SscSPs/ledger_report_engine/internal/apperrors"
	"github.com/SscSPs/ledger_report_engine/internal/core/domain"
	"github.com/SscSPs/ledger_report_engine/internal/core/ledger"
	"github.com/SscSPs/ledger_report_engine/internal/utils/accounting"
	"github.com/SscSPs/ledger_report_engine/internal/utils/decimalops"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// Cash flow row codes.
const (
	NetChangeCode    = "NET_CHANGE"
	unclassifiedCode = "UNCLASSIFIED"
)

// CashFlowInfo holds the cash flow metrics of one period.
type CashFlowInfo struct {
	Operating    decimal.Decimal `json:"operating"`
	Investing    decimal.Decimal `json:"investing"`
	Financing    decimal.Decimal `json:"financing"`
	NetChange    decimal.Decimal `json:"netChange"`
	Unclassified decimal.Decimal `json:"unclassified"` // cash moved by vouchers no line matched
}

// DefaultCashFlowLines classifies vouchers by the code ranges of a conventional
// chart: 15xx/16xx long-term assets, 25xx-29xx long-term debt, 3xxx equity.
// The operating line has no pattern and catches everything else.
func DefaultCashFlowLines() []domain.CashFlowLine {
	either := func(exprs ...string) *domain.EitherPattern {
		return &domain.EitherPattern{Debit: domain.Code(exprs...), Credit: domain.Code(exprs...)}
	}
	return []domain.CashFlowLine{
		{Code: "CF_INV_LONG_TERM_ASSETS", Name: "Purchase and sale of long-term assets", Activity: domain.InvestingActivity, Pattern: either("^15", "^16")},
		{Code: "CF_FIN_DEBT", Name: "Borrowings and repayments", Activity: domain.FinancingActivity, Pattern: either("^2[5-9]")},
		{Code: "CF_FIN_EQUITY", Name: "Equity contributions and distributions", Activity: domain.FinancingActivity, Pattern: either("^3")},
		{Code: "CF_OPE_GENERAL", Name: "Cash from operations", Activity: domain.OperatingActivity},
	}
}

type cashFlowRules struct {
	Lines []domain.CashFlowLineSpec `yaml:"lines"`
}

// LoadCashFlowLines reads cash flow lines from a YAML file of the form
// `lines: [{code, name, activity, debit, credit}]`. Lines are evaluated in file order.
func LoadCashFlowLines(path string) ([]domain.CashFlowLine, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading cash flow rules: %w", err)
	}
	return ParseCashFlowLines(raw)
}

// ParseCashFlowLines decodes the YAML rule format used by LoadCashFlowLines.
func ParseCashFlowLines(raw []byte) ([]domain.CashFlowLine, error) {
	var rules cashFlowRules
	if err := yaml.Unmarshal(raw, &rules); err != nil {
		return nil, fmt.Errorf("%w: parsing cash flow rules: %v", apperrors.ErrValidation, err)
	}
	if len(rules.Lines) == 0 {
		return nil, fmt.Errorf("%w: cash flow rules define no lines", apperrors.ErrValidation)
	}
	lines := make([]domain.CashFlowLine, 0, len(rules.Lines))
	for _, spec := range rules.Lines {
		if spec.Code == "" {
			return nil, fmt.Errorf("%w: cash flow line without code", apperrors.ErrValidation)
		}
		if !knownActivity(spec.Activity) {
			return nil, fmt.Errorf("%w: cash flow line %s has unknown activity %q", apperrors.ErrValidation, spec.Code, spec.Activity)
		}
		lines = append(lines, spec.Line())
	}
	return lines, nil
}

func knownActivity(a domain.CashFlowActivity) bool {
	for _, known := range domain.CashFlowActivities {
		if a == known {
			return true
		}
	}
	return false
}

type cashFlowStatement struct {
	calc    *decimalops.Calculator
	matcher *accounting.Matcher
	lines   []domain.CashFlowLine
}

// NewCashFlowStatement returns the cash flow strategy. Empty lines fall back to
// DefaultCashFlowLines.
func NewCashFlowStatement(calc *decimalops.Calculator, matcher *accounting.Matcher, lines []domain.CashFlowLine) Statement {
	if len(lines) == 0 {
		lines = DefaultCashFlowLines()
	}
	return &cashFlowStatement{calc: calc, matcher: matcher, lines: lines}
}

func (s *cashFlowStatement) ReportType() domain.ReportType { return domain.CashFlowStatement }

func (s *cashFlowStatement) AccountTypes() []domain.AccountType {
	return []domain.AccountType{domain.Asset, domain.Liability, domain.Equity, domain.Revenue, domain.Expense}
}

func (s *cashFlowStatement) BuildTree(logger *slog.Logger, in StatementInput) *ledger.Forest {
	return buildAttachedForest(logger, in)
}

// voucherLegs is one voucher's account codes per side and its net cash movement.
type voucherLegs struct {
	id           string
	debitCodes   []string
	creditCodes  []string
	cashMovement decimal.Decimal
	touchesCash  bool
}

func (s *cashFlowStatement) BuildContentMap(forest *ledger.Forest, in StatementInput) (*ContentMap, error) {
	lineTotals := make([]decimal.Decimal, len(s.lines))
	unclassified := decimal.Zero

	for _, v := range groupVouchers(forest, in.Items) {
		if !v.touchesCash || v.cashMovement.IsZero() {
			continue
		}
		matched := false
		for i, line := range s.lines {
			ok, err := s.matcher.MatchEitherPattern(line.Pattern, v.debitCodes, v.creditCodes)
			if err != nil {
				return nil, fmt.Errorf("classifying voucher %s with line %s: %w", v.id, line.Code, err)
			}
			if ok {
				lineTotals[i] = lineTotals[i].Add(v.cashMovement)
				matched = true
				break
			}
		}
		if !matched {
			unclassified = unclassified.Add(v.cashMovement)
		}
	}

	content := newContentMap()
	net := decimal.Zero
	for _, activity := range domain.CashFlowActivities {
		bucket := decimal.Zero
		for i, line := range s.lines {
			if line.Activity == activity {
				bucket = bucket.Add(lineTotals[i])
			}
		}
		content.Add(&ContentNode{
			Code:   "CF_" + strings.ToUpper(string(activity)),
			Name:   "Cash flows from " + string(activity) + " activities",
			Node:   ledger.NoNode,
			Amount: amount(bucket),
		})
		for i, line := range s.lines {
			if line.Activity != activity {
				continue
			}
			content.Add(&ContentNode{
				Code:       line.Code,
				Name:       line.Name,
				Node:       ledger.NoNode,
				Amount:     amount(lineTotals[i]),
				Percentage: share(s.calc, lineTotals[i], bucket),
				Indent:     1,
			})
		}
		content.Totals[string(activity)] = bucket
		net = net.Add(bucket)
	}
	content.Add(&ContentNode{Code: NetChangeCode, Name: "Net change in cash", Node: ledger.NoNode, Amount: amount(net)})

	content.Totals[NetChangeCode] = net
	content.Totals[unclassifiedCode] = unclassified
	return content, nil
}

// groupVouchers collects line items by voucher, ordered by voucher date then id.
// Cash legs are those posted to liquid asset accounts.
func groupVouchers(forest *ledger.Forest, items []domain.LineItem) []*voucherLegs {
	byID := make(map[string]*voucherLegs)
	dates := make(map[string]int64)
	var order []*voucherLegs

	for _, item := range items {
		id, ok := forest.FindByAccountID(item.AccountID)
		if !ok {
			continue
		}
		acc := forest.Node(id).Account
		v, exists := byID[item.Voucher.VoucherID]
		if !exists {
			v = &voucherLegs{id: item.Voucher.VoucherID}
			byID[v.id] = v
			dates[v.id] = item.Voucher.Date.Unix()
			order = append(order, v)
		}
		if item.Debit {
			v.debitCodes = append(v.debitCodes, acc.Code)
		} else {
			v.creditCodes = append(v.creditCodes, acc.Code)
		}
		if acc.AccountType == domain.Asset && acc.Liquidity {
			v.touchesCash = true
			// cash accounts are debit-normal, so debits bring cash in
			v.cashMovement = v.cashMovement.Add(accounting.SignedAmount(item, true))
		}
	}

	sort.SliceStable(order, func(i, j int) bool {
		if dates[order[i].id] != dates[order[j].id] {
			return dates[order[i].id] < dates[order[j].id]
		}
		return order[i].id < order[j].id
	})
	return order
}

func (s *cashFlowStatement) Flatten(content *ContentMap) []domain.StatementEntry {
	return flattenContent(content)
}

func (s *cashFlowStatement) OtherInfo(cur, prior *ContentMap) any {
	return PeriodInfo[CashFlowInfo]{Current: cashFlowInfo(cur), Prior: cashFlowInfo(prior)}
}

func cashFlowInfo(content *ContentMap) CashFlowInfo {
	return CashFlowInfo{
		Operating:    content.Total(string(domain.OperatingActivity)),
		Investing:    content.Total(string(domain.InvestingActivity)),
		Financing:    content.Total(string(domain.FinancingActivity)),
		NetChange:    content.Total(NetChangeCode),
		Unclassified: content.Total(unclassifiedCode),
	}
}
