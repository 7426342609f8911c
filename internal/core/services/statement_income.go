package services

import (
	"log/slog"

	"github.com/SscSPs/ledger_report_engine/internal/core/domain"
	"github.com/SscSPs/ledger_report_engine/internal/core/ledger"
	"github.com/SscSPs/ledger_report_engine/internal/utils/decimalops"
	"github.com/shopspring/decimal"
)

// Income statement row codes.
const (
	TotalRevenueCode = "TOTAL_REVENUE"
	TotalExpenseCode = "TOTAL_EXPENSE"
	NetIncomeCode    = "NET_INCOME"
)

// IncomeStatementInfo holds the income statement metrics of one period.
type IncomeStatementInfo struct {
	TotalRevenue decimal.Decimal     `json:"totalRevenue"`
	TotalExpense decimal.Decimal     `json:"totalExpense"`
	NetIncome    decimal.Decimal     `json:"netIncome"`
	NetMargin    decimal.NullDecimal `json:"netMargin"`    // net income / revenue
	ExpenseRatio decimal.NullDecimal `json:"expenseRatio"` // expenses / revenue
}

type incomeStatement struct {
	calc *decimalops.Calculator
}

// NewIncomeStatement returns the income statement strategy.
func NewIncomeStatement(calc *decimalops.Calculator) Statement {
	return &incomeStatement{calc: calc}
}

func (s *incomeStatement) ReportType() domain.ReportType { return domain.IncomeStatement }

func (s *incomeStatement) AccountTypes() []domain.AccountType {
	return []domain.AccountType{domain.Revenue, domain.Expense}
}

func (s *incomeStatement) BuildTree(logger *slog.Logger, in StatementInput) *ledger.Forest {
	return buildAttachedForest(logger, in)
}

func (s *incomeStatement) BuildContentMap(forest *ledger.Forest, in StatementInput) (*ContentMap, error) {
	content := newContentMap()

	revenueRoots := rootsOfType(forest, domain.Revenue)
	expenseRoots := rootsOfType(forest, domain.Expense)
	revenue := sumBalances(forest, revenueRoots)
	expense := sumBalances(forest, expenseRoots)
	net := revenue.Sub(expense)

	ofRevenue := func(_ ledger.NodeID, b decimal.Decimal) decimal.NullDecimal { return share(s.calc, b, revenue) }

	nodeRows(content, forest, revenueRoots, 0, ofRevenue)
	content.Add(&ContentNode{Code: TotalRevenueCode, Name: "Total revenue", Node: ledger.NoNode,
		Amount: amount(revenue), Percentage: share(s.calc, revenue, revenue)})

	nodeRows(content, forest, expenseRoots, 0, ofRevenue)
	content.Add(&ContentNode{Code: TotalExpenseCode, Name: "Total expenses", Node: ledger.NoNode,
		Amount: amount(expense), Percentage: share(s.calc, expense, revenue)})

	content.Add(&ContentNode{Code: NetIncomeCode, Name: "Net income", Node: ledger.NoNode,
		Amount: amount(net), Percentage: share(s.calc, net, revenue)})

	content.Totals[TotalRevenueCode] = revenue
	content.Totals[TotalExpenseCode] = expense
	content.Totals[NetIncomeCode] = net
	return content, nil
}

func (s *incomeStatement) Flatten(content *ContentMap) []domain.StatementEntry {
	return flattenContent(content)
}

func (s *incomeStatement) OtherInfo(cur, prior *ContentMap) any {
	return PeriodInfo[IncomeStatementInfo]{Current: s.info(cur), Prior: s.info(prior)}
}

func (s *incomeStatement) info(content *ContentMap) IncomeStatementInfo {
	revenue := content.Total(TotalRevenueCode)
	expense := content.Total(TotalExpenseCode)
	net := content.Total(NetIncomeCode)
	return IncomeStatementInfo{
		TotalRevenue: revenue,
		TotalExpense: expense,
		NetIncome:    net,
		NetMargin:    share(s.calc, net, revenue),
		ExpenseRatio: share(s.calc, expense, revenue),
	}
}
