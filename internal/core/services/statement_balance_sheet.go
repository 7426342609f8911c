package services

import (
	"log/slog"

	"github.com/SscSPs/ledger_report_engine/internal/core/domain"
	"github.com/SscSPs/ledger_report_engine/internal/core/ledger"
	"github.com/SscSPs/ledger_report_engine/internal/utils/accounting"
	"github.com/SscSPs/ledger_report_engine/internal/utils/decimalops"
	"github.com/shopspring/decimal"
)

// Balance sheet row codes.
const (
	TotalAssetCode              = "TOTAL_ASSET"
	TotalLiabilityCode          = "TOTAL_LIABILITY"
	TotalEquityCode             = "TOTAL_EQUITY"
	TotalLiabilityAndEquityCode = "TOTAL_LIABILITY_EQUITY"

	liquidAssetTotal     = "LIQUID_ASSET"
	liquidLiabilityTotal = "LIQUID_LIABILITY"
)

// BalanceSheetInfo holds the balance sheet metrics of one period.
type BalanceSheetInfo struct {
	TotalAssets               decimal.Decimal     `json:"totalAssets"`
	TotalLiabilities          decimal.Decimal     `json:"totalLiabilities"`
	TotalEquity               decimal.Decimal     `json:"totalEquity"`
	TotalLiabilitiesAndEquity decimal.Decimal     `json:"totalLiabilitiesAndEquity"`
	CurrentRatio              decimal.NullDecimal `json:"currentRatio"` // liquid assets / liquid liabilities
	DebtRatio                 decimal.NullDecimal `json:"debtRatio"`    // liabilities / assets
	EquityRatio               decimal.NullDecimal `json:"equityRatio"`  // equity / assets
	Balanced                  bool                `json:"balanced"`
}

type balanceSheet struct {
	calc *decimalops.Calculator
}

// NewBalanceSheetStatement returns the balance sheet strategy.
func NewBalanceSheetStatement(calc *decimalops.Calculator) Statement {
	return &balanceSheet{calc: calc}
}

func (s *balanceSheet) ReportType() domain.ReportType { return domain.BalanceSheet }

func (s *balanceSheet) AccountTypes() []domain.AccountType {
	return []domain.AccountType{domain.Asset, domain.Liability, domain.Equity}
}

func (s *balanceSheet) BuildTree(logger *slog.Logger, in StatementInput) *ledger.Forest {
	return buildAttachedForest(logger, in)
}

func (s *balanceSheet) BuildContentMap(forest *ledger.Forest, in StatementInput) (*ContentMap, error) {
	content := newContentMap()

	assetRoots := rootsOfType(forest, domain.Asset)
	liabilityRoots := rootsOfType(forest, domain.Liability)
	equityRoots := rootsOfType(forest, domain.Equity)

	totalAssets := sumBalances(forest, assetRoots)
	totalLiabilities := sumBalances(forest, liabilityRoots)
	totalEquity := sumBalances(forest, equityRoots)
	totalLE := totalLiabilities.Add(totalEquity)

	ofAssets := func(_ ledger.NodeID, b decimal.Decimal) decimal.NullDecimal { return share(s.calc, b, totalAssets) }
	ofLE := func(_ ledger.NodeID, b decimal.Decimal) decimal.NullDecimal { return share(s.calc, b, totalLE) }

	nodeRows(content, forest, assetRoots, 0, ofAssets)
	content.Add(&ContentNode{Code: TotalAssetCode, Name: "Total assets", Node: ledger.NoNode,
		Amount: amount(totalAssets), Percentage: share(s.calc, totalAssets, totalAssets)})

	nodeRows(content, forest, liabilityRoots, 0, ofLE)
	content.Add(&ContentNode{Code: TotalLiabilityCode, Name: "Total liabilities", Node: ledger.NoNode,
		Amount: amount(totalLiabilities), Percentage: share(s.calc, totalLiabilities, totalLE)})

	nodeRows(content, forest, equityRoots, 0, ofLE)
	content.Add(&ContentNode{Code: TotalEquityCode, Name: "Total equity", Node: ledger.NoNode,
		Amount: amount(totalEquity), Percentage: share(s.calc, totalEquity, totalLE)})

	content.Add(&ContentNode{Code: TotalLiabilityAndEquityCode, Name: "Total liabilities and equity", Node: ledger.NoNode,
		Amount: amount(totalLE), Percentage: share(s.calc, totalLE, totalLE)})

	content.Totals[TotalAssetCode] = totalAssets
	content.Totals[TotalLiabilityCode] = totalLiabilities
	content.Totals[TotalEquityCode] = totalEquity
	content.Totals[TotalLiabilityAndEquityCode] = totalLE
	content.Totals[liquidAssetTotal] = liquidBalance(forest, domain.Asset)
	content.Totals[liquidLiabilityTotal] = liquidBalance(forest, domain.Liability)
	return content, nil
}

func (s *balanceSheet) Flatten(content *ContentMap) []domain.StatementEntry {
	return flattenContent(content)
}

func (s *balanceSheet) OtherInfo(cur, prior *ContentMap) any {
	return PeriodInfo[BalanceSheetInfo]{Current: s.info(cur), Prior: s.info(prior)}
}

func (s *balanceSheet) info(content *ContentMap) BalanceSheetInfo {
	assets := content.Total(TotalAssetCode)
	liabilities := content.Total(TotalLiabilityCode)
	equity := content.Total(TotalEquityCode)
	le := content.Total(TotalLiabilityAndEquityCode)
	return BalanceSheetInfo{
		TotalAssets:               assets,
		TotalLiabilities:          liabilities,
		TotalEquity:               equity,
		TotalLiabilitiesAndEquity: le,
		CurrentRatio:              share(s.calc, content.Total(liquidAssetTotal), content.Total(liquidLiabilityTotal)),
		DebtRatio:                 share(s.calc, liabilities, assets),
		EquityRatio:               share(s.calc, equity, assets),
		Balanced:                  assets.Equal(le),
	}
}

// liquidBalance sums the own entries of every liquid account of type t, so
// nested liquid accounts are not counted twice.
func liquidBalance(forest *ledger.Forest, t domain.AccountType) decimal.Decimal {
	total := decimal.Zero
	forest.Walk(func(id ledger.NodeID, _ int) bool {
		node := forest.Node(id)
		if node.Account.AccountType != t || !node.Account.Liquidity {
			return true
		}
		for _, item := range node.Items {
			total = total.Add(accounting.SignedAmount(item, node.Account.Debit))
		}
		return true
	})
	return total
}
