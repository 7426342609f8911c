package services

import (
	"log/slog"

	"github.com/SscSPs/ledger_report_engine/internal/core/domain"
	"github.com/SscSPs/ledger_report_engine/internal/core/ledger"
	"github.com/SscSPs/ledger_report_engine/internal/utils/decimalops"
	"github.com/shopspring/decimal"
)

// StatementInput is the data one period of a statement is computed from.
type StatementInput struct {
	Period   domain.PeriodRange
	Accounts []domain.Account
	Items    []domain.LineItem
}

// Statement is implemented by every financial statement. The shared pipeline in
// reportingService.generate drives the hooks for the current and the prior period.
type Statement interface {
	ReportType() domain.ReportType
	// AccountTypes lists the account types whose accounts and line items are read.
	AccountTypes() []domain.AccountType
	// BuildTree builds the statement's account forest with line items attached.
	BuildTree(logger *slog.Logger, in StatementInput) *ledger.Forest
	// BuildContentMap computes the ordered code to amount and percentage map.
	BuildContentMap(forest *ledger.Forest, in StatementInput) (*ContentMap, error)
	// Flatten renders the map into ordered entries with indent levels.
	Flatten(content *ContentMap) []domain.StatementEntry
	// OtherInfo computes statement-specific metrics.
	OtherInfo(cur, prior *ContentMap) any
}

// ContentNode is one position of a statement. Node is ledger.NoNode for
// synthetic rows such as totals and headers.
type ContentNode struct {
	Code       string
	Name       string
	Node       ledger.NodeID
	Amount     decimal.NullDecimal
	Percentage decimal.NullDecimal
	Indent     int
}

// ContentMap is an insertion-ordered map of statement positions keyed by code,
// plus the named totals the metrics are derived from.
type ContentMap struct {
	nodes  []*ContentNode
	index  map[string]int
	Totals map[string]decimal.Decimal
}

func newContentMap() *ContentMap {
	return &ContentMap{index: make(map[string]int), Totals: make(map[string]decimal.Decimal)}
}

// Add appends a position. A repeated code keeps its position in the order but
// Get keeps returning the first one.
func (m *ContentMap) Add(n *ContentNode) {
	if _, exists := m.index[n.Code]; !exists {
		m.index[n.Code] = len(m.nodes)
	}
	m.nodes = append(m.nodes, n)
}

// Get returns the position for code.
func (m *ContentMap) Get(code string) (*ContentNode, bool) {
	i, ok := m.index[code]
	if !ok {
		return nil, false
	}
	return m.nodes[i], true
}

// Nodes returns the positions in order.
func (m *ContentMap) Nodes() []*ContentNode { return m.nodes }

// Len returns the number of positions.
func (m *ContentMap) Len() int { return len(m.nodes) }

// Total returns a named total, zero when absent.
func (m *ContentMap) Total(name string) decimal.Decimal {
	if m == nil {
		return decimal.Zero
	}
	return m.Totals[name]
}

// flattenContent is the default Flatten hook.
func flattenContent(content *ContentMap) []domain.StatementEntry {
	entries := make([]domain.StatementEntry, 0, content.Len())
	for _, n := range content.Nodes() {
		entries = append(entries, domain.StatementEntry{
			Code:       n.Code,
			Name:       n.Name,
			Amount:     n.Amount,
			Percentage: n.Percentage,
			Indent:     n.Indent,
		})
	}
	return entries
}

// share returns part/base, absent when base is zero.
func share(calc *decimalops.Calculator, part, base decimal.Decimal) decimal.NullDecimal {
	ratio, err := calc.DivDecimal(part, base)
	if err != nil {
		return decimal.NullDecimal{}
	}
	return decimal.NewNullDecimal(ratio)
}

func amount(x decimal.Decimal) decimal.NullDecimal { return decimal.NewNullDecimal(x) }

// PeriodInfo pairs a statement metric record for both compared periods.
type PeriodInfo[T any] struct {
	Current T `json:"current"`
	Prior   T `json:"prior"`
}

// BuildReportRows zips the current and prior entries positionally into report
// rows. Both slices come from the same walk of the same statement definition;
// when their lengths differ no rows are produced.
func BuildReportRows(calc *decimalops.Calculator, logger *slog.Logger, cur, prior []domain.StatementEntry) []domain.ReportRow {
	if len(cur) != len(prior) {
		if logger != nil {
			logger.Warn("Current and prior statement content differ in length, returning no rows",
				slog.Int("current_rows", len(cur)), slog.Int("prior_rows", len(prior)))
		}
		return []domain.ReportRow{}
	}

	hundred := decimal.NewFromInt(100)
	rows := make([]domain.ReportRow, len(cur))
	for i := range cur {
		curAmount, curPct := valueOrZero(cur[i].Amount), valueOrZero(cur[i].Percentage)
		priorAmount, priorPct := valueOrZero(prior[i].Amount), valueOrZero(prior[i].Percentage)
		rows[i] = domain.ReportRow{
			Code:            cur[i].Code,
			Name:            cur[i].Name,
			CurAmount:       curAmount,
			CurPercentage:   calc.RoundDecimal(curPct.Mul(hundred), 0),
			CurFormatted:    calc.FormatAmount(curAmount),
			PriorAmount:     priorAmount,
			PriorPercentage: calc.RoundDecimal(priorPct.Mul(hundred), 0),
			PriorFormatted:  calc.FormatAmount(priorAmount),
			Indent:          cur[i].Indent,
		}
	}
	return rows
}

func valueOrZero(x decimal.NullDecimal) decimal.Decimal {
	if !x.Valid {
		return decimal.Zero
	}
	return x.Decimal
}

// nodeRows adds one position per node of the subtrees rooted at roots, pre-order,
// with the position's indent equal to its depth plus base.
func nodeRows(content *ContentMap, forest *ledger.Forest, roots []ledger.NodeID, base int,
	percentage func(id ledger.NodeID, balance decimal.Decimal) decimal.NullDecimal) {

	for _, root := range roots {
		forest.WalkFrom(root, func(id ledger.NodeID, depth int) bool {
			node := forest.Node(id)
			balance := forest.Balance(id)
			content.Add(&ContentNode{
				Code:       node.Account.Code,
				Name:       node.Account.Name,
				Node:       id,
				Amount:     amount(balance),
				Percentage: percentage(id, balance),
				Indent:     depth + base,
			})
			return true
		})
	}
}

// rootsOfType returns the forest roots holding accounts of type t, in input order.
func rootsOfType(forest *ledger.Forest, t domain.AccountType) []ledger.NodeID {
	var out []ledger.NodeID
	for _, r := range forest.Roots() {
		if forest.Node(r).Account.AccountType == t {
			out = append(out, r)
		}
	}
	return out
}

// sumBalances adds the subtree balances of the given roots.
func sumBalances(forest *ledger.Forest, roots []ledger.NodeID) decimal.Decimal {
	total := decimal.Zero
	for _, r := range roots {
		total = total.Add(forest.Balance(r))
	}
	return total
}

// buildAttachedForest is the default BuildTree hook.
func buildAttachedForest(logger *slog.Logger, in StatementInput) *ledger.Forest {
	forest := ledger.BuildForest(logger, in.Accounts)
	if unmatched := forest.AttachLineItems(in.Items); len(unmatched) > 0 && logger != nil {
		logger.Warn("Line items reference accounts outside the statement",
			slog.Int("unmatched", len(unmatched)), slog.String("first_account_id", unmatched[0].AccountID))
	}
	return forest
}
