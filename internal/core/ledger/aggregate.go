package ledger

import (
	"sort"
	"strconv"

	"github.com/SscSPs/ledger_report_engine/internal/core/domain"
	"github.com/SscSPs/ledger_report_engine/internal/utils/accounting"
	"github.com/shopspring/decimal"
)

// Summary holds gross debit and credit totals. Opposing sides are never netted.
type Summary struct {
	Debit  decimal.Decimal `json:"debit"`
	Credit decimal.Decimal `json:"credit"`
}

// AddData appends one line item to the node's own bucket.
func (f *Forest) AddData(id NodeID, item domain.LineItem) {
	if f.valid(id) {
		f.nodes[id].Items = append(f.nodes[id].Items, item)
	}
}

// AttachLineItems adds every item to the node owning its account id and returns
// the items whose account is not part of the forest.
func (f *Forest) AttachLineItems(items []domain.LineItem) []domain.LineItem {
	var unmatched []domain.LineItem
	for _, item := range items {
		id, ok := f.byAccountID[item.AccountID]
		if !ok {
			unmatched = append(unmatched, item)
			continue
		}
		f.AddData(id, item)
	}
	return unmatched
}

// SetOpeningBalance sets the totals the node's ledger starts from.
func (f *Forest) SetOpeningBalance(id NodeID, debit, credit decimal.Decimal) {
	if f.valid(id) {
		f.nodes[id].InitialDebit = debit
		f.nodes[id].InitialCredit = credit
	}
}

// Balance returns the signed balance of id and its whole subtree. Each entry is
// signed against the side of the node it is posted to.
func (f *Forest) Balance(id NodeID) decimal.Decimal {
	if !f.valid(id) {
		return decimal.Zero
	}
	n := &f.nodes[id]
	total := decimal.Zero
	for _, item := range n.Items {
		total = total.Add(accounting.SignedAmount(item, n.Account.Debit))
	}
	for _, c := range n.children {
		total = total.Add(f.Balance(c))
	}
	return total
}

// Summary returns the gross debit and credit totals of id and its subtree.
func (f *Forest) Summary(id NodeID) Summary {
	s := Summary{Debit: decimal.Zero, Credit: decimal.Zero}
	if !f.valid(id) {
		return s
	}
	for _, item := range f.nodes[id].Items {
		if item.Debit {
			s.Debit = s.Debit.Add(item.Amount)
		} else {
			s.Credit = s.Credit.Add(item.Amount)
		}
	}
	for _, c := range f.nodes[id].children {
		cs := f.Summary(c)
		s.Debit = s.Debit.Add(cs.Debit)
		s.Credit = s.Credit.Add(cs.Credit)
	}
	return s
}

// Ledger returns the node's own line items in chronological order with running
// totals. Items are ordered by id, then stably by voucher date. The running
// balance starts at InitialDebit - InitialCredit, rises on debits and falls on
// credits whatever the node's normal side is.
func (f *Forest) Ledger(id NodeID) []domain.LedgerRow {
	if !f.valid(id) {
		return nil
	}
	n := &f.nodes[id]
	items := make([]domain.LineItem, len(n.Items))
	copy(items, n.Items)

	sort.SliceStable(items, func(i, j int) bool {
		return lessID(items[i].LineItemID, items[j].LineItemID)
	})
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Voucher.Date.Before(items[j].Voucher.Date)
	})

	debit, credit := n.InitialDebit, n.InitialCredit
	balance := debit.Sub(credit)
	rows := make([]domain.LedgerRow, 0, len(items))
	for _, item := range items {
		if item.Debit {
			debit = debit.Add(item.Amount)
			balance = balance.Add(item.Amount)
		} else {
			credit = credit.Add(item.Amount)
			balance = balance.Sub(item.Amount)
		}
		rows = append(rows, domain.LedgerRow{
			LineItem:     item,
			DebitAmount:  debit,
			CreditAmount: credit,
			Balance:      balance,
		})
	}
	return rows
}

// lessID orders ids numerically when both are integers and lexically otherwise.
func lessID(a, b string) bool {
	ai, errA := strconv.ParseInt(a, 10, 64)
	bi, errB := strconv.ParseInt(b, 10, 64)
	if errA == nil && errB == nil {
		return ai < bi
	}
	return a < b
}
