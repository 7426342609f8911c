// Package ledger rebuilds the chart-of-accounts tree for one computation and
// aggregates line items over it.
package ledger

import (
	"fmt"
	"log/slog"

	"github.com/SscSPs/ledger_report_engine/internal/apperrors"
	"github.com/SscSPs/ledger_report_engine/internal/core/domain"
	"github.com/shopspring/decimal"
)

// NodeID indexes a node inside its Forest.
type NodeID int

// NoNode is the parent of a root node.
const NoNode NodeID = -1

// Node wraps one account with the line items posted directly to it.
type Node struct {
	Account       domain.Account
	Items         []domain.LineItem
	InitialDebit  decimal.Decimal // opening totals, used by Ledger only
	InitialCredit decimal.Decimal

	parent   NodeID
	children []NodeID
}

// Forest is an arena of account nodes. Parent and child links are indexes, so a
// node is owned by the arena and never by another node. A Forest is built for a
// single computation and is not safe for concurrent mutation.
type Forest struct {
	nodes       []Node
	byCode      map[string]NodeID
	byAccountID map[string]NodeID
	logger      *slog.Logger
}

func newForest(logger *slog.Logger, capacity int) *Forest {
	if logger == nil {
		logger = slog.Default()
	}
	return &Forest{
		nodes:       make([]Node, 0, capacity),
		byCode:      make(map[string]NodeID, capacity),
		byAccountID: make(map[string]NodeID, capacity),
		logger:      logger,
	}
}

// Len returns the number of nodes.
func (f *Forest) Len() int { return len(f.nodes) }

// Node returns the node for id, or nil when id is out of range.
func (f *Forest) Node(id NodeID) *Node {
	if !f.valid(id) {
		return nil
	}
	return &f.nodes[id]
}

func (f *Forest) valid(id NodeID) bool {
	return id >= 0 && int(id) < len(f.nodes)
}

// FindByCode returns the node owning an account code. With duplicate codes the
// first account in input order wins.
func (f *Forest) FindByCode(code string) (NodeID, bool) {
	id, ok := f.byCode[code]
	return id, ok
}

// FindByAccountID returns the node owning an account id.
func (f *Forest) FindByAccountID(accountID string) (NodeID, bool) {
	id, ok := f.byAccountID[accountID]
	return id, ok
}

// Roots returns the top-level nodes in input order.
func (f *Forest) Roots() []NodeID {
	var roots []NodeID
	for i := range f.nodes {
		if f.nodes[i].parent == NoNode {
			roots = append(roots, NodeID(i))
		}
	}
	return roots
}

// Parent returns the parent of id, or NoNode for a root.
func (f *Forest) Parent(id NodeID) NodeID {
	if !f.valid(id) {
		return NoNode
	}
	return f.nodes[id].parent
}

// Children returns the direct children of id in attachment order.
func (f *Forest) Children(id NodeID) []NodeID {
	if !f.valid(id) {
		return nil
	}
	out := make([]NodeID, len(f.nodes[id].children))
	copy(out, f.nodes[id].children)
	return out
}

// Level returns the render depth of id; roots are at level 0.
func (f *Forest) Level(id NodeID) int {
	level := 0
	for p := f.Parent(id); p != NoNode; p = f.Parent(p) {
		level++
	}
	return level
}

// Descendants returns every node below id in pre-order.
func (f *Forest) Descendants(id NodeID) []NodeID {
	var out []NodeID
	for _, c := range f.Children(id) {
		out = append(out, c)
		out = append(out, f.Descendants(c)...)
	}
	return out
}

// Walk visits every node pre-order, roots in input order and children in
// attachment order. Returning false from fn skips the node's subtree.
func (f *Forest) Walk(fn func(id NodeID, depth int) bool) {
	for _, r := range f.Roots() {
		f.walk(r, 0, fn)
	}
}

// WalkFrom is Walk restricted to the subtree rooted at id.
func (f *Forest) WalkFrom(id NodeID, fn func(id NodeID, depth int) bool) {
	if f.valid(id) {
		f.walk(id, 0, fn)
	}
}

func (f *Forest) walk(id NodeID, depth int, fn func(NodeID, int) bool) {
	if !fn(id, depth) {
		return
	}
	for _, c := range f.nodes[id].children {
		f.walk(c, depth+1, fn)
	}
}

// isAncestor reports whether candidate is id itself or one of its ancestors.
func (f *Forest) isAncestor(candidate, id NodeID) bool {
	for cur := id; cur != NoNode; cur = f.nodes[cur].parent {
		if cur == candidate {
			return true
		}
	}
	return false
}

// AddParent links child under parent, first detaching it from its current parent.
// Linking a node under itself or one of its descendants fails with ErrDataIntegrity
// and leaves the forest unchanged.
func (f *Forest) AddParent(child, parent NodeID) error {
	if !f.valid(child) || !f.valid(parent) {
		return fmt.Errorf("%w: node %d or %d is not part of the forest", apperrors.ErrNotFound, child, parent)
	}
	if f.isAncestor(child, parent) {
		return fmt.Errorf("%w: linking account %s under %s would create a cycle", apperrors.ErrDataIntegrity,
			f.nodes[child].Account.Code, f.nodes[parent].Account.Code)
	}
	if old := f.nodes[child].parent; old != NoNode {
		f.RemoveChild(old, child)
	}
	f.nodes[child].parent = parent
	f.nodes[parent].children = append(f.nodes[parent].children, child)
	return nil
}

// RemoveChild detaches child from parent, turning it into a root. It reports
// whether child was attached to parent.
func (f *Forest) RemoveChild(parent, child NodeID) bool {
	if !f.valid(parent) || !f.valid(child) {
		return false
	}
	kids := f.nodes[parent].children
	for i, c := range kids {
		if c == child {
			f.nodes[parent].children = append(kids[:i:i], kids[i+1:]...)
			f.nodes[child].parent = NoNode
			return true
		}
	}
	return false
}
