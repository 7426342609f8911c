package ledger

import (
	"log/slog"

	"github.com/SscSPs/ledger_report_engine/internal/core/domain"
)

// BuildForest turns a flat account list into a forest linked by parent code.
// Input order is preserved for roots and for siblings. Duplicate codes, parent
// codes that resolve to nothing and links that would form a cycle are kept as
// additional roots and logged.
func BuildForest(logger *slog.Logger, accounts []domain.Account) *Forest {
	f := newForest(logger, len(accounts))

	duplicate := make(map[NodeID]bool)
	for i, acc := range accounts {
		id := NodeID(i)
		f.nodes = append(f.nodes, Node{Account: acc, parent: NoNode})
		if _, exists := f.byCode[acc.Code]; exists {
			duplicate[id] = true
			f.logger.Warn("Duplicate account code, keeping account as root",
				slog.String("code", acc.Code), slog.String("account_id", acc.AccountID))
		} else {
			f.byCode[acc.Code] = id
		}
		if _, exists := f.byAccountID[acc.AccountID]; !exists {
			f.byAccountID[acc.AccountID] = id
		}
	}

	for i := range f.nodes {
		id := NodeID(i)
		acc := f.nodes[i].Account
		if acc.ParentCode == "" || duplicate[id] {
			continue
		}
		parent, ok := f.byCode[acc.ParentCode]
		if !ok {
			f.logger.Warn("Orphan account, parent code not found, keeping account as root",
				slog.String("code", acc.Code), slog.String("parent_code", acc.ParentCode))
			continue
		}
		if err := f.AddParent(id, parent); err != nil {
			f.logger.Warn("Refusing cyclic account link, keeping account as root",
				slog.String("code", acc.Code), slog.String("parent_code", acc.ParentCode), slog.Any("error", err))
		}
	}

	return f
}
