package services

import (
	"context"
	"fmt"

	"github.com/SscSPs/ledger_report_engine/internal/core/domain"
	portsrepo "github.com/SscSPs/ledger_report_engine/internal/core/ports/repositories"
	"golang.org/x/sync/errgroup"
)

// statementData is everything read from the repository for one statement.
// Results are stored by slot, so the merge order never depends on which fetch
// finished first.
type statementData struct {
	accounts []domain.Account
	items    [][]domain.LineItem // one slice per requested window
}

// fetchStatementData loads the accounts of every type and the line items of every
// type for each window concurrently. Any failed read fails the whole fetch.
func fetchStatementData(ctx context.Context, repo portsrepo.ReportingRepository, scope domain.Scope,
	types []domain.AccountType, windows ...domain.PeriodRange) (*statementData, error) {

	accountSlots := make([][]domain.Account, len(types))
	itemSlots := make([][][]domain.LineItem, len(windows))
	for w := range windows {
		itemSlots[w] = make([][]domain.LineItem, len(types))
	}

	g, gctx := errgroup.WithContext(ctx)

	for i, t := range types {
		g.Go(func() error {
			accounts, err := repo.FindAccounts(gctx, scope, t, portsrepo.AccountFilter{})
			if err != nil {
				return fmt.Errorf("failed to fetch %s accounts: %w", t, err)
			}
			accountSlots[i] = accounts
			return nil
		})
	}

	for w, window := range windows {
		for i, t := range types {
			g.Go(func() error {
				items, err := repo.FindLineItems(gctx, scope, []domain.AccountType{t}, window.Start, window.End)
				if err != nil {
					return fmt.Errorf("failed to fetch %s line items: %w", t, err)
				}
				itemSlots[w][i] = items
				return nil
			})
		}
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	data := &statementData{items: make([][]domain.LineItem, len(windows))}
	for _, accounts := range accountSlots {
		data.accounts = append(data.accounts, accounts...)
	}
	for w := range windows {
		for _, items := range itemSlots[w] {
			data.items[w] = append(data.items[w], items...)
		}
	}
	return data, nil
}
