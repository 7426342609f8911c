// Package memory holds an in-process implementation of the repository ports,
// loaded from YAML snapshots. It backs the command line tool and the tests.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/SscSPs/ledger_report_engine/internal/apperrors"
	"github.com/SscSPs/ledger_report_engine/internal/core/domain"
	portsrepo "github.com/SscSPs/ledger_report_engine/internal/core/ports/repositories"
)

type book struct {
	accounts []domain.Account // chart order
	byID     map[string]int
	vouchers []domain.Voucher
	byVouch  map[string]int
}

func newBook() *book {
	return &book{byID: map[string]int{}, byVouch: map[string]int{}}
}

// Repository stores accounts and vouchers per scope.
type Repository struct {
	mu    sync.RWMutex
	books map[domain.Scope]*book
}

var (
	_ portsrepo.ReportingRepository     = (*Repository)(nil)
	_ portsrepo.VoucherRepositoryFacade = (*Repository)(nil)
)

// NewRepository creates an empty repository.
func NewRepository() *Repository {
	return &Repository{books: map[domain.Scope]*book{}}
}

// NewRepositoryProvider exposes one repository through every port.
func NewRepositoryProvider(repo *Repository) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{ReportingRepo: repo, VoucherRepo: repo}
}

// Load adds the snapshot's accounts and vouchers to the repository. Vouchers are
// stored as written; balance checks are left to the voucher service.
func (r *Repository) Load(snap Snapshot) error {
	scope := snap.Scope()

	r.mu.Lock()
	defer r.mu.Unlock()

	b, ok := r.books[scope]
	if !ok {
		b = newBook()
		r.books[scope] = b
	}

	for _, acc := range snap.Accounts {
		if acc.AccountID == "" {
			acc.AccountID = acc.Code
		}
		accountType, err := domain.ParseAccountType(string(acc.AccountType))
		if err != nil {
			return fmt.Errorf("account %s: %w", acc.Code, err)
		}
		acc.AccountType = accountType
		if _, dup := b.byID[acc.AccountID]; dup {
			return fmt.Errorf("%w: account id %s", apperrors.ErrDuplicate, acc.AccountID)
		}
		b.byID[acc.AccountID] = len(b.accounts)
		b.accounts = append(b.accounts, acc)
	}

	for _, rec := range snap.Vouchers {
		v, err := rec.voucher()
		if err != nil {
			return err
		}
		if _, dup := b.byVouch[v.VoucherID]; dup {
			return fmt.Errorf("%w: voucher %s", apperrors.ErrDuplicate, v.VoucherID)
		}
		b.byVouch[v.VoucherID] = len(b.vouchers)
		b.vouchers = append(b.vouchers, v)
	}
	return nil
}

// LoadFile creates a repository from a snapshot file and returns the snapshot's scope.
func LoadFile(path string) (*Repository, domain.Scope, error) {
	snap, err := ReadSnapshot(path)
	if err != nil {
		return nil, domain.Scope{}, err
	}
	repo := NewRepository()
	if err := repo.Load(snap); err != nil {
		return nil, domain.Scope{}, fmt.Errorf("loading snapshot %s: %w", path, err)
	}
	return repo, snap.Scope(), nil
}

// FindAccounts retrieves the accounts of one type in chart order.
func (r *Repository) FindAccounts(ctx context.Context, scope domain.Scope, accountType domain.AccountType, filter portsrepo.AccountFilter) ([]domain.Account, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := []domain.Account{}
	b, ok := r.books[scope]
	if !ok {
		return result, nil
	}

	var codes map[string]struct{}
	if len(filter.Codes) > 0 {
		codes = make(map[string]struct{}, len(filter.Codes))
		for _, c := range filter.Codes {
			codes[c] = struct{}{}
		}
	}
	for _, acc := range b.accounts {
		if acc.AccountType != accountType || (filter.ForUserOnly && !acc.ForUser) {
			continue
		}
		if codes != nil {
			if _, ok := codes[acc.Code]; !ok {
				continue
			}
		}
		result = append(result, acc)
	}
	return result, nil
}

// FindAccountsByIDs retrieves accounts keyed by id.
func (r *Repository) FindAccountsByIDs(ctx context.Context, scope domain.Scope, accountIDs []string) (map[string]domain.Account, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make(map[string]domain.Account, len(accountIDs))
	b, ok := r.books[scope]
	if !ok {
		return result, nil
	}
	for _, id := range accountIDs {
		if idx, ok := b.byID[id]; ok {
			result[id] = b.accounts[idx]
		}
	}
	return result, nil
}

// FindLineItems retrieves line items of accounts of the given types whose
// voucher date lies in [start, end], ordered by date then line item id.
func (r *Repository) FindLineItems(ctx context.Context, scope domain.Scope, accountTypes []domain.AccountType, start, end time.Time) ([]domain.LineItem, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := []domain.LineItem{}
	b, ok := r.books[scope]
	if !ok {
		return result, nil
	}

	wanted := make(map[domain.AccountType]struct{}, len(accountTypes))
	for _, t := range accountTypes {
		wanted[t] = struct{}{}
	}
	for _, v := range b.vouchers {
		if v.Date.Before(start) || v.Date.After(end) {
			continue
		}
		for _, line := range v.Lines {
			idx, ok := b.byID[line.AccountID]
			if !ok {
				continue
			}
			if _, ok := wanted[b.accounts[idx].AccountType]; ok {
				result = append(result, line)
			}
		}
	}

	sort.SliceStable(result, func(i, j int) bool {
		if !result[i].Voucher.Date.Equal(result[j].Voucher.Date) {
			return result[i].Voucher.Date.Before(result[j].Voucher.Date)
		}
		return result[i].LineItemID < result[j].LineItemID
	})
	return result, nil
}

// SaveVoucher stores a new voucher. Every line must reference a known account.
func (r *Repository) SaveVoucher(ctx context.Context, scope domain.Scope, voucher domain.Voucher) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	b, ok := r.books[scope]
	if !ok {
		b = newBook()
		r.books[scope] = b
	}
	if _, dup := b.byVouch[voucher.VoucherID]; dup {
		return fmt.Errorf("%w: voucher %s already exists", apperrors.ErrDuplicate, voucher.VoucherID)
	}
	for _, line := range voucher.Lines {
		if _, ok := b.byID[line.AccountID]; !ok {
			return fmt.Errorf("%w: account %s", apperrors.ErrNotFound, line.AccountID)
		}
	}

	b.byVouch[voucher.VoucherID] = len(b.vouchers)
	b.vouchers = append(b.vouchers, cloneVoucher(voucher))
	return nil
}

// FindVoucherByID retrieves a copy of a stored voucher.
func (r *Repository) FindVoucherByID(ctx context.Context, scope domain.Scope, voucherID string) (*domain.Voucher, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	if b, ok := r.books[scope]; ok {
		if idx, ok := b.byVouch[voucherID]; ok {
			v := cloneVoucher(b.vouchers[idx])
			return &v, nil
		}
	}
	return nil, fmt.Errorf("%w: voucher %s", apperrors.ErrNotFound, voucherID)
}

// ListVouchers returns copies of all vouchers of a scope in insertion order.
func (r *Repository) ListVouchers(ctx context.Context, scope domain.Scope) ([]domain.Voucher, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	b, ok := r.books[scope]
	if !ok {
		return []domain.Voucher{}, nil
	}
	out := make([]domain.Voucher, len(b.vouchers))
	for i, v := range b.vouchers {
		out[i] = cloneVoucher(v)
	}
	return out, nil
}

func cloneVoucher(v domain.Voucher) domain.Voucher {
	v.Lines = append([]domain.LineItem(nil), v.Lines...)
	return v
}
