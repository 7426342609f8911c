package services_test

import (
	"context"
	"testing"

	"github.com/SscSPs/ledger_report_engine/internal/apperrors"
	"github.com/SscSPs/ledger_report_engine/internal/core/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLedgerService_SubtreeLedger(t *testing.T) {
	repo, scope := loadFixture(t)
	svc := services.NewLedgerService(repo)

	ledger, err := svc.AccountLedger(context.Background(), scope, "11", period(date(2024, 2, 1), date(2024, 12, 31)))
	require.NoError(t, err)

	assert.Equal(t, "Current Assets", ledger.Account.Name)
	assert.True(t, dec("11000").Equal(ledger.OpeningDebit))
	assert.True(t, ledger.OpeningCredit.IsZero())

	require.Len(t, ledger.Rows, 4)
	ids := make([]string, len(ledger.Rows))
	for i, r := range ledger.Rows {
		ids[i] = r.LineItemID
	}
	assert.Equal(t, []string{"l22", "l31", "l41", "l52"}, ids)

	assert.True(t, dec("8000").Equal(ledger.Rows[0].Balance))
	assert.True(t, dec("13000").Equal(ledger.Rows[1].Balance))
	assert.True(t, dec("18000").Equal(ledger.Rows[2].DebitAmount))
	assert.True(t, dec("3500").Equal(ledger.Rows[3].CreditAmount))

	assert.True(t, dec("18000").Equal(ledger.ClosingDebit))
	assert.True(t, dec("3500").Equal(ledger.ClosingCredit))
	assert.True(t, dec("14500").Equal(ledger.Balance))
}

func TestLedgerService_CreditAccountRunningBalance(t *testing.T) {
	repo, scope := loadFixture(t)
	svc := services.NewLedgerService(repo)

	ledger, err := svc.AccountLedger(context.Background(), scope, "3101", period(date(2024, 1, 1), date(2024, 12, 31)))
	require.NoError(t, err)

	require.Len(t, ledger.Rows, 1)
	assert.True(t, dec("1000").Equal(ledger.OpeningCredit))
	assert.True(t, dec("-11000").Equal(ledger.Balance), "ledger balance is debit minus credit regardless of side")
}

func TestLedgerService_EmptyWindowKeepsOpening(t *testing.T) {
	repo, scope := loadFixture(t)
	svc := services.NewLedgerService(repo)

	ledger, err := svc.AccountLedger(context.Background(), scope, "1501", period(date(2024, 6, 1), date(2024, 6, 30)))
	require.NoError(t, err)
	assert.Empty(t, ledger.Rows)
	assert.True(t, dec("3000").Equal(ledger.ClosingDebit))
	assert.True(t, dec("3000").Equal(ledger.Balance))
}

func TestLedgerService_UnknownCode(t *testing.T) {
	repo, scope := loadFixture(t)
	svc := services.NewLedgerService(repo)

	_, err := svc.AccountLedger(context.Background(), scope, "9999", period(date(2024, 1, 1), date(2024, 12, 31)))
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}
