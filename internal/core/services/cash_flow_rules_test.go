package services_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/SscSPs/ledger_report_engine/internal/apperrors"
	"github.com/SscSPs/ledger_report_engine/internal/core/domain"
	"github.com/SscSPs/ledger_report_engine/internal/core/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCashFlowLines(t *testing.T) {
	lines, err := services.ParseCashFlowLines([]byte(`
lines:
  - code: CF_INV_CAPEX
    name: Capital expenditure
    activity: investing
    debit:
      or:
        - code: ["^15"]
        - code: ["^16"]
  - code: CF_OPE_OTHER
    name: Other
    activity: operating
`))
	require.NoError(t, err)
	require.Len(t, lines, 2)

	assert.Equal(t, domain.InvestingActivity, lines[0].Activity)
	require.NotNil(t, lines[0].Pattern)
	assert.Equal(t, domain.Or(domain.Code("^15"), domain.Code("^16")), lines[0].Pattern.Debit)
	assert.Nil(t, lines[0].Pattern.Credit)
	assert.Nil(t, lines[1].Pattern, "a line without patterns matches every voucher")
}

func TestParseCashFlowLines_Invalid(t *testing.T) {
	tests := map[string]string{
		"no lines":         "lines: []\n",
		"missing code":     "lines:\n  - {name: x, activity: operating}\n",
		"unknown activity": "lines:\n  - {code: X, activity: trading}\n",
		"malformed":        "lines: {",
	}
	for name, raw := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := services.ParseCashFlowLines([]byte(raw))
			assert.ErrorIs(t, err, apperrors.ErrValidation)
		})
	}
}

func TestLoadCashFlowLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rules.yaml")
	require.NoError(t, os.WriteFile(path, []byte("lines:\n  - {code: CF_ALL, name: All, activity: operating}\n"), 0o600))

	lines, err := services.LoadCashFlowLines(path)
	require.NoError(t, err)
	assert.Equal(t, "CF_ALL", lines[0].Code)

	_, err = services.LoadCashFlowLines(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestDefaultCashFlowLinesCodesAreUnique(t *testing.T) {
	seen := map[string]bool{}
	for _, activity := range domain.CashFlowActivities {
		seen["CF_"+strings.ToUpper(string(activity))] = true
	}
	for _, line := range services.DefaultCashFlowLines() {
		assert.False(t, seen[line.Code], "duplicate code %s", line.Code)
		seen[line.Code] = true
	}
}
