package accounting_test

import (
	"testing"

	"github.com/SscSPs/ledger_report_engine/internal/apperrors"
	"github.com/SscSPs/ledger_report_engine/internal/core/domain"
	"github.com/SscSPs/ledger_report_engine/internal/utils/accounting"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestMatcher_MatchPattern(t *testing.T) {
	m := accounting.NewMatcher(0)

	tests := []struct {
		name    string
		pattern domain.VoucherPattern
		codes   []string
		want    bool
	}{
		{"code matches any code", domain.Code("^11"), []string{"4000", "1100"}, true},
		{"code matches with any expression", domain.Code("^9", "^40"), []string{"4000"}, true},
		{"code no match", domain.Code("^2"), []string{"1100"}, false},
		{"code on empty set", domain.Code(".*"), nil, false},
		{"empty and is true", domain.And(), []string{"1100"}, true},
		{"empty or is false", domain.Or(), []string{"1100"}, false},
		{"and all true", domain.And(domain.Code("^1"), domain.Code("00$")), []string{"1100"}, true},
		{"and one false", domain.And(domain.Code("^1"), domain.Code("^2")), []string{"1100"}, false},
		{"or one true", domain.Or(domain.Code("^2"), domain.Code("^1")), []string{"1100"}, true},
		{
			name:    "and is false even when a sibling or is true",
			pattern: domain.And(domain.Or(domain.Code("^1")), domain.Code("^3")),
			codes:   []string{"1100"},
			want:    false,
		},
		{"nil pattern", nil, []string{"1100"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := m.MatchPattern(tt.pattern, tt.codes)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMatcher_InvalidExpression(t *testing.T) {
	m := accounting.NewMatcher(0)

	_, err := m.MatchPattern(domain.Code("(["), []string{"1100"})
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestMatcher_CachedExpressionIsReused(t *testing.T) {
	m := accounting.NewMatcher(0)

	for i := 0; i < 3; i++ {
		ok, err := m.MatchPattern(domain.Code("^15"), []string{"1510"})
		require.NoError(t, err)
		assert.True(t, ok)
	}
}

func TestMatcher_MatchEitherPattern(t *testing.T) {
	m := accounting.NewMatcher(0)
	debit := []string{"1510"}
	credit := []string{"1001"}

	ok, err := m.MatchEitherPattern(nil, debit, credit)
	require.NoError(t, err)
	assert.True(t, ok, "nil pattern is permissive")

	ok, err = m.MatchEitherPattern(&domain.EitherPattern{Debit: domain.Code("^15")}, debit, credit)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = m.MatchEitherPattern(&domain.EitherPattern{Credit: domain.Code("^10")}, debit, credit)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = m.MatchEitherPattern(&domain.EitherPattern{Debit: domain.Code("^2"), Credit: domain.Code("^2")}, debit, credit)
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = m.MatchEitherPattern(&domain.EitherPattern{}, debit, credit)
	require.NoError(t, err)
	assert.False(t, ok, "a pattern with no sides matches nothing")
}

func TestPatternSpec_FromYAML(t *testing.T) {
	raw := `
code: "1-01"
name: Purchase of equipment
activity: investing
debit:
  and:
    - code: ["^15", "^16"]
    - or:
        - code: ["^15"]
`
	var spec domain.CashFlowLineSpec
	require.NoError(t, yaml.Unmarshal([]byte(raw), &spec))

	line := spec.Line()
	assert.Equal(t, domain.InvestingActivity, line.Activity)
	require.NotNil(t, line.Pattern)
	assert.Nil(t, line.Pattern.Credit)

	m := accounting.NewMatcher(0)
	ok, err := m.MatchEitherPattern(line.Pattern, []string{"1510"}, nil)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = m.MatchEitherPattern(line.Pattern, []string{"1610"}, nil)
	require.NoError(t, err)
	assert.False(t, ok)
}
