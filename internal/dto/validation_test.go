package dto

import (
	"errors"
	"testing"

	"github.com/SscSPs/ledger_report_engine/internal/apperrors"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newValidator() *validator.Validate {
	v := validator.New()
	v.SetTagName("binding")
	return v
}

func TestValidationErrors(t *testing.T) {
	err := newValidator().Struct(CreateVoucherRequest{Date: "15/01/2024"})
	require.Error(t, err)

	fields := map[string]string{}
	for _, fe := range ValidationErrors(err) {
		fields[fe.Field] = fe.Message
	}
	assert.Equal(t, "must be a date formatted as 2006-01-02", fields["Date"])
	assert.Equal(t, "is required", fields["Lines"])
}

func TestValidationErrors_NonValidatorError(t *testing.T) {
	got := ValidationErrors(errors.New("unexpected EOF"))
	assert.Equal(t, []FieldError{{Message: "unexpected EOF"}}, got)
}

func TestPeriodQuery(t *testing.T) {
	p, err := PeriodQuery{Start: "2024-01-01", End: "2024-12-31"}.Period()
	require.NoError(t, err)
	assert.Equal(t, "2024-12-31T23:59:59Z", p.End.Format("2006-01-02T15:04:05Z07:00"))

	_, err = PeriodQuery{Start: "2024-02-01", End: "2024-01-01"}.Period()
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	_, err = PeriodQuery{Start: "yesterday", End: "2024-01-01"}.Period()
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestCreateVoucherRequest_ToDomain(t *testing.T) {
	req := CreateVoucherRequest{
		Date: "2024-03-05",
		Memo: "sale",
		Lines: []CreateLineItemRequest{
			{AccountID: "a1", Amount: decimal.NewFromInt(5), Debit: true},
			{AccountID: "a2", Amount: decimal.NewFromInt(5)},
		},
	}
	require.NoError(t, newValidator().Struct(req))

	v := req.ToDomain()
	assert.Equal(t, "2024-03-05", v.Date.Format(DateLayout))
	require.Len(t, v.Lines, 2)
	assert.True(t, v.Lines[0].Debit)
	assert.Equal(t, "a2", v.Lines[1].AccountID)
}
