package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/SscSPs/ledger_report_engine/internal/apperrors"
)

// ErrInvalidPeriod indicates a malformed period range.
var ErrInvalidPeriod = fmt.Errorf("%w: invalid period range", apperrors.ErrValidation)

// Epoch is the start of every cumulative (as-of-date) window.
var Epoch = time.Unix(0, 0).UTC()

// PeriodRange is an inclusive [Start, End] reporting window.
type PeriodRange struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// NewPeriodRangeFromUnix builds a range from second timestamps.
func NewPeriodRangeFromUnix(start, end int64) PeriodRange {
	return PeriodRange{Start: time.Unix(start, 0).UTC(), End: time.Unix(end, 0).UTC()}
}

// Validate checks that both bounds are set and ordered.
func (p PeriodRange) Validate() error {
	if p.Start.IsZero() || p.End.IsZero() {
		return fmt.Errorf("%w: start and end are required", ErrInvalidPeriod)
	}
	if p.Start.After(p.End) {
		return fmt.Errorf("%w: start %s is after end %s", ErrInvalidPeriod,
			p.Start.Format(time.DateOnly), p.End.Format(time.DateOnly))
	}
	return nil
}

// Contains reports whether t falls inside the inclusive window.
func (p PeriodRange) Contains(t time.Time) bool {
	return !t.Before(p.Start) && !t.After(p.End)
}

// ReportType identifies a financial statement.
type ReportType string

const (
	BalanceSheet      ReportType = "balance_sheet"
	IncomeStatement   ReportType = "income_statement"
	CashFlowStatement ReportType = "cash_flow_statement"
)

// ParseReportType converts a name such as "balance-sheet" into a ReportType.
func ParseReportType(s string) (ReportType, error) {
	t := ReportType(strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), "-", "_"))
	switch t {
	case BalanceSheet, IncomeStatement, CashFlowStatement:
		return t, nil
	}
	return "", fmt.Errorf("%w: unknown report type %q", apperrors.ErrValidation, s)
}

// IsPointInTime reports whether the statement is a cumulative as-of-date figure
// rather than a flow over a window.
func (t ReportType) IsPointInTime() bool {
	return t == BalanceSheet
}

// PriorPeriod derives the comparison window for a report type.
// Point-in-time statements start at Epoch and end on the same calendar date one
// year earlier; flow statements shift both bounds back one year.
func PriorPeriod(t ReportType, cur PeriodRange) PeriodRange {
	end := ShiftYears(cur.End, -1)
	if t.IsPointInTime() {
		return PeriodRange{Start: Epoch, End: end}
	}
	return PeriodRange{Start: ShiftYears(cur.Start, -1), End: end}
}

// FetchWindow returns the window line items are loaded for. Point-in-time
// statements always accumulate from Epoch.
func FetchWindow(t ReportType, p PeriodRange) PeriodRange {
	if t.IsPointInTime() {
		return PeriodRange{Start: Epoch, End: p.End}
	}
	return p
}

// ShiftYears moves t by n calendar years, clamping to the last day of the month
// (29 Feb 2024 shifted by -1 is 28 Feb 2023).
func ShiftYears(t time.Time, n int) time.Time {
	y, m, d := t.Date()
	first := time.Date(y+n, m, 1, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
	last := first.AddDate(0, 1, -1).Day()
	if d > last {
		d = last
	}
	return first.AddDate(0, 0, d-1)
}
