package dto

import (
	"fmt"
	"time"

	"github.com/SscSPs/ledger_report_engine/internal/apperrors"
	"github.com/SscSPs/ledger_report_engine/internal/core/domain"
)

// DateLayout is the date format accepted in query strings and request bodies.
const DateLayout = "2006-01-02"

// PeriodQuery is the inclusive reporting window of a request.
type PeriodQuery struct {
	Start string `form:"start" binding:"required,datetime=2006-01-02"`
	End   string `form:"end" binding:"required,datetime=2006-01-02"`
}

// Period converts the query into a domain period. End is inclusive of the whole day.
func (q PeriodQuery) Period() (domain.PeriodRange, error) {
	start, err := time.Parse(DateLayout, q.Start)
	if err != nil {
		return domain.PeriodRange{}, fmt.Errorf("%w: start: %v", apperrors.ErrValidation, err)
	}
	end, err := time.Parse(DateLayout, q.End)
	if err != nil {
		return domain.PeriodRange{}, fmt.Errorf("%w: end: %v", apperrors.ErrValidation, err)
	}
	p := domain.PeriodRange{Start: start.UTC(), End: endOfDay(end.UTC())}
	if err := p.Validate(); err != nil {
		return domain.PeriodRange{}, err
	}
	return p, nil
}

func endOfDay(t time.Time) time.Time {
	return t.Add(24*time.Hour - time.Second)
}

// TrialBalanceQuery adds the requested ordering to a period. The accepted sort
// names are checked by the trial balance service.
type TrialBalanceQuery struct {
	PeriodQuery
	SortBy string `form:"sortBy" binding:"max=32"`
	Order  string `form:"order" binding:"max=4"`
}

// Sort returns the domain sort request.
func (q TrialBalanceQuery) Sort() domain.TrialBalanceSort {
	return domain.TrialBalanceSort{SortBy: q.SortBy, Order: q.Order}
}
