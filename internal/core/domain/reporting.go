package domain

import (
	"fmt"
	"time"

	"github.com/SscSPs/expense_tracker_app/internal/apperrors"
	"github.com/shopspring/decimal"
)

// DateRange is an inclusive calendar-date interval.
type DateRange struct {
	Start time.Time
	End   time.Time
}

// NewDateRange builds a range over the calendar days of start and end.
// It fails when start falls after end.
func NewDateRange(start, end time.Time) (DateRange, error) {
	rng := DateRange{Start: CalendarDate(start), End: CalendarDate(end)}
	if rng.Start.After(rng.End) {
		return DateRange{}, fmt.Errorf("%w: start %s is after end %s", apperrors.ErrInvalidRequest,
			rng.Start.Format(DateLayout), rng.End.Format(DateLayout))
	}
	return rng, nil
}

// Contains reports whether the calendar day of t lies in the range.
func (r DateRange) Contains(t time.Time) bool {
	d := CalendarDate(t)
	return !d.Before(r.Start) && !d.After(r.End)
}

// TypeTotals holds summed amounts per transaction type.
type TypeTotals struct {
	Income  decimal.Decimal `json:"income"`
	Expense decimal.Decimal `json:"expense"`
}

// Net returns income minus expense.
func (t TypeTotals) Net() decimal.Decimal {
	return t.Income.Sub(t.Expense)
}

// CategorySummary is one row of the per-category breakdown.
type CategorySummary struct {
	Category string          `json:"category"`
	Income   decimal.Decimal `json:"income"`
	Expense  decimal.Decimal `json:"expense"`
}

// SummarySortKey selects the column breakdown rows are ordered by.
type SummarySortKey string

const (
	SortByIncome  SummarySortKey = "income"
	SortByExpense SummarySortKey = "expense"
)

// SortDirection is ascending or descending.
type SortDirection string

const (
	Ascending  SortDirection = "asc"
	Descending SortDirection = "desc"
)

// SummarySort describes an optional ordering of breakdown rows.
type SummarySort struct {
	Key       SummarySortKey
	Direction SortDirection
}

// Validate checks key and direction.
func (s SummarySort) Validate() error {
	if s.Key != SortByIncome && s.Key != SortByExpense {
		return fmt.Errorf("%w: unknown sort key %q", apperrors.ErrInvalidRequest, s.Key)
	}
	if s.Direction != Ascending && s.Direction != Descending {
		return fmt.Errorf("%w: unknown sort direction %q", apperrors.ErrInvalidRequest, s.Direction)
	}
	return nil
}
