package services

import (
	"context"

	"github.com/SscSPs/expense_tracker_app/internal/core/domain"
)

// ReportingService defines operations for generating income and expense reports
type ReportingService interface {
	// Totals sums income and expense over the inclusive range
	Totals(ctx context.Context, rng domain.DateRange) (*domain.TypeTotals, error)

	// Breakdown sums allocations per category over the inclusive range, optionally sorted.
	// Fails with apperrors.ErrDataIntegrity when an allocation points at a missing category.
	Breakdown(ctx context.Context, rng domain.DateRange, sort *domain.SummarySort) ([]domain.CategorySummary, error)
}
