package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/SscSPs/expense_tracker_app/internal/core/aggregation"
	"github.com/SscSPs/expense_tracker_app/internal/core/domain"
	portsrepo "github.com/SscSPs/expense_tracker_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/expense_tracker_app/internal/core/ports/services"
)

// reportingService implements the ReportingService interface
type reportingService struct {
	BaseService
	txnRepo    portsrepo.TransactionReader
	categories portssvc.CategoryReaderSvc
}

// NewReportingService creates a new reporting service
func NewReportingService(txnRepo portsrepo.TransactionReader, categories portssvc.CategoryReaderSvc) portssvc.ReportingService {
	return &reportingService{
		txnRepo:    txnRepo,
		categories: categories,
	}
}

// Ensure reportingService implements the ReportingService interface
var _ portssvc.ReportingService = (*reportingService)(nil)

// Totals sums income and expense over the inclusive range
func (s *reportingService) Totals(ctx context.Context, rng domain.DateRange) (*domain.TypeTotals, error) {
	txns, err := s.txnRepo.FindTransactionsInRange(ctx, rng)
	if err != nil {
		s.LogError(ctx, err, "Failed to load transactions for totals", rangeAttrs(rng)...)
		return nil, fmt.Errorf("failed to load transactions: %w", err)
	}

	totals := aggregation.TotalsByType(txns, rng)

	s.LogInfo(ctx, "Totals report generated", append(rangeAttrs(rng), slog.Int("transaction_count", len(txns)))...)
	return &totals, nil
}

// Breakdown sums allocations per category name over the inclusive range
func (s *reportingService) Breakdown(ctx context.Context, rng domain.DateRange, sort *domain.SummarySort) ([]domain.CategorySummary, error) {
	if sort != nil {
		if err := sort.Validate(); err != nil {
			return nil, err
		}
	}

	// Transactions are read before categories, so any id the category read
	// cannot resolve was deleted after the transaction was stored.
	txns, err := s.txnRepo.FindTransactionsInRange(ctx, rng)
	if err != nil {
		s.LogError(ctx, err, "Failed to load transactions for breakdown", rangeAttrs(rng)...)
		return nil, fmt.Errorf("failed to load transactions: %w", err)
	}
	categories, err := s.categories.ListCategories(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to load categories for breakdown", rangeAttrs(rng)...)
		return nil, fmt.Errorf("failed to load categories: %w", err)
	}

	rows, err := aggregation.CategoryBreakdown(txns, rng, aggregation.NewCategoryNames(categories))
	if err != nil {
		s.LogError(ctx, err, "Category breakdown failed", rangeAttrs(rng)...)
		return nil, err
	}
	if sort != nil {
		rows = aggregation.SortSummaries(rows, sort.Key, sort.Direction)
	}

	s.LogInfo(ctx, "Category breakdown generated", append(rangeAttrs(rng), slog.Int("row_count", len(rows)))...)
	return rows, nil
}

func rangeAttrs(rng domain.DateRange) []any {
	return []any{
		slog.String("start", rng.Start.Format(domain.DateLayout)),
		slog.String("end", rng.End.Format(domain.DateLayout)),
	}
}
