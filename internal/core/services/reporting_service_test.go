package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/SscSPs/expense_tracker_app/internal/apperrors"
	"github.com/SscSPs/expense_tracker_app/internal/core/domain"
	portsrepo "github.com/SscSPs/expense_tracker_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/expense_tracker_app/internal/core/ports/services"
	"github.com/SscSPs/expense_tracker_app/internal/core/services"
	"github.com/SscSPs/expense_tracker_app/internal/dto"
	"github.com/SscSPs/expense_tracker_app/internal/platform/config"
	"github.com/SscSPs/expense_tracker_app/internal/repositories/memory"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newMemoryContainer(t *testing.T) *portssvc.ServiceContainer {
	t.Helper()
	cfg := &config.Config{
		DefaultCategoryName: domain.DefaultCategoryName,
		CSVDelimiter:        ';',
		CSVEncoding:         "utf-8",
		CSVDateLayouts:      []string{domain.DateLayout},
	}
	return services.NewServiceContainer(cfg, memory.NewRepositoryProvider())
}

func mustCategory(t *testing.T, c *portssvc.ServiceContainer, name string) string {
	t.Helper()
	cat, err := c.Category.CreateCategory(context.Background(), dto.CreateCategoryRequest{Name: name})
	require.NoError(t, err)
	return cat.CategoryID
}

func mustRange(t *testing.T, start, end string) domain.DateRange {
	t.Helper()
	s, _ := time.Parse(domain.DateLayout, start)
	e, _ := time.Parse(domain.DateLayout, end)
	rng, err := domain.NewDateRange(s, e)
	require.NoError(t, err)
	return rng
}

func TestReporting_EndToEndScenario(t *testing.T) {
	ctx := context.Background()
	c := newMemoryContainer(t)
	food := mustCategory(t, c, "Food")
	transport := mustCategory(t, c, "Transport")
	salary := mustCategory(t, c, "Salary")

	_, err := c.Transaction.CreateTransaction(ctx, dto.TransactionRequest{
		Amount: decPtr("100"), Date: "2024-01-05", Type: domain.Expense,
		Categories: []dto.AllocationRequest{
			{CategoryID: food, Amount: decPtr("60")},
			{CategoryID: transport, Amount: decPtr("40")},
		},
	})
	require.NoError(t, err)
	_, err = c.Transaction.CreateTransaction(ctx, dto.TransactionRequest{
		Amount: decPtr("500"), Date: "2024-01-10", Type: domain.Income,
		Categories: []dto.AllocationRequest{{CategoryID: salary, Amount: decPtr("500")}},
	})
	require.NoError(t, err)

	rng := mustRange(t, "2024-01-01", "2024-01-31")

	totals, err := c.Reporting.Totals(ctx, rng)
	require.NoError(t, err)
	assert.True(t, totals.Income.Equal(decimal.NewFromInt(500)))
	assert.True(t, totals.Expense.Equal(decimal.NewFromInt(100)))

	rows, err := c.Reporting.Breakdown(ctx, rng, &domain.SummarySort{Key: domain.SortByExpense, Direction: domain.Descending})
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "Food", rows[0].Category)
	assert.Equal(t, "Transport", rows[1].Category)
	assert.Equal(t, "Salary", rows[2].Category)
}

func TestReporting_DeletedCategorySurfacesIntegrityError(t *testing.T) {
	ctx := context.Background()
	c := newMemoryContainer(t)
	food := mustCategory(t, c, "Food")

	created, err := c.Transaction.CreateTransaction(ctx, dto.TransactionRequest{
		Amount: decPtr("12"), Date: "2024-03-03", Type: domain.Expense,
		Categories: []dto.AllocationRequest{{CategoryID: food, Amount: decPtr("12")}},
	})
	require.NoError(t, err)
	require.NoError(t, c.Category.DeleteCategory(ctx, food))

	rng := mustRange(t, "2024-03-01", "2024-03-31")

	// totals do not need names
	_, err = c.Reporting.Totals(ctx, rng)
	require.NoError(t, err)

	_, err = c.Reporting.Breakdown(ctx, rng, nil)
	require.ErrorIs(t, err, apperrors.ErrDataIntegrity)
	var integrityErr *apperrors.DataIntegrityError
	require.ErrorAs(t, err, &integrityErr)
	assert.Equal(t, created.TransactionID, integrityErr.TransactionID)
	assert.Equal(t, food, integrityErr.CategoryID)
}

func TestReporting_InvalidSortIsRejected(t *testing.T) {
	c := newMemoryContainer(t)
	_, err := c.Reporting.Breakdown(context.Background(), mustRange(t, "2024-01-01", "2024-01-02"),
		&domain.SummarySort{Key: "name", Direction: domain.Ascending})
	assert.ErrorIs(t, err, apperrors.ErrInvalidRequest)
}

func TestReporting_RepositoryErrorPropagates(t *testing.T) {
	ctx := context.Background()
	txnRepo := new(MockTransactionRepository)
	catRepo := new(MockCategoryRepository)
	svc := services.NewReportingService(txnRepo, services.NewCategoryService(catRepo))
	rng := mustRange(t, "2024-01-01", "2024-01-31")

	txnRepo.On("FindTransactionsInRange", ctx, rng).Return(nil, assert.AnError).Once()

	_, err := svc.Totals(ctx, rng)
	assert.ErrorIs(t, err, assert.AnError)
}

// writeBeforeRead runs a write against the stores just before the first
// transaction read goes through.
type writeBeforeRead struct {
	portsrepo.TransactionReader
	write func()
	done  bool
}

func (r *writeBeforeRead) FindTransactionsInRange(ctx context.Context, rng domain.DateRange) ([]domain.Transaction, error) {
	if !r.done {
		r.done = true
		r.write()
	}
	return r.TransactionReader.FindTransactionsInRange(ctx, rng)
}

func TestReporting_BreakdownSeesCategoriesCreatedWithTransactions(t *testing.T) {
	ctx := context.Background()
	cfg := &config.Config{
		DefaultCategoryName: domain.DefaultCategoryName,
		CSVDelimiter:        ';',
		CSVEncoding:         "utf-8",
		CSVDateLayouts:      []string{domain.DateLayout},
	}
	repos := memory.NewRepositoryProvider()
	c := services.NewServiceContainer(cfg, repos)

	reader := &writeBeforeRead{
		TransactionReader: repos.TransactionRepo,
		write: func() {
			food := mustCategory(t, c, "Food")
			_, err := c.Transaction.CreateTransaction(ctx, dto.TransactionRequest{
				Amount: decPtr("25"), Date: "2024-01-05", Type: domain.Expense,
				Categories: []dto.AllocationRequest{{CategoryID: food, Amount: decPtr("25")}},
			})
			require.NoError(t, err)
		},
	}
	svc := services.NewReportingService(reader, c.Category)

	rows, err := svc.Breakdown(ctx, mustRange(t, "2024-01-01", "2024-01-31"), nil)

	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Food", rows[0].Category)
	assert.True(t, rows[0].Expense.Equal(decimal.NewFromInt(25)))
}

func TestReporting_BreakdownReadsTransactionsBeforeCategories(t *testing.T) {
	ctx := context.Background()
	txnRepo := new(MockTransactionRepository)
	catRepo := new(MockCategoryRepository)
	svc := services.NewReportingService(txnRepo, services.NewCategoryService(catRepo))
	rng := mustRange(t, "2024-01-01", "2024-01-31")

	txnRepo.On("FindTransactionsInRange", ctx, rng).Return(nil, assert.AnError).Once()

	_, err := svc.Breakdown(ctx, rng, nil)

	assert.ErrorIs(t, err, assert.AnError)
	catRepo.AssertNotCalled(t, "ListCategories", mock.Anything)
}
