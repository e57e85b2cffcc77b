package aggregation_test

import (
	"math/rand"
	"testing"
	"time"

	"github.com/SscSPs/expense_tracker_app/internal/apperrors"
	"github.com/SscSPs/expense_tracker_app/internal/core/aggregation"
	"github.com/SscSPs/expense_tracker_app/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(s string) time.Time {
	t, err := time.Parse(domain.DateLayout, s)
	if err != nil {
		panic(err)
	}
	return t
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func mustRange(t *testing.T, start, end string) domain.DateRange {
	t.Helper()
	rng, err := domain.NewDateRange(day(start), day(end))
	require.NoError(t, err)
	return rng
}

func txn(id, date string, typ domain.TransactionType, amount string, allocs ...domain.CategoryAllocation) domain.Transaction {
	return domain.Transaction{
		TransactionID: id,
		Date:          day(date),
		Type:          typ,
		Amount:        dec(amount),
		Categories:    allocs,
	}
}

func alloc(categoryID, amount string) domain.CategoryAllocation {
	return domain.CategoryAllocation{CategoryID: categoryID, Amount: dec(amount)}
}

var names = aggregation.CategoryNames{
	"cat-food":      "Food",
	"cat-transport": "Transport",
	"cat-salary":    "Salary",
	"cat-rent":      "Rent",
}

func scenario() []domain.Transaction {
	return []domain.Transaction{
		txn("t1", "2024-01-05", domain.Expense, "100", alloc("cat-food", "60"), alloc("cat-transport", "40")),
		txn("t2", "2024-01-10", domain.Income, "500", alloc("cat-salary", "500")),
	}
}

func TestScenario_FoodTransportSalary(t *testing.T) {
	rng := mustRange(t, "2024-01-01", "2024-01-31")

	totals := aggregation.TotalsByType(scenario(), rng)
	assert.True(t, totals.Income.Equal(dec("500")), "income %s", totals.Income)
	assert.True(t, totals.Expense.Equal(dec("100")), "expense %s", totals.Expense)

	rows, err := aggregation.CategoryBreakdown(scenario(), rng, names)
	require.NoError(t, err)
	require.Len(t, rows, 3)

	got := map[string]domain.CategorySummary{}
	for _, r := range rows {
		got[r.Category] = r
	}
	assert.True(t, got["Food"].Income.IsZero())
	assert.True(t, got["Food"].Expense.Equal(dec("60")))
	assert.True(t, got["Transport"].Income.IsZero())
	assert.True(t, got["Transport"].Expense.Equal(dec("40")))
	assert.True(t, got["Salary"].Income.Equal(dec("500")))
	assert.True(t, got["Salary"].Expense.IsZero())
}

func TestTotalsByType_EmptyTypesAreZero(t *testing.T) {
	rng := mustRange(t, "2024-01-01", "2024-01-31")
	totals := aggregation.TotalsByType(nil, rng)
	assert.True(t, totals.Income.IsZero())
	assert.True(t, totals.Expense.IsZero())
	assert.True(t, totals.Net().IsZero())
}

func TestTotalsByType_OnlyInRangeAndPermutationInvariant(t *testing.T) {
	rng := mustRange(t, "2024-03-01", "2024-03-31")
	txns := []domain.Transaction{
		txn("a", "2024-02-29", domain.Income, "1000", alloc("cat-salary", "1000")),
		txn("b", "2024-03-01", domain.Income, "0.10", alloc("cat-salary", "0.10")),
		txn("c", "2024-03-15", domain.Expense, "0.20", alloc("cat-food", "0.20")),
		txn("d", "2024-03-15", domain.Income, "0.20", alloc("cat-salary", "0.20")),
		txn("e", "2024-03-31", domain.Expense, "12345.67", alloc("cat-rent", "12345.67")),
		txn("f", "2024-04-01", domain.Expense, "999", alloc("cat-rent", "999")),
	}

	expectedSum := decimal.Zero
	for _, tx := range txns {
		if tx.InRange(rng) {
			expectedSum = expectedSum.Add(tx.Amount)
		}
	}

	base := aggregation.TotalsByType(txns, rng)
	assert.True(t, base.Income.Add(base.Expense).Equal(expectedSum))
	assert.True(t, base.Income.Equal(dec("0.30")))
	assert.True(t, base.Expense.Equal(dec("12345.87")))

	r := rand.New(rand.NewSource(42))
	for i := 0; i < 25; i++ {
		shuffled := append([]domain.Transaction(nil), txns...)
		r.Shuffle(len(shuffled), func(a, b int) { shuffled[a], shuffled[b] = shuffled[b], shuffled[a] })

		got := aggregation.TotalsByType(shuffled, rng)
		assert.True(t, got.Income.Equal(base.Income))
		assert.True(t, got.Expense.Equal(base.Expense))
	}
}

func TestBoundaryInclusivity(t *testing.T) {
	rng := mustRange(t, "2024-01-01", "2024-01-31")
	txns := []domain.Transaction{
		txn("start", "2024-01-01", domain.Income, "1", alloc("cat-salary", "1")),
		txn("end", "2024-01-31", domain.Expense, "2", alloc("cat-food", "2")),
		txn("before", "2023-12-31", domain.Income, "100", alloc("cat-salary", "100")),
		txn("after", "2024-02-01", domain.Expense, "100", alloc("cat-food", "100")),
	}
	// a late-evening timestamp on the end date still counts
	txns[1].Date = txns[1].Date.Add(22 * time.Hour)

	totals := aggregation.TotalsByType(txns, rng)
	assert.True(t, totals.Income.Equal(dec("1")))
	assert.True(t, totals.Expense.Equal(dec("2")))

	rows, err := aggregation.CategoryBreakdown(txns, rng, names)
	require.NoError(t, err)
	assert.Len(t, rows, 2)
}

func TestCategoryBreakdown_NoZeroRowsAndEachCategoryOnce(t *testing.T) {
	rng := mustRange(t, "2024-01-01", "2024-01-31")
	txns := []domain.Transaction{
		txn("t1", "2024-01-02", domain.Expense, "10", alloc("cat-food", "10")),
		txn("t2", "2024-01-03", domain.Expense, "15", alloc("cat-food", "5"), alloc("cat-transport", "10")),
		txn("t3", "2024-01-04", domain.Income, "20", alloc("cat-food", "20")),
		// rent only appears outside the range
		txn("t4", "2024-02-04", domain.Expense, "800", alloc("cat-rent", "800")),
	}

	rows, err := aggregation.CategoryBreakdown(txns, rng, names)
	require.NoError(t, err)

	seen := map[string]int{}
	for _, r := range rows {
		seen[r.Category]++
	}
	assert.Equal(t, map[string]int{"Food": 1, "Transport": 1}, seen)

	assert.Equal(t, "Food", rows[0].Category)
	assert.True(t, rows[0].Expense.Equal(dec("15")))
	assert.True(t, rows[0].Income.Equal(dec("20")))
}

func TestCategoryBreakdown_EmptyRangeYieldsNoRows(t *testing.T) {
	rng := mustRange(t, "2030-01-01", "2030-01-31")
	rows, err := aggregation.CategoryBreakdown(scenario(), rng, names)
	require.NoError(t, err)
	assert.NotNil(t, rows)
	assert.Empty(t, rows)
}

func TestCategoryBreakdown_ConsistentWithTotals(t *testing.T) {
	rng := mustRange(t, "2024-01-01", "2024-12-31")
	txns := []domain.Transaction{
		txn("t1", "2024-01-05", domain.Expense, "100", alloc("cat-food", "60"), alloc("cat-transport", "40")),
		txn("t2", "2024-01-10", domain.Income, "500", alloc("cat-salary", "500")),
		txn("t3", "2024-06-10", domain.Income, "75.25", alloc("cat-salary", "70"), alloc("cat-food", "5.25")),
		txn("t4", "2024-07-01", domain.Expense, "1200.50", alloc("cat-rent", "1200.50")),
	}
	for _, tx := range txns {
		require.NoError(t, tx.Validate())
	}

	totals := aggregation.TotalsByType(txns, rng)
	rows, err := aggregation.CategoryBreakdown(txns, rng, names)
	require.NoError(t, err)

	income, expense := decimal.Zero, decimal.Zero
	for _, r := range rows {
		income = income.Add(r.Income)
		expense = expense.Add(r.Expense)
	}
	assert.True(t, income.Equal(totals.Income), "breakdown income %s vs totals %s", income, totals.Income)
	assert.True(t, expense.Equal(totals.Expense), "breakdown expense %s vs totals %s", expense, totals.Expense)
}

func TestCategoryBreakdown_SameNameMerges(t *testing.T) {
	rng := mustRange(t, "2024-01-01", "2024-01-31")
	resolver := aggregation.CategoryNames{"a": "Food", "b": "Food"}
	txns := []domain.Transaction{
		txn("t1", "2024-01-02", domain.Expense, "10", alloc("a", "10")),
		txn("t2", "2024-01-03", domain.Expense, "5", alloc("b", "5")),
	}

	rows, err := aggregation.CategoryBreakdown(txns, rng, resolver)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.True(t, rows[0].Expense.Equal(dec("15")))
}

func TestCategoryBreakdown_UnresolvedCategoryFails(t *testing.T) {
	rng := mustRange(t, "2024-01-01", "2024-01-31")
	txns := append(scenario(),
		txn("t-dangling", "2024-01-20", domain.Expense, "30", alloc("cat-food", "10"), alloc("cat-deleted", "20")))

	rows, err := aggregation.CategoryBreakdown(txns, rng, names)
	require.Error(t, err)
	assert.Nil(t, rows)
	assert.ErrorIs(t, err, apperrors.ErrDataIntegrity)

	var integrityErr *apperrors.DataIntegrityError
	require.ErrorAs(t, err, &integrityErr)
	assert.Equal(t, "t-dangling", integrityErr.TransactionID)
	assert.Equal(t, "cat-deleted", integrityErr.CategoryID)
}

func TestCategoryBreakdown_UnresolvedOutsideRangeIsIgnored(t *testing.T) {
	rng := mustRange(t, "2024-01-01", "2024-01-31")
	txns := append(scenario(),
		txn("t-old", "2023-05-01", domain.Expense, "20", alloc("cat-deleted", "20")))

	_, err := aggregation.CategoryBreakdown(txns, rng, names)
	assert.NoError(t, err)
}

func TestSortSummaries(t *testing.T) {
	rows := []domain.CategorySummary{
		{Category: "A", Income: dec("10"), Expense: dec("5")},
		{Category: "B", Income: dec("30"), Expense: dec("5")},
		{Category: "C", Income: dec("10"), Expense: dec("1")},
		{Category: "D", Income: dec("20"), Expense: dec("9")},
	}

	categories := func(rs []domain.CategorySummary) []string {
		out := make([]string, len(rs))
		for i, r := range rs {
			out[i] = r.Category
		}
		return out
	}

	tests := []struct {
		name string
		key  domain.SummarySortKey
		dir  domain.SortDirection
		want []string
	}{
		{"income ascending keeps A before C", domain.SortByIncome, domain.Ascending, []string{"A", "C", "D", "B"}},
		{"income descending keeps A before C", domain.SortByIncome, domain.Descending, []string{"B", "D", "A", "C"}},
		{"expense ascending keeps A before B", domain.SortByExpense, domain.Ascending, []string{"C", "A", "B", "D"}},
		{"expense descending keeps A before B", domain.SortByExpense, domain.Descending, []string{"D", "A", "B", "C"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sorted := aggregation.SortSummaries(rows, tt.key, tt.dir)
			assert.Equal(t, tt.want, categories(sorted))

			again := aggregation.SortSummaries(sorted, tt.key, tt.dir)
			assert.Equal(t, sorted, again)
		})
	}

	// input is left untouched
	assert.Equal(t, []string{"A", "B", "C", "D"}, categories(rows))
}
