// Package aggregation folds transaction snapshots into reporting structures.
//
// Every function here is pure: it works on the slice it is given, never
// mutates it and never talks to a store.
package aggregation

import (
	"slices"

	"github.com/SscSPs/expense_tracker_app/internal/apperrors"
	"github.com/SscSPs/expense_tracker_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CategoryResolver maps a category id to its display name.
type CategoryResolver interface {
	ResolveName(categoryID string) (string, bool)
}

// CategoryNames is a CategoryResolver backed by a registry snapshot.
type CategoryNames map[string]string

// NewCategoryNames indexes the given categories by id.
func NewCategoryNames(categories []domain.Category) CategoryNames {
	names := make(CategoryNames, len(categories))
	for _, c := range categories {
		names[c.CategoryID] = c.Name
	}
	return names
}

// ResolveName implements CategoryResolver.
func (n CategoryNames) ResolveName(categoryID string) (string, bool) {
	name, ok := n[categoryID]
	return name, ok
}

// TotalsByType sums transaction amounts per type over the transactions dated within rng.
// Types with no matching transactions report zero.
func TotalsByType(txns []domain.Transaction, rng domain.DateRange) domain.TypeTotals {
	totals := domain.TypeTotals{Income: decimal.Zero, Expense: decimal.Zero}
	for i := range txns {
		tx := &txns[i]
		if !tx.InRange(rng) {
			continue
		}
		switch tx.Type {
		case domain.Income:
			totals.Income = totals.Income.Add(tx.Amount)
		case domain.Expense:
			totals.Expense = totals.Expense.Add(tx.Amount)
		}
	}
	return totals
}

// CategoryBreakdown accumulates allocation amounts per category name and type over
// the transactions dated within rng. Rows come out in the order their category is
// first seen. Categories without allocations in range are absent.
//
// Distinct ids that resolve to the same name share a row. An allocation whose id
// does not resolve fails the whole call with *apperrors.DataIntegrityError.
func CategoryBreakdown(txns []domain.Transaction, rng domain.DateRange, resolver CategoryResolver) ([]domain.CategorySummary, error) {
	rows := make([]domain.CategorySummary, 0)
	index := make(map[string]int)

	for i := range txns {
		tx := &txns[i]
		if !tx.InRange(rng) {
			continue
		}
		for _, alloc := range tx.Categories {
			name, ok := resolver.ResolveName(alloc.CategoryID)
			if !ok {
				return nil, apperrors.NewDataIntegrityError(tx.TransactionID, alloc.CategoryID)
			}

			pos, seen := index[name]
			if !seen {
				pos = len(rows)
				index[name] = pos
				rows = append(rows, domain.CategorySummary{Category: name, Income: decimal.Zero, Expense: decimal.Zero})
			}

			switch tx.Type {
			case domain.Income:
				rows[pos].Income = rows[pos].Income.Add(alloc.Amount)
			case domain.Expense:
				rows[pos].Expense = rows[pos].Expense.Add(alloc.Amount)
			}
		}
	}
	return rows, nil
}

// SortSummaries returns a copy of rows ordered by key in the given direction.
// Equal keys keep their relative order, so re-sorting is idempotent.
func SortSummaries(rows []domain.CategorySummary, key domain.SummarySortKey, dir domain.SortDirection) []domain.CategorySummary {
	sorted := slices.Clone(rows)

	value := func(r domain.CategorySummary) decimal.Decimal {
		if key == domain.SortByExpense {
			return r.Expense
		}
		return r.Income
	}

	slices.SortStableFunc(sorted, func(a, b domain.CategorySummary) int {
		c := value(a).Cmp(value(b))
		if dir == domain.Descending {
			return -c
		}
		return c
	})
	return sorted
}
