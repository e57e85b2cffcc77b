package domain

import (
	"fmt"
	"time"

	"github.com/SscSPs/expense_tracker_app/internal/apperrors"
	"github.com/shopspring/decimal"
)

// TransactionType indicates the direction of a transaction.
type TransactionType string

const (
	Income  TransactionType = "income"
	Expense TransactionType = "expense"
)

// IsValid reports whether t is one of the known transaction types.
func (t TransactionType) IsValid() bool {
	return t == Income || t == Expense
}

// CategoryAllocation attributes a portion of a transaction's amount to one category.
type CategoryAllocation struct {
	CategoryID string          `json:"categoryID"`
	Amount     decimal.Decimal `json:"amount"`
}

// Transaction is a single income or expense, split across one or more categories.
type Transaction struct {
	TransactionID string               `json:"transactionID"`
	Amount        decimal.Decimal      `json:"amount"` // non-negative magnitude; direction lives in Type
	Description   string               `json:"description"`
	Date          time.Time            `json:"date"` // calendar date, midnight UTC
	Type          TransactionType      `json:"type"`
	Categories    []CategoryAllocation `json:"categories"`
	AuditFields
}

// Validate checks the invariants every stored transaction must hold.
func (t *Transaction) Validate() error {
	if !t.Type.IsValid() {
		return fmt.Errorf("%w: unknown transaction type %q", apperrors.ErrValidation, t.Type)
	}
	if t.Date.IsZero() {
		return fmt.Errorf("%w: transaction date is required", apperrors.ErrValidation)
	}
	if err := CheckAmount(t.Amount); err != nil {
		return fmt.Errorf("%w: transaction %v", apperrors.ErrValidation, err)
	}
	if t.Amount.IsNegative() {
		return fmt.Errorf("%w: transaction amount must not be negative", apperrors.ErrValidation)
	}
	if len(t.Categories) == 0 {
		return fmt.Errorf("%w: transaction needs at least one category allocation", apperrors.ErrValidation)
	}

	sum := decimal.Zero
	for i, alloc := range t.Categories {
		if alloc.CategoryID == "" {
			return fmt.Errorf("%w: allocation %d is missing categoryID", apperrors.ErrValidation, i)
		}
		if err := CheckAmount(alloc.Amount); err != nil {
			return fmt.Errorf("%w: allocation %d %v", apperrors.ErrValidation, i, err)
		}
		sum = sum.Add(alloc.Amount)
	}
	if !sum.Equal(t.Amount) {
		return fmt.Errorf("%w: allocations sum to %s but transaction amount is %s",
			apperrors.ErrValidation, sum.String(), t.Amount.String())
	}
	return nil
}

// InRange reports whether the transaction's date lies within rng, bounds included.
func (t *Transaction) InRange(rng DateRange) bool {
	return rng.Contains(t.Date)
}

// Clone returns a copy of t that does not share its allocation slice.
func (t Transaction) Clone() Transaction {
	c := t
	c.Categories = make([]CategoryAllocation, len(t.Categories))
	copy(c.Categories, t.Categories)
	return c
}
