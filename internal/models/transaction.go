package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType is stored as lowercase text, constrained by a CHECK.
type TransactionType string

// Transaction is a row of the transactions table.
type Transaction struct {
	TransactionID   string          `db:"transaction_id"`
	Amount          decimal.Decimal `db:"amount"`
	Description     string          `db:"description"`
	TransactionDate time.Time       `db:"transaction_date"` // DATE column
	TransactionType TransactionType `db:"transaction_type"`
	AuditFields
}

// Allocation is a row of the transaction_allocations table.
// Position keeps the allocation order of the parent transaction.
type Allocation struct {
	TransactionID string          `db:"transaction_id"`
	Position      int             `db:"position"`
	CategoryID    string          `db:"category_id"`
	Amount        decimal.Decimal `db:"amount"`
}
