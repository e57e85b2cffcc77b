package repositories

import (
	"context"

	"github.com/SscSPs/expense_tracker_app/internal/core/domain"
)

// TransactionReader defines read operations for transaction data
type TransactionReader interface {
	// FindTransactionsInRange returns every transaction dated within rng, bounds included.
	// No other filtering is applied.
	FindTransactionsInRange(ctx context.Context, rng domain.DateRange) ([]domain.Transaction, error)

	// ListTransactions returns transactions in (date, id) order narrowed by filter.
	ListTransactions(ctx context.Context, filter domain.TransactionFilter) (*domain.TransactionPage, error)

	// FindTransactionByID retrieves a transaction with its allocations. Returns apperrors.ErrNotFound when absent.
	FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error)
}

// TransactionWriter defines write operations for transaction data
type TransactionWriter interface {
	// SaveTransaction inserts a transaction together with its allocations.
	SaveTransaction(ctx context.Context, txn domain.Transaction) error

	// ReplaceTransaction overwrites a stored transaction and its whole allocation list.
	ReplaceTransaction(ctx context.Context, txn domain.Transaction) error

	// DeleteTransaction removes a transaction and its allocations.
	DeleteTransaction(ctx context.Context, transactionID string) error
}

// TransactionRepositoryFacade combines all transaction-related repository interfaces
type TransactionRepositoryFacade interface {
	TransactionReader
	TransactionWriter
}

// TransactionRepositoryWithTx extends TransactionRepositoryFacade with transaction capabilities
type TransactionRepositoryWithTx interface {
	TransactionRepositoryFacade
	TransactionManager
}
