package services

import (
	"context"

	"github.com/SscSPs/expense_tracker_app/internal/core/domain"
	"github.com/SscSPs/expense_tracker_app/internal/dto"
)

// TransactionReaderSvc defines read operations for transactions
type TransactionReaderSvc interface {
	// GetTransactionByID retrieves a transaction with resolved category names.
	GetTransactionByID(ctx context.Context, transactionID string) (*dto.TransactionResponse, error)

	// ListTransactions retrieves transactions with resolved category names.
	ListTransactions(ctx context.Context, filter domain.TransactionFilter) (*dto.ListTransactionsResponse, error)
}

// TransactionWriterSvc defines write operations for transactions
type TransactionWriterSvc interface {
	CreateTransaction(ctx context.Context, req dto.TransactionRequest) (*dto.TransactionResponse, error)

	// ReplaceTransaction overwrites the whole record, allocations included.
	ReplaceTransaction(ctx context.Context, transactionID string, req dto.TransactionRequest) (*dto.TransactionResponse, error)

	DeleteTransaction(ctx context.Context, transactionID string) error
}

// TransactionSvcFacade combines all transaction-related service interfaces
type TransactionSvcFacade interface {
	TransactionReaderSvc
	TransactionWriterSvc
}
