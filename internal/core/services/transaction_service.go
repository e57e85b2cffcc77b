package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/expense_tracker_app/internal/apperrors"
	"github.com/SscSPs/expense_tracker_app/internal/core/domain"
	portsrepo "github.com/SscSPs/expense_tracker_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/expense_tracker_app/internal/core/ports/services"
	"github.com/SscSPs/expense_tracker_app/internal/dto"
	"github.com/SscSPs/expense_tracker_app/internal/utils/pagination"
	"github.com/google/uuid"
)

// transactionService implements the TransactionSvcFacade interface
type transactionService struct {
	BaseService
	txnRepo    portsrepo.TransactionRepositoryFacade
	categories portssvc.CategoryReaderSvc
}

// NewTransactionService creates a new transaction service
func NewTransactionService(repo portsrepo.TransactionRepositoryFacade, categories portssvc.CategoryReaderSvc) portssvc.TransactionSvcFacade {
	return &transactionService{
		txnRepo:    repo,
		categories: categories,
	}
}

var _ portssvc.TransactionSvcFacade = (*transactionService)(nil)

// categoryNames snapshots the registry as an id to name map.
func (s *transactionService) categoryNames(ctx context.Context) (map[string]string, error) {
	categories, err := s.categories.ListCategories(ctx)
	if err != nil {
		return nil, err
	}
	names := make(map[string]string, len(categories))
	for _, c := range categories {
		names[c.CategoryID] = c.Name
	}
	return names, nil
}

// prepare converts and validates a request. Every allocation must point at a registered category.
func (s *transactionService) prepare(ctx context.Context, req dto.TransactionRequest) (domain.Transaction, map[string]string, error) {
	txn, err := req.ToDomain()
	if err != nil {
		return domain.Transaction{}, nil, fmt.Errorf("%w: invalid date %q, expected %s", apperrors.ErrValidation, req.Date, domain.DateLayout)
	}
	if err := txn.Validate(); err != nil {
		return domain.Transaction{}, nil, err
	}

	names, err := s.categoryNames(ctx)
	if err != nil {
		return domain.Transaction{}, nil, fmt.Errorf("failed to load categories: %w", err)
	}
	for _, a := range txn.Categories {
		if _, ok := names[a.CategoryID]; !ok {
			return domain.Transaction{}, nil, fmt.Errorf("%w: unknown category %s", apperrors.ErrValidation, a.CategoryID)
		}
	}
	return txn, names, nil
}

func (s *transactionService) CreateTransaction(ctx context.Context, req dto.TransactionRequest) (*dto.TransactionResponse, error) {
	txn, names, err := s.prepare(ctx, req)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	txn.TransactionID = uuid.NewString()
	txn.AuditFields = domain.AuditFields{CreatedAt: now, LastUpdatedAt: now}

	if err := s.txnRepo.SaveTransaction(ctx, txn); err != nil {
		s.LogError(ctx, err, "Failed to save transaction", slog.String("transaction_id", txn.TransactionID))
		return nil, fmt.Errorf("failed to create transaction: %w", err)
	}

	s.LogInfo(ctx, "Transaction created",
		slog.String("transaction_id", txn.TransactionID),
		slog.String("type", string(txn.Type)),
		slog.String("amount", txn.Amount.String()),
		slog.Int("allocations", len(txn.Categories)))

	res := dto.ToTransactionResponse(&txn, names)
	return &res, nil
}

func (s *transactionService) ReplaceTransaction(ctx context.Context, transactionID string, req dto.TransactionRequest) (*dto.TransactionResponse, error) {
	existing, err := s.txnRepo.FindTransactionByID(ctx, transactionID)
	if err != nil {
		return nil, fmt.Errorf("failed to find transaction %s: %w", transactionID, err)
	}

	txn, names, err := s.prepare(ctx, req)
	if err != nil {
		return nil, err
	}
	txn.TransactionID = transactionID
	txn.CreatedAt = existing.CreatedAt
	txn.LastUpdatedAt = time.Now().UTC()

	if err := s.txnRepo.ReplaceTransaction(ctx, txn); err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to replace transaction", slog.String("transaction_id", transactionID))
		}
		return nil, fmt.Errorf("failed to replace transaction %s: %w", transactionID, err)
	}

	res := dto.ToTransactionResponse(&txn, names)
	return &res, nil
}

func (s *transactionService) DeleteTransaction(ctx context.Context, transactionID string) error {
	if err := s.txnRepo.DeleteTransaction(ctx, transactionID); err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to delete transaction", slog.String("transaction_id", transactionID))
		}
		return fmt.Errorf("failed to delete transaction %s: %w", transactionID, err)
	}
	s.LogInfo(ctx, "Transaction deleted", slog.String("transaction_id", transactionID))
	return nil
}

func (s *transactionService) GetTransactionByID(ctx context.Context, transactionID string) (*dto.TransactionResponse, error) {
	txn, err := s.txnRepo.FindTransactionByID(ctx, transactionID)
	if err != nil {
		return nil, fmt.Errorf("failed to get transaction %s: %w", transactionID, err)
	}
	names, err := s.categoryNames(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load categories: %w", err)
	}
	res := dto.ToTransactionResponse(txn, names)
	return &res, nil
}

func (s *transactionService) ListTransactions(ctx context.Context, filter domain.TransactionFilter) (*dto.ListTransactionsResponse, error) {
	page, err := s.txnRepo.ListTransactions(ctx, filter)
	if err != nil {
		s.LogError(ctx, err, "Failed to list transactions")
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	names, err := s.categoryNames(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load categories: %w", err)
	}

	res := &dto.ListTransactionsResponse{Transactions: dto.ToTransactionResponses(page.Transactions, names)}
	if page.Next != nil {
		token := pagination.EncodeCursor(*page.Next)
		res.NextToken = &token
	}

	s.LogDebug(ctx, "Transactions listed", slog.Int("count", len(res.Transactions)), slog.Bool("has_more", res.NextToken != nil))
	return res, nil
}
