package memory

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/SscSPs/expense_tracker_app/internal/apperrors"
	"github.com/SscSPs/expense_tracker_app/internal/core/domain"
	portsrepo "github.com/SscSPs/expense_tracker_app/internal/core/ports/repositories"
)

// TransactionRepository is an in-memory transaction store. Stored and
// returned transactions are copies, so callers never share allocation slices.
type TransactionRepository struct {
	mu   sync.RWMutex
	byID map[string]domain.Transaction
}

// NewTransactionRepository returns an empty in-memory transaction store.
func NewTransactionRepository() *TransactionRepository {
	return &TransactionRepository{byID: make(map[string]domain.Transaction)}
}

var _ portsrepo.TransactionRepositoryFacade = (*TransactionRepository)(nil)

// NewRepositoryProvider wires empty in-memory repositories.
func NewRepositoryProvider() portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		CategoryRepo:    NewCategoryRepository(),
		TransactionRepo: NewTransactionRepository(),
	}
}

func (r *TransactionRepository) SaveTransaction(_ context.Context, txn domain.Transaction) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byID[txn.TransactionID]; ok {
		return fmt.Errorf("%w: transaction %s", apperrors.ErrDuplicate, txn.TransactionID)
	}
	r.byID[txn.TransactionID] = txn.Clone()
	return nil
}

func (r *TransactionRepository) ReplaceTransaction(_ context.Context, txn domain.Transaction) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.byID[txn.TransactionID]
	if !ok {
		return apperrors.ErrNotFound
	}
	stored := txn.Clone()
	stored.CreatedAt = existing.CreatedAt
	r.byID[txn.TransactionID] = stored
	return nil
}

func (r *TransactionRepository) DeleteTransaction(_ context.Context, transactionID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byID[transactionID]; !ok {
		return apperrors.ErrNotFound
	}
	delete(r.byID, transactionID)
	return nil
}

func (r *TransactionRepository) FindTransactionByID(_ context.Context, transactionID string) (*domain.Transaction, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	t, ok := r.byID[transactionID]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	c := t.Clone()
	return &c, nil
}

func (r *TransactionRepository) FindTransactionsInRange(_ context.Context, rng domain.DateRange) ([]domain.Transaction, error) {
	return r.sorted(func(t *domain.Transaction) bool { return t.InRange(rng) }), nil
}

func (r *TransactionRepository) ListTransactions(_ context.Context, filter domain.TransactionFilter) (*domain.TransactionPage, error) {
	search := strings.ToLower(strings.TrimSpace(filter.Search))
	txns := r.sorted(func(t *domain.Transaction) bool {
		if filter.Range != nil && !t.InRange(*filter.Range) {
			return false
		}
		if search != "" && !strings.Contains(strings.ToLower(t.Description), search) {
			return false
		}
		if filter.After != nil && !after(t, filter.After) {
			return false
		}
		return true
	})

	page := &domain.TransactionPage{Transactions: txns}
	if filter.Limit > 0 && len(txns) > filter.Limit {
		page.Transactions = txns[:filter.Limit]
		last := page.Transactions[filter.Limit-1]
		page.Next = &domain.TransactionCursor{Date: last.Date, TransactionID: last.TransactionID}
	}
	return page, nil
}

// sorted returns clones of the matching transactions in (date, id) order.
func (r *TransactionRepository) sorted(keep func(*domain.Transaction) bool) []domain.Transaction {
	r.mu.RLock()
	out := make([]domain.Transaction, 0, len(r.byID))
	for _, t := range r.byID {
		if keep(&t) {
			out = append(out, t.Clone())
		}
	}
	r.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		return less(&out[i], out[j].Date, out[j].TransactionID)
	})
	return out
}

// less orders by calendar date, then id.
func less(t *domain.Transaction, date time.Time, id string) bool {
	a, b := domain.CalendarDate(t.Date), domain.CalendarDate(date)
	if !a.Equal(b) {
		return a.Before(b)
	}
	return t.TransactionID < id
}

// after reports whether t sorts strictly after the cursor position.
func after(t *domain.Transaction, c *domain.TransactionCursor) bool {
	a, b := domain.CalendarDate(t.Date), domain.CalendarDate(c.Date)
	if !a.Equal(b) {
		return a.After(b)
	}
	return t.TransactionID > c.TransactionID
}
