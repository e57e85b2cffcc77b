package pgsql

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/SscSPs/expense_tracker_app/internal/apperrors"
	"github.com/SscSPs/expense_tracker_app/internal/core/domain"
	portsrepo "github.com/SscSPs/expense_tracker_app/internal/core/ports/repositories"
	"github.com/SscSPs/expense_tracker_app/internal/models"
	"github.com/SscSPs/expense_tracker_app/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const transactionColumns = `transaction_id, amount, description, transaction_date, transaction_type, created_at, last_updated_at`

// PgxTransactionRepository stores transactions and their allocations in PostgreSQL.
type PgxTransactionRepository struct {
	BaseRepository
}

// newPgxTransactionRepository creates a new repository for transactions and their allocations.
func newPgxTransactionRepository(pool *pgxpool.Pool) portsrepo.TransactionRepositoryWithTx {
	return &PgxTransactionRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure implementation matches interface
var _ portsrepo.TransactionRepositoryWithTx = (*PgxTransactionRepository)(nil)

func scanTransaction(row pgx.Row) (models.Transaction, error) {
	var t models.Transaction
	err := row.Scan(&t.TransactionID, &t.Amount, &t.Description, &t.TransactionDate,
		&t.TransactionType, &t.CreatedAt, &t.LastUpdatedAt)
	return t, err
}

func queueAllocations(batch *pgx.Batch, allocs []models.Allocation) {
	insertAllocQuery := `
		INSERT INTO transaction_allocations (transaction_id, position, category_id, amount)
		VALUES ($1, $2, $3, $4);
	`
	for _, a := range allocs {
		batch.Queue(insertAllocQuery, a.TransactionID, a.Position, a.CategoryID, a.Amount)
	}
}

// SaveTransaction inserts the transaction row and all allocation rows in one database transaction.
func (r *PgxTransactionRepository) SaveTransaction(ctx context.Context, txn domain.Transaction) error {
	row, allocs := mapping.ToModelTransaction(txn)

	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	insertQuery := `
		INSERT INTO transactions (transaction_id, amount, description, transaction_date, transaction_type, created_at, last_updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7);
	`
	_, err = tx.Exec(ctx, insertQuery, row.TransactionID, row.Amount, row.Description, row.TransactionDate,
		row.TransactionType, row.CreatedAt, row.LastUpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: transaction %s", apperrors.ErrDuplicate, row.TransactionID)
		}
		return apperrors.NewAppError(500, "failed to insert transaction", err)
	}

	batch := &pgx.Batch{}
	queueAllocations(batch, allocs)
	br := tx.SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		return apperrors.NewAppError(500, "failed to insert transaction allocations", err)
	}

	return r.Commit(ctx, tx)
}

// ReplaceTransaction overwrites the transaction row and swaps its allocation list.
func (r *PgxTransactionRepository) ReplaceTransaction(ctx context.Context, txn domain.Transaction) error {
	row, allocs := mapping.ToModelTransaction(txn)

	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	updateQuery := `
		UPDATE transactions
		SET amount = $2, description = $3, transaction_date = $4, transaction_type = $5, last_updated_at = $6
		WHERE transaction_id = $1;
	`
	tag, err := tx.Exec(ctx, updateQuery, row.TransactionID, row.Amount, row.Description, row.TransactionDate,
		row.TransactionType, row.LastUpdatedAt)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update transaction", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}

	batch := &pgx.Batch{}
	batch.Queue(`DELETE FROM transaction_allocations WHERE transaction_id = $1;`, row.TransactionID)
	queueAllocations(batch, allocs)
	br := tx.SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		return apperrors.NewAppError(500, "failed to replace transaction allocations", err)
	}

	return r.Commit(ctx, tx)
}

// DeleteTransaction removes a transaction; allocations go with it via ON DELETE CASCADE.
func (r *PgxTransactionRepository) DeleteTransaction(ctx context.Context, transactionID string) error {
	tag, err := r.Pool.Exec(ctx, `DELETE FROM transactions WHERE transaction_id = $1;`, transactionID)
	if err != nil {
		return fmt.Errorf("failed to delete transaction %s: %w", transactionID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// FindTransactionByID retrieves a transaction with its allocations.
func (r *PgxTransactionRepository) FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE transaction_id = $1;`
	m, err := scanTransaction(r.Pool.QueryRow(ctx, query, transactionID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find transaction %s: %w", transactionID, err)
	}

	allocs, err := r.findAllocations(ctx, []string{m.TransactionID})
	if err != nil {
		return nil, err
	}
	d := mapping.ToDomainTransaction(m, allocs[m.TransactionID])
	return &d, nil
}

// FindTransactionsInRange returns every transaction dated within rng, bounds included.
func (r *PgxTransactionRepository) FindTransactionsInRange(ctx context.Context, rng domain.DateRange) ([]domain.Transaction, error) {
	query := `
		SELECT ` + transactionColumns + `
		FROM transactions
		WHERE transaction_date BETWEEN $1 AND $2
		ORDER BY transaction_date, transaction_id;
	`
	rows, err := r.Pool.Query(ctx, query, rng.Start, rng.End)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query transactions in range", err)
	}
	return r.collectWithAllocations(ctx, rows)
}

// ListTransactions returns one page of transactions in (date, id) order.
// It fetches one extra row to learn whether another page follows.
func (r *PgxTransactionRepository) ListTransactions(ctx context.Context, filter domain.TransactionFilter) (*domain.TransactionPage, error) {
	var (
		conds []string
		args  []interface{}
	)
	placeholder := func(v interface{}) string {
		args = append(args, v)
		return "$" + strconv.Itoa(len(args))
	}

	if filter.Range != nil {
		conds = append(conds, "transaction_date BETWEEN "+placeholder(filter.Range.Start)+" AND "+placeholder(filter.Range.End))
	}
	if s := strings.TrimSpace(filter.Search); s != "" {
		conds = append(conds, "description ILIKE '%' || "+placeholder(s)+" || '%'")
	}
	if filter.After != nil {
		conds = append(conds, "(transaction_date, transaction_id) > ("+
			placeholder(filter.After.Date)+", "+placeholder(filter.After.TransactionID)+")")
	}

	query := `SELECT ` + transactionColumns + ` FROM transactions`
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY transaction_date, transaction_id"
	if filter.Limit > 0 {
		query += " LIMIT " + placeholder(filter.Limit+1)
	}

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to list transactions", err)
	}
	txns, err := r.collectWithAllocations(ctx, rows)
	if err != nil {
		return nil, err
	}

	page := &domain.TransactionPage{Transactions: txns}
	if filter.Limit > 0 && len(txns) > filter.Limit {
		page.Transactions = txns[:filter.Limit]
		last := page.Transactions[filter.Limit-1]
		page.Next = &domain.TransactionCursor{Date: last.Date, TransactionID: last.TransactionID}
	}
	return page, nil
}

func (r *PgxTransactionRepository) collectWithAllocations(ctx context.Context, rows pgx.Rows) ([]domain.Transaction, error) {
	defer rows.Close()
	modelTxns, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.Transaction, error) {
		return scanTransaction(row)
	})
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to scan transactions", err)
	}
	if len(modelTxns) == 0 {
		return []domain.Transaction{}, nil
	}

	ids := make([]string, len(modelTxns))
	for i, m := range modelTxns {
		ids[i] = m.TransactionID
	}
	allocs, err := r.findAllocations(ctx, ids)
	if err != nil {
		return nil, err
	}
	return mapping.ToDomainTransactionSlice(modelTxns, allocs), nil
}

// findAllocations loads allocations for the given transactions grouped by transaction id, in position order.
func (r *PgxTransactionRepository) findAllocations(ctx context.Context, transactionIDs []string) (map[string][]models.Allocation, error) {
	query := `
		SELECT transaction_id, position, category_id, amount
		FROM transaction_allocations
		WHERE transaction_id = ANY($1)
		ORDER BY transaction_id, position;
	`
	rows, err := r.Pool.Query(ctx, query, transactionIDs)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query transaction allocations", err)
	}
	defer rows.Close()

	allocs, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.Allocation])
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to scan transaction allocations", err)
	}

	grouped := make(map[string][]models.Allocation, len(transactionIDs))
	for _, a := range allocs {
		grouped[a.TransactionID] = append(grouped[a.TransactionID], a)
	}
	return grouped, nil
}
