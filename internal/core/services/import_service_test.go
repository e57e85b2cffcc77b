package services_test

import (
	"context"
	"strings"
	"testing"

	"github.com/SscSPs/expense_tracker_app/internal/apperrors"
	"github.com/SscSPs/expense_tracker_app/internal/core/domain"
	"github.com/SscSPs/expense_tracker_app/internal/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const bankExport = "Kontoutdrag;2024-01\n" +
	"Bokföringsdag;Transaktionsdag;Beskrivning;Belopp;Saldo\n" +
	"2024-01-03;2024-01-02;ICA Supermarket;-245,50;10000\n" +
	"2024-01-04;2024-01-04;Broken row;abc;9754,50\n" +
	"2024-01-25;2024-01-25;Lön;32 500,00;42254,50\n"

func TestImport_PreviewThenCommit(t *testing.T) {
	ctx := context.Background()
	c := newMemoryContainer(t)

	preview, err := c.Import.PreviewImport(ctx, strings.NewReader(bankExport))
	require.NoError(t, err)
	assert.Equal(t, 3, preview.Total)
	assert.Equal(t, 2, preview.Valid)
	assert.Equal(t, 1, preview.Failed)
	require.Len(t, preview.Errors, 1)
	assert.Equal(t, 2, preview.Errors[0].Row)

	def, err := c.Category.EnsureDefault(ctx)
	require.NoError(t, err)
	assert.Equal(t, def.CategoryID, preview.Drafts[0].Transaction.Categories[0].CategoryID)

	// preview stores nothing
	page, err := c.Transaction.ListTransactions(ctx, domain.TransactionFilter{})
	require.NoError(t, err)
	assert.Empty(t, page.Transactions)

	committed, err := c.Import.CommitImport(ctx, dto.CommitImportRequest{Drafts: preview.Drafts})
	require.NoError(t, err)
	assert.Equal(t, 2, committed.Created)
	assert.Equal(t, 0, committed.Failed)

	rows, err := c.Reporting.Breakdown(ctx, mustRange(t, "2024-01-01", "2024-01-31"), nil)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, domain.DefaultCategoryName, rows[0].Category)
	assert.Equal(t, "245.5", rows[0].Expense.String())
	assert.Equal(t, "32500", rows[0].Income.String())
}

func TestImport_CommitKeepsEarlierSuccesses(t *testing.T) {
	ctx := context.Background()
	c := newMemoryContainer(t)
	def, err := c.Category.EnsureDefault(ctx)
	require.NoError(t, err)

	good := dto.TransactionRequest{
		Amount: decPtr("10"), Date: "2024-01-01", Type: domain.Expense,
		Categories: []dto.AllocationRequest{{CategoryID: def.CategoryID, Amount: decPtr("10")}},
	}
	bad := good
	bad.Amount = decPtr("11")

	res, err := c.Import.CommitImport(ctx, dto.CommitImportRequest{Drafts: []dto.ImportDraft{
		{Row: 1, Transaction: good},
		{Row: 2, Transaction: bad},
	}})
	require.NoError(t, err)
	assert.Equal(t, 1, res.Created)
	assert.Equal(t, 1, res.Failed)
	assert.NotEmpty(t, res.Results[0].TransactionID)
	assert.Contains(t, res.Results[1].Error, "allocations sum")

	page, err := c.Transaction.ListTransactions(ctx, domain.TransactionFilter{})
	require.NoError(t, err)
	assert.Len(t, page.Transactions, 1)
}

func TestImport_StructuralErrorFailsPreview(t *testing.T) {
	c := newMemoryContainer(t)
	_, err := c.Import.PreviewImport(context.Background(), strings.NewReader("only one line"))
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}
