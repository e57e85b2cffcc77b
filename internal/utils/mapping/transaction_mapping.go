package mapping

import (
	"github.com/SscSPs/expense_tracker_app/internal/core/domain"
	"github.com/SscSPs/expense_tracker_app/internal/models"
)

// ToModelTransaction splits a domain Transaction into its row and allocation rows
func ToModelTransaction(d domain.Transaction) (models.Transaction, []models.Allocation) {
	row := models.Transaction{
		TransactionID:   d.TransactionID,
		Amount:          d.Amount,
		Description:     d.Description,
		TransactionDate: d.Date,
		TransactionType: models.TransactionType(d.Type),
		AuditFields:     ToModelAuditFields(d.AuditFields),
	}
	allocs := make([]models.Allocation, len(d.Categories))
	for i, a := range d.Categories {
		allocs[i] = models.Allocation{
			TransactionID: d.TransactionID,
			Position:      i,
			CategoryID:    a.CategoryID,
			Amount:        a.Amount,
		}
	}
	return row, allocs
}

// ToDomainTransaction joins a transaction row with its allocation rows,
// which must already be in position order
func ToDomainTransaction(m models.Transaction, allocs []models.Allocation) domain.Transaction {
	d := domain.Transaction{
		TransactionID: m.TransactionID,
		Amount:        m.Amount,
		Description:   m.Description,
		Date:          domain.CalendarDate(m.TransactionDate),
		Type:          domain.TransactionType(m.TransactionType),
		Categories:    make([]domain.CategoryAllocation, len(allocs)),
		AuditFields:   ToDomainAuditFields(m.AuditFields),
	}
	for i, a := range allocs {
		d.Categories[i] = domain.CategoryAllocation{CategoryID: a.CategoryID, Amount: a.Amount}
	}
	return d
}

// ToDomainTransactionSlice joins rows with allocations grouped by transaction id
func ToDomainTransactionSlice(ms []models.Transaction, allocs map[string][]models.Allocation) []domain.Transaction {
	ds := make([]domain.Transaction, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainTransaction(m, allocs[m.TransactionID])
	}
	return ds
}
