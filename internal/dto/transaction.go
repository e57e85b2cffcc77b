package dto

import (
	"time"

	"github.com/SscSPs/expense_tracker_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// AllocationRequest attributes part of a transaction to one category.
type AllocationRequest struct {
	CategoryID string           `json:"categoryID" binding:"required,notblank"`
	Amount     *decimal.Decimal `json:"amount" binding:"required" swaggertype:"string" example:"60.00"`
}

// TransactionRequest is the full record used for both create and replace.
type TransactionRequest struct {
	Amount      *decimal.Decimal       `json:"amount" binding:"required" swaggertype:"string" example:"100.00"`
	Description string                 `json:"description" binding:"max=500"`
	Date        string                 `json:"date" binding:"required,datetime=2006-01-02" example:"2024-01-05"`
	Type        domain.TransactionType `json:"type" binding:"required,oneof=income expense"`
	Categories  []AllocationRequest    `json:"categories" binding:"required,min=1,dive"`
}

// ToDomain converts the request into a domain transaction without id or audit fields.
func (r TransactionRequest) ToDomain() (domain.Transaction, error) {
	date, err := time.Parse(domain.DateLayout, r.Date)
	if err != nil {
		return domain.Transaction{}, err
	}
	txn := domain.Transaction{
		Description: r.Description,
		Date:        domain.CalendarDate(date),
		Type:        r.Type,
		Categories:  make([]domain.CategoryAllocation, len(r.Categories)),
	}
	if r.Amount != nil {
		txn.Amount = *r.Amount
	}
	for i, a := range r.Categories {
		txn.Categories[i] = domain.CategoryAllocation{CategoryID: a.CategoryID}
		if a.Amount != nil {
			txn.Categories[i].Amount = *a.Amount
		}
	}
	return txn, nil
}

// ToTransactionRequest renders a domain transaction as a resubmittable request.
func ToTransactionRequest(txn domain.Transaction) TransactionRequest {
	amount := txn.Amount
	req := TransactionRequest{
		Amount:      &amount,
		Description: txn.Description,
		Date:        txn.Date.Format(domain.DateLayout),
		Type:        txn.Type,
		Categories:  make([]AllocationRequest, len(txn.Categories)),
	}
	for i, a := range txn.Categories {
		allocAmount := a.Amount
		req.Categories[i] = AllocationRequest{CategoryID: a.CategoryID, Amount: &allocAmount}
	}
	return req
}

// AllocationResponse is an allocation with its category name resolved for display.
// CategoryName is empty when the category no longer exists.
type AllocationResponse struct {
	CategoryID   string          `json:"categoryID"`
	CategoryName string          `json:"categoryName"`
	Amount       decimal.Decimal `json:"amount" swaggertype:"string"`
}

// TransactionResponse defines the data returned for a transaction.
type TransactionResponse struct {
	TransactionID string                 `json:"transactionID"`
	Amount        decimal.Decimal        `json:"amount" swaggertype:"string"`
	Description   string                 `json:"description"`
	Date          string                 `json:"date"`
	Type          domain.TransactionType `json:"type"`
	Categories    []AllocationResponse   `json:"categories"`
	CreatedAt     time.Time              `json:"createdAt"`
	LastUpdatedAt time.Time              `json:"lastUpdatedAt"`
}

// ToTransactionResponse converts a domain.Transaction, resolving names through names.
func ToTransactionResponse(txn *domain.Transaction, names map[string]string) TransactionResponse {
	allocs := make([]AllocationResponse, len(txn.Categories))
	for i, a := range txn.Categories {
		allocs[i] = AllocationResponse{CategoryID: a.CategoryID, CategoryName: names[a.CategoryID], Amount: a.Amount}
	}
	return TransactionResponse{
		TransactionID: txn.TransactionID,
		Amount:        txn.Amount,
		Description:   txn.Description,
		Date:          txn.Date.Format(domain.DateLayout),
		Type:          txn.Type,
		Categories:    allocs,
		CreatedAt:     txn.CreatedAt,
		LastUpdatedAt: txn.LastUpdatedAt,
	}
}

// ToTransactionResponses converts a slice of domain.Transaction.
func ToTransactionResponses(txns []domain.Transaction, names map[string]string) []TransactionResponse {
	res := make([]TransactionResponse, len(txns))
	for i := range txns {
		res[i] = ToTransactionResponse(&txns[i], names)
	}
	return res
}

// ListTransactionsParams defines query parameters for listing transactions.
// The date range only applies when both bounds are given.
type ListTransactionsParams struct {
	Start     string  `form:"start"`
	End       string  `form:"end"`
	Query     string  `form:"q" binding:"max=200"`
	Limit     int     `form:"limit" binding:"omitempty,min=1,max=500"`
	NextToken *string `form:"nextToken"`
}

// ListTransactionsResponse wraps a page of transactions.
type ListTransactionsResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
	NextToken    *string               `json:"nextToken,omitempty"`
}
