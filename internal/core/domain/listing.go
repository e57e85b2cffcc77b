package domain

import "time"

// TransactionCursor identifies the last transaction of a page in (date, id) order.
type TransactionCursor struct {
	Date          time.Time
	TransactionID string
}

// TransactionFilter narrows a transaction listing.
type TransactionFilter struct {
	Range  *DateRange         // nil means all dates
	Search string             // case-insensitive substring of the description
	Limit  int                // 0 means no limit
	After  *TransactionCursor // keyset position to continue from
}

// TransactionPage is one page of a transaction listing.
type TransactionPage struct {
	Transactions []Transaction
	Next         *TransactionCursor // nil when there are no more rows
}
