package dto

import "github.com/SscSPs/expense_tracker_app/internal/apperrors"

// ImportDraft is a normalized CSV row awaiting confirmation.
type ImportDraft struct {
	Row         int                `json:"row"`
	Transaction TransactionRequest `json:"transaction" binding:"required"`
}

// ImportRowError describes a CSV row that could not be normalized.
type ImportRowError struct {
	Row   int    `json:"row"`
	Line  int    `json:"line"`
	Field string `json:"field"`
	Value string `json:"value"`
	Error string `json:"error"`
}

// ToImportRowError converts a parse error for the API.
func ToImportRowError(e *apperrors.ParseError) ImportRowError {
	msg := ""
	if e.Err != nil {
		msg = e.Err.Error()
	}
	return ImportRowError{Row: e.Row, Line: e.Line, Field: e.Field, Value: e.Value, Error: msg}
}

// ImportPreviewResponse lists what a commit would store and which rows failed.
type ImportPreviewResponse struct {
	Total  int              `json:"total"`
	Valid  int              `json:"valid"`
	Failed int              `json:"failed"`
	Drafts []ImportDraft    `json:"drafts"`
	Errors []ImportRowError `json:"errors"`
}

// CommitImportRequest carries the drafts the operator confirmed.
type CommitImportRequest struct {
	Drafts []ImportDraft `json:"drafts" binding:"required,min=1,dive"`
}

// ImportItemResult is the outcome of storing one draft.
type ImportItemResult struct {
	Row           int    `json:"row"`
	TransactionID string `json:"transactionID,omitempty"`
	Error         string `json:"error,omitempty"`
}

// CommitImportResponse summarizes a commit.
type CommitImportResponse struct {
	Created int                `json:"created"`
	Failed  int                `json:"failed"`
	Results []ImportItemResult `json:"results"`
}
