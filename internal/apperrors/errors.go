package apperrors

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrInvalidRequest indicates missing or malformed request parameters (e.g. an absent date range).
var ErrInvalidRequest = errors.New("invalid request")

// ErrProtectedCategory indicates an attempt to delete or rename the default category.
var ErrProtectedCategory = errors.New("category is protected")

// ErrDataIntegrity indicates stored data that cannot be aggregated consistently.
var ErrDataIntegrity = errors.New("data integrity error")

// AppError carries an HTTP-ish status code alongside an infrastructure failure.
type AppError struct {
	Code    int
	Message string
	Err     error
}

// NewAppError creates a new AppError.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// DataIntegrityError is raised when a transaction allocation references a
// category that no longer resolves in the registry.
type DataIntegrityError struct {
	TransactionID string
	CategoryID    string
}

// NewDataIntegrityError creates a DataIntegrityError for the given transaction and category.
func NewDataIntegrityError(transactionID, categoryID string) *DataIntegrityError {
	return &DataIntegrityError{TransactionID: transactionID, CategoryID: categoryID}
}

func (e *DataIntegrityError) Error() string {
	return fmt.Sprintf("transaction %s references unknown category %s", e.TransactionID, e.CategoryID)
}

// Is makes errors.Is(err, ErrDataIntegrity) hold for any DataIntegrityError.
func (e *DataIntegrityError) Is(target error) bool {
	return target == ErrDataIntegrity
}

// ParseError describes a single CSV row that could not be normalized.
type ParseError struct {
	Row   int    // 1-based index among data rows
	Line  int    // 1-based physical line in the source file
	Field string // source column name
	Value string // raw value that failed to parse
	Err   error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("row %d (line %d): invalid %s %q: %v", e.Row, e.Line, e.Field, e.Value, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
