package services

import (
	"context"

	"github.com/SscSPs/expense_tracker_app/internal/core/domain"
	"github.com/SscSPs/expense_tracker_app/internal/dto"
)

// CategoryReaderSvc defines read operations of the category registry
type CategoryReaderSvc interface {
	// GetCategoryByID retrieves a category by id.
	GetCategoryByID(ctx context.Context, categoryID string) (*domain.Category, error)

	// ListCategories retrieves every registered category.
	ListCategories(ctx context.Context) ([]domain.Category, error)

	// ResolveName returns the name of a category, or apperrors.ErrNotFound.
	ResolveName(ctx context.Context, categoryID string) (string, error)
}

// CategoryWriterSvc defines write operations of the category registry
type CategoryWriterSvc interface {
	CreateCategory(ctx context.Context, req dto.CreateCategoryRequest) (*domain.Category, error)
	UpdateCategory(ctx context.Context, categoryID string, req dto.UpdateCategoryRequest) (*domain.Category, error)

	// DeleteCategory removes a category. The default category cannot be deleted.
	DeleteCategory(ctx context.Context, categoryID string) error

	// EnsureDefault returns the default category, creating it when absent.
	EnsureDefault(ctx context.Context) (*domain.Category, error)
}

// CategorySvcFacade combines all category-related service interfaces
type CategorySvcFacade interface {
	CategoryReaderSvc
	CategoryWriterSvc
}
