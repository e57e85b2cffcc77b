package repositories

import (
	"context"

	"github.com/SscSPs/expense_tracker_app/internal/core/domain"
)

// CategoryReader defines read operations for category data
type CategoryReader interface {
	// FindCategoryByID retrieves a category by its id. Returns apperrors.ErrNotFound when absent.
	FindCategoryByID(ctx context.Context, categoryID string) (*domain.Category, error)

	// FindCategoryByName retrieves a category by its exact name. Returns apperrors.ErrNotFound when absent.
	FindCategoryByName(ctx context.Context, name string) (*domain.Category, error)

	// ListCategories retrieves all categories ordered by name.
	ListCategories(ctx context.Context) ([]domain.Category, error)
}

// CategoryWriter defines write operations for category data
type CategoryWriter interface {
	// SaveCategory inserts a new category. Returns apperrors.ErrDuplicate when the name is taken.
	SaveCategory(ctx context.Context, category domain.Category) error

	// UpdateCategory overwrites name and description. Returns apperrors.ErrNotFound or apperrors.ErrDuplicate.
	UpdateCategory(ctx context.Context, category domain.Category) error

	// DeleteCategory removes a category without touching transactions that reference it.
	DeleteCategory(ctx context.Context, categoryID string) error
}

// CategoryRepositoryFacade combines all category-related repository interfaces
type CategoryRepositoryFacade interface {
	CategoryReader
	CategoryWriter
}

// CategoryRepositoryWithTx extends CategoryRepositoryFacade with transaction capabilities
type CategoryRepositoryWithTx interface {
	CategoryRepositoryFacade
	TransactionManager
}
