package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/SscSPs/expense_tracker_app/internal/apperrors"
	"github.com/SscSPs/expense_tracker_app/internal/core/domain"
	portsrepo "github.com/SscSPs/expense_tracker_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/expense_tracker_app/internal/core/ports/services"
	"github.com/SscSPs/expense_tracker_app/internal/dto"
	"github.com/google/uuid"
)

// categoryService implements the CategorySvcFacade interface
type categoryService struct {
	BaseService
	categoryRepo portsrepo.CategoryRepositoryFacade
	defaultName  string
}

// CategoryServiceOption is a functional option for configuring the category service
type CategoryServiceOption func(*categoryService)

// WithDefaultCategoryName overrides the name of the protected default category.
func WithDefaultCategoryName(name string) CategoryServiceOption {
	return func(s *categoryService) {
		if name = strings.TrimSpace(name); name != "" {
			s.defaultName = name
		}
	}
}

// NewCategoryService creates a new category registry service
func NewCategoryService(repo portsrepo.CategoryRepositoryFacade, options ...CategoryServiceOption) portssvc.CategorySvcFacade {
	svc := &categoryService{
		categoryRepo: repo,
		defaultName:  domain.DefaultCategoryName,
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.CategorySvcFacade = (*categoryService)(nil)

func (s *categoryService) GetCategoryByID(ctx context.Context, categoryID string) (*domain.Category, error) {
	category, err := s.categoryRepo.FindCategoryByID(ctx, categoryID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to get category", slog.String("category_id", categoryID))
		}
		return nil, fmt.Errorf("failed to get category %s: %w", categoryID, err)
	}
	return category, nil
}

func (s *categoryService) ListCategories(ctx context.Context) ([]domain.Category, error) {
	categories, err := s.categoryRepo.ListCategories(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to list categories")
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	if categories == nil {
		return []domain.Category{}, nil
	}
	return categories, nil
}

func (s *categoryService) ResolveName(ctx context.Context, categoryID string) (string, error) {
	category, err := s.categoryRepo.FindCategoryByID(ctx, categoryID)
	if err != nil {
		return "", err
	}
	return category.Name, nil
}

func (s *categoryService) CreateCategory(ctx context.Context, req dto.CreateCategoryRequest) (*domain.Category, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: category name must not be blank", apperrors.ErrValidation)
	}

	now := time.Now().UTC()
	category := domain.Category{
		CategoryID:  uuid.NewString(),
		Name:        name,
		Description: strings.TrimSpace(req.Description),
		AuditFields: domain.AuditFields{CreatedAt: now, LastUpdatedAt: now},
	}

	if err := s.categoryRepo.SaveCategory(ctx, category); err != nil {
		if !errors.Is(err, apperrors.ErrDuplicate) {
			s.LogError(ctx, err, "Failed to save category", slog.String("name", name))
		}
		return nil, fmt.Errorf("failed to create category: %w", err)
	}

	s.LogInfo(ctx, "Category created",
		slog.String("category_id", category.CategoryID),
		slog.String("name", category.Name))
	return &category, nil
}

func (s *categoryService) UpdateCategory(ctx context.Context, categoryID string, req dto.UpdateCategoryRequest) (*domain.Category, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: category name must not be blank", apperrors.ErrValidation)
	}

	existing, err := s.categoryRepo.FindCategoryByID(ctx, categoryID)
	if err != nil {
		return nil, fmt.Errorf("failed to find category %s: %w", categoryID, err)
	}
	if existing.Name == s.defaultName && name != s.defaultName {
		return nil, fmt.Errorf("%w: %q cannot be renamed", apperrors.ErrProtectedCategory, s.defaultName)
	}

	updated := *existing
	updated.Name = name
	updated.Description = strings.TrimSpace(req.Description)
	updated.LastUpdatedAt = time.Now().UTC()

	if err := s.categoryRepo.UpdateCategory(ctx, updated); err != nil {
		if !errors.Is(err, apperrors.ErrDuplicate) && !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to update category", slog.String("category_id", categoryID))
		}
		return nil, fmt.Errorf("failed to update category %s: %w", categoryID, err)
	}
	return &updated, nil
}

func (s *categoryService) DeleteCategory(ctx context.Context, categoryID string) error {
	existing, err := s.categoryRepo.FindCategoryByID(ctx, categoryID)
	if err != nil {
		return fmt.Errorf("failed to find category %s: %w", categoryID, err)
	}
	if existing.Name == s.defaultName {
		return fmt.Errorf("%w: %q cannot be deleted", apperrors.ErrProtectedCategory, s.defaultName)
	}

	if err := s.categoryRepo.DeleteCategory(ctx, categoryID); err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to delete category", slog.String("category_id", categoryID))
		}
		return fmt.Errorf("failed to delete category %s: %w", categoryID, err)
	}

	s.LogInfo(ctx, "Category deleted", slog.String("category_id", categoryID), slog.String("name", existing.Name))
	return nil
}

// EnsureDefault returns the default category, creating it on first use.
// A concurrent creator winning the insert is treated as success.
func (s *categoryService) EnsureDefault(ctx context.Context) (*domain.Category, error) {
	category, err := s.categoryRepo.FindCategoryByName(ctx, s.defaultName)
	if err == nil {
		return category, nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to look up default category: %w", err)
	}

	now := time.Now().UTC()
	created := domain.Category{
		CategoryID:  uuid.NewString(),
		Name:        s.defaultName,
		Description: "Fallback category for unassigned amounts",
		AuditFields: domain.AuditFields{CreatedAt: now, LastUpdatedAt: now},
	}
	if err := s.categoryRepo.SaveCategory(ctx, created); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			return s.categoryRepo.FindCategoryByName(ctx, s.defaultName)
		}
		return nil, fmt.Errorf("failed to create default category: %w", err)
	}

	s.LogInfo(ctx, "Default category created", slog.String("category_id", created.CategoryID), slog.String("name", created.Name))
	return &created, nil
}
