// Package memory provides in-process repository implementations used for
// local runs and tests when no PostgreSQL instance is configured.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/SscSPs/expense_tracker_app/internal/apperrors"
	"github.com/SscSPs/expense_tracker_app/internal/core/domain"
	portsrepo "github.com/SscSPs/expense_tracker_app/internal/core/ports/repositories"
)

// CategoryRepository is an in-memory category store with a unique name index.
type CategoryRepository struct {
	mu     sync.RWMutex
	byID   map[string]domain.Category
	idName map[string]string // name -> id
}

// NewCategoryRepository returns an empty in-memory category registry.
func NewCategoryRepository() *CategoryRepository {
	return &CategoryRepository{
		byID:   make(map[string]domain.Category),
		idName: make(map[string]string),
	}
}

var _ portsrepo.CategoryRepositoryFacade = (*CategoryRepository)(nil)

func (r *CategoryRepository) SaveCategory(_ context.Context, category domain.Category) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byID[category.CategoryID]; ok {
		return fmt.Errorf("%w: category %s", apperrors.ErrDuplicate, category.CategoryID)
	}
	if _, ok := r.idName[category.Name]; ok {
		return fmt.Errorf("%w: category named %q", apperrors.ErrDuplicate, category.Name)
	}
	r.byID[category.CategoryID] = category
	r.idName[category.Name] = category.CategoryID
	return nil
}

func (r *CategoryRepository) FindCategoryByID(_ context.Context, categoryID string) (*domain.Category, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.byID[categoryID]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &c, nil
}

func (r *CategoryRepository) FindCategoryByName(_ context.Context, name string) (*domain.Category, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.idName[name]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	c := r.byID[id]
	return &c, nil
}

func (r *CategoryRepository) ListCategories(_ context.Context) ([]domain.Category, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.Category, 0, len(r.byID))
	for _, c := range r.byID {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].CategoryID < out[j].CategoryID
	})
	return out, nil
}

func (r *CategoryRepository) UpdateCategory(_ context.Context, category domain.Category) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.byID[category.CategoryID]
	if !ok {
		return apperrors.ErrNotFound
	}
	if owner, taken := r.idName[category.Name]; taken && owner != category.CategoryID {
		return fmt.Errorf("%w: category named %q", apperrors.ErrDuplicate, category.Name)
	}

	delete(r.idName, existing.Name)
	category.CreatedAt = existing.CreatedAt
	r.byID[category.CategoryID] = category
	r.idName[category.Name] = category.CategoryID
	return nil
}

func (r *CategoryRepository) DeleteCategory(_ context.Context, categoryID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.byID[categoryID]
	if !ok {
		return apperrors.ErrNotFound
	}
	delete(r.byID, categoryID)
	delete(r.idName, existing.Name)
	return nil
}
