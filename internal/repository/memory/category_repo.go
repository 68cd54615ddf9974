package memory

import (
	"context"
	"sync"

	"github.com/bidhaus/auction-backend/internal/domain"
	"github.com/bidhaus/auction-backend/internal/usecase"
	"github.com/bidhaus/auction-backend/pkg/e"
)

// CategoryRepo хранит граф категорий в памяти. Используется в юнит-тестах
// вместо Postgres.
type CategoryRepo struct {
	mu     sync.RWMutex
	nextID int64
	items  map[int64]*domain.Category
}

var _ usecase.CategoryRepository = (*CategoryRepo)(nil)

func NewCategoryRepo() *CategoryRepo {
	return &CategoryRepo{
		nextID: 1,
		items:  make(map[int64]*domain.Category),
	}
}

func (r *CategoryRepo) Create(_ context.Context, category *domain.Category) (*domain.Category, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored := cloneCategory(category)
	stored.ID = r.nextID
	r.nextID++
	r.items[stored.ID] = stored

	return cloneCategory(stored), nil
}

func (r *CategoryRepo) GetByID(_ context.Context, id int64) (*domain.Category, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	category, ok := r.items[id]
	if !ok {
		return nil, e.ErrCategoryNotFound
	}

	return cloneCategory(category), nil
}

func (r *CategoryRepo) GetParentIDs(_ context.Context, id int64) ([]int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	category, ok := r.items[id]
	if !ok {
		return nil, e.ErrCategoryNotFound
	}

	return append([]int64(nil), category.Parents...), nil
}

func (r *CategoryRepo) AddLink(_ context.Context, son, parent int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.items[son]
	if !ok {
		return e.ErrCategoryNotFound
	}
	p, ok := r.items[parent]
	if !ok {
		return e.ErrCategoryNotFound
	}

	s.Parents = append(s.Parents, parent)
	p.Children = append(p.Children, son)

	return nil
}

func cloneCategory(c *domain.Category) *domain.Category {
	cp := *c
	cp.Parents = append([]int64(nil), c.Parents...)
	cp.Children = append([]int64(nil), c.Children...)
	return &cp
}
