package memory

import (
	"context"
	"sync"

	"github.com/bidhaus/auction-backend/internal/usecase"
)

// CacheRepo имитирует кэш карточек лотов. TTL не моделируется.
type CacheRepo struct {
	mu    sync.RWMutex
	items map[int64]usecase.ProductSummary
}

var _ usecase.CacheRepository = (*CacheRepo)(nil)

func NewCacheRepo() *CacheRepo {
	return &CacheRepo{
		items: make(map[int64]usecase.ProductSummary),
	}
}

func (c *CacheRepo) GetSummaries(_ context.Context, ids []int64) (map[int64]usecase.ProductSummary, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	found := make(map[int64]usecase.ProductSummary, len(ids))
	for _, id := range ids {
		if summary, ok := c.items[id]; ok {
			found[id] = summary
		}
	}

	return found, nil
}

func (c *CacheRepo) SetSummaries(_ context.Context, summaries []usecase.ProductSummary) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, summary := range summaries {
		c.items[summary.ID] = summary
	}

	return nil
}

func (c *CacheRepo) DeleteSummaries(_ context.Context, ids []int64) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, id := range ids {
		delete(c.items, id)
	}

	return nil
}
