package memory

import (
	"context"
	"sync"
	"time"

	"github.com/bidhaus/auction-backend/internal/domain"
	"github.com/bidhaus/auction-backend/internal/usecase"
	"github.com/bidhaus/auction-backend/pkg/e"
)

// ProductRepo хранит лоты в памяти. Порядок выставления оценок
// отслеживается отдельным срезом, как ORDER BY scored_at в Postgres.
type ProductRepo struct {
	mu          sync.RWMutex
	nextID      int64
	items       map[int64]*domain.Product
	scoredOrder []int64
}

var _ usecase.ProductRepository = (*ProductRepo)(nil)

func NewProductRepo() *ProductRepo {
	return &ProductRepo{
		nextID: 1,
		items:  make(map[int64]*domain.Product),
	}
}

func (r *ProductRepo) Create(_ context.Context, product *domain.Product) (*domain.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored := cloneProduct(product)
	stored.ID = r.nextID
	stored.CreatedAt = time.Now()
	r.nextID++
	r.items[stored.ID] = stored

	return cloneProduct(stored), nil
}

func (r *ProductRepo) GetByID(_ context.Context, id int64) (*domain.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	product, ok := r.items[id]
	if !ok {
		return nil, e.ErrProductNotFound
	}

	return cloneProduct(product), nil
}

func (r *ProductRepo) GetForUpdate(ctx context.Context, id int64) (*domain.Product, error) {
	return r.GetByID(ctx, id)
}

func (r *ProductRepo) SetPhotoKeys(_ context.Context, id int64, keys []string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	product, ok := r.items[id]
	if !ok {
		return e.ErrProductNotFound
	}
	product.PhotoKeys = append([]string(nil), keys...)

	return nil
}

func (r *ProductRepo) SetInactive(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	product, ok := r.items[id]
	if !ok {
		return e.ErrProductNotFound
	}
	product.Active = false

	return nil
}

func (r *ProductRepo) SetBid(_ context.Context, id, price, bidderID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	product, ok := r.items[id]
	if !ok {
		return e.ErrProductNotFound
	}
	product.CurrentPrice = &price
	product.LeadingBidderID = &bidderID

	return nil
}

func (r *ProductRepo) SetScore(_ context.Context, id int64, score float64, scoredAt time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	product, ok := r.items[id]
	if !ok {
		return e.ErrProductNotFound
	}
	product.Score = &score
	product.ScoredAt = &scoredAt
	r.scoredOrder = append(r.scoredOrder, id)

	return nil
}

func (r *ProductRepo) CountActiveByOwner(_ context.Context, ownerID int64) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	count := 0
	for _, p := range r.items {
		if p.Active && p.OwnerID == ownerID {
			count++
		}
	}

	return count, nil
}

func (r *ProductRepo) CountActiveByOwnerInCategory(_ context.Context, ownerID, categoryID int64) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	count := 0
	for _, p := range r.items {
		if p.Active && p.OwnerID == ownerID && p.CategoryID == categoryID {
			count++
		}
	}

	return count, nil
}

func (r *ProductRepo) ListActiveNotOwned(_ context.Context, userID int64) ([]usecase.ProductSummary, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	summaries := make([]usecase.ProductSummary, 0)
	for id := int64(1); id < r.nextID; id++ {
		p, ok := r.items[id]
		if !ok || !p.Active || p.OwnerID == userID {
			continue
		}
		summaries = append(summaries, summarize(p))
	}

	return summaries, nil
}

func (r *ProductRepo) ListActiveLedBy(_ context.Context, userID int64) ([]usecase.ProductSummary, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	summaries := make([]usecase.ProductSummary, 0)
	for id := int64(1); id < r.nextID; id++ {
		p, ok := r.items[id]
		if !ok || !p.Active || !p.Led(userID) {
			continue
		}
		summaries = append(summaries, summarize(p))
	}

	return summaries, nil
}

func (r *ProductRepo) ListWonBy(_ context.Context, userID int64) ([]*domain.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	products := make([]*domain.Product, 0)
	for id := int64(1); id < r.nextID; id++ {
		p, ok := r.items[id]
		if !ok || p.Active || !p.Led(userID) {
			continue
		}
		products = append(products, cloneProduct(p))
	}

	return products, nil
}

func (r *ProductRepo) DeactivateExpired(_ context.Context, now time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var swept int64
	for _, p := range r.items {
		if p.Active && p.EndTime.Before(now) {
			p.Active = false
			swept++
		}
	}

	return swept, nil
}

func (r *ProductRepo) ListScores(_ context.Context) ([]float64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	scores := make([]float64, 0, len(r.scoredOrder))
	for _, id := range r.scoredOrder {
		if p, ok := r.items[id]; ok && p.Score != nil {
			scores = append(scores, *p.Score)
		}
	}

	return scores, nil
}

func (r *ProductRepo) ListScoresBySeller(_ context.Context, sellerID int64) ([]float64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	scores := make([]float64, 0)
	for _, id := range r.scoredOrder {
		if p, ok := r.items[id]; ok && p.Score != nil && p.OwnerID == sellerID {
			scores = append(scores, *p.Score)
		}
	}

	return scores, nil
}

func summarize(p *domain.Product) usecase.ProductSummary {
	price := p.StartPrice
	if p.CurrentPrice != nil {
		price = *p.CurrentPrice
	}

	return usecase.NewProductSummary(p.ID, p.Name, p.Description, price, p.Currency)
}

func cloneProduct(p *domain.Product) *domain.Product {
	cp := *p
	if p.CurrentPrice != nil {
		v := *p.CurrentPrice
		cp.CurrentPrice = &v
	}
	if p.LeadingBidderID != nil {
		v := *p.LeadingBidderID
		cp.LeadingBidderID = &v
	}
	if p.Score != nil {
		v := *p.Score
		cp.Score = &v
	}
	if p.ScoredAt != nil {
		v := *p.ScoredAt
		cp.ScoredAt = &v
	}
	if p.UpdatedAt != nil {
		v := *p.UpdatedAt
		cp.UpdatedAt = &v
	}
	cp.PhotoKeys = append([]string(nil), p.PhotoKeys...)
	return &cp
}
