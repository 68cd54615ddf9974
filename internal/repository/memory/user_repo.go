package memory

import (
	"context"
	"sync"
	"time"

	"github.com/bidhaus/auction-backend/internal/domain"
	"github.com/bidhaus/auction-backend/internal/usecase"
	"github.com/bidhaus/auction-backend/pkg/e"
)

// UserRepo хранит пользователей в памяти.
type UserRepo struct {
	mu     sync.RWMutex
	nextID int64
	items  map[int64]*domain.User
}

var _ usecase.UserRepository = (*UserRepo)(nil)

func NewUserRepo() *UserRepo {
	return &UserRepo{
		nextID: 1,
		items:  make(map[int64]*domain.User),
	}
}

func (r *UserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored := cloneUser(user)
	stored.ID = r.nextID
	stored.CreatedAt = time.Now()
	r.nextID++
	r.items[stored.ID] = stored

	return cloneUser(stored), nil
}

func (r *UserRepo) GetByID(_ context.Context, id int64) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.items[id]
	if !ok {
		return nil, e.ErrUserNotFound
	}

	return cloneUser(user), nil
}

func (r *UserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, user := range r.items {
		if user.Email == email {
			return cloneUser(user), nil
		}
	}

	return nil, e.ErrUserNotFound
}

// UpdateReputation записывает новую репутацию. Нулевой bannedUntil
// оставляет действующий срок бана нетронутым.
func (r *UserRepo) UpdateReputation(_ context.Context, id int64, score float64, bannedUntil *time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.items[id]
	if !ok {
		return e.ErrUserNotFound
	}
	user.Score = score
	if bannedUntil != nil {
		v := *bannedUntil
		user.BannedUntil = &v
	}

	return nil
}

func cloneUser(u *domain.User) *domain.User {
	cp := *u
	if u.BannedUntil != nil {
		v := *u.BannedUntil
		cp.BannedUntil = &v
	}
	return &cp
}
