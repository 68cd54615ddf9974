package usecase

import (
	"context"
	"time"

	"github.com/bidhaus/auction-backend/internal/domain"
)

type CategoryRepository interface {
	Create(ctx context.Context, category *domain.Category) (*domain.Category, error)
	GetByID(ctx context.Context, id int64) (*domain.Category, error)
	GetParentIDs(ctx context.Context, id int64) ([]int64, error)
	AddLink(ctx context.Context, son, parent int64) error
}

type ProductRepository interface {
	Create(ctx context.Context, product *domain.Product) (*domain.Product, error)
	GetByID(ctx context.Context, id int64) (*domain.Product, error)
	// GetForUpdate читает лот с блокировкой строки, сериализуя
	// конкурирующие мутации одного лота.
	GetForUpdate(ctx context.Context, id int64) (*domain.Product, error)
	SetPhotoKeys(ctx context.Context, id int64, keys []string) error
	SetInactive(ctx context.Context, id int64) error
	SetBid(ctx context.Context, id, price, bidderID int64) error
	SetScore(ctx context.Context, id int64, score float64, scoredAt time.Time) error
	CountActiveByOwner(ctx context.Context, ownerID int64) (int, error)
	CountActiveByOwnerInCategory(ctx context.Context, ownerID, categoryID int64) (int, error)
	ListActiveNotOwned(ctx context.Context, userID int64) ([]ProductSummary, error)
	ListActiveLedBy(ctx context.Context, userID int64) ([]ProductSummary, error)
	ListWonBy(ctx context.Context, userID int64) ([]*domain.Product, error)
	DeactivateExpired(ctx context.Context, now time.Time) (int64, error)
	// ListScores возвращает оценки всех оценённых лотов площадки
	// в порядке выставления оценок.
	ListScores(ctx context.Context) ([]float64, error)
	ListScoresBySeller(ctx context.Context, sellerID int64) ([]float64, error)
}

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	UpdateReputation(ctx context.Context, id int64, score float64, bannedUntil *time.Time) error
}

type PhotoRepository interface {
	Upload(ctx context.Context, photo *domain.Photo) (string, error)
	Delete(ctx context.Context, key string) error
}

type OutboxRepository interface {
	Create(ctx context.Context, event *OutboxEvent) (*OutboxEvent, error)
	GetAndMarkAsProcessing(ctx context.Context, limit int) ([]*OutboxEvent, error)
	MarkAsProcessed(ctx context.Context, id int64) error
}

type SessionStore interface {
	Save(ctx context.Context, session *Session) error
	Get(ctx context.Context, token string) (*Session, error)
	Delete(ctx context.Context, token string) error
}

type CacheRepository interface {
	GetSummaries(ctx context.Context, ids []int64) (map[int64]ProductSummary, error)
	SetSummaries(ctx context.Context, summaries []ProductSummary) error
	DeleteSummaries(ctx context.Context, ids []int64) error
}
