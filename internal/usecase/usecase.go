package usecase

import (
	"context"
	"time"

	"github.com/bidhaus/auction-backend/internal/domain"
)

type CategoryUC interface {
	AddCategory(ctx context.Context, name string) (int64, error)
	LinkParent(ctx context.Context, son, parent int64) error
	GetByID(ctx context.Context, id int64) (*domain.Category, error)
}

type AuctionUC interface {
	CreateProduct(ctx context.Context, ownerID int64, draft *ProductDraft) (int64, error)
	CloseProduct(ctx context.Context, requesterID, productID int64) error
	PlaceBid(ctx context.Context, bidderID, productID, price int64, currency string) error
	AssignScore(ctx context.Context, raterID, productID int64, score float64) error
	SweepExpired(ctx context.Context, now time.Time) error
	GetProduct(ctx context.Context, viewerID, productID int64) (*ProductSummary, error)
	ListOthers(ctx context.Context, userID int64) ([]ProductSummary, error)
	ListOwnWins(ctx context.Context, userID int64) ([]*domain.Product, error)
	ListOwnActiveBids(ctx context.Context, userID int64) ([]ProductSummary, error)
}

type SessionUC interface {
	Register(ctx context.Context, draft *UserDraft) (int64, error)
	LogIn(ctx context.Context, email, password string, role domain.Role) (*Session, error)
	LogOut(ctx context.Context, token string) error
	CurrentSession(ctx context.Context, token string) (*Session, error)
}

// ReputationRecorder пересчитывает репутацию продавца после завершённой
// продажи. Вызывается леджером внутри транзакции оценки лота.
type ReputationRecorder interface {
	RecordCompletedSale(ctx context.Context, sellerID int64) error
}

// FieldValidator — внешний коллаборатор, проверяющий форму полей.
// Ядро вызывает его, но не владеет его правилами.
type FieldValidator interface {
	ValidateCategoryName(name string) error
	ValidateProductDraft(draft *ProductDraft, now time.Time) error
	ValidateUserDraft(draft *UserDraft) error
	ValidateScore(score float64) error
}

// Transactor выполняет функцию как одну атомарную единицу против хранилища.
type Transactor interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context) error) error
}
