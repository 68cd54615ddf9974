package usecase

import (
	"context"
	"time"

	"github.com/jimlawless/whereami"
	"github.com/shopspring/decimal"

	"github.com/bidhaus/auction-backend/internal/cfg"
	"github.com/bidhaus/auction-backend/internal/domain"
	"github.com/bidhaus/auction-backend/pkg/e"
	"github.com/bidhaus/auction-backend/pkg/logger"
)

const cacheWriteTimeout = 500 * time.Millisecond

// AuctionUsecase ведёт реестр лотов: выставление, ставки, закрытие,
// оценка победителем и деактивация истёкших торгов. Все мутации
// атомарны, при отказе модель остаётся неизменной.
type AuctionUsecase struct {
	userRepo     UserRepository
	productRepo  ProductRepository
	categoryRepo CategoryRepository
	outboxRepo   OutboxRepository
	cacheRepo    CacheRepository
	photosInfra  PhotosInfra
	reputation   ReputationRecorder
	transactor   Transactor
	validator    FieldValidator
	rules        *cfg.RulesCfg
	logger       logger.Logger
	now          func() time.Time
}

func NewAuctionUsecase(
	userRepo UserRepository,
	productRepo ProductRepository,
	categoryRepo CategoryRepository,
	outboxRepo OutboxRepository,
	cacheRepo CacheRepository,
	photosInfra PhotosInfra,
	reputation ReputationRecorder,
	transactor Transactor,
	validator FieldValidator,
	rules *cfg.RulesCfg,
	logger logger.Logger,
) *AuctionUsecase {
	return &AuctionUsecase{
		userRepo:     userRepo,
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
		outboxRepo:   outboxRepo,
		cacheRepo:    cacheRepo,
		photosInfra:  photosInfra,
		reputation:   reputation,
		transactor:   transactor,
		validator:    validator,
		rules:        rules,
		logger:       logger,
		now:          time.Now,
	}
}

// CreateProduct выставляет новый лот от имени владельца. Порядок проверок:
// бан, общий лимит активных лотов, лимит в категории, форма полей,
// существование категории. Фото заливаются в объектное хранилище до
// коммита и удаляются компенсацией при откате.
func (uc *AuctionUsecase) CreateProduct(ctx context.Context, ownerID int64, draft *ProductDraft) (int64, error) {
	owner, err := uc.userRepo.GetByID(ctx, ownerID)
	if err != nil {
		return 0, e.Wrap(whereami.WhereAmI(), err)
	}

	now := uc.now()
	if owner.Banned(now) {
		return 0, e.Wrap(whereami.WhereAmI(), e.ErrUserBanned)
	}

	active, err := uc.productRepo.CountActiveByOwner(ctx, ownerID)
	if err != nil {
		return 0, e.Wrap(whereami.WhereAmI(), err)
	}
	if active >= uc.rules.MaxActivePerUser {
		return 0, e.Wrap(whereami.WhereAmI(), e.ErrTooManyActive)
	}

	activeInCategory, err := uc.productRepo.CountActiveByOwnerInCategory(ctx, ownerID, draft.CategoryID)
	if err != nil {
		return 0, e.Wrap(whereami.WhereAmI(), err)
	}
	if activeInCategory >= uc.rules.MaxActivePerUserPerCategory {
		return 0, e.Wrap(whereami.WhereAmI(), e.ErrTooManyActiveInCategory)
	}

	if err = uc.validator.ValidateProductDraft(draft, now); err != nil {
		return 0, e.Wrap(whereami.WhereAmI(), err)
	}

	if _, err = uc.categoryRepo.GetByID(ctx, draft.CategoryID); err != nil {
		return 0, e.Wrap(whereami.WhereAmI(), err)
	}

	product := &domain.Product{
		OwnerID:       ownerID,
		CategoryID:    draft.CategoryID,
		Name:          draft.Name,
		Description:   draft.Description,
		Specification: draft.Specification,
		Currency:      draft.Currency,
		StartPrice:    draft.StartPrice,
		StartTime:     draft.StartTime,
		EndTime:       draft.EndTime,
		Active:        true,
	}

	var uploadedKeys []string

	err = uc.transactor.WithinTx(ctx, func(ctx context.Context) error {
		created, err := uc.productRepo.Create(ctx, product)
		if err != nil {
			return err
		}
		product = created

		if len(draft.Photos) > 0 {
			res, err := uc.photosInfra.UploadPhotos(ctx, NewUploadPhotosReq(product.Name, draft.Photos))
			if err != nil {
				return err
			}
			uploadedKeys = res.Keys

			if err = uc.productRepo.SetPhotoKeys(ctx, product.ID, res.Keys); err != nil {
				return err
			}
		}

		event, err := NewOutboxEvent(EventProductListed, product.ID, ProductListedPayload{
			ProductID:  product.ID,
			OwnerID:    ownerID,
			CategoryID: product.CategoryID,
			Name:       product.Name,
			Currency:   product.Currency,
			StartPrice: product.StartPrice,
			EndTime:    product.EndTime,
		})
		if err != nil {
			return err
		}
		_, err = uc.outboxRepo.Create(ctx, event)

		return err
	})
	if err != nil {
		// транзакция откатилась, объекты в хранилище осиротели
		if len(uploadedKeys) > 0 {
			uc.photosInfra.CleanupPhotos(uploadedKeys)
		}
		return 0, e.Wrap(whereami.WhereAmI(), err)
	}

	uc.logger.Infof("product %d listed by user %d in category %d", product.ID, ownerID, product.CategoryID)

	return product.ID, nil
}

// CloseProduct снимает лот с торгов по требованию владельца.
func (uc *AuctionUsecase) CloseProduct(ctx context.Context, requesterID, productID int64) error {
	err := uc.transactor.WithinTx(ctx, func(ctx context.Context) error {
		product, err := uc.productRepo.GetForUpdate(ctx, productID)
		if err != nil {
			return err
		}
		if product.OwnerID != requesterID {
			return e.ErrNotOwner
		}

		if err = uc.productRepo.SetInactive(ctx, productID); err != nil {
			return err
		}

		event, err := NewOutboxEvent(EventProductClosed, productID, ProductClosedPayload{
			ProductID: productID,
			OwnerID:   product.OwnerID,
			Reason:    "owner",
		})
		if err != nil {
			return err
		}
		_, err = uc.outboxRepo.Create(ctx, event)

		return err
	})
	if err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	uc.invalidateSummaries(productID)

	uc.logger.Infof("product %d closed by owner %d", productID, requesterID)

	return nil
}

// PlaceBid принимает ставку. Ставка должна побить текущую цену, но не
// больше чем на BidStep от неё; первая ставка отсчитывается от стартовой
// цены. Граница диапазона включительная, сравнение точное, без float.
func (uc *AuctionUsecase) PlaceBid(ctx context.Context, bidderID, productID, price int64, currency string) error {
	err := uc.transactor.WithinTx(ctx, func(ctx context.Context) error {
		product, err := uc.productRepo.GetForUpdate(ctx, productID)
		if err != nil {
			return err
		}

		if product.Led(bidderID) {
			return e.ErrSelfBid
		}
		if currency != product.Currency {
			return e.ErrCurrencyMismatch
		}
		if price < product.StartPrice {
			return e.ErrPriceTooLow
		}

		if product.CurrentPrice == nil {
			if exceedsBand(price, product.StartPrice, uc.rules.BidStep) {
				return e.ErrPriceTooHigh
			}
		} else {
			if price < *product.CurrentPrice {
				return e.ErrPriceTooLow
			}
			if exceedsBand(price, *product.CurrentPrice, uc.rules.BidStep) {
				return e.ErrPriceTooHigh
			}
		}

		if err = uc.productRepo.SetBid(ctx, productID, price, bidderID); err != nil {
			return err
		}

		event, err := NewOutboxEvent(EventBidAccepted, productID, BidAcceptedPayload{
			ProductID: productID,
			BidderID:  bidderID,
			Price:     price,
			Currency:  currency,
		})
		if err != nil {
			return err
		}
		_, err = uc.outboxRepo.Create(ctx, event)

		return err
	})
	if err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	uc.invalidateSummaries(productID)

	uc.logger.Infof("bid %d accepted on product %d from user %d", price, productID, bidderID)

	return nil
}

// AssignScore принимает оценку лота от победителя торгов. Оценка
// выставляется один раз, не позже чем через ScoreGraceDays после
// окончания торгов, и в той же транзакции пересчитывает репутацию
// продавца.
func (uc *AuctionUsecase) AssignScore(ctx context.Context, raterID, productID int64, score float64) error {
	err := uc.transactor.WithinTx(ctx, func(ctx context.Context) error {
		product, err := uc.productRepo.GetForUpdate(ctx, productID)
		if err != nil {
			return err
		}

		if !product.Led(raterID) {
			return e.ErrNotWinner
		}
		if product.Score != nil {
			return e.ErrAlreadyScored
		}

		now := uc.now()
		deadline := product.EndTime.AddDate(0, 0, uc.rules.ScoreGraceDays)
		if now.After(deadline) {
			return e.ErrScoreWindowClosed
		}

		if err = uc.validator.ValidateScore(score); err != nil {
			return err
		}

		if err = uc.productRepo.SetScore(ctx, productID, score, now); err != nil {
			return err
		}

		event, err := NewOutboxEvent(EventProductScored, productID, ProductScoredPayload{
			ProductID: productID,
			SellerID:  product.OwnerID,
			BidderID:  raterID,
			Score:     score,
		})
		if err != nil {
			return err
		}
		if _, err = uc.outboxRepo.Create(ctx, event); err != nil {
			return err
		}

		return uc.reputation.RecordCompletedSale(ctx, product.OwnerID)
	})
	if err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	uc.logger.Infof("product %d scored %.1f by winner %d", productID, score, raterID)

	return nil
}

// SweepExpired деактивирует все активные лоты с истёкшим окном торгов.
// Повторный вызов безопасен.
func (uc *AuctionUsecase) SweepExpired(ctx context.Context, now time.Time) error {
	swept, err := uc.productRepo.DeactivateExpired(ctx, now)
	if err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	if swept > 0 {
		uc.logger.Infof("swept %d expired products", swept)
	}

	return nil
}

// GetProduct отдаёт карточку лота, сперва заглядывая в кэш.
func (uc *AuctionUsecase) GetProduct(ctx context.Context, viewerID, productID int64) (*ProductSummary, error) {
	cached, err := uc.cacheRepo.GetSummaries(ctx, []int64{productID})
	if err != nil {
		uc.logger.Warnf("summary cache read failed: %v", err)
	}
	if summary, ok := cached[productID]; ok {
		return &summary, nil
	}

	product, err := uc.productRepo.GetByID(ctx, productID)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	summary := summarize(product)

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), cacheWriteTimeout)
		defer cancel()

		if err := uc.cacheRepo.SetSummaries(ctx, []ProductSummary{summary}); err != nil {
			uc.logger.Warnf("summary cache write failed: %v", err)
		}
	}()

	uc.logger.Debugf("product %d viewed by user %d", productID, viewerID)

	return &summary, nil
}

// ListOthers возвращает активные лоты, выставленные не этим пользователем.
func (uc *AuctionUsecase) ListOthers(ctx context.Context, userID int64) ([]ProductSummary, error) {
	summaries, err := uc.productRepo.ListActiveNotOwned(ctx, userID)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return summaries, nil
}

// ListOwnWins возвращает завершённые лоты, в которых пользователь победил.
func (uc *AuctionUsecase) ListOwnWins(ctx context.Context, userID int64) ([]*domain.Product, error) {
	products, err := uc.productRepo.ListWonBy(ctx, userID)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return products, nil
}

// ListOwnActiveBids возвращает активные лоты, где пользователь лидирует.
func (uc *AuctionUsecase) ListOwnActiveBids(ctx context.Context, userID int64) ([]ProductSummary, error) {
	summaries, err := uc.productRepo.ListActiveLedBy(ctx, userID)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return summaries, nil
}

// invalidateSummaries выбрасывает карточку лота из кэша. Отказ кэша не
// отменяет уже применённую мутацию.
func (uc *AuctionUsecase) invalidateSummaries(productID int64) {
	ctx, cancel := context.WithTimeout(context.Background(), cacheWriteTimeout)
	defer cancel()

	if err := uc.cacheRepo.DeleteSummaries(ctx, []int64{productID}); err != nil {
		uc.logger.Warnf("summary cache invalidation failed: %v", err)
	}
}

// exceedsBand сообщает, превышает ли ставка верхнюю границу диапазона
// base*(1+step). Граница включительная, арифметика десятичная.
func exceedsBand(price, base int64, step float64) bool {
	limit := decimal.NewFromInt(base).Mul(decimal.NewFromFloat(1).Add(decimal.NewFromFloat(step)))
	return decimal.NewFromInt(price).GreaterThan(limit)
}

func summarize(product *domain.Product) ProductSummary {
	price := product.StartPrice
	if product.CurrentPrice != nil {
		price = *product.CurrentPrice
	}

	return NewProductSummary(product.ID, product.Name, product.Description, price, product.Currency)
}
