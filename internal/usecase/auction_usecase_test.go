package usecase_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/bidhaus/auction-backend/internal/cfg"
	"github.com/bidhaus/auction-backend/internal/domain"
	"github.com/bidhaus/auction-backend/internal/repository/memory"
	"github.com/bidhaus/auction-backend/internal/usecase"
	"github.com/bidhaus/auction-backend/internal/validation"
	"github.com/bidhaus/auction-backend/pkg/e"
	"github.com/bidhaus/auction-backend/pkg/logger"
)

type fakePhotos struct {
	uploaded []string
	cleaned  []string
	failNext bool
}

func (f *fakePhotos) UploadPhotos(_ context.Context, req *usecase.UploadPhotosReq) (*usecase.UploadPhotosRes, error) {
	if f.failNext {
		return nil, fmt.Errorf("upload failed")
	}

	keys := make([]string, 0, len(req.Photos))
	for i := range req.Photos {
		keys = append(keys, fmt.Sprintf("%s-%d", req.Name, i))
	}
	f.uploaded = append(f.uploaded, keys...)

	return usecase.NewUploadPhotosRes(keys), nil
}

func (f *fakePhotos) CleanupPhotos(keys []string) {
	f.cleaned = append(f.cleaned, keys...)
}

type fixture struct {
	auction  *usecase.AuctionUsecase
	users    *memory.UserRepo
	products *memory.ProductRepo
	cats     *memory.CategoryRepo
	outbox   *memory.OutboxRepo
	cache    *memory.CacheRepo
	photos   *fakePhotos
	rules    *cfg.RulesCfg
}

func testRules() *cfg.RulesCfg {
	return &cfg.RulesCfg{
		LastNScores:                 4,
		MinimumScore:                5.0,
		BannedDays:                  7,
		MaxActivePerUser:            5,
		MaxActivePerUserPerCategory: 2,
		BidStep:                     0.10,
		ScoreGraceDays:              3,
		DefaultScore:                5.0,
	}
}

func newFixture(rules *cfg.RulesCfg) *fixture {
	users := memory.NewUserRepo()
	products := memory.NewProductRepo()
	cats := memory.NewCategoryRepo()
	outbox := memory.NewOutboxRepo()
	cache := memory.NewCacheRepo()
	photos := &fakePhotos{}
	log := logger.Discard{}

	reputation := usecase.NewReputationUsecase(users, products, outbox, rules, log)
	auction := usecase.NewAuctionUsecase(
		users, products, cats, outbox, cache, photos,
		reputation, memory.NewTransactor(), validation.NewValidator(), rules, log,
	)

	return &fixture{
		auction:  auction,
		users:    users,
		products: products,
		cats:     cats,
		outbox:   outbox,
		cache:    cache,
		photos:   photos,
		rules:    rules,
	}
}

func (f *fixture) addUser(t *testing.T) int64 {
	t.Helper()

	user, err := f.users.Create(context.Background(), &domain.User{
		FirstName: "Andrei",
		LastName:  "Popescu",
		Email:     fmt.Sprintf("user%d@mail.com", time.Now().UnixNano()),
		Password:  "parola",
		Age:       30,
		Score:     f.rules.DefaultScore,
	})
	require.NoError(t, err)

	return user.ID
}

func (f *fixture) addCategory(t *testing.T) int64 {
	t.Helper()

	category, err := f.cats.Create(context.Background(), domain.NewCategory("Electronics"))
	require.NoError(t, err)

	return category.ID
}

func (f *fixture) addProduct(t *testing.T, ownerID, categoryID int64, mutate func(p *domain.Product)) int64 {
	t.Helper()

	now := time.Now()
	product := &domain.Product{
		OwnerID:       ownerID,
		CategoryID:    categoryID,
		Name:          "Vintage camera",
		Description:   "Mechanical camera, fully serviced",
		Specification: "Shutter up to speed",
		Currency:      "RON",
		StartPrice:    2500,
		StartTime:     now.Add(-time.Hour),
		EndTime:       now.Add(48 * time.Hour),
		Active:        true,
	}
	if mutate != nil {
		mutate(product)
	}

	created, err := f.products.Create(context.Background(), product)
	require.NoError(t, err)

	return created.ID
}

func validDraft(categoryID int64) *usecase.ProductDraft {
	now := time.Now()

	return &usecase.ProductDraft{
		CategoryID:    categoryID,
		Name:          "Vintage camera",
		Description:   "Mechanical camera, fully serviced",
		Specification: "Shutter up to speed",
		Currency:      "RON",
		StartPrice:    2500,
		StartTime:     now.Add(time.Minute),
		EndTime:       now.Add(48 * time.Hour),
	}
}

func TestCreateProduct(t *testing.T) {
	f := newFixture(testRules())
	ctx := context.Background()
	owner := f.addUser(t)
	category := f.addCategory(t)

	id, err := f.auction.CreateProduct(ctx, owner, validDraft(category))
	require.NoError(t, err)

	product, err := f.products.GetByID(ctx, id)
	require.NoError(t, err)
	require.True(t, product.Active)
	require.Nil(t, product.CurrentPrice)
	require.Nil(t, product.LeadingBidderID)

	events := f.outbox.Events()
	require.Len(t, events, 1)
	require.Equal(t, usecase.EventProductListed, events[0].EventType)
	require.Equal(t, id, events[0].AggregateID)
}

func TestCreateProductOwnerNotFound(t *testing.T) {
	f := newFixture(testRules())

	_, err := f.auction.CreateProduct(context.Background(), 42, validDraft(1))
	require.ErrorIs(t, err, e.ErrUserNotFound)
}

func TestCreateProductBannedOwner(t *testing.T) {
	f := newFixture(testRules())
	ctx := context.Background()
	owner := f.addUser(t)
	category := f.addCategory(t)

	until := time.Now().Add(24 * time.Hour)
	require.NoError(t, f.users.UpdateReputation(ctx, owner, 3.0, &until))

	_, err := f.auction.CreateProduct(ctx, owner, validDraft(category))
	require.ErrorIs(t, err, e.ErrUserBanned)
}

func TestCreateProductExpiredBanIgnored(t *testing.T) {
	f := newFixture(testRules())
	ctx := context.Background()
	owner := f.addUser(t)
	category := f.addCategory(t)

	until := time.Now().Add(-time.Hour)
	require.NoError(t, f.users.UpdateReputation(ctx, owner, 6.0, &until))

	_, err := f.auction.CreateProduct(ctx, owner, validDraft(category))
	require.NoError(t, err)
}

func TestCreateProductQuota(t *testing.T) {
	rules := testRules()
	rules.MaxActivePerUser = 2
	rules.MaxActivePerUserPerCategory = 2

	f := newFixture(rules)
	ctx := context.Background()
	owner := f.addUser(t)
	category := f.addCategory(t)

	f.addProduct(t, owner, category, nil)
	f.addProduct(t, owner, category, nil)

	_, err := f.auction.CreateProduct(ctx, owner, validDraft(category))
	require.ErrorIs(t, err, e.ErrTooManyActive)
}

func TestCreateProductCategoryQuota(t *testing.T) {
	rules := testRules()
	rules.MaxActivePerUserPerCategory = 1

	f := newFixture(rules)
	ctx := context.Background()
	owner := f.addUser(t)
	category := f.addCategory(t)

	f.addProduct(t, owner, category, nil)

	_, err := f.auction.CreateProduct(ctx, owner, validDraft(category))
	require.ErrorIs(t, err, e.ErrTooManyActiveInCategory)
}

func TestCreateProductClosedDoNotCount(t *testing.T) {
	rules := testRules()
	rules.MaxActivePerUser = 1

	f := newFixture(rules)
	ctx := context.Background()
	owner := f.addUser(t)
	category := f.addCategory(t)

	closed := f.addProduct(t, owner, category, nil)
	require.NoError(t, f.products.SetInactive(ctx, closed))

	_, err := f.auction.CreateProduct(ctx, owner, validDraft(category))
	require.NoError(t, err)
}

func TestCreateProductInvalidDraft(t *testing.T) {
	f := newFixture(testRules())
	ctx := context.Background()
	owner := f.addUser(t)
	category := f.addCategory(t)

	draft := validDraft(category)
	draft.Description = "too short"

	_, err := f.auction.CreateProduct(ctx, owner, draft)
	require.ErrorIs(t, err, e.ErrInvalidDescription)

	// модель не изменилась
	count, err := f.products.CountActiveByOwner(ctx, owner)
	require.NoError(t, err)
	require.Zero(t, count)
	require.Empty(t, f.outbox.Events())
}

func TestCreateProductMissingCategory(t *testing.T) {
	f := newFixture(testRules())
	owner := f.addUser(t)

	_, err := f.auction.CreateProduct(context.Background(), owner, validDraft(42))
	require.ErrorIs(t, err, e.ErrCategoryNotFound)
}

func TestCreateProductPhotoUploadFailureCompensates(t *testing.T) {
	f := newFixture(testRules())
	ctx := context.Background()
	owner := f.addUser(t)
	category := f.addCategory(t)

	f.photos.failNext = true
	draft := validDraft(category)
	draft.Photos = []usecase.PhotoUpload{{Data: []byte{0xFF}, MimeType: "image/jpeg", Size: 1}}

	_, err := f.auction.CreateProduct(ctx, owner, draft)
	require.Error(t, err)
	require.Empty(t, f.outbox.Events())
}

func TestPlaceBidSequence(t *testing.T) {
	f := newFixture(testRules())
	ctx := context.Background()
	owner := f.addUser(t)
	bidderA := f.addUser(t)
	bidderB := f.addUser(t)
	category := f.addCategory(t)
	id := f.addProduct(t, owner, category, nil)

	// первая ставка может совпасть со стартовой ценой
	require.NoError(t, f.auction.PlaceBid(ctx, bidderA, id, 2500, "RON"))

	// перебить можно в пределах десяти процентов от текущей цены
	require.NoError(t, f.auction.PlaceBid(ctx, bidderB, id, 2700, "RON"))

	require.ErrorIs(t, f.auction.PlaceBid(ctx, bidderA, id, 4000, "RON"), e.ErrPriceTooHigh)
	require.ErrorIs(t, f.auction.PlaceBid(ctx, bidderA, id, 2600, "RON"), e.ErrPriceTooLow)

	require.NoError(t, f.auction.PlaceBid(ctx, bidderA, id, 2940, "RON"))

	product, err := f.products.GetByID(ctx, id)
	require.NoError(t, err)
	require.Equal(t, int64(2940), *product.CurrentPrice)
	require.Equal(t, bidderA, *product.LeadingBidderID)
}

func TestPlaceBidBandEdgeInclusive(t *testing.T) {
	f := newFixture(testRules())
	ctx := context.Background()
	owner := f.addUser(t)
	bidder := f.addUser(t)
	category := f.addCategory(t)
	id := f.addProduct(t, owner, category, nil)

	// ровно стартовая цена плюс десять процентов
	require.NoError(t, f.auction.PlaceBid(ctx, bidder, id, 2750, "RON"))

	require.ErrorIs(t, f.auction.PlaceBid(ctx, f.addUser(t), id, 3026, "RON"), e.ErrPriceTooHigh)
	require.NoError(t, f.auction.PlaceBid(ctx, f.addUser(t), id, 3025, "RON"))
}

func TestPlaceBidSelf(t *testing.T) {
	f := newFixture(testRules())
	ctx := context.Background()
	owner := f.addUser(t)
	bidder := f.addUser(t)
	category := f.addCategory(t)
	id := f.addProduct(t, owner, category, nil)

	require.NoError(t, f.auction.PlaceBid(ctx, bidder, id, 2500, "RON"))
	require.ErrorIs(t, f.auction.PlaceBid(ctx, bidder, id, 2600, "RON"), e.ErrSelfBid)
}

func TestPlaceBidCurrencyMismatch(t *testing.T) {
	f := newFixture(testRules())
	ctx := context.Background()
	owner := f.addUser(t)
	bidder := f.addUser(t)
	category := f.addCategory(t)
	id := f.addProduct(t, owner, category, nil)

	require.ErrorIs(t, f.auction.PlaceBid(ctx, bidder, id, 2500, "EUR"), e.ErrCurrencyMismatch)
	require.ErrorIs(t, f.auction.PlaceBid(ctx, bidder, id, 2500, "ron"), e.ErrCurrencyMismatch)
}

func TestPlaceBidBelowStart(t *testing.T) {
	f := newFixture(testRules())
	ctx := context.Background()
	owner := f.addUser(t)
	bidder := f.addUser(t)
	category := f.addCategory(t)
	id := f.addProduct(t, owner, category, nil)

	require.ErrorIs(t, f.auction.PlaceBid(ctx, bidder, id, 2499, "RON"), e.ErrPriceTooLow)
}

func TestPlaceBidProductNotFound(t *testing.T) {
	f := newFixture(testRules())
	bidder := f.addUser(t)

	err := f.auction.PlaceBid(context.Background(), bidder, 42, 2500, "RON")
	require.ErrorIs(t, err, e.ErrProductNotFound)
}

func TestPlaceBidRejectedLeavesModelUnchanged(t *testing.T) {
	f := newFixture(testRules())
	ctx := context.Background()
	owner := f.addUser(t)
	bidder := f.addUser(t)
	category := f.addCategory(t)
	id := f.addProduct(t, owner, category, nil)

	require.ErrorIs(t, f.auction.PlaceBid(ctx, bidder, id, 9000, "RON"), e.ErrPriceTooHigh)

	product, err := f.products.GetByID(ctx, id)
	require.NoError(t, err)
	require.Nil(t, product.CurrentPrice)
	require.Nil(t, product.LeadingBidderID)
	require.Empty(t, f.outbox.Events())
}

func TestCloseProduct(t *testing.T) {
	f := newFixture(testRules())
	ctx := context.Background()
	owner := f.addUser(t)
	category := f.addCategory(t)
	id := f.addProduct(t, owner, category, nil)

	require.NoError(t, f.auction.CloseProduct(ctx, owner, id))

	product, err := f.products.GetByID(ctx, id)
	require.NoError(t, err)
	require.False(t, product.Active)

	events := f.outbox.Events()
	require.Len(t, events, 1)
	require.Equal(t, usecase.EventProductClosed, events[0].EventType)
}

func TestCloseProductNotOwner(t *testing.T) {
	f := newFixture(testRules())
	ctx := context.Background()
	owner := f.addUser(t)
	stranger := f.addUser(t)
	category := f.addCategory(t)
	id := f.addProduct(t, owner, category, nil)

	require.ErrorIs(t, f.auction.CloseProduct(ctx, stranger, id), e.ErrNotOwner)
	require.ErrorIs(t, f.auction.CloseProduct(ctx, owner, 42), e.ErrProductNotFound)
}

func TestAssignScore(t *testing.T) {
	f := newFixture(testRules())
	ctx := context.Background()
	owner := f.addUser(t)
	winner := f.addUser(t)
	category := f.addCategory(t)

	id := f.addProduct(t, owner, category, func(p *domain.Product) {
		p.EndTime = time.Now().Add(-time.Hour)
		p.Active = false
		price := int64(2700)
		p.CurrentPrice = &price
		p.LeadingBidderID = &winner
	})

	require.NoError(t, f.auction.AssignScore(ctx, winner, id, 7))

	product, err := f.products.GetByID(ctx, id)
	require.NoError(t, err)
	require.NotNil(t, product.Score)
	require.Equal(t, 7.0, *product.Score)
	require.NotNil(t, product.ScoredAt)

	// репутация продавца пересчитана в той же операции
	seller, err := f.users.GetByID(ctx, owner)
	require.NoError(t, err)
	require.Equal(t, (7.0+5.0+5.0+5.0)/4, seller.Score)
}

func TestAssignScoreNotWinner(t *testing.T) {
	f := newFixture(testRules())
	ctx := context.Background()
	owner := f.addUser(t)
	winner := f.addUser(t)
	stranger := f.addUser(t)
	category := f.addCategory(t)

	id := f.addProduct(t, owner, category, func(p *domain.Product) {
		p.EndTime = time.Now().Add(-time.Hour)
		p.Active = false
		p.LeadingBidderID = &winner
	})

	require.ErrorIs(t, f.auction.AssignScore(ctx, stranger, id, 7), e.ErrNotWinner)
	require.ErrorIs(t, f.auction.AssignScore(ctx, owner, id, 7), e.ErrNotWinner)
}

func TestAssignScoreTwice(t *testing.T) {
	f := newFixture(testRules())
	ctx := context.Background()
	owner := f.addUser(t)
	winner := f.addUser(t)
	category := f.addCategory(t)

	id := f.addProduct(t, owner, category, func(p *domain.Product) {
		p.EndTime = time.Now().Add(-time.Hour)
		p.Active = false
		p.LeadingBidderID = &winner
	})

	require.NoError(t, f.auction.AssignScore(ctx, winner, id, 7))
	require.ErrorIs(t, f.auction.AssignScore(ctx, winner, id, 8), e.ErrAlreadyScored)
}

func TestAssignScoreWindowClosed(t *testing.T) {
	f := newFixture(testRules())
	ctx := context.Background()
	owner := f.addUser(t)
	winner := f.addUser(t)
	category := f.addCategory(t)

	id := f.addProduct(t, owner, category, func(p *domain.Product) {
		p.EndTime = time.Now().AddDate(0, 0, -4)
		p.Active = false
		p.LeadingBidderID = &winner
	})

	require.ErrorIs(t, f.auction.AssignScore(ctx, winner, id, 7), e.ErrScoreWindowClosed)
}

func TestAssignScoreInvalid(t *testing.T) {
	f := newFixture(testRules())
	ctx := context.Background()
	owner := f.addUser(t)
	winner := f.addUser(t)
	category := f.addCategory(t)

	id := f.addProduct(t, owner, category, func(p *domain.Product) {
		p.EndTime = time.Now().Add(-time.Hour)
		p.Active = false
		p.LeadingBidderID = &winner
	})

	require.ErrorIs(t, f.auction.AssignScore(ctx, winner, id, 0.5), e.ErrInvalidScore)
	require.ErrorIs(t, f.auction.AssignScore(ctx, winner, id, 10.5), e.ErrInvalidScore)

	product, err := f.products.GetByID(ctx, id)
	require.NoError(t, err)
	require.Nil(t, product.Score)
}

func TestSweepExpired(t *testing.T) {
	f := newFixture(testRules())
	ctx := context.Background()
	owner := f.addUser(t)
	category := f.addCategory(t)

	expired := f.addProduct(t, owner, category, func(p *domain.Product) {
		p.EndTime = time.Now().Add(-time.Hour)
	})
	alive := f.addProduct(t, owner, category, nil)

	require.NoError(t, f.auction.SweepExpired(ctx, time.Now()))

	product, err := f.products.GetByID(ctx, expired)
	require.NoError(t, err)
	require.False(t, product.Active)

	product, err = f.products.GetByID(ctx, alive)
	require.NoError(t, err)
	require.True(t, product.Active)

	// повторный проход ничего не меняет
	require.NoError(t, f.auction.SweepExpired(ctx, time.Now()))
}

func TestGetProduct(t *testing.T) {
	f := newFixture(testRules())
	ctx := context.Background()
	owner := f.addUser(t)
	viewer := f.addUser(t)
	category := f.addCategory(t)
	id := f.addProduct(t, owner, category, nil)

	summary, err := f.auction.GetProduct(ctx, viewer, id)
	require.NoError(t, err)
	require.Equal(t, id, summary.ID)
	require.Equal(t, int64(2500), summary.Price)

	// карточка доезжает до кэша в фоне
	require.Eventually(t, func() bool {
		cached, err := f.cache.GetSummaries(ctx, []int64{id})
		return err == nil && len(cached) == 1
	}, time.Second, 10*time.Millisecond)

	_, err = f.auction.GetProduct(ctx, viewer, 42)
	require.ErrorIs(t, err, e.ErrProductNotFound)
}

func TestListings(t *testing.T) {
	f := newFixture(testRules())
	ctx := context.Background()
	owner := f.addUser(t)
	bidder := f.addUser(t)
	category := f.addCategory(t)

	own := f.addProduct(t, owner, category, nil)
	foreign := f.addProduct(t, bidder, category, nil)

	won := f.addProduct(t, owner, category, func(p *domain.Product) {
		p.Active = false
		price := int64(2750)
		p.CurrentPrice = &price
		p.LeadingBidderID = &bidder
	})

	led := f.addProduct(t, owner, category, func(p *domain.Product) {
		price := int64(2600)
		p.CurrentPrice = &price
		p.LeadingBidderID = &bidder
	})

	others, err := f.auction.ListOthers(ctx, bidder)
	require.NoError(t, err)
	require.Len(t, others, 2)
	require.Equal(t, own, others[0].ID)
	require.Equal(t, led, others[1].ID)
	for _, s := range others {
		require.NotEqual(t, foreign, s.ID)
	}

	wins, err := f.auction.ListOwnWins(ctx, bidder)
	require.NoError(t, err)
	require.Len(t, wins, 1)
	require.Equal(t, won, wins[0].ID)

	bids, err := f.auction.ListOwnActiveBids(ctx, bidder)
	require.NoError(t, err)
	require.Len(t, bids, 1)
	require.Equal(t, led, bids[0].ID)
	require.Equal(t, int64(2600), bids[0].Price)
}
