package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/bidhaus/auction-backend/internal/domain"
	"github.com/bidhaus/auction-backend/internal/repository/memory"
	"github.com/bidhaus/auction-backend/internal/usecase"
	"github.com/bidhaus/auction-backend/pkg/e"
	"github.com/bidhaus/auction-backend/pkg/logger"
)

type reputationFixture struct {
	reputation *usecase.ReputationUsecase
	users      *memory.UserRepo
	products   *memory.ProductRepo
	outbox     *memory.OutboxRepo
}

func newReputationFixture(f *fixture) *reputationFixture {
	return &reputationFixture{
		reputation: usecase.NewReputationUsecase(f.users, f.products, f.outbox, f.rules, logger.Discard{}),
		users:      f.users,
		products:   f.products,
		outbox:     f.outbox,
	}
}

// addScored добавляет оценённый лот продавца. Порядок вызовов определяет
// порядок оценок в пуле.
func (rf *reputationFixture) addScored(t *testing.T, sellerID int64, score float64) {
	t.Helper()
	ctx := context.Background()

	product, err := rf.products.Create(ctx, &domain.Product{
		OwnerID:    sellerID,
		CategoryID: 1,
		Name:       "Scored lot",
		Currency:   "RON",
		StartPrice: 1000,
		StartTime:  time.Now().Add(-72 * time.Hour),
		EndTime:    time.Now().Add(-time.Hour),
		Active:     false,
	})
	require.NoError(t, err)
	require.NoError(t, rf.products.SetScore(ctx, product.ID, score, time.Now()))
}

func TestRecordCompletedSaleMean(t *testing.T) {
	f := newFixture(testRules())
	rf := newReputationFixture(f)
	ctx := context.Background()
	seller := f.addUser(t)

	for _, score := range []float64{9, 7, 4, 5.18, 8} {
		rf.addScored(t, seller, score)
	}

	require.NoError(t, rf.reputation.RecordCompletedSale(ctx, seller))

	user, err := f.users.GetByID(ctx, seller)
	require.NoError(t, err)
	// окно из четырёх последних оценок, девятка уже вытеснена
	require.InDelta(t, (7+4+5.18+8)/4, user.Score, 1e-9)
	require.Nil(t, user.BannedUntil)
}

func TestRecordCompletedSaleFractionalMean(t *testing.T) {
	f := newFixture(testRules())
	rf := newReputationFixture(f)
	ctx := context.Background()
	seller := f.addUser(t)

	for _, score := range []float64{9.34, 6.25, 1.34, 7.25} {
		rf.addScored(t, seller, score)
	}

	require.NoError(t, rf.reputation.RecordCompletedSale(ctx, seller))

	user, err := f.users.GetByID(ctx, seller)
	require.NoError(t, err)
	require.InDelta(t, 6.045, user.Score, 1e-9)
	require.Nil(t, user.BannedUntil)
}

func TestRecordCompletedSalePadsShortWindow(t *testing.T) {
	f := newFixture(testRules())
	rf := newReputationFixture(f)
	ctx := context.Background()
	seller := f.addUser(t)

	rf.addScored(t, seller, 7)

	require.NoError(t, rf.reputation.RecordCompletedSale(ctx, seller))

	user, err := f.users.GetByID(ctx, seller)
	require.NoError(t, err)
	// одна оценка и три слота, добитых текущей репутацией продавца
	require.Equal(t, (7.0+5.0+5.0+5.0)/4, user.Score)
}

func TestRecordCompletedSaleGlobalPool(t *testing.T) {
	f := newFixture(testRules())
	rf := newReputationFixture(f)
	ctx := context.Background()
	sellerA := f.addUser(t)
	sellerB := f.addUser(t)

	rf.addScored(t, sellerA, 9)
	rf.addScored(t, sellerB, 2)
	rf.addScored(t, sellerB, 2)
	rf.addScored(t, sellerB, 2)

	// пул общий: чужие двойки тянут вниз и продавца A
	require.NoError(t, rf.reputation.RecordCompletedSale(ctx, sellerA))

	user, err := f.users.GetByID(ctx, sellerA)
	require.NoError(t, err)
	require.Equal(t, (9.0+2.0+2.0+2.0)/4, user.Score)
	require.NotNil(t, user.BannedUntil)
}

func TestRecordCompletedSaleSellerScoped(t *testing.T) {
	rules := testRules()
	rules.SellerScopedScores = true

	f := newFixture(rules)
	rf := newReputationFixture(f)
	ctx := context.Background()
	sellerA := f.addUser(t)
	sellerB := f.addUser(t)

	rf.addScored(t, sellerA, 9)
	rf.addScored(t, sellerB, 2)
	rf.addScored(t, sellerB, 2)
	rf.addScored(t, sellerB, 2)

	require.NoError(t, rf.reputation.RecordCompletedSale(ctx, sellerA))

	user, err := f.users.GetByID(ctx, sellerA)
	require.NoError(t, err)
	require.Equal(t, (9.0+5.0+5.0+5.0)/4, user.Score)
	require.Nil(t, user.BannedUntil)
}

func TestRecordCompletedSaleBan(t *testing.T) {
	f := newFixture(testRules())
	rf := newReputationFixture(f)
	ctx := context.Background()
	seller := f.addUser(t)

	for range 4 {
		rf.addScored(t, seller, 2)
	}

	require.NoError(t, rf.reputation.RecordCompletedSale(ctx, seller))

	user, err := f.users.GetByID(ctx, seller)
	require.NoError(t, err)
	require.Equal(t, 2.0, user.Score)
	require.NotNil(t, user.BannedUntil)
	require.WithinDuration(t, time.Now().AddDate(0, 0, 7), *user.BannedUntil, time.Minute)

	events := f.outbox.Events()
	require.Len(t, events, 1)
	require.Equal(t, usecase.EventUserBanned, events[0].EventType)
	require.Equal(t, seller, events[0].AggregateID)
}

func TestRecordCompletedSaleThresholdNotBanned(t *testing.T) {
	f := newFixture(testRules())
	rf := newReputationFixture(f)
	ctx := context.Background()
	seller := f.addUser(t)

	// средняя ровно на пороге не банит
	for range 4 {
		rf.addScored(t, seller, 5)
	}

	require.NoError(t, rf.reputation.RecordCompletedSale(ctx, seller))

	user, err := f.users.GetByID(ctx, seller)
	require.NoError(t, err)
	require.Equal(t, 5.0, user.Score)
	require.Nil(t, user.BannedUntil)
	require.Empty(t, f.outbox.Events())
}

func TestRecordCompletedSaleEmptyPool(t *testing.T) {
	f := newFixture(testRules())
	rf := newReputationFixture(f)
	seller := f.addUser(t)

	err := rf.reputation.RecordCompletedSale(context.Background(), seller)
	require.ErrorIs(t, err, e.ErrNoScoredProducts)
}

func TestRecordCompletedSaleSellerNotFound(t *testing.T) {
	f := newFixture(testRules())
	rf := newReputationFixture(f)

	err := rf.reputation.RecordCompletedSale(context.Background(), 42)
	require.ErrorIs(t, err, e.ErrUserNotFound)
}
