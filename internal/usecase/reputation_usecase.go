package usecase

import (
	"context"
	"time"

	"github.com/jimlawless/whereami"

	"github.com/bidhaus/auction-backend/internal/cfg"
	"github.com/bidhaus/auction-backend/pkg/e"
	"github.com/bidhaus/auction-backend/pkg/logger"
)

// ReputationUsecase пересчитывает репутацию продавца по скользящему окну
// последних оценок. По умолчанию пул оценок общий для всей площадки,
// флаг SellerScopedScores сужает его до лотов конкретного продавца.
type ReputationUsecase struct {
	userRepo    UserRepository
	productRepo ProductRepository
	outboxRepo  OutboxRepository
	rules       *cfg.RulesCfg
	logger      logger.Logger
	now         func() time.Time
}

func NewReputationUsecase(
	userRepo UserRepository,
	productRepo ProductRepository,
	outboxRepo OutboxRepository,
	rules *cfg.RulesCfg,
	logger logger.Logger,
) *ReputationUsecase {
	return &ReputationUsecase{
		userRepo:    userRepo,
		productRepo: productRepo,
		outboxRepo:  outboxRepo,
		rules:       rules,
		logger:      logger,
		now:         time.Now,
	}
}

// RecordCompletedSale пересчитывает репутацию продавца. Берутся последние
// LastNScores оценок из пула; если оценок меньше, окно добивается текущей
// репутацией продавца. Средняя ниже MinimumScore банит продавца на
// BannedDays дней, иначе срок бана не трогается.
func (uc *ReputationUsecase) RecordCompletedSale(ctx context.Context, sellerID int64) error {
	seller, err := uc.userRepo.GetByID(ctx, sellerID)
	if err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	var scores []float64
	if uc.rules.SellerScopedScores {
		scores, err = uc.productRepo.ListScoresBySeller(ctx, sellerID)
	} else {
		scores, err = uc.productRepo.ListScores(ctx)
	}
	if err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}
	if len(scores) == 0 {
		return e.Wrap(whereami.WhereAmI(), e.ErrNoScoredProducts)
	}

	window := lastN(scores, uc.rules.LastNScores)
	for len(window) < uc.rules.LastNScores {
		window = append(window, seller.Score)
	}

	mean := 0.0
	for _, s := range window {
		mean += s
	}
	mean /= float64(len(window))

	var bannedUntil *time.Time
	if mean < uc.rules.MinimumScore {
		until := uc.now().AddDate(0, 0, uc.rules.BannedDays)
		bannedUntil = &until
	}

	if err = uc.userRepo.UpdateReputation(ctx, sellerID, mean, bannedUntil); err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	if bannedUntil != nil {
		event, err := NewOutboxEvent(EventUserBanned, sellerID, UserBannedPayload{
			UserID:      sellerID,
			Score:       mean,
			BannedUntil: *bannedUntil,
		})
		if err != nil {
			return e.Wrap(whereami.WhereAmI(), err)
		}
		if _, err = uc.outboxRepo.Create(ctx, event); err != nil {
			return e.Wrap(whereami.WhereAmI(), err)
		}

		uc.logger.Warnf("seller %d banned until %s, score %.3f", sellerID, bannedUntil.Format(time.RFC3339), mean)

		return nil
	}

	uc.logger.Infof("seller %d reputation updated to %.3f", sellerID, mean)

	return nil
}

// lastN возвращает хвост среза длиной не более n.
func lastN(scores []float64, n int) []float64 {
	if len(scores) <= n {
		return append([]float64(nil), scores...)
	}
	return append([]float64(nil), scores[len(scores)-n:]...)
}
