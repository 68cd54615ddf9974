package worker

import (
	"context"
	"sync"
	"time"

	"github.com/bidhaus/auction-backend/internal/cfg"
	"github.com/bidhaus/auction-backend/internal/usecase"
	"github.com/bidhaus/auction-backend/pkg/jitter"
	"github.com/bidhaus/auction-backend/pkg/logger"
)

// SweepWorker периодически деактивирует лоты с истёкшим окном торгов.
// Интервал обхода джиттерится, чтобы несколько инстансов не просыпались
// одновременно; сам проход идемпотентен.
type SweepWorker struct {
	auction usecase.AuctionUC
	cfg     *cfg.SweepCfg
	logger  logger.Logger
	stop    chan struct{}
	wg      sync.WaitGroup
}

func NewSweepWorker(auction usecase.AuctionUC, cfg *cfg.SweepCfg, logger logger.Logger) *SweepWorker {
	return &SweepWorker{
		auction: auction,
		cfg:     cfg,
		logger:  logger,
		stop:    make(chan struct{}),
	}
}

func (w *SweepWorker) Start(ctx context.Context) {
	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		w.run(ctx)
	}()
}

func (w *SweepWorker) Stop() {
	close(w.stop)
	w.wg.Wait()
}

func (w *SweepWorker) run(ctx context.Context) {
	// подбираем истёкшие на старте, не дожидаясь первого тика
	w.sweep(ctx)

	for {
		timer := time.NewTimer(jitter.Duration(w.cfg.Interval, jitter.DefaultJitter))

		select {
		case <-ctx.Done():
			timer.Stop()
			return
		case <-w.stop:
			timer.Stop()
			return
		case <-timer.C:
			w.sweep(ctx)
		}
	}
}

func (w *SweepWorker) sweep(ctx context.Context) {
	if err := w.auction.SweepExpired(ctx, time.Now()); err != nil {
		w.logger.Errorf(err, "expired auction sweep failed")
	}
}
