package memory

import (
	"context"
	"sync"
	"time"

	"github.com/bidhaus/auction-backend/internal/usecase"
)

// OutboxRepo хранит события outbox в памяти в порядке создания.
type OutboxRepo struct {
	mu     sync.Mutex
	nextID int64
	events []*usecase.OutboxEvent
}

var _ usecase.OutboxRepository = (*OutboxRepo)(nil)

func NewOutboxRepo() *OutboxRepo {
	return &OutboxRepo{
		nextID: 1,
	}
}

func (r *OutboxRepo) Create(_ context.Context, event *usecase.OutboxEvent) (*usecase.OutboxEvent, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored := *event
	stored.ID = r.nextID
	stored.CreatedAt = time.Now()
	r.nextID++
	r.events = append(r.events, &stored)

	copied := stored

	return &copied, nil
}

func (r *OutboxRepo) GetAndMarkAsProcessing(_ context.Context, limit int) ([]*usecase.OutboxEvent, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	batch := make([]*usecase.OutboxEvent, 0, limit)
	for _, event := range r.events {
		if len(batch) == limit {
			break
		}
		if event.Status != usecase.OutboxStatusPending {
			continue
		}
		event.Status = usecase.OutboxStatusProcessing
		copied := *event
		batch = append(batch, &copied)
	}

	return batch, nil
}

func (r *OutboxRepo) MarkAsProcessed(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, event := range r.events {
		if event.ID == id {
			now := time.Now()
			event.Status = usecase.OutboxStatusProcessed
			event.ProcessedAt = &now
			return nil
		}
	}

	return nil
}

// Events возвращает снимок всех событий, полезен в проверках тестов.
func (r *OutboxRepo) Events() []*usecase.OutboxEvent {
	r.mu.Lock()
	defer r.mu.Unlock()

	snapshot := make([]*usecase.OutboxEvent, 0, len(r.events))
	for _, event := range r.events {
		copied := *event
		snapshot = append(snapshot, &copied)
	}

	return snapshot
}
