package usecase

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/bidhaus/auction-backend/pkg/e"
)

type OutboxStatus string

const (
	OutboxStatusPending    OutboxStatus = "pending"
	OutboxStatusProcessing OutboxStatus = "processing"
	OutboxStatusProcessed  OutboxStatus = "processed"
)

type OutboxEventType string

const (
	EventProductListed OutboxEventType = "product.listed"
	EventBidAccepted   OutboxEventType = "bid.accepted"
	EventProductClosed OutboxEventType = "product.closed"
	EventProductScored OutboxEventType = "product.scored"
	EventUserBanned    OutboxEventType = "user.banned"
)

// OutboxEvent — запись в транзакционном outbox. Создаётся в той же
// транзакции, что и доменное изменение, воркер отправляет её в Kafka.
type OutboxEvent struct {
	ID          int64
	EventID     string
	EventType   OutboxEventType
	AggregateID int64
	Payload     []byte
	Status      OutboxStatus
	CreatedAt   time.Time
	ProcessedAt *time.Time
}

// NewOutboxEvent собирает событие outbox с JSON-полезной нагрузкой.
func NewOutboxEvent(eventType OutboxEventType, aggregateID int64, payload any) (*OutboxEvent, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, e.Wrap("could not marshal outbox payload", err)
	}

	return &OutboxEvent{
		EventID:     uuid.NewString(),
		EventType:   eventType,
		AggregateID: aggregateID,
		Payload:     raw,
		Status:      OutboxStatusPending,
	}, nil
}

// PAYLOADS

type ProductListedPayload struct {
	ProductID  int64     `json:"product_id"`
	OwnerID    int64     `json:"owner_id"`
	CategoryID int64     `json:"category_id"`
	Name       string    `json:"name"`
	Currency   string    `json:"currency"`
	StartPrice int64     `json:"start_price"`
	EndTime    time.Time `json:"end_time"`
}

type BidAcceptedPayload struct {
	ProductID int64  `json:"product_id"`
	BidderID  int64  `json:"bidder_id"`
	Price     int64  `json:"price"`
	Currency  string `json:"currency"`
}

type ProductClosedPayload struct {
	ProductID int64  `json:"product_id"`
	OwnerID   int64  `json:"owner_id"`
	Reason    string `json:"reason"` // "owner" либо "expired"
}

type ProductScoredPayload struct {
	ProductID int64   `json:"product_id"`
	SellerID  int64   `json:"seller_id"`
	BidderID  int64   `json:"bidder_id"`
	Score     float64 `json:"score"`
}

type UserBannedPayload struct {
	UserID      int64     `json:"user_id"`
	Score       float64   `json:"score"`
	BannedUntil time.Time `json:"banned_until"`
}
