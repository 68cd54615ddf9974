package converter

import "time"

type ProductSummaryRedisModel struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Price       int64  `json:"price"`
	Currency    string `json:"currency"`
}

type SessionRedisModel struct {
	Token     string    `json:"token"`
	UserID    int64     `json:"user_id"`
	Role      int       `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}
