package converter

import "time"

// CategoryModel представляет запись таблицы categories в PostgreSQL.
// Parents и Children собираются из таблицы смежности category_links.
type CategoryModel struct {
	ID        int64     `db:"id"`
	Name      string    `db:"name"`
	Parents   []int64   `db:"parents"`
	Children  []int64   `db:"children"`
	CreatedAt time.Time `db:"created_at"`
}

// ProductModel представляет запись таблицы products в PostgreSQL.
type ProductModel struct {
	ID              int64      `db:"id"`
	OwnerID         int64      `db:"owner_id"`
	CategoryID      int64      `db:"category_id"`
	Name            string     `db:"name"`
	Description     string     `db:"description"`
	Specification   string     `db:"specification"`
	Currency        string     `db:"currency"`
	StartPrice      int64      `db:"start_price"`
	CurrentPrice    *int64     `db:"current_price"`
	LeadingBidderID *int64     `db:"leading_bidder_id"`
	StartTime       time.Time  `db:"start_time"`
	EndTime         time.Time  `db:"end_time"`
	Active          bool       `db:"is_active"`
	Score           *float64   `db:"score"`
	ScoredAt        *time.Time `db:"scored_at"`
	PhotoKeys       []string   `db:"photo_keys"`
	CreatedAt       time.Time  `db:"created_at"`
	UpdatedAt       *time.Time `db:"updated_at"`
}

// UserModel представляет запись таблицы users в PostgreSQL.
type UserModel struct {
	ID          int64      `db:"id"`
	FirstName   string     `db:"first_name"`
	LastName    string     `db:"last_name"`
	Email       string     `db:"email"`
	Password    string     `db:"password"`
	Age         int        `db:"age"`
	NationalID  string     `db:"national_id"`
	Address     string     `db:"address"`
	Phone       string     `db:"phone"`
	Score       float64    `db:"score"`
	BannedUntil *time.Time `db:"banned_until"`
	CreatedAt   time.Time  `db:"created_at"`
}

// OutboxEventModel представляет запись таблицы outbox_events в PostgreSQL.
type OutboxEventModel struct {
	ID          int64      `db:"id"`
	EventID     string     `db:"event_id"`
	EventType   string     `db:"event_type"`
	AggregateID int64      `db:"aggregate_id"`
	Payload     []byte     `db:"payload"`
	Status      string     `db:"status"`
	CreatedAt   time.Time  `db:"created_at"`
	ProcessedAt *time.Time `db:"processed_at"`
}
