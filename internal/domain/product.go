package domain

import "time"

// Product описывает лот аукциона. Цены хранятся в минорных единицах
// валюты лота (баны, центы). CurrentPrice и LeadingBidderID пустые,
// пока не принята первая ставка; Score выставляется победителем
// ровно один раз после закрытия.
type Product struct {
	ID              int64
	OwnerID         int64
	CategoryID      int64
	Name            string
	Description     string
	Specification   string
	Currency        string // трёхбуквенный код, сравнивается побайтово
	StartPrice      int64
	CurrentPrice    *int64
	LeadingBidderID *int64
	StartTime       time.Time
	EndTime         time.Time
	Active          bool
	Score           *float64
	ScoredAt        *time.Time
	PhotoKeys       []string
	CreatedAt       time.Time
	UpdatedAt       *time.Time
}

// Led сообщает, лидирует ли указанный пользователь в торгах за лот.
func (p *Product) Led(userID int64) bool {
	return p.LeadingBidderID != nil && *p.LeadingBidderID == userID
}

// Expired сообщает, истекло ли окно торгов лота к указанному моменту.
func (p *Product) Expired(now time.Time) bool {
	return p.EndTime.Before(now)
}
