package domain

import "time"

// Role — роль, выбираемая на время сессии, а не постоянный атрибут.
type Role int

const (
	RoleBidder   Role = 1
	RoleProvider Role = 2
)

// Valid сообщает, входит ли роль в допустимый набор.
func (r Role) Valid() bool {
	return r == RoleBidder || r == RoleProvider
}

// User описывает участника торговой площадки. Score пересчитывается
// движком репутации после каждой завершённой продажи; BannedUntil в
// будущем блокирует выставление новых лотов до истечения срока.
type User struct {
	ID          int64
	FirstName   string
	LastName    string
	Email       string
	Password    string
	Age         int
	NationalID  string
	Address     string
	Phone       string
	Score       float64
	BannedUntil *time.Time
	CreatedAt   time.Time
}

// Banned сообщает, действует ли бан пользователя на указанный момент.
func (u *User) Banned(now time.Time) bool {
	return u.BannedUntil != nil && u.BannedUntil.After(now)
}
