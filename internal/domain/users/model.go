package users

import "time"

type Role string

// Оператор работает со складом и закупками; удаление продуктов — только admin.
const (
	RoleOperator Role = "operator"
	RoleAdmin    Role = "admin"
)

type User struct {
	ID         int64
	TelegramID int64
	Username   string
	FirstName  string
	LastName   string
	Role       Role
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func (u *User) IsAdmin() bool { return u != nil && u.Role == RoleAdmin }

type Telegram struct {
	ID        int64
	Username  string
	FirstName string
	LastName  string
}
