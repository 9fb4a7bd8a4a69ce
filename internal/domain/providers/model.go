package providers

import "time"

type Provider struct {
	ID        int64
	Name      string
	Email     *string // может отсутствовать
	Phone     string
	CreatedAt time.Time
}
