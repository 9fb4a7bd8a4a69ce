package brands

import "time"

type Brand struct {
	ID        int64
	Name      string
	CreatedAt time.Time
}
