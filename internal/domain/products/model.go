package products

import "time"

// Unit — единица измерения продукта. Коды совпадают со старой учётной системой.
type Unit string

const (
	UnitPiece Unit = "un" // штука
	UnitKilo  Unit = "kg"
	UnitGram  Unit = "gr"
	UnitPot   Unit = "pt" // банка
)

func (u Unit) Valid() bool {
	switch u {
	case UnitPiece, UnitKilo, UnitGram, UnitPot:
		return true
	}
	return false
}

type Product struct {
	ID      int64
	BrandID int64
	Brand   string // имя бренда (для отображения)
	Name    string
	Unit    Unit
	// SoonToExpireWeeks — за сколько недель до срока годности коробка
	// считается «скоро истекает».
	SoonToExpireWeeks int
	CreatedAt         time.Time
}
