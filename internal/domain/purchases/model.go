package purchases

import (
	"math"
	"time"
)

const taxRate = 1.19

type Purchase struct {
	ID         int64
	ProviderID int64
	Provider   string // имя поставщика (для отображения)
	Date       time.Time
	CreatedAt  time.Time
}

// Item — позиция закупки: сколько коробок, вес и цена одной коробки.
type Item struct {
	ID             int64
	PurchaseID     int64
	ProductID      int64
	Product        string
	BoxesQuantity  int64
	AmountPerBoxKG int64
	PricePerBox    int64
}

func (i Item) TotalPrice() int64 {
	return i.PricePerBox * i.BoxesQuantity
}

// PricePerKG — цена за килограмм; ok=false при нулевом весе коробки
// (деление не выполняется, это не ошибка).
func (i Item) PricePerKG() (int64, bool) {
	if i.AmountPerBoxKG == 0 {
		return 0, false
	}
	return int64(math.Round(float64(i.PricePerBox) / float64(i.AmountPerBoxKG))), true
}

// TotalPrice — сумма закупки без НДС по позициям.
func TotalPrice(items []Item) int64 {
	var total int64
	for _, it := range items {
		total += it.TotalPrice()
	}
	return total
}

// TotalPriceWithTaxes — сумма закупки с НДС; округление как у коробок.
func TotalPriceWithTaxes(items []Item) int64 {
	return int64(math.Round(float64(TotalPrice(items)) * taxRate))
}

// TotalAmount — суммарный вес закупки (коробки × кг на коробку).
func TotalAmount(items []Item) int64 {
	var total int64
	for _, it := range items {
		total += it.BoxesQuantity * it.AmountPerBoxKG
	}
	return total
}
