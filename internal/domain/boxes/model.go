package boxes

import (
	"math"
	"time"
)

// taxRate — НДС 19%, зашит в учёт так же, как в старой системе.
const taxRate = 1.19

type Box struct {
	ID             int64
	ProductID      int64
	PurchaseItemID int64
	Amount         int64
	Price          int64 // за коробку, целые денежные единицы
	ExpirationDate *time.Time
	CreatedAt      time.Time
}

// PriceWithTaxes — цена коробки с НДС. Округление math.Round
// (половина — от нуля), других требований к точности нет.
func (b Box) PriceWithTaxes() int64 {
	return int64(math.Round(float64(b.Price) * taxRate))
}

// SoonToExpire — истекает ли срок годности в ближайшие weeks недель от today.
// Коробка без даты срока никогда не «скоро истекает». Уже просроченная —
// по-прежнему считается (разница отрицательная, порог выполняется).
func (b Box) SoonToExpire(today time.Time, weeks int) bool {
	if b.ExpirationDate == nil {
		return false
	}
	limit := today.AddDate(0, 0, weeks*7)
	return !b.ExpirationDate.After(limit)
}

// TotalAmount — суммарное количество по коробкам; 0 для пустого списка.
func TotalAmount(list []Box) int64 {
	var total int64
	for _, b := range list {
		total += b.Amount
	}
	return total
}

// TotalValue — суммарная стоимость с НДС по коробкам.
func TotalValue(list []Box) int64 {
	var total int64
	for _, b := range list {
		total += b.PriceWithTaxes()
	}
	return total
}

// AmountSoonToExpire — количество в коробках, у которых срок годности
// попадает в окно weeks недель от today.
func AmountSoonToExpire(list []Box, today time.Time, weeks int) int64 {
	var total int64
	for _, b := range list {
		if b.SoonToExpire(today, weeks) {
			total += b.Amount
		}
	}
	return total
}
