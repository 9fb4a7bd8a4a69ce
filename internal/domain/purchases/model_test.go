package purchases

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestItemTotalPrice(t *testing.T) {
	it := Item{BoxesQuantity: 2, PricePerBox: 1000}
	require.Equal(t, int64(2000), it.TotalPrice())
}

func TestItemPricePerKG(t *testing.T) {
	it := Item{PricePerBox: 100, AmountPerBoxKG: 3}
	perKG, ok := it.PricePerKG()
	require.True(t, ok)
	require.Equal(t, int64(33), perKG)

	// вес не указан — цена за кг не считается, и это не ошибка
	it = Item{PricePerBox: 100, AmountPerBoxKG: 0}
	perKG, ok = it.PricePerKG()
	require.False(t, ok)
	require.Equal(t, int64(0), perKG)
}

func TestPurchaseTotals(t *testing.T) {
	items := []Item{
		{BoxesQuantity: 2, PricePerBox: 1000, AmountPerBoxKG: 10},
		{BoxesQuantity: 3, PricePerBox: 500, AmountPerBoxKG: 5},
	}

	require.Equal(t, int64(3500), TotalPrice(items))
	// 3500 * 1.19 = 4165
	require.Equal(t, int64(4165), TotalPriceWithTaxes(items))
	// 2*10 + 3*5
	require.Equal(t, int64(35), TotalAmount(items))
}

func TestPurchaseTotalsEmpty(t *testing.T) {
	require.Equal(t, int64(0), TotalPrice(nil))
	require.Equal(t, int64(0), TotalPriceWithTaxes(nil))
	require.Equal(t, int64(0), TotalAmount(nil))
}
