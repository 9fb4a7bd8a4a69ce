package boxes

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func datePtr(y int, m time.Month, d int) *time.Time {
	t := date(y, m, d)
	return &t
}

func TestPriceWithTaxes(t *testing.T) {
	require.Equal(t, int64(1190), Box{Price: 1000}.PriceWithTaxes())
	require.Equal(t, int64(0), Box{Price: 0}.PriceWithTaxes())
	// 21 * 1.19 = 24.99 — округляется вверх
	require.Equal(t, int64(25), Box{Price: 21}.PriceWithTaxes())
	// 1 * 1.19 = 1.19 — округляется вниз
	require.Equal(t, int64(1), Box{Price: 1}.PriceWithTaxes())
}

func TestSoonToExpire(t *testing.T) {
	today := date(2026, time.March, 2)

	tests := []struct {
		name  string
		exp   *time.Time
		weeks int
		want  bool
	}{
		{"без даты — никогда", nil, 52, false},
		{"ровно на границе окна", datePtr(2026, time.March, 16), 2, true},
		{"на день позже границы", datePtr(2026, time.March, 17), 2, false},
		{"далеко в будущем", datePtr(2027, time.January, 1), 2, false},
		{"уже просрочена — тоже считается", datePtr(2026, time.February, 1), 2, true},
		{"нулевой порог: истекает сегодня", datePtr(2026, time.March, 2), 0, true},
		{"нулевой порог: истекает завтра", datePtr(2026, time.March, 3), 0, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			b := Box{ExpirationDate: tc.exp}
			require.Equal(t, tc.want, b.SoonToExpire(today, tc.weeks))
		})
	}
}

func TestAggregatesEmpty(t *testing.T) {
	today := date(2026, time.March, 2)
	require.Equal(t, int64(0), TotalAmount(nil))
	require.Equal(t, int64(0), TotalValue(nil))
	require.Equal(t, int64(0), AmountSoonToExpire(nil, today, 4))
}

func TestAggregates(t *testing.T) {
	today := date(2026, time.March, 2)
	list := []Box{
		{Amount: 10, Price: 1000, ExpirationDate: datePtr(2026, time.March, 5)},
		{Amount: 5, Price: 500, ExpirationDate: datePtr(2026, time.June, 1)},
		{Amount: 7, Price: 21}, // без срока годности
	}

	require.Equal(t, int64(22), TotalAmount(list))
	// 1190 + 595 + 25
	require.Equal(t, int64(1810), TotalValue(list))
	// скоро истекает только первая коробка (порог 2 недели)
	require.Equal(t, int64(10), AmountSoonToExpire(list, today, 2))
}
