package boxes

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/Spok95/factory-bot/internal/domain/withdrawals"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
)

// Тесты репозитория ходят в живой Postgres с применёнными миграциями.
// Без TEST_DATABASE_DSN — пропускаются.
func testPool(t *testing.T) *pgxpool.Pool {
	t.Helper()
	dsn := os.Getenv("TEST_DATABASE_DSN")
	if dsn == "" {
		t.Skip("TEST_DATABASE_DSN not set")
	}
	pool, err := pgxpool.New(context.Background(), dsn)
	require.NoError(t, err)
	t.Cleanup(pool.Close)
	return pool
}

func seedBox(t *testing.T, ctx context.Context, pool *pgxpool.Pool, amount, price int64) (productID, boxID int64) {
	t.Helper()

	var brandID int64
	require.NoError(t, pool.QueryRow(ctx,
		`INSERT INTO brands (name) VALUES ('test-brand') RETURNING id`).Scan(&brandID))
	t.Cleanup(func() { _, _ = pool.Exec(context.Background(), `DELETE FROM brands WHERE id=$1`, brandID) })

	require.NoError(t, pool.QueryRow(ctx, `
		INSERT INTO products (name, brand_id, unit, soon_to_expire_weeks)
		VALUES ('test-product-'||clock_timestamp()::text, $1, 'kg', 2)
		RETURNING id
	`, brandID).Scan(&productID))
	t.Cleanup(func() { _, _ = pool.Exec(context.Background(), `DELETE FROM products WHERE id=$1`, productID) })

	var providerID int64
	require.NoError(t, pool.QueryRow(ctx,
		`INSERT INTO providers (name, phone) VALUES ('test-provider', '') RETURNING id`).Scan(&providerID))
	t.Cleanup(func() { _, _ = pool.Exec(context.Background(), `DELETE FROM providers WHERE id=$1`, providerID) })

	var purchaseID int64
	require.NoError(t, pool.QueryRow(ctx,
		`INSERT INTO purchases (provider_id, date) VALUES ($1, now()::date) RETURNING id`, providerID).Scan(&purchaseID))

	var itemID int64
	require.NoError(t, pool.QueryRow(ctx, `
		INSERT INTO purchase_items (purchase_id, product_id, boxes_quantity, amount_per_box_kg, price_per_box)
		VALUES ($1,$2,1,$3,$4)
		RETURNING id
	`, purchaseID, productID, amount, price).Scan(&itemID))

	box, err := NewRepo(pool).Create(ctx, productID, itemID, amount, price, nil)
	require.NoError(t, err)

	return productID, box.ID
}

func TestWithdraw(t *testing.T) {
	ctx := context.Background()
	pool := testPool(t)
	repo := NewRepo(pool)

	productID, boxID := seedBox(t, ctx, pool, 25, 1000)
	today := time.Date(2026, time.August, 31, 0, 0, 0, 0, time.UTC)

	before, err := repo.CountByProduct(ctx, productID)
	require.NoError(t, err)

	require.NoError(t, repo.Withdraw(ctx, boxID, today))

	// коробки больше нет
	box, err := repo.GetByID(ctx, boxID)
	require.NoError(t, err)
	require.Nil(t, box)

	after, err := repo.CountByProduct(ctx, productID)
	require.NoError(t, err)
	require.Equal(t, before-1, after)

	// появилось ровно одно списание с количеством коробки и сегодняшней датой
	var n, amount int64
	var wd time.Time
	require.NoError(t, pool.QueryRow(ctx, `
		SELECT COUNT(*), MAX(amount), MAX(withdrawal_date)
		FROM withdrawals WHERE product_id = $1
	`, productID).Scan(&n, &amount, &wd))
	require.Equal(t, int64(1), n)
	require.Equal(t, int64(25), amount)
	require.Equal(t, today, wd)

	// и оно видно в общем журнале списаний
	journal, err := withdrawals.NewRepo(pool).List(ctx, 1000)
	require.NoError(t, err)
	found := false
	for _, w := range journal {
		if w.ProductID == productID {
			found = true
			require.Equal(t, int64(25), w.Amount)
		}
	}
	require.True(t, found)
}

func TestWithdrawMissingBox(t *testing.T) {
	ctx := context.Background()
	pool := testPool(t)
	repo := NewRepo(pool)

	err := repo.Withdraw(ctx, -1, time.Now())
	require.ErrorIs(t, err, pgx.ErrNoRows)
}
