package purchases

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/Spok95/factory-bot/internal/infra/db"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
)

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

func seedProduct(t *testing.T, ctx context.Context, pool *pgxpool.Pool) (productID, providerID int64) {
	t.Helper()

	var brandID int64
	require.NoError(t, pool.QueryRow(ctx,
		`INSERT INTO brands (name) VALUES ('pur-brand') RETURNING id`).Scan(&brandID))
	t.Cleanup(func() { _, _ = pool.Exec(context.Background(), `DELETE FROM brands WHERE id=$1`, brandID) })

	require.NoError(t, pool.QueryRow(ctx, `
		INSERT INTO products (name, brand_id, unit, soon_to_expire_weeks)
		VALUES ('pur-product-'||clock_timestamp()::text, $1, 'kg', 2)
		RETURNING id
	`, brandID).Scan(&productID))
	t.Cleanup(func() { _, _ = pool.Exec(context.Background(), `DELETE FROM products WHERE id=$1`, productID) })

	require.NoError(t, pool.QueryRow(ctx,
		`INSERT INTO providers (name, phone) VALUES ('pur-provider', '') RETURNING id`).Scan(&providerID))
	t.Cleanup(func() { _, _ = pool.Exec(context.Background(), `DELETE FROM providers WHERE id=$1`, providerID) })

	return productID, providerID
}

// Позиция и её коробки появляются вместе: N коробок с весом и ценой позиции.
func TestAddItemCreatesBoxes(t *testing.T) {
	ctx := context.Background()
	pool := testPool(t)
	repo := NewRepo(pool)

	productID, providerID := seedProduct(t, ctx, pool)

	p, err := repo.Create(ctx, providerID, time.Date(2026, time.August, 31, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	it, err := repo.AddItem(ctx, p.ID, productID, 3, 10, 500)
	require.NoError(t, err)
	require.Equal(t, int64(3), it.BoxesQuantity)

	var n int64
	require.NoError(t, pool.QueryRow(ctx, `
		SELECT COUNT(*) FROM boxes
		WHERE purchase_item_id = $1 AND amount = 10 AND price = 500 AND expiration_date IS NULL
	`, it.ID).Scan(&n))
	require.Equal(t, int64(3), n)

	// удаление позиции забирает коробки каскадом
	require.NoError(t, repo.DeleteItem(ctx, it.ID))
	require.NoError(t, pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM boxes WHERE purchase_item_id = $1`, it.ID).Scan(&n))
	require.Zero(t, n)

	require.NoError(t, repo.Delete(ctx, p.ID))
	got, err := repo.GetByID(ctx, p.ID)
	require.NoError(t, err)
	require.Nil(t, got)
}

// Провал вставки откатывает всю позицию: ни item, ни коробок.
func TestAddItemAtomic(t *testing.T) {
	ctx := context.Background()
	pool := testPool(t)
	repo := NewRepo(pool)

	_, providerID := seedProduct(t, ctx, pool)

	p, err := repo.Create(ctx, providerID, time.Now())
	require.NoError(t, err)
	t.Cleanup(func() { _ = repo.Delete(context.Background(), p.ID) })

	_, err = repo.AddItem(ctx, p.ID, -1, 2, 10, 500) // несуществующий продукт
	require.ErrorIs(t, err, db.ErrReferentialIntegrity)

	items, err := repo.ListItems(ctx, p.ID)
	require.NoError(t, err)
	require.Empty(t, items)

	var n int64
	require.NoError(t, pool.QueryRow(ctx, `
		SELECT COUNT(*) FROM boxes b
		JOIN purchase_items i ON i.id = b.purchase_item_id
		WHERE i.purchase_id = $1
	`, p.ID).Scan(&n))
	require.Zero(t, n)
}

// Количество коробок проверяется до обращения к базе.
func TestAddItemValidation(t *testing.T) {
	repo := NewRepo(nil)

	_, err := repo.AddItem(context.Background(), 1, 1, 0, 10, 500)
	require.Error(t, err)

	_, err = repo.AddItem(context.Background(), 1, 1, MaxBoxesPerItem+1, 10, 500)
	require.Error(t, err)
}
