package recipes

import (
	"context"
	"os"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
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

// Количество хранится как numeric(10,2) и читается без потери: 0.25 — это 0.25.
func TestIngredientQuantityRoundTrip(t *testing.T) {
	ctx := context.Background()
	pool := testPool(t)
	repo := NewRepo(pool)

	var brandID, productID int64
	require.NoError(t, pool.QueryRow(ctx,
		`INSERT INTO brands (name) VALUES ('recipe-brand') RETURNING id`).Scan(&brandID))
	t.Cleanup(func() { _, _ = pool.Exec(context.Background(), `DELETE FROM brands WHERE id=$1`, brandID) })

	require.NoError(t, pool.QueryRow(ctx, `
		INSERT INTO products (name, brand_id, unit, soon_to_expire_weeks)
		VALUES ('recipe-product-'||clock_timestamp()::text, $1, 'gr', 1)
		RETURNING id
	`, brandID).Scan(&productID))
	t.Cleanup(func() { _, _ = pool.Exec(context.Background(), `DELETE FROM products WHERE id=$1`, productID) })

	rc, err := repo.Create(ctx, "Тестовый джем", "описание", "инструкции")
	require.NoError(t, err)
	t.Cleanup(func() { _ = repo.Delete(context.Background(), rc.ID) })

	ing, err := repo.AddIngredient(ctx, rc.ID, productID, decimal.RequireFromString("0.25"), "стакан")
	require.NoError(t, err)
	require.True(t, ing.Quantity.Equal(decimal.RequireFromString("0.25")))

	got, err := repo.GetByID(ctx, rc.ID)
	require.NoError(t, err)
	require.Len(t, got.Ingredients, 1)
	require.True(t, got.Ingredients[0].Quantity.Equal(decimal.RequireFromString("0.25")))
	require.Equal(t, "стакан", got.Ingredients[0].Unit)
}

// Удаление рецепта забирает ингредиенты каскадом.
func TestDeleteCascadesIngredients(t *testing.T) {
	ctx := context.Background()
	pool := testPool(t)
	repo := NewRepo(pool)

	var brandID, productID int64
	require.NoError(t, pool.QueryRow(ctx,
		`INSERT INTO brands (name) VALUES ('cascade-brand') RETURNING id`).Scan(&brandID))
	t.Cleanup(func() { _, _ = pool.Exec(context.Background(), `DELETE FROM brands WHERE id=$1`, brandID) })

	require.NoError(t, pool.QueryRow(ctx, `
		INSERT INTO products (name, brand_id, unit, soon_to_expire_weeks)
		VALUES ('cascade-product-'||clock_timestamp()::text, $1, 'un', 1)
		RETURNING id
	`, brandID).Scan(&productID))
	t.Cleanup(func() { _, _ = pool.Exec(context.Background(), `DELETE FROM products WHERE id=$1`, productID) })

	rc, err := repo.Create(ctx, "Одноразовый", "", "")
	require.NoError(t, err)

	_, err = repo.AddIngredient(ctx, rc.ID, productID, decimal.NewFromInt(2), "шт")
	require.NoError(t, err)

	require.NoError(t, repo.Delete(ctx, rc.ID))

	gone, err := repo.GetByID(ctx, rc.ID)
	require.NoError(t, err)
	require.Nil(t, gone)

	var n int64
	require.NoError(t, pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM ingredients WHERE recipe_id=$1`, rc.ID).Scan(&n))
	require.Zero(t, n)
}
