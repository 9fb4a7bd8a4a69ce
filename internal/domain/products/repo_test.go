package products

import (
	"context"
	"fmt"
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

func TestCreateDuplicateName(t *testing.T) {
	ctx := context.Background()
	pool := testPool(t)
	repo := NewRepo(pool)

	var brandID int64
	require.NoError(t, pool.QueryRow(ctx,
		`INSERT INTO brands (name) VALUES ('dup-brand') RETURNING id`).Scan(&brandID))
	t.Cleanup(func() {
		_, _ = pool.Exec(context.Background(), `DELETE FROM products WHERE brand_id=$1`, brandID)
		_, _ = pool.Exec(context.Background(), `DELETE FROM brands WHERE id=$1`, brandID)
	})

	name := fmt.Sprintf("dup-product-%d", time.Now().UnixNano())
	_, err := repo.Create(ctx, name, brandID, UnitKilo, 2)
	require.NoError(t, err)

	_, err = repo.Create(ctx, name, brandID, UnitKilo, 2)
	require.ErrorIs(t, err, db.ErrDuplicateKey)
}

func TestRenameAndThreshold(t *testing.T) {
	ctx := context.Background()
	pool := testPool(t)
	repo := NewRepo(pool)

	var brandID int64
	require.NoError(t, pool.QueryRow(ctx,
		`INSERT INTO brands (name) VALUES ('rename-brand') RETURNING id`).Scan(&brandID))
	t.Cleanup(func() {
		_, _ = pool.Exec(context.Background(), `DELETE FROM products WHERE brand_id=$1`, brandID)
		_, _ = pool.Exec(context.Background(), `DELETE FROM brands WHERE id=$1`, brandID)
	})

	name := fmt.Sprintf("rename-product-%d", time.Now().UnixNano())
	p, err := repo.Create(ctx, name, brandID, UnitPot, 1)
	require.NoError(t, err)

	require.NoError(t, repo.Rename(ctx, p.ID, name+"-v2"))
	require.NoError(t, repo.SetSoonToExpireWeeks(ctx, p.ID, 6))

	got, err := repo.GetByID(ctx, p.ID)
	require.NoError(t, err)
	require.Equal(t, name+"-v2", got.Name)
	require.Equal(t, 6, got.SoonToExpireWeeks)

	byBrand, err := repo.ListByBrand(ctx, brandID)
	require.NoError(t, err)
	require.Len(t, byBrand, 1)
	require.Equal(t, p.ID, byBrand[0].ID)
}

func TestCreateValidation(t *testing.T) {
	repo := NewRepo(nil)

	_, err := repo.Create(context.Background(), "x", 1, Unit("box"), 1)
	require.Error(t, err)

	_, err = repo.Create(context.Background(), "x", 1, UnitKilo, -1)
	require.Error(t, err)
}
