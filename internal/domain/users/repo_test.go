package users

import (
	"context"
	"os"
	"testing"
	"time"

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

// Админ-чат получает роль admin при регистрации и не понижается
// при повторном /start, когда чат админским уже не считается.
func TestRegisterAdminNeverDowngraded(t *testing.T) {
	ctx := context.Background()
	pool := testPool(t)
	repo := NewRepo(pool)

	tgID := time.Now().UnixNano()
	t.Cleanup(func() { _, _ = pool.Exec(context.Background(), `DELETE FROM users WHERE telegram_id=$1`, tgID) })

	tg := Telegram{ID: tgID, Username: "boss", FirstName: "Boss"}

	u, err := repo.Register(ctx, tg, tgID)
	require.NoError(t, err)
	require.True(t, u.IsAdmin())

	// другой админ-чат в конфиге — роль остаётся admin
	u, err = repo.Register(ctx, tg, tgID+1)
	require.NoError(t, err)
	require.Equal(t, RoleAdmin, u.Role)

	got, err := repo.GetByTelegramID(ctx, tgID)
	require.NoError(t, err)
	require.Equal(t, u.ID, got.ID)
	require.True(t, got.IsAdmin())
}

func TestRegisterOperator(t *testing.T) {
	ctx := context.Background()
	pool := testPool(t)
	repo := NewRepo(pool)

	tgID := time.Now().UnixNano()
	t.Cleanup(func() { _, _ = pool.Exec(context.Background(), `DELETE FROM users WHERE telegram_id=$1`, tgID) })

	u, err := repo.Register(ctx, Telegram{ID: tgID, Username: "op"}, tgID+1)
	require.NoError(t, err)
	require.Equal(t, RoleOperator, u.Role)
	require.False(t, u.IsAdmin())

	missing, err := repo.GetByTelegramID(ctx, tgID+2)
	require.NoError(t, err)
	require.Nil(t, missing)
}
