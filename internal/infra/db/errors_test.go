package db

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/require"
)

func TestMapErrorNil(t *testing.T) {
	require.NoError(t, MapError(nil))
}

func TestMapErrorUniqueViolation(t *testing.T) {
	pgErr := &pgconn.PgError{Code: "23505", ConstraintName: "products_name_key"}
	err := MapError(pgErr)
	require.ErrorIs(t, err, ErrDuplicateKey)
	require.Contains(t, err.Error(), "products_name_key")
}

func TestMapErrorForeignKeyViolation(t *testing.T) {
	pgErr := &pgconn.PgError{Code: "23503", ConstraintName: "products_brand_id_fkey"}
	err := MapError(pgErr)
	require.ErrorIs(t, err, ErrReferentialIntegrity)
}

func TestMapErrorWrapped(t *testing.T) {
	pgErr := &pgconn.PgError{Code: "23505"}
	err := MapError(fmt.Errorf("insert: %w", pgErr))
	require.ErrorIs(t, err, ErrDuplicateKey)
}

func TestMapErrorPassthrough(t *testing.T) {
	plain := errors.New("connection refused")
	require.Equal(t, plain, MapError(plain))

	other := &pgconn.PgError{Code: "42P01"} // undefined_table
	require.Equal(t, error(other), MapError(other))
}
