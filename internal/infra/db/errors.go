package db

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
)

// Коды ошибок Postgres, которые мы превращаем в доменные.
const (
	codeUniqueViolation     = "23505"
	codeForeignKeyViolation = "23503"
)

var (
	ErrDuplicateKey         = errors.New("duplicate key")
	ErrReferentialIntegrity = errors.New("referential integrity violation")

	// ErrNotImplemented — для операций, логика которых ещё не определена
	// (итоги по списаниям ждут новой модели).
	ErrNotImplemented = errors.New("not implemented")
)

// MapError переводит ошибку констрейнта в доменную, остальное отдаёт как есть.
func MapError(err error) error {
	if err == nil {
		return nil
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case codeUniqueViolation:
			return fmt.Errorf("%w: %s", ErrDuplicateKey, pgErr.ConstraintName)
		case codeForeignKeyViolation:
			return fmt.Errorf("%w: %s", ErrReferentialIntegrity, pgErr.ConstraintName)
		}
	}
	return err
}
