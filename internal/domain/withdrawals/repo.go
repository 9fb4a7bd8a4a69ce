package withdrawals

import (
	"context"

	"github.com/Spok95/factory-bot/internal/infra/db"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repo struct{ pool *pgxpool.Pool }

func NewRepo(pool *pgxpool.Pool) *Repo { return &Repo{pool: pool} }

// ListByProduct — списания продукта, свежие сверху.
func (r *Repo) ListByProduct(ctx context.Context, productID int64) ([]Withdrawal, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT w.id, w.product_id, COALESCE(p.name,''), w.amount, w.withdrawal_date
		FROM withdrawals w
		LEFT JOIN products p ON p.id = w.product_id
		WHERE w.product_id = $1
		ORDER BY w.withdrawal_date DESC, w.id DESC
	`, productID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Withdrawal
	for rows.Next() {
		var w Withdrawal
		if err := rows.Scan(&w.ID, &w.ProductID, &w.Product, &w.Amount, &w.WithdrawalDate); err != nil {
			return nil, err
		}
		out = append(out, w)
	}
	return out, rows.Err()
}

func (r *Repo) List(ctx context.Context, limit int) ([]Withdrawal, error) {
	if limit <= 0 {
		limit = 100
	}
	rows, err := r.pool.Query(ctx, `
		SELECT w.id, w.product_id, COALESCE(p.name,''), w.amount, w.withdrawal_date
		FROM withdrawals w
		LEFT JOIN products p ON p.id = w.product_id
		ORDER BY w.withdrawal_date DESC, w.id DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Withdrawal
	for rows.Next() {
		var w Withdrawal
		if err := rows.Scan(&w.ID, &w.ProductID, &w.Product, &w.Amount, &w.WithdrawalDate); err != nil {
			return nil, err
		}
		out = append(out, w)
	}
	return out, rows.Err()
}

// TotalAmountByProduct — итог списанного количества по продукту.
// Логику пересматривают вместе с новой моделью списаний, до тех пор
// операция недоступна.
func (r *Repo) TotalAmountByProduct(ctx context.Context, productID int64) (int64, error) {
	return 0, db.ErrNotImplemented
}

// TotalValueByProduct — итог списанной стоимости по продукту.
// См. TotalAmountByProduct.
func (r *Repo) TotalValueByProduct(ctx context.Context, productID int64) (int64, error) {
	return 0, db.ErrNotImplemented
}
