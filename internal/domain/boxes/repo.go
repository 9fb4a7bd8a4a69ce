package boxes

import (
	"context"
	"time"

	"github.com/Spok95/factory-bot/internal/infra/db"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repo struct{ pool *pgxpool.Pool }

func NewRepo(pool *pgxpool.Pool) *Repo { return &Repo{pool: pool} }

func (r *Repo) Create(ctx context.Context, productID, purchaseItemID, amount, price int64, expirationDate *time.Time) (*Box, error) {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO boxes (product_id, purchase_item_id, amount, price, expiration_date)
		VALUES ($1,$2,$3,$4,$5)
		RETURNING id, product_id, purchase_item_id, amount, price, expiration_date, created_at
	`, productID, purchaseItemID, amount, price, expirationDate)
	var b Box
	if err := row.Scan(&b.ID, &b.ProductID, &b.PurchaseItemID, &b.Amount, &b.Price, &b.ExpirationDate, &b.CreatedAt); err != nil {
		return nil, db.MapError(err)
	}
	return &b, nil
}

func (r *Repo) GetByID(ctx context.Context, id int64) (*Box, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT id, product_id, purchase_item_id, amount, price, expiration_date, created_at
		FROM boxes
		WHERE id = $1
	`, id)
	var b Box
	if err := row.Scan(&b.ID, &b.ProductID, &b.PurchaseItemID, &b.Amount, &b.Price, &b.ExpirationDate, &b.CreatedAt); err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &b, nil
}

// ListByProduct — коробки продукта по возрастанию срока годности,
// без даты — в конце.
func (r *Repo) ListByProduct(ctx context.Context, productID int64) ([]Box, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, product_id, purchase_item_id, amount, price, expiration_date, created_at
		FROM boxes
		WHERE product_id = $1
		ORDER BY expiration_date ASC NULLS LAST, id
	`, productID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Box
	for rows.Next() {
		var b Box
		if err := rows.Scan(&b.ID, &b.ProductID, &b.PurchaseItemID, &b.Amount, &b.Price, &b.ExpirationDate, &b.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

func (r *Repo) CountByProduct(ctx context.Context, productID int64) (int64, error) {
	var n int64
	err := r.pool.QueryRow(ctx, `
		SELECT COUNT(*) FROM boxes WHERE product_id = $1
	`, productID).Scan(&n)
	return n, err
}

// SumAmountByProduct — остаток продукта на складе (0, если коробок нет).
func (r *Repo) SumAmountByProduct(ctx context.Context, productID int64) (int64, error) {
	var total int64
	err := r.pool.QueryRow(ctx, `
		SELECT COALESCE(SUM(amount), 0) FROM boxes WHERE product_id = $1
	`, productID).Scan(&total)
	return total, err
}

func (r *Repo) SetExpiration(ctx context.Context, id int64, expirationDate *time.Time) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE boxes SET expiration_date = $2 WHERE id = $1
	`, id, expirationDate)
	return err
}

func (r *Repo) Delete(ctx context.Context, id int64) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM boxes WHERE id = $1`, id)
	return db.MapError(err)
}

// Withdraw списывает коробку: в одной транзакции создаёт запись списания
// и удаляет коробку. Строка блокируется FOR UPDATE, поэтому два
// одновременных списания одной коробки не пройдут. Возвращает pgx.ErrNoRows,
// если коробки нет (или её уже списали).
func (r *Repo) Withdraw(ctx context.Context, boxID int64, today time.Time) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var productID, amount int64
	err = tx.QueryRow(ctx, `
		SELECT product_id, amount FROM boxes WHERE id = $1 FOR UPDATE
	`, boxID).Scan(&productID, &amount)
	if err != nil {
		return err
	}

	// Сначала запись списания, потом удаление — количество не теряется.
	if _, err = tx.Exec(ctx, `
		INSERT INTO withdrawals (product_id, amount, withdrawal_date)
		VALUES ($1,$2,$3)
	`, productID, amount, today); err != nil {
		return db.MapError(err)
	}
	if _, err = tx.Exec(ctx, `DELETE FROM boxes WHERE id = $1`, boxID); err != nil {
		return db.MapError(err)
	}

	return tx.Commit(ctx)
}
