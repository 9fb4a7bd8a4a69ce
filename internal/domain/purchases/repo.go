package purchases

import (
	"context"
	"fmt"
	"time"

	"github.com/Spok95/factory-bot/internal/infra/db"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repo struct{ pool *pgxpool.Pool }

func NewRepo(pool *pgxpool.Pool) *Repo { return &Repo{pool: pool} }

func (r *Repo) Create(ctx context.Context, providerID int64, date time.Time) (*Purchase, error) {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO purchases (provider_id, date)
		VALUES ($1,$2)
		RETURNING id, provider_id, date, created_at
	`, providerID, date)
	var p Purchase
	if err := row.Scan(&p.ID, &p.ProviderID, &p.Date, &p.CreatedAt); err != nil {
		return nil, db.MapError(err)
	}
	return &p, nil
}

func (r *Repo) GetByID(ctx context.Context, id int64) (*Purchase, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT p.id, p.provider_id, COALESCE(pr.name,''), p.date, p.created_at
		FROM purchases p
		LEFT JOIN providers pr ON pr.id = p.provider_id
		WHERE p.id = $1
	`, id)
	var p Purchase
	if err := row.Scan(&p.ID, &p.ProviderID, &p.Provider, &p.Date, &p.CreatedAt); err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}

// List — журнал закупок, свежие сверху.
func (r *Repo) List(ctx context.Context, limit int) ([]Purchase, error) {
	if limit <= 0 {
		limit = 100
	}
	rows, err := r.pool.Query(ctx, `
		SELECT p.id, p.provider_id, COALESCE(pr.name,''), p.date, p.created_at
		FROM purchases p
		LEFT JOIN providers pr ON pr.id = p.provider_id
		ORDER BY p.date DESC, p.id DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Purchase
	for rows.Next() {
		var p Purchase
		if err := rows.Scan(&p.ID, &p.ProviderID, &p.Provider, &p.Date, &p.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// MaxBoxesPerItem — потолок на количество коробок в одной позиции,
// чтобы опечатка в чате не раздула закупку на миллионы строк.
const MaxBoxesPerItem = 1000

// AddItem добавляет позицию закупки и сразу создаёт boxesQuantity коробок
// (вес и цена — из позиции, срок годности проставляют позже). Всё в одной
// транзакции: позиция без коробок в базе не появится.
func (r *Repo) AddItem(ctx context.Context, purchaseID, productID, boxesQuantity, amountPerBoxKG, pricePerBox int64) (*Item, error) {
	if boxesQuantity <= 0 {
		return nil, fmt.Errorf("boxes_quantity must be > 0")
	}
	if boxesQuantity > MaxBoxesPerItem {
		return nil, fmt.Errorf("boxes_quantity must be <= %d", MaxBoxesPerItem)
	}
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	row := tx.QueryRow(ctx, `
		INSERT INTO purchase_items (purchase_id, product_id, boxes_quantity, amount_per_box_kg, price_per_box)
		VALUES ($1,$2,$3,$4,$5)
		RETURNING id, purchase_id, product_id, boxes_quantity, amount_per_box_kg, price_per_box
	`, purchaseID, productID, boxesQuantity, amountPerBoxKG, pricePerBox)
	var it Item
	if err := row.Scan(&it.ID, &it.PurchaseID, &it.ProductID, &it.BoxesQuantity, &it.AmountPerBoxKG, &it.PricePerBox); err != nil {
		return nil, db.MapError(err)
	}

	if _, err := tx.Exec(ctx, `
		INSERT INTO boxes (product_id, purchase_item_id, amount, price)
		SELECT $1, $2, $3, $4 FROM generate_series(1, $5)
	`, productID, it.ID, amountPerBoxKG, pricePerBox, boxesQuantity); err != nil {
		return nil, db.MapError(err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return &it, nil
}

func (r *Repo) ListItems(ctx context.Context, purchaseID int64) ([]Item, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT i.id, i.purchase_id, i.product_id, COALESCE(p.name,''), i.boxes_quantity, i.amount_per_box_kg, i.price_per_box
		FROM purchase_items i
		LEFT JOIN products p ON p.id = i.product_id
		WHERE i.purchase_id = $1
		ORDER BY i.id
	`, purchaseID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Item
	for rows.Next() {
		var it Item
		if err := rows.Scan(&it.ID, &it.PurchaseID, &it.ProductID, &it.Product, &it.BoxesQuantity, &it.AmountPerBoxKG, &it.PricePerBox); err != nil {
			return nil, err
		}
		out = append(out, it)
	}
	return out, rows.Err()
}

// DeleteItem удаляет позицию вместе с её коробками (ON DELETE CASCADE).
func (r *Repo) DeleteItem(ctx context.Context, itemID int64) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM purchase_items WHERE id = $1`, itemID)
	return db.MapError(err)
}

// Delete удаляет закупку с позициями и их коробками (ON DELETE CASCADE).
func (r *Repo) Delete(ctx context.Context, id int64) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM purchases WHERE id = $1`, id)
	return db.MapError(err)
}
