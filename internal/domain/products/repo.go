package products

import (
	"context"
	"fmt"
	"strings"

	"github.com/Spok95/factory-bot/internal/infra/db"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repo struct{ pool *pgxpool.Pool }

func NewRepo(pool *pgxpool.Pool) *Repo { return &Repo{pool: pool} }

// Create падает с ErrDuplicateKey при повторяющемся имени (products.name UNIQUE).
func (r *Repo) Create(ctx context.Context, name string, brandID int64, unit Unit, soonToExpireWeeks int) (*Product, error) {
	name = strings.TrimSpace(name)
	if !unit.Valid() {
		return nil, fmt.Errorf("unknown unit %q", unit)
	}
	if soonToExpireWeeks < 0 {
		return nil, fmt.Errorf("soon_to_expire_weeks must be >= 0")
	}
	row := r.pool.QueryRow(ctx, `
		INSERT INTO products (name, brand_id, unit, soon_to_expire_weeks)
		VALUES ($1,$2,$3,$4)
		RETURNING id, name, brand_id, unit, soon_to_expire_weeks, created_at
	`, name, brandID, string(unit), soonToExpireWeeks)

	var p Product
	if err := row.Scan(&p.ID, &p.Name, &p.BrandID, &p.Unit, &p.SoonToExpireWeeks, &p.CreatedAt); err != nil {
		return nil, db.MapError(err)
	}
	return &p, nil
}

func (r *Repo) GetByID(ctx context.Context, id int64) (*Product, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT p.id, p.name, p.brand_id, COALESCE(b.name,''), p.unit, p.soon_to_expire_weeks, p.created_at
		FROM products p
		LEFT JOIN brands b ON b.id = p.brand_id
		WHERE p.id = $1
	`, id)
	var p Product
	if err := row.Scan(&p.ID, &p.Name, &p.BrandID, &p.Brand, &p.Unit, &p.SoonToExpireWeeks, &p.CreatedAt); err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}

func (r *Repo) GetByName(ctx context.Context, name string) (*Product, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT p.id, p.name, p.brand_id, COALESCE(b.name,''), p.unit, p.soon_to_expire_weeks, p.created_at
		FROM products p
		LEFT JOIN brands b ON b.id = p.brand_id
		WHERE p.name = $1
	`, strings.TrimSpace(name))
	var p Product
	if err := row.Scan(&p.ID, &p.Name, &p.BrandID, &p.Brand, &p.Unit, &p.SoonToExpireWeeks, &p.CreatedAt); err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}

func (r *Repo) List(ctx context.Context) ([]Product, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT p.id, p.name, p.brand_id, COALESCE(b.name,''), p.unit, p.soon_to_expire_weeks, p.created_at
		FROM products p
		LEFT JOIN brands b ON b.id = p.brand_id
		ORDER BY b.name, p.name
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Product
	for rows.Next() {
		var p Product
		if err := rows.Scan(&p.ID, &p.Name, &p.BrandID, &p.Brand, &p.Unit, &p.SoonToExpireWeeks, &p.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *Repo) ListByBrand(ctx context.Context, brandID int64) ([]Product, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT p.id, p.name, p.brand_id, COALESCE(b.name,''), p.unit, p.soon_to_expire_weeks, p.created_at
		FROM products p
		LEFT JOIN brands b ON b.id = p.brand_id
		WHERE p.brand_id = $1
		ORDER BY p.name
	`, brandID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Product
	for rows.Next() {
		var p Product
		if err := rows.Scan(&p.ID, &p.Name, &p.BrandID, &p.Brand, &p.Unit, &p.SoonToExpireWeeks, &p.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *Repo) Rename(ctx context.Context, id int64, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil
	}
	_, err := r.pool.Exec(ctx, `UPDATE products SET name=$2 WHERE id=$1`, id, name)
	return db.MapError(err)
}

func (r *Repo) SetSoonToExpireWeeks(ctx context.Context, id int64, weeks int) error {
	if weeks < 0 {
		return fmt.Errorf("soon_to_expire_weeks must be >= 0")
	}
	_, err := r.pool.Exec(ctx, `UPDATE products SET soon_to_expire_weeks=$2 WHERE id=$1`, id, weeks)
	return err
}

// Delete удаляет продукт вместе с коробками, позициями закупок,
// списаниями и ингредиентами (ON DELETE CASCADE).
func (r *Repo) Delete(ctx context.Context, id int64) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	return db.MapError(err)
}
