package brands

import (
	"context"
	"strings"

	"github.com/Spok95/factory-bot/internal/infra/db"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repo struct{ pool *pgxpool.Pool }

func NewRepo(pool *pgxpool.Pool) *Repo { return &Repo{pool: pool} }

func (r *Repo) Create(ctx context.Context, name string) (*Brand, error) {
	name = strings.TrimSpace(name)
	row := r.pool.QueryRow(ctx, `
		INSERT INTO brands (name)
		VALUES ($1)
		RETURNING id, name, created_at
	`, name)
	var b Brand
	if err := row.Scan(&b.ID, &b.Name, &b.CreatedAt); err != nil {
		return nil, db.MapError(err)
	}
	return &b, nil
}

func (r *Repo) GetByID(ctx context.Context, id int64) (*Brand, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT id, name, created_at
		FROM brands
		WHERE id = $1
	`, id)
	var b Brand
	if err := row.Scan(&b.ID, &b.Name, &b.CreatedAt); err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &b, nil
}

// GetOrCreate возвращает бренд по имени, создавая его при отсутствии.
func (r *Repo) GetOrCreate(ctx context.Context, name string) (*Brand, error) {
	name = strings.TrimSpace(name)
	row := r.pool.QueryRow(ctx, `
		SELECT id, name, created_at
		FROM brands
		WHERE name = $1
	`, name)
	var b Brand
	err := row.Scan(&b.ID, &b.Name, &b.CreatedAt)
	if err == nil {
		return &b, nil
	}
	if err != pgx.ErrNoRows {
		return nil, err
	}
	return r.Create(ctx, name)
}

func (r *Repo) List(ctx context.Context) ([]Brand, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, name, created_at
		FROM brands
		ORDER BY name
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Brand
	for rows.Next() {
		var b Brand
		if err := rows.Scan(&b.ID, &b.Name, &b.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

func (r *Repo) Rename(ctx context.Context, id int64, newName string) error {
	newName = strings.TrimSpace(newName)
	if newName == "" {
		return nil
	}
	_, err := r.pool.Exec(ctx, `
		UPDATE brands SET name = $2 WHERE id = $1
	`, id, newName)
	return err
}

// Delete падает с ErrReferentialIntegrity, пока на бренд ссылаются продукты
// (products.brand_id — ON DELETE RESTRICT).
func (r *Repo) Delete(ctx context.Context, id int64) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM brands WHERE id = $1`, id)
	return db.MapError(err)
}
