package providers

import (
	"context"
	"strings"

	"github.com/Spok95/factory-bot/internal/infra/db"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repo struct{ pool *pgxpool.Pool }

func NewRepo(pool *pgxpool.Pool) *Repo { return &Repo{pool: pool} }

func (r *Repo) Create(ctx context.Context, name string, email *string, phone string) (*Provider, error) {
	name = strings.TrimSpace(name)
	row := r.pool.QueryRow(ctx, `
		INSERT INTO providers (name, email, phone)
		VALUES ($1,$2,$3)
		RETURNING id, name, email, phone, created_at
	`, name, email, phone)
	var p Provider
	if err := row.Scan(&p.ID, &p.Name, &p.Email, &p.Phone, &p.CreatedAt); err != nil {
		return nil, db.MapError(err)
	}
	return &p, nil
}

func (r *Repo) GetByID(ctx context.Context, id int64) (*Provider, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT id, name, email, phone, created_at
		FROM providers
		WHERE id = $1
	`, id)
	var p Provider
	if err := row.Scan(&p.ID, &p.Name, &p.Email, &p.Phone, &p.CreatedAt); err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}

func (r *Repo) List(ctx context.Context) ([]Provider, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, name, email, phone, created_at
		FROM providers
		ORDER BY name
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Provider
	for rows.Next() {
		var p Provider
		if err := rows.Scan(&p.ID, &p.Name, &p.Email, &p.Phone, &p.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// Delete удаляет поставщика вместе с его закупками (ON DELETE CASCADE).
func (r *Repo) Delete(ctx context.Context, id int64) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM providers WHERE id = $1`, id)
	return db.MapError(err)
}
