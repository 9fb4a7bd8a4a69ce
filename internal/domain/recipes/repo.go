package recipes

import (
	"context"
	"strings"

	"github.com/Spok95/factory-bot/internal/infra/db"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

type Repo struct{ pool *pgxpool.Pool }

func NewRepo(pool *pgxpool.Pool) *Repo { return &Repo{pool: pool} }

func (r *Repo) Create(ctx context.Context, name, description, instructions string) (*Recipe, error) {
	name = strings.TrimSpace(name)
	row := r.pool.QueryRow(ctx, `
		INSERT INTO recipes (name, description, instructions)
		VALUES ($1,$2,$3)
		RETURNING id, name, description, instructions, created_at
	`, name, description, instructions)
	var rc Recipe
	if err := row.Scan(&rc.ID, &rc.Name, &rc.Description, &rc.Instructions, &rc.CreatedAt); err != nil {
		return nil, db.MapError(err)
	}
	return &rc, nil
}

func (r *Repo) GetByID(ctx context.Context, id int64) (*Recipe, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT id, name, description, instructions, created_at
		FROM recipes
		WHERE id = $1
	`, id)
	var rc Recipe
	if err := row.Scan(&rc.ID, &rc.Name, &rc.Description, &rc.Instructions, &rc.CreatedAt); err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	ings, err := r.ListIngredients(ctx, rc.ID)
	if err != nil {
		return nil, err
	}
	rc.Ingredients = ings
	return &rc, nil
}

// List возвращает все рецепты вместе с ингредиентами.
func (r *Repo) List(ctx context.Context) ([]Recipe, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, name, description, instructions, created_at
		FROM recipes
		ORDER BY name
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Recipe
	for rows.Next() {
		var rc Recipe
		if err := rows.Scan(&rc.ID, &rc.Name, &rc.Description, &rc.Instructions, &rc.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, rc)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range out {
		ings, err := r.ListIngredients(ctx, out[i].ID)
		if err != nil {
			return nil, err
		}
		out[i].Ingredients = ings
	}
	return out, nil
}

func (r *Repo) AddIngredient(ctx context.Context, recipeID, productID int64, quantity decimal.Decimal, unit string) (*Ingredient, error) {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO ingredients (recipe_id, product_id, quantity, unit)
		VALUES ($1,$2,$3,$4)
		RETURNING id, recipe_id, product_id, quantity, unit
	`, recipeID, productID, quantity, unit)
	var ing Ingredient
	if err := row.Scan(&ing.ID, &ing.RecipeID, &ing.ProductID, &ing.Quantity, &ing.Unit); err != nil {
		return nil, db.MapError(err)
	}
	return &ing, nil
}

func (r *Repo) ListIngredients(ctx context.Context, recipeID int64) ([]Ingredient, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT i.id, i.recipe_id, i.product_id, COALESCE(p.name,''), i.quantity, i.unit
		FROM ingredients i
		LEFT JOIN products p ON p.id = i.product_id
		WHERE i.recipe_id = $1
		ORDER BY i.id
	`, recipeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Ingredient
	for rows.Next() {
		var ing Ingredient
		if err := rows.Scan(&ing.ID, &ing.RecipeID, &ing.ProductID, &ing.Product, &ing.Quantity, &ing.Unit); err != nil {
			return nil, err
		}
		out = append(out, ing)
	}
	return out, rows.Err()
}

// Delete удаляет рецепт вместе с ингредиентами (ON DELETE CASCADE).
func (r *Repo) Delete(ctx context.Context, id int64) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM recipes WHERE id = $1`, id)
	return db.MapError(err)
}
