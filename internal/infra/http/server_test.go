package http

import (
	"encoding/json"
	"testing"

	"github.com/Spok95/factory-bot/internal/domain/recipes"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

// Количество ингредиента отдаётся числом с дробной частью, как хранится
// (numeric(10,2)), а не строкой.
func TestRenderRecipesJSON(t *testing.T) {
	list := []recipes.Recipe{
		{
			ID:           1,
			Name:         "Мермелада",
			Description:  "джем из айвы",
			Instructions: "варить до загустения",
			Ingredients: []recipes.Ingredient{
				{ID: 10, Product: "Айва", Quantity: decimal.RequireFromString("2.50"), Unit: "кг"},
				{ID: 11, Product: "Сахар", Quantity: decimal.RequireFromString("0.75"), Unit: "кг"},
			},
		},
		{ID: 2, Name: "Пустой", Description: "", Instructions: ""},
	}

	raw, err := json.Marshal(renderRecipes(list))
	require.NoError(t, err)

	require.JSONEq(t, `[
		{
			"id": 1,
			"name": "Мермелада",
			"description": "джем из айвы",
			"instructions": "варить до загустения",
			"ingredients": [
				{"id": 10, "product": "Айва", "quantity": 2.5, "unit": "кг"},
				{"id": 11, "product": "Сахар", "quantity": 0.75, "unit": "кг"}
			]
		},
		{"id": 2, "name": "Пустой", "description": "", "instructions": "", "ingredients": []}
	]`, string(raw))
}

func TestRenderRecipesEmpty(t *testing.T) {
	raw, err := json.Marshal(renderRecipes(nil))
	require.NoError(t, err)
	require.JSONEq(t, `[]`, string(raw))
}
