package recipes

import (
	"time"

	"github.com/shopspring/decimal"
)

type Recipe struct {
	ID           int64
	Name         string
	Description  string
	Instructions string
	CreatedAt    time.Time
	Ingredients  []Ingredient
}

// Ingredient — продукт в составе рецепта. Quantity хранится как
// numeric(10,2), единица — свободный текст («стакан», «щепотка»).
type Ingredient struct {
	ID        int64
	RecipeID  int64
	ProductID int64
	Product   string
	Quantity  decimal.Decimal
	Unit      string
}
