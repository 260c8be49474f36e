package services

import (
	"testing"

	"github.com/petrepopa00/gurmaio/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func listFixturePlan() *models.MealPlan {
	mkIng := func(name string, qty, cost float64) models.Ingredient {
		return models.Ingredient{
			IngredientID: ingredientID(name),
			Name:         name,
			QuantityG:    qty,
			CostEur:      cost,
		}
	}
	plan := &models.MealPlan{
		PlanID: "plan-1",
		UserID: 42,
		Days: []models.PlanDay{
			{
				DayNumber: 1,
				Meals: []models.Meal{
					{
						MealID: "m1", MealType: "breakfast", Name: "Oats",
						Ingredients: []models.Ingredient{
							mkIng("Rolled Oats", 60, 0.20),
							mkIng("Milk", 200, 0.30),
						},
					},
					{
						MealID: "m2", MealType: "lunch", Name: "Porridge",
						Ingredients: []models.Ingredient{
							mkIng("Rolled Oats", 30, 0.10),
							mkIng("Banana", 120, 0.25),
						},
					},
				},
			},
		},
	}
	for di := range plan.Days {
		for mi := range plan.Days[di].Meals {
			meal := &plan.Days[di].Meals[mi]
			meal.Nutrition, meal.MealCostEur = MealTotalsFromIngredients(meal)
		}
	}
	RecalculatePlanTotals(plan)
	return plan
}

func itemByName(t *testing.T, list models.ShoppingList, name string) models.ShoppingListItem {
	t.Helper()
	for _, item := range list.Items {
		if item.DisplayName == name {
			return item
		}
	}
	t.Fatalf("item %q not in list", name)
	return models.ShoppingListItem{}
}

func TestBuildShoppingList(t *testing.T) {
	t.Run("consolidates by ingredient identity", func(t *testing.T) {
		list := BuildShoppingList(listFixturePlan(), nil, "en")
		require.Len(t, list.Items, 3)
		assert.Equal(t, 3, list.Summary.TotalItems)

		oats := itemByName(t, list, "Rolled Oats")
		// 60 + 30 = 90, rounded up to the next 50 g step
		assert.Equal(t, 100.0, oats.TotalQuantity)
		assert.Equal(t, "g", oats.Unit)
		assert.InDelta(t, 0.30, oats.EstimatedPriceEur, 0.001)
	})

	t.Run("rounds quantities up to 50g", func(t *testing.T) {
		list := BuildShoppingList(listFixturePlan(), nil, "en")
		milk := itemByName(t, list, "Milk")
		assert.Equal(t, 200.0, milk.TotalQuantity) // already on boundary
		banana := itemByName(t, list, "Banana")
		assert.Equal(t, 150.0, banana.TotalQuantity) // 120 → 150
		assert.Equal(t, 100.0, banana.MinimumPurchaseQuantity)
	})

	t.Run("waste cost is never negative", func(t *testing.T) {
		list := BuildShoppingList(listFixturePlan(), nil, "en")
		assert.GreaterOrEqual(t, list.Summary.WasteCostEur, 0.0)
		assert.InDelta(t,
			list.Summary.TotalShoppingCostEur-list.Summary.PlanCostEur,
			list.Summary.WasteCostEur, 0.011)
	})

	t.Run("prior flags survive regeneration", func(t *testing.T) {
		plan := listFixturePlan()
		prior := []models.ShoppingListItem{
			{IngredientID: ingredientID("Rolled Oats"), Owned: true},
			{IngredientID: ingredientID("Banana"), Deleted: true},
			{IngredientID: ingredientID("Truffle Oil"), Owned: true}, // no longer in plan
		}
		list := BuildShoppingList(plan, prior, "en")

		assert.True(t, itemByName(t, list, "Rolled Oats").Owned)
		assert.True(t, itemByName(t, list, "Banana").Deleted)
		assert.False(t, itemByName(t, list, "Milk").Owned)
		for _, item := range list.Items {
			assert.NotEqual(t, "Truffle Oil", item.DisplayName)
		}
	})

	t.Run("items sorted by display name", func(t *testing.T) {
		list := BuildShoppingList(listFixturePlan(), nil, "en")
		require.Len(t, list.Items, 3)
		assert.Equal(t, "Banana", list.Items[0].DisplayName)
		assert.Equal(t, "Milk", list.Items[1].DisplayName)
		assert.Equal(t, "Rolled Oats", list.Items[2].DisplayName)
	})

	t.Run("unknown language falls back without panicking", func(t *testing.T) {
		list := BuildShoppingList(listFixturePlan(), nil, "xx-klingon!")
		assert.Len(t, list.Items, 3)
	})
}

func TestIngredientIDDeterminism(t *testing.T) {
	assert.Equal(t, ingredientID("Rolled Oats"), ingredientID("rolled oats"))
	assert.NotEqual(t, ingredientID("Rolled Oats"), ingredientID("Milk"))
}
