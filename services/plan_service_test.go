package services

import (
	"testing"

	"github.com/petrepopa00/gurmaio/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testProfile() *models.UserProfile {
	return &models.UserProfile{
		BudgetEur:    10,
		BudgetPeriod: "daily",
		MealPlanDays: 7,
		MealsPerDay:  3,
	}
}

func TestPeriodBudget(t *testing.T) {
	assert.Equal(t, 70.0, PeriodBudget(10, "daily", 7))
	assert.Equal(t, 50.0, PeriodBudget(50, "weekly", 7))
	assert.Equal(t, 100.0, PeriodBudget(50, "weekly", 14))
	assert.Equal(t, 21.43, PeriodBudget(50, "weekly", 3))
}

func TestGenerateMealPlan(t *testing.T) {
	t.Run("shape", func(t *testing.T) {
		plan, err := GenerateMealPlan(testProfile(), nil)
		require.NoError(t, err)
		require.Len(t, plan.Days, 7)
		assert.NotEmpty(t, plan.PlanID)
		assert.Equal(t, 7, plan.Metadata.Days)

		for i, day := range plan.Days {
			assert.Equal(t, i+1, day.DayNumber)
			assert.Empty(t, day.Date, "dates are assigned at scheduling, not generation")
			require.Len(t, day.Meals, 3)
			types := map[string]int{}
			for _, meal := range day.Meals {
				types[meal.MealType]++
				assert.NotEmpty(t, meal.MealID)
				assert.NotEmpty(t, meal.Ingredients)
			}
			// one meal per type per day
			for mt, n := range types {
				assert.Equal(t, 1, n, mt)
			}
		}
	})

	t.Run("totals derive from ingredients", func(t *testing.T) {
		plan, err := GenerateMealPlan(testProfile(), nil)
		require.NoError(t, err)

		var planCost float64
		for _, day := range plan.Days {
			var dayCost float64
			for _, meal := range day.Meals {
				var mealCost float64
				for _, ing := range meal.Ingredients {
					mealCost += ing.CostEur
				}
				assert.InDelta(t, mealCost, meal.MealCostEur, 0.01)
				dayCost += meal.MealCostEur
			}
			assert.InDelta(t, dayCost, day.Totals.CostEur, 0.01)
			planCost += day.Totals.CostEur
		}
		assert.InDelta(t, planCost, plan.PlanTotals.TotalCostEur, 0.05)
		assert.InDelta(t, plan.PlanTotals.TotalCostEur, plan.Metadata.PeriodCostEur, 0.001)
	})

	t.Run("generous budget fits on first attempt", func(t *testing.T) {
		profile := testProfile()
		profile.BudgetEur = 100
		plan, err := GenerateMealPlan(profile, nil)
		require.NoError(t, err)
		assert.False(t, plan.Metadata.IsOverBudget)
		assert.Equal(t, 1, plan.Metadata.Attempts)
		assert.InDelta(t, 700-plan.Metadata.PeriodCostEur, plan.Metadata.RemainingEur, 0.01)
	})

	t.Run("tight budget retries and flags", func(t *testing.T) {
		profile := testProfile()
		profile.BudgetEur = 1 // unreachable with any combination
		plan, err := GenerateMealPlan(profile, nil)
		require.NoError(t, err)
		assert.True(t, plan.Metadata.IsOverBudget)
		assert.Greater(t, plan.Metadata.Attempts, 1)
		assert.LessOrEqual(t, plan.Metadata.Attempts, 5)
		assert.Negative(t, plan.Metadata.RemainingEur)
	})

	t.Run("retry converges on cheaper plan", func(t *testing.T) {
		profile := testProfile()
		profile.BudgetEur = 100
		cheap := testProfile()
		cheap.BudgetEur = 1
		first, err := GenerateMealPlan(profile, nil)
		require.NoError(t, err)
		pressed, err := GenerateMealPlan(cheap, nil)
		require.NoError(t, err)
		assert.LessOrEqual(t, pressed.PlanTotals.TotalCostEur, first.PlanTotals.TotalCostEur)
	})

	t.Run("dietary preference filters recipes", func(t *testing.T) {
		profile := testProfile()
		profile.DietaryPreferences = []string{"vegan"}
		plan, err := GenerateMealPlan(profile, nil)
		require.NoError(t, err)
		for _, day := range plan.Days {
			for _, meal := range day.Meals {
				assert.NotContains(t,
					[]string{"Grilled Chicken Salad", "Salmon with Roasted Vegetables", "Spaghetti Bolognese", "Chicken Curry with Rice"},
					meal.Name)
			}
		}
	})

	t.Run("allergen excludes recipes", func(t *testing.T) {
		profile := testProfile()
		profile.Allergens = []string{"fish"}
		plan, err := GenerateMealPlan(profile, nil)
		require.NoError(t, err)
		for _, day := range plan.Days {
			for _, meal := range day.Meals {
				assert.NotEqual(t, "Salmon with Roasted Vegetables", meal.Name)
				assert.NotEqual(t, "Tuna Pasta Salad", meal.Name)
			}
		}
	})

	t.Run("disliked recipe avoided when alternatives exist", func(t *testing.T) {
		profile := testProfile()
		plan, err := GenerateMealPlan(profile, map[string]bool{"Veggie Omelette": true})
		require.NoError(t, err)
		for _, day := range plan.Days {
			for _, meal := range day.Meals {
				assert.NotEqual(t, "Veggie Omelette", meal.Name)
			}
		}
	})

	t.Run("disliking everything falls back instead of failing", func(t *testing.T) {
		profile := testProfile()
		profile.DietaryPreferences = []string{"vegan"}
		// the only vegan breakfast
		plan, err := GenerateMealPlan(profile, map[string]bool{"Avocado Toast": true})
		require.NoError(t, err)
		require.NotEmpty(t, plan.Days)
	})

	t.Run("unmatchable diet tag errors", func(t *testing.T) {
		profile := testProfile()
		profile.DietaryPreferences = []string{"fruitarian"}
		_, err := GenerateMealPlan(profile, nil)
		assert.ErrorIs(t, err, ErrNoMatchingRecipes)
	})

	t.Run("input validation", func(t *testing.T) {
		bad := testProfile()
		bad.BudgetEur = 0
		_, err := GenerateMealPlan(bad, nil)
		assert.Error(t, err)

		bad = testProfile()
		bad.MealPlanDays = 15
		_, err = GenerateMealPlan(bad, nil)
		assert.Error(t, err)

		bad = testProfile()
		bad.BudgetPeriod = "monthly"
		_, err = GenerateMealPlan(bad, nil)
		assert.Error(t, err)
	})

	t.Run("cuisine preference ranks recipes", func(t *testing.T) {
		profile := testProfile()
		profile.MealPlanDays = 1
		profile.CuisinePreferences = []string{"italian"}
		profile.BudgetEur = 100
		plan, err := GenerateMealPlan(profile, nil)
		require.NoError(t, err)
		require.Len(t, plan.Days, 1)
		var names []string
		for _, meal := range plan.Days[0].Meals {
			names = append(names, meal.Name)
		}
		// the preferred cuisine's dinner leads the rotation
		assert.Contains(t, names, "Spaghetti Bolognese")
	})
}
