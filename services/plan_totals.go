package services

import (
	"math"

	"github.com/petrepopa00/gurmaio/models"
)

// round2 keeps currency at cent precision.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// MealTotalsFromIngredients sums a meal's ingredient nutrition and cost.
// Generation writes the result onto the meal, so stored meal totals always
// derive from the ingredient list.
func MealTotalsFromIngredients(meal *models.Meal) (models.Nutrition, float64) {
	var n models.Nutrition
	var cost float64
	for _, ing := range meal.Ingredients {
		n.Calories += ing.Nutrition.Calories
		n.ProteinG += ing.Nutrition.ProteinG
		n.CarbohydratesG += ing.Nutrition.CarbohydratesG
		n.FatsG += ing.Nutrition.FatsG
		cost += ing.CostEur
	}
	return n, round2(cost)
}

// ComputeDayTotals rolls meal nutrition and cost up to the day.
func ComputeDayTotals(day *models.PlanDay) models.DayTotals {
	var t models.DayTotals
	for _, meal := range day.Meals {
		t.Calories += meal.Nutrition.Calories
		t.ProteinG += meal.Nutrition.ProteinG
		t.CarbohydratesG += meal.Nutrition.CarbohydratesG
		t.FatsG += meal.Nutrition.FatsG
		t.CostEur += meal.MealCostEur
	}
	t.CostEur = round2(t.CostEur)
	return t
}

// RecalculatePlanTotals rewrites every day's totals, the plan totals and the
// budget metadata cost fields from the ingredient level up. Mutation helpers
// call this instead of patching stored sums.
func RecalculatePlanTotals(plan *models.MealPlan) {
	var pt models.PlanTotals
	for i := range plan.Days {
		day := &plan.Days[i]
		day.Totals = ComputeDayTotals(day)
		pt.Calories += day.Totals.Calories
		pt.ProteinG += day.Totals.ProteinG
		pt.CarbohydratesG += day.Totals.CarbohydratesG
		pt.FatsG += day.Totals.FatsG
		pt.TotalCostEur += day.Totals.CostEur
	}
	pt.TotalCostEur = round2(pt.TotalCostEur)
	plan.PlanTotals = pt

	plan.Metadata.Days = len(plan.Days)
	plan.Metadata.PeriodCostEur = pt.TotalCostEur
	plan.Metadata.RemainingEur = round2(plan.Metadata.PeriodBudgetEur - pt.TotalCostEur)
	plan.Metadata.IsOverBudget = pt.TotalCostEur > plan.Metadata.PeriodBudgetEur
}
