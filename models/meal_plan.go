package models

import (
	"time"

	"gorm.io/gorm"
)

type Nutrition struct {
	Calories       float64 `json:"calories"`
	ProteinG       float64 `json:"protein_g"`
	CarbohydratesG float64 `json:"carbohydrates_g"`
	FatsG          float64 `json:"fats_g"`
}

// Ingredient is exclusively owned by its meal; shopping lists reference it
// by IngredientID only.
type Ingredient struct {
	IngredientID string    `json:"ingredient_id"`
	Name         string    `json:"name"`
	QuantityG    float64   `json:"quantity_g"`
	Nutrition    Nutrition `json:"nutrition"`
	CostEur      float64   `json:"cost_eur"`
}

type Meal struct {
	MealID              string       `json:"meal_id"`
	MealType            string       `json:"meal_type"` // breakfast|lunch|dinner|snack
	Name                string       `json:"name"`
	Nutrition           Nutrition    `json:"nutrition"`
	MealCostEur         float64      `json:"meal_cost_eur"`
	Ingredients         []Ingredient `json:"ingredients"`
	CookingInstructions []string     `json:"cooking_instructions,omitempty"`
}

type DayTotals struct {
	Calories       float64 `json:"calories"`
	ProteinG       float64 `json:"protein_g"`
	CarbohydratesG float64 `json:"carbohydrates_g"`
	FatsG          float64 `json:"fats_g"`
	CostEur        float64 `json:"cost_eur"`
}

// PlanDay is one numbered slot in a plan. Date stays empty until the plan is
// scheduled; it then holds YYYY-MM-DD.
type PlanDay struct {
	DayNumber int       `json:"day_number"`
	Date      string    `json:"date,omitempty"`
	Meals     []Meal    `json:"meals"`
	Totals    DayTotals `json:"totals"`
}

type PlanMetadata struct {
	PeriodBudgetEur float64 `json:"period_budget_eur"`
	PeriodCostEur   float64 `json:"period_cost_eur"`
	RemainingEur    float64 `json:"remaining_eur"`
	IsOverBudget    bool    `json:"is_over_budget"`
	Attempts        int     `json:"attempts"`
	Days            int     `json:"days"`
}

type PlanTotals struct {
	Calories       float64 `json:"calories"`
	ProteinG       float64 `json:"protein_g"`
	CarbohydratesG float64 `json:"carbohydrates_g"`
	FatsG          float64 `json:"fats_g"`
	TotalCostEur   float64 `json:"total_cost_eur"`
}

// MealPlan stores the generated day sequence as a JSON document; the budget
// metadata and rollup totals are flattened into columns for listing queries.
type MealPlan struct {
	gorm.Model `json:"-"`
	UserID     uint   `json:"-" gorm:"index;not null"`
	PlanID     string `json:"plan_id" gorm:"size:36;uniqueIndex;not null"`

	GeneratedAt time.Time `json:"generated_at"`
	IsSaved     bool      `json:"is_saved"`

	Metadata   PlanMetadata `json:"metadata" gorm:"embedded;embeddedPrefix:meta_"`
	Days       []PlanDay    `json:"days" gorm:"serializer:json"`
	PlanTotals PlanTotals   `json:"plan_totals" gorm:"embedded;embeddedPrefix:total_"`
}
