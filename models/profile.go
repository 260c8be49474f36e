package models

import (
	"gorm.io/gorm"
)

// MacroTargets holds the percentage split used to convert a calorie target
// into protein/carb/fat grams. Percentages should total 100.
type MacroTargets struct {
	ProteinPercentage float64 `json:"protein_percentage"`
	CarbsPercentage   float64 `json:"carbs_percentage"`
	FatsPercentage    float64 `json:"fats_percentage"`
}

// UserProfile is the onboarding record driving plan generation.
// Either TargetCalories is set manually, or all five biometric fields
// (weight, height, age, sex, activity level) are present so the target can
// be derived. Validated in the profile service before save.
type UserProfile struct {
	gorm.Model `json:"-"`
	UserID     uint `json:"-" gorm:"uniqueIndex;not null"`

	BudgetEur    float64 `json:"budget_eur"`
	BudgetPeriod string  `json:"budget_period" gorm:"size:10"` // "daily" | "weekly"

	DietaryPreferences []string `json:"dietary_preferences" gorm:"serializer:json"`
	Allergens          []string `json:"allergens" gorm:"serializer:json"`
	CuisinePreferences []string `json:"cuisine_preferences" gorm:"serializer:json"`

	MealPlanDays int `json:"meal_plan_days"` // 1..14
	MealsPerDay  int `json:"meals_per_day"`  // 1..4

	TargetCalories *int `json:"target_calories,omitempty"`

	WeightKg      *float64 `json:"weight_kg,omitempty"`
	HeightCm      *float64 `json:"height_cm,omitempty"`
	Age           *int     `json:"age,omitempty"`
	Sex           *string  `json:"sex,omitempty" gorm:"size:10"`
	ActivityLevel *string  `json:"activity_level,omitempty" gorm:"size:16"`
	Objective     *string  `json:"objective,omitempty" gorm:"size:16"`

	MacroTargets MacroTargets `json:"macro_targets" gorm:"embedded;embeddedPrefix:macro_"`
}

// HasCompleteBiometrics reports whether the profile carries everything the
// calorie calculator needs.
func (p *UserProfile) HasCompleteBiometrics() bool {
	return p.WeightKg != nil && p.HeightCm != nil && p.Age != nil &&
		p.Sex != nil && p.ActivityLevel != nil
}
