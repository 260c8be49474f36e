package utils

import (
	"errors"
	"math"

	"github.com/petrepopa00/gurmaio/models"
)

// activityMultipliers is the single source of truth for valid activity
// levels; also used to validate profile input.
var activityMultipliers = map[string]float64{
	"sedentary":   1.2,
	"light":       1.375,
	"moderate":    1.55,
	"active":      1.725,
	"very_active": 1.9,
}

// objectiveAdjustments shift the TDEE toward the user's goal.
var objectiveAdjustments = map[string]float64{
	"lose_weight": -500,
	"maintain":    0,
	"gain_muscle": 300,
}

// MacroPresets are the selectable percentage splits from onboarding.
var MacroPresets = map[string]models.MacroTargets{
	"balanced":     {ProteinPercentage: 30, CarbsPercentage: 40, FatsPercentage: 30},
	"high_protein": {ProteinPercentage: 40, CarbsPercentage: 35, FatsPercentage: 25},
	"low_carb":     {ProteinPercentage: 35, CarbsPercentage: 25, FatsPercentage: 40},
	"keto":         {ProteinPercentage: 25, CarbsPercentage: 5, FatsPercentage: 70},
	"endurance":    {ProteinPercentage: 20, CarbsPercentage: 55, FatsPercentage: 25},
}

func IsValidActivityLevel(level string) bool {
	_, ok := activityMultipliers[level]
	return ok
}

func IsValidObjective(objective string) bool {
	_, ok := objectiveAdjustments[objective]
	return ok
}

// CalculateTargetCalories derives a daily calorie target from biometrics
// using the Mifflin-St Jeor equation, an activity multiplier and an
// objective offset, rounded to the nearest calorie.
func CalculateTargetCalories(weightKg, heightCm float64, age int, sex, activityLevel, objective string) (int, error) {
	if weightKg <= 0 || heightCm <= 0 || age <= 0 {
		return 0, errors.New("weight, height and age must be positive")
	}

	bmr := 10*weightKg + 6.25*heightCm - 5*float64(age)
	switch sex {
	case "male":
		bmr += 5
	case "female":
		bmr -= 161
	default:
		return 0, errors.New("sex must be male or female")
	}

	mult, ok := activityMultipliers[activityLevel]
	if !ok {
		return 0, errors.New("unknown activity level: " + activityLevel)
	}
	adj, ok := objectiveAdjustments[objective]
	if !ok {
		return 0, errors.New("unknown objective: " + objective)
	}

	tdee := bmr * mult
	return int(math.Round(tdee + adj)), nil
}

// NormalizeMacroTargets proportionally rescales a split whose percentages
// don't total 100 (within 0.1); a valid split is returned unchanged.
func NormalizeMacroTargets(m models.MacroTargets) models.MacroTargets {
	total := m.ProteinPercentage + m.CarbsPercentage + m.FatsPercentage
	if total <= 0 {
		return MacroPresets["balanced"]
	}
	if math.Abs(total-100) < 0.1 {
		return m
	}
	return models.MacroTargets{
		ProteinPercentage: math.Round(m.ProteinPercentage / total * 100),
		CarbsPercentage:   math.Round(m.CarbsPercentage / total * 100),
		FatsPercentage:    math.Round(m.FatsPercentage / total * 100),
	}
}

// CalculateMacroGrams converts a calorie target into grams per macro
// (4 kcal/g protein and carbs, 9 kcal/g fat), each rounded to the nearest
// gram. The split is normalized first.
func CalculateMacroGrams(calories float64, m models.MacroTargets) (proteinG, carbsG, fatsG int) {
	m = NormalizeMacroTargets(m)
	proteinG = int(math.Round(calories * m.ProteinPercentage / 100 / 4))
	carbsG = int(math.Round(calories * m.CarbsPercentage / 100 / 4))
	fatsG = int(math.Round(calories * m.FatsPercentage / 100 / 9))
	return proteinG, carbsG, fatsG
}
