package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/petrepopa00/gurmaio/config"
	"github.com/petrepopa00/gurmaio/models"
	"github.com/petrepopa00/gurmaio/utils"

	"gorm.io/gorm"
)

// ValidateProfile enforces the onboarding invariants before a profile is
// saved: positive budget, sane plan shape, and either a manual calorie
// target or a complete set of biometrics to derive one from.
func ValidateProfile(p *models.UserProfile) error {
	if p.BudgetEur <= 0 {
		return errors.New("budget_eur must be positive")
	}
	switch p.BudgetPeriod {
	case "daily", "weekly":
	default:
		return errors.New("budget_period must be daily or weekly")
	}
	if p.MealPlanDays < 1 || p.MealPlanDays > 14 {
		return errors.New("meal_plan_days must be between 1 and 14")
	}
	if p.MealsPerDay < 1 || p.MealsPerDay > 4 {
		return errors.New("meals_per_day must be between 1 and 4")
	}
	if p.TargetCalories != nil {
		if *p.TargetCalories < 800 || *p.TargetCalories > 6000 {
			return errors.New("target_calories out of range")
		}
	} else {
		if !p.HasCompleteBiometrics() {
			return ErrProfileIncomplete
		}
		if !utils.IsValidActivityLevel(*p.ActivityLevel) {
			return fmt.Errorf("unknown activity level %q", *p.ActivityLevel)
		}
		if p.Objective != nil && !utils.IsValidObjective(*p.Objective) {
			return fmt.Errorf("unknown objective %q", *p.Objective)
		}
	}
	return nil
}

func normalizeTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		t = strings.ToLower(strings.TrimSpace(t))
		if t != "" {
			out = append(out, t)
		}
	}
	return out
}

// SaveProfile validates and upserts the user's profile. When no manual
// calorie target is set, one is derived with Mifflin-St Jeor and stored so
// plan generation never recomputes it.
func SaveProfile(userID uint, in *models.UserProfile) (*models.UserProfile, error) {
	in.UserID = userID
	in.DietaryPreferences = normalizeTags(in.DietaryPreferences)
	in.Allergens = normalizeTags(in.Allergens)
	in.CuisinePreferences = normalizeTags(in.CuisinePreferences)
	in.MacroTargets = utils.NormalizeMacroTargets(in.MacroTargets)

	if err := ValidateProfile(in); err != nil {
		return nil, err
	}

	if in.TargetCalories == nil {
		objective := "maintain"
		if in.Objective != nil {
			objective = *in.Objective
		}
		cals, err := utils.CalculateTargetCalories(
			*in.WeightKg, *in.HeightCm, *in.Age, *in.Sex, *in.ActivityLevel, objective)
		if err != nil {
			return nil, err
		}
		in.TargetCalories = &cals
	}

	var existing models.UserProfile
	err := config.DB.Where("user_id = ?", userID).First(&existing).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		if err := config.DB.Create(in).Error; err != nil {
			return nil, err
		}
		return in, nil
	case err != nil:
		return nil, err
	default:
		in.ID = existing.ID
		in.CreatedAt = existing.CreatedAt
		if err := config.DB.Save(in).Error; err != nil {
			return nil, err
		}
		return in, nil
	}
}

func GetProfile(userID uint) (*models.UserProfile, error) {
	var profile models.UserProfile
	err := config.DB.Where("user_id = ?", userID).First(&profile).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrProfileNotFound
	}
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

// CalorieBreakdown is the response for the standalone calculator endpoint,
// usable before a profile exists.
type CalorieBreakdown struct {
	TargetCalories int                 `json:"target_calories"`
	ProteinG       int                 `json:"protein_g"`
	CarbsG         int                 `json:"carbs_g"`
	FatsG          int                 `json:"fats_g"`
	MacroTargets   models.MacroTargets `json:"macro_targets"`
}

func CalculateCalories(weightKg, heightCm float64, age int, sex, activityLevel, objective, macroPreset string) (*CalorieBreakdown, error) {
	if objective == "" {
		objective = "maintain"
	}
	cals, err := utils.CalculateTargetCalories(weightKg, heightCm, age, sex, activityLevel, objective)
	if err != nil {
		return nil, err
	}
	macros, ok := utils.MacroPresets[macroPreset]
	if !ok {
		macros = utils.MacroPresets["balanced"]
	}
	p, c, f := utils.CalculateMacroGrams(float64(cals), macros)
	return &CalorieBreakdown{
		TargetCalories: cals,
		ProteinG:       p,
		CarbsG:         c,
		FatsG:          f,
		MacroTargets:   macros,
	}, nil
}
