package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/petrepopa00/gurmaio/config"
	"github.com/petrepopa00/gurmaio/models"

	"gorm.io/gorm"
)

// RateMeal records a like/dislike for a meal, snapshotting its name and
// ingredients so the rating survives plan deletion. Re-rating overwrites.
func RateMeal(userID uint, meal *models.Meal, liked bool) (*models.MealPreference, error) {
	ingredients := make([]string, 0, len(meal.Ingredients))
	for _, ing := range meal.Ingredients {
		ingredients = append(ingredients, ing.Name)
	}

	var pref models.MealPreference
	err := config.DB.Where("user_id = ? AND meal_id = ?", userID, meal.MealID).First(&pref).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		pref = models.MealPreference{
			UserID:      userID,
			MealID:      meal.MealID,
			RecipeName:  meal.Name,
			MealType:    meal.MealType,
			Ingredients: ingredients,
			Liked:       liked,
			RatedAt:     time.Now(),
		}
		if err := config.DB.Create(&pref).Error; err != nil {
			return nil, err
		}
		return &pref, nil
	}
	if err != nil {
		return nil, err
	}

	pref.Liked = liked
	pref.RecipeName = meal.Name
	pref.MealType = meal.MealType
	pref.Ingredients = ingredients
	pref.RatedAt = time.Now()
	if err := config.DB.Save(&pref).Error; err != nil {
		return nil, err
	}
	return &pref, nil
}

func ListPreferences(userID uint) ([]models.MealPreference, error) {
	var prefs []models.MealPreference
	err := config.DB.Where("user_id = ?", userID).Order("rated_at DESC").Find(&prefs).Error
	return prefs, err
}

// AdjustPortion upserts a multiplier for one meal in a plan and scales the
// stored plan to match: ingredient quantities, nutrition and costs all move
// together, and plan totals are recomputed.
func AdjustPortion(userID uint, planID, mealID string, multiplier float64) (*models.MealPlan, error) {
	if multiplier < 0.5 || multiplier > 2.0 {
		return nil, fmt.Errorf("multiplier %.2f outside 0.5-2.0", multiplier)
	}

	var plan models.MealPlan
	if err := config.DB.Where("user_id = ? AND plan_id = ?", userID, planID).First(&plan).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPlanNotFound
		}
		return nil, err
	}

	// The plan stores already-scaled values; rescale relative to the prior
	// multiplier so repeated adjustments don't compound.
	prior := 1.0
	var adj models.MealPortionAdjustment
	err := config.DB.Where("user_id = ? AND meal_id = ?", userID, mealID).First(&adj).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		adj = models.MealPortionAdjustment{
			UserID:     userID,
			PlanID:     planID,
			MealID:     mealID,
			Multiplier: multiplier,
		}
	case err != nil:
		return nil, err
	default:
		prior = adj.Multiplier
		adj.Multiplier = multiplier
		adj.PlanID = planID
	}

	factor := multiplier / prior
	if !scaleMeal(&plan, mealID, factor) {
		return nil, ErrMealNotFound
	}
	RecalculatePlanTotals(&plan)

	txErr := config.DB.Transaction(func(tx *gorm.DB) error {
		if adj.ID == 0 {
			if err := tx.Create(&adj).Error; err != nil {
				return err
			}
		} else if err := tx.Save(&adj).Error; err != nil {
			return err
		}
		return tx.Save(&plan).Error
	})
	if txErr != nil {
		return nil, txErr
	}
	return &plan, nil
}

func scaleMeal(plan *models.MealPlan, mealID string, factor float64) bool {
	for di := range plan.Days {
		for mi := range plan.Days[di].Meals {
			meal := &plan.Days[di].Meals[mi]
			if meal.MealID != mealID {
				continue
			}
			for ii := range meal.Ingredients {
				ing := &meal.Ingredients[ii]
				ing.QuantityG = round2(ing.QuantityG * factor)
				ing.CostEur = round2(ing.CostEur * factor)
				ing.Nutrition.Calories = round2(ing.Nutrition.Calories * factor)
				ing.Nutrition.ProteinG = round2(ing.Nutrition.ProteinG * factor)
				ing.Nutrition.CarbohydratesG = round2(ing.Nutrition.CarbohydratesG * factor)
				ing.Nutrition.FatsG = round2(ing.Nutrition.FatsG * factor)
			}
			meal.Nutrition, meal.MealCostEur = MealTotalsFromIngredients(meal)
			return true
		}
	}
	return false
}
