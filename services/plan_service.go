package services

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/petrepopa00/gurmaio/config"
	"github.com/petrepopa00/gurmaio/models"
)

const maxGenerationAttempts = 5

var planMealTypes = []string{"breakfast", "lunch", "dinner", "snack"}

// PeriodBudget converts the profile budget into a budget covering the whole
// plan length.
func PeriodBudget(budgetEur float64, period string, days int) float64 {
	if period == "daily" {
		return round2(budgetEur * float64(days))
	}
	// weekly
	return round2(budgetEur * float64(days) / 7)
}

// GenerateMealPlan builds a budget-aware plan from the recipe catalog.
// Disliked recipe names are skipped when alternatives exist. When the plan
// exceeds the period budget, the generator retries with the most expensive
// candidate dropped per meal type, up to maxGenerationAttempts; a plan that
// still exceeds the budget is flagged rather than rejected.
func GenerateMealPlan(profile *models.UserProfile, dislikedRecipes map[string]bool) (*models.MealPlan, error) {
	if profile.BudgetEur <= 0 {
		return nil, errors.New("budget must be positive")
	}
	if profile.MealPlanDays < 1 || profile.MealPlanDays > 14 {
		return nil, errors.New("meal plan length must be between 1 and 14 days")
	}
	if profile.BudgetPeriod != "daily" && profile.BudgetPeriod != "weekly" {
		return nil, errors.New("budget period must be daily or weekly")
	}
	mealsPerDay := profile.MealsPerDay
	if mealsPerDay < 1 || mealsPerDay > len(planMealTypes) {
		mealsPerDay = 3
	}

	candidates := make(map[string][]recipeTemplate, mealsPerDay)
	for _, mt := range planMealTypes[:mealsPerDay] {
		var pool []recipeTemplate
		for _, r := range recipeCatalog {
			if r.MealType != mt || !r.matchesProfile(profile.DietaryPreferences, profile.Allergens) {
				continue
			}
			pool = append(pool, r)
		}
		// avoid disliked recipes unless that would leave nothing to pick
		withoutDisliked := pool[:0:0]
		for _, r := range pool {
			if !dislikedRecipes[r.Name] {
				withoutDisliked = append(withoutDisliked, r)
			}
		}
		if len(withoutDisliked) > 0 {
			pool = withoutDisliked
		}
		if len(pool) == 0 {
			return nil, fmt.Errorf("%w: %s", ErrNoMatchingRecipes, mt)
		}
		sortByCuisinePreference(pool, profile.CuisinePreferences)
		candidates[mt] = pool
	}

	budget := PeriodBudget(profile.BudgetEur, profile.BudgetPeriod, profile.MealPlanDays)

	var plan *models.MealPlan
	attempt := 0
	for attempt < maxGenerationAttempts {
		attempt++
		plan = assemblePlan(profile.MealPlanDays, planMealTypes[:mealsPerDay], candidates)
		plan.Metadata.PeriodBudgetEur = budget
		plan.Metadata.Attempts = attempt
		RecalculatePlanTotals(plan)
		if !plan.Metadata.IsOverBudget {
			break
		}
		if !dropMostExpensive(candidates) {
			break
		}
	}

	plan.PlanID = uuid.NewString()
	plan.GeneratedAt = time.Now().UTC()
	return plan, nil
}

func assemblePlan(days int, mealTypes []string, candidates map[string][]recipeTemplate) *models.MealPlan {
	plan := &models.MealPlan{Days: make([]models.PlanDay, 0, days)}
	for d := 1; d <= days; d++ {
		day := models.PlanDay{DayNumber: d, Meals: make([]models.Meal, 0, len(mealTypes))}
		for _, mt := range mealTypes {
			pool := candidates[mt]
			tpl := pool[(d-1)%len(pool)]
			day.Meals = append(day.Meals, mealFromTemplate(tpl))
		}
		plan.Days = append(plan.Days, day)
	}
	return plan
}

func mealFromTemplate(tpl recipeTemplate) models.Meal {
	meal := models.Meal{
		MealID:              uuid.NewString(),
		MealType:            tpl.MealType,
		Name:                tpl.Name,
		Ingredients:         append([]models.Ingredient(nil), tpl.Ingredients...),
		CookingInstructions: append([]string(nil), tpl.Instructions...),
	}
	meal.Nutrition, meal.MealCostEur = MealTotalsFromIngredients(&meal)
	return meal
}

func sortByCuisinePreference(pool []recipeTemplate, cuisines []string) {
	if len(cuisines) == 0 {
		return
	}
	preferred := make(map[string]bool, len(cuisines))
	for _, c := range cuisines {
		preferred[normalizeTag(c)] = true
	}
	sort.SliceStable(pool, func(i, j int) bool {
		return preferred[normalizeTag(pool[i].Cuisine)] && !preferred[normalizeTag(pool[j].Cuisine)]
	})
}

// dropMostExpensive removes the costliest candidate from every pool that
// still has an alternative. Returns false when nothing could be dropped.
func dropMostExpensive(candidates map[string][]recipeTemplate) bool {
	dropped := false
	for mt, pool := range candidates {
		if len(pool) < 2 {
			continue
		}
		worst := 0
		for i, r := range pool {
			if r.totalCost() > pool[worst].totalCost() {
				worst = i
			}
		}
		candidates[mt] = append(pool[:worst:worst], pool[worst+1:]...)
		dropped = true
	}
	return dropped
}

type PlanService struct{}

func NewPlanService() *PlanService { return &PlanService{} }

// Generate builds a new current plan for the user and replaces the previous
// unsaved one. Disliked meals from the preference history are avoided.
func (s *PlanService) Generate(userID uint) (*models.MealPlan, error) {
	var profile models.UserProfile
	if err := config.DB.Where("user_id = ?", userID).First(&profile).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, err
	}

	var prefs []models.MealPreference
	if err := config.DB.Where("user_id = ? AND liked = ?", userID, false).Find(&prefs).Error; err != nil {
		return nil, err
	}
	disliked := make(map[string]bool, len(prefs))
	for _, p := range prefs {
		disliked[p.RecipeName] = true
	}

	plan, err := GenerateMealPlan(&profile, disliked)
	if err != nil {
		return nil, err
	}
	plan.UserID = userID

	err = config.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ? AND is_saved = ?", userID, false).
			Delete(&models.MealPlan{}).Error; err != nil {
			return err
		}
		return tx.Create(plan).Error
	})
	if err != nil {
		return nil, err
	}
	return plan, nil
}

// Current returns the latest unsaved plan, or ErrPlanNotFound.
func (s *PlanService) Current(userID uint) (*models.MealPlan, error) {
	var plan models.MealPlan
	err := config.DB.
		Where("user_id = ? AND is_saved = ?", userID, false).
		Order("generated_at DESC").
		First(&plan).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPlanNotFound
		}
		return nil, err
	}
	return &plan, nil
}

func (s *PlanService) List(userID uint, isSaved *bool) ([]models.MealPlan, error) {
	q := config.DB.Where("user_id = ?", userID)
	if isSaved != nil {
		q = q.Where("is_saved = ?", *isSaved)
	}
	var plans []models.MealPlan
	err := q.Order("generated_at DESC").Find(&plans).Error
	return plans, err
}

func (s *PlanService) Get(userID uint, planID string) (*models.MealPlan, error) {
	var plan models.MealPlan
	err := config.DB.Where("user_id = ? AND plan_id = ?", userID, planID).First(&plan).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPlanNotFound
		}
		return nil, err
	}
	return &plan, nil
}

// Save marks a plan as kept so a later Generate won't replace it.
func (s *PlanService) Save(userID uint, planID string) (*models.MealPlan, error) {
	plan, err := s.Get(userID, planID)
	if err != nil {
		return nil, err
	}
	plan.IsSaved = true
	if err := config.DB.Save(plan).Error; err != nil {
		return nil, err
	}
	return plan, nil
}

// Delete removes a plan together with its shopping list and schedule.
func (s *PlanService) Delete(userID uint, planID string) error {
	if _, err := s.Get(userID, planID); err != nil {
		return err
	}
	return config.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ? AND plan_id = ?", userID, planID).
			Delete(&models.ShoppingList{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ? AND plan_id = ?", userID, planID).
			Delete(&models.ScheduledDay{}).Error; err != nil {
			return err
		}
		return tx.Where("user_id = ? AND plan_id = ?", userID, planID).
			Delete(&models.MealPlan{}).Error
	})
}
