package controllers

import (
	"errors"
	"net/http"

	"github.com/petrepopa00/gurmaio/models"
	"github.com/petrepopa00/gurmaio/services"

	"github.com/gin-gonic/gin"
)

type PreferenceController struct {
	Plans *services.PlanService
}

func NewPreferenceController(plans *services.PlanService) *PreferenceController {
	return &PreferenceController{Plans: plans}
}

type rateMealInput struct {
	PlanID string `json:"plan_id" binding:"required"`
	MealID string `json:"meal_id" binding:"required"`
	Liked  *bool  `json:"liked" binding:"required"`
}

func (pc *PreferenceController) RateMeal(c *gin.Context) {
	uid := c.GetUint("userID")

	var input rateMealInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	plan, err := pc.Plans.Get(uid, input.PlanID)
	if err != nil {
		planError(c, err)
		return
	}
	meal := findMeal(plan, input.MealID)
	if meal == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "meal not found in plan"})
		return
	}

	pref, err := services.RateMeal(uid, meal, *input.Liked)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, pref)
}

func (pc *PreferenceController) List(c *gin.Context) {
	uid := c.GetUint("userID")

	prefs, err := services.ListPreferences(uid)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"preferences": prefs})
}

type adjustPortionInput struct {
	PlanID     string  `json:"plan_id" binding:"required"`
	MealID     string  `json:"meal_id" binding:"required"`
	Multiplier float64 `json:"multiplier" binding:"required"`
}

func (pc *PreferenceController) AdjustPortion(c *gin.Context) {
	uid := c.GetUint("userID")

	var input adjustPortionInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	plan, err := services.AdjustPortion(uid, input.PlanID, input.MealID, input.Multiplier)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrPlanNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "plan not found"})
		case errors.Is(err, services.ErrMealNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "meal not found in plan"})
		default:
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		}
		return
	}
	c.JSON(http.StatusOK, plan)
}

func findMeal(plan *models.MealPlan, mealID string) *models.Meal {
	for di := range plan.Days {
		for mi := range plan.Days[di].Meals {
			if plan.Days[di].Meals[mi].MealID == mealID {
				return &plan.Days[di].Meals[mi]
			}
		}
	}
	return nil
}
