package controllers

import (
	"errors"
	"net/http"

	"github.com/petrepopa00/gurmaio/config"
	"github.com/petrepopa00/gurmaio/models"
	"github.com/petrepopa00/gurmaio/services"

	"github.com/gin-gonic/gin"
)

type PlanController struct {
	Plans      *services.PlanService
	Translator *services.TranslationService
}

func NewPlanController(plans *services.PlanService, translator *services.TranslationService) *PlanController {
	return &PlanController{Plans: plans, Translator: translator}
}

func planError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrPlanNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "plan not found"})
	case errors.Is(err, services.ErrProfileNotFound):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "complete your profile before generating a plan"})
	case errors.Is(err, services.ErrProfileIncomplete):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "profile is incomplete"})
	case errors.Is(err, services.ErrNoMatchingRecipes):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "no recipes match your dietary preferences and allergens"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

func (pc *PlanController) Generate(c *gin.Context) {
	uid := c.GetUint("userID")

	plan, err := pc.Plans.Generate(uid)
	if err != nil {
		planError(c, err)
		return
	}
	c.JSON(http.StatusCreated, plan)
}

func (pc *PlanController) Current(c *gin.Context) {
	uid := c.GetUint("userID")

	plan, err := pc.Plans.Current(uid)
	if err != nil {
		planError(c, err)
		return
	}
	c.JSON(http.StatusOK, plan)
}

func (pc *PlanController) List(c *gin.Context) {
	uid := c.GetUint("userID")

	var saved *bool
	switch c.Query("saved") {
	case "true":
		t := true
		saved = &t
	case "false":
		f := false
		saved = &f
	}

	plans, err := pc.Plans.List(uid, saved)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"plans": plans})
}

func (pc *PlanController) Get(c *gin.Context) {
	uid := c.GetUint("userID")

	plan, err := pc.Plans.Get(uid, c.Param("planId"))
	if err != nil {
		planError(c, err)
		return
	}
	c.JSON(http.StatusOK, plan)
}

func (pc *PlanController) Save(c *gin.Context) {
	uid := c.GetUint("userID")

	plan, err := pc.Plans.Save(uid, c.Param("planId"))
	if err != nil {
		planError(c, err)
		return
	}
	c.JSON(http.StatusOK, plan)
}

func (pc *PlanController) Delete(c *gin.Context) {
	uid := c.GetUint("userID")

	if err := pc.Plans.Delete(uid, c.Param("planId")); err != nil {
		planError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "plan deleted"})
}

// Translations returns the meal-name/ingredient/instruction mappings for one
// plan in the requested language (defaults to the user's preferred one).
// Untranslatable strings come back unchanged, so the client can always
// render something.
func (pc *PlanController) Translations(c *gin.Context) {
	uid := c.GetUint("userID")

	plan, err := pc.Plans.Get(uid, c.Param("planId"))
	if err != nil {
		planError(c, err)
		return
	}

	lang := c.Query("lang")
	if lang == "" {
		var user models.User
		if err := config.DB.First(&user, uid).Error; err == nil {
			lang = user.PreferredLanguage
		}
	}
	if !services.IsSupportedLanguage(lang) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unsupported language"})
		return
	}

	mealNames, ingredients, instructions := collectPlanContent(plan)
	out := pc.Translator.TranslateMealPlanContent(c.Request.Context(), mealNames, ingredients, instructions, lang)
	c.JSON(http.StatusOK, gin.H{"language": lang, "translations": out})
}

func collectPlanContent(plan *models.MealPlan) (mealNames, ingredients, instructions []string) {
	for _, day := range plan.Days {
		for _, meal := range day.Meals {
			mealNames = append(mealNames, meal.Name)
			instructions = append(instructions, meal.CookingInstructions...)
			for _, ing := range meal.Ingredients {
				ingredients = append(ingredients, ing.Name)
			}
		}
	}
	return mealNames, ingredients, instructions
}
