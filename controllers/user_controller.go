package controllers

import (
	"errors"
	"net/http"

	"github.com/petrepopa00/gurmaio/models"
	"github.com/petrepopa00/gurmaio/services"

	"github.com/gin-gonic/gin"
)

func GetProfile(c *gin.Context) {
	uid := c.GetUint("userID")
	profile, err := services.GetProfile(uid)
	if err != nil {
		if errors.Is(err, services.ErrProfileNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "profile not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, profile)
}

func UpdateProfile(c *gin.Context) {
	uid := c.GetUint("userID")

	var input models.UserProfile
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	profile, err := services.SaveProfile(uid, &input)
	if err != nil {
		if errors.Is(err, services.ErrProfileIncomplete) {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "set target_calories or complete all biometric fields"})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, profile)
}

type languageInput struct {
	Language string `json:"language" binding:"required"`
}

func SetLanguage(c *gin.Context) {
	uid := c.GetUint("userID")

	var input languageInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := services.SetPreferredLanguage(uid, input.Language); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"language": input.Language})
}

type calorieInput struct {
	WeightKg      float64 `json:"weight_kg" binding:"required,gt=0"`
	HeightCm      float64 `json:"height_cm" binding:"required,gt=0"`
	Age           int     `json:"age" binding:"required,gt=0"`
	Sex           string  `json:"sex" binding:"required"`
	ActivityLevel string  `json:"activity_level" binding:"required"`
	Objective     string  `json:"objective"`
	MacroPreset   string  `json:"macro_preset"`
}

// CalculateCalories exposes the calorie/macro calculator without requiring a
// saved profile, so onboarding can show a preview.
func CalculateCalories(c *gin.Context) {
	var input calorieInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := services.CalculateCalories(
		input.WeightKg, input.HeightCm, input.Age,
		input.Sex, input.ActivityLevel, input.Objective, input.MacroPreset)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, result)
}
