package models

import (
	"time"

	"gorm.io/gorm"
)

// MealPreference keeps one like/dislike rating per user and meal;
// re-rating overwrites.
type MealPreference struct {
	gorm.Model `json:"-"`
	UserID     uint   `json:"-" gorm:"index:idx_pref_user_meal,unique;not null"`
	MealID     string `json:"meal_id" gorm:"size:36;index:idx_pref_user_meal,unique;not null"`

	RecipeName  string    `json:"recipe_name"`
	MealType    string    `json:"meal_type" gorm:"size:16"`
	Ingredients []string  `json:"ingredients" gorm:"serializer:json"`
	Liked       bool      `json:"liked"`
	RatedAt     time.Time `json:"rated_at"`
}

// MealPortionAdjustment scales one meal's portions within a plan.
type MealPortionAdjustment struct {
	gorm.Model `json:"-"`
	UserID     uint   `json:"-" gorm:"index:idx_portion_user_meal,unique;not null"`
	PlanID     string `json:"plan_id" gorm:"size:36;index;not null"`
	MealID     string `json:"meal_id" gorm:"size:36;index:idx_portion_user_meal,unique;not null"`
	Multiplier float64 `json:"multiplier"` // 0.5 .. 2.0
}
