package models

import (
	"gorm.io/gorm"
)

// CompletedMeal is a snapshot taken at completion time, deliberately
// decoupled from the live plan so later edits don't rewrite history.
type CompletedMeal struct {
	MealID   string `json:"meal_id"`
	MealType string `json:"meal_type"`
	Name     string `json:"name"`
}

// DayProgress records one completed calendar day. The composite unique index
// guarantees at most one record per user and date; completion is an upsert.
type DayProgress struct {
	gorm.Model `json:"-"`
	UserID     uint   `json:"-" gorm:"index:idx_progress_user_date,unique;not null"`
	Date       string `json:"date" gorm:"size:10;index:idx_progress_user_date,unique;not null"`

	CompletedMeals []CompletedMeal `json:"completed_meals" gorm:"serializer:json"`
	TotalNutrition Nutrition       `json:"total_nutrition" gorm:"embedded;embeddedPrefix:nutrition_"`
	TotalCost      float64         `json:"total_cost"`
	MealsCount     int             `json:"meals_count"`
}

// ScheduledDay binds a plan day number to a calendar date. One date per user.
type ScheduledDay struct {
	gorm.Model `json:"-"`
	UserID     uint   `json:"-" gorm:"index:idx_scheduled_user_date,unique;not null"`
	PlanID     string `json:"plan_id" gorm:"size:36;index;not null"`
	DayNumber  int    `json:"day_number"`
	Date       string `json:"date" gorm:"size:10;index:idx_scheduled_user_date,unique;not null"`
}

// StreakInfo is derived on demand from the DayProgress collection and never
// persisted. Field names follow the client contract.
type StreakInfo struct {
	CurrentStreak     int     `json:"currentStreak"`
	LongestStreak     int     `json:"longestStreak"`
	LastCompletedDate *string `json:"lastCompletedDate"`
	StreakActive      bool    `json:"streakActive"`
}
