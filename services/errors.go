package services

import "errors"

var (
	ErrProfileNotFound      = errors.New("profile not found")
	ErrProfileIncomplete    = errors.New("profile is missing biometric fields needed to derive calories")
	ErrPlanNotFound         = errors.New("meal plan not found")
	ErrDayNotFound          = errors.New("plan day not found")
	ErrMealNotFound         = errors.New("meal not found in plan")
	ErrDateConflict         = errors.New("date already scheduled or completed")
	ErrNoMatchingRecipes    = errors.New("no recipes match the dietary preferences and allergens")
	ErrShoppingListNotFound = errors.New("shopping list not found")
)
