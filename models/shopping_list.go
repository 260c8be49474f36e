package models

import (
	"time"

	"gorm.io/gorm"
)

// ShoppingListItem is one purchasable line. TotalQuantity is the plan-wide
// grams rounded up to purchase granularity; Owned and Deleted are the only
// user-mutable fields and must survive regeneration.
type ShoppingListItem struct {
	IngredientID            string  `json:"ingredient_id"`
	DisplayName             string  `json:"display_name"`
	TotalQuantity           float64 `json:"total_quantity"`
	Unit                    string  `json:"unit"`
	MinimumPurchaseQuantity float64 `json:"minimum_purchase_quantity"`
	EstimatedPriceEur       float64 `json:"estimated_price_eur"`
	Owned                   bool    `json:"owned"`
	Deleted                 bool    `json:"deleted"`
}

type ShoppingListSummary struct {
	TotalItems           int     `json:"total_items"`
	TotalShoppingCostEur float64 `json:"total_shopping_cost_eur"`
	PlanCostEur          float64 `json:"plan_cost_eur"`
	WasteCostEur         float64 `json:"waste_cost_eur"`
}

type ShoppingList struct {
	gorm.Model `json:"-"`
	UserID     uint   `json:"-" gorm:"index:idx_shopping_user_plan,unique;not null"`
	PlanID     string `json:"plan_id" gorm:"size:36;index:idx_shopping_user_plan,unique;not null"`

	GeneratedAt time.Time          `json:"generated_at"`
	Items       []ShoppingListItem `json:"items" gorm:"serializer:json"`

	Summary ShoppingListSummary `json:"summary" gorm:"embedded;embeddedPrefix:summary_"`
}
