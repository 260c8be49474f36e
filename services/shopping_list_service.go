package services

import (
	"errors"
	"math"
	"time"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
	"gorm.io/gorm"

	"github.com/petrepopa00/gurmaio/config"
	"github.com/petrepopa00/gurmaio/models"
)

const (
	// quantities are rounded up to this granularity (grams)
	purchaseGranularityG = 50.0
	// informational floor shown to the user, not enforced on TotalQuantity
	minimumPurchaseG = 100.0
)

// BuildShoppingList consolidates every ingredient occurrence of a plan into
// unique purchasable items. Quantities round up to purchase granularity, so
// waste cost is never negative. Owned/deleted flags from a prior list are
// carried over for ingredients that still appear. Sorting is locale-aware
// for the given BCP 47 language tag.
func BuildShoppingList(plan *models.MealPlan, prior []models.ShoppingListItem, lang string) models.ShoppingList {
	type acc struct {
		name     string
		quantity float64
		price    float64
	}
	grouped := make(map[string]*acc)
	order := make([]string, 0)

	for _, day := range plan.Days {
		for _, meal := range day.Meals {
			for _, ingredient := range meal.Ingredients {
				a, ok := grouped[ingredient.IngredientID]
				if !ok {
					a = &acc{name: ingredient.Name}
					grouped[ingredient.IngredientID] = a
					order = append(order, ingredient.IngredientID)
				}
				a.quantity += ingredient.QuantityG
				a.price += ingredient.CostEur
			}
		}
	}

	priorFlags := make(map[string]models.ShoppingListItem, len(prior))
	for _, item := range prior {
		priorFlags[item.IngredientID] = item
	}

	items := make([]models.ShoppingListItem, 0, len(order))
	var totalShoppingCost float64
	for _, id := range order {
		a := grouped[id]
		item := models.ShoppingListItem{
			IngredientID:            id,
			DisplayName:             a.name,
			TotalQuantity:           math.Ceil(a.quantity/purchaseGranularityG) * purchaseGranularityG,
			Unit:                    "g",
			MinimumPurchaseQuantity: minimumPurchaseG,
			EstimatedPriceEur:       round2(a.price),
		}
		if prev, ok := priorFlags[id]; ok {
			item.Owned = prev.Owned
			item.Deleted = prev.Deleted
		}
		totalShoppingCost += item.EstimatedPriceEur
		items = append(items, item)
	}

	tag, err := language.Parse(lang)
	if err != nil {
		tag = language.English
	}
	coll := collate.New(tag)
	coll.Sort(sortableItems(items))

	return models.ShoppingList{
		PlanID:      plan.PlanID,
		UserID:      plan.UserID,
		GeneratedAt: time.Now().UTC(),
		Items:       items,
		Summary: models.ShoppingListSummary{
			TotalItems:           len(items),
			TotalShoppingCostEur: round2(totalShoppingCost),
			PlanCostEur:          plan.PlanTotals.TotalCostEur,
			WasteCostEur:         round2(math.Max(0, totalShoppingCost-plan.PlanTotals.TotalCostEur)),
		},
	}
}

// sortableItems adapts items to collate.Sort's Lister interface.
type sortableItems []models.ShoppingListItem

func (s sortableItems) Len() int           { return len(s) }
func (s sortableItems) Swap(i, j int)      { s[i], s[j] = s[j], s[i] }
func (s sortableItems) Bytes(i int) []byte { return []byte(s[i].DisplayName) }

type ShoppingListService struct {
	plans *PlanService
}

func NewShoppingListService(plans *PlanService) *ShoppingListService {
	return &ShoppingListService{plans: plans}
}

// Get returns the stored list for a plan, generating and persisting one on
// first access.
func (s *ShoppingListService) Get(userID uint, planID string) (*models.ShoppingList, error) {
	var list models.ShoppingList
	err := config.DB.Where("user_id = ? AND plan_id = ?", userID, planID).First(&list).Error
	if err == nil {
		return &list, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	return s.Regenerate(userID, planID)
}

// Regenerate rebuilds the list from the current plan contents while
// preserving the user's owned/deleted flags from the stored list.
func (s *ShoppingListService) Regenerate(userID uint, planID string) (*models.ShoppingList, error) {
	plan, err := s.plans.Get(userID, planID)
	if err != nil {
		return nil, err
	}

	var prior models.ShoppingList
	var priorItems []models.ShoppingListItem
	err = config.DB.Where("user_id = ? AND plan_id = ?", userID, planID).First(&prior).Error
	switch {
	case err == nil:
		priorItems = prior.Items
	case !errors.Is(err, gorm.ErrRecordNotFound):
		return nil, err
	}

	list := BuildShoppingList(plan, priorItems, s.userLanguage(userID))
	if prior.ID != 0 {
		list.ID = prior.ID
		list.CreatedAt = prior.CreatedAt
	}
	if err := config.DB.Save(&list).Error; err != nil {
		return nil, err
	}
	return &list, nil
}

// UpdateItem sets the owned/deleted flags of a single line item.
func (s *ShoppingListService) UpdateItem(userID uint, planID, ingredientID string, owned, deleted *bool) (*models.ShoppingList, error) {
	var list models.ShoppingList
	err := config.DB.Where("user_id = ? AND plan_id = ?", userID, planID).First(&list).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrShoppingListNotFound
		}
		return nil, err
	}

	found := false
	for i := range list.Items {
		if list.Items[i].IngredientID != ingredientID {
			continue
		}
		if owned != nil {
			list.Items[i].Owned = *owned
		}
		if deleted != nil {
			list.Items[i].Deleted = *deleted
		}
		found = true
		break
	}
	if !found {
		return nil, errors.New("ingredient not on shopping list: " + ingredientID)
	}
	if err := config.DB.Save(&list).Error; err != nil {
		return nil, err
	}
	return &list, nil
}

func (s *ShoppingListService) userLanguage(userID uint) string {
	var user models.User
	if err := config.DB.First(&user, userID).Error; err != nil {
		return "en"
	}
	if user.PreferredLanguage == "" {
		return "en"
	}
	return user.PreferredLanguage
}
