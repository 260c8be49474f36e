package services

import (
	"strings"

	"github.com/google/uuid"
	"github.com/petrepopa00/gurmaio/models"
)

// Ingredient identity must be stable across generations so that shopping
// list consolidation merges repeats and user-owned flags survive a
// regenerate. IDs are therefore derived from the ingredient name instead of
// being random.
var ingredientNamespace = uuid.MustParse("7b0d3f5a-9c41-4ce6-8f2a-51b6d1a0e8c4")

func ingredientID(name string) string {
	return uuid.NewSHA1(ingredientNamespace, []byte(strings.ToLower(name))).String()
}

type recipeTemplate struct {
	Name         string
	MealType     string
	Cuisine      string
	Diets        []string // diet tags the recipe satisfies
	Allergens    []string
	Ingredients  []models.Ingredient
	Instructions []string
}

func ing(name string, qtyG, cal, protein, carbs, fats, cost float64) models.Ingredient {
	return models.Ingredient{
		IngredientID: ingredientID(name),
		Name:         name,
		QuantityG:    qtyG,
		Nutrition: models.Nutrition{
			Calories:       cal,
			ProteinG:       protein,
			CarbohydratesG: carbs,
			FatsG:          fats,
		},
		CostEur: cost,
	}
}

// recipeCatalog is the built-in recipe pool the generator draws from.
// Nutrition and cost are absolute for the listed quantity.
var recipeCatalog = []recipeTemplate{
	// breakfast
	{
		Name: "Overnight Oats with Berries", MealType: "breakfast", Cuisine: "International",
		Diets:     []string{"vegetarian"},
		Allergens: []string{"dairy", "gluten"},
		Ingredients: []models.Ingredient{
			ing("Rolled Oats", 80, 304, 10.6, 54.3, 5.5, 0.25),
			ing("Milk", 200, 122, 6.8, 9.6, 6.4, 0.22),
			ing("Mixed Berries", 100, 45, 0.9, 10.2, 0.4, 1.10),
			ing("Honey", 15, 46, 0, 12.4, 0, 0.18),
		},
		Instructions: []string{
			"Combine oats and milk in a jar.",
			"Refrigerate overnight.",
			"Top with berries and honey before serving.",
		},
	},
	{
		Name: "Veggie Omelette", MealType: "breakfast", Cuisine: "French",
		Diets:     []string{"vegetarian", "gluten_free"},
		Allergens: []string{"eggs"},
		Ingredients: []models.Ingredient{
			ing("Eggs", 150, 215, 18.9, 1.1, 14.9, 0.60),
			ing("Bell Pepper", 60, 19, 0.6, 3.6, 0.2, 0.35),
			ing("Onion", 40, 16, 0.4, 3.7, 0, 0.08),
			ing("Olive Oil", 10, 88, 0, 0, 10, 0.12),
		},
		Instructions: []string{
			"Whisk the eggs with a pinch of salt.",
			"Saute pepper and onion in olive oil.",
			"Pour in eggs and cook until set, then fold.",
		},
	},
	{
		Name: "Greek Yogurt Parfait", MealType: "breakfast", Cuisine: "Mediterranean",
		Diets:     []string{"vegetarian", "gluten_free"},
		Allergens: []string{"dairy", "nuts"},
		Ingredients: []models.Ingredient{
			ing("Greek Yogurt", 200, 178, 18.2, 7.8, 8.4, 0.95),
			ing("Walnuts", 25, 164, 3.8, 3.4, 16.3, 0.70),
			ing("Honey", 15, 46, 0, 12.4, 0, 0.18),
		},
		Instructions: []string{
			"Layer yogurt and walnuts in a glass.",
			"Drizzle with honey.",
		},
	},
	{
		Name: "Avocado Toast", MealType: "breakfast", Cuisine: "International",
		Diets:     []string{"vegetarian", "vegan"},
		Allergens: []string{"gluten"},
		Ingredients: []models.Ingredient{
			ing("Whole Grain Bread", 80, 198, 10.4, 33.5, 2.7, 0.35),
			ing("Avocado", 100, 160, 2, 8.5, 14.7, 0.90),
			ing("Cherry Tomatoes", 50, 9, 0.4, 2, 0.1, 0.45),
			ing("Olive Oil", 5, 44, 0, 0, 5, 0.06),
		},
		Instructions: []string{
			"Toast the bread.",
			"Mash avocado and spread over the slices.",
			"Top with halved tomatoes and a drizzle of oil.",
		},
	},
	// lunch
	{
		Name: "Grilled Chicken Salad", MealType: "lunch", Cuisine: "Mediterranean",
		Diets:     []string{"gluten_free"},
		Allergens: []string{},
		Ingredients: []models.Ingredient{
			ing("Chicken Breast", 150, 248, 46.5, 0, 5.4, 1.80),
			ing("Lettuce", 80, 12, 1.1, 2.3, 0.2, 0.40),
			ing("Cherry Tomatoes", 80, 14, 0.7, 3.1, 0.2, 0.72),
			ing("Cucumber", 80, 12, 0.5, 2.9, 0.1, 0.25),
			ing("Olive Oil", 15, 133, 0, 0, 15, 0.18),
		},
		Instructions: []string{
			"Season and grill the chicken, then slice.",
			"Toss vegetables with olive oil.",
			"Top the salad with the chicken.",
		},
	},
	{
		Name: "Chickpea Buddha Bowl", MealType: "lunch", Cuisine: "International",
		Diets:     []string{"vegetarian", "vegan", "gluten_free"},
		Allergens: []string{},
		Ingredients: []models.Ingredient{
			ing("Chickpeas", 150, 246, 13.3, 41, 3.9, 0.55),
			ing("Quinoa", 70, 257, 9.9, 45, 4.2, 0.65),
			ing("Spinach", 60, 14, 1.7, 2.2, 0.2, 0.50),
			ing("Carrot", 60, 25, 0.6, 5.8, 0.1, 0.10),
			ing("Tahini", 20, 119, 3.4, 4.2, 10.7, 0.45),
		},
		Instructions: []string{
			"Cook quinoa and let it cool slightly.",
			"Roast chickpeas until crisp.",
			"Assemble with spinach and carrot, dress with tahini.",
		},
	},
	{
		Name: "Tuna Pasta Salad", MealType: "lunch", Cuisine: "Italian",
		Diets:     []string{},
		Allergens: []string{"fish", "gluten"},
		Ingredients: []models.Ingredient{
			ing("Pasta", 100, 371, 13, 74.7, 1.5, 0.30),
			ing("Canned Tuna", 120, 139, 30.7, 0, 1.2, 1.50),
			ing("Cherry Tomatoes", 80, 14, 0.7, 3.1, 0.2, 0.72),
			ing("Olive Oil", 10, 88, 0, 0, 10, 0.12),
		},
		Instructions: []string{
			"Cook pasta and rinse under cold water.",
			"Flake the tuna and mix everything with olive oil.",
		},
	},
	{
		Name: "Lentil Soup", MealType: "lunch", Cuisine: "Mediterranean",
		Diets:     []string{"vegetarian", "vegan", "gluten_free"},
		Allergens: []string{},
		Ingredients: []models.Ingredient{
			ing("Red Lentils", 120, 424, 30.9, 72.1, 1.3, 0.50),
			ing("Carrot", 80, 33, 0.7, 7.7, 0.2, 0.13),
			ing("Onion", 60, 24, 0.7, 5.6, 0.1, 0.12),
			ing("Olive Oil", 10, 88, 0, 0, 10, 0.12),
			ing("Vegetable Stock", 400, 20, 0.8, 4, 0.1, 0.40),
		},
		Instructions: []string{
			"Soften onion and carrot in olive oil.",
			"Add lentils and stock, simmer 25 minutes.",
			"Blend partially and season.",
		},
	},
	{
		Name: "Caprese Sandwich", MealType: "lunch", Cuisine: "Italian",
		Diets:     []string{"vegetarian"},
		Allergens: []string{"gluten", "dairy"},
		Ingredients: []models.Ingredient{
			ing("Ciabatta Roll", 90, 245, 8.1, 47.3, 2.2, 0.55),
			ing("Mozzarella", 80, 240, 17.8, 1.8, 17.9, 1.10),
			ing("Tomato", 100, 18, 0.9, 3.9, 0.2, 0.50),
			ing("Basil", 5, 1, 0.2, 0.1, 0, 0.30),
			ing("Olive Oil", 10, 88, 0, 0, 10, 0.12),
		},
		Instructions: []string{
			"Split the roll and layer mozzarella, tomato and basil.",
			"Finish with olive oil and black pepper.",
		},
	},
	// dinner
	{
		Name: "Salmon with Roasted Vegetables", MealType: "dinner", Cuisine: "Mediterranean",
		Diets:     []string{"gluten_free"},
		Allergens: []string{"fish"},
		Ingredients: []models.Ingredient{
			ing("Salmon Fillet", 150, 312, 30.5, 0, 20.3, 3.30),
			ing("Zucchini", 120, 20, 1.5, 3.7, 0.4, 0.50),
			ing("Bell Pepper", 100, 31, 1, 6, 0.3, 0.58),
			ing("Potatoes", 200, 154, 4, 34.8, 0.2, 0.35),
			ing("Olive Oil", 15, 133, 0, 0, 15, 0.18),
		},
		Instructions: []string{
			"Toss vegetables with oil and roast at 200C for 25 minutes.",
			"Add the salmon for the last 12 minutes.",
		},
	},
	{
		Name: "Spaghetti Bolognese", MealType: "dinner", Cuisine: "Italian",
		Diets:     []string{},
		Allergens: []string{"gluten"},
		Ingredients: []models.Ingredient{
			ing("Spaghetti", 100, 371, 13, 74.7, 1.5, 0.30),
			ing("Ground Beef", 120, 305, 31.1, 0, 19.7, 1.90),
			ing("Tomato Sauce", 150, 44, 1.9, 9.9, 0.3, 0.65),
			ing("Onion", 50, 20, 0.6, 4.7, 0.1, 0.10),
			ing("Parmesan", 15, 59, 5.4, 0.5, 3.9, 0.45),
		},
		Instructions: []string{
			"Brown the beef with onion.",
			"Add tomato sauce and simmer 20 minutes.",
			"Serve over spaghetti with parmesan.",
		},
	},
	{
		Name: "Vegetable Stir-Fry with Tofu", MealType: "dinner", Cuisine: "Asian",
		Diets:     []string{"vegetarian", "vegan", "gluten_free"},
		Allergens: []string{"soy"},
		Ingredients: []models.Ingredient{
			ing("Tofu", 150, 114, 12.1, 2.9, 6.4, 1.20),
			ing("Broccoli", 120, 41, 3.4, 8, 0.4, 0.60),
			ing("Rice", 90, 328, 6.4, 71.9, 0.6, 0.25),
			ing("Soy Sauce", 15, 8, 1.2, 0.8, 0, 0.12),
			ing("Sesame Oil", 10, 88, 0, 0, 10, 0.20),
		},
		Instructions: []string{
			"Press and cube the tofu, then sear until golden.",
			"Stir-fry broccoli, add tofu and soy sauce.",
			"Serve over steamed rice.",
		},
	},
	{
		Name: "Chicken Curry with Rice", MealType: "dinner", Cuisine: "Asian",
		Diets:     []string{"gluten_free"},
		Allergens: []string{},
		Ingredients: []models.Ingredient{
			ing("Chicken Breast", 150, 248, 46.5, 0, 5.4, 1.80),
			ing("Coconut Milk", 100, 197, 2.1, 2.8, 21.3, 0.75),
			ing("Rice", 90, 328, 6.4, 71.9, 0.6, 0.25),
			ing("Curry Paste", 20, 35, 0.8, 4.5, 1.6, 0.40),
			ing("Onion", 50, 20, 0.6, 4.7, 0.1, 0.10),
		},
		Instructions: []string{
			"Fry curry paste with onion.",
			"Add chicken and coconut milk, simmer 15 minutes.",
			"Serve with rice.",
		},
	},
	{
		Name: "Margherita Pizza", MealType: "dinner", Cuisine: "Italian",
		Diets:     []string{"vegetarian"},
		Allergens: []string{"gluten", "dairy"},
		Ingredients: []models.Ingredient{
			ing("Pizza Dough", 200, 532, 17.2, 104.1, 4.6, 0.80),
			ing("Tomato Sauce", 100, 29, 1.3, 6.6, 0.2, 0.43),
			ing("Mozzarella", 100, 300, 22.2, 2.2, 22.4, 1.38),
			ing("Basil", 5, 1, 0.2, 0.1, 0, 0.30),
		},
		Instructions: []string{
			"Stretch the dough and spread the sauce.",
			"Top with mozzarella and bake at 250C for 10 minutes.",
			"Finish with fresh basil.",
		},
	},
	// snacks
	{
		Name: "Hummus with Carrot Sticks", MealType: "snack", Cuisine: "Mediterranean",
		Diets:     []string{"vegetarian", "vegan", "gluten_free"},
		Allergens: []string{},
		Ingredients: []models.Ingredient{
			ing("Hummus", 80, 133, 6.3, 11.4, 7.7, 0.75),
			ing("Carrot", 100, 41, 1, 9.6, 0.2, 0.17),
		},
		Instructions: []string{
			"Cut carrots into sticks and serve with hummus.",
		},
	},
	{
		Name: "Apple with Peanut Butter", MealType: "snack", Cuisine: "International",
		Diets:     []string{"vegetarian", "vegan", "gluten_free"},
		Allergens: []string{"peanuts"},
		Ingredients: []models.Ingredient{
			ing("Apple", 180, 94, 0.5, 24.9, 0.3, 0.40),
			ing("Peanut Butter", 30, 176, 7.5, 6.6, 15, 0.35),
		},
		Instructions: []string{
			"Slice the apple and dip in peanut butter.",
		},
	},
	{
		Name: "Greek Yogurt with Honey", MealType: "snack", Cuisine: "Mediterranean",
		Diets:     []string{"vegetarian", "gluten_free"},
		Allergens: []string{"dairy"},
		Ingredients: []models.Ingredient{
			ing("Greek Yogurt", 150, 133, 13.7, 5.9, 6.3, 0.71),
			ing("Honey", 15, 46, 0, 12.4, 0, 0.18),
		},
		Instructions: []string{
			"Spoon yogurt into a bowl and drizzle with honey.",
		},
	},
	{
		Name: "Trail Mix", MealType: "snack", Cuisine: "International",
		Diets:     []string{"vegetarian", "vegan", "gluten_free"},
		Allergens: []string{"nuts"},
		Ingredients: []models.Ingredient{
			ing("Almonds", 30, 174, 6.4, 6.5, 15, 0.55),
			ing("Raisins", 30, 90, 0.9, 23.7, 0.1, 0.25),
		},
		Instructions: []string{
			"Mix almonds and raisins.",
		},
	},
}

func normalizeTag(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.ReplaceAll(s, "-", "_")
	return strings.ReplaceAll(s, " ", "_")
}

// matchesProfile reports whether a recipe satisfies every dietary
// preference and avoids every allergen on the profile.
func (r recipeTemplate) matchesProfile(dietaryPrefs, allergens []string) bool {
	for _, pref := range dietaryPrefs {
		want := normalizeTag(pref)
		found := false
		for _, d := range r.Diets {
			if d == want {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	for _, a := range allergens {
		bad := normalizeTag(a)
		for _, ra := range r.Allergens {
			if ra == bad || (bad == "nuts" && ra == "peanuts") {
				return false
			}
		}
	}
	return true
}

func (r recipeTemplate) totalCost() float64 {
	var c float64
	for _, i := range r.Ingredients {
		c += i.CostEur
	}
	return c
}
