package services

import (
	"fmt"
	"strings"

	"github.com/petrepopa00/gurmaio/models"
)

const shareSeparator = "━━━━━━━━━━━━━━━━━━━━━"

// ShoppingListShareText renders the list into the plain-text share format:
// header, separator, numbered name/quantity/price blocks, totals footer.
// With onlyUnowned, items the user already owns are skipped; deleted items
// never appear.
func ShoppingListShareText(list *models.ShoppingList, onlyUnowned bool) string {
	items := visibleItems(list, onlyUnowned)

	var b strings.Builder
	b.WriteString("🛒 Shopping List - Gurmaio\n")
	b.WriteString(shareSeparator + "\n\n")

	var totalCost float64
	for i, item := range items {
		if i > 0 {
			b.WriteString("\n\n")
		}
		fmt.Fprintf(&b, "%d. %s\n   %.0f%s • €%.2f",
			i+1, item.DisplayName, item.TotalQuantity, item.Unit, item.EstimatedPriceEur)
		totalCost += item.EstimatedPriceEur
	}

	fmt.Fprintf(&b, "\n\n%s\nTotal: €%.2f\nItems: %d", shareSeparator, totalCost, len(items))
	return b.String()
}

// exportCategories fixes the section order of the document export.
var exportCategories = []string{
	"Produce",
	"Meat & Seafood",
	"Dairy & Eggs",
	"Grains & Pasta",
	"Pantry",
	"Other",
}

var categoryKeywords = map[string][]string{
	"Produce": {"tomat", "onion", "garlic", "pepper", "lettuce", "carrot",
		"cucumber", "spinach", "mushroom", "avocado", "zucchini", "broccoli",
		"apple", "banana", "berr", "basil"},
	"Meat & Seafood": {"chicken", "beef", "pork", "fish", "salmon", "shrimp",
		"meat", "turkey", "tuna"},
	"Dairy & Eggs": {"milk", "cheese", "yogurt", "butter", "cream", "egg",
		"mozzarella", "parmesan"},
	"Grains & Pasta": {"rice", "pasta", "bread", "flour", "oat", "quinoa",
		"spaghetti", "dough", "ciabatta"},
	"Pantry": {"oil", "salt", "spice", "sauce", "vinegar", "sugar", "honey",
		"stock", "paste", "tahini", "hummus"},
}

func categorize(displayName string) string {
	name := strings.ToLower(displayName)
	for _, cat := range exportCategories {
		for _, kw := range categoryKeywords[cat] {
			if strings.Contains(name, kw) {
				return cat
			}
		}
	}
	return "Other"
}

// ExportSection is one category bucket of the document export.
type ExportSection struct {
	Category    string                    `json:"category"`
	Items       []models.ShoppingListItem `json:"items"`
	SubtotalEur float64                   `json:"subtotal_eur"`
}

// GroupShoppingListItems buckets visible items into the naive keyword
// categories, keeping the fixed category order and dropping empty buckets.
func GroupShoppingListItems(list *models.ShoppingList, onlyUnowned bool) []ExportSection {
	buckets := make(map[string][]models.ShoppingListItem)
	for _, item := range visibleItems(list, onlyUnowned) {
		cat := categorize(item.DisplayName)
		buckets[cat] = append(buckets[cat], item)
	}

	sections := make([]ExportSection, 0, len(buckets))
	for _, cat := range exportCategories {
		items := buckets[cat]
		if len(items) == 0 {
			continue
		}
		var subtotal float64
		for _, item := range items {
			subtotal += item.EstimatedPriceEur
		}
		sections = append(sections, ExportSection{
			Category:    cat,
			Items:       items,
			SubtotalEur: round2(subtotal),
		})
	}
	return sections
}

// ShoppingListDocumentText renders the grouped export as paginated-style
// plain text with per-category subtotals and a grand total. The delivery
// format (PDF etc.) is the client's concern.
func ShoppingListDocumentText(list *models.ShoppingList, onlyUnowned bool) string {
	sections := GroupShoppingListItems(list, onlyUnowned)

	var b strings.Builder
	b.WriteString("Gurmaio - Your Shopping List\n")
	fmt.Fprintf(&b, "Generated %s\n", list.GeneratedAt.Format("2006-01-02"))
	b.WriteString(shareSeparator + "\n")

	var grand float64
	var count int
	for _, sec := range sections {
		fmt.Fprintf(&b, "\n%s\n", sec.Category)
		for _, item := range sec.Items {
			fmt.Fprintf(&b, "  [ ] %s - %.0f%s • €%.2f\n",
				item.DisplayName, item.TotalQuantity, item.Unit, item.EstimatedPriceEur)
		}
		fmt.Fprintf(&b, "  Subtotal: €%.2f\n", sec.SubtotalEur)
		grand += sec.SubtotalEur
		count += len(sec.Items)
	}

	fmt.Fprintf(&b, "\n%s\nItems: %d\nTotal: €%.2f\n", shareSeparator, count, grand)
	fmt.Fprintf(&b, "Plan cost: €%.2f • Waste cost: €%.2f\n",
		list.Summary.PlanCostEur, list.Summary.WasteCostEur)
	return b.String()
}

func visibleItems(list *models.ShoppingList, onlyUnowned bool) []models.ShoppingListItem {
	items := make([]models.ShoppingListItem, 0, len(list.Items))
	for _, item := range list.Items {
		if item.Deleted {
			continue
		}
		if onlyUnowned && item.Owned {
			continue
		}
		items = append(items, item)
	}
	return items
}
