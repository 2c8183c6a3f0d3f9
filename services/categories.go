package services

import "strings"

// FoodCategories is the category set suggestions are normalized to.
var FoodCategories = []string{
	"Fruits",
	"Vegetables",
	"Protein",
	"Dairy",
	"Grains",
	"Prepared Meals",
	"Snacks",
	"Beverages",
	"Other",
}

const categoryOther = "Other"

// NormalizeCategory maps free text onto FoodCategories, case-insensitively.
// Anything unrecognised becomes "Other".
func NormalizeCategory(raw string) string {
	s := strings.Join(strings.Fields(raw), " ")
	for _, c := range FoodCategories {
		if strings.EqualFold(c, s) {
			return c
		}
	}
	return categoryOther
}
