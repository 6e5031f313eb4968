package models

import "slices"

// Listing price bounds enforced when an item is created.
const (
	MinPointsRequired = 10
	MaxPointsRequired = 200
)

// Categories is the fixed category catalog.
var Categories = []string{
	"Outerwear",
	"Dresses",
	"Tops",
	"Bottoms",
	"Formal Wear",
	"Casual Wear",
	"Footwear",
	"Accessories",
	"Activewear",
	"Sleepwear",
}

// Sizes is the garment size catalog.
var Sizes = []string{"XS", "S", "M", "L", "XL", "XXL", "One Size"}

// ShoeSizes are additionally accepted for Footwear.
var ShoeSizes = []string{"5", "6", "7", "8", "9", "10", "11", "12", "13"}

// Conditions, best first.
var Conditions = []string{"Like New", "Excellent", "Very Good", "Good", "Fair"}

// ItemTypes lists the types allowed within each category.
var ItemTypes = map[string][]string{
	"Outerwear":   {"Jacket", "Coat", "Blazer", "Cardigan", "Hoodie"},
	"Dresses":     {"Casual Dress", "Formal Dress", "Maxi Dress", "Mini Dress", "Cocktail Dress"},
	"Tops":        {"T-Shirt", "Blouse", "Tank Top", "Sweater", "Shirt"},
	"Bottoms":     {"Jeans", "Pants", "Shorts", "Skirt", "Leggings"},
	"Formal Wear": {"Suit", "Blazer", "Dress Shirt", "Formal Dress", "Tuxedo"},
	"Casual Wear": {"T-Shirt", "Jeans", "Casual Dress", "Hoodie", "Sweatpants"},
	"Footwear":    {"Sneakers", "Boots", "Heels", "Sandals", "Flats"},
	"Accessories": {"Bag", "Scarf", "Hat", "Jewelry", "Belt"},
	"Activewear":  {"Yoga Pants", "Sports Bra", "Athletic Shorts", "Running Shirt", "Gym Wear"},
	"Sleepwear":   {"Pajamas", "Nightgown", "Robe", "Sleep Shirt", "Loungewear"},
}

// IsValidCategory reports whether c is in the category catalog.
func IsValidCategory(c string) bool {
	return slices.Contains(Categories, c)
}

// IsValidCondition reports whether c is in the condition catalog.
func IsValidCondition(c string) bool {
	return slices.Contains(Conditions, c)
}

// IsValidSize reports whether s is a catalog size, or a shoe size when
// category is Footwear. An empty category only accepts catalog sizes.
func IsValidSize(category, s string) bool {
	if slices.Contains(Sizes, s) {
		return true
	}
	return category == "Footwear" && slices.Contains(ShoeSizes, s)
}

// IsValidType reports whether t belongs to category.
func IsValidType(category, t string) bool {
	return slices.Contains(ItemTypes[category], t)
}

// ConditionRank orders conditions from Fair (0) to Like New (4); unknown
// conditions rank -1.
func ConditionRank(c string) int {
	i := slices.Index(Conditions, c)
	if i < 0 {
		return -1
	}
	return len(Conditions) - 1 - i
}
