package menu

import "strings"

// DinnerType is a dinner offering from the catalog: a named bundle of menu
// items sold at a base price which the serving style then scales.
type DinnerType struct {
	ID          int64
	Name        string
	NameEn      string
	Description string
	BasePrice   int
}

// RequiresUpgradedStyle reports whether the dinner can only be ordered in an
// upgraded serving style. Champagne-based dinners cannot be served simple.
func (d DinnerType) RequiresUpgradedStyle() bool {
	return strings.Contains(d.Name, "샴페인") ||
		strings.Contains(strings.ToLower(d.NameEn), "champagne")
}

// PriceFor returns the dinner price in the given serving style.
func (d DinnerType) PriceFor(style ServingStyle) int {
	return int(float64(d.BasePrice) * style.Multiplier())
}

// MenuItem is a single stockable item: an ingredient, a dish component or a
// beverage that dinners are composed of and that customers can add or remove.
type MenuItem struct {
	ID       int64
	Name     string
	NameEn   string
	Category string
	Price    int
}

// alcoholCategories lists the category keywords that mark an item as an
// alcoholic or fresh beverage. Reservations for these never get an expiry.
var alcoholCategories = []string{"alcohol", "wine", "beer", "drink", "주류", "음료"}

// IsAlcohol reports whether the item belongs to an alcohol or beverage
// category.
func (m MenuItem) IsAlcohol() bool {
	category := strings.ToLower(m.Category)
	for _, keyword := range alcoholCategories {
		if strings.Contains(category, keyword) {
			return true
		}
	}
	return false
}

// BundleItem binds a menu item into a dinner type with its default quantity.
type BundleItem struct {
	DinnerTypeID int64
	MenuItemID   int64
	Quantity     int
}
