package category

import "strings"

// Group names, in display order.
const (
	GroupFoodDrink     = "Food & Drink"
	GroupAmenities     = "Amenities"
	GroupEntertainment = "Entertainment"
	GroupShopping      = "Shopping"
	GroupOther         = "Other"
)

// groupKeywords maps each group to the tokens that claim a category name.
// Order matters: the first group with a matching token wins.
var groupKeywords = []struct {
	name   string
	tokens []string
}{
	{GroupFoodDrink, []string{
		"food", "drink", "beverage", "cafe", "coffee", "tea", "bar", "beer",
		"wine", "restaurant", "snack", "bakery", "dessert", "taco", "grill",
		"bbq", "juice", "eat",
	}},
	{GroupAmenities, []string{
		"restroom", "toilet", "wc", "info", "information", "first aid",
		"medical", "atm", "parking", "entrance", "exit", "charging",
		"lost", "water", "fountain", "seating", "service",
	}},
	{GroupEntertainment, []string{
		"stage", "music", "show", "performance", "game", "ride", "kids",
		"play", "art", "craft", "workshop", "theater", "theatre", "dance",
	}},
	{GroupShopping, []string{
		"shop", "store", "vendor", "market", "merch", "retail", "gift",
		"clothing", "jewelry", "boutique",
	}},
}

// GroupOf classifies a category display name into exactly one group. The
// match is token-based over the lower-cased, punctuation-stripped name;
// anything unclaimed lands in GroupOther, so the function is total.
func GroupOf(name string) string {
	folded := foldName(name)
	for _, g := range groupKeywords {
		for _, token := range g.tokens {
			if strings.Contains(folded, token) {
				return g.name
			}
		}
	}
	return GroupOther
}

// GroupNames returns every group name in display order.
func GroupNames() []string {
	names := make([]string, 0, len(groupKeywords)+1)
	for _, g := range groupKeywords {
		names = append(names, g.name)
	}
	return append(names, GroupOther)
}

func groupRank(name string) int {
	for i, g := range groupKeywords {
		if g.name == name {
			return i
		}
	}
	return len(groupKeywords)
}

func foldName(name string) string {
	var b strings.Builder
	b.Grow(len(name))
	for _, r := range strings.ToLower(name) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == ' ':
			b.WriteRune(r)
		default:
			b.WriteRune(' ')
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}
