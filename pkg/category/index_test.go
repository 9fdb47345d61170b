package category

import (
	"testing"

	"tableflip.dev/fairmap/pkg/venue"
)

func TestGroupOfIsTotal(t *testing.T) {
	cases := map[string]string{
		"Food Trucks":    GroupFoodDrink,
		"Craft Beer":     GroupFoodDrink,
		"Restrooms":      GroupAmenities,
		"First Aid":      GroupAmenities,
		"Main Stage":     GroupEntertainment,
		"Kids' Zone":     GroupEntertainment,
		"Gift Shop":      GroupShopping,
		"Merch!":         GroupShopping,
		"Mystery":        GroupOther,
		"":               GroupOther,
		"Unicode Ünits":  GroupOther,
		"coffee & tea":   GroupFoodDrink,
		"INFO (BOOTH 3)": GroupAmenities,
	}
	for name, want := range cases {
		if got := GroupOf(name); got != want {
			t.Fatalf("GroupOf(%q) = %q, want %q", name, got, want)
		}
	}
}

func TestGroupedIsAPartition(t *testing.T) {
	cats := []venue.Category{
		{ID: "food", Name: "Food Trucks", Count: 3},
		{ID: "wc", Name: "Restrooms", Count: 2},
		{ID: "stage", Name: "Main Stage", Count: 1},
		{ID: "misc", Name: "Mystery", Count: 4},
		{ID: "shop", Name: "Gift Shop", Count: 5},
	}
	idx := NewIndex(cats)

	seen := make(map[string]string)
	total := 0
	for _, group := range idx.Grouped() {
		for _, c := range group.Categories {
			if prev, dup := seen[c.ID]; dup {
				t.Fatalf("category %q in both %q and %q", c.ID, prev, group.Name)
			}
			seen[c.ID] = group.Name
			total++
		}
	}
	if total != len(cats) {
		t.Fatalf("partition covers %d categories, want %d", total, len(cats))
	}
	for _, c := range cats {
		if _, ok := seen[c.ID]; !ok {
			t.Fatalf("category %q missing from partition", c.ID)
		}
	}
}

func TestGroupedOrderAndCounts(t *testing.T) {
	idx := NewIndex([]venue.Category{
		{ID: "misc", Name: "Mystery", Count: 4},
		{ID: "beer", Name: "Craft Beer", Count: 2},
		{ID: "food", Name: "Food Trucks", Count: 3},
	})
	groups := idx.Grouped()
	if len(groups) != 2 {
		t.Fatalf("expected 2 groups, got %d", len(groups))
	}
	if groups[0].Name != GroupFoodDrink {
		t.Fatalf("expected %q first, got %q", GroupFoodDrink, groups[0].Name)
	}
	if groups[0].Count() != 5 {
		t.Fatalf("expected food group count 5, got %d", groups[0].Count())
	}
	if groups[0].Categories[0].ID != "beer" {
		t.Fatalf("expected document order inside group, got %q first", groups[0].Categories[0].ID)
	}
}

func TestIndexLookup(t *testing.T) {
	idx := NewIndex([]venue.Category{
		{ID: "food", Name: "Food"},
		{ID: "food", Name: "Duplicate"},
		{ID: "wc", Name: "Restrooms"},
	})
	if idx.Len() != 2 {
		t.Fatalf("duplicate ids should collapse, got %d", idx.Len())
	}
	c, ok := idx.Get("food")
	if !ok || c.Name != "Food" {
		t.Fatalf("first occurrence should win: %+v ok=%v", c, ok)
	}
	if _, ok := idx.Get("ghost"); ok {
		t.Fatalf("unknown id should miss")
	}
}
