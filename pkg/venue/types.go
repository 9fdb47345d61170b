package venue

import "strings"

// UncategorizedID is the sentinel category assigned to locations that do not
// declare a resolvable category id.
const UncategorizedID = "uncategorized"

// Location is a normalized point of interest. Instances are created once at
// load time and never mutated afterwards; edits happen in the admin surface
// and arrive here as a full reload.
type Location struct {
	ID           string
	Name         string
	Description  string
	Address      string
	Booth        string
	Website      string
	Image        string
	Lat          float64
	Lng          float64
	CategoryID   string
	CategoryName string
	Color        string
	Featured     bool

	// SearchText is the lower-cased concatenation of the searchable fields,
	// computed once so substring matching never re-folds per keystroke.
	SearchText string
}

// Category is a normalized category with a live count. Count is always
// recomputed from the location list; the source document's value can drift.
type Category struct {
	ID    string
	Name  string
	Icon  string
	Color string
	Count int

	// Synthesized marks fallback categories generated for locations whose
	// declared category id had no entry in the source document.
	Synthesized bool
}

// MapConfig carries the map document block used to initialise the surface.
type MapConfig struct {
	Style   string     `json:"style"`
	Center  [2]float64 `json:"center"`
	Zoom    float64    `json:"zoom"`
	MaxZoom float64    `json:"maxZoom"`
}

// Document is the normalized result of a data source load.
type Document struct {
	Map        MapConfig
	Categories []Category
	Locations  []Location
}

func searchText(l Location) string {
	parts := []string{l.Name, l.Booth, l.Address, l.CategoryName, l.Description}
	joined := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		joined = append(joined, p)
	}
	return strings.ToLower(strings.Join(joined, " "))
}
