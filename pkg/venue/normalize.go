package venue

import (
	"encoding/json"
	"math"
	"sort"
	"strconv"
	"strings"
)

// RawDocument mirrors the backend snapshot before any validation. Field types
// are deliberately loose; the admin surface has historically produced string
// coordinates, missing colors and categories that exist only as references.
type RawDocument struct {
	Map        MapConfig     `json:"map"`
	Categories []RawCategory `json:"categories"`
	Locations  []RawLocation `json:"locations"`
}

// RawCategory is a category record as found in the source document.
type RawCategory struct {
	ID    any    `json:"id"`
	Name  string `json:"name"`
	Icon  string `json:"icon"`
	Color string `json:"color"`
	Count any    `json:"count"` // ignored, recomputed
}

// RawLocation is a location record as found in the source document.
type RawLocation struct {
	ID           any    `json:"id"`
	Name         string `json:"name"`
	Description  string `json:"description"`
	Address      string `json:"address"`
	Booth        string `json:"booth"`
	Website      string `json:"website"`
	Image        string `json:"image"`
	Lat          any    `json:"lat"`
	Lng          any    `json:"lng"`
	CategoryID   any    `json:"categoryId"`
	Category     any    `json:"category"` // legacy field
	CategoryName string `json:"categoryName"`
	Color        string `json:"color"`
	Featured     bool   `json:"featured"`
}

// ParseDocument decodes and normalizes a raw JSON snapshot in one step.
func ParseDocument(data []byte) (Document, error) {
	var raw RawDocument
	if err := json.Unmarshal(data, &raw); err != nil {
		return Document{}, err
	}
	return Normalize(raw), nil
}

// Normalize converts a raw snapshot into the strict internal model. It is
// pure: no i/o, no shared state, same input yields the same output.
//
// Locations failing the finite lat/lng check are dropped. Every surviving
// location resolves to exactly one category: unknown category ids synthesize
// a fallback entry, and category counts are recomputed from the final
// location list. Categories that end up with zero locations are dropped.
func Normalize(raw RawDocument) Document {
	byID := make(map[string]*Category, len(raw.Categories))
	order := make([]string, 0, len(raw.Categories))
	for _, rc := range raw.Categories {
		id := coerceString(rc.ID)
		if id == "" {
			continue
		}
		if _, ok := byID[id]; ok {
			continue
		}
		name := strings.TrimSpace(rc.Name)
		if name == "" {
			name = id
		}
		byID[id] = &Category{
			ID:    id,
			Name:  name,
			Icon:  rc.Icon,
			Color: CanonicalColor(rc.Color),
		}
		order = append(order, id)
	}

	locations := make([]Location, 0, len(raw.Locations))
	for _, rl := range raw.Locations {
		lat, okLat := coerceFloat(rl.Lat)
		lng, okLng := coerceFloat(rl.Lng)
		if !okLat || !okLng {
			continue
		}
		catID := coerceString(rl.CategoryID)
		if catID == "" {
			catID = coerceString(rl.Category)
		}
		if catID == "" {
			catID = UncategorizedID
		}
		loc := Location{
			ID:           coerceString(rl.ID),
			Name:         strings.TrimSpace(rl.Name),
			Description:  strings.TrimSpace(rl.Description),
			Address:      strings.TrimSpace(rl.Address),
			Booth:        strings.TrimSpace(rl.Booth),
			Website:      strings.TrimSpace(rl.Website),
			Image:        strings.TrimSpace(rl.Image),
			Lat:          lat,
			Lng:          lng,
			CategoryID:   catID,
			CategoryName: strings.TrimSpace(rl.CategoryName),
			Featured:     rl.Featured,
		}
		if cat, ok := byID[catID]; ok {
			if loc.CategoryName == "" {
				loc.CategoryName = cat.Name
			}
			loc.Color = cat.Color
		}
		if rl.Color != "" {
			loc.Color = CanonicalColor(rl.Color)
		}
		if loc.Color == "" {
			loc.Color = NeutralColor
		}
		loc.SearchText = searchText(loc)
		locations = append(locations, loc)
	}

	// Synthesize fallback categories for ids only seen on locations.
	for i := range locations {
		loc := &locations[i]
		if _, ok := byID[loc.CategoryID]; ok {
			continue
		}
		name := loc.CategoryName
		if name == "" {
			name = displayName(loc.CategoryID)
		}
		color := loc.Color
		if color == "" || color == NeutralColor {
			color = FallbackColor(loc.CategoryID)
		}
		byID[loc.CategoryID] = &Category{
			ID:          loc.CategoryID,
			Name:        name,
			Color:       color,
			Synthesized: true,
		}
		order = append(order, loc.CategoryID)
	}
	for i := range locations {
		loc := &locations[i]
		cat := byID[loc.CategoryID]
		cat.Count++
		if loc.CategoryName == "" {
			loc.CategoryName = cat.Name
			loc.SearchText = searchText(*loc)
		}
	}

	categories := make([]Category, 0, len(order))
	for _, id := range order {
		cat := byID[id]
		if cat.Count == 0 {
			continue
		}
		categories = append(categories, *cat)
	}

	return Document{Map: raw.Map, Categories: categories, Locations: locations}
}

// displayName turns a slug-like id into something presentable.
func displayName(id string) string {
	cleaned := strings.NewReplacer("-", " ", "_", " ").Replace(id)
	words := strings.Fields(cleaned)
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	if len(words) == 0 {
		return id
	}
	return strings.Join(words, " ")
}

func coerceString(v any) string {
	switch t := v.(type) {
	case string:
		return strings.TrimSpace(t)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case json.Number:
		return t.String()
	case int:
		return strconv.Itoa(t)
	default:
		return ""
	}
}

func coerceFloat(v any) (float64, bool) {
	var f float64
	switch t := v.(type) {
	case float64:
		f = t
	case json.Number:
		parsed, err := t.Float64()
		if err != nil {
			return 0, false
		}
		f = parsed
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
		if err != nil {
			return 0, false
		}
		f = parsed
	case int:
		f = float64(t)
	default:
		return 0, false
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// SortForList orders locations the way the list surfaces display them:
// featured entries first, then alphabetical by name.
func SortForList(locations []Location) {
	sort.SliceStable(locations, func(i, j int) bool {
		if locations[i].Featured != locations[j].Featured {
			return locations[i].Featured
		}
		return strings.ToLower(locations[i].Name) < strings.ToLower(locations[j].Name)
	})
}
