// Package filter computes the visible subset of locations for the current
// query and category toggles. The whole subset is recomputed on every call;
// at realistic dataset sizes this is cheaper than maintaining incremental
// diffs and removes an entire class of drift bugs between surfaces.
package filter

import (
	"strings"

	"tableflip.dev/fairmap/pkg/venue"
)

// State is the canonical filter input: the active category set plus the raw
// search query. The zero value means "everything visible".
type State struct {
	Active map[string]bool
	Query  string
}

// AllActive builds a state with every supplied category enabled.
func AllActive(categoryIDs []string) State {
	active := make(map[string]bool, len(categoryIDs))
	for _, id := range categoryIDs {
		active[id] = true
	}
	return State{Active: active}
}

// Clone returns an independent copy so surfaces can hold a snapshot without
// aliasing the live set.
func (s State) Clone() State {
	active := make(map[string]bool, len(s.Active))
	for id, on := range s.Active {
		active[id] = on
	}
	return State{Active: active, Query: s.Query}
}

// ActiveCount reports how many categories are currently enabled.
func (s State) ActiveCount() int {
	n := 0
	for _, on := range s.Active {
		if on {
			n++
		}
	}
	return n
}

// Apply returns the locations visible under the given state. A location is
// visible iff its category is active and, when the query is non-empty, the
// case-folded query is a substring of the precomputed search text. Plain
// substring match is a deliberate contract, not a placeholder for fuzzy
// search. The function is pure and keeps input order; callers sort for
// display. Debouncing keystrokes is the caller's job.
func Apply(locations []venue.Location, state State) []venue.Location {
	query := strings.ToLower(strings.TrimSpace(state.Query))
	visible := make([]venue.Location, 0, len(locations))
	for _, loc := range locations {
		if !state.Active[loc.CategoryID] {
			continue
		}
		if query != "" && !strings.Contains(loc.SearchText, query) {
			continue
		}
		visible = append(visible, loc)
	}
	return visible
}
