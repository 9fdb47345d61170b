// Package engine owns the canonical location/category/filter/selection state.
// Every surface reads consistent snapshots from here and every mutation comes
// back through here; no view holds a writable copy. The engine is not
// goroutine-safe by design: it lives on the UI update loop, where handlers
// run to completion, so invariants hold by construction within one event.
package engine

import (
	"tableflip.dev/fairmap/pkg/category"
	"tableflip.dev/fairmap/pkg/filter"
	"tableflip.dev/fairmap/pkg/venue"
)

// Snapshot is one consistent view of the engine state. Surfaces render from a
// snapshot and nothing else, so two surfaces can never disagree about which
// generation they are showing.
type Snapshot struct {
	Visible    []venue.Location
	Filter     filter.State
	SelectedID string
	// Generation increments whenever the visible set changes. Async cluster
	// work captures it and discards results computed for older generations.
	Generation uint64
	// SelectionCleared is set when the last mutation forced the selection
	// back to idle because the selected location left the visible set.
	SelectionCleared bool
}

// Engine is the single writer for filter and selection state.
type Engine struct {
	locations []venue.Location
	index     *category.Index

	state      filter.State
	visible    []venue.Location
	selectedID string
	generation uint64

	selectionCleared bool
}

// New builds an engine over a normalized document. All categories start
// active and nothing is selected.
func New(doc venue.Document) *Engine {
	idx := category.NewIndex(doc.Categories)
	e := &Engine{
		locations: doc.Locations,
		index:     idx,
		state:     filter.AllActive(idx.IDs()),
	}
	e.visible = filter.Apply(e.locations, e.state)
	e.generation = 1
	return e
}

// Index exposes the category index for tree surfaces.
func (e *Engine) Index() *category.Index { return e.index }

// Locations returns the full normalized location list.
func (e *Engine) Locations() []venue.Location { return e.locations }

// Snapshot returns the current consistent state.
func (e *Engine) Snapshot() Snapshot {
	visible := make([]venue.Location, len(e.visible))
	copy(visible, e.visible)
	return Snapshot{
		Visible:          visible,
		Filter:           e.state.Clone(),
		SelectedID:       e.selectedID,
		Generation:       e.generation,
		SelectionCleared: e.selectionCleared,
	}
}

// SetQuery applies a new search query and recomputes visibility.
func (e *Engine) SetQuery(query string) Snapshot {
	e.state.Query = query
	return e.recompute()
}

// Query returns the raw query string.
func (e *Engine) Query() string { return e.state.Query }

// ToggleCategory flips one category's active flag.
func (e *Engine) ToggleCategory(id string) Snapshot {
	if _, ok := e.index.Get(id); !ok {
		return e.Snapshot()
	}
	e.state.Active[id] = !e.state.Active[id]
	return e.recompute()
}

// SetAllCategories enables or disables every known category at once.
func (e *Engine) SetAllCategories(on bool) Snapshot {
	for _, id := range e.index.IDs() {
		e.state.Active[id] = on
	}
	return e.recompute()
}

// SetActiveCategories replaces the active set outright.
func (e *Engine) SetActiveCategories(ids []string) Snapshot {
	next := make(map[string]bool, e.index.Len())
	for _, id := range e.index.IDs() {
		next[id] = false
	}
	for _, id := range ids {
		if _, ok := next[id]; ok {
			next[id] = true
		}
	}
	e.state.Active = next
	return e.recompute()
}

// Select focuses a location by id. Every entry point (map click, list pick,
// deep link) funnels through here so the visibility invariant is enforced
// uniformly: ids outside the current visible set are rejected.
func (e *Engine) Select(id string) (venue.Location, bool) {
	for _, loc := range e.visible {
		if loc.ID == id {
			e.selectedID = id
			e.selectionCleared = false
			return loc, true
		}
	}
	return venue.Location{}, false
}

// Selected returns the focused location, if any.
func (e *Engine) Selected() (venue.Location, bool) {
	if e.selectedID == "" {
		return venue.Location{}, false
	}
	for _, loc := range e.visible {
		if loc.ID == e.selectedID {
			return loc, true
		}
	}
	return venue.Location{}, false
}

// ClearSelection returns the controller to idle.
func (e *Engine) ClearSelection() {
	e.selectedID = ""
	e.selectionCleared = false
}

// recompute rebuilds the visible set wholesale, bumps the generation when the
// content changed, and enforces the selection invariant: a selected location
// that is no longer visible clears the selection.
func (e *Engine) recompute() Snapshot {
	next := filter.Apply(e.locations, e.state)
	if !sameLocations(e.visible, next) {
		e.generation++
	}
	e.visible = next

	e.selectionCleared = false
	if e.selectedID != "" {
		if _, stillVisible := e.Selected(); !stillVisible {
			e.selectedID = ""
			e.selectionCleared = true
		}
	}
	return e.Snapshot()
}

func sameLocations(a, b []venue.Location) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i].ID != b[i].ID {
			return false
		}
	}
	return true
}
