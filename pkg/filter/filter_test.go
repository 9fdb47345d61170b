package filter

import (
	"testing"

	"tableflip.dev/fairmap/pkg/venue"
)

func fixtures() []venue.Location {
	return []venue.Location{
		{ID: "a", Name: "Taco", CategoryID: "food", Lat: 1, Lng: 1, SearchText: "taco food"},
		{ID: "b", Name: "Grill", CategoryID: "food", Lat: 2, Lng: 2, SearchText: "grill food"},
		{ID: "c", Name: "Restroom North", CategoryID: "wc", Lat: 3, Lng: 3, SearchText: "restroom north amenities"},
	}
}

func TestApplyQueryMatch(t *testing.T) {
	locations := fixtures()
	state := AllActive([]string{"food", "wc"})
	state.Query = "taco"

	visible := Apply(locations, state)
	if len(visible) != 1 || visible[0].ID != "a" {
		t.Fatalf("expected only a, got %+v", visible)
	}
}

func TestApplyNoActiveCategories(t *testing.T) {
	locations := fixtures()
	visible := Apply(locations, State{Active: map[string]bool{}})
	if len(visible) != 0 {
		t.Fatalf("expected empty result, got %d", len(visible))
	}
}

func TestApplyCaseFoldsQuery(t *testing.T) {
	locations := fixtures()
	state := AllActive([]string{"food", "wc"})
	state.Query = "  TACO "

	visible := Apply(locations, state)
	if len(visible) != 1 || visible[0].ID != "a" {
		t.Fatalf("query should be trimmed and case-folded, got %+v", visible)
	}
}

func TestApplySubstringNotToken(t *testing.T) {
	locations := fixtures()
	state := AllActive([]string{"food", "wc"})
	state.Query = "room nor"

	visible := Apply(locations, state)
	if len(visible) != 1 || visible[0].ID != "c" {
		t.Fatalf("substring across token boundary should match, got %+v", visible)
	}
}

func TestApplyIdempotent(t *testing.T) {
	locations := fixtures()
	state := AllActive([]string{"food"})
	state.Query = "o"

	first := Apply(locations, state)
	second := Apply(locations, state)
	if len(first) != len(second) {
		t.Fatalf("apply not idempotent: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i].ID != second[i].ID {
			t.Fatalf("ordering unstable at %d: %s vs %s", i, first[i].ID, second[i].ID)
		}
	}
}

func TestApplyKeepsInputOrder(t *testing.T) {
	locations := fixtures()
	state := AllActive([]string{"food", "wc"})
	visible := Apply(locations, state)
	if len(visible) != 3 {
		t.Fatalf("expected all visible, got %d", len(visible))
	}
	for i, want := range []string{"a", "b", "c"} {
		if visible[i].ID != want {
			t.Fatalf("order changed at %d: got %s want %s", i, visible[i].ID, want)
		}
	}
}

func TestStateClone(t *testing.T) {
	state := AllActive([]string{"food"})
	clone := state.Clone()
	clone.Active["food"] = false
	if !state.Active["food"] {
		t.Fatalf("clone aliases the original active set")
	}
	if state.ActiveCount() != 1 || clone.ActiveCount() != 0 {
		t.Fatalf("unexpected active counts: %d %d", state.ActiveCount(), clone.ActiveCount())
	}
}
