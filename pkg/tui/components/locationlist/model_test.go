package locationlist

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea/v2"

	"tableflip.dev/fairmap/pkg/tui/events"
	"tableflip.dev/fairmap/pkg/venue"
)

func fixtures() []venue.Location {
	return []venue.Location{
		{ID: "b", Name: "Juice Bar", CategoryID: "drink", Color: "#3333cc"},
		{ID: "a", Name: "Taco Stand", CategoryID: "food", Color: "#cc3333", Featured: true, Booth: "B12"},
		{ID: "c", Name: "Burrito Cart", CategoryID: "food", Color: "#cc3333"},
	}
}

func TestFeaturedSortFirst(t *testing.T) {
	m := New("")
	m.SetSize(40, 10)
	m.SetLocations(fixtures(), "")

	if m.locations[0].ID != "a" {
		t.Fatalf("first = %s, want featured a", m.locations[0].ID)
	}
	if m.locations[1].ID != "c" || m.locations[2].ID != "b" {
		t.Fatalf("rest not alphabetical: %s, %s", m.locations[1].ID, m.locations[2].ID)
	}
}

func TestEnterEmitsSelect(t *testing.T) {
	m := New("list")
	m.SetSize(40, 10)
	m.SetLocations(fixtures(), "")
	m.Focus()

	m.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	_, cmd := m.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("enter emitted no command")
	}
	msg, ok := cmd().(events.LocationSelectMsg)
	if !ok {
		t.Fatalf("got %T, want LocationSelectMsg", cmd())
	}
	if msg.Location.ID != "c" {
		t.Fatalf("selected %s, want c", msg.Location.ID)
	}
	if msg.Component != events.ComponentID("list") {
		t.Fatalf("component = %s", msg.Component)
	}
}

func TestCursorFollowsSelection(t *testing.T) {
	m := New("")
	m.SetSize(40, 10)
	m.SetLocations(fixtures(), "b")

	if loc := m.currentLocation(); loc == nil || loc.ID != "b" {
		t.Fatalf("cursor not on selected location: %+v", loc)
	}
}

func TestEmptyState(t *testing.T) {
	m := New("")
	m.SetSize(40, 10)
	m.SetLocations(nil, "")

	if view := m.View(); !strings.Contains(view, "No vendors match") {
		t.Fatalf("empty view = %q", view)
	}
}
