package app

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea/v2"

	"tableflip.dev/fairmap/pkg/engine"
	"tableflip.dev/fairmap/pkg/mapsurface"
	"tableflip.dev/fairmap/pkg/mapsurface/gridmap"
	"tableflip.dev/fairmap/pkg/tui/events"
	"tableflip.dev/fairmap/pkg/venue"
)

func testDocument() venue.Document {
	return venue.Document{
		Categories: []venue.Category{
			{ID: "food", Name: "Food", Color: "#cc3333", Count: 2},
			{ID: "drink", Name: "Drink", Color: "#3333cc", Count: 1},
		},
		Locations: []venue.Location{
			{ID: "a", Name: "Taco Stand", Lng: -122.41, Lat: 37.77,
				CategoryID: "food", CategoryName: "Food", Color: "#cc3333",
				SearchText: "taco stand food"},
			{ID: "b", Name: "Juice Bar", Lng: -121.40, Lat: 37.30,
				CategoryID: "drink", CategoryName: "Drink", Color: "#3333cc",
				SearchText: "juice bar drink"},
			{ID: "c", Name: "Burrito Cart", Lng: -120.55, Lat: 38.10,
				CategoryID: "food", CategoryName: "Food", Color: "#cc3333",
				SearchText: "burrito cart food"},
		},
		Map: venue.MapConfig{
			Style:   "streets",
			Center:  [2]float64{-121.5, 37.7},
			Zoom:    12,
			MaxZoom: 20,
		},
	}
}

func newTestModel(t *testing.T) *Model {
	t.Helper()
	doc := testDocument()
	surface := gridmap.New()
	surface.Configure(doc.Map)
	m := New(engine.New(doc), surface, Options{})
	m.Init()
	m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	return m
}

func leafCount(features []mapsurface.Feature) int {
	n := 0
	for _, f := range features {
		if !f.Cluster {
			n++
		}
	}
	return n
}

func TestInitPushesDataToSurface(t *testing.T) {
	m := newTestModel(t)

	if got := leafCount(m.surface.Rendered()); got != 3 {
		t.Fatalf("rendered leaves = %d, want 3", got)
	}
}

func TestDebounceAppliesOnlyNewestQuery(t *testing.T) {
	m := newTestModel(t)

	m.Update(events.SearchChangeMsg{Value: "ta"})
	m.Update(events.SearchChangeMsg{Value: "taco"})

	m.Update(searchDebounceMsg{seq: 1})
	if got := m.engine.Query(); got != "" {
		t.Fatalf("stale timer applied query %q", got)
	}

	m.Update(searchDebounceMsg{seq: 2})
	if got := m.engine.Query(); got != "taco" {
		t.Fatalf("query = %q, want %q", got, "taco")
	}
	snap := m.engine.Snapshot()
	if len(snap.Visible) != 1 || snap.Visible[0].ID != "a" {
		t.Fatalf("visible = %+v, want just a", snap.Visible)
	}
}

func TestCategoryToggleKeepsSurfacesConsistent(t *testing.T) {
	m := newTestModel(t)

	m.Update(events.CategoryToggleMsg{CategoryID: "food"})

	snap := m.engine.Snapshot()
	if len(snap.Visible) != 1 || snap.Visible[0].ID != "b" {
		t.Fatalf("visible = %+v, want just b", snap.Visible)
	}
	if got := leafCount(m.surface.Rendered()); got != len(snap.Visible) {
		t.Fatalf("surface leaves = %d, engine visible = %d", got, len(snap.Visible))
	}
}

func TestSelectionClearedWhenCategoryHidden(t *testing.T) {
	m := newTestModel(t)

	m.Update(events.LocationSelectMsg{Location: events.LocationRef{ID: "a"}})
	if !m.detail.Visible() {
		t.Fatal("detail hidden after select")
	}
	if !m.surface.FeatureState("a").Selected {
		t.Fatal("surface missing selected state after select")
	}

	m.Update(events.CategoryToggleMsg{CategoryID: "food"})

	if m.detail.Visible() {
		t.Fatal("detail still visible after its location was filtered out")
	}
	if _, ok := m.engine.Selected(); ok {
		t.Fatal("engine still has a selection after its location was filtered out")
	}
	if m.surface.FeatureState("a").Selected {
		t.Fatal("surface kept selected state after its location was filtered out")
	}
}

func TestSelectRejectsHiddenLocation(t *testing.T) {
	m := newTestModel(t)

	m.Update(events.CategoryToggleMsg{CategoryID: "drink"})
	m.Update(events.LocationSelectMsg{Location: events.LocationRef{ID: "b"}})

	if m.detail.Visible() {
		t.Fatal("detail opened for a hidden location")
	}
	if _, ok := m.engine.Selected(); ok {
		t.Fatal("engine accepted a hidden location")
	}
}

func TestSelectFliesToLocation(t *testing.T) {
	m := newTestModel(t)

	m.Update(events.LocationSelectMsg{Location: events.LocationRef{ID: "a"}})

	v := m.surface.Viewport()
	if v.Zoom != selectZoom {
		t.Fatalf("zoom = %v, want %v", v.Zoom, selectZoom)
	}
	if v.Center.Lng != -122.41 || v.Center.Lat != 37.77 {
		t.Fatalf("center = %+v, want location position", v.Center)
	}
}

func TestStaleLeafColorsDiscarded(t *testing.T) {
	m := newTestModel(t)

	old := m.colors.Begin()
	fresh := m.colors.Begin()

	m.Update(leavesResolvedMsg{token: old, clusterID: 7, colors: []string{"#cc3333"}})
	if st := m.surface.FeatureState(mapsurface.ClusterKey(7)); st.Color != "" {
		t.Fatalf("stale resolution applied color %q", st.Color)
	}

	m.Update(leavesResolvedMsg{token: fresh, clusterID: 7, colors: []string{"#cc3333", "#cc3333", "#3333cc"}})
	if st := m.surface.FeatureState(mapsurface.ClusterKey(7)); st.Color != "#cc3333" {
		t.Fatalf("cluster color = %q, want dominant #cc3333", st.Color)
	}
}

func TestFailedClusterDoesNotBlockSiblings(t *testing.T) {
	m := newTestModel(t)
	token := m.colors.Begin()

	m.Update(leavesResolvedMsg{token: token, clusterID: 1, err: mapsurface.ErrUnknownCluster})
	m.Update(leavesResolvedMsg{token: token, clusterID: 2, colors: []string{"#3333cc"}})

	if st := m.surface.FeatureState(mapsurface.ClusterKey(1)); st.Color != "" {
		t.Fatalf("failed cluster got color %q", st.Color)
	}
	if st := m.surface.FeatureState(mapsurface.ClusterKey(2)); st.Color != "#3333cc" {
		t.Fatalf("sibling cluster color = %q, want #3333cc", st.Color)
	}
}

func TestStyleFailureKeepsPreviousStyle(t *testing.T) {
	m := newTestModel(t)

	cmd := m.beginStyleLoad("blueprint")
	if cmd == nil {
		t.Fatal("expected a style load command")
	}
	msg, ok := cmd().(styleLoadedMsg)
	if !ok {
		t.Fatal("expected a styleLoadedMsg")
	}
	if msg.err == nil {
		t.Fatal("unknown style should fail to load")
	}

	m.Update(msg)
	if got := m.surface.Style(); got != "streets" {
		t.Fatalf("style = %q, want streets kept", got)
	}
	if m.styleLoading {
		t.Fatal("controls still disabled after failed load")
	}
}

func TestStyleLoadDefersInteractionEvents(t *testing.T) {
	m := newTestModel(t)

	cmd := m.beginStyleLoad("night")
	if cmd == nil {
		t.Fatal("expected a style load command")
	}

	m.Update(events.LocationSelectMsg{Location: events.LocationRef{ID: "a"}})
	if m.detail.Visible() {
		t.Fatal("select handled while style was loading")
	}
	if len(m.deferred) != 1 {
		t.Fatalf("deferred = %d events, want 1", len(m.deferred))
	}

	_, replay := m.Update(cmd())
	if got := m.surface.Style(); got != "night" {
		t.Fatalf("style = %q, want night", got)
	}
	if m.deferred != nil {
		t.Fatal("deferred events not drained after load")
	}
	if replay == nil {
		t.Fatal("expected deferred events to be replayed")
	}
}

func TestStyleRequestIgnoredWhileLoading(t *testing.T) {
	m := newTestModel(t)

	if cmd := m.beginStyleLoad("night"); cmd == nil {
		t.Fatal("expected a style load command")
	}
	if cmd := m.beginStyleLoad("satellite"); cmd != nil {
		t.Fatal("second load started while first was in flight")
	}
}

func TestDeepLinkSelectsOnInit(t *testing.T) {
	doc := testDocument()
	surface := gridmap.New()
	surface.Configure(doc.Map)
	m := New(engine.New(doc), surface, Options{DeepLink: "c"})
	m.Init()

	if loc, ok := m.engine.Selected(); !ok || loc.ID != "c" {
		t.Fatalf("selected = %+v ok=%v, want c", loc, ok)
	}
	if !m.detail.Visible() {
		t.Fatal("detail hidden after deep link select")
	}
}

func TestViewRendersAllSurfaces(t *testing.T) {
	m := newTestModel(t)

	view, _ := m.View()
	if view == "" {
		t.Fatal("empty view")
	}
}
