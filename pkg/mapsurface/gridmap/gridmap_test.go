package gridmap

import (
	"testing"

	"tableflip.dev/fairmap/pkg/mapsurface"
	"tableflip.dev/fairmap/pkg/venue"
)

func testLocations() []venue.Location {
	return []venue.Location{
		{ID: "a", Name: "Taco", Lat: 40.0001, Lng: -75.0001, Color: "#ff0000"},
		{ID: "b", Name: "Grill", Lat: 40.0002, Lng: -75.0002, Color: "#ff0000"},
		{ID: "c", Name: "Stage", Lat: 40.0003, Lng: -75.0003, Color: "#00ff00"},
		{ID: "far", Name: "Far Away", Lat: -10, Lng: 100, Color: "#0000ff"},
	}
}

func TestRenderedClustersNearbyPoints(t *testing.T) {
	s := New()
	s.SetData(testLocations())
	s.SetViewport(mapsurface.Viewport{Center: mapsurface.LngLat{Lng: -75, Lat: 40}, Zoom: 5})

	var cluster *mapsurface.Feature
	leaves := 0
	for _, f := range s.Rendered() {
		f := f
		if f.Cluster {
			cluster = &f
			continue
		}
		leaves++
	}
	if cluster == nil {
		t.Fatalf("expected the three nearby points to cluster at low zoom")
	}
	if cluster.Count != 3 {
		t.Fatalf("expected cluster of 3, got %d", cluster.Count)
	}
	if leaves != 1 {
		t.Fatalf("expected 1 standalone leaf, got %d", leaves)
	}
}

func TestLeavesRoundTrip(t *testing.T) {
	s := New()
	s.SetData(testLocations())
	s.SetViewport(mapsurface.Viewport{Zoom: 5})

	var clusterID uint64
	var count int
	for _, f := range s.Rendered() {
		if f.Cluster {
			clusterID = f.ClusterID
			count = f.Count
		}
	}
	leaves, err := s.Leaves(clusterID, count)
	if err != nil {
		t.Fatalf("leaves: %v", err)
	}
	if len(leaves) != 3 {
		t.Fatalf("expected 3 leaves, got %d", len(leaves))
	}
	seen := map[string]bool{}
	for _, leaf := range leaves {
		seen[leaf.ID] = true
	}
	for _, id := range []string{"a", "b", "c"} {
		if !seen[id] {
			t.Fatalf("missing leaf %s", id)
		}
	}
}

func TestLeavesUnknownCluster(t *testing.T) {
	s := New()
	s.SetData(testLocations())
	if _, err := s.Leaves(encodeCell(12, 99, 99), 10); err != mapsurface.ErrUnknownCluster {
		t.Fatalf("expected ErrUnknownCluster, got %v", err)
	}
}

func TestClusterIDStableAcrossCalls(t *testing.T) {
	s := New()
	s.SetData(testLocations())
	s.SetViewport(mapsurface.Viewport{Zoom: 5})

	first := map[uint64]bool{}
	for _, f := range s.Rendered() {
		if f.Cluster {
			first[f.ClusterID] = true
		}
	}
	for _, f := range s.Rendered() {
		if f.Cluster && !first[f.ClusterID] {
			t.Fatalf("cluster id %d not stable", f.ClusterID)
		}
	}
}

func TestExpansionZoomSplitsCluster(t *testing.T) {
	s := New()
	s.SetData(testLocations())
	s.SetViewport(mapsurface.Viewport{Zoom: 5})

	var clusterID uint64
	for _, f := range s.Rendered() {
		if f.Cluster {
			clusterID = f.ClusterID
		}
	}
	zoom, err := s.ExpansionZoom(clusterID)
	if err != nil {
		t.Fatalf("expansion zoom: %v", err)
	}
	if zoom <= 5 {
		t.Fatalf("expansion zoom should be past current zoom, got %v", zoom)
	}
}

func TestSetStyle(t *testing.T) {
	s := New()
	if err := s.SetStyle("night"); err != nil {
		t.Fatalf("known style rejected: %v", err)
	}
	if s.Style() != "night" {
		t.Fatalf("style not applied: %s", s.Style())
	}
	if err := s.SetStyle("nope"); err != mapsurface.ErrUnknownStyle {
		t.Fatalf("expected ErrUnknownStyle, got %v", err)
	}
	if s.Style() != "night" {
		t.Fatalf("failed style switch must not clobber the active style")
	}
}

func TestFeatureStateOverlay(t *testing.T) {
	s := New()
	key := mapsurface.ClusterKey(42)
	s.SetFeatureState(key, mapsurface.FeatureState{Color: "#123456"})
	if got := s.FeatureState(key).Color; got != "#123456" {
		t.Fatalf("overlay not stored: %q", got)
	}
	s.SetFeatureState("a", mapsurface.FeatureState{Selected: true})
	s.ClearFeatureStates()
	if s.FeatureState(key) != (mapsurface.FeatureState{}) {
		t.Fatalf("clear should drop overlays")
	}
	if s.FeatureState("a") != (mapsurface.FeatureState{}) {
		t.Fatalf("clear should drop leaf overlays too")
	}
}

func TestFlyToRaisesZoom(t *testing.T) {
	s := New()
	s.Configure(venue.MapConfig{Center: [2]float64{-75, 40}, Zoom: 3, MaxZoom: 18})
	s.FlyTo(mapsurface.LngLat{Lng: 1, Lat: 2}, 17)
	v := s.Viewport()
	if v.Zoom != 17 {
		t.Fatalf("expected zoom raised to 17, got %v", v.Zoom)
	}
	if v.Center.Lng != 1 || v.Center.Lat != 2 {
		t.Fatalf("unexpected center: %+v", v.Center)
	}
}
