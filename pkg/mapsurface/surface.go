// Package mapsurface defines the capability boundary to the map rendering
// engine. The state engine only ever talks to this interface; any renderer
// that can cluster points, enumerate cluster leaves and hold per-feature
// state overlays is interchangeable behind it.
package mapsurface

import (
	"errors"
	"strconv"

	"tableflip.dev/fairmap/pkg/venue"
)

// ClusterKey derives the feature-state key for a cluster id, keeping cluster
// overlays in the same namespace as leaf overlays without colliding with
// location ids.
func ClusterKey(id uint64) string {
	return "cluster:" + strconv.FormatUint(id, 10)
}

// ErrUnknownCluster is returned by Leaves when the cluster id does not exist
// at the current zoom, typically because the data or viewport changed after
// the id was observed.
var ErrUnknownCluster = errors.New("mapsurface: unknown cluster id")

// ErrUnknownStyle is returned by SetStyle for style ids the surface cannot
// load.
var ErrUnknownStyle = errors.New("mapsurface: unknown style")

// LngLat is a geographic coordinate pair.
type LngLat struct {
	Lng float64
	Lat float64
}

// Viewport describes the visible window onto the map.
type Viewport struct {
	Center LngLat
	Zoom   float64
}

// Feature is a rendered point: either a single location leaf or a cluster of
// nearby leaves aggregated by the surface at the current zoom.
type Feature struct {
	// ID is the location id for leaves; empty for clusters.
	ID string
	// ClusterID identifies a cluster. Only meaningful when Cluster is true.
	ClusterID uint64
	Cluster   bool
	// Count is the number of member leaves for clusters, 1 for leaves.
	Count int

	Position LngLat
	Color    string
	Name     string
	Featured bool
}

// FeatureState is a transient per-feature overlay applied on top of the data
// source, so highlights and cluster colors never force a geometry rebuild.
type FeatureState struct {
	Selected bool
	Hovered  bool
	// Color overrides the rendered color when non-empty (cluster tint).
	Color string
}

// Surface is the full capability set the engine requires from a renderer.
type Surface interface {
	// Configure applies the document's map block (initial center, zoom,
	// style). Called once per load.
	Configure(cfg venue.MapConfig)

	// SetStyle switches the base style. Implementations may block while the
	// style loads; callers serialize reloads behind a loading guard.
	SetStyle(style string) error
	// Style reports the id of the active style.
	Style() string

	// SetData replaces the point data source with the given locations.
	SetData(locations []venue.Location)

	// SetViewport moves the visible window.
	SetViewport(v Viewport)
	Viewport() Viewport

	// Rendered enumerates the features currently on screen. Clusters may
	// appear as multiple instances near tile boundaries; callers dedupe by
	// ClusterID before fanning out work.
	Rendered() []Feature

	// Leaves returns up to limit member leaves of a cluster. limit should be
	// at least the cluster's reported Count to avoid under-fetching.
	Leaves(clusterID uint64, limit int) ([]Feature, error)

	// ExpansionZoom reports the zoom at which a cluster breaks apart.
	ExpansionZoom(clusterID uint64) (float64, error)

	// SetFeatureState applies a transient overlay for a leaf id or, with
	// ClusterKey, a cluster id.
	SetFeatureState(key string, state FeatureState)
	FeatureState(key string) FeatureState
	// ClearFeatureStates drops every overlay, used when the visible set
	// changes wholesale.
	ClearFeatureStates()

	// FlyTo recenters on a position, zooming in to at least minZoom.
	FlyTo(pos LngLat, minZoom float64)
}
