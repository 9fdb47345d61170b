// Package gridmap is the in-process map surface used by the terminal UI.
// Points are projected to web-mercator world coordinates and clustered into
// zoom-scaled grid cells, the same shape of aggregation a tile renderer
// performs, so cluster ids, leaf enumeration and expansion zoom behave like
// the real thing.
package gridmap

import (
	"math"
	"sort"
	"sync"

	"tableflip.dev/fairmap/pkg/mapsurface"
	"tableflip.dev/fairmap/pkg/venue"
)

const (
	minZoom = 0
	maxZoom = 20
	// cellsPerWorld controls cluster radius: at zoom z the world is divided
	// into gridScale*2^z cells per axis.
	gridScale = 8
	// minClusterSize is the smallest leaf count rendered as a cluster.
	minClusterSize = 2
)

// Styles the surface knows how to load.
var knownStyles = []string{"streets", "satellite", "night"}

type point struct {
	loc  venue.Location
	x, y float64 // world coordinates in [0,1)
}

// Surface implements mapsurface.Surface with grid clustering.
type Surface struct {
	mu sync.Mutex

	style    string
	viewport mapsurface.Viewport
	maxZoom  float64

	points []point
	states map[string]mapsurface.FeatureState
}

// New returns an empty surface with the default style.
func New() *Surface {
	return &Surface{
		style:   knownStyles[0],
		maxZoom: maxZoom,
		states:  make(map[string]mapsurface.FeatureState),
	}
}

// Configure implements mapsurface.Surface.
func (s *Surface) Configure(cfg venue.MapConfig) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if cfg.Style != "" {
		for _, known := range knownStyles {
			if known == cfg.Style {
				s.style = cfg.Style
			}
		}
	}
	if cfg.MaxZoom > 0 {
		s.maxZoom = cfg.MaxZoom
	}
	s.viewport = mapsurface.Viewport{
		Center: mapsurface.LngLat{Lng: cfg.Center[0], Lat: cfg.Center[1]},
		Zoom:   clampZoom(cfg.Zoom, s.maxZoom),
	}
}

// SetStyle implements mapsurface.Surface.
func (s *Surface) SetStyle(style string) error {
	for _, known := range knownStyles {
		if known == style {
			s.mu.Lock()
			s.style = style
			s.mu.Unlock()
			return nil
		}
	}
	return mapsurface.ErrUnknownStyle
}

// Style implements mapsurface.Surface.
func (s *Surface) Style() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.style
}

// SetData implements mapsurface.Surface. Replacing the source drops nothing
// else: feature states are cleared explicitly by the caller when needed.
func (s *Surface) SetData(locations []venue.Location) {
	points := make([]point, 0, len(locations))
	for _, loc := range locations {
		x, y := project(loc.Lng, loc.Lat)
		points = append(points, point{loc: loc, x: x, y: y})
	}
	s.mu.Lock()
	s.points = points
	s.mu.Unlock()
}

// SetViewport implements mapsurface.Surface.
func (s *Surface) SetViewport(v mapsurface.Viewport) {
	s.mu.Lock()
	v.Zoom = clampZoom(v.Zoom, s.maxZoom)
	s.viewport = v
	s.mu.Unlock()
}

// Viewport implements mapsurface.Surface.
func (s *Surface) Viewport() mapsurface.Viewport {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.viewport
}

// Rendered implements mapsurface.Surface.
func (s *Surface) Rendered() []mapsurface.Feature {
	s.mu.Lock()
	defer s.mu.Unlock()

	zoom := int(math.Floor(s.viewport.Zoom))
	cells := bucket(s.points, zoom)

	ids := make([]uint64, 0, len(cells))
	for id := range cells {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	features := make([]mapsurface.Feature, 0, len(ids))
	for _, id := range ids {
		members := cells[id]
		if len(members) < minClusterSize {
			for _, p := range members {
				features = append(features, leafFeature(p))
			}
			continue
		}
		var cx, cy float64
		for _, p := range members {
			cx += p.x
			cy += p.y
		}
		cx /= float64(len(members))
		cy /= float64(len(members))
		lng, lat := unproject(cx, cy)
		features = append(features, mapsurface.Feature{
			ClusterID: id,
			Cluster:   true,
			Count:     len(members),
			Position:  mapsurface.LngLat{Lng: lng, Lat: lat},
			Color:     venue.NeutralColor,
		})
	}
	return features
}

// Leaves implements mapsurface.Surface.
func (s *Surface) Leaves(clusterID uint64, limit int) ([]mapsurface.Feature, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	zoom, _, _ := decodeCell(clusterID)
	cells := bucket(s.points, zoom)
	members, ok := cells[clusterID]
	if !ok || len(members) < minClusterSize {
		return nil, mapsurface.ErrUnknownCluster
	}
	if limit <= 0 || limit > len(members) {
		limit = len(members)
	}
	leaves := make([]mapsurface.Feature, 0, limit)
	for _, p := range members[:limit] {
		leaves = append(leaves, leafFeature(p))
	}
	return leaves, nil
}

// ExpansionZoom implements mapsurface.Surface. It reports the first zoom at
// which the cluster's members no longer share a single cell.
func (s *Surface) ExpansionZoom(clusterID uint64) (float64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	zoom, _, _ := decodeCell(clusterID)
	cells := bucket(s.points, zoom)
	members, ok := cells[clusterID]
	if !ok || len(members) < minClusterSize {
		return 0, mapsurface.ErrUnknownCluster
	}
	for z := zoom + 1; z <= maxZoom; z++ {
		seen := make(map[uint64]bool)
		for _, p := range members {
			seen[encodeCell(z, cellOf(p.x, z), cellOf(p.y, z))] = true
			if len(seen) > 1 {
				return float64(z), nil
			}
		}
	}
	return float64(maxZoom), nil
}

// SetFeatureState implements mapsurface.Surface.
func (s *Surface) SetFeatureState(key string, state mapsurface.FeatureState) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if state == (mapsurface.FeatureState{}) {
		delete(s.states, key)
		return
	}
	s.states[key] = state
}

// FeatureState implements mapsurface.Surface.
func (s *Surface) FeatureState(key string) mapsurface.FeatureState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.states[key]
}

// ClearFeatureStates implements mapsurface.Surface.
func (s *Surface) ClearFeatureStates() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.states = make(map[string]mapsurface.FeatureState)
}

// FlyTo implements mapsurface.Surface.
func (s *Surface) FlyTo(pos mapsurface.LngLat, minZoomIn float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	zoom := s.viewport.Zoom
	if zoom < minZoomIn {
		zoom = minZoomIn
	}
	s.viewport = mapsurface.Viewport{Center: pos, Zoom: clampZoom(zoom, s.maxZoom)}
}

func leafFeature(p point) mapsurface.Feature {
	return mapsurface.Feature{
		ID:       p.loc.ID,
		Count:    1,
		Position: mapsurface.LngLat{Lng: p.loc.Lng, Lat: p.loc.Lat},
		Color:    p.loc.Color,
		Name:     p.loc.Name,
		Featured: p.loc.Featured,
	}
}

// bucket assigns every point to its grid cell at the given zoom.
func bucket(points []point, zoom int) map[uint64][]point {
	cells := make(map[uint64][]point)
	for _, p := range points {
		id := encodeCell(zoom, cellOf(p.x, zoom), cellOf(p.y, zoom))
		cells[id] = append(cells[id], p)
	}
	return cells
}

func cellOf(world float64, zoom int) uint32 {
	n := float64(gridScale) * math.Exp2(float64(zoom))
	c := int(world * n)
	if c < 0 {
		c = 0
	}
	if c >= int(n) && int(n) > 0 {
		c = int(n) - 1
	}
	return uint32(c)
}

// encodeCell packs zoom and cell coordinates into a stable cluster id:
// 5 bits of zoom, 29 bits per axis.
func encodeCell(zoom int, x, y uint32) uint64 {
	return uint64(zoom)<<58 | uint64(x&0x1fffffff)<<29 | uint64(y&0x1fffffff)
}

func decodeCell(id uint64) (zoom int, x, y uint32) {
	return int(id >> 58), uint32(id >> 29 & 0x1fffffff), uint32(id & 0x1fffffff)
}

// project maps lng/lat to world coordinates in [0,1), web-mercator.
func project(lng, lat float64) (float64, float64) {
	x := lng/360 + 0.5
	sin := math.Sin(lat * math.Pi / 180)
	y := 0.5 - 0.25*math.Log((1+sin)/(1-sin))/math.Pi
	if y < 0 {
		y = 0
	}
	if y > 1 {
		y = math.Nextafter(1, 0)
	}
	return x, y
}

func unproject(x, y float64) (lng, lat float64) {
	lng = (x - 0.5) * 360
	lat = 360*math.Atan(math.Exp((0.5-y)*2*math.Pi))/math.Pi - 90
	return lng, lat
}

func clampZoom(zoom, max float64) float64 {
	if zoom < minZoom {
		return minZoom
	}
	if max > 0 && zoom > max {
		return max
	}
	return zoom
}
