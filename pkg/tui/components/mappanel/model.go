package mappanel

import (
	"fmt"
	"math"
	"strings"

	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/lipgloss/v2"

	"tableflip.dev/fairmap/pkg/mapsurface"
	"tableflip.dev/fairmap/pkg/tui/events"
	"tableflip.dev/fairmap/pkg/venue"
)

// Terminal cells are roughly twice as tall as wide; use different pixel
// scales per axis so pan steps feel square.
const (
	pxPerCellX = 8.0
	pxPerCellY = 16.0
	tileSize   = 256.0
)

// Model paints the spatial layer: a character grid of leaves and clusters
// positioned by web-mercator projection around the current viewport. It holds
// a read-only copy of the rendered features; all movement is emitted as
// viewport events and applied by the root model.
type Model struct {
	id events.ComponentID

	features []mapsurface.Feature
	states   map[string]mapsurface.FeatureState
	viewport mapsurface.Viewport
	style    string

	width   int
	height  int
	focused bool
}

// New constructs a map panel.
func New(id events.ComponentID) *Model {
	if id == "" {
		id = events.ComponentID("mappanel")
	}
	return &Model{id: id}
}

// ID exposes the component identifier.
func (m *Model) ID() events.ComponentID { return m.id }

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd { return nil }

// Focus gives the panel keyboard focus.
func (m *Model) Focus() { m.focused = true }

// Blur removes keyboard focus.
func (m *Model) Blur() { m.focused = false }

// SetSize configures the grid dimensions.
func (m *Model) SetSize(width, height int) {
	if width < 20 {
		width = 20
	}
	if height < 5 {
		height = 5
	}
	m.width = width
	m.height = height
}

// SetScene replaces the rendered features, overlays and viewport in one call
// so the panel can never mix features from one generation with overlays from
// another.
func (m *Model) SetScene(features []mapsurface.Feature, states map[string]mapsurface.FeatureState, v mapsurface.Viewport, style string) {
	m.features = features
	m.states = states
	m.viewport = v
	m.style = style
}

// Update translates movement keys into viewport change events.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if !m.focused {
		return m, nil
	}
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	v := m.viewport
	lngStep, latStep := m.panStep()
	switch key.String() {
	case "left", "h":
		v.Center.Lng -= lngStep
	case "right", "l":
		v.Center.Lng += lngStep
	case "up", "k":
		v.Center.Lat += latStep
	case "down", "j":
		v.Center.Lat -= latStep
	case "+", "=":
		v.Zoom++
	case "-", "_":
		v.Zoom--
	default:
		return m, nil
	}
	return m, events.ViewportChangedCmd(m.id, v)
}

// View paints the grid.
func (m *Model) View() string {
	glyphs := make([][]string, m.height)
	for row := range glyphs {
		glyphs[row] = make([]string, m.width)
		for col := range glyphs[row] {
			glyphs[row][col] = " "
		}
	}

	// Leaves first so clusters and the selection draw over them.
	for _, pass := range []bool{false, true} {
		for _, f := range m.features {
			if f.Cluster != pass {
				continue
			}
			col, row, ok := m.cell(f.Position)
			if !ok {
				continue
			}
			glyphs[row][col] = m.renderFeature(f)
		}
	}

	lines := make([]string, m.height)
	for row := range glyphs {
		lines[row] = strings.Join(glyphs[row], "")
	}
	return strings.Join(lines, "\n")
}

// StatusLine summarizes the viewport for the footer.
func (m *Model) StatusLine() string {
	return fmt.Sprintf("%.4f, %.4f  z%.0f  %s",
		m.viewport.Center.Lat, m.viewport.Center.Lng, m.viewport.Zoom, m.style)
}

func (m *Model) renderFeature(f mapsurface.Feature) string {
	if f.Cluster {
		color := venue.NeutralColor
		if st := m.states[mapsurface.ClusterKey(f.ClusterID)]; st.Color != "" {
			color = st.Color
		}
		label := fmt.Sprintf("%d", f.Count)
		if f.Count > 99 {
			label = "99"
		}
		return lipgloss.NewStyle().
			Foreground(lipgloss.Color("231")).
			Background(lipgloss.Color(color)).
			Render(label[:1])
	}

	style := lipgloss.NewStyle().Foreground(lipgloss.Color(f.Color))
	glyph := "●"
	if f.Featured {
		glyph = "★"
	}
	if st := m.states[f.ID]; st.Selected {
		glyph = "◉"
		style = style.Reverse(true)
	} else if st := m.states[f.ID]; st.Hovered {
		style = style.Bold(true)
	}
	return style.Render(glyph)
}

// cell projects a position into grid coordinates, reporting false when the
// feature falls outside the panel.
func (m *Model) cell(pos mapsurface.LngLat) (col, row int, ok bool) {
	scale := tileSize * math.Exp2(m.viewport.Zoom)
	fx, fy := project(pos.Lng, pos.Lat)
	cx, cy := project(m.viewport.Center.Lng, m.viewport.Center.Lat)

	col = m.width/2 + int(math.Round((fx-cx)*scale/pxPerCellX))
	row = m.height/2 + int(math.Round((fy-cy)*scale/pxPerCellY))
	if col < 0 || col >= m.width || row < 0 || row >= m.height {
		return 0, 0, false
	}
	return col, row, true
}

// panStep sizes one keypress to a quarter of the visible span.
func (m *Model) panStep() (lng, lat float64) {
	scale := tileSize * math.Exp2(m.viewport.Zoom)
	lngSpan := float64(m.width) * pxPerCellX / scale * 360
	latSpan := float64(m.height) * pxPerCellY / scale * 170
	return lngSpan / 4, latSpan / 4
}

func project(lng, lat float64) (float64, float64) {
	x := lng/360 + 0.5
	sin := math.Sin(lat * math.Pi / 180)
	y := 0.5 - 0.25*math.Log((1+sin)/(1-sin))/math.Pi
	return x, y
}
