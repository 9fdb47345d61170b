// Package app composes the map, category tree, list, detail and footer
// surfaces around one state engine. The root model here is the single entry
// point through which every surface is updated: components emit typed events,
// the engine recomputes, and all views re-render from the same snapshot, so
// no two surfaces can ever show different filter generations.
package app

import (
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/lipgloss/v2"

	"tableflip.dev/fairmap/pkg/clustercolor"
	"tableflip.dev/fairmap/pkg/engine"
	"tableflip.dev/fairmap/pkg/mapsurface"
	"tableflip.dev/fairmap/pkg/tui/components/bottombar"
	"tableflip.dev/fairmap/pkg/tui/components/categorynav"
	"tableflip.dev/fairmap/pkg/tui/components/detailpanel"
	"tableflip.dev/fairmap/pkg/tui/components/locationlist"
	"tableflip.dev/fairmap/pkg/tui/components/mappanel"
	"tableflip.dev/fairmap/pkg/tui/components/searchbar"
	"tableflip.dev/fairmap/pkg/tui/events"
	"tableflip.dev/fairmap/pkg/tui/theme"
	"tableflip.dev/fairmap/pkg/venue"
)

// Debounce window for search keystrokes. Only the newest pending query ever
// reaches the filter engine.
const searchDebounce = 150 * time.Millisecond

// Cluster scans triggered by viewport bursts coalesce into one pass per
// frame.
const clusterScanDelay = 16 * time.Millisecond

// selectZoom mirrors the viewer's fly-to behavior on selection.
const selectZoom = 17

// narrowWidth is the breakpoint below which selecting a location collapses
// the category drawer, like the mobile sheet in the original viewer.
const narrowWidth = 80

// FocusPane identifies which surface owns the keyboard.
type FocusPane int

const (
	FocusMap FocusPane = iota
	FocusNav
	FocusList
)

type searchDebounceMsg struct{ seq int }

type clusterScanMsg struct{}

type leavesResolvedMsg struct {
	token     clustercolor.Token
	clusterID uint64
	colors    []string
	err       error
}

type styleLoadedMsg struct {
	style string
	err   error
}

// Options configures the root model.
type Options struct {
	// DeepLink selects this location id on startup when it resolves.
	DeepLink string
}

// Model is the root Bubble Tea model.
type Model struct {
	engine  *engine.Engine
	surface mapsurface.Surface
	colors  *clustercolor.Aggregator

	search *searchbar.Model
	nav    *categorynav.Model
	list   *locationlist.Model
	detail *detailpanel.Model
	mapPan *mappanel.Model
	footer *bottombar.Model

	theme theme.Theme

	width        int
	height       int
	focus        FocusPane
	navCollapsed bool

	// featureStates mirrors every overlay written to the surface so the map
	// panel can render without a bulk query capability on the boundary.
	featureStates map[string]mapsurface.FeatureState

	searchSeq    int
	pendingQuery string

	clusterScanQueued bool

	styleLoading  bool
	previousStyle string
	// deferred holds select/viewport events that arrived mid style reload;
	// they replay once the source is rebuilt rather than being dropped.
	deferred []tea.Msg

	deepLink string
}

// New wires the engine, surface and components into a root model. The
// surface must already hold the document's map configuration.
func New(eng *engine.Engine, surface mapsurface.Surface, opts Options) *Model {
	m := &Model{
		engine:        eng,
		surface:       surface,
		colors:        clustercolor.New(),
		search:        searchbar.New("search"),
		nav:           categorynav.New("categorynav"),
		list:          locationlist.New("locationlist"),
		detail:        detailpanel.New(),
		mapPan:        mappanel.New("mappanel"),
		footer:        bottombar.New(),
		theme:         theme.Default(),
		featureStates: make(map[string]mapsurface.FeatureState),
		deepLink:      opts.DeepLink,
	}
	m.focus = FocusMap
	m.mapPan.Focus()
	return m
}

// Run launches the program.
func Run(eng *engine.Engine, surface mapsurface.Surface, opts Options) error {
	p := tea.NewProgram(New(eng, surface, opts), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

// Init pushes the initial dataset into the surface, applies the deep link and
// schedules the first cluster scan.
func (m *Model) Init() tea.Cmd {
	snap := m.engine.Snapshot()
	m.surface.SetData(snap.Visible)
	if m.deepLink != "" {
		if loc, ok := m.engine.Select(m.deepLink); ok {
			m.applySelection(loc)
		}
	}
	m.renderAll()
	return m.scheduleClusterScan()
}

// Update is the single write path for all state transitions.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch v := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = v.Width
		m.height = v.Height
		m.layout()
		m.renderAll()
		return m, nil

	case tea.KeyMsg:
		if cmd, handled := m.handleGlobalKey(v); handled {
			return m, cmd
		}

	case events.SearchChangeMsg:
		m.searchSeq++
		m.pendingQuery = v.Value
		seq := m.searchSeq
		return m, tea.Tick(searchDebounce, func(time.Time) tea.Msg {
			return searchDebounceMsg{seq: seq}
		})

	case searchDebounceMsg:
		// A newer keystroke superseded this timer.
		if v.seq != m.searchSeq {
			return m, nil
		}
		snap := m.engine.SetQuery(m.pendingQuery)
		return m, m.applySnapshot(snap)

	case events.CategoryToggleMsg:
		snap := m.engine.ToggleCategory(v.CategoryID)
		return m, m.applySnapshot(snap)

	case events.CategoriesSetAllMsg:
		snap := m.engine.SetAllCategories(v.Active)
		return m, m.applySnapshot(snap)

	case events.LocationSelectMsg:
		if m.styleLoading {
			m.deferred = append(m.deferred, msg)
			return m, nil
		}
		if loc, ok := m.engine.Select(v.Location.ID); ok {
			m.applySelection(loc)
			m.renderAll()
			return m, m.scheduleClusterScan()
		}
		return m, nil

	case events.SelectionClearMsg:
		m.clearSelection()
		m.renderAll()
		return m, nil

	case events.ViewportChangedMsg:
		if m.styleLoading {
			m.deferred = append(m.deferred, msg)
			return m, nil
		}
		m.surface.SetViewport(v.Viewport)
		m.renderAll()
		return m, m.scheduleClusterScan()

	case events.StyleRequestMsg:
		return m, m.beginStyleLoad(v.Style)

	case clusterScanMsg:
		m.clusterScanQueued = false
		return m, m.scanClusters()

	case leavesResolvedMsg:
		// A failed cluster keeps its default color; siblings are unaffected.
		if v.err != nil {
			return m, nil
		}
		if m.colors.Resolve(v.token, v.clusterID, v.colors) {
			if color, ok := m.colors.Color(v.clusterID); ok {
				m.setFeatureState(mapsurface.ClusterKey(v.clusterID), mapsurface.FeatureState{Color: color})
				m.renderMap()
			}
		}
		return m, nil

	case styleLoadedMsg:
		return m, m.finishStyleLoad(v)
	}

	// Route everything else to the focused surfaces.
	if m.search.Focused() {
		if _, cmd := m.search.Update(msg); cmd != nil {
			cmds = append(cmds, cmd)
		}
	} else {
		switch m.focus {
		case FocusMap:
			if _, cmd := m.mapPan.Update(msg); cmd != nil {
				cmds = append(cmds, cmd)
			}
		case FocusNav:
			if _, cmd := m.nav.Update(msg); cmd != nil {
				cmds = append(cmds, cmd)
			}
		case FocusList:
			if _, cmd := m.list.Update(msg); cmd != nil {
				cmds = append(cmds, cmd)
			}
		}
	}
	if len(cmds) == 0 {
		return m, nil
	}
	return m, tea.Batch(cmds...)
}

func (m *Model) handleGlobalKey(key tea.KeyMsg) (tea.Cmd, bool) {
	s := key.String()
	if s == "ctrl+c" {
		return tea.Quit, true
	}
	if m.search.Focused() {
		switch s {
		case "esc":
			m.search.Blur()
			m.renderAll()
			return nil, true
		case "enter":
			m.search.Blur()
			return nil, true
		}
		return nil, false
	}
	switch s {
	case "q":
		return tea.Quit, true
	case "/":
		cmd := m.search.Focus()
		m.renderAll()
		return cmd, true
	case "tab":
		m.cycleFocus()
		m.renderAll()
		return nil, true
	case "c":
		m.navCollapsed = !m.navCollapsed
		m.layout()
		m.renderAll()
		return nil, true
	case "s":
		return m.beginStyleLoad(nextStyle(m.surface.Style())), true
	case "esc":
		if _, ok := m.engine.Selected(); ok {
			m.clearSelection()
			m.renderAll()
			return nil, true
		}
	}
	return nil, false
}

func (m *Model) cycleFocus() {
	m.mapPan.Blur()
	m.nav.Blur()
	m.list.Blur()
	switch m.focus {
	case FocusMap:
		if m.navCollapsed {
			m.focus = FocusList
			m.list.Focus()
		} else {
			m.focus = FocusNav
			m.nav.Focus()
		}
	case FocusNav:
		m.focus = FocusList
		m.list.Focus()
	default:
		m.focus = FocusMap
		m.mapPan.Focus()
	}
}

// applySnapshot is the one side-effect path after any filter recomputation:
// the surface gets the new source, overlays are invalidated wholesale, the
// selection invariant is applied to the detail view, every surface
// re-renders, and a cluster rescan is scheduled.
func (m *Model) applySnapshot(snap engine.Snapshot) tea.Cmd {
	m.surface.SetData(snap.Visible)
	m.surface.ClearFeatureStates()
	m.featureStates = make(map[string]mapsurface.FeatureState)

	if snap.SelectionCleared {
		m.detail.Hide()
	}
	if loc, ok := m.engine.Selected(); ok {
		m.setFeatureState(loc.ID, mapsurface.FeatureState{Selected: true})
	}
	m.renderAll()
	return m.scheduleClusterScan()
}

func (m *Model) applySelection(loc venue.Location) {
	// One highlight at a time.
	for key, st := range m.featureStates {
		if st.Selected {
			st.Selected = false
			m.setFeatureState(key, st)
		}
	}
	m.setFeatureState(loc.ID, mapsurface.FeatureState{Selected: true})

	cat, _ := m.engine.Index().Get(loc.CategoryID)
	m.detail.Show(loc, cat)
	m.surface.FlyTo(mapsurface.LngLat{Lng: loc.Lng, Lat: loc.Lat}, selectZoom)
	if m.width > 0 && m.width < narrowWidth {
		m.navCollapsed = true
		m.layout()
	}
}

func (m *Model) clearSelection() {
	m.engine.ClearSelection()
	for key, st := range m.featureStates {
		if st.Selected {
			st.Selected = false
			m.setFeatureState(key, st)
		}
	}
	m.detail.Hide()
}

func (m *Model) setFeatureState(key string, st mapsurface.FeatureState) {
	m.surface.SetFeatureState(key, st)
	if st == (mapsurface.FeatureState{}) {
		delete(m.featureStates, key)
		return
	}
	m.featureStates[key] = st
}

// scheduleClusterScan coalesces bursts of viewport/filter changes into one
// scan per frame.
func (m *Model) scheduleClusterScan() tea.Cmd {
	if m.clusterScanQueued {
		return nil
	}
	m.clusterScanQueued = true
	return tea.Tick(clusterScanDelay, func(time.Time) tea.Msg {
		return clusterScanMsg{}
	})
}

// scanClusters starts a new color generation and fans out one leaf lookup
// per distinct rendered cluster. Duplicate cluster instances at tile
// boundaries are deduped before any work is issued.
func (m *Model) scanClusters() tea.Cmd {
	token := m.colors.Begin()

	seen := make(map[uint64]int)
	for _, f := range m.surface.Rendered() {
		if !f.Cluster {
			continue
		}
		if _, dup := seen[f.ClusterID]; dup {
			continue
		}
		seen[f.ClusterID] = f.Count
	}

	cmds := make([]tea.Cmd, 0, len(seen))
	for clusterID, count := range seen {
		clusterID, count := clusterID, count
		cmds = append(cmds, func() tea.Msg {
			leaves, err := m.surface.Leaves(clusterID, count)
			if err != nil {
				return leavesResolvedMsg{token: token, clusterID: clusterID, err: err}
			}
			colors := make([]string, 0, len(leaves))
			for _, leaf := range leaves {
				colors = append(colors, leaf.Color)
			}
			return leavesResolvedMsg{token: token, clusterID: clusterID, colors: colors}
		})
	}
	m.renderMap()
	if len(cmds) == 0 {
		return nil
	}
	return tea.Batch(cmds...)
}

// beginStyleLoad kicks off an async style switch. A reload already in flight
// suppresses further attempts instead of stacking them.
func (m *Model) beginStyleLoad(style string) tea.Cmd {
	if m.styleLoading || style == "" || style == m.surface.Style() {
		return nil
	}
	m.styleLoading = true
	m.previousStyle = m.surface.Style()
	m.footer.SetNotice("loading style " + style + "…")
	surface := m.surface
	return func() tea.Msg {
		err := surface.SetStyle(style)
		return styleLoadedMsg{style: style, err: err}
	}
}

// finishStyleLoad completes a style switch: on success the data source is
// rebuilt and the filter re-applied before any deferred clicks replay; on
// failure the previous style stays active and controls re-enable.
func (m *Model) finishStyleLoad(v styleLoadedMsg) tea.Cmd {
	m.styleLoading = false
	var cmds []tea.Cmd
	if v.err != nil {
		m.footer.SetError("style " + v.style + " failed, keeping " + m.previousStyle)
	} else {
		m.footer.SetNotice("style " + v.style)
		cmds = append(cmds, m.applySnapshot(m.engine.Snapshot()))
	}
	if len(m.deferred) > 0 {
		deferred := m.deferred
		m.deferred = nil
		for _, msg := range deferred {
			msg := msg
			cmds = append(cmds, func() tea.Msg { return msg })
		}
	}
	if len(cmds) == 0 {
		return nil
	}
	return tea.Batch(cmds...)
}

// renderAll refreshes every surface from the current engine snapshot. This
// is the only place view content is written.
func (m *Model) renderAll() {
	snap := m.engine.Snapshot()

	m.nav.SetGroups(m.engine.Index().Grouped(), snap.Filter.Active)
	m.list.SetLocations(snap.Visible, snap.SelectedID)

	if loc, ok := m.engine.Selected(); ok {
		cat, _ := m.engine.Index().Get(loc.CategoryID)
		m.detail.Show(loc, cat)
	} else {
		m.detail.Hide()
	}

	hidden := m.engine.Index().Len() - snap.Filter.ActiveCount()
	m.footer.SetCounts(len(snap.Visible), len(m.engine.Locations()), hidden, snap.Filter.Query)
	m.renderMap()
}

func (m *Model) renderMap() {
	m.mapPan.SetScene(m.surface.Rendered(), m.featureStates, m.surface.Viewport(), m.surface.Style())
	m.footer.SetMapStatus(m.mapPan.StatusLine())
}

func (m *Model) layout() {
	if m.width <= 0 || m.height <= 0 {
		return
	}
	contentHeight := m.height - 3 // search bar + footer + border slack
	if contentHeight < 5 {
		contentHeight = 5
	}

	navWidth := 0
	if !m.navCollapsed {
		navWidth = m.width / 4
		if navWidth < 24 {
			navWidth = 24
		}
		if navWidth > 36 {
			navWidth = 36
		}
	}
	sideWidth := m.width / 4
	if sideWidth < 24 {
		sideWidth = 24
	}
	mapWidth := m.width - navWidth - sideWidth - 2
	if mapWidth < 20 {
		mapWidth = 20
	}

	m.search.SetSize(m.width)
	m.nav.SetSize(navWidth, contentHeight)
	m.mapPan.SetSize(mapWidth, contentHeight)
	listHeight := contentHeight / 2
	m.list.SetSize(sideWidth, listHeight)
	m.detail.SetSize(sideWidth, contentHeight-listHeight)
	m.footer.SetSize(m.width)
}

// View renders the composed layout.
func (m *Model) View() (string, *tea.Cursor) {
	if m.width == 0 {
		return "loading…", nil
	}

	columns := make([]string, 0, 3)
	if !m.navCollapsed {
		columns = append(columns, m.nav.View())
	}
	columns = append(columns, m.mapPan.View())

	side := lipgloss.JoinVertical(lipgloss.Left,
		m.list.View(),
		strings.Repeat("─", maxInt(1, m.width/4)),
		m.detail.View(),
	)
	columns = append(columns, side)

	body := lipgloss.JoinHorizontal(lipgloss.Top, columns...)
	return lipgloss.JoinVertical(lipgloss.Left,
		m.search.View(),
		body,
		m.footer.View(),
	), nil
}

func nextStyle(current string) string {
	styles := []string{"streets", "satellite", "night"}
	for i, s := range styles {
		if s == current {
			return styles[(i+1)%len(styles)]
		}
	}
	return styles[0]
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
