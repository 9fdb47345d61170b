package locationlist

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/lipgloss/v2"

	"tableflip.dev/fairmap/pkg/tui/events"
	"tableflip.dev/fairmap/pkg/tui/theme"
	"tableflip.dev/fairmap/pkg/venue"
)

// Model renders the ranked location list: featured entries first, then
// alphabetical. Selection is emitted as an event and flows back through the
// engine, never applied locally.
type Model struct {
	id    events.ComponentID
	theme theme.Theme

	locations  []venue.Location
	selectedID string

	cursor  int
	offset  int
	width   int
	height  int
	focused bool
}

// New constructs a location list component.
func New(id events.ComponentID) *Model {
	if id == "" {
		id = events.ComponentID("locationlist")
	}
	return &Model{id: id, theme: theme.Default()}
}

// ID exposes the component identifier.
func (m *Model) ID() events.ComponentID { return m.id }

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd { return nil }

// Focus gives the list keyboard focus.
func (m *Model) Focus() { m.focused = true }

// Blur removes keyboard focus.
func (m *Model) Blur() { m.focused = false }

// SetSize configures the viewport dimensions.
func (m *Model) SetSize(width, height int) {
	if width < 16 {
		width = 16
	}
	if height < 3 {
		height = 3
	}
	m.width = width
	m.height = height
	m.clampCursor()
}

// SetLocations replaces the list content from an engine snapshot. The slice
// is sorted for display here; the engine's ordering is unspecified.
func (m *Model) SetLocations(visible []venue.Location, selectedID string) {
	locations := make([]venue.Location, len(visible))
	copy(locations, visible)
	venue.SortForList(locations)
	m.locations = locations
	m.selectedID = selectedID
	if selectedID != "" {
		for i, loc := range locations {
			if loc.ID == selectedID {
				m.cursor = i
				break
			}
		}
	}
	m.clampCursor()
}

// Len reports how many locations the list shows.
func (m *Model) Len() int { return len(m.locations) }

// Update handles cursor movement and selection.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if !m.focused {
		return m, nil
	}
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch key.String() {
	case "up", "k":
		m.move(-1)
	case "down", "j":
		m.move(1)
	case "enter":
		if loc := m.currentLocation(); loc != nil {
			return m, events.LocationSelectCmd(m.id, events.LocationRef{
				ID:       loc.ID,
				Name:     loc.Name,
				Category: loc.CategoryID,
			})
		}
	case "esc":
		return m, events.SelectionClearCmd(m.id)
	}
	return m, nil
}

// View renders the visible window of the list.
func (m *Model) View() string {
	if len(m.locations) == 0 {
		return m.theme.List.Empty.Render("No vendors match your filters.")
	}
	end := m.offset + m.height
	if end > len(m.locations) {
		end = len(m.locations)
	}
	lines := make([]string, 0, m.height)
	for i := m.offset; i < end; i++ {
		lines = append(lines, m.renderItem(i))
	}
	return strings.Join(lines, "\n")
}

func (m *Model) renderItem(i int) string {
	loc := m.locations[i]
	dot := lipgloss.NewStyle().Foreground(lipgloss.Color(loc.Color)).Render("●")
	name := loc.Name
	if loc.Featured {
		name = m.theme.List.Featured.Render("★ ") + name
	}
	line := fmt.Sprintf("%s %s", dot, m.theme.List.Item.Render(name))
	if loc.Booth != "" {
		line += " " + m.theme.List.Booth.Render(loc.Booth)
	}
	if loc.ID == m.selectedID {
		line = "▸ " + line
	} else {
		line = "  " + line
	}
	if i == m.cursor && m.focused {
		line = m.theme.List.Cursor.Render(line)
	}
	return lipgloss.NewStyle().MaxWidth(m.width).Render(line)
}

func (m *Model) move(delta int) {
	m.cursor += delta
	m.clampCursor()
}

func (m *Model) clampCursor() {
	if m.cursor >= len(m.locations) {
		m.cursor = len(m.locations) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
	if m.height <= 0 {
		return
	}
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+m.height {
		m.offset = m.cursor - m.height + 1
	}
}

func (m *Model) currentLocation() *venue.Location {
	if m.cursor < 0 || m.cursor >= len(m.locations) {
		return nil
	}
	return &m.locations[m.cursor]
}
