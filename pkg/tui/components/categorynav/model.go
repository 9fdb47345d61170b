package categorynav

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/lipgloss/v2"

	"tableflip.dev/fairmap/pkg/category"
	"tableflip.dev/fairmap/pkg/tui/events"
	"tableflip.dev/fairmap/pkg/tui/theme"
)

// row is one rendered line: either a group heading or a category entry.
type row struct {
	group      string
	categoryID string
	label      string
	color      string
	count      int
}

// Model renders the grouped category tree with live counts and checkboxes.
// The active set is injected on every render pass; toggling emits an event
// and waits for the next snapshot rather than patching local state.
type Model struct {
	id    events.ComponentID
	theme theme.Theme

	rows   []row
	active map[string]bool

	cursor  int
	offset  int
	width   int
	height  int
	focused bool
}

// New constructs a category tree component.
func New(id events.ComponentID) *Model {
	if id == "" {
		id = events.ComponentID("categorynav")
	}
	return &Model{id: id, theme: theme.Default()}
}

// ID exposes the component identifier.
func (m *Model) ID() events.ComponentID { return m.id }

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd { return nil }

// Focus gives the tree keyboard focus.
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

// SetGroups replaces the tree content from an engine snapshot.
func (m *Model) SetGroups(groups []category.Group, active map[string]bool) {
	rows := make([]row, 0, len(groups)*4)
	for _, g := range groups {
		rows = append(rows, row{group: g.Name, count: g.Count()})
		for _, c := range g.Categories {
			rows = append(rows, row{
				categoryID: c.ID,
				label:      c.Name,
				color:      c.Color,
				count:      c.Count,
			})
		}
	}
	m.rows = rows
	m.active = active
	m.clampCursor()
}

// Update handles cursor movement and toggling.
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
	case " ", "space", "enter":
		if r := m.currentRow(); r != nil && r.categoryID != "" {
			return m, events.CategoryToggleCmd(m.id, r.categoryID)
		}
	case "a":
		return m, events.CategoriesSetAllCmd(m.id, true)
	case "n":
		return m, events.CategoriesSetAllCmd(m.id, false)
	}
	return m, nil
}

// View renders the visible window of the tree.
func (m *Model) View() string {
	if len(m.rows) == 0 {
		return m.theme.Nav.Disabled.Render("No categories")
	}
	end := m.offset + m.height
	if end > len(m.rows) {
		end = len(m.rows)
	}
	lines := make([]string, 0, m.height)
	for i := m.offset; i < end; i++ {
		lines = append(lines, m.renderRow(i))
	}
	return strings.Join(lines, "\n")
}

func (m *Model) renderRow(i int) string {
	r := m.rows[i]
	var line string
	if r.categoryID == "" {
		line = m.theme.Nav.Group.Render(fmt.Sprintf("%s (%d)", r.group, r.count))
	} else {
		check := "[ ]"
		style := m.theme.Nav.Disabled
		if m.active[r.categoryID] {
			check = "[x]"
			style = m.theme.Nav.Item
		}
		dot := lipgloss.NewStyle().Foreground(lipgloss.Color(r.color)).Render("●")
		line = fmt.Sprintf("  %s %s %s %s", check, dot, style.Render(r.label),
			m.theme.Nav.Count.Render(fmt.Sprintf("(%d)", r.count)))
	}
	if i == m.cursor && m.focused {
		line = m.theme.Nav.Cursor.Render(stripToWidth(line, m.width))
	}
	return stripToWidth(line, m.width)
}

func (m *Model) move(delta int) {
	m.cursor += delta
	m.clampCursor()
}

func (m *Model) clampCursor() {
	if m.cursor < 0 {
		m.cursor = 0
	}
	if m.cursor >= len(m.rows) {
		m.cursor = len(m.rows) - 1
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

func (m *Model) currentRow() *row {
	if m.cursor < 0 || m.cursor >= len(m.rows) {
		return nil
	}
	return &m.rows[m.cursor]
}

func stripToWidth(s string, width int) string {
	if width <= 0 {
		return s
	}
	return lipgloss.NewStyle().MaxWidth(width).Render(s)
}
