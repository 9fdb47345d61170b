package detailpanel

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/lipgloss/v2"
	"github.com/muesli/reflow/wordwrap"

	"tableflip.dev/fairmap/pkg/tui/theme"
	"tableflip.dev/fairmap/pkg/venue"
)

// Model renders the detail view for the focused location. It has exactly two
// states, hidden and populated, driven by the engine's selection state.
type Model struct {
	theme theme.Theme

	location *venue.Location
	category venue.Category

	width  int
	height int
}

// New constructs an empty (hidden) detail panel.
func New() *Model {
	return &Model{theme: theme.Default()}
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd { return nil }

// Update implements tea.Model; the panel is read-only.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) { return m, nil }

// SetSize configures the panel dimensions.
func (m *Model) SetSize(width, height int) {
	if width < 20 {
		width = 20
	}
	m.width = width
	m.height = height
}

// Show populates the panel for a focused location.
func (m *Model) Show(loc venue.Location, cat venue.Category) {
	copied := loc
	m.location = &copied
	m.category = cat
}

// Hide returns the panel to its hidden state.
func (m *Model) Hide() { m.location = nil }

// Visible reports whether a location is being shown.
func (m *Model) Visible() bool { return m.location != nil }

// View renders the detail content, or an empty hint when idle.
func (m *Model) View() string {
	if m.location == nil {
		return m.theme.List.Empty.Render("Select a location to see details.")
	}
	loc := m.location

	name := loc.Name
	if loc.Featured {
		name = "★ " + name
	}
	badge := lipgloss.NewStyle().
		Foreground(lipgloss.Color("231")).
		Background(lipgloss.Color(m.category.Color)).
		Padding(0, 1).
		Render(strings.TrimSpace(m.category.Icon + " " + m.category.Name))

	lines := []string{
		m.theme.Detail.Name.Render(name),
		badge,
	}
	if loc.Booth != "" {
		lines = append(lines, m.field("Booth", loc.Booth))
	}
	if loc.Address != "" {
		lines = append(lines, m.field("Address", loc.Address))
	}
	if desc := sanitize(loc.Description); desc != "" {
		lines = append(lines, "", wordwrap.String(m.theme.Detail.Body.Render(desc), m.textWidth()))
	}
	if loc.Website != "" {
		lines = append(lines, "", m.theme.Detail.Link.Render(loc.Website))
	}
	lines = append(lines, "", m.field("Directions", fmt.Sprintf("%.5f, %.5f", loc.Lat, loc.Lng)))

	content := strings.Join(lines, "\n")
	return lipgloss.NewStyle().Width(m.width).MaxWidth(m.width).Render(content)
}

func (m *Model) field(label, value string) string {
	return fmt.Sprintf("%s %s", m.theme.Detail.Label.Render(label+":"), value)
}

func (m *Model) textWidth() int {
	w := m.width - 2
	if w < 16 {
		w = 16
	}
	return w
}

// sanitize strips control characters and collapses whitespace; descriptions
// arrive from an admin surface that allows pasted rich text.
func sanitize(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r == '\n' || r == '\t' {
			b.WriteRune(' ')
			continue
		}
		if r < 0x20 {
			continue
		}
		b.WriteRune(r)
	}
	return strings.Join(strings.Fields(b.String()), " ")
}
