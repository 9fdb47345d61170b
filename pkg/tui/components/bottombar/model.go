package bottombar

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/lipgloss/v2"

	"tableflip.dev/fairmap/pkg/tui/theme"
)

// Model renders the footer: visible count, filter summary, map status and a
// one-line help hint. Everything shown here comes from the same snapshot as
// the other surfaces.
type Model struct {
	theme theme.Theme

	visible    int
	total      int
	hiddenCats int
	query      string
	mapStatus  string
	notice     string
	noticeErr  bool

	width int
}

// New constructs an empty footer.
func New() *Model {
	return &Model{theme: theme.Default()}
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd { return nil }

// Update implements tea.Model; the footer is read-only.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) { return m, nil }

// SetSize configures the rendered width.
func (m *Model) SetSize(width int) { m.width = width }

// SetCounts updates the vendor counter and filter summary.
func (m *Model) SetCounts(visible, total, hiddenCategories int, query string) {
	m.visible = visible
	m.total = total
	m.hiddenCats = hiddenCategories
	m.query = query
}

// SetMapStatus updates the viewport/style summary.
func (m *Model) SetMapStatus(status string) { m.mapStatus = status }

// SetNotice shows a transient informational message.
func (m *Model) SetNotice(text string) {
	m.notice = text
	m.noticeErr = false
}

// SetError shows a transient error message.
func (m *Model) SetError(text string) {
	m.notice = text
	m.noticeErr = true
}

// ClearNotice removes any transient message.
func (m *Model) ClearNotice() { m.notice = "" }

// View renders the footer line.
func (m *Model) View() string {
	noun := "vendors"
	if m.visible == 1 {
		noun = "vendor"
	}
	parts := []string{
		m.theme.Footer.Count.Render(fmt.Sprintf("%d %s", m.visible, noun)),
	}
	if m.visible != m.total {
		parts = append(parts, m.theme.Footer.Status.Render(fmt.Sprintf("of %d", m.total)))
	}
	if m.hiddenCats > 0 {
		parts = append(parts, m.theme.Footer.Status.Render(fmt.Sprintf("%d categories off", m.hiddenCats)))
	}
	if m.query != "" {
		parts = append(parts, m.theme.Footer.Status.Render(fmt.Sprintf("query %q", m.query)))
	}
	if m.mapStatus != "" {
		parts = append(parts, m.theme.Footer.Status.Render(m.mapStatus))
	}
	if m.notice != "" {
		style := m.theme.Footer.Status
		if m.noticeErr {
			style = m.theme.Footer.Error
		}
		parts = append(parts, style.Render(m.notice))
	}
	parts = append(parts, m.theme.Footer.Help.Render("tab: focus · /: search · s: style · q: quit"))

	line := strings.Join(parts, "  ·  ")
	if m.width > 0 {
		line = lipgloss.NewStyle().MaxWidth(m.width).Render(line)
	}
	return line
}
