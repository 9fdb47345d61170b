package searchbar

import (
	"github.com/charmbracelet/bubbles/v2/textinput"
	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/lipgloss/v2"

	"tableflip.dev/fairmap/pkg/tui/events"
)

// Model wraps a text input for the free-text location search. It emits
// SearchChangeMsg on every edit; debouncing happens in the root model so the
// input stays a dumb surface.
type Model struct {
	id      events.ComponentID
	input   textinput.Model
	width   int
	focused bool
}

// New constructs a search bar.
func New(id events.ComponentID) *Model {
	input := textinput.New()
	input.Placeholder = "Search vendors, booths, categories…"
	input.Prompt = "/ "
	if id == "" {
		id = events.ComponentID("searchbar")
	}
	return &Model{id: id, input: input}
}

// ID exposes the component identifier.
func (m *Model) ID() events.ComponentID { return m.id }

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd { return nil }

// Focus gives the input keyboard focus.
func (m *Model) Focus() tea.Cmd {
	m.focused = true
	return m.input.Focus()
}

// Blur removes keyboard focus.
func (m *Model) Blur() {
	m.focused = false
	m.input.Blur()
}

// Focused reports whether the input owns the keyboard.
func (m *Model) Focused() bool { return m.focused }

// Value returns the raw query text.
func (m *Model) Value() string { return m.input.Value() }

// SetValue replaces the query text without emitting a change event.
func (m *Model) SetValue(v string) {
	m.input.SetValue(v)
}

// SetSize configures the rendered width.
func (m *Model) SetSize(width int) {
	if width < 10 {
		width = 10
	}
	m.width = width
	m.input.SetWidth(width - len(m.input.Prompt) - 1)
}

// Update feeds keystrokes into the input and reports value changes.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if !m.focused {
		return m, nil
	}
	before := m.input.Value()
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if after := m.input.Value(); after != before {
		return m, tea.Batch(cmd, events.SearchChangeCmd(m.id, after))
	}
	return m, cmd
}

// View renders the input on a single line.
func (m *Model) View() string {
	view := m.input.View()
	if m.width > 0 {
		view = lipgloss.NewStyle().Width(m.width).MaxHeight(1).Render(view)
	}
	return view
}
