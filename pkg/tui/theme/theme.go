package theme

import "github.com/charmbracelet/lipgloss/v2"

// Theme centralizes Lip Gloss styles for the Bubble Tea UI.
type Theme struct {
	Panel  PanelTheme
	Nav    NavTheme
	List   ListTheme
	Detail DetailTheme
	Footer FooterTheme
}

// PanelTheme styles framed panels and headings.
type PanelTheme struct {
	Frame        lipgloss.Style
	FocusedFrame lipgloss.Style
	Title        lipgloss.Style
}

// NavTheme styles the category tree.
type NavTheme struct {
	Group    lipgloss.Style
	Item     lipgloss.Style
	Cursor   lipgloss.Style
	Count    lipgloss.Style
	Disabled lipgloss.Style
}

// ListTheme styles the location list.
type ListTheme struct {
	Item     lipgloss.Style
	Cursor   lipgloss.Style
	Featured lipgloss.Style
	Booth    lipgloss.Style
	Empty    lipgloss.Style
}

// DetailTheme styles the detail panel.
type DetailTheme struct {
	Name  lipgloss.Style
	Label lipgloss.Style
	Body  lipgloss.Style
	Link  lipgloss.Style
}

// FooterTheme styles the bottom status bar.
type FooterTheme struct {
	Status lipgloss.Style
	Count  lipgloss.Style
	Help   lipgloss.Style
	Error  lipgloss.Style
}

// Default returns the built-in theme used across the UI.
func Default() Theme {
	return Theme{
		Panel: PanelTheme{
			Frame: lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(lipgloss.Color("240")),
			FocusedFrame: lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(lipgloss.Color("212")),
			Title: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("252")),
		},
		Nav: NavTheme{
			Group:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("110")),
			Item:     lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
			Cursor:   lipgloss.NewStyle().Reverse(true),
			Count:    lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
			Disabled: lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
		},
		List: ListTheme{
			Item:     lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
			Cursor:   lipgloss.NewStyle().Reverse(true),
			Featured: lipgloss.NewStyle().Foreground(lipgloss.Color("220")),
			Booth:    lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
			Empty:    lipgloss.NewStyle().Foreground(lipgloss.Color("244")).Italic(true),
		},
		Detail: DetailTheme{
			Name:  lipgloss.NewStyle().Bold(true),
			Label: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("110")),
			Body:  lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
			Link:  lipgloss.NewStyle().Foreground(lipgloss.Color("75")).Underline(true),
		},
		Footer: FooterTheme{
			Status: lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
			Count:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("252")),
			Help:   lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
			Error:  lipgloss.NewStyle().Foreground(lipgloss.Color("204")),
		},
	}
}
