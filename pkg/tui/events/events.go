// Package events defines the typed messages exchanged between TUI components.
// Components never mutate each other; they emit these messages and the root
// model routes them back through the state engine, which is the single writer.
package events

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea/v2"

	"tableflip.dev/fairmap/pkg/mapsurface"
)

// ComponentID uniquely identifies a component instance emitting events.
type ComponentID string

// LocationRef carries the identifying fields surfaces need to describe a
// location in cross-component events.
type LocationRef struct {
	ID       string
	Name     string
	Category string
}

// Label returns a human-friendly identifier for the location.
func (r LocationRef) Label() string {
	if r.Name != "" {
		return r.Name
	}
	return r.ID
}

// SearchChangeMsg fires on every keystroke in the search input. The root
// model debounces before the query reaches the filter engine.
type SearchChangeMsg struct {
	Component ComponentID
	Value     string
}

// Describe renders the change for the event log.
func (m SearchChangeMsg) Describe() string {
	return fmt.Sprintf(`value:%q`, m.Value)
}

// SearchChangeCmd wraps SearchChangeMsg in a tea.Cmd.
func SearchChangeCmd(component ComponentID, value string) tea.Cmd {
	return func() tea.Msg {
		return SearchChangeMsg{Component: component, Value: value}
	}
}

// CategoryToggleMsg requests one category's active flag be flipped.
type CategoryToggleMsg struct {
	Component  ComponentID
	CategoryID string
}

// Describe renders the toggle for the event log.
func (m CategoryToggleMsg) Describe() string {
	return fmt.Sprintf(`category:%q`, m.CategoryID)
}

// CategoryToggleCmd wraps CategoryToggleMsg in a tea.Cmd.
func CategoryToggleCmd(component ComponentID, categoryID string) tea.Cmd {
	return func() tea.Msg {
		return CategoryToggleMsg{Component: component, CategoryID: categoryID}
	}
}

// CategoriesSetAllMsg requests every category be enabled or disabled.
type CategoriesSetAllMsg struct {
	Component ComponentID
	Active    bool
}

// Describe renders the bulk toggle for the event log.
func (m CategoriesSetAllMsg) Describe() string {
	return fmt.Sprintf(`active:%v`, m.Active)
}

// CategoriesSetAllCmd wraps CategoriesSetAllMsg in a tea.Cmd.
func CategoriesSetAllCmd(component ComponentID, active bool) tea.Cmd {
	return func() tea.Msg {
		return CategoriesSetAllMsg{Component: component, Active: active}
	}
}

// LocationSelectMsg asks the engine to focus a location. Map clicks, list
// picks and deep links all emit this same message.
type LocationSelectMsg struct {
	Component ComponentID
	Location  LocationRef
}

// Describe renders the selection for the event log.
func (m LocationSelectMsg) Describe() string {
	return fmt.Sprintf(`location:%q`, m.Location.Label())
}

// LocationSelectCmd wraps LocationSelectMsg in a tea.Cmd.
func LocationSelectCmd(component ComponentID, ref LocationRef) tea.Cmd {
	return func() tea.Msg {
		return LocationSelectMsg{Component: component, Location: ref}
	}
}

// SelectionClearMsg asks the engine to return to idle and close the detail
// panel.
type SelectionClearMsg struct {
	Component ComponentID
}

// Describe renders the clear for the event log.
func (m SelectionClearMsg) Describe() string {
	return fmt.Sprintf(`component:%q`, m.Component)
}

// SelectionClearCmd wraps SelectionClearMsg in a tea.Cmd.
func SelectionClearCmd(component ComponentID) tea.Cmd {
	return func() tea.Msg {
		return SelectionClearMsg{Component: component}
	}
}

// ViewportChangedMsg requests a pan or zoom on the map surface. Cluster
// color recomputation coalesces bursts of these into one scan per frame.
type ViewportChangedMsg struct {
	Component ComponentID
	Viewport  mapsurface.Viewport
}

// Describe renders the viewport change for the event log.
func (m ViewportChangedMsg) Describe() string {
	return fmt.Sprintf(`center:%.4f,%.4f zoom:%.1f`,
		m.Viewport.Center.Lng, m.Viewport.Center.Lat, m.Viewport.Zoom)
}

// ViewportChangedCmd wraps ViewportChangedMsg in a tea.Cmd.
func ViewportChangedCmd(component ComponentID, v mapsurface.Viewport) tea.Cmd {
	return func() tea.Msg {
		return ViewportChangedMsg{Component: component, Viewport: v}
	}
}

// StyleRequestMsg asks for a base style switch on the map surface.
type StyleRequestMsg struct {
	Component ComponentID
	Style     string
}

// Describe renders the style request for the event log.
func (m StyleRequestMsg) Describe() string {
	return fmt.Sprintf(`style:%q`, m.Style)
}

// StyleRequestCmd wraps StyleRequestMsg in a tea.Cmd.
func StyleRequestCmd(component ComponentID, style string) tea.Cmd {
	return func() tea.Msg {
		return StyleRequestMsg{Component: component, Style: style}
	}
}
