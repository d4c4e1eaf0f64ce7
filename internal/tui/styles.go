// Package tui implements the interactive report browser.
package tui

import "github.com/charmbracelet/lipgloss"

var (
	ColorPrimary = lipgloss.Color("86")  // cyan
	ColorAccent  = lipgloss.Color("212") // pink
	ColorSuccess = lipgloss.Color("42")
	ColorError   = lipgloss.Color("196")
	ColorMuted   = lipgloss.Color("241")
	ColorBgAlt   = lipgloss.Color("236")
)

// Styles holds the lipgloss styles used by the browser.
type Styles struct {
	Header         lipgloss.Style
	Title          lipgloss.Style
	ManagerBadge   lipgloss.Style
	PackageName    lipgloss.Style
	PackageVersion lipgloss.Style
	Description    lipgloss.Style
	Selected       lipgloss.Style
	Error          lipgloss.Style
	Footer         lipgloss.Style
	InputPrompt    lipgloss.Style
}

// DefaultStyles returns the standard browser styling.
func DefaultStyles() Styles {
	return Styles{
		Header:         lipgloss.NewStyle().Bold(true).Foreground(ColorPrimary),
		Title:          lipgloss.NewStyle().Bold(true),
		ManagerBadge:   lipgloss.NewStyle().Foreground(ColorAccent),
		PackageName:    lipgloss.NewStyle().Bold(true),
		PackageVersion: lipgloss.NewStyle().Foreground(ColorSuccess),
		Description:    lipgloss.NewStyle().Foreground(ColorMuted),
		Selected:       lipgloss.NewStyle().Bold(true).Foreground(ColorPrimary),
		Error:          lipgloss.NewStyle().Foreground(ColorError),
		Footer:         lipgloss.NewStyle().Background(ColorBgAlt).Foreground(ColorMuted).Padding(0, 1),
		InputPrompt:    lipgloss.NewStyle().Foreground(ColorAccent),
	}
}
