package views

import (
	"github.com/charmbracelet/lipgloss"
)

// Styles contains all the style definitions for the UI
type Styles struct {
	Title         lipgloss.Style
	Label         lipgloss.Style
	FocusedLabel  lipgloss.Style
	Button        lipgloss.Style
	FocusedButton lipgloss.Style
	CancelButton  lipgloss.Style
	Dim           lipgloss.Style
	Help          lipgloss.Style
	Main          lipgloss.Style
	Loading       lipgloss.Style
	NotFound      lipgloss.Style
	Cancelled     lipgloss.Style
	Error         lipgloss.Style
	Notice        lipgloss.Style
	ResultKey     lipgloss.Style
	ResultValue   lipgloss.Style
}

// NewStyles creates a new Styles instance with default values
func NewStyles() *Styles {
	return &Styles{
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("99")).
			MarginBottom(1),
		Label:        lipgloss.NewStyle().Foreground(lipgloss.Color("252")).Width(8),
		FocusedLabel: lipgloss.NewStyle().Foreground(lipgloss.Color("226")).Bold(true).Width(8),
		Button: lipgloss.NewStyle().
			Foreground(lipgloss.Color("252")).
			Background(lipgloss.Color("238")).
			Padding(0, 2),
		FocusedButton: lipgloss.NewStyle().
			Foreground(lipgloss.Color("230")).
			Background(lipgloss.Color("99")).
			Bold(true).
			Padding(0, 2),
		CancelButton: lipgloss.NewStyle().
			Foreground(lipgloss.Color("230")).
			Background(lipgloss.Color("203")).
			Bold(true).
			Padding(0, 2),
		Dim:         lipgloss.NewStyle().Faint(true),
		Help:        lipgloss.NewStyle().Faint(true),
		Main:        lipgloss.NewStyle().Padding(1, 2),
		Loading:     lipgloss.NewStyle().Foreground(lipgloss.Color("241")), // gray
		NotFound:    lipgloss.NewStyle().Foreground(lipgloss.Color("214")), // yellow
		Cancelled:   lipgloss.NewStyle().Foreground(lipgloss.Color("51")),  // cyan
		Error:       lipgloss.NewStyle().Foreground(lipgloss.Color("203")), // red
		Notice:      lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Italic(true),
		ResultKey:   lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		ResultValue: lipgloss.NewStyle().Foreground(lipgloss.Color("78")), // green
	}
}
