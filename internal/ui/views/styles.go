package views

import (
	"github.com/charmbracelet/lipgloss"
)

// Styles contains all the style definitions for the UI
type Styles struct {
	Title        lipgloss.Style
	Heading      lipgloss.Style
	TabActive    lipgloss.Style
	TabInactive  lipgloss.Style
	Dim          lipgloss.Style
	Search       lipgloss.Style
	SortActive   lipgloss.Style
	SortInactive lipgloss.Style
	Help         lipgloss.Style
	Main         lipgloss.Style
	Scroll       lipgloss.Style
	Highlight    lipgloss.Style
	SelectionBg  lipgloss.Style
	Number       lipgloss.Style
	Card         lipgloss.Style
	CardLabel    lipgloss.Style
	CardValue    lipgloss.Style
	Bar          lipgloss.Style
	Notification lipgloss.Style
	Empty        lipgloss.Style
	Loading      lipgloss.Style
	InfoBox      lipgloss.Style
}

// NewStyles creates a new Styles instance with default values
func NewStyles() *Styles {
	return &Styles{
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("99")),
		Heading: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39")),
		TabActive: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("230")).
			Background(lipgloss.Color("62")).
			Padding(0, 1),
		TabInactive: lipgloss.NewStyle().
			Foreground(lipgloss.Color("245")).
			Padding(0, 1),
		Dim:          lipgloss.NewStyle().Faint(true),
		Search:       lipgloss.NewStyle().Foreground(lipgloss.Color("214")), // yellow
		SortActive:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("78")),
		SortInactive: lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		Help:         lipgloss.NewStyle().Faint(true),
		Main:         lipgloss.NewStyle().Padding(1, 2),
		Scroll:       lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Italic(true),
		Highlight:    lipgloss.NewStyle().Foreground(lipgloss.Color("226")).Bold(true),
		SelectionBg:  lipgloss.NewStyle().Background(lipgloss.Color("238")),
		Number:       lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		Card: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("62")).
			Padding(0, 2).
			MarginRight(1),
		CardLabel: lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		CardValue: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("230")),
		Bar:       lipgloss.NewStyle().Foreground(lipgloss.Color("62")),
		Notification: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("231")).
			Background(lipgloss.Color("160")).
			Padding(0, 1),
		Empty:   lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Italic(true),
		Loading: lipgloss.NewStyle().Foreground(lipgloss.Color("241")), // gray
		InfoBox: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			Padding(1).
			BorderForeground(lipgloss.Color("241")),
	}
}
