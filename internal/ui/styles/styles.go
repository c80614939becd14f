// Package styles provides shared lipgloss styles for UI components.
//
// This package centralizes color definitions and styling so the terminal
// reporter, prompts and spinner look the same.
package styles

import (
	"image/color"

	"charm.land/lipgloss/v2"
)

// Colors of the active theme. Replaced by Init.
var (
	// Primary is the main accent color (titles, borders)
	Primary color.Color = lipgloss.Color("62")

	// Accent is the highlight color for selected/active items
	Accent color.Color = lipgloss.Color("212")

	// Success is used for checkmarks and positive outcomes
	Success color.Color = lipgloss.Color("82")

	// Error is used for error messages
	Error color.Color = lipgloss.Color("196")

	// Muted is used for secondary text
	Muted color.Color = lipgloss.Color("240")

	// Normal is the standard text color
	Normal color.Color = lipgloss.Color("252")

	// Info is used for informational text
	Info color.Color = lipgloss.Color("244")

	// Warning is used for warnings and skipped items
	Warning color.Color = lipgloss.Color("214")
)

// Common styles
var (
	Bold = lipgloss.NewStyle().Bold(true)

	PrimaryStyle = lipgloss.NewStyle().Foreground(Primary)

	// AccentStyle applies the accent color with bold
	AccentStyle = lipgloss.NewStyle().
			Foreground(Accent).
			Bold(true)

	SuccessStyle = lipgloss.NewStyle().Foreground(Success)
	ErrorStyle   = lipgloss.NewStyle().Foreground(Error)
	WarningStyle = lipgloss.NewStyle().Foreground(Warning)
	MutedStyle   = lipgloss.NewStyle().Foreground(Muted)
	NormalStyle  = lipgloss.NewStyle().Foreground(Normal)

	// InfoStyle applies the info color with italic
	InfoStyle = lipgloss.NewStyle().
			Foreground(Info).
			Italic(true)

	// StepStyle renders phase headers ("Step 2/5: ...")
	StepStyle = lipgloss.NewStyle().
			Foreground(Primary).
			Bold(true)
)

// RoundedBorder frames titled blocks (rollback info, next steps).
var RoundedBorder = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	BorderForeground(Primary).
	Padding(0, 1)
