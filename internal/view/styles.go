package view

import "github.com/charmbracelet/lipgloss"

// Colors.
//
//nolint:gochecknoglobals // Shared lipgloss palette.
var (
	ColorHeading = lipgloss.Color("39")
	ColorError   = lipgloss.Color("196")
	ColorMuted   = lipgloss.Color("245")
	ColorSpinner = lipgloss.Color("205")
)

// Styles used by the styled renderer and the interactive view.
//
//nolint:gochecknoglobals // Shared lipgloss styles.
var (
	HeadingStyle      = lipgloss.NewStyle().Bold(true).Foreground(ColorHeading)
	PostTitleStyle    = lipgloss.NewStyle().Bold(true)
	PostBodyStyle     = lipgloss.NewStyle().PaddingLeft(bodyIndent)
	KeyStyle          = lipgloss.NewStyle().Foreground(ColorMuted)
	ErrorHeadingStyle = lipgloss.NewStyle().Bold(true).Foreground(ColorError)
	MutedStyle        = lipgloss.NewStyle().Foreground(ColorMuted)
	LoadingStyle      = lipgloss.NewStyle().Foreground(ColorSpinner).Bold(true)
)
