package common

import "github.com/charmbracelet/lipgloss"

// ANSI 256 palette. Brand blue is #003366 / #005F9E in the web UI.
const (
	COLOR_ACCENT    = "25" // #005faf
	COLOR_BRAND     = "17" // #00005f, header background
	COLOR_WHITE     = "255"
	COLOR_DIM       = "245"
	COLOR_HELP      = "241"
	COLOR_SECONDARY = "109"
	COLOR_SUCCESS   = "35"  // #00af5f
	COLOR_ERROR     = "160" // #d70000
	COLOR_WARNING   = "214" // #ffaf00
	COLOR_NEW       = "34"  // badge for new blocks
	COLOR_UPDATED   = "33"  // badge for updated blocks
	COLOR_SCRIPT    = "208" // "S" marker
	COLOR_LINK      = "75"
)

var (
	CaptionStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(COLOR_ACCENT)).
			Bold(true)

	ListItemStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(COLOR_WHITE))

	ListItemSelectedStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color(COLOR_ACCENT)).
				Bold(true)

	ListBadgeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(COLOR_DIM))

	ListBadgeMutedStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color(COLOR_HELP)).
				Italic(true)

	ListBadgeEnabledStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color(COLOR_SUCCESS))

	ListEmptyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(COLOR_DIM)).
			Italic(true)

	ListStatusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(COLOR_SUCCESS))

	ListErrorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(COLOR_ERROR)).
			Bold(true)

	NewBadgeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(COLOR_WHITE)).
			Background(lipgloss.Color(COLOR_NEW)).
			Padding(0, 1)

	UpdatedBadgeStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color(COLOR_WHITE)).
				Background(lipgloss.Color(COLOR_UPDATED)).
				Padding(0, 1)

	ScriptMarkerStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color(COLOR_WHITE)).
				Background(lipgloss.Color(COLOR_SCRIPT)).
				Bold(true).
				Padding(0, 1)

	ReadMarkStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(COLOR_SUCCESS)).
			Bold(true)

	HelpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(COLOR_HELP))
)

const (
	ListSelectedPrefix   = "▸ "
	ListUnselectedPrefix = "  "
)
