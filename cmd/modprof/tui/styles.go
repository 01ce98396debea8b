package tui

import (
	catppuccin "github.com/catppuccin/go"
	"github.com/charmbracelet/lipgloss"
)

// Catppuccin Mocha palette.
var flavor = catppuccin.Mocha

// Color constants extracted from the Mocha palette for convenience.
var (
	colorBase     = lipgloss.Color(flavor.Base().Hex)
	colorMantle   = lipgloss.Color(flavor.Mantle().Hex)
	colorSurface1 = lipgloss.Color(flavor.Surface1().Hex)
	colorText     = lipgloss.Color(flavor.Text().Hex)
	colorSubtext0 = lipgloss.Color(flavor.Subtext0().Hex)
	colorBlue     = lipgloss.Color(flavor.Blue().Hex)
	colorGreen    = lipgloss.Color(flavor.Green().Hex)
	colorRed      = lipgloss.Color(flavor.Red().Hex)
	colorYellow   = lipgloss.Color(flavor.Yellow().Hex)
	colorOverlay0 = lipgloss.Color(flavor.Overlay0().Hex)
)

// Dialog styles.
var (
	// DialogStyle is the border and background for the profile dialog.
	DialogStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorBlue).
			Background(colorMantle).
			Foreground(colorText).
			Padding(1, 2)

	// DialogTitleStyle is used for the dialog title.
	DialogTitleStyle = lipgloss.NewStyle().
				Foreground(colorBlue).
				Bold(true)

	// DialogButtonActiveStyle is used for the focused control.
	DialogButtonActiveStyle = lipgloss.NewStyle().
				Foreground(colorBase).
				Background(colorBlue).
				Padding(0, 2)

	// DialogButtonInactiveStyle is used for unfocused controls.
	DialogButtonInactiveStyle = lipgloss.NewStyle().
					Foreground(colorText).
					Background(colorSurface1).
					Padding(0, 2)

	// DialogButtonDisabledStyle is used for the Save control when the
	// name field is empty.
	DialogButtonDisabledStyle = lipgloss.NewStyle().
					Foreground(colorOverlay0).
					Background(colorSurface1).
					Padding(0, 2)

	// DialogErrorStyle is used for the fetch error line.
	DialogErrorStyle = lipgloss.NewStyle().
				Foreground(colorRed)

	// DialogHintStyle is used for the key hint footer.
	DialogHintStyle = lipgloss.NewStyle().
			Foreground(colorOverlay0)
)

// Profile list styles.
var (
	// RowCursorStyle marks the focused profile row.
	RowCursorStyle = lipgloss.NewStyle().
			Foreground(colorBlue).
			Bold(true)

	// CurrentProfileStyle marks the active profile in the list.
	CurrentProfileStyle = lipgloss.NewStyle().
				Foreground(colorGreen)

	// AccountSuffixStyle dims the associated-account suffix on a row.
	AccountSuffixStyle = lipgloss.NewStyle().
				Foreground(colorOverlay0).
				Italic(true)

	// PlaceholderStyle renders the empty-list message.
	PlaceholderStyle = lipgloss.NewStyle().
				Foreground(colorOverlay0)
)

// Background view styles.
var (
	// AppTitleStyle is the header of the main screen.
	AppTitleStyle = lipgloss.NewStyle().
			Foreground(colorYellow).
			Bold(true)

	// StatusLineStyle is the footer line of the main screen.
	StatusLineStyle = lipgloss.NewStyle().
			Foreground(colorSubtext0)
)
