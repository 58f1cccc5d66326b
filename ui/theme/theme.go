// Package theme holds the colors and styles shared by the log view and its
// floating windows.
package theme

import "github.com/charmbracelet/lipgloss"

var (
	ColorYellow  = lipgloss.Color("#f1fa8c")
	ColorOrange  = lipgloss.Color("#ffb86c")
	ColorRed     = lipgloss.Color("#ff5555")
	ColorMagenta = lipgloss.Color("#ff79c6")
	ColorBlue    = lipgloss.Color("#6272a4")
	ColorCyan    = lipgloss.Color("#8be9fd")
	ColorGreen   = lipgloss.Color("#50fa7b")
	ColorWhite   = lipgloss.Color("#f8f8f2")
	ColorDim     = lipgloss.Color("#7f7f8c")

	// Row backgrounds of the cursor and of the saved selection.
	ColorSelection      = lipgloss.Color("#282a36")
	ColorSavedSelection = lipgloss.Color("#21232d")
)

var (
	SelectedItemStyle = lipgloss.NewStyle().Bold(true).Background(ColorSelection)
	SavedItemStyle    = lipgloss.NewStyle().Background(ColorSavedSelection)
	NormalItemStyle   = lipgloss.NewStyle().Foreground(ColorWhite)
	DimmedStyle       = lipgloss.NewStyle().Foreground(ColorDim)

	// File statuses
	ModifiedStyle = lipgloss.NewStyle().Foreground(ColorCyan)
	AddedStyle    = lipgloss.NewStyle().Foreground(ColorGreen)
	DeletedStyle  = lipgloss.NewStyle().Foreground(ColorRed)
	RenamedStyle  = lipgloss.NewStyle().Foreground(ColorMagenta)

	DiffAddLine     = lipgloss.NewStyle().Foreground(ColorGreen)
	DiffRemoveLine  = lipgloss.NewStyle().Foreground(ColorRed)
	DiffContextLine = lipgloss.NewStyle().Foreground(ColorWhite)
	DiffHunkHeader  = lipgloss.NewStyle().Foreground(ColorMagenta)

	ChangeIDPrefixStyle = lipgloss.NewStyle().Bold(true).Foreground(ColorMagenta)
	ChangeIDRestStyle   = lipgloss.NewStyle().Foreground(ColorDim)

	HeaderLabelStyle = lipgloss.NewStyle().Foreground(ColorBlue)
	HeaderValueStyle = lipgloss.NewStyle().Foreground(ColorGreen)
	WarningStyle     = lipgloss.NewStyle().Foreground(ColorRed)

	// Text being edited and the character under its cursor.
	InputStyle  = lipgloss.NewStyle().Foreground(ColorYellow)
	CursorStyle = lipgloss.NewStyle().Background(ColorBlue).Foreground(ColorWhite)

	FloatingBorderColor = ColorBlue
	FloatingTitleStyle  = lipgloss.NewStyle().Bold(true).Foreground(ColorYellow)
	PopupSelectedStyle  = lipgloss.NewStyle().Bold(true).Background(ColorBlue)

	HelpBarStyle  = lipgloss.NewStyle().Foreground(ColorDim)
	HelpDescStyle = lipgloss.NewStyle().Foreground(ColorDim)
	HelpKeyStyle  = lipgloss.NewStyle().Foreground(ColorYellow)
)
