package floating

import (
	"strings"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/gerunddev/jjdag/app"
	"github.com/gerunddev/jjdag/ui/borders"
	"github.com/gerunddev/jjdag/ui/theme"
)

// TextInputOverlay is a floating window for the prompts that are not edited
// in place.
type TextInputOverlay struct {
	width  int
	height int
}

func NewTextInputOverlay() *TextInputOverlay {
	return &TextInputOverlay{}
}

func (t *TextInputOverlay) SetSize(width, height int) {
	t.width = width
	t.height = height
}

// View draws the prompt for in and the position of its top-left corner.
func (t *TextInputOverlay) View(in *app.TextInput) (box string, x, y int) {
	windowWidth := min(70, t.width-4)
	windowHeight := 6
	if windowWidth < 10 {
		return "", 0, 0
	}

	ti := inputModel(in, theme.NormalItemStyle, min(60, windowWidth-8))
	ti.Prompt = "> "

	lines := []string{
		"",
		" " + ti.View(),
		"",
		theme.HelpDescStyle.Render(" enter save • esc cancel"),
	}
	box = borders.RenderTitledBorder(strings.Join(lines, "\n"), in.Prompt, windowWidth, windowHeight,
		theme.FloatingBorderColor, theme.FloatingTitleStyle)
	return box, (t.width - windowWidth) / 2, max((t.height-windowHeight)/2, 0)
}

// InlineInput renders in for editing in place in the log or the header.
func InlineInput(in *app.TextInput, style lipgloss.Style) string {
	width := max(ansi.StringWidth(in.Placeholder), ansi.StringWidth(in.Value())) + 1
	return inputModel(in, style, width).View()
}

// inputModel loads in into a textinput model, which only draws it: keys are
// applied to in by the state machine.
func inputModel(in *app.TextInput, style lipgloss.Style, width int) textinput.Model {
	ti := textinput.New()
	ti.Prompt = ""
	ti.Width = width
	ti.Placeholder = in.Placeholder
	ti.CharLimit = 500
	ti.TextStyle = style
	ti.PlaceholderStyle = theme.DimmedStyle
	ti.Cursor.Style = lipgloss.NewStyle().Foreground(theme.ColorBlue)
	ti.Cursor.SetMode(cursor.CursorStatic)
	ti.Focus()
	ti.SetValue(in.Value())
	ti.SetCursor(in.Cursor())
	return ti
}
