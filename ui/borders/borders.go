// Package borders draws rounded frames with a title set into the top edge.
package borders

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

const (
	TopLeft     = "╭"
	TopRight    = "╮"
	BottomLeft  = "╰"
	BottomRight = "╯"
	Horizontal  = "─"
	Vertical    = "│"
)

// RenderTitledBorder frames content in a width x height box. Content lines
// are cut or padded to fit.
func RenderTitledBorder(content, title string, width, height int, color lipgloss.TerminalColor, titleStyle lipgloss.Style) string {
	if width < 4 || height < 2 {
		return ""
	}
	border := lipgloss.NewStyle().Foreground(color)
	inner := width - 2

	lines := make([]string, 0, height)
	lines = append(lines, TopLine(title, width, color, titleStyle))

	body := strings.Split(content, "\n")
	for i := 0; i < height-2; i++ {
		line := ""
		if i < len(body) {
			line = ansi.Truncate(body[i], inner, "")
		}
		if pad := inner - ansi.StringWidth(line); pad > 0 {
			line += strings.Repeat(" ", pad)
		}
		lines = append(lines, border.Render(Vertical)+line+border.Render(Vertical))
	}

	lines = append(lines, border.Render(BottomLeft+strings.Repeat(Horizontal, inner)+BottomRight))
	return strings.Join(lines, "\n")
}

// TopLine is the top edge of a frame with the title after the corner.
func TopLine(title string, width int, color lipgloss.TerminalColor, titleStyle lipgloss.Style) string {
	border := lipgloss.NewStyle().Foreground(color)
	if title == "" {
		return border.Render(TopLeft + strings.Repeat(Horizontal, max(width-2, 0)) + TopRight)
	}
	styled := titleStyle.Render(" " + title + " ")
	rest := max(width-3-lipgloss.Width(styled), 0)
	return border.Render(TopLeft+Horizontal) + styled + border.Render(strings.Repeat(Horizontal, rest)+TopRight)
}
