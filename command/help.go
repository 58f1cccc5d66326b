package command

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

const (
	helpColumnWidth   = 26
	helpColumnEntries = 14
)

var (
	groupStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("4"))
	keyStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	unboundStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
)

// RenderHelp lays groups out side by side in fixed-width columns. Groups
// longer than helpColumnEntries continue in a column with a blank header.
func RenderHelp(groups []HelpGroup) []string {
	var columns [][]string
	for _, g := range groups {
		for start := 0; start < len(g.Entries); start += helpColumnEntries {
			end := min(start+helpColumnEntries, len(g.Entries))
			header := ""
			if start == 0 {
				header = g.Name
			}
			col := []string{groupStyle.Render(pad(header, runewidth.StringWidth(header)))}
			for _, e := range g.Entries[start:end] {
				width := runewidth.StringWidth(e.Key) + 1 + runewidth.StringWidth(e.Text)
				col = append(col, pad(keyStyle.Render(e.Key)+" "+e.Text, width))
			}
			columns = append(columns, col)
		}
	}

	rows := 0
	for _, col := range columns {
		rows = max(rows, len(col))
	}
	blank := strings.Repeat(" ", helpColumnWidth)
	lines := make([]string, rows)
	for i := range lines {
		var b strings.Builder
		b.WriteString(" ")
		for _, col := range columns {
			if i < len(col) {
				b.WriteString(col[i])
			} else {
				b.WriteString(blank)
			}
		}
		lines[i] = b.String()
	}
	return lines
}

func pad(s string, width int) string {
	if width >= helpColumnWidth {
		return s
	}
	return s + strings.Repeat(" ", helpColumnWidth-width)
}

// UnboundLine renders the status line for an unbound key.
func UnboundLine(err *UnboundKeyError) string {
	return " " + unboundStyle.Render("Unbound suffix: ") + "'" + keyStyle.Render(displayKey(err.Key)) + "'"
}
