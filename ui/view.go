package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/gerunddev/jjdag/app"
	"github.com/gerunddev/jjdag/logtree"
	"github.com/gerunddev/jjdag/ui/borders"
	"github.com/gerunddev/jjdag/ui/floating"
	"github.com/gerunddev/jjdag/ui/theme"
)

func (a *App) View() string {
	if !a.ready {
		return "Loading..."
	}

	sections := []string{a.renderHeader(), a.renderLog()}
	if a.info.Height > 0 {
		sections = append(sections, a.renderInfo())
	}
	sections = append(sections, RenderContextualHelpBar(a.helpContext(), a.width))
	screen := strings.Join(sections, "\n")

	switch m := a.state.Modal().(type) {
	case *app.Popup:
		box, x, y := a.popup.View(m)
		screen = overlay(screen, box, x, y)
	case *app.TextInput:
		if !m.Kind.Inline() {
			box, x, y := a.textInput.View(m)
			screen = overlay(screen, box, x, y)
		}
	}
	return screen
}

// renderHeader draws the repository and revset lines, followed by a blank
// line.
func (a *App) renderHeader() string {
	revset := theme.HeaderValueStyle.Render(a.state.Revset())
	if in := a.inlineInput(app.InputRevset); in != nil {
		revset = floating.InlineInput(in, theme.InputStyle)
	}

	line := theme.HeaderLabelStyle.Render("repository: ") +
		theme.HeaderValueStyle.Render(a.state.DisplayRepository()) +
		theme.HeaderLabelStyle.Render("  revset: ") + revset
	if a.state.IgnoreImmutable() {
		line += theme.WarningStyle.Render("  --ignore-immutable")
	}
	return ansi.Truncate(line, a.width, "") + "\n"
}

// renderLog draws exactly logHeight lines of the tree, starting at the
// first node on screen.
func (a *App) renderLog() string {
	blocks := a.state.Blocks()
	selected := a.state.Selected()
	savedCommit, savedFile := a.state.SavedIndices()

	lines := make([]string, 0, a.logHeight)
	for idx := a.state.Offset(); idx < len(blocks) && len(lines) < a.logHeight; idx++ {
		node := a.state.NodeAt(idx)
		for i, line := range blocks[idx] {
			if len(lines) == a.logHeight {
				break
			}
			line = a.decorate(node, i, line)
			switch idx {
			case selected:
				line = highlight(line, theme.SelectedItemStyle, a.width)
			case savedCommit, savedFile:
				line = highlight(line, theme.SavedItemStyle, a.width)
			default:
				line = ansi.Truncate(line, a.width, "")
			}
			lines = append(lines, line)
		}
	}
	if len(blocks) == 0 {
		lines = append(lines, theme.DimmedStyle.Render("(no revisions)"))
	}
	for len(lines) < a.logHeight {
		lines = append(lines, "")
	}
	return strings.Join(lines[:a.logHeight], "\n")
}

// decorate colors one line of a node and splices in an inline editor that
// belongs to it.
func (a *App) decorate(node *logtree.Node, i int, line string) string {
	if node == nil {
		return line
	}
	switch node.Kind {
	case logtree.KindCommit:
		if in := a.inlineInput(app.InputBookmarkCreate); in != nil && in.ChangeID() == node.ChangeID && i == 0 {
			return line + " " + floating.InlineInput(in, theme.InputStyle)
		}
		if in := a.inlineInput(app.InputDescribe); in != nil && in.ChangeID() == node.ChangeID && i == 1 {
			gutter, _ := splitGutter(ansi.Strip(line))
			return gutter + floating.InlineInput(in, theme.InputStyle)
		}
		return line

	case logtree.KindFileDiff:
		gutter, rest := splitGutter(line)
		return gutter + statusStyle(node.Status).Render(rest)

	case logtree.KindHunk:
		gutter, rest := splitGutter(line)
		return gutter + theme.DiffHunkHeader.Render(rest)

	default:
		gutter, rest := splitGutter(line)
		style := theme.DiffContextLine
		switch {
		case strings.HasPrefix(node.Text, "+"):
			style = theme.DiffAddLine
		case strings.HasPrefix(node.Text, "-"):
			style = theme.DiffRemoveLine
		}
		return gutter + style.Render(rest)
	}
}

func (a *App) inlineInput(kind app.InputKind) *app.TextInput {
	in, ok := a.state.Modal().(*app.TextInput)
	if !ok || in.Kind != kind {
		return nil
	}
	return in
}

func (a *App) renderInfo() string {
	border := lipgloss.NewStyle().Foreground(theme.FloatingBorderColor).
		Render(strings.Repeat(borders.Horizontal, a.width))
	return border + "\n" + a.info.View()
}

func (a *App) helpContext() HelpBarContext {
	ctx := HelpBarContext{
		Pending: a.state.Pending(),
		Busy:    a.state.Busy(),
	}
	_, ctx.Saved = a.state.Saved()
	switch a.state.Modal().(type) {
	case *app.Popup:
		ctx.Modal = ModalPopup
	case *app.TextInput:
		ctx.Modal = ModalInput
	}
	return ctx
}

func statusStyle(status logtree.FileStatus) lipgloss.Style {
	switch status {
	case logtree.FileAdded:
		return theme.AddedStyle
	case logtree.FileDeleted:
		return theme.DeletedStyle
	case logtree.FileRenamed:
		return theme.RenamedStyle
	default:
		return theme.ModifiedStyle
	}
}

// splitGutter separates the graph columns at the start of a line from the
// text after them.
func splitGutter(line string) (gutter, rest string) {
	for i, r := range line {
		if !isGraphRune(r) {
			return line[:i], line[i:]
		}
	}
	return line, ""
}

func isGraphRune(r rune) bool {
	if r == ' ' || (r >= 0x2500 && r <= 0x257f) {
		return true
	}
	return strings.ContainsRune("○◆◉@×~|/\\*", r)
}

// highlight repaints a line in style, padded to the full width so the
// background covers the row.
func highlight(line string, style lipgloss.Style, width int) string {
	plain := ansi.Truncate(ansi.Strip(line), width, "")
	if pad := width - ansi.StringWidth(plain); pad > 0 {
		plain += strings.Repeat(" ", pad)
	}
	return style.Render(plain)
}

// overlay draws box over bg with its top-left corner at column x, row y.
func overlay(bg, box string, x, y int) string {
	if box == "" {
		return bg
	}
	bgLines := strings.Split(bg, "\n")
	for i, boxLine := range strings.Split(box, "\n") {
		row := y + i
		if row < 0 || row >= len(bgLines) {
			continue
		}
		line := bgLines[row]
		if w := ansi.StringWidth(line); w < x {
			line += strings.Repeat(" ", x-w)
		}
		left := ansi.Truncate(line, x, "")
		right := ansi.TruncateLeft(line, x+ansi.StringWidth(boxLine), "")
		bgLines[row] = left + ansi.ResetStyle + boxLine + ansi.ResetStyle + right
	}
	return strings.Join(bgLines, "\n")
}
