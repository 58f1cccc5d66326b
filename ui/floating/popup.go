package floating

import (
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	"github.com/charmbracelet/x/ansi"

	"github.com/gerunddev/jjdag/app"
	"github.com/gerunddev/jjdag/ui/borders"
	"github.com/gerunddev/jjdag/ui/prefix"
	"github.com/gerunddev/jjdag/ui/theme"
)

// PopupOverlay is a floating, filterable list of choices.
type PopupOverlay struct {
	viewport viewport.Model
	width    int
	height   int

	// unique change id prefixes of the jump popup
	ids     *prefix.IDSet
	idsFrom *app.Popup
}

func NewPopupOverlay() *PopupOverlay {
	return &PopupOverlay{viewport: viewport.New(0, 0)}
}

func (p *PopupOverlay) SetSize(width, height int) {
	p.width = width
	p.height = height
}

// View draws popup and the position of its top-left corner.
func (p *PopupOverlay) View(popup *app.Popup) (box string, x, y int) {
	windowWidth := min(max(p.width*2/3, 40), 60, p.width)
	windowHeight := min(max(p.height*2/3, 10), 20, p.height)
	if windowWidth < 10 || windowHeight < 7 {
		return "", 0, 0
	}
	contentWidth := windowWidth - 2

	// filter, blank line above the items, blank line and help below
	p.viewport.Width = contentWidth
	p.viewport.Height = windowHeight - 2 - 4
	p.viewport.SetContent(p.renderItems(popup, contentWidth))
	p.ensureCursorVisible(popup.Index())

	lines := []string{
		" > " + popup.Filter() + theme.InputStyle.Render("_"),
		"",
		p.viewport.View(),
		"",
		theme.HelpDescStyle.Render(" enter select • esc cancel • ↑↓ navigate"),
	}
	box = borders.RenderTitledBorder(strings.Join(lines, "\n"), popup.Title(), windowWidth, windowHeight,
		theme.FloatingBorderColor, theme.FloatingTitleStyle)
	return box, (p.width - windowWidth) / 2, (p.height - windowHeight) / 2
}

func (p *PopupOverlay) ensureCursorVisible(index int) {
	switch {
	case index < p.viewport.YOffset:
		p.viewport.SetYOffset(index)
	case index >= p.viewport.YOffset+p.viewport.Height:
		p.viewport.SetYOffset(index - p.viewport.Height + 1)
	}
}

func (p *PopupOverlay) renderItems(popup *app.Popup, width int) string {
	if popup.Kind == app.PopupJump && p.idsFrom != popup {
		ids := make([]string, len(popup.Items))
		for i, item := range popup.Items {
			ids[i], _, _ = strings.Cut(item, " ")
		}
		p.ids = prefix.NewIDSet(ids)
		p.idsFrom = popup
	}

	items := popup.Filtered()
	if len(items) == 0 {
		return theme.DimmedStyle.Render("   no matches")
	}
	lines := make([]string, len(items))
	for i, item := range items {
		if i == popup.Index() {
			line := ansi.Truncate(" ▸ "+item, width, "…")
			lines[i] = theme.PopupSelectedStyle.Render(line + strings.Repeat(" ", max(width-ansi.StringWidth(line), 0)))
			continue
		}
		lines[i] = ansi.Truncate("   "+p.formatItem(popup, item), width, "…")
	}
	return strings.Join(lines, "\n")
}

// formatItem highlights the unique prefix of the change id that starts
// every jump item.
func (p *PopupOverlay) formatItem(popup *app.Popup, item string) string {
	if popup.Kind != app.PopupJump || p.ids == nil {
		return item
	}
	id, rest, _ := strings.Cut(item, " ")
	return p.ids.Format(id, theme.ChangeIDPrefixStyle, theme.ChangeIDRestStyle) + " " + theme.NormalItemStyle.Render(rest)
}
