package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"

	"github.com/gerunddev/jjdag/ui/theme"
)

// ModalKind is the prompt, if any, that takes the keys.
type ModalKind int

const (
	ModalNone ModalKind = iota
	ModalInput
	ModalPopup
)

// HelpBarContext captures the current UI state for help bar rendering
type HelpBarContext struct {
	Modal   ModalKind
	Pending []string // keys of an unfinished command sequence
	Saved   bool     // a two-step command is waiting for its destination
	Busy    bool     // invocations are queued
}

// HelpHint represents a single hint (key + description)
type HelpHint struct {
	Key  string
	Desc string
}

// Format renders a hint as "key desc" in uniform dim color
func (h HelpHint) Format() string {
	return theme.HelpDescStyle.Render(h.Key + " " + h.Desc)
}

var cancelBinding = key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel"))

// getActionHints returns context-specific action hints (left section)
func getActionHints(ctx HelpBarContext) []HelpHint {
	switch {
	case ctx.Busy:
		return []HelpHint{{Key: "…", Desc: "running"}}
	case ctx.Modal == ModalPopup:
		return []HelpHint{{Key: "↵", Desc: "select"}}
	case ctx.Modal == ModalInput:
		return []HelpHint{{Key: "↵", Desc: "save"}}
	case ctx.Saved:
		return []HelpHint{{Key: "↵", Desc: "destination"}}
	case len(ctx.Pending) > 0:
		return []HelpHint{{Key: strings.Join(ctx.Pending, " "), Desc: "…"}}
	}
	return []HelpHint{
		{Key: "↵", Desc: "edit"},
		{Key: "tab", Desc: "fold"},
	}
}

// getNavigationHints returns context-specific navigation hints (center section)
func getNavigationHints(ctx HelpBarContext) []HelpHint {
	switch ctx.Modal {
	case ModalPopup:
		return []HelpHint{
			{Key: "↑↓", Desc: "navigate"},
			{Key: "type", Desc: "filter"},
		}
	case ModalInput:
		return []HelpHint{{Key: "←→", Desc: "move"}}
	}
	if ctx.Saved {
		return []HelpHint{{Key: "jk", Desc: "select destination"}}
	}
	return []HelpHint{
		{Key: "jk", Desc: "move"},
		{Key: "hl", Desc: "siblings"},
		{Key: "K", Desc: "parent"},
	}
}

// getAlwaysBindings returns the bindings shown at the right of the bar
func getAlwaysBindings(ctx HelpBarContext) []key.Binding {
	if ctx.Modal != ModalNone || ctx.Saved || len(ctx.Pending) > 0 {
		return []key.Binding{cancelBinding}
	}
	return DefaultKeyMap().ShortHelp()
}

func newShortHelp() help.Model {
	h := help.New()
	h.ShortSeparator = "  "
	h.Styles.ShortKey = theme.HelpDescStyle
	h.Styles.ShortDesc = theme.HelpDescStyle
	h.Styles.ShortSeparator = theme.HelpDescStyle
	return h
}

// formatHints joins hints with double spaces
func formatHints(hints []HelpHint) string {
	if len(hints) == 0 {
		return ""
	}

	parts := make([]string, len(hints))
	for i, h := range hints {
		parts[i] = h.Format()
	}
	return strings.Join(parts, "  ")
}

// RenderContextualHelpBar renders the three-section help bar
func RenderContextualHelpBar(ctx HelpBarContext, width int) string {
	leftSection := formatHints(getActionHints(ctx))
	centerSection := formatHints(getNavigationHints(ctx))
	rightSection := newShortHelp().ShortHelpView(getAlwaysBindings(ctx))

	leftWidth := lipgloss.Width(leftSection)
	centerWidth := lipgloss.Width(centerSection)
	rightWidth := lipgloss.Width(rightSection)

	availableSpace := width - (leftWidth + centerWidth + rightWidth)
	if availableSpace < 6 {
		return theme.HelpBarStyle.Width(width).MaxHeight(1).Render(
			leftSection + "  " + centerSection + "  " + rightSection,
		)
	}

	// Layout: [left].....[center].....[right], center roughly in the middle
	midPoint := width / 2
	centerStart := midPoint - centerWidth/2
	leftToCenter := max(centerStart-leftWidth, 2)

	centerEnd := centerStart + centerWidth
	rightStart := width - rightWidth
	centerToRight := max(rightStart-centerEnd, 2)

	bar := leftSection + strings.Repeat(" ", leftToCenter) + centerSection + strings.Repeat(" ", centerToRight) + rightSection
	return theme.HelpBarStyle.Width(width).MaxHeight(1).Render(bar)
}
