package floating

import (
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"

	"github.com/gerunddev/jjdag/app"
	"github.com/gerunddev/jjdag/ui/theme"
)

func TestTextInputOverlay_View(t *testing.T) {
	tests := []struct {
		name          string
		width, height int
		wantX, wantY  int
		wantWidth     int
	}{
		{"wide terminal", 100, 30, 15, 12, 70},
		{"narrow terminal", 40, 10, 2, 2, 36},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := NewTextInputOverlay()
			o.SetSize(tt.width, tt.height)
			box, x, y := o.View(&app.TextInput{Kind: app.InputBookmarkRename, Prompt: "Rename Bookmark"})

			if x != tt.wantX || y != tt.wantY {
				t.Errorf("got position (%d, %d), want (%d, %d)", x, y, tt.wantX, tt.wantY)
			}
			lines := strings.Split(ansi.Strip(box), "\n")
			if len(lines) != 6 {
				t.Fatalf("got %d lines, want 6", len(lines))
			}
			for i, line := range lines {
				if w := ansi.StringWidth(line); w != tt.wantWidth {
					t.Errorf("line %d: got width %d, want %d", i, w, tt.wantWidth)
				}
			}
			if !strings.Contains(lines[0], "Rename Bookmark") {
				t.Errorf("title missing from %q", lines[0])
			}
			if !strings.Contains(lines[4], "esc cancel") {
				t.Errorf("help missing from %q", lines[4])
			}
		})
	}
}

func TestTextInputOverlay_TooSmall(t *testing.T) {
	o := NewTextInputOverlay()
	o.SetSize(12, 5)
	if box, _, _ := o.View(&app.TextInput{Prompt: "x"}); box != "" {
		t.Errorf("got %q, want empty", box)
	}
}

func TestInlineInput_ShowsPlaceholder(t *testing.T) {
	got := ansi.Strip(InlineInput(&app.TextInput{Placeholder: "bookmark name"}, theme.InputStyle))
	if !strings.Contains(got, "ookmark name") {
		t.Errorf("got %q, want the placeholder", got)
	}
}
