package app

import (
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/lithammer/fuzzysearch/fuzzy"
)

// Modal is a prompt that takes every key until it is submitted or
// cancelled: *TextInput or *Popup.
type Modal interface {
	isModal()
}

// InputKind says what a submitted text input does.
type InputKind int

const (
	InputRevset InputKind = iota
	InputBookmarkCreate
	InputDescribe
	InputBookmarkRename
	InputAuthor
	InputAuthorTimestamp
	InputParallelizeRevset
	InputNextPrevOffset
	InputWorkspaceAdd
	InputWorkspaceRename
)

// Inline reports whether the input is edited in place in the log or header
// rather than in a floating prompt.
func (k InputKind) Inline() bool {
	return k == InputRevset || k == InputBookmarkCreate || k == InputDescribe
}

// TextInput is a one-line editor. Cursor counts runes.
type TextInput struct {
	Kind        InputKind
	Prompt      string
	Placeholder string

	buf    []rune
	cursor int

	// context for the submit
	changeID        string
	target          string
	ignoreImmutable bool
	original        string
}

func (*TextInput) isModal() {}

func newTextInput(kind InputKind, prompt, placeholder, value string) *TextInput {
	buf := []rune(value)
	return &TextInput{Kind: kind, Prompt: prompt, Placeholder: placeholder, buf: buf, cursor: len(buf)}
}

func (t *TextInput) Value() string { return string(t.buf) }

func (t *TextInput) Cursor() int { return t.cursor }

// ChangeID is the revision an inline input belongs to.
func (t *TextInput) ChangeID() string { return t.changeID }

func (t *TextInput) Insert(r rune) {
	t.buf = append(t.buf, 0)
	copy(t.buf[t.cursor+1:], t.buf[t.cursor:])
	t.buf[t.cursor] = r
	t.cursor++
}

func (t *TextInput) Backspace() {
	if t.cursor == 0 {
		return
	}
	t.buf = append(t.buf[:t.cursor-1], t.buf[t.cursor:]...)
	t.cursor--
}

func (t *TextInput) Delete() {
	if t.cursor < len(t.buf) {
		t.buf = append(t.buf[:t.cursor], t.buf[t.cursor+1:]...)
	}
}

func (t *TextInput) Left() {
	if t.cursor > 0 {
		t.cursor--
	}
}

func (t *TextInput) Right() {
	if t.cursor < len(t.buf) {
		t.cursor++
	}
}

func (t *TextInput) Home() { t.cursor = 0 }

func (t *TextInput) End() { t.cursor = len(t.buf) }

// handleKey edits the buffer. It reports false for keys it does not use.
func (t *TextInput) handleKey(key string) bool {
	switch key {
	case "backspace", "ctrl+h":
		t.Backspace()
	case "delete", "ctrl+d":
		t.Delete()
	case "left", "ctrl+b":
		t.Left()
	case "right", "ctrl+f":
		t.Right()
	case "home", "ctrl+a":
		t.Home()
	case "end", "ctrl+e":
		t.End()
	case "space":
		t.Insert(' ')
	default:
		r, size := utf8.DecodeRuneInString(key)
		if size == 0 || size != len(key) || r == utf8.RuneError {
			return false
		}
		t.Insert(r)
	}
	return true
}

// PopupKind says what choosing a popup item does.
type PopupKind int

const (
	PopupBookmarkDelete PopupKind = iota
	PopupBookmarkForget
	PopupBookmarkRename
	PopupBookmarkSet
	PopupBookmarkTrack
	PopupBookmarkUntrack
	PopupFileTrack
	PopupGitFetchRemote
	PopupGitFetchRemoteBranch
	PopupGitPushBookmark
	PopupGitPushNamed
	PopupWorkspaceForget
	PopupWorkspaceUpdateStale
	PopupJump
)

var popupTitles = map[PopupKind]string{
	PopupBookmarkDelete:       "Delete Bookmark",
	PopupBookmarkForget:       "Forget Bookmark",
	PopupBookmarkRename:       "Rename Bookmark",
	PopupBookmarkSet:          "Set Bookmark",
	PopupBookmarkTrack:        "Track Remote Bookmark",
	PopupBookmarkUntrack:      "Untrack Remote Bookmark",
	PopupFileTrack:            "Track File",
	PopupGitFetchRemote:       "Fetch From Remote",
	PopupGitFetchRemoteBranch: "Fetch Branch",
	PopupGitPushBookmark:      "Push Bookmark",
	PopupGitPushNamed:         "Push Named Bookmark",
	PopupWorkspaceForget:      "Forget Workspace",
	PopupWorkspaceUpdateStale: "Update Stale Workspace",
	PopupJump:                 "Jump To Revision",
}

// Popup is a filterable list of choices.
type Popup struct {
	Kind  PopupKind
	Items []string

	filter   []rune
	index    int
	filtered []string

	// context for the choice
	changeID       string
	remote         string
	includeRemotes bool
	selectBranches bool
}

func (*Popup) isModal() {}

func newPopup(kind PopupKind, items []string) *Popup {
	p := &Popup{Kind: kind, Items: items}
	p.refilter()
	return p
}

func (p *Popup) Title() string {
	if p.Kind == PopupGitFetchRemoteBranch && p.remote != "" {
		return "Fetch Branch From " + p.remote
	}
	return popupTitles[p.Kind]
}

func (p *Popup) Filter() string { return string(p.filter) }

// Index is the highlighted row of Filtered.
func (p *Popup) Index() int { return p.index }

// Filtered returns the items matching the filter. Most popups keep items
// whose text contains the filter, ignoring case, in their original order.
// The jump popup ranks fuzzy matches instead.
func (p *Popup) Filtered() []string {
	return p.filtered
}

// Selected returns the highlighted item.
func (p *Popup) Selected() (string, bool) {
	if p.index < 0 || p.index >= len(p.filtered) {
		return "", false
	}
	return p.filtered[p.index], true
}

func (p *Popup) SetFilter(filter string) {
	p.filter = []rune(filter)
	p.refilter()
}

func (p *Popup) Next() {
	if p.index+1 < len(p.filtered) {
		p.index++
	}
}

func (p *Popup) Prev() {
	if p.index > 0 {
		p.index--
	}
}

func (p *Popup) refilter() {
	filter := string(p.filter)
	switch {
	case filter == "":
		p.filtered = p.Items
	case p.Kind == PopupJump:
		ranks := fuzzy.RankFindNormalizedFold(filter, p.Items)
		sort.Stable(ranks)
		p.filtered = make([]string, len(ranks))
		for i, r := range ranks {
			p.filtered[i] = r.Target
		}
	default:
		needle := strings.ToLower(filter)
		p.filtered = nil
		for _, item := range p.Items {
			if strings.Contains(strings.ToLower(item), needle) {
				p.filtered = append(p.filtered, item)
			}
		}
	}
	p.index = 0
}

// handleKey moves the highlight or edits the filter. It reports false for
// keys it does not use.
func (p *Popup) handleKey(key string) bool {
	switch key {
	case "down", "ctrl+n", "tab":
		p.Next()
	case "up", "ctrl+p", "shift+tab":
		p.Prev()
	case "backspace", "ctrl+h":
		if len(p.filter) > 0 {
			p.filter = p.filter[:len(p.filter)-1]
			p.refilter()
		}
	case "space":
		p.filter = append(p.filter, ' ')
		p.refilter()
	default:
		r, size := utf8.DecodeRuneInString(key)
		if size == 0 || size != len(key) || r == utf8.RuneError {
			return false
		}
		p.filter = append(p.filter, r)
		p.refilter()
	}
	return true
}
