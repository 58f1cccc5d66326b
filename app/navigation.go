package app

import (
	"context"
	"time"

	"github.com/gerunddev/jjdag/logtree"
)

const doubleClickInterval = 300 * time.Millisecond

// selectedPos returns the tree position under the cursor.
func (s *State) selectedPos() (logtree.TreePosition, bool) {
	return s.log.Position(s.selected)
}

// selectedChangeID returns the change id of the commit containing the cursor.
func (s *State) selectedChangeID() (string, bool) {
	pos, ok := s.selectedPos()
	if !ok {
		return "", false
	}
	if c := s.log.Commit(pos); c != nil {
		return c.ChangeID, true
	}
	return "", false
}

// selectedFile returns the path of the file diff containing the cursor, or "".
func (s *State) selectedFile() string {
	pos, ok := s.selectedPos()
	if !ok {
		return ""
	}
	if f := s.log.FileDiff(pos); f != nil {
		return f.Path
	}
	return ""
}

func (s *State) selectedCommit() *logtree.Node {
	pos, ok := s.selectedPos()
	if !ok {
		return nil
	}
	return s.log.Commit(pos)
}

func (s *State) isSelectedWorkingCopy() bool {
	c := s.selectedCommit()
	return c != nil && c.WorkingCopy
}

// savedChangeID returns the change id saved by the first step of a
// two-step command.
func (s *State) savedChangeID() (string, bool) {
	if s.saved == nil {
		return "", false
	}
	return s.saved.ChangeID, true
}

func (s *State) savedFile() string {
	if s.saved == nil {
		return ""
	}
	return s.saved.Path
}

// selectIndex moves the cursor, clamped to the list, and scrolls so it stays
// on screen.
func (s *State) selectIndex(idx int) {
	n := s.log.Len()
	if n == 0 {
		s.selected, s.offset = 0, 0
		return
	}
	s.selected = min(max(idx, 0), n-1)
	s.offset = min(s.offset, n-1)
	s.keepVisible()
}

func (s *State) keepVisible() {
	if s.height == 0 {
		return
	}
	if top := max(s.selected-s.padding, 0); top < s.offset {
		s.offset = top
		return
	}

	bottom := min(s.selected+s.padding, s.log.Len()-1)
	lines := s.linesThrough(bottom)
	for lines > s.height && s.offset < s.selected {
		lines -= s.log.Height(s.offset)
		s.offset++
	}
}

func (s *State) SelectNext() {
	if s.selected < s.log.Len()-1 {
		s.selectIndex(s.selected + 1)
	}
}

func (s *State) SelectPrev() {
	if s.selected > 0 {
		s.selectIndex(s.selected - 1)
	}
}

// SelectWorkingCopy moves the cursor to the working-copy commit, if shown.
func (s *State) SelectWorkingCopy() {
	if wc := s.log.WorkingCopy(); wc != nil && wc.FlatIndex() >= 0 {
		s.selectIndex(wc.FlatIndex())
	}
}

func (s *State) SelectParent() {
	if pos, ok := s.selectedPos(); ok {
		s.selectIndex(s.log.Parent(pos))
	}
}

func (s *State) SelectNextSibling() {
	if pos, ok := s.selectedPos(); ok {
		s.selectIndex(s.log.NextSibling(pos))
	}
}

func (s *State) SelectPrevSibling() {
	if pos, ok := s.selectedPos(); ok {
		s.selectIndex(s.log.PrevSibling(pos))
	}
}

// ScrollDown moves the view one node down, dragging the cursor along when it
// would leave the top of the screen.
func (s *State) ScrollDown() {
	n := s.log.Len()
	if s.offset >= n-1 {
		return
	}
	s.offset++
	if s.selected < s.offset+s.padding {
		s.selected = min(s.offset+s.padding, n-1)
	}
}

// ScrollUp moves the view one node up, dragging the cursor along when it
// would leave the bottom of the screen.
func (s *State) ScrollUp() {
	if s.offset == 0 {
		return
	}
	s.offset--
	last := s.log.Len() - 1
	for s.selected > s.offset && s.linesThrough(min(s.selected+s.padding, last)) > s.height {
		s.selected--
	}
}

// linesThrough counts the screen lines from the top of the view to the end
// of the node at idx.
func (s *State) linesThrough(idx int) int {
	lines := 0
	for i := s.offset; i <= idx; i++ {
		lines += s.log.Height(i)
	}
	return lines
}

func (s *State) PageDown() {
	s.scrollLines(s.height, logtree.Down)
}

func (s *State) PageUp() {
	s.scrollLines(s.height, logtree.Up)
}

// scrollLines moves the view by a number of screen lines and keeps the
// cursor at the same distance from the top of the view.
func (s *State) scrollLines(lines int, dir logtree.Direction) {
	n := s.log.Len()
	if n == 0 {
		return
	}
	dist := s.selected - s.offset
	offset := s.log.LineDistToDestNode(lines, s.offset, dir)
	target := offset + dist

	switch dir {
	case logtree.Down:
		if offset == n-1 {
			target = offset
			offset = s.offset
		}
	case logtree.Up:
		if offset == 0 && s.offset == 0 {
			target = 0
		}
	}
	s.selected = min(max(target, 0), n-1)
	s.offset = offset
}

// Click selects the node drawn at row (relative to the first line of the
// log). A second click on the same cell within doubleClickInterval acts
// like Enter.
func (s *State) Click(ctx context.Context, row, col int) error {
	now := s.now()
	double := !s.lastClick.IsZero() && now.Sub(s.lastClick) < doubleClickInterval &&
		s.clickRow == row && s.clickCol == col
	s.lastClick, s.clickRow, s.clickCol = now, row, col
	if double {
		return s.Enter(ctx)
	}

	if row < 0 || row >= s.height || s.log.Len() == 0 {
		return nil
	}
	s.selected = s.log.LineDistToDestNode(row, s.offset, logtree.Down)
	return nil
}

// RightClick selects the node under the pointer and toggles its fold.
func (s *State) RightClick(ctx context.Context, row, col int) error {
	if err := s.Click(ctx, row, col); err != nil {
		return err
	}
	return s.ToggleFold(ctx)
}
