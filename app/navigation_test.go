package app

import (
	"context"
	"testing"
	"time"
)

func TestSiblingNavigation(t *testing.T) {
	tests := []struct {
		name string
		from int
		move func(s *State)
		want int
	}{
		{"next commit skips files", 1, (*State).SelectNextSibling, 4},
		{"next file", 2, (*State).SelectNextSibling, 3},
		{"last file steps out", 3, (*State).SelectNextSibling, 4},
		{"past the end", 4, (*State).SelectNextSibling, 4},
		{"prev of first file is its commit", 2, (*State).SelectPrevSibling, 1},
		{"prev commit", 4, (*State).SelectPrevSibling, 1},
		{"prev at top", 0, (*State).SelectPrevSibling, 0},
		{"parent of file", 3, (*State).SelectParent, 1},
		{"parent of commit", 4, (*State).SelectParent, 4},
		{"next node", 1, (*State).SelectNext, 2},
		{"prev node", 1, (*State).SelectPrev, 0},
		{"prev at top stays", 0, (*State).SelectPrev, 0},
		{"next at bottom stays", 4, (*State).SelectNext, 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newState(t, sampleEngine())
			s.selectIndex(tt.from)
			tt.move(s)
			if got := s.Selected(); got != tt.want {
				t.Errorf("got %d, want %d", got, tt.want)
			}
		})
	}
}

func TestSelectWorkingCopy(t *testing.T) {
	s := newState(t, sampleEngine())
	s.selectIndex(4)

	s.SelectWorkingCopy()
	if got := s.Selected(); got != 1 {
		t.Errorf("got %d, want 1", got)
	}
}

func TestToggleFold_KeepsCursorOnNode(t *testing.T) {
	s := newState(t, sampleEngine())

	if err := s.ToggleFold(context.Background()); err != nil {
		t.Fatal(err)
	}
	if got := len(s.Blocks()); got != 3 {
		t.Errorf("got %d blocks after folding, want 3", got)
	}
	if got := s.Selected(); got != 1 {
		t.Errorf("got selected %d, want 1", got)
	}
}

func TestScrolling(t *testing.T) {
	// every node but the files is two lines: rows 0-1, 2-3, 4, 5, 6-7
	s := newState(t, sampleEngine())
	s.SetHeight(3)

	s.selectIndex(0)
	s.ScrollDown()
	if s.Offset() != 1 || s.Selected() != 1 {
		t.Errorf("after ScrollDown got offset %d selected %d, want 1 1", s.Offset(), s.Selected())
	}
	s.ScrollUp()
	if s.Offset() != 0 {
		t.Errorf("after ScrollUp got offset %d, want 0", s.Offset())
	}
	s.ScrollUp()
	if s.Offset() != 0 {
		t.Errorf("ScrollUp at the top moved to %d", s.Offset())
	}

	s.PageDown()
	if s.Offset() != 1 || s.Selected() != 1 {
		t.Errorf("after PageDown got offset %d selected %d, want 1 1", s.Offset(), s.Selected())
	}
	s.PageUp()
	if s.Offset() != 0 || s.Selected() != 0 {
		t.Errorf("after PageUp got offset %d selected %d, want 0 0", s.Offset(), s.Selected())
	}
}

func TestSelectIndex_KeepsCursorVisible(t *testing.T) {
	s := newState(t, sampleEngine())
	s.SetHeight(3)

	s.selectIndex(4)
	if got := s.Offset(); got != 3 {
		t.Errorf("got offset %d, want 3", got)
	}
	s.selectIndex(0)
	if got := s.Offset(); got != 0 {
		t.Errorf("got offset %d, want 0", got)
	}
}

func TestClick(t *testing.T) {
	tests := []struct {
		name string
		row  int
		want int
	}{
		{"first line of a commit", 2, 1},
		{"second line of a commit", 3, 1},
		{"file row", 5, 3},
		{"last row", 7, 4},
		{"outside the log", 30, 1},
		{"negative", -1, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newState(t, sampleEngine())
			if err := s.Click(context.Background(), tt.row, 0); err != nil {
				t.Fatal(err)
			}
			if got := s.Selected(); got != tt.want {
				t.Errorf("got %d, want %d", got, tt.want)
			}
		})
	}
}

func TestDoubleClickActsLikeEnter(t *testing.T) {
	s := newState(t, sampleEngine())
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return now }
	ctx := context.Background()

	if err := s.Click(ctx, 4, 10); err != nil {
		t.Fatal(err)
	}
	if s.Busy() {
		t.Fatal("single click queued a command")
	}

	now = now.Add(100 * time.Millisecond)
	if err := s.Click(ctx, 4, 10); err != nil {
		t.Fatal(err)
	}
	if len(s.queue) != 1 || s.queue[0].Description() != "$ vi /repo/a.txt" {
		t.Errorf("got %q, want the editor on a.txt", s.Info())
	}
}

func TestSlowSecondClickIsSingle(t *testing.T) {
	s := newState(t, sampleEngine())
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return now }
	ctx := context.Background()

	for range 2 {
		if err := s.Click(ctx, 4, 10); err != nil {
			t.Fatal(err)
		}
		now = now.Add(time.Second)
	}

	if s.Busy() {
		t.Error("slow second click acted like Enter")
	}
}

func TestRightClickFolds(t *testing.T) {
	s := newState(t, sampleEngine())

	if err := s.RightClick(context.Background(), 0, 0); err != nil {
		t.Fatal(err)
	}
	if got := s.Selected(); got != 0 {
		t.Errorf("got selected %d, want 0", got)
	}
	// id0 has no diff, so unfolding it adds no rows
	if got := len(s.Blocks()); got != 5 {
		t.Errorf("got %d blocks, want 5", got)
	}
}
