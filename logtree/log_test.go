package logtree

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"testing"

	"pgregory.net/rapid"

	"github.com/gerunddev/jjdag/jj"
)

type fakeSource struct {
	entries   []jj.LogEntry
	diffs     map[string]string
	logErr    error
	diffCalls int
}

func (f *fakeSource) LoadLog(context.Context, jj.GlobalArgs, string) ([]jj.LogEntry, error) {
	return f.entries, f.logErr
}

func (f *fakeSource) LoadDiff(_ context.Context, _ jj.GlobalArgs, changeID string) (string, error) {
	f.diffCalls++
	return f.diffs[changeID], nil
}

const sampleDiff = `diff --git a/a.txt b/a.txt
index 1111111..2222222 100644
--- a/a.txt
+++ b/a.txt
@@ -1,3 +1,3 @@
 one
-two
+TWO
 three
diff --git a/new.txt b/new.txt
new file mode 100644
index 0000000..3333333
--- /dev/null
+++ b/new.txt
@@ -0,0 +1,1 @@
+hello
`

func commitEntry(i int, workingCopy bool) jj.LogEntry {
	id := strings.Repeat(string(rune('k'+i)), 8)
	symbol := "○"
	if workingCopy {
		symbol = "@"
	}
	return jj.LogEntry{
		ChangeID:    id,
		CommitID:    fmt.Sprintf("%08d", i),
		WorkingCopy: workingCopy,
		Description: fmt.Sprintf("commit %d", i),
		Graph: []string{
			fmt.Sprintf("%s  %s alice %08d", symbol, id, i),
			fmt.Sprintf("│  commit %d", i),
		},
	}
}

// fiveCommits returns a source with five commits; the middle one carries
// sampleDiff and is the working copy.
func fiveCommits() *fakeSource {
	src := &fakeSource{diffs: map[string]string{}}
	for i := 0; i < 5; i++ {
		src.entries = append(src.entries, commitEntry(i, i == 2))
	}
	src.diffs[src.entries[2].ChangeID] = sampleDiff
	return src
}

func loadLog(t *testing.T, src Source) *JjLog {
	t.Helper()
	l := New()
	if err := l.Load(context.Background(), src, jj.GlobalArgs{}, ""); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	l.Flatten()
	return l
}

func TestParseGitDiff(t *testing.T) {
	files, err := ParseGitDiff(sampleDiff)
	if err != nil {
		t.Fatalf("ParseGitDiff failed: %v", err)
	}
	if len(files) != 2 {
		t.Fatalf("got %d files, want 2", len(files))
	}
	if files[0].Path != "a.txt" || files[0].Status != FileModified {
		t.Errorf("got %q %c, want a.txt M", files[0].Path, files[0].Status)
	}
	if files[1].Path != "new.txt" || files[1].Status != FileAdded {
		t.Errorf("got %q %c, want new.txt A", files[1].Path, files[1].Status)
	}

	lines := files[0].Children()[0].Children()
	wantNumbers := []int{1, 2, 2, 3}
	for i, line := range lines {
		got, ok := line.LineNumber()
		if !ok || got != wantNumbers[i] {
			t.Errorf("line %q: got %d %v, want %d", line.Text, got, ok, wantNumbers[i])
		}
	}
	if got, _ := files[1].Children()[0].Children()[0].LineNumber(); got != 1 {
		t.Errorf("got line %d for added file, want 1", got)
	}
}

func TestParseGitDiff_Errors(t *testing.T) {
	tests := []struct {
		name string
		diff string
	}{
		{"garbage before header", "hello\n"},
		{"bad file header", "diff --git x y\n"},
		{"bad hunk header", "diff --git a/x b/x\n@@ nonsense @@\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseGitDiff(tt.diff)
			var parseErr *jj.ParseError
			if !errors.As(err, &parseErr) {
				t.Errorf("got %v, want *jj.ParseError", err)
			}
		})
	}
}

func TestParseGitDiff_Rename(t *testing.T) {
	diff := "diff --git a/old.txt b/new.txt\nsimilarity index 100%\nrename from old.txt\nrename to new.txt\n"
	files, err := ParseGitDiff(diff)
	if err != nil {
		t.Fatalf("ParseGitDiff failed: %v", err)
	}
	if files[0].Path != "new.txt" || files[0].Status != FileRenamed {
		t.Errorf("got %q %c, want new.txt R", files[0].Path, files[0].Status)
	}
}

func TestLoad_KeepsTreeOnError(t *testing.T) {
	src := fiveCommits()
	l := loadLog(t, src)

	src.logErr = &jj.CommandError{Stderr: "Error: Revision `nope` doesn't exist"}
	if err := l.Load(context.Background(), src, jj.GlobalArgs{}, "nope"); err == nil {
		t.Fatal("expected an error")
	}
	if got := len(l.Commits()); got != 5 {
		t.Errorf("got %d commits after failed load, want 5", got)
	}
}

func TestToggleFold(t *testing.T) {
	src := fiveCommits()
	l := loadLog(t, src)

	idx, err := l.ToggleFold(context.Background(), src, jj.GlobalArgs{}, TreePosition{2})
	if err != nil {
		t.Fatalf("ToggleFold failed: %v", err)
	}
	if idx != 2 {
		t.Errorf("got flat index %d, want 2", idx)
	}
	if got := l.Len(); got != 7 {
		t.Errorf("got %d visible nodes, want 7 (five commits, two collapsed files)", got)
	}

	// expanding a file shows its hunk, whose lines start expanded
	idx, err = l.ToggleFold(context.Background(), src, jj.GlobalArgs{}, TreePosition{2, 0})
	if err != nil {
		t.Fatalf("ToggleFold failed: %v", err)
	}
	if idx != 3 {
		t.Errorf("got flat index %d, want 3", idx)
	}
	if got := l.Len(); got != 12 {
		t.Errorf("got %d visible nodes, want 12", got)
	}

	// toggling a diff line collapses its hunk and lands on it
	idx, err = l.ToggleFold(context.Background(), src, jj.GlobalArgs{}, TreePosition{2, 0, 0, 2})
	if err != nil {
		t.Fatalf("ToggleFold failed: %v", err)
	}
	if idx != 4 {
		t.Errorf("got flat index %d, want 4 (the hunk)", idx)
	}

	// diffs are only fetched once
	_, _ = l.ToggleFold(context.Background(), src, jj.GlobalArgs{}, TreePosition{2})
	_, _ = l.ToggleFold(context.Background(), src, jj.GlobalArgs{}, TreePosition{2})
	if src.diffCalls != 1 {
		t.Errorf("got %d diff loads, want 1", src.diffCalls)
	}
}

func TestSiblingNavigation(t *testing.T) {
	src := fiveCommits()
	l := loadLog(t, src)
	ctx := context.Background()
	if _, err := l.ToggleFold(ctx, src, jj.GlobalArgs{}, TreePosition{2}); err != nil {
		t.Fatal(err)
	}
	if _, err := l.ToggleFold(ctx, src, jj.GlobalArgs{}, TreePosition{2, 0}); err != nil {
		t.Fatal(err)
	}
	// flat: 0 [0], 1 [1], 2 [2], 3 [2 0], 4 [2 0 0], 5-8 lines, 9 [2 1], 10 [3], 11 [4]

	tests := []struct {
		name string
		nav  func(TreePosition) int
		pos  TreePosition
		want TreePosition
	}{
		{"next commit", l.NextSibling, TreePosition{1}, TreePosition{2}},
		{"next file", l.NextSibling, TreePosition{2, 0}, TreePosition{2, 1}},
		{"last file steps out to next commit", l.NextSibling, TreePosition{2, 1}, TreePosition{3}},
		{"line steps out through hunk and file", l.NextSibling, TreePosition{2, 0, 0, 1}, TreePosition{2, 1}},
		{"last commit stays", l.NextSibling, TreePosition{4}, TreePosition{4}},
		{"prev commit", l.PrevSibling, TreePosition{3}, TreePosition{2}},
		{"prev of first file is commit", l.PrevSibling, TreePosition{2, 0}, TreePosition{2}},
		{"prev file", l.PrevSibling, TreePosition{2, 1}, TreePosition{2, 0}},
		{"prev of line is hunk", l.PrevSibling, TreePosition{2, 0, 0, 3}, TreePosition{2, 0, 0}},
		{"first commit stays", l.PrevSibling, TreePosition{0}, TreePosition{0}},
		{"parent of line", l.Parent, TreePosition{2, 0, 0, 3}, TreePosition{2, 0, 0}},
		{"parent of file", l.Parent, TreePosition{2, 1}, TreePosition{2}},
		{"parent of commit is itself", l.Parent, TreePosition{3}, TreePosition{3}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, _ := l.Position(tt.nav(tt.pos))
			if !got.Equal(tt.want) {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestLineDistToDestNode(t *testing.T) {
	l := &JjLog{blocks: []Block{
		{"a1", "a2"},
		{"b1", "b2", "b3"},
		{"c1"},
		{"d1", "d2"},
	}}

	tests := []struct {
		dist, start int
		dir         Direction
		want        int
	}{
		{0, 0, Down, 0},
		{1, 0, Down, 0},
		{2, 0, Down, 1},
		{4, 0, Down, 1},
		{5, 0, Down, 2},
		{100, 0, Down, 3},
		{0, 3, Up, 3},
		{2, 3, Up, 2},
		{3, 3, Up, 1},
		{100, 3, Up, 0},
	}

	for _, tt := range tests {
		if got := l.LineDistToDestNode(tt.dist, tt.start, tt.dir); got != tt.want {
			t.Errorf("LineDistToDestNode(%d, %d, %v) = %d, want %d", tt.dist, tt.start, tt.dir, got, tt.want)
		}
	}
}

func TestChildGutter(t *testing.T) {
	tests := []struct {
		graph string
		want  string
	}{
		{"@  kkkkkkkk alice", "│  "},
		{"│ ○  kkkkkkkk alice", "│ │  "},
		{"\x1b[1m◆\x1b[0m  zzzzzzzz root()", "│  "},
	}
	for _, tt := range tests {
		if got := childGutter([]string{tt.graph}); got != tt.want {
			t.Errorf("childGutter(%q) = %q, want %q", tt.graph, got, tt.want)
		}
	}
}

func TestTreePosition(t *testing.T) {
	p := TreePosition{2, 0, 1}
	parent, ok := p.Parent()
	if !ok || !parent.Equal(TreePosition{2, 0}) {
		t.Errorf("got %v %v, want [2 0] true", parent, ok)
	}
	if _, ok := (TreePosition{2}).Parent(); ok {
		t.Error("commit positions have no parent")
	}
	if !p.IsSibling(TreePosition{2, 0, 5}) || p.IsSibling(TreePosition{2, 1, 1}) {
		t.Error("IsSibling compares every index but the last")
	}

	// appending to a parent must not overwrite the original
	_ = append(parent, 9)
	if p[2] != 1 {
		t.Errorf("got %v, parent append leaked into the original", p)
	}
}

// randomSource builds a log of up to five commits with random diffs.
func randomSource(t *rapid.T) *fakeSource {
	src := &fakeSource{diffs: map[string]string{}}
	commits := rapid.IntRange(1, 5).Draw(t, "commits")
	for i := 0; i < commits; i++ {
		e := commitEntry(i, i == 0)
		src.entries = append(src.entries, e)

		var b strings.Builder
		files := rapid.IntRange(0, 3).Draw(t, "files")
		for f := 0; f < files; f++ {
			fmt.Fprintf(&b, "diff --git a/f%d b/f%d\n--- a/f%d\n+++ b/f%d\n", f, f, f, f)
			hunks := rapid.IntRange(1, 2).Draw(t, "hunks")
			for h := 0; h < hunks; h++ {
				lines := rapid.IntRange(1, 3).Draw(t, "lines")
				fmt.Fprintf(&b, "@@ -%d,%d +%d,%d @@\n", h*10+1, lines, h*10+1, lines)
				for n := 0; n < lines; n++ {
					fmt.Fprintf(&b, "+line %d\n", n)
				}
			}
		}
		src.diffs[e.ChangeID] = b.String()
	}
	return src
}

// randomFolds toggles a few random visible nodes.
func randomFolds(t *rapid.T, l *JjLog, src Source) {
	toggles := rapid.IntRange(0, 8).Draw(t, "toggles")
	for i := 0; i < toggles; i++ {
		idx := rapid.IntRange(0, l.Len()-1).Draw(t, "toggle")
		pos, _ := l.Position(idx)
		if _, err := l.ToggleFold(context.Background(), src, jj.GlobalArgs{}, pos); err != nil {
			t.Fatalf("ToggleFold(%v) failed: %v", pos, err)
		}
	}
}

func loadRandom(t *rapid.T) (*JjLog, *fakeSource) {
	src := randomSource(t)
	l := New()
	if err := l.Load(context.Background(), src, jj.GlobalArgs{}, ""); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	l.Flatten()
	randomFolds(t, l, src)
	return l, src
}

func TestFlattenIdempotent(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		l, _ := loadRandom(t)

		blocks1, positions1 := l.Flatten()
		blocks2, positions2 := l.Flatten()
		if !reflect.DeepEqual(blocks1, blocks2) || !reflect.DeepEqual(positions1, positions2) {
			t.Fatal("flatten is not idempotent")
		}
		for i, pos := range positions1 {
			if got := l.Node(pos).FlatIndex(); got != i {
				t.Fatalf("node %v has flat index %d, want %d", pos, got, i)
			}
		}
	})
}

func TestFoldRoundTrip(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		l, src := loadRandom(t)
		ctx := context.Background()

		idx := rapid.IntRange(0, l.Len()-1).Draw(t, "node")
		pos, _ := l.Position(idx)
		if len(pos) == DiffHunkLineIdx+1 {
			pos = pos[:DiffHunkLineIdx]
			idx = l.Node(pos).FlatIndex()
		}
		// the first expansion of a commit may fetch its diff; do that up front
		if n := l.Node(pos); n.Kind == KindCommit && !n.Loaded() {
			if _, err := l.ToggleFold(ctx, src, jj.GlobalArgs{}, pos); err != nil {
				t.Fatal(err)
			}
			if _, err := l.ToggleFold(ctx, src, jj.GlobalArgs{}, pos); err != nil {
				t.Fatal(err)
			}
		}
		before, _ := l.Flatten()

		if _, err := l.ToggleFold(ctx, src, jj.GlobalArgs{}, pos); err != nil {
			t.Fatal(err)
		}
		got, err := l.ToggleFold(ctx, src, jj.GlobalArgs{}, pos)
		if err != nil {
			t.Fatal(err)
		}

		after, _ := l.Flatten()
		if !reflect.DeepEqual(before, after) {
			t.Fatal("double toggle changed the flattened list")
		}
		if got != idx {
			t.Fatalf("got flat index %d, want %d", got, idx)
		}
	})
}

func TestSiblingTotality(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		l, _ := loadRandom(t)
		last := l.Len() - 1
		start := rapid.IntRange(0, last).Draw(t, "start")

		idx := start
		for i := 0; i <= l.Len(); i++ {
			pos, _ := l.Position(idx)
			next := l.NextSibling(pos)
			if next < idx {
				t.Fatalf("next sibling moved backwards from %d to %d", idx, next)
			}
			idx = next
		}
		if idx != last {
			t.Fatalf("next sibling stopped at %d, want %d", idx, last)
		}
		pos, _ := l.Position(idx)
		if l.NextSibling(pos) != last {
			t.Fatal("next sibling is not idempotent at the end")
		}

		idx = start
		for i := 0; i <= l.Len(); i++ {
			pos, _ := l.Position(idx)
			prev := l.PrevSibling(pos)
			if prev > idx {
				t.Fatalf("prev sibling moved forwards from %d to %d", idx, prev)
			}
			idx = prev
		}
		if idx != 0 {
			t.Fatalf("prev sibling stopped at %d, want 0", idx)
		}
	})
}
