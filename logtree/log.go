// Package logtree holds the foldable tree of revisions, file diffs, hunks
// and diff lines shown in the main view, and the position arithmetic used
// to move through it.
package logtree

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/x/ansi"

	"github.com/gerunddev/jjdag/jj"
)

// Source provides the engine output the tree is built from.
type Source interface {
	LoadLog(ctx context.Context, g jj.GlobalArgs, revset string) ([]jj.LogEntry, error)
	LoadDiff(ctx context.Context, g jj.GlobalArgs, changeID string) (string, error)
}

// Block is the rendered text of one visible node.
type Block []string

// Direction of a line-distance walk.
type Direction int

const (
	Down Direction = iota
	Up
)

// JjLog is the parsed log tree plus the result of the last flatten.
type JjLog struct {
	commits   []*Node
	blocks    []Block
	positions []TreePosition
}

func New() *JjLog {
	return &JjLog{}
}

// Load replaces the tree with the revisions in revset. On error the
// previous tree is kept.
func (l *JjLog) Load(ctx context.Context, src Source, g jj.GlobalArgs, revset string) error {
	entries, err := src.LoadLog(ctx, g, revset)
	if err != nil {
		return err
	}

	commits := make([]*Node, 0, len(entries))
	for _, e := range entries {
		commits = append(commits, &Node{
			Kind:        KindCommit,
			ChangeID:    e.ChangeID,
			CommitID:    e.CommitID,
			WorkingCopy: e.WorkingCopy,
			Empty:       e.Empty,
			Immutable:   e.Immutable,
			Description: e.Description,
			Graph:       e.Graph,
			gutter:      childGutter(e.Graph),
			flatIdx:     -1,
		})
	}
	l.commits = commits
	l.blocks = nil
	l.positions = nil
	return nil
}

// Commits returns the top-level nodes.
func (l *JjLog) Commits() []*Node {
	return l.commits
}

// Flatten lists the visible nodes depth first and records each node's flat
// index. It returns the display blocks and their positions, index for index.
func (l *JjLog) Flatten() ([]Block, []TreePosition) {
	blocks := make([]Block, 0, len(l.commits))
	positions := make([]TreePosition, 0, len(l.commits))

	var visit func(n *Node, pos TreePosition, visible bool)
	visit = func(n *Node, pos TreePosition, visible bool) {
		n.flatIdx = -1
		if visible {
			n.flatIdx = len(blocks)
			blocks = append(blocks, n.block())
			positions = append(positions, pos)
		}
		for i, child := range n.children {
			child.gutter = n.gutter
			visit(child, append(pos.Clone(), i), visible && n.Expanded)
		}
	}
	for i, c := range l.commits {
		visit(c, TreePosition{i}, true)
	}

	l.blocks = blocks
	l.positions = positions
	return blocks, positions
}

// Blocks returns the display blocks of the last flatten.
func (l *JjLog) Blocks() []Block {
	return l.blocks
}

// Len is the number of nodes in the last flatten.
func (l *JjLog) Len() int {
	return len(l.blocks)
}

// Position returns the position of the node at a flat index.
func (l *JjLog) Position(flatIdx int) (TreePosition, bool) {
	if flatIdx < 0 || flatIdx >= len(l.positions) {
		return nil, false
	}
	return l.positions[flatIdx], true
}

// Node resolves a position, or returns nil when it does not exist.
func (l *JjLog) Node(pos TreePosition) *Node {
	if len(pos) == 0 || len(pos) > DiffHunkLineIdx+1 {
		return nil
	}
	siblings := l.commits
	var n *Node
	for _, idx := range pos {
		if idx < 0 || idx >= len(siblings) {
			return nil
		}
		n = siblings[idx]
		siblings = n.children
	}
	return n
}

// Commit returns the commit containing pos.
func (l *JjLog) Commit(pos TreePosition) *Node {
	if len(pos) == 0 {
		return nil
	}
	return l.Node(pos[:1])
}

// FileDiff returns the file diff containing pos, if pos is below a commit.
func (l *JjLog) FileDiff(pos TreePosition) *Node {
	if len(pos) < 2 {
		return nil
	}
	return l.Node(pos[:2])
}

// WorkingCopy returns the working-copy commit if it is in the log.
func (l *JjLog) WorkingCopy() *Node {
	for _, c := range l.commits {
		if c.WorkingCopy {
			return c
		}
	}
	return nil
}

// FindChange returns the commit with the given change id.
func (l *JjLog) FindChange(changeID string) *Node {
	for _, c := range l.commits {
		if c.ChangeID == changeID {
			return c
		}
	}
	return nil
}

// ToggleFold expands or collapses the node at pos and re-flattens. A diff
// line toggles its hunk. File diffs of a commit are fetched the first time
// it is expanded. It returns the toggled node's new flat index.
func (l *JjLog) ToggleFold(ctx context.Context, src Source, g jj.GlobalArgs, pos TreePosition) (int, error) {
	if len(pos) == DiffHunkLineIdx+1 {
		pos = pos[:DiffHunkLineIdx]
	}
	n := l.Node(pos)
	if n == nil {
		return 0, fmt.Errorf("no node at %s", pos)
	}

	if n.Kind == KindCommit && !n.loaded && !n.Expanded {
		diff, err := src.LoadDiff(ctx, g, n.ChangeID)
		if err != nil {
			return 0, err
		}
		files, err := ParseGitDiff(diff)
		if err != nil {
			return 0, err
		}
		n.children = files
		n.loaded = true
	}

	n.Expanded = !n.Expanded
	l.Flatten()
	return n.flatIdx, nil
}

// NextSibling returns the flat index of the node after pos at the same
// level. From a last child it steps out to the parent's next sibling, level
// by level. Past the last commit it lands on the last visible node.
func (l *JjLog) NextSibling(pos TreePosition) int {
	if len(pos) == DiffHunkLineIdx+1 {
		pos = pos[:DiffHunkLineIdx]
	}
	for len(pos) > 0 {
		parent := pos[:len(pos)-1]
		siblings := l.siblings(parent)
		idx := pos[len(pos)-1]
		if idx+1 < len(siblings) {
			return siblings[idx+1].flatIdx
		}
		pos = parent
	}
	return max(len(l.blocks)-1, 0)
}

// PrevSibling returns the flat index of the node before pos at the same
// level, or of its parent when pos is a first child. Diff lines go to their
// hunk.
func (l *JjLog) PrevSibling(pos TreePosition) int {
	if len(pos) == 0 {
		return 0
	}
	if len(pos) == DiffHunkLineIdx+1 {
		return l.flatIndexOf(pos[:DiffHunkLineIdx])
	}
	parent := pos[:len(pos)-1]
	idx := pos[len(pos)-1]
	if idx == 0 {
		if len(parent) == 0 {
			return l.flatIndexOf(pos)
		}
		return l.flatIndexOf(parent)
	}
	return l.flatIndexOf(append(parent.Clone(), idx-1))
}

// Parent returns the flat index of pos's parent, or of pos itself for a commit.
func (l *JjLog) Parent(pos TreePosition) int {
	if parent, ok := pos.Parent(); ok {
		return l.flatIndexOf(parent)
	}
	return l.flatIndexOf(pos)
}

func (l *JjLog) siblings(parent TreePosition) []*Node {
	if len(parent) == 0 {
		return l.commits
	}
	if n := l.Node(parent); n != nil {
		return n.children
	}
	return nil
}

func (l *JjLog) flatIndexOf(pos TreePosition) int {
	if n := l.Node(pos); n != nil && n.flatIdx >= 0 {
		return n.flatIdx
	}
	return 0
}

// LineDistToDestNode walks from the node at start in direction dir and
// returns the node whose lines contain the line dist lines away, clamped to
// the ends of the list.
func (l *JjLog) LineDistToDestNode(dist, start int, dir Direction) int {
	if len(l.blocks) == 0 {
		return 0
	}
	current := min(max(start, 0), len(l.blocks)-1)
	traversed := 0
	for {
		traversed += len(l.blocks[current])

		atEnd := current == len(l.blocks)-1
		if dir == Up {
			atEnd = current == 0
		}
		if atEnd || traversed > dist {
			return current
		}

		if dir == Down {
			current++
		} else {
			current--
		}
	}
}

// Height is the number of rendered lines of the node at a flat index.
func (l *JjLog) Height(flatIdx int) int {
	if flatIdx < 0 || flatIdx >= len(l.blocks) {
		return 0
	}
	return len(l.blocks[flatIdx])
}

func (n *Node) block() Block {
	switch n.Kind {
	case KindCommit:
		if len(n.Graph) > 0 {
			return Block(n.Graph)
		}
		return Block{n.ChangeID + " " + n.Description}
	case KindFileDiff:
		return Block{n.gutter + "  " + string(n.Status) + " " + n.Path}
	case KindHunk:
		return Block{n.gutter + "    " + n.Text}
	default:
		num := "    "
		if ln, ok := n.LineNumber(); ok {
			num = fmt.Sprintf("%4d", ln)
		}
		return Block{n.gutter + "      " + num + " " + n.Text}
	}
}

// childGutter continues a commit's graph column below it: every graph glyph
// left of the change id becomes a vertical line.
func childGutter(graph []string) string {
	if len(graph) == 0 {
		return ""
	}
	var b strings.Builder
	for _, r := range ansi.Strip(graph[0]) {
		if isIDRune(r) {
			break
		}
		if r == ' ' {
			b.WriteRune(' ')
		} else {
			b.WriteRune('│')
		}
	}
	return b.String()
}

func isIDRune(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9')
}
