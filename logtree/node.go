package logtree

// Kind is the level of a node in the log tree.
type Kind int

const (
	KindCommit Kind = iota
	KindFileDiff
	KindHunk
	KindLine
)

func (k Kind) String() string {
	switch k {
	case KindCommit:
		return "commit"
	case KindFileDiff:
		return "file"
	case KindHunk:
		return "hunk"
	case KindLine:
		return "line"
	default:
		return "unknown"
	}
}

// Node is one entry of the log tree. Which fields are set depends on Kind.
type Node struct {
	Kind Kind

	// Commit
	ChangeID    string
	CommitID    string
	WorkingCopy bool
	Empty       bool
	Immutable   bool
	Description string
	Graph       []string

	// FileDiff
	Path   string
	Status FileStatus

	// Hunk header or diff line text
	Text string

	Expanded bool

	lineNumber int
	loaded     bool
	gutter     string
	children   []*Node
	flatIdx    int
}

// FileStatus describes how a file changed in a revision.
type FileStatus byte

const (
	FileModified FileStatus = 'M'
	FileAdded    FileStatus = 'A'
	FileDeleted  FileStatus = 'D'
	FileRenamed  FileStatus = 'R'
)

func (n *Node) Children() []*Node {
	return n.children
}

// FlatIndex is the node's index in the most recent flatten, or -1 when the
// node was hidden inside a collapsed ancestor.
func (n *Node) FlatIndex() int {
	return n.flatIdx
}

// LineNumber is the line in the new version of the file a diff line refers
// to. Removed lines report the line they were removed before.
func (n *Node) LineNumber() (int, bool) {
	if n.Kind != KindLine || n.lineNumber == 0 {
		return 0, false
	}
	return n.lineNumber, true
}

// Loaded reports whether a commit's file diffs have been fetched.
func (n *Node) Loaded() bool {
	return n.loaded
}

// Foldable reports whether toggling the node changes what is displayed.
func (n *Node) Foldable() bool {
	return n.Kind == KindCommit || len(n.children) > 0
}
