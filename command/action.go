package command

// Kind identifies what an action does.
type Kind int

const (
	SaveSelection Kind = iota + 1
	Abandon
	Absorb
	BookmarkCreate
	BookmarkDelete
	BookmarkForget
	BookmarkMove
	BookmarkRename
	BookmarkSet
	BookmarkTrack
	BookmarkUntrack
	NewOnBranch
	Tug
	Commit
	CopyChangeID
	CopyPath
	Describe
	Duplicate
	Edit
	Evolog
	FileTrack
	FileUntrack
	GitFetch
	GitPush
	TugAndPush
	Interdiff
	Jump
	Metaedit
	New
	NewAfterTrunkSync
	Next
	Prev
	Parallelize
	Rebase
	RebaseBranchOntoTrunk
	RebaseBranchOntoTrunkSync
	Redo
	Resolve
	Restore
	Revert
	Sign
	Unsign
	SimplifyParents
	Split
	Squash
	Status
	Undo
	View
	WorkspaceAdd
	WorkspaceForget
	WorkspaceList
	WorkspaceRename
	WorkspaceRoot
	WorkspaceUpdateStale
)

// Mode selects a variant of an action. Which modes apply depends on Kind.
type Mode int

const (
	Default Mode = iota

	RetainBookmarks
	RestoreDescendants

	// Two-phase variants read the saved selection as their source.
	FromSaved

	AllowBackwards
	TugToSelection
	IncludeRemotes

	IgnoreImmutable
	Patch

	FetchAllRemotes
	FetchTracked
	FetchBranch
	FetchRemote

	PushAll
	PushTracked
	PushDeleted
	PushRevision
	PushChange
	PushNamed
	PushBookmark

	FromSelection
	ToSelection
	FromTrunkToSelection

	UpdateChangeID
	UpdateAuthorTimestamp
	UpdateAuthor
	SetAuthor
	SetAuthorTimestamp
	ForceRewrite

	NewInsertAfter
	NewInsertBefore
	NewAfterTrunk

	MoveConflict
	MoveEdit
	MoveNoEdit

	ParallelizeRevset

	ChangesIn
	ChangesInRestoreDescendants
	RestoreFrom
	RestoreInto

	SourceBranch
	SourceDescendants
	SourceRevisions
)

// Placement is where a rebased, duplicated or reverted revision goes.
type Placement int

const (
	Onto Placement = iota
	InsertAfter
	InsertBefore
)

// Flag returns the jj flag for the placement.
func (p Placement) Flag() string {
	switch p {
	case InsertAfter:
		return "--insert-after"
	case InsertBefore:
		return "--insert-before"
	default:
		return "--onto"
	}
}

// Destination picks the target revision of a placement.
type Destination int

const (
	DestSelection Destination = iota
	DestTrunk
	DestWorkingCopy
)

// Action is a fully resolved command descriptor.
type Action struct {
	Kind      Kind
	Mode      Mode
	Placement Placement
	Dest      Destination
	// Offset asks for a count before running next/prev.
	Offset bool
}
