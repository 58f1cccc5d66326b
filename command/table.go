package command

// DefaultTable is the built-in key table. Menus must precede their children.
func DefaultTable() []Entry {
	return []Entry{
		{"Commands", "Abandon", []string{"a"}, Menu()},
		{"Abandon", "Selection", []string{"a", "a"}, Leaf(Action{Kind: Abandon})},
		{"Abandon", "Selection (retain bookmarks)", []string{"a", "b"}, Leaf(Action{Kind: Abandon, Mode: RetainBookmarks})},
		{"Abandon", "Selection (restore descendants)", []string{"a", "d"}, Leaf(Action{Kind: Abandon, Mode: RestoreDescendants})},
		{"Commands", "Absorb", []string{"A"}, Menu()},
		{"Absorb", "From selection", []string{"A", "a"}, Leaf(Action{Kind: Absorb})},
		{"Absorb", "From selection into destination", []string{"A", "i"}, Chained(Action{Kind: SaveSelection})},
		{"Absorb into", "Select destination", []string{"A", "i", "enter"}, Leaf(Action{Kind: Absorb, Mode: FromSaved})},
		{"Commands", "Bookmark", []string{"b"}, Menu()},
		{"Bookmark", "Create at selection (inline edit)", []string{"b", "c"}, Leaf(Action{Kind: BookmarkCreate})},
		{"Bookmark", "New revision and tug bookmark", []string{"b", "n"}, Leaf(Action{Kind: NewOnBranch})},
		{"Bookmark", "Move", []string{"b", "m"}, Menu()},
		{"Bookmark move", "Selected bookmark to destination", []string{"b", "m", "m"}, Chained(Action{Kind: SaveSelection})},
		{"Move bookmark to", "Select destination", []string{"b", "m", "m", "enter"}, Leaf(Action{Kind: BookmarkMove, Mode: FromSaved})},
		{"Bookmark move", "Selected bookmark to destination (allow backwards)", []string{"b", "m", "M"}, Chained(Action{Kind: SaveSelection})},
		{"Move bookmark to, allowing backwards", "Select destination", []string{"b", "m", "M", "enter"}, Leaf(Action{Kind: BookmarkMove, Mode: AllowBackwards})},
		{"Bookmark move", "Tug to selection", []string{"b", "m", "t"}, Leaf(Action{Kind: BookmarkMove, Mode: TugToSelection})},
		{"Bookmark", "Tug ancestor to current", []string{"b", "T"}, Leaf(Action{Kind: Tug})},
		{"Bookmark", "Rename", []string{"b", "r"}, Leaf(Action{Kind: BookmarkRename})},
		{"Bookmark", "Track", []string{"b", "t"}, Leaf(Action{Kind: BookmarkTrack})},
		{"Bookmark", "Untrack", []string{"b", "u"}, Leaf(Action{Kind: BookmarkUntrack})},
		{"Bookmark", "Delete", []string{"b", "d"}, Leaf(Action{Kind: BookmarkDelete})},
		{"Bookmark", "Forget", []string{"b", "f"}, Leaf(Action{Kind: BookmarkForget})},
		{"Bookmark", "Forget, including remotes", []string{"b", "F"}, Leaf(Action{Kind: BookmarkForget, Mode: IncludeRemotes})},
		{"Bookmark", "Set to selection", []string{"b", "s"}, Leaf(Action{Kind: BookmarkSet})},
		{"Commands", "Commit", []string{"c"}, Menu()},
		{"Commit", "Selection", []string{"c", "c"}, Leaf(Action{Kind: Commit})},
		{"Commands", "Describe", []string{"d"}, Menu()},
		{"Describe", "Selection", []string{"d", "d"}, Leaf(Action{Kind: Describe})},
		{"Describe", "Selection ignoring immutability", []string{"d", "i"}, Leaf(Action{Kind: Describe, Mode: IgnoreImmutable})},
		{"Commands", "Duplicate", []string{"D"}, Menu()},
		{"Duplicate", "Selection", []string{"D", "d"}, Leaf(Action{Kind: Duplicate})},
		{"Duplicate", "Selection onto destination", []string{"D", "o"}, Chained(Action{Kind: SaveSelection})},
		{"Duplicate onto", "Select destination", []string{"D", "o", "enter"}, Leaf(Action{Kind: Duplicate, Mode: FromSaved, Placement: Onto})},
		{"Duplicate", "Selection insert after destination", []string{"D", "a"}, Chained(Action{Kind: SaveSelection})},
		{"Duplicate insert after", "Select destination", []string{"D", "a", "enter"}, Leaf(Action{Kind: Duplicate, Mode: FromSaved, Placement: InsertAfter})},
		{"Duplicate", "Selection insert before destination", []string{"D", "b"}, Chained(Action{Kind: SaveSelection})},
		{"Duplicate insert before", "Select destination", []string{"D", "b", "enter"}, Leaf(Action{Kind: Duplicate, Mode: FromSaved, Placement: InsertBefore})},
		{"Commands", "Edit", []string{"e"}, Menu()},
		{"Edit", "Selection", []string{"e", "e"}, Leaf(Action{Kind: Edit})},
		{"Commands", "Evolog", []string{"E"}, Menu()},
		{"Evolog", "Selection", []string{"E", "e"}, Leaf(Action{Kind: Evolog})},
		{"Evolog", "Selection (patch)", []string{"E", "E"}, Leaf(Action{Kind: Evolog, Mode: Patch})},
		{"Commands", "File", []string{"f"}, Menu()},
		{"File", "Track (enter filepath)", []string{"f", "t"}, Leaf(Action{Kind: FileTrack})},
		{"File", "Untrack selection (must be ignored)", []string{"f", "u"}, Leaf(Action{Kind: FileUntrack})},
		{"Commands", "Git", []string{"g"}, Menu()},
		{"Git", "Fetch", []string{"g", "f"}, Menu()},
		{"Git fetch", "Default", []string{"g", "f", "f"}, Leaf(Action{Kind: GitFetch})},
		{"Git fetch", "All remotes", []string{"g", "f", "a"}, Leaf(Action{Kind: GitFetch, Mode: FetchAllRemotes})},
		{"Git fetch", "Tracked bookmarks", []string{"g", "f", "t"}, Leaf(Action{Kind: GitFetch, Mode: FetchTracked})},
		{"Git fetch", "Branch by name", []string{"g", "f", "b"}, Leaf(Action{Kind: GitFetch, Mode: FetchBranch})},
		{"Git fetch", "Remote by name", []string{"g", "f", "r"}, Leaf(Action{Kind: GitFetch, Mode: FetchRemote})},
		{"Git", "Push", []string{"g", "p"}, Menu()},
		{"Git push", "Default", []string{"g", "p", "p"}, Leaf(Action{Kind: GitPush})},
		{"Git push", "All bookmarks", []string{"g", "p", "a"}, Leaf(Action{Kind: GitPush, Mode: PushAll})},
		{"Git push", "Bookmarks at selection", []string{"g", "p", "r"}, Leaf(Action{Kind: GitPush, Mode: PushRevision})},
		{"Git push", "Tracked bookmarks", []string{"g", "p", "t"}, Leaf(Action{Kind: GitPush, Mode: PushTracked})},
		{"Git push", "Deleted bookmarks", []string{"g", "p", "d"}, Leaf(Action{Kind: GitPush, Mode: PushDeleted})},
		{"Git push", "New bookmark for selection", []string{"g", "p", "c"}, Leaf(Action{Kind: GitPush, Mode: PushChange})},
		{"Git push", "New named bookmark for selection", []string{"g", "p", "n"}, Leaf(Action{Kind: GitPush, Mode: PushNamed})},
		{"Git push", "Bookmark by name", []string{"g", "p", "b"}, Leaf(Action{Kind: GitPush, Mode: PushBookmark})},
		{"Git push", "Tug and push bookmark", []string{"g", "p", "T"}, Leaf(Action{Kind: TugAndPush})},
		{"Commands", "Interdiff", []string{"i"}, Menu()},
		{"Interdiff", "From @ to selection", []string{"i", "t"}, Leaf(Action{Kind: Interdiff, Mode: ToSelection})},
		{"Interdiff", "From selection to @", []string{"i", "f"}, Leaf(Action{Kind: Interdiff, Mode: FromSelection})},
		{"Interdiff", "From selection to destination", []string{"i", "i"}, Chained(Action{Kind: SaveSelection})},
		{"Interdiff to destination", "Select destination", []string{"i", "i", "enter"}, Leaf(Action{Kind: Interdiff, Mode: FromSaved})},
		{"Commands", "Metaedit", []string{"m"}, Menu()},
		{"Metaedit", "Update change-id", []string{"m", "c"}, Leaf(Action{Kind: Metaedit, Mode: UpdateChangeID})},
		{"Metaedit", "Update author timestamp to now", []string{"m", "t"}, Leaf(Action{Kind: Metaedit, Mode: UpdateAuthorTimestamp})},
		{"Metaedit", "Update author to configured user", []string{"m", "a"}, Leaf(Action{Kind: Metaedit, Mode: UpdateAuthor})},
		{"Metaedit", "Set author", []string{"m", "A"}, Leaf(Action{Kind: Metaedit, Mode: SetAuthor})},
		{"Metaedit", "Set author timestamp", []string{"m", "T"}, Leaf(Action{Kind: Metaedit, Mode: SetAuthorTimestamp})},
		{"Metaedit", "Force rewrite", []string{"m", "r"}, Leaf(Action{Kind: Metaedit, Mode: ForceRewrite})},
		{"Commands", "New", []string{"n"}, Menu()},
		{"New", "After selection", []string{"n", "n"}, Leaf(Action{Kind: New})},
		{"New", "After selection (rebase children)", []string{"n", "a"}, Leaf(Action{Kind: New, Mode: NewInsertAfter})},
		{"New", "Before selection (rebase children)", []string{"n", "b"}, Leaf(Action{Kind: New, Mode: NewInsertBefore})},
		{"New", "After trunk", []string{"n", "m"}, Leaf(Action{Kind: New, Mode: NewAfterTrunk})},
		{"New", "After trunk (sync)", []string{"n", "M"}, Leaf(Action{Kind: NewAfterTrunkSync})},
		{"Commands", "Next", []string{"N"}, Menu()},
		{"Commands", "Parallelize", []string{"p"}, Menu()},
		{"Parallelize", "Selection with parent", []string{"p", "p"}, Leaf(Action{Kind: Parallelize})},
		{"Parallelize", "From selection to destination", []string{"p", "P"}, Chained(Action{Kind: SaveSelection})},
		{"Parallelize range", "Select destination", []string{"p", "P", "enter"}, Leaf(Action{Kind: Parallelize, Mode: FromSaved})},
		{"Parallelize", "Revset", []string{"p", "r"}, Leaf(Action{Kind: Parallelize, Mode: ParallelizeRevset})},
		{"Next", "Next", []string{"N", "n"}, Leaf(Action{Kind: Next})},
		{"Next", "Nth next", []string{"N", "N"}, Leaf(Action{Kind: Next, Offset: true})},
		{"Next", "Next (edit)", []string{"N", "e"}, Leaf(Action{Kind: Next, Mode: MoveEdit})},
		{"Next", "Nth next (edit)", []string{"N", "E"}, Leaf(Action{Kind: Next, Mode: MoveEdit, Offset: true})},
		{"Next", "Next (no-edit)", []string{"N", "x"}, Leaf(Action{Kind: Next, Mode: MoveNoEdit})},
		{"Next", "Nth next (no-edit)", []string{"N", "X"}, Leaf(Action{Kind: Next, Mode: MoveNoEdit, Offset: true})},
		{"Next", "Next conflict", []string{"N", "c"}, Leaf(Action{Kind: Next, Mode: MoveConflict})},
		{"Commands", "Previous", []string{"P"}, Menu()},
		{"Previous", "Previous", []string{"P", "p"}, Leaf(Action{Kind: Prev})},
		{"Previous", "Nth previous", []string{"P", "P"}, Leaf(Action{Kind: Prev, Offset: true})},
		{"Previous", "Previous (edit)", []string{"P", "e"}, Leaf(Action{Kind: Prev, Mode: MoveEdit})},
		{"Previous", "Nth previous (edit)", []string{"P", "E"}, Leaf(Action{Kind: Prev, Mode: MoveEdit, Offset: true})},
		{"Previous", "Previous (no-edit)", []string{"P", "x"}, Leaf(Action{Kind: Prev, Mode: MoveNoEdit})},
		{"Previous", "Nth previous (no-edit)", []string{"P", "X"}, Leaf(Action{Kind: Prev, Mode: MoveNoEdit, Offset: true})},
		{"Previous", "Previous conflict", []string{"P", "c"}, Leaf(Action{Kind: Prev, Mode: MoveConflict})},
		{"Commands", "Squash", []string{"s"}, Menu()},
		{"Squash", "Selection into parent", []string{"s", "s"}, Leaf(Action{Kind: Squash})},
		{"Squash", "Selection into destination", []string{"s", "i"}, Chained(Action{Kind: SaveSelection})},
		{"Squash into", "Select destination", []string{"s", "i", "enter"}, Leaf(Action{Kind: Squash, Mode: FromSaved})},
		{"Commands", "Status", []string{"t"}, Leaf(Action{Kind: Status})},
		{"Commands", "Split", []string{"/"}, Leaf(Action{Kind: Split})},
		{"Commands", "Sign", []string{"S"}, Menu()},
		{"Sign", "Selection", []string{"S", "s"}, Leaf(Action{Kind: Sign})},
		{"Sign", "From selection to destination", []string{"S", "S"}, Chained(Action{Kind: SaveSelection})},
		{"Sign range", "Select destination", []string{"S", "S", "enter"}, Leaf(Action{Kind: Sign, Mode: FromSaved})},
		{"Sign", "Unsign selection", []string{"S", "u"}, Leaf(Action{Kind: Unsign})},
		{"Sign", "Unsign from selection to destination", []string{"S", "U"}, Chained(Action{Kind: SaveSelection})},
		{"Unsign range", "Select destination", []string{"S", "U", "enter"}, Leaf(Action{Kind: Unsign, Mode: FromSaved})},
		{"Commands", "Simplify parents", []string{"y"}, Menu()},
		{"Simplify parents of", "Selection", []string{"y", "y"}, Leaf(Action{Kind: SimplifyParents, Mode: SourceRevisions})},
		{"Simplify parents of", "Selection with descendants", []string{"y", "Y"}, Leaf(Action{Kind: SimplifyParents, Mode: SourceDescendants})},
		{"Commands", "Rebase", []string{"r"}, Menu()},
		{"Rebase", "Selected branch", []string{"r", "b"}, Chained(Action{Kind: SaveSelection})},
		{"Rebase", "Selected branch onto trunk", []string{"r", "m"}, Leaf(Action{Kind: RebaseBranchOntoTrunk})},
		{"Rebase", "Selected branch onto trunk (sync)", []string{"r", "M"}, Leaf(Action{Kind: RebaseBranchOntoTrunkSync})},
		{"Rebase", "Selected source", []string{"r", "s"}, Chained(Action{Kind: SaveSelection})},
		{"Rebase", "Selected revision", []string{"r", "r"}, Chained(Action{Kind: SaveSelection})},
		{"Rebase branch", "Insert after", []string{"r", "b", "a"}, Menu()},
		{"Rebase branch", "Insert before", []string{"r", "b", "b"}, Menu()},
		{"Rebase branch", "Onto", []string{"r", "b", "o"}, Menu()},
		{"Rebase branch after", "Select destination", []string{"r", "b", "a", "enter"}, Leaf(Action{Kind: Rebase, Mode: SourceBranch, Placement: InsertAfter, Dest: DestSelection})},
		{"Rebase branch after", "Trunk", []string{"r", "b", "a", "m"}, Leaf(Action{Kind: Rebase, Mode: SourceBranch, Placement: InsertAfter, Dest: DestTrunk})},
		{"Rebase branch after", "@", []string{"r", "b", "a", "c"}, Leaf(Action{Kind: Rebase, Mode: SourceBranch, Placement: InsertAfter, Dest: DestWorkingCopy})},
		{"Rebase branch before", "Select destination", []string{"r", "b", "b", "enter"}, Leaf(Action{Kind: Rebase, Mode: SourceBranch, Placement: InsertBefore, Dest: DestSelection})},
		{"Rebase branch before", "Trunk", []string{"r", "b", "b", "m"}, Leaf(Action{Kind: Rebase, Mode: SourceBranch, Placement: InsertBefore, Dest: DestTrunk})},
		{"Rebase branch before", "@", []string{"r", "b", "b", "c"}, Leaf(Action{Kind: Rebase, Mode: SourceBranch, Placement: InsertBefore, Dest: DestWorkingCopy})},
		{"Rebase branch onto", "Select destination", []string{"r", "b", "o", "enter"}, Leaf(Action{Kind: Rebase, Mode: SourceBranch, Placement: Onto, Dest: DestSelection})},
		{"Rebase branch onto", "Trunk", []string{"r", "b", "o", "m"}, Leaf(Action{Kind: Rebase, Mode: SourceBranch, Placement: Onto, Dest: DestTrunk})},
		{"Rebase branch onto", "@", []string{"r", "b", "o", "c"}, Leaf(Action{Kind: Rebase, Mode: SourceBranch, Placement: Onto, Dest: DestWorkingCopy})},
		{"Rebase source", "Insert after", []string{"r", "s", "a"}, Menu()},
		{"Rebase source", "Insert before", []string{"r", "s", "b"}, Menu()},
		{"Rebase source", "Onto", []string{"r", "s", "o"}, Menu()},
		{"Rebase source after", "Select destination", []string{"r", "s", "a", "enter"}, Leaf(Action{Kind: Rebase, Mode: SourceDescendants, Placement: InsertAfter, Dest: DestSelection})},
		{"Rebase source after", "Trunk", []string{"r", "s", "a", "m"}, Leaf(Action{Kind: Rebase, Mode: SourceDescendants, Placement: InsertAfter, Dest: DestTrunk})},
		{"Rebase source after", "@", []string{"r", "s", "a", "c"}, Leaf(Action{Kind: Rebase, Mode: SourceDescendants, Placement: InsertAfter, Dest: DestWorkingCopy})},
		{"Rebase source before", "Select destination", []string{"r", "s", "b", "enter"}, Leaf(Action{Kind: Rebase, Mode: SourceDescendants, Placement: InsertBefore, Dest: DestSelection})},
		{"Rebase source before", "Trunk", []string{"r", "s", "b", "m"}, Leaf(Action{Kind: Rebase, Mode: SourceDescendants, Placement: InsertBefore, Dest: DestTrunk})},
		{"Rebase source before", "@", []string{"r", "s", "b", "c"}, Leaf(Action{Kind: Rebase, Mode: SourceDescendants, Placement: InsertBefore, Dest: DestWorkingCopy})},
		{"Rebase source onto", "Select destination", []string{"r", "s", "o", "enter"}, Leaf(Action{Kind: Rebase, Mode: SourceDescendants, Placement: Onto, Dest: DestSelection})},
		{"Rebase source onto", "Trunk", []string{"r", "s", "o", "m"}, Leaf(Action{Kind: Rebase, Mode: SourceDescendants, Placement: Onto, Dest: DestTrunk})},
		{"Rebase source onto", "@", []string{"r", "s", "o", "c"}, Leaf(Action{Kind: Rebase, Mode: SourceDescendants, Placement: Onto, Dest: DestWorkingCopy})},
		{"Rebase revision", "Insert after", []string{"r", "r", "a"}, Menu()},
		{"Rebase revision", "Insert before", []string{"r", "r", "b"}, Menu()},
		{"Rebase revision", "Onto", []string{"r", "r", "o"}, Menu()},
		{"Rebase revision after", "Select destination", []string{"r", "r", "a", "enter"}, Leaf(Action{Kind: Rebase, Mode: SourceRevisions, Placement: InsertAfter, Dest: DestSelection})},
		{"Rebase revision after", "Trunk", []string{"r", "r", "a", "m"}, Leaf(Action{Kind: Rebase, Mode: SourceRevisions, Placement: InsertAfter, Dest: DestTrunk})},
		{"Rebase revision after", "@", []string{"r", "r", "a", "c"}, Leaf(Action{Kind: Rebase, Mode: SourceRevisions, Placement: InsertAfter, Dest: DestWorkingCopy})},
		{"Rebase revision before", "Select destination", []string{"r", "r", "b", "enter"}, Leaf(Action{Kind: Rebase, Mode: SourceRevisions, Placement: InsertBefore, Dest: DestSelection})},
		{"Rebase revision before", "Trunk", []string{"r", "r", "b", "m"}, Leaf(Action{Kind: Rebase, Mode: SourceRevisions, Placement: InsertBefore, Dest: DestTrunk})},
		{"Rebase revision before", "@", []string{"r", "r", "b", "c"}, Leaf(Action{Kind: Rebase, Mode: SourceRevisions, Placement: InsertBefore, Dest: DestWorkingCopy})},
		{"Rebase revision onto", "Select destination", []string{"r", "r", "o", "enter"}, Leaf(Action{Kind: Rebase, Mode: SourceRevisions, Placement: Onto, Dest: DestSelection})},
		{"Rebase revision onto", "Trunk", []string{"r", "r", "o", "m"}, Leaf(Action{Kind: Rebase, Mode: SourceRevisions, Placement: Onto, Dest: DestTrunk})},
		{"Rebase revision onto", "@", []string{"r", "r", "o", "c"}, Leaf(Action{Kind: Rebase, Mode: SourceRevisions, Placement: Onto, Dest: DestWorkingCopy})},
		{"Commands", "Restore", []string{"R"}, Menu()},
		{"Restore", "Changes in selection", []string{"R", "r"}, Leaf(Action{Kind: Restore, Mode: ChangesIn})},
		{"Restore", "Changes in selection (restore descendants)", []string{"R", "d"}, Leaf(Action{Kind: Restore, Mode: ChangesInRestoreDescendants})},
		{"Restore", "From selection into @", []string{"R", "f"}, Leaf(Action{Kind: Restore, Mode: RestoreFrom})},
		{"Restore", "From @ into selection", []string{"R", "i"}, Leaf(Action{Kind: Restore, Mode: RestoreInto})},
		{"Restore", "From selection into destination", []string{"R", "R"}, Chained(Action{Kind: SaveSelection})},
		{"Restore into", "Select destination", []string{"R", "R", "enter"}, Leaf(Action{Kind: Restore, Mode: FromSaved})},
		{"Commands", "View", []string{"v"}, Menu()},
		{"View", "Selection", []string{"v", "v"}, Leaf(Action{Kind: View})},
		{"View", "From selection to @", []string{"v", "f"}, Leaf(Action{Kind: View, Mode: FromSelection})},
		{"View", "From trunk to selection", []string{"v", "m"}, Leaf(Action{Kind: View, Mode: FromTrunkToSelection})},
		{"View", "From @ to selection", []string{"v", "t"}, Leaf(Action{Kind: View, Mode: ToSelection})},
		{"View", "From selection to destination", []string{"v", "V"}, Chained(Action{Kind: SaveSelection})},
		{"View to destination", "Select destination", []string{"v", "V", "enter"}, Leaf(Action{Kind: View, Mode: FromSaved})},
		{"Commands", "Revert", []string{"V"}, Menu()},
		{"Revert", "Selection onto @", []string{"V", "v"}, Leaf(Action{Kind: Revert, Placement: Onto, Dest: DestWorkingCopy})},
		{"Revert", "Selection onto destination", []string{"V", "o"}, Chained(Action{Kind: SaveSelection})},
		{"Revert onto", "Select destination", []string{"V", "o", "enter"}, Leaf(Action{Kind: Revert, Mode: FromSaved, Placement: Onto, Dest: DestSelection})},
		{"Revert", "Selection after destination", []string{"V", "a"}, Chained(Action{Kind: SaveSelection})},
		{"Revert after", "Select destination", []string{"V", "a", "enter"}, Leaf(Action{Kind: Revert, Mode: FromSaved, Placement: InsertAfter, Dest: DestSelection})},
		{"Revert", "Selection before destination", []string{"V", "b"}, Chained(Action{Kind: SaveSelection})},
		{"Revert before", "Select destination", []string{"V", "b", "enter"}, Leaf(Action{Kind: Revert, Mode: FromSaved, Placement: InsertBefore, Dest: DestSelection})},
		{"Commands", "Undo", []string{"u"}, Menu()},
		{"Undo", "Undo last operation", []string{"u", "u"}, Leaf(Action{Kind: Undo})},
		{"Undo", "Redo last operation", []string{"u", "r"}, Leaf(Action{Kind: Redo})},
		{"Edit", "Selection ignoring immutability", []string{"e", "i"}, Leaf(Action{Kind: Edit, Mode: IgnoreImmutable})},
		{"Commands", "Workspace", []string{"w"}, Menu()},
		{"Workspace", "List", []string{"w", "s"}, Leaf(Action{Kind: WorkspaceList})},
		{"Workspace", "Show root", []string{"w", "r"}, Leaf(Action{Kind: WorkspaceRoot})},
		{"Workspace", "Add (enter path)", []string{"w", "a"}, Leaf(Action{Kind: WorkspaceAdd})},
		{"Workspace", "Forget", []string{"w", "f"}, Leaf(Action{Kind: WorkspaceForget})},
		{"Workspace", "Update stale", []string{"w", "u"}, Leaf(Action{Kind: WorkspaceUpdateStale})},
		{"Workspace", "Rename current", []string{"w", "n"}, Leaf(Action{Kind: WorkspaceRename})},
		{"Commands", "Resolve conflicts", []string{"x"}, Leaf(Action{Kind: Resolve})},
		{"Commands", "Copy", []string{"C"}, Menu()},
		{"Copy", "Change id", []string{"C", "c"}, Leaf(Action{Kind: CopyChangeID})},
		{"Copy", "File path", []string{"C", "p"}, Leaf(Action{Kind: CopyPath})},
		{"Commands", "Jump to revision", []string{"J"}, Leaf(Action{Kind: Jump})},
	}
}

// DefaultTree builds the trie from DefaultTable.
func DefaultTree() *Tree {
	return NewTree(DefaultTable())
}
