package jj

import (
	"strconv"
	"strings"
)

// TugRevset selects the closest bookmarked ancestor of the working copy's parent.
const TugRevset = "heads(::@- & bookmarks())"

func (g GlobalArgs) mutate(args ...string) Command {
	return Command{Args: args, Global: g, Sync: true}
}

func (g GlobalArgs) query(args ...string) Command {
	return Command{Args: args, Global: g}
}

func (g GlobalArgs) terminal(sync bool, args ...string) Command {
	return Command{Args: args, Global: g, Sync: sync, Interactive: true}
}

func withFile(args []string, file string) []string {
	if file == "" {
		return args
	}
	return append(args, "--", file)
}

func withFlag(args []string, flag string) []string {
	if flag == "" {
		return args
	}
	return append(args, flag)
}

// Abandon abandons a revision. flag is "", "--retain-bookmarks" or "--restore-descendants".
func (g GlobalArgs) Abandon(changeID, flag string) Command {
	return g.mutate(withFlag([]string{"abandon", changeID}, flag)...)
}

// Absorb moves changes from a revision into the mutable stack below it, or into a given revision.
func (g GlobalArgs) Absorb(from, into, file string) Command {
	args := []string{"absorb", "--from", from}
	if into != "" {
		args = append(args, "--into", into)
	}
	return g.mutate(withFile(args, file)...)
}

func (g GlobalArgs) BookmarkCreate(name, changeID string) Command {
	return g.mutate("bookmark", "create", name, "-r", changeID)
}

func (g GlobalArgs) BookmarkDelete(name string) Command {
	return g.mutate("bookmark", "delete", name)
}

func (g GlobalArgs) BookmarkForget(name string, includeRemotes bool) Command {
	args := []string{"bookmark", "forget", name}
	if includeRemotes {
		args = append(args, "--include-remotes")
	}
	return g.mutate(args...)
}

// BookmarkMove moves the bookmarks pointing at from (a revset) to to.
func (g GlobalArgs) BookmarkMove(from, to string, allowBackwards bool) Command {
	args := []string{"bookmark", "move", "--from", from, "--to", to}
	if allowBackwards {
		args = append(args, "--allow-backwards")
	}
	return g.mutate(args...)
}

func (g GlobalArgs) BookmarkRename(oldName, newName string) Command {
	return g.mutate("bookmark", "rename", oldName, newName)
}

func (g GlobalArgs) BookmarkSet(name, changeID string) Command {
	return g.mutate("bookmark", "set", name, "-r", changeID, "--allow-backwards")
}

func (g GlobalArgs) BookmarkTrack(name string) Command {
	return g.mutate("bookmark", "track", name)
}

func (g GlobalArgs) BookmarkUntrack(name string) Command {
	return g.mutate("bookmark", "untrack", name)
}

// BookmarkList lists bookmarks; extra is appended verbatim (e.g. "--all-remotes").
func (g GlobalArgs) BookmarkList(extra ...string) Command {
	return g.query(append([]string{"bookmark", "list", "--color=never"}, extra...)...)
}

// Commit opens the editor for the working-copy description, optionally for a single file.
func (g GlobalArgs) Commit(file string) Command {
	return g.terminal(true, withFile([]string{"commit"}, file)...)
}

func (g GlobalArgs) Describe(changeID, message string) Command {
	return g.mutate("describe", changeID, "-m", message)
}

// Duplicate copies a revision. placement is "", "--onto", "--insert-after" or "--insert-before".
func (g GlobalArgs) Duplicate(changeID, placement, destination string) Command {
	args := []string{"duplicate", changeID}
	if placement != "" && destination != "" {
		args = append(args, placement, destination)
	}
	return g.mutate(args...)
}

func (g GlobalArgs) Edit(changeID string) Command {
	return g.mutate("edit", changeID)
}

func (g GlobalArgs) Evolog(changeID string, patch bool) Command {
	args := []string{"evolog", "-r", changeID}
	if patch {
		args = append(args, "--patch")
	}
	return g.terminal(false, args...)
}

func (g GlobalArgs) FileTrack(path string) Command {
	return g.mutate("file", "track", path)
}

func (g GlobalArgs) FileUntrack(path string) Command {
	return g.mutate("file", "untrack", path)
}

// FileShow prints a file's content at a revision.
func (g GlobalArgs) FileShow(changeID, path string) Command {
	return g.query("file", "show", "--color=never", "-r", changeID, "--", path)
}

// Status is also used to discover untracked paths.
func (g GlobalArgs) Status() Command {
	return g.query("status", "--color=never")
}

func (g GlobalArgs) GitFetch(flags ...string) Command {
	return g.mutate(append([]string{"git", "fetch"}, flags...)...)
}

// GitFetchRemote fetches everything, or a single branch, from one remote.
func (g GlobalArgs) GitFetchRemote(remote, branch string) Command {
	args := []string{"git", "fetch", "--remote", remote}
	if branch != "" {
		args = append(args, "--branch", branch)
	}
	return g.mutate(args...)
}

func (g GlobalArgs) GitPush(flags ...string) Command {
	return g.mutate(append([]string{"git", "push"}, flags...)...)
}

func (g GlobalArgs) GitRemoteList() Command {
	return g.query("git", "remote", "list")
}

func (g GlobalArgs) Interdiff(from, to, file string) Command {
	return g.terminal(false, withFile([]string{"interdiff", "--from", from, "--to", to}, file)...)
}

// Metaedit changes commit metadata. value is appended after flag when non-empty.
func (g GlobalArgs) Metaedit(changeID, flag, value string) Command {
	args := []string{"metaedit", "-r", changeID, flag}
	if value != "" {
		args = append(args, value)
	}
	return g.mutate(args...)
}

func (g GlobalArgs) New(revision string, flags ...string) Command {
	args := append([]string{"new"}, flags...)
	return g.mutate(append(args, revision)...)
}

// NextPrev runs "jj next" or "jj prev". modeFlag and offset are optional.
func (g GlobalArgs) NextPrev(direction, modeFlag, offset string) Command {
	args := withFlag([]string{direction}, modeFlag)
	if offset != "" {
		args = append(args, offset)
	}
	return g.mutate(args...)
}

func (g GlobalArgs) Parallelize(revset string) Command {
	return g.mutate("parallelize", revset)
}

// Rebase runs jj rebase with a source kind (--branch, --source, --revisions)
// and a placement (--onto, --insert-after, --insert-before).
func (g GlobalArgs) Rebase(sourceFlag, source, placement, destination string) Command {
	return g.mutate("rebase", sourceFlag, source, placement, destination)
}

func (g GlobalArgs) Redo() Command {
	return g.mutate("redo")
}

func (g GlobalArgs) Undo() Command {
	return g.mutate("undo")
}

func (g GlobalArgs) Restore(flags []string, file string) Command {
	args := append([]string{"restore"}, flags...)
	return g.mutate(withFile(args, file)...)
}

func (g GlobalArgs) Resolve(changeID string) Command {
	return g.terminal(true, "resolve", "-r", changeID)
}

func (g GlobalArgs) Revert(revision, placement, destination string) Command {
	return g.mutate("revert", "-r", revision, placement, destination)
}

func (g GlobalArgs) Show(changeID string) Command {
	return g.terminal(false, "show", changeID)
}

func (g GlobalArgs) DiffFile(changeID, file string) Command {
	return g.terminal(false, withFile([]string{"diff", "-r", changeID}, file)...)
}

func (g GlobalArgs) DiffRange(from, to, file string) Command {
	return g.terminal(false, withFile([]string{"diff", "--from", from, "--to", to}, file)...)
}

// Sign signs or unsigns ("sign" / "unsign") the revisions in revset.
func (g GlobalArgs) Sign(action, revset string) Command {
	return g.mutate(action, "-r", revset)
}

// SimplifyParents runs with flag "-r" (revisions) or "-s" (with descendants).
func (g GlobalArgs) SimplifyParents(changeID, flag string) Command {
	return g.mutate("simplify-parents", flag, changeID)
}

func (g GlobalArgs) Split(changeID string) Command {
	return g.terminal(true, "split", "-r", changeID)
}

// SquashQuiet squashes into the parent without asking for a combined message.
func (g GlobalArgs) SquashQuiet(changeID, file string) Command {
	return g.mutate(withFile([]string{"squash", "-r", changeID, "--use-destination-message"}, file)...)
}

func (g GlobalArgs) Squash(changeID, file string) Command {
	return g.terminal(true, withFile([]string{"squash", "-r", changeID}, file)...)
}

func (g GlobalArgs) SquashInto(from, into, file string) Command {
	return g.terminal(true, withFile([]string{"squash", "--from", from, "--into", into}, file)...)
}

// Tug moves the closest ancestor bookmark up to the working copy's parent.
func (g GlobalArgs) Tug() Command {
	return g.BookmarkMove(TugRevset, "@-", false)
}

func (g GlobalArgs) Root() Command {
	return g.query("root")
}

func (g GlobalArgs) WorkspaceAdd(path string) Command {
	return g.mutate("workspace", "add", path)
}

func (g GlobalArgs) WorkspaceForget(name string) Command {
	return g.mutate("workspace", "forget", name)
}

func (g GlobalArgs) WorkspaceList() Command {
	return g.query("workspace", "list", "--color=never")
}

func (g GlobalArgs) WorkspaceRename(name string) Command {
	return g.mutate("workspace", "rename", name)
}

func (g GlobalArgs) WorkspaceRoot() Command {
	return g.query("workspace", "root")
}

func (g GlobalArgs) WorkspaceUpdateStale() Command {
	return g.mutate("workspace", "update-stale")
}

// Editor opens path in $EDITOR (vim when unset), at line when line > 0.
func Editor(editor, path string, line int) Command {
	if editor == "" {
		editor = "vim"
	}
	fields := strings.Fields(editor)
	args := append([]string(nil), fields[1:]...)
	if line > 0 {
		args = append(args, "+"+strconv.Itoa(line))
	}
	args = append(args, path)
	return Command{Program: fields[0], Args: args, Interactive: true}
}
