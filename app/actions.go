package app

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/atotto/clipboard"

	"github.com/gerunddev/jjdag/command"
	"github.com/gerunddev/jjdag/jj"
	"github.com/gerunddev/jjdag/logtree"
)

// writeClipboard is replaced in tests.
var writeClipboard = clipboard.WriteAll

// nameTemplate renders one bookmark name per line.
const nameTemplate = `name ++ "\n"`

// Dispatch runs a resolved action against the current selection. Problems
// the user can fix are shown in the output panel; the returned error means
// the program cannot continue.
func (s *State) Dispatch(ctx context.Context, a command.Action) error {
	jj.Logger().Debug("dispatch", "kind", a.Kind, "mode", a.Mode)
	return s.report(s.dispatch(ctx, a))
}

func (s *State) dispatch(ctx context.Context, a command.Action) error {
	g := s.global
	switch a.Kind {
	case command.SaveSelection:
		return s.SaveSelection()
	case command.Abandon:
		return s.abandon(a)
	case command.Absorb:
		return s.absorb(a)
	case command.BookmarkCreate:
		return s.startBookmarkCreate()
	case command.BookmarkDelete:
		return s.openBookmarkPopup(ctx, PopupBookmarkDelete, g.BookmarkList(), "No bookmarks to delete", isLocal)
	case command.BookmarkForget:
		return s.bookmarkForget(ctx, a.Mode == command.IncludeRemotes)
	case command.BookmarkMove:
		return s.bookmarkMove(a)
	case command.BookmarkRename:
		return s.openBookmarkPopup(ctx, PopupBookmarkRename, g.BookmarkList(), "", isLocal)
	case command.BookmarkSet:
		if _, err := s.requireSelected(); err != nil {
			return err
		}
		return s.openBookmarkPopup(ctx, PopupBookmarkSet, g.BookmarkList(), "No bookmarks to set", isLocal)
	case command.BookmarkTrack:
		return s.openBookmarkPopup(ctx, PopupBookmarkTrack, g.BookmarkList("--all-remotes"), "No remote bookmarks to track", isRemote)
	case command.BookmarkUntrack:
		return s.openBookmarkPopup(ctx, PopupBookmarkUntrack, g.BookmarkList("--all-remotes"), "No tracked remote bookmarks to untrack", isRemote)
	case command.NewOnBranch:
		id, err := s.requireSelected()
		if err != nil {
			return err
		}
		s.queueCommands(g.New(id), g.Tug())
	case command.Tug:
		s.queueCommands(g.Tug())
	case command.TugAndPush:
		return s.tugAndPush(ctx)
	case command.Commit:
		s.queueCommands(g.Commit(s.selectedFile()))
	case command.CopyChangeID:
		id, err := s.requireSelected()
		if err != nil {
			return err
		}
		return s.copy("change id", id)
	case command.CopyPath:
		path := s.selectedFile()
		if path == "" {
			return ErrInvalidSelection
		}
		return s.copy("path", path)
	case command.Describe:
		return s.startDescribe(a.Mode == command.IgnoreImmutable)
	case command.Duplicate:
		return s.duplicate(a)
	case command.Edit:
		id, err := s.requireSelected()
		if err != nil {
			return err
		}
		if a.Mode == command.IgnoreImmutable {
			g.IgnoreImmutable = true
		}
		s.queueCommands(g.Edit(id))
	case command.Evolog:
		id, err := s.requireSelected()
		if err != nil {
			return err
		}
		s.queueCommands(g.Evolog(id, a.Mode == command.Patch))
	case command.FileTrack:
		return s.openPopup(ctx, PopupFileTrack, g.Status(), jj.ParseUntrackedPaths, "No untracked files to track")
	case command.FileUntrack:
		path := s.selectedFile()
		if path == "" || !s.isSelectedWorkingCopy() {
			return ErrInvalidSelection
		}
		s.queueCommands(g.FileUntrack(path))
	case command.GitFetch:
		return s.gitFetch(ctx, a)
	case command.GitPush:
		return s.gitPush(ctx, a)
	case command.Interdiff:
		return s.interdiff(a)
	case command.Jump:
		return s.openJump()
	case command.Metaedit:
		return s.metaedit(a)
	case command.New:
		return s.newRevision(a)
	case command.NewAfterTrunkSync:
		s.queueCommands(g.GitFetch(), g.New("trunk()"))
	case command.Next, command.Prev:
		return s.nextPrev(a)
	case command.Parallelize:
		return s.parallelize(a)
	case command.Rebase:
		return s.rebase(a)
	case command.RebaseBranchOntoTrunk, command.RebaseBranchOntoTrunkSync:
		id, err := s.requireSelected()
		if err != nil {
			return err
		}
		rebase := g.Rebase("--branch", id, "--onto", "trunk()")
		if a.Kind == command.RebaseBranchOntoTrunkSync {
			s.queueCommands(g.GitFetch(), rebase)
		} else {
			s.queueCommands(rebase)
		}
	case command.Redo:
		s.queueCommands(g.Redo())
	case command.Undo:
		s.queueCommands(g.Undo())
	case command.Resolve:
		id, err := s.requireSelected()
		if err != nil {
			return err
		}
		s.queueCommands(g.Resolve(id))
	case command.Restore:
		return s.restore(a)
	case command.Revert:
		return s.revert(a)
	case command.Sign, command.Unsign:
		return s.sign(a)
	case command.SimplifyParents:
		id, err := s.requireSelected()
		if err != nil {
			return err
		}
		flag := "-r"
		if a.Mode == command.SourceDescendants {
			flag = "-s"
		}
		s.queueCommands(g.SimplifyParents(id, flag))
	case command.Split:
		id, err := s.requireSelected()
		if err != nil {
			return err
		}
		s.queueCommands(g.Split(id))
	case command.Squash:
		return s.squash(a)
	case command.Status:
		s.queueCommands(g.Status())
	case command.View:
		return s.view(a)
	case command.WorkspaceAdd:
		s.modal = newTextInput(InputWorkspaceAdd, "Enter Workspace Path", "/path/to/new-workspace", filepath.Dir(s.global.Repository))
	case command.WorkspaceForget:
		return s.openPopup(ctx, PopupWorkspaceForget, g.WorkspaceList(), jj.ParseWorkspaceNames, "No workspaces to forget")
	case command.WorkspaceList:
		s.queueCommands(g.WorkspaceList())
	case command.WorkspaceRename:
		s.modal = newTextInput(InputWorkspaceRename, "Enter New Workspace Name", "new-workspace-name", "")
	case command.WorkspaceRoot:
		s.queueCommands(g.WorkspaceRoot())
	case command.WorkspaceUpdateStale:
		return s.openPopup(ctx, PopupWorkspaceUpdateStale, g.WorkspaceList(), jj.ParseWorkspaceNames, "No workspaces to update")
	default:
		return fmt.Errorf("unhandled action kind %d", a.Kind)
	}
	return nil
}

// SaveSelection remembers the cursor for the second step of a two-step
// command. Without a revision under the cursor the whole sequence is
// abandoned.
func (s *State) SaveSelection() error {
	pos, _ := s.selectedPos()
	id, ok := s.selectedChangeID()
	if !ok {
		s.Clear()
		return ErrInvalidSelection
	}
	s.saved = &Selection{ChangeID: id, Path: s.selectedFile(), Pos: pos.Clone()}
	return nil
}

func (s *State) requireSelected() (string, error) {
	id, ok := s.selectedChangeID()
	if !ok {
		return "", ErrInvalidSelection
	}
	return id, nil
}

// requireSavedAndSelected returns the source and destination of a two-step
// command.
func (s *State) requireSavedAndSelected() (from, to string, err error) {
	from, ok := s.savedChangeID()
	if !ok {
		return "", "", ErrInvalidSelection
	}
	to, err = s.requireSelected()
	return from, to, err
}

func (s *State) destination(d command.Destination) (string, error) {
	switch d {
	case command.DestTrunk:
		return "trunk()", nil
	case command.DestWorkingCopy:
		return "@", nil
	default:
		return s.requireSelected()
	}
}

func (s *State) abandon(a command.Action) error {
	id, err := s.requireSelected()
	if err != nil {
		return err
	}
	var flag string
	switch a.Mode {
	case command.RetainBookmarks:
		flag = "--retain-bookmarks"
	case command.RestoreDescendants:
		flag = "--restore-descendants"
	}
	s.queueCommands(s.global.Abandon(id, flag))
	return nil
}

func (s *State) absorb(a command.Action) error {
	if a.Mode == command.FromSaved {
		from, into, err := s.requireSavedAndSelected()
		if err != nil {
			return err
		}
		s.queueCommands(s.global.Absorb(from, into, s.savedFile()))
		return nil
	}
	id, err := s.requireSelected()
	if err != nil {
		return err
	}
	s.queueCommands(s.global.Absorb(id, "", s.selectedFile()))
	return nil
}

func (s *State) bookmarkForget(ctx context.Context, includeRemotes bool) error {
	extra := []string{"-T", nameTemplate}
	empty := "No bookmarks to forget"
	if includeRemotes {
		extra = append(extra, "--all-remotes")
		empty = "No bookmarks to forget (including remotes)"
	}
	p, err := s.listPopup(ctx, PopupBookmarkForget, s.global.BookmarkList(extra...), uniqueBookmarkNames, empty)
	if p != nil {
		p.includeRemotes = includeRemotes
	}
	return err
}

func (s *State) bookmarkMove(a command.Action) error {
	if a.Mode == command.TugToSelection {
		to, err := s.requireSelected()
		if err != nil {
			return err
		}
		s.queueCommands(s.global.BookmarkMove(jj.TugRevset, to, false))
		return nil
	}
	from, to, err := s.requireSavedAndSelected()
	if err != nil {
		return err
	}
	s.queueCommands(s.global.BookmarkMove(from, to, a.Mode == command.AllowBackwards))
	return nil
}

func (s *State) tugAndPush(ctx context.Context) error {
	out, err := s.engine.Run(ctx, s.global.BookmarkList("-r", jj.TugRevset, "-T", nameTemplate))
	if err != nil {
		return err
	}
	names := uniqueBookmarkNames(out)
	if len(names) == 0 {
		s.setInfo("No bookmarks to tug and push")
		return nil
	}
	cmds := []jj.Command{s.global.Tug()}
	for _, name := range names {
		cmds = append(cmds, s.global.GitPush("-b", name))
	}
	s.queueCommands(cmds...)
	return nil
}

func (s *State) copy(what, value string) error {
	if err := writeClipboard(value); err != nil {
		s.setInfo("Could not copy %s: %v", what, err)
		return nil
	}
	s.setInfo("Copied %s '%s'", what, value)
	return nil
}

func (s *State) duplicate(a command.Action) error {
	if a.Mode != command.FromSaved {
		id, err := s.requireSelected()
		if err != nil {
			return err
		}
		s.queueCommands(s.global.Duplicate(id, "", ""))
		return nil
	}
	from, to, err := s.requireSavedAndSelected()
	if err != nil {
		return err
	}
	s.queueCommands(s.global.Duplicate(from, a.Placement.Flag(), to))
	return nil
}

func (s *State) gitFetch(ctx context.Context, a command.Action) error {
	g := s.global
	switch a.Mode {
	case command.FetchAllRemotes:
		s.queueCommands(g.GitFetch("--all-remotes"))
	case command.FetchTracked:
		s.queueCommands(g.GitFetch("--tracked"))
	case command.FetchBranch, command.FetchRemote:
		p, err := s.listPopup(ctx, PopupGitFetchRemote, g.GitRemoteList(), jj.ParseRemoteNames, "No remotes configured")
		if p != nil {
			p.selectBranches = a.Mode == command.FetchBranch
		}
		return err
	default:
		s.queueCommands(g.GitFetch())
	}
	return nil
}

func (s *State) gitPush(ctx context.Context, a command.Action) error {
	g := s.global
	switch a.Mode {
	case command.PushAll:
		s.queueCommands(g.GitPush("--all"))
	case command.PushTracked:
		s.queueCommands(g.GitPush("--tracked"))
	case command.PushDeleted:
		s.queueCommands(g.GitPush("--deleted"))
	case command.PushRevision, command.PushChange:
		id, err := s.requireSelected()
		if err != nil {
			return err
		}
		flag := "-r"
		if a.Mode == command.PushChange {
			flag = "-c"
		}
		s.queueCommands(g.GitPush(flag, id))
	case command.PushNamed:
		id, err := s.requireSelected()
		if err != nil {
			return err
		}
		p, err := s.listPopup(ctx, PopupGitPushNamed, g.BookmarkList(), localBookmarkNames, "No bookmarks to push")
		if p != nil {
			p.changeID = id
		}
		return err
	case command.PushBookmark:
		_, err := s.listPopup(ctx, PopupGitPushBookmark, g.BookmarkList(), localBookmarkNames, "No bookmarks to push")
		return err
	default:
		s.queueCommands(g.GitPush())
	}
	return nil
}

func (s *State) interdiff(a command.Action) error {
	switch a.Mode {
	case command.FromSaved:
		from, to, err := s.requireSavedAndSelected()
		if err != nil {
			return err
		}
		s.queueCommands(s.global.Interdiff(from, to, s.savedFile()))
		return nil
	case command.FromSelection:
		id, err := s.requireSelected()
		if err != nil {
			return err
		}
		s.queueCommands(s.global.Interdiff(id, "@", s.selectedFile()))
		return nil
	default:
		id, err := s.requireSelected()
		if err != nil {
			return err
		}
		s.queueCommands(s.global.Interdiff("@", id, s.selectedFile()))
		return nil
	}
}

func (s *State) metaedit(a command.Action) error {
	id, err := s.requireSelected()
	if err != nil {
		return err
	}
	var flag string
	switch a.Mode {
	case command.UpdateChangeID:
		flag = "--update-change-id"
	case command.UpdateAuthorTimestamp:
		flag = "--update-author-timestamp"
	case command.UpdateAuthor:
		flag = "--update-author"
	case command.ForceRewrite:
		flag = "--force-rewrite"
	case command.SetAuthor:
		in := newTextInput(InputAuthor, "Set Author", "Name <email@example.com>", "")
		in.changeID = id
		s.modal = in
		return nil
	case command.SetAuthorTimestamp:
		in := newTextInput(InputAuthorTimestamp, "Set Author Timestamp", "2000-01-23T01:23:45-08:00", "")
		in.changeID = id
		s.modal = in
		return nil
	default:
		return fmt.Errorf("unhandled metaedit mode %d", a.Mode)
	}
	s.queueCommands(s.global.Metaedit(id, flag, ""))
	return nil
}

func (s *State) newRevision(a command.Action) error {
	if a.Mode == command.NewAfterTrunk {
		s.queueCommands(s.global.New("trunk()"))
		return nil
	}
	id, err := s.requireSelected()
	if err != nil {
		return err
	}
	var flags []string
	switch a.Mode {
	case command.NewInsertBefore:
		flags = []string{"--no-edit", "--insert-before"}
	case command.NewInsertAfter:
		flags = []string{"--insert-after"}
	}
	s.queueCommands(s.global.New(id, flags...))
	return nil
}

func nextPrevArgs(a command.Action) (direction, flag string) {
	direction = "next"
	if a.Kind == command.Prev {
		direction = "prev"
	}
	switch a.Mode {
	case command.MoveConflict:
		flag = "--conflict"
	case command.MoveEdit:
		flag = "--edit"
	case command.MoveNoEdit:
		flag = "--no-edit"
	}
	return direction, flag
}

func (s *State) nextPrev(a command.Action) error {
	direction, flag := nextPrevArgs(a)
	if a.Offset {
		in := newTextInput(InputNextPrevOffset, "Enter Offset", "positive integer", "")
		in.target = direction
		in.original = flag
		s.modal = in
		return nil
	}
	s.queueCommands(s.global.NextPrev(direction, flag, ""))
	return nil
}

func (s *State) parallelize(a command.Action) error {
	switch a.Mode {
	case command.ParallelizeRevset:
		s.modal = newTextInput(InputParallelizeRevset, "Parallelize Revset", "Enter revset expression", "")
		return nil
	case command.FromSaved:
		from, to, err := s.requireSavedAndSelected()
		if err != nil {
			return err
		}
		s.queueCommands(s.global.Parallelize(from + "::" + to))
		return nil
	default:
		id, err := s.requireSelected()
		if err != nil {
			return err
		}
		s.queueCommands(s.global.Parallelize(id + "-::" + id))
		return nil
	}
}

func (s *State) rebase(a command.Action) error {
	source, ok := s.savedChangeID()
	if !ok {
		return ErrInvalidSelection
	}
	var sourceFlag string
	switch a.Mode {
	case command.SourceBranch:
		sourceFlag = "--branch"
	case command.SourceDescendants:
		sourceFlag = "--source"
	default:
		sourceFlag = "--revisions"
	}
	dest, err := s.destination(a.Dest)
	if err != nil {
		return err
	}
	s.queueCommands(s.global.Rebase(sourceFlag, source, a.Placement.Flag(), dest))
	return nil
}

func (s *State) restore(a command.Action) error {
	if a.Mode == command.FromSaved {
		from, into, err := s.requireSavedAndSelected()
		if err != nil {
			return err
		}
		s.queueCommands(s.global.Restore([]string{"--from", from, "--into", into}, s.savedFile()))
		return nil
	}
	id, err := s.requireSelected()
	if err != nil {
		return err
	}
	var flags []string
	switch a.Mode {
	case command.ChangesInRestoreDescendants:
		flags = []string{"--changes-in", id, "--restore-descendants"}
	case command.RestoreFrom:
		flags = []string{"--from", id}
	case command.RestoreInto:
		flags = []string{"--into", id}
	default:
		flags = []string{"--changes-in", id}
	}
	s.queueCommands(s.global.Restore(flags, s.selectedFile()))
	return nil
}

func (s *State) revert(a command.Action) error {
	var revision string
	if a.Mode == command.FromSaved {
		id, ok := s.savedChangeID()
		if !ok {
			return ErrInvalidSelection
		}
		revision = id
	} else {
		id, err := s.requireSelected()
		if err != nil {
			return err
		}
		revision = id
	}
	dest, err := s.destination(a.Dest)
	if err != nil {
		return err
	}
	s.queueCommands(s.global.Revert(revision, a.Placement.Flag(), dest))
	return nil
}

func (s *State) sign(a command.Action) error {
	action := "sign"
	if a.Kind == command.Unsign {
		action = "unsign"
	}
	var revset string
	if a.Mode == command.FromSaved {
		from, to, err := s.requireSavedAndSelected()
		if err != nil {
			return err
		}
		revset = from + "::" + to
	} else {
		id, err := s.requireSelected()
		if err != nil {
			return err
		}
		revset = id
	}
	s.queueCommands(s.global.Sign(action, revset))
	return nil
}

func (s *State) squash(a command.Action) error {
	if a.Mode == command.FromSaved {
		from, into, err := s.requireSavedAndSelected()
		if err != nil {
			return err
		}
		s.queueCommands(s.global.SquashInto(from, into, s.savedFile()))
		return nil
	}
	c := s.selectedCommit()
	if c == nil {
		return ErrInvalidSelection
	}
	if c.Description == "" {
		s.queueCommands(s.global.SquashQuiet(c.ChangeID, s.selectedFile()))
	} else {
		s.queueCommands(s.global.Squash(c.ChangeID, s.selectedFile()))
	}
	return nil
}

func (s *State) view(a command.Action) error {
	g := s.global
	file := s.selectedFile()
	if a.Mode == command.FromSaved {
		from, to, err := s.requireSavedAndSelected()
		if err != nil {
			return err
		}
		s.queueCommands(g.DiffRange(from, to, file))
		return nil
	}

	id, err := s.requireSelected()
	if err != nil {
		return err
	}
	switch a.Mode {
	case command.FromSelection:
		s.queueCommands(g.DiffRange(id, "@", file))
	case command.FromTrunkToSelection:
		s.queueCommands(g.DiffRange("trunk()", id, file))
	case command.ToSelection:
		s.queueCommands(g.DiffRange("@", id, file))
	default:
		if file != "" {
			s.queueCommands(g.DiffFile(id, file))
		} else {
			s.queueCommands(g.Show(id))
		}
	}
	return nil
}

// Enter edits the revision under the cursor, or opens the file under the
// cursor in the editor, at the diff line when there is one.
func (s *State) Enter(ctx context.Context) error {
	return s.report(s.enter(ctx))
}

func (s *State) enter(ctx context.Context) error {
	pos, ok := s.selectedPos()
	if !ok {
		return ErrInvalidSelection
	}
	node := s.log.Node(pos)
	if node == nil {
		return ErrInvalidSelection
	}
	if node.Kind == logtree.KindCommit {
		s.queueCommands(s.global.Edit(node.ChangeID))
		return nil
	}

	file := s.log.FileDiff(pos)
	commit := s.log.Commit(pos)
	if file == nil || commit == nil {
		return ErrInvalidSelection
	}
	line, _ := node.LineNumber()

	path := filepath.Join(s.global.Repository, file.Path)
	if !commit.WorkingCopy {
		var err error
		path, err = s.snapshot(ctx, commit.ChangeID, file.Path)
		if err != nil {
			return err
		}
	}
	s.queueCommands(jj.Editor(s.editor, path, line))
	return nil
}

// snapshot writes a file as of a revision to a temporary file, keeping the
// extension so the editor picks the right syntax.
func (s *State) snapshot(ctx context.Context, changeID, path string) (string, error) {
	content, err := s.engine.Run(ctx, s.global.FileShow(changeID, path))
	if err != nil {
		return "", err
	}
	f, err := os.CreateTemp("", "jjdag-*"+filepath.Ext(path))
	if err != nil {
		return "", fmt.Errorf("create snapshot of %s: %w", path, err)
	}
	defer f.Close()
	if _, err := f.WriteString(content); err != nil {
		return "", fmt.Errorf("write snapshot of %s: %w", path, err)
	}
	return f.Name(), nil
}

func isRemote(name string) bool {
	return strings.Contains(name, "@")
}

func isLocal(name string) bool {
	return !isRemote(name)
}

func localBookmarkNames(out string) []string {
	return filterNames(jj.ParseBookmarkNames(out), isLocal)
}

func filterNames(names []string, keep func(string) bool) []string {
	var kept []string
	for _, name := range names {
		if keep(name) {
			kept = append(kept, name)
		}
	}
	return kept
}

// uniqueBookmarkNames reads template output, where a bookmark with remotes
// is printed once per ref.
func uniqueBookmarkNames(out string) []string {
	seen := make(map[string]bool)
	var names []string
	for _, line := range strings.Split(out, "\n") {
		name := strings.TrimSpace(line)
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true
		names = append(names, name)
	}
	return names
}
