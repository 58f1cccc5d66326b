package app

import (
	"context"
	"strconv"
	"strings"

	"github.com/gerunddev/jjdag/jj"
)

// HandleModalKey feeds a key to the open prompt. Enter submits, Esc
// cancels, everything else edits the prompt.
func (s *State) HandleModalKey(ctx context.Context, key string) error {
	switch m := s.modal.(type) {
	case *TextInput:
		switch key {
		case "esc", "ctrl+c", "ctrl+x":
			s.modal = nil
			return s.report(ErrCancelled)
		case "enter", "ctrl+s":
			s.modal = nil
			return s.report(s.submitInput(ctx, m))
		}
		m.handleKey(key)
	case *Popup:
		switch key {
		case "esc", "ctrl+c":
			s.modal = nil
			return s.report(ErrCancelled)
		case "enter":
			s.modal = nil
			item, ok := m.Selected()
			if !ok {
				return nil
			}
			return s.report(s.choose(ctx, m, item))
		}
		m.handleKey(key)
	}
	return nil
}

// StartRevsetEdit opens the revset for editing in the header.
func (s *State) StartRevsetEdit() {
	in := newTextInput(InputRevset, "Revset", "", s.revset)
	in.original = s.revset
	s.modal = in
}

func (s *State) startBookmarkCreate() error {
	id, err := s.requireSelected()
	if err != nil {
		return err
	}
	in := newTextInput(InputBookmarkCreate, "Bookmark", "bookmark-name", "")
	in.changeID = id
	s.modal = in
	return nil
}

// startDescribe edits the first line of the selected revision's
// description in place.
func (s *State) startDescribe(ignoreImmutable bool) error {
	c := s.selectedCommit()
	if c == nil {
		return ErrInvalidSelection
	}
	in := newTextInput(InputDescribe, "Description", "(no description set)", c.Description)
	in.changeID = c.ChangeID
	in.ignoreImmutable = ignoreImmutable
	s.modal = in
	return nil
}

func (s *State) submitInput(ctx context.Context, in *TextInput) error {
	g := s.global
	text := in.Value()
	switch in.Kind {
	case InputRevset:
		return s.setRevset(ctx, text, in.original)
	case InputBookmarkCreate:
		s.queueCommands(g.BookmarkCreate(text, in.changeID))
	case InputDescribe:
		if in.ignoreImmutable {
			g.IgnoreImmutable = true
		}
		s.queueCommands(g.Describe(in.changeID, text))
	case InputBookmarkRename:
		s.queueCommands(g.BookmarkRename(in.target, text))
	case InputAuthor:
		s.queueCommands(g.Metaedit(in.changeID, "--author", text))
	case InputAuthorTimestamp:
		s.queueCommands(g.Metaedit(in.changeID, "--author-timestamp", text))
	case InputParallelizeRevset:
		s.queueCommands(g.Parallelize(text))
	case InputNextPrevOffset:
		text = strings.TrimSpace(text)
		if n, err := strconv.Atoi(text); err != nil || n < 1 {
			s.setInfo("Invalid offset '%s'", text)
			return nil
		}
		s.queueCommands(g.NextPrev(in.target, in.original, text))
	case InputWorkspaceAdd:
		s.queueCommands(g.WorkspaceAdd(text))
	case InputWorkspaceRename:
		s.queueCommands(g.WorkspaceRename(text))
	}
	return nil
}

// setRevset reloads the log with revset, going back to previous when the
// engine rejects it. A failure after the log loaded keeps the new revset.
func (s *State) setRevset(ctx context.Context, revset, previous string) error {
	s.revset = revset
	if err := s.log.Load(ctx, s.engine, s.global, revset); err != nil {
		s.info = outputLines(err.Error())
		s.revset = previous
		return nil
	}
	s.setInfo("Revset set to '%s'", revset)
	if err := s.showWorkingCopy(ctx); err != nil {
		s.info = outputLines(err.Error())
	}
	return nil
}

// choose acts on the item picked from a popup.
func (s *State) choose(ctx context.Context, p *Popup, item string) error {
	g := s.global
	switch p.Kind {
	case PopupBookmarkDelete:
		s.queueCommands(g.BookmarkDelete(item))
	case PopupBookmarkForget:
		s.queueCommands(g.BookmarkForget(item, p.includeRemotes))
	case PopupBookmarkRename:
		in := newTextInput(InputBookmarkRename, "Enter New Bookmark Name", "new-bookmark-name", "")
		in.target = item
		s.modal = in
	case PopupBookmarkSet:
		id, err := s.requireSelected()
		if err != nil {
			return err
		}
		s.queueCommands(g.BookmarkSet(item, id))
	case PopupBookmarkTrack:
		s.queueCommands(g.BookmarkTrack(item))
	case PopupBookmarkUntrack:
		s.queueCommands(g.BookmarkUntrack(item))
	case PopupFileTrack:
		s.queueCommands(g.FileTrack(item))
	case PopupGitFetchRemote:
		if !p.selectBranches {
			s.queueCommands(g.GitFetchRemote(item, ""))
			return nil
		}
		branches, err := s.listPopup(ctx, PopupGitFetchRemoteBranch, g.BookmarkList("--remote", item),
			remoteBranchNames, "No branches found on remote '"+item+"'")
		if branches != nil {
			branches.remote = item
		}
		return err
	case PopupGitFetchRemoteBranch:
		s.queueCommands(g.GitFetchRemote(p.remote, item))
	case PopupGitPushBookmark:
		s.queueCommands(g.GitPush("-b", item))
	case PopupGitPushNamed:
		s.queueCommands(g.GitPush("--named", item+"="+p.changeID))
	case PopupWorkspaceForget:
		s.queueCommands(g.WorkspaceForget(item))
	case PopupWorkspaceUpdateStale:
		s.queueCommands(g.WorkspaceUpdateStale())
	case PopupJump:
		s.jumpTo(item)
	}
	return nil
}

// listPopup runs cmd and opens a popup over the parsed items. With nothing
// to choose from it shows empty instead and returns a nil popup.
func (s *State) listPopup(ctx context.Context, kind PopupKind, cmd jj.Command, parse func(string) []string, empty string) (*Popup, error) {
	out, err := s.engine.Run(ctx, cmd)
	if err != nil {
		return nil, err
	}
	items := parse(out)
	if len(items) == 0 {
		if empty != "" {
			s.setInfo("%s", empty)
		}
		return nil, nil
	}
	p := newPopup(kind, items)
	s.modal = p
	return p, nil
}

func (s *State) openPopup(ctx context.Context, kind PopupKind, cmd jj.Command, parse func(string) []string, empty string) error {
	_, err := s.listPopup(ctx, kind, cmd, parse, empty)
	return err
}

func (s *State) openBookmarkPopup(ctx context.Context, kind PopupKind, cmd jj.Command, empty string, keep func(string) bool) error {
	parse := func(out string) []string {
		return filterNames(jj.ParseBookmarkNames(out), keep)
	}
	return s.openPopup(ctx, kind, cmd, parse, empty)
}

// remoteBranchNames reads `bookmark list --remote` output, which lists the
// local name with the remote ref indented below it.
func remoteBranchNames(out string) []string {
	var names []string
	for _, name := range jj.ParseBookmarkNames(out) {
		if i := strings.IndexByte(name, '@'); i >= 0 {
			name = name[:i]
		}
		if len(names) == 0 || names[len(names)-1] != name {
			names = append(names, name)
		}
	}
	return names
}

// openJump lists every revision in the log for the jump popup.
func (s *State) openJump() error {
	var items []string
	for _, c := range s.log.Commits() {
		desc := c.Description
		if desc == "" {
			desc = "(no description)"
		}
		items = append(items, c.ChangeID+" "+desc)
	}
	if len(items) == 0 {
		s.setInfo("No revisions to jump to")
		return nil
	}
	s.modal = newPopup(PopupJump, items)
	return nil
}

func (s *State) jumpTo(item string) {
	id, _, _ := strings.Cut(item, " ")
	if c := s.log.FindChange(id); c != nil && c.FlatIndex() >= 0 {
		s.selectIndex(c.FlatIndex())
	}
}
