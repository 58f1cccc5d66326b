// Package app is the interaction state machine behind the log view: the
// cursor and saved selection, pending key sequences, modal prompts and the
// queue of jj invocations. It has no terminal dependencies; the ui package
// feeds it keys and renders what it exposes.
package app

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/gerunddev/jjdag/command"
	"github.com/gerunddev/jjdag/jj"
	"github.com/gerunddev/jjdag/logtree"
)

// Engine runs jj on behalf of the state machine.
type Engine interface {
	logtree.Source
	Run(ctx context.Context, cmd jj.Command) (string, error)
}

var (
	// ErrInvalidSelection is returned when a command needs a revision, file
	// or saved selection that the cursor does not resolve to.
	ErrInvalidSelection = errors.New("invalid selection")

	// ErrCancelled is returned when the user backs out of a prompt.
	ErrCancelled = errors.New("cancelled")
)

// Selection is a snapshot of the cursor taken by SaveSelection.
type Selection struct {
	ChangeID string
	Path     string
	Pos      logtree.TreePosition
}

// Options configure a new State.
type Options struct {
	Repository      string
	Revset          string
	IgnoreImmutable bool
	Editor          string
	ScrollPadding   int
}

// State is the whole mutable state of a session. It is owned by a single
// goroutine and is not safe for concurrent use.
type State struct {
	engine      Engine
	global      jj.GlobalArgs
	revset      string
	displayRepo string
	editor      string

	log      *logtree.JjLog
	selected int
	offset   int
	height   int
	padding  int

	saved      *Selection
	dispatcher *command.Dispatcher

	queue       []jj.Command
	accumulated []string
	info        []string

	modal Modal

	now       func() time.Time
	lastClick time.Time
	clickRow  int
	clickCol  int

	quit bool
}

// New returns a State for the repository in opts. The log is empty until
// Sync succeeds.
func New(engine Engine, tree *command.Tree, opts Options) *State {
	return &State{
		engine: engine,
		global: jj.GlobalArgs{
			Repository:      opts.Repository,
			IgnoreImmutable: opts.IgnoreImmutable,
		},
		revset:      opts.Revset,
		displayRepo: DisplayRepository(opts.Repository, os.Getenv("HOME")),
		editor:      opts.Editor,
		log:         logtree.New(),
		padding:     max(opts.ScrollPadding, 0),
		dispatcher:  command.NewDispatcher(tree),
		now:         time.Now,
	}
}

// Blocks are the rendered nodes of the log, in display order.
func (s *State) Blocks() []logtree.Block {
	return s.log.Blocks()
}

// NodeAt returns the node drawn as the block at a flat index.
func (s *State) NodeAt(idx int) *logtree.Node {
	pos, ok := s.log.Position(idx)
	if !ok {
		return nil
	}
	return s.log.Node(pos)
}

// Selected is the flat index of the cursor.
func (s *State) Selected() int {
	return s.selected
}

// Offset is the flat index of the first node on screen.
func (s *State) Offset() int {
	return s.offset
}

// SavedIndices returns the flat indices of the saved commit and saved file,
// or -1 when there is none or it is folded away.
func (s *State) SavedIndices() (commit, file int) {
	commit, file = -1, -1
	if s.saved == nil {
		return commit, file
	}
	if n := s.log.Commit(s.saved.Pos); n != nil {
		commit = n.FlatIndex()
	}
	if n := s.log.FileDiff(s.saved.Pos); n != nil {
		file = n.FlatIndex()
	}
	return commit, file
}

// Saved returns the saved selection, if any.
func (s *State) Saved() (Selection, bool) {
	if s.saved == nil {
		return Selection{}, false
	}
	return *s.saved, true
}

// Info is the text of the output panel.
func (s *State) Info() []string {
	return s.info
}

func (s *State) Modal() Modal {
	return s.modal
}

func (s *State) Revset() string {
	return s.revset
}

func (s *State) DisplayRepository() string {
	return s.displayRepo
}

func (s *State) IgnoreImmutable() bool {
	return s.global.IgnoreImmutable
}

// Pending returns the keys of an unfinished command sequence.
func (s *State) Pending() []string {
	return s.dispatcher.Pending()
}

// Busy reports whether invocations are waiting in the queue.
func (s *State) Busy() bool {
	return len(s.queue) > 0
}

// Quitting reports whether the user asked to leave.
func (s *State) Quitting() bool {
	return s.quit
}

func (s *State) Quit() {
	s.quit = true
}

// SetHeight sets the number of screen lines the log occupies and scrolls
// the cursor back into view.
func (s *State) SetHeight(lines int) {
	s.height = max(lines, 1)
	s.keepVisible()
}

// Sync reloads the log, puts the cursor on the working copy (or the first
// node) and unfolds it. On error the previous tree is kept.
func (s *State) Sync(ctx context.Context) error {
	if err := s.log.Load(ctx, s.engine, s.global, s.revset); err != nil {
		return err
	}
	return s.showWorkingCopy(ctx)
}

// showWorkingCopy flattens a freshly loaded log and unfolds the working copy.
func (s *State) showWorkingCopy(ctx context.Context) error {
	s.log.Flatten()

	idx := 0
	if wc := s.log.WorkingCopy(); wc != nil {
		idx = wc.FlatIndex()
	}
	s.selectIndex(idx)
	if s.log.Len() == 0 {
		return nil
	}
	return s.toggleFold(ctx)
}

// Reload re-reads the log after the repository changed on disk, keeping the
// cursor on the same revision and the same commits unfolded.
func (s *State) Reload(ctx context.Context) error {
	selected, _ := s.selectedChangeID()
	var expanded []string
	for _, c := range s.log.Commits() {
		if c.Expanded {
			expanded = append(expanded, c.ChangeID)
		}
	}

	if err := s.log.Load(ctx, s.engine, s.global, s.revset); err != nil {
		return s.report(err)
	}
	s.log.Flatten()
	for _, id := range expanded {
		c := s.log.FindChange(id)
		if c == nil {
			continue
		}
		pos, ok := s.log.Position(c.FlatIndex())
		if !ok {
			continue
		}
		if _, err := s.log.ToggleFold(ctx, s.engine, s.global, pos); err != nil {
			return s.report(err)
		}
	}

	idx := 0
	if c := s.log.FindChange(selected); c != nil {
		idx = c.FlatIndex()
	} else if wc := s.log.WorkingCopy(); wc != nil {
		idx = wc.FlatIndex()
	}
	s.selectIndex(idx)
	jj.Logger().Debug("reloaded log", "revisions", len(s.log.Commits()))
	return nil
}

// Refresh clears all pending state and reloads the log. Repeated refreshes
// grow the trailing dots of the status line.
func (s *State) Refresh(ctx context.Context) error {
	periods := 0
	if len(s.info) > 0 && strings.HasPrefix(s.info[0], "Refreshed") {
		periods = strings.Count(strings.Join(s.info, "\n"), ".") + 3
	}
	s.Clear()
	if err := s.Sync(ctx); err != nil {
		return s.report(err)
	}
	s.info = []string{"Refreshed" + strings.Repeat(".", periods)}
	return nil
}

// Clear drops the status text, saved selection, pending keys, any open
// prompt and any queued invocations.
func (s *State) Clear() {
	s.info = nil
	s.saved = nil
	s.modal = nil
	s.dispatcher.Reset()
	s.queue = nil
	s.accumulated = nil
}

func (s *State) ToggleIgnoreImmutable() {
	s.global.IgnoreImmutable = !s.global.IgnoreImmutable
}

// ShowHelp lists every binding in the output panel.
func (s *State) ShowHelp() {
	s.info = command.RenderHelp(s.dispatcher.Tree().Help())
}

// ToggleFold folds or unfolds the node under the cursor and keeps the
// cursor on it. A diff that cannot be loaded is shown in the output panel.
func (s *State) ToggleFold(ctx context.Context) error {
	return s.report(s.toggleFold(ctx))
}

func (s *State) toggleFold(ctx context.Context) error {
	pos, ok := s.selectedPos()
	if !ok {
		return nil
	}
	idx, err := s.log.ToggleFold(ctx, s.engine, s.global, pos)
	if err != nil {
		return err
	}
	s.selectIndex(idx)
	return nil
}

// HandleKey feeds a key to the command dispatcher. Keys that are not part
// of a binding are reported in the output panel. Enter with no pending
// sequence acts on the node under the cursor.
func (s *State) HandleKey(ctx context.Context, key string) error {
	if key == "enter" && len(s.dispatcher.Pending()) == 0 {
		return s.Enter(ctx)
	}
	out, err := s.dispatcher.HandleKey(key)
	if err != nil {
		var unbound *command.UnboundKeyError
		if errors.As(err, &unbound) {
			if len(s.dispatcher.Pending()) == 0 {
				s.saved = nil
			}
			s.showUnbound(unbound)
			return nil
		}
		return err
	}
	if out.Help != nil {
		s.info = command.RenderHelp(out.Help)
	}
	if out.Action == nil {
		return nil
	}
	return s.Dispatch(ctx, *out.Action)
}

// showUnbound appends the unbound-key line, replacing a previous one.
func (s *State) showUnbound(err *command.UnboundKeyError) {
	line := command.UnboundLine(err)
	if len(s.info) == 0 {
		s.info = []string{line}
		return
	}
	if isUnboundLine(s.info[len(s.info)-1]) {
		s.info = s.info[:len(s.info)-1]
		if n := len(s.info); n > 0 && s.info[n-1] == "" {
			s.info = s.info[:n-1]
		}
	}
	if len(s.info) > 0 && !isUnboundLine(s.info[0]) {
		s.info = append(s.info, "")
	}
	s.info = append(s.info, line)
}

func isUnboundLine(line string) bool {
	return strings.Contains(line, "Unbound suffix: ")
}

// report turns errors the user can act on into status text and returns
// everything else.
func (s *State) report(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, ErrInvalidSelection):
		s.info = []string{"Invalid selection"}
		return nil
	case errors.Is(err, ErrCancelled):
		s.info = []string{"Cancelled"}
		return nil
	}

	var cmdErr *jj.CommandError
	var parseErr *jj.ParseError
	if errors.As(err, &cmdErr) || errors.As(err, &parseErr) {
		s.info = outputLines(err.Error())
		return nil
	}
	return err
}

func (s *State) setInfo(format string, args ...any) {
	s.info = []string{fmt.Sprintf(format, args...)}
}

// outputLines splits command output into display lines, dropping the
// trailing newline.
func outputLines(out string) []string {
	out = strings.TrimRight(out, "\n")
	if out == "" {
		return nil
	}
	return strings.Split(out, "\n")
}

// DisplayRepository abbreviates the home directory to "~".
func DisplayRepository(repository, home string) string {
	if home == "" {
		return repository
	}
	if repository == home {
		return "~"
	}
	if rest, ok := strings.CutPrefix(repository, home+"/"); ok {
		return "~/" + rest
	}
	return repository
}
