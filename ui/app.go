// Package ui runs the log view as a bubbletea program on top of the app
// state machine.
package ui

import (
	"context"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/gerunddev/jjdag/app"
	"github.com/gerunddev/jjdag/jj"
	"github.com/gerunddev/jjdag/ui/floating"
)

const (
	headerHeight = 2
	helpHeight   = 1

	// drainDelay lets the queue's "Running..." output reach the screen
	// before the next invocation blocks the program.
	drainDelay = 20 * time.Millisecond
)

type (
	drainMsg       struct{}
	repoChangedMsg struct{}

	execDoneMsg struct {
		cmd jj.Command
		err error
	}
)

// App is the main application model
type App struct {
	ctx     context.Context
	state   *app.State
	keys    KeyMap
	changes <-chan struct{}

	info      viewport.Model
	infoText  string
	textInput *floating.TextInputOverlay
	popup     *floating.PopupOverlay

	width     int
	height    int
	logHeight int
	ready     bool

	draining bool // a drain tick is scheduled
	execing  bool // an interactive invocation owns the terminal
	stale    bool // the repository changed while the view was busy

	err error
}

// NewApp wraps a synced state. changes, when not nil, signals that the
// repository changed on disk.
func NewApp(ctx context.Context, state *app.State, changes <-chan struct{}) *App {
	return &App{
		ctx:       ctx,
		state:     state,
		keys:      DefaultKeyMap(),
		changes:   changes,
		info:      viewport.New(0, 0),
		textInput: floating.NewTextInputOverlay(),
		popup:     floating.NewPopupOverlay(),
	}
}

// Err is the failure that ended the program, if any.
func (a *App) Err() error {
	return a.err
}

func (a *App) Init() tea.Cmd {
	return waitForChange(a.changes)
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.ready = true

	case tea.KeyMsg:
		a.fail(a.handleKey(msg))

	case tea.MouseMsg:
		a.fail(a.handleMouse(msg))

	case drainMsg:
		a.draining = false
		cmds = append(cmds, a.drain())

	case execDoneMsg:
		a.execing = false
		a.fail(a.state.Finish(a.ctx, msg.cmd, "", msg.cmd.Classify(msg.err)))

	case repoChangedMsg:
		a.stale = true
		cmds = append(cmds, waitForChange(a.changes))
	}

	if a.stale && a.idle() {
		a.stale = false
		a.fail(a.state.Reload(a.ctx))
	}
	a.layout()
	cmds = append(cmds, a.next())
	return a, tea.Batch(cmds...)
}

func (a *App) handleKey(msg tea.KeyMsg) error {
	if a.execing {
		return nil
	}
	if a.state.Modal() != nil {
		if msg.Type == tea.KeyRunes && (msg.Paste || len(msg.Runes) > 1) {
			for _, r := range msg.Runes {
				if err := a.state.HandleModalKey(a.ctx, string(r)); err != nil {
					return err
				}
			}
			return nil
		}
		return a.state.HandleModalKey(a.ctx, msg.String())
	}

	s := a.state
	switch {
	case key.Matches(msg, a.keys.Quit):
		s.Quit()
	case key.Matches(msg, a.keys.Down):
		s.SelectNext()
	case key.Matches(msg, a.keys.Up):
		s.SelectPrev()
	case key.Matches(msg, a.keys.NextSibling):
		s.SelectNextSibling()
	case key.Matches(msg, a.keys.PrevSibling):
		s.SelectPrevSibling()
	case key.Matches(msg, a.keys.Parent):
		s.SelectParent()
	case key.Matches(msg, a.keys.WorkingCopy):
		s.SelectWorkingCopy()
	case key.Matches(msg, a.keys.PageDown):
		s.PageDown()
	case key.Matches(msg, a.keys.PageUp):
		s.PageUp()
	case key.Matches(msg, a.keys.Fold):
		return s.ToggleFold(a.ctx)
	case key.Matches(msg, a.keys.Refresh):
		return s.Refresh(a.ctx)
	case key.Matches(msg, a.keys.Clear):
		s.Clear()
	case key.Matches(msg, a.keys.Revset):
		s.StartRevsetEdit()
	case key.Matches(msg, a.keys.IgnoreImmutable):
		s.ToggleIgnoreImmutable()
	case key.Matches(msg, a.keys.Help):
		s.ShowHelp()
	default:
		return s.HandleKey(a.ctx, msg.String())
	}
	return nil
}

// handleMouse routes clicks and the wheel to the log, or the wheel to the
// output panel below it.
func (a *App) handleMouse(msg tea.MouseMsg) error {
	if a.execing || a.state.Modal() != nil {
		return nil
	}
	row := msg.Y - headerHeight
	inLog := row >= 0 && row < a.logHeight

	switch {
	case msg.Button == tea.MouseButtonWheelDown:
		if inLog {
			a.state.ScrollDown()
		} else {
			a.info.ScrollDown(3)
		}
	case msg.Button == tea.MouseButtonWheelUp:
		if inLog {
			a.state.ScrollUp()
		} else {
			a.info.ScrollUp(3)
		}
	case msg.Action != tea.MouseActionPress || !inLog:
	case msg.Button == tea.MouseButtonLeft:
		return a.state.Click(a.ctx, row, msg.X)
	case msg.Button == tea.MouseButtonRight:
		return a.state.RightClick(a.ctx, row, msg.X)
	}
	return nil
}

// drain runs the next queued invocation. Interactive ones are handed to the
// terminal and reported back as execDoneMsg.
func (a *App) drain() tea.Cmd {
	cmd, err := a.state.DrainOne(a.ctx)
	if err != nil {
		a.fail(err)
		return nil
	}
	if cmd == nil {
		return nil
	}
	a.execing = true
	c := *cmd
	jj.Logger().Debug("handing terminal to", "cmd", c.Description())
	return tea.ExecProcess(c.Cmd(), func(err error) tea.Msg {
		return execDoneMsg{cmd: c, err: err}
	})
}

func (a *App) next() tea.Cmd {
	if a.err != nil || a.state.Quitting() {
		return tea.Quit
	}
	if a.state.Busy() && !a.draining && !a.execing {
		a.draining = true
		return tea.Tick(drainDelay, func(time.Time) tea.Msg { return drainMsg{} })
	}
	return nil
}

// idle reports whether a reload would not disturb anything in progress.
func (a *App) idle() bool {
	_, saved := a.state.Saved()
	return !a.state.Busy() && !a.execing && a.state.Modal() == nil &&
		len(a.state.Pending()) == 0 && !saved
}

func (a *App) fail(err error) {
	if err == nil || a.err != nil {
		return
	}
	jj.Logger().Error("fatal", "err", err)
	a.err = err
}

// layout splits the screen between the header, the log, the output panel
// and the help bar.
func (a *App) layout() {
	if !a.ready {
		return
	}
	info := a.state.Info()
	infoHeight := 0
	if len(info) > 0 {
		infoHeight = min(len(info), max(a.height/2-1, 1)) + 1
	}
	a.logHeight = max(a.height-headerHeight-infoHeight-helpHeight, 1)
	a.state.SetHeight(a.logHeight)

	a.info.Width = a.width
	a.info.Height = max(infoHeight-1, 0)
	if text := strings.Join(info, "\n"); text != a.infoText {
		a.infoText = text
		a.info.SetContent(text)
		a.info.GotoTop()
	}

	a.textInput.SetSize(a.width, a.height)
	a.popup.SetSize(a.width, a.height)
}

func waitForChange(changes <-chan struct{}) tea.Cmd {
	if changes == nil {
		return nil
	}
	return func() tea.Msg {
		if _, ok := <-changes; !ok {
			return nil
		}
		return repoChangedMsg{}
	}
}
