package app

import (
	"context"
	"errors"

	"github.com/gerunddev/jjdag/jj"
)

const runningMarker = "Running..."

// queueCommands replaces any previous run with cmds and shows the first
// description.
func (s *State) queueCommands(cmds ...jj.Command) {
	if len(cmds) == 0 {
		return
	}
	s.queue = cmds
	s.accumulated = nil
	s.showQueue()
	jj.Logger().Debug("queued", "count", len(cmds), "first", cmds[0].Description())
}

func (s *State) showQueue() {
	info := append([]string(nil), s.accumulated...)
	if len(info) > 0 {
		info = append(info, "")
	}
	s.info = append(info, s.queue[0].Description(), runningMarker)
}

// DrainOne runs the invocation at the head of the queue. Interactive
// invocations need the terminal, so they are popped and handed back for the
// caller to run; the caller reports the outcome with Finish.
//
// The returned error is non-nil only for failures the program cannot
// recover from.
func (s *State) DrainOne(ctx context.Context) (*jj.Command, error) {
	if len(s.queue) == 0 {
		return nil, nil
	}
	cmd := s.queue[0]
	s.queue = s.queue[1:]
	if len(s.accumulated) > 0 {
		s.accumulated = append(s.accumulated, "")
	}
	s.accumulated = append(s.accumulated, cmd.Description())

	if cmd.Interactive {
		return &cmd, nil
	}
	out, err := s.engine.Run(ctx, cmd)
	return nil, s.Finish(ctx, cmd, out, err)
}

// Finish records the outcome of the invocation last popped by DrainOne. A
// failed invocation drops the rest of the queue and never reloads the log.
func (s *State) Finish(ctx context.Context, cmd jj.Command, out string, err error) error {
	var cmdErr *jj.CommandError
	switch {
	case err == nil:
		s.accumulated = append(s.accumulated, outputLines(out)...)
	case errors.As(err, &cmdErr):
		s.accumulated = append(s.accumulated, outputLines(cmdErr.Stderr)...)
		jj.Logger().Info("queue aborted", "cmd", cmd.Description(), "dropped", len(s.queue))
		s.finishRun()
		return nil
	default:
		jj.Logger().Error("invocation failed", "cmd", cmd.Description(), "err", err)
		return err
	}

	if len(s.queue) > 0 {
		s.showQueue()
		return nil
	}
	final := s.finishRun()
	if !cmd.Sync {
		return nil
	}
	if err := s.Sync(ctx); err != nil {
		if err := s.report(err); err != nil {
			return err
		}
		s.info = append(append(final, ""), s.info...)
	}
	return nil
}

// finishRun ends a queue run, leaving its output on display.
func (s *State) finishRun() []string {
	final := s.accumulated
	s.Clear()
	s.info = final
	return final
}
