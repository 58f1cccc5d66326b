// Package interactive is the quick-actions mode: a few huh selects that run
// one jj command and exit, for use outside the full log view.
package interactive

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/huh"

	"github.com/gerunddev/jjdag/jj"
)

// Engine loads revisions and runs the chosen command.
type Engine interface {
	LoadLog(ctx context.Context, g jj.GlobalArgs, revset string) ([]jj.LogEntry, error)
	Run(ctx context.Context, cmd jj.Command) (string, error)
}

const (
	actionEdit    = "edit"
	actionNew     = "new"
	actionRebase  = "rebase"
	actionAbandon = "abandon"
)

// Run starts the interactive mode
func Run(ctx context.Context, engine Engine, g jj.GlobalArgs, revset string) error {
	var action string

	err := huh.NewSelect[string]().
		Title("jjdag - Quick Actions").
		Options(
			huh.NewOption("Edit - Switch working copy to revision", actionEdit),
			huh.NewOption("New - Start a revision on top of another", actionNew),
			huh.NewOption("Rebase - Move revision to new parent", actionRebase),
			huh.NewOption("Abandon - Drop a revision", actionAbandon),
		).
		Value(&action).
		Run()
	if errors.Is(err, huh.ErrUserAborted) {
		return nil
	}
	if err != nil {
		return err
	}

	entries, err := engine.LoadLog(ctx, g, revset)
	if err != nil {
		return fmt.Errorf("failed to get log: %w", err)
	}
	return runAction(ctx, engine, g, action, entries)
}
