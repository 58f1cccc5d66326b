package interactive

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/gerunddev/jjdag/jj"
)

func runAction(ctx context.Context, engine Engine, g jj.GlobalArgs, action string, entries []jj.LogEntry) error {
	options := buildRevisionOptions(entries)
	if len(options) == 0 {
		fmt.Println("No revisions available")
		return nil
	}
	if action == actionRebase && len(options) < 2 {
		fmt.Println("Need at least 2 revisions to rebase")
		return nil
	}

	source, ok, err := selectRevision(fmt.Sprintf("Select revision to %s", action), "", options)
	if !ok || err != nil {
		return err
	}

	var dest string
	if action == actionRebase {
		dest, ok, err = selectRevision("Select destination (new parent)",
			fmt.Sprintf("Rebasing %s onto...", source), options)
		if !ok || err != nil {
			return err
		}
	}

	cmd, err := commandFor(g, action, source, dest)
	if err != nil {
		fmt.Println(err)
		return nil
	}

	jj.Logger().Info("quick action", "cmd", cmd.Description())
	if out, err := engine.Run(ctx, cmd); err != nil {
		return fmt.Errorf("%s failed: %w", action, err)
	} else if out = strings.TrimSpace(out); out != "" {
		fmt.Println(out)
	}
	fmt.Println(doneMessage(action, source, dest))
	return nil
}

// selectRevision reports ok=false when the user backs out.
func selectRevision(title, description string, options []huh.Option[string]) (string, bool, error) {
	var revision string
	sel := huh.NewSelect[string]().
		Title(title).
		Options(options...).
		Value(&revision)
	if description != "" {
		sel = sel.Description(description)
	}

	err := sel.Run()
	if errors.Is(err, huh.ErrUserAborted) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return revision, true, nil
}

func commandFor(g jj.GlobalArgs, action, source, dest string) (jj.Command, error) {
	switch action {
	case actionEdit:
		return g.Edit(source), nil
	case actionNew:
		return g.New(source), nil
	case actionAbandon:
		return g.Abandon(source, ""), nil
	case actionRebase:
		if source == dest {
			return jj.Command{}, errors.New("source and destination cannot be the same")
		}
		return g.Rebase("--revisions", source, "--onto", dest), nil
	}
	return jj.Command{}, fmt.Errorf("unknown action %q", action)
}

func doneMessage(action, source, dest string) string {
	switch action {
	case actionEdit:
		return fmt.Sprintf("Now editing %s", source)
	case actionNew:
		return fmt.Sprintf("Created a new revision on %s", source)
	case actionAbandon:
		return fmt.Sprintf("Abandoned %s", source)
	default:
		return fmt.Sprintf("Rebased %s onto %s", source, dest)
	}
}

func buildRevisionOptions(entries []jj.LogEntry) []huh.Option[string] {
	var options []huh.Option[string]
	for _, e := range entries {
		label := e.ChangeID
		if e.WorkingCopy {
			label += " @"
		}
		if e.Immutable {
			label += " ◆"
		}
		if e.Empty {
			label += " (empty)"
		}
		if e.Description != "" {
			label += " " + e.Description
		} else {
			label += " (no description)"
		}
		options = append(options, huh.NewOption(label, e.ChangeID))
	}
	return options
}
