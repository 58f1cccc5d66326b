package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"

	"github.com/gerunddev/jjdag/app"
	"github.com/gerunddev/jjdag/command"
	"github.com/gerunddev/jjdag/config"
	"github.com/gerunddev/jjdag/interactive"
	"github.com/gerunddev/jjdag/jj"
	"github.com/gerunddev/jjdag/ui"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		os.Exit(2)
	}
	if err := run(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(cfg config.Config) error {
	if err := jj.InitLogger(cfg.Logging.File, jj.ParseLevel(cfg.Logging.Level)); err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	if !term.IsTerminal(int(os.Stdin.Fd())) || !term.IsTerminal(int(os.Stdout.Fd())) {
		return fmt.Errorf("jjdag needs an interactive terminal")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	repository, err := resolveRepository(ctx, cfg.Repository)
	if err != nil {
		return err
	}
	global := jj.GlobalArgs{Repository: repository, IgnoreImmutable: cfg.IgnoreImmutable}
	client := jj.NewClient()

	if cfg.Interactive {
		return interactive.Run(ctx, client, global, cfg.Revisions)
	}

	state := app.New(client, command.DefaultTree(), app.Options{
		Repository:      repository,
		Revset:          cfg.Revisions,
		IgnoreImmutable: cfg.IgnoreImmutable,
		Editor:          cfg.Editor,
		ScrollPadding:   cfg.ScrollPadding,
	})
	if err := state.Sync(ctx); err != nil {
		return fmt.Errorf("load log: %w", err)
	}

	var changes <-chan struct{}
	if cfg.Watch {
		w, err := jj.Watch(repository)
		if err != nil {
			jj.Logger().Warn("repository watcher disabled", "err", err)
		} else {
			defer w.Close()
			changes = w.Changes()
		}
	}

	model := ui.NewApp(ctx, state, changes)
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion())
	if _, err := p.Run(); err != nil {
		return err
	}
	return model.Err()
}

// resolveRepository returns the absolute path of the repository to open.
// Started one directory above a repository, it opens that repository.
func resolveRepository(ctx context.Context, path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	err = jj.EnsureValidRepo(ctx, abs)
	if err == nil {
		return abs, nil
	}
	if recovered, ok := jj.FindRecoveryRepo(abs); ok {
		jj.Logger().Info("opening repository below start directory", "path", recovered)
		return recovered, nil
	}
	return "", err
}
