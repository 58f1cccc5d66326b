package jj

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Watcher signals when the repository's operation log moves, which happens
// after every jj command, including those run outside jjdag.
type Watcher struct {
	watcher  *fsnotify.Watcher
	changes  chan struct{}
	ctx      context.Context
	cancel   context.CancelFunc
	debounce time.Duration

	lastEvent time.Time
}

// Watch starts watching the operation heads of the repository containing path.
func Watch(path string) (*Watcher, error) {
	heads, err := opHeadsDir(path)
	if err != nil {
		return nil, err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create fsnotify watcher: %w", err)
	}
	if err := watcher.Add(heads); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("watch %s: %w", heads, err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	w := &Watcher{
		watcher:  watcher,
		changes:  make(chan struct{}, 1),
		ctx:      ctx,
		cancel:   cancel,
		debounce: 200 * time.Millisecond,
	}
	go w.loop()

	Logger().Debug("watching operation heads", "dir", heads)
	return w, nil
}

// Changes delivers at most one pending notification at a time.
func (w *Watcher) Changes() <-chan struct{} {
	return w.changes
}

func (w *Watcher) Close() error {
	w.cancel()
	return w.watcher.Close()
}

func (w *Watcher) loop() {
	for {
		select {
		case <-w.ctx.Done():
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove) == 0 {
				continue
			}

			now := time.Now()
			if now.Sub(w.lastEvent) < w.debounce {
				continue
			}
			w.lastEvent = now

			select {
			case w.changes <- struct{}{}:
			default:
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			Logger().Warn("repository watcher error", "error", err)
		}
	}
}

// opHeadsDir locates .jj/repo/op_heads/heads above path. In secondary
// workspaces .jj/repo is a file holding the path of the shared repo directory.
func opHeadsDir(path string) (string, error) {
	dir, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	for {
		jjDir := filepath.Join(dir, ".jj")
		if info, err := os.Stat(jjDir); err == nil && info.IsDir() {
			return headsIn(jjDir)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("no .jj directory above %s", path)
		}
		dir = parent
	}
}

func headsIn(jjDir string) (string, error) {
	repo := filepath.Join(jjDir, "repo")
	info, err := os.Stat(repo)
	if err != nil {
		return "", err
	}
	if !info.IsDir() {
		content, err := os.ReadFile(repo)
		if err != nil {
			return "", err
		}
		repo = strings.TrimSpace(string(content))
		if !filepath.IsAbs(repo) {
			repo = filepath.Join(jjDir, repo)
		}
	}
	return filepath.Join(repo, "op_heads", "heads"), nil
}
