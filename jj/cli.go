package jj

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/x/ansi"
	"github.com/goccy/go-json"
	"golang.org/x/sync/errgroup"
)

// metaTemplate renders one JSON object per revision.
const metaTemplate = `"{\"change_id\":" ++ change_id.short(8).escape_json()` +
	` ++ ",\"commit_id\":" ++ commit_id.short(8).escape_json()` +
	` ++ ",\"working_copy\":" ++ if(current_working_copy, "true", "false")` +
	` ++ ",\"empty\":" ++ if(empty, "true", "false")` +
	` ++ ",\"immutable\":" ++ if(immutable, "true", "false")` +
	` ++ ",\"description\":" ++ description.first_line().escape_json()` +
	` ++ "}\n"`

// graphTemplate pins the graph pass to a two-line layout whatever the
// user's ui.log template is.
const graphTemplate = "builtin_log_compact"

// commitIDLen is the length of the commit id prefix used to find a revision
// in the graph output.
const commitIDLen = 8

// Client loads repository state through the jj binary.
type Client struct {
	run func(context.Context, Command) (string, error)
}

func NewClient() *Client {
	return &Client{run: func(ctx context.Context, cmd Command) (string, error) {
		return cmd.Run(ctx)
	}}
}

// Run executes a captured (non-interactive) command.
func (c *Client) Run(ctx context.Context, cmd Command) (string, error) {
	return c.run(ctx, cmd)
}

// LoadLog returns the revisions in revset, newest first, each carrying its
// rendered graph lines. The metadata and graph passes run concurrently.
func (c *Client) LoadLog(ctx context.Context, g GlobalArgs, revset string) ([]LogEntry, error) {
	done := logOpWithResult("load-log", "revset", revset)

	revArgs := []string{}
	if revset != "" {
		revArgs = append(revArgs, "-r", revset)
	}

	var meta, graph string
	eg, egCtx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		args := append([]string{"log", "--no-graph", "--color=never", "-T", metaTemplate}, revArgs...)
		out, err := c.run(egCtx, g.query(args...))
		meta = out
		return err
	})
	eg.Go(func() error {
		args := append([]string{"log", "--color=always", "-T", graphTemplate}, revArgs...)
		out, err := c.run(egCtx, g.query(args...))
		graph = out
		return err
	})
	if err := eg.Wait(); err != nil {
		done(err)
		return nil, err
	}

	entries, err := ParseLogEntries(meta)
	if err == nil {
		err = AttachGraph(entries, graph)
	}
	if err != nil {
		done(err)
		return nil, err
	}
	done(nil, "commits", len(entries))
	return entries, nil
}

// LoadDiff returns the git-format diff of a single revision.
func (c *Client) LoadDiff(ctx context.Context, g GlobalArgs, changeID string) (string, error) {
	return c.run(ctx, g.query("diff", "-r", changeID, "--git", "--color=never"))
}

// ParseLogEntries decodes the output of the metadata pass.
func ParseLogEntries(output string) ([]LogEntry, error) {
	var entries []LogEntry
	for _, line := range strings.Split(output, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		var entry LogEntry
		if err := json.Unmarshal([]byte(line), &entry); err != nil {
			return nil, &ParseError{Line: line, Reason: err.Error()}
		}
		if entry.ChangeID == "" {
			return nil, &ParseError{Line: line, Reason: "missing change id"}
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

// AttachGraph splits the colored graph output into per-revision blocks. A
// block starts at the line showing the revision's commit id and runs until
// the next revision starts. Lines before the first revision belong to it.
func AttachGraph(entries []LogEntry, graph string) error {
	if len(entries) == 0 {
		return nil
	}

	byCommit := make(map[string]int, len(entries))
	for i, e := range entries {
		byCommit[shortID(e.CommitID)] = i
		entries[i].Graph = nil
	}

	lines := strings.Split(strings.TrimRight(graph, "\n"), "\n")
	current, first := -1, -1
	var leading []string
	for _, line := range lines {
		if idx, ok := findCommit(line, byCommit); ok {
			current = idx
			if first < 0 {
				first = idx
			}
		}
		if current < 0 {
			leading = append(leading, line)
			continue
		}
		entries[current].Graph = append(entries[current].Graph, line)
	}

	if first >= 0 && len(leading) > 0 {
		entries[first].Graph = append(leading, entries[first].Graph...)
	}

	for _, e := range entries {
		if len(e.Graph) == 0 {
			return &ParseError{Line: e.ChangeID, Reason: "revision missing from graph output"}
		}
	}
	return nil
}

func shortID(id string) string {
	if len(id) > commitIDLen {
		return id[:commitIDLen]
	}
	return id
}

func findCommit(line string, byCommit map[string]int) (int, bool) {
	for _, field := range strings.Fields(ansi.Strip(line)) {
		if len(field) < commitIDLen {
			continue
		}
		if idx, ok := byCommit[field[:commitIDLen]]; ok {
			return idx, true
		}
	}
	return 0, false
}

// ParseBookmarkNames reads `jj bookmark list` output. Remote bookmarks are
// returned as "name@remote" directly after their local counterpart.
func ParseBookmarkNames(output string) []string {
	var names []string
	local := ""
	for _, line := range strings.Split(output, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "Hint:") {
			continue
		}
		if line[0] == ' ' || line[0] == '\t' {
			if local == "" || !strings.HasPrefix(trimmed, "@") {
				continue
			}
			remote := leadingName(trimmed[1:])
			if remote != "" {
				names = append(names, local+"@"+remote)
			}
			continue
		}
		local = leadingName(trimmed)
		if local == "" {
			continue
		}
		if strings.Contains(local, "@") {
			// untracked remote bookmarks are listed as top-level "name@remote"
			names = append(names, local)
			local = ""
			continue
		}
		names = append(names, local)
	}
	return names
}

// leadingName returns the text before the first ':' or space.
func leadingName(s string) string {
	if i := strings.IndexAny(s, ": "); i >= 0 {
		s = s[:i]
	}
	return strings.TrimSpace(s)
}

// ParseRemoteNames reads `jj git remote list` output ("name url" per line).
func ParseRemoteNames(output string) []string {
	var names []string
	for _, line := range strings.Split(output, "\n") {
		if fields := strings.Fields(line); len(fields) > 0 {
			names = append(names, fields[0])
		}
	}
	return names
}

// ParseWorkspaceNames reads `jj workspace list` output ("name: revision").
func ParseWorkspaceNames(output string) []string {
	var names []string
	for _, line := range strings.Split(output, "\n") {
		if name := leadingName(strings.TrimSpace(line)); name != "" {
			names = append(names, name)
		}
	}
	return names
}

// ParseUntrackedPaths returns the paths `jj status` lists with a "?" marker.
func ParseUntrackedPaths(output string) []string {
	var paths []string
	for _, line := range strings.Split(output, "\n") {
		if strings.HasPrefix(line, "? ") {
			if p := strings.TrimSpace(line[2:]); p != "" {
				paths = append(paths, p)
			}
		}
	}
	return paths
}

// EnsureValidRepo fails unless path is inside a jj repository.
func EnsureValidRepo(ctx context.Context, path string) error {
	g := GlobalArgs{Repository: path}
	if _, err := g.Root().Run(ctx); err != nil {
		return fmt.Errorf("%s is not a jj repository: %w", path, err)
	}
	return nil
}

// FindRecoveryRepo looks for an immediate child of dir that holds a .jj
// directory. It is used when jjdag is started one level above a repository.
func FindRecoveryRepo(dir string) (string, bool) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", false
	}
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		candidate := filepath.Join(dir, e.Name())
		if info, err := os.Stat(filepath.Join(candidate, ".jj")); err == nil && info.IsDir() {
			return candidate, true
		}
	}
	return "", false
}
