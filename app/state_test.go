package app

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"testing"

	"pgregory.net/rapid"

	"github.com/gerunddev/jjdag/command"
	"github.com/gerunddev/jjdag/jj"
)

type result struct {
	out string
	err error
}

// fakeEngine serves a fixed log and answers Run by joined args.
type fakeEngine struct {
	entries []jj.LogEntry
	diffs   map[string]string
	logErr  error
	diffErr error
	results map[string]result

	ran   []jj.Command
	loads int
}

func (f *fakeEngine) LoadLog(context.Context, jj.GlobalArgs, string) ([]jj.LogEntry, error) {
	f.loads++
	return f.entries, f.logErr
}

func (f *fakeEngine) LoadDiff(_ context.Context, _ jj.GlobalArgs, changeID string) (string, error) {
	return f.diffs[changeID], f.diffErr
}

func (f *fakeEngine) Run(_ context.Context, cmd jj.Command) (string, error) {
	f.ran = append(f.ran, cmd)
	r := f.results[strings.Join(cmd.Args, " ")]
	return r.out, r.err
}

const sampleDiff = `diff --git a/a.txt b/a.txt
index 1111111..2222222 100644
--- a/a.txt
+++ b/a.txt
@@ -1,3 +1,3 @@
 one
-two
+TWO
 three
diff --git a/new.txt b/new.txt
new file mode 100644
index 0000000..3333333
--- /dev/null
+++ b/new.txt
@@ -0,0 +1,1 @@
+hello
`

const (
	id0 = "kkkkkkkk"
	id1 = "llllllll"
	id2 = "mmmmmmmm"
)

// sampleEngine has three two-line commits. The middle one is the working
// copy and carries sampleDiff, so after Sync the flat list is
//
//	0 id0, 1 id1, 2 a.txt, 3 new.txt, 4 id2
func sampleEngine() *fakeEngine {
	f := &fakeEngine{diffs: map[string]string{}, results: map[string]result{}}
	for i, id := range []string{id0, id1, id2} {
		symbol := "○"
		if i == 1 {
			symbol = "@"
		}
		f.entries = append(f.entries, jj.LogEntry{
			ChangeID:    id,
			CommitID:    fmt.Sprintf("%08d", i),
			WorkingCopy: i == 1,
			Description: fmt.Sprintf("commit %d", i),
			Graph: []string{
				fmt.Sprintf("%s  %s alice %08d", symbol, id, i),
				fmt.Sprintf("│  commit %d", i),
			},
		})
	}
	f.diffs[id1] = sampleDiff
	return f
}

type testingT interface {
	Helper()
	Fatalf(format string, args ...any)
}

func newState(t testingT, engine *fakeEngine) *State {
	t.Helper()
	s := New(engine, command.DefaultTree(), Options{Repository: "/repo", Editor: "vi"})
	s.SetHeight(20)
	if err := s.Sync(context.Background()); err != nil {
		t.Fatalf("Sync failed: %v", err)
	}
	return s
}

func TestSync_SelectsWorkingCopy(t *testing.T) {
	s := newState(t, sampleEngine())

	if got := s.Selected(); got != 1 {
		t.Errorf("got selected %d, want 1", got)
	}
	if got := len(s.Blocks()); got != 5 {
		t.Errorf("got %d blocks, want 5", got)
	}
}

func TestSync_EmptyLog(t *testing.T) {
	s := newState(t, &fakeEngine{})

	if got := s.Selected(); got != 0 {
		t.Errorf("got selected %d, want 0", got)
	}
	if len(s.Blocks()) != 0 {
		t.Errorf("got %d blocks, want none", len(s.Blocks()))
	}
}

func TestQueue_FailureDropsRest(t *testing.T) {
	ctx := context.Background()
	engine := sampleEngine()
	engine.results["undo"] = result{out: "ok1\n"}
	engine.results["redo"] = result{err: &jj.CommandError{Args: []string{"redo"}, Stderr: "bad arg\n", ExitCode: 1}}
	s := newState(t, engine)
	loads := engine.loads

	g := jj.GlobalArgs{}
	s.queueCommands(g.Undo(), g.Redo(), g.Tug())
	if want := []string{"$ jj undo", "Running..."}; !reflect.DeepEqual(s.Info(), want) {
		t.Errorf("got %q, want %q", s.Info(), want)
	}

	if _, err := s.DrainOne(ctx); err != nil {
		t.Fatalf("DrainOne failed: %v", err)
	}
	if want := []string{"$ jj undo", "ok1", "", "$ jj redo", "Running..."}; !reflect.DeepEqual(s.Info(), want) {
		t.Errorf("got %q, want %q", s.Info(), want)
	}

	if _, err := s.DrainOne(ctx); err != nil {
		t.Fatalf("DrainOne failed: %v", err)
	}
	if got, want := strings.Join(s.Info(), "\n"), "$ jj undo\nok1\n\n$ jj redo\nbad arg"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
	if s.Busy() {
		t.Error("queue still busy after failure")
	}
	if got := len(engine.ran); got != 2 {
		t.Errorf("got %d invocations, want 2", got)
	}
	if engine.loads != loads {
		t.Errorf("log reloaded %d times after a failure", engine.loads-loads)
	}
}

func TestQueue_SuccessReloadsOnlyForMutations(t *testing.T) {
	tests := []struct {
		name      string
		cmd       jj.Command
		wantLoads int
	}{
		{"mutation", jj.GlobalArgs{}.Undo(), 1},
		{"query", jj.GlobalArgs{}.Status(), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			engine := sampleEngine()
			engine.results[strings.Join(tt.cmd.Args, " ")] = result{out: "done\n"}
			s := newState(t, engine)
			s.saved = &Selection{ChangeID: id0}
			loads := engine.loads

			s.queueCommands(tt.cmd)
			if _, err := s.DrainOne(context.Background()); err != nil {
				t.Fatalf("DrainOne failed: %v", err)
			}

			if got := engine.loads - loads; got != tt.wantLoads {
				t.Errorf("got %d reloads, want %d", got, tt.wantLoads)
			}
			if want := []string{tt.cmd.Description(), "done"}; !reflect.DeepEqual(s.Info(), want) {
				t.Errorf("got %q, want %q", s.Info(), want)
			}
			if _, ok := s.Saved(); ok {
				t.Error("saved selection survived a finished run")
			}
		})
	}
}

func TestQueue_InvocationErrorIsFatal(t *testing.T) {
	engine := sampleEngine()
	engine.results["undo"] = result{err: &jj.InvocationError{Args: []string{"undo"}, Err: errors.New("exec: not found")}}
	s := newState(t, engine)

	s.queueCommands(jj.GlobalArgs{}.Undo())
	_, err := s.DrainOne(context.Background())

	var invErr *jj.InvocationError
	if !errors.As(err, &invErr) {
		t.Errorf("got %v, want *jj.InvocationError", err)
	}
}

func TestQueue_InteractiveHandoff(t *testing.T) {
	ctx := context.Background()
	engine := sampleEngine()
	s := newState(t, engine)
	loads := engine.loads

	cmd := jj.GlobalArgs{}.Split(id1)
	s.queueCommands(cmd)
	handoff, err := s.DrainOne(ctx)
	if err != nil {
		t.Fatalf("DrainOne failed: %v", err)
	}
	if handoff == nil || !reflect.DeepEqual(handoff.Args, cmd.Args) {
		t.Fatalf("got handoff %+v, want %v", handoff, cmd.Args)
	}
	if len(engine.ran) != 0 {
		t.Errorf("interactive command ran through the engine")
	}

	if err := s.Finish(ctx, *handoff, "", nil); err != nil {
		t.Fatalf("Finish failed: %v", err)
	}
	if engine.loads != loads+1 {
		t.Errorf("got %d reloads, want 1", engine.loads-loads)
	}
	if want := []string{cmd.Description()}; !reflect.DeepEqual(s.Info(), want) {
		t.Errorf("got %q, want %q", s.Info(), want)
	}
}

func TestQueueAtomicity(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		n := rapid.IntRange(1, 6).Draw(t, "n")
		fail := rapid.IntRange(0, n).Draw(t, "fail")

		engine := sampleEngine()
		var cmds []jj.Command
		for i := 1; i <= n; i++ {
			cmd := jj.Command{Args: []string{"op", strconv.Itoa(i)}, Sync: true}
			cmds = append(cmds, cmd)
			r := result{out: fmt.Sprintf("out %d\n", i)}
			if i == fail {
				r = result{err: &jj.CommandError{Stderr: fmt.Sprintf("fail %d", i), ExitCode: 1}}
			}
			engine.results[strings.Join(cmd.Args, " ")] = r
		}
		s := newState(t, engine)
		loads := engine.loads

		s.queueCommands(cmds...)
		for s.Busy() {
			if _, err := s.DrainOne(context.Background()); err != nil {
				t.Fatalf("DrainOne failed: %v", err)
			}
		}

		last := n
		if fail > 0 {
			last = fail
		}
		var want []string
		for i := 1; i <= last; i++ {
			if i > 1 {
				want = append(want, "")
			}
			want = append(want, fmt.Sprintf("$ jj op %d", i))
			if i == fail {
				want = append(want, fmt.Sprintf("fail %d", i))
			} else {
				want = append(want, fmt.Sprintf("out %d", i))
			}
		}
		if !reflect.DeepEqual(s.Info(), want) {
			t.Fatalf("got %q, want %q", s.Info(), want)
		}
		if len(engine.ran) != last {
			t.Fatalf("got %d invocations, want %d", len(engine.ran), last)
		}
		wantLoads := 1
		if fail > 0 {
			wantLoads = 0
		}
		if engine.loads-loads != wantLoads {
			t.Fatalf("got %d reloads, want %d", engine.loads-loads, wantLoads)
		}
	})
}

func TestRefresh_GrowsDots(t *testing.T) {
	s := newState(t, sampleEngine())
	ctx := context.Background()

	for _, want := range []string{"Refreshed", "Refreshed...", "Refreshed......"} {
		if err := s.Refresh(ctx); err != nil {
			t.Fatalf("Refresh failed: %v", err)
		}
		if got := s.Info(); len(got) != 1 || got[0] != want {
			t.Errorf("got %q, want %q", got, want)
		}
	}
}

func TestRefresh_ReportsLoadFailure(t *testing.T) {
	engine := sampleEngine()
	s := newState(t, engine)
	engine.logErr = &jj.CommandError{Stderr: "Error: repo is stale\n", ExitCode: 1}

	if err := s.Refresh(context.Background()); err != nil {
		t.Fatalf("Refresh returned %v, want it reported", err)
	}
	if want := []string{"Error: repo is stale"}; !reflect.DeepEqual(s.Info(), want) {
		t.Errorf("got %q, want %q", s.Info(), want)
	}
	if got := len(s.Blocks()); got != 5 {
		t.Errorf("got %d blocks, want the previous 5", got)
	}
}

func TestClear_DropsSavedSelection(t *testing.T) {
	s := newState(t, sampleEngine())
	ctx := context.Background()

	for _, key := range []string{"r", "b"} {
		if err := s.HandleKey(ctx, key); err != nil {
			t.Fatalf("HandleKey(%q) failed: %v", key, err)
		}
	}
	saved, ok := s.Saved()
	if !ok || saved.ChangeID != id1 {
		t.Fatalf("got saved %+v %v, want %s", saved, ok, id1)
	}
	if got := len(s.Pending()); got != 2 {
		t.Errorf("got %d pending keys, want 2", got)
	}

	s.Clear()
	if _, ok := s.Saved(); ok {
		t.Error("saved selection survived Clear")
	}
	if got := len(s.Pending()); got != 0 {
		t.Errorf("got %d pending keys, want 0", got)
	}
	if commit, file := s.SavedIndices(); commit != -1 || file != -1 {
		t.Errorf("got saved indices %d %d, want -1 -1", commit, file)
	}
}

func TestShowUnbound_ReplacesPreviousLine(t *testing.T) {
	unbound := func(key string) *command.UnboundKeyError {
		return &command.UnboundKeyError{Key: key}
	}
	tests := []struct {
		name string
		info []string
		keys []string
		want []string
	}{
		{
			name: "empty",
			keys: []string{"z"},
			want: []string{command.UnboundLine(unbound("z"))},
		},
		{
			name: "replaces alone",
			keys: []string{"z", "q"},
			want: []string{command.UnboundLine(unbound("q"))},
		},
		{
			name: "after output",
			info: []string{"output"},
			keys: []string{"z", "q"},
			want: []string{"output", "", command.UnboundLine(unbound("q"))},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newState(t, sampleEngine())
			s.info = tt.info
			for _, key := range tt.keys {
				s.showUnbound(unbound(key))
			}
			if !reflect.DeepEqual(s.Info(), tt.want) {
				t.Errorf("got %q, want %q", s.Info(), tt.want)
			}
		})
	}
}

func TestHandleKey_UnboundAfterMenu(t *testing.T) {
	s := newState(t, sampleEngine())
	ctx := context.Background()

	if err := s.HandleKey(ctx, "a"); err != nil {
		t.Fatal(err)
	}
	help := len(s.Info())
	if err := s.HandleKey(ctx, "z"); err != nil {
		t.Fatal(err)
	}

	info := s.Info()
	if len(info) != help+2 || info[help] != "" || !isUnboundLine(info[help+1]) {
		t.Errorf("got %q, want help, a blank line and the unbound line", info)
	}
	if len(s.Pending()) != 0 {
		t.Errorf("got pending %v, want none", s.Pending())
	}
}

func TestHandleKey_EnterAtRootEdits(t *testing.T) {
	s := newState(t, sampleEngine())
	s.selectIndex(4)

	if err := s.HandleKey(context.Background(), "enter"); err != nil {
		t.Fatal(err)
	}
	if len(s.queue) != 1 || s.queue[0].Description() != "$ jj edit "+id2 {
		t.Errorf("got %q, want the edit queued", s.Info())
	}
}

func TestDisplayRepository(t *testing.T) {
	tests := []struct {
		name, repo, home, want string
	}{
		{"home itself", "/home/ann", "/home/ann", "~"},
		{"below home", "/home/ann/src/jj", "/home/ann", "~/src/jj"},
		{"sibling prefix", "/home/anna/src", "/home/ann", "/home/anna/src"},
		{"outside", "/srv/repo", "/home/ann", "/srv/repo"},
		{"no home", "/srv/repo", "", "/srv/repo"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DisplayRepository(tt.repo, tt.home); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestReload_KeepsCursorAndFolds(t *testing.T) {
	engine := sampleEngine()
	s := newState(t, engine)
	s.selectIndex(4)
	loads := engine.loads

	if err := s.Reload(context.Background()); err != nil {
		t.Fatal(err)
	}
	if engine.loads != loads+1 {
		t.Errorf("got %d loads, want %d", engine.loads, loads+1)
	}
	if got := len(s.Blocks()); got != 5 {
		t.Errorf("got %d blocks, want the working copy still unfolded", got)
	}
	if got := s.Selected(); got != 4 {
		t.Errorf("got selected %d, want 4", got)
	}
}

func TestReload_FallsBackToWorkingCopy(t *testing.T) {
	engine := sampleEngine()
	s := newState(t, engine)
	s.selectIndex(0)
	engine.entries = engine.entries[1:]

	if err := s.Reload(context.Background()); err != nil {
		t.Fatal(err)
	}
	if got := s.NodeAt(s.Selected()); got == nil || got.ChangeID != id1 {
		t.Errorf("got %+v, want the working copy", got)
	}
}
