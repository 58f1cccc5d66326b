package jj

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestOpHeadsDir(t *testing.T) {
	t.Run("primary workspace", func(t *testing.T) {
		root := t.TempDir()
		sub := filepath.Join(root, "src", "pkg")
		if err := os.MkdirAll(filepath.Join(root, ".jj", "repo"), 0755); err != nil {
			t.Fatal(err)
		}
		if err := os.MkdirAll(sub, 0755); err != nil {
			t.Fatal(err)
		}

		got, err := opHeadsDir(sub)
		if err != nil {
			t.Fatalf("opHeadsDir failed: %v", err)
		}
		want := filepath.Join(root, ".jj", "repo", "op_heads", "heads")
		if got != want {
			t.Errorf("got %q, want %q", got, want)
		}
	})

	t.Run("secondary workspace", func(t *testing.T) {
		main := t.TempDir()
		second := t.TempDir()
		if err := os.MkdirAll(filepath.Join(second, ".jj"), 0755); err != nil {
			t.Fatal(err)
		}
		shared := filepath.Join(main, ".jj", "repo")
		if err := os.WriteFile(filepath.Join(second, ".jj", "repo"), []byte(shared), 0644); err != nil {
			t.Fatal(err)
		}

		got, err := opHeadsDir(second)
		if err != nil {
			t.Fatalf("opHeadsDir failed: %v", err)
		}
		if want := filepath.Join(shared, "op_heads", "heads"); got != want {
			t.Errorf("got %q, want %q", got, want)
		}
	})

	t.Run("no repository", func(t *testing.T) {
		if _, err := opHeadsDir(t.TempDir()); err == nil {
			t.Error("expected an error outside a repository")
		}
	})
}

func TestWatch_SignalsOperationChange(t *testing.T) {
	root := t.TempDir()
	heads := filepath.Join(root, ".jj", "repo", "op_heads", "heads")
	if err := os.MkdirAll(heads, 0755); err != nil {
		t.Fatal(err)
	}

	w, err := Watch(root)
	if err != nil {
		t.Fatalf("Watch failed: %v", err)
	}
	defer w.Close()

	if err := os.WriteFile(filepath.Join(heads, "abc123"), nil, 0644); err != nil {
		t.Fatal(err)
	}

	select {
	case <-w.Changes():
	case <-time.After(5 * time.Second):
		t.Fatal("no change signalled")
	}
}
