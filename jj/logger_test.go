package jj

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/charmbracelet/log"
)

func TestInitLogger_CreatesPrivateFile(t *testing.T) {
	resetLogger()
	t.Cleanup(resetLogger)

	path := filepath.Join(t.TempDir(), "jjdag.log")
	if err := InitLogger(path, log.InfoLevel); err != nil {
		t.Fatalf("InitLogger failed: %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat failed: %v", err)
	}
	if perm := info.Mode().Perm(); perm != 0600 {
		t.Errorf("got permissions %o, want 600", perm)
	}
}

func TestInitLogger_EmptyPathDisablesLogging(t *testing.T) {
	resetLogger()
	t.Cleanup(resetLogger)

	if err := InitLogger("", log.InfoLevel); err != nil {
		t.Fatalf("InitLogger failed: %v", err)
	}
	if logEnabled {
		t.Error("logging should be disabled with empty path")
	}
	if Logger() == nil {
		t.Error("Logger() should never return nil")
	}
}

func TestInitLogger_OnlyOnce(t *testing.T) {
	resetLogger()
	t.Cleanup(resetLogger)

	first := filepath.Join(t.TempDir(), "first.log")
	second := filepath.Join(t.TempDir(), "second.log")

	_ = InitLogger(first, log.InfoLevel)
	_ = InitLogger(second, log.InfoLevel)

	logOp("run")(nil)

	content1, _ := os.ReadFile(first)
	content2, _ := os.ReadFile(second)
	if len(content1) == 0 {
		t.Error("first log file should have content")
	}
	if len(content2) > 0 {
		t.Error("second log file should be empty")
	}
}

func TestLogOp(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		contains []string
		excludes string
	}{
		{"success", nil, []string{"run", "duration", "cmd", "$ jj log"}, "ERRO"},
		{"failure", errors.New("exit status 1"), []string{"run", "exit status 1", "ERRO"}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := setupTestLogger(t)

			logOp("run", "cmd", "$ jj log")(tt.err)

			output := buf.String()
			for _, want := range tt.contains {
				if !strings.Contains(output, want) {
					t.Errorf("log %q should contain %q", output, want)
				}
			}
			if tt.excludes != "" && strings.Contains(output, tt.excludes) {
				t.Errorf("log %q should not contain %q", output, tt.excludes)
			}
		})
	}
}

func TestLogOpWithResult_AddsResultInfo(t *testing.T) {
	buf := setupTestLogger(t)

	logOpWithResult("load-log")(nil, "commits", 42)

	output := buf.String()
	if !strings.Contains(output, "commits") || !strings.Contains(output, "42") {
		t.Errorf("log %q should contain the result fields", output)
	}
}

func TestLogOp_DisabledLogging(t *testing.T) {
	resetLogger()
	t.Cleanup(resetLogger)

	logOp("run")(nil)
	logOp("run")(errors.New("error"))
	logOpWithResult("run")(nil, "key", "value")
}

func TestSetLogger_Nil(t *testing.T) {
	resetLogger()
	t.Cleanup(resetLogger)

	SetLogger(nil)
	if logEnabled {
		t.Error("logging should be disabled when SetLogger(nil)")
	}
	logOp("run")(nil)
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input string
		want  log.Level
	}{
		{"debug", log.DebugLevel},
		{"WARN", log.WarnLevel},
		{"warning", log.WarnLevel},
		{"error", log.ErrorLevel},
		{"", log.InfoLevel},
		{"verbose", log.InfoLevel},
	}

	for _, tt := range tests {
		if got := ParseLevel(tt.input); got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		input  string
		maxLen int
		want   string
	}{
		{"short", 10, "short"},
		{"exactly10!", 10, "exactly10!"},
		{"this is too long", 10, "this is to..."},
		{"", 10, ""},
	}

	for _, tt := range tests {
		if got := truncate(tt.input, tt.maxLen); got != tt.want {
			t.Errorf("truncate(%q, %d) = %q, want %q", tt.input, tt.maxLen, got, tt.want)
		}
	}
}

func resetLogger() {
	loggerOnce = sync.Once{}
	logger = nil
	logEnabled = false
}

func setupTestLogger(t *testing.T) *bytes.Buffer {
	t.Helper()
	resetLogger()
	t.Cleanup(resetLogger)

	buf := &bytes.Buffer{}
	logger = log.NewWithOptions(buf, log.Options{
		Level:  log.DebugLevel,
		Prefix: "jjdag",
	})
	logEnabled = true
	return buf
}
