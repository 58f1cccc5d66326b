package jj

import (
	"bytes"
	"context"
	"errors"
	"os"
	"os/exec"
	"strings"
)

// Command is a fully resolved invocation of an external program, usually jj.
type Command struct {
	// Program defaults to "jj". Global args are only applied to jj.
	Program string
	Args    []string
	Global  GlobalArgs

	// Sync marks commands whose success changes the revision graph, so the
	// log has to be reloaded afterwards.
	Sync bool

	// Interactive commands need the terminal (editors, pagers, diff
	// editors) and cannot have their output captured.
	Interactive bool
}

func (c Command) program() string {
	if c.Program == "" {
		return "jj"
	}
	return c.Program
}

func (c Command) isJJ() bool {
	return c.program() == "jj"
}

// Argv returns the arguments passed to the process, global flags first so
// they cannot end up after a "--" separator.
func (c Command) Argv() []string {
	if !c.isJJ() {
		return append([]string(nil), c.Args...)
	}
	argv := make([]string, 0, len(c.Args)+3)
	if c.Global.Repository != "" {
		argv = append(argv, "--repository", c.Global.Repository)
	}
	if c.Global.IgnoreImmutable {
		argv = append(argv, "--ignore-immutable")
	}
	return append(argv, c.Args...)
}

// Description is the shell-like echo shown before the command's output.
func (c Command) Description() string {
	parts := make([]string, 0, len(c.Args)+2)
	parts = append(parts, "$", c.program())
	for _, arg := range c.Args {
		parts = append(parts, shellQuote(arg))
	}
	return strings.Join(parts, " ")
}

// Run executes the command and captures its output. jj reports most status
// information on stderr, so successful runs return stdout followed by stderr.
func (c Command) Run(ctx context.Context) (string, error) {
	done := logOp("run", "cmd", c.Description())

	cmd := exec.CommandContext(ctx, c.program(), c.Argv()...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		err = c.classify(err, stderr.String())
		done(err)
		return stdout.String(), err
	}
	done(nil)
	return joinOutput(stdout.String(), stderr.String()), nil
}

// Cmd returns an unstarted process attached to the caller's terminal.
func (c Command) Cmd() *exec.Cmd {
	cmd := exec.Command(c.program(), c.Argv()...)
	cmd.Env = os.Environ()
	return cmd
}

// Classify converts the error of a process started through Cmd into a
// CommandError or InvocationError.
func (c Command) Classify(err error) error {
	if err == nil {
		return nil
	}
	return c.classify(err, "")
}

func (c Command) classify(err error, stderr string) error {
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		if stderr == "" {
			stderr = exitErr.Error()
		}
		return &CommandError{Args: c.Args, Stderr: stderr, ExitCode: exitErr.ExitCode()}
	}
	return &InvocationError{Args: c.Args, Err: err}
}

func joinOutput(stdout, stderr string) string {
	switch {
	case stdout == "":
		return stderr
	case stderr == "":
		return stdout
	case strings.HasSuffix(stdout, "\n"):
		return stdout + stderr
	default:
		return stdout + "\n" + stderr
	}
}

func shellQuote(arg string) string {
	if arg == "" {
		return "''"
	}
	if !strings.ContainsAny(arg, " \t\n'\"$&|;()<>*?") {
		return arg
	}
	return "'" + strings.ReplaceAll(arg, "'", `'\''`) + "'"
}
