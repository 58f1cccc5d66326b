// Package jj drives the jj (Jujutsu) command line. Every interaction with the
// repository goes through an external jj process; this package builds the
// argument vectors, runs them and parses their output into Go types.
package jj

import (
	"errors"
	"fmt"
	"strings"
)

// GlobalArgs are the repository-wide flags passed to every invocation.
type GlobalArgs struct {
	Repository      string
	IgnoreImmutable bool
}

// LogEntry is one revision as reported by jj log.
type LogEntry struct {
	ChangeID    string `json:"change_id"`
	CommitID    string `json:"commit_id"`
	WorkingCopy bool   `json:"working_copy"`
	Empty       bool   `json:"empty"`
	Immutable   bool   `json:"immutable"`
	Description string `json:"description"`

	// Graph holds the colored lines jj rendered for this revision,
	// including the graph gutter.
	Graph []string `json:"-"`
}

// CommandError is returned when jj ran but exited non-zero.
type CommandError struct {
	Args     []string
	Stderr   string
	ExitCode int
}

func (e *CommandError) Error() string {
	if msg := strings.TrimSpace(e.Stderr); msg != "" {
		return msg
	}
	return fmt.Sprintf("jj %s: exit status %d", strings.Join(e.Args, " "), e.ExitCode)
}

// InvocationError is returned when the process could not be started at all.
type InvocationError struct {
	Args []string
	Err  error
}

func (e *InvocationError) Error() string {
	return fmt.Sprintf("failed to run jj %s: %v", strings.Join(e.Args, " "), e.Err)
}

func (e *InvocationError) Unwrap() error { return e.Err }

// ParseError reports jj output that did not have the expected shape.
type ParseError struct {
	Line   string
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("unexpected jj output %q: %s", truncate(e.Line, 80), e.Reason)
}

// IsCommandFailure reports whether err is a predictable, non-zero exit of jj.
func IsCommandFailure(err error) bool {
	var cmdErr *CommandError
	return errors.As(err, &cmdErr)
}
