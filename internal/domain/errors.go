package domain

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNoFix is returned by probes that have nothing to apply.
	ErrNoFix = errors.New("probe has no fix")
	// ErrConfirmationRead means the interactive input could not be read.
	// It aborts the remaining fix phase.
	ErrConfirmationRead = errors.New("reading confirmation")
)

// Phase identifies which half of a probe failed.
type Phase string

const (
	PhaseCheck Phase = "check"
	PhaseFix   Phase = "fix"
)

// ProbeError wraps a failure of one probe. It never affects sibling probes.
type ProbeError struct {
	Probe string
	Phase Phase
	Err   error
}

func NewCheckError(probe string, err error) *ProbeError {
	return &ProbeError{Probe: probe, Phase: PhaseCheck, Err: err}
}

func NewFixError(probe string, err error) *ProbeError {
	return &ProbeError{Probe: probe, Phase: PhaseFix, Err: err}
}

func (e *ProbeError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Probe, e.Phase, e.Err)
}

func (e *ProbeError) Unwrap() error { return e.Err }

// IsCheckError reports whether err is a check-phase ProbeError.
func IsCheckError(err error) bool {
	var pe *ProbeError
	return errors.As(err, &pe) && pe.Phase == PhaseCheck
}

// IsFixError reports whether err is a fix-phase ProbeError.
func IsFixError(err error) bool {
	var pe *ProbeError
	return errors.As(err, &pe) && pe.Phase == PhaseFix
}

// CommandError describes an external command that exited unsuccessfully.
type CommandError struct {
	Name     string
	Args     []string
	ExitCode int
	Stderr   string
	Err      error
}

func (e *CommandError) Error() string {
	cmd := strings.TrimSpace(e.Name + " " + strings.Join(e.Args, " "))
	msg := fmt.Sprintf("%s: exit status %d", cmd, e.ExitCode)
	if stderr := firstLine(e.Stderr); stderr != "" {
		msg += ": " + stderr
	}
	return msg
}

func (e *CommandError) Unwrap() error { return e.Err }

// ExitCodeOf returns the exit code carried by err, or -1.
func ExitCodeOf(err error) int {
	var ce *CommandError
	if errors.As(err, &ce) {
		return ce.ExitCode
	}
	return -1
}

func firstLine(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return strings.TrimSpace(s[:i])
	}
	return s
}
