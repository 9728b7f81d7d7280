package shell

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"time"

	"github.com/rs/zerolog"

	"github.com/archtidy/archtidy/internal/domain"
)

// Runner implements domain.CommandRunner with os/exec.
type Runner struct {
	stdout io.Writer
	stderr io.Writer
}

// New returns a Runner whose commands write to the process terminal.
func New() *Runner {
	return &Runner{stdout: os.Stdout, stderr: os.Stderr}
}

// NewWithIO returns a Runner whose commands write to the given streams.
func NewWithIO(stdout, stderr io.Writer) *Runner {
	return &Runner{stdout: stdout, stderr: stderr}
}

// Output runs name with stdin closed and returns its stdout. On a non-zero
// exit the captured stdout is still returned together with a *domain.CommandError.
func (r *Runner) Output(ctx context.Context, name string, args ...string) ([]byte, error) {
	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdin = nil
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	start := time.Now()
	err := cmd.Run()
	zerolog.Ctx(ctx).Trace().
		Str("cmd", name).
		Strs("args", args).
		Dur("took", time.Since(start)).
		Err(err).
		Msg("command finished")

	if err != nil {
		return stdout.Bytes(), commandError(name, args, stderr.String(), err)
	}
	return stdout.Bytes(), nil
}

// Run runs name with its output on the runner's streams. Stdin stays closed:
// confirmations are read from stdin by the prompter, and sudo asks for its
// password on /dev/tty.
func (r *Runner) Run(ctx context.Context, name string, args ...string) error {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdin = nil
	cmd.Stdout = r.stdout
	cmd.Stderr = r.stderr

	zerolog.Ctx(ctx).Debug().Str("cmd", name).Strs("args", args).Msg("running command")
	if err := cmd.Run(); err != nil {
		return commandError(name, args, "", err)
	}
	return nil
}

func commandError(name string, args []string, stderr string, err error) error {
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return &domain.CommandError{
			Name:     name,
			Args:     args,
			ExitCode: exitErr.ExitCode(),
			Stderr:   stderr,
			Err:      err,
		}
	}
	return fmt.Errorf("running %s: %w", name, err)
}
