// Package shell runs package manager and version control commands.
package shell

import (
	"context"
	"errors"
	"io"
	"os"
	"os/exec"
	"strings"

	"go.trai.ch/yalc/internal/core/domain"
	"go.trai.ch/zerr"
)

// Executor runs commands with the caller's environment.
type Executor struct {
	stdin io.Reader
}

// NewExecutor creates a new Executor reading from the process stdin.
func NewExecutor() *Executor {
	return &Executor{stdin: os.Stdin}
}

// Execute runs argv in dir and waits for it to complete.
func (e *Executor) Execute(ctx context.Context, dir string, argv []string, stdout, stderr io.Writer) error {
	if len(argv) == 0 {
		return nil
	}

	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...) //nolint:gosec // commands come from the strategy table
	cmd.Dir = dir
	cmd.Env = os.Environ()
	cmd.Stdin = e.stdin
	cmd.Stdout = stdout
	cmd.Stderr = stderr

	if err := cmd.Run(); err != nil {
		exitCode := -1
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			exitCode = exitErr.ExitCode()
		}
		err = zerr.With(zerr.Wrap(err, domain.ErrCommandFailed.Error()), "command", strings.Join(argv, " "))
		return zerr.With(err, "exit_code", exitCode)
	}
	return nil
}
