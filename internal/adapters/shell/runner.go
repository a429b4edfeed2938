package shell

import (
	"context"
	"io"
	"os"
	"slices"

	"go.trai.ch/yalc/internal/core/domain"
	"go.trai.ch/yalc/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.ScriptRunner = (*Runner)(nil)

// Runner drives package managers through the domain strategy table.
// Output goes straight to the caller's streams.
type Runner struct {
	executor *Executor
	stdout   io.Writer
	stderr   io.Writer
}

// NewRunner creates a Runner writing to the process stdout and stderr.
func NewRunner(executor *Executor) *Runner {
	return &Runner{executor: executor, stdout: os.Stdout, stderr: os.Stderr}
}

// WithOutput redirects command output.
func (r *Runner) WithOutput(stdout, stderr io.Writer) *Runner {
	r.stdout = stdout
	r.stderr = stderr
	return r
}

// RunScript runs a manifest script through pm.
func (r *Runner) RunScript(ctx context.Context, dir string, pm domain.PackageManager, script string) error {
	argv := append(slices.Clone(domain.Strategy(pm).RunScript), script)
	if err := r.executor.Execute(ctx, dir, argv, r.stdout, r.stderr); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrScriptFailed.Error()), "script", script)
	}
	return nil
}

// RunUpdate runs the update procedure of pm for packages.
func (r *Runner) RunUpdate(ctx context.Context, dir string, pm domain.PackageManager, packages []string) error {
	argv := append(slices.Clone(domain.Strategy(pm).Update), packages...)
	return r.executor.Execute(ctx, dir, argv, r.stdout, r.stderr)
}
