// Package hooks runs the lifecycle scripts a manifest declares.
package hooks

import (
	"context"
	"fmt"

	"go.trai.ch/yalc/internal/core/domain"
	"go.trai.ch/yalc/internal/core/ports"
)

// Runner runs manifest scripts through the project's package manager.
type Runner struct {
	scripts  ports.ScriptRunner
	detector ports.PackageManagerDetector
	logger   ports.Logger
}

// NewRunner creates a new Runner.
func NewRunner(scripts ports.ScriptRunner, detector ports.PackageManagerDetector, logger ports.Logger) *Runner {
	return &Runner{scripts: scripts, detector: detector, logger: logger}
}

// Bind returns a Hooks for the project in dir.
func (r *Runner) Bind(dir string, m *domain.Manifest) *Hooks {
	return &Hooks{runner: r, dir: dir, manifest: m, pm: r.detector.Detect(dir)}
}

// Hooks runs the scripts of one manifest.
type Hooks struct {
	runner   *Runner
	dir      string
	manifest *domain.Manifest
	pm       domain.PackageManager
}

// PackageManager returns the package manager detected for the project.
func (h *Hooks) PackageManager() domain.PackageManager {
	return h.pm
}

// Run runs the named scripts in order. Scripts the manifest does not declare are skipped.
func (h *Hooks) Run(ctx context.Context, names ...string) error {
	for _, name := range names {
		cmd, ok := h.manifest.Script(name)
		if !ok {
			continue
		}
		h.runner.logger.Info(fmt.Sprintf("Running %s script: %s", name, cmd))
		if err := h.runner.scripts.RunScript(ctx, h.dir, h.pm, name); err != nil {
			return err
		}
	}
	return nil
}
