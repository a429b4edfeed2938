// Package publisher copies packages into the store and pushes them to the
// projects that use them.
package publisher

import (
	"context"
	"fmt"
	"path/filepath"

	"go.trai.ch/yalc/internal/core/domain"
	"go.trai.ch/yalc/internal/core/ports"
	"go.trai.ch/yalc/internal/engine/hooks"
	"go.trai.ch/yalc/internal/engine/installer"
	"go.trai.ch/zerr"
)

var (
	preHooks  = []string{"prepublish", "prepare", "prepublishOnly", "prepack", "preyalcpublish"}
	postHooks = []string{"postyalcpublish", "postpack", "publish", "postpublish"}
)

// Options controls publish and push.
type Options struct {
	WorkingDir string
	domain.PublishOptions
	// Private allows publishing packages marked private.
	Private bool
	// Scripts runs the lifecycle scripts around the copy.
	Scripts bool
	// Replace and Update apply to the projects a push reinstalls into.
	Replace bool
	Update  bool
}

// Publisher orchestrates publish and push.
type Publisher struct {
	manifests     ports.ManifestStore
	store         ports.PackageStore
	fs            ports.FileSystem
	installations ports.InstallationsRepository
	installer     *installer.Installer
	hooks         *hooks.Runner
	logger        ports.Logger
	tracer        ports.Tracer
}

// New creates a new Publisher.
func New(
	manifests ports.ManifestStore,
	store ports.PackageStore,
	fileSystem ports.FileSystem,
	installations ports.InstallationsRepository,
	inst *installer.Installer,
	hookRunner *hooks.Runner,
	logger ports.Logger,
	tracer ports.Tracer,
) *Publisher {
	return &Publisher{
		manifests:     manifests,
		store:         store,
		fs:            fileSystem,
		installations: installations,
		installer:     inst,
		hooks:         hookRunner,
		logger:        logger,
		tracer:        tracer,
	}
}

// Publish copies the package in opts.WorkingDir into the store. The result is
// marked Unchanged when change detection skipped the copy.
func (p *Publisher) Publish(ctx context.Context, opts Options) (domain.PublishResult, error) {
	ctx, span := p.tracer.Start(ctx, "publish")
	defer span.End()

	res, err := p.publish(ctx, opts)
	if err != nil {
		span.RecordError(err)
		return domain.PublishResult{}, err
	}
	span.SetAttribute("package", res.Name)
	span.SetAttribute("version", res.Version)
	span.SetAttribute("unchanged", res.Unchanged)
	return res, nil
}

func (p *Publisher) publish(ctx context.Context, opts Options) (domain.PublishResult, error) {
	if !p.fs.Exists(filepath.Join(opts.WorkingDir, domain.ManifestFileName)) {
		return domain.PublishResult{}, zerr.With(domain.ErrMissingProjectManifest, "path", opts.WorkingDir)
	}
	pkg, err := p.manifests.Read(opts.WorkingDir)
	if err != nil {
		return domain.PublishResult{}, err
	}
	if pkg.Private && !opts.Private {
		return domain.PublishResult{}, zerr.With(domain.ErrPrivatePackage, "package", pkg.Name)
	}

	h := p.hooks.Bind(opts.WorkingDir, pkg)
	if opts.Scripts {
		if err := h.Run(ctx, preHooks...); err != nil {
			return domain.PublishResult{}, err
		}
	}

	res, err := p.store.Publish(ctx, opts.WorkingDir, opts.PublishOptions)
	if err != nil {
		return domain.PublishResult{}, err
	}
	if res.Unchanged {
		p.logger.Warn("Package content has not changed, skipping publishing.")
		return res, nil
	}

	if opts.Scripts {
		if err := h.Run(ctx, postHooks...); err != nil {
			return domain.PublishResult{}, err
		}
	}

	p.logger.Info(fmt.Sprintf("%s@%s published in store.", res.Name, res.Version))
	return res, nil
}

// Push publishes the package and reinstalls it into every project that uses it.
// Projects that no longer lock the package are dropped from the registry.
func (p *Publisher) Push(ctx context.Context, opts Options) (domain.PublishResult, error) {
	ctx, span := p.tracer.Start(ctx, "push")
	defer span.End()

	res, err := p.publish(ctx, opts)
	if err != nil {
		span.RecordError(err)
		return domain.PublishResult{}, err
	}
	if res.Unchanged {
		return res, nil
	}

	inst, err := p.installations.Show([]string{res.Name})
	if err != nil {
		span.RecordError(err)
		return domain.PublishResult{}, err
	}

	projects := inst[res.Name]
	p.tracer.EmitPlan(ctx, projects)

	var stale []domain.Installation
	for _, project := range projects {
		p.logger.Info(fmt.Sprintf("Pushing %s@%s in %s", res.Name, res.Version, project))
		removed, err := p.installer.Update(ctx, []string{res.Name}, installer.UpdateOptions{
			WorkingDir: filepath.Clean(project),
			Replace:    opts.Replace,
			Update:     opts.Update,
			DeferPrune: true,
		})
		if err != nil {
			span.RecordError(err)
			return domain.PublishResult{}, zerr.With(err, "project", project)
		}
		stale = append(stale, removed...)
	}

	if len(stale) > 0 {
		if err := p.installations.Remove(stale); err != nil {
			span.RecordError(err)
			return domain.PublishResult{}, err
		}
	}
	return res, nil
}
