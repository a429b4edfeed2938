package installer

import (
	"context"
	"fmt"
	"path/filepath"
	"slices"

	"go.trai.ch/yalc/internal/core/domain"
	"go.trai.ch/yalc/internal/core/ports"
	"go.trai.ch/yalc/internal/engine/hooks"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

const pureNotice = "--pure option will be used by default, to override use --no-pure."

// AddOptions controls an add batch.
type AddOptions struct {
	WorkingDir string
	// Mode is the requested install mode. Pure may override it.
	Mode domain.InstallMode
	// Pure forces (true) or forbids (false) pure mode. Nil lets the project decide.
	Pure *bool
	// Workspace writes workspace:* instead of a file: address.
	Workspace bool
	// Dev records packages in devDependencies.
	Dev bool
	// Replace copies every file instead of only changed ones.
	Replace bool
	// Restore installs from the vendor folder instead of the store.
	Restore bool
	// Update runs the package manager update for the added packages.
	Update bool
}

// manifestPatch is the change one installed package makes to the consuming manifest.
type manifestPatch struct {
	name    string
	bucket  domain.Bucket
	address string
	// moveFrom is set when the entry leaves another bucket.
	moveFrom domain.Bucket
}

type installed struct {
	result domain.InstallResult
	patch  *manifestPatch
}

// Add installs specs into opts.WorkingDir.
// Packages missing from the store, or from the vendor folder when restoring,
// are skipped with a warning. The first hook or IO failure aborts the batch.
func (i *Installer) Add(ctx context.Context, specs []string, opts AddOptions) ([]domain.InstallResult, error) {
	specs = dedupeSpecs(specs)
	if len(specs) == 0 {
		return nil, nil
	}

	ctx, span := i.tracer.Start(ctx, "add", ports.WithAttribute("project", opts.WorkingDir))
	defer span.End()

	project, err := i.readProject(opts.WorkingDir)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	mode := i.selectMode(opts, project)
	span.SetAttribute("mode", mode.String())
	i.tracer.EmitPlan(ctx, specs)

	h := i.hooks.Bind(opts.WorkingDir, project)
	if err := h.Run(ctx, "preyalc"); err != nil {
		span.RecordError(err)
		return nil, err
	}

	outcomes := make([]*installed, len(specs))
	g, gctx := errgroup.WithContext(ctx)
	for idx, arg := range specs {
		g.Go(func() error {
			out, err := i.installOne(gctx, arg, project, h, mode, opts)
			if err != nil {
				return err
			}
			outcomes[idx] = out
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		span.RecordError(err)
		return nil, err
	}

	results, err := i.finishAdd(ctx, project, h, mode, opts, outcomes)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	return results, nil
}

// selectMode resolves the effective install mode of a batch.
func (i *Installer) selectMode(opts AddOptions, project *domain.Manifest) domain.InstallMode {
	if opts.Pure != nil {
		if *opts.Pure {
			return domain.ModePure
		}
		if opts.Mode == domain.ModePure {
			return domain.ModeVendoredFile
		}
		return opts.Mode
	}
	if opts.Mode == domain.ModePure {
		return domain.ModePure
	}
	if project.HasWorkspaces {
		i.logger.Warn("Because of `workspaces` enabled in this package " + pureNotice)
		return domain.ModePure
	}
	if i.fs.Exists(filepath.Join(opts.WorkingDir, domain.PnpmWorkspaceFileName)) {
		i.logger.Warn("Because of `" + domain.PnpmWorkspaceFileName + "` exists in this package " + pureNotice)
		return domain.ModePure
	}
	return opts.Mode
}

func (i *Installer) installOne(
	ctx context.Context,
	arg string,
	project *domain.Manifest,
	h *hooks.Hooks,
	mode domain.InstallMode,
	opts AddOptions,
) (*installed, error) {
	ctx, span := i.tracer.Start(ctx, "install", ports.WithAttribute("package", arg))
	defer span.End()

	if err := h.Run(ctx, "preyalc."+arg); err != nil {
		span.RecordError(err)
		return nil, err
	}

	spec, err := domain.ParsePackageSpec(arg)
	if err != nil {
		i.logger.Warn(fmt.Sprintf("Could not parse package name %s, skipping.", arg))
		return nil, nil
	}

	vendorDir := domain.VendorPath(opts.WorkingDir, spec.Name)
	ok, err := i.fetch(ctx, spec, vendorDir, opts)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	if !ok {
		return nil, nil
	}

	pkg, err := i.manifests.Read(vendorDir)
	if err != nil {
		i.logger.Warn(fmt.Sprintf("Could not read package manifest in %s, skipping.", vendorDir))
		return nil, nil //nolint:nilerr // unreadable vendor copies are skipped
	}

	if err := i.materialize(ctx, spec.Name, vendorDir, mode, opts); err != nil {
		span.RecordError(err)
		return nil, err
	}

	out := &installed{
		result: domain.InstallResult{
			Name:        spec.Name,
			Version:     spec.Version,
			Signature:   readSignature(vendorDir),
			ProjectPath: opts.WorkingDir,
			Mode:        mode,
		},
	}

	if mode.RewritesManifest() {
		out.patch, out.result.Replaced = planPatch(project, spec.Name, mode.Address(pkg.Name, opts.Workspace), opts.Dev)
	}

	switch {
	case mode == domain.ModePure:
		i.logger.Info(fmt.Sprintf("%s@%s added to %s purely", pkg.Name, pkg.Version, filepath.Join(domain.VendorDirName, spec.Name)))
	default:
		if mode.IsSymlink() {
			i.linkBins(opts.WorkingDir, vendorDir, pkg)
		}
		action := "added"
		if mode == domain.ModeResolvedSymlink {
			action = "linked"
		}
		i.logger.Info(fmt.Sprintf("Package %s@%s %s ==> %s", pkg.Name, pkg.Version, action, domain.ModulePath(opts.WorkingDir, spec.Name)))
	}

	if err := h.Run(ctx, "postyalc."+arg); err != nil {
		span.RecordError(err)
		return nil, err
	}
	return out, nil
}

// fetch makes sure the vendor copy of spec exists. It reports false when the
// package has to be skipped.
func (i *Installer) fetch(ctx context.Context, spec domain.PackageSpec, vendorDir string, opts AddOptions) (bool, error) {
	if opts.Restore {
		i.logger.Info(fmt.Sprintf("Restoring package `%s` from .yalc directory", spec))
		if !i.fs.Exists(vendorDir) {
			i.logger.Warn(fmt.Sprintf("Could not find package `%s` %s, skipping.", spec, vendorDir))
			return false, nil
		}
		return true, nil
	}

	version, err := i.store.ResolveVersion(spec.Name, spec.Version)
	if err != nil {
		i.logger.Warn(fmt.Sprintf("Could not find package `%s` in store (%s), skipping.", spec, i.store.PackageDir(spec.Name, spec.Version)))
		return false, nil
	}

	if err := i.fs.Sync(ctx, i.store.PackageDir(spec.Name, version), vendorDir, opts.Replace); err != nil {
		return false, zerr.With(err, "package", spec.Name)
	}
	return true, nil
}

// materialize fills the dependency slot of name according to mode.
func (i *Installer) materialize(ctx context.Context, name, vendorDir string, mode domain.InstallMode, opts AddOptions) error {
	if !mode.WritesModules() {
		return nil
	}

	slot := domain.ModulePath(opts.WorkingDir, name)
	if mode.IsSymlink() || i.fs.IsSymlink(slot) {
		if err := i.fs.Remove(slot); err != nil {
			return err
		}
	}
	if mode.IsSymlink() {
		return i.fs.Symlink(vendorDir, slot)
	}
	return i.fs.Sync(ctx, vendorDir, slot, opts.Replace)
}

// planPatch computes the manifest change that points name at address, and
// the value it replaces.
func planPatch(project *domain.Manifest, name, address string, dev bool) (*manifestPatch, string) {
	patch := &manifestPatch{name: name, bucket: domain.BucketDependencies, address: address}

	var replaced string
	if dev {
		patch.bucket = domain.BucketDevDependencies
		if v, ok := project.Dependencies[name]; ok {
			replaced = v
			patch.moveFrom = domain.BucketDependencies
		}
	} else if _, ok := project.Dependencies[name]; !ok {
		if _, ok := project.DevDependencies[name]; ok {
			patch.bucket = domain.BucketDevDependencies
		}
	}

	current, ok := project.Deps(patch.bucket)[name]
	if current != address && replaced == "" && ok {
		replaced = current
	}
	if replaced == address {
		replaced = ""
	}

	if current == address && patch.moveFrom == "" {
		return nil, replaced
	}
	return patch, replaced
}

// linkBins exposes the executables of pkg in node_modules/.bin.
func (i *Installer) linkBins(projectDir, vendorDir string, pkg *domain.Manifest) {
	if len(pkg.Bin) == 0 {
		return
	}

	binDir := domain.BinPath(projectDir)
	names := make([]string, 0, len(pkg.Bin))
	for name := range pkg.Bin {
		names = append(names, name)
	}
	slices.Sort(names)

	for _, name := range names {
		src := filepath.Join(vendorDir, filepath.FromSlash(pkg.Bin[name]))
		dest := filepath.Join(binDir, name)
		rel := func(p string) string {
			r, err := filepath.Rel(projectDir, p)
			if err != nil {
				return p
			}
			return r
		}
		i.logger.Info(fmt.Sprintf("Linking bin script: %s -> %s", rel(vendorDir), rel(dest)))

		if err := i.fs.Symlink(src, dest); err != nil {
			i.logger.Warn("Could not create bin symlink.")
			i.logger.Error(err)
			continue
		}
		if err := i.fs.Chmod(src, domain.ExecPerm); err != nil {
			i.logger.Warn("Could not create bin symlink.")
			i.logger.Error(err)
		}
	}
}

// finishAdd reduces the outcomes of a batch in request order.
func (i *Installer) finishAdd(
	ctx context.Context,
	project *domain.Manifest,
	h *hooks.Hooks,
	mode domain.InstallMode,
	opts AddOptions,
	outcomes []*installed,
) ([]domain.InstallResult, error) {
	var (
		edits   []domain.ManifestEdit
		results []domain.InstallResult
	)
	for _, out := range outcomes {
		if out == nil {
			continue
		}
		results = append(results, out.result)
		if p := out.patch; p != nil {
			if p.moveFrom != "" {
				edits = append(edits, domain.DeleteDependency(p.moveFrom, p.name))
			}
			edits = append(edits, domain.SetDependency(p.bucket, p.name, p.address))
		}
	}

	if len(edits) > 0 {
		updated, err := i.manifests.Edit(project, edits...)
		if err != nil {
			return nil, err
		}
		if err := i.manifests.Write(opts.WorkingDir, updated); err != nil {
			return nil, err
		}
	}

	if err := i.recordInstalls(opts, mode, results); err != nil {
		return nil, err
	}

	if err := h.Run(ctx, "postyalc"); err != nil {
		return nil, err
	}

	if opts.Update && len(results) > 0 {
		names := make([]string, len(results))
		for idx, r := range results {
			names[idx] = r.Name
		}
		if err := i.scripts.RunUpdate(ctx, opts.WorkingDir, h.PackageManager(), names); err != nil {
			return nil, err
		}
	}
	return results, nil
}

// recordInstalls merges results into the lockfile and the registry.
func (i *Installer) recordInstalls(opts AddOptions, mode domain.InstallMode, results []domain.InstallResult) error {
	if len(results) == 0 {
		return nil
	}

	lock, err := i.locks.Read(opts.WorkingDir)
	if err != nil {
		return err
	}

	entries := make(map[string]domain.LockEntry, len(results))
	pairs := make([]domain.Installation, 0, len(results))
	for _, r := range results {
		replaced := r.Replaced
		if replaced == "" {
			replaced = lock.Packages[r.Name].Replaced
		}
		entries[r.Name] = domain.NewLockEntry(r.Version, mode, opts.Workspace, replaced, r.Signature)
		pairs = append(pairs, domain.Installation{Name: r.Name, Path: r.ProjectPath})
	}

	if err := i.locks.Write(opts.WorkingDir, entries); err != nil {
		return err
	}
	return i.installations.Add(pairs)
}

// dedupeSpecs drops repeated arguments naming the same package, keeping the first.
func dedupeSpecs(specs []string) []string {
	seen := make(map[string]bool, len(specs))
	out := make([]string, 0, len(specs))
	for _, arg := range specs {
		key := arg
		if spec, err := domain.ParsePackageSpec(arg); err == nil {
			key = spec.Name
		}
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, arg)
	}
	return out
}
