package installer

import (
	"context"
	"fmt"
	"path/filepath"
	"slices"

	"go.trai.ch/yalc/internal/core/domain"
	"go.trai.ch/yalc/internal/core/ports"
)

// RemoveOptions controls remove and retreat.
type RemoveOptions struct {
	WorkingDir string
	// All removes every locked package when no names are given.
	All bool
	// Retreat restores the manifest but keeps the lockfile entry and the
	// vendor copy, so the package can be restored later.
	Retreat bool
}

// Remove takes packages out of a project. It returns the names it processed.
func (i *Installer) Remove(ctx context.Context, names []string, opts RemoveOptions) ([]string, error) {
	ctx, span := i.tracer.Start(ctx, "remove",
		ports.WithAttribute("project", opts.WorkingDir),
		ports.WithAttribute("retreat", opts.Retreat),
	)
	defer span.End()

	project, err := i.readProject(opts.WorkingDir)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	lock, err := i.locks.Read(opts.WorkingDir)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	if len(names) == 0 {
		if !opts.All {
			i.logger.Info("Use --all option to remove all packages.")
			return nil, nil
		}
		for name := range lock.Packages {
			names = append(names, name)
		}
		slices.Sort(names)
	}
	i.tracer.EmitPlan(ctx, names)

	var (
		edits   []domain.ManifestEdit
		removed []string
		pairs   []domain.Installation
	)
	for _, arg := range names {
		spec, err := domain.ParsePackageSpec(arg)
		if err != nil {
			i.logger.Warn(fmt.Sprintf("Could not parse package name %s, skipping.", arg))
			continue
		}
		name := spec.Name

		entry, locked := lock.Packages[name]
		if !locked {
			i.logger.Warn(fmt.Sprintf("Package %s not found in %s, still will try to remove.", name, domain.LockfileName))
		}

		edits = append(edits, restoreEdits(project, name, entry, locked)...)

		if !locked || entry.Mode() != domain.ModePure {
			if err := i.fs.Remove(domain.ModulePath(opts.WorkingDir, name)); err != nil {
				span.RecordError(err)
				return nil, err
			}
		}

		if !opts.Retreat {
			if err := i.fs.Remove(domain.VendorPath(opts.WorkingDir, name)); err != nil {
				span.RecordError(err)
				return nil, err
			}
			pairs = append(pairs, domain.Installation{Name: name, Path: opts.WorkingDir})
		}
		removed = append(removed, name)
	}

	if len(edits) > 0 {
		updated, err := i.manifests.Edit(project, edits...)
		if err != nil {
			span.RecordError(err)
			return nil, err
		}
		if err := i.manifests.Write(opts.WorkingDir, updated); err != nil {
			span.RecordError(err)
			return nil, err
		}
	}

	if opts.Retreat || len(removed) == 0 {
		return removed, nil
	}

	if err := i.locks.Remove(opts.WorkingDir, removed); err != nil {
		span.RecordError(err)
		return nil, err
	}
	if err := i.installations.Remove(pairs); err != nil {
		span.RecordError(err)
		return nil, err
	}
	if err := i.removeEmptyScopes(opts.WorkingDir, removed); err != nil {
		span.RecordError(err)
		return nil, err
	}
	return removed, nil
}

// restoreEdits puts back the value a locked package replaced, or drops the
// dependency when there was none.
func restoreEdits(project *domain.Manifest, name string, entry domain.LockEntry, locked bool) []domain.ManifestEdit {
	var edits []domain.ManifestEdit
	for _, bucket := range []domain.Bucket{domain.BucketDependencies, domain.BucketDevDependencies} {
		value, ok := project.Deps(bucket)[name]
		if !ok {
			continue
		}
		isInstalled := domain.IsYalcAddress(value) || (locked && entry.Workspace && value == domain.WorkspaceAddress)
		if !isInstalled {
			continue
		}
		if entry.Replaced != "" {
			edits = append(edits, domain.SetDependency(bucket, name, entry.Replaced))
		} else {
			edits = append(edits, domain.DeleteDependency(bucket, name))
		}
	}
	return edits
}

// removeEmptyScopes deletes scope folders and the vendor folder once empty.
func (i *Installer) removeEmptyScopes(projectDir string, names []string) error {
	vendorRoot := filepath.Join(projectDir, domain.VendorDirName)
	for _, name := range names {
		if scope := filepath.Dir(filepath.FromSlash(name)); scope != "." {
			if err := i.fs.RemoveIfEmpty(filepath.Join(vendorRoot, scope)); err != nil {
				return err
			}
		}
	}
	return i.fs.RemoveIfEmpty(vendorRoot)
}
