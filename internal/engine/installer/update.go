package installer

import (
	"context"
	"fmt"
	"slices"

	"go.trai.ch/yalc/internal/core/domain"
	"go.trai.ch/yalc/internal/core/ports"
)

// UpdateOptions controls an update.
type UpdateOptions struct {
	WorkingDir string
	Replace    bool
	Update     bool
	// Restore reinstalls from the vendor folder instead of the store.
	Restore bool
	// DeferPrune leaves stale registry entries to the caller.
	DeferPrune bool
}

type updateGroup struct {
	mode      domain.InstallMode
	workspace bool
	specs     []string
}

// Update reinstalls locked packages with the mode each was installed with.
// names may carry a version that overrides the locked one. Names the lockfile
// does not know are returned as stale installations.
func (i *Installer) Update(ctx context.Context, names []string, opts UpdateOptions) ([]domain.Installation, error) {
	ctx, span := i.tracer.Start(ctx, "update", ports.WithAttribute("project", opts.WorkingDir))
	defer span.End()

	lock, err := i.locks.Read(opts.WorkingDir)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	var (
		selected []string
		stale    []domain.Installation
	)
	versions := map[string]string{}
	if len(names) == 0 {
		for name := range lock.Packages {
			selected = append(selected, name)
		}
		slices.Sort(selected)
	} else {
		for _, arg := range names {
			spec, err := domain.ParsePackageSpec(arg)
			if err != nil {
				i.logger.Warn(fmt.Sprintf("Could not parse package name %s, skipping.", arg))
				continue
			}
			if _, ok := lock.Packages[spec.Name]; !ok {
				stale = append(stale, domain.Installation{Name: spec.Name, Path: opts.WorkingDir})
				i.logger.Warn(fmt.Sprintf("Did not find package %s in lockfile, please use 'add' command to add it explicitly.", spec.Name))
				continue
			}
			if spec.Version != "" {
				versions[spec.Name] = spec.Version
			}
			selected = append(selected, spec.Name)
		}
	}

	for _, group := range groupByMode(lock, selected, versions) {
		addOpts := AddOptions{
			WorkingDir: opts.WorkingDir,
			Mode:       group.mode,
			Workspace:  group.workspace,
			Replace:    opts.Replace,
			Update:     opts.Update,
			Restore:    opts.Restore,
		}
		switch group.mode {
		case domain.ModeVendoredFile:
		case domain.ModePure:
			addOpts.Pure = boolPtr(true)
		default:
			addOpts.Pure = boolPtr(false)
		}

		if _, err := i.Add(ctx, group.specs, addOpts); err != nil {
			span.RecordError(err)
			return nil, err
		}
	}

	if !opts.DeferPrune && len(stale) > 0 {
		if err := i.installations.Remove(stale); err != nil {
			span.RecordError(err)
			return nil, err
		}
	}
	return stale, nil
}

// groupByMode partitions names by their locked install mode, in update order.
// Pure installs are split by whether they used the workspace reference.
func groupByMode(lock *domain.Lockfile, names []string, versions map[string]string) []updateGroup {
	var groups []updateGroup
	for _, mode := range domain.UpdateOrder {
		workspaceFlags := []bool{false}
		if mode == domain.ModePure {
			workspaceFlags = []bool{false, true}
		}
		for _, workspace := range workspaceFlags {
			group := updateGroup{mode: mode, workspace: workspace || mode == domain.ModeWorkspace}
			for _, name := range names {
				entry := lock.Packages[name]
				if entry.Mode() != mode || (mode == domain.ModePure && entry.Workspace != workspace) {
					continue
				}
				version := entry.Version
				if v, ok := versions[name]; ok {
					version = v
				}
				group.specs = append(group.specs, domain.PackageSpec{Name: name, Version: version}.String())
			}
			if len(group.specs) > 0 {
				groups = append(groups, group)
			}
		}
	}
	return groups
}

func boolPtr(b bool) *bool {
	return &b
}
