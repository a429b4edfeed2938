package installer

import (
	"context"
	"path"
	"slices"

	"go.trai.ch/yalc/internal/core/domain"
)

// CheckOptions controls check.
type CheckOptions struct {
	WorkingDir string
	// All reports every file: and link: dependency, not only vendor folder ones.
	All bool
	// Commit only checks when a package.json is staged for commit.
	Commit bool
}

// Check returns the dependencies of the project that point at local copies.
func (i *Installer) Check(ctx context.Context, opts CheckOptions) ([]string, error) {
	if opts.Commit {
		staged, err := i.vcs.StagedFiles(ctx, opts.WorkingDir)
		if err != nil {
			return nil, err
		}
		if !slices.ContainsFunc(staged, func(f string) bool { return path.Base(f) == domain.ManifestFileName }) {
			return nil, nil
		}
	}

	project, err := i.readProject(opts.WorkingDir)
	if err != nil {
		return nil, err
	}

	local := opts.All
	var found []string
	for _, bucket := range []domain.Bucket{domain.BucketDependencies, domain.BucketDevDependencies} {
		for name, value := range project.Deps(bucket) {
			if domain.IsYalcAddress(value) || (local && domain.IsLocalAddress(value)) {
				found = append(found, name)
			}
		}
	}
	slices.Sort(found)
	return slices.Compact(found), nil
}
