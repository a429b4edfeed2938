package cas

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"go.trai.ch/yalc/internal/core/domain"
)

const (
	workspacePrefix = "workspace:"
	signatureField  = "yalcSig"
)

// deriveManifest builds the manifest written into the store entry.
func (s *Store) deriveManifest(m *domain.Manifest, sourceDir, sig string, opts domain.PublishOptions) (*domain.Manifest, error) {
	var edits []domain.ManifestEdit

	if opts.DevMod {
		if _, ok := m.Scripts["prepare"]; ok {
			edits = append(edits, domain.DeleteField("scripts", "prepare"))
		}
		if _, ok := m.Scripts["prepublish"]; ok {
			edits = append(edits, domain.DeleteField("scripts", "prepublish"))
		}
		if m.DevDependencies != nil {
			edits = append(edits, domain.DeleteField(string(domain.BucketDevDependencies)))
		}
	}

	if opts.WorkspaceResolve {
		for _, bucket := range domain.ManifestBuckets {
			if opts.DevMod && bucket == domain.BucketDevDependencies {
				continue
			}
			deps := m.Deps(bucket)
			for _, name := range sortedNames(deps) {
				value := deps[name]
				if !strings.HasPrefix(value, workspacePrefix) {
					continue
				}
				resolved := s.resolveWorkspaceVersion(strings.TrimPrefix(value, workspacePrefix), name, sourceDir)
				edits = append(edits, domain.SetDependency(bucket, name, resolved))
			}
		}
	}

	version := m.Version
	if opts.Signature {
		version += "+" + domain.ShortSignature(sig)
	}
	edits = append(edits,
		domain.SetField(version, "version"),
		domain.SetField(sig, signatureField),
	)

	return s.manifests.Edit(m, edits...)
}

// resolveWorkspaceVersion turns a workspace range into a publishable one.
// "*", "^" and "~" take the version of the installed sibling package.
func (s *Store) resolveWorkspaceVersion(rng, name, sourceDir string) string {
	resolved := rng
	if rng == "*" || rng == "^" || rng == "~" {
		prefix := strings.TrimPrefix(rng, "*")
		version, ok := s.siblingVersion(name, sourceDir)
		if ok {
			resolved = prefix + version
		} else {
			s.logger.Warn(fmt.Sprintf("Could not resolve workspace package location for %s", name))
			resolved = "*"
		}
	}
	s.logger.Info(fmt.Sprintf("Resolving workspace package %s version ==> %s", name, resolved))
	return resolved
}

// siblingVersion finds the version of name as node resolution would, walking
// up from dir through node_modules directories.
func (s *Store) siblingVersion(name, dir string) (string, bool) {
	for current := dir; ; {
		m, err := s.manifests.Read(domain.ModulePath(current, name))
		if err == nil && m.Version != "" {
			return m.Version, true
		}

		parent := filepath.Dir(current)
		if parent == current {
			return "", false
		}
		current = parent
	}
}

func sortedNames(deps map[string]string) []string {
	names := make([]string, 0, len(deps))
	for name := range deps {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
