// Package installations persists the global registry of projects that use
// packages from the store.
package installations

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"sync"

	"go.trai.ch/yalc/internal/core/domain"
	"go.trai.ch/yalc/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.InstallationsRepository = (*Repository)(nil)

// Repository implements ports.InstallationsRepository with a JSON file at the
// store root. Every call reads the file again.
type Repository struct {
	locator ports.StoreLocator
	locks   ports.LockfileRepository
	mu      sync.Mutex
}

// NewRepository creates a new Repository.
func NewRepository(locator ports.StoreLocator, locks ports.LockfileRepository) *Repository {
	return &Repository{locator: locator, locks: locks}
}

// Read returns the whole registry.
func (r *Repository) Read() (domain.Installations, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.load()
}

// Add records installations, ignoring ones already present.
func (r *Repository) Add(pairs []domain.Installation) error {
	return r.update(func(inst domain.Installations) bool {
		changed := false
		for _, p := range pairs {
			if slices.Contains(inst[p.Name], p.Path) {
				continue
			}
			inst[p.Name] = append(inst[p.Name], p.Path)
			changed = true
		}
		return changed
	})
}

// Remove drops installations. A package with no paths left is dropped.
func (r *Repository) Remove(pairs []domain.Installation) error {
	return r.update(func(inst domain.Installations) bool {
		return removePairs(inst, pairs)
	})
}

// Show returns the registry restricted to names, or all of it when names is empty.
func (r *Repository) Show(names []string) (domain.Installations, error) {
	inst, err := r.Read()
	if err != nil || len(names) == 0 {
		return inst, err
	}

	filtered := domain.Installations{}
	for _, name := range names {
		if paths, ok := inst[name]; ok {
			filtered[name] = paths
		}
	}
	return filtered, nil
}

// Clean drops installations whose project is gone or no longer locks the
// package, and returns them. With dryRun nothing is written.
func (r *Repository) Clean(names []string, dryRun bool) ([]domain.Installation, error) {
	var stale []domain.Installation
	err := r.update(func(inst domain.Installations) bool {
		for _, name := range sortedNames(inst) {
			if len(names) > 0 && !slices.Contains(names, name) {
				continue
			}
			for _, path := range inst[name] {
				if !r.installed(name, path) {
					stale = append(stale, domain.Installation{Name: name, Path: path})
				}
			}
		}
		if dryRun {
			return false
		}
		return removePairs(inst, stale)
	})
	return stale, err
}

func (r *Repository) installed(name, projectDir string) bool {
	info, err := os.Stat(projectDir)
	if err != nil || !info.IsDir() {
		return false
	}
	lock, err := r.locks.Read(projectDir)
	if err != nil {
		return false
	}
	_, ok := lock.Packages[name]
	return ok
}

func (r *Repository) update(fn func(domain.Installations) bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	inst, err := r.load()
	if err != nil {
		return err
	}
	if !fn(inst) {
		return nil
	}
	return r.save(inst)
}

func (r *Repository) path() string {
	return filepath.Join(r.locator.StoreDir(), domain.InstallationsFileName)
}

func (r *Repository) load() (domain.Installations, error) {
	p := r.path()
	//nolint:gosec // Path is inside the store
	data, err := os.ReadFile(p)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return domain.Installations{}, nil
		}
		return nil, zerr.With(zerr.Wrap(err, domain.ErrInstallationsReadFailed.Error()), "path", p)
	}

	inst := domain.Installations{}
	if len(data) == 0 {
		return inst, nil
	}
	if err := json.Unmarshal(data, &inst); err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrInstallationsParseFailed.Error()), "path", p)
	}
	return inst, nil
}

func (r *Repository) save(inst domain.Installations) error {
	p := r.path()
	data, err := json.MarshalIndent(inst, "", "  ")
	if err != nil {
		return zerr.Wrap(err, domain.ErrInstallationsWriteFailed.Error())
	}

	if err := os.MkdirAll(filepath.Dir(p), domain.DirPerm); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrInstallationsWriteFailed.Error()), "path", p)
	}
	//nolint:gosec // Path is inside the store
	if err := os.WriteFile(p, data, domain.FilePerm); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrInstallationsWriteFailed.Error()), "path", p)
	}
	return nil
}

func removePairs(inst domain.Installations, pairs []domain.Installation) bool {
	changed := false
	for _, p := range pairs {
		paths, ok := inst[p.Name]
		if !ok {
			continue
		}
		kept := slices.DeleteFunc(slices.Clone(paths), func(path string) bool { return path == p.Path })
		if len(kept) == len(paths) {
			continue
		}
		changed = true
		if len(kept) == 0 {
			delete(inst, p.Name)
		} else {
			inst[p.Name] = kept
		}
	}
	return changed
}

func sortedNames(inst domain.Installations) []string {
	names := make([]string, 0, len(inst))
	for name := range inst {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}
