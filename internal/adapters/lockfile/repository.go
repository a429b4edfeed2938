// Package lockfile persists the per-project yalc.lock.
package lockfile

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"slices"

	"github.com/tidwall/gjson"
	"github.com/tidwall/pretty"
	"github.com/tidwall/sjson"
	"go.trai.ch/yalc/internal/adapters/manifest"
	"go.trai.ch/yalc/internal/core/domain"
	"go.trai.ch/yalc/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.LockfileRepository = (*Repository)(nil)

const indent = "  "

// Repository implements ports.LockfileRepository.
// Writes edit the existing document in place, so entries and keys the
// current batch does not mention are kept as they are.
type Repository struct{}

// NewRepository creates a new Repository.
func NewRepository() *Repository {
	return &Repository{}
}

// Read returns the lockfile of projectDir, empty when absent.
func (r *Repository) Read(projectDir string) (*domain.Lockfile, error) {
	raw, err := r.load(projectDir)
	if err != nil {
		return nil, err
	}
	if raw == nil {
		return domain.NewLockfile(), nil
	}

	lock := domain.NewLockfile()
	if err := json.Unmarshal(raw, lock); err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrLockfileParseFailed.Error()), "path", path(projectDir))
	}
	if lock.Packages == nil {
		lock.Packages = map[string]domain.LockEntry{}
	}
	return lock, nil
}

// Write merges entries into the lockfile by package name.
func (r *Repository) Write(projectDir string, entries map[string]domain.LockEntry) error {
	raw, err := r.load(projectDir)
	if err != nil {
		return err
	}
	if raw == nil {
		raw = []byte(`{"version":"` + domain.LockfileVersion + `","packages":{}}`)
	}

	for _, name := range sortedNames(entries) {
		raw, err = sjson.SetBytes(raw, manifest.JSONPath("packages", name), entries[name])
		if err != nil {
			return zerr.With(zerr.Wrap(err, domain.ErrLockfileWriteFailed.Error()), "package", name)
		}
	}
	return r.save(projectDir, raw)
}

// Remove deletes entries, and the file itself once no entries remain.
func (r *Repository) Remove(projectDir string, names []string) error {
	raw, err := r.load(projectDir)
	if err != nil || raw == nil {
		return err
	}

	for _, name := range names {
		raw, err = sjson.DeleteBytes(raw, manifest.JSONPath("packages", name))
		if err != nil {
			return zerr.With(zerr.Wrap(err, domain.ErrLockfileWriteFailed.Error()), "package", name)
		}
	}

	packages := gjson.GetBytes(raw, "packages")
	if !packages.Exists() || len(packages.Map()) == 0 {
		if err := os.Remove(path(projectDir)); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return zerr.With(zerr.Wrap(err, domain.ErrLockfileWriteFailed.Error()), "path", path(projectDir))
		}
		return nil
	}
	return r.save(projectDir, raw)
}

func (r *Repository) load(projectDir string) ([]byte, error) {
	p := path(projectDir)
	data, err := os.ReadFile(p) //nolint:gosec // Path is constructed from a project directory
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, zerr.With(zerr.Wrap(err, domain.ErrLockfileReadFailed.Error()), "path", p)
	}
	if !gjson.ValidBytes(data) {
		return nil, zerr.With(domain.ErrLockfileParseFailed, "path", p)
	}
	return data, nil
}

func (r *Repository) save(projectDir string, raw []byte) error {
	p := path(projectDir)
	data := pretty.PrettyOptions(raw, &pretty.Options{Indent: indent, SortKeys: false})
	//nolint:gosec // Path is constructed from a project directory
	if err := os.WriteFile(p, data, domain.FilePerm); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrLockfileWriteFailed.Error()), "path", p)
	}
	return nil
}

func path(projectDir string) string {
	return filepath.Join(projectDir, domain.LockfileName)
}

func sortedNames(entries map[string]domain.LockEntry) []string {
	names := make([]string, 0, len(entries))
	for name := range entries {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}
