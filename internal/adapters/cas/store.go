// Package cas implements the local package store.
package cas

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"go.trai.ch/yalc/internal/core/domain"
	"go.trai.ch/yalc/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.PackageStore = (*Store)(nil)

// Store implements ports.PackageStore with one directory per package version.
type Store struct {
	locator   ports.StoreLocator
	lister    ports.FileLister
	matcher   ports.IgnoreMatcher
	signer    ports.Signer
	fs        ports.FileSystem
	manifests ports.ManifestStore
	logger    ports.Logger
}

// NewStore creates a new Store rooted at the directory locator resolves.
func NewStore(
	locator ports.StoreLocator,
	lister ports.FileLister,
	matcher ports.IgnoreMatcher,
	signer ports.Signer,
	fileSystem ports.FileSystem,
	manifests ports.ManifestStore,
	logger ports.Logger,
) *Store {
	return &Store{
		locator:   locator,
		lister:    lister,
		matcher:   matcher,
		signer:    signer,
		fs:        fileSystem,
		manifests: manifests,
		logger:    logger,
	}
}

// Dir returns the store root.
func (s *Store) Dir() string {
	return s.locator.StoreDir()
}

// PackageDir returns the directory of a stored package version.
func (s *Store) PackageDir(name, version string) string {
	return domain.StorePackagePath(s.Dir(), name, version)
}

// Exists reports whether any version of name is stored.
func (s *Store) Exists(name string) bool {
	versions, err := s.versions(name)
	return err == nil && len(versions) > 0
}

// ResolveVersion returns version when stored, or the most recently published
// version when version is empty. Equal timestamps fall back to the greatest name.
func (s *Store) ResolveVersion(name, version string) (string, error) {
	if version != "" {
		info, err := os.Stat(s.PackageDir(name, version))
		if err != nil || !info.IsDir() {
			return "", zerr.With(zerr.With(domain.ErrPackageNotInStore, "package", name), "version", version)
		}
		return version, nil
	}

	versions, err := s.versions(name)
	if err != nil {
		return "", err
	}
	if len(versions) == 0 {
		return "", zerr.With(domain.ErrPackageNotInStore, "package", name)
	}

	latest := versions[0]
	for _, v := range versions[1:] {
		if v.modTime.After(latest.modTime) || (v.modTime.Equal(latest.modTime) && v.name > latest.name) {
			latest = v
		}
	}
	return latest.name, nil
}

type storedVersion struct {
	name    string
	modTime time.Time
}

func (s *Store) versions(name string) ([]storedVersion, error) {
	dir := s.PackageDir(name, "")
	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, zerr.With(domain.ErrPackageNotInStore, "package", name)
		}
		return nil, zerr.With(zerr.Wrap(err, domain.ErrStoreReadFailed.Error()), "path", dir)
	}

	versions := make([]storedVersion, 0, len(entries))
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			return nil, zerr.With(zerr.Wrap(err, domain.ErrStoreReadFailed.Error()), "path", filepath.Join(dir, entry.Name()))
		}
		versions = append(versions, storedVersion{name: entry.Name(), modTime: info.ModTime()})
	}
	return versions, nil
}
