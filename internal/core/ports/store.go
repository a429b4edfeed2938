package ports

import (
	"context"

	"go.trai.ch/yalc/internal/core/domain"
)

// StoreLocator resolves the store root directory.
type StoreLocator interface {
	// StoreDir returns the absolute store root.
	StoreDir() string
}

// PackageStore is the versioned, filesystem-backed package cache.
type PackageStore interface {
	// Dir returns the store root.
	Dir() string

	// PackageDir returns the directory of a stored package version.
	PackageDir(name, version string) string

	// Exists reports whether any version of name is stored.
	Exists(name string) bool

	// ResolveVersion returns version when it exists, or the newest stored
	// version when version is empty. It fails with domain.ErrPackageNotInStore.
	ResolveVersion(name, version string) (string, error)

	// Publish copies the package in sourceDir into the store.
	Publish(ctx context.Context, sourceDir string, opts domain.PublishOptions) (domain.PublishResult, error)
}

// LockfileRepository owns the per-project yalc.lock.
type LockfileRepository interface {
	// Read returns the lockfile of projectDir, empty when absent.
	Read(projectDir string) (*domain.Lockfile, error)

	// Write merges entries into the lockfile by package name and persists it.
	Write(projectDir string, entries map[string]domain.LockEntry) error

	// Remove deletes entries, and the file itself once no entries remain.
	Remove(projectDir string, names []string) error
}

// InstallationsRepository owns the global installations registry.
type InstallationsRepository interface {
	// Read returns the whole registry.
	Read() (domain.Installations, error)

	// Add records installations, ignoring ones already present.
	Add(pairs []domain.Installation) error

	// Remove drops installations. A package with no paths left is dropped.
	Remove(pairs []domain.Installation) error

	// Show returns the registry restricted to names, or all of it when names is empty.
	Show(names []string) (domain.Installations, error)

	// Clean drops installations whose project is gone or no longer locks the
	// package, and returns them. With dryRun nothing is written.
	Clean(names []string, dryRun bool) ([]domain.Installation, error)
}
