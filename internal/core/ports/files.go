package ports

import (
	"context"
	"os"

	"go.trai.ch/yalc/internal/core/domain"
)

// FileLister computes the publishable files of a package.
type FileLister interface {
	// List returns slash-separated paths relative to dir, sorted.
	List(dir string, m *domain.Manifest) ([]string, error)
}

// IgnoreMatcher compiles ignore patterns.
type IgnoreMatcher interface {
	// Compile builds rules from newline-delimited gitignore-style patterns.
	Compile(patterns []string) IgnoreRules
}

// IgnoreRules matches relative paths against a compiled pattern set.
type IgnoreRules interface {
	// Matches reports whether relPath is ignored.
	Matches(relPath string) bool
}

// Signer computes deterministic package signatures.
type Signer interface {
	// HashFile hashes the file at path, seeded with its slash-normalized relPath.
	HashFile(path, relPath string) (string, error)

	// Signature hashes the files relPaths under root independently of their order.
	Signature(root string, relPaths []string) (string, error)
}

// FileSystem performs the tree operations installs are made of.
type FileSystem interface {
	// Sync makes dest mirror src. Files with identical content are left alone
	// unless replace is set. Files absent from src are removed, except inside
	// nested node_modules directories.
	Sync(ctx context.Context, src, dest string, replace bool) error

	// CopyFile copies a single file, creating parent directories.
	CopyFile(src, dest string) error

	// Symlink points link at target, replacing whatever occupies link.
	Symlink(target, link string) error

	// IsSymlink reports whether path is a symlink.
	IsSymlink(path string) bool

	// Exists reports whether path exists.
	Exists(path string) bool

	// Remove deletes path recursively. A missing path is not an error.
	Remove(path string) error

	// RemoveIfEmpty deletes dir when it has no entries.
	RemoveIfEmpty(dir string) error

	// Chmod changes the mode of path.
	Chmod(path string, mode os.FileMode) error
}
