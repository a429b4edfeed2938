package fs

import (
	"context"
	"errors"
	"io"
	iofs "io/fs"
	"os"
	"path/filepath"

	"go.trai.ch/yalc/internal/core/domain"
	"go.trai.ch/yalc/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.FileSystem = (*Copier)(nil)

// Copier mirrors package trees between the store, vendor folders and dependency slots.
type Copier struct {
	walker *Walker
	hasher *Hasher
}

// NewCopier creates a new Copier.
func NewCopier(walker *Walker, hasher *Hasher) *Copier {
	return &Copier{walker: walker, hasher: hasher}
}

// Sync makes dest mirror src. Unless replace is set, files whose content
// already matches are not rewritten.
func (c *Copier) Sync(ctx context.Context, src, dest string, replace bool) error {
	srcFiles, err := c.walker.ListFiles(src, nil)
	if err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrCopyFailed.Error()), "path", src)
	}

	var destFiles []string
	if c.Exists(dest) {
		if c.IsSymlink(dest) {
			if err := c.Remove(dest); err != nil {
				return err
			}
		} else if destFiles, err = c.walker.ListFiles(dest, []string{domain.ModulesDirName}); err != nil {
			return zerr.With(zerr.Wrap(err, domain.ErrCopyFailed.Error()), "path", dest)
		}
	}

	existing := make(map[string]struct{}, len(destFiles))
	for _, rel := range destFiles {
		existing[rel] = struct{}{}
	}

	wanted := make(map[string]struct{}, len(srcFiles))
	for _, rel := range srcFiles {
		if err := ctx.Err(); err != nil {
			return err
		}
		wanted[rel] = struct{}{}

		from := filepath.Join(src, filepath.FromSlash(rel))
		to := filepath.Join(dest, filepath.FromSlash(rel))

		if _, ok := existing[rel]; ok && !replace {
			same, err := c.sameContent(from, to)
			if err != nil {
				return err
			}
			if same {
				continue
			}
		}

		if err := c.CopyFile(from, to); err != nil {
			return err
		}
	}

	for _, rel := range destFiles {
		if _, ok := wanted[rel]; ok {
			continue
		}
		if err := c.Remove(filepath.Join(dest, filepath.FromSlash(rel))); err != nil {
			return err
		}
	}

	return nil
}

// CopyFile streams src into dest, keeping the permission bits of src.
// A symlink at dest is replaced rather than written through.
func (c *Copier) CopyFile(src, dest string) error {
	in, err := os.Open(src) //nolint:gosec // Path is controlled by caller
	if err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrCopyFailed.Error()), "path", src)
	}
	defer in.Close() //nolint:errcheck // Best effort close in defer

	info, err := in.Stat()
	if err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrCopyFailed.Error()), "path", src)
	}

	if err := os.MkdirAll(filepath.Dir(dest), domain.DirPerm); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrCopyFailed.Error()), "path", dest)
	}
	if c.IsSymlink(dest) {
		if err := os.Remove(dest); err != nil {
			return zerr.With(zerr.Wrap(err, domain.ErrRemoveFailed.Error()), "path", dest)
		}
	}

	//nolint:gosec // Path is controlled by caller
	out, err := os.OpenFile(dest, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, info.Mode().Perm())
	if err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrCopyFailed.Error()), "path", dest)
	}

	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		return zerr.With(zerr.Wrap(err, domain.ErrCopyFailed.Error()), "path", dest)
	}
	if err := out.Close(); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrCopyFailed.Error()), "path", dest)
	}
	return nil
}

// Symlink points link at target, replacing whatever occupies link.
func (c *Copier) Symlink(target, link string) error {
	if err := c.Remove(link); err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(link), domain.DirPerm); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrSymlinkFailed.Error()), "path", link)
	}
	if err := os.Symlink(target, link); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrSymlinkFailed.Error()), "path", link)
	}
	return nil
}

// IsSymlink reports whether path is a symlink.
func (c *Copier) IsSymlink(path string) bool {
	info, err := os.Lstat(path)
	return err == nil && info.Mode()&os.ModeSymlink != 0
}

// Exists reports whether something occupies path. Dangling symlinks count.
func (c *Copier) Exists(path string) bool {
	_, err := os.Lstat(path)
	return err == nil
}

// Remove deletes path recursively. A missing path is not an error.
func (c *Copier) Remove(path string) error {
	if err := os.RemoveAll(path); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrRemoveFailed.Error()), "path", path)
	}
	return nil
}

// RemoveIfEmpty deletes dir when it has no entries.
func (c *Copier) RemoveIfEmpty(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, iofs.ErrNotExist) {
			return nil
		}
		return zerr.With(zerr.Wrap(err, domain.ErrRemoveFailed.Error()), "path", dir)
	}
	if len(entries) > 0 {
		return nil
	}
	return c.Remove(dir)
}

// Chmod changes the mode of path.
func (c *Copier) Chmod(path string, mode os.FileMode) error {
	if err := os.Chmod(path, mode); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to change file mode"), "path", path)
	}
	return nil
}

func (c *Copier) sameContent(a, b string) (bool, error) {
	ia, errA := os.Stat(a)
	ib, errB := os.Stat(b)
	if errA != nil || errB != nil || ia.Size() != ib.Size() {
		return false, nil
	}

	ha, err := c.hasher.ComputeFileHash(a)
	if err != nil {
		return false, err
	}
	hb, err := c.hasher.ComputeFileHash(b)
	if err != nil {
		return false, err
	}
	return ha == hb, nil
}
