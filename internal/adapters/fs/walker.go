// Package fs provides file system adapters for walking, hashing and copying package trees.
package fs

import (
	"io/fs"
	"iter"
	"path/filepath"

	"go.trai.ch/zerr"
)

// Walker provides file walking functionality.
type Walker struct{}

// NewWalker creates a new Walker.
func NewWalker() *Walker {
	return &Walker{}
}

// WalkFiles yields the files under root as slash-separated paths relative to root.
// Directories and files whose base name matches one of ignores are skipped,
// as are .git and .jj directories.
func (w *Walker) WalkFiles(root string, ignores []string) iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {
		err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if path == root {
				return nil
			}

			if skip := w.shouldSkip(d, ignores); skip {
				if d.IsDir() {
					return filepath.SkipDir
				}
				return nil
			}

			if d.IsDir() {
				return nil
			}

			rel, err := filepath.Rel(root, path)
			if err != nil {
				return err
			}
			if !yield(filepath.ToSlash(rel), nil) {
				return filepath.SkipAll
			}
			return nil
		})
		if err != nil {
			yield("", zerr.With(zerr.Wrap(err, "failed to walk directory"), "path", root))
		}
	}
}

// ListFiles collects WalkFiles into a slice.
func (w *Walker) ListFiles(root string, ignores []string) ([]string, error) {
	var files []string
	for rel, err := range w.WalkFiles(root, ignores) {
		if err != nil {
			return nil, err
		}
		files = append(files, rel)
	}
	return files, nil
}

func (w *Walker) shouldSkip(d fs.DirEntry, ignores []string) bool {
	name := d.Name()

	if d.IsDir() && (name == ".git" || name == ".jj") {
		return true
	}

	for _, ignore := range ignores {
		if matched, _ := filepath.Match(ignore, name); matched {
			return true
		}
	}
	return false
}
