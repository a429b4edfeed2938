package fs

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"slices"
	"strings"

	"github.com/cespare/xxhash/v2"
	"go.trai.ch/yalc/internal/core/domain"
	"go.trai.ch/yalc/internal/core/ports"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

var _ ports.Signer = (*Hasher)(nil)

// Hasher computes package signatures with xxhash.
type Hasher struct{}

// NewHasher creates a new Hasher.
func NewHasher() *Hasher {
	return &Hasher{}
}

// ComputeFileHash computes the XXHash of a file's content.
func (h *Hasher) ComputeFileHash(path string) (uint64, error) {
	digest := xxhash.New()
	if err := h.stream(path, digest); err != nil {
		return 0, err
	}
	return digest.Sum64(), nil
}

// HashFile hashes relPath, normalized to forward slashes, followed by the file content.
// The same bytes at two locations hash differently.
func (h *Hasher) HashFile(path, relPath string) (string, error) {
	digest := xxhash.New()
	_, _ = digest.WriteString(strings.ReplaceAll(relPath, `\`, "/"))
	if err := h.stream(path, digest); err != nil {
		return "", err
	}
	return fmt.Sprintf("%016x", digest.Sum64()), nil
}

// Signature hashes every file of relPaths under root and hashes the
// concatenated digests in sorted path order.
func (h *Hasher) Signature(root string, relPaths []string) (string, error) {
	sorted := slices.Clone(relPaths)
	slices.Sort(sorted)

	digests := make([]string, len(sorted))

	g := new(errgroup.Group)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, rel := range sorted {
		g.Go(func() error {
			d, err := h.HashFile(filepath.Join(root, filepath.FromSlash(rel)), rel)
			if err != nil {
				return err
			}
			digests[i] = d
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return "", err
	}

	digest := xxhash.New()
	for _, d := range digests {
		_, _ = digest.WriteString(d)
	}
	return fmt.Sprintf("%016x", digest.Sum64()), nil
}

func (h *Hasher) stream(path string, w io.Writer) error {
	f, err := os.Open(path) //nolint:gosec // Path is controlled by caller
	if err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrFileOpenFailed.Error()), "path", path)
	}
	defer f.Close() //nolint:errcheck // Best effort close in defer

	if _, err := io.Copy(w, f); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrFileHashFailed.Error()), "path", path)
	}
	return nil
}
