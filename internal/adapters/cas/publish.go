package cas

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"go.trai.ch/yalc/internal/adapters/npm"
	"go.trai.ch/yalc/internal/core/domain"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

// Publish copies the publishable files of sourceDir into the store and writes
// the derived manifest and signature file next to them.
func (s *Store) Publish(ctx context.Context, sourceDir string, opts domain.PublishOptions) (domain.PublishResult, error) {
	m, err := s.manifests.Read(sourceDir)
	if err != nil {
		return domain.PublishResult{}, err
	}
	if m.Name == "" {
		return domain.PublishResult{}, zerr.With(domain.ErrMissingPackageName, "path", sourceDir)
	}
	if m.Version == "" {
		return domain.PublishResult{}, zerr.With(domain.ErrMissingPackageVersion, "package", m.Name)
	}
	if err := domain.ValidatePackageName(m.Name); err != nil {
		return domain.PublishResult{}, zerr.With(zerr.With(err, "package", m.Name), "path", sourceDir)
	}
	if err := domain.ValidatePackageVersion(m.Version); err != nil {
		return domain.PublishResult{}, zerr.With(zerr.With(err, "package", m.Name), "version", m.Version)
	}

	files, err := s.publishableFiles(sourceDir, m)
	if err != nil {
		return domain.PublishResult{}, err
	}

	dir := s.PackageDir(m.Name, m.Version)
	result := domain.PublishResult{Name: m.Name, Version: m.Version, Dir: dir}

	if opts.Changed {
		sig, err := s.signer.Signature(sourceDir, files)
		if err != nil {
			return domain.PublishResult{}, err
		}
		if stored := readSignature(dir); stored != "" && stored == sig {
			result.Signature = sig
			result.Unchanged = true
			return result, nil
		}
	}

	if opts.Content {
		s.logContent(files)
	}

	if err := s.fs.Remove(dir); err != nil {
		return domain.PublishResult{}, err
	}
	if err := s.copyFiles(ctx, sourceDir, dir, files); err != nil {
		return domain.PublishResult{}, err
	}

	sig, err := s.signer.Signature(dir, files)
	if err != nil {
		return domain.PublishResult{}, err
	}
	result.Signature = sig

	derived, err := s.deriveManifest(m, sourceDir, sig, opts)
	if err != nil {
		return domain.PublishResult{}, err
	}
	if err := s.manifests.Write(dir, derived); err != nil {
		return domain.PublishResult{}, err
	}
	result.Version = derived.Version

	sigPath := filepath.Join(dir, domain.SignatureFileName)
	//nolint:gosec // Path is inside the store
	if err := os.WriteFile(sigPath, []byte(sig), domain.FilePerm); err != nil {
		return domain.PublishResult{}, zerr.With(zerr.Wrap(err, domain.ErrSignatureWriteFailed.Error()), "path", sigPath)
	}

	return result, nil
}

func (s *Store) publishableFiles(sourceDir string, m *domain.Manifest) ([]string, error) {
	files, err := s.lister.List(sourceDir, m)
	if err != nil {
		return nil, err
	}

	patterns, _, err := npm.ReadPatterns(filepath.Join(sourceDir, domain.IgnoreFileName))
	if err != nil {
		return nil, err
	}
	if len(patterns) == 0 {
		return files, nil
	}

	rules := s.matcher.Compile(patterns)
	kept := files[:0]
	for _, f := range files {
		if !rules.Matches(f) {
			kept = append(kept, f)
		}
	}
	return kept, nil
}

func (s *Store) copyFiles(ctx context.Context, sourceDir, dir string, files []string) error {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))

	for _, rel := range files {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			return s.fs.CopyFile(filepath.Join(sourceDir, filepath.FromSlash(rel)), filepath.Join(dir, filepath.FromSlash(rel)))
		})
	}

	if err := g.Wait(); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrCopyFailed.Error()), "path", dir)
	}
	return nil
}

func (s *Store) logContent(files []string) {
	var b strings.Builder
	b.WriteString("Files included in published content:")
	for _, f := range files {
		b.WriteString("\n- ")
		b.WriteString(f)
	}
	fmt.Fprintf(&b, "\nTotal %d files.", len(files))
	s.logger.Info(b.String())
}

func readSignature(dir string) string {
	//nolint:gosec // Path is inside the store
	data, err := os.ReadFile(filepath.Join(dir, domain.SignatureFileName))
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(data))
}
