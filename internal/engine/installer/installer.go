// Package installer installs packages from the store into projects and keeps
// the manifest, the lockfile and the installations registry in step.
package installer

import (
	"os"
	"path/filepath"
	"strings"

	"go.trai.ch/yalc/internal/core/domain"
	"go.trai.ch/yalc/internal/core/ports"
	"go.trai.ch/yalc/internal/engine/hooks"
	"go.trai.ch/zerr"
)

// Installer orchestrates add, update, remove and check.
type Installer struct {
	manifests     ports.ManifestStore
	store         ports.PackageStore
	fs            ports.FileSystem
	locks         ports.LockfileRepository
	installations ports.InstallationsRepository
	hooks         *hooks.Runner
	scripts       ports.ScriptRunner
	vcs           ports.VCS
	logger        ports.Logger
	tracer        ports.Tracer
}

// New creates a new Installer.
func New(
	manifests ports.ManifestStore,
	store ports.PackageStore,
	fileSystem ports.FileSystem,
	locks ports.LockfileRepository,
	installations ports.InstallationsRepository,
	hookRunner *hooks.Runner,
	scripts ports.ScriptRunner,
	vcs ports.VCS,
	logger ports.Logger,
	tracer ports.Tracer,
) *Installer {
	return &Installer{
		manifests:     manifests,
		store:         store,
		fs:            fileSystem,
		locks:         locks,
		installations: installations,
		hooks:         hookRunner,
		scripts:       scripts,
		vcs:           vcs,
		logger:        logger,
		tracer:        tracer,
	}
}

// readProject reads the consuming manifest of dir.
func (i *Installer) readProject(dir string) (*domain.Manifest, error) {
	if !i.fs.Exists(filepath.Join(dir, domain.ManifestFileName)) {
		return nil, zerr.With(domain.ErrMissingProjectManifest, "path", dir)
	}
	return i.manifests.Read(dir)
}

func readSignature(dir string) string {
	//nolint:gosec // Path is inside the vendor folder
	data, err := os.ReadFile(filepath.Join(dir, domain.SignatureFileName))
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(data))
}
