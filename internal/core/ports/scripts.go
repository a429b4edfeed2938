package ports

import (
	"context"

	"go.trai.ch/yalc/internal/core/domain"
)

//go:generate mockgen -source=scripts.go -destination=mocks/mock_scripts.go -package=mocks

// PackageManagerDetector identifies the package manager of a project.
type PackageManagerDetector interface {
	// Detect returns the manager whose lockfile is present in dir.
	Detect(dir string) domain.PackageManager
}

// ScriptRunner runs package manager commands with the caller's standard streams.
type ScriptRunner interface {
	// RunScript runs a manifest script through pm in dir.
	RunScript(ctx context.Context, dir string, pm domain.PackageManager, script string) error

	// RunUpdate runs the update procedure of pm for packages in dir.
	RunUpdate(ctx context.Context, dir string, pm domain.PackageManager, packages []string) error
}

// VCS inspects the version control state of a project.
type VCS interface {
	// StagedFiles returns the paths staged for commit in dir.
	StagedFiles(ctx context.Context, dir string) ([]string, error)
}
