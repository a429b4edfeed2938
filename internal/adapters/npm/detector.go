package npm

import (
	"os"
	"path/filepath"

	"go.trai.ch/yalc/internal/core/domain"
	"go.trai.ch/yalc/internal/core/ports"
)

var _ ports.PackageManagerDetector = (*Detector)(nil)

// Detector picks the package manager whose lockfile a project carries.
type Detector struct{}

// NewDetector creates a new Detector.
func NewDetector() *Detector {
	return &Detector{}
}

// Detect returns the first manager of the strategy table whose lockfile exists in dir.
func (d *Detector) Detect(dir string) domain.PackageManager {
	for _, s := range domain.PackageManagers {
		if _, err := os.Stat(filepath.Join(dir, s.LockFile)); err == nil {
			return s.ID
		}
	}
	return domain.DefaultPackageManager
}
