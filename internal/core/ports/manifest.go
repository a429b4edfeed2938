package ports

import "go.trai.ch/yalc/internal/core/domain"

// ManifestStore reads and writes package.json documents.
// Keys it does not know about, and their order, survive every round trip.
type ManifestStore interface {
	// Read parses the manifest in dir. A missing file yields domain.ErrManifestNotFound.
	Read(dir string) (*domain.Manifest, error)

	// Edit applies edits to a copy of m and returns the re-parsed result.
	Edit(m *domain.Manifest, edits ...domain.ManifestEdit) (*domain.Manifest, error)

	// Write persists m into dir.
	Write(dir string, m *domain.Manifest) error
}
