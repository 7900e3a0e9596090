package ports

import "go.trai.ch/ugle/internal/core/domain"

// ManifestLoader parses a user-authored manifest file into the domain model.
//
//go:generate mockgen -source=manifest_loader.go -destination=mocks/mock_manifest_loader.go -package=mocks
type ManifestLoader interface {
	// Load reads and validates the manifest at path.
	Load(path string) (*domain.Manifest, error)
}
