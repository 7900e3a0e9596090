// Package config provides the manifest loader for ugle.
package config

import (
	"os"

	"go.trai.ch/ugle/internal/core/domain"
	"go.trai.ch/ugle/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

var _ ports.ManifestLoader = (*Loader)(nil)

// Loader implements ports.ManifestLoader using a YAML file.
type Loader struct{}

// NewLoader creates a new Loader.
func NewLoader() *Loader {
	return &Loader{}
}

// manifestDTO mirrors the on-disk manifest. Deps is kept as a raw node so
// the declared dependency order survives decoding; dependencies are
// processed in exactly that order.
type manifestDTO struct {
	Name  string    `yaml:"name"`
	Deps  yaml.Node `yaml:"deps"`
	Spack *spackDTO `yaml:"spack"`
	Apt   []string  `yaml:"apt"`
}

type spackDTO struct {
	Lockfile string `yaml:"lockfile"`
}

type depDTO struct {
	Filepath string `yaml:"filepath"`
	URL      string `yaml:"url"`
	Copy     bool   `yaml:"copy"`
}

// Load reads and validates the manifest at path.
func (l *Loader) Load(path string) (*domain.Manifest, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path is provided by user
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to read manifest"), "path", path)
	}
	return Parse(data, path)
}

// Parse decodes manifest bytes into the domain model.
func Parse(data []byte, path string) (*domain.Manifest, error) {
	var dto manifestDTO
	if err := yaml.Unmarshal(data, &dto); err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to parse manifest"), "path", path)
	}

	manifest := &domain.Manifest{
		Name:        dto.Name,
		AptPackages: dto.Apt,
	}

	if dto.Spack != nil {
		if dto.Spack.Lockfile == "" {
			err := zerr.With(zerr.Wrap(domain.ErrInvalidManifest, "spack section has no lockfile"), "path", path)
			return nil, zerr.With(err, "missing_field", "spack.lockfile")
		}
		manifest.SpackLockfile = dto.Spack.Lockfile
	}

	deps, err := decodeDeps(&dto.Deps)
	if err != nil {
		return nil, zerr.With(err, "path", path)
	}
	manifest.Deps = deps

	if err := manifest.Validate(); err != nil {
		return nil, zerr.With(err, "path", path)
	}
	return manifest, nil
}

// decodeDeps walks the deps mapping node pairwise so declaration order is
// preserved.
func decodeDeps(node *yaml.Node) ([]domain.ManifestDep, error) {
	if node.Kind == 0 || node.IsZero() {
		return nil, nil
	}
	if node.Kind != yaml.MappingNode {
		return nil, zerr.With(zerr.Wrap(domain.ErrInvalidManifest, "deps must be a mapping"), "field", "deps")
	}

	deps := make([]domain.ManifestDep, 0, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		name := node.Content[i].Value
		var dto depDTO
		if err := node.Content[i+1].Decode(&dto); err != nil {
			decodeErr := zerr.Wrap(err, "failed to decode dependency")
			return nil, zerr.With(decodeErr, "dependency", name)
		}
		deps = append(deps, domain.ManifestDep{
			Name:     domain.NewInternedString(name),
			Filepath: dto.Filepath,
			URL:      dto.URL,
			Copy:     dto.Copy,
		})
	}
	return deps, nil
}
