package config_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/ugle/internal/adapters/config"
	"go.trai.ch/ugle/internal/core/domain"
)

func TestLoad_Success(t *testing.T) {
	content := `
name: myenv
deps:
  mylib:
    filepath: ../mylib
    url: git@example.com:mylib.git
  data:
    filepath: /srv/data
    copy: true
spack:
  lockfile: spack.lock
apt:
  - curl
  - jq
`
	tmpDir := t.TempDir()
	manifestPath := filepath.Join(tmpDir, "ugle.yaml")
	require.NoError(t, os.WriteFile(manifestPath, []byte(content), 0o600))

	loader := config.NewLoader()
	manifest, err := loader.Load(manifestPath)
	require.NoError(t, err)

	assert.Equal(t, "myenv", manifest.Name)
	assert.Equal(t, "spack.lock", manifest.SpackLockfile)
	assert.Equal(t, []string{"curl", "jq"}, manifest.AptPackages)

	require.Len(t, manifest.Deps, 2)
	assert.Equal(t, "mylib", manifest.Deps[0].Name.String())
	assert.Equal(t, "../mylib", manifest.Deps[0].Filepath)
	assert.Equal(t, "git@example.com:mylib.git", manifest.Deps[0].URL)
	assert.False(t, manifest.Deps[0].Copy)
	assert.Equal(t, "data", manifest.Deps[1].Name.String())
	assert.True(t, manifest.Deps[1].Copy)
}

func TestParse_PreservesDeclaredOrder(t *testing.T) {
	content := `
name: ordered
deps:
  zeta:
    filepath: /src/zeta
  alpha:
    filepath: /src/alpha
  mid:
    filepath: /src/mid
`
	manifest, err := config.Parse([]byte(content), "ugle.yaml")
	require.NoError(t, err)

	names := make([]string, 0, len(manifest.Deps))
	for _, dep := range manifest.Deps {
		names = append(names, dep.Name.String())
	}
	assert.Equal(t, []string{"zeta", "alpha", "mid"}, names)
}

func TestParse_MissingName(t *testing.T) {
	_, err := config.Parse([]byte("deps: {}"), "ugle.yaml")
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInvalidManifest))
}

func TestParse_MissingDepFilepath(t *testing.T) {
	content := `
name: myenv
deps:
  mylib:
    url: git@example.com:mylib.git
`
	_, err := config.Parse([]byte(content), "ugle.yaml")
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInvalidManifest))
}

func TestParse_SpackSectionRequiresLockfile(t *testing.T) {
	content := `
name: myenv
spack: {}
`
	_, err := config.Parse([]byte(content), "ugle.yaml")
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInvalidManifest))
}

func TestParse_NoDeps(t *testing.T) {
	manifest, err := config.Parse([]byte("name: bare"), "ugle.yaml")
	require.NoError(t, err)
	assert.Empty(t, manifest.Deps)
}

func TestParse_MalformedYAML(t *testing.T) {
	_, err := config.Parse([]byte("name: [unclosed"), "ugle.yaml")
	require.Error(t, err)
}
