package domain_test

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/ugle/internal/core/domain"
)

func TestManifest_Validate(t *testing.T) {
	valid := &domain.Manifest{
		Name: "myenv",
		Deps: []domain.ManifestDep{
			{Name: domain.NewInternedString("mylib"), Filepath: "../mylib"},
		},
	}
	assert.NoError(t, valid.Validate())

	noName := &domain.Manifest{}
	assert.True(t, errors.Is(noName.Validate(), domain.ErrInvalidManifest))

	noFilepath := &domain.Manifest{
		Name: "myenv",
		Deps: []domain.ManifestDep{{Name: domain.NewInternedString("mylib")}},
	}
	assert.True(t, errors.Is(noFilepath.Validate(), domain.ErrInvalidManifest))
}

func TestManifest_Dep(t *testing.T) {
	manifest := &domain.Manifest{
		Name: "myenv",
		Deps: []domain.ManifestDep{
			{Name: domain.NewInternedString("mylib"), Filepath: "../mylib"},
		},
	}

	dep, ok := manifest.Dep("mylib")
	require.True(t, ok)
	assert.Equal(t, "../mylib", dep.Filepath)

	_, ok = manifest.Dep("absent")
	assert.False(t, ok)
}

func TestInternedString_Equality(t *testing.T) {
	a := domain.NewInternedString("mylib")
	b := domain.NewInternedString("mylib")
	assert.Equal(t, a, b)
	assert.Equal(t, "mylib", a.String())

	var zero domain.InternedString
	assert.Equal(t, "", zero.String())
}

func TestInternedString_JSONRoundTrip(t *testing.T) {
	type wrapper struct {
		Name domain.InternedString `json:"name"`
	}

	data, err := json.Marshal(wrapper{Name: domain.NewInternedString("mylib")})
	require.NoError(t, err)
	assert.Equal(t, `{"name":"mylib"}`, string(data))

	var parsed wrapper
	require.NoError(t, json.Unmarshal(data, &parsed))
	assert.Equal(t, "mylib", parsed.Name.String())
}
