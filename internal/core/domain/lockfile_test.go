package domain_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/ugle/internal/core/domain"
)

func TestDepRecord_Validate(t *testing.T) {
	tests := []struct {
		name    string
		record  domain.DepRecord
		wantErr bool
	}{
		{
			name:   "copy record",
			record: domain.NewCopyRecord(),
		},
		{
			name:   "pinned record",
			record: domain.NewPinnedRecord("/src/lib", "abc123", "git@example.com:lib.git"),
		},
		{
			name:   "pinned record without url",
			record: domain.NewPinnedRecord("/src/lib", "abc123", ""),
		},
		{
			name:    "copy record carrying commit data",
			record:  domain.DepRecord{Copy: true, Hash: "abc123"},
			wantErr: true,
		},
		{
			name:    "pinned record missing hash",
			record:  domain.DepRecord{Filepath: "/src/lib"},
			wantErr: true,
		},
		{
			name:    "pinned record missing filepath",
			record:  domain.DepRecord{Hash: "abc123"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.record.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestRepackFailure_JSONShape(t *testing.T) {
	failure := domain.RepackFailure{Package: "libfoo", Reason: "no such package"}

	data, err := json.Marshal(failure)
	require.NoError(t, err)
	assert.JSONEq(t, `["libfoo", "no such package"]`, string(data))

	var parsed domain.RepackFailure
	require.NoError(t, json.Unmarshal(data, &parsed))
	assert.Equal(t, failure, parsed)
}

func TestLockfile_DepNamesSorted(t *testing.T) {
	lock := &domain.Lockfile{
		Deps: map[string]domain.DepRecord{
			"zeta":  domain.NewCopyRecord(),
			"alpha": domain.NewCopyRecord(),
			"mid":   domain.NewCopyRecord(),
		},
	}
	assert.Equal(t, []string{"alpha", "mid", "zeta"}, lock.DepNames())
}

func TestLockfile_JSONRoundTrip(t *testing.T) {
	lock := &domain.Lockfile{
		Name: "myenv",
		Deps: map[string]domain.DepRecord{
			"lib":  domain.NewPinnedRecord("/src/lib", "deadbeef", "git@example.com:lib.git"),
			"data": domain.NewCopyRecord(),
		},
		Spack: json.RawMessage(`{"roots": []}`),
		Apt: &domain.AptBundle{
			Folder:    "apt",
			Errors:    []domain.RepackFailure{{Package: "libbar", Reason: "boom"}},
			Checksums: map[string]string{"libfoo_1.0_amd64.deb": "00ff00ff00ff00ff"},
		},
		DockerHead:    "FROM ubuntu\n",
		DockerTail:    "CMD bash\n",
		DockerCompose: "services: {}\n",
	}

	data, err := json.Marshal(lock)
	require.NoError(t, err)

	var parsed domain.Lockfile
	require.NoError(t, json.Unmarshal(data, &parsed))
	assert.Equal(t, lock.Name, parsed.Name)
	assert.Equal(t, lock.Deps, parsed.Deps)
	assert.JSONEq(t, string(lock.Spack), string(parsed.Spack))
	assert.Equal(t, lock.Apt, parsed.Apt)
	assert.Equal(t, lock.DockerCompose, parsed.DockerCompose)
}
