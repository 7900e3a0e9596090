package closure_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/ugle/internal/core/domain"
	"go.trai.ch/ugle/internal/core/ports/mocks"
	"go.trai.ch/ugle/internal/engine/closure"
	"go.uber.org/mock/gomock"
)

type builderMocks struct {
	pm     *mocks.MockPackageManager
	hasher *mocks.MockFileHasher
}

func newBuilder(t *testing.T) (*closure.Builder, builderMocks) {
	t.Helper()
	ctrl := gomock.NewController(t)
	pm := mocks.NewMockPackageManager(ctrl)
	hasher := mocks.NewMockFileHasher(ctrl)
	logger := mocks.NewMockLogger(ctrl)
	logger.EXPECT().Debug(gomock.Any()).AnyTimes()
	logger.EXPECT().Warn(gomock.Any()).AnyTimes()
	return closure.NewBuilder(pm, hasher, logger), builderMocks{pm: pm, hasher: hasher}
}

func TestBuild_TransitiveClosure(t *testing.T) {
	builder, m := newBuilder(t)
	dir := t.TempDir()

	// curl -> libcurl4 -> libc6, plus curl -> libc6 directly.
	m.pm.EXPECT().InstalledDepends(gomock.Any(), "curl").Return([]string{"libcurl4", "libc6"}, nil)
	m.pm.EXPECT().InstalledDepends(gomock.Any(), "libcurl4").Return([]string{"libc6"}, nil)
	m.pm.EXPECT().InstalledDepends(gomock.Any(), "libc6").Return(nil, nil)

	for pkg, artifact := range map[string]string{
		"curl":     "curl_8.0_amd64.deb",
		"libcurl4": "libcurl4_8.0_amd64.deb",
		"libc6":    "libc6_2.39_amd64.deb",
	} {
		m.pm.EXPECT().Repack(gomock.Any(), pkg, dir).Return(artifact, nil)
		m.hasher.EXPECT().HashFile(filepath.Join(dir, artifact)).Return("feedface00000000", nil)
	}

	result, err := builder.Build(context.Background(), []string{"curl"}, dir)
	require.NoError(t, err)

	assert.Len(t, result.Artifacts, 3)
	assert.Empty(t, result.Failures)
	assert.Len(t, result.Checksums, 3)

	pos := make(map[string]int, len(result.Order))
	for i, name := range result.Order {
		pos[name] = i
	}
	assert.Less(t, pos["libc6_2.39_amd64.deb"], pos["libcurl4_8.0_amd64.deb"])
	assert.Less(t, pos["libcurl4_8.0_amd64.deb"], pos["curl_8.0_amd64.deb"])
}

func TestBuild_RepackFailureIsIsolated(t *testing.T) {
	builder, m := newBuilder(t)
	dir := t.TempDir()

	// app -> broken -> dep: the failing middle package is recorded and
	// skipped but discovery continues through it.
	m.pm.EXPECT().InstalledDepends(gomock.Any(), "app").Return([]string{"broken"}, nil)
	m.pm.EXPECT().InstalledDepends(gomock.Any(), "broken").Return([]string{"dep"}, nil)
	m.pm.EXPECT().InstalledDepends(gomock.Any(), "dep").Return(nil, nil)

	m.pm.EXPECT().Repack(gomock.Any(), "app", dir).Return("app_1.0_amd64.deb", nil)
	m.pm.EXPECT().Repack(gomock.Any(), "broken", dir).Return("", domain.ErrToolFailed)
	m.pm.EXPECT().Repack(gomock.Any(), "dep", dir).Return("dep_1.0_amd64.deb", nil)

	m.hasher.EXPECT().HashFile(gomock.Any()).Return("feedface00000000", nil).Times(2)

	result, err := builder.Build(context.Background(), []string{"app"}, dir)
	require.NoError(t, err)

	require.Len(t, result.Failures, 1)
	assert.Equal(t, "broken", result.Failures[0].Package)
	assert.Len(t, result.Artifacts, 2)
	assert.ElementsMatch(t, []string{"app_1.0_amd64.deb", "dep_1.0_amd64.deb"}, result.Order)
}

func TestBuild_QueryFailureIsFatal(t *testing.T) {
	builder, m := newBuilder(t)
	dir := t.TempDir()

	m.pm.EXPECT().InstalledDepends(gomock.Any(), "app").Return(nil, domain.ErrToolFailed)

	_, err := builder.Build(context.Background(), []string{"app"}, dir)
	require.ErrorIs(t, err, domain.ErrToolFailed)
}

func TestBuild_WritesOrderFile(t *testing.T) {
	builder, m := newBuilder(t)
	dir := t.TempDir()

	m.pm.EXPECT().InstalledDepends(gomock.Any(), "app").Return([]string{"dep"}, nil)
	m.pm.EXPECT().InstalledDepends(gomock.Any(), "dep").Return(nil, nil)
	m.pm.EXPECT().Repack(gomock.Any(), "app", dir).Return("app.deb", nil)
	m.pm.EXPECT().Repack(gomock.Any(), "dep", dir).Return("dep.deb", nil)
	m.hasher.EXPECT().HashFile(gomock.Any()).Return("feedface00000000", nil).Times(2)

	_, err := builder.Build(context.Background(), []string{"app"}, dir)
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(dir, closure.OrderFile))
	require.NoError(t, err)
	assert.Equal(t, "dep.deb,app.deb", string(data))
}

func TestBuild_SharedDependencyVisitedOnce(t *testing.T) {
	builder, m := newBuilder(t)
	dir := t.TempDir()

	// Both seeds depend on the same package; it is queried and repacked once.
	m.pm.EXPECT().InstalledDepends(gomock.Any(), "a").Return([]string{"shared"}, nil)
	m.pm.EXPECT().InstalledDepends(gomock.Any(), "b").Return([]string{"shared"}, nil)
	m.pm.EXPECT().InstalledDepends(gomock.Any(), "shared").Return(nil, nil).Times(1)

	m.pm.EXPECT().Repack(gomock.Any(), "a", dir).Return("a.deb", nil)
	m.pm.EXPECT().Repack(gomock.Any(), "b", dir).Return("b.deb", nil)
	m.pm.EXPECT().Repack(gomock.Any(), "shared", dir).Return("shared.deb", nil).Times(1)
	m.hasher.EXPECT().HashFile(gomock.Any()).Return("feedface00000000", nil).Times(3)

	result, err := builder.Build(context.Background(), []string{"a", "b"}, dir)
	require.NoError(t, err)
	assert.Len(t, result.Artifacts, 3)
}
