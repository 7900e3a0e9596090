package locator_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/ugle/internal/engine/locator"
	"go.uber.org/mock/gomock"
)

func TestPlanRestore_CleanTree(t *testing.T) {
	loc, vcs := newLocator(t)

	vcs.EXPECT().Status(gomock.Any(), "/dest/lib", true).Return("", nil)

	steps, err := loc.PlanRestore(context.Background(), "/dest/lib", "deadbeef")
	require.NoError(t, err)
	require.Len(t, steps, 1)
	assert.Equal(t, locator.StepCheckout, steps[0].Kind)
	assert.Equal(t, "deadbeef", steps[0].Ref)
}

func TestPlanRestore_DirtyTreeResetsFirst(t *testing.T) {
	loc, vcs := newLocator(t)

	vcs.EXPECT().Status(gomock.Any(), "/dest/lib", true).Return(" M main.go\n", nil)

	steps, err := loc.PlanRestore(context.Background(), "/dest/lib", "deadbeef")
	require.NoError(t, err)
	require.Len(t, steps, 2)
	assert.Equal(t, locator.StepResetHard, steps[0].Kind)
	assert.Equal(t, locator.StepCheckout, steps[1].Kind)
}

func TestApply_ExecutesStepsInOrder(t *testing.T) {
	loc, vcs := newLocator(t)

	gomock.InOrder(
		vcs.EXPECT().ResetHard(gomock.Any(), "/dest/a").Return(nil),
		vcs.EXPECT().Checkout(gomock.Any(), "/dest/a", "aaaa").Return(nil),
		vcs.EXPECT().Checkout(gomock.Any(), "/dest/b", "bbbb").Return(nil),
	)

	steps := []locator.Step{
		{Kind: locator.StepResetHard, Dir: "/dest/a"},
		{Kind: locator.StepCheckout, Dir: "/dest/a", Ref: "aaaa"},
		{Kind: locator.StepCheckout, Dir: "/dest/b", Ref: "bbbb"},
	}
	require.NoError(t, loc.Apply(context.Background(), steps))
}

func TestDiscover(t *testing.T) {
	loc, vcs := newLocator(t)

	vcs.EXPECT().Status(gomock.Any(), "/src/lib", false).Return("?? notes.txt\n", nil)
	vcs.EXPECT().Head(gomock.Any(), "/src/lib").Return("deadbeef", nil)
	vcs.EXPECT().RemoteURL(gomock.Any(), "/src/lib").Return("git@example.com:lib.git", nil)

	disc, err := loc.Discover(context.Background(), "/src/lib", "")
	require.NoError(t, err)
	assert.Equal(t, "deadbeef", disc.CommitHash)
	assert.Equal(t, "git@example.com:lib.git", disc.RemoteURL)
	assert.True(t, disc.Dirty)
}

func TestDiscover_ManifestURLWins(t *testing.T) {
	loc, vcs := newLocator(t)

	vcs.EXPECT().Status(gomock.Any(), "/src/lib", false).Return("", nil)
	vcs.EXPECT().Head(gomock.Any(), "/src/lib").Return("deadbeef", nil)
	// RemoteURL is not queried when the manifest supplies one.

	disc, err := loc.Discover(context.Background(), "/src/lib", "git@example.com:pinned.git")
	require.NoError(t, err)
	assert.Equal(t, "git@example.com:pinned.git", disc.RemoteURL)
	assert.False(t, disc.Dirty)
}
