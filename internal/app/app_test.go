package app_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/ugle/internal/app"
	"go.trai.ch/ugle/internal/core/domain"
	"go.trai.ch/ugle/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

func TestSnapshot_PreflightRejectsMissingTool(t *testing.T) {
	ctrl := gomock.NewController(t)
	runner := mocks.NewMockRunner(ctrl)
	loader := mocks.NewMockManifestLoader(ctrl)
	logger := mocks.NewMockLogger(ctrl)

	runner.EXPECT().LookPath("git").Return(nil)
	runner.EXPECT().LookPath("cp").Return(nil)
	runner.EXPECT().LookPath("apt-cache").Return(nil)
	runner.EXPECT().LookPath("dpkg-repack").Return(errors.New("not found"))

	a := app.New(loader, nil, nil, runner, logger)
	_, err := a.Snapshot(context.Background(), "ugle.yaml")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrToolMissing)
}

func TestSnapshot_LoaderErrorStopsRun(t *testing.T) {
	ctrl := gomock.NewController(t)
	runner := mocks.NewMockRunner(ctrl)
	loader := mocks.NewMockManifestLoader(ctrl)
	logger := mocks.NewMockLogger(ctrl)

	runner.EXPECT().LookPath(gomock.Any()).Return(nil).Times(4)
	loader.EXPECT().Load("broken.yaml").Return(nil, domain.ErrInvalidManifest)

	a := app.New(loader, nil, nil, runner, logger)
	_, err := a.Snapshot(context.Background(), "broken.yaml")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidManifest)
}

func TestCheckout_PreflightRejectsMissingTool(t *testing.T) {
	ctrl := gomock.NewController(t)
	runner := mocks.NewMockRunner(ctrl)
	loader := mocks.NewMockManifestLoader(ctrl)
	logger := mocks.NewMockLogger(ctrl)

	// Checkout requires the same tool set as snapshot: a missing
	// dpkg-repack is fatal before the transaction starts.
	runner.EXPECT().LookPath("git").Return(nil)
	runner.EXPECT().LookPath("cp").Return(nil)
	runner.EXPECT().LookPath("apt-cache").Return(nil)
	runner.EXPECT().LookPath("dpkg-repack").Return(errors.New("not found"))

	a := app.New(loader, nil, nil, runner, logger)
	_, err := a.Checkout(context.Background(), "env.zip", app.CheckoutOptions{})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrToolMissing)
}
