// Package app implements the application layer for ugle.
package app

import (
	"context"

	"go.trai.ch/ugle/internal/core/ports"
	"go.trai.ch/ugle/internal/engine/checkout"
	"go.trai.ch/ugle/internal/engine/snapshot"
	"go.trai.ch/zerr"
)

// App represents the main application logic.
type App struct {
	loader   ports.ManifestLoader
	snapshot *snapshot.Transaction
	checkout *checkout.Transaction
	runner   ports.Runner
	logger   ports.Logger
}

// New creates a new App instance.
func New(loader ports.ManifestLoader, snap *snapshot.Transaction, co *checkout.Transaction, runner ports.Runner, logger ports.Logger) *App {
	return &App{
		loader:   loader,
		snapshot: snap,
		checkout: co,
		runner:   runner,
		logger:   logger,
	}
}

// Snapshot captures the environment described by the manifest at
// manifestPath into an archive and returns the archive path.
func (a *App) Snapshot(ctx context.Context, manifestPath string) (string, error) {
	if err := a.preflight(requiredTools); err != nil {
		return "", err
	}

	manifest, err := a.loader.Load(manifestPath)
	if err != nil {
		return "", zerr.Wrap(err, "failed to load manifest")
	}

	archivePath, err := a.snapshot.Run(ctx, manifest, manifestPath)
	if err != nil {
		return "", zerr.Wrap(err, "snapshot failed")
	}

	a.logger.Info("snapshot written to " + archivePath)
	return archivePath, nil
}

// CheckoutOptions controls how a snapshot is restored.
type CheckoutOptions struct {
	// Destination is the checkout directory; empty selects the default
	// under ~/.ugle.
	Destination string
	// Force removes a pre-existing destination instead of failing.
	Force bool
}

// Checkout restores the snapshot at source and returns the destination path.
func (a *App) Checkout(ctx context.Context, source string, opts CheckoutOptions) (string, error) {
	if err := a.preflight(requiredTools); err != nil {
		return "", err
	}

	dest, err := a.checkout.Run(ctx, source, opts.Destination, opts.Force)
	if err != nil {
		return "", zerr.Wrap(err, "checkout failed")
	}

	a.logger.Info("environment checked out at " + dest)
	return dest, nil
}
