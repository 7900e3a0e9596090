// Package checkout implements the transactional restore of a snapshot.
package checkout

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"go.trai.ch/ugle/internal/core/domain"
	"go.trai.ch/ugle/internal/core/ports"
	"go.trai.ch/ugle/internal/engine/locator"
	"go.trai.ch/zerr"
)

// Transaction reconstructs an environment from an archive or a bare
// lockfile. On any failure after the destination is created, the whole
// destination tree is removed before the error propagates: a failed checkout
// never leaves a partially restored environment.
type Transaction struct {
	locator   *locator.Locator
	loader    ports.ManifestLoader
	copier    ports.TreeCopier
	archiver  ports.Archiver
	renderer  ports.EnvRenderer
	telemetry ports.Telemetry
	logger    ports.Logger
}

// NewTransaction creates a checkout Transaction.
func NewTransaction(
	loc *locator.Locator,
	loader ports.ManifestLoader,
	copier ports.TreeCopier,
	archiver ports.Archiver,
	renderer ports.EnvRenderer,
	telemetry ports.Telemetry,
	logger ports.Logger,
) *Transaction {
	return &Transaction{
		locator:   loc,
		loader:    loader,
		copier:    copier,
		archiver:  archiver,
		renderer:  renderer,
		telemetry: telemetry,
		logger:    logger,
	}
}

// Run restores the snapshot at source (a .zip archive or a lockfile) into
// destination and returns the destination path. An empty destination
// defaults to ~/.ugle/<archive-stem>. With force set, a pre-existing
// destination is removed first.
func (t *Transaction) Run(ctx context.Context, source, destination string, force bool) (string, error) {
	absSource, err := filepath.Abs(source)
	if err != nil {
		return "", zerr.Wrap(err, "failed to resolve source path")
	}
	if _, err := os.Stat(absSource); err != nil {
		return "", zerr.With(zerr.Wrap(domain.ErrNotFound, "checkout source does not exist"), "file", absSource)
	}

	dest, err := t.resolveDestination(absSource, destination)
	if err != nil {
		return "", err
	}

	// The destination must be clean before anything is created; failing here
	// needs no rollback.
	if _, err := os.Stat(dest); err == nil {
		if !force {
			return "", zerr.With(zerr.Wrap(domain.ErrDestinationExists, "destination already exists, use force to replace it"), "path", dest)
		}
		t.logger.Warn("removing existing destination " + dest)
		if err := os.RemoveAll(dest); err != nil {
			return "", zerr.With(zerr.Wrap(err, "failed to remove destination"), "path", dest)
		}
	}

	if err := t.restore(ctx, absSource, dest); err != nil {
		if rmErr := os.RemoveAll(dest); rmErr != nil {
			t.logger.Warn("failed to roll back destination " + dest + ": " + rmErr.Error())
		}
		return "", err
	}
	return dest, nil
}

func (t *Transaction) resolveDestination(source, destination string) (string, error) {
	if destination != "" {
		return filepath.Abs(destination)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", zerr.Wrap(err, "failed to resolve home directory")
	}
	stem := strings.TrimSuffix(filepath.Base(source), filepath.Ext(source))
	return filepath.Join(home, ".ugle", stem), nil
}

// restore performs every step that runs after the destination exists; its
// caller owns the rollback.
func (t *Transaction) restore(ctx context.Context, source, dest string) error {
	if err := t.materializeRoot(source, dest); err != nil {
		return err
	}

	lock, err := t.readLockfile(dest)
	if err != nil {
		return err
	}

	// The embedded manifest, when present, supplies alternate dependency
	// paths for trees that have moved since the snapshot was taken.
	manifest := t.readEmbeddedManifest(dest)

	if err := t.restoreDeps(ctx, lock, manifest, dest); err != nil {
		return err
	}

	if err := t.writeEnvFiles(lock, dest); err != nil {
		return err
	}

	if err := t.emitSpack(lock, dest); err != nil {
		return err
	}

	t.printDockerInstructions(dest)
	return nil
}

// materializeRoot unpacks the archive into the destination, or seeds the
// destination with the lockfile when operating without an archive.
func (t *Transaction) materializeRoot(source, dest string) error {
	if strings.EqualFold(filepath.Ext(source), ".zip") {
		t.logger.Info("unpacking " + source + " into " + dest)
		return t.archiver.Unpack(source, dest)
	}

	if err := os.MkdirAll(dest, 0o755); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to create destination"), "path", dest)
	}
	data, err := os.ReadFile(source) //nolint:gosec // lockfile path supplied by user
	if err != nil {
		return zerr.With(zerr.Wrap(err, "failed to read lockfile"), "path", source)
	}
	target := filepath.Join(dest, domain.LockfileName)
	if err := os.WriteFile(target, data, 0o644); err != nil { //nolint:gosec // lockfile is not sensitive
		return zerr.With(zerr.Wrap(err, "failed to write lockfile"), "path", target)
	}
	return nil
}

func (t *Transaction) readLockfile(dest string) (*domain.Lockfile, error) {
	path := filepath.Join(dest, domain.LockfileName)
	data, err := os.ReadFile(path) //nolint:gosec // path inside owned destination
	if err != nil {
		return nil, zerr.With(zerr.Wrap(domain.ErrNotFound, "destination carries no lockfile"), "file", path)
	}
	var lock domain.Lockfile
	if err := json.Unmarshal(data, &lock); err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to parse lockfile"), "path", path)
	}
	return &lock, nil
}

func (t *Transaction) readEmbeddedManifest(dest string) *domain.Manifest {
	path := filepath.Join(dest, domain.EmbeddedManifestName)
	if _, err := os.Stat(path); err != nil {
		return nil
	}
	manifest, err := t.loader.Load(path)
	if err != nil {
		t.logger.Warn("ignoring unreadable embedded manifest: " + err.Error())
		return nil
	}
	return manifest
}

// restoreOrder returns dependency names in the embedded manifest's declared
// order when one is available. Names only the lockfile knows follow in
// sorted order, which also covers checkouts without a manifest.
func restoreOrder(lock *domain.Lockfile, manifest *domain.Manifest) []string {
	sorted := lock.DepNames()
	if manifest == nil {
		return sorted
	}

	seen := make(map[string]bool, len(sorted))
	order := make([]string, 0, len(sorted))
	for _, dep := range manifest.Deps {
		name := dep.Name.String()
		if _, ok := lock.Deps[name]; ok && !seen[name] {
			seen[name] = true
			order = append(order, name)
		}
	}
	for _, name := range sorted {
		if !seen[name] {
			order = append(order, name)
		}
	}
	return order
}

// restoreDeps resolves and materializes every pinned dependency, then
// applies the recorded reset/checkout steps as one batch. Copy records need
// no action: their trees were materialized by unpacking.
func (t *Transaction) restoreDeps(ctx context.Context, lock *domain.Lockfile, manifest *domain.Manifest, dest string) error {
	var plan []locator.Step

	for _, name := range restoreOrder(lock, manifest) {
		record := lock.Deps[name]
		if err := record.Validate(); err != nil {
			return zerr.With(err, "dependency", name)
		}
		if record.Copy {
			continue
		}

		ctx, vertex := t.telemetry.Record(ctx, "checkout:"+name)
		steps, err := t.restoreDep(ctx, name, record, manifest, dest)
		vertex.Complete(err)
		if err != nil {
			return err
		}
		plan = append(plan, steps...)
	}

	return t.locator.Apply(ctx, plan)
}

func (t *Transaction) restoreDep(ctx context.Context, name string, record domain.DepRecord, manifest *domain.Manifest, dest string) ([]locator.Step, error) {
	target := filepath.Join(dest, name)
	if _, err := os.Stat(target); err == nil {
		conflict := zerr.With(zerr.New("dependency path already exists"), "dependency", name)
		return nil, zerr.With(conflict, "path", target)
	}

	candidates := []string{record.Filepath}
	if manifest != nil {
		if dep, ok := manifest.Dep(name); ok && dep.Filepath != "" {
			candidates = append(candidates, dep.Filepath)
		}
	}

	t.logger.Info("restoring " + name + " at " + record.Hash)
	resolution, err := t.locator.Locate(ctx, locator.Request{
		CommitHash:       record.Hash,
		CandidateSources: candidates,
		RemoteURL:        record.URL,
		Destination:      target,
	})
	if err != nil {
		return nil, zerr.With(err, "dependency", name)
	}

	if resolution.Action == locator.ActionCopyFromSource {
		if err := t.copier.CopyTree(ctx, resolution.SourcePath, target); err != nil {
			return nil, err
		}
	}

	return t.locator.PlanRestore(ctx, target, record.Hash)
}

func (t *Transaction) writeEnvFiles(lock *domain.Lockfile, dest string) error {
	files := t.renderer.Render(ports.EnvTemplates{
		DockerHead:    lock.DockerHead,
		DockerTail:    lock.DockerTail,
		DockerCompose: lock.DockerCompose,
	}, lock.DepNames(), dest)

	dockerfile := filepath.Join(dest, domain.DockerfileName)
	if err := os.WriteFile(dockerfile, []byte(files.Dockerfile), 0o644); err != nil { //nolint:gosec // generated build descriptor
		return zerr.With(zerr.Wrap(err, "failed to write Dockerfile"), "path", dockerfile)
	}
	compose := filepath.Join(dest, domain.ComposeName)
	if err := os.WriteFile(compose, []byte(files.DockerCompose), 0o644); err != nil { //nolint:gosec // generated build descriptor
		return zerr.With(zerr.Wrap(err, "failed to write docker-compose file"), "path", compose)
	}
	return nil
}

// emitSpack re-emits the embedded package-manager lockfile and tells the
// operator how to consume it; no package manager is invoked directly.
func (t *Transaction) emitSpack(lock *domain.Lockfile, dest string) error {
	if len(lock.Spack) == 0 {
		return nil
	}
	path := filepath.Join(dest, domain.SpackLockName)
	if err := os.WriteFile(path, lock.Spack, 0o644); err != nil { //nolint:gosec // lockfile is not sensitive
		return zerr.With(zerr.Wrap(err, "failed to write spack lockfile"), "path", path)
	}

	t.logger.Info("to create and activate the spack environment:\n" +
		"  $ cd " + dest + "\n" +
		"  $ spack env create <name> " + domain.SpackLockName + "\n" +
		"  $ spack env activate <name>\n" +
		"  $ spack install")
	return nil
}

func (t *Transaction) printDockerInstructions(dest string) {
	t.logger.Info("to run the container:\n" +
		"  $ cd " + dest + "\n" +
		"  $ docker build . -t <image name>\n" +
		"  [ update " + domain.ComposeName + " with the correct names ]\n" +
		"  $ docker compose up -d\n" +
		"  $ docker compose exec <service name> bash")
}
