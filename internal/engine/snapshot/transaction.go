// Package snapshot implements the transactional build of a snapshot archive.
package snapshot

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"go.trai.ch/ugle/internal/core/domain"
	"go.trai.ch/ugle/internal/core/ports"
	"go.trai.ch/ugle/internal/engine/closure"
	"go.trai.ch/ugle/internal/engine/locator"
	"go.trai.ch/zerr"
)

// Transaction captures an environment into a single archive. The staging
// directory it creates is exclusively owned for the transaction's lifetime
// and removed on every exit path; a failed snapshot never leaves a half-built
// tree on disk.
type Transaction struct {
	locator   *locator.Locator
	closure   *closure.Builder
	copier    ports.TreeCopier
	archiver  ports.Archiver
	renderer  ports.EnvRenderer
	confirmer ports.Confirmer
	telemetry ports.Telemetry
	logger    ports.Logger

	now func() time.Time
}

// NewTransaction creates a snapshot Transaction.
func NewTransaction(
	loc *locator.Locator,
	builder *closure.Builder,
	copier ports.TreeCopier,
	archiver ports.Archiver,
	renderer ports.EnvRenderer,
	confirmer ports.Confirmer,
	telemetry ports.Telemetry,
	logger ports.Logger,
) *Transaction {
	return &Transaction{
		locator:   loc,
		closure:   builder,
		copier:    copier,
		archiver:  archiver,
		renderer:  renderer,
		confirmer: confirmer,
		telemetry: telemetry,
		logger:    logger,
		now:       time.Now,
	}
}

// SetClock overrides the time source used for archive naming. Used by tests.
func (t *Transaction) SetClock(now func() time.Time) {
	t.now = now
}

// Run executes the snapshot as one unit and returns the archive path.
func (t *Transaction) Run(ctx context.Context, manifest *domain.Manifest, manifestPath string) (string, error) {
	if err := manifest.Validate(); err != nil {
		return "", err
	}

	absManifest, err := filepath.Abs(manifestPath)
	if err != nil {
		return "", zerr.Wrap(err, "failed to resolve manifest path")
	}
	workDir := filepath.Dir(absManifest)

	staging := filepath.Join(workDir, "tmp-"+uuid.NewString())
	if err := os.Mkdir(staging, 0o755); err != nil {
		return "", zerr.With(zerr.Wrap(err, "failed to create staging directory"), "path", staging)
	}
	// The staging directory is transient; it goes away whether the run
	// succeeds, fails, or panics. An already produced archive is left alone.
	defer func() {
		if rmErr := os.RemoveAll(staging); rmErr != nil {
			t.logger.Warn("failed to clean staging directory " + staging + ": " + rmErr.Error())
		}
	}()

	archivePath, err := t.build(ctx, manifest, absManifest, workDir, staging)
	if err != nil {
		return "", err
	}
	return archivePath, nil
}

func (t *Transaction) build(ctx context.Context, manifest *domain.Manifest, manifestPath, workDir, staging string) (string, error) {
	lock := &domain.Lockfile{
		Name: manifest.Name,
		Deps: make(map[string]domain.DepRecord, len(manifest.Deps)),
	}

	if manifest.SpackLockfile != "" {
		if err := t.embedSpack(manifest, workDir, lock); err != nil {
			return "", err
		}
	}

	for _, dep := range manifest.Deps {
		if err := t.recordDep(ctx, dep, workDir, staging, lock); err != nil {
			return "", err
		}
	}

	if len(manifest.AptPackages) > 0 {
		if err := t.buildClosure(ctx, manifest.AptPackages, staging, lock); err != nil {
			return "", err
		}
	}

	tmpl := t.renderer.Templates()
	lock.DockerHead = tmpl.DockerHead
	lock.DockerTail = tmpl.DockerTail
	lock.DockerCompose = tmpl.DockerCompose

	if err := t.writeLockfile(lock, staging); err != nil {
		return "", err
	}
	if err := copyFile(manifestPath, filepath.Join(staging, domain.EmbeddedManifestName)); err != nil {
		return "", err
	}

	return t.archive(manifest.Name, workDir, staging)
}

// embedSpack resolves the referenced package-manager lockfile and embeds its
// content verbatim.
func (t *Transaction) embedSpack(manifest *domain.Manifest, workDir string, lock *domain.Lockfile) error {
	path := absolutePath(manifest.SpackLockfile, workDir)
	data, err := os.ReadFile(path) //nolint:gosec // path comes from the manifest
	if err != nil {
		readErr := zerr.With(zerr.Wrap(domain.ErrNotFound, "spack lockfile is not readable"), "file", path)
		return zerr.With(readErr, "field", "spack.lockfile")
	}
	if !json.Valid(data) {
		return zerr.With(zerr.New("spack lockfile is not valid JSON"), "file", path)
	}
	t.logger.Info("embedding spack lockfile " + path)
	lock.Spack = json.RawMessage(data)
	return nil
}

// recordDep captures one declared dependency: copy-mode trees are embedded
// verbatim in the staging directory, everything else is pinned by commit.
func (t *Transaction) recordDep(ctx context.Context, dep domain.ManifestDep, workDir, staging string, lock *domain.Lockfile) error {
	name := dep.Name.String()
	ctx, vertex := t.telemetry.Record(ctx, "snapshot:"+name)

	err := t.recordDepInner(ctx, dep, workDir, staging, lock)
	vertex.Complete(err)
	return err
}

func (t *Transaction) recordDepInner(ctx context.Context, dep domain.ManifestDep, workDir, staging string, lock *domain.Lockfile) error {
	name := dep.Name.String()
	path := absolutePath(dep.Filepath, workDir)

	info, err := os.Stat(path)
	if err != nil {
		notFound := zerr.With(zerr.Wrap(domain.ErrNotFound, "dependency path does not exist"), "dependency", name)
		return zerr.With(notFound, "filepath", path)
	}
	if !info.IsDir() {
		invalid := zerr.With(zerr.Wrap(domain.ErrInvalidManifest, "dependency path is not a directory"), "dependency", name)
		return zerr.With(invalid, "reason", "filepath is not a directory")
	}

	if dep.Copy {
		t.logger.Info("embedding " + name + " by copy from " + path)
		if err := t.copier.CopyTree(ctx, path, filepath.Join(staging, name)); err != nil {
			return err
		}
		lock.Deps[name] = domain.NewCopyRecord()
		return nil
	}

	disc, err := t.locator.Discover(ctx, path, dep.URL)
	if err != nil {
		return err
	}
	if disc.Dirty {
		t.logger.Warn("working tree of " + path + " is not clean; only committed changes are captured:\n" + disc.Status)
		if !t.confirmer.Confirm(ports.ConfirmDirtyWorkingTree, path) {
			dirtyErr := zerr.With(zerr.New("snapshot declined for dirty working tree"), "dependency", name)
			return zerr.With(dirtyErr, "filepath", path)
		}
	}
	t.logger.Info("pinning " + name + " at " + disc.CommitHash)
	lock.Deps[name] = domain.NewPinnedRecord(path, disc.CommitHash, disc.RemoteURL)
	return nil
}

// buildClosure runs the package closure builder and folds its result into
// the lockfile.
func (t *Transaction) buildClosure(ctx context.Context, seeds []string, staging string, lock *domain.Lockfile) error {
	ctx, vertex := t.telemetry.Record(ctx, "snapshot:apt-closure")

	err := func() error {
		aptDir := filepath.Join(staging, domain.AptFolderName)
		if err := os.Mkdir(aptDir, 0o755); err != nil {
			return zerr.With(zerr.Wrap(err, "failed to create artifact directory"), "path", aptDir)
		}

		result, err := t.closure.Build(ctx, seeds, aptDir)
		if err != nil {
			return err
		}

		for _, failure := range result.Failures {
			t.logger.Warn("package " + failure.Package + " could not be repacked; supply it by hand")
		}

		script := filepath.Join(aptDir, domain.InstallScriptName)
		if err := os.WriteFile(script, t.renderer.InstallScript(), 0o755); err != nil { //nolint:gosec // installer must be executable
			return zerr.With(zerr.Wrap(err, "failed to write install script"), "path", script)
		}

		lock.Apt = &domain.AptBundle{
			Folder:    domain.AptFolderName,
			Errors:    result.Failures,
			Checksums: result.Checksums,
		}
		return nil
	}()

	vertex.Complete(err)
	return err
}

func (t *Transaction) writeLockfile(lock *domain.Lockfile, staging string) error {
	data, err := json.Marshal(lock)
	if err != nil {
		return zerr.Wrap(err, "failed to serialize lockfile")
	}
	path := filepath.Join(staging, domain.LockfileName)
	if err := os.WriteFile(path, data, 0o644); err != nil { //nolint:gosec // lockfile is not sensitive
		return zerr.With(zerr.Wrap(err, "failed to write lockfile"), "path", path)
	}
	return nil
}

// archive writes the staging tree into <name>-<date>.zip beside the
// manifest, replacing any previous archive of the same name.
func (t *Transaction) archive(name, workDir, staging string) (string, error) {
	filename := name + "-" + t.now().Format("2006-01-02") + ".zip"
	archivePath := filepath.Join(workDir, filename)

	if _, err := os.Stat(archivePath); err == nil {
		t.logger.Warn(archivePath + " already exists and will be overwritten")
		if !t.confirmer.Confirm(ports.ConfirmOverwriteArchive, archivePath) {
			return "", zerr.With(zerr.New("snapshot declined to overwrite archive"), "path", archivePath)
		}
	}

	if err := t.archiver.Create(staging, archivePath); err != nil {
		return "", err
	}
	t.logger.Info("snapshot stored in " + archivePath)
	return archivePath, nil
}

// absolutePath resolves path against workDir unless it is already absolute.
// A leading ~ is expanded to the user's home directory.
func absolutePath(path, workDir string) string {
	if len(path) > 0 && path[0] == '~' {
		if home, err := os.UserHomeDir(); err == nil {
			path = filepath.Join(home, path[1:])
		}
	}
	if filepath.IsAbs(path) {
		return filepath.Clean(path)
	}
	return filepath.Join(workDir, path)
}

func copyFile(src, dest string) error {
	data, err := os.ReadFile(src) //nolint:gosec // manifest path supplied by user
	if err != nil {
		return zerr.With(zerr.Wrap(err, "failed to read file"), "path", src)
	}
	if err := os.WriteFile(dest, data, 0o644); err != nil { //nolint:gosec // archived manifest copy
		return zerr.With(zerr.Wrap(err, "failed to write file"), "path", dest)
	}
	return nil
}
