// Package closure builds the transitive OS package dependency closure and
// repacks every member into a portable artifact.
package closure

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"go.trai.ch/ugle/internal/core/domain"
	"go.trai.ch/ugle/internal/core/ports"
	"go.trai.ch/zerr"
)

// OrderFile is the name of the install-order file written next to the
// artifacts.
const OrderFile = "deps.txt"

// Builder discovers, repacks, and orders the package closure.
type Builder struct {
	pm     ports.PackageManager
	hasher ports.FileHasher
	logger ports.Logger
}

// NewBuilder creates a new Builder.
func NewBuilder(pm ports.PackageManager, hasher ports.FileHasher, logger ports.Logger) *Builder {
	return &Builder{pm: pm, hasher: hasher, logger: logger}
}

// Build walks the dependency frontier from the seed packages, repacks every
// visited package into artifactDir, and produces a deterministic install
// order. A single package failing to repack is recorded and skipped, never
// fatal; discovery continues through it so the rest of the closure is still
// captured.
func (b *Builder) Build(ctx context.Context, seeds []string, artifactDir string) (*domain.Closure, error) {
	result := &domain.Closure{
		Artifacts: make(map[string]string),
		Graph:     domain.NewArtifactGraph(),
		Checksums: make(map[string]string),
	}

	depsOf := make(map[string][]string)
	failed := make(map[string]bool)
	visited := make(map[string]bool)

	frontier := make([]string, 0, len(seeds))
	frontier = append(frontier, seeds...)

	for len(frontier) > 0 {
		pkg := frontier[0]
		frontier = frontier[1:]
		if visited[pkg] {
			continue
		}
		visited[pkg] = true

		deps, err := b.pm.InstalledDepends(ctx, pkg)
		if err != nil {
			return nil, zerr.With(zerr.Wrap(err, "dependency query failed"), "package", pkg)
		}
		depsOf[pkg] = deps
		frontier = append(frontier, deps...)

		b.logger.Debug("repacking " + pkg)
		artifact, err := b.pm.Repack(ctx, pkg, artifactDir)
		if err != nil {
			b.logger.Warn("could not repack " + pkg + ": " + err.Error())
			failed[pkg] = true
			result.Failures = append(result.Failures, domain.RepackFailure{
				Package: pkg,
				Reason:  err.Error(),
			})
			continue
		}
		result.Artifacts[pkg] = artifact

		sum, err := b.hasher.HashFile(filepath.Join(artifactDir, artifact))
		if err != nil {
			return nil, err
		}
		result.Checksums[artifact] = sum
	}

	if err := b.translate(result, depsOf, failed); err != nil {
		return nil, err
	}

	order, err := result.Graph.Sort()
	if err != nil {
		return nil, err
	}
	result.Order = order

	if err := writeOrderFile(artifactDir, order); err != nil {
		return nil, err
	}
	return result, nil
}

// translate reshapes the graph from package-name keys and edges to artifact
// filenames. Failed packages have no artifact and are dropped from the graph;
// a package that is neither repacked nor failed means visitation and
// translation disagree, which is an internal error.
func (b *Builder) translate(result *domain.Closure, depsOf map[string][]string, failed map[string]bool) error {
	for pkg, deps := range depsOf {
		if failed[pkg] {
			continue
		}
		artifact, ok := result.Artifacts[pkg]
		if !ok {
			return zerr.With(zerr.Wrap(domain.ErrClosureInconsistent, "visited package has no artifact"), "package", pkg)
		}

		edges := make([]domain.InternedString, 0, len(deps))
		for _, dep := range deps {
			if failed[dep] {
				continue
			}
			depArtifact, ok := result.Artifacts[dep]
			if !ok {
				err := zerr.With(zerr.Wrap(domain.ErrClosureInconsistent, "dependency edge points at a package with no artifact"), "package", dep)
				return zerr.With(err, "dependent", pkg)
			}
			edges = append(edges, domain.NewInternedString(depArtifact))
		}
		result.Graph.Add(domain.NewInternedString(artifact), edges)
	}
	return nil
}

// writeOrderFile persists the install order as a comma-joined list so the
// installer helper can replay it without parsing the lockfile.
func writeOrderFile(artifactDir string, order []string) error {
	path := filepath.Join(artifactDir, OrderFile)
	if err := os.WriteFile(path, []byte(strings.Join(order, ",")), 0o644); err != nil { //nolint:gosec // world-readable order file
		return zerr.With(zerr.Wrap(err, "failed to write install order"), "path", path)
	}
	return nil
}
