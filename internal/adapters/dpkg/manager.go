// Package dpkg implements the package-manager port on the Debian tooling:
// apt-cache for dependency queries and dpkg-repack for artifact creation.
package dpkg

import (
	"context"
	"path/filepath"
	"regexp"
	"strings"

	"go.trai.ch/ugle/internal/core/domain"
	"go.trai.ch/ugle/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.PackageManager = (*Manager)(nil)

var (
	// dependsPattern captures the relations that are installed by default.
	dependsPattern = regexp.MustCompile(`(?m)(?:Depends|PreDepends|Recommends): (.*)$`)

	// artifactPattern captures the artifact path from dpkg-repack's
	// "dpkg-deb: building package 'x' in './x.deb'" line.
	artifactPattern = regexp.MustCompile(`dpkg-deb: building package '(?:.+)' in '(.+)'`)
)

// Manager implements ports.PackageManager.
type Manager struct {
	runner ports.Runner
}

// NewManager creates a new Manager.
func NewManager(runner ports.Runner) *Manager {
	return &Manager{runner: runner}
}

// InstalledDepends returns the direct dependencies of an installed package.
// Suggests, breaks, replaces, enhances, and conflicts relations are excluded;
// depends, pre-depends, and recommends are all installed by default and form
// the discovery frontier.
func (m *Manager) InstalledDepends(ctx context.Context, pkg string) ([]string, error) {
	result, err := m.runner.Run(ctx, ports.Command{
		Name: "apt-cache",
		Args: []string{
			"depends",
			"--installed",
			"--no-suggests",
			"--no-breaks",
			"--no-replaces",
			"--no-enhances",
			"--no-conflicts",
			pkg,
		},
	})
	if err != nil {
		return nil, err
	}
	if !result.Succeeded() {
		queryErr := zerr.With(zerr.Wrap(domain.ErrToolFailed, "dependency query failed"), "command", "apt-cache depends")
		queryErr = zerr.With(queryErr, "package", pkg)
		return nil, zerr.With(queryErr, "stderr", strings.TrimSpace(result.Stderr))
	}

	matches := dependsPattern.FindAllStringSubmatch(result.Stdout, -1)
	deps := make([]string, 0, len(matches))
	for _, match := range matches {
		dep := strings.TrimSpace(match[1])
		// apt-cache marks virtual packages with angle brackets; they have no
		// installed artifact of their own.
		if dep == "" || strings.HasPrefix(dep, "<") {
			continue
		}
		deps = append(deps, dep)
	}
	return deps, nil
}

// Repack rebuilds the installed package into a .deb file inside dir and
// returns the artifact filename. dpkg-repack reports warnings on stderr and
// stays silent on stdout when it fails, so an empty stdout is the failure
// signal.
func (m *Manager) Repack(ctx context.Context, pkg, dir string) (string, error) {
	result, err := m.runner.Run(ctx, ports.Command{
		Name: "dpkg-repack",
		Args: []string{pkg},
		Dir:  dir,
	})
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(result.Stdout) == "" {
		repackErr := zerr.With(zerr.Wrap(domain.ErrToolFailed, "repack produced no output"), "command", "dpkg-repack")
		repackErr = zerr.With(repackErr, "package", pkg)
		return "", zerr.With(repackErr, "stderr", strings.TrimSpace(result.Stderr))
	}

	match := artifactPattern.FindStringSubmatch(result.Stdout)
	if match == nil {
		parseErr := zerr.With(zerr.Wrap(domain.ErrToolFailed, "repack output names no artifact"), "command", "dpkg-repack")
		parseErr = zerr.With(parseErr, "package", pkg)
		return "", zerr.With(parseErr, "reason", "artifact path missing from output")
	}

	return filepath.Base(match[1]), nil
}
