// Package domain contains the core domain models for environment snapshots:
// the user-authored manifest, the pinned lockfile, and the OS package closure.
package domain

import "go.trai.ch/zerr"

// Manifest is the user-authored, declarative description of an environment.
// It is read-only input: created by the user, consumed once per snapshot run.
type Manifest struct {
	// Name identifies the environment and names the produced archive.
	Name string

	// Deps maps dependency names to their declared source locations,
	// in the manifest's declared order.
	Deps []ManifestDep

	// SpackLockfile is the optional path to a package-manager lockfile to
	// embed verbatim. Relative paths are resolved against the manifest's
	// directory.
	SpackLockfile string

	// AptPackages is the optional seed list of installed OS packages whose
	// transitive closure is captured.
	AptPackages []string
}

// ManifestDep is a single declared dependency.
type ManifestDep struct {
	// Name is the dependency name; it becomes the subdirectory name inside
	// the archive and the checkout destination.
	Name InternedString

	// Filepath is the local path of the dependency tree.
	Filepath string

	// URL is the optional git remote used as a clone-of-last-resort when the
	// pinned commit cannot be found locally at checkout time.
	URL string

	// Copy marks the dependency for verbatim embedding instead of commit
	// pinning.
	Copy bool
}

// Validate checks the structural invariants of the manifest.
func (m *Manifest) Validate() error {
	if m.Name == "" {
		return zerr.With(zerr.Wrap(ErrInvalidManifest, "manifest has no name"), "missing_field", "name")
	}
	for _, dep := range m.Deps {
		if dep.Filepath == "" {
			err := zerr.With(zerr.Wrap(ErrInvalidManifest, "dependency has no filepath"), "dependency", dep.Name.String())
			return zerr.With(err, "missing_field", "filepath")
		}
	}
	return nil
}

// Dep returns the declared dependency with the given name, if any.
func (m *Manifest) Dep(name string) (ManifestDep, bool) {
	for _, dep := range m.Deps {
		if dep.Name.String() == name {
			return dep, true
		}
	}
	return ManifestDep{}, false
}
