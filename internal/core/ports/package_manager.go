package ports

import "context"

// PackageManager queries and repacks installed OS packages.
//
//go:generate mockgen -source=package_manager.go -destination=mocks/mock_package_manager.go -package=mocks
type PackageManager interface {
	// InstalledDepends returns the direct dependencies of an installed
	// package, restricted to depends, pre-depends, and recommends relations.
	// Suggested and otherwise optional relations are excluded: they are not
	// guaranteed to be installed.
	InstalledDepends(ctx context.Context, pkg string) ([]string, error)

	// Repack rebuilds the installed package into a standalone artifact file
	// inside dir and returns the artifact filename. A failure to produce an
	// artifact is returned as an error carrying the tool's output.
	Repack(ctx context.Context, pkg, dir string) (string, error)
}

// FileHasher computes content digests of artifact files.
type FileHasher interface {
	// HashFile returns the hex digest of the file's contents.
	HashFile(path string) (string, error)
}
