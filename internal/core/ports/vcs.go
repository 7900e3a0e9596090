package ports

import "context"

// VersionControl is the subset of a version-control client the engine needs.
// Every method takes the repository directory explicitly.
//
//go:generate mockgen -source=vcs.go -destination=mocks/mock_vcs.go -package=mocks
type VersionControl interface {
	// CommitExists reports whether the commit object is present in the
	// repository at dir.
	CommitExists(ctx context.Context, dir, hash string) (bool, error)

	// Head returns the commit hash currently checked out at dir.
	Head(ctx context.Context, dir string) (string, error)

	// RemoteURL returns the push URL of the default remote, or "" when the
	// repository has none.
	RemoteURL(ctx context.Context, dir string) (string, error)

	// Status returns the porcelain status of the working tree at dir. An
	// empty status means the tree is clean. With trackedOnly set, untracked
	// files are ignored.
	Status(ctx context.Context, dir string, trackedOnly bool) (string, error)

	// Clone clones the remote at url into dest.
	Clone(ctx context.Context, url, dest string) error

	// Checkout checks out the given ref in the repository at dir.
	Checkout(ctx context.Context, dir, ref string) error

	// ResetHard discards all uncommitted changes in the working tree at dir.
	ResetHard(ctx context.Context, dir string) error
}

// TreeCopier recursively copies directory trees.
type TreeCopier interface {
	// CopyTree copies the tree rooted at src to dest. dest must not exist.
	CopyTree(ctx context.Context, src, dest string) error
}
