package ports

// ConfirmKind names a decision point that would otherwise be an interactive
// prompt.
type ConfirmKind string

const (
	// ConfirmDirtyWorkingTree asks whether to snapshot a dependency whose
	// working tree has uncommitted changes (only committed state is captured).
	ConfirmDirtyWorkingTree ConfirmKind = "dirty-working-tree"

	// ConfirmOverwriteArchive asks whether to overwrite an already existing
	// archive of the same name.
	ConfirmOverwriteArchive ConfirmKind = "overwrite-archive"
)

// Confirmer decides whether an operation may proceed at a decision point.
// Callers supply a policy instead of prompting, which keeps transactions
// runnable (and testable) without a terminal. Declining triggers the same
// rollback path as any other failure.
//
//go:generate mockgen -source=confirmer.go -destination=mocks/mock_confirmer.go -package=mocks
type Confirmer interface {
	// Confirm reports whether the operation described by kind and context
	// may proceed.
	Confirm(kind ConfirmKind, context string) bool
}
