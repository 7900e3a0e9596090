package domain

import "go.trai.ch/zerr"

var (
	// ErrInvalidManifest is returned when a manifest is missing a required field.
	ErrInvalidManifest = zerr.New("invalid manifest")

	// ErrNotFound is returned when a referenced file, directory, or commit is absent.
	ErrNotFound = zerr.New("not found")

	// ErrToolFailed is returned when an external tool exited non-zero where success was required.
	ErrToolFailed = zerr.New("external tool failed")

	// ErrToolMissing is returned by the startup preflight when a required tool is not installed.
	ErrToolMissing = zerr.New("required tool not found")

	// ErrDestinationExists is returned when a checkout destination already exists and force was not given.
	ErrDestinationExists = zerr.New("destination already exists")

	// ErrDependencyUnresolved is returned when no candidate source or remote yields the pinned commit.
	ErrDependencyUnresolved = zerr.New("dependency could not be resolved")

	// ErrCycleDetected is returned when the package dependency graph contains a cycle.
	ErrCycleDetected = zerr.New("cycle detected")

	// ErrClosureInconsistent is returned when a visited package is missing from the
	// name-to-artifact map at graph translation time. Visitation and translation
	// disagreeing is an internal bug, never bad user input.
	ErrClosureInconsistent = zerr.New("package closure inconsistent")
)
