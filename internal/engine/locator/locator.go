// Package locator implements the search-then-clone protocol for finding a
// specific version-control commit across candidate sources.
package locator

import (
	"context"
	"os"

	"go.trai.ch/ugle/internal/core/domain"
	"go.trai.ch/ugle/internal/core/ports"
	"go.trai.ch/zerr"
)

// Action describes how the located source must be materialized at the
// destination.
type Action int

const (
	// ActionNone means the destination already contains the commit.
	ActionNone Action = iota
	// ActionCopyFromSource means the source tree must be copied to the
	// destination before checkout.
	ActionCopyFromSource
	// ActionCloneThenUse means the commit was acquired by cloning the remote
	// directly into the destination.
	ActionCloneThenUse
)

// Resolution is the outcome of locating a commit.
type Resolution struct {
	// SourcePath is the directory that contains the commit.
	SourcePath string
	// Action is what remains to be done to materialize the source at the
	// destination.
	Action Action
}

// Request describes one commit to locate.
type Request struct {
	// CommitHash is the pinned commit.
	CommitHash string
	// CandidateSources are local paths tried in order. Absent paths are
	// skipped silently.
	CandidateSources []string
	// RemoteURL is the optional clone-of-last-resort remote.
	RemoteURL string
	// Destination is where the dependency must end up; a candidate equal to
	// the destination needs no copy.
	Destination string
}

// strategy is one way of acquiring the commit. Strategies are tried in
// sequence; new source kinds slot in without touching the control flow.
type strategy interface {
	locate(ctx context.Context, req Request) (Resolution, bool, error)
}

// Locator finds or acquires a pinned commit.
type Locator struct {
	vcs        ports.VersionControl
	strategies []strategy
}

// New creates a Locator with the standard strategy order: local candidate
// paths first, then clone from the remote.
func New(vcs ports.VersionControl, logger ports.Logger) *Locator {
	return &Locator{
		vcs: vcs,
		strategies: []strategy{
			&candidateStrategy{vcs: vcs, logger: logger},
			&cloneStrategy{vcs: vcs, logger: logger},
		},
	}
}

// Locate tries each strategy in order and returns the first resolution.
// Exhausting all strategies fails the dependency; this is fatal, not retried.
func (l *Locator) Locate(ctx context.Context, req Request) (Resolution, error) {
	for _, s := range l.strategies {
		res, ok, err := s.locate(ctx, req)
		if err != nil {
			return Resolution{}, err
		}
		if ok {
			return res, nil
		}
	}
	err := zerr.With(zerr.Wrap(domain.ErrDependencyUnresolved, "no candidate source carries the pinned commit"), "commit", req.CommitHash)
	return Resolution{}, zerr.With(err, "remote", req.RemoteURL)
}

// candidateStrategy probes the candidate source paths in the supplied order.
type candidateStrategy struct {
	vcs    ports.VersionControl
	logger ports.Logger
}

func (s *candidateStrategy) locate(ctx context.Context, req Request) (Resolution, bool, error) {
	for _, path := range req.CandidateSources {
		if path == "" {
			continue
		}
		if _, err := os.Stat(path); err != nil {
			continue
		}
		exists, err := s.vcs.CommitExists(ctx, path, req.CommitHash)
		if err != nil {
			return Resolution{}, false, err
		}
		if !exists {
			continue
		}
		s.logger.Debug("found commit " + req.CommitHash + " in " + path)
		action := ActionCopyFromSource
		if path == req.Destination {
			action = ActionNone
		}
		return Resolution{SourcePath: path, Action: action}, true, nil
	}
	return Resolution{}, false, nil
}

// cloneStrategy clones the remote into the destination and re-checks for the
// commit. A clone that turns out not to contain the commit is discarded.
type cloneStrategy struct {
	vcs    ports.VersionControl
	logger ports.Logger
}

func (s *cloneStrategy) locate(ctx context.Context, req Request) (Resolution, bool, error) {
	if req.RemoteURL == "" {
		return Resolution{}, false, nil
	}

	s.logger.Debug("cloning " + req.RemoteURL + " into " + req.Destination)
	if err := s.vcs.Clone(ctx, req.RemoteURL, req.Destination); err != nil {
		return Resolution{}, false, err
	}

	exists, err := s.vcs.CommitExists(ctx, req.Destination, req.CommitHash)
	if err != nil {
		return Resolution{}, false, err
	}
	if !exists {
		s.logger.Debug("commit " + req.CommitHash + " not found at remote, discarding clone")
		if err := os.RemoveAll(req.Destination); err != nil {
			return Resolution{}, false, zerr.Wrap(err, "failed to discard clone")
		}
		return Resolution{}, false, nil
	}

	return Resolution{SourcePath: req.Destination, Action: ActionCloneThenUse}, true, nil
}
