package locator

import "context"

// Discovery is the commit state of a local working tree at snapshot time.
type Discovery struct {
	// CommitHash is the commit currently checked out.
	CommitHash string
	// RemoteURL is the push URL of the default remote, "" when none exists.
	RemoteURL string
	// Dirty reports uncommitted changes. A dirty tree does not block the
	// snapshot; only the committed state is captured.
	Dirty bool
	// Status is the porcelain status text when Dirty is set.
	Status string
}

// Discover reads the current commit state of the git working tree at dir.
// When the manifest supplies no URL, the default remote's push URL is used:
// it is the one most likely to carry new commits.
func (l *Locator) Discover(ctx context.Context, dir, manifestURL string) (Discovery, error) {
	status, err := l.vcs.Status(ctx, dir, false)
	if err != nil {
		return Discovery{}, err
	}

	hash, err := l.vcs.Head(ctx, dir)
	if err != nil {
		return Discovery{}, err
	}

	url := manifestURL
	if url == "" {
		url, err = l.vcs.RemoteURL(ctx, dir)
		if err != nil {
			return Discovery{}, err
		}
	}

	return Discovery{
		CommitHash: hash,
		RemoteURL:  url,
		Dirty:      status != "",
		Status:     status,
	}, nil
}
