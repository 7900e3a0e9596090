// Package git implements the version-control port by driving the git CLI
// through the process runner.
package git

import (
	"context"
	"regexp"
	"strings"

	"go.trai.ch/ugle/internal/core/domain"
	"go.trai.ch/ugle/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.VersionControl = (*Client)(nil)

// pushURLPattern matches the push entry of the origin remote in
// `git remote -v` output. If several match, the first one wins; the push URL
// is the one most likely to carry new commits.
var pushURLPattern = regexp.MustCompile(`(?m)^origin\t(.*) \(push\)`)

// Client implements ports.VersionControl using the git executable.
type Client struct {
	runner ports.Runner
}

// NewClient creates a new Client.
func NewClient(runner ports.Runner) *Client {
	return &Client{runner: runner}
}

// CommitExists reports whether the commit object exists in the repository at
// dir. A non-zero exit from `git cat-file` means the object is absent, not
// that the tool failed.
func (c *Client) CommitExists(ctx context.Context, dir, hash string) (bool, error) {
	result, err := c.runner.Run(ctx, ports.Command{
		Name: "git",
		Args: []string{"cat-file", "-e", hash + "^{commit}"},
		Dir:  dir,
	})
	if err != nil {
		return false, err
	}
	return result.Succeeded(), nil
}

// Head returns the commit hash currently checked out at dir.
func (c *Client) Head(ctx context.Context, dir string) (string, error) {
	result, err := c.run(ctx, dir, "rev-parse", "HEAD")
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(result.Stdout), nil
}

// RemoteURL returns the push URL of the origin remote, or "" when the
// repository has no matching remote. Uniqueness of the match is not
// validated; the first entry is used.
func (c *Client) RemoteURL(ctx context.Context, dir string) (string, error) {
	result, err := c.run(ctx, dir, "remote", "-v")
	if err != nil {
		return "", err
	}
	match := pushURLPattern.FindStringSubmatch(result.Stdout)
	if match == nil {
		return "", nil
	}
	return match[1], nil
}

// Status returns the porcelain status of the working tree at dir.
func (c *Client) Status(ctx context.Context, dir string, trackedOnly bool) (string, error) {
	args := []string{"status", "--porcelain"}
	if trackedOnly {
		args = append(args, "--untracked-files=no")
	}
	result, err := c.run(ctx, dir, args...)
	if err != nil {
		return "", err
	}
	return result.Stdout, nil
}

// Clone clones the remote at url into dest.
func (c *Client) Clone(ctx context.Context, url, dest string) error {
	_, err := c.run(ctx, "", "clone", url, dest)
	return err
}

// Checkout checks out the given ref in the repository at dir.
func (c *Client) Checkout(ctx context.Context, dir, ref string) error {
	_, err := c.run(ctx, dir, "checkout", ref)
	return err
}

// ResetHard discards all uncommitted changes in the working tree at dir.
func (c *Client) ResetHard(ctx context.Context, dir string) error {
	_, err := c.run(ctx, dir, "reset", "--hard", "HEAD")
	return err
}

// run invokes git and converts a non-zero exit into an ErrToolFailed carrying
// the captured stderr.
func (c *Client) run(ctx context.Context, dir string, args ...string) (ports.RunResult, error) {
	result, err := c.runner.Run(ctx, ports.Command{
		Name: "git",
		Args: args,
		Dir:  dir,
	})
	if err != nil {
		return result, err
	}
	if !result.Succeeded() {
		gitErr := zerr.With(zerr.Wrap(domain.ErrToolFailed, "git command failed"), "command", "git "+strings.Join(args, " "))
		gitErr = zerr.With(gitErr, "dir", dir)
		gitErr = zerr.With(gitErr, "exit_code", result.ExitCode)
		return result, zerr.With(gitErr, "stderr", strings.TrimSpace(result.Stderr))
	}
	return result, nil
}
