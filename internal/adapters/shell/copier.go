package shell

import (
	"context"

	"go.trai.ch/ugle/internal/core/domain"
	"go.trai.ch/ugle/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.TreeCopier = (*Copier)(nil)

// Copier implements ports.TreeCopier by shelling out to the system copy
// utility. The external tool is used deliberately: it preserves permissions,
// symlinks, and the .git object store without reimplementing any of it.
type Copier struct {
	runner ports.Runner
}

// NewCopier creates a new Copier.
func NewCopier(runner ports.Runner) *Copier {
	return &Copier{runner: runner}
}

// CopyTree copies the tree rooted at src to dest.
func (c *Copier) CopyTree(ctx context.Context, src, dest string) error {
	result, err := c.runner.Run(ctx, ports.Command{
		Name: "cp",
		Args: []string{"-r", src, dest},
	})
	if err != nil {
		return err
	}
	if !result.Succeeded() {
		copyErr := zerr.With(zerr.Wrap(domain.ErrToolFailed, "tree copy failed"), "command", "cp -r")
		copyErr = zerr.With(copyErr, "src", src)
		copyErr = zerr.With(copyErr, "dest", dest)
		return zerr.With(copyErr, "stderr", result.Stderr)
	}
	return nil
}
