package app

import (
	"go.trai.ch/ugle/internal/core/domain"
	"go.trai.ch/zerr"
)

// requiredTools are the external commands the transactions shell out to.
// All of them are checked before either operation starts, turning a
// mid-transaction failure into an immediate, actionable error.
var requiredTools = []string{"git", "cp", "apt-cache", "dpkg-repack"}

func (a *App) preflight(tools []string) error {
	for _, tool := range tools {
		if err := a.runner.LookPath(tool); err != nil {
			return zerr.With(zerr.Wrap(domain.ErrToolMissing, "required tool not found in PATH"), "tool", tool)
		}
	}
	return nil
}
