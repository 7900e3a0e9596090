// Package policy provides confirmation policies replacing interactive
// prompts.
package policy

import (
	"go.trai.ch/ugle/internal/core/ports"
)

var (
	_ ports.Confirmer = (*Proceed)(nil)
	_ ports.Confirmer = (*Abort)(nil)
)

// Proceed always lets the operation continue. This is the default: dirty
// working trees are captured at their committed state with a warning, and
// existing archives are replaced.
type Proceed struct{}

// NewProceed creates the always-proceed policy.
func NewProceed() *Proceed {
	return &Proceed{}
}

// Confirm reports true for every decision point.
func (p *Proceed) Confirm(ports.ConfirmKind, string) bool { return true }

// Abort declines every decision point. Strict automation can opt into it to
// make any would-be prompt a hard failure.
type Abort struct{}

// NewAbort creates the always-abort policy.
func NewAbort() *Abort {
	return &Abort{}
}

// Confirm reports false for every decision point.
func (a *Abort) Confirm(ports.ConfirmKind, string) bool { return false }
