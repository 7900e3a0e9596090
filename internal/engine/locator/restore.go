package locator

import "context"

// StepKind names one restore command.
type StepKind int

const (
	// StepResetHard discards uncommitted changes so the pinned commit can be
	// checked out cleanly.
	StepResetHard StepKind = iota
	// StepCheckout checks out the pinned commit.
	StepCheckout
)

// Step is one deferred restore command. Steps are recorded, not executed
// eagerly, so a whole batch of dependency operations can be validated before
// any of them is applied.
type Step struct {
	Kind StepKind
	Dir  string
	Ref  string
}

// PlanRestore inspects the materialized working tree at dir and returns the
// ordered commands needed to land it on the pinned commit. Uncommitted
// changes are discarded by a hard reset; untracked files are left alone.
func (l *Locator) PlanRestore(ctx context.Context, dir, commit string) ([]Step, error) {
	status, err := l.vcs.Status(ctx, dir, true)
	if err != nil {
		return nil, err
	}

	var steps []Step
	if status != "" {
		steps = append(steps, Step{Kind: StepResetHard, Dir: dir})
	}
	steps = append(steps, Step{Kind: StepCheckout, Dir: dir, Ref: commit})
	return steps, nil
}

// Apply executes the recorded steps in order.
func (l *Locator) Apply(ctx context.Context, steps []Step) error {
	for _, step := range steps {
		switch step.Kind {
		case StepResetHard:
			if err := l.vcs.ResetHard(ctx, step.Dir); err != nil {
				return err
			}
		case StepCheckout:
			if err := l.vcs.Checkout(ctx, step.Dir, step.Ref); err != nil {
				return err
			}
		}
	}
	return nil
}
