package compose

import "github.com/kitforge/kitforge/internal/domain/model"

// Option applies a configuration option to the Composer.
type Option func(*Composer)

// WithStatTargets overrides the base, activity-favored, and focus-stat
// investment targets (each in [0,200]).
func WithStatTargets(base, favored, focus int) Option {
	return func(c *Composer) {
		if base > 0 {
			c.baseFloor = base
		}
		if favored > c.baseFloor {
			c.favoredFloor = favored
		}
		if focus > c.favoredFloor {
			c.focusTarget = focus
		}
	}
}

// WithDefaultClass overrides the class used when the request has no class
// preference.
func WithDefaultClass(class model.Class) Option {
	return func(c *Composer) {
		switch class {
		case model.ClassTitan, model.ClassHunter, model.ClassWarlock:
			c.defaultClass = class
		}
	}
}
