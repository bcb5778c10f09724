package ffxl

import "time"

// Context carries the identity and environment a feature decision is made
// for. An empty field means the value is unknown. The zero value is a valid
// anonymous context. Contexts are plain values; they are never mutated by
// evaluation and may be reused across any number of calls.
type Context struct {
	UserID      string
	Environment string
}

// Rollout is a percentage-based gradual enablement rule. Percentage must be
// in [0,100]; 0 never enables and 100 enables every identified user.
type Rollout struct {
	Percentage int
}

// Feature is the parsed rule set for a single feature.
//
// At most one branch decides an evaluation: a non-empty OnlyForUserIDs list
// overrides everything else, then the EnabledFrom and Environments gates
// apply, then Rollout if present, and finally the plain Enabled flag.
type Feature struct {
	// Name identifies the feature and feeds into rollout bucketing.
	Name string

	// Enabled is the unconditional global flag, consulted only when no
	// other branch applies.
	Enabled bool

	// OnlyForUserIDs restricts the feature to exactly these identities
	// when non-empty, regardless of Enabled, Environments, or Rollout.
	OnlyForUserIDs []string

	// Environments limits where the feature is eligible at all. Empty
	// means every environment is eligible.
	Environments []string

	// Rollout, when set, splits eligible identified users by percentage.
	Rollout *Rollout

	// EnabledFrom keeps the feature off until the given instant.
	EnabledFrom *time.Time
}
