package ffxl

import (
	"slices"
	"time"
)

// Evaluate applies f's rules to ctx and reports the decision together with
// the branch that produced it. The precedence order is fixed and the first
// matching branch wins; branches are never combined:
//
//  1. allow-list membership (hard override, false for anonymous contexts)
//  2. activation time gate
//  3. environment gate
//  4. percentage rollout (fails closed for anonymous contexts)
//  5. global enabled flag
//
// Evaluate is pure apart from reading the clock for the activation gate.
func Evaluate(f Feature, ctx Context) (bool, Reason) {
	return evaluateAt(f, ctx, time.Now())
}

func evaluateAt(f Feature, ctx Context, now time.Time) (bool, Reason) {
	if len(f.OnlyForUserIDs) > 0 {
		enabled := ctx.UserID != "" && slices.Contains(f.OnlyForUserIDs, ctx.UserID)
		return enabled, ReasonUserAllowlist
	}

	if f.EnabledFrom != nil && now.Before(*f.EnabledFrom) {
		return false, ReasonNotYetActive
	}

	if len(f.Environments) > 0 {
		if ctx.Environment == "" || !slices.Contains(f.Environments, ctx.Environment) {
			return false, ReasonEnvironmentMismatch
		}
	}

	if f.Rollout != nil {
		if ctx.UserID == "" {
			return false, ReasonRolloutNoUser
		}
		return Bucket(f.Name, ctx.UserID) < f.Rollout.Percentage, ReasonRolloutBucket
	}

	return f.Enabled, ReasonGlobalFlag
}
