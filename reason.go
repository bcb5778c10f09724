package ffxl

// Reason names the branch of the precedence order that decided an
// evaluation. Reasons are diagnostic only; they never change the result.
type Reason string

const (
	// ReasonUserAllowlist: the feature has an allow-list and membership
	// decided the outcome.
	ReasonUserAllowlist Reason = "USER_ALLOWLIST"

	// ReasonNotYetActive: the feature's activation time is in the future.
	ReasonNotYetActive Reason = "NOT_YET_ACTIVE"

	// ReasonEnvironmentMismatch: the feature is restricted to environments
	// the context is not in.
	ReasonEnvironmentMismatch Reason = "ENVIRONMENT_MISMATCH"

	// ReasonRolloutNoUser: a rollout rule applies but the context carries
	// no identity, so the feature fails closed.
	ReasonRolloutNoUser Reason = "ROLLOUT_NO_USER"

	// ReasonRolloutBucket: the user's bucket was compared against the
	// rollout percentage.
	ReasonRolloutBucket Reason = "ROLLOUT_BUCKET"

	// ReasonGlobalFlag: no targeting rule applied; the plain enabled flag
	// decided.
	ReasonGlobalFlag Reason = "GLOBAL_FLAG"

	// ReasonFeatureNotFound: the snapshot has no feature by that name.
	ReasonFeatureNotFound Reason = "FEATURE_NOT_FOUND"
)
