package ffxl

import "errors"

// Snapshot construction errors. Evaluation itself never fails; a malformed
// definition is rejected once, when the snapshot is built.
var (
	ErrFeatureNameRequired = errors.New("feature name is required")
	ErrDuplicateFeature    = errors.New("duplicate feature name")
	ErrInvalidPercentage   = errors.New("rollout percentage must be between 0 and 100")
)
