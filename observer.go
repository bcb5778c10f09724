package ffxl

import "log/slog"

// Observer receives a diagnostic event for every evaluation performed
// through a snapshot. Implementations must be safe for concurrent use and
// must not block; absence of an observer never affects results.
type Observer interface {
	ObserveEvaluation(feature string, enabled bool, reason Reason, userID string)
}

// LogObserver logs every evaluation outcome at debug level. It is the
// development-mode diagnostic collaborator: attach it with [WithObserver]
// when tracing why a flag resolved the way it did.
type LogObserver struct {
	log *slog.Logger
}

// NewLogObserver creates a LogObserver writing to log. A nil logger falls
// back to [slog.Default].
func NewLogObserver(log *slog.Logger) *LogObserver {
	if log == nil {
		log = slog.Default()
	}
	return &LogObserver{log: log}
}

func (o *LogObserver) ObserveEvaluation(feature string, enabled bool, reason Reason, userID string) {
	o.log.Debug("feature evaluated",
		"feature", feature,
		"enabled", enabled,
		"reason", string(reason),
		"user_id", userID,
	)
}
