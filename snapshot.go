package ffxl

import (
	"fmt"
	"slices"
	"strings"
	"time"
)

// Snapshot is an immutable, point-in-time view of all feature definitions.
// It is built once, used for any number of evaluations from any number of
// goroutines, and replaced wholesale (see [Store]) when configuration is
// reloaded. The snapshot takes ownership of the definitions passed to
// NewSnapshot; callers must not mutate them afterwards.
type Snapshot struct {
	names  []string
	byName map[string]Feature
	obs    Observer
	now    func() time.Time
}

// Option configures a Snapshot at construction time.
type Option func(*Snapshot)

// WithObserver attaches an observer that receives a diagnostic event for
// every evaluation. Observers never influence results.
func WithObserver(obs Observer) Option {
	return func(s *Snapshot) {
		s.obs = obs
	}
}

// WithClock overrides the clock consulted by the activation-time gate.
// Intended for tests; defaults to [time.Now].
func WithClock(now func() time.Time) Option {
	return func(s *Snapshot) {
		s.now = now
	}
}

// NewSnapshot builds a snapshot from definitions, preserving their order.
// It rejects empty or duplicate names and out-of-range rollout percentages;
// these are configuration errors and surface here rather than at
// evaluation time.
func NewSnapshot(features []Feature, opts ...Option) (*Snapshot, error) {
	s := &Snapshot{
		names:  make([]string, 0, len(features)),
		byName: make(map[string]Feature, len(features)),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}

	for _, f := range features {
		if strings.TrimSpace(f.Name) == "" {
			return nil, ErrFeatureNameRequired
		}
		if _, exists := s.byName[f.Name]; exists {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateFeature, f.Name)
		}
		if f.Rollout != nil && (f.Rollout.Percentage < 0 || f.Rollout.Percentage > 100) {
			return nil, fmt.Errorf("%w: feature %q has %d", ErrInvalidPercentage, f.Name, f.Rollout.Percentage)
		}
		s.names = append(s.names, f.Name)
		s.byName[f.Name] = f
	}

	return s, nil
}

// IsEnabled reports whether the named feature is on for ctx. Unknown
// features are disabled, never an error.
func (s *Snapshot) IsEnabled(name string, ctx Context) bool {
	f, ok := s.byName[name]
	if !ok {
		s.observe(name, false, ReasonFeatureNotFound, ctx.UserID)
		return false
	}

	enabled, reason := evaluateAt(f, ctx, s.now())
	s.observe(name, enabled, reason, ctx.UserID)
	return enabled
}

// IsAnyEnabled reports whether at least one of the named features is on for
// ctx, stopping at the first hit.
func (s *Snapshot) IsAnyEnabled(names []string, ctx Context) bool {
	for _, name := range names {
		if s.IsEnabled(name, ctx) {
			return true
		}
	}
	return false
}

// AreAllEnabled reports whether every named feature is on for ctx, stopping
// at the first miss. True for an empty list.
func (s *Snapshot) AreAllEnabled(names []string, ctx Context) bool {
	for _, name := range names {
		if !s.IsEnabled(name, ctx) {
			return false
		}
	}
	return true
}

// EnabledFeatures returns the names of all features that are on for ctx, in
// the snapshot's definition order.
func (s *Snapshot) EnabledFeatures(ctx Context) []string {
	enabled := make([]string, 0, len(s.names))
	for _, name := range s.names {
		if s.IsEnabled(name, ctx) {
			enabled = append(enabled, name)
		}
	}
	return enabled
}

// FeatureFlags evaluates each named feature independently and returns the
// results keyed by name. Unknown names map to false.
func (s *Snapshot) FeatureFlags(names []string, ctx Context) map[string]bool {
	flags := make(map[string]bool, len(names))
	for _, name := range names {
		flags[name] = s.IsEnabled(name, ctx)
	}
	return flags
}

// FeatureExists reports whether the snapshot defines the named feature.
func (s *Snapshot) FeatureExists(name string) bool {
	_, ok := s.byName[name]
	return ok
}

// FeatureNames returns all feature names in definition order.
func (s *Snapshot) FeatureNames() []string {
	names := make([]string, len(s.names))
	copy(names, s.names)
	return names
}

// FeatureConfig returns the definition of the named feature, if present.
// The returned value is a copy; mutating it cannot reach snapshot state.
func (s *Snapshot) FeatureConfig(name string) (Feature, bool) {
	f, ok := s.byName[name]
	if !ok {
		return Feature{}, false
	}
	f.OnlyForUserIDs = slices.Clone(f.OnlyForUserIDs)
	f.Environments = slices.Clone(f.Environments)
	if f.Rollout != nil {
		rollout := *f.Rollout
		f.Rollout = &rollout
	}
	if f.EnabledFrom != nil {
		from := *f.EnabledFrom
		f.EnabledFrom = &from
	}
	return f, true
}

// Len returns the number of features in the snapshot.
func (s *Snapshot) Len() int {
	return len(s.names)
}

func (s *Snapshot) observe(name string, enabled bool, reason Reason, userID string) {
	if s.obs == nil {
		return
	}
	s.obs.ObserveEvaluation(name, enabled, reason, userID)
}
