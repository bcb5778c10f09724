// Package ffxl is a deterministic feature-flag evaluation engine.
//
// A [Snapshot] holds an immutable set of feature definitions; its methods
// decide whether a named feature is on for a given [Context]. Three
// targeting mechanisms interact with fixed precedence: explicit user
// allow-lists, environment-scoped percentage rollout, and a plain global
// flag. Percentage rollout buckets each (feature, user) pair with an
// unseeded hash, so the decision is reproducible across processes and
// across implementations in other languages.
//
// Snapshots are read-only after construction and safe for concurrent use
// without locking. Hot reloads replace the whole snapshot atomically
// through a [Store]. Unknown features, missing identities, and environment
// mismatches all resolve to false with a diagnostic [Reason]; nothing in
// this package returns an error once a snapshot has been built.
//
// Parsing and locating the configuration file belongs to the loader
// package; this package owns no I/O.
package ffxl
