package ffxl

import (
	"crypto/sha256"
	"encoding/binary"
)

// Bucket maps a (feature, user) pair to a stable slot in [0,100).
//
// The assignment is the interoperability contract for percentage rollout:
// SHA-256 over "feature:user", the first 8 bytes of the digest read as a
// big-endian unsigned integer, reduced modulo 100. The hash is unseeded, so
// the same pair lands in the same bucket on every call, in every process,
// and in any other implementation of the same formula. Including the
// feature name keeps a user's buckets uncorrelated across features.
//
// Bucket assignment is undefined for an empty userID; the evaluator fails
// closed before ever calling it.
func Bucket(feature, userID string) int {
	sum := sha256.Sum256([]byte(feature + ":" + userID))
	return int(binary.BigEndian.Uint64(sum[:8]) % 100)
}
