package succinctbf

import "errors"

// ErrZeroCapacity is returned by every New* constructor when the requested
// capacity or bits-per-item budget can't produce a usable array, matching
// the "surfaced to the caller as a construction error" case in SPEC_FULL.md
// §7's error handling notes. It follows the teacher's sentinel-error convention
// (internal/limite/bloom, internal/limite/cms both use plain errors.New
// package-level values rather than a custom error type).
var ErrZeroCapacity = errors.New("succinctbf: capacity and bits-per-item must both be positive")
