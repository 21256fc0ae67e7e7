// Package succinctbf implements a family of counting approximate-membership
// filters: probabilistic set data structures that support insertion,
// deletion, and membership queries with a tunable false-positive rate and
// bounded per-key cost.
//
// Three filters are provided:
//
//   - CountingBloomFilter: the baseline design, 4-bit counters packed
//     sixteen to a word. Simple, but spends 4 bits per hash position
//     whether or not that position is ever incremented past 1.
//
//   - SuccinctCountingBloomFilter: replaces the 4-bit-counter array with a
//     1-bit presence plane plus a compact unary-coded counter plane, with
//     an overflow pool for the rare position whose counter mass exceeds
//     what the inline encoding can hold. This is the hard part of the
//     package — see internal/succinct for the group codec.
//
//   - SuccinctCountingBlockedBloomFilter: applies the same succinct trick
//     inside 512-bit (8-word) buckets, so every key's probes stay inside
//     one contiguous 64-byte span of presence bits and one of counters (the
//     spans are not aligned to cache-line boundaries), at the cost of
//     wider (8-bit) overflow lanes and no bulk AddAll path.
//
// # Which one to use
//
// CountingBloomFilter is the simplest to reason about and the cheapest per
// operation, at roughly twice the memory of the succinct variants for the
// same capacity. SuccinctCountingBloomFilter gets that memory back at the
// cost of more work per Increment/Decrement. SuccinctCountingBlockedBloomFilter
// trades a slightly higher false-positive rate (its probes are confined to
// one bucket rather than spread across the whole array) for much better
// cache behavior under load.
//
// # What this package does not do
//
// No persistence, no wire format, no network surface, no internal
// synchronization — a caller mutating a filter from more than one goroutine
// must serialize those calls itself. The hash family is treated as an
// external collaborator: every filter hashes byte-slice or uint64 keys
// with the same 64-bit keyed mixer (internal/mixer) and never exposes a
// pluggable hash interface, since the whole point of this package is the
// counter representation, not the hashing.
package succinctbf
