// Package mixer adapts an external 64-bit keyed hash into the two 32-bit
// half-hashes the filters probe with, and produces the linear-combination
// double-hashing probe sequence spec.md describes: a, a+b, a+2b, ….
//
// The hash family itself is treated as an external collaborator (spec.md
// §1): this package does not attempt to be a general-purpose hash
// function. It wraps xxhash, the same dependency the teacher repo uses for
// every hashed data structure it ships (Bloom filter, Count-Min Sketch,
// HyperLogLog).
package mixer

import (
	"encoding/binary"

	"github.com/cespare/xxhash/v2"
)

// Hash64 returns the external keyed mixer's digest for key.
func Hash64(key []byte) uint64 {
	return xxhash.Sum64(key)
}

// Hash64Uint64 hashes an integer key without requiring the caller to build
// its own byte slice, for the uint64 convenience wrappers each filter
// exposes.
func Hash64Uint64(key uint64) uint64 {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], key)
	return xxhash.Sum64(buf[:])
}

// Split derives the two 32-bit half-hashes (a, b) from a 64-bit digest:
// a is the high half, b is the low half.
func Split(h uint64) (a, b uint32) {
	return uint32(h >> 32), uint32(h)
}

// Probes iterates the k probe seeds a, a+b, a+2b, … for one key. It is not
// cryptographic and collisions among probes for one key are accepted as
// part of the filter's false-positive budget, matching spec.md §4.2.
type Probes struct {
	a, b uint32
}

// NewProbes builds a probe iterator from a key's hash.
func NewProbes(h uint64) Probes {
	a, b := Split(h)
	return Probes{a: a, b: b}
}

// Next returns the next probe seed and advances the sequence.
func (p *Probes) Next() uint32 {
	seed := p.a
	p.a += p.b
	return seed
}
