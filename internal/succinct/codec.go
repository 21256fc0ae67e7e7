// Package succinct implements the succinct counter representation shared
// by SuccinctCountingBloomFilter and SuccinctCountingBlockedBloomFilter: a
// per-group presence word plus a unary-coded inline counter word, with
// promotion to a fixed-width lane in an overflow Pool once a group's
// counters no longer fit inline.
//
// Every function here is a direct port of the corresponding method in the
// C++ reference (Increment, Decrement, ReadCount), generalized over lane
// width (4 bits for the succinct filter, 8 bits for the blocked filter) so
// both callers share one implementation of the hard part of this module.
package succinct

import (
	"log/slog"

	"github.com/nsavage/succinctbf/internal/bitops"
)

const (
	promotedBit  = uint64(1) << 63
	overflowBits = uint64(3) << 62
	indexMask    = uint64(0x0fffffff)
)

// ReadCount returns the current counter value for bit within a group,
// given the group's presence word, counts word, and the shared overflow
// pool. It returns 0 if the presence bit is unset.
func ReadCount(data, counts uint64, pool *Pool, bit int) int {
	if (data>>uint(bit))&1 == 0 {
		return 0
	}
	if counts&promotedBit != 0 {
		index := uint32(counts & indexMask)
		return int(pool.Lane(index, bit))
	}
	return readInline(data, counts, bit)
}

// readInline decodes the unary run for bit directly from an inline
// (non-promoted) counts word. Precondition: the presence bit for bit is
// set and counts is not promoted.
func readInline(m, c uint64, bit int) int {
	bitsBefore := bitops.Popcount64(m & (^uint64(0) >> uint(63-bit)))
	bitPos := bitops.Select64(c, bitsBefore-1)
	y := ((c << uint(63-bitPos)) << 1) | (uint64(1) << uint(63-bitPos))
	return bitops.LeadingZeros64(y) + 1
}

// Increment bumps the counter for bit in a group by one, promoting the
// group to an overflow slot if the inline word has run out of room, or
// bumping the running total if it is already promoted. If the overflow
// pool is exhausted, the presence bit is still set and the counter update
// is skipped (spec.md's documented "stuck, approximate" degraded mode);
// the event is logged, not returned as an error.
func Increment(pool *Pool, data, counts *uint64, bit int, group uint64) {
	m := *data
	c := *counts

	if c&overflowBits != 0 {
		var index uint32
		if c&promotedBit == 0 {
			// Inline word has run out of room: promote.
			idx, ok := pool.Alloc()
			if !ok {
				slog.Warn("succinct counter: overflow pool exhausted, counting degraded",
					"group", group, "bit", bit)
				*data = m | (uint64(1) << uint(bit))
				return
			}
			index = idx
			for i := 0; i < 64; i++ {
				if (m>>uint(i))&1 == 0 {
					continue
				}
				if n := readInline(m, c, i); n > 0 {
					pool.AddLane(index, i, int64(n))
				}
			}
			c = promotedBit | (uint64(64) << 32) | uint64(index)
		} else {
			index = uint32(c & indexMask)
			c += uint64(1) << 32
		}
		pool.AddLane(index, bit, 1)
		*counts = c
		*data = m | (uint64(1) << uint(bit))
		return
	}

	// Inline path: splice a single bit into the unary codeword.
	*data = m | (uint64(1) << uint(bit))
	bitsBefore := bitops.Popcount64(m & (^uint64(0) >> uint(63-bit)))
	before := bitops.Select64((c<<1)|1, bitsBefore)
	d := int((m >> uint(bit)) & 1)
	insertAt := before - d
	mask := (uint64(1) << uint(insertAt)) - 1
	left := c &^ mask
	right := c & mask
	*counts = (left << 1) | (uint64(1^d) << uint(insertAt)) | right
}

// Decrement lowers the counter for bit in a group by one. If this empties
// the counter, the presence bit is cleared. A promoted group whose total
// falls back under 64 is demoted, rebuilding the inline word from the
// surviving lane values and returning its overflow slot to the free list.
func Decrement(pool *Pool, data, counts *uint64, bit int) {
	m := *data
	c := *counts

	if c&promotedBit != 0 {
		index := uint32(c & indexMask)
		total := (c>>32)&indexMask - 1
		c -= uint64(1) << 32

		old := pool.Lane(index, bit)
		pool.AddLane(index, bit, -1)
		if old == 1 {
			m &^= uint64(1) << uint(bit)
		}

		if total < 64 {
			// Rebuild the inline word from the slot's surviving lanes and
			// free the slot. cj is a single lane's value; since the group
			// total is < 64 here, every individual lane is necessarily < 64
			// too (lanes are non-negative and sum to the total), so the
			// cj-1 shift below is always in range — this is the invariant
			// spec.md's open question (a) asks an implementer to assert.
			var c2 uint64
			for j := 63; j >= 0; j-- {
				cj := int(pool.Lane(index, j))
				if cj > 0 {
					c2 = ((c2 << 1) | 1) << uint(cj-1)
				}
			}
			c = c2
			pool.Free(index)
		}
		*counts = c
		*data = m
		return
	}

	// Inline path: remove one bit from the unary codeword.
	bitsBefore := bitops.Popcount64(m & (^uint64(0) >> uint(63-bit)))
	before := bitops.Select64((c<<1)|1, bitsBefore) - 1
	removeAt := before - 1
	if removeAt < 0 {
		removeAt = 0
	}
	mask := (uint64(1) << uint(removeAt)) - 1
	left := (c >> 1) &^ mask
	right := c & mask
	newC := left | right
	removed := (c >> uint(removeAt)) & 1

	*counts = newC
	if removed == 1 {
		m &^= uint64(1) << uint(bit)
	}
	*data = m
}
