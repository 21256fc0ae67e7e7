package succinctbf

import (
	"github.com/nsavage/succinctbf/internal/bitops"
	"github.com/nsavage/succinctbf/internal/mixer"
)

// CountingBloomFilter is the baseline counting Bloom filter: sixteen 4-bit
// counters packed into every 64-bit word of data. There is no separate
// presence plane here — a nonzero nibble is itself the presence signal —
// so this type has no dependency on the succinct group codec at all; it is
// the simplest of the three filters, and the one against which the
// succinct filter's space savings are measured.
//
// Counters overflow silently past 15: a 16th increment on an already-full
// nibble carries into its neighbor. This matches original_source's
// CountingBloomFilter template exactly and is a documented non-goal, not a
// bug to be fixed here.
type CountingBloomFilter struct {
	bitsPerItem int
	k           int
	data        []uint64
}

// NewCountingBloomFilter constructs a filter sized for n keys at
// bitsPerItem positions each. k <= 0 selects the default probe count
// (round(bitsPerItem * ln 2)).
func NewCountingBloomFilter(n uint64, bitsPerItem, k int) (*CountingBloomFilter, error) {
	if n == 0 || bitsPerItem <= 0 {
		return nil, ErrZeroCapacity
	}
	if k <= 0 {
		k = defaultK(bitsPerItem)
	}
	arrayLength := ceilDiv(4*n*uint64(bitsPerItem), 64)
	if arrayLength == 0 {
		arrayLength = 1
	}
	return &CountingBloomFilter{
		bitsPerItem: bitsPerItem,
		k:           k,
		data:        make([]uint64, arrayLength),
	}, nil
}

// mutate walks the k probes derived from h, adding delta (1 or -1) to each
// probed nibble. Add, Remove, AddUint64 and RemoveUint64 all funnel through
// this so the probe derivation lives in exactly one place.
func (f *CountingBloomFilter) mutate(h uint64, delta int64) {
	p := mixer.NewProbes(h)
	n := uint32(len(f.data))
	for i := 0; i < f.k; i++ {
		a := p.Next()
		idx := bitops.Reduce32(a, n)
		shift := (a << 2) & 63
		if delta >= 0 {
			f.data[idx] += uint64(delta) << shift
		} else {
			f.data[idx] -= uint64(-delta) << shift
		}
	}
}

// Add inserts key, incrementing all k probed counters by one.
func (f *CountingBloomFilter) Add(key []byte) Status {
	f.mutate(mixer.Hash64(key), 1)
	return Ok
}

// AddUint64 is the integer-key convenience wrapper Add has for byte-slice
// keys.
func (f *CountingBloomFilter) AddUint64(key uint64) Status {
	f.mutate(mixer.Hash64Uint64(key), 1)
	return Ok
}

// AddAll bulk-inserts keys[start:end] via the shared radix-partitioned
// writer in addall.go, producing a byte-identical data array to calling Add
// once per key in order.
func (f *CountingBloomFilter) AddAll(keys [][]byte, start, end int) Status {
	addAllRadix(f, uint32(len(f.data)), start, end, func(i int, emit func(group, offset uint32)) {
		h := mixer.Hash64(keys[i])
		p := mixer.NewProbes(h)
		n := uint32(len(f.data))
		for j := 0; j < f.k; j++ {
			a := p.Next()
			emit(bitops.Reduce32(a, n), (a<<2)&63)
		}
	})
	return Ok
}

// addBlock implements blockSink for the packed 4-bit counter layout: offset
// is already the shift amount for the target nibble.
func (f *CountingBloomFilter) addBlock(entries []uint32) {
	for _, e := range entries {
		group := e >> 6
		shift := e & 63
		f.data[group] += uint64(1) << shift
	}
}

// Remove decrements all k probed counters for key by one. Removing a key
// that was never added (or removing it more times than it was added) is
// undefined per spec.md §7 and is not defended against here.
func (f *CountingBloomFilter) Remove(key []byte) Status {
	f.mutate(mixer.Hash64(key), -1)
	return Ok
}

// RemoveUint64 is Remove's integer-key convenience wrapper.
func (f *CountingBloomFilter) RemoveUint64(key uint64) Status {
	f.mutate(mixer.Hash64Uint64(key), -1)
	return Ok
}

// Contain reports Ok if every probed nibble for key is nonzero, NotFound as
// soon as one is found empty.
func (f *CountingBloomFilter) Contain(key []byte) Status {
	return f.contain(mixer.Hash64(key))
}

// ContainUint64 is Contain's integer-key convenience wrapper.
func (f *CountingBloomFilter) ContainUint64(key uint64) Status {
	return f.contain(mixer.Hash64Uint64(key))
}

func (f *CountingBloomFilter) contain(h uint64) Status {
	p := mixer.NewProbes(h)
	n := uint32(len(f.data))
	for i := 0; i < f.k; i++ {
		a := p.Next()
		idx := bitops.Reduce32(a, n)
		shift := (a << 2) & 63
		if (f.data[idx]>>shift)&0xf == 0 {
			return NotFound
		}
	}
	return Ok
}

// SizeInBytes reports the memory footprint of the counter array, excluding
// the filter struct itself.
func (f *CountingBloomFilter) SizeInBytes() int {
	return len(f.data) * 8
}
