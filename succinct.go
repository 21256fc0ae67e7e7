package succinctbf

import (
	"github.com/bits-and-blooms/bitset"

	"github.com/nsavage/succinctbf/internal/bitops"
	"github.com/nsavage/succinctbf/internal/mixer"
	"github.com/nsavage/succinctbf/internal/succinct"
)

// succinctSlotWords and succinctLaneBits size the overflow pool shared by
// every group in a SuccinctCountingBloomFilter: a 4-word slot holds 64
// 4-bit lanes, matching original_source's SuccinctCountingBloomFilter.
const (
	succinctSlotWords = 4
	succinctLaneBits  = 4
	succinctSlotSize  = 12 // overflow words per 100 groups: three 4-word slots, ~3% of groups promoted at once
)

// SuccinctCountingBloomFilter replaces the plain filter's 4-bit-counter
// array with a 1-bit presence plane plus a succinct unary-coded counter
// plane and a shared overflow pool (internal/succinct), trading counter
// width for presence-plane compactness at the cost of the splice-based
// group codec doing the real work in Add/Remove.
type SuccinctCountingBloomFilter struct {
	bitsPerItem int
	k           int
	arrayLength uint32
	presence    *bitset.BitSet
	counts      []uint64
	pool        *succinct.Pool
}

// NewSuccinctCountingBloomFilter constructs a filter sized for n keys at
// bitsPerItem positions each. k <= 0 selects the default probe count.
func NewSuccinctCountingBloomFilter(n uint64, bitsPerItem, k int) (*SuccinctCountingBloomFilter, error) {
	if n == 0 || bitsPerItem <= 0 {
		return nil, ErrZeroCapacity
	}
	if k <= 0 {
		k = defaultK(bitsPerItem)
	}
	arrayLength := ceilDiv(n*uint64(bitsPerItem), 64)
	if arrayLength == 0 {
		arrayLength = 1
	}
	poolWords := overflowWords(uint32(arrayLength), succinctSlotWords, succinctSlotSize)
	return &SuccinctCountingBloomFilter{
		bitsPerItem: bitsPerItem,
		k:           k,
		arrayLength: uint32(arrayLength),
		presence:    bitset.New(uint(arrayLength) * 64),
		counts:      make([]uint64, arrayLength),
		pool:        succinct.NewPool(poolWords, succinctSlotWords, succinctLaneBits),
	}, nil
}

// probe derives (group, bit) for the i-th probe seed of a key, reusing the
// same 32-bit value for both, exactly as the plain filter's (idx, counter)
// pair does in counting.go — the group and bit are drawn from disjoint bit
// ranges of a, not independent hashes.
func (f *SuccinctCountingBloomFilter) probe(a uint32) (group uint32, bit int) {
	return bitops.Reduce32(a, f.arrayLength), int(a & 63)
}

func (f *SuccinctCountingBloomFilter) words() []uint64 {
	return f.presence.Bytes()
}

// Add inserts key: for each of the k probes, increments the group codec's
// counter at (group, bit), promoting or bumping an overflow lane as needed.
func (f *SuccinctCountingBloomFilter) Add(key []byte) Status {
	f.add(mixer.Hash64(key))
	return Ok
}

// AddUint64 is Add's integer-key convenience wrapper.
func (f *SuccinctCountingBloomFilter) AddUint64(key uint64) Status {
	f.add(mixer.Hash64Uint64(key))
	return Ok
}

func (f *SuccinctCountingBloomFilter) add(h uint64) {
	p := mixer.NewProbes(h)
	words := f.words()
	for i := 0; i < f.k; i++ {
		group, bit := f.probe(p.Next())
		succinct.Increment(f.pool, &words[group], &f.counts[group], bit, uint64(group))
	}
}

// AddAll bulk-inserts keys[start:end] via the shared radix-partitioned
// writer, producing state identical to calling Add once per key in order.
func (f *SuccinctCountingBloomFilter) AddAll(keys [][]byte, start, end int) Status {
	addAllRadix(f, f.arrayLength, start, end, func(i int, emit func(group, offset uint32)) {
		h := mixer.Hash64(keys[i])
		p := mixer.NewProbes(h)
		for j := 0; j < f.k; j++ {
			group, bit := f.probe(p.Next())
			emit(group, uint32(bit))
		}
	})
	return Ok
}

// addBlock implements blockSink: offset is a bit-within-group index.
func (f *SuccinctCountingBloomFilter) addBlock(entries []uint32) {
	words := f.words()
	for _, e := range entries {
		group := e >> 6
		bit := int(e & 63)
		succinct.Increment(f.pool, &words[group], &f.counts[group], bit, uint64(group))
	}
}

// Remove decrements all k probed counters for key by one. As with
// CountingBloomFilter, removing a key beyond how many times it was added is
// undefined and not defended against.
func (f *SuccinctCountingBloomFilter) Remove(key []byte) Status {
	f.remove(mixer.Hash64(key))
	return Ok
}

// RemoveUint64 is Remove's integer-key convenience wrapper.
func (f *SuccinctCountingBloomFilter) RemoveUint64(key uint64) Status {
	f.remove(mixer.Hash64Uint64(key))
	return Ok
}

func (f *SuccinctCountingBloomFilter) remove(h uint64) {
	p := mixer.NewProbes(h)
	words := f.words()
	for i := 0; i < f.k; i++ {
		group, bit := f.probe(p.Next())
		succinct.Decrement(f.pool, &words[group], &f.counts[group], bit)
	}
}

// Contain reads only the presence plane: Ok iff every probed bit is set.
func (f *SuccinctCountingBloomFilter) Contain(key []byte) Status {
	return f.contain(mixer.Hash64(key))
}

// ContainUint64 is Contain's integer-key convenience wrapper.
func (f *SuccinctCountingBloomFilter) ContainUint64(key uint64) Status {
	return f.contain(mixer.Hash64Uint64(key))
}

func (f *SuccinctCountingBloomFilter) contain(h uint64) Status {
	p := mixer.NewProbes(h)
	for i := 0; i < f.k; i++ {
		group, bit := f.probe(p.Next())
		if !f.presence.Test(uint(group)*64 + uint(bit)) {
			return NotFound
		}
	}
	return Ok
}

// SizeInBytes reports the memory footprint of the presence plane, counter
// plane and overflow pool combined.
func (f *SuccinctCountingBloomFilter) SizeInBytes() int {
	return len(f.words())*8 + len(f.counts)*8 + f.pool.Cap()*f.pool.SlotWords()*8
}
