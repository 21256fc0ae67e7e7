package succinct

// Pool is a fixed-capacity, free-listed pool of overflow slots. Each slot
// is slotWords 64-bit words wide and holds 64 per-bit lane counters,
// laneBits wide each (4 bits / 16 lanes per word for the succinct filter,
// 8 bits / 8 lanes per word for the blocked filter).
//
// The free list threads through the pool itself: a free slot's first word
// holds the index of the next free slot, and nextFree names the head. This
// mirrors the original C++ implementation's use of the overflow array both
// as storage and as free-list link nodes, so no separate index structure
// is needed.
type Pool struct {
	words     []uint64
	slotWords int
	laneBits  int
	nextFree  uint32
	full      bool
}

// NewPool allocates a pool with room for totalWords/slotWords slots. Every
// slotWords-aligned word is initialized to point one slot ahead, so the
// free list initially threads through the whole pool in order.
func NewPool(totalWords, slotWords, laneBits int) *Pool {
	p := &Pool{
		words:     make([]uint64, totalWords),
		slotWords: slotWords,
		laneBits:  laneBits,
	}
	for i := 0; i+slotWords <= totalWords; i += slotWords {
		p.words[i] = uint64(i + slotWords)
	}
	return p
}

// Cap returns the number of slots the pool can hold.
func (p *Pool) Cap() int {
	if p.slotWords == 0 {
		return 0
	}
	return len(p.words) / p.slotWords
}

// Alloc removes a slot from the free list, zeroes it, and returns its base
// word index. ok is false when the pool is exhausted.
func (p *Pool) Alloc() (index uint32, ok bool) {
	if int(p.nextFree)+p.slotWords > len(p.words) {
		p.full = true
		return 0, false
	}
	index = p.nextFree
	p.nextFree = uint32(p.words[index])
	for i := 0; i < p.slotWords; i++ {
		p.words[int(index)+i] = 0
	}
	return index, true
}

// Free returns a slot to the head of the free list.
func (p *Pool) Free(index uint32) {
	p.words[index] = uint64(p.nextFree)
	p.nextFree = index
}

// lanesPerWord is the number of laneBits-wide counters packed into one word.
func (p *Pool) lanesPerWord() int {
	return 64 / p.laneBits
}

// Lane reads the counter for bit within the slot starting at index.
func (p *Pool) Lane(index uint32, bit int) uint64 {
	lpw := p.lanesPerWord()
	wordOff := bit / lpw
	shift := uint(p.laneBits) * uint(bit%lpw)
	mask := (uint64(1) << uint(p.laneBits)) - 1
	return (p.words[int(index)+wordOff] >> shift) & mask
}

// AddLane adds delta to the counter for bit within the slot starting at
// index. This is a raw arithmetic add, not a masked read-modify-write: if a
// lane is already at its maximum representable value, an increment bleeds
// into the neighboring lane's bits. spec.md's non-goals accept this
// ("counters larger than what the chosen representation can hold" are
// defined but not corrected), so this matches the reference implementation
// exactly rather than adding a saturation check the original doesn't have.
func (p *Pool) AddLane(index uint32, bit int, delta int64) {
	lpw := p.lanesPerWord()
	wordOff := bit / lpw
	shift := uint(p.laneBits) * uint(bit%lpw)
	if delta >= 0 {
		p.words[int(index)+wordOff] += uint64(delta) << shift
	} else {
		p.words[int(index)+wordOff] -= uint64(-delta) << shift
	}
}

// Exhausted reports whether Alloc has ever failed for this pool.
func (p *Pool) Exhausted() bool {
	return p.full
}

// SlotWords reports the configured slot width in words.
func (p *Pool) SlotWords() int { return p.slotWords }

// LaneBits reports the configured lane width in bits.
func (p *Pool) LaneBits() int { return p.laneBits }
