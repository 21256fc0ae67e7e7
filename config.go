package succinctbf

import "math"

// defaultK computes the default number of hash probes from bitsPerItem when
// a caller doesn't override k, matching original_source's template default
// of round(bits_per_item * ln 2).
func defaultK(bitsPerItem int) int {
	k := int(math.Round(float64(bitsPerItem) * math.Ln2))
	if k < 1 {
		k = 1
	}
	return k
}

func ceilDiv(a, b uint64) uint64 {
	return (a + b - 1) / b
}

// overflowWords sizes an overflow pool for a filter with the given number of
// 64-bit groups, following spec.md's "100 + (array_length/100)*slot_size"
// headroom formula and rounding down to a whole number of slots so the
// result can be handed straight to succinct.NewPool.
func overflowWords(groups uint32, slotWords, slotSize int) int {
	words := 100 + (int(groups)/100)*slotSize
	slots := words / slotWords
	if slots < 1 {
		slots = 1
	}
	return slots * slotWords
}
