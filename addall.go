package succinctbf

// blockSink receives one flushed batch of probe writes. Each entry packs a
// group index and a within-group offset as group<<6 | offset — six bits are
// enough for both the succinct filter's bit-within-group index (0..63) and
// the plain filter's nibble shift amount (0, 4, .., 60).
type blockSink interface {
	addBlock(entries []uint32)
}

// addAllBlockBits sets the radix partition width: group indices sharing the
// same high bits (index >> addAllBlockBits) land in the same scratch block,
// so a flush touches a bounded, roughly-sequential window of the target
// array rather than scattering across all of it.
const addAllBlockBits = 14
const addAllBlockSize = 1 << addAllBlockBits

// addAllRadix implements the bulk-add path shared by CountingBloomFilter and
// SuccinctCountingBloomFilter (spec.md §4.5): it partitions probe writes for
// keys[start:end] into (numGroups>>addAllBlockBits)+1 scratch blocks, flushing a
// block to sink.addBlock as soon as it fills, and flushing every remaining
// partial block once all keys have been probed. forEachProbe must invoke
// emit once per probe for key index i.
//
// This produces the same final state as calling sink's own per-key Add for
// each key in order — it only changes the order in which individual probe
// writes land, which commutes because CountingBloomFilter and
// SuccinctCountingBloomFilter never read a counter mid-update from another
// probe of the same key.
func addAllRadix(sink blockSink, numGroups uint32, start, end int, forEachProbe func(i int, emit func(group, offset uint32))) {
	numBlocks := int(numGroups>>addAllBlockBits) + 1
	scratch := make([][]uint32, numBlocks)
	for i := range scratch {
		scratch[i] = make([]uint32, 0, addAllBlockSize)
	}

	flush := func(b int) {
		if len(scratch[b]) == 0 {
			return
		}
		sink.addBlock(scratch[b])
		scratch[b] = scratch[b][:0]
	}

	for i := start; i < end; i++ {
		forEachProbe(i, func(group, offset uint32) {
			b := int(group >> addAllBlockBits)
			scratch[b] = append(scratch[b], (group<<6)|(offset&63))
			if len(scratch[b]) == addAllBlockSize {
				flush(b)
			}
		})
	}
	for b := range scratch {
		flush(b)
	}
}
