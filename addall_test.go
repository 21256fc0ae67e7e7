package succinctbf

import "testing"

type recordingSink struct {
	blocks [][]uint32
}

func (s *recordingSink) addBlock(entries []uint32) {
	cp := make([]uint32, len(entries))
	copy(cp, entries)
	s.blocks = append(s.blocks, cp)
}

func TestAddAllRadixFlushesEveryEntryExactlyOnce(t *testing.T) {
	sink := &recordingSink{}
	const numGroups = 1 << 16
	const numKeys = 5000

	addAllRadix(sink, numGroups, 0, numKeys, func(i int, emit func(group, offset uint32)) {
		// three probes per key, spread across the group space.
		emit(uint32(i)%numGroups, 1)
		emit(uint32(i*7)%numGroups, 2)
		emit(uint32(i*13)%numGroups, 3)
	})

	total := 0
	for _, b := range sink.blocks {
		total += len(b)
	}
	if want := numKeys * 3; total != want {
		t.Fatalf("total flushed entries = %d, want %d", total, want)
	}
}

func TestAddAllRadixEmptyRangeFlushesNothing(t *testing.T) {
	sink := &recordingSink{}
	addAllRadix(sink, 100, 5, 5, func(i int, emit func(group, offset uint32)) {
		t.Fatal("forEachProbe should not be called for an empty range")
	})
	if len(sink.blocks) != 0 {
		t.Fatalf("got %d blocks, want 0", len(sink.blocks))
	}
}
