package mixer

import "testing"

func TestSplitRoundTrip(t *testing.T) {
	h := uint64(0x1122334455667788)
	a, b := Split(h)
	if a != 0x11223344 {
		t.Errorf("a = %#x, want 0x11223344", a)
	}
	if b != 0x55667788 {
		t.Errorf("b = %#x, want 0x55667788", b)
	}
}

func TestProbesSequence(t *testing.T) {
	h := uint64(10)<<32 | 3 // a=10, b=3
	p := NewProbes(h)
	want := []uint32{10, 13, 16, 19}
	for i, w := range want {
		if got := p.Next(); got != w {
			t.Errorf("probe %d = %d, want %d", i, got, w)
		}
	}
}

func TestHash64Deterministic(t *testing.T) {
	key := []byte("hello")
	if Hash64(key) != Hash64(key) {
		t.Error("Hash64 is not deterministic")
	}
	if Hash64([]byte("hello")) == Hash64([]byte("world")) {
		t.Error("Hash64 collided on distinct short keys (extremely unlikely, check wiring)")
	}
}

func TestHash64Uint64Deterministic(t *testing.T) {
	if Hash64Uint64(42) != Hash64Uint64(42) {
		t.Error("Hash64Uint64 is not deterministic")
	}
	if Hash64Uint64(42) == Hash64Uint64(43) {
		t.Error("Hash64Uint64 collided on distinct integers (extremely unlikely, check wiring)")
	}
}
