package bitops

import (
	"math/bits"
	"math/rand"
	"testing"
)

func TestPopcount64(t *testing.T) {
	cases := []struct {
		x    uint64
		want int
	}{
		{0, 0},
		{1, 1},
		{0xffffffffffffffff, 64},
		{0x8000000000000001, 2},
	}
	for _, c := range cases {
		if got := Popcount64(c.x); got != c.want {
			t.Errorf("Popcount64(%#x) = %d, want %d", c.x, got, c.want)
		}
	}
}

func TestSelect64(t *testing.T) {
	// x has set bits at 0, 5, 63.
	x := uint64(1) | (1 << 5) | (1 << 63)
	cases := []struct {
		n    int
		want int
	}{
		{0, 0},
		{1, 5},
		{2, 63},
	}
	for _, c := range cases {
		if got := Select64(x, c.n); got != c.want {
			t.Errorf("Select64(%#x, %d) = %d, want %d", x, c.n, got, c.want)
		}
	}
}

func TestSelect64RandomAgainstScan(t *testing.T) {
	r := rand.New(rand.NewSource(1))
	for i := 0; i < 10000; i++ {
		x := r.Uint64()
		count := bits.OnesCount64(x)
		if count == 0 {
			continue
		}
		n := r.Intn(count)
		got := Select64(x, n)

		// naive bit-by-bit scan as the oracle
		want := -1
		seen := 0
		for b := 0; b < 64; b++ {
			if x&(1<<uint(b)) != 0 {
				if seen == n {
					want = b
					break
				}
				seen++
			}
		}
		if got != want {
			t.Fatalf("Select64(%#x, %d) = %d, want %d", x, n, got, want)
		}
	}
}

func TestSelect64Boundaries(t *testing.T) {
	// bit 0 set only.
	if got := Select64(1, 0); got != 0 {
		t.Errorf("Select64(1,0) = %d, want 0", got)
	}
	// bit 63 set only.
	if got := Select64(1<<63, 0); got != 63 {
		t.Errorf("Select64(1<<63,0) = %d, want 63", got)
	}
}

func TestLeadingZeros64(t *testing.T) {
	if got := LeadingZeros64(1); got != 63 {
		t.Errorf("LeadingZeros64(1) = %d, want 63", got)
	}
	if got := LeadingZeros64(1 << 63); got != 0 {
		t.Errorf("LeadingZeros64(1<<63) = %d, want 0", got)
	}
}

func TestRotl64(t *testing.T) {
	if got := Rotl64(1, 1); got != 2 {
		t.Errorf("Rotl64(1,1) = %d, want 2", got)
	}
	if got := Rotl64(1<<63, 1); got != 1 {
		t.Errorf("Rotl64(1<<63,1) = %d, want 1", got)
	}
}

func TestReduce32(t *testing.T) {
	if got := Reduce32(0, 100); got != 0 {
		t.Errorf("Reduce32(0,100) = %d, want 0", got)
	}
	if got := Reduce32(0xffffffff, 100); got >= 100 {
		t.Errorf("Reduce32 out of range: %d", got)
	}
}
