package succinctbf

import (
	"fmt"
	"testing"
)

func TestNewCountingBloomFilterRejectsZeroCapacity(t *testing.T) {
	if _, err := NewCountingBloomFilter(0, 10, 0); err != ErrZeroCapacity {
		t.Errorf("err = %v, want ErrZeroCapacity", err)
	}
	if _, err := NewCountingBloomFilter(100, 0, 0); err != ErrZeroCapacity {
		t.Errorf("err = %v, want ErrZeroCapacity", err)
	}
}

func TestCountingBloomFilterAddContainRemove(t *testing.T) {
	f, err := NewCountingBloomFilter(1000, 10, 7)
	if err != nil {
		t.Fatal(err)
	}
	for i := uint64(0); i < 1000; i++ {
		f.AddUint64(i)
	}
	for i := uint64(0); i < 1000; i++ {
		if got := f.ContainUint64(i); got != Ok {
			t.Fatalf("ContainUint64(%d) = %v, want Ok", i, got)
		}
	}

	falsePositives := 0
	const probeCount = 1000
	for i := uint64(1_000_000); i < 1_000_000+probeCount; i++ {
		if f.ContainUint64(i) == Ok {
			falsePositives++
		}
	}
	rate := float64(falsePositives) / float64(probeCount)
	if rate > 0.05 {
		t.Errorf("false positive rate = %v, want well under 5%%", rate)
	}

	for i := uint64(0); i < 1000; i++ {
		f.RemoveUint64(i)
	}
	for i, w := range f.data {
		if w != 0 {
			t.Errorf("data[%d] = %#x, want 0 after removing every inserted key once", i, w)
		}
	}
}

func TestCountingBloomFilterDoubleInsertDoubleRemove(t *testing.T) {
	f, err := NewCountingBloomFilter(1000, 10, 7)
	if err != nil {
		t.Fatal(err)
	}
	for i := uint64(0); i < 1000; i++ {
		f.AddUint64(i)
		f.AddUint64(i)
	}
	for i := uint64(0); i < 1000; i++ {
		if got := f.ContainUint64(i); got != Ok {
			t.Fatalf("after double-add, ContainUint64(%d) = %v, want Ok", i, got)
		}
	}
	for i := uint64(0); i < 1000; i++ {
		f.RemoveUint64(i)
	}
	for i := uint64(0); i < 1000; i++ {
		if got := f.ContainUint64(i); got != Ok {
			t.Fatalf("after one removal of a double-add, ContainUint64(%d) = %v, want Ok", i, got)
		}
	}
	for i := uint64(0); i < 1000; i++ {
		f.RemoveUint64(i)
	}
}

func TestCountingBloomFilterAddAllParity(t *testing.T) {
	const n = 10000
	keys := make([][]byte, n)
	for i := range keys {
		keys[i] = []byte(fmt.Sprintf("key-%d", i))
	}

	f1, err := NewCountingBloomFilter(n, 10, 7)
	if err != nil {
		t.Fatal(err)
	}
	for _, k := range keys {
		f1.Add(k)
	}

	f2, err := NewCountingBloomFilter(n, 10, 7)
	if err != nil {
		t.Fatal(err)
	}
	f2.AddAll(keys, 0, n)

	if len(f1.data) != len(f2.data) {
		t.Fatalf("array length mismatch: %d vs %d", len(f1.data), len(f2.data))
	}
	for i := range f1.data {
		if f1.data[i] != f2.data[i] {
			t.Fatalf("data[%d] = %#x, want %#x (AddAll parity)", i, f2.data[i], f1.data[i])
		}
	}
}

func TestCountingBloomFilterSizeInBytes(t *testing.T) {
	f, err := NewCountingBloomFilter(1000, 10, 7)
	if err != nil {
		t.Fatal(err)
	}
	if got := f.SizeInBytes(); got != len(f.data)*8 {
		t.Errorf("SizeInBytes() = %d, want %d", got, len(f.data)*8)
	}
}
