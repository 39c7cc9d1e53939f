package distribution_test

import (
	"errors"
	"testing"

	"github.com/qrsteg/qrsteg/internal/distribution"
)

func TestLargestPrimeBelowSpotChecks(t *testing.T) {
	cases := map[int]int{100: 97, 20: 19, 3: 2}
	for m, want := range cases {
		if got := distribution.LargestPrimeBelow(m); got != want {
			t.Errorf("LargestPrimeBelow(%d) = %d, want %d", m, got, want)
		}
	}
}

func TestSequenceDistinctAndBounded(t *testing.T) {
	totals := []int{3, 7, 16, 100, 177 * 177}
	for _, total := range totals {
		need := total
		if need > 5000 {
			need = 5000
		}
		idx, err := distribution.Sequence(need, total)
		if err != nil {
			t.Fatalf("Sequence(%d, %d) error: %v", need, total, err)
		}
		seen := make(map[int]bool, need)
		for _, i := range idx {
			if i < 0 || i >= total {
				t.Fatalf("Sequence(%d, %d) produced out-of-range index %d", need, total, i)
			}
			if seen[i] {
				t.Fatalf("Sequence(%d, %d) produced duplicate index %d", need, total, i)
			}
			seen[i] = true
		}
	}
}

func TestSequenceCapacityExceeded(t *testing.T) {
	_, err := distribution.Sequence(10, 5)
	if !errors.Is(err, distribution.ErrCapacityExceeded) {
		t.Fatalf("Sequence(10, 5) error = %v, want ErrCapacityExceeded", err)
	}
}

func TestSequenceDegenerateSmallTotal(t *testing.T) {
	idx, err := distribution.Sequence(2, 2)
	if err != nil {
		t.Fatalf("Sequence(2, 2) error: %v", err)
	}
	for _, i := range idx {
		if i != 0 {
			t.Fatalf("Sequence(2, 2) = %v, want all zeros (p collapses to 2)", idx)
		}
	}
}
