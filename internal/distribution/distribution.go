// Package distribution generates the deterministic prime-step permutation
// that scatters a secondary payload's bits across a QR matrix's flippable
// modules. The same (need, total) pair always yields the same sequence, so
// the encoder and decoder can independently derive it without exchanging
// any side channel.
package distribution

import (
	"errors"
	"fmt"
	"sync"
)

// ErrCapacityExceeded is returned by Sequence when need exceeds total.
var ErrCapacityExceeded = errors.New("CapacityExceeded")

var primeCache sync.Map // map[int]int, keyed by the argument to LargestPrimeBelow

// IsPrime reports whether n is prime, by trial division up to floor(sqrt(n)).
func IsPrime(n int) bool {
	if n < 2 {
		return false
	}
	for i := 2; i*i <= n; i++ {
		if n%i == 0 {
			return false
		}
	}
	return true
}

// LargestPrimeBelow returns the largest prime strictly less than m, scanning
// downward from m-1 to 3. Returns 2 if no prime is found in that range (in
// particular for m <= 3). Results are cached by m since both the encoder and
// decoder call this with the same flippable count repeatedly.
func LargestPrimeBelow(m int) int {
	if p, ok := primeCache.Load(m); ok {
		return p.(int)
	}

	p := 2
	for n := m - 1; n >= 3; n-- {
		if IsPrime(n) {
			p = n
			break
		}
	}

	primeCache.Store(m, p)
	return p
}

// Sequence returns need pairwise-distinct indices in [0, total), generated
// by idx[i] = (i*p) mod total where p is the largest prime below total. When
// total <= 2, p collapses to 2 and the sequence degenerates to zeros; callers
// must treat that as zero effective capacity.
func Sequence(need, total int) ([]int, error) {
	if need > total {
		return nil, fmt.Errorf("%w: need=%d total=%d", ErrCapacityExceeded, need, total)
	}
	if need == 0 {
		return []int{}, nil
	}

	p := LargestPrimeBelow(total)
	idx := make([]int, need)
	for i := 0; i < need; i++ {
		idx[i] = (i * p) % total
	}

	return idx, nil
}
