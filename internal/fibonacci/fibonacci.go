// Package fibonacci generates Fibonacci sequences with exact integer
// arithmetic. Values are represented as *big.Int because the sequence grows
// exponentially: F(93) already overflows uint64, and callers may request
// arbitrarily large counts.
//
// All functions are pure: results depend only on their arguments, and no
// state is shared between calls.
package fibonacci

import "math/big"

// Generate returns the first n Fibonacci numbers as an ordered sequence,
// index-aligned with the mathematical Fibonacci index: position 0 holds
// F(0)=0, position 1 holds F(1)=1, and every later position holds the sum
// of the two preceding terms.
//
// Any integer n is accepted without error:
//   - n <= 0 returns an empty sequence.
//   - n == 1 returns [0].
//   - n >= 2 returns [0, 1, F(2), ..., F(n-1)].
//
// The returned slice and its elements are freshly allocated on every call;
// callers may mutate them freely.
func Generate(n int) []*big.Int {
	if n <= 0 {
		return nil
	}
	if n == 1 {
		return []*big.Int{big.NewInt(0)}
	}

	seq := make([]*big.Int, 2, n)
	seq[0] = big.NewInt(0)
	seq[1] = big.NewInt(1)

	for i := 2; i < n; i++ {
		seq = append(seq, new(big.Int).Add(seq[i-1], seq[i-2]))
	}
	return seq
}

// Term returns F(n) without materializing the full prefix, using O(1)
// working memory. It follows the same convention as Generate: indices
// below zero have no term and yield nil.
func Term(n int) *big.Int {
	if n < 0 {
		return nil
	}

	a, b := big.NewInt(0), big.NewInt(1)
	for i := 0; i < n; i++ {
		a.Add(a, b)
		a, b = b, a
	}
	return a
}
