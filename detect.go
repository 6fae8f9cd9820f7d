package qkd

import (
	"fmt"
	"math/rand"

	"github.com/quantumchat/qkd/bitmap"
)

type detectResult struct {
	detected   bool
	qber       float64
	tested     int
	sRemaining bitmap.Dense
	rRemaining bitmap.Dense
}

// detect estimates the quantum bit error rate by publicly comparing a random
// sample of the two sifted keys. The sample size is max(1, floor(n*fraction)),
// bounded by n. Sampled positions are consumed: comparing them reveals their
// values to any observer of the classical channel, so they are removed from
// both keys before amplification. detected is set when the observed error
// rate strictly exceeds QBERThreshold.
//
// Unequal input lengths mean the protocol's integrity was violated and are
// reported as ErrSiftIntegrity; callers treat that as detection. Equal
// lengths after sampling are guaranteed by construction, since the same
// index set is removed from both keys.
func detect(sKey, rKey bitmap.Dense, fraction float64, r *rand.Rand) (detectResult, error) {
	if sKey.Size() != rKey.Size() {
		return detectResult{}, fmt.Errorf("sender sifted %d bits, receiver %d: %w",
			sKey.Size(), rKey.Size(), ErrSiftIntegrity)
	}
	n := sKey.Size()
	if n == 0 {
		return detectResult{}, nil
	}
	k := int(float64(n) * fraction)
	if k < 1 {
		k = 1
	}
	if k > n {
		k = n
	}
	sampled := sampleIndices(r, n, k)

	var sTest, rTest bitmap.Dense
	inSample := make([]bool, n)
	for _, idx := range sampled {
		sTest.AppendBit(sKey.Get(idx))
		rTest.AppendBit(rKey.Get(idx))
		inSample[idx] = true
	}
	mismatches := bitmap.CountOnes(bitmap.XOr(sTest, rTest))
	qber := float64(mismatches) / float64(k)

	var sRem, rRem bitmap.Dense
	for i := 0; i < n; i++ {
		if inSample[i] {
			continue
		}
		sRem.AppendBit(sKey.Get(i))
		rRem.AppendBit(rKey.Get(i))
	}
	return detectResult{
		detected:   qber > QBERThreshold,
		qber:       qber,
		tested:     k,
		sRemaining: sRem,
		rRemaining: rRem,
	}, nil
}

// sampleIndices draws k distinct indices from [0, n) without replacement via
// a partial Fisher-Yates shuffle, touching only the first k positions.
func sampleIndices(r *rand.Rand, n, k int) []int {
	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	for i := 0; i < k; i++ {
		j := i + r.Intn(n-i)
		idx[i], idx[j] = idx[j], idx[i]
	}
	return idx[:k]
}
