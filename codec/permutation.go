package codec

import (
	"math/bits"

	"github.com/arloliu/blendpack/bitpack"
	"github.com/arloliu/blendpack/quant"
)

// PermutationCodec parameterizes permutation coding for up to 13 bone
// influences in at most 64 packed bits.
//
// The code is a mixed-radix number with three digits, least significant
// first:
//
//	code = tupleIndex
//	     + TupleValueCount * (lehmer + BoneCount! * weightRank)
//
// weightRank numbers the sorted quantized weights: the BoneCount-1 smallest
// weights form a non-decreasing tuple on the half-range grid of
// WeightBitCount bits (each is at most one half, the largest weight is
// implied by the sum-to-one invariant), and the tuple's rank in the
// combinatorial number system is Σ C(q_i + i, i+1). lehmer is the factorial
// number system code of the permutation that maps canonical sorted order
// back to the caller's influence order, so its span depends only on the
// bone count, never on the weight resolution.
type PermutationCodec struct {
	// BoneCount is the number of influences per vertex, 2 to 13.
	BoneCount int
	// WeightBitCount is the half-range resolution of each stored weight.
	WeightBitCount int
	// TupleValueCount is the number of distinct tuple index values coded in
	// the least significant mixed-radix digit. Unlike the bit-field methods
	// it does not need to be a power of two.
	TupleValueCount uint64
}

// IsZero reports whether the codec is unset.
func (c PermutationCodec) IsZero() bool {
	return c.BoneCount == 0
}

// binomial returns C(n, k) for small k, computed with the exact stepwise
// product (every intermediate quotient is itself a binomial coefficient).
// The 128-bit multiply guards the step where the running product is close
// to the 64-bit limit.
func binomial(n uint64, k int) uint64 {
	if uint64(k) > n {
		return 0
	}

	result := uint64(1)
	for t := uint64(1); t <= uint64(k); t++ {
		hi, lo := bits.Mul64(result, n-uint64(k)+t)
		if hi >= t {
			// The coefficient exceeds 64 bits; report 0 so callers treat the
			// configuration as unsupported.
			return 0
		}
		result, _ = bits.Div64(hi, lo, t)
	}

	return result
}

// factorial returns n! for n up to 20.
func factorial(n int) uint64 {
	result := uint64(1)
	for i := uint64(2); i <= uint64(n); i++ {
		result *= i
	}

	return result
}

// WeightRankCount returns the number of distinct sorted weight tuples, i.e.
// the span of the weightRank digit: C(R + BoneCount - 1, BoneCount - 1)
// with R the maximum half-range code.
func (c PermutationCodec) WeightRankCount() uint64 {
	r := uint64(1)<<c.WeightBitCount - 1

	return binomial(r+uint64(c.BoneCount-1), c.BoneCount-1)
}

// CodeSpan returns the total number of code values, or 0 if the span
// overflows 64 bits.
func (c PermutationCodec) CodeSpan() uint64 {
	hi, lo := bits.Mul64(c.WeightRankCount(), factorial(c.BoneCount))
	if hi != 0 {
		return 0
	}

	hi, lo = bits.Mul64(lo, c.TupleValueCount)
	if hi != 0 {
		return 0
	}

	return lo
}

// lehmerEncode returns the factorial number system code of perm, a
// permutation of 0..len(perm)-1.
func lehmerEncode(perm []int) uint64 {
	n := len(perm)
	code := uint64(0)
	for s := 0; s < n; s++ {
		smaller := 0
		for t := s + 1; t < n; t++ {
			if perm[t] < perm[s] {
				smaller++
			}
		}
		code = code*uint64(n-s) + uint64(smaller)
	}

	return code
}

// lehmerDecode inverts lehmerEncode into out, which determines the length.
func lehmerDecode(code uint64, out []int) {
	n := len(out)

	digits := make([]int, n)
	for s := n - 1; s >= 0; s-- {
		radix := uint64(n - s)
		digits[s] = int(code % radix)
		code /= radix
	}

	remaining := make([]int, n)
	for i := range remaining {
		remaining[i] = i
	}
	for s := 0; s < n; s++ {
		d := digits[s]
		out[s] = remaining[d]
		remaining = append(remaining[:d], remaining[d+1:]...)
	}
}

// Encode codes one vertex. pairs holds the influences in caller order with
// all BoneCount weights materialized and summing to one.
func (c PermutationCodec) Encode(pairs []Influence, tupleIndex uint32) uint64 {
	b := c.BoneCount
	k := b - 1

	type ranked struct {
		inf Influence
		pos int
	}
	sorted := make([]ranked, b)
	for i, p := range pairs[:b] {
		sorted[i] = ranked{inf: p, pos: i}
	}
	// Canonical order: descending weight, ties by ascending index. The
	// original position rides along to form the permutation.
	for i := 1; i < b; i++ {
		for j := i; j > 0 && lessCanonical(sorted[j].inf, sorted[j-1].inf); j-- {
			sorted[j], sorted[j-1] = sorted[j-1], sorted[j]
		}
	}

	perm := make([]int, b)
	for s := range sorted {
		perm[s] = sorted[s].pos
	}
	lehmer := lehmerEncode(perm)

	// The k smallest weights, ascending, each on the half-range grid.
	weightRank := uint64(0)
	for i := 0; i < k; i++ {
		q := quant.QuantizeHalf(sorted[b-1-i].inf.Weight, c.WeightBitCount)
		weightRank += binomial(uint64(q)+uint64(i), i+1)
	}

	return uint64(tupleIndex) + c.TupleValueCount*(lehmer+factorial(b)*weightRank)
}

// Decode inverts Encode, reconstructing the quantized weights in caller
// order plus the tuple index. It exists for validation and tests; runtime
// decoding happens on the GPU.
func (c PermutationCodec) Decode(code uint64) (pairs []Influence, tupleIndex uint32) {
	b := c.BoneCount
	k := b - 1

	tupleIndex = uint32(code % c.TupleValueCount)
	code /= c.TupleValueCount

	factB := factorial(b)
	lehmer := code % factB
	weightRank := code / factB

	perm := make([]int, b)
	lehmerDecode(lehmer, perm)

	// Greedy combinadic inversion, largest digit first.
	quantized := make([]uint32, k)
	for i := k - 1; i >= 0; i-- {
		digit := uint64(i)
		for binomial(digit+1, i+1) <= weightRank {
			digit++
		}
		weightRank -= binomial(digit, i+1)
		quantized[i] = uint32(digit - uint64(i))
	}

	sortedWeights := make([]float32, b)
	sum := float32(0)
	for i := 0; i < k; i++ {
		w := quant.DequantizeHalf(quantized[i], c.WeightBitCount)
		sortedWeights[b-1-i] = w
		sum += w
	}
	sortedWeights[0] = 1.0 - sum

	pairs = make([]Influence, b)
	for s := 0; s < b; s++ {
		pairs[perm[s]] = Influence{Weight: sortedWeights[s]}
	}

	return pairs, tupleIndex
}

func lessCanonical(a, b Influence) bool {
	if a.Weight != b.Weight {
		return a.Weight > b.Weight
	}

	return a.Index < b.Index
}

// encodePermutation writes one vertex using permutation coding.
func encodePermutation(record []byte, p *Params, pairs []Influence, tupleIndex uint32) {
	code := p.Permutation.Encode(pairs, tupleIndex)
	bitpack.Insert64(record, code, 0, p.VertexSize*8)
}
