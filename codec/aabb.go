package codec

import (
	"math/bits"

	"github.com/arloliu/blendpack/bitpack"
	"github.com/arloliu/blendpack/quant"
)

// PowerOfTwoSavings returns how many bits the power-of-two AABB method saves
// for a weight whose denominator bound is the given value: the k-th largest
// weight of a normalized vertex is at most 1/k, so the axis of the bounding
// box along that weight shrinks to the next power of two above 1/k and the
// weight needs floor(log2(denominator)) - 1 fewer bits than the half-range
// base width.
//
// Savings are non-decreasing in the denominator (and therefore in the
// influence rank). Valid denominators are 2 through 13.
func PowerOfTwoSavings(denominator int) int {
	return bits.Len(uint(denominator)) - 2
}

// encodePowerOfTwoAABB writes one vertex using the power-of-two AABB scheme:
// influences are sorted descending, the largest weight is inferred by the
// consumer, and each following weight is stored half-range quantized with a
// rank-dependent reduced width, followed by the tuple index.
func encodePowerOfTwoAABB(record []byte, p *Params, pairs []Influence, tupleIndex uint32) {
	sorted := make([]Influence, len(pairs))
	copy(sorted, pairs)
	SortCanonical(sorted)

	nextBit := 0
	for i := 0; i < p.MaxBoneCount-1; i++ {
		// sorted[i+1] is the weight of rank i+1; its denominator bound is i+2.
		quantized := quant.QuantizeHalf(sorted[i+1].Weight, p.WeightBaseBitCount)
		width := p.WeightBaseBitCount - PowerOfTwoSavings(i + 2)
		bitpack.Insert(record, quantized, nextBit, width)
		nextBit += width
	}

	bitpack.Insert(record, tupleIndex, nextBit, p.TupleIndexBitCount)
}
