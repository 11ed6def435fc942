// Package codec implements the per-vertex encoding schemes for compressed
// blend attributes: unit cube sampling, power-of-two AABB, optimal simplex
// sampling and permutation coding, together with the parameter completion
// logic that sizes their bit layouts.
//
// All encoders consume a slice of Influence pairs whose weights sum to one
// and emit exactly Params.VertexSize bytes per vertex through the bitpack
// primitives. Record layouts are fixed by Params; the same parameter set
// always produces the same field order, offsets and widths.
package codec

import "slices"

// Influence is one bone influence of a vertex: a bone index and its blend
// weight. Keeping index and weight in one struct keeps the pair co-sorted;
// the codec never maintains parallel arrays.
type Influence struct {
	Index  uint16
	Weight float32
}

// SortCanonical sorts influences into the canonical encoding order:
// descending weight, ties broken by ascending bone index. The tie-break on
// the index makes the canonical order independent of how the caller
// presented the pairs, so equal influence sets always canonicalize to the
// same sequence.
func SortCanonical(pairs []Influence) {
	slices.SortFunc(pairs, func(a, b Influence) int {
		switch {
		case a.Weight > b.Weight:
			return -1
		case a.Weight < b.Weight:
			return 1
		case a.Index < b.Index:
			return -1
		case a.Index > b.Index:
			return 1
		default:
			return 0
		}
	})
}

// SortByWeightStable sorts influences by descending weight only, keeping the
// original relative order of equal weights. The bone count reducer uses this
// so that ties during the "discard smallest" selection resolve by input
// order.
func SortByWeightStable(pairs []Influence) {
	slices.SortStableFunc(pairs, func(a, b Influence) int {
		switch {
		case a.Weight > b.Weight:
			return -1
		case a.Weight < b.Weight:
			return 1
		default:
			return 0
		}
	})
}
