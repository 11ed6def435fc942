package blend

import (
	"fmt"

	"github.com/arloliu/blendpack/codec"
	"github.com/arloliu/blendpack/errs"
)

// ReduceBoneCount trims every vertex from srcBoneCount influences down to
// dstBoneCount by keeping the influences with the largest weights, ties
// broken by input order. The retained weights are renormalized to sum to one
// and written in descending order with indices permuted identically. When
// writeLastWeight is false the smallest retained weight is omitted; a
// consumer reconstructs it as one minus the sum of the others.
//
// Parameters:
//   - dst: destination views sized for dstBoneCount influences. When
//     writeLastWeight is true the weight view must hold dstBoneCount
//     elements per vertex instead of dstBoneCount-1.
//   - src: source views sized for srcBoneCount influences.
//   - vertexCount: number of vertices to process.
//
// Returns ErrUnsupportedParams when dstBoneCount is below 2, exceeds
// srcBoneCount, or srcBoneCount exceeds the supported ceiling. Vertex data
// itself never fails reduction.
func ReduceBoneCount(dst, src Attributes, dstBoneCount, srcBoneCount, vertexCount int, writeLastWeight bool) error {
	if dstBoneCount < 2 || dstBoneCount > srcBoneCount || srcBoneCount > codec.MaxSupportedBoneCount {
		return fmt.Errorf("%w: reduce %d influences to %d",
			errs.ErrUnsupportedParams, srcBoneCount, dstBoneCount)
	}

	writtenWeights := dstBoneCount - 1
	if writeLastWeight {
		writtenWeights = dstBoneCount
	}

	pairs := make([]codec.Influence, srcBoneCount)
	for v := 0; v < vertexCount; v++ {
		gatherInfluences(pairs, src, srcBoneCount, v)
		codec.SortByWeightStable(pairs)
		retained := pairs[:dstBoneCount]

		sum := float32(0)
		for _, p := range retained {
			sum += p.Weight
		}
		factor := 1.0 / sum

		for j, p := range retained {
			dst.Indices.Set(v, j, p.Index)
			if j < writtenWeights {
				dst.Weights.Set(v, j, p.Weight*factor)
			}
		}
	}

	return nil
}
