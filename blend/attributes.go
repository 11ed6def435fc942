// Package blend implements the batch entry points of the blend attribute
// codec: bone count reduction and buffer compression. Both operate on
// caller-owned strided buffers so the codec's fields can stay interleaved
// with unrelated per-vertex data.
package blend

import (
	"fmt"

	"github.com/arloliu/blendpack/codec"
	"github.com/arloliu/blendpack/errs"
	"github.com/arloliu/blendpack/internal/strided"
)

// weightSumTolerance bounds how far the explicit weights of a vertex may
// exceed one before the vertex counts as malformed.
const weightSumTolerance = 1e-4

// Attributes describes the blend attributes of a vertex buffer.
type Attributes struct {
	// Indices holds boneCount bone indices per vertex.
	Indices strided.U16
	// Weights holds boneCount-1 weights per vertex; the last weight is
	// implied by the sum-to-one invariant.
	Weights strided.F32
}

// NewAttributes builds views over raw index and weight buffers for vertices
// with boneCount influences.
func NewAttributes(indices []byte, indexStride int, weights []byte, weightStride, boneCount int) Attributes {
	return Attributes{
		Indices: strided.NewU16(indices, indexStride, boneCount),
		Weights: strided.NewF32(weights, weightStride, boneCount-1),
	}
}

// gatherInfluences materializes the influences of one vertex, inferring the
// last weight from the sum-to-one invariant. It performs no validation; the
// inferred weight may come out negative for malformed input.
func gatherInfluences(dst []codec.Influence, src Attributes, boneCount, vertex int) {
	last := float32(1.0)
	for i := 0; i < boneCount-1; i++ {
		w := src.Weights.At(vertex, i)
		dst[i] = codec.Influence{Index: src.Indices.At(vertex, i), Weight: w}
		last -= w
	}
	dst[boneCount-1] = codec.Influence{Index: src.Indices.At(vertex, boneCount-1), Weight: last}
}

// validateInfluences rejects malformed vertex data: negative weights, or
// explicit weights summing beyond one. An inferred weight that is negative
// within the tolerance is clamped to zero in place.
func validateInfluences(pairs []codec.Influence, vertex int) error {
	for i := 0; i < len(pairs)-1; i++ {
		if pairs[i].Weight < 0 {
			return fmt.Errorf("%w: vertex %d weight %d is negative", errs.ErrInvalidInput, vertex, i)
		}
	}

	last := pairs[len(pairs)-1].Weight
	if last < -weightSumTolerance {
		return fmt.Errorf("%w: vertex %d weights sum to %v", errs.ErrInvalidInput, vertex, 1.0-last)
	}
	if last < 0 {
		pairs[len(pairs)-1].Weight = 0
	}

	return nil
}
