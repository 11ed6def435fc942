package codec

import (
	"fmt"
	"math/bits"

	"github.com/arloliu/blendpack/errs"
	"github.com/arloliu/blendpack/format"
	"github.com/arloliu/blendpack/quant"
)

const (
	// MaxSupportedBoneCount is the largest number of bone influences per
	// vertex any method supports (the permutation coding ceiling).
	MaxSupportedBoneCount = 13

	// minWeightBitCount is the smallest useful per-weight resolution.
	minWeightBitCount = 2
)

// Params describes how blend attributes are compressed inside a vertex
// buffer. A caller fills in Method, MaxBoneCount, MaxTupleCount and
// VertexSize and calls Complete to derive the remaining layout fields; a
// completed Params is immutable by convention and fully determines every
// record's bit layout.
type Params struct {
	// Method selects the compression scheme.
	Method format.Method
	// MaxBoneCount is the number of bone influences per vertex, 2 to 13.
	MaxBoneCount int
	// MaxTupleCount is the number of distinct tuple indices the layout can
	// address. Complete may round it up to the addressable count.
	MaxTupleCount int
	// VertexSize is the exact size of one encoded vertex record in bytes.
	VertexSize int
	// WeightBaseBitCount is the bit width of the largest stored weight.
	// Power-of-two AABB reduces the width per rank below this base.
	WeightBaseBitCount int
	// TupleIndexBitCount is the width of the explicit tuple index field, for
	// methods that store the tuple index as a bit field. Permutation coding
	// codes the tuple index mixed-radix instead and leaves this zero.
	TupleIndexBitCount int
	// Permutation holds the permutation coding sub-parameters when Method is
	// MethodPermutation.
	Permutation PermutationCodec
}

// Complete derives the layout fields of a partially specified parameter set
// so that every record fits exactly in VertexSize bytes. Only Method,
// MaxBoneCount, MaxTupleCount and VertexSize are read; the rest is
// overwritten.
//
// Completion makes the minimal change that yields a supported set: bone
// count and bit widths are clamped into supported ranges, VertexSize is
// adjusted to the exact byte count of the derived layout, and only when
// MaxTupleCount cannot be supported at any vertex size does the method
// itself degrade to MethodNone.
//
// Complete is idempotent: it iterates the per-method derivation to a fixed
// point, so completing an already-completed set changes nothing.
func (p *Params) Complete() {
	// The derivation converges in a few steps; the bound is a safety net.
	for iter := 0; iter < 16; iter++ {
		next := *p
		next.deriveOnce()
		if next == *p {
			return
		}
		*p = next
	}
}

// deriveOnce performs one round of the per-method derivation.
func (p *Params) deriveOnce() {
	if p.MaxBoneCount < 2 {
		p.MaxBoneCount = 2
	}
	if p.MaxBoneCount > MaxSupportedBoneCount {
		p.MaxBoneCount = MaxSupportedBoneCount
	}
	if p.MaxTupleCount < 1 {
		p.MaxTupleCount = 1
	}

	tupleBits := bits.Len(uint(p.MaxTupleCount - 1))

	switch p.Method {
	case format.MethodUnitCube:
		p.completeWeightFields(tupleBits, 23, func(weightBits int) int {
			return (p.MaxBoneCount - 1) * weightBits
		})
	case format.MethodPowerOfTwoAABB:
		p.completeWeightFields(tupleBits, 22, func(weightBits int) int {
			total := 0
			for i := 0; i < p.MaxBoneCount-1; i++ {
				total += weightBits - PowerOfTwoSavings(i+2)
			}

			return total
		})
	case format.MethodOptimalSimplex19, format.MethodOptimalSimplex22, format.MethodOptimalSimplex35:
		p.MaxBoneCount = 4
		weightBits := p.Method.SimplexBitCount()
		// The tuple index sits above the weight code inside one 64-bit word.
		if tupleBits > 64-weightBits {
			tupleBits = 64 - weightBits
		}
		p.VertexSize = (weightBits + tupleBits + 7) / 8
		p.WeightBaseBitCount = 0
		p.TupleIndexBitCount = tupleBits
		p.MaxTupleCount = 1 << tupleBits
		p.Permutation = PermutationCodec{}
	case format.MethodPermutation:
		p.completePermutation()
	case format.MethodNone:
		p.completeNone()
	default:
		p.Method = format.MethodNone
		p.completeNone()
	}
}

// completeWeightFields handles the two methods that store each weight in its
// own bit field: pick the largest base width whose layout fits VertexSize,
// then shrink VertexSize to the exact byte count.
func (p *Params) completeWeightFields(tupleBits, maxWeightBits int, weightBitsTotal func(int) int) {
	// Keep at least one byte of room for weights next to the tuple index.
	if p.VertexSize*8 <= tupleBits {
		p.VertexSize = (tupleBits + 15) / 8
	}

	budget := p.VertexSize*8 - tupleBits
	weightBits := maxWeightBits
	for weightBits > minWeightBitCount && weightBitsTotal(weightBits) > budget {
		weightBits--
	}

	totalBits := weightBitsTotal(weightBits) + tupleBits
	p.WeightBaseBitCount = weightBits
	p.TupleIndexBitCount = tupleBits
	p.VertexSize = (totalBits + 7) / 8
	p.MaxTupleCount = 1 << tupleBits
	p.Permutation = PermutationCodec{}
}

// completePermutation sizes the permutation codec: the finest weight
// resolution whose mixed-radix span fits the record, growing the record up
// to 8 bytes if needed. If even 8 bytes cannot hold one weight bit per
// influence the tuple count is unsupportable and the method degrades to
// MethodNone.
func (p *Params) completePermutation() {
	if p.VertexSize < 1 {
		p.VertexSize = 1
	}
	if p.VertexSize > 8 {
		p.VertexSize = 8
	}

	for {
		if weightBits := p.permutationWeightBits(p.VertexSize); weightBits > 0 {
			p.Permutation = PermutationCodec{
				BoneCount:       p.MaxBoneCount,
				WeightBitCount:  weightBits,
				TupleValueCount: uint64(p.MaxTupleCount),
			}
			span := p.Permutation.CodeSpan()
			p.VertexSize = (64 - bits.LeadingZeros64(span-1) + 7) / 8
			p.WeightBaseBitCount = weightBits
			p.TupleIndexBitCount = 0

			return
		}
		if p.VertexSize == 8 {
			break
		}
		p.VertexSize++
	}

	// Last resort: fall back to the uncompressed ground truth.
	p.Method = format.MethodNone
	p.completeNone()
}

// permutationWeightBits returns the largest weight resolution whose code
// span fits vertexSize bytes, or 0 if none does.
func (p *Params) permutationWeightBits(vertexSize int) int {
	for weightBits := quant.MaxBitCount; weightBits >= 1; weightBits-- {
		c := PermutationCodec{
			BoneCount:       p.MaxBoneCount,
			WeightBitCount:  weightBits,
			TupleValueCount: uint64(p.MaxTupleCount),
		}
		span := c.CodeSpan()
		if span == 0 {
			continue
		}
		spanBits := 64 - bits.LeadingZeros64(span-1)
		if spanBits <= vertexSize*8 {
			return weightBits
		}
	}

	return 0
}

// completeNone sets the layout of uncompressed blend attributes: one uint16
// index and one float32 weight per influence.
func (p *Params) completeNone() {
	p.VertexSize = p.MaxBoneCount * 6
	p.WeightBaseBitCount = 0
	p.TupleIndexBitCount = 0
	p.Permutation = PermutationCodec{}
}

// Validate reports whether a completed parameter set can drive the encoder.
func (p *Params) Validate() error {
	if p.Method == format.MethodNone {
		return fmt.Errorf("%w: method %s does not encode records", errs.ErrUnsupportedParams, p.Method)
	}
	if p.MaxBoneCount < 2 || p.MaxBoneCount > MaxSupportedBoneCount {
		return fmt.Errorf("%w: bone count %d outside [2, %d]",
			errs.ErrUnsupportedParams, p.MaxBoneCount, MaxSupportedBoneCount)
	}
	if p.Method.IsSimplex() && p.MaxBoneCount != 4 {
		return fmt.Errorf("%w: %s requires exactly 4 bone influences, got %d",
			errs.ErrUnsupportedParams, p.Method, p.MaxBoneCount)
	}
	if p.Method == format.MethodPermutation && p.Permutation.IsZero() {
		return fmt.Errorf("%w: permutation codec not completed", errs.ErrUnsupportedParams)
	}
	if p.VertexSize < 1 {
		return fmt.Errorf("%w: vertex size %d", errs.ErrUnsupportedParams, p.VertexSize)
	}

	return nil
}

// EncodeRecord writes the compressed record for one vertex into record,
// which must hold at least VertexSize bytes. pairs holds the vertex's
// influences with all MaxBoneCount weights materialized and summing to one;
// tupleIndex is the vertex's id in the shared tuple table.
func EncodeRecord(record []byte, p *Params, pairs []Influence, tupleIndex uint32) error {
	if len(pairs) < p.MaxBoneCount {
		return fmt.Errorf("%w: %d influences, need %d", errs.ErrInvalidInput, len(pairs), p.MaxBoneCount)
	}

	switch p.Method {
	case format.MethodUnitCube:
		encodeUnitCube(record, p, pairs, tupleIndex)
	case format.MethodPowerOfTwoAABB:
		encodePowerOfTwoAABB(record, p, pairs, tupleIndex)
	case format.MethodOptimalSimplex19, format.MethodOptimalSimplex22, format.MethodOptimalSimplex35:
		encodeSimplex(record, p, pairs, tupleIndex)
	case format.MethodPermutation:
		encodePermutation(record, p, pairs, tupleIndex)
	default:
		return fmt.Errorf("%w: method %s", errs.ErrUnsupportedParams, p.Method)
	}

	return nil
}
