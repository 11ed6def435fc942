package codec

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/blendpack/bitpack"
	"github.com/arloliu/blendpack/format"
	"github.com/arloliu/blendpack/quant"
)

func TestPowerOfTwoSavings_Table(t *testing.T) {
	// Denominator:       2  3  4  5  6  7  8  9 10 11 12 13
	expected := []int{0, 0, 1, 1, 1, 1, 2, 2, 2, 2, 2, 2}
	for d := 2; d <= 13; d++ {
		require.Equal(t, expected[d-2], PowerOfTwoSavings(d), "denominator %d", d)
	}
}

func TestPowerOfTwoSavings_NonDecreasing(t *testing.T) {
	for d := 3; d <= 13; d++ {
		require.GreaterOrEqual(t, PowerOfTwoSavings(d), PowerOfTwoSavings(d-1), "denominator %d", d)
	}
}

func TestEncodePowerOfTwoAABB_Layout(t *testing.T) {
	p := Params{
		Method:        format.MethodPowerOfTwoAABB,
		MaxBoneCount:  4,
		MaxTupleCount: 1 << 12,
		VertexSize:    4,
	}
	p.Complete()
	require.Equal(t, 7, p.WeightBaseBitCount)
	require.Equal(t, 12, p.TupleIndexBitCount)

	// Presented out of order; the encoder canonicalizes to descending.
	pairs := []Influence{
		{Index: 9, Weight: 0.15},
		{Index: 2, Weight: 0.5},
		{Index: 5, Weight: 0.05},
		{Index: 1, Weight: 0.3},
	}

	record := make([]byte, p.VertexSize)
	require.NoError(t, EncodeRecord(record, &p, pairs, 4095))

	// Stored in rank order starting with the second largest, each field one
	// savings step narrower; the largest weight is implied.
	descending := []float32{0.3, 0.15, 0.05}
	nextBit := 0
	for i, w := range descending {
		width := 7 - PowerOfTwoSavings(i+2)
		stored := bitpack.Extract(record, nextBit, width)
		require.Equal(t, quant.QuantizeHalf(w, 7), stored, "rank %d", i+1)
		nextBit += width
	}
	require.Equal(t, 20, nextBit)
	require.Equal(t, uint32(4095), bitpack.Extract(record, nextBit, 12))
}

func TestEncodePowerOfTwoAABB_Reconstruction(t *testing.T) {
	p := Params{
		Method:        format.MethodPowerOfTwoAABB,
		MaxBoneCount:  4,
		MaxTupleCount: 1 << 12,
		VertexSize:    4,
	}
	p.Complete()

	weights := []float32{0.45, 0.3, 0.2, 0.05}
	pairs := make([]Influence, 4)
	for i, w := range weights {
		pairs[i] = Influence{Index: uint16(i), Weight: w}
	}

	record := make([]byte, p.VertexSize)
	require.NoError(t, EncodeRecord(record, &p, pairs, 0))

	sum := float32(0)
	nextBit := 0
	for i := 1; i < 4; i++ {
		width := p.WeightBaseBitCount - PowerOfTwoSavings(i+1)
		stored := bitpack.Extract(record, nextBit, width)
		decoded := quant.DequantizeHalf(stored, p.WeightBaseBitCount)
		require.InDelta(t, weights[i], decoded, 0.004, "rank %d", i)
		sum += decoded
		nextBit += width
	}
	require.InDelta(t, weights[0], 1.0-sum, 0.012)
}
