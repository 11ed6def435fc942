package codec

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/blendpack/format"
)

func TestComplete_UnitCube(t *testing.T) {
	p := Params{
		Method:        format.MethodUnitCube,
		MaxBoneCount:  4,
		MaxTupleCount: 1000,
		VertexSize:    4,
	}
	p.Complete()

	require.Equal(t, format.MethodUnitCube, p.Method)
	require.Equal(t, 10, p.TupleIndexBitCount)
	require.Equal(t, 1024, p.MaxTupleCount)
	// 3 weights at 7 bits + 10 tuple bits = 31 bits -> 4 bytes.
	require.Equal(t, 7, p.WeightBaseBitCount)
	require.Equal(t, 4, p.VertexSize)
	require.NoError(t, p.Validate())
}

func TestComplete_UnitCube_TwoBones(t *testing.T) {
	p := Params{
		Method:        format.MethodUnitCube,
		MaxBoneCount:  2,
		MaxTupleCount: 256,
		VertexSize:    2,
	}
	p.Complete()

	require.Equal(t, 8, p.TupleIndexBitCount)
	require.Equal(t, 8, p.WeightBaseBitCount)
	require.Equal(t, 2, p.VertexSize)
}

func TestComplete_PowerOfTwoAABB(t *testing.T) {
	p := Params{
		Method:        format.MethodPowerOfTwoAABB,
		MaxBoneCount:  4,
		MaxTupleCount: 1 << 12,
		VertexSize:    4,
	}
	p.Complete()

	require.Equal(t, format.MethodPowerOfTwoAABB, p.Method)
	require.Equal(t, 12, p.TupleIndexBitCount)
	// Savings for denominators 2,3,4 are 0,0,1, so three weights cost
	// 3*base - 1 bits; base 7 gives 20 + 12 = 32 bits exactly.
	require.Equal(t, 7, p.WeightBaseBitCount)
	require.Equal(t, 4, p.VertexSize)
}

func TestComplete_Simplex(t *testing.T) {
	for _, method := range []format.Method{
		format.MethodOptimalSimplex19,
		format.MethodOptimalSimplex22,
		format.MethodOptimalSimplex35,
	} {
		p := Params{
			Method:        method,
			MaxBoneCount:  8, // forced down to 4
			MaxTupleCount: 500,
			VertexSize:    2,
		}
		p.Complete()

		require.Equal(t, 4, p.MaxBoneCount, method.String())
		require.Equal(t, 9, p.TupleIndexBitCount)
		require.Equal(t, 512, p.MaxTupleCount)
		require.Equal(t, (method.SimplexBitCount()+9+7)/8, p.VertexSize)
		require.NoError(t, p.Validate())
	}
}

func TestComplete_Permutation(t *testing.T) {
	p := Params{
		Method:        format.MethodPermutation,
		MaxBoneCount:  4,
		MaxTupleCount: 1000,
		VertexSize:    6,
	}
	p.Complete()

	require.Equal(t, format.MethodPermutation, p.Method)
	require.False(t, p.Permutation.IsZero())
	require.Equal(t, uint64(1000), p.Permutation.TupleValueCount)
	require.LessOrEqual(t, p.VertexSize, 6)
	require.Positive(t, p.Permutation.WeightBitCount)

	// The full code span must fit the derived record.
	span := p.Permutation.CodeSpan()
	require.Positive(t, span)
	require.LessOrEqual(t, spanBitCount(span), p.VertexSize*8)
	require.NoError(t, p.Validate())
}

func TestComplete_Permutation_MaxBones(t *testing.T) {
	p := Params{
		Method:        format.MethodPermutation,
		MaxBoneCount:  13,
		MaxTupleCount: 128,
		VertexSize:    8,
	}
	p.Complete()

	require.Equal(t, format.MethodPermutation, p.Method)
	require.Equal(t, 13, p.Permutation.BoneCount)
	require.LessOrEqual(t, p.VertexSize, 8)
	require.NoError(t, p.Validate())
}

func TestComplete_Permutation_DowngradesWhenImpossible(t *testing.T) {
	// A tuple count so large that even 8 bytes cannot hold weights for 13
	// bones forces the documented downgrade to MethodNone.
	p := Params{
		Method:        format.MethodPermutation,
		MaxBoneCount:  13,
		MaxTupleCount: 1 << 40,
		VertexSize:    8,
	}
	p.Complete()

	require.Equal(t, format.MethodNone, p.Method)
	require.Equal(t, 13*6, p.VertexSize)
	require.Error(t, p.Validate())
}

func TestComplete_ClampsBoneCount(t *testing.T) {
	p := Params{Method: format.MethodUnitCube, MaxBoneCount: 1, MaxTupleCount: 4, VertexSize: 2}
	p.Complete()
	require.Equal(t, 2, p.MaxBoneCount)

	p = Params{Method: format.MethodUnitCube, MaxBoneCount: 99, MaxTupleCount: 4, VertexSize: 8}
	p.Complete()
	require.Equal(t, MaxSupportedBoneCount, p.MaxBoneCount)
}

func TestComplete_Idempotent(t *testing.T) {
	cases := []Params{
		{Method: format.MethodUnitCube, MaxBoneCount: 4, MaxTupleCount: 1000, VertexSize: 4},
		{Method: format.MethodUnitCube, MaxBoneCount: 2, MaxTupleCount: 1 << 15, VertexSize: 1},
		{Method: format.MethodUnitCube, MaxBoneCount: 6, MaxTupleCount: 1, VertexSize: 1},
		{Method: format.MethodPowerOfTwoAABB, MaxBoneCount: 8, MaxTupleCount: 4096, VertexSize: 6},
		{Method: format.MethodPowerOfTwoAABB, MaxBoneCount: 13, MaxTupleCount: 2, VertexSize: 1},
		{Method: format.MethodOptimalSimplex19, MaxBoneCount: 4, MaxTupleCount: 100, VertexSize: 4},
		{Method: format.MethodOptimalSimplex35, MaxBoneCount: 4, MaxTupleCount: 7000, VertexSize: 8},
		{Method: format.MethodPermutation, MaxBoneCount: 5, MaxTupleCount: 2048, VertexSize: 8},
		{Method: format.MethodPermutation, MaxBoneCount: 2, MaxTupleCount: 128, VertexSize: 2},
		{Method: format.MethodNone, MaxBoneCount: 4, MaxTupleCount: 1, VertexSize: 0},
	}

	for _, initial := range cases {
		p := initial
		p.Complete()
		once := p
		p.Complete()
		require.Equal(t, once, p, "method=%s bones=%d", initial.Method, initial.MaxBoneCount)
	}
}

func TestComplete_None(t *testing.T) {
	p := Params{Method: format.MethodNone, MaxBoneCount: 4}
	p.Complete()

	require.Equal(t, 24, p.VertexSize)
	require.Error(t, p.Validate())
}

func TestEncodeRecord_RejectsShortInfluences(t *testing.T) {
	p := Params{Method: format.MethodUnitCube, MaxBoneCount: 4, MaxTupleCount: 16, VertexSize: 4}
	p.Complete()

	err := EncodeRecord(make([]byte, p.VertexSize), &p, []Influence{{0, 1.0}}, 0)
	require.Error(t, err)
}

func spanBitCount(span uint64) int {
	bits := 0
	for v := span - 1; v != 0; v >>= 1 {
		bits++
	}

	return bits
}
