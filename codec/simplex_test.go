package codec

import (
	"math/rand"
	"sort"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/blendpack/bitpack"
	"github.com/arloliu/blendpack/format"
)

func TestSimplexLattice(t *testing.T) {
	require.Equal(t, uint64(209), simplexLattice(19))
	require.Equal(t, uint64(421), simplexLattice(22))
	require.Equal(t, uint64(8518), simplexLattice(35))
	require.Equal(t, uint64(0), simplexLattice(20))
}

func TestSimplexLattice_PointCountFitsBudget(t *testing.T) {
	// Every code is below the total lattice point count, so the count itself
	// must fit the bit budget, leaving the bits above free for the tuple
	// index.
	for _, totalBits := range []int{19, 22, 35} {
		info := newSimplexInfo(totalBits)
		require.LessOrEqual(t, info.mi4, uint64(1)<<totalBits, "bits=%d n=%d", totalBits, info.n)

		// A larger resolution must not fit, or the budget is wasted.
		larger := simplexInfo{n: info.n + 1}
		larger.mi4 = simplexBase4(0, larger.n)
		require.Greater(t, larger.mi4, uint64(1)<<totalBits, "bits=%d", totalBits)
	}
}

func TestSimplexCompress_NearUniformWeights(t *testing.T) {
	// Near-uniform weights land in the densest code region, right below the
	// point count; they must still fit the budget.
	weights := [4]float32{0.26, 0.25, 0.25, 0.24}
	for _, totalBits := range []int{19, 22, 35} {
		code := simplexCompress(weights, totalBits)
		require.Less(t, code, uint64(1)<<totalBits, "bits=%d", totalBits)

		decoded := simplexDecompress(code, totalBits)
		info := newSimplexInfo(totalBits)
		for i := 0; i < 4; i++ {
			require.InDelta(t, weights[i], decoded[i], 4.0*info.scale)
		}
	}
}

// randomSortedWeights returns four descending weights summing to one.
func randomSortedWeights(rng *rand.Rand) [4]float32 {
	cuts := []float64{0, rng.Float64(), rng.Float64(), rng.Float64(), 1}
	sort.Float64s(cuts)

	var w [4]float32
	for i := 0; i < 4; i++ {
		w[i] = float32(cuts[i+1] - cuts[i])
	}
	sort.Slice(w[:], func(a, b int) bool { return w[a] > w[b] })

	return w
}

func TestSimplexRoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	for _, totalBits := range []int{19, 22, 35} {
		info := newSimplexInfo(totalBits)
		tolerance := 4.0 * info.scale

		for trial := 0; trial < 300; trial++ {
			weights := randomSortedWeights(rng)

			code := simplexCompress(weights, totalBits)
			require.Less(t, code, uint64(1)<<totalBits, "bits=%d trial=%d", totalBits, trial)

			decoded := simplexDecompress(code, totalBits)
			for i := 0; i < 4; i++ {
				require.InDelta(t, weights[i], decoded[i], tolerance,
					"bits=%d trial=%d weight=%d", totalBits, trial, i)
			}

			// Decoded weights are a lattice point, so recompressing them must
			// reproduce the code exactly.
			require.Equal(t, code, simplexCompress(decoded, totalBits),
				"bits=%d trial=%d", totalBits, trial)
		}
	}
}

func TestSimplexCompress_ClampOddSlice(t *testing.T) {
	// v3 on the third slice (odd j), v2 far outside the remaining range. Odd
	// slices start half a step in, so the slice holds floor(n - 3j/2) slots;
	// the i clamp must stop at the last one instead of spilling into the
	// j+1 slice.
	info := newSimplexInfo(22)
	n := float64(info.n)

	weights := [4]float32{0, 0.9, float32(3.0 * info.scale), 0}

	slots := uint64(n - 4.5)
	toj := uint64(n*3.0 - 9.0*0.75 + 1.5 + 0.25)
	require.Equal(t, toj+slots-1, simplexCompress(weights, 22))
}

func TestSimplexDecompress_OrderAndSum(t *testing.T) {
	rng := rand.New(rand.NewSource(7))

	for trial := 0; trial < 100; trial++ {
		weights := randomSortedWeights(rng)
		code := simplexCompress(weights, 22)
		v := simplexDecompress(code, 22)

		require.GreaterOrEqual(t, v[1], v[2])
		require.GreaterOrEqual(t, v[2], v[3])
		require.GreaterOrEqual(t, v[3], float32(0))
		require.InDelta(t, 1.0, v[0]+v[1]+v[2]+v[3], 1e-5)
	}
}

func TestEncodeSimplex_Layout(t *testing.T) {
	p := Params{
		Method:        format.MethodOptimalSimplex19,
		MaxBoneCount:  4,
		MaxTupleCount: 500,
		VertexSize:    4,
	}
	p.Complete()
	require.Equal(t, 9, p.TupleIndexBitCount)
	require.Equal(t, 4, p.VertexSize)

	pairs := []Influence{
		{Index: 4, Weight: 0.1},
		{Index: 1, Weight: 0.5},
		{Index: 8, Weight: 0.15},
		{Index: 2, Weight: 0.25},
	}
	record := make([]byte, p.VertexSize)
	require.NoError(t, EncodeRecord(record, &p, pairs, 300))

	expected := simplexCompress([4]float32{0.5, 0.25, 0.15, 0.1}, 19)
	require.Equal(t, expected, bitpack.Extract64(record, 0, 19))
	require.Equal(t, uint64(300), bitpack.Extract64(record, 19, 9))
}
