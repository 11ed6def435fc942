package codec

import (
	"math"

	"github.com/arloliu/blendpack/bitpack"
)

// Optimal simplex sampling numbers every lattice point of the sorted-weight
// simplex for four bone influences and uses that number as the code, instead
// of quantizing each weight on an independent axis. The lattice resolution n
// below is the largest one whose point count fits the total bit budget; the
// three supported budgets are fixed by the method variants.
//
// The numbering follows Kuth & Meyer, "Vertex-Blend Attribute Compression"
// (High-Performance Graphics 2021): the three smaller sorted weights are
// delta-coded into simplex coordinates (i, j, k) and the closed forms
// simplexBase3/simplexBase4 count the lattice points below a given slice, so
// code = i + base3 span + base4 span.

// simplexLattice returns the lattice resolution for a weight bit budget.
func simplexLattice(totalBits int) uint64 {
	switch totalBits {
	case 19:
		return 209
	case 22:
		return 421
	case 35:
		return 8518
	default:
		return 0
	}
}

type simplexInfo struct {
	n     uint64
	mi4   uint64
	scale float64
}

func newSimplexInfo(totalBits int) simplexInfo {
	n := simplexLattice(totalBits)

	return simplexInfo{
		n:     n,
		mi4:   simplexBase4(0, n),
		scale: 0.5 / float64(n-1),
	}
}

// simplexBase3 counts lattice points of the 3-weight sub-simplex below
// slice ic. All arithmetic is modular uint64 on purpose; intermediate terms
// may wrap but the rounded quotient is exact for every reachable input.
func simplexBase3(ic, n uint64) uint64 {
	a := 2*n - 3*ic + 1
	a2 := a * a

	return a2/12 + boolToU64(a2%12 >= 6)
}

func simplexSolve3(code, n uint64) uint64 {
	x := simplexBase3(0, n) - code
	a := uint64(2.0*float64(n) + 1.0 - math.Sqrt(float64(12*x)))
	ic := a / 3

	// Fix the off-by-one the float solve can introduce.
	lower := simplexBase3(ic, n)
	upper := simplexBase3(ic+1, n)

	return ic - boolToU64(x > lower) + boolToU64(x <= upper)
}

// simplexBase4 counts lattice points below slice id of the 4-weight simplex.
func simplexBase4(id, n uint64) uint64 {
	a := 2*id - n - 1
	a2 := (a * a) / 36
	a2r := (a * a) % 36
	b := 3 - 2*a

	return a2*b + (a2r*b+18)/36
}

func simplexSolve4(code, n, mi4 uint64) uint64 {
	x := mi4 - code
	b := float64(x) * 144.0
	cr := math.Cbrt(b)
	f := cr + 1.0/cr
	id := (n*2 + 3 - uint64(int64(f))) / 4
	lower := simplexBase4(id, n)

	return id - boolToU64(x > lower)
}

// simplexCompress codes four descending sorted weights summing to one. Only
// the three smaller weights enter the code; the largest is implied.
func simplexCompress(weights [4]float32, totalBits int) uint64 {
	info := newSimplexInfo(totalBits)

	v2 := float64(weights[1])
	v3 := float64(weights[2])
	v4 := float64(weights[3])

	n := info.n

	k := uint64(v4/info.scale + 0.5)
	k = min(k, uint64(float64(n)/2.0-0.5))
	v4 = float64(k) * info.scale
	tok := info.mi4 - simplexBase4(k, n)
	n -= 2 * k

	j := uint64((v3-v4)/info.scale + 0.5)
	j = min(j, uint64(float64(2*n+1)/3.0-1.0))
	v3 = float64(j) * info.scale
	toj := uint64(float64(n)*float64(j) - float64(j)*float64(j)*3.0/4.0 + float64(j)/2.0 + 0.25)
	// Truncate after the halving, not before: for odd j the next slice starts
	// half a step in, and the i clamp below must not reach past it.
	n = uint64(float64(n) - float64(3*j)/2.0)

	i := uint64((v2-v3-v4)/info.scale + 0.5)
	i = min(i, n-1)

	return i + toj + tok
}

// simplexDecompress inverts simplexCompress. It exists for parameter
// validation and tests; runtime decoding happens on the GPU.
func simplexDecompress(code uint64, totalBits int) [4]float32 {
	info := newSimplexInfo(totalBits)

	n := info.n
	k := simplexSolve4(code, n, info.mi4)

	code -= info.mi4 - simplexBase4(k, n)
	n -= 2 * k
	j := simplexSolve3(code, n)

	code -= (n*n+n+1)/3 - simplexBase3(j, n)
	i := code

	// Undo the shear (delta) coding.
	j += k
	i += j

	var v [4]float32
	v[1] = float32(float64(i) * info.scale)
	v[2] = float32(float64(j) * info.scale)
	v[3] = float32(float64(k) * info.scale)
	v[0] = 1.0 - v[1] - v[2] - v[3]

	return v
}

// encodeSimplex writes one vertex using optimal simplex sampling: the
// weight code occupies the low bits, the tuple index sits directly above it.
func encodeSimplex(record []byte, p *Params, pairs []Influence, tupleIndex uint32) {
	sorted := make([]Influence, len(pairs))
	copy(sorted, pairs)
	SortCanonical(sorted)

	var weights [4]float32
	for i := 0; i < len(sorted) && i < 4; i++ {
		weights[i] = sorted[i].Weight
	}

	totalBits := p.Method.SimplexBitCount()
	code := simplexCompress(weights, totalBits)
	code |= uint64(tupleIndex) << totalBits

	bitpack.Insert64(record, code, 0, p.VertexSize*8)
}

func boolToU64(b bool) uint64 {
	if b {
		return 1
	}

	return 0
}
