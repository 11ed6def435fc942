package format

type (
	Method          uint8
	CompressionType uint8
)

const (
	// MethodNone leaves blend attributes as raw uint16 indices and float32 weights.
	MethodNone Method = 0x1
	// MethodUnitCube stores every weight except one with the same fixed-point width.
	MethodUnitCube Method = 0x2
	// MethodPowerOfTwoAABB bounds the simplex of sorted weights with a
	// power-of-two axis-aligned box, spending fewer bits on smaller weights.
	MethodPowerOfTwoAABB Method = 0x3
	// MethodOptimalSimplex19 numbers every lattice point of the weight simplex
	// using a 19-bit code. Supports up to four bone influences.
	MethodOptimalSimplex19 Method = 0x4
	// MethodOptimalSimplex22 is MethodOptimalSimplex19 with a 22-bit code.
	MethodOptimalSimplex22 Method = 0x5
	// MethodOptimalSimplex35 is MethodOptimalSimplex19 with a 35-bit code.
	MethodOptimalSimplex35 Method = 0x6
	// MethodPermutation stores a combinatorial rank of the sorted weights plus
	// a Lehmer-coded permutation. Supports up to 13 influences in 64 bits.
	MethodPermutation Method = 0x7

	CompressionNone CompressionType = 0x1 // CompressionNone represents no compression.
	CompressionZstd CompressionType = 0x2 // CompressionZstd represents Zstandard compression.
	CompressionS2   CompressionType = 0x3 // CompressionS2 represents S2 compression.
	CompressionLZ4  CompressionType = 0x4 // CompressionLZ4 represents LZ4 compression.
)

func (m Method) String() string {
	switch m {
	case MethodNone:
		return "None"
	case MethodUnitCube:
		return "UnitCube"
	case MethodPowerOfTwoAABB:
		return "PowerOfTwoAABB"
	case MethodOptimalSimplex19:
		return "OptimalSimplex19"
	case MethodOptimalSimplex22:
		return "OptimalSimplex22"
	case MethodOptimalSimplex35:
		return "OptimalSimplex35"
	case MethodPermutation:
		return "Permutation"
	default:
		return "Unknown"
	}
}

// IsSimplex reports whether m is one of the optimal simplex sampling variants.
func (m Method) IsSimplex() bool {
	return m == MethodOptimalSimplex19 || m == MethodOptimalSimplex22 || m == MethodOptimalSimplex35
}

// SimplexBitCount returns the weight bit budget of an optimal simplex
// sampling method, or 0 for any other method.
func (m Method) SimplexBitCount() int {
	switch m {
	case MethodOptimalSimplex19:
		return 19
	case MethodOptimalSimplex22:
		return 22
	case MethodOptimalSimplex35:
		return 35
	default:
		return 0
	}
}

func (c CompressionType) String() string {
	switch c {
	case CompressionNone:
		return "None"
	case CompressionZstd:
		return "Zstd"
	case CompressionS2:
		return "S2"
	case CompressionLZ4:
		return "LZ4"
	default:
		return "Unknown"
	}
}
