// Package quant implements fixed-point quantization of blend weights.
//
// Weights are stored as unsigned normalized (UNORM) fixed-point values: an
// integer k at bit count b represents the weight k / ((1<<b) - 1), so 0 maps
// to 0.0 and the maximum code maps to 1.0 exactly. QuantizeHalf covers the
// [0, 0.5] sub-range at the same resolution, which is what the power-of-two
// AABB method needs for weights that are provably at most one half.
//
// Both functions are pure. Callers guarantee the domain preconditions: the
// weight must lie inside the stated range and bitCount must not exceed
// MaxBitCount (the float32 mantissa limit); results are undefined otherwise.
package quant

// MaxBitCount is the largest usable bit count. Beyond 24 bits the step size
// drops below float32 precision.
const MaxBitCount = 24

// Quantize maps a weight in [0, 1] to the nearest representable unsigned
// integer at the given bit count. Exactly representable weights are the
// multiples of 1 / ((1<<bitCount) - 1).
//
// The scale product is carried out in float64 so that a representable
// weight always round-trips exactly, even at 24 bits where a float32
// product can drift by a full integer step.
func Quantize(weight float32, bitCount int) uint32 {
	maxValue := uint32(1)<<bitCount - 1

	return uint32(float64(weight)*float64(maxValue) + 0.5)
}

// QuantizeHalf is Quantize for a weight in [0, 0.5]. Exactly representable
// weights are the multiples of 0.5 / ((1<<bitCount) - 1), consistent with
// the full-range grid of Quantize.
func QuantizeHalf(weight float32, bitCount int) uint32 {
	maxValue := 2 * (uint32(1)<<bitCount - 1)

	return uint32(float64(weight)*float64(maxValue) + 0.5)
}

// Dequantize inverts Quantize, mapping a stored integer back to its weight.
func Dequantize(value uint32, bitCount int) float32 {
	maxValue := uint32(1)<<bitCount - 1

	return float32(value) / float32(maxValue)
}

// DequantizeHalf inverts QuantizeHalf.
func DequantizeHalf(value uint32, bitCount int) float32 {
	maxValue := 2 * (uint32(1)<<bitCount - 1)

	return float32(value) / float32(maxValue)
}
