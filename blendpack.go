// Package blendpack provides a space-efficient binary format for skinned
// mesh blend attributes: per-vertex bone index tuples and blend weights.
//
// Vertices referencing the same bones share one entry in a deduplicated
// tuple table, and each vertex stores a small fixed-size record combining
// its tuple id with quantized weights. Several record schemes trade
// precision against size, from plain fixed-point fields to permutation
// coding that packs the sorted weights and their order into a single
// integer.
//
// # Core Features
//
//   - Tuple table deduplication with xxHash64-keyed lookup
//   - Five record schemes: unit cube, power-of-two AABB, optimal simplex
//     sampling (19/22/35 bits), permutation coding
//   - Parameter completion: layouts derived from a method, bone count,
//     tuple budget and target record size
//   - Bone count reduction with weight renormalization
//   - Self-describing container with optional Zstd/S2/LZ4 section
//     compression and an xxhash64 integrity digest
//
// # Basic Usage
//
// Compressing a vertex buffer into a container:
//
//	import "github.com/arloliu/blendpack"
//
//	src := blendpack.NewAttributes(indexBytes, indexStride, weightBytes, weightStride, 4)
//	params := &codec.Params{
//	    Method:        format.MethodPowerOfTwoAABB,
//	    MaxBoneCount:  4,
//	    MaxTupleCount: 4096,
//	    VertexSize:    4,
//	}
//	data, err := blendpack.Compress(src, vertexCount, params)
//
// Decoding the container back into its sections:
//
//	decoded, err := blendpack.Decompress(data)
//	tuple := decoded.Tuple(0)
//	record := decoded.Record(100)
//
// # Package Structure
//
// This package provides convenient top-level wrappers around the blob, blend
// and codec packages, simplifying the most common use cases. For
// fine-grained control over buffers and table sizing, use those packages
// directly.
package blendpack

import (
	"github.com/arloliu/blendpack/blend"
	"github.com/arloliu/blendpack/blob"
	"github.com/arloliu/blendpack/codec"
	"github.com/arloliu/blendpack/format"
)

// defaultOptions compress the tuple table, which is repetitive, and leave
// the high-entropy bit-packed records uncompressed.
var defaultOptions = []blob.BlendEncoderOption{
	blob.WithTableCompression(format.CompressionZstd),
	blob.WithRecordCompression(format.CompressionNone),
}

// Attributes describes the blend attributes of a vertex buffer. It is an
// alias of blend.Attributes.
type Attributes = blend.Attributes

// NewAttributes builds views over raw little-endian index and weight buffers
// for vertices with boneCount influences. Each vertex holds boneCount uint16
// bone indices at indexStride byte intervals and boneCount-1 float32 weights
// at weightStride intervals; the last weight is implied by the sum-to-one
// invariant.
func NewAttributes(indices []byte, indexStride int, weights []byte, weightStride, boneCount int) Attributes {
	return blend.NewAttributes(indices, indexStride, weights, weightStride, boneCount)
}

// NewEncoder creates a container encoder with custom options.
//
// Parameters:
//   - params: Parameter seed; completed and validated during construction.
//   - opts: Optional configuration functions (see blob.BlendEncoderOption)
//
// Returns:
//   - *blob.BlendEncoder: The created encoder.
//   - error: An error if the parameters or configuration are invalid.
//
// Available options:
//   - blob.WithTableCompression(format.CompressionNone|Zstd|S2|LZ4)
//   - blob.WithRecordCompression(format.CompressionNone|Zstd|S2|LZ4)
//   - blob.WithoutDigest()
func NewEncoder(params *codec.Params, opts ...blob.BlendEncoderOption) (*blob.BlendEncoder, error) {
	return blob.NewBlendEncoder(params, opts...)
}

// NewDefaultEncoder creates a container encoder with default settings:
// Zstd-compressed tuple table, uncompressed records, digest enabled.
func NewDefaultEncoder(params *codec.Params) (*blob.BlendEncoder, error) {
	return blob.NewBlendEncoder(params, defaultOptions...)
}

// NewDecoder creates a container decoder for the given data. The header is
// parsed and the digest verified up front.
func NewDecoder(data []byte) (*blob.BlendDecoder, error) {
	return blob.NewBlendDecoder(data)
}

// Compress compresses vertexCount vertices from src into a complete
// container using the default encoder settings.
//
// Parameters:
//   - src: Source attribute views sized for params.MaxBoneCount influences.
//   - vertexCount: Number of vertices to encode.
//   - params: Parameter seed; completed and validated before encoding.
//
// Returns:
//   - []byte: Complete container bytes.
//   - error: Parameter, input validation or compression errors.
func Compress(src Attributes, vertexCount int, params *codec.Params) ([]byte, error) {
	encoder, err := NewDefaultEncoder(params)
	if err != nil {
		return nil, err
	}

	return encoder.Encode(src, vertexCount)
}

// Decompress decodes a container produced by Compress or a BlendEncoder.
//
// Returns:
//   - *blob.BlendBlob: The decoded sections with completed parameters.
//   - error: Header, digest or decompression errors.
func Decompress(data []byte) (*blob.BlendBlob, error) {
	decoder, err := blob.NewBlendDecoder(data)
	if err != nil {
		return nil, err
	}

	return decoder.Decode()
}

// ReduceBoneCount rewrites vertex blend attributes in place of dst with the
// influence count lowered from srcBoneCount to dstBoneCount, keeping the
// largest weights and renormalizing them to sum to one.
//
// Parameters:
//   - dst: Destination views sized for dstBoneCount influences. May alias
//     src when the destination stride is no larger than the source stride.
//   - src: Source views sized for srcBoneCount influences.
//   - writeLastWeight: Write all dstBoneCount weights instead of leaving the
//     last one implied.
func ReduceBoneCount(dst, src Attributes, dstBoneCount, srcBoneCount, vertexCount int, writeLastWeight bool) error {
	return blend.ReduceBoneCount(dst, src, dstBoneCount, srcBoneCount, vertexCount, writeLastWeight)
}
