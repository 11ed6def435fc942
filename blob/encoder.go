package blob

import (
	"fmt"

	"github.com/cespare/xxhash/v2"

	"github.com/arloliu/blendpack/blend"
	"github.com/arloliu/blendpack/codec"
	"github.com/arloliu/blendpack/compress"
	"github.com/arloliu/blendpack/internal/options"
	"github.com/arloliu/blendpack/internal/pool"
	"github.com/arloliu/blendpack/internal/strided"
	"github.com/arloliu/blendpack/section"
)

// BlendEncoder compresses vertex blend attributes and packages the result
// into the container format.
//
// Note: The BlendEncoder is NOT thread-safe. Each encoder instance should be
// used by a single goroutine at a time. Encode itself parallelizes the record
// pass internally.
type BlendEncoder struct {
	*BlendEncoderConfig

	params      codec.Params
	tableCodec  compress.Compressor
	recordCodec compress.Compressor
}

// NewBlendEncoder creates an encoder for the given compression parameters.
//
// The parameter seed is completed and validated up front, so the caller sees
// the effective method and record size before encoding anything. Containers
// are written little-endian with a trailing digest unless options say
// otherwise.
//
// Parameters:
//   - params: Parameter seed; Method, MaxBoneCount, MaxTupleCount and
//     VertexSize are read. The caller's copy is not modified.
//   - opts: Optional configuration (section compression, digest).
//
// Returns:
//   - *BlendEncoder: New encoder instance ready for encoding
//   - error: ErrUnsupportedParams if completion degrades the method to
//     MethodNone, or a configuration error from an option
func NewBlendEncoder(params *codec.Params, opts ...BlendEncoderOption) (*BlendEncoder, error) {
	completed := *params
	completed.Complete()
	if err := completed.Validate(); err != nil {
		return nil, err
	}

	config := &BlendEncoderConfig{
		header: section.NewBlendHeader(&completed, 0),
	}
	if err := options.Apply(config, opts...); err != nil {
		return nil, err
	}
	config.engine = config.header.Flag.GetEndianEngine()

	encoder := &BlendEncoder{
		BlendEncoderConfig: config,
		params:             completed,
	}
	if err := encoder.setCodecs(); err != nil {
		return nil, err
	}

	return encoder, nil
}

// Params returns the completed parameter set the encoder writes with.
func (e *BlendEncoder) Params() codec.Params {
	return e.params
}

// Encode compresses vertexCount vertices from src and returns the complete
// container bytes.
//
// Parameters:
//   - src: Source attribute views sized for Params().MaxBoneCount influences.
//   - vertexCount: Number of vertices to encode.
//
// Returns:
//   - []byte: Complete container with header, tuple table, record payload
//     and digest
//   - error: ErrTableOverflow if the input needs more distinct tuples than
//     the parameters can address, ErrInvalidInput for malformed vertex data,
//     or a section compression error
func (e *BlendEncoder) Encode(src blend.Attributes, vertexCount int) ([]byte, error) {
	boneCount := e.params.MaxBoneCount
	tupleStride := boneCount * 2

	tableBuf := make([]byte, e.params.MaxTupleCount*tupleStride)
	records := make([]byte, vertexCount*e.params.VertexSize)

	tupleCount, err := blend.CompressBuffers(
		strided.NewU16(tableBuf, tupleStride, boneCount),
		records, e.params.VertexSize,
		src, &e.params, vertexCount, e.params.MaxTupleCount,
	)
	if err != nil {
		return nil, err
	}

	tablePayload, err := e.tableCodec.Compress(tableBuf[:tupleCount*tupleStride])
	if err != nil {
		return nil, fmt.Errorf("failed to compress tuple table: %w", err)
	}
	recordPayload, err := e.recordCodec.Compress(records)
	if err != nil {
		return nil, fmt.Errorf("failed to compress record payload: %w", err)
	}

	header := e.header
	header.VertexCount = uint32(vertexCount)
	header.TupleCount = uint32(tupleCount)
	header.TableOffset = section.HeaderSize
	header.RecordOffset = section.HeaderSize + uint32(len(tablePayload))

	bb := pool.GetContainerBuffer()
	defer pool.PutContainerBuffer(bb)

	headerBytes := header.Bytes()
	bb.MustWrite(headerBytes[:])
	bb.MustWrite(tablePayload)
	bb.MustWrite(recordPayload)
	if header.Flag.HasDigest() {
		digest := xxhash.Sum64(bb.Bytes())
		e.engine.PutUint64(bb.ExtendOrGrow(section.DigestSize), digest)
	}

	out := make([]byte, bb.Len())
	copy(out, bb.Bytes())

	return out, nil
}

// setCodecs resolves the section compressors from the header flag.
func (e *BlendEncoder) setCodecs() error {
	var err error
	if e.tableCodec, err = compress.CreateCodec(e.header.Flag.GetTableCompression(), "tuple table"); err != nil {
		return err
	}
	if e.recordCodec, err = compress.CreateCodec(e.header.Flag.GetRecordCompression(), "record payload"); err != nil {
		return err
	}

	return nil
}
