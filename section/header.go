// Package section defines the fixed header and flag layout of the blendpack
// container format.
//
// A container starts with a 32-byte header, followed by the tuple table
// section, the record payload section, and an optional trailing xxhash64
// digest. The header pins down everything a decoder needs to rebuild the
// compression parameters and locate both sections.
package section

import (
	"fmt"

	"github.com/arloliu/blendpack/codec"
	"github.com/arloliu/blendpack/errs"
	"github.com/arloliu/blendpack/format"
)

// BlendHeader is the fixed 32-byte header of a blendpack container.
//
// Byte layout:
//
//	0-1   Flag.Options (packed magic, endianness, digest bits)
//	2     Flag.Method
//	3     Flag.CompressionType (table low nibble, records high nibble)
//	4     BoneCount
//	5     VertexSize
//	6     WeightBaseBitCount
//	7     TupleIndexBitCount
//	8-11  VertexCount
//	12-15 TupleCount
//	16-23 MaxTupleCount
//	24-27 TableOffset
//	28-31 RecordOffset
type BlendHeader struct {
	Flag BlendFlag

	// BoneCount is the number of bone influences per vertex.
	BoneCount uint8
	// VertexSize is the size of one encoded vertex record in bytes.
	VertexSize uint8
	// WeightBaseBitCount is the bit width of the largest stored weight.
	WeightBaseBitCount uint8
	// TupleIndexBitCount is the width of the explicit tuple index field, zero
	// for permutation coding.
	TupleIndexBitCount uint8

	// VertexCount is the number of encoded vertex records.
	VertexCount uint32
	// TupleCount is the number of tuples stored in the tuple table.
	TupleCount uint32
	// MaxTupleCount is the number of tuple indices the record layout can
	// address, required to rebuild the mixed-radix permutation codec.
	MaxTupleCount uint64

	// TableOffset is the byte offset of the tuple table section.
	TableOffset uint32
	// RecordOffset is the byte offset of the record payload section.
	RecordOffset uint32
}

// NewBlendHeader creates a header for a completed parameter set and vertex
// count. Section offsets are zero until the encoder lays out the sections.
func NewBlendHeader(params *codec.Params, vertexCount int) BlendHeader {
	return BlendHeader{
		Flag:               NewBlendFlag(params.Method),
		BoneCount:          uint8(params.MaxBoneCount),
		VertexSize:         uint8(params.VertexSize),
		WeightBaseBitCount: uint8(params.WeightBaseBitCount),
		TupleIndexBitCount: uint8(params.TupleIndexBitCount),
		VertexCount:        uint32(vertexCount),
		MaxTupleCount:      uint64(params.MaxTupleCount),
	}
}

// Parse parses a header from data. data must hold at least HeaderSize bytes;
// extra bytes are ignored.
//
// Parameters:
//   - data: the serialized header bytes.
//
// Returns:
//   - error: errs.ErrInvalidHeaderSize if data is too short, a flag
//     validation error if the magic number or enums are invalid.
func (h *BlendHeader) Parse(data []byte) error {
	if len(data) < HeaderSize {
		return errs.ErrInvalidHeaderSize
	}

	h.Flag.Options = uint16(data[0]) | uint16(data[1])<<8
	h.Flag.Method = data[2]
	h.Flag.CompressionType = data[3]

	if err := h.Flag.Validate(); err != nil {
		return err
	}

	engine := h.Flag.GetEndianEngine()
	h.BoneCount = data[4]
	h.VertexSize = data[5]
	h.WeightBaseBitCount = data[6]
	h.TupleIndexBitCount = data[7]
	h.VertexCount = engine.Uint32(data[8:12])
	h.TupleCount = engine.Uint32(data[12:16])
	h.MaxTupleCount = engine.Uint64(data[16:24])
	h.TableOffset = engine.Uint32(data[24:28])
	h.RecordOffset = engine.Uint32(data[28:32])

	return h.Validate()
}

// Bytes serializes the header into a fixed 32-byte representation.
func (h *BlendHeader) Bytes() [HeaderSize]byte {
	var buf [HeaderSize]byte

	// The options field itself is little-endian regardless of the payload
	// endianness bit, so a parser can read the flag before choosing an engine.
	buf[0] = byte(h.Flag.Options)
	buf[1] = byte(h.Flag.Options >> 8)
	buf[2] = h.Flag.Method
	buf[3] = h.Flag.CompressionType

	engine := h.Flag.GetEndianEngine()
	buf[4] = h.BoneCount
	buf[5] = h.VertexSize
	buf[6] = h.WeightBaseBitCount
	buf[7] = h.TupleIndexBitCount
	engine.PutUint32(buf[8:12], h.VertexCount)
	engine.PutUint32(buf[12:16], h.TupleCount)
	engine.PutUint64(buf[16:24], h.MaxTupleCount)
	engine.PutUint32(buf[24:28], h.TableOffset)
	engine.PutUint32(buf[28:32], h.RecordOffset)

	return buf
}

// Validate checks the flag and the internal consistency of the header
// fields against the parameter derivation.
func (h *BlendHeader) Validate() error {
	if err := h.Flag.Validate(); err != nil {
		return err
	}
	if h.TableOffset != 0 && h.TableOffset < HeaderSize {
		return fmt.Errorf("%w: tuple table at %d overlaps header", errs.ErrInvalidSectionOffset, h.TableOffset)
	}
	if h.RecordOffset < h.TableOffset {
		return fmt.Errorf("%w: record payload at %d precedes tuple table at %d",
			errs.ErrInvalidSectionOffset, h.RecordOffset, h.TableOffset)
	}

	params := h.Params()
	derived := params
	derived.Complete()
	if derived.Method != params.Method ||
		derived.VertexSize != params.VertexSize ||
		derived.WeightBaseBitCount != int(h.WeightBaseBitCount) ||
		derived.TupleIndexBitCount != int(h.TupleIndexBitCount) {
		return fmt.Errorf("%w: header layout fields do not match derived parameters", errs.ErrUnsupportedParams)
	}

	return nil
}

// Params rebuilds the compression parameter seed stored in the header. The
// caller completes it to recover the full record layout.
func (h *BlendHeader) Params() codec.Params {
	return codec.Params{
		Method:        format.Method(h.Flag.Method),
		MaxBoneCount:  int(h.BoneCount),
		MaxTupleCount: int(h.MaxTupleCount),
		VertexSize:    int(h.VertexSize),
	}
}

// ParseBlendHeader parses a header from data and returns it by value.
func ParseBlendHeader(data []byte) (BlendHeader, error) {
	var header BlendHeader
	if err := header.Parse(data); err != nil {
		return BlendHeader{}, err
	}

	return header, nil
}
