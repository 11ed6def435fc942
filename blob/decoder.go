package blob

import (
	"fmt"

	"github.com/cespare/xxhash/v2"

	"github.com/arloliu/blendpack/compress"
	"github.com/arloliu/blendpack/endian"
	"github.com/arloliu/blendpack/errs"
	"github.com/arloliu/blendpack/format"
	"github.com/arloliu/blendpack/section"
)

// BlendDecoder decodes container bytes back into their sections.
//
// Note: The BlendDecoder is NOT thread-safe. Each decoder instance should be
// used by a single goroutine at a time.
type BlendDecoder struct {
	data    []byte
	payload []byte // data without the trailing digest
	engine  endian.EndianEngine
	header  section.BlendHeader
}

// NewBlendDecoder creates a decoder for the given container bytes.
//
// The header is parsed and the trailing digest verified up front; Decode
// decompresses the sections. The decoder keeps a reference to data, so the
// caller must not modify it until decoding is done.
//
// Parameters:
//   - data: Complete container byte slice.
//
// Returns:
//   - *BlendDecoder: New decoder instance ready for decoding
//   - error: Header parsing errors, or ErrChecksumMismatch if the digest
//     does not match the payload
func NewBlendDecoder(data []byte) (*BlendDecoder, error) {
	decoder := &BlendDecoder{data: data}

	if err := decoder.header.Parse(data); err != nil {
		return nil, err
	}
	decoder.engine = decoder.header.Flag.GetEndianEngine()

	if err := decoder.verifyDigest(); err != nil {
		return nil, err
	}

	return decoder, nil
}

// Header returns the parsed container header.
func (d *BlendDecoder) Header() section.BlendHeader {
	return d.header
}

// Decode decompresses the tuple table and record payload and reconstructs a
// BlendBlob.
//
// Returns:
//   - *BlendBlob: Decoded container sections
//   - error: ErrInvalidSectionOffset if a section reaches outside the
//     container, a decompression error, or a section size mismatch against
//     the header counts
func (d *BlendDecoder) Decode() (*BlendBlob, error) {
	params := d.header.Params()
	params.Complete()

	tableBytes, err := d.decompressSection(
		d.header.Flag.GetTableCompression(), "tuple table",
		int(d.header.TableOffset), int(d.header.RecordOffset),
	)
	if err != nil {
		return nil, err
	}
	recordBytes, err := d.decompressSection(
		d.header.Flag.GetRecordCompression(), "record payload",
		int(d.header.RecordOffset), len(d.payload),
	)
	if err != nil {
		return nil, err
	}

	tupleCount := int(d.header.TupleCount)
	boneCount := params.MaxBoneCount
	if len(tableBytes) != tupleCount*boneCount*2 {
		return nil, fmt.Errorf("tuple table holds %d bytes, header claims %d tuples of %d bones",
			len(tableBytes), tupleCount, boneCount)
	}
	if len(recordBytes) != int(d.header.VertexCount)*params.VertexSize {
		return nil, fmt.Errorf("record payload holds %d bytes, header claims %d records of %d bytes",
			len(recordBytes), d.header.VertexCount, params.VertexSize)
	}

	tuples := make([]uint16, tupleCount*boneCount)
	for i := range tuples {
		tuples[i] = d.engine.Uint16(tableBytes[i*2 : i*2+2])
	}

	// The record payload may alias d.data when the section is uncompressed;
	// BlendBlob shares the same no-modify contract, so no copy is needed.
	return &BlendBlob{
		header:  d.header,
		params:  params,
		tuples:  tuples,
		records: recordBytes,
	}, nil
}

// verifyDigest checks the trailing xxhash64 digest when the header flag says
// one is present, and records where the payload ends.
func (d *BlendDecoder) verifyDigest() error {
	d.payload = d.data
	if !d.header.Flag.HasDigest() {
		return nil
	}

	if len(d.data) < section.HeaderSize+section.DigestSize {
		return errs.ErrInvalidHeaderSize
	}
	end := len(d.data) - section.DigestSize
	stored := d.engine.Uint64(d.data[end:])
	if computed := xxhash.Sum64(d.data[:end]); computed != stored {
		return fmt.Errorf("%w: stored %016x, computed %016x", errs.ErrChecksumMismatch, stored, computed)
	}
	d.payload = d.data[:end]

	return nil
}

// decompressSection bounds-checks one section and runs it through its codec.
func (d *BlendDecoder) decompressSection(compression format.CompressionType, target string, begin, end int) ([]byte, error) {
	if begin < section.HeaderSize || begin > end || end > len(d.payload) {
		return nil, fmt.Errorf("%w: %s section [%d, %d) outside container of %d bytes",
			errs.ErrInvalidSectionOffset, target, begin, end, len(d.payload))
	}

	sectionCodec, err := compress.GetCodec(compression)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", target, err)
	}
	decompressed, err := sectionCodec.Decompress(d.payload[begin:end])
	if err != nil {
		return nil, fmt.Errorf("failed to decompress %s: %w", target, err)
	}

	return decompressed, nil
}
