package compress

import (
	"fmt"

	"github.com/klauspost/compress/s2"
)

// S2Compressor implements the Codec interface with S2 block compression.
//
// S2 trades compression ratio for speed, which suits the tuple table
// section: small, repetitive, and decompressed on every container load.
type S2Compressor struct{}

var _ Codec = (*S2Compressor)(nil)

// NewS2Compressor creates a new S2 compressor.
func NewS2Compressor() S2Compressor {
	return S2Compressor{}
}

// Compress compresses the input data into a single S2 block. The destination
// is sized with MaxEncodedLen up front so encoding never reallocates.
func (c S2Compressor) Compress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	dst := make([]byte, 0, s2.MaxEncodedLen(len(data)))

	return s2.Encode(dst, data), nil
}

// Decompress decompresses a single S2 block. The block header carries the
// decoded size, so the output buffer is allocated exactly once.
func (c S2Compressor) Decompress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	size, err := s2.DecodedLen(data)
	if err != nil {
		return nil, fmt.Errorf("invalid s2 block: %w", err)
	}

	return s2.Decode(make([]byte, 0, size), data)
}
