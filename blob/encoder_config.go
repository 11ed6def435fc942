package blob

import (
	"github.com/arloliu/blendpack/endian"
	"github.com/arloliu/blendpack/format"
	"github.com/arloliu/blendpack/internal/options"
	"github.com/arloliu/blendpack/section"
)

// BlendEncoderConfig holds the mutable configuration a BlendEncoder is built
// from. Options adjust it before the encoder locks the header.
type BlendEncoderConfig struct {
	header section.BlendHeader
	engine endian.EndianEngine
}

// BlendEncoderOption configures a BlendEncoder during construction.
type BlendEncoderOption = options.Option[*BlendEncoderConfig]

// WithTableCompression selects the compression codec for the tuple table
// section.
func WithTableCompression(compression format.CompressionType) BlendEncoderOption {
	return options.NoError(func(cfg *BlendEncoderConfig) {
		cfg.header.Flag.SetTableCompression(compression)
	})
}

// WithRecordCompression selects the compression codec for the record payload
// section.
func WithRecordCompression(compression format.CompressionType) BlendEncoderOption {
	return options.NoError(func(cfg *BlendEncoderConfig) {
		cfg.header.Flag.SetRecordCompression(compression)
	})
}

// WithoutDigest disables the trailing xxhash64 digest. Useful when an outer
// transport already checksums the container.
func WithoutDigest() BlendEncoderOption {
	return options.NoError(func(cfg *BlendEncoderConfig) {
		cfg.header.Flag.WithoutDigest()
	})
}
