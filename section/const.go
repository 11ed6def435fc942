package section

import "github.com/arloliu/blendpack/format"

const (
	// Bit masks for the packed options field
	EndiannessMask   = 0x0001 // Mask for endianness bit (bit 0)
	DigestMask       = 0x0002 // Mask for payload digest bit (bit 1)
	ReservedBitsMask = 0x000C // Mask for reserved bits (bits 2-3)
	MagicNumberMask  = 0xFFF0 // Mask for magic number (bits 4-15)

	// MagicBlendV1Opt is the version 1 magic number for the blend attribute
	// container format (bits 4-15).
	MagicBlendV1Opt = 0xBA10

	// Tuple table compression (bits 0-3 of the compression field)
	TableCompressionNone = uint8(format.CompressionNone)
	TableCompressionZstd = uint8(format.CompressionZstd)
	TableCompressionS2   = uint8(format.CompressionS2)
	TableCompressionLZ4  = uint8(format.CompressionLZ4)

	// Record payload compression (bits 4-7 of the compression field)
	RecordCompressionNone = uint8(format.CompressionNone) << 4
	RecordCompressionZstd = uint8(format.CompressionZstd) << 4
	RecordCompressionS2   = uint8(format.CompressionS2) << 4
	RecordCompressionLZ4  = uint8(format.CompressionLZ4) << 4
)

// offsets and section sizes in the container
const (
	HeaderSize = 32 // fixed header size in bytes
	DigestSize = 8  // trailing xxhash64 digest size in bytes
)
