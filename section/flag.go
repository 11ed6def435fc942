package section

import (
	"fmt"

	"github.com/arloliu/blendpack/endian"
	"github.com/arloliu/blendpack/errs"
	"github.com/arloliu/blendpack/format"
)

// BlendFlag represents the packed flag fields at the start of the container
// header.
type BlendFlag struct {
	// Options is a packed field for various options.
	// Bit 0 is the endianness flag, 0 means little-endian, 1 means big-endian.
	// Bit 1 is the digest flag, 1 means a trailing xxhash64 digest is present.
	// Bits 2-3 are reserved for future use, must be set to 0.
	// Bits 4-15 are the magic number identifying the container format:
	//   - 0xBA10: blend attribute container format v1
	Options uint16

	// Method is the compression scheme of the record payload, one of the
	// format.Method values.
	Method uint8

	// CompressionType is a packed enum for section compression.
	// Bits 0-3 hold the tuple table compression, bits 4-7 the record payload
	// compression.
	CompressionType uint8
}

var validMethods = map[uint8]struct{}{
	uint8(format.MethodNone):             {},
	uint8(format.MethodUnitCube):         {},
	uint8(format.MethodPowerOfTwoAABB):   {},
	uint8(format.MethodOptimalSimplex19): {},
	uint8(format.MethodOptimalSimplex22): {},
	uint8(format.MethodOptimalSimplex35): {},
	uint8(format.MethodPermutation):      {},
}

var validCompressions = map[uint8]struct{}{
	uint8(format.CompressionNone): {},
	uint8(format.CompressionZstd): {},
	uint8(format.CompressionS2):   {},
	uint8(format.CompressionLZ4):  {},
}

// NewBlendFlag creates a new BlendFlag with default settings: little-endian,
// digest enabled, no section compression.
func NewBlendFlag(method format.Method) BlendFlag {
	flag := BlendFlag{
		Options:         MagicBlendV1Opt,
		Method:          uint8(method),
		CompressionType: TableCompressionNone | RecordCompressionNone,
	}
	flag.WithLittleEndian()
	flag.WithDigest()

	return flag
}

// IsLittleEndian returns whether the container uses little-endian byte order.
func (f BlendFlag) IsLittleEndian() bool {
	return (f.Options & EndiannessMask) == 0
}

// WithLittleEndian selects little-endian byte order.
func (f *BlendFlag) WithLittleEndian() {
	f.Options &^= EndiannessMask
}

// WithBigEndian selects big-endian byte order.
func (f *BlendFlag) WithBigEndian() {
	f.Options |= EndiannessMask
}

// GetEndianEngine returns the endian engine matching the endianness flag.
func (f BlendFlag) GetEndianEngine() endian.EndianEngine {
	if f.IsLittleEndian() {
		return endian.GetLittleEndianEngine()
	}

	return endian.GetBigEndianEngine()
}

// HasDigest returns whether a trailing payload digest is present.
func (f BlendFlag) HasDigest() bool {
	return (f.Options & DigestMask) != 0
}

// WithDigest enables the trailing payload digest.
func (f *BlendFlag) WithDigest() {
	f.Options |= DigestMask
}

// WithoutDigest disables the trailing payload digest.
func (f *BlendFlag) WithoutDigest() {
	f.Options &^= DigestMask
}

// GetMethod returns the record encoding method.
func (f BlendFlag) GetMethod() format.Method {
	return format.Method(f.Method)
}

// GetTableCompression returns the tuple table compression type.
func (f BlendFlag) GetTableCompression() format.CompressionType {
	return format.CompressionType(f.CompressionType & 0x0F)
}

// SetTableCompression sets the tuple table compression type.
func (f *BlendFlag) SetTableCompression(compression format.CompressionType) {
	f.CompressionType = (f.CompressionType & 0xF0) | uint8(compression)
}

// GetRecordCompression returns the record payload compression type.
func (f BlendFlag) GetRecordCompression() format.CompressionType {
	return format.CompressionType(f.CompressionType >> 4)
}

// SetRecordCompression sets the record payload compression type.
func (f *BlendFlag) SetRecordCompression(compression format.CompressionType) {
	f.CompressionType = (f.CompressionType & 0x0F) | (uint8(compression) << 4)
}

// Validate checks the magic number, reserved bits, method and compression
// enums.
func (f BlendFlag) Validate() error {
	if (f.Options & MagicNumberMask) != MagicBlendV1Opt {
		return errs.ErrInvalidMagicNumber
	}
	if (f.Options & ReservedBitsMask) != 0 {
		return fmt.Errorf("%w: reserved flag bits set", errs.ErrUnsupportedParams)
	}
	if _, ok := validMethods[f.Method]; !ok {
		return fmt.Errorf("%w: unknown method 0x%02x", errs.ErrUnsupportedParams, f.Method)
	}
	if _, ok := validCompressions[f.CompressionType&0x0F]; !ok {
		return fmt.Errorf("%w: unknown tuple table compression 0x%x", errs.ErrUnsupportedParams, f.CompressionType&0x0F)
	}
	if _, ok := validCompressions[f.CompressionType>>4]; !ok {
		return fmt.Errorf("%w: unknown record compression 0x%x", errs.ErrUnsupportedParams, f.CompressionType>>4)
	}

	return nil
}
