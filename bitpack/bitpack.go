// Package bitpack writes and reads unsigned integer fields at arbitrary bit
// offsets inside a byte buffer.
//
// Bit numbering is little-endian: bit i of the buffer lives at byte i/8,
// position i%8, so a field written at offset o occupies bits [o, o+width)
// counted from the least significant bit of the first byte. This matches the
// layout produced by a little-endian machine packing fields into 32-bit
// words, which is what GPU-side consumers of compressed vertex records
// expect.
//
// Insert is the only primitive that mutates encoder output buffers; every
// vertex record field, whatever the compression method, is written through
// it. It clears the targeted bit range before or-ing the new value in and
// never touches bits outside [offset, offset+width).
package bitpack

// Insert writes the low width bits of value into buf starting at the given
// bit offset. width must be at most 32. Fields may straddle byte and word
// boundaries; neighboring bits are preserved.
func Insert(buf []byte, value uint32, offset, width int) {
	if width == 0 {
		return
	}

	masked := uint64(value) & (uint64(1)<<width - 1)

	byteIdx := offset >> 3
	bitIdx := offset & 7

	// Shift the field into place relative to the first touched byte, then
	// clear and set byte by byte.
	field := masked << bitIdx
	clear := (uint64(1)<<width - 1) << bitIdx
	for remaining := bitIdx + width; remaining > 0; remaining -= 8 {
		buf[byteIdx] &^= byte(clear)
		buf[byteIdx] |= byte(field)
		field >>= 8
		clear >>= 8
		byteIdx++
	}
}

// Insert64 writes the low width bits of value (width up to 64) by splitting
// the field into at most two 32-bit Insert calls.
func Insert64(buf []byte, value uint64, offset, width int) {
	if width <= 32 {
		Insert(buf, uint32(value), offset, width)
		return
	}

	Insert(buf, uint32(value), offset, 32)
	Insert(buf, uint32(value>>32), offset+32, width-32)
}

// Extract reads the width-bit unsigned field at the given bit offset.
// width must be at most 32.
func Extract(buf []byte, offset, width int) uint32 {
	return uint32(Extract64(buf, offset, width))
}

// Extract64 reads a field of up to 64 bits at the given bit offset.
func Extract64(buf []byte, offset, width int) uint64 {
	if width == 0 {
		return 0
	}

	byteIdx := offset >> 3
	bitIdx := offset & 7

	var value uint64
	shift := -bitIdx
	for remaining := bitIdx + width; remaining > 0; remaining -= 8 {
		b := uint64(buf[byteIdx])
		if shift < 0 {
			value |= b >> uint(-shift)
		} else {
			value |= b << uint(shift)
		}
		shift += 8
		byteIdx++
	}

	if width == 64 {
		return value
	}

	return value & (uint64(1)<<width - 1)
}
