// Package endian provides byte order utilities for blendpack's binary
// formats.
//
// It combines the ByteOrder and AppendByteOrder interfaces from
// encoding/binary into a single EndianEngine interface so that strided views
// and the blob container can read and append multi-byte fields through one
// value. Compressed vertex records and blob headers are little-endian on the
// wire; GetLittleEndianEngine is what nearly every caller wants.
//
// All functions are safe for concurrent use. The returned engines are the
// stateless binary.LittleEndian and binary.BigEndian values.
package endian

import (
	"encoding/binary"
	"unsafe"
)

// EndianEngine combines ByteOrder and AppendByteOrder from encoding/binary.
// binary.LittleEndian and binary.BigEndian both satisfy it.
type EndianEngine interface {
	binary.ByteOrder
	binary.AppendByteOrder
}

// GetLittleEndianEngine returns the little-endian engine, the wire order of
// every blendpack format.
func GetLittleEndianEngine() EndianEngine {
	return binary.LittleEndian
}

// GetBigEndianEngine returns the big-endian engine.
func GetBigEndianEngine() EndianEngine {
	return binary.BigEndian
}

// IsNativeLittleEndian reports whether the host stores integers
// little-endian. Useful when deciding if raw float/index buffers can be
// reinterpreted without byte swapping.
func IsNativeLittleEndian() bool {
	var v uint16 = 0x0100
	b := (*[2]byte)(unsafe.Pointer(&v))

	return b[0] == 0x00
}
