// Package strided provides bounds-checked typed views over caller-owned byte
// buffers with a byte stride between vertices.
//
// Blend attribute sources and destinations are commonly interleaved with
// unrelated per-vertex data, so every view is described by a base buffer, a
// byte stride between consecutive vertices, and the number of elements that
// belong to one vertex. All multi-byte loads and stores go through an
// endian.EndianEngine; compressed formats are little-endian on the wire.
package strided

import (
	"math"

	"github.com/arloliu/blendpack/endian"
)

// U16 is a strided view of uint16 elements, used for bone index buffers.
type U16 struct {
	buf    []byte
	stride int
	elems  int
	engine endian.EndianEngine
}

// NewU16 creates a view with elems uint16 values per vertex, separated by
// stride bytes between vertices.
func NewU16(buf []byte, stride, elems int) U16 {
	return U16{buf: buf, stride: stride, elems: elems, engine: endian.GetLittleEndianEngine()}
}

// IsNil reports whether the view has no backing buffer.
func (v U16) IsNil() bool {
	return v.buf == nil
}

// Elems returns the number of elements per vertex.
func (v U16) Elems() int {
	return v.elems
}

// VertexCount returns how many complete vertices fit in the buffer.
func (v U16) VertexCount() int {
	if v.stride == 0 {
		return 0
	}

	usable := len(v.buf) - 2*v.elems
	if usable < 0 {
		return 0
	}

	return usable/v.stride + 1
}

// At returns element elem of vertex vertex. Panics if out of bounds, like a
// slice index.
func (v U16) At(vertex, elem int) uint16 {
	off := v.offset(vertex, elem, 2)

	return v.engine.Uint16(v.buf[off : off+2])
}

// Set stores element elem of vertex vertex.
func (v U16) Set(vertex, elem int, value uint16) {
	off := v.offset(vertex, elem, 2)
	v.engine.PutUint16(v.buf[off:off+2], value)
}

func (v U16) offset(vertex, elem, size int) int {
	if elem < 0 || elem >= v.elems {
		panic("strided: element index out of range")
	}

	return vertex*v.stride + elem*size
}

// F32 is a strided view of float32 elements, used for weight buffers.
type F32 struct {
	buf    []byte
	stride int
	elems  int
	engine endian.EndianEngine
}

// NewF32 creates a view with elems float32 values per vertex, separated by
// stride bytes between vertices.
func NewF32(buf []byte, stride, elems int) F32 {
	return F32{buf: buf, stride: stride, elems: elems, engine: endian.GetLittleEndianEngine()}
}

// IsNil reports whether the view has no backing buffer.
func (v F32) IsNil() bool {
	return v.buf == nil
}

// Elems returns the number of elements per vertex.
func (v F32) Elems() int {
	return v.elems
}

// At returns element elem of vertex vertex.
func (v F32) At(vertex, elem int) float32 {
	off := v.offset(vertex, elem, 4)

	return math.Float32frombits(v.engine.Uint32(v.buf[off : off+4]))
}

// Set stores element elem of vertex vertex.
func (v F32) Set(vertex, elem int, value float32) {
	off := v.offset(vertex, elem, 4)
	v.engine.PutUint32(v.buf[off:off+4], math.Float32bits(value))
}

func (v F32) offset(vertex, elem, size int) int {
	if elem < 0 || elem >= v.elems {
		panic("strided: element index out of range")
	}

	return vertex*v.stride + elem*size
}
