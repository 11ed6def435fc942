// Package pool provides pooled byte buffers for container serialization.
package pool

import (
	"io"
	"sync"
)

const (
	// ContainerBufferDefaultSize is the default capacity of buffers handed
	// out by the container pool; sized for a typical mesh's table plus
	// records.
	ContainerBufferDefaultSize = 1024 * 64
	// ContainerBufferMaxThreshold is the largest buffer the pool retains.
	// Bigger ones are dropped to avoid memory bloat.
	ContainerBufferMaxThreshold = 1024 * 1024 * 8
)

type ByteBuffer struct {
	// B is the underlying byte slice.
	B []byte
}

// NewByteBuffer creates a new ByteBuffer with the specified default size.
func NewByteBuffer(defaultSize int) *ByteBuffer {
	return &ByteBuffer{
		B: make([]byte, 0, defaultSize),
	}
}

// Bytes returns the underlying byte slice.
func (bb *ByteBuffer) Bytes() []byte {
	return bb.B
}

// Reset resets the buffer to be empty, but retains the allocated memory for reuse.
func (bb *ByteBuffer) Reset() {
	bb.B = bb.B[:0]
}

// Len returns the length of the buffer.
func (bb *ByteBuffer) Len() int {
	return len(bb.B)
}

// Cap returns the capacity of the buffer.
func (bb *ByteBuffer) Cap() int {
	return cap(bb.B)
}

// MustWrite writes data to the buffer, growing it if necessary.
func (bb *ByteBuffer) MustWrite(data []byte) {
	bb.B = append(bb.B, data...)
}

// ExtendOrGrow extends the buffer by n bytes, growing it if necessary, and
// returns the newly appended region.
func (bb *ByteBuffer) ExtendOrGrow(n int) []byte {
	start := len(bb.B)
	if cap(bb.B)-start < n {
		grown := make([]byte, start, start+max(n, cap(bb.B)/4))
		copy(grown, bb.B)
		bb.B = grown
	}
	bb.B = bb.B[:start+n]

	return bb.B[start:]
}

// Write appends the contents of data to the buffer, growing it as needed.
func (bb *ByteBuffer) Write(data []byte) (int, error) {
	bb.B = append(bb.B, data...)
	return len(data), nil
}

// WriteTo writes the contents of the buffer to w.
func (bb *ByteBuffer) WriteTo(w io.Writer) (int64, error) {
	n, err := w.Write(bb.B)
	return int64(n), err
}

// ByteBufferPool is a pool of ByteBuffers to minimize allocations.
//
// It uses sync.Pool internally. A maximum size threshold avoids retaining
// overly large buffers that could lead to memory bloat.
type ByteBufferPool struct {
	pool         sync.Pool
	maxThreshold int
}

// NewByteBufferPool creates a new ByteBufferPool with buffers of the specified default size.
func NewByteBufferPool(defaultSize int, maxThreshold int) *ByteBufferPool {
	return &ByteBufferPool{
		pool: sync.Pool{
			New: func() any {
				return NewByteBuffer(defaultSize)
			},
		},
		maxThreshold: maxThreshold,
	}
}

// Get retrieves a ByteBuffer from the pool.
func (bbp *ByteBufferPool) Get() *ByteBuffer {
	bb, _ := bbp.pool.Get().(*ByteBuffer)
	return bb
}

// Put returns a ByteBuffer to the pool for reuse.
func (bbp *ByteBufferPool) Put(bb *ByteBuffer) {
	if bb == nil {
		return
	}

	if bbp.maxThreshold > 0 && cap(bb.B) > bbp.maxThreshold {
		return
	}

	bb.Reset()
	bbp.pool.Put(bb)
}

var containerDefaultPool = NewByteBufferPool(ContainerBufferDefaultSize, ContainerBufferMaxThreshold)

// GetContainerBuffer retrieves a ByteBuffer from the default container pool.
func GetContainerBuffer() *ByteBuffer {
	return containerDefaultPool.Get()
}

// PutContainerBuffer returns a ByteBuffer to the default container pool.
func PutContainerBuffer(bb *ByteBuffer) {
	containerDefaultPool.Put(bb)
}
