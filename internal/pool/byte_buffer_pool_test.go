package pool

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestByteBuffer_Write(t *testing.T) {
	bb := NewByteBuffer(8)
	bb.MustWrite([]byte{1, 2, 3})

	n, err := bb.Write([]byte{4, 5})
	require.NoError(t, err)
	require.Equal(t, 2, n)
	require.Equal(t, []byte{1, 2, 3, 4, 5}, bb.Bytes())
	require.Equal(t, 5, bb.Len())
}

func TestByteBuffer_ExtendOrGrow(t *testing.T) {
	bb := NewByteBuffer(4)
	bb.MustWrite([]byte{1, 2})

	region := bb.ExtendOrGrow(8)
	require.Len(t, region, 8)
	require.Equal(t, 10, bb.Len())

	copy(region, []byte{9, 9, 9, 9, 9, 9, 9, 9})
	require.Equal(t, []byte{1, 2, 9, 9, 9, 9, 9, 9, 9, 9}, bb.Bytes())
}

func TestByteBuffer_WriteTo(t *testing.T) {
	bb := NewByteBuffer(8)
	bb.MustWrite([]byte("records"))

	var sink bytes.Buffer
	n, err := bb.WriteTo(&sink)
	require.NoError(t, err)
	require.Equal(t, int64(7), n)
	require.Equal(t, "records", sink.String())
}

func TestByteBufferPool_Reuse(t *testing.T) {
	p := NewByteBufferPool(16, 64)

	bb := p.Get()
	bb.MustWrite([]byte{1, 2, 3})
	p.Put(bb)

	again := p.Get()
	require.Zero(t, again.Len())
}

func TestByteBufferPool_DropsOversized(t *testing.T) {
	p := NewByteBufferPool(16, 32)

	bb := p.Get()
	bb.ExtendOrGrow(128)
	p.Put(bb) // over threshold, not retained

	fresh := p.Get()
	require.LessOrEqual(t, fresh.Cap(), 128)
	require.Zero(t, fresh.Len())
}

func TestDefaultContainerPool(t *testing.T) {
	bb := GetContainerBuffer()
	require.NotNil(t, bb)
	bb.MustWrite([]byte{1})
	PutContainerBuffer(bb)
}
