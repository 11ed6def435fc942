package blob

import (
	"github.com/arloliu/blendpack/codec"
	"github.com/arloliu/blendpack/section"
)

// BlendBlob is a decoded container: the completed compression parameters,
// the canonical tuple table, and the still-encoded vertex records.
//
// Records keep their compressed bit layout. Runtime consumers upload them
// next to the tuple table and decode per vertex on the GPU; the parameters
// carry everything such a decoder needs.
type BlendBlob struct {
	header  section.BlendHeader
	params  codec.Params
	tuples  []uint16
	records []byte
}

// Header returns the parsed container header.
func (b *BlendBlob) Header() section.BlendHeader {
	return b.header
}

// Params returns the completed compression parameters of the records.
func (b *BlendBlob) Params() codec.Params {
	return b.params
}

// VertexCount returns the number of encoded vertex records.
func (b *BlendBlob) VertexCount() int {
	return int(b.header.VertexCount)
}

// TupleCount returns the number of tuples in the tuple table.
func (b *BlendBlob) TupleCount() int {
	return int(b.header.TupleCount)
}

// Tuple returns the canonical bone index tuple with the given id. The
// returned slice aliases the table; callers must not modify it. Panics if id
// is out of range, like a slice index.
func (b *BlendBlob) Tuple(id int) []uint16 {
	boneCount := b.params.MaxBoneCount

	return b.tuples[id*boneCount : (id+1)*boneCount]
}

// Record returns the encoded record of the given vertex. The returned slice
// aliases the payload; callers must not modify it.
func (b *BlendBlob) Record(vertex int) []byte {
	size := b.params.VertexSize

	return b.records[vertex*size : (vertex+1)*size]
}

// RecordPayload returns the whole decompressed record payload, VertexSize
// bytes per vertex.
func (b *BlendBlob) RecordPayload() []byte {
	return b.records
}
