// Package blob packages compressed blend attributes into a self-describing
// binary container and decodes such containers back into their sections.
//
// A container holds a fixed 32-byte header (see the section package), the
// deduplicated tuple table, the fixed-stride record payload, and by default a
// trailing xxhash64 digest over everything before it. Either section can be
// independently compressed with Zstd, S2 or LZ4.
//
// BlendEncoder runs the full pipeline, vertex buffers in, container bytes
// out:
//
//	params := &codec.Params{
//	    Method:        format.MethodPowerOfTwoAABB,
//	    MaxBoneCount:  4,
//	    MaxTupleCount: 4096,
//	    VertexSize:    4,
//	}
//	encoder, err := blob.NewBlendEncoder(params,
//	    blob.WithTableCompression(format.CompressionZstd),
//	    blob.WithRecordCompression(format.CompressionZstd),
//	)
//	if err != nil { ... }
//	data, err := encoder.Encode(src, vertexCount)
//
// BlendDecoder validates the digest and header, then Decode decompresses the
// sections into a BlendBlob. Records stay in their encoded form; runtime
// consumers index them by vertex and feed them to shader-side decoding.
//
//	decoder, err := blob.NewBlendDecoder(data)
//	if err != nil { ... }
//	decoded, err := decoder.Decode()
//	tuple := decoded.Tuple(3)
//	record := decoded.Record(100)
package blob
