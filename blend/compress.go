package blend

import (
	"errors"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/arloliu/blendpack/codec"
	"github.com/arloliu/blendpack/errs"
	"github.com/arloliu/blendpack/internal/strided"
)

// encodeChunkSize is the number of vertices one worker encodes at a time.
const encodeChunkSize = 1024

// CompressBuffers compresses the blend attributes of vertexCount vertices
// into fixed-stride records and a deduplicated tuple table.
//
// The scan over all vertices assigns tuple ids in vertex order, then the
// independent per-vertex records are encoded in parallel. The returned size
// is the number of distinct tuples the input requires, which may exceed
// maxTableSize.
//
// Parameters:
//   - dstTable: view with params.MaxBoneCount uint16 elements per entry
//     receiving the canonical tuples. May be a zero view to skip the copy.
//   - dstRecords: record storage, params.VertexSize bytes written per vertex
//     at recordStride intervals. Nil requests a size-only dry run: the scan
//     still runs to completion and reports the true required table size.
//   - src: source attribute views sized for params.MaxBoneCount influences.
//
// Returns ErrTableOverflow when the input needs more than maxTableSize
// distinct tuples (no records are written), ErrInvalidInput for malformed
// vertex data, and ErrUnsupportedParams for an incomplete parameter set.
func CompressBuffers(dstTable strided.U16, dstRecords []byte, recordStride int, src Attributes, params *codec.Params, vertexCount, maxTableSize int) (int, error) {
	if err := params.Validate(); err != nil {
		return 0, err
	}
	boneCount := params.MaxBoneCount

	table := NewTupleTable(boneCount, maxTableSize)
	tupleIndices := make([]uint32, vertexCount)
	pairs := make([]codec.Influence, boneCount)
	overflow := false
	for v := 0; v < vertexCount; v++ {
		gatherInfluences(pairs, src, boneCount, v)
		if err := validateInfluences(pairs, v); err != nil {
			return 0, err
		}

		id, err := table.LookupOrInsert(pairs)
		switch {
		case errors.Is(err, errs.ErrTableOverflow):
			overflow = true
		case err != nil:
			return 0, err
		}
		tupleIndices[v] = id
	}
	required := table.RequiredSize()

	if !dstTable.IsNil() {
		for id := 0; id < table.Len(); id++ {
			for j, index := range table.Entry(uint32(id)) {
				dstTable.Set(id, j, index)
			}
		}
	}

	if overflow {
		return required, fmt.Errorf("%w: input needs %d tuples, caller allows %d",
			errs.ErrTableOverflow, required, maxTableSize)
	}
	if dstRecords == nil {
		return required, nil
	}

	// Tuple ids are fixed now, so the per-vertex records have no remaining
	// interdependency.
	var group errgroup.Group
	group.SetLimit(runtime.GOMAXPROCS(0))
	for begin := 0; begin < vertexCount; begin += encodeChunkSize {
		begin := begin
		end := min(begin+encodeChunkSize, vertexCount)
		group.Go(func() error {
			chunkPairs := make([]codec.Influence, boneCount)
			for v := begin; v < end; v++ {
				gatherInfluences(chunkPairs, src, boneCount, v)
				record := dstRecords[v*recordStride : v*recordStride+params.VertexSize]
				if err := codec.EncodeRecord(record, params, chunkPairs, tupleIndices[v]); err != nil {
					return err
				}
			}

			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return required, err
	}

	return required, nil
}
