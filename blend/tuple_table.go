package blend

import (
	"encoding/binary"
	"fmt"
	"sync"

	"github.com/cespare/xxhash/v2"

	"github.com/arloliu/blendpack/codec"
	"github.com/arloliu/blendpack/errs"
)

// TupleTable deduplicates bone index tuples into a dense table with stable
// sequential ids. Tuples are canonicalized before lookup, so the same set of
// influences yields the same id regardless of the order the caller presents
// the pairs in.
//
// The table keeps counting distinct tuples past its capacity: an insert
// beyond maxTupleCount still gets a sequential id and is remembered for
// deduplication, but the call reports ErrTableOverflow and the entry never
// becomes visible through Len or Entry. RequiredSize reports the total
// distinct count, so a caller can size a larger table and retry.
//
// All methods are safe for concurrent use. Ids are assigned by insertion
// order, so concurrent inserts of distinct tuples trade id determinism for
// parallelism; callers that need reproducible ids insert from one goroutine.
type TupleTable struct {
	mu            sync.Mutex
	maxBoneCount  int
	maxTupleCount int
	tuples        []uint16
	byHash        map[uint64][]uint32
	scratch       []codec.Influence
	keyBuf        []byte
}

// NewTupleTable creates an empty table for tuples of maxBoneCount indices,
// holding at most maxTupleCount visible entries.
func NewTupleTable(maxBoneCount, maxTupleCount int) *TupleTable {
	return &TupleTable{
		maxBoneCount:  maxBoneCount,
		maxTupleCount: maxTupleCount,
		byHash:        make(map[uint64][]uint32),
		scratch:       make([]codec.Influence, maxBoneCount),
		keyBuf:        make([]byte, 2*maxBoneCount),
	}
}

// LookupOrInsert returns the id of the tuple formed by the given influences,
// inserting it if it is new. The returned id is valid even when the error is
// ErrTableOverflow, which reports that the entry landed beyond the table's
// capacity.
func (t *TupleTable) LookupOrInsert(pairs []codec.Influence) (uint32, error) {
	if len(pairs) != t.maxBoneCount {
		return 0, fmt.Errorf("%w: tuple has %d influences, table holds %d",
			errs.ErrInvalidInput, len(pairs), t.maxBoneCount)
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	copy(t.scratch, pairs)
	codec.SortCanonical(t.scratch)
	for i, p := range t.scratch {
		binary.LittleEndian.PutUint16(t.keyBuf[2*i:], p.Index)
	}
	key := xxhash.Sum64(t.keyBuf)

	for _, id := range t.byHash[key] {
		if t.entryEqualsScratch(id) {
			return id, t.capacityStatus(id)
		}
	}

	id := uint32(len(t.tuples) / t.maxBoneCount)
	for _, p := range t.scratch {
		t.tuples = append(t.tuples, p.Index)
	}
	t.byHash[key] = append(t.byHash[key], id)

	return id, t.capacityStatus(id)
}

func (t *TupleTable) entryEqualsScratch(id uint32) bool {
	entry := t.tuples[int(id)*t.maxBoneCount : (int(id)+1)*t.maxBoneCount]
	for i, index := range entry {
		if t.scratch[i].Index != index {
			return false
		}
	}

	return true
}

func (t *TupleTable) capacityStatus(id uint32) error {
	if int(id) >= t.maxTupleCount {
		return errs.ErrTableOverflow
	}

	return nil
}

// RequiredSize returns the number of distinct tuples seen so far, including
// those beyond the table's capacity.
func (t *TupleTable) RequiredSize() int {
	t.mu.Lock()
	defer t.mu.Unlock()

	return len(t.tuples) / t.maxBoneCount
}

// Len returns the number of entries visible to consumers, at most the
// table's capacity.
func (t *TupleTable) Len() int {
	return min(t.RequiredSize(), t.maxTupleCount)
}

// Overflowed reports whether any insert landed beyond the capacity.
func (t *TupleTable) Overflowed() bool {
	return t.RequiredSize() > t.maxTupleCount
}

// Entry returns the canonical bone indices of the given entry. The returned
// slice aliases the table and must not be modified.
func (t *TupleTable) Entry(id uint32) []uint16 {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.tuples[int(id)*t.maxBoneCount : (int(id)+1)*t.maxBoneCount]
}
