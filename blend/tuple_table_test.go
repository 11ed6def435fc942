package blend

import (
	"math/rand"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/blendpack/codec"
	"github.com/arloliu/blendpack/errs"
)

func TestTupleTable_SameTupleAnyOrder(t *testing.T) {
	rng := rand.New(rand.NewSource(5))

	base := []codec.Influence{
		{Index: 12, Weight: 0.5},
		{Index: 3, Weight: 0.3},
		{Index: 44, Weight: 0.15},
		{Index: 7, Weight: 0.05},
	}

	table := NewTupleTable(4, 16)
	first, err := table.LookupOrInsert(base)
	require.NoError(t, err)
	require.Equal(t, uint32(0), first)

	for trial := 0; trial < 20; trial++ {
		shuffled := make([]codec.Influence, len(base))
		copy(shuffled, base)
		rng.Shuffle(len(shuffled), func(a, b int) { shuffled[a], shuffled[b] = shuffled[b], shuffled[a] })

		id, err := table.LookupOrInsert(shuffled)
		require.NoError(t, err)
		require.Equal(t, first, id)
	}
	require.Equal(t, 1, table.RequiredSize())
}

func TestTupleTable_SequentialIDs(t *testing.T) {
	table := NewTupleTable(2, 16)

	for i := 0; i < 5; i++ {
		pairs := []codec.Influence{
			{Index: uint16(2 * i), Weight: 0.7},
			{Index: uint16(2*i + 1), Weight: 0.3},
		}
		id, err := table.LookupOrInsert(pairs)
		require.NoError(t, err)
		require.Equal(t, uint32(i), id)

		// Looking the tuple up again must not mint a new id.
		again, err := table.LookupOrInsert(pairs)
		require.NoError(t, err)
		require.Equal(t, id, again)
	}
	require.Equal(t, 5, table.RequiredSize())
	require.Equal(t, 5, table.Len())
	require.False(t, table.Overflowed())
}

func TestTupleTable_Overflow(t *testing.T) {
	table := NewTupleTable(2, 2)

	for i := 0; i < 2; i++ {
		_, err := table.LookupOrInsert([]codec.Influence{
			{Index: uint16(i), Weight: 0.6},
			{Index: uint16(i + 10), Weight: 0.4},
		})
		require.NoError(t, err)
	}

	third := []codec.Influence{
		{Index: 50, Weight: 0.6},
		{Index: 51, Weight: 0.4},
	}
	id, err := table.LookupOrInsert(third)
	require.ErrorIs(t, err, errs.ErrTableOverflow)
	require.Equal(t, uint32(2), id)
	require.Equal(t, 3, table.RequiredSize())
	require.Equal(t, 2, table.Len())
	require.True(t, table.Overflowed())

	// The overflowed tuple still deduplicates and still reports overflow.
	again, err := table.LookupOrInsert(third)
	require.ErrorIs(t, err, errs.ErrTableOverflow)
	require.Equal(t, id, again)
	require.Equal(t, 3, table.RequiredSize())
}

func TestTupleTable_WrongTupleLength(t *testing.T) {
	table := NewTupleTable(4, 16)
	_, err := table.LookupOrInsert([]codec.Influence{{Index: 1, Weight: 1.0}})
	require.ErrorIs(t, err, errs.ErrInvalidInput)
}

func TestTupleTable_CanonicalEntryOrder(t *testing.T) {
	table := NewTupleTable(3, 16)
	id, err := table.LookupOrInsert([]codec.Influence{
		{Index: 9, Weight: 0.1},
		{Index: 2, Weight: 0.6},
		{Index: 7, Weight: 0.3},
	})
	require.NoError(t, err)

	// Entries store indices in descending weight order.
	require.Equal(t, []uint16{2, 7, 9}, table.Entry(id))
}

func TestTupleTable_ConcurrentSameTuple(t *testing.T) {
	table := NewTupleTable(2, 16)
	pairs := []codec.Influence{
		{Index: 1, Weight: 0.8},
		{Index: 2, Weight: 0.2},
	}

	var wg sync.WaitGroup
	ids := make([]uint32, 16)
	for g := 0; g < 16; g++ {
		g := g
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 100; i++ {
				id, err := table.LookupOrInsert(pairs)
				require.NoError(t, err)
				ids[g] = id
			}
		}()
	}
	wg.Wait()

	for _, id := range ids {
		require.Equal(t, uint32(0), id)
	}
	require.Equal(t, 1, table.RequiredSize())
}
