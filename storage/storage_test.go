package storage

import (
	"fmt"
	"math/rand"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

const BenchTableSize = 1000000

// Test adds/removes item to/from the table and checks data integrity.
func Test_Table_Sorting(t *testing.T) {
	table := NewTable[int]()

	isSorted := func(comment string) {
		t.Logf("%s:\n%s", comment, table.String())

		require.GreaterOrEqual(t, len(table.idDataMatch), len(table.list), "list/dataMap length mismatch")

		for i := 1; i < len(table.list); i++ {
			require.True(t, table.list[i-1].Position().Less(table.list[i].Position()), "item[%d] order", i)
			require.False(t, table.list[i].IsDeleted, "item isDeleted")
		}
	}

	// add a few items
	for _, key := range []string{"e", "a", "j", "h", "0"} {
		table.Set(uuid.New().String(), key, 0, time.Time{})
		isSorted(fmt.Sprintf("Adding %s", key))
	}

	// update moves an item
	{
		item := table.list[0]
		created := table.Set(item.Id, "z", 1, time.Time{})
		require.False(t, created)
		isSorted("Moving [0] to the end")
		require.Equal(t, item.Id, table.list[len(table.list)-1].Id)
	}

	// remove a few items
	for _, idx := range []int{0, 3, 1, 1, 0} {
		table.Delete(table.list[idx].Id, time.Time{})
		isSorted(fmt.Sprintf("Removing [%d]", idx))
	}

	require.Len(t, table.idDataMatch, 5)
	require.Len(t, table.Deleted(), 5)
	for _, item := range table.idDataMatch {
		require.True(t, item.IsDeleted)
	}
}

func Test_Table_DeleteAndRevive(t *testing.T) {
	table := NewTable[string]()
	now := time.Now()

	require.True(t, table.Set("id1", "b", "v1", now))
	require.True(t, table.Delete("id1", now))
	require.False(t, table.Delete("id1", now), "second delete")

	_, found := table.Get("id1")
	require.False(t, found)
	item, found := table.Lookup("id1")
	require.True(t, found)
	require.True(t, item.IsDeleted)

	require.True(t, table.Set("id1", "b", "v2", now), "revive")
	item, found = table.Get("id1")
	require.True(t, found)
	require.Equal(t, "v2", item.Value)
	require.Equal(t, 1, table.Len())
}

func Test_Table_Scan(t *testing.T) {
	table := NewTable[int]()
	for i := 0; i < 10; i++ {
		id := fmt.Sprintf("id%02d", i)
		table.Set(id, id, i, time.Time{})
	}
	even := func(v int) bool { return v%2 == 0 }

	items, more := table.Scan(nil, 3, even)
	require.True(t, more)
	require.Len(t, items, 3)
	require.Equal(t, []int{0, 2, 4}, values(items))

	after := items[len(items)-1].Position()
	items, more = table.Scan(&after, 3, even)
	require.False(t, more, "exactly two matches left")
	require.Equal(t, []int{6, 8}, values(items))

	items, more = table.Scan(nil, 0, nil)
	require.False(t, more)
	require.Len(t, items, 10)
	require.Equal(t, 5, table.Count(even))

	deleted := table.DeleteAll(time.Time{}, func(item *Item[int]) bool { return item.Value < 3 })
	require.Equal(t, 7, deleted)
	require.Equal(t, 3, table.Len())
}

func Test_Cursor(t *testing.T) {
	p := Position{SortKey: "inventory", Id: "abc"}
	decoded, err := DecodeCursor(EncodeCursor(p))
	require.NoError(t, err)
	require.Equal(t, p, *decoded)

	decoded, err = DecodeCursor("")
	require.NoError(t, err)
	require.Nil(t, decoded)

	_, err = DecodeCursor("%%%")
	require.ErrorIs(t, err, ErrInvalidCursor)
}

func values(items []*Item[int]) []int {
	out := make([]int, 0, len(items))
	for _, item := range items {
		out = append(out, item.Value)
	}
	return out
}

func newBenchTable(n int) *Table[int32] {
	table := NewTable[int32]()
	for i := 0; i < n; i++ {
		id := uuid.New().String()
		table.Set(id, fmt.Sprintf("%010d", rand.Int31()), 0, time.Time{})
	}
	return table
}

func Benchmark_Table_Insert(b *testing.B) {
	table := newBenchTable(BenchTableSize)
	b.ResetTimer()

	for n := 0; n < b.N; n++ {
		table.Set(uuid.New().String(), fmt.Sprintf("%010d", rand.Int31()), 0, time.Time{})
	}
}

func Benchmark_Table_Delete(b *testing.B) {
	table := newBenchTable(BenchTableSize)
	b.ResetTimer()

	for n := 0; n < b.N; n++ {
		if len(table.list) == 0 {
			return
		}
		table.Delete(table.list[rand.Intn(len(table.list))].Id, time.Time{})
	}
}
