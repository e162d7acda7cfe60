package storage

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

type (
	// Table keeps Item elements alongside the sorted list view.
	// Table implements the "soft delete" methodology: deleted items leave the list but stay in the index.
	Table[T any] struct {
		list        []*Item[T]
		idDataMatch map[string]*Item[T]
	}
)

// String implements stringer interface.
func (t *Table[T]) String() string {
	str := strings.Builder{}
	for i, item := range t.list {
		str.WriteString(fmt.Sprintf("- [%d] %s (%s)\n", i, item.SortKey, item.Id))
	}

	return str.String()
}

// Len returns the number of live items.
func (t *Table[T]) Len() int {
	return len(t.list)
}

// Get returns a live item by id.
func (t *Table[T]) Get(id string) (*Item[T], bool) {
	item, found := t.idDataMatch[id]
	if !found || item.IsDeleted {
		return nil, false
	}

	return item, true
}

// Lookup returns an item by id, deleted ones included.
func (t *Table[T]) Lookup(id string) (*Item[T], bool) {
	item, found := t.idDataMatch[id]
	return item, found
}

// Set creates a new / updates an existing (or deleted) Item while updating the sorted list index state.
// Returns true if the item was created or revived.
func (t *Table[T]) Set(id, sortKey string, value T, timestamp time.Time) bool {
	item, found := t.idDataMatch[id]
	if !found {
		// Add a new Item
		item = NewItem(id, sortKey, value, timestamp)
		t.idDataMatch[id] = item
		t.insert(item)

		return true
	}

	if item.IsDeleted {
		// Revive
		item.IsDeleted = false
		item.SortKey, item.Value, item.UpdatedAt = sortKey, value, timestamp
		t.insert(item)

		return true
	}

	// Update an existing item (that might break the sorting, so we have to cut/insert)
	t.cut(item)
	item.SortKey, item.Value, item.UpdatedAt = sortKey, value, timestamp
	t.insert(item)

	return false
}

// Delete marks an existing Item deleted while updating the sorted list index state.
func (t *Table[T]) Delete(id string, timestamp time.Time) bool {
	item, found := t.idDataMatch[id]
	if !found || item.IsDeleted {
		return false
	}

	// Mark as deleted
	item.IsDeleted = true
	item.UpdatedAt = timestamp
	t.cut(item)

	return true
}

// DeleteAll marks all live items deleted except the ones keep matches, returns the number of deleted items.
func (t *Table[T]) DeleteAll(timestamp time.Time, keep func(item *Item[T]) bool) int {
	kept := make([]*Item[T], 0)
	deleted := 0
	for _, item := range t.list {
		if keep != nil && keep(item) {
			kept = append(kept, item)
			continue
		}
		item.IsDeleted = true
		item.UpdatedAt = timestamp
		deleted++
	}
	t.list = kept

	return deleted
}

// Scan returns up to limit live items matching the filter placed after the after position (nil for the beginning).
// more is true if matching items are left after the last returned one.
func (t *Table[T]) Scan(after *Position, limit int, match func(value T) bool) (items []*Item[T], more bool) {
	startIdx := 0
	if after != nil {
		startIdx = sort.Search(len(t.list), func(i int) bool {
			return after.Less(t.list[i].Position())
		})
	}

	items = make([]*Item[T], 0)
	for i := startIdx; i < len(t.list); i++ {
		item := t.list[i]
		if match != nil && !match(item.Value) {
			continue
		}
		if limit > 0 && len(items) == limit {
			return items, true
		}
		items = append(items, item)
	}

	return items, false
}

// Count returns the number of live items matching the filter.
func (t *Table[T]) Count(match func(value T) bool) int {
	if match == nil {
		return len(t.list)
	}

	count := 0
	for _, item := range t.list {
		if match(item.Value) {
			count++
		}
	}

	return count
}

// Deleted returns deleted items ordered by id.
func (t *Table[T]) Deleted() []*Item[T] {
	items := make([]*Item[T], 0)
	for _, item := range t.idDataMatch {
		if item.IsDeleted {
			items = append(items, item)
		}
	}
	sort.Slice(items, func(i, j int) bool {
		return items[i].Id < items[j].Id
	})

	return items
}

// insert puts a live item into the sorted list.
func (t *Table[T]) insert(item *Item[T]) {
	itemIdxToInsert := t.findItemIdxLTTarget(item.Position())
	t.list = append(t.list, nil)
	copy(t.list[itemIdxToInsert+1:], t.list[itemIdxToInsert:])
	t.list[itemIdxToInsert] = item
}

// cut removes a live item from the sorted list.
func (t *Table[T]) cut(item *Item[T]) {
	itemIdx := t.findItemIdx(item)
	t.list = append(t.list[:itemIdx], t.list[itemIdx+1:]...)
}

// findItemIdxLTTarget returns the leftmost item index in the sorted list not less than the target.
func (t *Table[T]) findItemIdxLTTarget(target Position) int {
	return sort.Search(len(t.list), func(i int) bool {
		return !t.list[i].Position().Less(target)
	})
}

// findItemIdx returns the specified item index.
// Panics on failure (should not happen).
func (t *Table[T]) findItemIdx(item *Item[T]) int {
	idx := t.findItemIdxLTTarget(item.Position())
	if idx == len(t.list) || t.list[idx].Id != item.Id {
		panic("item not found: " + item.Id)
	}

	return idx
}

// NewTable creates a new Table object.
func NewTable[T any]() *Table[T] {
	return &Table[T]{
		idDataMatch: make(map[string]*Item[T]),
	}
}
