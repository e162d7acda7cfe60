package storage

import (
	"encoding/json"
	"fmt"
	"time"
)

type (
	// Item keeps Table element data.
	Item[T any] struct {
		Id        string
		SortKey   string
		Value     T
		IsDeleted bool
		UpdatedAt time.Time
	}

	// Position is an Item place in the Table order.
	Position struct {
		SortKey string `json:"k"`
		Id      string `json:"i"`
	}
)

// String implements stringer interface.
func (i Item[T]) String() string {
	raw, err := json.MarshalIndent(i, "", "  ")
	if err != nil {
		return fmt.Sprintf("marshal: %v", err)
	}

	return string(raw)
}

// Position returns the item Position.
func (i *Item[T]) Position() Position {
	return Position{SortKey: i.SortKey, Id: i.Id}
}

// Less compares positions by sort key and then by id.
func (p Position) Less(other Position) bool {
	if p.SortKey != other.SortKey {
		return p.SortKey < other.SortKey
	}

	return p.Id < other.Id
}

// NewItem creates a new Item object (no validation as it is used internaly).
func NewItem[T any](id, sortKey string, value T, timestamp time.Time) *Item[T] {
	return &Item[T]{
		Id:        id,
		SortKey:   sortKey,
		Value:     value,
		UpdatedAt: timestamp,
	}
}
