package storage

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
)

// ErrInvalidCursor is returned for cursors not issued by EncodeCursor.
var ErrInvalidCursor = errors.New("invalid cursor")

// EncodeCursor encodes a Table position into an opaque string.
func EncodeCursor(p Position) string {
	raw, _ := json.Marshal(p)
	return base64.RawURLEncoding.EncodeToString(raw)
}

// DecodeCursor decodes an opaque cursor, an empty cursor gives nil.
func DecodeCursor(cursor string) (*Position, error) {
	if cursor == "" {
		return nil, nil
	}

	raw, err := base64.RawURLEncoding.DecodeString(cursor)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidCursor, err)
	}
	var p Position
	if err := json.Unmarshal(raw, &p); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidCursor, err)
	}
	if p.Id == "" {
		return nil, fmt.Errorf("%w: %s: empty", ErrInvalidCursor, "id")
	}

	return &p, nil
}
