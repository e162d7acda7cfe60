package model

import (
	"encoding/json"
	"fmt"
)

// SystemUserID is the owner of server-owned storage objects. The system user can't be deleted.
const SystemUserID = "00000000-0000-0000-0000-000000000000"

// SortOrder is a tournament leaderboard sort order.
type SortOrder string

const (
	AscendingSortOrder  SortOrder = "asc"
	DescendingSortOrder SortOrder = "desc"
)

// Operator is a tournament score submission operator.
type Operator string

const (
	BestOperator      Operator = "best"
	SetOperator       Operator = "set"
	IncrementOperator Operator = "incr"
)

// Metadata is a free-form JSON object attached to users and tournaments.
type Metadata map[string]interface{}

// ParseMetadata decodes a JSON object string, an empty string gives an empty Metadata.
func ParseMetadata(raw string) (Metadata, error) {
	m := make(Metadata)
	if raw == "" {
		return m, nil
	}
	if err := json.Unmarshal([]byte(raw), &m); err != nil {
		return nil, fmt.Errorf("%s: must be a JSON object: %w", "metadata", err)
	}

	return m, nil
}
