package model

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
)

type (
	// StorageObject is a console storage object snapshot.
	// Objects are identified by the (collection, key, user_id) triple.
	StorageObject struct {
		Collection      string `json:"collection"`
		Key             string `json:"key"`
		UserId          string `json:"user_id"`
		Value           string `json:"value"`
		Version         string `json:"version"`
		PermissionRead  int    `json:"permission_read"`
		PermissionWrite int    `json:"permission_write"`
		CreateTime      int64  `json:"create_time"`
		UpdateTime      int64  `json:"update_time"`
	}

	// StorageList is a single cursor page of storage objects.
	// Cursor is set only when more pages exist.
	StorageList struct {
		Objects    []StorageObject `json:"objects"`
		TotalCount int             `json:"total_count"`
		Cursor     string          `json:"cursor,omitempty"`
	}
)

// StorageFilter holds the storage list filter fields.
type StorageFilter struct {
	UserId     string `json:"user_id,omitempty"`
	Collection string `json:"collection,omitempty"`
	Key        string `json:"key,omitempty"`
}

// Storage list / get / delete RPC requests.
type (
	ListStorageRequest struct {
		StorageFilter
		Cursor string `json:"cursor,omitempty"`
	}

	StorageObjectRequest struct {
		Collection string `json:"collection"`
		Key        string `json:"key"`
		UserId     string `json:"user_id"`
	}
)

// NewListStorageRequest builds a ListStorageRequest.
// A key filter requires a collection filter.
func NewListStorageRequest(filter StorageFilter, cursor string) (ListStorageRequest, error) {
	if filter.UserId != "" {
		if _, err := uuid.Parse(filter.UserId); err != nil {
			return ListStorageRequest{}, fmt.Errorf("%s: invalid: %w", "user_id", err)
		}
	}
	if filter.Key != "" && filter.Collection == "" {
		return ListStorageRequest{}, fmt.Errorf("%s: requires %s", "key", "collection")
	}

	return ListStorageRequest{
		StorageFilter: filter,
		Cursor:        cursor,
	}, nil
}

// NewStorageObjectRequest builds a StorageObjectRequest, an empty userId stands for the system user.
func NewStorageObjectRequest(collection, key, userId string) (StorageObjectRequest, error) {
	if collection == "" {
		return StorageObjectRequest{}, fmt.Errorf("%s: empty", "collection")
	}
	if key == "" {
		return StorageObjectRequest{}, fmt.Errorf("%s: empty", "key")
	}
	if userId == "" {
		userId = SystemUserID
	}
	if _, err := uuid.Parse(userId); err != nil {
		return StorageObjectRequest{}, fmt.Errorf("%s: invalid: %w", "user_id", err)
	}

	return StorageObjectRequest{
		Collection: collection,
		Key:        key,
		UserId:     userId,
	}, nil
}

// NewStorageObject builds a StorageObject to write.
// value must be a JSON object, it is stored compacted.
func NewStorageObject(collection, key, userId, value string, permissionRead, permissionWrite int) (StorageObject, error) {
	ref, err := NewStorageObjectRequest(collection, key, userId)
	if err != nil {
		return StorageObject{}, err
	}
	if permissionRead < 0 || permissionRead > 2 {
		return StorageObject{}, fmt.Errorf("%s: must be in [0, 2]", "permission_read")
	}
	if permissionWrite < 0 || permissionWrite > 1 {
		return StorageObject{}, fmt.Errorf("%s: must be in [0, 1]", "permission_write")
	}

	if value == "" {
		value = "{}"
	}
	obj := make(map[string]interface{})
	if err := json.Unmarshal([]byte(value), &obj); err != nil {
		return StorageObject{}, fmt.Errorf("%s: must be a JSON object: %w", "value", err)
	}
	compacted, err := json.Marshal(obj)
	if err != nil {
		return StorageObject{}, fmt.Errorf("%s: marshal: %w", "value", err)
	}

	return StorageObject{
		Collection:      ref.Collection,
		Key:             ref.Key,
		UserId:          ref.UserId,
		Value:           string(compacted),
		PermissionRead:  permissionRead,
		PermissionWrite: permissionWrite,
	}, nil
}

// Ref returns the object composite key.
func (o StorageObject) Ref() StorageObjectRequest {
	return StorageObjectRequest{
		Collection: o.Collection,
		Key:        o.Key,
		UserId:     o.UserId,
	}
}
