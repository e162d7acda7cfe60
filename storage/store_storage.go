package storage

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/itiky/game-console/model"
)

// ListStorage returns a cursor page of storage objects matching the request filter.
func (s *Store) ListStorage(req model.ListStorageRequest, limit int) (model.StorageList, error) {
	if limit <= 0 {
		return model.StorageList{}, fmt.Errorf("%s: must be GT 0", "limit")
	}
	after, err := DecodeCursor(req.Cursor)
	if err != nil {
		return model.StorageList{}, err
	}

	match := func(obj model.StorageObject) bool {
		if req.UserId != "" && obj.UserId != req.UserId {
			return false
		}
		if req.Collection != "" && obj.Collection != req.Collection {
			return false
		}
		if req.Key != "" && obj.Key != req.Key {
			return false
		}
		return true
	}

	s.RLock()
	defer s.RUnlock()

	items, more := s.objects.Scan(after, limit, match)
	list := model.StorageList{
		Objects:    make([]model.StorageObject, 0, len(items)),
		TotalCount: s.objects.Count(match),
	}
	for _, item := range items {
		list.Objects = append(list.Objects, item.Value)
	}
	if more && len(items) > 0 {
		list.Cursor = EncodeCursor(items[len(items)-1].Position())
	}

	return list, nil
}

// GetStorage returns a storage object by its composite key.
func (s *Store) GetStorage(ref model.StorageObjectRequest) (model.StorageObject, error) {
	s.RLock()
	defer s.RUnlock()

	item, found := s.objects.Get(storageObjectId(ref))
	if !found {
		return model.StorageObject{}, ErrNotFound
	}

	return item.Value, nil
}

// WriteStorage creates or updates a storage object, the version is the value hash.
func (s *Store) WriteStorage(obj model.StorageObject, now time.Time) model.StorageObject {
	s.Lock()
	defer s.Unlock()

	id := storageObjectId(obj.Ref())
	obj.CreateTime = now.Unix()
	if item, found := s.objects.Get(id); found {
		obj.CreateTime = item.Value.CreateTime
	}
	obj.UpdateTime = now.Unix()
	hash := md5.Sum([]byte(obj.Value))
	obj.Version = hex.EncodeToString(hash[:])

	s.objects.Set(id, id, obj, now)

	return obj
}

// DeleteStorage removes a storage object.
func (s *Store) DeleteStorage(ref model.StorageObjectRequest, now time.Time) error {
	s.Lock()
	defer s.Unlock()

	if !s.objects.Delete(storageObjectId(ref), now) {
		return ErrNotFound
	}

	return nil
}

// DeleteAllStorage removes all storage objects and returns their number.
func (s *Store) DeleteAllStorage(now time.Time) int {
	s.Lock()
	defer s.Unlock()

	return s.objects.DeleteAll(now, nil)
}

// storageObjectId builds the Table id, it doubles as the sort key: objects are ordered by collection, key, user.
func storageObjectId(ref model.StorageObjectRequest) string {
	return ref.Collection + "\x00" + ref.Key + "\x00" + ref.UserId
}
