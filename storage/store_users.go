package storage

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/itiky/game-console/model"
)

// AddUser creates or replaces a user, used by the seed loader.
func (s *Store) AddUser(user model.User, now time.Time) error {
	if _, err := uuid.Parse(user.Id); err != nil {
		return fmt.Errorf("%s: invalid: %w", "id", err)
	}

	s.Lock()
	defer s.Unlock()

	s.users.Set(user.Id, user.Id, user, now)

	return nil
}

// ListUsers returns a page of users (or tombstones) matching the request filter.
// The filter is treated as a user id if it parses as one, as a username otherwise.
// TotalCount is the number of live users regardless of the filter.
func (s *Store) ListUsers(req model.ListUsersRequest, pageSize int) (model.UserList, error) {
	if pageSize <= 0 {
		return model.UserList{}, fmt.Errorf("%s: must be GT 0", "pageSize")
	}
	if req.Page < 0 {
		return model.UserList{}, fmt.Errorf("%s: must be GTE 0", "page")
	}

	s.RLock()
	defer s.RUnlock()

	list := model.UserList{
		Users:      make([]model.User, 0),
		TotalCount: s.users.Len(),
	}

	if req.Tombstones {
		list.Users = s.listTombstones(req.Filter)
		list.Users = paginate(list.Users, req.Page, pageSize)
		return list, nil
	}

	filterId, filterIdErr := uuid.Parse(req.Filter)
	match := func(user model.User) bool {
		if req.Filter != "" {
			if filterIdErr == nil {
				if user.Id != filterId.String() {
					return false
				}
			} else if user.Username != req.Filter {
				return false
			}
		}
		if req.Banned && !user.Banned() {
			return false
		}
		return true
	}

	items, _ := s.users.Scan(nil, 0, match)
	for _, item := range items {
		list.Users = append(list.Users, item.Value)
	}
	list.Users = paginate(list.Users, req.Page, pageSize)

	return list, nil
}

// listTombstones returns deleted users: only the id and the deletion time are kept.
func (s *Store) listTombstones(filter string) []model.User {
	users := make([]model.User, 0)

	if filter != "" {
		// Filtering tombstones by username gives no results
		id, err := uuid.Parse(filter)
		if err != nil {
			return users
		}
		item, found := s.users.Lookup(id.String())
		if !found || !item.IsDeleted {
			return users
		}
		return append(users, tombstone(item))
	}

	for _, item := range s.users.Deleted() {
		users = append(users, tombstone(item))
	}

	return users
}

// GetUser returns a live user by id.
func (s *Store) GetUser(id string) (model.User, error) {
	s.RLock()
	defer s.RUnlock()

	item, found := s.users.Get(id)
	if !found {
		return model.User{}, ErrNotFound
	}

	return item.Value, nil
}

// DeleteUser soft-deletes a user leaving a tombstone, the user storage objects are removed.
func (s *Store) DeleteUser(id string, now time.Time) error {
	if id == model.SystemUserID {
		return ErrSystemUser
	}

	s.Lock()
	defer s.Unlock()

	if !s.users.Delete(id, now) {
		return ErrNotFound
	}
	s.objects.DeleteAll(now, func(item *Item[model.StorageObject]) bool {
		return item.Value.UserId != id
	})

	return nil
}

// DeleteAllUsers removes all users but the system one alongside their storage objects.
func (s *Store) DeleteAllUsers(now time.Time) int {
	s.Lock()
	defer s.Unlock()

	deleted := s.users.DeleteAll(now, func(item *Item[model.User]) bool {
		return item.Id == model.SystemUserID
	})
	s.objects.DeleteAll(now, func(item *Item[model.StorageObject]) bool {
		return item.Value.UserId == model.SystemUserID
	})

	return deleted
}

// BanUser disables a user.
func (s *Store) BanUser(id string, now time.Time) error {
	return s.updateUser(id, now, func(user *model.User) {
		user.DisableTime = now.Unix()
	})
}

// UnbanUser enables a user.
func (s *Store) UnbanUser(id string, now time.Time) error {
	return s.updateUser(id, now, func(user *model.User) {
		user.DisableTime = 0
	})
}

// updateUser applies the update func to a live user.
func (s *Store) updateUser(id string, now time.Time, update func(user *model.User)) error {
	if id == model.SystemUserID {
		return ErrSystemUser
	}

	s.Lock()
	defer s.Unlock()

	item, found := s.users.Get(id)
	if !found {
		return ErrNotFound
	}
	user := item.Value
	update(&user)
	user.UpdateTime = now.Unix()
	s.users.Set(id, id, user, now)

	return nil
}

// tombstone converts a deleted user item.
func tombstone(item *Item[model.User]) model.User {
	return model.User{
		Id:         item.Id,
		UpdateTime: item.UpdatedAt.Unix(),
	}
}

// paginate returns the page slice.
func paginate[T any](items []T, page, pageSize int) []T {
	start := page * pageSize
	if start >= len(items) {
		return items[:0]
	}
	end := start + pageSize
	if end > len(items) {
		end = len(items)
	}

	return items[start:end]
}
