package model

import (
	"net/url"
	"strconv"
)

// UsersLocationPath is the users list route.
const UsersLocationPath = "/users"

// UsersLocation encodes the users list view state as a shareable route.
func UsersLocation(filter UserFilter, page Page) string {
	values := url.Values{}
	values.Set("filter", filter.Filter)
	values.Set("tombstones", strconv.FormatBool(filter.Tombstones))
	values.Set("banned", strconv.FormatBool(filter.Banned))
	values.Set("page", strconv.Itoa(int(page)))

	return UsersLocationPath + "?" + values.Encode()
}

// ParseUsersLocation decodes the users list view state from a route query.
// Flags are set by any non-empty value other than "false", invalid pages fall back to 0.
func ParseUsersLocation(rawQuery string) (UserFilter, Page) {
	values, err := url.ParseQuery(rawQuery)
	if err != nil {
		return UserFilter{}, 0
	}

	flag := func(key string) bool {
		v := values.Get(key)
		return v != "" && v != "false"
	}

	page, err := strconv.Atoi(values.Get("page"))
	if err != nil || page < 0 {
		page = 0
	}

	return UserFilter{
		Filter:     values.Get("filter"),
		Banned:     flag("banned"),
		Tombstones: flag("tombstones"),
	}, Page(page)
}

// StorageLocation encodes the storage list filter as a shareable route.
func StorageLocation(filter StorageFilter) string {
	values := url.Values{}
	if filter.UserId != "" {
		values.Set("user_id", filter.UserId)
	}
	if filter.Collection != "" {
		values.Set("collection", filter.Collection)
	}
	if filter.Key != "" {
		values.Set("key", filter.Key)
	}
	if len(values) == 0 {
		return "/storage"
	}

	return "/storage?" + values.Encode()
}

// ParseStorageLocation decodes the storage list filter from a route query.
func ParseStorageLocation(rawQuery string) StorageFilter {
	values, err := url.ParseQuery(rawQuery)
	if err != nil {
		return StorageFilter{}
	}

	return StorageFilter{
		UserId:     values.Get("user_id"),
		Collection: values.Get("collection"),
		Key:        values.Get("key"),
	}
}
