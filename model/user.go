package model

import (
	"fmt"

	"github.com/google/uuid"
)

type (
	// User is a console user snapshot.
	// Tombstones only carry Id and UpdateTime.
	User struct {
		Id          string   `json:"id"`
		Username    string   `json:"username,omitempty"`
		DisplayName string   `json:"display_name,omitempty"`
		AvatarUrl   string   `json:"avatar_url,omitempty"`
		LangTag     string   `json:"lang_tag,omitempty"`
		Location    string   `json:"location,omitempty"`
		Timezone    string   `json:"timezone,omitempty"`
		Metadata    Metadata `json:"metadata,omitempty"`
		EdgeCount   int      `json:"edge_count"`
		CreateTime  int64    `json:"create_time,omitempty"`
		UpdateTime  int64    `json:"update_time"`
		DisableTime int64    `json:"disable_time,omitempty"`
	}

	UserList struct {
		Users      []User `json:"users"`
		TotalCount int    `json:"total_count"`
	}
)

// Banned reports whether the user is disabled.
func (u User) Banned() bool {
	return u.DisableTime != 0
}

// UserFilter holds the users list filter fields.
// Filter is either a user id or a username.
type UserFilter struct {
	Filter     string `json:"filter"`
	Banned     bool   `json:"banned"`
	Tombstones bool   `json:"tombstones"`
}

// Users list / get / delete RPC requests.
type (
	ListUsersRequest struct {
		UserFilter
		Page int `json:"page"`
	}

	UserRequest struct {
		Id string `json:"id"`
	}
)

// NewListUsersRequest builds a ListUsersRequest.
func NewListUsersRequest(filter UserFilter, page int) (ListUsersRequest, error) {
	if page < 0 {
		return ListUsersRequest{}, fmt.Errorf("%s: must be GTE 0", "page")
	}
	if filter.Banned && filter.Tombstones {
		return ListUsersRequest{}, fmt.Errorf("%s: can't be combined with %s", "banned", "tombstones")
	}

	return ListUsersRequest{
		UserFilter: filter,
		Page:       page,
	}, nil
}

// NewUserRequest builds a UserRequest for a valid user id.
func NewUserRequest(id string) (UserRequest, error) {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return UserRequest{}, fmt.Errorf("%s: invalid: %w", "id", err)
	}

	return UserRequest{Id: parsed.String()}, nil
}
