package model

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func Test_UsersLocation(t *testing.T) {
	loc := UsersLocation(UserFilter{Filter: "bob", Banned: true}, 3)
	require.Equal(t, "/users?banned=true&filter=bob&page=3&tombstones=false", loc)

	filter, page := ParseUsersLocation(loc[len(UsersLocationPath)+1:])
	require.Equal(t, UserFilter{Filter: "bob", Banned: true}, filter)
	require.EqualValues(t, 3, page)
}

func Test_ParseUsersLocation(t *testing.T) {
	testCases := []struct {
		name   string
		query  string
		filter UserFilter
		page   Page
	}{
		{name: "empty", query: ""},
		{name: "flag values", query: "banned=1&tombstones=false", filter: UserFilter{Banned: true}},
		{name: "invalid page", query: "page=abc&filter=x", filter: UserFilter{Filter: "x"}},
		{name: "negative page", query: "page=-2"},
		{name: "broken query", query: "%zz"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			filter, page := ParseUsersLocation(tc.query)
			require.Equal(t, tc.filter, filter)
			require.Equal(t, tc.page, page)
		})
	}
}

func Test_StorageLocation(t *testing.T) {
	require.Equal(t, "/storage", StorageLocation(StorageFilter{}))

	filter := StorageFilter{UserId: SystemUserID, Collection: "inventory", Key: "slot1"}
	loc := StorageLocation(filter)
	require.Equal(t, "/storage?collection=inventory&key=slot1&user_id="+SystemUserID, loc)
	require.Equal(t, filter, ParseStorageLocation(loc[len("/storage?"):]))
}
