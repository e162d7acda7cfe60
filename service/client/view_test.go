package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/itiky/game-console/model"
)

// pagedStorage answers list_storage with cursors c1, c2, ... up to pages pages.
func pagedStorage(pages int) func(op string, payload map[string]interface{}) (int, string) {
	return func(op string, payload map[string]interface{}) (int, string) {
		if op != model.ListStorageRPC {
			return http.StatusOK, `{}`
		}

		page := 0
		if cursor, ok := payload["cursor"].(string); ok {
			fmt.Sscanf(cursor, "c%d", &page)
		}
		list := model.StorageList{
			Objects:    []model.StorageObject{{Collection: "inventory", Key: fmt.Sprintf("slot%d", page)}},
			TotalCount: pages,
		}
		if page+1 < pages {
			list.Cursor = fmt.Sprintf("c%d", page+1)
		}
		bz, _ := json.Marshal(list)

		return http.StatusOK, string(bz)
	}
}

func Test_StorageView_ResetThenRetreat(t *testing.T) {
	console := newFakeConsole(t, pagedStorage(3))
	view := NewStorageView(console.dispatcher(t))
	ctx := context.Background()

	require.NoError(t, view.Reset(ctx, model.StorageFilter{Collection: "inventory"}))
	require.Len(t, console.Calls(), 1)

	sent, err := view.Retreat(ctx)
	require.NoError(t, err)
	require.False(t, sent)
	require.Len(t, console.Calls(), 1)
	require.Empty(t, view.Cursor())
	require.Equal(t, model.SucceededStatus, view.State().Status)
}

func Test_StorageView_AdvanceWithoutCursor(t *testing.T) {
	console := newFakeConsole(t, pagedStorage(1))
	view := NewStorageView(console.dispatcher(t))
	ctx := context.Background()

	require.NoError(t, view.Reset(ctx, model.StorageFilter{}))

	sent, err := view.Advance(ctx)
	require.NoError(t, err)
	require.False(t, sent)
	require.Len(t, console.Calls(), 1)
	require.Zero(t, view.Depth())
}

func Test_StorageView_AdvanceRetreatRoundTrip(t *testing.T) {
	console := newFakeConsole(t, pagedStorage(10))
	view := NewStorageView(console.dispatcher(t))
	ctx := context.Background()

	require.NoError(t, view.Reset(ctx, model.StorageFilter{}))
	for i := 0; i < 5; i++ {
		before := view.Cursor()
		depth := view.Depth()

		sent, err := view.Advance(ctx)
		require.NoError(t, err)
		require.True(t, sent)
		require.Equal(t, fmt.Sprintf("c%d", i+1), view.Cursor())

		sent, err = view.Retreat(ctx)
		require.NoError(t, err)
		require.True(t, sent)
		require.Equal(t, before, view.Cursor())
		require.Equal(t, depth, view.Depth())

		// Move one page further for the next iteration
		_, err = view.Advance(ctx)
		require.NoError(t, err)
	}
}

func Test_StorageView_ResetClearsStack(t *testing.T) {
	console := newFakeConsole(t, pagedStorage(10))
	view := NewStorageView(console.dispatcher(t))
	ctx := context.Background()

	require.NoError(t, view.Reset(ctx, model.StorageFilter{}))
	for i := 0; i < 4; i++ {
		_, err := view.Advance(ctx)
		require.NoError(t, err)
	}
	require.Equal(t, 4, view.Depth())

	filter := model.StorageFilter{Collection: "profile"}
	require.NoError(t, view.Reset(ctx, filter))
	require.Zero(t, view.Depth())
	require.Empty(t, view.Cursor())
	require.Equal(t, filter, view.Filter())
	require.Equal(t, "/storage?collection=profile", view.Location())

	last := console.Calls()[len(console.Calls())-1]
	require.Equal(t, "profile", last.Payload["collection"])
	require.NotContains(t, last.Payload, "cursor")
}

func Test_StorageView_CursorScenario(t *testing.T) {
	responses := []string{
		`{"objects":[{"key":"A"},{"key":"B"}],"total_count":2,"cursor":"c1"}`,
		`{"objects":[],"total_count":2}`,
		`{"objects":[{"key":"A"},{"key":"B"}],"total_count":2,"cursor":"c1"}`,
	}
	console := newFakeConsole(t, func(op string, payload map[string]interface{}) (int, string) {
		resp := responses[0]
		responses = responses[1:]
		return http.StatusOK, resp
	})
	view := NewStorageView(console.dispatcher(t))
	ctx := context.Background()

	require.NoError(t, view.Reset(ctx, model.StorageFilter{}))
	require.Equal(t, "c1", view.Result().Cursor)

	sent, err := view.Advance(ctx)
	require.NoError(t, err)
	require.True(t, sent)
	require.Equal(t, "c1", console.Calls()[1].Payload["cursor"])

	sent, err = view.Advance(ctx)
	require.NoError(t, err)
	require.False(t, sent)

	sent, err = view.Retreat(ctx)
	require.NoError(t, err)
	require.True(t, sent)
	require.Empty(t, view.Cursor())

	calls := console.Calls()
	require.Len(t, calls, 3)
	require.NotContains(t, calls[2].Payload, "cursor")
	require.Len(t, view.Result().Objects, 2)
}

func Test_StorageView_DeleteRefresh(t *testing.T) {
	console := newFakeConsole(t, pagedStorage(5))
	view := NewStorageView(console.dispatcher(t))
	ctx := context.Background()

	filter := model.StorageFilter{Collection: "inventory"}
	require.NoError(t, view.Reset(ctx, filter))
	for i := 0; i < 2; i++ {
		_, err := view.Advance(ctx)
		require.NoError(t, err)
	}
	before := len(console.Calls())

	deleted, err := view.Delete(ctx, model.StorageObjectRequest{Collection: "inventory", Key: "slot2", UserId: model.SystemUserID})
	require.NoError(t, err)
	require.True(t, deleted)

	calls := console.Calls()[before:]
	require.Len(t, calls, 2)
	require.Equal(t, model.DeleteStorageRPC, calls[0].Op)
	require.Equal(t, model.ListStorageRPC, calls[1].Op)
	require.Equal(t, "inventory", calls[1].Payload["collection"])
	require.NotContains(t, calls[1].Payload, "cursor")
	require.Zero(t, view.Depth())
}

func Test_StorageView_DeleteFailureAndConfirm(t *testing.T) {
	console := newFakeConsole(t, func(op string, payload map[string]interface{}) (int, string) {
		if op == model.DeleteStorageRPC {
			return http.StatusNotFound, `{"error":"Storage object not found."}`
		}
		return pagedStorage(1)(op, payload)
	})
	ctx := context.Background()
	ref := model.StorageObjectRequest{Collection: "inventory", Key: "slot0", UserId: model.SystemUserID}

	declined := NewStorageView(console.dispatcher(t), WithConfirm(func(string) bool { return false }))
	deleted, err := declined.Delete(ctx, ref)
	require.NoError(t, err)
	require.False(t, deleted)
	require.Empty(t, console.Calls())

	view := NewStorageView(console.dispatcher(t))
	require.NoError(t, view.Reset(ctx, model.StorageFilter{}))

	deleted, err = view.Delete(ctx, ref)
	require.Error(t, err)
	require.False(t, deleted)
	require.Equal(t, []string{model.ListStorageRPC, model.DeleteStorageRPC}, console.Ops())
	require.Equal(t, model.FailedStatus, view.State().Status)
	require.Equal(t, "Storage object not found.", view.State().Message)
}

func Test_StorageView_InvalidFilter(t *testing.T) {
	console := newFakeConsole(t, pagedStorage(1))
	view := NewStorageView(console.dispatcher(t))

	require.Error(t, view.Reset(context.Background(), model.StorageFilter{Key: "slot1"}))
	require.Empty(t, console.Calls())
	require.Equal(t, model.FailedStatus, view.State().Status)
}

// pagedUsers answers list_users with total users split in pageSize pages.
func pagedUsers(total, pageSize int) func(op string, payload map[string]interface{}) (int, string) {
	return func(op string, payload map[string]interface{}) (int, string) {
		if op != model.ListUsersRPC {
			return http.StatusOK, `{}`
		}

		page := int(payload["page"].(float64))
		list := model.UserList{Users: make([]model.User, 0), TotalCount: total}
		for i := page * pageSize; i < total && i < (page+1)*pageSize; i++ {
			list.Users = append(list.Users, model.User{Id: fmt.Sprintf("u%d", i)})
		}
		bz, _ := json.Marshal(list)

		return http.StatusOK, string(bz)
	}
}

func Test_UserView_Paging(t *testing.T) {
	console := newFakeConsole(t, pagedUsers(5, 2))
	view := NewUserView(console.dispatcher(t), WithPageSize(2))
	ctx := context.Background()

	require.NoError(t, view.Reset(ctx, model.UserFilter{Filter: "player"}))
	sent, err := view.Retreat(ctx)
	require.NoError(t, err)
	require.False(t, sent)

	for _, page := range []model.Page{1, 2} {
		sent, err = view.Advance(ctx)
		require.NoError(t, err)
		require.True(t, sent)
		require.Equal(t, page, view.Page())
	}

	// The last page is not full
	sent, err = view.Advance(ctx)
	require.NoError(t, err)
	require.False(t, sent)
	require.Len(t, view.Result().Users, 1)
	require.Equal(t, "/users?banned=false&filter=player&page=2&tombstones=false", view.Location())

	sent, err = view.Retreat(ctx)
	require.NoError(t, err)
	require.True(t, sent)
	require.EqualValues(t, 1, view.Page())
	require.Len(t, console.Calls(), 4)

	require.NoError(t, view.ShowBanned(ctx))
	require.Zero(t, view.Page())
	require.Equal(t, model.UserFilter{Filter: "player", Banned: true}, view.Filter())

	require.NoError(t, view.ShowTombstones(ctx))
	require.Equal(t, model.UserFilter{Filter: "player", Tombstones: true}, view.Filter())

	require.NoError(t, view.ShowAll(ctx))
	require.Equal(t, model.UserFilter{Filter: "player"}, view.Filter())
}

func Test_UserView_DeleteRefresh(t *testing.T) {
	console := newFakeConsole(t, pagedUsers(10, 2))
	view := NewUserView(console.dispatcher(t), WithPageSize(2))
	ctx := context.Background()
	id := "6b2a3c4e-8f1d-4a5b-9c7e-0d1f2e3a4b5c"

	require.NoError(t, view.Restore(ctx, model.UserFilter{Banned: true}, 3))
	before := len(console.Calls())

	deleted, err := view.Delete(ctx, id)
	require.NoError(t, err)
	require.True(t, deleted)

	calls := console.Calls()[before:]
	require.Len(t, calls, 2)
	require.Equal(t, model.DeleteUserRPC, calls[0].Op)
	require.Equal(t, id, calls[0].Payload["id"])
	require.Equal(t, model.ListUsersRPC, calls[1].Op)
	require.EqualValues(t, 0, calls[1].Payload["page"])
	require.Equal(t, true, calls[1].Payload["banned"])
	require.Zero(t, view.Page())

	_, err = view.Delete(ctx, "not-a-uuid")
	require.Error(t, err)
	require.Len(t, console.Calls(), before+2)
}

func Test_UserView_BanRefreshesPage(t *testing.T) {
	console := newFakeConsole(t, pagedUsers(10, 2))
	view := NewUserView(console.dispatcher(t), WithPageSize(2))
	ctx := context.Background()
	id := "6b2a3c4e-8f1d-4a5b-9c7e-0d1f2e3a4b5c"

	require.NoError(t, view.Restore(ctx, model.UserFilter{}, 2))
	require.NoError(t, view.Ban(ctx, id))
	require.NoError(t, view.Unban(ctx, id))

	require.Equal(t, []string{
		model.ListUsersRPC,
		model.BanUserRPC, model.ListUsersRPC,
		model.UnbanUserRPC, model.ListUsersRPC,
	}, console.Ops())
	require.EqualValues(t, 2, view.Page())
}

func Test_TournamentView_DeleteUnauthenticated(t *testing.T) {
	console := newFakeConsole(t, func(op string, payload map[string]interface{}) (int, string) {
		if op == model.DeleteTournamentRPC {
			return http.StatusUnauthorized, `{"error":"Auth token invalid"}`
		}
		return http.StatusOK, `{"tournaments":[],"total_count":0}`
	})
	d := console.dispatcher(t)
	view := NewTournamentView(d)
	ctx := context.Background()

	redirected := false
	d.Session().OnInvalidate(func() { redirected = true })

	require.NoError(t, view.Reset(ctx))

	deleted, err := view.Delete(ctx, "6b2a3c4e-8f1d-4a5b-9c7e-0d1f2e3a4b5c")
	require.Error(t, err)
	require.False(t, deleted)
	require.True(t, redirected)
	require.False(t, d.Session().Valid())
	require.Equal(t, model.FailedStatus, view.State().Status)
	require.Empty(t, view.State().Message)
	require.Equal(t, []string{model.ListTournamentsRPC, model.DeleteTournamentRPC}, console.Ops())
}

func Test_TournamentView_DeleteRefresh(t *testing.T) {
	console := newFakeConsole(t, func(op string, payload map[string]interface{}) (int, string) {
		if op == model.ListTournamentsRPC {
			return http.StatusOK, `{"tournaments":[],"total_count":0}`
		}
		return http.StatusOK, `{}`
	})
	view := NewTournamentView(console.dispatcher(t))
	ctx := context.Background()

	deleted, err := view.Delete(ctx, "6b2a3c4e-8f1d-4a5b-9c7e-0d1f2e3a4b5c")
	require.NoError(t, err)
	require.True(t, deleted)
	require.Equal(t, []string{model.DeleteTournamentRPC, model.ListTournamentsRPC}, console.Ops())
	require.Equal(t, model.SucceededStatus, view.State().Status)
}
