package client

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/itiky/game-console/model"
)

func Test_Dispatcher_TruthyError(t *testing.T) {
	console := newFakeConsole(t, func(string, map[string]interface{}) (int, string) {
		return http.StatusOK, `{"error":"tournament is locked"}`
	})
	d := console.dispatcher(t)

	_, err := d.GetTournament(context.Background(), model.TournamentRequest{Id: "t1"})

	failure := Classify(err)
	require.Equal(t, FailureAPI, failure.Kind)
	require.Equal(t, "tournament is locked", failure.Inline())
	require.False(t, failure.SessionEnded)
	require.True(t, d.Session().Valid())
}

func Test_Dispatcher_Unauthenticated(t *testing.T) {
	console := newFakeConsole(t, func(string, map[string]interface{}) (int, string) {
		return http.StatusUnauthorized, `{"error":"Auth token invalid"}`
	})
	d := console.dispatcher(t)

	redirects := 0
	d.Session().OnInvalidate(func() { redirects++ })

	err := d.DeleteAllUsers(context.Background())

	failure := Classify(err)
	require.Equal(t, FailureUnauthenticated, failure.Kind)
	require.True(t, failure.Fatal)
	require.True(t, failure.SessionEnded)
	require.Empty(t, failure.Inline())
	require.False(t, d.Session().Valid())
	require.Equal(t, 1, redirects)
}

func Test_Dispatcher_RuntimeError(t *testing.T) {
	for _, invalidate := range []bool{true, false} {
		console := newFakeConsole(t, func(string, map[string]interface{}) (int, string) {
			// Not an object: the decoding fails on the client side
			return http.StatusOK, `[1]`
		})
		d := console.dispatcher(t, WithRuntimeErrorInvalidation(invalidate))

		_, err := d.ListTournaments(context.Background())

		failure := Classify(err)
		require.Equal(t, FailureRuntime, failure.Kind)
		require.Contains(t, failure.Inline(), "decoding list_tournaments response")
		require.Equal(t, !invalidate, d.Session().Valid())
		require.Equal(t, invalidate, failure.SessionEnded)
		require.False(t, failure.Fatal)
	}
}

func Test_Dispatcher_OperationNames(t *testing.T) {
	console := newFakeConsole(t, func(op string, payload map[string]interface{}) (int, string) {
		return http.StatusOK, `{}`
	})
	d := console.dispatcher(t)
	ctx := context.Background()

	_, err := d.ListStorage(ctx, model.ListStorageRequest{})
	require.NoError(t, err)
	_, err = d.GetStorage(ctx, model.StorageObjectRequest{})
	require.NoError(t, err)
	_, err = d.CreateStorage(ctx, model.StorageObject{})
	require.NoError(t, err)
	require.NoError(t, d.DeleteStorage(ctx, model.StorageObjectRequest{}))
	require.NoError(t, d.DeleteAllStorage(ctx))
	_, err = d.ListUsers(ctx, model.ListUsersRequest{})
	require.NoError(t, err)
	_, err = d.GetUser(ctx, model.UserRequest{})
	require.NoError(t, err)
	require.NoError(t, d.DeleteUser(ctx, model.UserRequest{}))
	require.NoError(t, d.DeleteAllUsers(ctx))
	require.NoError(t, d.BanUser(ctx, model.UserRequest{}))
	require.NoError(t, d.UnbanUser(ctx, model.UserRequest{}))
	_, err = d.ListTournaments(ctx)
	require.NoError(t, err)
	_, err = d.GetTournament(ctx, model.TournamentRequest{})
	require.NoError(t, err)
	_, err = d.CreateTournament(ctx, model.CreateTournamentRequest{})
	require.NoError(t, err)
	require.NoError(t, d.DeleteTournament(ctx, model.TournamentRequest{}))

	require.Equal(t, []string{
		"list_storage", "get_storage", "create_storage", "delete_storage", "delete_all_storage",
		"list_users", "get_user", "delete_user", "delete_all_users", "ban_user", "unban_user",
		"list_tournaments", "get_tournament", "create_tournament", "delete_tournament",
	}, console.Ops())
}
