package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func Test_Gateway_Call(t *testing.T) {
	console := newFakeConsole(t, func(op string, payload map[string]interface{}) (int, string) {
		return http.StatusOK, `{"echo":"` + op + `"}`
	})

	monitor := NewMonitor(nil, time.Second)
	gateway, err := NewGateway(console.srv.URL+"/", NewSession("token"), WithMonitor(monitor))
	require.NoError(t, err)

	result, err := gateway.Call(context.Background(), "list users", nil)
	require.NoError(t, err)
	require.JSONEq(t, `{"echo":"list users"}`, string(result))

	_, err = gateway.Call(context.Background(), "get_user", map[string]string{"id": "u1"})
	require.NoError(t, err)

	calls := console.Calls()
	require.Len(t, calls, 2)
	require.Empty(t, calls[0].Payload)
	require.Equal(t, "Bearer token", calls[0].Header.Get("Authorization"))
	require.Equal(t, "u1", calls[1].Payload["id"])
	require.GreaterOrEqual(t, monitor.AvgDuration(""), 0.0)
	require.GreaterOrEqual(t, monitor.AvgDuration("get_user"), 0.0)
}

func Test_Gateway_EmptyOperation(t *testing.T) {
	console := newFakeConsole(t, func(string, map[string]interface{}) (int, string) {
		return http.StatusOK, "{}"
	})

	gateway, err := NewGateway(console.srv.URL, NewSession(""))
	require.NoError(t, err)

	_, err = gateway.Call(context.Background(), "", nil)
	require.ErrorIs(t, err, ErrInvalidArgument)
	require.Empty(t, console.Calls())
}

func Test_Gateway_Unwrap(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, unwrap := r.URL.Query()["unwrap"]
		require.True(t, unwrap)
		require.Empty(t, r.Header.Get("Authorization"))

		var payload map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		require.Equal(t, "inventory", payload["collection"])

		w.Write([]byte(`{"objects":[],"total_count":0}`))
	}))
	defer srv.Close()

	gateway, err := NewGateway(srv.URL, NewSession(""), WithUnwrap(true))
	require.NoError(t, err)

	result, err := gateway.Call(context.Background(), "list_storage", map[string]string{"collection": "inventory"})
	require.NoError(t, err)
	require.JSONEq(t, `{"objects":[],"total_count":0}`, string(result))
}

func Test_Gateway_StatusError(t *testing.T) {
	console := newFakeConsole(t, func(string, map[string]interface{}) (int, string) {
		return http.StatusNotFound, `{"error":"No such tournament.","code":5}`
	})

	gateway, err := NewGateway(console.srv.URL, NewSession("token"))
	require.NoError(t, err)

	_, err = gateway.Call(context.Background(), "get_tournament", nil)

	var statusErr *StatusError
	require.True(t, errors.As(err, &statusErr))
	require.Equal(t, http.StatusNotFound, statusErr.Status)

	body, err := statusErr.JSON()
	require.NoError(t, err)
	require.Equal(t, "No such tournament.", body["error"])
}

func Test_Gateway_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer srv.Close()

	gateway, err := NewGateway(srv.URL, NewSession("token"), WithTimeout(20*time.Millisecond))
	require.NoError(t, err)

	_, err = gateway.Call(context.Background(), "list_tournaments", nil)
	require.Error(t, err)
	require.Equal(t, FailureRuntime, Classify(err).Kind)
}

func Test_NewGateway(t *testing.T) {
	_, err := NewGateway("not a url", NewSession(""))
	require.Error(t, err)

	_, err = NewGateway("http://localhost:7351", nil)
	require.Error(t, err)

	_, err = NewGateway("http://localhost:7351", NewSession(""), WithTimeout(0))
	require.Error(t, err)
}
