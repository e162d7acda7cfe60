package client

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

type fakeCall struct {
	Op      string
	Payload map[string]interface{}
	Header  http.Header
	Query   string
}

// fakeConsole is a scripted console RPC endpoint using the wrapped convention.
type fakeConsole struct {
	sync.Mutex
	calls   []fakeCall
	respond func(op string, payload map[string]interface{}) (int, string)
	srv     *httptest.Server
}

func newFakeConsole(t *testing.T, respond func(op string, payload map[string]interface{}) (int, string)) *fakeConsole {
	f := &fakeConsole{respond: respond}
	f.srv = httptest.NewServer(http.HandlerFunc(f.serve))
	t.Cleanup(f.srv.Close)

	return f
}

func (f *fakeConsole) serve(w http.ResponseWriter, r *http.Request) {
	op := strings.TrimPrefix(r.URL.Path, "/v2/console/rpc/")
	body, _ := io.ReadAll(r.Body)

	raw := string(body)
	if _, unwrap := r.URL.Query()["unwrap"]; !unwrap {
		if err := json.Unmarshal(body, &raw); err != nil {
			http.Error(w, "not a JSON string", http.StatusBadRequest)
			return
		}
	}
	payload := make(map[string]interface{})
	_ = json.Unmarshal([]byte(raw), &payload)

	f.Lock()
	f.calls = append(f.calls, fakeCall{Op: op, Payload: payload, Header: r.Header.Clone(), Query: r.URL.RawQuery})
	f.Unlock()

	status, result := f.respond(op, payload)
	if status != http.StatusOK {
		w.WriteHeader(status)
		io.WriteString(w, result)
		return
	}

	wrapped, _ := json.Marshal(map[string]string{"payload": result})
	w.Header().Set("Content-Type", "application/json")
	w.Write(wrapped)
}

// Calls returns the recorded calls.
func (f *fakeConsole) Calls() []fakeCall {
	f.Lock()
	defer f.Unlock()

	return append([]fakeCall(nil), f.calls...)
}

// Ops returns the recorded operation names.
func (f *fakeConsole) Ops() []string {
	ops := make([]string, 0)
	for _, c := range f.Calls() {
		ops = append(ops, c.Op)
	}

	return ops
}

func (f *fakeConsole) dispatcher(t *testing.T, opts ...DispatcherOption) *Dispatcher {
	gateway, err := NewGateway(f.srv.URL, NewSession("token"))
	require.NoError(t, err)

	opts = append([]DispatcherOption{WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))}, opts...)
	d, err := NewDispatcher(gateway, opts...)
	require.NoError(t, err)

	return d
}
