package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
	"syscall"
	"time"

	"github.com/itiky/game-console/model"
)

// Gateway performs console RPC calls: operation name + JSON payload -> JSON result.
type Gateway struct {
	// Config
	baseURL string
	unwrap  bool
	// State
	session    *Session
	httpClient *http.Client
	monitor    *Monitor
}

// Call invokes the op RPC function, a nil payload is sent as an empty object.
func (g *Gateway) Call(ctx context.Context, op string, payload interface{}) (json.RawMessage, error) {
	if op == "" {
		return nil, fmt.Errorf("%w: %s: empty", ErrInvalidArgument, "operationName")
	}

	start := time.Now()
	result, err := g.call(ctx, op, payload)
	if g.monitor != nil {
		g.monitor.CallServed(op, time.Since(start), err != nil)
	}

	return result, err
}

func (g *Gateway) call(ctx context.Context, op string, payload interface{}) (json.RawMessage, error) {
	raw := []byte("{}")
	if payload != nil {
		bz, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("marshal %s payload: %w", op, err)
		}
		raw = bz
	}

	body := raw
	if !g.unwrap {
		// The wrapped convention sends the payload as a JSON string
		bz, err := json.Marshal(string(raw))
		if err != nil {
			return nil, fmt.Errorf("wrapping %s payload: %w", op, err)
		}
		body = bz
	}

	reqURL := g.baseURL + strings.Replace(model.RPCPathTemplate, "{id}", url.PathEscape(op), 1)
	if g.unwrap {
		reqURL += "?unwrap"
	}

	respBody, err := g.post(ctx, reqURL, "application/json", bytes.NewReader(body), true)
	if err != nil {
		return nil, err
	}

	if g.unwrap {
		if len(bytes.TrimSpace(respBody)) == 0 {
			return json.RawMessage("{}"), nil
		}
		return json.RawMessage(respBody), nil
	}

	var wrapped struct {
		Payload string `json:"payload"`
	}
	if err := json.Unmarshal(respBody, &wrapped); err != nil {
		return nil, fmt.Errorf("unwrapping %s response: %w", op, err)
	}
	if wrapped.Payload == "" {
		return json.RawMessage("{}"), nil
	}

	return json.RawMessage(wrapped.Payload), nil
}

// Authenticate exchanges the admin credentials for a session token.
// The console might be starting up, refused connections are retried.
func (g *Gateway) Authenticate(ctx context.Context, username, password string) error {
	const (
		numOfRetries     = 20
		retryFallbackDur = 500 * time.Millisecond
	)

	body, err := json.Marshal(model.AuthenticateRequest{Username: username, Password: password})
	if err != nil {
		return fmt.Errorf("marshal credentials: %w", err)
	}

	for retry := 0; retry < numOfRetries; retry++ {
		respBody, err := g.post(ctx, g.baseURL+model.AuthenticatePath, "application/json", bytes.NewReader(body), false)
		if err != nil {
			if errors.Is(err, syscall.ECONNREFUSED) {
				select {
				case <-ctx.Done():
					return ctx.Err()
				case <-time.After(retryFallbackDur):
				}
				continue
			}
			return err
		}

		var resp model.AuthenticateResponse
		if err := json.Unmarshal(respBody, &resp); err != nil {
			return fmt.Errorf("decoding authenticate response: %w", err)
		}
		if resp.Token == "" {
			return fmt.Errorf("%s: empty", "token")
		}
		g.session.SetToken(resp.Token)

		return nil
	}

	return fmt.Errorf("authentication failed after %d retries with %v fallback", numOfRetries, retryFallbackDur)
}

// Session returns the Gateway session.
func (g *Gateway) Session() *Session {
	return g.session
}

// ImportFile is a storage import file, the name extension (.json or .csv) selects the format.
type ImportFile struct {
	Name string
	Data io.Reader
}

// ImportStorage uploads storage import files.
func (g *Gateway) ImportStorage(ctx context.Context, files []ImportFile) (json.RawMessage, error) {
	if len(files) == 0 {
		return nil, fmt.Errorf("%w: %s: empty", ErrInvalidArgument, "files")
	}

	body := new(bytes.Buffer)
	mw := multipart.NewWriter(body)
	for i, file := range files {
		fw, err := mw.CreateFormFile(fmt.Sprintf("import_%d", i), file.Name)
		if err != nil {
			return nil, fmt.Errorf("file[%d]: %w", i, err)
		}
		if _, err := io.Copy(fw, file.Data); err != nil {
			return nil, fmt.Errorf("file[%d] (%s): %w", i, file.Name, err)
		}
	}
	if err := mw.Close(); err != nil {
		return nil, fmt.Errorf("closing multipart body: %w", err)
	}

	start := time.Now()
	respBody, err := g.post(ctx, g.baseURL+model.StorageImportPath, mw.FormDataContentType(), body, true)
	if g.monitor != nil {
		g.monitor.CallServed("import_storage", time.Since(start), err != nil)
	}
	if err != nil {
		return nil, err
	}

	return json.RawMessage(respBody), nil
}

// post sends a request body, non-2xx responses are returned as *StatusError.
func (g *Gateway) post(ctx context.Context, reqURL, contentType string, body io.Reader, withAuth bool) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, reqURL, body)
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Accept", "application/json")
	if withAuth {
		if token := g.session.Token(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &StatusError{Status: resp.StatusCode, Body: respBody}
	}

	return respBody, nil
}

// GatewayOption configures a Gateway.
type GatewayOption func(g *Gateway)

// WithTimeout overrides the per call timeout budget.
func WithTimeout(timeout time.Duration) GatewayOption {
	return func(g *Gateway) {
		g.httpClient.Timeout = timeout
	}
}

// WithUnwrap switches to the raw JSON convention.
func WithUnwrap(unwrap bool) GatewayOption {
	return func(g *Gateway) {
		g.unwrap = unwrap
	}
}

// WithTransport overrides the HTTP transport.
func WithTransport(transport http.RoundTripper) GatewayOption {
	return func(g *Gateway) {
		g.httpClient.Transport = transport
	}
}

// WithMonitor records the call durations.
func WithMonitor(monitor *Monitor) GatewayOption {
	return func(g *Gateway) {
		g.monitor = monitor
	}
}

// NewGateway creates a new Gateway object.
func NewGateway(baseURL string, session *Session, opts ...GatewayOption) (*Gateway, error) {
	const defaultTimeout = 5 * time.Second

	if _, err := url.ParseRequestURI(baseURL); err != nil {
		return nil, fmt.Errorf("%s: invalid: %w", "baseURL", err)
	}
	if session == nil {
		return nil, fmt.Errorf("%s: nil", "session")
	}

	g := &Gateway{
		baseURL:    strings.TrimRight(baseURL, "/"),
		session:    session,
		httpClient: &http.Client{Timeout: defaultTimeout},
	}
	for _, opt := range opts {
		opt(g)
	}
	if g.httpClient.Timeout <= 0 {
		return nil, fmt.Errorf("%s: must be GT 0", "timeout")
	}

	return g, nil
}
