package client

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// UnknownErrorMessage is the fallback failure message.
const UnknownErrorMessage = "An unknown error occurred."

// ErrInvalidArgument is returned for calls rejected before any network traffic.
var ErrInvalidArgument = errors.New("invalid argument")

// StatusError is a non-2xx console server response.
type StatusError struct {
	Status int
	Body   []byte
}

// Error implements the error interface.
func (e *StatusError) Error() string {
	return fmt.Sprintf("console responded with HTTP %d", e.Status)
}

// JSON decodes the response body.
func (e *StatusError) JSON() (map[string]interface{}, error) {
	body := make(map[string]interface{})
	if err := json.Unmarshal(e.Body, &body); err != nil {
		return nil, fmt.Errorf("decoding error body: %w", err)
	}

	return body, nil
}

// FailureKind tells how a request failed.
type FailureKind int

const (
	FailureUnauthenticated FailureKind = iota
	FailureAPI
	FailureRuntime
	FailureUnknown
)

// String implements the stringer interface.
func (k FailureKind) String() string {
	switch k {
	case FailureUnauthenticated:
		return "unauthenticated"
	case FailureAPI:
		return "api"
	case FailureRuntime:
		return "runtime"
	case FailureUnknown:
		return "unknown"
	}

	return fmt.Sprintf("FailureKind(%d)", int(k))
}

// Failure is a classified request failure.
// Fatal failures are not shown inline. SessionEnded is set once the failure invalidated the session.
type Failure struct {
	Kind         FailureKind
	Message      string
	Fatal        bool
	SessionEnded bool
	Err          error
}

// Error implements the error interface.
func (f *Failure) Error() string {
	if f.Message == "" {
		return f.Kind.String() + " failure"
	}

	return f.Kind.String() + " failure: " + f.Message
}

// Unwrap returns the underlying error.
func (f *Failure) Unwrap() error {
	return f.Err
}

// Inline returns the message to show next to the view, empty for fatal failures.
func (f *Failure) Inline() string {
	if f.Fatal {
		return ""
	}

	return f.Message
}

// Classify converts a Gateway error to a Failure.
// Order: 401 status, JSON error body, non-status Go error, anything else.
func Classify(err error) *Failure {
	if err == nil {
		return nil
	}

	var failure *Failure
	if errors.As(err, &failure) {
		return failure
	}

	var statusErr *StatusError
	if !errors.As(err, &statusErr) {
		return &Failure{Kind: FailureRuntime, Message: err.Error(), Err: err}
	}

	if statusErr.Status == http.StatusUnauthorized {
		return &Failure{Kind: FailureUnauthenticated, Fatal: true, Err: err}
	}

	body, jsonErr := statusErr.JSON()
	if jsonErr != nil {
		return &Failure{Kind: FailureUnknown, Message: UnknownErrorMessage, Err: err}
	}
	if msg, ok := body["error"].(string); ok && msg != "" {
		return &Failure{Kind: FailureAPI, Message: msg, Err: err}
	}

	serialized, _ := json.Marshal(body)

	return &Failure{Kind: FailureAPI, Message: string(serialized), Err: err}
}

// apiError reports a truthy "error" field of a decoded response.
func apiError(raw json.RawMessage) (string, bool) {
	var body map[string]interface{}
	if err := json.Unmarshal(raw, &body); err != nil {
		return "", false
	}

	switch v := body["error"].(type) {
	case nil:
		return "", false
	case bool:
		if !v {
			return "", false
		}
	case string:
		return v, v != ""
	case float64:
		if v == 0 {
			return "", false
		}
	}

	serialized, _ := json.Marshal(body["error"])

	return string(serialized), true
}
