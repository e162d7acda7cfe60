package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/itiky/game-console/model"
	"github.com/itiky/game-console/storage"
)

// decodePayload unmarshals the RPC payload, an empty payload is an empty object.
func decodePayload(payload string, req interface{}) error {
	if payload == "" {
		payload = "{}"
	}
	if err := json.Unmarshal([]byte(payload), req); err != nil {
		return status.Error(codes.InvalidArgument, "Cannot unmarshal payload.")
	}

	return nil
}

// encodeResult marshals the RPC result.
func encodeResult(v interface{}) (string, error) {
	bz, err := json.Marshal(v)
	if err != nil {
		return "", status.Error(codes.Internal, "Error marshaling response.")
	}

	return string(bz), nil
}

// storeError converts a storage error to a status error, notFound is the NotFound message.
func storeError(err error, notFound string) error {
	switch {
	case errors.Is(err, storage.ErrNotFound):
		return status.Error(codes.NotFound, notFound)
	case errors.Is(err, storage.ErrInvalidCursor):
		return status.Error(codes.InvalidArgument, "Invalid cursor.")
	case errors.Is(err, storage.ErrSystemUser):
		return status.Error(codes.InvalidArgument, "Cannot modify the system user.")
	}

	return status.Error(codes.Internal, err.Error())
}

// invalidArgument wraps a validation error.
func invalidArgument(err error) error {
	return status.Error(codes.InvalidArgument, err.Error())
}

// httpStatusFromCode maps status codes to HTTP status codes.
func httpStatusFromCode(code codes.Code) int {
	switch code {
	case codes.OK:
		return http.StatusOK
	case codes.Canceled:
		return 499
	case codes.InvalidArgument, codes.FailedPrecondition, codes.OutOfRange:
		return http.StatusBadRequest
	case codes.DeadlineExceeded:
		return http.StatusGatewayTimeout
	case codes.NotFound:
		return http.StatusNotFound
	case codes.AlreadyExists, codes.Aborted:
		return http.StatusConflict
	case codes.PermissionDenied:
		return http.StatusForbidden
	case codes.Unauthenticated:
		return http.StatusUnauthorized
	case codes.ResourceExhausted:
		return http.StatusTooManyRequests
	case codes.Unimplemented:
		return http.StatusNotImplemented
	case codes.Unavailable:
		return http.StatusServiceUnavailable
	}

	return http.StatusInternalServerError
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, httpStatus int, v interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(httpStatus)
	json.NewEncoder(w).Encode(v)
}

// writeError writes a status error as an ErrorResponse.
func writeError(w http.ResponseWriter, err error) {
	st := status.Convert(err)
	writeJSON(w, httpStatusFromCode(st.Code()), model.ErrorResponse{
		Error:   st.Message(),
		Message: st.Message(),
		Code:    int(st.Code()),
	})
}

// statusBodyTooLarge converts a body read error.
func statusBodyTooLarge(err error) error {
	var maxErr *http.MaxBytesError
	if errors.As(err, &maxErr) {
		return status.Error(codes.ResourceExhausted, "Request body too large.")
	}

	return status.Error(codes.InvalidArgument, "Cannot read request body.")
}
