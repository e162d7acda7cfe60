package client

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/itiky/game-console/model"
)

// Dispatcher maps console resource actions onto Gateway calls.
// Every method either succeeds or returns a *Failure.
type Dispatcher struct {
	gateway                  *Gateway
	logger                   *slog.Logger
	invalidateOnRuntimeError bool
}

// ListStorage fetches a single cursor page of storage objects.
func (d *Dispatcher) ListStorage(ctx context.Context, req model.ListStorageRequest) (model.StorageList, error) {
	return dispatch[model.StorageList](ctx, d, model.ListStorageRPC, req)
}

// GetStorage fetches a storage object by its composite key.
func (d *Dispatcher) GetStorage(ctx context.Context, req model.StorageObjectRequest) (model.StorageObject, error) {
	return dispatch[model.StorageObject](ctx, d, model.GetStorageRPC, req)
}

// CreateStorage writes a storage object.
func (d *Dispatcher) CreateStorage(ctx context.Context, obj model.StorageObject) (model.StorageObject, error) {
	return dispatch[model.StorageObject](ctx, d, model.CreateStorageRPC, obj)
}

// DeleteStorage deletes a storage object.
func (d *Dispatcher) DeleteStorage(ctx context.Context, req model.StorageObjectRequest) error {
	_, err := dispatch[model.Empty](ctx, d, model.DeleteStorageRPC, req)
	return err
}

// DeleteAllStorage deletes every storage object.
func (d *Dispatcher) DeleteAllStorage(ctx context.Context) error {
	_, err := dispatch[model.Empty](ctx, d, model.DeleteAllStorageRPC, nil)
	return err
}

// ImportStorage uploads storage objects from JSON or CSV files.
func (d *Dispatcher) ImportStorage(ctx context.Context, files []ImportFile) (model.StorageImportResponse, error) {
	var result model.StorageImportResponse

	raw, err := d.gateway.ImportStorage(ctx, files)
	if err != nil {
		return result, d.fail("import_storage", err)
	}
	if err := json.Unmarshal(raw, &result); err != nil {
		return result, d.fail("import_storage", fmt.Errorf("decoding import_storage response: %w", err))
	}

	return result, nil
}

// ListUsers fetches a single page of users.
func (d *Dispatcher) ListUsers(ctx context.Context, req model.ListUsersRequest) (model.UserList, error) {
	return dispatch[model.UserList](ctx, d, model.ListUsersRPC, req)
}

// GetUser fetches a user by id.
func (d *Dispatcher) GetUser(ctx context.Context, req model.UserRequest) (model.User, error) {
	return dispatch[model.User](ctx, d, model.GetUserRPC, req)
}

// DeleteUser deletes a user, leaving a tombstone.
func (d *Dispatcher) DeleteUser(ctx context.Context, req model.UserRequest) error {
	_, err := dispatch[model.Empty](ctx, d, model.DeleteUserRPC, req)
	return err
}

// DeleteAllUsers deletes every user except the system one.
func (d *Dispatcher) DeleteAllUsers(ctx context.Context) error {
	_, err := dispatch[model.Empty](ctx, d, model.DeleteAllUsersRPC, nil)
	return err
}

// BanUser disables a user.
func (d *Dispatcher) BanUser(ctx context.Context, req model.UserRequest) error {
	_, err := dispatch[model.Empty](ctx, d, model.BanUserRPC, req)
	return err
}

// UnbanUser re-enables a user.
func (d *Dispatcher) UnbanUser(ctx context.Context, req model.UserRequest) error {
	_, err := dispatch[model.Empty](ctx, d, model.UnbanUserRPC, req)
	return err
}

// ListTournaments fetches all tournaments.
func (d *Dispatcher) ListTournaments(ctx context.Context) (model.TournamentList, error) {
	return dispatch[model.TournamentList](ctx, d, model.ListTournamentsRPC, model.ListTournamentsRequest{})
}

// GetTournament fetches a tournament by id.
func (d *Dispatcher) GetTournament(ctx context.Context, req model.TournamentRequest) (model.Tournament, error) {
	return dispatch[model.Tournament](ctx, d, model.GetTournamentRPC, req)
}

// CreateTournament creates a tournament.
func (d *Dispatcher) CreateTournament(ctx context.Context, req model.CreateTournamentRequest) (model.Tournament, error) {
	return dispatch[model.Tournament](ctx, d, model.CreateTournamentRPC, req)
}

// DeleteTournament deletes a tournament.
func (d *Dispatcher) DeleteTournament(ctx context.Context, req model.TournamentRequest) error {
	_, err := dispatch[model.Empty](ctx, d, model.DeleteTournamentRPC, req)
	return err
}

// Session returns the session the Dispatcher invalidates.
func (d *Dispatcher) Session() *Session {
	return d.gateway.Session()
}

// dispatch performs a single call and decodes the result into T.
func dispatch[T any](ctx context.Context, d *Dispatcher, op string, payload interface{}) (T, error) {
	var result T

	raw, err := d.gateway.Call(ctx, op, payload)
	if err != nil {
		return result, d.fail(op, err)
	}
	if msg, ok := apiError(raw); ok {
		return result, d.fail(op, &Failure{Kind: FailureAPI, Message: msg})
	}
	if err := json.Unmarshal(raw, &result); err != nil {
		return result, d.fail(op, fmt.Errorf("decoding %s response: %w", op, err))
	}

	return result, nil
}

// fail classifies err and applies the session side effects.
func (d *Dispatcher) fail(op string, err error) *Failure {
	failure := Classify(err)

	switch failure.Kind {
	case FailureUnauthenticated:
		d.logger.Warn("Session expired", "op", op)
		d.gateway.Session().Invalidate()
		failure.SessionEnded = true
	case FailureRuntime:
		d.logger.Error("RPC call failed", "op", op, "error", err)
		if d.invalidateOnRuntimeError {
			d.gateway.Session().Invalidate()
			failure.SessionEnded = true
		}
	default:
		d.logger.Debug("RPC call rejected", "op", op, "kind", failure.Kind, "message", failure.Message)
	}

	return failure
}

// DispatcherOption configures a Dispatcher.
type DispatcherOption func(d *Dispatcher)

// WithRuntimeErrorInvalidation toggles clearing the session on runtime (non-HTTP) failures.
func WithRuntimeErrorInvalidation(enabled bool) DispatcherOption {
	return func(d *Dispatcher) {
		d.invalidateOnRuntimeError = enabled
	}
}

// WithLogger sets the Dispatcher logger.
func WithLogger(logger *slog.Logger) DispatcherOption {
	return func(d *Dispatcher) {
		d.logger = logger
	}
}

// NewDispatcher creates a new Dispatcher object.
func NewDispatcher(gateway *Gateway, opts ...DispatcherOption) (*Dispatcher, error) {
	if gateway == nil {
		return nil, fmt.Errorf("%s: nil", "gateway")
	}

	d := &Dispatcher{
		gateway:                  gateway,
		logger:                   slog.Default(),
		invalidateOnRuntimeError: true,
	}
	for _, opt := range opts {
		opt(d)
	}
	if d.logger == nil {
		d.logger = slog.Default()
	}

	return d, nil
}
