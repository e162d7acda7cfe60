package server

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/itiky/game-console/model"
	"github.com/itiky/game-console/storage"
)

// RpcFunction handles a single console RPC: payload and result are JSON strings.
type RpcFunction func(ctx context.Context, payload string) (string, error)

// ConsoleService implements the console RPC server service.
type ConsoleService struct {
	// Config
	storagePageSize int
	usersPageSize   int
	now             func() time.Time
	// State
	store    *storage.Store
	registry map[string]RpcFunction
	monitor  *Monitor
	logger   *slog.Logger
	//
	stopCh chan interface{}
}

// Call invokes the id RPC function.
// Unless unwrap is set, body must be a JSON string and the result is wrapped as {"payload": result}.
func (s *ConsoleService) Call(ctx context.Context, id string, body []byte, unwrap bool) (string, error) {
	if id == "" {
		return "", status.Error(codes.InvalidArgument, "RPC ID must be set")
	}

	id = strings.ToLower(id)
	fn := s.registry[id]
	if fn == nil {
		return "", status.Error(codes.NotFound, "RPC function not found")
	}

	payload := string(body)
	if len(body) > 0 && !unwrap {
		if err := json.Unmarshal(body, &payload); err != nil {
			return "", status.Error(codes.InvalidArgument, "Cannot unmarshal JSON string!")
		}
	}

	start := time.Now()
	result, err := fn(ctx, payload)
	s.monitor.RPCServed(time.Since(start), err != nil)
	if err != nil {
		s.logger.Debug("RPC failed", "id", id, "error", err)
		return "", err
	}

	if unwrap {
		return result, nil
	}

	wrapped, err := json.Marshal(map[string]string{"payload": result})
	if err != nil {
		return "", status.Error(codes.Internal, "Error marshaling wrapped response to client")
	}

	return string(wrapped), nil
}

// Register adds or replaces an RPC function, the id is case insensitive.
func (s *ConsoleService) Register(id string, fn RpcFunction) {
	s.registry[strings.ToLower(id)] = fn
}

// Monitor returns the service stats keeper.
func (s *ConsoleService) Monitor() *Monitor {
	return s.monitor
}

// Start starts the service monitor.
func (s *ConsoleService) Start() {
	if s.stopCh != nil {
		return
	}
	s.stopCh = make(chan interface{})

	s.logger.Info("ConsoleService: start")
	s.monitor.Start()
}

// Stop stops the service monitor.
func (s *ConsoleService) Stop() {
	if s.stopCh == nil {
		return
	}

	close(s.stopCh)
	s.stopCh = nil
	s.monitor.Stop()
	s.logger.Info("ConsoleService: stop")
}

// registerAll wires the built-in console RPC functions.
func (s *ConsoleService) registerAll() {
	s.Register(model.ListStorageRPC, s.listStorage)
	s.Register(model.GetStorageRPC, s.getStorage)
	s.Register(model.CreateStorageRPC, s.createStorage)
	s.Register(model.DeleteStorageRPC, s.deleteStorage)
	s.Register(model.DeleteAllStorageRPC, s.deleteAllStorage)

	s.Register(model.ListUsersRPC, s.listUsers)
	s.Register(model.GetUserRPC, s.getUser)
	s.Register(model.DeleteUserRPC, s.deleteUser)
	s.Register(model.DeleteAllUsersRPC, s.deleteAllUsers)
	s.Register(model.BanUserRPC, s.banUser)
	s.Register(model.UnbanUserRPC, s.unbanUser)

	s.Register(model.ListTournamentsRPC, s.listTournaments)
	s.Register(model.GetTournamentRPC, s.getTournament)
	s.Register(model.CreateTournamentRPC, s.createTournament)
	s.Register(model.DeleteTournamentRPC, s.deleteTournament)
}

// ServiceOption configures a ConsoleService.
type ServiceOption func(s *ConsoleService)

// WithPageSizes overrides the storage and users list page sizes.
func WithPageSizes(storagePageSize, usersPageSize int) ServiceOption {
	return func(s *ConsoleService) {
		s.storagePageSize = storagePageSize
		s.usersPageSize = usersPageSize
	}
}

// WithClock overrides the service time source.
func WithClock(now func() time.Time) ServiceOption {
	return func(s *ConsoleService) {
		s.now = now
	}
}

// WithMonitorPeriod overrides the monitor report period.
func WithMonitorPeriod(period time.Duration) ServiceOption {
	return func(s *ConsoleService) {
		s.monitor = NewMonitor(s.logger, period)
	}
}

// NewConsoleService creates a new ConsoleService object.
func NewConsoleService(store *storage.Store, logger *slog.Logger, opts ...ServiceOption) (*ConsoleService, error) {
	if store == nil {
		return nil, fmt.Errorf("%s: nil", "store")
	}
	if logger == nil {
		logger = slog.Default()
	}

	s := &ConsoleService{
		storagePageSize: 100,
		usersPageSize:   50,
		now:             func() time.Time { return time.Now().UTC() },
		store:           store,
		registry:        make(map[string]RpcFunction),
		logger:          logger,
	}
	s.monitor = NewMonitor(logger, 0)
	for _, opt := range opts {
		opt(s)
	}

	if s.storagePageSize <= 0 {
		return nil, fmt.Errorf("%s: must be GT 0", "storagePageSize")
	}
	if s.usersPageSize <= 0 {
		return nil, fmt.Errorf("%s: must be GT 0", "usersPageSize")
	}

	s.registerAll()

	return s, nil
}
