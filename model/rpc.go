package model

// Console RPC operation names, {verb}_{resource}.
const (
	ListStorageRPC      = "list_storage"
	GetStorageRPC       = "get_storage"
	CreateStorageRPC    = "create_storage"
	DeleteStorageRPC    = "delete_storage"
	DeleteAllStorageRPC = "delete_all_storage"

	ListUsersRPC      = "list_users"
	GetUserRPC        = "get_user"
	DeleteUserRPC     = "delete_user"
	DeleteAllUsersRPC = "delete_all_users"
	BanUserRPC        = "ban_user"
	UnbanUserRPC      = "unban_user"

	ListTournamentsRPC  = "list_tournaments"
	GetTournamentRPC    = "get_tournament"
	CreateTournamentRPC = "create_tournament"
	DeleteTournamentRPC = "delete_tournament"
)

// RPC path, authentication and bulk import endpoints.
const (
	RPCPathTemplate   = "/v2/console/rpc/{id}"
	AuthenticatePath  = "/v2/console/authenticate"
	StorageImportPath = "/v2/console/storage/import"
)

// Authenticate RPC request.
type (
	AuthenticateRequest struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}

	AuthenticateResponse struct {
		Token string `json:"token"`
	}
)

// ErrorResponse is the error body returned by the console server for non-2xx responses.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Code    int    `json:"code"`
}

// Empty is the result of mutations without a payload.
type Empty struct{}

// StorageImportResponse is the storage bulk import result.
// Import files are multipart form files named import_N.json or import_N.csv.
type StorageImportResponse struct {
	Imported int `json:"imported"`
}
