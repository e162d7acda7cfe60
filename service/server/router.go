package server

import (
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/itiky/game-console/model"
)

const maxBodyBytes = 4 << 20

// NewRouter creates the console HTTP router.
func NewRouter(svc *ConsoleService, auth *Authenticator) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Timeout(30 * time.Second))

	r.Post(model.AuthenticatePath, auth.handleAuthenticate)

	r.Group(func(r chi.Router) {
		r.Use(auth.Middleware)
		r.Post("/v2/console/rpc/", rpcHandler(svc))
		r.Post(model.RPCPathTemplate, rpcHandler(svc))
		r.Post(model.StorageImportPath, importHandler(svc))
	})

	return r
}

// rpcHandler serves the RPC endpoint.
func rpcHandler(svc *ConsoleService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
		if err != nil {
			writeError(w, statusBodyTooLarge(err))
			return
		}

		_, unwrap := r.URL.Query()["unwrap"]
		result, err := svc.Call(r.Context(), chi.URLParam(r, "id"), body, unwrap)
		if err != nil {
			writeError(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		io.WriteString(w, result)
	}
}
