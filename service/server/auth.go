package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/itiky/game-console/model"
)

type claims struct {
	Username string `json:"usn"`
	jwt.RegisteredClaims
}

// Authenticator issues and verifies console session tokens for the single admin account.
type Authenticator struct {
	signingKey   []byte
	username     string
	passwordHash []byte
	tokenTTL     time.Duration
	now          func() time.Time
}

// Authenticate checks the admin credentials and issues a session token.
func (a *Authenticator) Authenticate(username, password string) (string, error) {
	if username != a.username {
		return "", status.Error(codes.Unauthenticated, "Invalid credentials.")
	}
	if bcrypt.CompareHashAndPassword(a.passwordHash, []byte(password)) != nil {
		return "", status.Error(codes.Unauthenticated, "Invalid credentials.")
	}

	return a.IssueToken(username)
}

// IssueToken signs a HS256 session token for username.
func (a *Authenticator) IssueToken(username string) (string, error) {
	now := a.now()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		Username: username,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(a.tokenTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    "game-console",
		},
	})

	signed, err := tok.SignedString(a.signingKey)
	if err != nil {
		return "", fmt.Errorf("signing token: %w", err)
	}

	return signed, nil
}

// Verify parses a session token and returns its username.
func (a *Authenticator) Verify(token string) (string, error) {
	tok, err := jwt.ParseWithClaims(token, &claims{}, func(token *jwt.Token) (any, error) {
		return a.signingKey, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(a.now))
	if err != nil || !tok.Valid {
		return "", status.Error(codes.Unauthenticated, "Auth token invalid")
	}

	cl, ok := tok.Claims.(*claims)
	if !ok || cl.Username != a.username {
		return "", status.Error(codes.Unauthenticated, "Auth token invalid")
	}

	return cl.Username, nil
}

// Middleware rejects requests without a valid bearer token.
func (a *Authenticator) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		token, found := strings.CutPrefix(header, "Bearer ")
		if !found || token == "" {
			writeError(w, status.Error(codes.Unauthenticated, "Auth token required"))
			return
		}

		if _, err := a.Verify(token); err != nil {
			writeError(w, err)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// handleAuthenticate serves the authenticate endpoint.
func (a *Authenticator) handleAuthenticate(w http.ResponseWriter, r *http.Request) {
	var req model.AuthenticateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, status.Error(codes.InvalidArgument, "Cannot unmarshal credentials."))
		return
	}

	token, err := a.Authenticate(req.Username, req.Password)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, model.AuthenticateResponse{Token: token})
}

// NewAuthenticator creates a new Authenticator object.
func NewAuthenticator(signingKey, username, password string, tokenTTL time.Duration) (*Authenticator, error) {
	if signingKey == "" {
		return nil, fmt.Errorf("%s: empty", "signingKey")
	}
	if username == "" {
		return nil, fmt.Errorf("%s: empty", "username")
	}
	if password == "" {
		return nil, fmt.Errorf("%s: empty", "password")
	}
	if tokenTTL <= 0 {
		return nil, fmt.Errorf("%s: must be GT 0", "tokenTTL")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("bcrypt.GenerateFromPassword: %w", err)
	}

	return &Authenticator{
		signingKey:   []byte(signingKey),
		username:     username,
		passwordHash: hash,
		tokenTTL:     tokenTTL,
		now:          time.Now,
	}, nil
}
