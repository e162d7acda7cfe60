package client

import "sync"

// Session keeps the console bearer token.
// Invalidate drops the token and notifies the subscribers (e.g. to navigate to the login screen).
type Session struct {
	sync.RWMutex
	token        string
	onInvalidate []func()
}

// Token returns the current bearer token.
func (s *Session) Token() string {
	s.RLock()
	defer s.RUnlock()

	return s.token
}

// SetToken sets a new bearer token.
func (s *Session) SetToken(token string) {
	s.Lock()
	defer s.Unlock()

	s.token = token
}

// Valid reports whether the session carries a token.
func (s *Session) Valid() bool {
	return s.Token() != ""
}

// OnInvalidate subscribes fn to session invalidation.
func (s *Session) OnInvalidate(fn func()) {
	s.Lock()
	defer s.Unlock()

	s.onInvalidate = append(s.onInvalidate, fn)
}

// Invalidate clears the session state and fires the subscribers.
func (s *Session) Invalidate() {
	s.Lock()
	s.token = ""
	hooks := append([]func(){}, s.onInvalidate...)
	s.Unlock()

	for _, fn := range hooks {
		fn()
	}
}

// NewSession creates a new Session object.
func NewSession(token string) *Session {
	return &Session{token: token}
}
