package session

import (
	"sync"

	"pet-center-client/internal/models"
)

// Session holds the client's belief about who is logged in. It is the
// single source of truth for the authentication and admin guards; the
// API layer reads the token from here on every request.
type Session struct {
	mu    sync.RWMutex
	user  *models.User
	token string
}

func New() *Session {
	return &Session{}
}

// Set replaces the current identity after a successful login or an
// affirmative session probe.
func (s *Session) Set(user *models.User, token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.user = user
	s.token = token
}

// SetToken stores a bearer token with no user attached yet, e.g. one
// restored from disk before the startup session probe has confirmed it.
func (s *Session) SetToken(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
}

// UpdateUser refreshes the cached user record (e.g. after a wallet
// change) without touching the token.
func (s *Session) UpdateUser(user *models.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.user = user
}

// Clear drops the identity on logout or a failed session probe.
func (s *Session) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.user = nil
	s.token = ""
}

// Current returns the logged-in user, or false when logged out.
func (s *Session) Current() (*models.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return nil, false
	}
	u := *s.user
	return &u, true
}

func (s *Session) IsAuthenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user != nil
}

func (s *Session) IsAdmin() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user != nil && s.user.IsAdmin
}

// Token returns the bearer token, empty when logged out. Satisfies the
// API client's token source.
func (s *Session) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}
