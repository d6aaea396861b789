// Package session owns the bearer token of the console user. The API client
// receives a *Session explicitly; no other package keeps the token.
package session

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/dgrijalva/jwt-go"

	"taqueando-console/internal/domain"
)

var (
	ErrNotAuthenticated = errors.New("no authentication token")
	ErrTokenExpired     = errors.New("authentication token expired")
)

// Claims are the fields of the token the console cares about. They are read
// without verifying the signature; the backend remains the authority.
type Claims struct {
	UserID    int
	Role      domain.Role
	ExpiresAt time.Time
}

type Session struct {
	mu     sync.RWMutex
	token  string
	claims Claims
	user   *domain.User
	now    func() time.Time
}

func New() *Session {
	return &Session{now: time.Now}
}

// NewWithClock is New with a custom clock, used for expiry checks.
func NewWithClock(now func() time.Time) *Session {
	return &Session{now: now}
}

// SetToken replaces the token. Tokens that are not JWTs are kept as opaque
// bearer tokens without claims. An empty token clears the session.
func (s *Session) SetToken(token string) {
	token = strings.TrimSpace(token)

	s.mu.Lock()
	defer s.mu.Unlock()

	s.token = token
	s.claims = parseClaims(token)
	s.user = nil
}

// Token returns the bearer token, failing before any request is attempted
// when there is none or it has expired.
func (s *Session) Token() (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.token == "" {
		return "", ErrNotAuthenticated
	}
	if !s.claims.ExpiresAt.IsZero() && !s.now().Before(s.claims.ExpiresAt) {
		return "", ErrTokenExpired
	}
	return s.token, nil
}

// Authenticated reports whether a usable token is held.
func (s *Session) Authenticated() bool {
	_, err := s.Token()
	return err == nil
}

func (s *Session) Claims() Claims {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.claims
}

// SetUser records the user confirmed by the backend.
func (s *Session) SetUser(u domain.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.user = &u
}

func (s *Session) User() (domain.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return domain.User{}, false
	}
	return *s.user, true
}

// Role prefers the backend confirmed user over the token claims.
func (s *Session) Role() domain.Role {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user != nil && s.user.Role != "" {
		return s.user.Role
	}
	return s.claims.Role
}

// Clear drops token and user, as a logout does.
func (s *Session) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""
	s.claims = Claims{}
	s.user = nil
}

// Save writes the token to path, readable by the owner only.
func (s *Session) Save(path string) error {
	s.mu.RLock()
	token := s.token
	s.mu.RUnlock()

	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("could not create session directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(token), 0o600); err != nil {
		return fmt.Errorf("could not write session file %s: %w", path, err)
	}
	return nil
}

// Load reads a token saved with Save. A missing file leaves the session empty
// and returns an error wrapping os.ErrNotExist.
func (s *Session) Load(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("could not read session file %s: %w", path, err)
	}
	s.SetToken(string(data))
	return nil
}

func parseClaims(token string) Claims {
	if token == "" {
		return Claims{}
	}

	mc := jwt.MapClaims{}
	if _, _, err := new(jwt.Parser).ParseUnverified(token, mc); err != nil {
		return Claims{}
	}

	var c Claims
	if id, ok := mc["id"].(float64); ok {
		c.UserID = int(id)
	}
	for _, key := range []string{"rol", "role"} {
		if r, ok := mc[key].(string); ok && r != "" {
			c.Role = domain.Role(r)
			break
		}
	}
	if exp, ok := mc["exp"].(float64); ok && exp > 0 {
		c.ExpiresAt = time.Unix(int64(exp), 0)
	}
	return c
}
