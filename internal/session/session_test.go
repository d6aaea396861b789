package session_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"taqueando-console/internal/domain"
	"taqueando-console/internal/session"

	"github.com/dgrijalva/jwt-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signedToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return token
}

func TestSession_Token(t *testing.T) {
	now := time.Date(2025, 5, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		token   string
		wantErr error
	}{
		{
			name:    "empty session",
			token:   "",
			wantErr: session.ErrNotAuthenticated,
		},
		{
			name:  "valid jwt",
			token: signedToken(t, jwt.MapClaims{"id": 3, "rol": "admin", "exp": now.Add(time.Hour).Unix()}),
		},
		{
			name:    "expired jwt",
			token:   signedToken(t, jwt.MapClaims{"id": 3, "rol": "admin", "exp": now.Add(-time.Minute).Unix()}),
			wantErr: session.ErrTokenExpired,
		},
		{
			name:  "opaque token",
			token: "not-a-jwt",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := session.NewWithClock(func() time.Time { return now })
			s.SetToken(tt.token)

			got, err := s.Token()
			if tt.wantErr != nil {
				assert.True(t, errors.Is(err, tt.wantErr))
				assert.False(t, s.Authenticated())
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.token, got)
			assert.True(t, s.Authenticated())
		})
	}
}

func TestSession_RoleFromClaimsAndUser(t *testing.T) {
	s := session.New()
	s.SetToken(signedToken(t, jwt.MapClaims{"id": 8, "role": "empleado"}))

	assert.Equal(t, 8, s.Claims().UserID)
	assert.Equal(t, domain.RoleEmployee, s.Role())

	s.SetUser(domain.User{ID: 8, Role: domain.RoleAdmin})
	assert.Equal(t, domain.RoleAdmin, s.Role())

	s.Clear()
	_, ok := s.User()
	assert.False(t, ok)
	assert.Equal(t, domain.Role(""), s.Role())
}

func TestSession_SaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "session")

	s := session.New()
	s.SetToken("abc123")
	require.NoError(t, s.Save(path))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	loaded := session.New()
	require.NoError(t, loaded.Load(path))
	token, err := loaded.Token()
	require.NoError(t, err)
	assert.Equal(t, "abc123", token)

	err = session.New().Load(filepath.Join(t.TempDir(), "missing"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestMenu(t *testing.T) {
	admin := session.Menu(domain.RoleAdmin)
	employee := session.Menu(domain.RoleEmployee)

	assert.Len(t, admin, 8)
	assert.Len(t, employee, 5)
	assert.Empty(t, session.Menu("guest"))

	assert.True(t, session.CanAccess(domain.RoleAdmin, "stats"))
	assert.False(t, session.CanAccess(domain.RoleEmployee, "stats"))
	assert.True(t, session.CanAccess(domain.RoleEmployee, "cash"))
}
