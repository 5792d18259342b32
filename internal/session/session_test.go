package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pet-center-client/internal/models"
)

func TestSessionLifecycle(t *testing.T) {
	s := New()

	assert.False(t, s.IsAuthenticated())
	assert.False(t, s.IsAdmin())
	assert.Empty(t, s.Token())
	_, ok := s.Current()
	assert.False(t, ok)

	s.Set(&models.User{ID: 7, Username: "alice", Wallet: 25.0}, "tok-123")
	assert.True(t, s.IsAuthenticated())
	assert.False(t, s.IsAdmin())
	assert.Equal(t, "tok-123", s.Token())

	user, ok := s.Current()
	require.True(t, ok)
	assert.Equal(t, int64(7), user.ID)
	assert.Equal(t, "alice", user.Username)

	s.Clear()
	assert.False(t, s.IsAuthenticated())
	assert.Empty(t, s.Token())
}

func TestSessionAdmin(t *testing.T) {
	s := New()
	s.Set(&models.User{ID: 1, Username: "root", IsAdmin: true}, "tok")
	assert.True(t, s.IsAdmin())
}

func TestSessionTokenOnlyIsNotAuthenticated(t *testing.T) {
	// A persisted token alone does not make a session until the user
	// behind it is confirmed.
	s := New()
	s.SetToken("stale-token")
	assert.Equal(t, "stale-token", s.Token())
	assert.False(t, s.IsAuthenticated())
}

func TestSessionUpdateUser(t *testing.T) {
	s := New()
	s.Set(&models.User{ID: 7, Username: "alice", Wallet: 25.0}, "tok")

	s.UpdateUser(&models.User{ID: 7, Username: "alice", Wallet: 5.0})
	user, ok := s.Current()
	require.True(t, ok)
	assert.Equal(t, 5.0, user.Wallet)
	assert.Equal(t, "tok", s.Token())
}

func TestCurrentReturnsCopy(t *testing.T) {
	s := New()
	s.Set(&models.User{ID: 7, Username: "alice", Wallet: 25.0}, "tok")

	user, ok := s.Current()
	require.True(t, ok)
	user.Wallet = 0

	again, ok := s.Current()
	require.True(t, ok)
	assert.Equal(t, 25.0, again.Wallet)
}
