package apitest

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	m := newTokenManager("secret", time.Hour)

	token, err := m.Generate(7, "alice", true)
	require.NoError(t, err)

	claims, err := m.Validate(token)
	require.NoError(t, err)
	assert.Equal(t, int64(7), claims.UserID)
	assert.Equal(t, "alice", claims.Username)
	assert.True(t, claims.IsAdmin)
}

func TestTokenWrongSecretRejected(t *testing.T) {
	token, err := newTokenManager("secret-a", time.Hour).Generate(1, "alice", false)
	require.NoError(t, err)

	_, err = newTokenManager("secret-b", time.Hour).Validate(token)
	assert.Error(t, err)
}

func TestExpiredTokenRejected(t *testing.T) {
	m := newTokenManager("secret", -time.Minute)

	token, err := m.Generate(1, "alice", false)
	require.NoError(t, err)

	_, err = m.Validate(token)
	assert.Error(t, err)
}

// A resubmitted order with the same Idempotency-Key must replay the
// stored outcome instead of settling twice.
func TestOrderIdempotencyReplay(t *testing.T) {
	s := NewServer()
	shelter := s.SeedShelter("Happy Paws", "Springfield")
	item := s.SeedShopItem(shelter.ID, "Dog Food", 5.00, 10)
	buyer := s.SeedUser("alice", "secret123", "Alice", 100.0, false)

	token, err := s.tokens.Generate(buyer.ID, buyer.Username, false)
	require.NoError(t, err)

	body, err := json.Marshal(map[string]interface{}{
		"items": []map[string]interface{}{{"item_id": item.ID, "quantity": 2}},
	})
	require.NoError(t, err)

	send := func() *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/api/shop/order", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Authorization", "Bearer "+token)
		req.Header.Set("Idempotency-Key", "key-1")
		rec := httptest.NewRecorder()
		s.ServeHTTP(rec, req)
		return rec
	}

	first := send()
	assert.Equal(t, http.StatusCreated, first.Code)

	second := send()
	assert.Equal(t, http.StatusCreated, second.Code)
	assert.JSONEq(t, first.Body.String(), second.Body.String())

	// settled exactly once
	assert.Equal(t, 8, s.StockOf(item.ID))
	assert.Equal(t, 90.00, s.WalletOf(buyer.ID))
	assert.Equal(t, 1, s.OrderCount())
}
