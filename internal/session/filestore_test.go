package session

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "token")
	store := NewFileStore(path)

	assert.Empty(t, store.Load())

	require.NoError(t, store.Save("tok-abc"))
	assert.Equal(t, "tok-abc", store.Load())

	require.NoError(t, store.Save("tok-def"))
	assert.Equal(t, "tok-def", store.Load())
}

func TestFileStoreClear(t *testing.T) {
	path := filepath.Join(t.TempDir(), "token")
	store := NewFileStore(path)

	require.NoError(t, store.Save("tok"))
	require.NoError(t, store.Clear())
	assert.Empty(t, store.Load())

	// clearing an absent file is fine
	require.NoError(t, store.Clear())
}
