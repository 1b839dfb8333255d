package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGoCacheStore_GetSet(t *testing.T) {
	store := NewGoCacheStore(time.Minute)

	_, ok := store.Get("missing")
	assert.False(t, ok)

	require.NoError(t, store.Set("key", []byte("value")))

	data, ok := store.Get("key")
	require.True(t, ok)
	assert.Equal(t, []byte("value"), data)
	assert.Equal(t, 1, store.ItemCount())
}

func TestGoCacheStore_Overwrite(t *testing.T) {
	store := NewGoCacheStore(time.Minute)

	require.NoError(t, store.Set("key", []byte("old")))
	require.NoError(t, store.Set("key", []byte("new")))

	data, ok := store.Get("key")
	require.True(t, ok)
	assert.Equal(t, []byte("new"), data)
	assert.Equal(t, 1, store.ItemCount())
}

func TestGoCacheStore_EntriesNeverExpire(t *testing.T) {
	// Aggressive janitor; entries are stored without expiration and must
	// survive sweeps
	store := NewGoCacheStore(10 * time.Millisecond)

	require.NoError(t, store.Set("key", []byte("value")))
	time.Sleep(50 * time.Millisecond)

	_, ok := store.Get("key")
	assert.True(t, ok)
}

func TestGoCacheStore_Clear(t *testing.T) {
	store := NewGoCacheStore(time.Minute)

	require.NoError(t, store.Set("key", []byte("value")))
	store.Clear()

	_, ok := store.Get("key")
	assert.False(t, ok)
	assert.Equal(t, 0, store.ItemCount())
}
