package store_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CodeGuy93/buffalo-float-site/internal/store"
)

func TestSQLiteKV_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "kv.db")
	kv, err := store.NewSQLiteKV(path)
	require.NoError(t, err)
	defer kv.Close()

	_, ok, err := kv.Get("missing")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, kv.Set("k", []byte("v1")))
	got, ok, err := kv.Get("k")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, []byte("v1"), got)

	require.NoError(t, kv.Set("k", []byte("v2")), "upsert on conflict")
	got, _, err = kv.Get("k")
	require.NoError(t, err)
	assert.Equal(t, []byte("v2"), got)

	require.NoError(t, kv.Delete("k"))
	_, ok, err = kv.Get("k")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestSQLiteKV_SurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "kv.db")

	kv, err := store.NewSQLiteKV(path)
	require.NoError(t, err)
	require.NoError(t, kv.Set("k", []byte("persisted")))
	require.NoError(t, kv.Close())

	kv, err = store.NewSQLiteKV(path)
	require.NoError(t, err)
	defer kv.Close()

	got, ok, err := kv.Get("k")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, []byte("persisted"), got)
}

func TestSQLiteKV_CreatesParentDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "kv.db")
	kv, err := store.NewSQLiteKV(path)
	require.NoError(t, err)
	defer kv.Close()

	require.NoError(t, kv.Set("k", []byte("v")))
}
