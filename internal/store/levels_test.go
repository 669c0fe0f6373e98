package store_test

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CodeGuy93/buffalo-float-site/internal/store"
)

func TestPreviousLevels_RoundTrip(t *testing.T) {
	p := store.NewPreviousLevels(store.NewMemoryKV(), slog.Default())

	_, ok := p.Previous("pruitt")
	assert.False(t, ok, "absent record")

	p.Record("pruitt", 5.2)
	level, ok := p.Previous("pruitt")
	require.True(t, ok)
	assert.Equal(t, 5.2, level)

	// Overwritten every cycle; only one sample is kept.
	p.Record("pruitt", 4.5)
	level, _ = p.Previous("pruitt")
	assert.Equal(t, 4.5, level)
}

func TestPreviousLevels_GaugesAreIndependent(t *testing.T) {
	p := store.NewPreviousLevels(store.NewMemoryKV(), slog.Default())
	p.Record("pruitt", 5.2)

	_, ok := p.Previous("gilbert")
	assert.False(t, ok)
}

func TestPreviousLevels_MalformedRecordIgnored(t *testing.T) {
	kv := store.NewMemoryKV()
	require.NoError(t, kv.Set("previous-level:pruitt", []byte("five-ish")))

	p := store.NewPreviousLevels(kv, slog.Default())
	_, ok := p.Previous("pruitt")
	assert.False(t, ok)
}
