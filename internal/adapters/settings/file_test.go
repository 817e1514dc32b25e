package settings

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/bnema/poe2-chicken-bot/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func storePath(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "poe2-chicken-bot.config")
}

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	store := NewStore(storePath(t))

	thresholds, err := store.Load(context.Background())
	require.NoError(t, err)

	assert.Equal(t, map[domain.ResourceKey]int64{
		domain.ResourceHP:     500,
		domain.ResourceMP:     500,
		domain.ResourceShield: 10,
	}, thresholds)
}

func TestSaveWritesPositionalLine(t *testing.T) {
	path := storePath(t)
	store := NewStore(path)

	require.NoError(t, store.Save(context.Background(), map[domain.ResourceKey]int64{
		domain.ResourceHP: 600,
	}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "600,500,10", string(data))
}

func TestSaveLoadRoundTrip(t *testing.T) {
	store := NewStore(storePath(t))
	ctx := context.Background()

	want := map[domain.ResourceKey]int64{
		domain.ResourceHP:     750,
		domain.ResourceMP:     320,
		domain.ResourceShield: 25,
	}
	require.NoError(t, store.Save(ctx, want))

	got, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestLoadSkipsUnparsableFields(t *testing.T) {
	path := storePath(t)
	require.NoError(t, os.WriteFile(path, []byte("abc,800,5"), 0o600))

	thresholds, err := NewStore(path).Load(context.Background())
	require.NoError(t, err)

	// The broken hp field keeps its default; the rest parse normally.
	assert.Equal(t, int64(500), thresholds[domain.ResourceHP])
	assert.Equal(t, int64(800), thresholds[domain.ResourceMP])
	assert.Equal(t, int64(5), thresholds[domain.ResourceShield])
}

func TestLoadShortLineKeepsTrailingDefaults(t *testing.T) {
	path := storePath(t)
	require.NoError(t, os.WriteFile(path, []byte("250"), 0o600))

	thresholds, err := NewStore(path).Load(context.Background())
	require.NoError(t, err)

	assert.Equal(t, int64(250), thresholds[domain.ResourceHP])
	assert.Equal(t, int64(500), thresholds[domain.ResourceMP])
	assert.Equal(t, int64(10), thresholds[domain.ResourceShield])
}

func TestSaveRejectsUnknownKey(t *testing.T) {
	store := NewStore(storePath(t))

	err := store.Save(context.Background(), map[domain.ResourceKey]int64{"stamina": 1})
	require.ErrorIs(t, err, domain.ErrUnknownResource)
}
