package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileStore_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cart.json")
	st := NewFileStore(path)
	ctx := context.Background()

	require.NoError(t, st.Set(ctx, "cart", `[{"id":"1"}]`))

	// a fresh instance reads what the first wrote
	got, err := NewFileStore(path).Get(ctx, "cart")
	require.NoError(t, err)
	assert.Equal(t, `[{"id":"1"}]`, got)
}

func TestFileStore_MissingFile(t *testing.T) {
	st := NewFileStore(filepath.Join(t.TempDir(), "missing.json"))
	_, err := st.Get(context.Background(), "cart")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestFileStore_CorruptFileDegradesToEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cart.json")
	require.NoError(t, os.WriteFile(path, []byte("not json"), 0o644))

	st := NewFileStore(path)
	_, err := st.Get(context.Background(), "cart")
	assert.ErrorIs(t, err, ErrNotFound)

	// writes still work after corruption
	require.NoError(t, st.Set(context.Background(), "cart", "x"))
	got, err := st.Get(context.Background(), "cart")
	require.NoError(t, err)
	assert.Equal(t, "x", got)
}

func TestFileStore_Delete(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cart.json")
	st := NewFileStore(path)
	ctx := context.Background()

	require.NoError(t, st.Set(ctx, "cart", "x"))
	require.NoError(t, st.Delete(ctx, "cart"))
	_, err := st.Get(ctx, "cart")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStore_RoundTrip(t *testing.T) {
	st := NewMemoryStore()
	ctx := context.Background()

	_, err := st.Get(ctx, "cart")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, st.Set(ctx, "cart", "x"))
	got, err := st.Get(ctx, "cart")
	require.NoError(t, err)
	assert.Equal(t, "x", got)

	require.NoError(t, st.Delete(ctx, "cart"))
	_, err = st.Get(ctx, "cart")
	assert.ErrorIs(t, err, ErrNotFound)
}
