package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	_, err := s.Get(ctx, "missing")
	require.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, s.Set(ctx, "deutsch_token", "abc"))
	val, err := s.Get(ctx, "deutsch_token")
	require.NoError(t, err)
	require.Equal(t, "abc", val)

	require.NoError(t, s.Set(ctx, "deutsch_token", "def"))
	val, err = s.Get(ctx, "deutsch_token")
	require.NoError(t, err)
	require.Equal(t, "def", val)

	require.NoError(t, s.Remove(ctx, "deutsch_token"))
	_, err = s.Get(ctx, "deutsch_token")
	require.ErrorIs(t, err, ErrNotFound)

	// Removing an absent key is not an error.
	require.NoError(t, s.Remove(ctx, "deutsch_token"))
}
