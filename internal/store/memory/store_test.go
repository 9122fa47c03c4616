package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wellness-triage/internal/triage"
)

func TestGetMissingKey(t *testing.T) {
	s := New()

	_, err := s.Get(context.Background(), "nope")

	assert.ErrorIs(t, err, triage.ErrNotFound)
}

func TestSetGetRoundTrip(t *testing.T) {
	s := New()
	ctx := context.Background()

	require.NoError(t, s.Set(ctx, "k", []byte(`{"a":1}`)))

	got, err := s.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []byte(`{"a":1}`), got)

	require.NoError(t, s.Set(ctx, "k", []byte("v2")))
	got, err = s.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []byte("v2"), got)
}

func TestValuesAreCopied(t *testing.T) {
	s := New()
	ctx := context.Background()

	in := []byte("original")
	require.NoError(t, s.Set(ctx, "k", in))
	in[0] = 'X'

	first, err := s.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []byte("original"), first)

	first[0] = 'Y'
	second, err := s.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []byte("original"), second)
}

func TestPing(t *testing.T) {
	assert.NoError(t, New().Ping(context.Background()))
}
