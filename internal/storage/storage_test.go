package storage_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/travel-planner/internal/storage"
)

// exerciseContract runs the behaviour every backend must share against s.
// key should be unique to the calling test so shared databases stay isolated.
func exerciseContract(t *testing.T, s storage.Storage, key string) {
	t.Helper()
	ctx := context.Background()

	_, err := s.Get(ctx, key)
	require.ErrorIs(t, err, storage.ErrKeyNotFound, "unset key must report ErrKeyNotFound")

	require.NoError(t, s.Set(ctx, key, []byte(`[{"id":"1"}]`)))
	got, err := s.Get(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, `[{"id":"1"}]`, string(got))

	// Set overwrites the whole value.
	require.NoError(t, s.Set(ctx, key, []byte(`[]`)))
	got, err = s.Get(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, `[]`, string(got))

	// Keys are independent.
	_, err = s.Get(ctx, key+":other")
	assert.ErrorIs(t, err, storage.ErrKeyNotFound)
}

func TestMemory_Contract(t *testing.T) {
	exerciseContract(t, storage.NewMemory(), "@travel_planner:itineraries")
}

func TestMemory_ValuesAreCopied(t *testing.T) {
	m := storage.NewMemory()
	ctx := context.Background()

	in := []byte("abc")
	require.NoError(t, m.Set(ctx, "k", in))
	in[0] = 'X'

	out, err := m.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "abc", string(out))

	out[1] = 'Y'
	again, err := m.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "abc", string(again))
}

func TestOpen_Memory(t *testing.T) {
	s, err := storage.Open(context.Background(), storage.Options{Driver: storage.DriverMemory})

	require.NoError(t, err)
	assert.IsType(t, &storage.Memory{}, s)
}

func TestOpen_FileIsDefault(t *testing.T) {
	s, err := storage.Open(context.Background(), storage.Options{DataDir: t.TempDir()})

	require.NoError(t, err)
	assert.IsType(t, &storage.File{}, s)
}

func TestOpen_UnknownDriver(t *testing.T) {
	_, err := storage.Open(context.Background(), storage.Options{Driver: "floppy"})

	require.Error(t, err)
	assert.ErrorContains(t, err, "floppy")
}
