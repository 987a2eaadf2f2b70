package file

import (
	"context"
	"os"
	"testing"

	"github.com/Borislavv/go-ttl-cache/storage"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

type offer struct {
	ID    string
	Price float64
}

func records() []storage.Record[string, offer] {
	return []storage.Record[string, offer]{
		{Key: "a", Value: offer{ID: "a", Price: 1.5}, CreatedAt: 10, TTL: 60, Hits: 2, MaxHits: 100},
		{Key: "b", Value: offer{ID: "b", Price: 3}, CreatedAt: 11, TTL: 5, Hits: 0, MaxHits: -1},
	}
}

func newStore(t *testing.T, gzip bool) *Store[string, offer] {
	s, err := New[string, offer](Options{Dir: t.TempDir(), Name: "offers", Gzip: gzip, Crc32Control: true}, zerolog.Nop())
	require.NoError(t, err)
	return s
}

// TestStore_RoundTrip saves and loads records with and without gzip.
func TestStore_RoundTrip(t *testing.T) {
	for _, gz := range []bool{false, true} {
		s := newStore(t, gz)

		require.NoError(t, s.Save(context.Background(), records()))
		got, err := s.Load(context.Background())
		require.NoError(t, err)
		require.Equal(t, records(), got)

		_, err = os.Stat(s.Path() + ".tmp")
		require.True(t, os.IsNotExist(err), "temp file must be renamed away")
	}
}

// TestStore_LoadMissing returns an empty snapshot when nothing was saved yet.
func TestStore_LoadMissing(t *testing.T) {
	s := newStore(t, false)

	got, err := s.Load(context.Background())
	require.NoError(t, err)
	require.NotNil(t, got)
	require.Empty(t, got)
}

// TestStore_SaveReplaces overwrites the previous snapshot.
func TestStore_SaveReplaces(t *testing.T) {
	s := newStore(t, false)

	require.NoError(t, s.Save(context.Background(), records()))
	require.NoError(t, s.Save(context.Background(), records()[:1]))

	got, err := s.Load(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.Equal(t, "a", got[0].Key)
}

// TestStore_DetectsCorruption flips a payload byte and expects a crc mismatch.
func TestStore_DetectsCorruption(t *testing.T) {
	s := newStore(t, false)
	require.NoError(t, s.Save(context.Background(), records()))

	data, err := os.ReadFile(s.Path())
	require.NoError(t, err)
	data[len(data)-1] ^= 0xff
	require.NoError(t, os.WriteFile(s.Path(), data, 0o644))

	_, err = s.Load(context.Background())
	require.ErrorIs(t, err, storage.ErrCorrupted)
}

// TestStore_CancelledContext stops saving early.
func TestStore_CancelledContext(t *testing.T) {
	s := newStore(t, false)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	require.ErrorIs(t, s.Save(ctx, records()), context.Canceled)
}

func TestNew_RequiresDirAndName(t *testing.T) {
	_, err := New[string, offer](Options{Name: "x"}, zerolog.Nop())
	require.Error(t, err)
}
