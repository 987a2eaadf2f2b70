package bolt

import (
	"context"
	"path/filepath"
	"sort"
	"testing"

	"github.com/Borislavv/go-ttl-cache/storage"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	bolt "go.etcd.io/bbolt"
)

func newStore(t *testing.T) *Store[string, []byte] {
	s, err := New[string, []byte](Options{Path: filepath.Join(t.TempDir(), "cache.db")}, zerolog.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func records() []storage.Record[string, []byte] {
	return []storage.Record[string, []byte]{
		{Key: "a", Value: []byte("offer-a"), CreatedAt: 1, TTL: 60, Hits: 3, MaxHits: 100},
		{Key: "b", Value: []byte("offer-b"), CreatedAt: 2, TTL: 30, Hits: 0, MaxHits: 0},
	}
}

func sorted(in []storage.Record[string, []byte]) []storage.Record[string, []byte] {
	sort.Slice(in, func(i, j int) bool { return in[i].Key < in[j].Key })
	return in
}

// TestStore_RoundTrip saves and loads a snapshot.
func TestStore_RoundTrip(t *testing.T) {
	s := newStore(t)

	require.NoError(t, s.Save(context.Background(), records()))
	got, err := s.Load(context.Background())
	require.NoError(t, err)
	require.Equal(t, records(), sorted(got))
}

// TestStore_LoadEmpty returns no records before the first save.
func TestStore_LoadEmpty(t *testing.T) {
	s := newStore(t)

	got, err := s.Load(context.Background())
	require.NoError(t, err)
	require.NotNil(t, got)
	require.Empty(t, got)
}

// TestStore_SaveReplaces drops keys that are absent from the newer snapshot.
func TestStore_SaveReplaces(t *testing.T) {
	s := newStore(t)

	require.NoError(t, s.Save(context.Background(), records()))
	require.NoError(t, s.Save(context.Background(), records()[1:]))

	got, err := s.Load(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.Equal(t, "b", got[0].Key)
}

// TestStore_DecodeError reports garbage values as corrupted.
func TestStore_DecodeError(t *testing.T) {
	s := newStore(t)
	require.NoError(t, s.db.Update(func(tx *bolt.Tx) error {
		b, err := tx.CreateBucketIfNotExists(s.bucket)
		if err != nil {
			return err
		}
		return b.Put([]byte("x"), []byte{0xc1})
	}))

	_, err := s.Load(context.Background())
	require.ErrorIs(t, err, storage.ErrCorrupted)
}

// TestStore_CancelledSaveKeepsPrevious rolls the transaction back.
func TestStore_CancelledSaveKeepsPrevious(t *testing.T) {
	s := newStore(t)
	require.NoError(t, s.Save(context.Background(), records()))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	require.ErrorIs(t, s.Save(ctx, records()[:1]), context.Canceled)

	got, err := s.Load(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 2)
}

func TestNew_RequiresPath(t *testing.T) {
	_, err := New[string, []byte](Options{}, zerolog.Nop())
	require.Error(t, err)
}
