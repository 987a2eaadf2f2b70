// Package bolt stores cache snapshots in a bbolt bucket, one msgpack record per storage key.
package bolt

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/Borislavv/go-ttl-cache/storage"
	"github.com/rs/zerolog"
	"github.com/vmihailenco/msgpack/v5"
	bolt "go.etcd.io/bbolt"
)

const (
	defaultBucket = "cache"
	openTimeout   = time.Second
)

type Options struct {
	Path   string
	Bucket string
}

type Store[K comparable, V any] struct {
	db     *bolt.DB
	bucket []byte
	logger zerolog.Logger
}

func New[K comparable, V any](opts Options, logger zerolog.Logger) (*Store[K, V], error) {
	if opts.Path == "" {
		return nil, errors.New("bolt store: path is required")
	}
	if opts.Bucket == "" {
		opts.Bucket = defaultBucket
	}
	if err := os.MkdirAll(filepath.Dir(opts.Path), 0o755); err != nil {
		return nil, fmt.Errorf("create bolt dir: %w", err)
	}
	db, err := bolt.Open(opts.Path, 0o600, &bolt.Options{Timeout: openTimeout})
	if err != nil {
		return nil, fmt.Errorf("open bolt db %s: %w", opts.Path, err)
	}
	return &Store[K, V]{db: db, bucket: []byte(opts.Bucket), logger: logger}, nil
}

// Save replaces the bucket contents in a single transaction.
func (s *Store[K, V]) Save(ctx context.Context, records []storage.Record[K, V]) error {
	start := time.Now()
	err := s.db.Update(func(tx *bolt.Tx) error {
		if tx.Bucket(s.bucket) != nil {
			if err := tx.DeleteBucket(s.bucket); err != nil {
				return fmt.Errorf("drop bucket: %w", err)
			}
		}
		b, err := tx.CreateBucket(s.bucket)
		if err != nil {
			return fmt.Errorf("create bucket: %w", err)
		}
		for i := range records {
			if err = ctx.Err(); err != nil {
				return err
			}
			k, err := msgpack.Marshal(records[i].Key)
			if err != nil {
				return fmt.Errorf("encode key: %w", err)
			}
			v, err := msgpack.Marshal(&records[i])
			if err != nil {
				return fmt.Errorf("encode record: %w", err)
			}
			if err = b.Put(k, v); err != nil {
				return fmt.Errorf("put record: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.logger.Info().
		Int("written", len(records)).
		Str("bucket", string(s.bucket)).
		Str("elapsed", time.Since(start).String()).
		Msg("dumping finished")

	return nil
}

func (s *Store[K, V]) Load(ctx context.Context) ([]storage.Record[K, V], error) {
	start := time.Now()
	records := make([]storage.Record[K, V], 0)

	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(s.bucket)
		if b == nil {
			return nil
		}
		return b.ForEach(func(_, v []byte) error {
			if err := ctx.Err(); err != nil {
				return err
			}
			var rec storage.Record[K, V]
			if err := msgpack.Unmarshal(v, &rec); err != nil {
				return fmt.Errorf("decode record: %w: %w", storage.ErrCorrupted, err)
			}
			records = append(records, rec)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info().
		Int("restored", len(records)).
		Str("bucket", string(s.bucket)).
		Str("elapsed", time.Since(start).String()).
		Msg("restoring dump")

	return records, nil
}

func (s *Store[K, V]) Close() error { return s.db.Close() }

var _ storage.Store[string, int] = (*Store[string, int])(nil)
