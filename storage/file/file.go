// Package file stores cache snapshots in a single length and crc32 framed dump file.
//
// Layout: repeated [u32 little-endian payload length][u32 crc32 IEEE][msgpack record].
package file

import (
	"bufio"
	"compress/gzip"
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"hash/crc32"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/Borislavv/go-ttl-cache/storage"
	"github.com/rs/zerolog"
	"github.com/vmihailenco/msgpack/v5"
)

const bufSize = 512 * 1024

type Options struct {
	Dir          string
	Name         string
	Gzip         bool
	Crc32Control bool
}

type Store[K comparable, V any] struct {
	opts   Options
	logger zerolog.Logger
}

func New[K comparable, V any](opts Options, logger zerolog.Logger) (*Store[K, V], error) {
	if opts.Dir == "" || opts.Name == "" {
		return nil, errors.New("file store: dir and name are required")
	}
	if err := os.MkdirAll(opts.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("create dump dir: %w", err)
	}
	return &Store[K, V]{opts: opts, logger: logger}, nil
}

// Path returns the dump file location.
func (s *Store[K, V]) Path() string {
	ext := ".dump"
	if s.opts.Gzip {
		ext += ".gz"
	}
	return filepath.Join(s.opts.Dir, s.opts.Name+ext)
}

func (s *Store[K, V]) Save(ctx context.Context, records []storage.Record[K, V]) (err error) {
	start := time.Now()
	name := s.Path()
	tmp := name + ".tmp"

	f, err := os.Create(tmp)
	if err != nil {
		return fmt.Errorf("create dump file %s: %w", tmp, err)
	}
	defer func() {
		if err != nil {
			_ = f.Close()
			_ = os.Remove(tmp)
		}
	}()

	var (
		writer io.Writer = f
		gw     *gzip.Writer
	)
	if s.opts.Gzip {
		gw = gzip.NewWriter(f)
		writer = gw
	}
	bw := bufio.NewWriterSize(writer, bufSize)

	var meta [8]byte
	for i := range records {
		if err = ctx.Err(); err != nil {
			return err
		}
		data, mErr := msgpack.Marshal(&records[i])
		if mErr != nil {
			return fmt.Errorf("encode record: %w", mErr)
		}
		var crc uint32
		if s.opts.Crc32Control {
			crc = crc32.ChecksumIEEE(data)
		}
		binary.LittleEndian.PutUint32(meta[0:4], uint32(len(data)))
		binary.LittleEndian.PutUint32(meta[4:8], crc)
		if _, err = bw.Write(meta[:]); err != nil {
			return fmt.Errorf("write record meta: %w", err)
		}
		if _, err = bw.Write(data); err != nil {
			return fmt.Errorf("write record: %w", err)
		}
	}

	if err = bw.Flush(); err != nil {
		return fmt.Errorf("flush dump: %w", err)
	}
	if gw != nil {
		if err = gw.Close(); err != nil {
			return fmt.Errorf("close gzip writer: %w", err)
		}
	}
	if err = f.Close(); err != nil {
		return fmt.Errorf("close dump file: %w", err)
	}
	if err = os.Rename(tmp, name); err != nil {
		return fmt.Errorf("rename dump file: %w", err)
	}

	s.logger.Info().
		Int("written", len(records)).
		Str("file", name).
		Str("elapsed", time.Since(start).String()).
		Msg("dumping finished")

	return nil
}

func (s *Store[K, V]) Load(ctx context.Context) ([]storage.Record[K, V], error) {
	start := time.Now()
	name := s.Path()

	f, err := os.Open(name)
	if errors.Is(err, os.ErrNotExist) {
		return []storage.Record[K, V]{}, nil
	} else if err != nil {
		return nil, fmt.Errorf("open dump file %s: %w", name, err)
	}
	defer f.Close()

	var reader io.Reader = f
	if s.opts.Gzip {
		gzr, gErr := gzip.NewReader(f)
		if gErr != nil {
			return nil, fmt.Errorf("open gzip reader: %w", gErr)
		}
		defer gzr.Close()
		reader = gzr
	}

	var (
		br      = bufio.NewReaderSize(reader, bufSize)
		meta    [8]byte
		records = make([]storage.Record[K, V], 0)
	)
	for {
		if err = ctx.Err(); err != nil {
			return nil, err
		}
		if _, err = io.ReadFull(br, meta[:]); err == io.EOF {
			break
		} else if err != nil {
			return nil, fmt.Errorf("read record meta: %w", err)
		}

		size := binary.LittleEndian.Uint32(meta[0:4])
		expCRC := binary.LittleEndian.Uint32(meta[4:8])
		buf := make([]byte, size)
		if _, err = io.ReadFull(br, buf); err != nil {
			return nil, fmt.Errorf("read record: %w", err)
		}
		if s.opts.Crc32Control && crc32.ChecksumIEEE(buf) != expCRC {
			return nil, fmt.Errorf("%s: %w", name, storage.ErrCorrupted)
		}

		var rec storage.Record[K, V]
		if err = msgpack.Unmarshal(buf, &rec); err != nil {
			return nil, fmt.Errorf("decode record: %w", err)
		}
		records = append(records, rec)
	}

	s.logger.Info().
		Int("restored", len(records)).
		Str("file", name).
		Str("elapsed", time.Since(start).String()).
		Msg("restoring dump")

	return records, nil
}

func (s *Store[K, V]) Close() error { return nil }

var _ storage.Store[string, int] = (*Store[string, int])(nil)
