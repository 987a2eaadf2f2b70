// Package keys holds storage-key transforms applied by the cache before every
// lookup and write. Transforms must be pure: the same input always maps to the same key.
package keys

import (
	"encoding/hex"
	"strings"
	"sync"

	"github.com/zeebo/xxh3"
)

const separator = ":"

// Transform derives the storage key from a caller key.
type Transform[K comparable] func(K) K

// Identity returns the key unchanged.
func Identity[K comparable](k K) K { return k }

// Prefix namespaces every key with prefix.
func Prefix(prefix string) Transform[string] {
	if prefix == "" {
		return Identity[string]
	}
	p := prefix + separator
	return func(k string) string { return p + k }
}

// Namespace joins non-empty parts (e.g. app id, user id) into a single key prefix.
func Namespace(parts ...string) Transform[string] {
	nonEmpty := make([]string, 0, len(parts))
	for _, p := range parts {
		if p != "" {
			nonEmpty = append(nonEmpty, p)
		}
	}
	return Prefix(strings.Join(nonEmpty, separator))
}

var hasherPool = sync.Pool{New: func() any { return xxh3.New() }}

// Hashed maps a key to the hex form of its xxh3-128 digest.
func Hashed() Transform[string] {
	return func(k string) string {
		hasher := hasherPool.Get().(*xxh3.Hasher)
		hasher.Reset()
		_, _ = hasher.WriteString(k)
		sum := hasher.Sum128().Bytes()
		hasherPool.Put(hasher)
		return hex.EncodeToString(sum[:])
	}
}

// Chain applies transforms left to right. Nil transforms are skipped.
func Chain[K comparable](transforms ...Transform[K]) Transform[K] {
	return func(k K) K {
		for _, t := range transforms {
			if t != nil {
				k = t(k)
			}
		}
		return k
	}
}
