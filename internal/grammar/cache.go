package grammar

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/vmihailenco/msgpack/v5"

	"arbor/internal/lang"
)

// Current schema version - increment when Payload format changes.
const cacheSchemaVersion uint16 = 1

// Digest identifies a grammar source configuration.
type Digest [32]byte

// Key derives the cache key for a language's grammar source.
func Key(g lang.Grammar) Digest {
	return sha256.Sum256([]byte(g.Repository + "\x00" + g.Revision))
}

// Payload records a built grammar artifact so later runs can skip the
// fetch and compile steps.
type Payload struct {
	Schema uint16

	Name     string
	Revision string
	Artifact string
	Symbol   string
}

// Cache stores grammar build metadata on disk, msgpack encoded.
// Thread-safe for concurrent access.
type Cache struct {
	mu  sync.RWMutex
	dir string
}

// OpenCache initializes a metadata cache under the arbor cache root.
func OpenCache(root string) *Cache {
	return &Cache{dir: filepath.Join(root, "meta")}
}

func (c *Cache) pathFor(key Digest) string {
	return filepath.Join(c.dir, hex.EncodeToString(key[:])+".mp")
}

// Put serializes and writes a payload, replacing any previous entry
// atomically.
func (c *Cache) Put(key Digest, payload *Payload) error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	payload.Schema = cacheSchemaVersion

	p := c.pathFor(key)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(filepath.Dir(p), "tmp-*")
	if err != nil {
		return err
	}
	defer os.Remove(f.Name())

	if err := msgpack.NewEncoder(f).Encode(payload); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	return os.Rename(f.Name(), p)
}

// Get reads a payload. It reports false for missing entries and for
// entries written with a different schema version.
func (c *Cache) Get(key Digest, out *Payload) (bool, error) {
	if c == nil {
		return false, nil
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	f, err := os.Open(c.pathFor(key))
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	defer f.Close()

	if err := msgpack.NewDecoder(f).Decode(out); err != nil {
		return false, err
	}
	if out.Schema != cacheSchemaVersion {
		return false, nil
	}
	return true, nil
}
