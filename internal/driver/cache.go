package driver

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/vmihailenco/msgpack/v5"
)

// increment when CacheEntry changes shape
const cacheSchemaVersion uint16 = 1

// Cache хранит результаты форматирования на диске; ключ: хеш содержимого
// плюс отпечаток опций. Safe for concurrent use.
type Cache struct {
	mu    sync.RWMutex
	dir   string
	runID string
}

// CacheEntry is one formatted output.
type CacheEntry struct {
	Schema    uint16
	Path      string // informational; the key decides hits
	Formatted []byte
	Changed   bool
	RunID     string
	CreatedAt int64 // unix seconds
}

// OpenCache opens (creating if needed) a cache under dir, or under
// $XDG_CACHE_HOME/xfmt when dir is empty. runID tags new entries.
func OpenCache(dir, runID string) (*Cache, error) {
	if dir == "" {
		base := os.Getenv("XDG_CACHE_HOME")
		if base == "" {
			home, err := os.UserHomeDir()
			if err != nil {
				return nil, err
			}
			base = filepath.Join(home, ".cache")
		}
		dir = filepath.Join(base, "xfmt")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &Cache{dir: dir, runID: runID}, nil
}

// Dir returns the cache directory.
func (c *Cache) Dir() string { return c.dir }

// CacheKey derives the key from normalized content and an options fingerprint.
func CacheKey(content [32]byte, fingerprint string) string {
	h := sha256.New()
	_, _ = h.Write(content[:])
	_, _ = h.Write([]byte(fingerprint))
	return hex.EncodeToString(h.Sum(nil))
}

func (c *Cache) pathFor(key string) string {
	// первые два символа ключа задают подкаталог
	return filepath.Join(c.dir, "fmt", key[:2], key+".mp")
}

// Put writes e under key through a temp file and rename.
func (c *Cache) Put(key string, e *CacheEntry) error {
	if c == nil {
		return nil
	}
	if len(key) < 2 {
		return fmt.Errorf("cache: short key %q", key)
	}
	e.Schema = cacheSchemaVersion
	e.RunID = c.runID
	if e.CreatedAt == 0 {
		e.CreatedAt = time.Now().Unix()
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	p := c.pathFor(key)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(filepath.Dir(p), "tmp-*")
	if err != nil {
		return err
	}
	tmp := f.Name()
	if err := msgpack.NewEncoder(f).Encode(e); err != nil {
		_ = f.Close()
		_ = os.Remove(tmp)
		return err
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(tmp)
		return err
	}
	return os.Rename(tmp, p)
}

// Get reads the entry for key. Entries of another schema are misses.
func (c *Cache) Get(key string) (*CacheEntry, bool, error) {
	if c == nil || len(key) < 2 {
		return nil, false, nil
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	f, err := os.Open(c.pathFor(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, false, nil
		}
		return nil, false, err
	}
	defer f.Close()

	var e CacheEntry
	if err := msgpack.NewDecoder(f).Decode(&e); err != nil {
		return nil, false, err
	}
	if e.Schema != cacheSchemaVersion {
		return nil, false, nil
	}
	return &e, true, nil
}

// DropAll removes every cached entry.
func (c *Cache) DropAll() error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return os.RemoveAll(filepath.Join(c.dir, "fmt"))
}
