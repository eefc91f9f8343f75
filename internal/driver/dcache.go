package driver

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"os"
	"path/filepath"
	"sync"

	"github.com/vmihailenco/msgpack/v5"

	"bwqlint/internal/diag"
	"bwqlint/internal/observ"
	"bwqlint/internal/source"
	"bwqlint/internal/trace"
	"bwqlint/internal/version"
)

// Bump when DiskPayload changes shape.
const diskCacheSchemaVersion uint16 = 1

// CacheKey identifies one lint result.
type CacheKey [32]byte

func (k CacheKey) String() string { return hex.EncodeToString(k[:]) }

// DiskCache stores raw lint findings per query on disk.
// Safe for concurrent use.
type DiskCache struct {
	mu  sync.RWMutex
	dir string
}

// DiskPayload is what gets written per key.
type DiskPayload struct {
	Schema uint16
	// Fatal marks Diagnostics[0] as the lexer/parser failure.
	Fatal       bool
	Diagnostics []diag.Diagnostic
}

// OpenDiskCache opens the cache under $XDG_CACHE_HOME/<app>, falling back
// to ~/.cache/<app>.
func OpenDiskCache(app string) (*DiskCache, error) {
	base := os.Getenv("XDG_CACHE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		base = filepath.Join(home, ".cache")
	}
	return OpenDiskCacheAt(filepath.Join(base, app))
}

// OpenDiskCacheAt opens the cache rooted at dir, creating it if needed.
func OpenDiskCacheAt(dir string) (*DiskCache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &DiskCache{dir: dir}, nil
}

// Dir returns the cache root.
func (c *DiskCache) Dir() string {
	if c == nil {
		return ""
	}
	return c.dir
}

// Key derives the cache key from the query text, the options fingerprint
// and the tool version.
func Key(content []byte, fingerprint string) CacheKey {
	h := sha256.New()
	h.Write([]byte(version.Version))
	h.Write([]byte{0})
	h.Write([]byte(fingerprint))
	h.Write([]byte{0})
	h.Write(content)
	var k CacheKey
	copy(k[:], h.Sum(nil))
	return k
}

func (c *DiskCache) pathFor(key CacheKey) string {
	hexKey := key.String()
	// два уровня, чтобы не складывать всё в один каталог
	return filepath.Join(c.dir, "results", hexKey[:2], hexKey+".mp")
}

// Put writes payload under key. The file is replaced atomically.
func (c *DiskCache) Put(key CacheKey, payload *DiskPayload) (err error) {
	if c == nil {
		return nil
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
	defer func() {
		if err != nil {
			_ = os.Remove(tmp)
		}
	}()

	payload.Schema = diskCacheSchemaVersion
	if err = msgpack.NewEncoder(f).Encode(payload); err != nil {
		_ = f.Close()
		return err
	}
	if err = f.Close(); err != nil {
		return err
	}
	// атомарная замена
	return os.Rename(tmp, p)
}

// Get reads the payload for key. A missing entry or a stale schema is a
// miss, not an error.
func (c *DiskCache) Get(key CacheKey, out *DiskPayload) (bool, error) {
	if c == nil {
		return false, nil
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	f, err := os.Open(c.pathFor(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, err
	}
	defer f.Close()

	if err := msgpack.NewDecoder(f).Decode(out); err != nil {
		return false, err
	}
	if out.Schema != diskCacheSchemaVersion {
		return false, nil
	}
	return true, nil
}

// DropAll removes every cached entry.
func (c *DiskCache) DropAll() error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return os.RemoveAll(filepath.Join(c.dir, "results"))
}

func lookupCache(ctx context.Context, timer *observ.Timer, f *source.File, opts Options) ([]diag.Diagnostic, bool, bool) {
	if opts.Cache == nil {
		return nil, false, false
	}
	idx := timer.Begin("cache")
	var payload DiskPayload
	hit, err := opts.Cache.Get(Key(f.Content, opts.cacheFingerprint()), &payload)
	switch {
	case err != nil:
		// битая запись: считаем промахом и перезапишем
		trace.Point(ctx, trace.ScopePass, "cache-error", err.Error())
		hit = false
	case hit:
		trace.Point(ctx, trace.ScopePass, "cache-hit", f.Path)
	}
	if !hit {
		timer.End(idx, "miss")
		return nil, false, false
	}
	timer.End(idx, "hit")
	return payload.Diagnostics, payload.Fatal, true
}

func storeCache(ctx context.Context, timer *observ.Timer, f *source.File, opts Options, raw []diag.Diagnostic, fatal bool) {
	if opts.Cache == nil || ctx.Err() != nil {
		return
	}
	idx := timer.Begin("cache-store")
	err := opts.Cache.Put(Key(f.Content, opts.cacheFingerprint()), &DiskPayload{Fatal: fatal, Diagnostics: raw})
	if err != nil {
		trace.Point(ctx, trace.ScopePass, "cache-error", err.Error())
	}
	timer.End(idx, "")
}
