package mcpserver

import (
	"crypto/sha256"
	"encoding/hex"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/erraggy/oasdocs/document"
)

// docCache keeps recently loaded documents so that a client walking
// through the operations of one file does not re-parse it on every call.
// File entries are keyed by absolute path and only hit while the file's
// modification time and size are unchanged; inline content is keyed by its
// SHA-256. URL sources are never cached. Cached documents are shared and
// must be treated as read-only.
type docCache struct {
	mu      sync.Mutex
	maxSize int
	ttl     time.Duration
	now     func() time.Time
	entries map[string]*cacheEntry
}

type cacheEntry struct {
	doc     *document.Document
	modTime time.Time
	size    int64
	expires time.Time
	used    time.Time
}

// newDocCache returns nil when caching is disabled; a nil cache never hits.
func newDocCache(c *serverConfig) *docCache {
	if !c.CacheEnabled {
		return nil
	}
	return &docCache{
		maxSize: c.CacheMaxSize,
		ttl:     c.CacheTTL,
		now:     time.Now,
		entries: make(map[string]*cacheEntry),
	}
}

// docs is the cache used by specInput.load.
var docs = newDocCache(cfg)

// fileKey returns the cache key of path and its current stat.
func fileKey(path string) (string, os.FileInfo, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", nil, err
	}
	info, err := os.Stat(abs)
	if err != nil {
		return "", nil, err
	}
	return "file:" + abs, info, nil
}

func contentKey(content string) string {
	sum := sha256.Sum256([]byte(content))
	return "content:" + hex.EncodeToString(sum[:])
}

// get returns the cached document for key if it is fresh and, for files,
// info still matches the cached stat.
func (c *docCache) get(key string, info os.FileInfo) (*document.Document, bool) {
	if c == nil {
		return nil, false
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	now := c.now()
	if now.After(e.expires) || (info != nil && (!info.ModTime().Equal(e.modTime) || info.Size() != e.size)) {
		delete(c.entries, key)
		return nil, false
	}
	e.used = now
	return e.doc, true
}

// put stores doc under key, evicting the least recently used entry when full.
func (c *docCache) put(key string, info os.FileInfo, doc *document.Document) {
	if c == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	e := &cacheEntry{doc: doc, expires: now.Add(c.ttl), used: now}
	if info != nil {
		e.modTime = info.ModTime()
		e.size = info.Size()
	}
	if _, exists := c.entries[key]; !exists && len(c.entries) >= c.maxSize {
		c.evictOldest()
	}
	c.entries[key] = e
}

func (c *docCache) evictOldest() {
	var oldest string
	var oldestUsed time.Time
	for k, e := range c.entries {
		if oldest == "" || e.used.Before(oldestUsed) {
			oldest, oldestUsed = k, e.used
		}
	}
	delete(c.entries, oldest)
}

func (c *docCache) len() int {
	if c == nil {
		return 0
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
