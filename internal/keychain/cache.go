package keychain

import "sync"

// Cache is a write-once cell holding the active secret for the life of
// the process, so the secure store is never consulted (and the user never
// prompted) more than once per run. A changed store value after the first
// successful read is not observed until restart; that staleness is the
// price of prompt minimization.
type Cache struct {
	mu     sync.Mutex
	secret string
	filled bool
}

// NewCache returns an empty cache. Managers under test construct their
// own; production managers share the process-wide cell.
func NewCache() *Cache {
	return &Cache{}
}

// Get returns the cached secret, if one has been set.
func (c *Cache) Get() (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.secret, c.filled
}

// SetIfAbsent initializes the cache with the given secret. It reports
// whether this call did the initialization; concurrent callers racing
// here all converge on the first writer's value.
func (c *Cache) SetIfAbsent(secret string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.filled {
		return false
	}
	c.secret = secret
	c.filled = true
	return true
}
