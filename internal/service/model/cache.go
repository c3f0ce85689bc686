package model

import "sync"

// Cache is an opt-in load-once model cache keyed by artifact path. Loaded
// models are immutable, so a shared handle is safe for concurrent readers.
type Cache struct {
	mu sync.Mutex
	m  map[string]*Model
}

func NewCache() *Cache {
	return &Cache{m: make(map[string]*Model)}
}

// Load returns the cached model for path, loading it on first use.
// Load failures are not cached; a later call retries the disk.
func (c *Cache) Load(path string) (*Model, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if m, ok := c.m[path]; ok {
		return m, nil
	}
	m, err := Load(path)
	if err != nil {
		return nil, err
	}
	c.m[path] = m
	return m, nil
}
