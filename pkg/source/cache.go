/*
Copyright 2025 David Arnold
Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at
    http://www.apache.org/licenses/LICENSE-2.0
Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package source

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/mitchellh/go-homedir"
	log "github.com/sirupsen/logrus"
)

// cacheEntry holds one cached describe-cluster document.
type cacheEntry struct {
	Description json.RawMessage
	Timestamp   time.Time
}

// Cache keeps describe-cluster output keyed by source and reference, with
// a TTL and optional persistence to a JSON file.
type Cache struct {
	mu    sync.RWMutex
	cache map[string]*cacheEntry
	ttl   time.Duration
	path  string
}

// DefaultCachePath returns ~/.dhtemplate/describe-cache.json.
func DefaultCachePath() (string, error) {
	home, err := homedir.Dir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".dhtemplate", "describe-cache.json"), nil
}

// NewCache creates a cache with the given TTL. When path is not empty the
// cache is loaded from and saved to that file.
func NewCache(ttl time.Duration, path string) *Cache {
	c := &Cache{
		cache: make(map[string]*cacheEntry),
		ttl:   ttl,
		path:  path,
	}
	if path != "" {
		c.loadFromDisk()
	}
	return c
}

func cacheKey(sourceName, ref string) string {
	return sourceName + "/" + ref
}

// Get returns a cached description if it exists and is not expired.
func (c *Cache) Get(sourceName, ref string) ([]byte, bool) {
	c.mu.RLock()
	entry, ok := c.cache[cacheKey(sourceName, ref)]
	c.mu.RUnlock()
	if !ok || time.Since(entry.Timestamp) > c.ttl {
		return nil, false
	}
	return append([]byte(nil), entry.Description...), true
}

// Set stores a description and persists the cache when a path is set.
func (c *Cache) Set(sourceName, ref string, data []byte) {
	c.mu.Lock()
	c.cache[cacheKey(sourceName, ref)] = &cacheEntry{
		Description: append(json.RawMessage(nil), data...),
		Timestamp:   time.Now(),
	}
	c.mu.Unlock()

	if c.path != "" {
		c.saveToDisk()
	}
}

// GetOrDescribe returns cached data when available or uses the Describer
// registered under sourceName to fetch it and populate the cache.
func (c *Cache) GetOrDescribe(ctx context.Context, sourceName, ref string) ([]byte, error) {
	if data, ok := c.Get(sourceName, ref); ok {
		log.Debugf("using cached description for %s %q", sourceName, ref)
		return data, nil
	}

	d := LookupDescriber(sourceName)
	if d == nil {
		return nil, fmt.Errorf("unknown cluster description source %q", sourceName)
	}

	data, err := d.Describe(ctx, ref)
	if err != nil {
		return nil, err
	}

	c.Set(sourceName, ref, data)
	return data, nil
}

func (c *Cache) loadFromDisk() {
	// #nosec G304 - the cache path is computed from the home directory or set by the operator
	data, err := os.ReadFile(c.path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			log.Debugf("failed to read describe cache from disk: %v", err)
		}
		return
	}

	var diskCache map[string]*cacheEntry
	if err := json.Unmarshal(data, &diskCache); err != nil {
		log.Debugf("failed to unmarshal describe cache: %v", err)
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	for key, entry := range diskCache {
		if entry != nil && time.Since(entry.Timestamp) <= c.ttl {
			c.cache[key] = entry
		}
	}

	log.Debugf("loaded %d describe cache entries from disk", len(c.cache))
}

func (c *Cache) saveToDisk() {
	if err := os.MkdirAll(filepath.Dir(c.path), 0750); err != nil {
		log.Debugf("failed to create cache directory: %v", err)
		return
	}

	c.mu.RLock()
	data, err := json.Marshal(c.cache)
	c.mu.RUnlock()
	if err != nil {
		log.Debugf("failed to marshal describe cache: %v", err)
		return
	}

	if err := os.WriteFile(c.path, data, 0600); err != nil {
		log.Debugf("failed to write describe cache to disk: %v", err)
	}
}
