// Copyright ©️ OFS contributors. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package commit

import (
	"os"
	"path/filepath"

	"github.com/dgraph-io/ristretto/v2"
)

// DefaultCacheSize is the default bound on cached decoded commits.
const DefaultCacheSize = 128

// Cache is a bounded cache of decoded commits, owned
// by a single repository handle rather than a package-level
// singleton. It is backed by github.com/dgraph-io/ristretto/v2.
//
// Ristretto's admission policy evicts by a sampled cost/frequency
// estimate rather than strict insertion order. Nothing here depends
// on the exact eviction order, only on bounded size and correct
// hit/miss semantics, both of which ristretto provides. See
// DESIGN.md.
type Cache struct {
	rc *ristretto.Cache[string, *Commit]
}

// NewCache constructs a Cache bounded at maxEntries.
func NewCache(maxEntries int64) (*Cache, error) {
	if maxEntries <= 0 {
		maxEntries = DefaultCacheSize
	}
	rc, err := ristretto.NewCache(&ristretto.Config[string, *Commit]{
		NumCounters: maxEntries * 10,
		MaxCost:     maxEntries,
		BufferItems: 64,
	})
	if err != nil {
		return nil, err
	}
	return &Cache{rc: rc}, nil
}

// Close releases the cache's background resources.
func (c *Cache) Close() {
	if c != nil && c.rc != nil {
		c.rc.Close()
	}
}

// Clear evicts every cached commit. Callers mutating commit files
// out-of-band (tests, external tooling) must call this; ordinary
// command flow never needs to, since SaveAndCache keeps the cache
// coherent.
func (c *Cache) Clear() {
	if c != nil && c.rc != nil {
		c.rc.Clear()
	}
}

func cacheKey(dir, id string) string {
	return dir + "\x00" + id
}

func (c *Cache) get(dir, id string) (*Commit, bool) {
	if c == nil || c.rc == nil {
		return nil, false
	}
	v, ok := c.rc.Get(cacheKey(dir, id))
	if !ok {
		return nil, false
	}
	return v.Clone(), true
}

func (c *Cache) put(dir, id string, commit *Commit) {
	if c == nil || c.rc == nil {
		return
	}
	c.rc.SetWithTTL(cacheKey(dir, id), commit.Clone(), 1, 0)
	c.rc.Wait()
}

// invalidate drops id from the cache, used after Save overwrites a
// commit file so stale reads can never surface.
func (c *Cache) invalidate(dir, id string) {
	if c == nil || c.rc == nil {
		return
	}
	c.rc.Del(cacheKey(dir, id))
}

// Load reads dir/<id>.json, consulting cache first. A cache hit
// returns a deep copy to prevent aliasing across callers. A missing
// file or parse failure is reported as "not found" (ok=false) and is
// never cached as a negative result.
func Load(cache *Cache, id, dir string) (c *Commit, ok bool, err error) {
	if commit, hit := cache.get(dir, id); hit {
		return commit, true, nil
	}
	path := filepath.Join(dir, id+".json")
	commit, perr := parseFile(path)
	if perr != nil {
		if os.IsNotExist(perr) {
			return nil, false, nil
		}
		return nil, false, nil
	}
	cache.put(dir, id, commit)
	return commit, true, nil
}

// SaveAndCache persists commit and refreshes its cache entry so a
// subsequent Load observes the just-written state even if it differs
// from whatever (if anything) was cached under the same id.
func SaveAndCache(cache *Cache, c *Commit, dir string) error {
	if err := Save(c, dir); err != nil {
		return err
	}
	cache.invalidate(dir, c.ID)
	cache.put(dir, c.ID, c)
	return nil
}
