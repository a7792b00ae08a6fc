package httpapi

import (
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/dmitrijs2005/memorymap/internal/models"
	"github.com/dmitrijs2005/memorymap/internal/share"
)

// viewCache keeps resolved share views for a short TTL. Entries are keyed
// by the hash of the stored state they were resolved from, so any write to
// the store makes them unreachable. Views are values with no mutating
// methods, so entries can be handed out as is.
type viewCache struct {
	lru *expirable.LRU[string, share.View]
}

func newViewCache(size int, ttl time.Duration) *viewCache {
	if size <= 0 {
		return nil
	}
	return &viewCache{lru: expirable.NewLRU[string, share.View](size, nil, ttl)}
}

// cacheKey identifies a descriptor by the state version, its sorted id set
// and token.
func cacheKey(version uint64, d models.ShareDescriptor) string {
	ids := slices.Sorted(slices.Values(d.RecordIDs))
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.FormatInt(id, 10)
	}
	return strconv.FormatUint(version, 16) + "|" + strings.Join(parts, ",") + "|" + d.Token
}

// get is safe on a nil cache, which always misses.
func (c *viewCache) get(version uint64, d models.ShareDescriptor) (share.View, bool) {
	if c == nil {
		return share.View{}, false
	}
	v, ok := c.lru.Get(cacheKey(version, d))
	if ok {
		viewCacheHits.Inc()
		return v, true
	}
	viewCacheMisses.Inc()
	return share.View{}, false
}

func (c *viewCache) add(version uint64, d models.ShareDescriptor, v share.View) {
	if c == nil {
		return
	}
	c.lru.Add(cacheKey(version, d), v)
}

func (c *viewCache) len() int {
	if c == nil {
		return 0
	}
	return c.lru.Len()
}
