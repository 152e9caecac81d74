// Package cache implements a namespace-partitioned, expiring
// memoization store that fronts the trait store's query surface.
//
// Each namespace has an independent TTL and an independent capacity
// bound. TTL limits staleness; the capacity bound limits memory, with
// least-recently-used entries evicted first. Expiration is checked
// lazily at access time - there is no background sweep goroutine.
//
// Concurrent callers missing on the same cold key are coalesced into a
// single computation per namespace via singleflight, so a supplier runs
// at most once per key at a time. Supplier failures are never cached.
package cache

import (
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gnames/gn"
	lru "github.com/hashicorp/golang-lru/v2/simplelru"
	"github.com/razinkele/traitstore/pkg/errcode"
	"golang.org/x/sync/singleflight"
)

// Stats holds per-namespace observability counters.
type Stats struct {
	Hits      int64
	Misses    int64
	Evictions int64
	Entries   int
}

type entry struct {
	value    any
	storedAt time.Time
}

type namespace struct {
	mu     sync.Mutex
	ttl    time.Duration
	lru    *lru.LRU[string, entry]
	flight singleflight.Group

	hits      atomic.Int64
	misses    atomic.Int64
	evictions atomic.Int64
}

// Cache is the namespace-partitioned store. Locking is per namespace:
// a slow supplier in one namespace never blocks access to another.
type Cache struct {
	mu         sync.RWMutex
	namespaces map[string]*namespace

	// now is replaceable in tests to exercise expiry without sleeping.
	now func() time.Time
}

// New creates an empty cache. Namespaces are declared up front with
// Register before use.
func New() *Cache {
	return &Cache{
		namespaces: make(map[string]*namespace),
		now:        time.Now,
	}
}

// Register declares a namespace with its TTL and capacity bound.
// Registering the same namespace twice is a programming error.
func (c *Cache) Register(name string, ttl time.Duration, capacity int) error {
	if name == "" || ttl <= 0 || capacity <= 0 {
		return namespaceError(name,
			fmt.Errorf("invalid namespace %q (ttl %s, capacity %d)",
				name, ttl, capacity))
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.namespaces[name]; ok {
		return namespaceError(name,
			fmt.Errorf("namespace %q already registered", name))
	}

	ns := &namespace{ttl: ttl}
	l, err := lru.NewLRU[string, entry](capacity, func(string, entry) {
		ns.evictions.Add(1)
	})
	if err != nil {
		return namespaceError(name, err)
	}
	ns.lru = l
	c.namespaces[name] = ns
	return nil
}

// GetOrCompute returns the cached value for key, or invokes supplier on
// a miss or an expired entry. The result is stored only when supplier
// succeeds; its error propagates unmodified and leaves the cache
// untouched. Concurrent callers racing on the same cold key share one
// supplier invocation.
func (c *Cache) GetOrCompute(
	nsName, key string,
	supplier func() (any, error),
) (any, error) {
	ns, err := c.lookup(nsName)
	if err != nil {
		return nil, err
	}

	if v, ok := ns.get(key, c.now()); ok {
		ns.hits.Add(1)
		cacheHits.WithLabelValues(nsName).Inc()
		return v, nil
	}

	v, err, _ := ns.flight.Do(key, func() (any, error) {
		// A coalesced follower may arrive after the leader stored the
		// value; re-check under the flight so it is not recomputed.
		if v, ok := ns.get(key, c.now()); ok {
			ns.hits.Add(1)
			cacheHits.WithLabelValues(nsName).Inc()
			return v, nil
		}

		ns.misses.Add(1)
		cacheMisses.WithLabelValues(nsName).Inc()

		v, err := supplier()
		if err != nil {
			return nil, err
		}
		ns.set(key, v, c.now())
		return v, nil
	})
	if err != nil {
		return nil, err
	}
	return v, nil
}

// Invalidate removes one entry. Unknown namespaces and keys are no-ops.
func (c *Cache) Invalidate(nsName, key string) {
	ns, err := c.lookup(nsName)
	if err != nil {
		return
	}
	ns.mu.Lock()
	defer ns.mu.Unlock()
	ns.lru.Remove(key)
}

// Clear empties one namespace. Unknown namespaces are no-ops.
func (c *Cache) Clear(nsName string) {
	ns, err := c.lookup(nsName)
	if err != nil {
		return
	}
	ns.mu.Lock()
	defer ns.mu.Unlock()
	ns.lru.Purge()
}

// ClearAll empties every namespace.
func (c *Cache) ClearAll() {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, ns := range c.namespaces {
		ns.mu.Lock()
		ns.lru.Purge()
		ns.mu.Unlock()
	}
}

// Stats returns observability counters for every namespace.
func (c *Cache) Stats() map[string]Stats {
	c.mu.RLock()
	defer c.mu.RUnlock()

	res := make(map[string]Stats, len(c.namespaces))
	for name, ns := range c.namespaces {
		ns.mu.Lock()
		entries := ns.lru.Len()
		ns.mu.Unlock()
		res[name] = Stats{
			Hits:      ns.hits.Load(),
			Misses:    ns.misses.Load(),
			Evictions: ns.evictions.Load(),
			Entries:   entries,
		}
	}
	return res
}

func (c *Cache) lookup(name string) (*namespace, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	ns, ok := c.namespaces[name]
	if !ok {
		return nil, namespaceError(name,
			fmt.Errorf("unknown cache namespace %q", name))
	}
	return ns, nil
}

// get returns a live value. Expired entries are removed on access.
func (ns *namespace) get(key string, now time.Time) (any, bool) {
	ns.mu.Lock()
	defer ns.mu.Unlock()

	e, ok := ns.lru.Get(key)
	if !ok {
		return nil, false
	}
	if now.Sub(e.storedAt) > ns.ttl {
		ns.lru.Remove(key)
		return nil, false
	}
	return e.value, true
}

func (ns *namespace) set(key string, v any, now time.Time) {
	ns.mu.Lock()
	defer ns.mu.Unlock()
	ns.lru.Add(key, entry{value: v, storedAt: now})
}

func namespaceError(name string, err error) error {
	return &gn.Error{
		Code: errcode.CacheNamespaceError,
		Msg:  "Cache namespace problem: %s",
		Vars: []any{err.Error()},
		Err:  err,
	}
}
