// Package traitstore is the consumer-facing surface of the trait
// reference store. Client fronts the durable store with a namespace
// TTL cache and the batch query engine; every consumer receives the
// same explicitly constructed Client instead of reaching for a hidden
// process-wide handle.
package traitstore

import (
	"context"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/razinkele/traitstore/pkg/batch"
	"github.com/razinkele/traitstore/pkg/cache"
	"github.com/razinkele/traitstore/pkg/config"
	"github.com/razinkele/traitstore/pkg/store"
	"github.com/razinkele/traitstore/pkg/traits"
)

// Cache namespaces. TTLs come from config; trait bundles change only
// on import so they live longest, statistics are cheapest to recompute
// so they live shortest.
const (
	NsTraitBundle   = "trait-bundle"
	NsSpeciesLookup = "species-lookup"
	NsStatistics    = "statistics"
)

// Client is the cache-fronted trait store. It is safe for concurrent
// use.
type Client struct {
	store  store.Store
	cache  *cache.Cache
	engine *batch.Engine
}

// NewClient builds a client over an already connected store.
func NewClient(cfg *config.Config, st store.Store) (*Client, error) {
	engine, err := batch.NewEngine(st, store.MaxQueryParams)
	if err != nil {
		return nil, err
	}

	c := cache.New()
	maxEntries := cfg.Cache.MaxEntries
	for _, ns := range []struct {
		name string
		ttl  time.Duration
	}{
		{NsTraitBundle, cfg.Cache.TraitTTL},
		{NsSpeciesLookup, cfg.Cache.SpeciesTTL},
		{NsStatistics, cfg.Cache.StatsTTL},
	} {
		if err := c.Register(ns.name, ns.ttl, maxEntries); err != nil {
			return nil, err
		}
	}

	return &Client{store: st, cache: c, engine: engine}, nil
}

// TraitsForSpecies returns the cached trait bundle for one species.
func (c *Client) TraitsForSpecies(
	ctx context.Context,
	aphiaID int64,
) (traits.Bundle, error) {
	key := "species:" + strconv.FormatInt(aphiaID, 10)
	v, err := c.cache.GetOrCompute(NsTraitBundle, key, func() (any, error) {
		return c.store.TraitsForSpecies(ctx, aphiaID)
	})
	if err != nil {
		return nil, err
	}
	return v.(traits.Bundle), nil
}

// TraitsForSpeciesByCategory returns the species' bundle narrowed to
// one category.
func (c *Client) TraitsForSpeciesByCategory(
	ctx context.Context,
	aphiaID int64,
	category string,
) (traits.Bundle, error) {
	key := "species:" + strconv.FormatInt(aphiaID, 10) + ":cat:" + category
	v, err := c.cache.GetOrCompute(NsTraitBundle, key, func() (any, error) {
		return c.store.TraitsForSpeciesByCategory(ctx, aphiaID, category)
	})
	if err != nil {
		return nil, err
	}
	return v.(traits.Bundle), nil
}

// BundlesForIDs resolves a whole identifier set to bundles through the
// batch engine. The cache key is the set's signature, so repeated
// enrichment of the same dataset within the TTL costs no store calls.
func (c *Client) BundlesForIDs(
	ctx context.Context,
	aphiaIDs []int64,
) (map[int64]traits.Bundle, error) {
	v, err := c.cache.GetOrCompute(
		NsTraitBundle,
		batchKey(aphiaIDs),
		func() (any, error) {
			return c.engine.BundlesForIDs(ctx, aphiaIDs)
		},
	)
	if err != nil {
		return nil, err
	}
	return v.(map[int64]traits.Bundle), nil
}

// SpeciesByAphiaID returns the species record for an external
// identifier, or nil when unknown.
func (c *Client) SpeciesByAphiaID(
	ctx context.Context,
	aphiaID int64,
) (*traits.Species, error) {
	key := "aphia:" + strconv.FormatInt(aphiaID, 10)
	v, err := c.cache.GetOrCompute(NsSpeciesLookup, key, func() (any, error) {
		return c.store.SpeciesByAphiaID(ctx, aphiaID)
	})
	if err != nil {
		return nil, err
	}
	return v.(*traits.Species), nil
}

// SearchSpeciesByName finds species by scientific or common name
// substring, case-insensitively.
func (c *Client) SearchSpeciesByName(
	ctx context.Context,
	name string,
) ([]traits.Species, error) {
	key := "search:" + strings.ToLower(strings.TrimSpace(name))
	v, err := c.cache.GetOrCompute(NsSpeciesLookup, key, func() (any, error) {
		return c.store.SearchSpeciesByName(ctx, name)
	})
	if err != nil {
		return nil, err
	}
	return v.([]traits.Species), nil
}

// SpeciesByNumericTrait returns species with at least one value of the
// named trait inside the inclusive [min, max] range.
func (c *Client) SpeciesByNumericTrait(
	ctx context.Context,
	trait string,
	min, max *float64,
) ([]traits.SpeciesMatch, error) {
	key := "range:" + trait + ":" + boundKey(min) + ":" + boundKey(max)
	v, err := c.cache.GetOrCompute(NsSpeciesLookup, key, func() (any, error) {
		return c.store.SpeciesByNumericTrait(ctx, trait, min, max)
	})
	if err != nil {
		return nil, err
	}
	return v.([]traits.SpeciesMatch), nil
}

// SpeciesByCategoricalTrait returns species with at least one value of
// the named trait exactly equal to value.
func (c *Client) SpeciesByCategoricalTrait(
	ctx context.Context,
	trait, value string,
) ([]traits.SpeciesMatch, error) {
	key := "equal:" + trait + ":" + value
	v, err := c.cache.GetOrCompute(NsSpeciesLookup, key, func() (any, error) {
		return c.store.SpeciesByCategoricalTrait(ctx, trait, value)
	})
	if err != nil {
		return nil, err
	}
	return v.([]traits.SpeciesMatch), nil
}

// Statistics returns database-wide counts.
func (c *Client) Statistics(ctx context.Context) (*traits.Statistics, error) {
	v, err := c.cache.GetOrCompute(NsStatistics, "global", func() (any, error) {
		return c.store.Statistics(ctx)
	})
	if err != nil {
		return nil, err
	}
	return v.(*traits.Statistics), nil
}

// Categories exposes the in-memory category hierarchy. It is built at
// store construction and never cached.
func (c *Client) Categories() *traits.CategoryIndex {
	return c.store.Categories()
}

// InvalidateAll empties every cache namespace. Call after an import so
// readers do not serve pre-import data for a full TTL.
func (c *Client) InvalidateAll() {
	c.cache.ClearAll()
}

// CacheStats reports per-namespace hit, miss and eviction counters.
func (c *Client) CacheStats() map[string]cache.Stats {
	return c.cache.Stats()
}

// batchKey produces a stable signature for an identifier set: order
// and duplicates do not change the key.
func batchKey(ids []int64) string {
	unique := make(map[int64]bool, len(ids))
	for _, id := range ids {
		unique[id] = true
	}
	sorted := make([]int64, 0, len(unique))
	for id := range unique {
		sorted = append(sorted, id)
	}
	slices.Sort(sorted)

	var b strings.Builder
	b.WriteString("batch:")
	for i, id := range sorted {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(strconv.FormatInt(id, 10))
	}
	return b.String()
}

func boundKey(b *float64) string {
	if b == nil {
		return "nil"
	}
	return strconv.FormatFloat(*b, 'g', -1, 64)
}
