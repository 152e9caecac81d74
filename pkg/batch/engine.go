// Package batch collapses per-species trait lookups over large
// identifier sets into a bounded number of store round-trips.
//
// Given N identifiers and a chunk size K, the engine issues exactly
// ceil(N/K) batch calls instead of N point lookups, which is what keeps
// enrichment of occurrence datasets from degenerating into an N+1
// query storm.
package batch

import (
	"context"
	"fmt"

	"github.com/gnames/gn"
	"github.com/razinkele/traitstore/pkg/errcode"
	"github.com/razinkele/traitstore/pkg/store"
	"github.com/razinkele/traitstore/pkg/traits"
)

// BatchStore is the slice of the store the engine needs. The production
// implementation is internal/iostore; tests substitute a counting stub.
type BatchStore interface {
	TraitsForSpeciesBatch(ctx context.Context, aphiaIDs []int64) (map[int64]traits.Bundle, error)
}

// Engine partitions identifier sets into store-safe chunks and merges
// the partial mappings back into one complete result.
type Engine struct {
	store     BatchStore
	chunkSize int
}

// NewEngine creates an engine with the given chunk size. The size must
// be positive and must not exceed the store's parameter ceiling.
func NewEngine(s BatchStore, chunkSize int) (*Engine, error) {
	if chunkSize <= 0 || chunkSize > store.MaxQueryParams {
		return nil, &gn.Error{
			Code: errcode.ValidationChunkError,
			Msg:  "Chunk size must be between 1 and %d, got %d",
			Vars: []any{store.MaxQueryParams, chunkSize},
			Err: fmt.Errorf("chunk size %d out of range [1, %d]",
				chunkSize, store.MaxQueryParams),
		}
	}
	return &Engine{store: s, chunkSize: chunkSize}, nil
}

// ChunkSize returns the configured chunk size.
func (e *Engine) ChunkSize() int {
	return e.chunkSize
}

// BundlesForIDs returns a trait bundle for every requested identifier.
// Duplicates are collapsed before chunking. Ids without trait data map
// to an empty bundle rather than a missing key, so callers can tell "no
// traits" apart from "id not requested".
func (e *Engine) BundlesForIDs(
	ctx context.Context,
	aphiaIDs []int64,
) (map[int64]traits.Bundle, error) {
	unique := dedupe(aphiaIDs)

	res := make(map[int64]traits.Bundle, len(unique))
	for _, id := range unique {
		res[id] = traits.Bundle{}
	}

	for start := 0; start < len(unique); start += e.chunkSize {
		end := min(start+e.chunkSize, len(unique))

		part, err := e.store.TraitsForSpeciesBatch(ctx, unique[start:end])
		if err != nil {
			return nil, err
		}
		for id, bundle := range part {
			if len(bundle) > 0 {
				res[id] = bundle
			}
		}
	}

	return res, nil
}

// dedupe collapses duplicates preserving first-seen order.
func dedupe(ids []int64) []int64 {
	seen := make(map[int64]bool, len(ids))
	res := make([]int64, 0, len(ids))
	for _, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true
		res = append(res, id)
	}
	return res
}
