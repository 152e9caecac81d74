package batch

import (
	"context"
	"testing"

	"github.com/razinkele/traitstore/pkg/store"
	"github.com/razinkele/traitstore/pkg/traits"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// countingStore records every batch call and serves bundles from a
// fixed map.
type countingStore struct {
	calls   int
	chunks  [][]int64
	bundles map[int64]traits.Bundle
}

func (s *countingStore) TraitsForSpeciesBatch(
	_ context.Context,
	ids []int64,
) (map[int64]traits.Bundle, error) {
	s.calls++
	s.chunks = append(s.chunks, append([]int64{}, ids...))

	res := make(map[int64]traits.Bundle, len(ids))
	for _, id := range ids {
		res[id] = s.bundles[id]
	}
	return res, nil
}

func bundleWith(trait string) traits.Bundle {
	return traits.Bundle{{TraitName: trait, Value: traits.NewNumeric(1)}}
}

func TestNewEngineValidation(t *testing.T) {
	st := &countingStore{}

	tests := []struct {
		msg     string
		size    int
		wantErr bool
	}{
		{"zero size", 0, true},
		{"negative size", -5, true},
		{"over ceiling", store.MaxQueryParams + 1, true},
		{"minimum", 1, false},
		{"ceiling", store.MaxQueryParams, false},
	}

	for _, v := range tests {
		_, err := NewEngine(st, v.size)
		if v.wantErr {
			assert.Error(t, err, v.msg)
		} else {
			assert.NoError(t, err, v.msg)
		}
	}
}

func TestBundlesForIDsChunking(t *testing.T) {
	st := &countingStore{bundles: map[int64]traits.Bundle{}}
	eng, err := NewEngine(st, 10)
	require.NoError(t, err)

	ids := make([]int64, 0, 25)
	for i := int64(1); i <= 25; i++ {
		ids = append(ids, i)
	}

	res, err := eng.BundlesForIDs(context.Background(), ids)
	require.NoError(t, err)

	// ceil(25/10) store calls
	assert.Equal(t, 3, st.calls)
	for _, chunk := range st.chunks {
		assert.LessOrEqual(t, len(chunk), 10)
	}
	assert.Len(t, res, 25)
}

func TestBundlesForIDsDedupes(t *testing.T) {
	st := &countingStore{bundles: map[int64]traits.Bundle{}}
	eng, err := NewEngine(st, 100)
	require.NoError(t, err)

	ids := []int64{7, 7, 7, 8, 8, 9}
	res, err := eng.BundlesForIDs(context.Background(), ids)
	require.NoError(t, err)

	assert.Equal(t, 1, st.calls)
	assert.Len(t, st.chunks[0], 3, "duplicates must collapse before chunking")
	assert.Len(t, res, 3)
}

func TestBundlesForIDsCompleteMapping(t *testing.T) {
	st := &countingStore{bundles: map[int64]traits.Bundle{
		1: bundleWith("biovolume"),
	}}
	eng, err := NewEngine(st, 100)
	require.NoError(t, err)

	res, err := eng.BundlesForIDs(context.Background(), []int64{1, 2, 3})
	require.NoError(t, err)

	require.Len(t, res, 3)
	assert.Len(t, res[1], 1)

	// ids without data are present with an empty bundle, not absent
	for _, id := range []int64{2, 3} {
		bundle, ok := res[id]
		assert.True(t, ok)
		assert.Empty(t, bundle)
	}
}

func TestBundlesForIDsEmptyInput(t *testing.T) {
	st := &countingStore{}
	eng, err := NewEngine(st, 100)
	require.NoError(t, err)

	res, err := eng.BundlesForIDs(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, res)
	assert.Zero(t, st.calls)
}
