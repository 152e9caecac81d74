package enrich

import (
	"context"
	"fmt"
	"testing"

	"github.com/razinkele/traitstore/pkg/traits"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubResolver struct {
	calls   int
	lastIDs []int64
	bundles map[int64]traits.Bundle
}

func (r *stubResolver) BundlesForIDs(
	_ context.Context,
	ids []int64,
) (map[int64]traits.Bundle, error) {
	r.calls++
	r.lastIDs = append([]int64{}, ids...)

	res := make(map[int64]traits.Bundle, len(ids))
	for _, id := range ids {
		res[id] = r.bundles[id]
	}
	return res, nil
}

func testBundle() traits.Bundle {
	conf := 0.9
	return traits.Bundle{
		{TraitName: "trophic_type", Value: traits.NewCategorical("AU")},
		{TraitName: "biovolume", Value: traits.NewNumeric(12.5), Confidence: &conf},
		{TraitName: "carbon_content", Value: traits.NewNumeric(0.75)},
	}
}

func TestMergeAddsDerivedColumns(t *testing.T) {
	r := &stubResolver{bundles: map[int64]traits.Bundle{
		146564: testBundle(),
	}}
	m := NewMerger(r)

	table := Table{
		Columns: []string{"aphia_id", "station"},
		Rows: [][]string{
			{"146564", "BY31"},
			{"999", "BY31"},
		},
	}

	res, err := m.Merge(context.Background(), table, "aphia_id")
	require.NoError(t, err)

	assert.Equal(t, []string{
		"aphia_id", "station",
		"has_trait_data", "trait_count", "trophic_type",
		"biovolume_um3", "carbon_pg",
	}, res.Columns)

	require.Len(t, res.Rows, 2)
	assert.Equal(t,
		[]string{"146564", "BY31", "true", "3", "AU", "12.5", "0.75"},
		res.Rows[0])
	assert.Equal(t,
		[]string{"999", "BY31", "false", "0", "", "", ""},
		res.Rows[1])
}

func TestMergeBlankAndInvalidIDs(t *testing.T) {
	r := &stubResolver{bundles: map[int64]traits.Bundle{}}
	m := NewMerger(r)

	table := Table{
		Columns: []string{"aphia_id"},
		Rows: [][]string{
			{""},
			{"not-a-number"},
			{"-3"},
		},
	}

	res, err := m.Merge(context.Background(), table, "aphia_id")
	require.NoError(t, err)

	assert.Zero(t, r.calls, "no usable ids means no store round-trip")
	for _, row := range res.Rows {
		assert.Equal(t, []string{"", "", "", "", ""}, row[1:],
			"rows without an id keep empty trait columns")
	}
}

func TestMergeShortRows(t *testing.T) {
	r := &stubResolver{bundles: map[int64]traits.Bundle{
		146564: testBundle(),
	}}
	m := NewMerger(r)

	table := Table{
		Columns: []string{"station", "aphia_id"},
		Rows: [][]string{
			{"BY31", "146564"},
			{"BY31"},
			{},
		},
	}

	res, err := m.Merge(context.Background(), table, "aphia_id")
	require.NoError(t, err)
	require.Len(t, res.Rows, 3)
	assert.Equal(t, "true", res.Rows[0][2])
	assert.Equal(t,
		[]string{"BY31", "", "", "", "", ""}, res.Rows[1],
		"a row too short to carry the id gets empty trait cells")
	assert.Equal(t,
		[]string{"", "", "", "", ""}, res.Rows[2])
}

func TestMergeResolvesUniqueIDsOnce(t *testing.T) {
	r := &stubResolver{bundles: map[int64]traits.Bundle{}}
	m := NewMerger(r)

	// 1,000 rows over 250 unique identifiers
	table := Table{Columns: []string{"id", "obs"}}
	for i := 0; i < 1000; i++ {
		table.Rows = append(table.Rows, []string{
			fmt.Sprintf("%d", i%250+1), "x",
		})
	}

	_, err := m.Merge(context.Background(), table, "id")
	require.NoError(t, err)

	assert.Equal(t, 1, r.calls)
	assert.Len(t, r.lastIDs, 250,
		"row count must not inflate the resolved id set")
}

func TestMergeSpreadsheetFloatIDs(t *testing.T) {
	r := &stubResolver{bundles: map[int64]traits.Bundle{
		146564: testBundle(),
	}}
	m := NewMerger(r)

	table := Table{
		Columns: []string{"aphia_id"},
		Rows:    [][]string{{"146564.0"}},
	}

	res, err := m.Merge(context.Background(), table, "aphia_id")
	require.NoError(t, err)
	assert.Equal(t, "true", res.Rows[0][1])
}

func TestMergeUnknownColumn(t *testing.T) {
	m := NewMerger(&stubResolver{})

	_, err := m.Merge(context.Background(),
		Table{Columns: []string{"a"}}, "aphia_id")
	assert.Error(t, err)
}
