package iostore_test

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/razinkele/traitstore/internal/iodb"
	"github.com/razinkele/traitstore/internal/ioschema"
	"github.com/razinkele/traitstore/internal/iostore"
	"github.com/razinkele/traitstore/pkg/config"
	"github.com/razinkele/traitstore/pkg/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// The tests run against a real SQLite file in t.TempDir(): schema is
// created through the schema manager and fixture rows are inserted with
// plain SQL, so the read paths are exercised end to end.

func newTestStore(t *testing.T) store.Store {
	t.Helper()
	ctx := context.Background()

	cfg := config.New()
	cfg.Update([]config.Option{
		config.OptDatabasePath(filepath.Join(t.TempDir(), "traits.db")),
	})

	op := iodb.NewSQLiteOperator()
	require.NoError(t, op.Connect(ctx, cfg))
	t.Cleanup(func() { op.Close() })

	require.NoError(t, ioschema.NewManager(op).Create(ctx))
	seedFixture(t, op.DB())

	st, err := iostore.New(ctx, op)
	require.NoError(t, err)
	return st
}

func seedFixture(t *testing.T, sqlDB *sql.DB) {
	t.Helper()

	exec := func(query string, args ...any) int64 {
		res, err := sqlDB.Exec(query, args...)
		require.NoError(t, err)
		id, err := res.LastInsertId()
		require.NoError(t, err)
		return id
	}

	morph := exec(`INSERT INTO trait_categories (name, description)
		VALUES ('morphological', 'physical traits')`)
	biomass := exec(`INSERT INTO trait_categories
		(name, parent_id, description)
		VALUES ('biomass', ?, 'biomass related')`, morph)
	trophic := exec(`INSERT INTO trait_categories (name, description)
		VALUES ('trophic', 'feeding traits')`)

	insTrait := func(name string, catID any, dataType, unit string) int64 {
		return exec(`INSERT INTO traits (name, category_id, data_type, unit, description)
			VALUES (?, ?, ?, ?, '')`, name, catID, dataType, unit)
	}
	biovolume := insTrait("biovolume", biomass, "numeric", "µm³")
	carbon := insTrait("carbon_content", biomass, "numeric", "pg")
	trophicType := insTrait("trophic_type", trophic, "categorical", "")
	harmful := insTrait("is_harmful", nil, "boolean", "")

	insSpecies := func(aphiaID int64, name, genus, common, source string) int64 {
		return exec(`INSERT INTO species
			(aphia_id, scientific_name, genus, common_name, author, data_source)
			VALUES (?, ?, ?, ?, '', ?)`, aphiaID, name, genus, common, source)
	}
	tripos := insSpecies(
		146564, "Tripos muelleri", "Tripos", "", "bvol_nomp_version_2024",
	)
	alexandrium := insSpecies(
		1001, "Alexandrium ostenfeldii", "Alexandrium", "",
		"bvol_nomp_version_2024",
	)
	nodularia := insSpecies(
		1002, "Nodularia spumigena", "Nodularia", "bloom-forming cyanobacterium",
		"species_enriched",
	)

	insClass := func(speciesID int64, classNo int, rng string, min, max float64) int64 {
		return exec(`INSERT INTO size_classes
			(species_id, class_no, size_range, range_min, range_max, description)
			VALUES (?, ?, ?, ?, ?, '')`, speciesID, classNo, rng, min, max)
	}
	insNum := func(speciesID, traitID int64, val float64, classID any) {
		exec(`INSERT INTO trait_values
			(species_id, trait_id, value_numeric, size_class_id, data_source, notes)
			VALUES (?, ?, ?, ?, 'bvol_nomp_version_2024', '')`,
			speciesID, traitID, val, classID)
	}

	// Tripos: five size classes, one biovolume value each, plus carbon
	// on the first class and one trophy code.
	for classNo := 1; classNo <= 5; classNo++ {
		classID := insClass(
			tripos, classNo, "10-20", 10, 20,
		)
		insNum(tripos, biovolume, float64(classNo)*1000, classID)
		if classNo == 1 {
			insNum(tripos, carbon, 150, classID)
		}
	}
	exec(`INSERT INTO trait_values
		(species_id, trait_id, value_categorical, data_source, notes)
		VALUES (?, ?, 'AU', 'bvol_nomp_version_2024', '')`,
		tripos, trophicType)
	exec(`INSERT INTO trait_values
		(species_id, trait_id, value_boolean, data_source, notes)
		VALUES (?, ?, 1, 'species_enriched', '')`,
		tripos, harmful)

	// Alexandrium: two size classes with biovolumes inside the usual
	// query range, a heterotroph.
	c1 := insClass(alexandrium, 1, "25-40", 25, 40)
	c2 := insClass(alexandrium, 2, "40-60", 40, 60)
	insNum(alexandrium, biovolume, 1500, c1)
	insNum(alexandrium, biovolume, 2500, c2)
	exec(`INSERT INTO trait_values
		(species_id, trait_id, value_categorical, data_source, notes)
		VALUES (?, ?, 'HT', 'bvol_nomp_version_2024', '')`,
		alexandrium, trophicType)

	// Nodularia: a large autotroph without size classes. The stray
	// value_text on its biovolume row must be ignored by the decoder.
	exec(`INSERT INTO trait_values
		(species_id, trait_id, value_numeric, value_text, data_source, notes)
		VALUES (?, ?, 50000, 'fifty thousand', 'species_enriched', '')`,
		nodularia, biovolume)
	exec(`INSERT INTO trait_values
		(species_id, trait_id, value_categorical, data_source, notes)
		VALUES (?, ?, 'AU', 'species_enriched', '')`,
		nodularia, trophicType)
}

func TestSpeciesByAphiaID(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	sp, err := st.SpeciesByAphiaID(ctx, 146564)
	require.NoError(t, err)
	require.NotNil(t, sp)
	assert.Equal(t, "Tripos muelleri", sp.ScientificName)
	assert.Equal(t, "Tripos", sp.Genus)
	assert.Equal(t, "bvol_nomp_version_2024", sp.Source)

	sp, err = st.SpeciesByAphiaID(ctx, 999_999)
	require.NoError(t, err, "unknown species is not an error")
	assert.Nil(t, sp)
}

func TestSearchSpeciesByName(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	res, err := st.SearchSpeciesByName(ctx, "TRIPOS")
	require.NoError(t, err)
	require.Len(t, res, 1, "scientific name matches case-insensitively")
	assert.EqualValues(t, 146564, res[0].AphiaID)

	res, err = st.SearchSpeciesByName(ctx, "cyanobacterium")
	require.NoError(t, err)
	require.Len(t, res, 1, "common name is searched too")
	assert.EqualValues(t, 1002, res[0].AphiaID)

	res, err = st.SearchSpeciesByName(ctx, "balaenoptera")
	require.NoError(t, err)
	assert.Empty(t, res)
}

func TestTraitsForSpecies(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	bundle, err := st.TraitsForSpecies(ctx, 146564)
	require.NoError(t, err)
	// 5 biovolume + 1 carbon + 1 trophy + 1 harmful
	require.Len(t, bundle, 8)

	bvol := bundle.Trait("biovolume")
	require.Len(t, bvol, 5, "one record per size class")
	seen := make(map[float64]bool)
	for i, rec := range bvol {
		require.NotNil(t, rec.SizeClass)
		assert.Equal(t, i+1, rec.SizeClass.ClassNo)
		assert.Equal(t, "10-20", rec.SizeClass.Range)
		assert.Equal(t, "µm³", rec.Unit)
		assert.Equal(t, "biomass", rec.Category)
		v, ok := rec.Value.Numeric()
		require.True(t, ok)
		seen[v] = true
	}
	assert.Len(t, seen, 5, "each size class keeps its own value")

	trophy, ok := bundle.First("trophic_type")
	require.True(t, ok)
	assert.Nil(t, trophy.SizeClass)
	v, _ := trophy.Value.Categorical()
	assert.Equal(t, "AU", v)

	harmful, ok := bundle.First("is_harmful")
	require.True(t, ok)
	assert.Empty(t, harmful.Category, "trait without category")
	b, _ := harmful.Value.Boolean()
	assert.True(t, b)

	bundle, err = st.TraitsForSpecies(ctx, 999_999)
	require.NoError(t, err)
	assert.Empty(t, bundle, "unknown species yields empty bundle")
}

func TestDecodeUsesDeclaredType(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	bundle, err := st.TraitsForSpecies(ctx, 1002)
	require.NoError(t, err)

	rec, ok := bundle.First("biovolume")
	require.True(t, ok)
	v, isNum := rec.Value.Numeric()
	require.True(t, isNum, "numeric trait decodes from value_numeric")
	assert.Equal(t, 50_000.0, v)
	_, isText := rec.Value.Text()
	assert.False(t, isText, "populated off-type column is ignored")
}

func TestTraitsForSpeciesByCategory(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	bundle, err := st.TraitsForSpeciesByCategory(ctx, 146564, "biomass")
	require.NoError(t, err)
	assert.Len(t, bundle, 6, "5 biovolume and 1 carbon record")
	for _, rec := range bundle {
		assert.Equal(t, "biomass", rec.Category)
	}

	bundle, err = st.TraitsForSpeciesByCategory(ctx, 146564, "trophic")
	require.NoError(t, err)
	assert.Len(t, bundle, 1)

	bundle, err = st.TraitsForSpeciesByCategory(ctx, 146564, "no_such_category")
	require.NoError(t, err, "unknown category is not an error")
	assert.Empty(t, bundle)
}

func TestTraitsForSpeciesBatch(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	ids := []int64{146564, 1001, 1002, 999_999}
	batch, err := st.TraitsForSpeciesBatch(ctx, ids)
	require.NoError(t, err)
	require.Len(t, batch, 4, "every requested id is present")
	assert.Empty(t, batch[999_999], "unknown id maps to empty bundle")

	// Batch results agree with the single-species path.
	for _, id := range ids[:3] {
		single, err := st.TraitsForSpecies(ctx, id)
		require.NoError(t, err)
		assert.ElementsMatch(t, single, batch[id])
	}
}

func TestSpeciesByNumericTrait(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()
	f := func(v float64) *float64 { return &v }

	t.Run("bounded range", func(t *testing.T) {
		res, err := st.SpeciesByNumericTrait(ctx, "biovolume", f(1000), f(3000))
		require.NoError(t, err)
		require.Len(t, res, 2, "species with several matching classes appear once")
		assert.Equal(t, "Alexandrium ostenfeldii", res[0].ScientificName)
		assert.Equal(t, "Tripos muelleri", res[1].ScientificName)
		v, _ := res[1].Value.Numeric()
		assert.Equal(t, 1000.0, v, "smallest matching value is reported")
	})

	t.Run("bounds are inclusive", func(t *testing.T) {
		res, err := st.SpeciesByNumericTrait(ctx, "biovolume", f(5000), f(5000))
		require.NoError(t, err)
		require.Len(t, res, 1)
		assert.EqualValues(t, 146564, res[0].AphiaID)
	})

	t.Run("nil bound is unbounded", func(t *testing.T) {
		res, err := st.SpeciesByNumericTrait(ctx, "biovolume", f(2000), nil)
		require.NoError(t, err)
		assert.Len(t, res, 3, "Nodularia's 50000 is inside an open range")
	})

	t.Run("inverted range is an error", func(t *testing.T) {
		_, err := st.SpeciesByNumericTrait(ctx, "biovolume", f(10), f(5))
		assert.Error(t, err)
	})

	t.Run("unknown trait yields no matches", func(t *testing.T) {
		res, err := st.SpeciesByNumericTrait(ctx, "wing_span", nil, nil)
		require.NoError(t, err)
		assert.Empty(t, res)
	})
}

func TestSpeciesByCategoricalTrait(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	res, err := st.SpeciesByCategoricalTrait(ctx, "trophic_type", "AU")
	require.NoError(t, err)
	require.Len(t, res, 2)
	assert.Equal(t, "Nodularia spumigena", res[0].ScientificName)
	assert.Equal(t, "Tripos muelleri", res[1].ScientificName)

	res, err = st.SpeciesByCategoricalTrait(ctx, "trophic_type", "au")
	require.NoError(t, err)
	assert.Empty(t, res, "comparison is case-sensitive as stored")
}

func TestStatistics(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	stats, err := st.Statistics(ctx)
	require.NoError(t, err)

	assert.Equal(t, 3, stats.Species)
	assert.Equal(t, 4, stats.Traits)
	assert.Equal(t, 3, stats.Categories)
	assert.Equal(t, 7, stats.SizeClasses)
	assert.Equal(t, 13, stats.TraitValues)

	assert.Equal(t, map[string]int{
		"bvol_nomp_version_2024": 2,
		"species_enriched":       1,
	}, stats.SpeciesBySource)

	assert.Equal(t, map[string]int{
		"biomass": 2,
		"trophic": 1,
		"other":   1,
	}, stats.TraitsByCategory)
}

func TestCategories(t *testing.T) {
	st := newTestStore(t)

	idx := st.Categories()
	require.NotNil(t, idx)
	assert.Equal(t, 3, idx.Len())
	assert.True(t, idx.Exists("biomass"))

	parent, ok := idx.Parent("biomass")
	require.True(t, ok)
	assert.Equal(t, "morphological", parent.Name)
}
