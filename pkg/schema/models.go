// Package schema provides database schema models for the trait store.
// The table layout mirrors the trait ontology: species keyed by an
// external taxonomic identifier, a category tree, typed trait
// definitions, polymorphic trait values and per-species size classes.
package schema

import (
	"database/sql"
	"time"
)

// Species is a species record shared by both data feeds.
type Species struct {
	// ID is the internal surrogate key.
	ID int64 `db:"id" gorm:"column:id;primaryKey;autoIncrement"`

	// AphiaID is the external taxonomic identifier (WoRMS). It is
	// assigned by the taxonomic authority, never generated here, and
	// is unique across all data sources combined.
	AphiaID int64 `db:"aphia_id" gorm:"column:aphia_id;uniqueIndex:ux_species_aphia_id;not null;check:aphia_id > 0"`

	// ScientificName is the binomial name as given by the feed.
	ScientificName string `db:"scientific_name" gorm:"column:scientific_name"`

	// Genus of the species.
	Genus string `db:"genus" gorm:"column:genus"`

	// CommonName is a vernacular name, when the feed provides one.
	CommonName string `db:"common_name" gorm:"column:common_name"`

	// Author is the author citation of the scientific name.
	Author string `db:"author" gorm:"column:author"`

	// DataSource tags the feed this record came from.
	DataSource string `db:"data_source" gorm:"column:data_source;index:idx_species_data_source"`

	// CreatedAt records when the row was imported.
	CreatedAt time.Time `db:"created_at" gorm:"column:created_at"`
}

// TraitCategory is a node of the category tree (e.g. morphological ->
// size). ParentID is null for root categories. The tree must be
// acyclic; the store verifies this once at startup.
type TraitCategory struct {
	ID int64 `db:"id" gorm:"column:id;primaryKey;autoIncrement"`

	// Name is unique across the whole hierarchy.
	Name string `db:"name" gorm:"column:name;uniqueIndex:ux_trait_categories_name;not null"`

	// ParentID references the parent category, null for roots.
	ParentID sql.NullInt64 `db:"parent_id" gorm:"column:parent_id;index:idx_trait_categories_parent"`

	Description string `db:"description" gorm:"column:description"`
}

// Trait is a trait definition. DataType decides which value column of
// TraitValue is authoritative for this trait.
type Trait struct {
	ID int64 `db:"id" gorm:"column:id;primaryKey;autoIncrement"`

	// Name is the unique trait name, e.g. "biovolume".
	Name string `db:"name" gorm:"column:name;uniqueIndex:ux_traits_name;not null"`

	// CategoryID references the trait's category.
	CategoryID sql.NullInt64 `db:"category_id" gorm:"column:category_id;index:idx_traits_category"`

	// DataType is one of numeric, categorical, text, boolean.
	DataType string `db:"data_type" gorm:"column:data_type;not null;check:data_type IN ('numeric','categorical','text','boolean')"`

	// Unit of measurement for numeric traits, empty otherwise.
	Unit string `db:"unit" gorm:"column:unit"`

	Description string `db:"description" gorm:"column:description"`
}

// TraitValue is one measurement. Exactly one value column is populated,
// matching the owning trait's DataType. Rows are never mutated after
// import; re-import replaces the full set for a source.
type TraitValue struct {
	ID int64 `db:"id" gorm:"column:id;primaryKey;autoIncrement"`

	// SpeciesID references the measured species.
	SpeciesID int64 `db:"species_id" gorm:"column:species_id;not null;index:idx_trait_values_species_trait,priority:1"`

	// TraitID references the trait definition.
	TraitID int64 `db:"trait_id" gorm:"column:trait_id;not null;index:idx_trait_values_trait_numeric,priority:1;index:idx_trait_values_species_trait,priority:2"`

	// ValueNumeric holds the value for numeric traits. Indexed together
	// with TraitID to support range scans.
	ValueNumeric sql.NullFloat64 `db:"value_numeric" gorm:"column:value_numeric;index:idx_trait_values_trait_numeric,priority:2"`

	// ValueText holds the value for text traits.
	ValueText sql.NullString `db:"value_text" gorm:"column:value_text"`

	// ValueCategorical holds the value for categorical traits,
	// compared exactly, case-sensitive as stored.
	ValueCategorical sql.NullString `db:"value_categorical" gorm:"column:value_categorical"`

	// ValueBoolean holds the value for boolean traits.
	ValueBoolean sql.NullBool `db:"value_boolean" gorm:"column:value_boolean"`

	// SizeClassID references the size class the measurement belongs
	// to, null for size-independent traits.
	SizeClassID sql.NullInt64 `db:"size_class_id" gorm:"column:size_class_id;index:idx_trait_values_size_class"`

	// Confidence in the 0-1 range, null when the feed gives none.
	Confidence sql.NullFloat64 `db:"confidence" gorm:"column:confidence"`

	// DataSource tags the feed this measurement came from.
	DataSource string `db:"data_source" gorm:"column:data_source;index:idx_trait_values_data_source"`

	Notes string `db:"notes" gorm:"column:notes"`

	CreatedAt time.Time `db:"created_at" gorm:"column:created_at"`
}

// SizeClass is a species-specific, ordinally numbered measurement
// bucket. ClassNo is unique within a species.
type SizeClass struct {
	ID int64 `db:"id" gorm:"column:id;primaryKey;autoIncrement"`

	SpeciesID int64 `db:"species_id" gorm:"column:species_id;not null;uniqueIndex:ux_size_classes_species_no,priority:1"`

	// ClassNo is the ordinal class number, unique per species.
	ClassNo int `db:"class_no" gorm:"column:class_no;not null;uniqueIndex:ux_size_classes_species_no,priority:2"`

	// SizeRange is the verbatim free-text range, always kept. It is
	// the authoritative fallback when parsing fails.
	SizeRange string `db:"size_range" gorm:"column:size_range"`

	// RangeMin is the parsed lower bound; null when the free text is a
	// compound form that has no single numeric range.
	RangeMin sql.NullFloat64 `db:"range_min" gorm:"column:range_min"`

	// RangeMax is the parsed upper bound, null under the same rule.
	RangeMax sql.NullFloat64 `db:"range_max" gorm:"column:range_max"`

	Description string `db:"description" gorm:"column:description"`
}

// GeographicDistribution marks a species as present in an area of a
// given classification scheme (e.g. HELCOM, OSPAR).
type GeographicDistribution struct {
	ID int64 `db:"id" gorm:"column:id;primaryKey;autoIncrement"`

	SpeciesID int64 `db:"species_id" gorm:"column:species_id;not null;index:idx_geographic_species"`

	// AreaType is the area classification scheme.
	AreaType string `db:"area_type" gorm:"column:area_type"`

	// AreaValue is the presence marker or area code within the scheme.
	AreaValue string `db:"area_value" gorm:"column:area_value"`
}

// TaxonomicHierarchy stores the full rank chain for one species.
type TaxonomicHierarchy struct {
	ID int64 `db:"id" gorm:"column:id;primaryKey;autoIncrement"`

	SpeciesID int64 `db:"species_id" gorm:"column:species_id;uniqueIndex:ux_taxonomy_species;not null"`

	Kingdom   string `db:"kingdom" gorm:"column:kingdom"`
	Phylum    string `db:"phylum" gorm:"column:phylum"`
	Division  string `db:"division" gorm:"column:division"`
	Class     string `db:"class" gorm:"column:class"`
	OrderName string `db:"order_name" gorm:"column:order_name"`
	Family    string `db:"family" gorm:"column:family"`
	Genus     string `db:"genus" gorm:"column:genus"`
	Species   string `db:"species" gorm:"column:species"`

	// Rank is the taxonomic rank label of the record itself.
	Rank string `db:"rank" gorm:"column:rank"`
}

// TraitRelationship is an ontological link between two traits.
// Reserved for future reasoning; the query engine does not read it.
type TraitRelationship struct {
	ID int64 `db:"id" gorm:"column:id;primaryKey;autoIncrement"`

	TraitID1 int64 `db:"trait_id_1" gorm:"column:trait_id_1;not null;index:idx_trait_relationships_1"`
	TraitID2 int64 `db:"trait_id_2" gorm:"column:trait_id_2;not null;index:idx_trait_relationships_2"`

	RelationshipType string `db:"relationship_type" gorm:"column:relationship_type"`
	Description      string `db:"description" gorm:"column:description"`
}

// ImportRun is an audit row recorded for every import of a feed. The
// persisted counts back the idempotency check: re-running an import
// with identical input must reproduce them.
type ImportRun struct {
	ID int64 `db:"id" gorm:"column:id;primaryKey;autoIncrement"`

	// RunUUID identifies one execution of the importer.
	RunUUID string `db:"run_uuid" gorm:"column:run_uuid;not null"`

	// Source is the data-source tag of the imported feed.
	Source string `db:"source" gorm:"column:source;index:idx_import_runs_source"`

	StartedAt  time.Time `db:"started_at" gorm:"column:started_at"`
	FinishedAt time.Time `db:"finished_at" gorm:"column:finished_at"`

	// SpeciesCount, ValueCount and SizeClassCount are the row totals
	// written by the run.
	SpeciesCount   int `db:"species_count" gorm:"column:species_count"`
	ValueCount     int `db:"value_count" gorm:"column:value_count"`
	SizeClassCount int `db:"size_class_count" gorm:"column:size_class_count"`
}
