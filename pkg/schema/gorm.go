package schema

import (
	"gorm.io/gorm"
)

// TableName overrides for models whose pluralized default does not
// match the historical table names.
func (Species) TableName() string                { return "species" }
func (TraitCategory) TableName() string          { return "trait_categories" }
func (Trait) TableName() string                  { return "traits" }
func (TraitValue) TableName() string             { return "trait_values" }
func (SizeClass) TableName() string              { return "size_classes" }
func (GeographicDistribution) TableName() string { return "geographic_distribution" }
func (TaxonomicHierarchy) TableName() string     { return "taxonomic_hierarchy" }
func (TraitRelationship) TableName() string      { return "trait_relationships" }
func (ImportRun) TableName() string              { return "import_runs" }

// AllModels returns all schema models for GORM AutoMigrate.
func AllModels() []interface{} {
	return []interface{}{
		&Species{},
		&TraitCategory{},
		&Trait{},
		&TraitValue{},
		&SizeClass{},
		&GeographicDistribution{},
		&TaxonomicHierarchy{},
		&TraitRelationship{},
		&ImportRun{},
	}
}

// Migrate runs GORM AutoMigrate to create or update the schema.
// AutoMigrate is idempotent: it only adds missing tables, columns and
// indexes, so running it against a populated store is safe.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(AllModels()...)
}
