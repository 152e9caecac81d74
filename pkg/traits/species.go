package traits

// Species is the core species record. AphiaID is the external taxonomic
// identifier (WoRMS), stable across data sources and never generated by
// this system.
type Species struct {
	AphiaID        int64
	ScientificName string
	Genus          string
	CommonName     string
	Author         string
	Source         string
}

// SpeciesMatch is a species returned by a predicate query together with
// the matching trait value.
type SpeciesMatch struct {
	Species
	TraitName string
	Value     Value
}

// Statistics summarizes the store's content by entity and by category.
type Statistics struct {
	Species          int            `json:"species"`
	Traits           int            `json:"traits"`
	TraitValues      int            `json:"trait_values"`
	Categories       int            `json:"categories"`
	SizeClasses      int            `json:"size_classes"`
	SpeciesBySource  map[string]int `json:"species_by_source"`
	TraitsByCategory map[string]int `json:"traits_by_category"`
}
