// Package feeds defines the schema for feeds.yaml, the manifest users
// provide to declare which trait data feeds to import. Each feed is a
// CSV export of a trait spreadsheet identified by a source tag; the tag
// later marks the rows a feed contributed, which is what makes
// per-source re-import possible.
package feeds

// Feeds loads the manifest from disk and validates it.
type Feeds interface {
	Load() (*FeedsConfig, error)
}

// Known feed kinds. The kind selects the column mapping used by the
// importer.
const (
	// KindPhytoplankton is the biovolume feed: size classes with
	// measurements, biovolume, carbon content and trophy codes.
	KindPhytoplankton = "phytoplankton"

	// KindEnriched is the species feed: ecological, behavioral and
	// trophic traits as text and categorical values.
	KindEnriched = "enriched"
)

// FeedsConfig represents the complete feeds.yaml file.
type FeedsConfig struct {
	// Feeds is the list of data feeds available for import.
	Feeds []FeedConfig `yaml:"feeds"`

	// Warnings holds non-fatal validation issues (not serialized)
	Warnings []ValidationWarning `yaml:"-"`
}

// ValidationWarning represents a non-fatal manifest issue.
type ValidationWarning struct {
	Feed       string // source tag of the feed
	Field      string // field with the issue
	Message    string // description
	Suggestion string // how to fix it
}

// FeedConfig describes a single trait data feed.
type FeedConfig struct {
	// Source is the tag stored on every row this feed contributes.
	// It must be unique within the manifest.
	Source string `yaml:"source"`

	// Kind selects the importer's column mapping, one of
	// "phytoplankton" or "enriched".
	Kind string `yaml:"kind"`

	// Path points at the CSV export of the feed. Relative paths are
	// resolved against the manifest's directory.
	Path string `yaml:"path"`

	// Description is free text shown in import summaries.
	Description string `yaml:"description,omitempty"`

	// Disabled feeds stay in the manifest but are skipped unless
	// requested by name.
	Disabled bool `yaml:"disabled,omitempty"`
}
