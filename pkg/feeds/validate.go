package feeds

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Validate checks the manifest for fatal errors and collects warnings.
// File system checks (path existence) are deferred to the I/O layer.
func (c *FeedsConfig) Validate() error {
	if len(c.Feeds) == 0 {
		return fmt.Errorf("no feeds specified in configuration")
	}

	seen := make(map[string]bool, len(c.Feeds))
	for i := range c.Feeds {
		f := &c.Feeds[i]
		if err := f.validate(); err != nil {
			return fmt.Errorf("feed %d: %w", i+1, err)
		}
		if seen[f.Source] {
			return fmt.Errorf("feed %d: duplicate source tag %q", i+1, f.Source)
		}
		seen[f.Source] = true

		if f.Description == "" {
			c.Warnings = append(c.Warnings, ValidationWarning{
				Feed:       f.Source,
				Field:      "description",
				Message:    "feed has no description",
				Suggestion: "Add a short 'description' so import summaries are readable",
			})
		}
	}
	return nil
}

func (f *FeedConfig) validate() error {
	if f.Source == "" {
		return fmt.Errorf("source tag is required")
	}
	if strings.ContainsAny(f.Source, " \t") {
		return fmt.Errorf("source tag %q must not contain whitespace", f.Source)
	}
	if f.Kind != KindPhytoplankton && f.Kind != KindEnriched {
		return fmt.Errorf(
			"invalid kind %q: must be %q or %q",
			f.Kind, KindPhytoplankton, KindEnriched,
		)
	}
	if f.Path == "" {
		return fmt.Errorf("path is required")
	}
	return nil
}

// Select returns the feeds to import. With no names given it returns
// all enabled feeds; with names it returns the named feeds in manifest
// order, including disabled ones. Unknown names are an error.
func (c *FeedsConfig) Select(names []string) ([]FeedConfig, error) {
	if len(names) == 0 {
		var res []FeedConfig
		for _, f := range c.Feeds {
			if !f.Disabled {
				res = append(res, f)
			}
		}
		return res, nil
	}

	wanted := make(map[string]bool, len(names))
	for _, n := range names {
		wanted[n] = true
	}
	var res []FeedConfig
	for _, f := range c.Feeds {
		if wanted[f.Source] {
			res = append(res, f)
			delete(wanted, f.Source)
		}
	}
	if len(wanted) > 0 {
		var missing []string
		for n := range wanted {
			missing = append(missing, n)
		}
		return nil, fmt.Errorf("unknown feeds requested: %s",
			strings.Join(missing, ", "))
	}
	return res, nil
}

// ResolvePaths rewrites relative feed paths against the manifest's
// directory.
func (c *FeedsConfig) ResolvePaths(manifestPath string) {
	dir := filepath.Dir(manifestPath)
	for i := range c.Feeds {
		if !filepath.IsAbs(c.Feeds[i].Path) {
			c.Feeds[i].Path = filepath.Join(dir, c.Feeds[i].Path)
		}
	}
}
