package config

import (
	"fmt"
	"maps"
	"slices"
	"strings"
	"time"

	"github.com/gnames/gn"
)

// Update applies a slice of Option functions to the Config. This is the
// only way to modify a Config after creation. Invalid options are
// rejected with warnings - config remains in valid state.
func (c *Config) Update(opts []Option) {
	for _, opt := range opts {
		opt(c)
	}
}

// ToOptions converts the Config to a slice of Option functions. Only
// includes persistent fields appropriate for traitstore.yaml. Excludes
// runtime-only fields (HomeDir, Import.Sources). Used for round-tripping
// traitstore.yaml <-> Config conversions.
func (c *Config) ToOptions() []Option {
	var res []Option

	if s := c.Database.Path; s != "" {
		res = append(res, OptDatabasePath(s))
	}
	if i := c.Database.MaxConns; i > 0 {
		res = append(res, OptDatabaseMaxConns(i))
	}
	if i := c.Database.BatchSize; i > 0 {
		res = append(res, OptDatabaseBatchSize(i))
	}

	if d := c.Cache.TraitTTL; d > 0 {
		res = append(res, OptCacheTraitTTL(d))
	}
	if d := c.Cache.SpeciesTTL; d > 0 {
		res = append(res, OptCacheSpeciesTTL(d))
	}
	if d := c.Cache.StatsTTL; d > 0 {
		res = append(res, OptCacheStatsTTL(d))
	}
	if i := c.Cache.MaxEntries; i > 0 {
		res = append(res, OptCacheMaxEntries(i))
	}

	if s := c.Import.FeedsFile; s != "" {
		res = append(res, OptImportFeedsFile(s))
	}

	if s := c.Log.Format; s != "" {
		res = append(res, OptLogFormat(s))
	}
	if s := c.Log.Level; s != "" {
		res = append(res, OptLogLevel(s))
	}
	if s := c.Log.Destination; s != "" {
		res = append(res, OptLogDestination(s))
	}

	if i := c.JobsNumber; i > 0 {
		res = append(res, OptJobsNumber(i))
	}
	return res
}

func isValidString(name, s string) bool {
	res := s != ""
	if !res {
		gn.Warn("<em>%s</em> cannot be empty, ignoring", name)
	}
	return res
}

func isValidInt(name string, i int) bool {
	res := i > 0
	if !res {
		gn.Warn("<em>%s</em> has to be positive number, ignoring %d", name, i)
	}
	return res
}

func isValidDuration(name string, d time.Duration) bool {
	res := d > 0
	if !res {
		gn.Warn("<em>%s</em> has to be a positive duration, ignoring %s",
			name, d)
	}
	return res
}

func isValidEnum(name, val string) bool {
	s := struct{}{}
	data := map[string]map[string]struct{}{
		"Log.Level":       {"debug": s, "info": s, "warn": s, "error": s},
		"Log.Format":      {"json": s, "text": s},
		"Log.Destination": {"stderr": s, "stdout": s},
	}
	if _, ok := data[name][val]; ok {
		return true
	}
	vals := slices.Sorted(maps.Keys(data[name]))
	var lines []string
	for _, v := range vals {
		lines = append(lines, fmt.Sprintf("  * %s", v))
	}
	gn.Warn(
		"<em>%s</em> does not support '%s' as a value. "+
			"Valid values are: \n%s\nIgnoring...",
		name, val, strings.Join(lines, "\n"),
	)
	return false
}
