// Package templates provides embedded YAML configuration templates.
package templates

import _ "embed"

// ConfigYAML contains the default traitstore.yaml template for
// application configuration.
//
//go:embed traitstore.yaml
var ConfigYAML string

// FeedsYAML contains the default feeds.yaml template describing the
// trait data feeds.
//
//go:embed feeds.yaml
var FeedsYAML string
