// Package widget implements the embeddable beauty-search widget shell:
// attribute-driven configuration, an isolated rendering boundary with a
// fallback style resolution chain, and the open/close lifecycle of the
// search overlay.
package widget

import (
	"github.com/noli-ai/liz-widget/internal/config"
)

// Config is the immutable per-shell configuration. Changing it requires
// creating a new shell.
type Config struct {
	Variant     config.Variant
	APIURL      string
	Theme       config.Theme
	ContainerID string
}

// Attribute names recognised by ParseConfig, matching the custom element
// attributes and the data-* attributes of the declarative injector.
const (
	AttrVariant     = "variant"
	AttrAPIURL      = "api-url"
	AttrTheme       = "theme"
	AttrContainerID = "container-id"
)

// ParseConfig builds a Config from an attribute map, overlaying the given
// defaults. Absent or unrecognised enum values fall back to the defaults;
// ParseConfig never fails.
func ParseConfig(attrs map[string]string, defaults config.WidgetDefaults) Config {
	cfg := Config{
		Variant:     config.NormalizeVariant(string(defaults.Variant)),
		Theme:       config.NormalizeTheme(string(defaults.Theme)),
		APIURL:      defaults.APIURL,
		ContainerID: defaults.ContainerID,
	}
	if cfg.ContainerID == "" {
		cfg.ContainerID = "liz-widget-root"
	}

	if v, ok := attrs[AttrVariant]; ok && v != "" {
		cfg.Variant = config.NormalizeVariant(v)
	}
	if v, ok := attrs[AttrTheme]; ok && v != "" {
		cfg.Theme = config.NormalizeTheme(v)
	}
	if v, ok := attrs[AttrAPIURL]; ok && v != "" {
		cfg.APIURL = v
	}
	if v, ok := attrs[AttrContainerID]; ok && v != "" {
		cfg.ContainerID = v
	}

	return cfg
}
