package config

import (
	"fmt"
	"net/url"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	yamlv3 "gopkg.in/yaml.v3"
)

// Load reads configuration from the given YAML file, then overlays
// environment variable overrides (LIZWIDGET_*).
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	// Start from defaults.
	cfg := DefaultConfig()

	// Load YAML file if it exists.
	if _, err := os.Stat(path); err == nil {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("accessing config %s: %w", path, err)
	}

	// Overlay environment variables: LIZWIDGET_PORT -> port,
	// LIZWIDGET_LETTA_BASE_URL -> letta.base_url, etc.
	if err := k.Load(env.Provider("LIZWIDGET_", ".", func(s string) string {
		key := strings.ToLower(strings.TrimPrefix(s, "LIZWIDGET_"))
		for _, prefix := range []string{"letta_", "widget_", "quiz_", "embedding_", "knowledge_"} {
			if strings.HasPrefix(key, prefix) {
				return strings.TrimSuffix(prefix, "_") + "." + strings.TrimPrefix(key, prefix)
			}
		}
		return key
	}), nil); err != nil {
		return nil, fmt.Errorf("loading env overrides: %w", err)
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}

	// Widget enums are forgiving: unrecognized values collapse to the
	// default instead of failing Validate.
	cfg.Widget.Variant = NormalizeVariant(string(cfg.Widget.Variant))
	cfg.Widget.Theme = NormalizeTheme(string(cfg.Widget.Theme))

	return cfg, nil
}

// Save writes the configuration to the given YAML file path.
func (c *Config) Save(path string) error {
	data, err := yamlv3.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}
	return nil
}

// Validate checks that the configuration contains valid values.
func (c *Config) Validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("port must be between 1 and 65535, got %d", c.Port)
	}

	if c.Letta.BaseURL == "" {
		return fmt.Errorf("letta.base_url is required")
	}
	if _, err := url.ParseRequestURI(c.Letta.BaseURL); err != nil {
		return fmt.Errorf("invalid letta.base_url %q: %w", c.Letta.BaseURL, err)
	}

	if c.Letta.AgentName == "" {
		return fmt.Errorf("letta.agent_name is required")
	}

	if c.DataDir == "" {
		return fmt.Errorf("data_dir is required")
	}

	if c.Widget.APIURL != "" {
		if _, err := url.ParseRequestURI(c.Widget.APIURL); err != nil {
			return fmt.Errorf("invalid widget.api_url %q: %w", c.Widget.APIURL, err)
		}
	}

	return nil
}
