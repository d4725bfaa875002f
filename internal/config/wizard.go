package config

import (
	"fmt"
	"net/url"
	"strconv"

	"github.com/manifoldco/promptui"
)

// RunWizard runs an interactive configuration wizard and returns the
// resulting Config. It also saves the config to .lizwidget.yml.
func RunWizard() (*Config, error) {
	fmt.Println("Welcome to lizwidget! Let's configure your widget service.")
	fmt.Println()

	cfg := DefaultConfig()

	// 1. Letta platform URL.
	lettaPrompt := promptui.Prompt{
		Label:   "Letta base URL",
		Default: cfg.Letta.BaseURL,
		Validate: func(s string) error {
			_, err := url.ParseRequestURI(s)
			return err
		},
	}
	lettaURL, err := lettaPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("letta url prompt: %w", err)
	}
	cfg.Letta.BaseURL = lettaURL

	// 2. Listen port.
	portPrompt := promptui.Prompt{
		Label:   "HTTP port",
		Default: strconv.Itoa(cfg.Port),
		Validate: func(s string) error {
			n, err := strconv.Atoi(s)
			if err != nil {
				return err
			}
			if n <= 0 || n > 65535 {
				return fmt.Errorf("port out of range")
			}
			return nil
		},
	}
	portStr, err := portPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("port prompt: %w", err)
	}
	cfg.Port, _ = strconv.Atoi(portStr)

	// 3. Default widget variant.
	variantPrompt := promptui.Select{
		Label: "Default widget variant",
		Items: []string{"default", "floating", "minimal"},
	}
	_, variantStr, err := variantPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("variant selection: %w", err)
	}
	cfg.Widget.Variant = NormalizeVariant(variantStr)

	// 4. Default theme.
	themePrompt := promptui.Select{
		Label: "Default widget theme",
		Items: []string{"light", "dark"},
	}
	_, themeStr, err := themePrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("theme selection: %w", err)
	}
	cfg.Widget.Theme = NormalizeTheme(themeStr)

	if err := cfg.Save(".lizwidget.yml"); err != nil {
		return nil, err
	}

	fmt.Println()
	fmt.Println("Configuration saved to .lizwidget.yml")
	return cfg, nil
}
