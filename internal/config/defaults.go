package config

// DefaultQuizCTA and DefaultQuizURL match the product defaults baked into
// the search response when the config leaves them empty.
const (
	DefaultQuizCTA = "Want more precise recommendations? Do the quiz!"
	DefaultQuizURL = "/quiz"
)

// DefaultKnowledgeIncludes are the glob patterns ingested from the
// knowledge directory by default.
var DefaultKnowledgeIncludes = []string{"**/*.md", "**/*.txt"}

// DefaultKnowledgeExcludes are glob patterns skipped during ingestion.
var DefaultKnowledgeExcludes = []string{
	".git/**",
	"node_modules/**",
	"**/*.min.*",
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Port:    8080,
		DataDir: ".lizwidget",
		EmbedOrigins: []string{
			"http://localhost:3000",
			"http://localhost:5173",
			"http://localhost:5174",
		},
		Letta: LettaConfig{
			BaseURL:   "http://localhost:8283",
			AgentName: "beauty_search_agent",
		},
		Widget: WidgetDefaults{
			Variant:     VariantDefault,
			Theme:       ThemeLight,
			APIURL:      "http://localhost:8080",
			ContainerID: "liz-widget-root",
		},
		Quiz: QuizConfig{
			CTA: DefaultQuizCTA,
			URL: DefaultQuizURL,
		},
		Embedding: EmbeddingConfig{
			Model: "text-embedding-3-small",
		},
		Knowledge: KnowledgeConfig{
			Dir:     "knowledge",
			Include: DefaultKnowledgeIncludes,
			Exclude: DefaultKnowledgeExcludes,
		},
	}
}

// NormalizeVariant maps an arbitrary string to a supported Variant,
// falling back to the default rather than propagating invalid state.
func NormalizeVariant(s string) Variant {
	switch Variant(s) {
	case VariantFloating, VariantMinimal, VariantDefault:
		return Variant(s)
	default:
		return VariantDefault
	}
}

// NormalizeTheme maps an arbitrary string to a supported Theme,
// falling back to light.
func NormalizeTheme(s string) Theme {
	switch Theme(s) {
	case ThemeLight, ThemeDark:
		return Theme(s)
	default:
		return ThemeLight
	}
}
