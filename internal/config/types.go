package config

// Variant selects the widget trigger presentation.
type Variant string

const (
	VariantFloating Variant = "floating"
	VariantMinimal  Variant = "minimal"
	VariantDefault  Variant = "default"
)

// Theme selects the widget color scheme.
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// WidgetDefaults are the server-side defaults applied when an embedding
// page omits or does not recognise a widget attribute.
type WidgetDefaults struct {
	Variant     Variant `yaml:"variant" koanf:"variant"`
	Theme       Theme   `yaml:"theme" koanf:"theme"`
	APIURL      string  `yaml:"api_url" koanf:"api_url"`
	ContainerID string  `yaml:"container_id" koanf:"container_id"`
}

// QuizConfig holds the quiz call-to-action appended to every search response.
type QuizConfig struct {
	CTA string `yaml:"cta" koanf:"cta"`
	URL string `yaml:"url" koanf:"url"`
}

// LettaConfig holds connection settings for the hosted Letta agent platform.
type LettaConfig struct {
	BaseURL   string `yaml:"base_url" koanf:"base_url"`
	AgentName string `yaml:"agent_name" koanf:"agent_name"`
}

// EmbeddingConfig holds settings for the knowledge-base embedder.
type EmbeddingConfig struct {
	Model string `yaml:"model" koanf:"model"`
}

// KnowledgeConfig controls knowledge-base ingestion for RAG search.
type KnowledgeConfig struct {
	Dir     string   `yaml:"dir" koanf:"dir"`
	Include []string `yaml:"include" koanf:"include"`
	Exclude []string `yaml:"exclude" koanf:"exclude"`
}

// Config is the top-level lizwidget configuration, corresponding to .lizwidget.yml.
type Config struct {
	Port         int             `yaml:"port" koanf:"port"`
	DataDir      string          `yaml:"data_dir" koanf:"data_dir"`
	EmbedOrigins []string        `yaml:"embed_origins" koanf:"embed_origins"`
	AllowAll     bool            `yaml:"allow_all" koanf:"allow_all"`
	Letta        LettaConfig     `yaml:"letta" koanf:"letta"`
	Widget       WidgetDefaults  `yaml:"widget" koanf:"widget"`
	Quiz         QuizConfig      `yaml:"quiz" koanf:"quiz"`
	Embedding    EmbeddingConfig `yaml:"embedding" koanf:"embedding"`
	Knowledge    KnowledgeConfig `yaml:"knowledge" koanf:"knowledge"`
}
