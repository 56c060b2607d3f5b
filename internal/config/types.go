package config

// Config represents the proxy configuration.
type Config struct {
	Server   ServerConfig   `toml:"server"`
	Realtime RealtimeConfig `toml:"realtime"`
	Image    ImageConfig    `toml:"image"`
	Search   SearchConfig   `toml:"search"`
	Paths    PathsConfig    `toml:"paths"`
}

// ServerConfig contains HTTP listener settings.
type ServerConfig struct {
	Port           int      `toml:"port"`
	AllowedOrigins []string `toml:"allowed_origins"`
}

// RealtimeConfig configures the upstream realtime voice endpoint.
type RealtimeConfig struct {
	Model   string `toml:"model"`
	BaseURL string `toml:"base_url"`
	APIKey  string `toml:"api_key"`
}

// ImageConfig configures image generation.
type ImageConfig struct {
	Model  string `toml:"model"`
	APIKey string `toml:"api_key"`
}

// SearchConfig configures web search providers.
type SearchConfig struct {
	// DefaultProvider overrides the provider selection policy when set
	// ("tavily" or "duckduckgo"); empty means key-driven auto selection.
	DefaultProvider string `toml:"default_provider"`
	TavilyAPIKey    string `toml:"tavily_api_key"`
}

// PathsConfig contains file path settings.
type PathsConfig struct {
	// SavedDir is where file.save exports land.
	SavedDir string `toml:"saved_dir"`
}
