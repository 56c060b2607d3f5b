// Package config handles proxy configuration loading and management.
package config

import (
	"os"
	"strconv"

	"github.com/BurntSushi/toml"
)

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port: 8787,
			AllowedOrigins: []string{
				"http://localhost:8501",
				"https://localhost:8501",
				"http://127.0.0.1:8501",
				"https://127.0.0.1:8501",
				"http://localhost",
				"https://localhost",
				"http://127.0.0.1",
				"https://127.0.0.1",
			},
		},
		Realtime: RealtimeConfig{
			Model:   "gpt-4o-realtime-preview-2024-12-17",
			BaseURL: "https://api.openai.com/v1/realtime",
		},
		Image: ImageConfig{
			Model: "dall-e-3",
		},
		Paths: PathsConfig{
			SavedDir: "scratchpad/saved",
		},
	}
}

// Load loads the configuration from the given path.
// If the file doesn't exist, returns defaults. Environment variables
// override file values in all cases.
func Load(configPath string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return applyEnv(cfg), nil
		}
		return nil, err
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	return applyEnv(cfg), nil
}

// applyEnv applies the recognized environment overrides.
func applyEnv(cfg *Config) *Config {
	if v := os.Getenv("OPENAI_API_KEY"); v != "" {
		cfg.Realtime.APIKey = v
		cfg.Image.APIKey = v
	}
	if v := os.Getenv("OPENAI_REALTIME_MODEL"); v != "" {
		cfg.Realtime.Model = v
	}
	if v := os.Getenv("OPENAI_REALTIME_URL"); v != "" {
		cfg.Realtime.BaseURL = v
	}
	if v := os.Getenv("TAVILY_API_KEY"); v != "" {
		cfg.Search.TavilyAPIKey = v
	}
	if v := os.Getenv("ALITA_REALTIME_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Server.Port = port
		}
	}
	if v := os.Getenv("ALITA_SAVED_DIR"); v != "" {
		cfg.Paths.SavedDir = v
	}
	return cfg
}

// Save saves the configuration to the given path.
func (c *Config) Save(configPath string) error {
	file, err := os.Create(configPath)
	if err != nil {
		return err
	}
	defer file.Close()

	encoder := toml.NewEncoder(file)
	return encoder.Encode(c)
}

// HasRealtimeKey reports whether the upstream voice credential is configured.
func (c *Config) HasRealtimeKey() bool {
	return c.Realtime.APIKey != ""
}

// HasTavilyKey reports whether the premium search credential is configured.
func (c *Config) HasTavilyKey() bool {
	return c.Search.TavilyAPIKey != ""
}
