package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	AI     AIConfig     `yaml:"ai"`
	Server ServerConfig `yaml:"server"`
	Export ExportConfig `yaml:"export"`
}

type AIConfig struct {
	GeminiAPIKey string  `yaml:"gemini_api_key" env:"GEMINI_API_KEY"`
	Model        string  `yaml:"model"`
	Temperature  float32 `yaml:"temperature"`
}

type ServerConfig struct {
	Address string `yaml:"address"`
}

type ExportConfig struct {
	// ChromePath points at an explicit browser binary for report capture.
	// Empty means the headless driver's default lookup.
	ChromePath string `yaml:"chrome_path"`
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	var cfg Config

	configFile := os.Getenv("CONFIG_FILE")
	if configFile == "" {
		configFile = "config.yaml"
	}

	// The config file is optional: the app runs fine on env vars and
	// defaults alone.
	data, err := os.ReadFile(configFile)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to read config file %s: %w", configFile, err)
	}
	if err == nil {
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", configFile, err)
		}
	}

	if cfg.AI.GeminiAPIKey == "" {
		cfg.AI.GeminiAPIKey = os.Getenv("GEMINI_API_KEY")
	}
	if cfg.AI.Model == "" {
		cfg.AI.Model = "gemini-2.5-flash"
	}
	if cfg.AI.Temperature <= 0 {
		cfg.AI.Temperature = 0.4
	}
	if cfg.Server.Address == "" {
		cfg.Server.Address = ":8080"
	}
	if cfg.Export.ChromePath == "" {
		cfg.Export.ChromePath = os.Getenv("CHROME_PATH")
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

func (c *Config) validate() error {
	if c.AI.Temperature > 2 {
		return fmt.Errorf("ai.temperature must be at most 2, got %v", c.AI.Temperature)
	}
	return nil
}

// HasCredential reports whether the AI capability can be invoked. A
// missing key is not a load error: the input screen shows a warning and
// submission fails with a classified message instead.
func (c *Config) HasCredential() bool {
	return c.AI.GeminiAPIKey != ""
}
