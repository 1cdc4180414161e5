package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("CONFIG_FILE", filepath.Join(t.TempDir(), "missing.yaml"))
	t.Setenv("GEMINI_API_KEY", "test-key")
	t.Setenv("CHROME_PATH", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.AI.Model != "gemini-2.5-flash" {
		t.Errorf("Model = %q, want gemini-2.5-flash", cfg.AI.Model)
	}
	if cfg.AI.Temperature != 0.4 {
		t.Errorf("Temperature = %v, want 0.4", cfg.AI.Temperature)
	}
	if cfg.Server.Address != ":8080" {
		t.Errorf("Address = %q, want :8080", cfg.Server.Address)
	}
	if !cfg.HasCredential() {
		t.Error("HasCredential() = false with GEMINI_API_KEY set")
	}
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := []byte(`
ai:
  gemini_api_key: file-key
  model: gemini-2.0-pro
  temperature: 0.7
server:
  address: ":9090"
`)
	if err := os.WriteFile(path, content, 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("CONFIG_FILE", path)
	t.Setenv("GEMINI_API_KEY", "env-key")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.AI.GeminiAPIKey != "file-key" {
		t.Errorf("GeminiAPIKey = %q, want the file value", cfg.AI.GeminiAPIKey)
	}
	if cfg.AI.Model != "gemini-2.0-pro" {
		t.Errorf("Model = %q, want gemini-2.0-pro", cfg.AI.Model)
	}
	if cfg.Server.Address != ":9090" {
		t.Errorf("Address = %q, want :9090", cfg.Server.Address)
	}
}

func TestLoadMissingCredential(t *testing.T) {
	t.Setenv("CONFIG_FILE", filepath.Join(t.TempDir(), "missing.yaml"))
	t.Setenv("GEMINI_API_KEY", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v; a missing key must not fail config load", err)
	}
	if cfg.HasCredential() {
		t.Error("HasCredential() = true with no key configured")
	}
}

func TestLoadRejectsBadTemperature(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte("ai:\n  temperature: 3.5\n"), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("CONFIG_FILE", path)

	if _, err := Load(); err == nil {
		t.Error("Load() accepted temperature 3.5")
	}
}
