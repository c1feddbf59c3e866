package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
pipeline:
  product: Notion AI
  num_results: 3
  blacklist: [medium.com]
llm:
  model: test-model
search:
  provider: tavily
  tavily:
    api_key: from-file
log:
  level: debug
db:
  host: localhost
  port: 5432
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv(envTavilyKey, "")
	t.Setenv(envHFKey, "hf-key")
	t.Setenv(envLLMKey, "")

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}

	if cfg.Pipeline.Product != "Notion AI" || cfg.Pipeline.NumResults != 3 {
		t.Errorf("pipeline = %+v", cfg.Pipeline)
	}
	if cfg.Pipeline.MaxMonthsOld != 6 || cfg.Pipeline.OutputDir != "outputs" {
		t.Errorf("defaults not kept: %+v", cfg.Pipeline)
	}
	if len(cfg.Pipeline.Blacklist) != 1 || cfg.Pipeline.Blacklist[0] != "medium.com" {
		t.Errorf("blacklist = %v", cfg.Pipeline.Blacklist)
	}
	if cfg.LLM.Model != "test-model" || cfg.LLM.BaseURL != "https://router.huggingface.co/v1" {
		t.Errorf("llm = %+v", cfg.LLM)
	}
	if cfg.LLM.APIKey != "hf-key" {
		t.Errorf("llm api key = %q, want env override", cfg.LLM.APIKey)
	}
	if cfg.Search.Provider != "tavily" || cfg.Search.Tavily.APIKey != "from-file" {
		t.Errorf("search = %+v", cfg.Search)
	}
	if cfg.DB.Host != "localhost" || cfg.DB.Port != 5432 {
		t.Errorf("db = %+v", cfg.DB)
	}
}

func TestLoadConfig_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Pipeline.NumResults != 5 || cfg.Search.Provider != "serper" || cfg.Log.File != "logs/pipeline.log" {
		t.Errorf("defaults = %+v", cfg)
	}
}

func TestLoadConfig_BadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("pipeline: [unclosed"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := LoadConfig(path); err == nil {
		t.Fatal("LoadConfig returned nil error for invalid yaml")
	}
}

func TestApplyEnv_SerpAPIKeyFallsBackToSerper(t *testing.T) {
	t.Setenv(envSerperKey, "")
	t.Setenv(envSerpAPIKey, "legacy")

	cfg := Default()
	cfg.ApplyEnv()
	if cfg.Search.Serper.APIKey != "legacy" || cfg.Search.SerpAPI.APIKey != "legacy" {
		t.Errorf("search keys = %+v", cfg.Search)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr error
	}{
		{"valid", func(c *Config) {}, nil},
		{"missing product", func(c *Config) { c.Pipeline.Product = "" }, ErrMissingProduct},
		{"zero results", func(c *Config) { c.Pipeline.NumResults = 0 }, ErrInvalidNumResults},
		{"negative age", func(c *Config) { c.Pipeline.MaxMonthsOld = -1 }, ErrInvalidMaxMonthOld},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			cfg.Pipeline.Product = "ChatGPT"
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr == nil && err != nil {
				t.Errorf("Validate() = %v, want nil", err)
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestLoadConfig_EmptyBlacklist(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("pipeline:\n  blacklist: []\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if len(cfg.Pipeline.Blacklist) != 0 {
		t.Errorf("blacklist = %v, want empty", cfg.Pipeline.Blacklist)
	}
	if def := Default().Pipeline.Blacklist; len(def) != 2 {
		t.Errorf("default blacklist = %v", def)
	}
}
