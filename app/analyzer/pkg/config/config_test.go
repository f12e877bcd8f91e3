package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `provider: openai
api_key: sk-test
openai:
  model: gpt-4o-mini
log:
  level: debug
`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}

	want := &Config{
		Provider: "openai",
		APIKey:   "sk-test",
		Gemini:   LLMConfig{Model: DefaultGeminiModel},
		OpenAI:   LLMConfig{Model: "gpt-4o-mini", BaseURL: DefaultOpenAIBaseURL},
		Log:      LogConfig{Level: "debug"},
	}
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Errorf("LoadConfig() mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadConfig_Missing(t *testing.T) {
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("LoadConfig() expected error for missing file")
	}
}

func TestDefault(t *testing.T) {
	cfg := Default()
	if cfg.Provider != "gemini" || cfg.Gemini.Model != DefaultGeminiModel || cfg.OpenAI.BaseURL != DefaultOpenAIBaseURL {
		t.Errorf("Default() = %+v", cfg)
	}
}
