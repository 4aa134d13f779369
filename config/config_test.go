package config

import (
	"testing"
	"time"
)

func TestLoadConfigFromEnv(t *testing.T) {
	t.Setenv("DOSSIER_PROVIDERS_GEMINI_API_KEY", "gem-key")
	t.Setenv("DOSSIER_PROVIDERS_EXA_API_KEY", "exa-key")
	t.Setenv("DOSSIER_SERVER_ADDRESS", ":9090")

	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Server.Address != ":9090" {
		t.Fatalf("env override ignored, address=%q", cfg.Server.Address)
	}
	if cfg.Providers.Gemini.Model != "gemini-2.0-flash" {
		t.Fatalf("model default missing, got %q", cfg.Providers.Gemini.Model)
	}
	if cfg.Search.QueryDelay != 250*time.Millisecond {
		t.Fatalf("query delay default missing, got %v", cfg.Search.QueryDelay)
	}
	providers := cfg.Providers.SearchProviders()
	if len(providers) != 1 || providers[0] != "exa" {
		t.Fatalf("expected [exa], got %v", providers)
	}
}

func TestLoadConfigRequiresGeminiKey(t *testing.T) {
	t.Setenv("DOSSIER_PROVIDERS_GEMINI_API_KEY", "")
	t.Setenv("DOSSIER_PROVIDERS_EXA_API_KEY", "exa-key")

	if _, err := LoadConfig(""); err == nil {
		t.Fatal("expected error for missing gemini key")
	}
}

func TestLoadConfigRequiresSearchProvider(t *testing.T) {
	t.Setenv("DOSSIER_PROVIDERS_GEMINI_API_KEY", "gem-key")
	t.Setenv("DOSSIER_PROVIDERS_EXA_API_KEY", "")
	t.Setenv("DOSSIER_PROVIDERS_TAVILY_API_KEY", "")

	if _, err := LoadConfig(""); err == nil {
		t.Fatal("expected error when no search provider key is set")
	}
}
