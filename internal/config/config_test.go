package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestResolveEnvVars(t *testing.T) {
	t.Setenv("DRAFTSMITH_TEST_KEY", "sk-12345")

	cases := []struct {
		in, want string
	}{
		{"${DRAFTSMITH_TEST_KEY}", "sk-12345"},
		{"prefix-${DRAFTSMITH_TEST_KEY}-suffix", "prefix-sk-12345-suffix"},
		{"no-refs", "no-refs"},
		{"", ""},
		{"${UNSET_VAR_NAME_XYZ}", ""},
	}
	for _, tc := range cases {
		if got := ResolveEnvVars(tc.in); got != tc.want {
			t.Fatalf("ResolveEnvVars(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Server.Port != 8000 {
		t.Fatalf("port = %d", cfg.Server.Port)
	}
	if cfg.LLM.Provider != "openai" || cfg.LLM.Model != "gpt-4o-mini" {
		t.Fatalf("llm defaults = %+v", cfg.LLM)
	}
	if cfg.Drafting.FormattingAssignment != "llm" {
		t.Fatalf("formatting assignment default = %q", cfg.Drafting.FormattingAssignment)
	}
	if cfg.Storage.PerRequest {
		t.Fatal("per-request storage should default off")
	}
}

func TestToProviderConfig(t *testing.T) {
	t.Setenv("PROVIDER_KEY_FOR_TEST", "sk-abc")
	cfg := &Config{LLM: LLMCfg{
		Provider:       "openrouter",
		Model:          "some/model",
		APIKey:         "${PROVIDER_KEY_FOR_TEST}",
		TimeoutSeconds: 120,
		MaxRetries:     3,
	}}
	pc := cfg.ToProviderConfig()
	if pc.APIKey != "sk-abc" {
		t.Fatalf("api key = %q", pc.APIKey)
	}
	if pc.Timeout != 120*time.Second {
		t.Fatalf("timeout = %v", pc.Timeout)
	}
	if pc.Provider != "openrouter" || pc.MaxRetries != 3 {
		t.Fatalf("provider config = %+v", pc)
	}
}

func TestWriteDefault(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := WriteDefault(path); err != nil {
		t.Fatalf("WriteDefault() error = %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	content := string(data)
	if !strings.HasPrefix(content, "# Draftsmith configuration") {
		t.Fatalf("header missing:\n%s", content)
	}
	for _, want := range []string{"llm:", "server:", "drafting:", "formatting_assignment: llm", "${OPENAI_API_KEY}"} {
		if !strings.Contains(content, want) {
			t.Fatalf("config missing %q:\n%s", want, content)
		}
	}
}
