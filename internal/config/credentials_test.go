package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

// ---------------------------------------------------------------------------
// TestAPIKeyVar
// ---------------------------------------------------------------------------

func TestAPIKeyVar(t *testing.T) {
	t.Parallel()

	tests := []struct {
		provider string
		want     string
	}{
		{provider: "openai", want: "OPENAI_API_KEY"},
		{provider: "Anthropic", want: "ANTHROPIC_API_KEY"},
		{provider: "google-genai", want: "GOOGLE_GENAI_API_KEY"},
		{provider: "", want: ""},
	}

	for _, tt := range tests {

		tt := tt
		t.Run(tt.provider, func(t *testing.T) {
			t.Parallel()

			if got := APIKeyVar(tt.provider); got != tt.want {
				t.Errorf("APIKeyVar(%q) = %q, want %q", tt.provider, got, tt.want)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestResolveAPIKey
// ---------------------------------------------------------------------------

func TestResolveAPIKey(t *testing.T) {
	t.Parallel()

	lookup := MapLookup(map[string]string{"OPENAI_API_KEY": "from-env"})

	tests := []struct {
		name       string
		cfg        *Config
		wantKey    string
		wantSource string
	}{
		{
			name:       "config key wins",
			cfg:        &Config{LLM: LLMConfig{Provider: "openai", APIKey: "from-config"}},
			wantKey:    "from-config",
			wantSource: SourceConfig,
		},
		{
			name:       "falls back to provider variable",
			cfg:        &Config{LLM: LLMConfig{Provider: "openai"}},
			wantKey:    "from-env",
			wantSource: SourceEnv,
		},
		{
			name:       "unknown provider",
			cfg:        &Config{LLM: LLMConfig{Provider: "mistral"}},
			wantKey:    "",
			wantSource: SourceNone,
		},
		{
			name:       "no provider",
			cfg:        DefaultConfig(),
			wantKey:    "",
			wantSource: SourceNone,
		},
	}

	for _, tt := range tests {

		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			key, source := ResolveAPIKey(tt.cfg, lookup)
			if key != tt.wantKey || source != tt.wantSource {
				t.Errorf("ResolveAPIKey() = (%q, %q), want (%q, %q)", key, source, tt.wantKey, tt.wantSource)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestEnvLookup
// ---------------------------------------------------------------------------

// Not parallel: uses t.Setenv.
func TestEnvLookup(t *testing.T) {
	dir := t.TempDir()
	dotenv := filepath.Join(dir, ".env")
	content := "DPROC_TEST_FILE_ONLY=file\nDPROC_TEST_BOTH=file\n"
	if err := os.WriteFile(dotenv, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("DPROC_TEST_BOTH", "process")

	lookup, err := EnvLookup(dotenv)
	if err != nil {
		t.Fatalf("EnvLookup() error = %v", err)
	}

	if v, ok := lookup("DPROC_TEST_BOTH"); !ok || v != "process" {
		t.Errorf("process variable = %q, %v; want process, true", v, ok)
	}
	if v, ok := lookup("DPROC_TEST_FILE_ONLY"); !ok || v != "file" {
		t.Errorf("file variable = %q, %v; want file, true", v, ok)
	}
	if _, ok := lookup("DPROC_TEST_ABSENT"); ok {
		t.Error("absent variable reported as present")
	}
	if _, ok := os.LookupEnv("DPROC_TEST_FILE_ONLY"); ok {
		t.Error("EnvLookup must not modify the process environment")
	}
}

func TestEnvLookup_MissingFile(t *testing.T) {
	t.Parallel()

	lookup, err := EnvLookup(filepath.Join(t.TempDir(), ".env"))
	if err != nil {
		t.Fatalf("EnvLookup() error = %v", err)
	}
	if lookup == nil {
		t.Fatal("lookup is nil")
	}
}

func TestEnvLookup_MalformedFile(t *testing.T) {
	t.Parallel()

	dotenv := filepath.Join(t.TempDir(), ".env")
	if err := os.WriteFile(dotenv, []byte("BROKEN-KEY=value\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	if _, err := EnvLookup(dotenv); !errors.Is(err, ErrConfigParse) {
		t.Errorf("EnvLookup() = %v, want ErrConfigParse", err)
	}
}

// ---------------------------------------------------------------------------
// TestRedacted
// ---------------------------------------------------------------------------

func TestRedacted(t *testing.T) {
	t.Parallel()

	cfg := &Config{LLM: LLMConfig{APIKey: "sk-1234567890abcd"}, Export: ExportConfig{Formats: []string{"html"}}}
	red := cfg.Redacted()

	if red.LLM.APIKey != "****abcd" {
		t.Errorf("redacted key = %q, want ****abcd", red.LLM.APIKey)
	}
	if cfg.LLM.APIKey != "sk-1234567890abcd" {
		t.Error("Redacted() modified the original")
	}
	red.Export.Formats[0] = "pdf"
	if cfg.Export.Formats[0] != "html" {
		t.Error("Redacted() shares the formats slice")
	}

	if got := MaskSecret("short"); got != "****" {
		t.Errorf("MaskSecret(short) = %q, want ****", got)
	}
	if got := MaskSecret(""); got != "" {
		t.Errorf("MaskSecret(\"\") = %q, want empty", got)
	}
}
