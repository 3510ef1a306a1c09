package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"unicode"

	"github.com/joho/godotenv"
)

// DotEnvFile is the file EnvLookup reads next to the working directory.
const DotEnvFile = ".env"

// Credential sources reported by ResolveAPIKey.
const (
	SourceNone   = "none"
	SourceConfig = "config"
	SourceEnv    = "env"
)

// Lookup resolves a variable name the way os.LookupEnv does.
type Lookup func(key string) (string, bool)

// EnvLookup returns a Lookup over the process environment, falling back to
// the variables of dotenvPath. The file is read, never applied: the process
// environment is left untouched. A missing file is not an error.
func EnvLookup(dotenvPath string) (Lookup, error) {
	fileVars := map[string]string{}
	if dotenvPath != "" {
		vars, err := godotenv.Read(dotenvPath)
		switch {
		case err == nil:
			fileVars = vars
		case errors.Is(err, fs.ErrNotExist):
		default:
			return nil, fmt.Errorf("%w: %s: %v", ErrConfigParse, dotenvPath, err)
		}
	}

	return func(key string) (string, bool) {
		if v, ok := os.LookupEnv(key); ok {
			return v, true
		}
		v, ok := fileVars[key]
		return v, ok
	}, nil
}

// MapLookup adapts a fixed map to a Lookup.
func MapLookup(vars map[string]string) Lookup {
	return func(key string) (string, bool) {
		v, ok := vars[key]
		return v, ok
	}
}

// APIKeyVar returns the variable holding the key for provider:
// "openai" gives OPENAI_API_KEY, "google-genai" gives GOOGLE_GENAI_API_KEY.
func APIKeyVar(provider string) string {
	if provider == "" {
		return ""
	}
	name := strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return unicode.ToUpper(r)
		}
		return '_'
	}, provider)
	return name + "_API_KEY"
}

// ResolveAPIKey returns the LLM API key and where it came from.
// llm.apiKey wins; otherwise {PROVIDER}_API_KEY is looked up.
func ResolveAPIKey(cfg *Config, lookup Lookup) (key, source string) {
	if cfg.LLM.APIKey != "" {
		return cfg.LLM.APIKey, SourceConfig
	}
	if name := APIKeyVar(cfg.LLM.Provider); name != "" && lookup != nil {
		if v, ok := lookup(name); ok && v != "" {
			return v, SourceEnv
		}
	}
	return "", SourceNone
}

// MaskSecret hides all but the last four characters of s.
func MaskSecret(s string) string {
	if s == "" {
		return ""
	}
	if len(s) <= 8 {
		return "****"
	}
	return "****" + s[len(s)-4:]
}

// Redacted returns a copy of c safe to print.
func (c *Config) Redacted() *Config {
	out := *c
	out.Export.Formats = append([]string(nil), c.Export.Formats...)
	out.LLM.APIKey = MaskSecret(c.LLM.APIKey)
	return &out
}
