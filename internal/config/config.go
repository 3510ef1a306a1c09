// Package config loads and validates the dproc configuration file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/alnah/go-mdexport/internal/fileutil"
	"github.com/alnah/go-mdexport/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrInvalidConfig   = errors.New("invalid config")
	ErrFieldTooLong    = errors.New("field exceeds maximum length")
)

// Field length limits.
const (
	MaxProviderLength = 50
	MaxModelLength    = 100
	MaxAPIKeyLength   = 512
	MaxPathLength     = 4096
	MaxTitleLength    = 200
	MaxAuthorLength   = 100
	MaxDateLength     = 50
)

// AppDirName is the directory name used under the user config directory.
const AppDirName = "dproc"

// Known export formats, mirrored here so config validation does not depend
// on the library package.
var knownFormats = map[string]bool{"html": true, "pdf": true, "mdx": true}

// Config holds the CLI configuration. The llm, defaultOutputDir and
// lastUsedBundle keys keep the layout of the legacy ~/.dproc/config.json.
type Config struct {
	LLM              LLMConfig     `yaml:"llm" json:"llm"`
	DefaultOutputDir string        `yaml:"defaultOutputDir" json:"defaultOutputDir"`
	LastUsedBundle   string        `yaml:"lastUsedBundle" json:"lastUsedBundle"`
	Export           ExportConfig  `yaml:"export" json:"export"`
	Assets           AssetsConfig  `yaml:"assets" json:"assets"`
	Browser          BrowserConfig `yaml:"browser" json:"browser"`

	// Path is the file the config was read from; empty for defaults.
	Path string `yaml:"-" json:"-"`
}

// LLMConfig identifies the model provider used by report generation.
type LLMConfig struct {
	Provider string `yaml:"provider" json:"provider"`
	Model    string `yaml:"model" json:"model"`
	APIKey   string `yaml:"apiKey" json:"apiKey"`
}

// ExportConfig holds defaults for the export command. Flags override them.
type ExportConfig struct {
	Title   string   `yaml:"title" json:"title"`
	Author  string   `yaml:"author" json:"author"`
	TOC     bool     `yaml:"toc" json:"toc"`
	Date    string   `yaml:"date" json:"date"`       // see dateutil.Resolve
	Formats []string `yaml:"formats" json:"formats"` // used when no format flag is given
	Timeout string   `yaml:"timeout" json:"timeout"` // Go duration, e.g. "45s"
}

// AssetsConfig defines asset loading options.
type AssetsConfig struct {
	BasePath string `yaml:"basePath" json:"basePath"` // Empty = use embedded assets
}

// BrowserConfig defines headless Chrome launch options.
type BrowserConfig struct {
	Bin       string `yaml:"bin" json:"bin"` // Empty = auto-detect or download
	NoSandbox bool   `yaml:"noSandbox" json:"noSandbox"`
}

// DefaultConfig returns a configuration with every option unset.
func DefaultConfig() *Config {
	return &Config{}
}

// TimeoutDuration parses Export.Timeout. An empty value yields 0.
func (c *Config) TimeoutDuration() (time.Duration, error) {
	if c.Export.Timeout == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(c.Export.Timeout)
	if err != nil {
		return 0, fmt.Errorf("%w: export.timeout: %v", ErrInvalidConfig, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("%w: export.timeout: must be positive, got %s", ErrInvalidConfig, d)
	}
	return d, nil
}

// Validate checks field lengths and enumerated values.
func (c *Config) Validate() error {
	fields := []struct {
		name  string
		value string
		max   int
	}{
		{"llm.provider", c.LLM.Provider, MaxProviderLength},
		{"llm.model", c.LLM.Model, MaxModelLength},
		{"llm.apiKey", c.LLM.APIKey, MaxAPIKeyLength},
		{"defaultOutputDir", c.DefaultOutputDir, MaxPathLength},
		{"lastUsedBundle", c.LastUsedBundle, MaxPathLength},
		{"export.title", c.Export.Title, MaxTitleLength},
		{"export.author", c.Export.Author, MaxAuthorLength},
		{"export.date", c.Export.Date, MaxDateLength},
		{"assets.basePath", c.Assets.BasePath, MaxPathLength},
		{"browser.bin", c.Browser.Bin, MaxPathLength},
	}
	for _, f := range fields {
		if err := validateFieldLength(f.name, f.value, f.max); err != nil {
			return err
		}
	}

	for i, f := range c.Export.Formats {
		if !knownFormats[strings.ToLower(f)] {
			return fmt.Errorf("%w: export.formats[%d]: unknown format %q (must be html, pdf, or mdx)", ErrInvalidConfig, i, f)
		}
	}

	if _, err := c.TimeoutDuration(); err != nil {
		return err
	}

	return nil
}

// validateFieldLength checks if a field exceeds its maximum allowed length.
func validateFieldLength(fieldName, value string, maxLength int) error {
	if len(value) > maxLength {
		return fmt.Errorf("%w: %s (%d chars, max %d)", ErrFieldTooLong, fieldName, len(value), maxLength)
	}
	return nil
}

// Load loads configuration from a file path or config name.
// If nameOrPath contains a path separator, it's treated as a file path.
// Otherwise, it's treated as a config name and searched in standard locations.
// Returns error if the file is not found (no silent fallback).
func Load(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	configPath := nameOrPath
	if !fileutil.IsFilePath(nameOrPath) {
		var err error
		configPath, err = resolveConfigPath(nameOrPath)
		if err != nil {
			return nil, err
		}
	}

	return loadFile(configPath)
}

// LoadDefault loads the first existing file among DefaultSearchPaths.
// When none exists it returns DefaultConfig without error.
func LoadDefault() (*Config, error) {
	return LoadFirst(DefaultSearchPaths())
}

// LoadFirst loads the first existing file in paths, or DefaultConfig when
// none exists.
func LoadFirst(paths []string) (*Config, error) {
	for _, p := range paths {
		if fileutil.FileExists(p) {
			return loadFile(p)
		}
	}
	return DefaultConfig(), nil
}

// DefaultSearchPaths lists the files LoadDefault looks at, in order:
// ./dproc.yaml, ./dproc.yml, {UserConfigDir}/dproc/config.yaml|yml and the
// legacy ~/.dproc/config.json. JSON is a subset of YAML, so the legacy file
// is parsed by the same decoder.
func DefaultSearchPaths() []string {
	paths := []string{AppDirName + ".yaml", AppDirName + ".yml"}

	if dir, err := os.UserConfigDir(); err == nil {
		paths = append(paths,
			filepath.Join(dir, AppDirName, "config.yaml"),
			filepath.Join(dir, AppDirName, "config.yml"),
		)
	}
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, "."+AppDirName, "config.json"))
	}

	return paths
}

func loadFile(configPath string) (*Config, error) {
	data, err := os.ReadFile(configPath) // #nosec G304 -- config path is user-provided
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	// Legacy JSON files may carry keys this version no longer reads.
	decode := yamlutil.DecodeStrict
	if strings.EqualFold(filepath.Ext(configPath), ".json") {
		decode = yamlutil.Decode
	}

	cfg := DefaultConfig()
	if err := decode(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrConfigParse, configPath, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	cfg.Path = configPath
	return cfg, nil
}

// resolveConfigPath searches for a config file by name in standard locations.
// Tries extensions in order: .yaml, .yml
// Tries locations in order: current directory, {UserConfigDir}/dproc/
func resolveConfigPath(name string) (string, error) {
	extensions := []string{".yaml", ".yml"}
	triedPaths := make([]string, 0, len(extensions)*2)

	for _, ext := range extensions {
		localPath := name + ext
		if fileutil.FileExists(localPath) {
			return localPath, nil
		}
		triedPaths = append(triedPaths, localPath)
	}

	if userConfigDir, err := os.UserConfigDir(); err == nil {
		for _, ext := range extensions {
			userPath := filepath.Join(userConfigDir, AppDirName, name+ext)
			if fileutil.FileExists(userPath) {
				return userPath, nil
			}
			triedPaths = append(triedPaths, userPath)
		}
	}

	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(triedPaths, ", "))
}
