package main

import (
	"encoding/json"
	"errors"
	"fmt"

	flag "github.com/spf13/pflag"

	"github.com/alnah/go-mdexport/internal/config"
	"github.com/alnah/go-mdexport/internal/yamlutil"
)

// configView is the JSON form of `dproc config show`.
type configView struct {
	Path         string         `json:"path"`
	APIKeySource string         `json:"apiKeySource"`
	Config       *config.Config `json:"config"`
}

// runConfig executes the config command and returns an exit code.
func runConfig(args []string, env *Environment) int {
	flags, positional, err := parseConfigFlags(args, env.Stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return ExitSuccess
		}
		fmt.Fprintf(env.Stderr, "error: %v\n", err)
		return ExitUsage
	}

	if len(positional) != 1 {
		printConfigUsage(env.Stderr)
		return ExitUsage
	}

	switch positional[0] {
	case "show":
		return runConfigShow(flags, env)
	case "path":
		return runConfigPath(flags, env)
	default:
		fmt.Fprintf(env.Stderr, "error: %v: config %s\n", ErrUnknownCommand, positional[0])
		printConfigUsage(env.Stderr)
		return ExitUsage
	}
}

// runConfigShow prints the effective configuration. The API key is masked
// and, when the file leaves it empty, resolved from the environment and .env.
func runConfigShow(flags *configFlags, env *Environment) int {
	cfg, err := loadConfig(flags.config)
	if err != nil {
		return fail(env, fmt.Errorf("loading config: %w", err), configHint(err))
	}

	lookup, err := config.EnvLookup(config.DotEnvFile)
	if err != nil {
		return fail(env, err, "")
	}
	key, source := config.ResolveAPIKey(cfg, lookup)

	shown := cfg.Redacted()
	shown.LLM.APIKey = config.MaskSecret(key)

	if flags.json {
		enc := json.NewEncoder(env.Stdout)
		enc.SetIndent("", "  ")
		_ = enc.Encode(configView{Path: cfg.Path, APIKeySource: source, Config: shown})
		return ExitSuccess
	}

	data, err := yamlutil.Encode(shown)
	if err != nil {
		return fail(env, err, "")
	}
	fmt.Fprintf(env.Stdout, "# file: %s\n", displayPath(cfg.Path))
	fmt.Fprintf(env.Stdout, "# apiKey source: %s\n", source)
	fmt.Fprint(env.Stdout, string(data))
	return ExitSuccess
}

// runConfigPath prints the file the configuration is read from, or the
// locations searched when none exists.
func runConfigPath(flags *configFlags, env *Environment) int {
	cfg, err := loadConfig(flags.config)
	if err != nil {
		return fail(env, fmt.Errorf("loading config: %w", err), configHint(err))
	}

	if cfg.Path != "" {
		fmt.Fprintln(env.Stdout, cfg.Path)
		return ExitSuccess
	}

	fmt.Fprintln(env.Stdout, "no config file found, using defaults; searched:")
	for _, p := range config.DefaultSearchPaths() {
		fmt.Fprintf(env.Stdout, "  %s\n", p)
	}
	return ExitSuccess
}

func displayPath(p string) string {
	if p == "" {
		return "(defaults)"
	}
	return p
}
