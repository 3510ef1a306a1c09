// Package hints builds the actionable suffixes the CLI appends to error
// messages. Every hint renders as "\n  hint: <text>".
package hints

import (
	"strings"

	"github.com/alnah/go-mdexport/internal/fileutil"
)

// Environment variables the CLI reads for browser setup.
const (
	EnvNoSandbox  = "DPROC_NO_SANDBOX"
	EnvBrowserBin = "DPROC_BROWSER_BIN"
)

// ciVars are set by the CI services the sandbox hint cares about.
var ciVars = []string{"CI", "GITHUB_ACTIONS", "GITLAB_CI", "JENKINS_URL"}

// IsInContainer reports whether /.dockerenv exists. Tests replace it.
var IsInContainer = func() bool {
	return fileutil.FileExists("/.dockerenv")
}

// InCI reports whether getenv exposes a well-known CI variable.
func InCI(getenv func(string) string) bool {
	for _, k := range ciVars {
		if getenv(k) != "" {
			return true
		}
	}
	return false
}

// ForBrowserConnect suggests the browser variables the user has not set yet.
// The sandbox suggestion only appears in CI or a container, where Chrome's
// sandbox usually cannot start.
func ForBrowserConnect(getenv func(string) string) string {
	var parts []string
	if (InCI(getenv) || IsInContainer()) && getenv(EnvNoSandbox) != "1" {
		parts = append(parts, "set "+EnvNoSandbox+"=1 for Docker/CI")
	}
	if getenv(EnvBrowserBin) == "" {
		parts = append(parts, "set "+EnvBrowserBin+" to use a custom Chrome")
	}
	return format(strings.Join(parts, "; "))
}

func ForTimeout() string {
	return format("for large documents, use --timeout flag")
}

func ForNoFormat() string {
	return format("use --html, --pdf, or --mdx")
}

func ForInvalidDate() string {
	return format("use auto, auto:FORMAT (e.g. auto:DD/MM/YYYY), now, or a literal date")
}

// ForConfigNotFound suggests --config, plus the first searched per-user path
// as a place to create one.
func ForConfigNotFound(searchedPaths []string) string {
	hint := "use --config /path/to/file.yaml"
	for _, p := range searchedPaths {
		if strings.Contains(strings.ReplaceAll(p, `\`, "/"), "/dproc/") {
			hint += " or create " + p
			break
		}
	}
	return format(hint)
}

func ForOutputDirectory() string {
	return format("check parent directory exists and is writable")
}

func format(hint string) string {
	if hint == "" {
		return ""
	}
	return "\n  hint: " + hint
}
