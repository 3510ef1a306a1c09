package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"runtime"
	"strings"

	"github.com/go-rod/rod/lib/launcher"
	flag "github.com/spf13/pflag"

	"github.com/alnah/go-mdexport/internal/config"
	"github.com/alnah/go-mdexport/internal/hints"
)

// Overall doctor verdicts.
const (
	statusReady    = "ready"
	statusWarnings = "warnings"
	statusErrors   = "errors"
)

type doctorResult struct {
	Status   string            `json:"status"`
	Chrome   chromeInfo        `json:"chrome"`
	Env      envInfo           `json:"environment"`
	System   systemInfo        `json:"system"`
	Formats  []formatReadiness `json:"formats"`
	Warnings []string          `json:"warnings,omitempty"`
	Errors   []string          `json:"errors,omitempty"`
}

type chromeInfo struct {
	Found   bool   `json:"found"`
	Path    string `json:"path,omitempty"`
	Source  string `json:"source,omitempty"` // env, config or lookup
	Version string `json:"version,omitempty"`
	Sandbox bool   `json:"sandbox"`
}

type envInfo struct {
	OS            string `json:"os"`
	Arch          string `json:"arch"`
	Container     bool   `json:"container"`
	ContainerHint string `json:"container_hint,omitempty"`
	CI            bool   `json:"ci"`
	NoSandbox     string `json:"dproc_no_sandbox"`
	BrowserBin    string `json:"dproc_browser_bin"`
}

type systemInfo struct {
	TempWritable bool   `json:"temp_writable"`
	ConfigPath   string `json:"config_path,omitempty"`
}

// formatReadiness tells whether one export format can run on this machine.
type formatReadiness struct {
	Format string `json:"format"`
	Ready  bool   `json:"ready"`
	Note   string `json:"note,omitempty"`
}

// runDoctorCmd exits 1 when any check failed; warnings alone still exit 0.
func runDoctorCmd(args []string, env *Environment) int {
	fs := flag.NewFlagSet("doctor", flag.ContinueOnError)
	fs.SetOutput(env.Stderr)
	asJSON := fs.Bool("json", false, "print as JSON")
	fs.Usage = func() { printDoctorUsage(env.Stderr) }
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return ExitSuccess
		}
		fmt.Fprintf(env.Stderr, "error: %v\n", err)
		return ExitUsage
	}

	result := runDoctor(env.Getenv)
	if *asJSON {
		enc := json.NewEncoder(env.Stdout)
		enc.SetIndent("", "  ")
		_ = enc.Encode(result)
	} else {
		printDoctorResult(env.Stdout, result)
	}

	if result.Status == statusErrors {
		return ExitGeneral
	}
	return ExitSuccess
}

// diagnosis accumulates findings while the checks run.
type diagnosis struct {
	getenv func(string) string
	cfg    *config.Config
	res    *doctorResult
}

func (d *diagnosis) warn(format string, args ...any) {
	d.res.Warnings = append(d.res.Warnings, fmt.Sprintf(format, args...))
}

func (d *diagnosis) fail(format string, args ...any) {
	d.res.Errors = append(d.res.Errors, fmt.Sprintf(format, args...))
}

// runDoctor checks the configuration first so browser settings read from the
// config file are honored by the browser check.
func runDoctor(getenv func(string) string) *doctorResult {
	d := &diagnosis{
		getenv: getenv,
		cfg:    config.DefaultConfig(),
		res: &doctorResult{
			Env: envInfo{
				OS:         runtime.GOOS,
				Arch:       runtime.GOARCH,
				NoSandbox:  getenv(hints.EnvNoSandbox),
				BrowserBin: getenv(hints.EnvBrowserBin),
			},
		},
	}

	d.checkSystem()
	d.checkEnvironment()
	d.checkBrowser()
	d.checkFormats()

	switch {
	case len(d.res.Errors) > 0:
		d.res.Status = statusErrors
	case len(d.res.Warnings) > 0:
		d.res.Status = statusWarnings
	default:
		d.res.Status = statusReady
	}
	return d.res
}

func (d *diagnosis) checkSystem() {
	tmp, err := os.CreateTemp("", "dproc-doctor-*")
	if err != nil {
		d.fail("Temp directory not writable: %s", os.TempDir())
	} else {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
		d.res.System.TempWritable = true
	}

	cfg, err := config.LoadDefault()
	if err != nil {
		d.warn("Config: %v", err)
		return
	}
	d.cfg = cfg
	d.res.System.ConfigPath = cfg.Path
}

func (d *diagnosis) checkEnvironment() {
	d.res.Env.Container, d.res.Env.ContainerHint = isContainer(d.getenv)
	d.res.Env.CI = hints.InCI(d.getenv)

	if (d.res.Env.Container || d.res.Env.CI) && !d.sandboxDisabled() {
		d.warn("Container/CI detected but %s not set. Set %s=1 or pass --no-sandbox",
			hints.EnvNoSandbox, hints.EnvNoSandbox)
	}
}

func (d *diagnosis) sandboxDisabled() bool {
	return isTruthy(d.res.Env.NoSandbox) || d.cfg.Browser.NoSandbox
}

// checkBrowser resolves the binary the way export does: environment, then
// config, then rod's lookup of installed browsers.
func (d *diagnosis) checkBrowser() {
	c := &d.res.Chrome
	switch {
	case d.res.Env.BrowserBin != "":
		c.Path, c.Source = d.res.Env.BrowserBin, "env"
	case d.cfg.Browser.Bin != "":
		c.Path, c.Source = d.cfg.Browser.Bin, "config"
	default:
		path, found := launcher.LookPath()
		if !found {
			d.warn("Chrome/Chromium not found; it will be downloaded on first PDF export. Install Chrome or set %s",
				hints.EnvBrowserBin)
			return
		}
		c.Path, c.Source = path, "lookup"
	}

	if _, err := os.Stat(c.Path); err != nil {
		d.fail("Chrome not found at %s", c.Path)
		c.Path = ""
		return
	}
	c.Found = true
	c.Sandbox = !d.sandboxDisabled()

	// #nosec G204 -- the binary is the configured or detected browser
	out, err := exec.Command(c.Path, "--version").Output()
	if err != nil {
		d.warn("Could not get Chrome version: %v", err)
		return
	}
	c.Version = strings.TrimSpace(string(out))
}

// checkFormats summarizes the checks per export format. HTML and MDX only
// need a writable filesystem; PDF also needs a browser, which rod downloads
// when none is installed.
func (d *diagnosis) checkFormats() {
	writable := d.res.System.TempWritable
	pdf := formatReadiness{Format: "pdf", Ready: writable && (d.res.Chrome.Found || d.res.Chrome.Source == "")}
	switch {
	case !writable:
		pdf.Note = "temp directory not writable"
	case d.res.Chrome.Found:
		pdf.Note = d.res.Chrome.Path
	case d.res.Chrome.Source == "":
		pdf.Note = "browser downloaded on first use"
	default:
		pdf.Note = "configured browser missing"
	}

	d.res.Formats = []formatReadiness{
		{Format: "html", Ready: true},
		pdf,
		{Format: "mdx", Ready: true},
	}
}

// isContainer reports whether the process runs in a container and which
// signal gave it away. DPROC_CONTAINER=1 wins over detection.
func isContainer(getenv func(string) string) (bool, string) {
	if getenv("DPROC_CONTAINER") == "1" {
		return true, "DPROC_CONTAINER=1"
	}
	if hints.IsInContainer() {
		return true, "/.dockerenv"
	}
	if v := getenv("container"); v != "" {
		return true, "container=" + v
	}
	if getenv("KUBERNETES_SERVICE_HOST") != "" {
		return true, "KUBERNETES_SERVICE_HOST"
	}
	return false, ""
}

func printDoctorResult(w io.Writer, r *doctorResult) {
	line := func(tag, format string, args ...any) {
		fmt.Fprintf(w, "  [%s] %s\n", tag, fmt.Sprintf(format, args...))
	}

	fmt.Fprintln(w, "dproc doctor")

	fmt.Fprintln(w, "\nChrome/Chromium")
	if r.Chrome.Found {
		line("OK", "Found at %s", r.Chrome.Path)
		if r.Chrome.Version != "" {
			line("OK", "Version: %s", r.Chrome.Version)
		}
		switch {
		case r.Chrome.Sandbox:
			line("OK", "Sandbox: enabled")
		case r.Env.NoSandbox != "":
			line("OK", "Sandbox: disabled (%s=%s)", hints.EnvNoSandbox, r.Env.NoSandbox)
		default:
			line("OK", "Sandbox: disabled (browser.noSandbox)")
		}
	} else {
		line("WARN", "Not found")
	}

	fmt.Fprintln(w, "\nEnvironment")
	line("OK", "Platform: %s/%s", r.Env.OS, r.Env.Arch)
	if r.Env.Container {
		line("OK", "Container: detected (%s)", r.Env.ContainerHint)
	}
	if r.Env.CI {
		line("OK", "CI: detected")
	}

	fmt.Fprintln(w, "\nSystem")
	if r.System.TempWritable {
		line("OK", "Temp directory: writable")
	} else {
		line("ERROR", "Temp directory: not writable")
	}
	if r.System.ConfigPath != "" {
		line("OK", "Config: %s", r.System.ConfigPath)
	} else {
		line("OK", "Config: defaults")
	}

	if len(r.Formats) > 0 {
		fmt.Fprintln(w, "\nFormats")
		for _, f := range r.Formats {
			tag := "OK"
			if !f.Ready {
				tag = "ERROR"
			}
			if f.Note != "" {
				line(tag, "%s (%s)", f.Format, f.Note)
			} else {
				line(tag, "%s", f.Format)
			}
		}
	}

	if len(r.Warnings) > 0 {
		fmt.Fprintln(w, "\nWarnings:")
		for _, warn := range r.Warnings {
			line("WARN", "%s", warn)
		}
	}
	if len(r.Errors) > 0 {
		fmt.Fprintln(w, "\nErrors:")
		for _, err := range r.Errors {
			line("ERROR", "%s", err)
		}
	}

	fmt.Fprintln(w)
	switch r.Status {
	case statusReady:
		fmt.Fprintln(w, "Status: Ready to export")
	case statusWarnings:
		fmt.Fprintln(w, "Status: Ready with warnings")
	case statusErrors:
		fmt.Fprintln(w, "Status: Not ready (see errors above)")
	}
}
