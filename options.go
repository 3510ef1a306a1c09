package mdexport

import (
	"io"
	"log/slog"
	"time"
)

// DefaultTimeout bounds one PDF render: browser launch, page load and print.
const DefaultTimeout = 30 * time.Second

// config holds construction settings shared by the renderers and the Exporter.
type config struct {
	timeout    time.Duration
	logger     *slog.Logger
	now        func() time.Time
	assetPath  string
	browserBin string
	noSandbox  bool
	printer    pagePrinter
}

func newConfig(opts []Option) config {
	cfg := config{
		timeout: DefaultTimeout,
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

// Option configures renderers and the Exporter.
type Option func(*config)

// WithTimeout sets the PDF render timeout.
// Panics if d <= 0 (programmer error, similar to time.NewTicker).
func WithTimeout(d time.Duration) Option {
	if d <= 0 {
		panic("mdexport: WithTimeout duration must be positive")
	}
	return func(c *config) {
		c.timeout = d
	}
}

// WithLogger sets the logger for diagnostics. Stage timings are logged at
// Debug level. A nil logger is ignored.
func WithLogger(l *slog.Logger) Option {
	return func(c *config) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithClock sets the time source used for the MDX date.
func WithClock(now func() time.Time) Option {
	return func(c *config) {
		if now != nil {
			c.now = now
		}
	}
}

// WithAssetPath loads styles/default.css and templates/document.html from
// dir, falling back to the embedded copies for missing files.
func WithAssetPath(dir string) Option {
	return func(c *config) {
		c.assetPath = dir
	}
}

// WithBrowser selects the Chrome binary (empty = auto-detect or download)
// and whether to disable its sandbox, which containers and CI usually need.
func WithBrowser(bin string, noSandbox bool) Option {
	return func(c *config) {
		c.browserBin = bin
		c.noSandbox = noSandbox
	}
}

// withPrinter replaces the headless browser. Used by tests.
func withPrinter(p pagePrinter) Option {
	return func(c *config) {
		c.printer = p
	}
}
