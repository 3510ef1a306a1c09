package mdexport

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"

	"github.com/alnah/go-mdexport/internal/pipeline"
	"github.com/alnah/go-mdexport/internal/process"
)

// pagePrinter prints a local HTML file to PDF. It abstracts the headless
// browser so tests can run without Chrome.
type pagePrinter interface {
	PrintToPDF(ctx context.Context, htmlPath string) ([]byte, error)
}

// Compile-time interface check.
var _ pagePrinter = (*rodPrinter)(nil)

// A4 with 1cm margins, in inches as the DevTools protocol expects.
const (
	paperWidthInches  = 8.27
	paperHeightInches = 11.69
	marginInches      = 0.3937
)

const (
	// networkIdle is how long the page must go without a request in flight
	// before it counts as loaded.
	networkIdle = 500 * time.Millisecond

	// cleanupWait bounds the wait for the browser process to exit.
	cleanupWait = 5 * time.Second
)

// rodPrinter launches one headless Chrome per call and tears it down before
// returning. Rod downloads Chromium on first use when no binary is found.
type rodPrinter struct {
	bin       string
	noSandbox bool
	logger    *slog.Logger

	// profileRoot holds the per-launch user data directories; "" means
	// os.TempDir.
	profileRoot string
}

func newRodPrinter(cfg config) *rodPrinter {
	return &rodPrinter{bin: cfg.browserBin, noSandbox: cfg.noSandbox, logger: cfg.logger}
}

// PrintToPDF loads htmlPath, waits for the network to go idle and the load
// event to fire, then prints it. The browser and its process tree are gone
// when PrintToPDF returns, on every path.
func (p *rodPrinter) PrintToPDF(ctx context.Context, htmlPath string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	absPath, err := filepath.Abs(htmlPath)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPageLoad, err)
	}

	l := launcher.New().Context(ctx).Headless(true)
	if p.bin != "" {
		if _, err := os.Stat(p.bin); err != nil {
			return nil, fmt.Errorf("%w: browser binary: %v", ErrBrowserConnect, err)
		}
		l = l.Bin(p.bin)
	}
	if p.noSandbox {
		l = l.NoSandbox(true)
	}

	// The profile is removed on every path, including a launch that
	// started Chrome and then failed.
	profile, err := os.MkdirTemp(p.profileRoot, "dproc-chrome-*")
	if err != nil {
		return nil, fmt.Errorf("%w: profile directory: %v", ErrBrowserConnect, err)
	}
	defer func() { _ = os.RemoveAll(profile) }()
	l = l.UserDataDir(profile)

	start := time.Now()
	controlURL, err := l.Launch()
	if err != nil {
		if pid := l.PID(); pid != 0 {
			p.logger.Debug("browser launch failed", "pid", pid, "error", err)
			process.KillTree(pid)
		}
		return nil, fmt.Errorf("%w: %v", ErrBrowserConnect, err)
	}
	defer p.release(l)
	p.logger.Debug("browser launched", "pid", l.PID(), "elapsed", time.Since(start))

	browser := rod.New().ControlURL(controlURL).Context(ctx)
	if err := browser.Connect(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBrowserConnect, err)
	}
	defer func() { _ = browser.Close() }()

	page, err := browser.Page(proto.TargetCreateTarget{})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPageCreate, err)
	}

	waitIdle := page.WaitRequestIdle(networkIdle, nil, nil, nil)
	if err := page.Navigate(pipeline.FileURL(absPath)); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrPageLoad, err)
	}
	waitIdle()
	if err := page.WaitLoad(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrPageLoad, err)
	}
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrPageLoad, err)
	}

	reader, err := page.PDF(&proto.PagePrintToPDF{
		PaperWidth:      floatPtr(paperWidthInches),
		PaperHeight:     floatPtr(paperHeightInches),
		MarginTop:       floatPtr(marginInches),
		MarginBottom:    floatPtr(marginInches),
		MarginLeft:      floatPtr(marginInches),
		MarginRight:     floatPtr(marginInches),
		PrintBackground: true,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrPDFGeneration, err)
	}

	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("%w: reading PDF stream: %w", ErrPDFGeneration, err)
	}

	p.logger.Debug("page printed", "bytes", len(data), "elapsed", time.Since(start))
	return data, nil
}

// release kills the browser process group and removes its profile
// directory. Cleanup blocks until the process exits, so the wait is bounded.
func (p *rodPrinter) release(l *launcher.Launcher) {
	process.KillTree(l.PID())

	done := make(chan struct{})
	go func() {
		l.Cleanup()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(cleanupWait):
		p.logger.Warn("browser did not exit in time", "pid", l.PID())
	}
}

func floatPtr(f float64) *float64 {
	return &f
}
