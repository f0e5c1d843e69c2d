// Package snapshot renders the bookshelf page in headless Chrome and returns
// a full-page PNG screenshot.
package snapshot

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/chromedp/cdproto/emulation"
	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
)

const (
	DefaultWidth   = 1280
	DefaultHeight  = 800
	DefaultTimeout = 30 * time.Second

	// chromedp switches FullScreenshot to PNG at this quality
	pngQuality = 100
)

var (
	chromedpExecAllocator = chromedp.NewExecAllocator
	chromedpContext       = chromedp.NewContext
	chromedpRunner        = chromedp.Run
)

var captureScreenshot = func(ctx context.Context) ([]byte, error) {
	var buf []byte
	if err := chromedpRunner(ctx, chromedp.FullScreenshot(&buf, pngQuality)); err != nil {
		return nil, err
	}
	return buf, nil
}

// Options controls the browser viewport
type Options struct {
	Width    int64
	Height   int64
	Timeout  time.Duration
	Headless bool
}

// DefaultOptions returns a headless 1280x800 viewport with a 30s timeout
func DefaultOptions() Options {
	return Options{
		Width:    DefaultWidth,
		Height:   DefaultHeight,
		Timeout:  DefaultTimeout,
		Headless: true,
	}
}

func (o Options) withDefaults() Options {
	if o.Width <= 0 {
		o.Width = DefaultWidth
	}
	if o.Height <= 0 {
		o.Height = DefaultHeight
	}
	if o.Timeout <= 0 {
		o.Timeout = DefaultTimeout
	}
	return o
}

// Capture loads html into a blank tab and screenshots the whole document
func Capture(parentCtx context.Context, html []byte, opts Options) ([]byte, error) {
	if len(html) == 0 {
		return nil, errors.New("snapshot requires a non-empty page")
	}
	opts = opts.withDefaults()

	ctx, cancel := context.WithTimeout(parentCtx, opts.Timeout)
	defer cancel()

	allocCtx, cancelAllocator := chromedpExecAllocator(ctx, buildExecAllocatorOptions(opts)...)
	defer cancelAllocator()

	browserCtx, cancelBrowser := chromedpContext(allocCtx)
	defer cancelBrowser()

	slog.Debug("Rendering page snapshot", "width", opts.Width, "bytes", len(html))

	if err := chromedpRunner(browserCtx, loadPage(string(html), opts)...); err != nil {
		return nil, fmt.Errorf("failed to load page: %w", err)
	}

	png, err := captureScreenshot(browserCtx)
	if err != nil {
		return nil, fmt.Errorf("failed to capture screenshot: %w", err)
	}
	if len(png) == 0 {
		return nil, errors.New("browser returned an empty screenshot")
	}

	slog.Info("Captured page snapshot", "bytes", len(png))
	return png, nil
}

func buildExecAllocatorOptions(opts Options) []chromedp.ExecAllocatorOption {
	return []chromedp.ExecAllocatorOption{
		chromedp.NoDefaultBrowserCheck,
		chromedp.NoFirstRun,
		chromedp.Flag("headless", opts.Headless),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("disable-sync", true),
		chromedp.Flag("mute-audio", true),
		chromedp.Flag("hide-scrollbars", true),
		chromedp.WindowSize(int(opts.Width), int(opts.Height)),
	}
}

func loadPage(html string, opts Options) chromedp.Tasks {
	return chromedp.Tasks{
		emulation.SetDeviceMetricsOverride(opts.Width, opts.Height, 1, false),
		chromedp.Navigate("about:blank"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			tree, err := page.GetFrameTree().Do(ctx)
			if err != nil {
				return err
			}
			return page.SetDocumentContent(tree.Frame.ID, html).Do(ctx)
		}),
		chromedp.WaitReady("body", chromedp.ByQuery),
	}
}
