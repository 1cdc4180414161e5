package report

import (
	"bytes"
	"context"
	"fmt"
	"image/png"
	"time"

	"github.com/chromedp/chromedp"
)

// Capture is a rasterized dashboard: the PNG bytes plus the pixel size
// that drives the pagination arithmetic.
type Capture struct {
	PNG    []byte
	Width  int
	Height int
}

// Rasterizer turns a rendered report page into a raster image. The
// rendering engine is an external capability; the exporter only consumes
// the image it produces.
type Rasterizer interface {
	Capture(ctx context.Context, url string) (*Capture, error)
}

const (
	// captureWidth forces a desktop layout so the exported report does
	// not depend on the viewport the user happened to have.
	captureWidth = 1400
	// captureScale doubles the pixel density for print quality.
	captureScale = 2
	// settleDelay lets chart animations finish before the screenshot.
	// The chart renderer exposes no completion signal, so a fixed delay
	// is the only synchronization barrier available.
	settleDelay = 1500 * time.Millisecond
)

// ChromeRasterizer captures the dashboard with a headless browser.
type ChromeRasterizer struct {
	// ExecPath overrides the browser binary lookup when set.
	ExecPath string
}

func (r *ChromeRasterizer) Capture(ctx context.Context, url string) (*Capture, error) {
	opts := append([]chromedp.ExecAllocatorOption{}, chromedp.DefaultExecAllocatorOptions[:]...)
	if r.ExecPath != "" {
		opts = append(opts, chromedp.ExecPath(r.ExecPath))
	}
	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, opts...)
	defer cancelAlloc()
	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx)
	defer cancelBrowser()

	var buf []byte
	tasks := chromedp.Tasks{
		chromedp.EmulateViewport(captureWidth, 900, chromedp.EmulateScale(captureScale)),
		chromedp.Navigate(url),
		// Back to the top so the capture does not start mid-scroll.
		chromedp.Evaluate(`window.scrollTo(0, 0)`, nil),
		chromedp.Sleep(settleDelay),
		chromedp.FullScreenshot(&buf, 100),
	}
	if err := chromedp.Run(browserCtx, tasks); err != nil {
		return nil, fmt.Errorf("capture %s: %w", url, err)
	}

	cfg, err := png.DecodeConfig(bytes.NewReader(buf))
	if err != nil {
		return nil, fmt.Errorf("decode captured image: %w", err)
	}
	return &Capture{PNG: buf, Width: cfg.Width, Height: cfg.Height}, nil
}
