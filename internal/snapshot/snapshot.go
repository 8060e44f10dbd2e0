// Package snapshot captures the rendered page in a headless browser to
// produce the Open Graph preview image.
package snapshot

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/chromedp/chromedp"
	"github.com/ragibsmajic/portfolio/internal/seo"
)

const (
	DefaultTimeout  = 30 * time.Second
	DefaultSettle   = 500 * time.Millisecond
	DefaultSelector = "body"
)

// Options configure a capture. Zero values take the defaults above and the
// Open Graph image dimensions.
type Options struct {
	URL      string
	Path     string
	Width    int
	Height   int
	Selector string
	Timeout  time.Duration
	Settle   time.Duration
	ExecPath string
	Logger   *slog.Logger
}

// SnapshotError represents a failed capture
type SnapshotError struct {
	Message string
	Cause   error
}

func (e *SnapshotError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("snapshot error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("snapshot error: %s", e.Message)
}

func (e *SnapshotError) Unwrap() error {
	return e.Cause
}

// WithDefaults fills unset fields.
func (o Options) WithDefaults() Options {
	if o.Width <= 0 {
		o.Width = seo.ImageWidth
	}
	if o.Height <= 0 {
		o.Height = seo.ImageHeight
	}
	if o.Selector == "" {
		o.Selector = DefaultSelector
	}
	if o.Timeout <= 0 {
		o.Timeout = DefaultTimeout
	}
	if o.Settle < 0 {
		o.Settle = 0
	} else if o.Settle == 0 {
		o.Settle = DefaultSettle
	}
	if o.Logger == nil {
		o.Logger = slog.Default()
	}
	return o
}

// Target resolves Path against URL.
func (o Options) Target() (string, error) {
	base, err := url.Parse(o.URL)
	if err != nil {
		return "", &SnapshotError{Message: "invalid URL", Cause: err}
	}
	if base.Scheme != "http" && base.Scheme != "https" && base.Scheme != "file" {
		return "", &SnapshotError{Message: fmt.Sprintf("invalid URL: %s (must be http, https or file)", o.URL)}
	}
	if o.Path == "" {
		return base.String(), nil
	}
	ref, err := url.Parse(o.Path)
	if err != nil {
		return "", &SnapshotError{Message: "invalid path", Cause: err}
	}
	return base.ResolveReference(ref).String(), nil
}

// AllocatorOptions returns the headless Chrome flags used for a capture.
func (o Options) AllocatorOptions() []chromedp.ExecAllocatorOption {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("hide-scrollbars", true),
		chromedp.WindowSize(o.Width, o.Height),
	)
	if o.ExecPath != "" {
		opts = append(opts, chromedp.ExecPath(o.ExecPath))
	}
	return opts
}

// Capture loads the target page and returns a PNG of the viewport.
// Requires Chrome or Chromium on the host.
func Capture(ctx context.Context, opts Options) ([]byte, error) {
	opts = opts.WithDefaults()
	target, err := opts.Target()
	if err != nil {
		return nil, err
	}
	opts.Logger.Info("Capturing snapshot",
		slog.String("url", target),
		slog.Int("width", opts.Width),
		slog.Int("height", opts.Height))

	allocCtx, cancel := chromedp.NewExecAllocator(ctx, opts.AllocatorOptions()...)
	defer cancel()

	browserCtx, cancel := chromedp.NewContext(allocCtx)
	defer cancel()

	browserCtx, cancel = context.WithTimeout(browserCtx, opts.Timeout)
	defer cancel()

	var png []byte
	err = chromedp.Run(browserCtx,
		chromedp.EmulateViewport(int64(opts.Width), int64(opts.Height)),
		chromedp.Navigate(target),
		chromedp.WaitVisible(opts.Selector, chromedp.ByQuery),
		chromedp.Sleep(opts.Settle),
		chromedp.CaptureScreenshot(&png),
	)
	if err != nil {
		return nil, &SnapshotError{Message: "browser capture failed", Cause: err}
	}

	opts.Logger.Debug("Snapshot captured", slog.Int("bytes", len(png)))
	return png, nil
}

// CaptureHandler serves handler on a loopback port for the duration of the
// capture. opts.URL is replaced by the local address.
func CaptureHandler(ctx context.Context, handler http.Handler, opts Options) ([]byte, error) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		return nil, &SnapshotError{Message: "failed to listen", Cause: err}
	}

	srv := &http.Server{Handler: handler, ReadHeaderTimeout: 5 * time.Second}
	serveErr := make(chan error, 1)
	go func() {
		serveErr <- srv.Serve(ln)
	}()
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
		if err := <-serveErr; err != nil && !errors.Is(err, http.ErrServerClosed) {
			opts.WithDefaults().Logger.Warn("Snapshot server stopped with error", slog.String("error", err.Error()))
		}
	}()

	opts.URL = "http://" + strings.TrimPrefix(ln.Addr().String(), "http://")
	return Capture(ctx, opts)
}
