package fetch

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/chromedp/chromedp"
	"go.uber.org/zap"
)

// MinContentLength is the minimum extracted text length for a plain HTTP
// fetch to count as complete. Shorter pages are rendered in a browser.
const MinContentLength = 500

// ShouldUseBrowser reports whether extracted text is too short to be the
// real page, which usually means the content is rendered by JavaScript.
func ShouldUseBrowser(extractedText string) bool {
	return len(strings.TrimSpace(extractedText)) < MinContentLength
}

// BrowserOptions configures headless rendering.
type BrowserOptions struct {
	Timeout time.Duration
	// WaitSelector is waited for before the HTML is captured. Defaults to body.
	WaitSelector string
	// Settle is an extra pause for late scripts after WaitSelector appears.
	Settle time.Duration
	Logger *zap.Logger
}

// DefaultBrowserOptions returns the options used when none are given.
func DefaultBrowserOptions() *BrowserOptions {
	return &BrowserOptions{
		Timeout:      DefaultTimeout,
		WaitSelector: "body",
		Settle:       2 * time.Second,
	}
}

// WithBrowser renders a page in headless Chrome and returns its HTML.
// Requires Chrome or Chromium on the host.
func WithBrowser(ctx context.Context, url string, opts *BrowserOptions) (string, error) {
	if opts == nil {
		opts = DefaultBrowserOptions()
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	waitSelector := opts.WaitSelector
	if waitSelector == "" {
		waitSelector = "body"
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	logger.Debug("starting headless browser", zap.String("url", url))

	allocCtx, cancel := chromedp.NewExecAllocator(ctx,
		append(chromedp.DefaultExecAllocatorOptions[:],
			chromedp.Flag("headless", true),
			chromedp.Flag("disable-gpu", true),
			chromedp.Flag("no-sandbox", true),
			chromedp.Flag("disable-dev-shm-usage", true),
			chromedp.UserAgent(DefaultUserAgent),
		)...,
	)
	defer cancel()

	browserCtx, cancel := chromedp.NewContext(allocCtx)
	defer cancel()

	browserCtx, cancel = context.WithTimeout(browserCtx, timeout)
	defer cancel()

	var html string
	err := chromedp.Run(browserCtx,
		chromedp.Navigate(url),
		chromedp.WaitReady(waitSelector),
		chromedp.Sleep(opts.Settle),
		chromedp.OuterHTML("html", &html),
	)
	if err != nil {
		return "", &Error{URL: url, Message: "browser rendering failed", Cause: err}
	}

	logger.Debug("rendered page", zap.String("url", url), zap.Int("bytes", len(html)))
	return html, nil
}

// FetchRendered fetches url over HTTP and falls back to the browser when
// the main text is shorter than MinContentLength.
func FetchRendered(ctx context.Context, url string, opts *Options, browser *BrowserOptions, selectors []string, noise ...string) (*Result, error) {
	result, err := URL(ctx, url, opts)
	if err != nil {
		return nil, err
	}

	text, err := ExtractMainText(result.HTML, selectors, noise...)
	if err != nil {
		return nil, &Error{URL: url, Message: "failed to extract text", Cause: err}
	}
	result.Text = text
	if !ShouldUseBrowser(text) {
		return result, nil
	}

	html, err := WithBrowser(ctx, url, browser)
	if err != nil {
		return nil, fmt.Errorf("page text too short (%d chars) and browser fallback failed: %w", len(text), err)
	}
	result.HTML = html
	if text, err := ExtractMainText(html, selectors, noise...); err == nil {
		result.Text = text
	}
	return result, nil
}
