// Package http provides an HTTP-based implementation of localsift.Fetcher
// with linear-backoff retries, suitable for polite sequential scraping of
// static pages.
package http

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/localsift/localsift"
)

// Defaults for the retrying fetcher.
const (
	// DefaultFetchTimeout is the per-request socket timeout.
	DefaultFetchTimeout = 30 * time.Second

	// DefaultMaxRetries is the total number of attempts per URL.
	DefaultMaxRetries = 3

	// DefaultRetryDelay is the base delay between attempts. The actual
	// delay grows linearly with the attempt number.
	DefaultRetryDelay = 1500 * time.Millisecond
)

// DefaultUserAgent identifies the scraper as a desktop browser, which
// the target site expects.
const DefaultUserAgent = "Mozilla/5.0 (X11; Linux x86_64) " +
	"AppleWebKit/537.36 (KHTML, like Gecko) " +
	"Chrome/116.0 Safari/537.36"

const acceptHeader = "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8"

// Ensure Fetcher implements localsift.Fetcher at compile time.
var _ localsift.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves raw bytes from URLs with retry support.
//
// A 200 response returns its body immediately. A 404 returns an
// ENOTFOUND error without retrying (structural absence, not a fault).
// Any other status or transport error is retried after a delay that
// grows linearly with the attempt number; exhausting all attempts
// yields an EUNAVAILABLE error.
//
// All configuration is fixed at construction; the fetcher holds no
// mutable state and is safe to share.
type Fetcher struct {
	client     *http.Client
	timeout    time.Duration
	maxRetries int
	retryDelay time.Duration
	userAgent  string
	language   string
	logger     *slog.Logger
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithTimeout sets the per-request timeout.
// Defaults to DefaultFetchTimeout (30s) if not specified.
func WithTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.timeout = d
	}
}

// WithMaxRetries sets the total number of attempts per URL.
func WithMaxRetries(n int) Option {
	return func(f *Fetcher) {
		f.maxRetries = n
	}
}

// WithRetryDelay sets the base delay between attempts.
func WithRetryDelay(d time.Duration) Option {
	return func(f *Fetcher) {
		f.retryDelay = d
	}
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(f *Fetcher) {
		f.userAgent = ua
	}
}

// WithLanguage sets the preferred language used to build the
// Accept-Language header (e.g. "fr", "de").
func WithLanguage(lang string) Option {
	return func(f *Fetcher) {
		f.language = lang
	}
}

// WithLogger sets the logger for fetch diagnostics.
// Defaults to slog.Default() if not specified.
func WithLogger(logger *slog.Logger) Option {
	return func(f *Fetcher) {
		f.logger = logger
	}
}

// NewFetcher creates a new retrying HTTP fetcher.
func NewFetcher(opts ...Option) *Fetcher {
	f := &Fetcher{
		timeout:    DefaultFetchTimeout,
		maxRetries: DefaultMaxRetries,
		retryDelay: DefaultRetryDelay,
		userAgent:  DefaultUserAgent,
		language:   "fr",
	}
	for _, opt := range opts {
		opt(f)
	}
	if f.maxRetries < 1 {
		f.maxRetries = 1
	}
	if f.logger == nil {
		f.logger = slog.Default()
	}

	f.client = &http.Client{
		Timeout: f.timeout,
	}

	return f
}

// Fetch retrieves the raw bytes from the given URL.
func (f *Fetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	for attempt := 1; attempt <= f.maxRetries; attempt++ {
		body, status, err := f.get(ctx, url)
		switch {
		case err != nil:
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			f.logger.Warn("request error", "url", url, "err", err)
		case status == http.StatusOK:
			return body, nil
		case status == http.StatusNotFound:
			f.logger.Debug("URL not found", "url", url)
			return nil, localsift.Errorf(localsift.ENOTFOUND, "URL not found: %s", url)
		default:
			f.logger.Warn("unexpected status", "status", status, "url", url)
		}

		if attempt < f.maxRetries {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(f.retryDelay * time.Duration(attempt)):
			}
		}
	}

	f.logger.Error("fetch failed", "url", url, "attempts", f.maxRetries)
	return nil, localsift.Errorf(localsift.EUNAVAILABLE, "failed to fetch %s after %d attempts", url, f.maxRetries)
}

// get performs a single GET attempt and returns the body and status.
func (f *Fetcher) get(ctx context.Context, url string) ([]byte, int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, 0, err
	}
	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", acceptHeader)
	req.Header.Set("Accept-Language", acceptLanguage(f.language))

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, 0, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, 0, err
	}

	return body, resp.StatusCode, nil
}

// acceptLanguage builds an Accept-Language header value that prefers
// the configured language but keeps English as a fallback.
func acceptLanguage(lang string) string {
	lang = strings.ToLower(strings.TrimSpace(lang))
	if lang == "" || lang == "en" {
		return "en-US,en;q=0.9"
	}
	return fmt.Sprintf("%s-%s,%s;q=0.9,en;q=0.8", lang, strings.ToUpper(lang), lang)
}
