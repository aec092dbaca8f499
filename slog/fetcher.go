// Package slog provides logging decorators for localsift services.
package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/localsift/localsift"
)

// Ensure LoggingFetcher implements localsift.Fetcher.
var _ localsift.Fetcher = (*LoggingFetcher)(nil)

// LoggingFetcher wraps a Fetcher with per-fetch observability: debug
// records for successful fetches and warning events for failures.
type LoggingFetcher struct {
	next   localsift.Fetcher
	logger *slog.Logger
}

// NewLoggingFetcher creates a new LoggingFetcher.
func NewLoggingFetcher(next localsift.Fetcher, logger *slog.Logger) *LoggingFetcher {
	return &LoggingFetcher{next: next, logger: logger}
}

// Fetch delegates to the wrapped fetcher and logs the operation.
func (f *LoggingFetcher) Fetch(ctx context.Context, url string) (body []byte, err error) {
	defer func(begin time.Time) {
		if err != nil {
			f.logger.Warn("fetch failed",
				"url", url,
				"code", localsift.ErrorCode(err),
				"duration", time.Since(begin),
			)
			return
		}
		f.logger.Debug("fetch",
			"url", url,
			"bytes", len(body),
			"duration", time.Since(begin),
		)
	}(time.Now())
	return f.next.Fetch(ctx, url)
}
