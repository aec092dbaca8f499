package http

import (
	"context"
	"log/slog"
	"net/url"

	"github.com/temoto/robotstxt"

	"github.com/localsift/localsift"
)

// SitemapResolver locates a site's sitemap index URL when none is
// configured explicitly. It checks robots.txt Sitemap directives first
// and falls back to the conventional /sitemap.xml location.
type SitemapResolver struct {
	fetcher localsift.Fetcher
	logger  *slog.Logger
}

// NewSitemapResolver creates a new SitemapResolver.
func NewSitemapResolver(fetcher localsift.Fetcher, logger *slog.Logger) *SitemapResolver {
	if logger == nil {
		logger = slog.Default()
	}
	return &SitemapResolver{fetcher: fetcher, logger: logger}
}

// Resolve returns the sitemap index URL for the site rooted at baseURL.
// Returns an ENOTFOUND error when neither robots.txt nor /sitemap.xml
// yields one.
func (r *SitemapResolver) Resolve(ctx context.Context, baseURL string) (string, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return "", localsift.Errorf(localsift.EINVALID, "invalid base URL: %v", err)
	}

	robotsURL := base.ResolveReference(&url.URL{Path: "/robots.txt"}).String()
	if data, err := r.fetcher.Fetch(ctx, robotsURL); err == nil {
		robots, err := robotstxt.FromBytes(data)
		if err != nil {
			r.logger.Warn("failed to parse robots.txt", "url", robotsURL, "err", err)
		} else if len(robots.Sitemaps) > 0 {
			r.logger.Debug("sitemap found in robots.txt", "url", robots.Sitemaps[0])
			return robots.Sitemaps[0], nil
		}
	}

	fallback := base.ResolveReference(&url.URL{Path: "/sitemap.xml"}).String()
	if _, err := r.fetcher.Fetch(ctx, fallback); err == nil {
		r.logger.Debug("sitemap found at conventional location", "url", fallback)
		return fallback, nil
	}

	return "", localsift.Errorf(localsift.ENOTFOUND, "no sitemap found for %s", baseURL)
}
