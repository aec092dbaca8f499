package crawl

import (
	"context"
	"log/slog"
	"sort"

	"github.com/localsift/localsift"
)

// Scraper sequences the whole pipeline: discover search and detail
// pages via the sitemap, drain pagination on every search page while
// harvesting listing URLs, then parse each detail page exactly once.
// Processing is strictly sequential; the visited sets and the record
// accumulator are owned by this single control flow.
type Scraper struct {
	// Discoverer walks the sitemap hierarchy.
	Discoverer localsift.Discoverer

	// Paginator follows next-page links on search result pages.
	Paginator *Paginator

	// Parser extracts records from detail pages.
	Parser localsift.DetailParser

	// BaseURL is the site root against which harvested listing paths
	// are rebuilt.
	BaseURL string

	// Logger for run progress. Defaults to slog.Default().
	Logger *slog.Logger
}

// Run executes the pipeline and returns the accumulated records.
// Per-item failures are logged and skipped; the only errors returned
// are discovery failure and context cancellation.
func (s *Scraper) Run(ctx context.Context) ([]*localsift.BusinessRecord, error) {
	logger := s.Logger
	if logger == nil {
		logger = slog.Default()
	}

	discovery, err := s.Discoverer.Discover(ctx)
	if err != nil {
		return nil, err
	}

	detailSet := make(map[string]struct{}, len(discovery.DetailPages))
	for _, detailURL := range discovery.DetailPages {
		detailSet[detailURL] = struct{}{}
	}

	searchPages := append([]string(nil), discovery.SearchPages...)
	sort.Strings(searchPages)
	for _, searchPage := range searchPages {
		logger.Info("scraping search results", "url", searchPage)
		for pageURL, html := range s.Paginator.Pages(ctx, searchPage) {
			for _, listingURL := range ExtractListingURLs(pageURL, html, s.BaseURL) {
				detailSet[listingURL] = struct{}{}
			}
		}
	}

	var records []*localsift.BusinessRecord
	processed := make(map[string]struct{}, len(detailSet))
	for _, detailURL := range sortedKeys(detailSet) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if _, ok := processed[detailURL]; ok {
			continue
		}
		processed[detailURL] = struct{}{}

		logger.Info("scraping detail page", "url", detailURL)
		record, err := s.Parser.Parse(ctx, detailURL)
		if err != nil {
			logger.Debug("detail page unavailable", "url", detailURL, "err", err)
			continue
		}
		if record != nil {
			records = append(records, record)
		}
	}

	return records, nil
}
