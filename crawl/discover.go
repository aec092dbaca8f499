package crawl

import (
	"bytes"
	"compress/gzip"
	"context"
	"io"
	"log/slog"
	"strings"

	"github.com/beevik/etree"

	"github.com/localsift/localsift"
)

// Ensure Walker implements localsift.Discoverer at compile time.
var _ localsift.Discoverer = (*Walker)(nil)

// Walker performs a breadth-first traversal of a sitemap index tree,
// classifying every leaf URL it encounters. Each unique sitemap node is
// fetched at most once; nodes that cannot be fetched, decompressed, or
// parsed are logged and skipped.
type Walker struct {
	// Fetcher retrieves sitemap documents.
	Fetcher localsift.Fetcher

	// Classifier buckets leaf URLs into search and detail pages.
	Classifier *Classifier

	// SitemapURL is the root sitemap index to start from.
	SitemapURL string

	// Domain restricts traversal to hosts ending with this suffix.
	Domain string

	// Logger for traversal diagnostics. Defaults to slog.Default().
	Logger *slog.Logger
}

// Discover walks the sitemap hierarchy and returns the discovered
// search-page and detail-page URL sets in lexicographic order.
func (w *Walker) Discover(ctx context.Context) (*localsift.Discovery, error) {
	logger := w.Logger
	if logger == nil {
		logger = slog.Default()
	}

	queue := []string{w.SitemapURL}
	visited := make(map[string]struct{})
	searchPages := make(map[string]struct{})
	detailPages := make(map[string]struct{})

	for len(queue) > 0 {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		sitemapURL := queue[0]
		queue = queue[1:]

		if _, ok := visited[sitemapURL]; ok {
			continue
		}
		visited[sitemapURL] = struct{}{}

		if !onDomain(sitemapURL, w.Domain) {
			continue
		}

		logger.Debug("fetching sitemap", "url", sitemapURL)
		content, err := w.Fetcher.Fetch(ctx, sitemapURL)
		if err != nil {
			continue
		}

		if strings.HasSuffix(sitemapURL, ".gz") {
			content, err = gunzip(content)
			if err != nil {
				logger.Warn("unable to decompress sitemap", "url", sitemapURL, "err", err)
				continue
			}
		}

		doc := etree.NewDocument()
		if err := doc.ReadFromBytes(content); err != nil {
			logger.Warn("failed to parse sitemap", "url", sitemapURL, "err", err)
			continue
		}
		root := doc.Root()
		if root == nil {
			logger.Warn("empty sitemap document", "url", sitemapURL)
			continue
		}

		// etree keeps namespace prefixes in Space, so Tag is always
		// the local name.
		switch root.Tag {
		case "sitemapindex":
			queue = append(queue, locations(root, "sitemap")...)
		case "urlset":
			for _, loc := range locations(root, "url") {
				if !onDomain(loc, w.Domain) {
					continue
				}
				switch {
				case w.Classifier.IsSearchPage(loc):
					searchPages[loc] = struct{}{}
				case w.Classifier.IsDetailPage(loc):
					detailPages[loc] = struct{}{}
				}
			}
		}
	}

	if len(searchPages) == 0 {
		logger.Warn("no search pages discovered via sitemap, falling back to detail pages only")
	}

	return &localsift.Discovery{
		SearchPages: sortedKeys(searchPages),
		DetailPages: sortedKeys(detailPages),
	}, nil
}

// locations collects the trimmed <loc> texts of every <child> element
// under root, matching local tag names only.
func locations(root *etree.Element, child string) []string {
	var locs []string
	for _, el := range root.ChildElements() {
		if el.Tag != child {
			continue
		}
		for _, kid := range el.ChildElements() {
			if kid.Tag != "loc" {
				continue
			}
			if text := strings.TrimSpace(kid.Text()); text != "" {
				locs = append(locs, text)
			}
		}
	}
	return locs
}

// gunzip decompresses gzip-compressed data.
func gunzip(data []byte) ([]byte, error) {
	zr, err := gzip.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	defer zr.Close()
	return io.ReadAll(zr)
}
