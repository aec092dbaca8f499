package crawl

import (
	"context"
	"iter"
	"log/slog"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/localsift/localsift"
)

// nextLabels maps a preferred UI language to the visible label of its
// "next page" control. The English "next" is always accepted as well.
var nextLabels = map[string]string{
	"fr": "suivant",
	"de": "weiter",
	"it": "avanti",
	"en": "next",
}

// Paginator follows "next page" links on search result pages.
type Paginator struct {
	// Fetcher retrieves search result pages.
	Fetcher localsift.Fetcher

	// Language selects the localized label of the next-page control.
	Language string

	// Logger for pagination diagnostics. Defaults to slog.Default().
	Logger *slog.Logger
}

// Pages returns a lazy, finite sequence of (url, html) pairs starting
// at startURL. The sequence ends when a page is unavailable, has no
// next link, or the next link points to an already-visited URL. Each
// call starts a fresh seen-set, so the sequence is restartable, but
// each page is yielded at most once per call.
func (p *Paginator) Pages(ctx context.Context, startURL string) iter.Seq2[string, string] {
	return func(yield func(string, string) bool) {
		seen := make(map[string]struct{})
		next := startURL

		for next != "" {
			if _, ok := seen[next]; ok {
				return
			}
			seen[next] = struct{}{}

			html, err := FetchText(ctx, p.Fetcher, next)
			if err != nil || html == "" {
				return
			}
			if !yield(next, html) {
				return
			}

			next = p.nextPageURL(next, html)
		}
	}
}

// nextPageURL finds the URL of the next result page, preferring an
// explicit next-relation link element, then a next-relation anchor,
// then any anchor or button whose visible text is the localized
// "next" label. Returns "" when no next page exists.
func (p *Paginator) nextPageURL(pageURL, html string) string {
	logger := p.Logger
	if logger == nil {
		logger = slog.Default()
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		logger.Warn("failed to parse search result page", "url", pageURL, "err", err)
		return ""
	}

	if href, ok := doc.Find("link[rel=next]").Attr("href"); ok && href != "" {
		return resolveRef(pageURL, href)
	}
	if href, ok := doc.Find("a[rel=next]").Attr("href"); ok && href != "" {
		return resolveRef(pageURL, href)
	}

	label := nextLabels[strings.ToLower(p.Language)]
	var next string
	doc.Find("a, button").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		text := strings.ToLower(strings.TrimSpace(sel.Text()))
		if text != "next" && (label == "" || text != label) {
			return true
		}
		// First matching control wins; without an href the trail ends.
		if href, ok := sel.Attr("href"); ok && href != "" {
			next = resolveRef(pageURL, href)
		}
		return false
	})
	return next
}
