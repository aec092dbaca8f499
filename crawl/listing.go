package crawl

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// languageCodes are the site's supported UI language path prefixes.
// Detail page paths always start with one, e.g. /fr/d/geneve/....
var languageCodes = map[string]struct{}{
	"fr": {},
	"de": {},
	"en": {},
	"it": {},
}

// ExtractListingURLs pulls detail-page URLs out of a search result
// page's markup. Every anchor is resolved against pageURL; anchors
// whose path starts with a language code followed by the detail marker
// are rebuilt against baseURL and returned as a deduplicated set in
// lexicographic order.
func ExtractListingURLs(pageURL, html, baseURL string) []string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil
	}
	base, err := url.Parse(pageURL)
	if err != nil {
		return nil
	}

	seen := make(map[string]struct{})
	doc.Find("a[href]").Each(func(_ int, sel *goquery.Selection) {
		href := strings.TrimSpace(sel.AttrOr("href", ""))
		if href == "" {
			return
		}
		ref, err := url.Parse(href)
		if err != nil {
			return
		}
		absolute := base.ResolveReference(ref)

		parts := pathSegments(absolute.Path)
		if len(parts) < 3 {
			return
		}
		if _, ok := languageCodes[parts[0]]; !ok {
			return
		}
		if parts[1] != detailMarker {
			return
		}

		seen[strings.TrimSuffix(baseURL, "/")+absolute.Path] = struct{}{}
	})

	return sortedKeys(seen)
}
