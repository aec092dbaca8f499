// Package crawl implements the sitemap-driven crawl pipeline: walking a
// site's sitemap hierarchy to discover relevant pages, following
// pagination on search result pages, harvesting listing URLs, and
// extracting business records from detail pages.
//
// Every component degrades gracefully: unreachable or malformed units
// are logged and skipped, never fatal to a run.
package crawl

import (
	"context"
	"net/url"
	"sort"
	"strings"

	"github.com/localsift/localsift"
)

// detailMarker is the path segment identifying a business detail page,
// e.g. /fr/d/geneve/societe-xyz-abcde.
const detailMarker = "d"

// FetchText fetches a URL and decodes the body as UTF-8, replacing
// invalid byte sequences with the Unicode replacement character.
func FetchText(ctx context.Context, f localsift.Fetcher, url string) (string, error) {
	b, err := f.Fetch(ctx, url)
	if err != nil {
		return "", err
	}
	return strings.ToValidUTF8(string(b), "�"), nil
}

// pathSegments splits a URL path into its non-empty segments.
func pathSegments(path string) []string {
	var segments []string
	for part := range strings.SplitSeq(path, "/") {
		if part != "" {
			segments = append(segments, part)
		}
	}
	return segments
}

// onDomain reports whether the URL's host belongs to the target site's
// domain. Suffix matching keeps subdomains in scope while rejecting
// off-site references.
func onDomain(rawURL, domain string) bool {
	u, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	return strings.HasSuffix(strings.ToLower(u.Hostname()), strings.ToLower(domain))
}

// resolveRef resolves href relative to base, returning "" when either
// cannot be parsed.
func resolveRef(base, href string) string {
	b, err := url.Parse(base)
	if err != nil {
		return ""
	}
	ref, err := url.Parse(href)
	if err != nil {
		return ""
	}
	return b.ResolveReference(ref).String()
}

// sortedKeys returns the keys of a string set in lexicographic order.
func sortedKeys(set map[string]struct{}) []string {
	keys := make([]string, 0, len(set))
	for key := range set {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
