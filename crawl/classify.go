package crawl

import (
	"net/url"
	"strings"

	"github.com/localsift/localsift"
)

// Classifier buckets sitemap leaf URLs into search pages and detail
// pages using coarse, best-effort heuristics that prioritize recall
// over precision. False positives are filtered later by the detail
// parser; false negatives are an accepted limitation.
type Classifier struct {
	query localsift.Query
}

// NewClassifier creates a Classifier for the given query.
func NewClassifier(query localsift.Query) *Classifier {
	return &Classifier{query: query}
}

// IsSearchPage reports whether the URL looks like a search result page
// relevant to the query.
//
// The path must contain a query-endpoint marker ("/q" or "search").
// When the URL carries query parameters, the keyword must appear in a
// "what" parameter value; the postal code filter is then satisfied by a
// "where" parameter value containing a configured code, falling back to
// a substring check anywhere in the lowered URL. Without query
// parameters, both keyword and postal codes are matched as plain
// substrings of the lowered URL.
func (c *Classifier) IsSearchPage(rawURL string) bool {
	u, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	if !strings.Contains(u.Path, "/q") && !strings.Contains(u.Path, "search") {
		return false
	}

	lowered := strings.ToLower(rawURL)
	query := u.Query()
	if len(query) > 0 {
		if c.query.Keyword != "" && !anyValueContains(query["what"], c.query.Keyword) {
			return false
		}

		if len(c.query.PostalCodes) > 0 {
			for _, code := range c.query.PostalCodes.Codes() {
				if anyValueContains(query["where"], code) {
					return true
				}
			}
			return containsAnyCode(lowered, c.query.PostalCodes)
		}
	}

	if !strings.Contains(lowered, c.query.Keyword) {
		return false
	}
	return len(c.query.PostalCodes) == 0 || containsAnyCode(lowered, c.query.PostalCodes)
}

// IsDetailPage reports whether the URL looks like a business detail
// page relevant to the query. The path needs at least 3 segments with
// the second equal to the detail marker; the postal code is usually not
// present in the path, so only the keyword is checked to avoid
// downloading every single listing.
func (c *Classifier) IsDetailPage(rawURL string) bool {
	u, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	parts := pathSegments(u.Path)
	if len(parts) < 3 {
		return false
	}
	if parts[1] != detailMarker {
		return false
	}
	if c.query.Keyword != "" && !strings.Contains(strings.ToLower(rawURL), c.query.Keyword) {
		return false
	}
	return true
}

// anyValueContains reports whether any of the values contains the
// needle, case-insensitively.
func anyValueContains(values []string, needle string) bool {
	for _, value := range values {
		if strings.Contains(strings.ToLower(value), needle) {
			return true
		}
	}
	return false
}

// containsAnyCode reports whether the lowered URL contains any of the
// configured postal codes.
func containsAnyCode(lowered string, codes localsift.PostalCodeSet) bool {
	for _, code := range codes.Codes() {
		if strings.Contains(lowered, code) {
			return true
		}
	}
	return false
}
