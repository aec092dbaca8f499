package localsift

import "context"

// Discovery holds the URL sets found by walking a sitemap hierarchy.
type Discovery struct {
	// SearchPages are search result pages worth paginating through.
	SearchPages []string

	// DetailPages are business detail pages discovered directly.
	DetailPages []string
}

// Discoverer walks a site's sitemap hierarchy and buckets its leaf
// URLs into search pages and detail pages.
type Discoverer interface {
	Discover(ctx context.Context) (*Discovery, error)
}

// DetailParser retrieves a business detail page and extracts a record
// from it. A (nil, nil) return means the page was reachable but did
// not produce a record (keyword absent, postal code filtered out, or
// nothing extractable); this is a normal outcome, not an error.
type DetailParser interface {
	Parse(ctx context.Context, url string) (*BusinessRecord, error)
}

// RecordWriter persists extracted records. Implementations decide the
// output medium (CSV file, database, ...); a header-only output for an
// empty record list is valid.
type RecordWriter interface {
	WriteRecords(ctx context.Context, records []*BusinessRecord) error
}
