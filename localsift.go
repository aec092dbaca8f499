// Package localsift scrapes business listings from a local.ch-style
// directory site. It discovers relevant search and detail pages through
// the site's sitemap hierarchy, harvests listing URLs from paginated
// search result pages, and extracts structured business records from
// detail pages, filtered by keyword relevance and postal code.
//
// This package contains domain types and interfaces following Ben
// Johnson's Standard Package Layout. Implementations live in
// subdirectories named after their primary dependency (e.g., http/,
// crawl/, csv/, sqlite/).
package localsift
