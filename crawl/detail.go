package crawl

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/kaptinlin/jsonrepair"

	"github.com/localsift/localsift"
)

// recognizedTypes is the schema.org type allow-list identifying a
// business entity. Entries with any other declared type are ignored.
var recognizedTypes = map[string]struct{}{
	"localbusiness":       {},
	"professionalservice": {},
	"organization":        {},
	"dentist":             {},
	"physician":           {},
	"store":               {},
}

// Ensure Parser implements localsift.DetailParser at compile time.
var _ localsift.DetailParser = (*Parser)(nil)

// Parser extracts a business record from a detail page. It tries
// embedded schema.org structured data first and falls back to markup
// heuristics for fields the structured data left unset; every step
// degrades gracefully to an empty field.
type Parser struct {
	// Fetcher retrieves detail pages.
	Fetcher localsift.Fetcher

	// Query supplies the keyword and postal-code filters.
	Query localsift.Query

	// Domain is the site's own domain, used to tell external website
	// links apart from internal navigation.
	Domain string

	// Logger for parsing diagnostics. Defaults to slog.Default().
	Logger *slog.Logger
}

// fieldExtractor attempts to populate still-empty record fields from
// the parsed document. Extractors run in order; the first value found
// for a field wins and later extractors leave it untouched.
type fieldExtractor func(doc *goquery.Document, rec *localsift.BusinessRecord)

// Parse fetches the detail page at url and extracts a record from it.
// Returns (nil, nil) when the page is irrelevant: the keyword is absent
// from the page text, or the extracted zipcode fails the postal-code
// filter. Fetch failures surface as the fetcher's error.
func (p *Parser) Parse(ctx context.Context, url string) (*localsift.BusinessRecord, error) {
	html, err := FetchText(ctx, p.Fetcher, url)
	if err != nil {
		return nil, err
	}

	// Cheap relevance gate before any parsing.
	if p.Query.Keyword != "" && !strings.Contains(strings.ToLower(html), p.Query.Keyword) {
		return nil, nil
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, localsift.Errorf(localsift.EINVALID, "failed to parse detail page %s: %v", url, err)
	}

	record := &localsift.BusinessRecord{SourceURL: url}
	extractors := []fieldExtractor{
		p.extractStructuredData,
		extractHeading,
		extractAddress,
		extractPhone,
		extractEmail,
		p.extractWebsite,
	}
	for _, extract := range extractors {
		extract(doc, record)
	}

	if len(p.Query.PostalCodes) > 0 {
		if record.Zipcode == "" || !p.Query.PostalCodes.Contains(record.Zipcode) {
			return nil, nil
		}
	}

	return record, nil
}

func (p *Parser) logger() *slog.Logger {
	if p.Logger != nil {
		return p.Logger
	}
	return slog.Default()
}

// extractStructuredData scans the page's JSON-LD blocks for the first
// entry whose declared type is recognized and copies its fields into
// the record. Malformed blocks are repaired once and otherwise skipped.
func (p *Parser) extractStructuredData(doc *goquery.Document, rec *localsift.BusinessRecord) {
	var entry *structuredBusiness
	doc.Find(`script[type="application/ld+json"]`).EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		raw := strings.TrimSpace(sel.Text())
		if raw == "" {
			return true
		}

		entries, err := decodeBusinessEntries(raw)
		if err != nil {
			// JSON-LD in the wild is frequently sloppy; repair once
			// before giving up on the block.
			if repaired, rerr := jsonrepair.JSONRepair(raw); rerr == nil {
				entries, err = decodeBusinessEntries(repaired)
			}
			if err != nil {
				p.logger().Debug("skipping malformed structured data block", "url", rec.SourceURL, "err", err)
				return true
			}
		}

		for i := range entries {
			if entries[i].recognized() {
				entry = &entries[i]
				return false
			}
		}
		return true
	})
	if entry == nil {
		return
	}

	setIfEmpty(&rec.Name, string(entry.Name))
	setIfEmpty(&rec.Address, string(entry.Address.StreetAddress))
	setIfEmpty(&rec.Zipcode, string(entry.Address.PostalCode))
	setIfEmpty(&rec.City, string(entry.Address.AddressLocality))
	setIfEmpty(&rec.Phone, string(entry.Telephone))
	setIfEmpty(&rec.Email, string(entry.Email))
	setIfEmpty(&rec.Website, string(entry.URL))
}

// extractHeading populates the name from the first top-level heading.
func extractHeading(doc *goquery.Document, rec *localsift.BusinessRecord) {
	if rec.Name != "" {
		return
	}
	rec.Name = strings.TrimSpace(doc.Find("h1").First().Text())
}

// extractAddress populates address, zipcode and city from the page's
// address element.
func extractAddress(doc *goquery.Document, rec *localsift.BusinessRecord) {
	if rec.Address != "" && rec.Zipcode != "" && rec.City != "" {
		return
	}
	node := doc.Find("address").First()
	if node.Length() == 0 {
		return
	}

	text := strings.Join(strings.Fields(node.Text()), " ")
	setIfEmpty(&rec.Address, text)

	zipcode, city := ExtractPostalCodeCity(text)
	setIfEmpty(&rec.Zipcode, zipcode)
	setIfEmpty(&rec.City, city)
}

// extractPhone populates the phone from a tel: link, falling back to a
// phone-shaped digit run anywhere in the page text.
func extractPhone(doc *goquery.Document, rec *localsift.BusinessRecord) {
	if rec.Phone != "" {
		return
	}
	if href, ok := doc.Find(`a[href^="tel:"]`).First().Attr("href"); ok {
		rec.Phone = strings.TrimSpace(strings.TrimPrefix(href, "tel:"))
		return
	}
	rec.Phone = ExtractPhone(doc.Text())
}

// extractEmail populates the email from a mailto: link.
func extractEmail(doc *goquery.Document, rec *localsift.BusinessRecord) {
	if rec.Email != "" {
		return
	}
	if href, ok := doc.Find(`a[href^="mailto:"]`).First().Attr("href"); ok {
		rec.Email = strings.TrimSpace(strings.TrimPrefix(href, "mailto:"))
	}
}

// extractWebsite populates the website from a link explicitly marked as
// the business website, falling back to the first external absolute
// link on the page.
func (p *Parser) extractWebsite(doc *goquery.Document, rec *localsift.BusinessRecord) {
	if rec.Website != "" {
		return
	}

	var website string
	doc.Find("a[data-testid]").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		testid := strings.ToLower(sel.AttrOr("data-testid", ""))
		if !strings.Contains(testid, "website") {
			return true
		}
		if href := strings.TrimSpace(sel.AttrOr("href", "")); href != "" {
			website = href
			return false
		}
		return true
	})
	if website != "" {
		rec.Website = website
		return
	}

	doc.Find("a[href]").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		href := strings.TrimSpace(sel.AttrOr("href", ""))
		if strings.HasPrefix(href, "http") && !strings.Contains(href, p.Domain) {
			website = href
			return false
		}
		return true
	})
	rec.Website = website
}

// setIfEmpty assigns value to dst only when dst is still unset.
func setIfEmpty(dst *string, value string) {
	if *dst == "" && value != "" {
		*dst = value
	}
}

// structuredBusiness is the closed set of fields read from a schema.org
// business entry. All fields are optional; values that are not
// string-shaped are tolerated and dropped rather than failing the
// whole block.
type structuredBusiness struct {
	Type      typeList      `json:"@type"`
	Name      flexString    `json:"name"`
	Telephone flexString    `json:"telephone"`
	Email     flexString    `json:"email"`
	URL       flexString    `json:"url"`
	Address   postalAddress `json:"address"`
}

// recognized reports whether any declared type is in the allow-list.
func (b *structuredBusiness) recognized() bool {
	for _, t := range b.Type {
		if _, ok := recognizedTypes[strings.ToLower(t)]; ok {
			return true
		}
	}
	return false
}

// decodeBusinessEntries decodes a JSON-LD block that may hold a single
// object or an array of objects. Array entries that are not objects are
// skipped.
func decodeBusinessEntries(raw string) ([]structuredBusiness, error) {
	trimmed := strings.TrimSpace(raw)
	if strings.HasPrefix(trimmed, "[") {
		var rawEntries []json.RawMessage
		if err := json.Unmarshal([]byte(trimmed), &rawEntries); err != nil {
			return nil, err
		}
		var entries []structuredBusiness
		for _, rawEntry := range rawEntries {
			var entry structuredBusiness
			if err := json.Unmarshal(rawEntry, &entry); err != nil {
				continue
			}
			entries = append(entries, entry)
		}
		return entries, nil
	}

	var entry structuredBusiness
	if err := json.Unmarshal([]byte(trimmed), &entry); err != nil {
		return nil, err
	}
	return []structuredBusiness{entry}, nil
}

// typeList decodes a schema.org @type that may be a string or a list of
// strings. Any other shape decodes to an empty list.
type typeList []string

func (t *typeList) UnmarshalJSON(data []byte) error {
	var single string
	if err := json.Unmarshal(data, &single); err == nil {
		*t = typeList{single}
		return nil
	}
	var many []string
	if err := json.Unmarshal(data, &many); err == nil {
		*t = typeList(many)
		return nil
	}
	*t = nil
	return nil
}

// flexString decodes a JSON value that should be a string but is
// sometimes published as a number. Any other shape decodes to "".
type flexString string

func (s *flexString) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err == nil {
		*s = flexString(str)
		return nil
	}
	var num json.Number
	if err := json.Unmarshal(data, &num); err == nil {
		*s = flexString(num.String())
		return nil
	}
	*s = ""
	return nil
}

// postalAddress decodes a schema.org address that may be an object or,
// on some pages, a bare string; non-object shapes decode to all-empty
// fields so the markup fallbacks can take over.
type postalAddress struct {
	StreetAddress   flexString `json:"streetAddress"`
	PostalCode      flexString `json:"postalCode"`
	AddressLocality flexString `json:"addressLocality"`
}

func (a *postalAddress) UnmarshalJSON(data []byte) error {
	trimmed := strings.TrimSpace(string(data))
	if !strings.HasPrefix(trimmed, "{") {
		*a = postalAddress{}
		return nil
	}
	type alias postalAddress
	var decoded alias
	if err := json.Unmarshal(data, &decoded); err != nil {
		*a = postalAddress{}
		return nil
	}
	*a = postalAddress(decoded)
	return nil
}
