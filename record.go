package localsift

import (
	"regexp"
	"sort"
	"strings"
)

// BusinessRecord holds the information extracted from one business
// detail page. SourceURL is the natural identity key; every other
// field is optional and rendered as an empty string when absent.
type BusinessRecord struct {
	SourceURL string `json:"sourceUrl"`
	Name      string `json:"name"`
	Address   string `json:"address"`
	Zipcode   string `json:"zipcode"`
	City      string `json:"city"`
	Phone     string `json:"phone"`
	Email     string `json:"email"`
	Website   string `json:"website"`
}

// Validate returns an error if the record contains invalid fields.
func (r *BusinessRecord) Validate() error {
	if r.SourceURL == "" {
		return Errorf(EINVALID, "record source URL required")
	}
	return nil
}

// RecordFields lists the output columns in their canonical order.
func RecordFields() []string {
	return []string{"source_url", "name", "address", "zipcode", "city", "phone", "email", "website"}
}

// Row returns the record's field values in RecordFields order, with
// empty strings for unset fields.
func (r *BusinessRecord) Row() []string {
	return []string{r.SourceURL, r.Name, r.Address, r.Zipcode, r.City, r.Phone, r.Email, r.Website}
}

var whitespaceRE = regexp.MustCompile(`\s+`)

// NormalizePostalCode strips all whitespace from a postal code so that
// set membership comparisons are consistent regardless of formatting
// (e.g. "12 04" and "1204" compare equal).
func NormalizePostalCode(code string) string {
	return whitespaceRE.ReplaceAllString(code, "")
}

// PostalCodeSet is a set of normalized postal codes. The empty set
// means "no filtering".
type PostalCodeSet map[string]struct{}

// NewPostalCodeSet builds a set from raw codes, normalizing each and
// dropping empty entries.
func NewPostalCodeSet(codes []string) PostalCodeSet {
	set := make(PostalCodeSet)
	for _, code := range codes {
		normalized := NormalizePostalCode(code)
		if normalized == "" {
			continue
		}
		set[normalized] = struct{}{}
	}
	return set
}

// Contains reports whether the normalized form of code is a member.
func (s PostalCodeSet) Contains(code string) bool {
	_, ok := s[NormalizePostalCode(code)]
	return ok
}

// Codes returns the members in lexicographic order.
func (s PostalCodeSet) Codes() []string {
	codes := make([]string, 0, len(s))
	for code := range s {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}

// Query carries the user's search parameters. The keyword is stored
// lowercased since every match against it is case-insensitive.
type Query struct {
	Keyword     string
	PostalCodes PostalCodeSet
	Language    string
}

// NewQuery constructs a Query, lowercasing the keyword and normalizing
// the postal codes.
func NewQuery(keyword string, postalCodes []string, language string) Query {
	return Query{
		Keyword:     strings.ToLower(keyword),
		PostalCodes: NewPostalCodeSet(postalCodes),
		Language:    language,
	}
}
