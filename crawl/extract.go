package crawl

import (
	"regexp"
	"strings"
)

// postalCityRE matches a Swiss-style postal code (4 to 5 digits)
// followed by a locality name, e.g. "1204 Genève".
var postalCityRE = regexp.MustCompile(`(\d{4,5})\s+([A-Za-zÀ-ÿ\-\s]+)`)

// ExtractPostalCodeCity scans free-form address text for a postal code
// followed by a locality. Returns the code and the trimmed locality, or
// two empty strings when the text contains no such pair. Only the first
// match is considered.
func ExtractPostalCodeCity(text string) (zipcode, city string) {
	m := postalCityRE.FindStringSubmatch(text)
	if m == nil {
		return "", ""
	}
	return m[1], strings.TrimSpace(m[2])
}

// phoneRE matches a run of at least 7 phone-number characters starting
// with a digit, optionally preceded by a plus sign. Spaces, dots and
// dashes are accepted as separators.
var phoneRE = regexp.MustCompile(`\+?\d[\d\s.\-]{6,}`)

// nonPhoneRE matches every character that is not part of a canonical
// phone number.
var nonPhoneRE = regexp.MustCompile(`[^\d+]`)

// ExtractPhone scans free-form text for the first phone-number-shaped
// digit run and returns it stripped of separators, keeping only digits
// and a leading plus sign. Returns "" when the text contains none.
func ExtractPhone(text string) string {
	m := phoneRE.FindString(text)
	if m == "" {
		return ""
	}
	return nonPhoneRE.ReplaceAllString(m, "")
}
