package crawl_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/localsift/localsift/crawl"
)

func TestExtractPostalCodeCity(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		text     string
		wantZip  string
		wantCity string
	}{
		{"swiss code and city", "Rue du Rhône 5 1204 Genève", "1204", "Genève"},
		{"five digit code", "Hauptstrasse 1 79100 Freiburg", "79100", "Freiburg"},
		{"hyphenated city", "1700 La Chaux-de-Fonds", "1700", "La Chaux-de-Fonds"},
		{"accented city", "1950 Sion-Château", "1950", "Sion-Château"},
		{"no postal code", "Rue du Rhône 5, Genève", "", ""},
		{"code without city", "Postfach 8000", "", ""},
		{"too few digits", "Tel 123 Bern", "", ""},
		{"empty text", "", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			zip, city := crawl.ExtractPostalCodeCity(tt.text)
			assert.Equal(t, tt.wantZip, zip)
			assert.Equal(t, tt.wantCity, city)
		})
	}
}

func TestExtractPhone(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		text string
		want string
	}{
		{"international format", "Appelez +41 22 123 45 67 maintenant", "+41221234567"},
		{"dotted format", "Tél: 022.123.45.67", "0221234567"},
		{"dashed format", "022-123-45-67", "0221234567"},
		{"plain digits", "0221234567", "0221234567"},
		{"too short", "Tel 12345", ""},
		{"no digits", "pas de téléphone", ""},
		{"empty text", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, crawl.ExtractPhone(tt.text))
		})
	}
}
