// Package fs provides local file based inputs for the scraper.
package fs

import (
	"os"
	"strings"

	"github.com/localsift/localsift"
)

// ReadPostalCodes reads a postal code input file: UTF-8 text, one code
// per line, blank lines ignored. Returns an ENOTFOUND error when the
// file does not exist.
func ReadPostalCodes(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, localsift.Errorf(localsift.ENOTFOUND, "input file not found: %s", path)
		}
		return nil, err
	}

	var codes []string
	for line := range strings.SplitSeq(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			codes = append(codes, line)
		}
	}
	return codes, nil
}
