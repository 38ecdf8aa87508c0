package utils

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

var (
	// Everything except word characters, hyphens, parentheses and whitespace
	disallowedChars = regexp.MustCompile(`[^-()\w\s]`)
	// Runs of hyphens and control whitespace collapse to a single hyphen
	dashRuns = regexp.MustCompile("[-\t\n\r\f\v]+")
)

// NormalizeFilepath converts a free-text film title into a folder name Radarr
// accepts. Colons become " - " (Radarr's path convention), diacritics and
// non-Latin scripts are stripped rather than transliterated. An empty result
// is an error: writing a film under an empty folder name would corrupt the
// library layout, so the caller must abort instead.
func NormalizeFilepath(title string) (string, error) {
	value := strings.ReplaceAll(title, ":", " - ")

	// Decompose, then keep only the ASCII code points
	decomposed := norm.NFKD.String(value)
	var ascii strings.Builder
	for _, r := range decomposed {
		if r <= unicode.MaxASCII {
			ascii.WriteRune(r)
		}
	}

	value = disallowedChars.ReplaceAllString(ascii.String(), "")
	value = dashRuns.ReplaceAllString(value, "-")
	value = strings.Trim(value, "-_")
	value = strings.ReplaceAll(value, "  ", " ")
	value = strings.TrimSpace(value)

	if value == "" {
		return "", fmt.Errorf("title %q has no usable characters for a folder name", title)
	}

	return value, nil
}
