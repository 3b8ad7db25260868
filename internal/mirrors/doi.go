package mirrors

import (
	"net/url"
	"regexp"
	"strings"
)

var doiURLPattern = regexp.MustCompile(`(?i)^https://doi\.org/`)

// NormalizeDOI converts a DOI or DOI URL to the bare lowercase form used as a
// lookup key
func NormalizeDOI(doi string) string {
	if doiURLPattern.MatchString(doi) {
		if u, err := url.Parse(doi); err == nil {
			// Path is already percent-decoded
			doi = strings.TrimPrefix(u.Path, "/")
		}
	}
	return strings.ToLower(doi)
}

// NormalizeDOIs normalizes each DOI, dropping empty values
func NormalizeDOIs(dois []string) []string {
	out := make([]string, 0, len(dois))
	for _, doi := range dois {
		if doi == "" {
			continue
		}
		out = append(out, NormalizeDOI(doi))
	}
	return out
}
