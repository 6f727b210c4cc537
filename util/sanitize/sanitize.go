// Package sanitize normalizes operator-supplied names into identifiers.
package sanitize

import (
	"regexp"
	"strings"
)

var (
	separatorReplacer = strings.NewReplacer(" ", "-", "_", "-", ".", "-")
	nonSlugRegex      = regexp.MustCompile(`[^a-z0-9-]+`)
	multiDashRegex    = regexp.MustCompile(`-+`)
)

// maxSlug bounds ids derived from file names.
const maxSlug = 50

// Slug lowercases s and reduces it to letters, digits and single hyphens,
// e.g. "Ice Hockey (NHL).yml" stem "Ice Hockey (NHL)" becomes "ice-hockey-nhl".
func Slug(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = separatorReplacer.Replace(s)
	s = nonSlugRegex.ReplaceAllString(s, "-")
	s = multiDashRegex.ReplaceAllString(s, "-")
	s = strings.Trim(s, "-")
	if len(s) > maxSlug {
		s = strings.TrimRight(s[:maxSlug], "-")
	}
	return s
}
