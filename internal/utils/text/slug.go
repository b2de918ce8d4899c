package text

import (
	"regexp"
	"strings"
)

var nonSlugRun = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify derives the URL slug of an article title: lower-cased, every run of
// characters outside [a-z0-9] collapsed to a single "-", with no leading or
// trailing "-". Characters outside ASCII are not transliterated, so an
// all-Cyrillic title yields "".
//
// Slugify is idempotent: Slugify(Slugify(t)) == Slugify(t).
//
// Examples:
//
//	Slugify("Breaking News!")      // returns "breaking-news"
//	Slugify("  Élection 2024 : ") // returns "lection-2024"
//	Slugify("")                    // returns ""
func Slugify(title string) string {
	slug := nonSlugRun.ReplaceAllString(strings.ToLower(title), "-")
	return strings.Trim(slug, "-")
}
