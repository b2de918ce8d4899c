// Package text provides small string helpers shared by the reader views:
// rune-aware counting and truncation, and URL slug generation.
package text

import "strings"

// countRunes counts Unicode characters, so accented titles ("Élection",
// "Straße") count one per letter.
func countRunes(text string) int {
	return len([]rune(text))
}

// Truncate shortens text to at most max runes, replacing the tail with "…"
// when something was cut. Whitespace at the cut point is trimmed.
// A max of zero or less returns the text unchanged.
//
// Examples:
//
//	Truncate("Breaking news today", 10) // returns "Breaking…"
//	Truncate("short", 10)               // returns "short"
func Truncate(text string, max int) string {
	if max <= 0 {
		return text
	}
	if countRunes(text) <= max {
		return text
	}
	if max == 1 {
		return "…"
	}
	runes := []rune(text)
	return strings.TrimRight(string(runes[:max-1]), " \t\n") + "…"
}
