package entity

import (
	"net/url"
	"strings"
)

// PlaceholderImageURL replaces article images that are missing or unusable.
const PlaceholderImageURL = "https://images.unsplash.com/photo-1585829365295-ab7cd400c167?w=800&auto=format&fit=crop"

// maxImageURLLength caps what we are willing to hand to a renderer.
const maxImageURLLength = 2048

// ImageURLOrPlaceholder returns raw when it is an absolute http(s) URL,
// and PlaceholderImageURL otherwise.
func ImageURLOrPlaceholder(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" || len(raw) > maxImageURLLength {
		return PlaceholderImageURL
	}
	parsed, err := url.Parse(raw)
	if err != nil {
		return PlaceholderImageURL
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return PlaceholderImageURL
	}
	if parsed.Host == "" {
		return PlaceholderImageURL
	}
	return raw
}
