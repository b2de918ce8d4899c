// Package htmltext turns the HTML fragments found in article bodies into
// plain text that a terminal can render.
package htmltext

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

const blockSelector = "p, div, li, blockquote, h1, h2, h3, h4, h5, h6, tr"

// ToText converts an HTML fragment to plain text.
// Block elements become paragraphs separated by one blank line, <br> becomes a
// line break, and scripts and styles are removed. Input without markup is only
// whitespace-normalized. A fragment that fails to parse is returned normalized
// as-is.
func ToText(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	if !strings.ContainsAny(raw, "<&") {
		return normalize(raw)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(raw))
	if err != nil {
		return normalize(raw)
	}
	doc.Find("script, style, noscript, iframe").Remove()
	doc.Find("br").ReplaceWithHtml("\n")
	doc.Find(blockSelector).Each(func(_ int, s *goquery.Selection) {
		s.BeforeHtml("\n\n")
		s.AppendHtml("\n\n")
	})

	return normalize(doc.Text())
}

// normalize collapses runs of spaces inside each line and keeps at most one
// blank line between paragraphs.
func normalize(text string) string {
	lines := strings.Split(text, "\n")
	out := make([]string, 0, len(lines))
	blank := false
	for _, line := range lines {
		line = strings.Join(strings.Fields(line), " ")
		if line == "" {
			blank = len(out) > 0
			continue
		}
		if blank {
			out = append(out, "")
			blank = false
		}
		out = append(out, line)
	}
	return strings.Join(out, "\n")
}

// Paragraphs splits converted text on blank lines.
func Paragraphs(text string) []string {
	if text == "" {
		return nil
	}
	return strings.Split(text, "\n\n")
}
