// Package entity defines the core domain entities of the reader.
// It contains the article shapes returned by the news API, the persisted filter state,
// the similar-article normalization and the error taxonomy shared by every view.
package entity

import "time"

// MaxSimilar is the maximum number of similar articles attached to one article.
const MaxSimilar = 5

// SimilarRef is a pointer to a related article.
// PublishedAt is nil when the wire shape did not carry a date.
type SimilarRef struct {
	ArticleID   int64
	Title       string
	SourceName  string
	PublishedAt *time.Time
}

// ArticleSummary is one entry of a list or search result.
// ArticleID is 0 when the endpoint did not return a stable identifier.
type ArticleSummary struct {
	ArticleID   int64
	Title       string
	SourceName  string
	PublishedAt time.Time
	ImageURL    string
	Excerpt     string
	Similar     []SimilarRef
}

// HasID reports whether the summary carries a usable article identifier.
func (s ArticleSummary) HasID() bool {
	return s.ArticleID > 0
}

// AsArticle converts the summary into a displayable article.
func (s ArticleSummary) AsArticle() Article {
	return Article{
		ArticleID:   s.ArticleID,
		Title:       s.Title,
		SourceName:  s.SourceName,
		PublishedAt: s.PublishedAt,
		ImageURL:    s.ImageURL,
		Excerpt:     s.Excerpt,
		Similar:     s.Similar,
	}
}

// DetailedArticle is the canonical record returned by the detail endpoint.
// It supersedes any summary held from navigation state.
type DetailedArticle struct {
	ArticleID   int64
	SourceName  string
	Title       string
	PublishedAt time.Time
	FullBody    string
	ImageURL    string
	Excerpt     string
	Similar     []SimilarRef
}

// AsArticle converts the detail record into a displayable article.
func (d DetailedArticle) AsArticle() Article {
	return Article{
		ArticleID:   d.ArticleID,
		Title:       d.Title,
		SourceName:  d.SourceName,
		PublishedAt: d.PublishedAt,
		ImageURL:    d.ImageURL,
		Excerpt:     d.Excerpt,
		FullBody:    d.FullBody,
		Similar:     d.Similar,
		Detailed:    true,
	}
}

// Article is what a detail view renders.
// Detailed is true once the record came from the detail endpoint.
type Article struct {
	ArticleID   int64
	Title       string
	SourceName  string
	PublishedAt time.Time
	ImageURL    string
	Excerpt     string
	FullBody    string
	Similar     []SimilarRef
	Detailed    bool
}

// Body returns the full body when known, falling back to the excerpt.
func (a Article) Body() string {
	if a.FullBody != "" {
		return a.FullBody
	}
	return a.Excerpt
}
