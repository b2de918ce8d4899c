package fixtures

import (
	"time"

	"newsflix/internal/domain/entity"
)

// SummaryOption is a functional option for customizing test summaries.
type SummaryOption func(*entity.ArticleSummary)

// NewTestSummary creates an ArticleSummary with sensible defaults.
//
// Example:
//
//	summary := NewTestSummary(WithArticleID(42), WithTitle("Old Title"))
func NewTestSummary(opts ...SummaryOption) entity.ArticleSummary {
	s := entity.ArticleSummary{
		ArticleID:   1,
		Title:       "Test Article",
		SourceName:  "Le Monde",
		PublishedAt: time.Date(2024, 3, 2, 10, 15, 0, 0, time.UTC),
		ImageURL:    "https://img.newsflix.test/1.jpg",
		Excerpt:     "Test excerpt.",
		Similar:     []entity.SimilarRef{},
	}
	for _, opt := range opts {
		opt(&s)
	}
	return s
}

// WithArticleID sets the article id. Zero means "no stable id".
func WithArticleID(id int64) SummaryOption {
	return func(s *entity.ArticleSummary) {
		s.ArticleID = id
	}
}

// WithTitle sets the title.
func WithTitle(title string) SummaryOption {
	return func(s *entity.ArticleSummary) {
		s.Title = title
	}
}

// WithExcerpt sets the body excerpt.
func WithExcerpt(excerpt string) SummaryOption {
	return func(s *entity.ArticleSummary) {
		s.Excerpt = excerpt
	}
}

// WithSimilarIDs attaches similar references with the given ids.
func WithSimilarIDs(ids ...int64) SummaryOption {
	return func(s *entity.ArticleSummary) {
		s.Similar = make([]entity.SimilarRef, 0, len(ids))
		for _, id := range ids {
			s.Similar = append(s.Similar, entity.SimilarRef{ArticleID: id, Title: "Similar", SourceName: "Source"})
		}
	}
}

// NewTestDetail creates a DetailedArticle with a full body.
func NewTestDetail(id int64, title string) entity.DetailedArticle {
	return entity.DetailedArticle{
		ArticleID:   id,
		SourceName:  "Le Monde",
		Title:       title,
		PublishedAt: time.Date(2024, 3, 2, 10, 15, 0, 0, time.UTC),
		FullBody:    "Full body of " + title,
		ImageURL:    "https://img.newsflix.test/detail.jpg",
		Excerpt:     "Short summary.",
		Similar:     []entity.SimilarRef{},
	}
}
