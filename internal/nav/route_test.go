package nav

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"newsflix/internal/domain/entity"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name     string
		path     string
		expected Route
	}{
		{name: "root", path: "/", expected: Route{Kind: KindHome}},
		{name: "empty", path: "", expected: Route{Kind: KindHome}},
		{name: "article with slug", path: "/article/42/old-title", expected: Route{Kind: KindArticle, ArticleID: 42, Slug: "old-title"}},
		{name: "article without slug", path: "/article/42", expected: Route{Kind: KindArticle, ArticleID: 42}},
		{name: "article trailing slash", path: "/article/42/", expected: Route{Kind: KindArticle, ArticleID: 42}},
		{name: "article non numeric id", path: "/article/abc/title", expected: Route{Kind: KindArticle, Slug: "title"}},
		{name: "article zero id", path: "/article/0/title", expected: Route{Kind: KindArticle, Slug: "title"}},
		{name: "article negative id", path: "/article/-3", expected: Route{Kind: KindArticle}},
		{name: "article extra segment", path: "/article/1/a/b", expected: Route{Kind: KindNotFound}},
		{name: "search", path: "/search?q=mars+rover&lang=en-us", expected: Route{Kind: KindSearch, Query: "mars rover", Lang: "en-us"}},
		{name: "search without lang", path: "/search?q=x", expected: Route{Kind: KindSearch, Query: "x"}},
		{name: "unknown", path: "/settings", expected: Route{Kind: KindNotFound}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Parse(tt.path))
		})
	}
}

func TestRoute_PathRoundTrip(t *testing.T) {
	routes := []Route{
		Home(),
		{Kind: KindArticle, ArticleID: 42, Slug: "breaking-news"},
		{Kind: KindArticle, ArticleID: 7},
		SearchRoute("élection & résultats", entity.LanguageFrFR),
	}

	for _, r := range routes {
		t.Run(r.Path(), func(t *testing.T) {
			assert.Equal(t, r, Parse(r.Path()))
		})
	}
}

func TestArticleRoute(t *testing.T) {
	r := ArticleRoute(42, "Breaking News!")

	assert.Equal(t, "/article/42/breaking-news", r.Path())
	assert.Equal(t, "article", r.Kind.String())
}

func TestPayload_ID(t *testing.T) {
	tests := []struct {
		name     string
		payload  *Payload
		expected int64
	}{
		{name: "nil", payload: nil, expected: 0},
		{name: "explicit id", payload: &Payload{ArticleID: 5}, expected: 5},
		{name: "summary id", payload: &Payload{Article: &entity.ArticleSummary{ArticleID: 9}}, expected: 9},
		{name: "explicit wins", payload: &Payload{ArticleID: 5, Article: &entity.ArticleSummary{ArticleID: 9}}, expected: 5},
		{name: "summary without id", payload: &Payload{Article: &entity.ArticleSummary{Title: "x"}}, expected: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.payload.ID())
		})
	}
}
