package repository

import (
	"context"

	"newsflix/internal/domain/entity"
)

// ArticleLister returns the articles of one category in one language.
type ArticleLister interface {
	ListArticles(ctx context.Context, filters entity.FilterState) ([]entity.ArticleSummary, error)
}

// ArticleGetter returns the canonical detail record of one article.
type ArticleGetter interface {
	GetArticle(ctx context.Context, id int64) (entity.DetailedArticle, error)
}

// ArticleSearcher runs a keyword search in one language.
type ArticleSearcher interface {
	Search(ctx context.Context, query string, lang entity.Language) ([]entity.ArticleSummary, error)
}

// NewsRepository is the full read-only surface of the news API.
type NewsRepository interface {
	ArticleLister
	ArticleGetter
	ArticleSearcher
}
