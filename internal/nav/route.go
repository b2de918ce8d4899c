// Package nav models the reader's routes and its navigation history.
//
// A route is the URL-like address of a view. A payload is transient data
// handed from one view to the next; it lives only on the history entry
// created by Push or Replace and is never restored by Back, Forward or Reload.
package nav

import (
	"net/url"
	"strconv"
	"strings"

	"newsflix/internal/domain/entity"
	"newsflix/internal/utils/text"
)

// Kind identifies the view a route addresses.
type Kind int

const (
	KindNotFound Kind = iota
	KindHome
	KindArticle
	KindSearch
)

// String returns a short name used in logs.
func (k Kind) String() string {
	switch k {
	case KindHome:
		return "home"
	case KindArticle:
		return "article"
	case KindSearch:
		return "search"
	default:
		return "not_found"
	}
}

const articlePrefix = "/article/"

// Route is a parsed reader address.
//
// ArticleID is 0 when the detail route carries no usable id.
// Slug is advisory and only used for display and canonicalization.
type Route struct {
	Kind      Kind
	ArticleID int64
	Slug      string
	Query     string
	Lang      string
}

// Home returns the list route.
func Home() Route {
	return Route{Kind: KindHome}
}

// ArticleRoute builds the canonical detail route of an article.
func ArticleRoute(id int64, title string) Route {
	return Route{Kind: KindArticle, ArticleID: id, Slug: text.Slugify(title)}
}

// SearchRoute builds the search results route.
func SearchRoute(query string, lang entity.Language) Route {
	return Route{Kind: KindSearch, Query: query, Lang: string(lang)}
}

// Parse turns a path such as "/article/42/breaking-news" or
// "/search?q=mars&lang=en-us" into a Route.
//
// Parameters:
//   - raw: The path with an optional query string
//
// Returns:
//   - Route: KindNotFound for anything that does not match a known view
//
// Example:
//
//	r := Parse("/article/42/old-title")
//	// Returns: Route{Kind: KindArticle, ArticleID: 42, Slug: "old-title"}
func Parse(raw string) Route {
	u, err := url.Parse(raw)
	if err != nil {
		return Route{Kind: KindNotFound}
	}
	path := strings.TrimSuffix(u.Path, "/")

	switch {
	case path == "":
		return Home()
	case path == "/search":
		q := u.Query()
		return Route{Kind: KindSearch, Query: q.Get("q"), Lang: q.Get("lang")}
	case strings.HasPrefix(path, articlePrefix):
		return parseArticle(strings.TrimPrefix(path, articlePrefix))
	default:
		return Route{Kind: KindNotFound}
	}
}

func parseArticle(rest string) Route {
	idPart, slug, _ := strings.Cut(rest, "/")
	if strings.Contains(slug, "/") {
		return Route{Kind: KindNotFound}
	}
	r := Route{Kind: KindArticle, Slug: slug}
	// A malformed or non-positive id leaves ArticleID at 0; the resolver
	// then decides between the payload and NotFound.
	if id, err := strconv.ParseInt(idPart, 10, 64); err == nil && id > 0 {
		r.ArticleID = id
	}
	return r
}

// Path renders the route back into its address form.
func (r Route) Path() string {
	switch r.Kind {
	case KindHome:
		return "/"
	case KindArticle:
		p := articlePrefix + strconv.FormatInt(r.ArticleID, 10)
		if r.Slug != "" {
			p += "/" + r.Slug
		}
		return p
	case KindSearch:
		q := url.Values{}
		q.Set("q", r.Query)
		if r.Lang != "" {
			q.Set("lang", r.Lang)
		}
		return "/search?" + q.Encode()
	default:
		return "/404"
	}
}

// Payload is the transient data attached to a navigation.
// Either field may be unset; a nil *Payload means nothing was handed over.
type Payload struct {
	ArticleID int64
	Article   *entity.ArticleSummary
}

// ID returns the article id carried by the payload, preferring the explicit id.
func (p *Payload) ID() int64 {
	if p == nil {
		return 0
	}
	if p.ArticleID > 0 {
		return p.ArticleID
	}
	if p.Article != nil && p.Article.ArticleID > 0 {
		return p.Article.ArticleID
	}
	return 0
}
