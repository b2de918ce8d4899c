// Package article resolves the detail view of an article.
//
// A detail view can render immediately from a summary handed over by the
// previous view (fast path) and is then reconciled with the canonical record
// fetched by id (slow path). After the fetch, the address is canonicalized in
// place when the slug derived from the canonical title differs from the one
// in the address.
package article

import (
	"context"
	"log/slog"

	"newsflix/internal/domain/entity"
	"newsflix/internal/eventloop"
	"newsflix/internal/nav"
	"newsflix/internal/observability/metrics"
	"newsflix/internal/repository"
	"newsflix/internal/usecase/viewstate"
	"newsflix/internal/utils/text"
)

const controllerName = "article"

// Navigator is the part of nav.History the resolver uses.
type Navigator interface {
	Push(r nav.Route, p *nav.Payload)
	Replace(r nav.Route, p *nav.Payload)
	Current() nav.Entry
}

// Canonicalization is the in-place address rewrite issued after a fetch.
type Canonicalization struct {
	ID   int64
	Slug string
}

// State is a snapshot of the detail view.
//
// Display is nil until something can be rendered. Refreshing is true while the
// canonical record is being fetched behind a fast-path display. Err may be set
// while Status is Ready: the fetch failed but the fast-path display is kept.
// Terminal is true when there is nothing to show and the view should offer a
// way back.
type State struct {
	Status     viewstate.Status
	Route      nav.Route
	Display    *entity.Article
	Refreshing bool
	Err        error
	Terminal   bool
	Canonical  *Canonicalization
}

// Resolver produces the detail view for a route and its optional payload.
// All methods must be called on the loop goroutine.
type Resolver struct {
	loop      *eventloop.Loop
	getter    repository.ArticleGetter
	navigator Navigator
	logger    *slog.Logger

	state     State
	token     viewstate.Token
	cancel    context.CancelFunc
	listeners []func(State)
	settled   []func()
}

// NewResolver creates an idle resolver. navigator may be nil, in which case
// canonicalization is only reported in State.
func NewResolver(loop *eventloop.Loop, getter repository.ArticleGetter, navigator Navigator, logger *slog.Logger) *Resolver {
	if logger == nil {
		logger = slog.Default()
	}
	return &Resolver{
		loop:      loop,
		getter:    getter,
		navigator: navigator,
		logger:    logger.With(slog.String("controller", controllerName)),
	}
}

// OnChange registers fn to run after every state change.
func (r *Resolver) OnChange(fn func(State)) {
	r.listeners = append(r.listeners, fn)
}

// OnSettled registers fn to run once per Resolve, when the view stops loading.
// Views use it to scroll back to the top.
func (r *Resolver) OnSettled(fn func()) {
	r.settled = append(r.settled, fn)
}

// State returns the current snapshot.
func (r *Resolver) State() State {
	return r.state
}

// Open navigates to the detail view of a summary, handing it over as payload.
// A summary without a stable id gets the /article/0/<slug> address and can
// only be rendered from the payload.
func (r *Resolver) Open(summary entity.ArticleSummary) {
	if r.navigator == nil {
		return
	}
	s := summary
	r.navigator.Push(nav.ArticleRoute(s.ArticleID, s.Title), &nav.Payload{ArticleID: s.ArticleID, Article: &s})
}

// OpenSimilar navigates to a similar article with a bare id, which forces a fetch.
func (r *Resolver) OpenSimilar(ref entity.SimilarRef) {
	if r.navigator == nil || ref.ArticleID <= 0 {
		return
	}
	r.navigator.Push(nav.Route{Kind: nav.KindArticle, ArticleID: ref.ArticleID}, &nav.Payload{ArticleID: ref.ArticleID})
}

// Resolve starts resolving route. payload is nil after a reload, a history
// replay or direct entry of an address.
//
// A payload summary is displayed before Resolve returns. When an id is known,
// from the route or else from the payload, the canonical record is always
// fetched. Without an id and without a payload the view fails with a
// NotFoundError.
func (r *Resolver) Resolve(ctx context.Context, route nav.Route, payload *nav.Payload) {
	tok := r.token.Next()
	if r.cancel != nil {
		r.cancel()
		r.cancel = nil
	}

	id := route.ArticleID
	if id <= 0 {
		id = payload.ID()
	}

	var display *entity.Article
	if payload != nil && payload.Article != nil {
		a := payload.Article.AsArticle()
		display = &a
		metrics.RecordFastPathRender()
	}

	switch {
	case id <= 0 && display == nil:
		err := &entity.NotFoundError{Reason: "no article id in " + route.Path()}
		metrics.RecordViewError(controllerName, err)
		r.setState(State{Status: viewstate.Error, Route: route, Err: err, Terminal: true})
		r.fireSettled()
		return
	case id <= 0:
		// Payload only: nothing to reconcile against.
		r.setState(State{Status: viewstate.Ready, Route: route, Display: display})
		r.fireSettled()
		return
	case display == nil:
		r.setState(State{Status: viewstate.Loading, Route: route})
	default:
		r.setState(State{Status: viewstate.Ready, Route: route, Display: display, Refreshing: true})
	}

	reqCtx, cancel := context.WithCancel(ctx)
	r.cancel = cancel
	r.logger.Debug("fetching article",
		slog.Int64("article_id", id),
		slog.Bool("fast_path", display != nil))

	eventloop.Go(r.loop, func() (entity.DetailedArticle, error) {
		return r.getter.GetArticle(reqCtx, id)
	}, func(detail entity.DetailedArticle, err error) {
		cancel()
		if !r.token.Current(tok) {
			metrics.RecordStaleResponse(controllerName)
			return
		}
		r.cancel = nil
		defer r.fireSettled()

		if err != nil {
			metrics.RecordViewError(controllerName, err)
			r.logger.Warn("article fetch failed",
				slog.Int64("article_id", id),
				slog.Any("error", err))
			if display != nil {
				r.setState(State{Status: viewstate.Ready, Route: route, Display: display, Err: err})
				return
			}
			r.setState(State{Status: viewstate.Error, Route: route, Err: err, Terminal: true})
			return
		}

		if detail.ArticleID <= 0 {
			detail.ArticleID = id
		}
		resolved := detail.AsArticle()
		next := State{Status: viewstate.Ready, Route: route, Display: &resolved}

		if slug := text.Slugify(detail.Title); slug != "" && slug != route.Slug && r.showing(route) {
			canonical := nav.ArticleRoute(detail.ArticleID, detail.Title)
			next.Route = canonical
			next.Canonical = &Canonicalization{ID: canonical.ArticleID, Slug: canonical.Slug}
			metrics.RecordCanonicalRedirect()
			r.logger.Debug("canonicalizing article address",
				slog.String("from", route.Path()),
				slog.String("to", canonical.Path()))
			if r.navigator != nil {
				r.navigator.Replace(canonical, payload)
			}
		}
		r.setState(next)
	})
}

// showing reports whether the navigator still sits on route. Replacing any
// other entry would rewrite an address the user has already left.
func (r *Resolver) showing(route nav.Route) bool {
	if r.navigator == nil {
		return true
	}
	if current := r.navigator.Current().Route; current.Path() != route.Path() {
		r.logger.Debug("skipping canonicalization, address changed",
			slog.String("resolved", route.Path()),
			slog.String("current", current.Path()))
		return false
	}
	return true
}

// Stop abandons the in-flight fetch, if any.
func (r *Resolver) Stop() {
	r.token.Next()
	if r.cancel != nil {
		r.cancel()
		r.cancel = nil
	}
}

func (r *Resolver) setState(s State) {
	r.state = s
	for _, fn := range r.listeners {
		fn(s)
	}
}

func (r *Resolver) fireSettled() {
	for _, fn := range r.settled {
		fn()
	}
}
