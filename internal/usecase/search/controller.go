// Package search drives the keyword search view.
//
// Search is independent of the persisted category; it only takes a language.
package search

import (
	"context"
	"log/slog"
	"strings"

	"newsflix/internal/domain/entity"
	"newsflix/internal/eventloop"
	"newsflix/internal/nav"
	"newsflix/internal/observability/metrics"
	"newsflix/internal/repository"
	"newsflix/internal/usecase/viewstate"
)

const controllerName = "search"

// Navigator is the part of nav.History the controller uses.
type Navigator interface {
	Push(r nav.Route, p *nav.Payload)
}

// State is a snapshot of the search view.
// A successful search with no match is Ready with an empty Articles slice.
type State struct {
	Status   viewstate.Status
	Query    string
	Lang     entity.Language
	Articles []entity.ArticleSummary
	Err      error
}

// Controller runs searches on explicit submission.
// All methods must be called on the loop goroutine.
type Controller struct {
	loop      *eventloop.Loop
	searcher  repository.ArticleSearcher
	navigator Navigator
	logger    *slog.Logger

	state     State
	token     viewstate.Token
	cancel    context.CancelFunc
	listeners []func(State)
}

// NewController creates an idle controller. navigator may be nil when the
// caller runs searches without a history (plain CLI mode).
func NewController(loop *eventloop.Loop, searcher repository.ArticleSearcher, navigator Navigator, logger *slog.Logger) *Controller {
	if logger == nil {
		logger = slog.Default()
	}
	return &Controller{
		loop:      loop,
		searcher:  searcher,
		navigator: navigator,
		logger:    logger.With(slog.String("controller", controllerName)),
	}
}

// OnChange registers fn to run after every state change.
func (c *Controller) OnChange(fn func(State)) {
	c.listeners = append(c.listeners, fn)
}

// State returns the current snapshot.
func (c *Controller) State() State {
	return c.state
}

// NormalizeLanguage returns lang when it is supported and fr-fr otherwise.
func NormalizeLanguage(lang string) entity.Language {
	if l, err := entity.ParseLanguage(lang); err == nil {
		return l
	}
	return entity.LanguageFrFR
}

// Submit navigates to the results route of query. It reports false, and does
// nothing at all, when the trimmed query is empty. The search itself runs when
// the route is entered.
func (c *Controller) Submit(query string, lang string) bool {
	query = strings.TrimSpace(query)
	if query == "" {
		return false
	}
	if c.navigator != nil {
		c.navigator.Push(nav.SearchRoute(query, NormalizeLanguage(lang)), nil)
	}
	return true
}

// Search fetches the results of query in lang, replacing the current ones.
// An empty trimmed query is a no-op. Completions of superseded searches are dropped.
func (c *Controller) Search(ctx context.Context, query string, lang string) {
	query = strings.TrimSpace(query)
	if query == "" {
		return
	}
	language := NormalizeLanguage(lang)

	tok := c.token.Next()
	if c.cancel != nil {
		c.cancel()
	}
	reqCtx, cancel := context.WithCancel(ctx)
	c.cancel = cancel

	c.setState(State{Status: viewstate.Loading, Query: query, Lang: language})
	c.logger.Debug("searching articles",
		slog.String("query", query),
		slog.String("language", string(language)))

	eventloop.Go(c.loop, func() ([]entity.ArticleSummary, error) {
		return c.searcher.Search(reqCtx, query, language)
	}, func(articles []entity.ArticleSummary, err error) {
		cancel()
		if !c.token.Current(tok) {
			metrics.RecordStaleResponse(controllerName)
			return
		}
		c.cancel = nil

		if err != nil {
			metrics.RecordViewError(controllerName, err)
			c.logger.Warn("search failed", slog.String("query", query), slog.Any("error", err))
			c.setState(State{Status: viewstate.Error, Query: query, Lang: language, Err: err})
			return
		}
		if articles == nil {
			articles = []entity.ArticleSummary{}
		}
		c.setState(State{Status: viewstate.Ready, Query: query, Lang: language, Articles: articles})
	})
}

func (c *Controller) setState(s State) {
	c.state = s
	for _, fn := range c.listeners {
		fn(s)
	}
}
