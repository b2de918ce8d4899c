// Package listing drives the home view: the article list for the current filters.
package listing

import (
	"context"
	"log/slog"

	"newsflix/internal/domain/entity"
	"newsflix/internal/eventloop"
	"newsflix/internal/observability/metrics"
	"newsflix/internal/repository"
	"newsflix/internal/usecase/viewstate"
)

const controllerName = "list"

// FilterSource is the part of filter.Store the controller depends on.
type FilterSource interface {
	Current() entity.FilterState
	Subscribe(fn func(entity.FilterState)) (unsubscribe func())
}

// State is a snapshot of the list view.
// Articles is empty whenever Status is viewstate.Error.
type State struct {
	Status   viewstate.Status
	Filters  entity.FilterState
	Articles []entity.ArticleSummary
	Err      error
}

// Controller fetches the list on start and again on every filter publication.
//
// All methods must be called on the loop goroutine. A completion whose request
// was superseded is dropped, so the rendered list always matches the filters
// of the latest request.
type Controller struct {
	loop    *eventloop.Loop
	lister  repository.ArticleLister
	filters FilterSource
	logger  *slog.Logger

	base        context.Context
	state       State
	token       viewstate.Token
	cancel      context.CancelFunc
	unsubscribe func()
	listeners   []func(State)
}

// NewController creates an idle controller.
func NewController(loop *eventloop.Loop, lister repository.ArticleLister, filters FilterSource, logger *slog.Logger) *Controller {
	if logger == nil {
		logger = slog.Default()
	}
	return &Controller{
		loop:    loop,
		lister:  lister,
		filters: filters,
		logger:  logger.With(slog.String("controller", controllerName)),
		base:    context.Background(),
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

// Start subscribes to the filter source and fetches the list for its current state.
// Requests are bound to ctx. Calling Start twice has no effect.
func (c *Controller) Start(ctx context.Context) {
	if c.unsubscribe != nil {
		return
	}
	c.base = ctx
	c.unsubscribe = c.filters.Subscribe(func(state entity.FilterState) {
		// Publications may come from any goroutine; hop onto the loop.
		c.loop.Post(func() { c.fetch(state) })
	})
	c.fetch(c.filters.Current())
}

// Stop unsubscribes and abandons the in-flight request, if any.
func (c *Controller) Stop() {
	if c.unsubscribe != nil {
		c.unsubscribe()
		c.unsubscribe = nil
	}
	c.token.Next()
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
}

func (c *Controller) fetch(filters entity.FilterState) {
	tok := c.token.Next()
	if c.cancel != nil {
		c.cancel()
	}
	ctx, cancel := context.WithCancel(c.base)
	c.cancel = cancel

	c.setState(State{Status: viewstate.Loading, Filters: filters, Articles: c.state.Articles})
	c.logger.Debug("fetching article list",
		slog.String("category", string(filters.Category)),
		slog.String("language", string(filters.Language)))

	eventloop.Go(c.loop, func() ([]entity.ArticleSummary, error) {
		return c.lister.ListArticles(ctx, filters)
	}, func(articles []entity.ArticleSummary, err error) {
		cancel()
		if !c.token.Current(tok) {
			metrics.RecordStaleResponse(controllerName)
			c.logger.Debug("dropping stale list response",
				slog.String("category", string(filters.Category)),
				slog.String("language", string(filters.Language)))
			return
		}
		c.cancel = nil

		if err != nil {
			metrics.RecordViewError(controllerName, err)
			c.logger.Warn("article list failed", slog.Any("error", err))
			c.setState(State{Status: viewstate.Error, Filters: filters, Articles: nil, Err: err})
			return
		}
		if articles == nil {
			articles = []entity.ArticleSummary{}
		}
		c.setState(State{Status: viewstate.Ready, Filters: filters, Articles: articles})
	})
}

func (c *Controller) setState(s State) {
	c.state = s
	for _, fn := range c.listeners {
		fn(s)
	}
}
