// Package reader wires the navigation history to the view controllers.
//
// Session is the single place that turns a history entry into a controller
// call. Every entry reached by Push, Back, Forward or Reload is resolved;
// an entry reached by Replace is only recorded, since replacement is how the
// detail view canonicalizes its own address.
package reader

import (
	"context"
	"log/slog"

	"newsflix/internal/domain/entity"
	"newsflix/internal/eventloop"
	"newsflix/internal/nav"
	"newsflix/internal/repository"
	artUC "newsflix/internal/usecase/article"
	"newsflix/internal/usecase/filter"
	"newsflix/internal/usecase/listing"
	"newsflix/internal/usecase/search"
)

// Session owns the controllers of one reader process.
// All methods must be called on the loop goroutine.
type Session struct {
	History *nav.History
	Filters *filter.Store
	List    *listing.Controller
	Search  *search.Controller
	Article *artUC.Resolver

	logger    *slog.Logger
	ctx       context.Context
	current   nav.Entry
	unlisten  func()
	listeners []func()
}

// NewSession builds the controllers on top of loop and repo.
func NewSession(loop *eventloop.Loop, repo repository.NewsRepository, filters *filter.Store, history *nav.History, logger *slog.Logger) *Session {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Session{
		History: history,
		Filters: filters,
		List:    listing.NewController(loop, repo, filters, logger),
		Search:  search.NewController(loop, repo, history, logger),
		Article: artUC.NewResolver(loop, repo, history, logger),
		logger:  logger,
		ctx:     context.Background(),
	}
	s.List.OnChange(func(listing.State) { s.changed() })
	s.Search.OnChange(func(search.State) { s.changed() })
	s.Article.OnChange(func(artUC.State) { s.changed() })
	return s
}

// OnChange registers fn to run after any view state or route change.
func (s *Session) OnChange(fn func()) {
	s.listeners = append(s.listeners, fn)
}

// Start begins listening to the history, starts the list controller and
// resolves the current entry.
func (s *Session) Start(ctx context.Context) {
	if s.unlisten != nil {
		return
	}
	s.ctx = ctx
	s.unlisten = s.History.Listen(s.enter)
	s.List.Start(ctx)
	s.enter(s.History.Current(), nav.ActionPush)
}

// Stop detaches from the history and abandons in-flight requests.
func (s *Session) Stop() {
	if s.unlisten != nil {
		s.unlisten()
		s.unlisten = nil
	}
	s.List.Stop()
	s.Article.Stop()
}

// Current returns the entry being displayed.
func (s *Session) Current() nav.Entry {
	return s.current
}

// CycleCategory moves the persisted filter to the next category.
func (s *Session) CycleCategory() error {
	_, err := s.Filters.Set(s.ctx, entity.WithCategory(s.Filters.Current().Category.Next()))
	return err
}

// CycleLanguage moves the persisted filter to the next language.
func (s *Session) CycleLanguage() error {
	_, err := s.Filters.Set(s.ctx, entity.WithLanguage(s.Filters.Current().Language.Next()))
	return err
}

// Refresh re-runs the current view. On the list it re-sets the unchanged
// filters, which every subscriber treats as a change.
func (s *Session) Refresh() error {
	if s.current.Route.Kind == nav.KindHome {
		_, err := s.Filters.Set(s.ctx, entity.FilterPatch{})
		return err
	}
	s.History.Reload()
	return nil
}

// Back returns to the previous entry, reporting whether there was one.
func (s *Session) Back() bool {
	return s.History.Back()
}

// Forward re-enters the entry left by Back. Like Back and Reload it carries no payload.
func (s *Session) Forward() bool {
	return s.History.Forward()
}

// GoHome pushes the list route unless it is already displayed.
func (s *Session) GoHome() {
	if s.current.Route.Kind != nav.KindHome {
		s.History.Push(nav.Home(), nil)
	}
}

func (s *Session) enter(e nav.Entry, action nav.Action) {
	s.current = e
	s.logger.Debug("navigated",
		slog.String("path", e.Route.Path()),
		slog.Int("action", int(action)),
		slog.Bool("payload", e.Payload != nil))

	if action == nav.ActionReplace {
		s.changed()
		return
	}

	if e.Route.Kind != nav.KindArticle {
		// 詳細ビューを離れたら取得中のレスポンスは破棄する
		s.Article.Stop()
	}
	switch e.Route.Kind {
	case nav.KindArticle:
		s.Article.Resolve(s.ctx, e.Route, e.Payload)
	case nav.KindSearch:
		s.Search.Search(s.ctx, e.Route.Query, e.Route.Lang)
	}
	s.changed()
}

func (s *Session) changed() {
	for _, fn := range s.listeners {
		fn()
	}
}
