package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"text/tabwriter"

	"newsflix/internal/config"
	"newsflix/internal/domain/entity"
	"newsflix/internal/eventloop"
	"newsflix/internal/nav"
	"newsflix/internal/observability/logging"
	"newsflix/internal/usecase/listing"
	"newsflix/internal/usecase/search"
)

const plainDateLayout = "2006-01-02 15:04"

// runPlain executes a one-shot command on a private loop and prints its result.
func runPlain(ctx context.Context, cfg *config.Config, cmd string, args []string, stdout, stderr io.Writer) error {
	logger := logging.New(stderr, logging.Text)
	slog.SetDefault(logger)

	var run func(context.Context, *app, []string, io.Writer) error
	switch cmd {
	case "list":
		run = runList
	case "article":
		run = runArticle
	case "search":
		run = runSearch
	case "filters":
		run = runFilters
	default:
		return fmt.Errorf("%w: unknown command %q", errUsage, cmd)
	}

	a, err := newApp(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer func() {
		if err := a.Close(); err != nil {
			logger.Error("failed to close storage", slog.Any("error", err))
		}
	}()
	return run(ctx, a, args, stdout)
}

// parseArgs parses fs allowing flags after positional arguments.
func parseArgs(fs *flag.FlagSet, args []string) ([]string, error) {
	var positional []string
	for {
		if err := fs.Parse(args); err != nil {
			return nil, fmt.Errorf("%w: %v", errUsage, err)
		}
		args = fs.Args()
		if len(args) == 0 {
			return positional, nil
		}
		positional = append(positional, args[0])
		args = args[1:]
	}
}

func filterFlags(name string) (*flag.FlagSet, *string, *string) {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	category := fs.String("category", "", "category: TopArticles, Politics, Sports, Technology, Entertainment, Business")
	language := fs.String("language", "", "language tag such as fr-fr or en-us")
	return fs, category, language
}

func filterPatch(category, language string) (entity.FilterPatch, error) {
	var patch entity.FilterPatch
	if category != "" {
		c, err := entity.ParseCategory(category)
		if err != nil {
			return patch, fmt.Errorf("%w: %v", errUsage, err)
		}
		patch.Category = &c
	}
	if language != "" {
		l, err := entity.ParseLanguage(language)
		if err != nil {
			return patch, fmt.Errorf("%w: %v", errUsage, err)
		}
		patch.Language = &l
	}
	return patch, nil
}

// fixedFilters is a FilterSource that never changes.
type fixedFilters struct {
	state entity.FilterState
}

func (f fixedFilters) Current() entity.FilterState { return f.state }
func (f fixedFilters) Subscribe(func(entity.FilterState)) func() { return func() {} }

func runList(ctx context.Context, a *app, args []string, out io.Writer) error {
	fs, category, language := filterFlags("list")
	if _, err := parseArgs(fs, args); err != nil {
		return err
	}
	patch, err := filterPatch(*category, *language)
	if err != nil {
		return err
	}
	filters := a.filters.Current().Merge(patch)

	loop := eventloop.New(eventloop.WithLogger(a.logger))
	ctrl := listing.NewController(loop, a.client, fixedFilters{state: filters}, a.logger)
	ctrl.Start(ctx)
	if err := loop.Drain(ctx); err != nil {
		return err
	}
	ctrl.Stop()

	state := ctrl.State()
	if state.Err != nil {
		return state.Err
	}
	fmt.Fprintf(out, "%s · %s\n\n", a.text.Category(filters.Language, filters.Category), filters.Language.Info().Label)
	if len(state.Articles) == 0 {
		fmt.Fprintln(out, a.text.T(filters.Language, "common.empty"))
		return nil
	}
	return printSummaries(out, state.Articles)
}

func runArticle(ctx context.Context, a *app, args []string, out io.Writer) error {
	fs := flag.NewFlagSet("article", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	positional, err := parseArgs(fs, args)
	if err != nil {
		return err
	}
	if len(positional) != 1 {
		return fmt.Errorf("%w: article needs exactly one id or path", errUsage)
	}

	route := nav.Parse(positional[0])
	if id, err := strconv.ParseInt(positional[0], 10, 64); err == nil {
		route = nav.Route{Kind: nav.KindArticle, ArticleID: id}
	}
	if route.Kind != nav.KindArticle {
		return fmt.Errorf("%w: %q is not an article id or path", errUsage, positional[0])
	}

	loop := eventloop.New(eventloop.WithLogger(a.logger))
	s := a.session(loop, route)
	s.Start(ctx)
	if err := loop.Drain(ctx); err != nil {
		return err
	}
	s.Stop()

	state := s.Article.State()
	if state.Terminal || state.Display == nil {
		if state.Err == nil {
			return &entity.NotFoundError{Reason: "nothing to display for " + route.Path()}
		}
		return state.Err
	}
	if state.Err != nil {
		a.logger.Warn("showing partial article", slog.Any("error", state.Err))
	}
	printArticle(out, a, s.Current().Route, state.Display)
	return nil
}

func runSearch(ctx context.Context, a *app, args []string, out io.Writer) error {
	fs := flag.NewFlagSet("search", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	lang := fs.String("lang", string(a.filters.Current().Language), "language tag of the results")
	positional, err := parseArgs(fs, args)
	if err != nil {
		return err
	}
	query := strings.TrimSpace(strings.Join(positional, " "))
	if query == "" {
		return fmt.Errorf("%w: search query is required", errUsage)
	}

	route := nav.SearchRoute(query, search.NormalizeLanguage(*lang))
	loop := eventloop.New(eventloop.WithLogger(a.logger))
	s := a.session(loop, route)
	s.Start(ctx)
	if err := loop.Drain(ctx); err != nil {
		return err
	}
	s.Stop()

	state := s.Search.State()
	if state.Err != nil {
		return state.Err
	}
	resultLang := entity.Language(route.Lang)
	fmt.Fprintf(out, "%s %q\n", a.text.T(resultLang, "search.results"), query)
	if len(state.Articles) == 0 {
		fmt.Fprintln(out, a.text.T(resultLang, "search.noResults"))
		return nil
	}
	fmt.Fprintf(out, "%s %d\n\n", a.text.T(resultLang, "search.foundResults"), len(state.Articles))
	return printSummaries(out, state.Articles)
}

func runFilters(ctx context.Context, a *app, args []string, out io.Writer) error {
	fs, category, language := filterFlags("filters")
	if _, err := parseArgs(fs, args); err != nil {
		return err
	}
	patch, err := filterPatch(*category, *language)
	if err != nil {
		return err
	}

	state := a.filters.Current()
	if patch.Category != nil || patch.Language != nil {
		if state, err = a.filters.Set(ctx, patch); err != nil {
			return err
		}
	}
	info := state.Language.Info()
	fmt.Fprintf(out, "category: %s (%s)\n", state.Category, a.text.Category(state.Language, state.Category))
	fmt.Fprintf(out, "language: %s (%s %s)\n", state.Language, info.Flag, info.Label)
	locales := a.text.Locales()
	names := make([]string, len(locales))
	for i, l := range locales {
		names[i] = string(l)
	}
	fmt.Fprintf(out, "available languages: %s\n", strings.Join(names, ", "))
	return nil
}

func printSummaries(out io.Writer, items []entity.ArticleSummary) error {
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	for _, item := range items {
		date := ""
		if !item.PublishedAt.IsZero() {
			date = item.PublishedAt.Format(plainDateLayout)
		}
		path := nav.ArticleRoute(item.ArticleID, item.Title).Path()
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", path, date, item.SourceName, item.Title)
	}
	return tw.Flush()
}

func printArticle(out io.Writer, a *app, route nav.Route, article *entity.Article) {
	lang := a.filters.Current().Language
	fmt.Fprintln(out, article.Title)
	fmt.Fprintln(out, route.Path())
	byline := article.SourceName
	if !article.PublishedAt.IsZero() {
		byline += " · " + article.PublishedAt.Format(plainDateLayout)
	}
	fmt.Fprintln(out, byline)
	fmt.Fprintln(out, entity.ImageURLOrPlaceholder(article.ImageURL))
	fmt.Fprintln(out)
	fmt.Fprintln(out, article.Body())

	if len(article.Similar) > 0 {
		fmt.Fprintf(out, "\n%s\n", a.text.T(lang, "common.similarArticles"))
		for _, ref := range article.Similar {
			fmt.Fprintf(out, "  %s  %s (%s)\n", nav.Route{Kind: nav.KindArticle, ArticleID: ref.ArticleID}.Path(), ref.Title, ref.SourceName)
		}
	}
}
