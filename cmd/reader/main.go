// Package main is the NewsFlix terminal reader.
//
// Usage:
//
//	reader [--config FILE]                       interactive reader (plain list when not a terminal)
//	reader list [--category C] [--language L]    print the article list
//	reader article <id | /article/id/slug>       print one article
//	reader search <query> [--lang L]             print search results
//	reader filters [--category C] [--language L] show or change the saved filters
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/mattn/go-isatty"
	"golang.org/x/sync/errgroup"

	"newsflix/internal/config"
	"newsflix/internal/eventloop"
	"newsflix/internal/handler/tui"
	"newsflix/internal/infra/monitor"
	"newsflix/internal/nav"
	"newsflix/internal/observability/logging"
)

const (
	exitOK    = 0
	exitError = 1
	exitUsage = 2
)

// errUsage marks errors caused by bad command-line input.
var errUsage = errors.New("usage error")

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr, isatty.IsTerminal(os.Stdout.Fd()))
	stop()
	os.Exit(code)
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer, interactive bool) int {
	global := flag.NewFlagSet("reader", flag.ContinueOnError)
	global.SetOutput(stderr)
	configPath := global.String("config", "", "YAML configuration file (default: $READER_CONFIG)")
	global.Usage = func() { printUsage(stderr) }
	if err := global.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return exitOK
		}
		return exitUsage
	}

	rest := global.Args()
	cmd := ""
	if len(rest) > 0 {
		cmd, rest = rest[0], rest[1:]
	}
	if cmd == "help" {
		printUsage(stdout)
		return exitOK
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitError
	}

	if cmd == "" && interactive {
		err = runTUI(ctx, cfg)
	} else {
		if cmd == "" {
			cmd = "list"
		}
		err = runPlain(ctx, cfg, cmd, rest, stdout, stderr)
	}

	switch {
	case err == nil:
		return exitOK
	case errors.Is(err, errUsage):
		fmt.Fprintf(stderr, "Error: %v\n\n", err)
		printUsage(stderr)
		return exitUsage
	default:
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitError
	}
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  reader [--config FILE] [command]")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  list [--category C] [--language L]     print the article list")
	fmt.Fprintln(w, "  article <id | /article/id/slug>        print one article")
	fmt.Fprintln(w, "  search <query> [--lang L]              print search results")
	fmt.Fprintln(w, "  filters [--category C] [--language L]  show or change the saved filters")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Without a command the interactive reader starts.")
}

// runTUI runs the interactive reader, plus the monitor server when METRICS_ADDR is set.
// Logs go to a file so they never corrupt the screen.
func runTUI(ctx context.Context, cfg *config.Config) error {
	logger, closer, err := logging.OpenFile(cfg.Log.File)
	if err != nil {
		return err
	}
	defer func() { _ = closer.Close() }()
	slog.SetDefault(logger)

	a, err := newApp(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer func() {
		if err := a.Close(); err != nil {
			logger.Error("failed to close storage", slog.Any("error", err))
		}
	}()

	loop := eventloop.New(eventloop.WithLogger(logger))
	model := tui.New(ctx, loop, a.session(loop, nav.Home()), a.text, logger)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	g, gctx := errgroup.WithContext(ctx)

	if cfg.Metrics.Addr != "" {
		srv := monitor.NewServer(cfg.Metrics.Addr, logger, monitor.ReadinessCheck{
			Name:  "news-api",
			Ready: a.client.Available,
		})
		g.Go(func() error { return srv.Start(gctx) })
	}
	g.Go(func() error {
		defer cancel()
		return tui.Run(gctx, model)
	})

	logger.Info("reader started", slog.String("metrics_addr", cfg.Metrics.Addr))
	return g.Wait()
}
