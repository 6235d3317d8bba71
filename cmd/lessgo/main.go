// Command lessgo is a less-style pager for huge text and log files,
// including transparently gzip/bzip2/xz-compressed ones.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/zhych125/lessgo/internal/access"
	"github.com/zhych125/lessgo/internal/config"
	"github.com/zhych125/lessgo/internal/debug"
	errs "github.com/zhych125/lessgo/internal/errors"
	"github.com/zhych125/lessgo/internal/render"
	"github.com/zhych125/lessgo/internal/search"
	"github.com/zhych125/lessgo/internal/source"
	"github.com/zhych125/lessgo/internal/term"
	"github.com/zhych125/lessgo/internal/worker"
	"github.com/urfave/cli/v2"
)

// Version is overridden at build time via -ldflags.
var Version = "dev"

func main() {
	app := &cli.App{
		Name:      "lessgo",
		Usage:     "page through huge text and compressed log files",
		Version:   Version,
		ArgsUsage: "<file-path>",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:  "cache-size",
				Usage: "compiled search matcher cache size",
				Value: config.Default().MatcherCacheSize,
			},
			&cli.StringFlag{
				Name:  "debug-log",
				Usage: "write trace logging to this file",
			},
		},
		Action: run,
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, formatFatal(err))
		os.Exit(1)
	}
}

func run(c *cli.Context) error {
	if c.NArg() != 1 {
		return cli.Exit("exactly one file path is required", 1)
	}

	opts := config.Default()
	opts.FilePath = c.Args().Get(0)
	opts.MatcherCacheSize = c.Int("cache-size")
	opts.DebugLogPath = c.String("debug-log")

	if opts.DebugLogPath != "" {
		debug.EnableDebug = "true"
		if _, err := debug.InitLogFile(opts.DebugLogPath); err != nil {
			return cli.Exit(fmt.Sprintf("failed to open debug log: %v", err), 1)
		}
		defer debug.CloseLogFile()
	}

	src, err := source.Open(opts.FilePath)
	if err != nil {
		return cli.Exit(formatFatal(err), 1)
	}
	defer src.Close()

	acc := access.New(src, opts.FilePath, true)
	eng := search.NewEngine(acc, opts.MatcherCacheSize)
	w := worker.New(acc, eng, 8, 8)

	screen, err := term.NewTcellScreen()
	if err != nil {
		return cli.Exit(fmt.Sprintf("failed to initialize terminal: %v", err), 1)
	}

	coordinator := render.New(screen, w, render.DefaultTheme(), opts.FilePath, acc.Size())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := coordinator.Run(ctx); err != nil {
		return cli.Exit(fmt.Sprintf("ui error: %v", err), 1)
	}
	return nil
}

func formatFatal(err error) string {
	var pe *errs.PagerError
	if errors.As(err, &pe) {
		return pe.Error()
	}
	return err.Error()
}
