package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"

	"github.com/gdamore/tcell/v2"

	"living-terrain/internal/app"
	"living-terrain/internal/game"
	"living-terrain/internal/logging"
	"living-terrain/internal/tui"
)

func main() {
	flags := app.NewFlags()
	logPath := flag.String("logfile", "", "write logs to this file instead of discarding them")
	flags.Bind(flag.CommandLine)
	flag.Parse()

	if err := run(flags, *logPath); err != nil {
		fmt.Fprintf(os.Stderr, "terrain-tui: %v\n", err)
		os.Exit(1)
	}
}

func run(flags *app.Flags, logPath string) error {
	cfg, err := flags.Config()
	if err != nil {
		return err
	}

	// The terminal belongs to the view, so logs go to a file or nowhere.
	logger := logging.Discard()
	if logPath != "" {
		f, err := os.Create(logPath)
		if err != nil {
			return err
		}
		defer f.Close()
		if logger, err = logging.New(f, cfg.LogLevel); err != nil {
			return err
		}
	}

	director := game.NewDirector(len(cfg.Levels), game.FileLoader(cfg.Levels), cfg, logger)
	if err := director.Start(); err != nil {
		return err
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := screen.Init(); err != nil {
		return err
	}
	defer screen.Fini()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	err = tui.New(screen, director, cfg).Run(ctx, flags.TPS)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
