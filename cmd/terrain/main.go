//go:build ebiten

package main

import (
	"errors"
	"flag"
	"log"
	"os"

	"github.com/hajimehoshi/ebiten/v2"

	"living-terrain/internal/app"
	"living-terrain/internal/game"
	"living-terrain/internal/logging"
)

func main() {
	flags := app.NewFlags()
	flags.Bind(flag.CommandLine)
	flag.Parse()

	cfg, err := flags.Config()
	if err != nil {
		log.Fatal(err)
	}
	logger, err := logging.New(os.Stderr, cfg.LogLevel)
	if err != nil {
		log.Fatal(err)
	}

	director := game.NewDirector(len(cfg.Levels), game.FileLoader(cfg.Levels), cfg, logger)
	if err := director.Start(); err != nil {
		log.Fatal(err)
	}
	g := app.New(director, cfg, flags.Scale)
	w, h := g.Layout(0, 0)

	ebiten.SetWindowTitle("living-terrain")
	ebiten.SetTPS(flags.TPS)
	ebiten.SetWindowSize(w, h)

	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, ebiten.Termination) {
		log.Fatal(err)
	}
}
