package main

import (
	"flag"
	"image/png"
	"log"
	"os"

	"living-terrain/internal/level"
	"living-terrain/internal/levelgen"
)

func main() {
	p := levelgen.DefaultParams(42)
	out := flag.String("out", "level.png", "output PNG path")
	flag.Int64Var(&p.Seed, "seed", p.Seed, "noise seed")
	flag.IntVar(&p.Finishes, "finishes", p.Finishes, "number of finish markers")
	flag.IntVar(&p.Surface, "surface", p.Surface, "mean surface row")
	flag.IntVar(&p.Amplitude, "amplitude", p.Amplitude, "surface height variation in rows")
	flag.Float64Var(&p.Frequency, "frequency", p.Frequency, "surface noise frequency per column")
	flag.Float64Var(&p.CaveCut, "caves", p.CaveCut, "cave threshold; higher carves fewer caves")
	flag.IntVar(&p.KillzoneRows, "killzone", p.KillzoneRows, "rows of killzone along the bottom")
	flag.Parse()

	lvl := levelgen.Generate(p)
	f, err := os.Create(*out)
	if err != nil {
		log.Fatal(err)
	}
	if err := png.Encode(f, level.Encode(lvl)); err != nil {
		f.Close()
		log.Fatal(err)
	}
	if err := f.Close(); err != nil {
		log.Fatal(err)
	}
	log.Printf("wrote %s: %d terrain, %d killzone, %d finishes",
		*out, lvl.Terrain.Total(), lvl.Killzone.Total(), len(lvl.Finishes))
}
