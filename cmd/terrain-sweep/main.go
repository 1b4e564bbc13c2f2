package main

import (
	"context"
	"flag"
	"fmt"
	"image/png"
	"log"
	"math"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"living-terrain/internal/automaton"
	"living-terrain/internal/config"
	"living-terrain/internal/level"
	"living-terrain/internal/levelgen"
	"living-terrain/internal/logging"
	"living-terrain/internal/metrics"
	"living-terrain/internal/render"
	"living-terrain/internal/session"
	"living-terrain/internal/vec"
	"living-terrain/internal/voxel"
)

type paramSet struct {
	protectRadius float64
	timeScale     float64
}

func (p paramSet) String() string {
	return fmt.Sprintf("radius=%.0f timeScale=%.3f", p.protectRadius, p.timeScale)
}

type scenarioResult struct {
	params    paramSet
	minSolid  int
	maxSolid  int
	final     int
	births    int
	deaths    int
	regimes   map[automaton.Regime]int
	died      bool
	snapshot  session.Snapshot
	tickTotal time.Duration
}

// balance scores how close the final fill sits to the middle of the steady
// band.
func (r scenarioResult) balance() float64 {
	mid := float64(automaton.GrowBelow+automaton.ShrinkAbove) / 2
	return math.Abs(float64(r.final) - mid)
}

func main() {
	levelPath := flag.String("level", "", "level PNG; a generated level is used when empty")
	seed := flag.Int64("seed", 42, "seed for the generated level")
	ticks := flag.Int("ticks", 300, "automaton ticks per scenario")
	workers := flag.Int("workers", runtime.NumCPU(), "number of worker goroutines")
	radii := flag.String("radius", "200,300,400", "comma-separated protection radii")
	scales := flag.String("timescale", "0.02,0.05,0.1", "comma-separated noise time scales")
	dump := flag.String("dump", "", "directory for PNGs of the best scenario")
	addr := flag.String("metrics", "", "serve Prometheus metrics on this address and wait for Ctrl-C")
	logLevel := flag.String("log", "warn", "log level")
	flag.Parse()

	logger, err := logging.New(os.Stderr, *logLevel)
	if err != nil {
		log.Fatal(err)
	}
	lvl, err := loadLevel(*levelPath, *seed)
	if err != nil {
		log.Fatal(err)
	}
	radiusOptions, err := parseFloats(*radii)
	if err != nil {
		log.Fatalf("-radius: %v", err)
	}
	scaleOptions, err := parseFloats(*scales)
	if err != nil {
		log.Fatalf("-timescale: %v", err)
	}

	reg := prometheus.NewRegistry()
	collector := metrics.New(reg)
	if *addr != "" {
		go func() {
			if err := http.ListenAndServe(*addr, metrics.Handler(reg)); err != nil {
				log.Fatalf("metrics: %v", err)
			}
		}()
	}

	var sets []paramSet
	for _, r := range radiusOptions {
		for _, s := range scaleOptions {
			sets = append(sets, paramSet{protectRadius: r, timeScale: s})
		}
	}
	base := config.DefaultConfig().Session
	fmt.Printf("Sweeping %d parameter sets on %s (%d workers, %d ticks)\n", len(sets), lvl.Name, *workers, *ticks)

	jobs := make(chan paramSet)
	results := make(chan scenarioResult)
	var wg sync.WaitGroup

	for i := 0; i < *workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for params := range jobs {
				results <- runScenario(lvl, base, params, *ticks,
					session.WithRecorder(collector), session.WithLogger(logger))
			}
		}()
	}

	go func() {
		wg.Wait()
		close(results)
	}()

	go func() {
		for _, params := range sets {
			jobs <- params
		}
		close(jobs)
	}()

	start := time.Now()
	var all []scenarioResult
	for res := range results {
		all = append(all, res)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].balance() < all[j].balance() })
	elapsed := time.Since(start)

	fmt.Printf("\nResults by balance (elapsed %s):\n", elapsed.Round(time.Millisecond))
	for i, res := range all {
		fmt.Printf("%2d) final=%d solid[%d,%d] births=%d deaths=%d grow=%d steady=%d shrink=%d died=%v avgTick=%s params=%s\n",
			i+1, res.final, res.minSolid, res.maxSolid, res.births, res.deaths,
			res.regimes[automaton.Grow], res.regimes[automaton.Steady], res.regimes[automaton.Shrink],
			res.died, (res.tickTotal / time.Duration(max(*ticks, 1))).Round(time.Microsecond), res.params)
	}

	if *dump != "" && len(all) > 0 {
		if err := dumpSnapshot(*dump, all[0].snapshot); err != nil {
			log.Fatal(err)
		}
		fmt.Printf("\nWrote best scenario to %s\n", *dump)
	}

	if *addr != "" {
		fmt.Printf("\nServing metrics on %s, Ctrl-C to exit\n", *addr)
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()
		<-ctx.Done()
	}
}

func loadLevel(path string, seed int64) (*level.Level, error) {
	if path == "" {
		lvl := levelgen.Generate(levelgen.DefaultParams(seed))
		lvl.Name = fmt.Sprintf("generated(seed=%d)", seed)
		return lvl, nil
	}
	return level.Load(path)
}

func parseFloats(s string) ([]float64, error) {
	var out []float64
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		v, err := strconv.ParseFloat(part, 64)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

// runScenario parks the player at the spawn and lets the terrain evolve.
func runScenario(lvl *level.Level, base config.Session, params paramSet, ticks int, opts ...session.Option) scenarioResult {
	cfg := base
	cfg.ProtectRadius = params.protectRadius
	cfg.NoiseTimeScale = params.timeScale
	s := session.New(lvl, cfg, opts...)
	defer s.Teardown()

	box := vec.Box(s.Spawn(), voxel.Size/2, voxel.Size/2)
	dt := cfg.TickInterval.Seconds()
	res := scenarioResult{
		params:   params,
		minSolid: math.MaxInt,
		regimes:  map[automaton.Regime]int{},
	}
	for i := 0; i < ticks && s.State() == session.Active; i++ {
		start := time.Now()
		s.Update(dt, box)
		res.tickTotal += time.Since(start)

		st := s.Stats()
		res.regimes[st.Regime]++
		res.births += st.Births
		res.deaths += st.Deaths
		res.minSolid = min(res.minSolid, st.After)
		res.maxSolid = max(res.maxSolid, st.After)
		res.final = st.After
	}
	res.died = s.State() == session.PlayerDied
	res.snapshot = s.Snapshot()
	return res
}

func dumpSnapshot(dir string, snap session.Snapshot) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	write := func(name string, encode func(f *os.File) error) error {
		f, err := os.Create(filepath.Join(dir, name))
		if err != nil {
			return err
		}
		if err := encode(f); err != nil {
			f.Close()
			return fmt.Errorf("%s: %w", name, err)
		}
		return f.Close()
	}
	if err := write("frame.png", func(f *os.File) error { return png.Encode(f, render.Frame(snap)) }); err != nil {
		return err
	}
	if snap.Height != nil {
		if err := write("height.png", func(f *os.File) error { return snap.Height.WritePNG(f) }); err != nil {
			return err
		}
	}
	if snap.Dilation != nil {
		if err := write("dilation.png", func(f *os.File) error { return snap.Dilation.WritePNG(f) }); err != nil {
			return err
		}
	}
	return nil
}
