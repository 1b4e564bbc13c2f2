// Package metrics exports terrain session activity as Prometheus metrics.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "terrain"

// Collector records automaton ticks and gameplay events.
type Collector struct {
	ticks        *prometheus.CounterVec
	tickDuration prometheus.Histogram
	solid        prometheus.Gauge
	births       prometheus.Counter
	deaths       prometheus.Counter
	pickups      prometheus.Counter
	playerDeaths *prometheus.CounterVec
	completions  prometheus.Counter
}

// New creates the collector and registers it with reg.
func New(reg prometheus.Registerer) *Collector {
	c := &Collector{
		ticks: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "automaton_ticks_total",
			Help:      "Automaton ticks, by fill regime.",
		}, []string{"regime"}),
		tickDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "automaton_tick_seconds",
			Help:      "Time spent in one automaton tick including collider and texture rebuild.",
			Buckets:   prometheus.ExponentialBuckets(0.0005, 2, 12),
		}),
		solid: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "solid_voxels",
			Help:      "Solid terrain voxels after the latest tick.",
		}),
		births: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "voxel_births_total",
			Help:      "Voxels that became solid.",
		}),
		deaths: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "voxel_deaths_total",
			Help:      "Voxels that were cleared.",
		}),
		pickups: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "finish_pickups_total",
			Help:      "Finish markers collected.",
		}),
		playerDeaths: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "player_deaths_total",
			Help:      "Player deaths, by reason.",
		}, []string{"reason"}),
		completions: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "levels_completed_total",
			Help:      "Levels completed.",
		}),
	}
	reg.MustRegister(c.ticks, c.tickDuration, c.solid, c.births, c.deaths,
		c.pickups, c.playerDeaths, c.completions)
	return c
}

// ObserveTick records one automaton tick.
func (c *Collector) ObserveTick(d time.Duration, regime string, solid, births, deaths int) {
	c.ticks.WithLabelValues(regime).Inc()
	c.tickDuration.Observe(d.Seconds())
	c.solid.Set(float64(solid))
	c.births.Add(float64(births))
	c.deaths.Add(float64(deaths))
}

// FinishCollected records a pickup.
func (c *Collector) FinishCollected() { c.pickups.Inc() }

// PlayerDied records a death.
func (c *Collector) PlayerDied(reason string) { c.playerDeaths.WithLabelValues(reason).Inc() }

// LevelCompleted records a completed level.
func (c *Collector) LevelCompleted() { c.completions.Inc() }

// Handler serves the metrics gathered by g.
func Handler(g prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(g, promhttp.HandlerOpts{})
}
