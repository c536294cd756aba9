// Package metrics implements the observability hooks with Prometheus.
package metrics

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/matzehuels/forcegraph/pkg/observability"
)

// DefaultNamespace prefixes every metric name.
const DefaultNamespace = "forcegraph"

// Hooks records engine and pipeline events as Prometheus metrics. It
// satisfies both observability.EngineHooks and observability.PipelineHooks.
type Hooks struct {
	Rebuilds      *prometheus.CounterVec
	RebuildNodes  *prometheus.GaugeVec
	SkippedEdges  *prometheus.CounterVec
	Frames        *prometheus.CounterVec
	FrameDuration *prometheus.HistogramVec
	FrameErrors   *prometheus.CounterVec
	Energy        *prometheus.GaugeVec
	Resets        *prometheus.CounterVec
	Inputs        *prometheus.CounterVec

	StageDuration *prometheus.HistogramVec
	Stages        *prometheus.CounterVec
}

var (
	_ observability.EngineHooks   = (*Hooks)(nil)
	_ observability.PipelineHooks = (*Hooks)(nil)
)

// New creates the metrics and registers them with reg.
func New(namespace string, reg prometheus.Registerer) (*Hooks, error) {
	if namespace == "" {
		namespace = DefaultNamespace
	}
	h := &Hooks{
		Rebuilds: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "engine_rebuilds_total",
				Help:      "Total number of graph rebuilds",
			},
			[]string{"engine", "status"},
		),
		RebuildNodes: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "engine_graph_size",
				Help:      "Node and edge count after the last rebuild",
			},
			[]string{"engine", "kind"},
		),
		SkippedEdges: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "engine_skipped_edges_total",
				Help:      "Total number of input edges dropped during rebuilds",
			},
			[]string{"engine"},
		),
		Frames: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "engine_frames_total",
				Help:      "Total number of rendered frames",
			},
			[]string{"engine"},
		),
		FrameDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "engine_frame_duration_seconds",
				Help:      "Time spent stepping, routing and fitting one frame",
				Buckets:   []float64{.0005, .001, .002, .004, .008, .016, .033, .066, .1},
			},
			[]string{"engine"},
		),
		FrameErrors: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "engine_frame_errors_total",
				Help:      "Total number of rejected frames",
			},
			[]string{"engine"},
		),
		Energy: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "engine_kinetic_energy",
				Help:      "Kinetic energy of the simulation after the last step",
			},
			[]string{"engine"},
		),
		Resets: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "engine_node_resets_total",
				Help:      "Total number of node updates discarded as non-finite",
			},
			[]string{"engine"},
		),
		Inputs: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "engine_input_events_total",
				Help:      "Total number of dispatched input events",
			},
			[]string{"engine", "kind"},
		),
		StageDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "pipeline_stage_duration_seconds",
				Help:      "Pipeline stage duration in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"stage"},
		),
		Stages: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "pipeline_stages_total",
				Help:      "Total number of pipeline stages run",
			},
			[]string{"stage", "status"},
		),
	}

	for _, c := range []prometheus.Collector{
		h.Rebuilds, h.RebuildNodes, h.SkippedEdges,
		h.Frames, h.FrameDuration, h.FrameErrors, h.Energy, h.Resets, h.Inputs,
		h.StageDuration, h.Stages,
	} {
		if err := reg.Register(c); err != nil {
			return nil, fmt.Errorf("register metric: %w", err)
		}
	}
	return h, nil
}

func status(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}

func (h *Hooks) OnRebuild(_ context.Context, engineID string, nodes, edges, skipped int, _ time.Duration, err error) {
	h.Rebuilds.WithLabelValues(engineID, status(err)).Inc()
	if err != nil {
		return
	}
	h.RebuildNodes.WithLabelValues(engineID, "nodes").Set(float64(nodes))
	h.RebuildNodes.WithLabelValues(engineID, "edges").Set(float64(edges))
	h.SkippedEdges.WithLabelValues(engineID).Add(float64(skipped))
}

func (h *Hooks) OnFrame(_ context.Context, engineID string, s observability.FrameStats) {
	h.Frames.WithLabelValues(engineID).Inc()
	h.FrameDuration.WithLabelValues(engineID).Observe(s.Duration.Seconds())
	h.Energy.WithLabelValues(engineID).Set(s.Energy)
	if s.Resets > 0 {
		h.Resets.WithLabelValues(engineID).Add(float64(s.Resets))
	}
}

func (h *Hooks) OnInput(_ context.Context, engineID, kind string) {
	h.Inputs.WithLabelValues(engineID, kind).Inc()
}

func (h *Hooks) OnFrameError(_ context.Context, engineID string, _ error) {
	h.FrameErrors.WithLabelValues(engineID).Inc()
}

func (h *Hooks) OnLoadStart(context.Context, string) {}

func (h *Hooks) OnLoadComplete(_ context.Context, _ string, _ int, d time.Duration, err error) {
	h.stage("load", d, err)
}

func (h *Hooks) OnLayoutStart(context.Context, int, int) {}

func (h *Hooks) OnLayoutComplete(_ context.Context, _ int, d time.Duration, err error) {
	h.stage("layout", d, err)
}

func (h *Hooks) OnRenderStart(context.Context, []string) {}

func (h *Hooks) OnRenderComplete(_ context.Context, _ []string, d time.Duration, err error) {
	h.stage("render", d, err)
}

func (h *Hooks) stage(name string, d time.Duration, err error) {
	h.Stages.WithLabelValues(name, status(err)).Inc()
	h.StageDuration.WithLabelValues(name).Observe(d.Seconds())
}

// Router serves g on /metrics and a liveness probe on /healthz.
func Router(g prometheus.Gatherer) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Handle("/metrics", promhttp.HandlerFor(g, promhttp.HandlerOpts{}))
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	return r
}
