package pipeline

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/forcegraph/pkg/cache"
	"github.com/matzehuels/forcegraph/pkg/errors"
	"github.com/matzehuels/forcegraph/pkg/graph"
	"github.com/matzehuels/forcegraph/pkg/observability"
)

// Runner executes pipelines with caching.
//
// The Runner is stateless except for the cache and logger; multiple
// goroutines can use the same Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner. A nil cache disables caching, a nil keyer
// uses the default, and a nil logger uses log.Default().
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{Cache: c, Keyer: keyer, Logger: logger}
}

// Execute runs load → layout → render.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	hooks := observability.Pipeline()
	result := &Result{}

	// Stage 1: Load
	source := opts.source()
	hooks.OnLoadStart(ctx, source)
	loadStart := time.Now()
	nodes, edges, err := Load(ctx, opts)
	result.Stats.LoadTime = time.Since(loadStart)
	hooks.OnLoadComplete(ctx, source, len(nodes), result.Stats.LoadTime, err)
	if err != nil {
		return nil, err
	}
	r.Logger.Info("loaded graph", "source", source, "nodes", len(nodes), "edges", len(edges),
		"duration", result.Stats.LoadTime)

	// Stage 2: Layout
	hooks.OnLayoutStart(ctx, len(nodes), opts.Steps)
	layoutStart := time.Now()
	layout, hit, hash, err := r.LayoutWithCacheInfo(ctx, nodes, edges, opts)
	result.Stats.LayoutTime = time.Since(layoutStart)
	hooks.OnLayoutComplete(ctx, opts.Steps, result.Stats.LayoutTime, err)
	if err != nil {
		return nil, err
	}
	result.GraphHash = hash
	result.Nodes, result.Edges, result.Frame = layout.Nodes, layout.Edges, layout.Frame
	result.CacheInfo.LayoutHit = hit
	result.Stats.NodeCount = len(layout.Nodes)
	result.Stats.EdgeCount = len(layout.Edges)
	result.Stats.Skipped = layout.Skipped
	result.Stats.Energy = layout.Energy
	if !hit {
		result.Stats.Steps = opts.Steps
	}
	r.Logger.Info("computed layout", "steps", result.Stats.Steps, "cached", hit,
		"energy", layout.Energy, "duration", result.Stats.LayoutTime)

	// Stage 3: Render
	hooks.OnRenderStart(ctx, opts.Formats)
	renderStart := time.Now()
	artifacts, renderHit, err := r.RenderWithCacheInfo(ctx, layout, opts)
	result.Stats.RenderTime = time.Since(renderStart)
	hooks.OnRenderComplete(ctx, opts.Formats, result.Stats.RenderTime, err)
	if err != nil {
		return nil, err
	}
	result.Artifacts = artifacts
	result.CacheInfo.RenderHit = renderHit
	r.Logger.Info("rendered outputs", "formats", opts.Formats, "cached", renderHit,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// LayoutWithCacheInfo computes or restores a layout. It also returns
// whether the cache served it and the graph hash used for the key.
func (r *Runner) LayoutWithCacheInfo(ctx context.Context, nodes []graph.Node, edges []graph.Edge, opts Options) (*Layout, bool, string, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateForLayout(); err != nil {
		return nil, false, "", err
	}

	hash, err := graphHash(nodes, edges)
	if err != nil {
		return nil, false, "", errors.Wrap(errors.ErrCodeInternal, err, "hash graph")
	}
	key := r.Keyer.LayoutKey(hash, opts.LayoutKeyOpts())

	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
			l, err := restoreLayout(ctx, data, opts)
			if err == nil {
				return l, true, hash, nil
			}
			r.Logger.Debug("discarding unreadable cached layout", "error", err)
		}
	}

	l, err := GenerateLayout(ctx, nodes, edges, opts)
	if err != nil {
		return nil, false, hash, err
	}
	if data, err := l.marshal(); err == nil {
		if err := r.Cache.Set(ctx, key, data, cache.TTLLayout); err != nil {
			r.Logger.Warn("could not cache layout", "error", err)
		}
	}
	return l, false, hash, nil
}

// Layout is LayoutWithCacheInfo without the cache details.
func (r *Runner) Layout(ctx context.Context, nodes []graph.Node, edges []graph.Edge, opts Options) (*Layout, error) {
	l, _, _, err := r.LayoutWithCacheInfo(ctx, nodes, edges, opts)
	return l, err
}

// RenderWithCacheInfo renders every format, serving them from the cache
// when all are present.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, l *Layout, opts Options) (map[string][]byte, bool, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateForRender(); err != nil {
		return nil, false, err
	}

	data, err := l.marshal()
	if err != nil {
		return nil, false, errors.Wrap(errors.ErrCodeInternal, err, "serialize layout for cache key")
	}
	layoutHash := cache.Hash(data)

	if !opts.Refresh {
		artifacts := make(map[string][]byte, len(opts.Formats))
		for _, format := range opts.Formats {
			key := r.Keyer.ArtifactKey(layoutHash, opts.ArtifactKeyOpts(format))
			data, hit, err := r.Cache.Get(ctx, key)
			if err != nil || !hit {
				break
			}
			artifacts[format] = data
		}
		if len(artifacts) == len(opts.Formats) {
			return artifacts, true, nil
		}
	}

	rendered, err := Render(ctx, l.Frame, opts)
	if err != nil {
		return nil, false, err
	}
	for format, data := range rendered {
		key := r.Keyer.ArtifactKey(layoutHash, opts.ArtifactKeyOpts(format))
		_ = r.Cache.Set(ctx, key, data, cache.TTLArtifact)
	}
	return rendered, false, nil
}

// Render is RenderWithCacheInfo without the cache details.
func (r *Runner) Render(ctx context.Context, l *Layout, opts Options) (map[string][]byte, error) {
	artifacts, _, err := r.RenderWithCacheInfo(ctx, l, opts)
	return artifacts, err
}

// Close releases the cache.
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
