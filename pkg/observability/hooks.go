// Package observability provides hooks for metrics and logging.
//
// Hooks keep the engine and pipeline free of any particular metrics backend.
// The CLI registers an implementation at startup (see the metrics
// subpackage); everything else calls the registered hooks, which default to
// no-ops.
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetEngineHooks(metrics.NewEngineHooks(reg))
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	start := time.Now()
//	observability.Pipeline().OnLayoutStart(ctx, nodeCount, steps)
//	// ... simulate ...
//	observability.Pipeline().OnLayoutComplete(ctx, steps, time.Since(start), err)
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Engine Hooks
// =============================================================================

// FrameStats summarizes one engine frame.
type FrameStats struct {
	Seq      uint64
	Nodes    int
	Edges    int
	Energy   float64
	MaxSpeed float64
	// Resets counts nodes restored after a non-finite update.
	Resets   int
	Duration time.Duration
}

// EngineHooks receives events from a running engine. engineID tells
// concurrent engines apart.
type EngineHooks interface {
	OnRebuild(ctx context.Context, engineID string, nodes, edges, skipped int, duration time.Duration, err error)
	OnFrame(ctx context.Context, engineID string, stats FrameStats)
	// OnInput records one dispatched input event by kind ("pointer_down",
	// "wheel", "key", ...).
	OnInput(ctx context.Context, engineID, kind string)
	OnFrameError(ctx context.Context, engineID string, err error)
}

// =============================================================================
// Pipeline Hooks
// =============================================================================

// PipelineHooks receives events from the headless pipeline.
type PipelineHooks interface {
	// Load events
	OnLoadStart(ctx context.Context, source string)
	OnLoadComplete(ctx context.Context, source string, nodeCount int, duration time.Duration, err error)

	// Layout events
	OnLayoutStart(ctx context.Context, nodeCount, steps int)
	OnLayoutComplete(ctx context.Context, steps int, duration time.Duration, err error)

	// Render events
	OnRenderStart(ctx context.Context, formats []string)
	OnRenderComplete(ctx context.Context, formats []string, duration time.Duration, err error)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopEngineHooks is a no-op implementation of EngineHooks.
type NoopEngineHooks struct{}

func (NoopEngineHooks) OnRebuild(context.Context, string, int, int, int, time.Duration, error) {}
func (NoopEngineHooks) OnFrame(context.Context, string, FrameStats)                            {}
func (NoopEngineHooks) OnInput(context.Context, string, string)                                {}
func (NoopEngineHooks) OnFrameError(context.Context, string, error)                            {}

// NoopPipelineHooks is a no-op implementation of PipelineHooks.
type NoopPipelineHooks struct{}

func (NoopPipelineHooks) OnLoadStart(context.Context, string)                               {}
func (NoopPipelineHooks) OnLoadComplete(context.Context, string, int, time.Duration, error) {}
func (NoopPipelineHooks) OnLayoutStart(context.Context, int, int)                           {}
func (NoopPipelineHooks) OnLayoutComplete(context.Context, int, time.Duration, error)       {}
func (NoopPipelineHooks) OnRenderStart(context.Context, []string)                           {}
func (NoopPipelineHooks) OnRenderComplete(context.Context, []string, time.Duration, error)  {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	engineHooks   EngineHooks   = NoopEngineHooks{}
	pipelineHooks PipelineHooks = NoopPipelineHooks{}
	hooksMu       sync.RWMutex
)

// SetEngineHooks registers custom engine hooks.
// This should be called once at startup, before any engine is created.
func SetEngineHooks(h EngineHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		engineHooks = h
	}
}

// SetPipelineHooks registers custom pipeline hooks.
func SetPipelineHooks(h PipelineHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		pipelineHooks = h
	}
}

// Engine returns the registered engine hooks.
func Engine() EngineHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return engineHooks
}

// Pipeline returns the registered pipeline hooks.
func Pipeline() PipelineHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return pipelineHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	engineHooks = NoopEngineHooks{}
	pipelineHooks = NoopPipelineHooks{}
}
