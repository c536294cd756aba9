package engine

import (
	"context"
	"time"

	"github.com/matzehuels/forcegraph/pkg/errors"
	"github.com/matzehuels/forcegraph/pkg/provider"
	"github.com/matzehuels/forcegraph/pkg/scene"
)

// Run drives the engine from a single select loop until ctx ends or
// Dispose is called. It waits on the frame ticker, snapshots from src (each
// one is a full Rebuild), posted input events and the debounced resize.
// Every frame is handed to sink on the Run goroutine; sink must not block
// for long and must not call Dispose.
//
// Run returns ctx.Err() when ctx ends and nil after Dispose. A nil src
// keeps the current graph.
func (e *Engine) Run(ctx context.Context, src provider.Source, sink func(*scene.Frame)) error {
	if !e.runMu.TryLock() {
		return errors.New(errors.ErrCodeBusy, "engine %s is already running", e.id)
	}
	defer e.runMu.Unlock()
	if e.disposed || e.Disposed() {
		return errors.New(errors.ErrCodeDisposed, "engine %s is disposed", e.id)
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var snaps <-chan provider.Snapshot
	if src != nil {
		snaps = src.Subscribe(ctx)
	}

	interval := e.cfg.frameInterval()
	ticks := e.ticks
	var ticker *time.Ticker
	if ticks == nil {
		ticker = time.NewTicker(interval)
		defer ticker.Stop()
		ticks = ticker.C
	}
	defer e.resize.Cancel()

	e.logger.Debug("engine running", "engine", e.id, "fps", e.cfg.FPS)
	for {
		if e.restart {
			e.restart = false
			if ticker != nil {
				ticker.Reset(interval)
			}
		}

		select {
		case <-ctx.Done():
			return ctx.Err()

		case <-e.done:
			return nil

		case snap, ok := <-snaps:
			if !ok {
				snaps = nil
				continue
			}
			if err := e.Rebuild(snap.Nodes, snap.Edges); err != nil {
				e.logger.Error("rebuild failed, keeping previous graph",
					"engine", e.id, "version", snap.Version, "err", err)
			}

		case ev := <-e.events:
			e.Dispatch(ev)

		case <-e.resize.C():
			if size, ok := e.resize.Fire(); ok {
				e.applyResize(size)
			}

		case <-ticks:
			f, err := e.Frame()
			if err != nil {
				e.logger.Error("frame failed", "engine", e.id, "err", err)
				continue
			}
			if sink != nil {
				sink(f)
			}
		}
	}
}
