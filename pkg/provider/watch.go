package provider

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/fsnotify/fsnotify"

	"github.com/matzehuels/forcegraph/pkg/interact"
	fgio "github.com/matzehuels/forcegraph/pkg/io"
)

// WatchDebounce collapses the burst of events an editor save produces.
const WatchDebounce = 100 * time.Millisecond

// Load reads the graph file at path into a new store.
func Load(ctx context.Context, path string) (*Store, error) {
	nodes, edges, err := fgio.ImportFile(ctx, path)
	if err != nil {
		return nil, err
	}
	return NewStore(nodes, edges), nil
}

// Watch reloads path into store whenever the file is written or
// recreated, until ctx ends. A file that fails to load is logged and the
// store keeps its previous graph. The containing directory is watched so
// atomic saves (write to temp, rename) are seen.
func Watch(ctx context.Context, path string, store *Store, logger *log.Logger) error {
	if logger == nil {
		logger = log.Default()
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create file watcher: %w", err)
	}
	defer w.Close()

	if err := w.Add(filepath.Dir(path)); err != nil {
		return fmt.Errorf("watch %s: %w", filepath.Dir(path), err)
	}
	logger.Debug("watching graph file", "path", path)

	reload := interact.NewDebouncer[string](WatchDebounce, nil)
	defer reload.Cancel()

	base := filepath.Base(path)
	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Base(ev.Name) != base {
				continue
			}
			if ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create) {
				reload.Schedule(path)
			}

		case <-reload.C():
			p, _ := reload.Fire()
			nodes, edges, err := fgio.ImportFile(ctx, p)
			if err != nil {
				logger.Warn("reload failed, keeping previous graph", "path", p, "err", err)
				continue
			}
			store.Replace(nodes, edges)
			logger.Info("graph reloaded", "path", p, "nodes", len(nodes), "edges", len(edges))

		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			logger.Error("file watcher error", "err", err)
		}
	}
}
