package pipeline

import (
	"bytes"
	"context"

	"github.com/matzehuels/forcegraph/pkg/engine"
	"github.com/matzehuels/forcegraph/pkg/errors"
	"github.com/matzehuels/forcegraph/pkg/graph"
	fgio "github.com/matzehuels/forcegraph/pkg/io"
	"github.com/matzehuels/forcegraph/pkg/scene"
)

// ctxCheckInterval is how many steps run between context checks.
const ctxCheckInterval = 64

// Layout is the result of the layout stage.
type Layout struct {
	// Nodes carry the settled positions; Edges are the kept edges.
	Nodes []graph.Node
	Edges []graph.Edge
	Frame *scene.Frame
	// Skipped counts input edges the graph dropped.
	Skipped int
	Energy  float64
}

// GenerateLayout simulates opts.Steps frames from the given graph and
// applies the view options to the final frame.
func GenerateLayout(ctx context.Context, nodes []graph.Node, edges []graph.Edge, opts Options) (*Layout, error) {
	return runLayout(ctx, nodes, edges, opts, opts.Steps)
}

// restoreLayout rebuilds a cached layout without stepping it.
func restoreLayout(ctx context.Context, data []byte, opts Options) (*Layout, error) {
	nodes, edges, err := fgio.ReadJSON(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	return runLayout(ctx, nodes, edges, opts, 0)
}

func runLayout(ctx context.Context, nodes []graph.Node, edges []graph.Edge, opts Options, steps int) (*Layout, error) {
	e := engine.New(opts.EngineConfig(), engine.WithLogger(opts.Logger))
	defer e.Dispose()

	if err := e.Rebuild(nodes, edges); err != nil {
		return nil, err
	}
	for i := range steps {
		if i%ctxCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}
		if _, err := e.Frame(); err != nil {
			return nil, err
		}
	}

	if err := applyView(e, opts); err != nil {
		return nil, err
	}
	f, err := e.Snapshot()
	if err != nil {
		return nil, err
	}

	g := e.Graph()
	outNodes, outEdges := g.Snapshot()
	return &Layout{
		Nodes:   outNodes,
		Edges:   outEdges,
		Frame:   f,
		Skipped: len(g.Skipped),
		Energy:  e.Simulation().Stats().Energy,
	}, nil
}

// applyView centers the graph at the requested zoom and highlights the
// requested node.
func applyView(e *engine.Engine, opts Options) error {
	ctrl := e.Controller()
	ctrl.SetView(opts.Zoom, ctrl.View().Pan)
	ctrl.Center()

	if opts.Highlight == nil {
		return nil
	}
	n, ok := e.Graph().Node(graph.NodeID(*opts.Highlight))
	if !ok {
		return errors.New(errors.ErrCodeUnknownNode, "cannot highlight unknown node %d", *opts.Highlight)
	}
	ctrl.SetHighlight(n)
	return nil
}

// marshal encodes the settled positions for the layout cache.
func (l *Layout) marshal() ([]byte, error) {
	var buf bytes.Buffer
	if err := fgio.WriteJSON(&buf, l.Nodes, l.Edges); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
