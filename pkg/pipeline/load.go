package pipeline

import (
	"bytes"
	"context"
	"os"

	"github.com/matzehuels/forcegraph/pkg/cache"
	"github.com/matzehuels/forcegraph/pkg/errors"
	"github.com/matzehuels/forcegraph/pkg/graph"
	fgio "github.com/matzehuels/forcegraph/pkg/io"
	"github.com/matzehuels/forcegraph/pkg/provider"
)

// DemoSource is the source name reported when no input file is given.
const DemoSource = "demo"

// Load reads the input graph. An explicit InputFormat overrides the file
// extension.
func Load(ctx context.Context, opts Options) ([]graph.Node, []graph.Edge, error) {
	if opts.Input == "" {
		nodes, edges := provider.Demo()
		return nodes, edges, nil
	}
	if opts.InputFormat == "" {
		return fgio.ImportFile(ctx, opts.Input)
	}

	format, err := fgio.ParseFormat(opts.InputFormat)
	if err != nil {
		return nil, nil, err
	}
	data, err := os.ReadFile(opts.Input)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "graph file %s", opts.Input)
		}
		return nil, nil, errors.Wrap(errors.ErrCodeInvalidPath, err, "read %s", opts.Input)
	}
	return fgio.Read(ctx, bytes.NewReader(data), format)
}

// source names the input for logs and hooks.
func (o *Options) source() string {
	if o.Input == "" {
		return DemoSource
	}
	return o.Input
}

// graphHash hashes the canonical JSON form of a graph, so the same graph
// read from TOML or YAML shares cache entries.
func graphHash(nodes []graph.Node, edges []graph.Edge) (string, error) {
	var buf bytes.Buffer
	if err := fgio.WriteJSON(&buf, nodes, edges); err != nil {
		return "", err
	}
	return cache.Hash(buf.Bytes()), nil
}
