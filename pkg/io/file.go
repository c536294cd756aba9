package io

import (
	"context"
	"fmt"
	"os"

	"github.com/matzehuels/forcegraph/pkg/errors"
	"github.com/matzehuels/forcegraph/pkg/graph"
)

// ImportFile reads the graph file at path, choosing the decoder from the
// extension.
func ImportFile(ctx context.Context, path string) ([]graph.Node, []graph.Edge, error) {
	if err := errors.ValidatePath(path); err != nil {
		return nil, nil, err
	}
	f, err := FormatOf(path)
	if err != nil {
		return nil, nil, err
	}
	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "graph file %s not found", path)
		}
		return nil, nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer file.Close()

	nodes, edges, err := Read(ctx, file, f)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", path, err)
	}
	return nodes, edges, nil
}

// ExportFile writes the graph to path in the format implied by its
// extension.
func ExportFile(path string, nodes []graph.Node, edges []graph.Edge) error {
	if err := errors.ValidatePath(path); err != nil {
		return err
	}
	f, err := FormatOf(path)
	if err != nil {
		return err
	}
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := Write(file, f, nodes, edges); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}
