package io

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/matzehuels/forcegraph/pkg/errors"
	"github.com/matzehuels/forcegraph/pkg/graph"
)

// ReadJSON decodes a JSON document from r. Unknown fields are rejected.
// ReadJSON does not close r.
func ReadJSON(r io.Reader) ([]graph.Node, []graph.Edge, error) {
	var d document
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&d); err != nil {
		return nil, nil, fmt.Errorf("decode json: %w", err)
	}
	nodes, edges := d.graph()
	return nodes, edges, nil
}

// WriteJSON encodes the graph, including current positions, as indented
// JSON.
func WriteJSON(w io.Writer, nodes []graph.Node, edges []graph.Edge) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(toDocument(nodes, edges)); err != nil {
		return fmt.Errorf("encode json: %w", err)
	}
	return nil
}

// ReadTOML decodes a TOML document. Keys that do not map to a document
// field are an error.
func ReadTOML(r io.Reader) ([]graph.Node, []graph.Edge, error) {
	var d document
	md, err := toml.NewDecoder(r).Decode(&d)
	if err != nil {
		return nil, nil, fmt.Errorf("decode toml: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, nil, errors.New(errors.ErrCodeInvalidFormat, "unknown key %q", undecoded[0].String())
	}
	nodes, edges := d.graph()
	return nodes, edges, nil
}

// WriteTOML encodes the graph as TOML.
func WriteTOML(w io.Writer, nodes []graph.Node, edges []graph.Edge) error {
	if err := toml.NewEncoder(w).Encode(toDocument(nodes, edges)); err != nil {
		return fmt.Errorf("encode toml: %w", err)
	}
	return nil
}

// ReadYAML decodes a YAML document. Unknown fields are rejected.
func ReadYAML(r io.Reader) ([]graph.Node, []graph.Edge, error) {
	var d document
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&d); err != nil {
		if err == io.EOF {
			return nil, nil, nil
		}
		return nil, nil, fmt.Errorf("decode yaml: %w", err)
	}
	nodes, edges := d.graph()
	return nodes, edges, nil
}

// WriteYAML encodes the graph as YAML.
func WriteYAML(w io.Writer, nodes []graph.Node, edges []graph.Edge) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(toDocument(nodes, edges)); err != nil {
		return fmt.Errorf("encode yaml: %w", err)
	}
	return enc.Close()
}

// Read decodes r in the given format.
func Read(ctx context.Context, r io.Reader, f Format) ([]graph.Node, []graph.Edge, error) {
	switch f {
	case FormatJSON:
		return ReadJSON(r)
	case FormatTOML:
		return ReadTOML(r)
	case FormatYAML:
		return ReadYAML(r)
	case FormatDOT:
		var buf bytes.Buffer
		if _, err := buf.ReadFrom(r); err != nil {
			return nil, nil, fmt.Errorf("read dot: %w", err)
		}
		return ReadDOT(ctx, buf.Bytes())
	default:
		return nil, nil, errors.New(errors.ErrCodeUnsupported, "cannot read format %q", f)
	}
}

// Write encodes the graph to w in the given format.
func Write(w io.Writer, f Format, nodes []graph.Node, edges []graph.Edge) error {
	switch f {
	case FormatJSON:
		return WriteJSON(w, nodes, edges)
	case FormatTOML:
		return WriteTOML(w, nodes, edges)
	case FormatYAML:
		return WriteYAML(w, nodes, edges)
	case FormatDOT:
		_, err := io.WriteString(w, ToDOT(nodes, edges))
		return err
	default:
		return errors.New(errors.ErrCodeUnsupported, "cannot write format %q", f)
	}
}
