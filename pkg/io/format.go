package io

import (
	"path/filepath"
	"strings"

	"github.com/matzehuels/forcegraph/pkg/errors"
)

// Format is a graph serialization format.
type Format string

const (
	FormatJSON Format = "json"
	FormatTOML Format = "toml"
	FormatYAML Format = "yaml"
	FormatDOT  Format = "dot"
)

// Formats lists the supported formats.
var Formats = []string{string(FormatJSON), string(FormatTOML), string(FormatYAML), string(FormatDOT)}

var extensions = map[string]Format{
	".json": FormatJSON,
	".toml": FormatTOML,
	".yaml": FormatYAML,
	".yml":  FormatYAML,
	".dot":  FormatDOT,
	".gv":   FormatDOT,
}

// FormatOf returns the format implied by path's extension.
func FormatOf(path string) (Format, error) {
	ext := strings.ToLower(filepath.Ext(path))
	if f, ok := extensions[ext]; ok {
		return f, nil
	}
	return "", errors.New(errors.ErrCodeInvalidFormat, "unrecognized graph file extension %q", ext)
}

// ParseFormat validates a format name.
func ParseFormat(s string) (Format, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "yml" {
		s = string(FormatYAML)
	}
	if err := errors.ValidateFormat(s, Formats); err != nil {
		return "", err
	}
	return Format(s), nil
}
