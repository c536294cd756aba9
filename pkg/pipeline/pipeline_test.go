package pipeline

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/matzehuels/forcegraph/pkg/cache"
	"github.com/matzehuels/forcegraph/pkg/errors"
	"github.com/matzehuels/forcegraph/pkg/observability"
)

func TestValidateFormat(t *testing.T) {
	tests := []struct {
		format  string
		wantErr bool
	}{
		{"svg", false},
		{"png", false},
		{"pdf", false},
		{"json", false},
		{"dot", false},
		{"graphviz", false},
		{"SVG", false}, // case-insensitive
		{"bmp", true},
		{"", true},
	}

	for _, tt := range tests {
		err := ValidateFormat(tt.format)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateFormat(%q) error = %v, wantErr %v", tt.format, err, tt.wantErr)
		}
	}
}

func TestValidateFormats(t *testing.T) {
	if err := ValidateFormats([]string{"svg", "png"}); err != nil {
		t.Errorf("valid formats should pass: %v", err)
	}
	if err := ValidateFormats([]string{"svg", "invalid"}); err == nil {
		t.Error("invalid format should fail")
	}
	if err := ValidateFormats(nil); err != nil {
		t.Errorf("empty formats should pass: %v", err)
	}
}

func TestValidateStepsAndSize(t *testing.T) {
	if err := ValidateSteps(-1); err == nil {
		t.Error("negative steps should fail")
	}
	if err := ValidateSteps(MaxSteps + 1); err == nil {
		t.Error("steps above the limit should fail")
	}
	if err := ValidateSteps(0); err != nil {
		t.Errorf("zero steps: %v", err)
	}
	if err := ValidateSize(800, 0); err == nil {
		t.Error("zero height should fail")
	}
}

func TestOptionsDefaults(t *testing.T) {
	var o Options
	if err := o.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("ValidateAndSetDefaults: %v", err)
	}
	if o.Steps != DefaultSteps || o.Seed != DefaultSeed || o.Width != DefaultWidth || o.Zoom != DefaultZoom {
		t.Errorf("defaults not applied: %+v", o)
	}
	if len(o.Formats) != 1 || o.Formats[0] != FormatSVG {
		t.Errorf("Formats = %v", o.Formats)
	}
	if o.Physics.Repulsion != 8000 {
		t.Errorf("Physics = %+v", o.Physics)
	}
	if o.Logger == nil {
		t.Error("Logger not defaulted")
	}

	bad := Options{Zoom: 9}
	if err := bad.ValidateAndSetDefaults(); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("zoom 9: err = %v", err)
	}
}

func TestExecuteDemo(t *testing.T) {
	r := NewRunner(nil, nil, nil)
	res, err := r.Execute(context.Background(), Options{
		Steps:   50,
		Formats: []string{"svg", "json", "dot"},
	})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}

	if res.Stats.NodeCount != 10 || res.Stats.EdgeCount != 16 {
		t.Errorf("stats = %+v", res.Stats)
	}
	if res.Stats.Steps != 50 || res.CacheInfo.LayoutHit {
		t.Errorf("steps/cache = %d/%v", res.Stats.Steps, res.CacheInfo.LayoutHit)
	}
	if len(res.Frame.Nodes) != 10 {
		t.Errorf("frame has %d nodes", len(res.Frame.Nodes))
	}
	for _, f := range []string{"svg", "json", "dot"} {
		if len(res.Artifacts[f]) == 0 {
			t.Errorf("artifact %s missing", f)
		}
	}
	if !bytes.HasPrefix(res.Artifacts["dot"], []byte("digraph G {")) {
		t.Errorf("dot artifact = %.40q", res.Artifacts["dot"])
	}
	if res.GraphHash == "" {
		t.Error("GraphHash empty")
	}
}

func TestExecuteUsesCache(t *testing.T) {
	c, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	r := NewRunner(c, nil, nil)
	opts := Options{Steps: 40, Formats: []string{"svg", "json"}}

	first, err := r.Execute(context.Background(), opts)
	if err != nil {
		t.Fatalf("first Execute: %v", err)
	}
	second, err := r.Execute(context.Background(), opts)
	if err != nil {
		t.Fatalf("second Execute: %v", err)
	}

	if first.CacheInfo.LayoutHit || !second.CacheInfo.LayoutHit || !second.CacheInfo.RenderHit {
		t.Errorf("cache info: first %+v, second %+v", first.CacheInfo, second.CacheInfo)
	}
	for i := range first.Nodes {
		if first.Nodes[i].Pos() != second.Nodes[i].Pos() {
			t.Errorf("node %d moved between runs: %v vs %v", first.Nodes[i].ID, first.Nodes[i].Pos(), second.Nodes[i].Pos())
		}
	}
	if !bytes.Equal(first.Artifacts["svg"], second.Artifacts["svg"]) {
		t.Error("cached svg differs")
	}

	opts.Refresh = true
	third, err := r.Execute(context.Background(), opts)
	if err != nil {
		t.Fatalf("refresh Execute: %v", err)
	}
	if third.CacheInfo.LayoutHit {
		t.Error("Refresh must bypass the layout cache")
	}
}

func TestExecuteHighlight(t *testing.T) {
	r := NewRunner(nil, nil, nil)
	id := int64(3)
	res, err := r.Execute(context.Background(), Options{Steps: 5, Highlight: &id, Formats: []string{"svg"}})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if res.Frame.Highlighted == nil || *res.Frame.Highlighted != 3 {
		t.Errorf("Highlighted = %v", res.Frame.Highlighted)
	}
	if !strings.Contains(string(res.Artifacts["svg"]), "#ff4444") {
		t.Error("highlight stroke missing from svg")
	}

	missing := int64(99)
	_, err = r.Execute(context.Background(), Options{Steps: 5, Highlight: &missing})
	if !errors.Is(err, errors.ErrCodeUnknownNode) {
		t.Errorf("unknown highlight: err = %v", err)
	}
}

func TestLoadWithFormatOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "graph.txt")
	doc := `
[[nodes]]
id = 1
name = "a"

[[nodes]]
id = 2
name = "b"

[[edges]]
source = 1
target = 2
`
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatal(err)
	}

	nodes, edges, err := Load(context.Background(), Options{Input: path, InputFormat: "toml"})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(nodes) != 2 || len(edges) != 1 || nodes[1].Name != "b" {
		t.Errorf("loaded %+v %+v", nodes, edges)
	}

	if _, _, err := Load(context.Background(), Options{Input: path}); !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("unknown extension: err = %v", err)
	}
	_, _, err = Load(context.Background(), Options{Input: filepath.Join(t.TempDir(), "nope.toml"), InputFormat: "toml"})
	if !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("missing file: err = %v", err)
	}
}

func TestExecuteCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := NewRunner(nil, nil, nil).Execute(ctx, Options{})
	if err != context.Canceled {
		t.Errorf("err = %v, want context.Canceled", err)
	}
}

type recordingHooks struct {
	observability.NoopPipelineHooks
	mu     sync.Mutex
	events []string
}

func (h *recordingHooks) record(s string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.events = append(h.events, s)
}

func (h *recordingHooks) OnLoadStart(context.Context, string)     { h.record("load") }
func (h *recordingHooks) OnLayoutStart(context.Context, int, int) { h.record("layout") }
func (h *recordingHooks) OnRenderComplete(_ context.Context, _ []string, _ time.Duration, err error) {
	if err == nil {
		h.record("rendered")
	}
}

func TestExecuteFiresHooks(t *testing.T) {
	h := &recordingHooks{}
	observability.SetPipelineHooks(h)
	defer observability.Reset()

	if _, err := NewRunner(nil, nil, nil).Execute(context.Background(), Options{Steps: 1}); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if got := strings.Join(h.events, ","); got != "load,layout,rendered" {
		t.Errorf("hook order = %s", got)
	}
}

func TestExtension(t *testing.T) {
	if Extension(FormatGraphviz) != ".graphviz.svg" || Extension(FormatPNG) != ".png" {
		t.Error("unexpected extensions")
	}
}
