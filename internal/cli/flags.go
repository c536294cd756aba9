package cli

import (
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/matzehuels/forcegraph/pkg/config"
	"github.com/matzehuels/forcegraph/pkg/pipeline"
)

// simFlags are the simulation flags shared by render, layout and view.
// Values only override the config file when set on the command line.
type simFlags struct {
	configPath  string
	inputFormat string
	steps       int
	seed        int64
	width       float64
	height      float64
	noCache     bool
	refresh     bool
}

func (f *simFlags) bind(fs *pflag.FlagSet) {
	d := config.Default()
	fs.StringVarP(&f.configPath, "config", "c", "", "config file (.toml, .yaml)")
	fs.StringVar(&f.inputFormat, "input-format", "", "input format: json, toml, yaml, dot (default: by extension)")
	fs.IntVar(&f.steps, "steps", d.Render.Steps, "simulation steps")
	fs.Int64Var(&f.seed, "seed", d.Engine.Seed, "scatter seed")
	fs.Float64Var(&f.width, "width", d.Render.Width, "surface width in pixels")
	fs.Float64Var(&f.height, "height", d.Render.Height, "surface height in pixels")
	fs.BoolVar(&f.noCache, "no-cache", false, "disable caching")
	fs.BoolVar(&f.refresh, "refresh", false, "recompute even when cached")
}

// options loads the config file and applies the flags the user set.
func (f *simFlags) options(fs *pflag.FlagSet, input string) (config.Config, pipeline.Options, error) {
	cfg, err := loadConfig(f.configPath)
	if err != nil {
		return cfg, pipeline.Options{}, err
	}
	opts := cfg.PipelineOptions()
	opts.Input = input
	opts.InputFormat = f.inputFormat
	opts.Refresh = f.refresh
	if fs.Changed("steps") {
		opts.Steps = f.steps
	}
	if fs.Changed("seed") {
		opts.Seed = f.seed
	}
	if fs.Changed("width") {
		opts.Width = f.width
	}
	if fs.Changed("height") {
		opts.Height = f.height
	}
	return cfg, opts, nil
}

// renderFlags adds the output flags of the render command.
type renderFlags struct {
	simFlags
	formats    string
	output     string
	zoom       float64
	highlight  int64
	fitContent bool
	labels     bool
	pixelScale float64
	background string
}

func (f *renderFlags) bind(cmd *cobra.Command) {
	f.simFlags.bind(cmd.Flags())
	fs := cmd.Flags()
	fs.StringVarP(&f.formats, "format", "f", "", "output format(s): svg (default), png, pdf, json, dot, graphviz (comma-separated)")
	fs.StringVarP(&f.output, "output", "o", "", "output file (single format) or base path (multiple)")
	fs.Float64Var(&f.zoom, "zoom", pipeline.DefaultZoom, "view zoom")
	fs.Int64Var(&f.highlight, "highlight", 0, "highlight the node with this id")
	fs.BoolVar(&f.fitContent, "fit", false, "crop the canvas to the drawing")
	fs.BoolVar(&f.labels, "labels", false, "include fitted labels in DOT output")
	fs.Float64Var(&f.pixelScale, "scale", 1, "PNG pixel scale")
	fs.StringVar(&f.background, "background", "", "background color, e.g. #ffffff")
}

// options returns the run options and the output path. The output flag
// wins over the config file's render.output.
func (f *renderFlags) options(cmd *cobra.Command, input string) (pipeline.Options, string, error) {
	fs := cmd.Flags()
	cfg, opts, err := f.simFlags.options(fs, input)
	if err != nil {
		return opts, "", err
	}
	output := cfg.Render.Output
	if f.output != "" {
		output = f.output
	}
	if fs.Changed("format") {
		opts.Formats = parseFormats(f.formats)
	}
	if fs.Changed("zoom") {
		opts.Zoom = f.zoom
	}
	if fs.Changed("highlight") {
		id := f.highlight
		opts.Highlight = &id
	}
	if fs.Changed("fit") {
		opts.FitContent = f.fitContent
	}
	if fs.Changed("scale") {
		opts.PixelScale = f.pixelScale
	}
	if fs.Changed("background") {
		opts.Background = f.background
	}
	opts.Labels = f.labels
	return opts, output, nil
}
