package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/forcegraph/pkg/pipeline"
)

// renderCommand creates the render command.
func (c *CLI) renderCommand() *cobra.Command {
	var flags renderFlags

	cmd := &cobra.Command{
		Use:   "render [file]",
		Short: "Simulate a graph and write rendered output",
		Long: `Simulate a graph headlessly and write the settled drawing.

The input is a JSON, TOML, YAML or DOT graph file. Without a file the demo
dataset is used. Layouts and artifacts are cached locally, so repeated runs
with the same graph and options are instant.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, output, err := flags.options(cmd, inputArg(args))
			if err != nil {
				return err
			}
			if err := pipeline.ValidateFormats(opts.Formats); err != nil {
				return err
			}
			return c.runRender(cmd.Context(), opts, output, flags.noCache)
		},
	}
	flags.bind(cmd)

	return cmd
}

// runRender executes the pipeline and writes one file per format.
func (c *CLI) runRender(ctx context.Context, opts pipeline.Options, output string, noCache bool) error {
	runner, err := c.newRunner(noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	opts.Logger = c.Logger

	spinner := newSpinnerWithContext(ctx, "Simulating layout...")
	spinner.Start()

	result, err := runner.Execute(ctx, opts)
	if err != nil {
		spinner.StopWithError("Render failed")
		return err
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	return writeArtifacts(artifactWriteParams{
		artifacts: result.Artifacts,
		formats:   opts.Formats,
		input:     opts.Input,
		output:    output,
		stats:     result.Stats,
		cacheHit:  result.CacheInfo.LayoutHit,
	})
}

type artifactWriteParams struct {
	artifacts map[string][]byte
	formats   []string
	input     string
	output    string
	stats     pipeline.Stats
	cacheHit  bool
}

// writeArtifacts writes each rendered format and prints a summary.
func writeArtifacts(p artifactWriteParams) error {
	paths := outputPaths(p.formats, p.input, p.output)

	printSuccess("Render complete")
	for _, format := range p.formats {
		data, ok := p.artifacts[format]
		if !ok {
			continue
		}
		path := paths[format]
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
		printFile(path)
	}
	printStats(p.stats.NodeCount, p.stats.EdgeCount, p.cacheHit)
	printNewline()
	printKeyValue("energy", fmt.Sprintf("%.2f", p.stats.Energy))
	printKeyValue("layout", p.stats.LayoutTime.Round(time.Millisecond).String())
	printKeyValue("render", p.stats.RenderTime.Round(time.Millisecond).String())
	if p.stats.Skipped > 0 {
		printWarning("%d edges skipped", p.stats.Skipped)
	}
	printNewline()
	printNextStep("Explore", viewHint(p.input))
	return nil
}

// outputPaths maps each format to its file. A single format with an
// explicit output uses it verbatim; otherwise the base path gets the
// format's extension.
func outputPaths(formats []string, input, output string) map[string]string {
	paths := make(map[string]string, len(formats))
	if len(formats) == 1 && output != "" {
		paths[formats[0]] = output
		return paths
	}
	base := basePath(output, input)
	for _, f := range formats {
		paths[f] = base + pipeline.Extension(f)
	}
	return paths
}

// basePath derives the output base from the output flag or the input file.
func basePath(output, input string) string {
	if output != "" {
		return trimFormatExt(output)
	}
	if input == "" {
		return demoBase
	}
	return strings.TrimSuffix(input, filepath.Ext(input))
}

// trimFormatExt strips a known output extension from path.
func trimFormatExt(path string) string {
	if ext := pipeline.Extension(pipeline.FormatGraphviz); strings.HasSuffix(path, ext) {
		return strings.TrimSuffix(path, ext)
	}
	ext := filepath.Ext(path)
	if ext != "" && pipeline.ValidateFormat(ext[1:]) == nil {
		return strings.TrimSuffix(path, ext)
	}
	return path
}

func viewHint(input string) string {
	if input == "" {
		return appName + " demo"
	}
	return appName + " view " + input
}
