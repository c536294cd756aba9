package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	fgio "github.com/matzehuels/forcegraph/pkg/io"
	"github.com/matzehuels/forcegraph/pkg/pipeline"
)

// layoutCommand creates the layout command.
func (c *CLI) layoutCommand() *cobra.Command {
	var (
		flags  simFlags
		output string
		format string
	)

	cmd := &cobra.Command{
		Use:   "layout [file]",
		Short: "Simulate a graph and print the settled positions",
		Long: `Simulate a graph and print it with the settled node positions.

The output is a graph document in the same format the other commands read,
so it can be fed back in: positioned nodes are not scattered again. Without
--output the document goes to stdout.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, opts, err := flags.options(cmd.Flags(), inputArg(args))
			if err != nil {
				return err
			}
			f, err := fgio.ParseFormat(format)
			if err != nil {
				return err
			}
			return c.runLayout(cmd.Context(), opts, output, f, flags.noCache)
		},
	}

	flags.bind(cmd.Flags())
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file; the extension picks the format (default: stdout)")
	cmd.Flags().StringVarP(&format, "format", "f", string(fgio.FormatJSON), "stdout format: json, toml, yaml, dot")

	return cmd
}

// runLayout loads the graph, settles it, and writes the positioned graph.
func (c *CLI) runLayout(ctx context.Context, opts pipeline.Options, output string, format fgio.Format, noCache bool) error {
	logger := loggerFromContext(ctx)

	runner, err := c.newRunner(noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()
	opts.Logger = c.Logger

	prog := newProgress(logger)
	nodes, edges, err := pipeline.Load(ctx, opts)
	if err != nil {
		return err
	}
	l, hit, _, err := runner.LayoutWithCacheInfo(ctx, nodes, edges, opts)
	if err != nil {
		return fmt.Errorf("compute layout: %w", err)
	}
	prog.done("Layout complete", "nodes", len(l.Nodes), "edges", len(l.Edges), "cached", hit)

	if output == "" {
		return writeLayout(c.Out, format, l)
	}
	if err := fgio.ExportFile(output, l.Nodes, l.Edges); err != nil {
		return fmt.Errorf("write output %s: %w", output, err)
	}

	printSuccess("Layout complete")
	printFile(output)
	printStats(len(l.Nodes), len(l.Edges), hit)
	printNewline()
	printNextStep("Render", appName+" render "+output)
	return nil
}

func writeLayout(w io.Writer, format fgio.Format, l *pipeline.Layout) error {
	return fgio.Write(w, format, l.Nodes, l.Edges)
}
