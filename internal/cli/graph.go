package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/matzehuels/chartgeom/pkg/chartspec"
	"github.com/matzehuels/chartgeom/pkg/pipeline"
)

type graphOpts struct {
	format   string
	output   string
	detailed bool
	refresh  bool
	cache    cacheFlags
}

// graphCommand creates the graph command for topology diagrams.
func (c *CLI) graphCommand() *cobra.Command {
	opts := graphOpts{format: pipeline.FormatDOT}

	cmd := &cobra.Command{
		Use:   "graph [spec]",
		Short: "Draw the item, axis and stack topology of a chart spec",
		Long: `Draw the item, axis and stack topology of a chart spec.

Each item links to the axes it is plotted against and to its stack group.
The output is Graphviz DOT by default; --format svg renders it in-process.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := pipeline.ValidateGraphFormat(opts.format); err != nil {
				return err
			}
			return c.runGraph(cmd.Context(), cmd.OutOrStdout(), args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.format, "format", "f", opts.format, "output format: dot, svg")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default stdout)")
	cmd.Flags().BoolVar(&opts.detailed, "detailed", false, "show data keys and sizing in labels")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "ignore cached renders")
	opts.cache.register(cmd)

	return cmd
}

func (c *CLI) runGraph(ctx context.Context, stdout io.Writer, path string, opts graphOpts) error {
	spec, err := chartspec.Load(path)
	if err != nil {
		return err
	}
	runner, err := c.newRunner(ctx, opts.cache)
	if err != nil {
		return fmt.Errorf("initialize cache: %w", err)
	}
	defer runner.Cache.Close()

	var spinner *Spinner
	if opts.format == pipeline.FormatSVG {
		spinner = newSpinner(ctx, "Rendering topology...")
		spinner.Start()
	}
	data, hit, err := runner.Topology(ctx, spec, opts.format, pipeline.Options{
		Detailed: opts.detailed,
		Refresh:  opts.refresh,
	})
	if spinner != nil {
		if err != nil {
			spinner.StopWithError("Rendering failed")
		} else {
			spinner.Stop()
		}
	}
	if err != nil {
		return err
	}
	c.Logger.Debug("topology", "format", opts.format, "bytes", len(data), "cached", hit)
	return writeOutput(stdout, opts.output, data)
}
