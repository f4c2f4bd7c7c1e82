package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/chartgeom/pkg/chartspec"
	cgio "github.com/matzehuels/chartgeom/pkg/io"
	"github.com/matzehuels/chartgeom/pkg/pipeline"
)

type deriveOpts struct {
	format  string
	output  string
	refresh bool
	cache   cacheFlags
}

// deriveCommand creates the derive command.
func (c *CLI) deriveCommand() *cobra.Command {
	opts := deriveOpts{format: pipeline.FormatJSON}

	cmd := &cobra.Command{
		Use:   "derive [spec]",
		Short: "Derive the geometry of a chart spec",
		Long: `Derive the geometry of a chart spec.

The spec is a TOML or JSON file describing axes, items and data. The derived
state (category-axis ticks and one geometry per item) is printed as JSON, or
summarized as a table with --format table.

Results are cached by spec content, so deriving an unchanged spec again is
served from the cache. Use --refresh to force a fresh derivation.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := pipeline.ValidateDeriveFormat(opts.format); err != nil {
				return err
			}
			return c.runDerive(cmd.Context(), cmd.OutOrStdout(), args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.format, "format", "f", opts.format, "output format: json, table")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "write JSON to this file instead of stdout")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "ignore cached geometry")
	opts.cache.register(cmd)

	return cmd
}

func (c *CLI) runDerive(ctx context.Context, stdout io.Writer, path string, opts deriveOpts) error {
	spec, err := chartspec.Load(path)
	if err != nil {
		return err
	}

	runner, err := c.newRunner(ctx, opts.cache)
	if err != nil {
		return fmt.Errorf("initialize cache: %w", err)
	}
	defer runner.Cache.Close()

	prog := newProgress(c.Logger)
	result, err := runner.Derive(ctx, spec, pipeline.Options{Refresh: opts.refresh})
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Derived %d items", result.Stats.Items))

	switch {
	case opts.format == pipeline.FormatTable:
		fmt.Fprintln(stdout, geometryTable(result.Items, result.Derived.AllComposedData))
	case opts.output != "":
		if err := cgio.ExportGeometryJSON(result.Derived, opts.output); err != nil {
			return err
		}
		printSuccess("Wrote geometry")
		printFile(opts.output)
	default:
		if err := cgio.WriteGeometryJSON(stdout, result.Derived); err != nil {
			return err
		}
	}
	printStats(result.Stats.Items, result.Stats.Rows, result.CacheHit)
	return nil
}

// writeOutput writes data to path, or to w when path is empty.
func writeOutput(w io.Writer, path string, data []byte) error {
	if path == "" {
		_, err := w.Write(data)
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	printFile(path)
	return nil
}
