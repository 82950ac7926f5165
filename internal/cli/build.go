package cli

import (
	"context"
	"fmt"
	"io"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/matzehuels/csrgraph/pkg/graph"
	"github.com/matzehuels/csrgraph/pkg/pipeline"
)

// buildCommand creates the build command.
func (c *CLI) buildCommand() *cobra.Command {
	var (
		flags   buildFlags
		exports pipeline.Exports
		stats   bool
		plain   bool
		dump    bool
	)

	cmd := &cobra.Command{
		Use:   "build <input>",
		Short: "Convert an edge list into a CSR graph",
		Long: `Convert an edge list into a CSR graph and export it.

The input is a Matrix Market coordinate file, a whitespace separated edge
list or a binary CSR image written by an earlier build. The structure of the
result is chosen with --direction, --reverse and --coo; --sort and
--randomize change the vertex order only.

Reproducible builds are cached locally; use --no-cache to disable.`,
		Example: `  csrgraph build web-Google.mtx --direction undirected --sort --binary web-Google.csr
  csrgraph build road.txt --direction directed --density 0.3 --selection-seed 7 --dimacs road.graph`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, s, err := flags.resolve(cmd, args[0])
			if err != nil {
				return err
			}
			opts.Exports = mergeExports(opts.Exports, exports)
			opts.Stats = stats
			out := cmd.OutOrStdout()
			if s.wide {
				return runBuild[int64, int64](cmd.Context(), c, s, opts, dump, plain, out)
			}
			return runBuild[int32, int32](cmd.Context(), c, s, opts, dump, plain, out)
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVar(&exports.Binary, "binary", "", "write the binary CSR image to this file")
	cmd.Flags().StringVar(&exports.Market, "market", "", "write a Matrix Market file")
	cmd.Flags().StringVar(&exports.Dimacs, "dimacs", "", "write a DIMACS 10th challenge file")
	cmd.Flags().StringVar(&exports.Dot, "dot", "", "write DOT source (.dot) or rendered SVG")
	cmd.Flags().BoolVar(&stats, "stats", false, "print the degree distribution and analysis")
	cmd.Flags().BoolVar(&plain, "plain", false, "print statistics as plain text")
	cmd.Flags().BoolVar(&dump, "dump", false, "print the adjacency of every vertex")

	return cmd
}

// runBuild builds the graph, writes the exports and prints the summary.
func runBuild[V, E graph.Integer](ctx context.Context, c *CLI, s settings, opts pipeline.Options, dump, plain bool, out io.Writer) error {
	res, err := execute[V, E](ctx, c, s, opts)
	if err != nil {
		return err
	}
	defer res.Graph.Release()

	g := res.Graph
	printSuccess("Built %s graph", g.Structure())
	for _, p := range []string{opts.Exports.Binary, opts.Exports.Market, opts.Exports.Dimacs, opts.Exports.Dot} {
		if p != "" {
			printFile(p)
		}
	}
	printStats(g.NumVertices(), g.NumEdges(), res.CacheHit)

	if dump {
		if err := g.Print(out); err != nil {
			return err
		}
	}
	if res.Analysis != nil {
		return writeStats(out, *res.Distribution, *res.Analysis, plain)
	}
	return nil
}

// execute runs the pipeline behind a spinner. The runner is closed before
// returning; the graph stays valid.
func execute[V, E graph.Integer](ctx context.Context, c *CLI, s settings, opts pipeline.Options) (*pipeline.Result[V, E], error) {
	runner, err := c.newRunner(ctx, s.cache)
	if err != nil {
		return nil, fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	opts.Logger = loggerFromContext(ctx)

	// print mode logs every phase; a spinner would overwrite it
	var spinner *Spinner
	if !opts.Print {
		name := filepath.Base(opts.Input)
		spinner = newSpinner(ctx, fmt.Sprintf("Building %s...", name))
		defer watchPhases(spinner, name)()
		spinner.Start()
	}

	prog := newProgress(c.Logger)
	res, err := pipeline.Execute[V, E](ctx, runner, opts)
	if err != nil {
		if spinner != nil {
			spinner.StopWithError("Build failed")
		}
		return nil, err
	}
	if spinner != nil {
		spinner.Stop()
	}
	if ctx.Err() != nil {
		res.Graph.Release()
		return nil, ctx.Err()
	}
	prog.done(fmt.Sprintf("Loaded %s", opts.Input))
	return res, nil
}

// mergeExports returns base with every path set in flags replaced.
func mergeExports(base, flags pipeline.Exports) pipeline.Exports {
	if flags.Binary != "" {
		base.Binary = flags.Binary
	}
	if flags.Market != "" {
		base.Market = flags.Market
	}
	if flags.Dimacs != "" {
		base.Dimacs = flags.Dimacs
	}
	if flags.Dot != "" {
		base.Dot = flags.Dot
	}
	return base
}
