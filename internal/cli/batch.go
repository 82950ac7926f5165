package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/csrgraph/pkg/batch"
	"github.com/matzehuels/csrgraph/pkg/graph"
	"github.com/matzehuels/csrgraph/pkg/pipeline"
)

// batchOpts holds the flags of the batch command.
type batchOpts struct {
	size     int
	kind     string
	unique   bool
	weighted bool
	seed     uint64
	output   string
}

// batchCommand creates the batch command.
func (c *CLI) batchCommand() *cobra.Command {
	var (
		flags buildFlags
		bo    = batchOpts{kind: batch.Insert.String()}
	)

	cmd := &cobra.Command{
		Use:   "batch <input>",
		Short: "Generate a batch of edge insertions or removals",
		Long: `Build a graph and generate a batch of edge updates against it.

Insert batches hold random vertex pairs; remove batches hold existing edges.
With --weighted, sources are drawn in proportion to their out-degree. With
--unique, the batch is sorted, duplicates are dropped and insertions of
existing edges are removed, so the batch may come out smaller than --size.

The batch is written as a 0-indexed "src dst" edge list.`,
		Example: `  csrgraph batch web-Google.mtx --size 10000 --kind remove --unique -o removals.txt`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, err := batch.ParseKind(bo.kind)
			if err != nil {
				return err
			}
			if bo.size < 0 {
				return fmt.Errorf("invalid size %d", bo.size)
			}
			opts, s, err := flags.resolve(cmd, args[0])
			if err != nil {
				return err
			}
			bopts := batch.Options{Kind: kind, Log: c.Logger}
			if bo.unique {
				bopts.Flags |= batch.Unique
			}
			if bo.weighted {
				bopts.Flags |= batch.Weighted
			}
			if opts.Print {
				bopts.Flags |= batch.Print
			}
			if cmd.Flags().Changed("batch-seed") {
				bopts.Seed = graph.Seed(bo.seed)
			}
			if s.wide {
				return runBatch[int64, int64](cmd.Context(), c, s, opts, bopts, bo, cmd.OutOrStdout())
			}
			return runBatch[int32, int32](cmd.Context(), c, s, opts, bopts, bo, cmd.OutOrStdout())
		},
	}

	flags.register(cmd)
	cmd.Flags().IntVarP(&bo.size, "size", "n", 1000, "number of edges to generate")
	cmd.Flags().StringVar(&bo.kind, "kind", bo.kind, "batch kind: insert, remove")
	cmd.Flags().BoolVar(&bo.unique, "unique", false, "drop duplicate and already present edges")
	cmd.Flags().BoolVar(&bo.weighted, "weighted", false, "draw sources in proportion to their out-degree")
	cmd.Flags().Uint64Var(&bo.seed, "batch-seed", 0, "seed of the batch generator (default: random)")
	cmd.Flags().StringVarP(&bo.output, "output", "o", "", "output file (default: stdout)")
	_ = cmd.RegisterFlagCompletionFunc("kind",
		cobra.FixedCompletions([]string{"insert", "remove"}, cobra.ShellCompDirectiveNoFileComp))

	return cmd
}

func runBatch[V, E graph.Integer](ctx context.Context, c *CLI, s settings, opts pipeline.Options, bopts batch.Options, bo batchOpts, stdout io.Writer) error {
	res, err := execute[V, E](ctx, c, s, opts)
	if err != nil {
		return err
	}
	defer res.Graph.Release()

	src, dst := make([]V, bo.size), make([]V, bo.size)
	n, err := batch.Generate(res.Graph, bo.size, src, dst, bopts)
	if err != nil {
		return fmt.Errorf("generate batch: %w", err)
	}

	if bo.output == "" {
		return batch.Write(stdout, src[:n], dst[:n])
	}
	f, err := os.Create(bo.output)
	if err != nil {
		return fmt.Errorf("create %s: %w", bo.output, err)
	}
	if err := batch.Write(f, src[:n], dst[:n]); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}

	printSuccess("Generated %d %s edges", n, bopts.Kind)
	printFile(bo.output)
	return nil
}
