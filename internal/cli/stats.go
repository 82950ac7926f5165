package cli

import (
	"context"
	"io"

	"github.com/spf13/cobra"

	"github.com/matzehuels/csrgraph/pkg/graph"
	"github.com/matzehuels/csrgraph/pkg/pipeline"
	"github.com/matzehuels/csrgraph/pkg/stats"
)

// statsCommand creates the stats command.
func (c *CLI) statsCommand() *cobra.Command {
	var (
		flags buildFlags
		plain bool
	)

	cmd := &cobra.Command{
		Use:   "stats <input>",
		Short: "Print degree statistics of a graph",
		Long: `Build a graph and print its log2 out-degree distribution followed by a
degree analysis (average, deviation, Gini coefficient, density, rings and
leaves). Binary CSR images are read without rebuilding.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, s, err := flags.resolve(cmd, args[0])
			if err != nil {
				return err
			}
			opts.Stats = true
			if s.wide {
				return runStats[int64, int64](cmd.Context(), c, s, opts, plain, cmd.OutOrStdout())
			}
			return runStats[int32, int32](cmd.Context(), c, s, opts, plain, cmd.OutOrStdout())
		},
	}

	flags.register(cmd)
	cmd.Flags().BoolVar(&plain, "plain", false, "print plain text instead of tables")

	return cmd
}

func runStats[V, E graph.Integer](ctx context.Context, c *CLI, s settings, opts pipeline.Options, plain bool, out io.Writer) error {
	res, err := execute[V, E](ctx, c, s, opts)
	if err != nil {
		return err
	}
	defer res.Graph.Release()
	return writeStats(out, *res.Distribution, *res.Analysis, plain)
}

// writeStats prints the distribution and the analysis, as styled tables or
// as plain text.
func writeStats(w io.Writer, d stats.Distribution, a stats.Analysis, plain bool) error {
	if plain {
		if err := stats.WriteDistribution(w, d); err != nil {
			return err
		}
		if _, err := io.WriteString(w, "\n"); err != nil {
			return err
		}
		return stats.WriteAnalysis(w, a)
	}
	_, err := io.WriteString(w, distributionTable(d)+"\n"+analysisTable(a)+"\n")
	return err
}
