package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/csrgraph/pkg/graph"
	"github.com/matzehuels/csrgraph/pkg/pipeline"
	"github.com/matzehuels/csrgraph/pkg/render/dot"
)

// dotOpts holds the flags of the dot command.
type dotOpts struct {
	output      string
	detailed    bool
	maxVertices int
}

// dotCommand creates the dot command for inspecting small graphs.
func (c *CLI) dotCommand() *cobra.Command {
	var (
		flags buildFlags
		do    dotOpts
	)

	cmd := &cobra.Command{
		Use:   "dot <input>",
		Short: "Draw a small graph with Graphviz",
		Long: `Build a graph and draw it with Graphviz.

The output format follows the extension of --output: .svg and .png are
rendered, anything else receives DOT source. Without --output the DOT source
is printed. Vertices with a self-loop are shaded.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, s, err := flags.resolve(cmd, args[0])
			if err != nil {
				return err
			}
			if s.wide {
				return runDot[int64, int64](cmd.Context(), c, s, opts, do, cmd.OutOrStdout())
			}
			return runDot[int32, int32](cmd.Context(), c, s, opts, do, cmd.OutOrStdout())
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVarP(&do.output, "output", "o", "", "output file: .svg, .png or .dot (default: DOT to stdout)")
	cmd.Flags().BoolVar(&do.detailed, "detailed", false, "label vertices with their degrees")
	cmd.Flags().IntVar(&do.maxVertices, "max-vertices", dot.DefaultMaxVertices, "refuse graphs with more vertices")

	return cmd
}

func runDot[V, E graph.Integer](ctx context.Context, c *CLI, s settings, opts pipeline.Options, do dotOpts, stdout io.Writer) error {
	res, err := execute[V, E](ctx, c, s, opts)
	if err != nil {
		return err
	}
	defer res.Graph.Release()

	src, err := dot.ToDOT(res.Graph, dot.Options{Detailed: do.detailed, MaxVertices: do.maxVertices})
	if err != nil {
		return err
	}
	if do.output == "" {
		_, err := io.WriteString(stdout, src)
		return err
	}

	data := []byte(src)
	switch strings.ToLower(filepath.Ext(do.output)) {
	case ".svg":
		data, err = dot.RenderSVG(ctx, src)
	case ".png":
		data, err = dot.RenderPNG(ctx, src)
	}
	if err != nil {
		return fmt.Errorf("render %s: %w", do.output, err)
	}
	if err := os.WriteFile(do.output, data, 0o644); err != nil {
		return fmt.Errorf("write output %s: %w", do.output, err)
	}

	printSuccess("Drew %d vertices", res.Graph.NumVertices())
	printFile(do.output)
	return nil
}
