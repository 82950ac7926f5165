package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/csrgraph/pkg/graph"
	"github.com/matzehuels/csrgraph/pkg/graphio"
	"github.com/matzehuels/csrgraph/pkg/render/dot"
)

// Export writes every configured output of g concurrently. The graph is
// only read, so the writers share it; the first failure is returned.
func Export[V, E graph.Integer](ctx context.Context, g *graph.Graph[V, E], e Exports) error {
	eg, ctx := errgroup.WithContext(ctx)
	if e.Binary != "" {
		eg.Go(func() error {
			return wrapExport("binary", e.Binary, graphio.WriteBinaryFile(e.Binary, g))
		})
	}
	if e.Market != "" {
		eg.Go(func() error {
			return wrapExport("market", e.Market, graphio.ExportMarket(e.Market, g))
		})
	}
	if e.Dimacs != "" {
		eg.Go(func() error {
			return wrapExport("dimacs", e.Dimacs, graphio.ExportDimacs10th(e.Dimacs, g))
		})
	}
	if e.Dot != "" {
		eg.Go(func() error {
			return wrapExport("dot", e.Dot, exportDot(ctx, e.Dot, g))
		})
	}
	return eg.Wait()
}

// exportDot writes DOT source to .dot paths and rendered SVG otherwise.
func exportDot[V, E graph.Integer](ctx context.Context, path string, g *graph.Graph[V, E]) error {
	src, err := dot.ToDOT(g, dot.Options{})
	if err != nil {
		return err
	}
	data := []byte(src)
	if !strings.EqualFold(filepath.Ext(path), ".dot") {
		if data, err = dot.RenderSVG(ctx, src); err != nil {
			return err
		}
	}
	return os.WriteFile(path, data, 0o644)
}

func wrapExport(kind, path string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s %s: %w", kind, path, err)
}
