package dot

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"slices"
	"strconv"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/csrgraph/pkg/errors"
	"github.com/matzehuels/csrgraph/pkg/graph"
)

// DefaultMaxVertices bounds the graphs ToDOT accepts when Options.MaxVertices is 0.
const DefaultMaxVertices = 500

// Options configures DOT generation.
type Options struct {
	// Detailed adds the out- and in-degree to every vertex label.
	Detailed bool
	// MaxVertices overrides DefaultMaxVertices.
	MaxVertices int
}

// ToDOT converts g to Graphviz DOT source.
func ToDOT[V, E graph.Integer](g *graph.Graph[V, E], opts Options) (string, error) {
	limit := opts.MaxVertices
	if limit <= 0 {
		limit = DefaultMaxVertices
	}
	nv := g.NumVertices()
	if nv > limit {
		return "", errors.New(errors.ErrCodeUnsupported, "graph has %d vertices, DOT output is limited to %d", nv, limit)
	}

	kind, arrow := "digraph", "->"
	if g.IsUndirected() {
		kind, arrow = "graph", "--"
	}

	out := g.Out()
	in := inDegrees(g)

	var buf bytes.Buffer
	fmt.Fprintf(&buf, "%s G {\n", kind)
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=circle, style=filled, fillcolor=white, fontsize=14];\n")
	buf.WriteString("\n")

	for v := 0; v < nv; v++ {
		label := strconv.Itoa(v)
		if opts.Detailed {
			label = fmt.Sprintf("%d\nout: %d\nin: %d", v, out.Degrees[v], in[v])
		}
		attrs := fmt.Sprintf("label=%q", label)
		if slices.Contains(out.Neighbors(V(v)), V(v)) {
			attrs += ", fillcolor=lightgrey"
		}
		fmt.Fprintf(&buf, "  %d [%s];\n", v, attrs)
	}

	buf.WriteString("\n")
	for u := 0; u < nv; u++ {
		for _, w := range out.Neighbors(V(u)) {
			if g.IsUndirected() && uint64(w) < uint64(u) {
				continue
			}
			fmt.Fprintf(&buf, "  %d %s %d;\n", u, arrow, w)
		}
	}

	buf.WriteString("}\n")
	return buf.String(), nil
}

func inDegrees[V, E graph.Integer](g *graph.Graph[V, E]) []E {
	if g.HasInView() {
		return g.In().Degrees
	}
	in := make([]E, g.NumVertices())
	for _, w := range g.Out().Edges {
		in[w]++
	}
	return in
}

// RenderSVG lays out DOT source and returns SVG bytes.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	svg, err := render(ctx, dot, graphviz.SVG)
	if err != nil {
		return nil, err
	}
	return normalizeViewBox(svg), nil
}

// RenderPNG lays out DOT source and returns PNG bytes.
func RenderPNG(ctx context.Context, dot string) ([]byte, error) {
	return render(ctx, dot, graphviz.PNG)
}

func render(ctx context.Context, dot string, format graphviz.Format) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, format, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return buf.Bytes(), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox replaces the Graphviz svg tag with one whose viewBox
// starts at the origin, so the image scales with its container.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	tag := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(tag))
}
