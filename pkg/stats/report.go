package stats

import (
	"bufio"
	"fmt"
	"io"
)

// WriteDistribution writes the vertex and edge tables of d as plain text.
func WriteDistribution(w io.Writer, d Distribution) error {
	bw := bufio.NewWriter(w)
	fmt.Fprint(bw, "Degree distribution:\n\n")
	for _, b := range d.Buckets {
		fmt.Fprintf(bw, "%9d  %-8s%12d%7.1f %%\n", b.Degree(), exp(b), b.Vertices, b.VertexPercent)
	}
	fmt.Fprint(bw, "\nEdge distribution:\n\n")
	for _, b := range d.Buckets {
		fmt.Fprintf(bw, "%9d  %-8s%12d%7.1f %%\n", b.Degree(), exp(b), b.Edges, b.EdgePercent)
	}
	return bw.Flush()
}

func exp(b Bucket) string { return fmt.Sprintf("(2^%d)", b.Exponent) }

// Row is one labeled line of an analysis report. Percent is negative when
// the row has no share.
type Row struct {
	Label   string
	Value   string
	Percent float64
}

// Rows flattens a into report rows. In-degree rows are only included for
// directed graphs.
func (a Analysis) Rows() []Row {
	rows := []Row{
		{"Average", fmt.Sprintf("%.1f", a.Average), -1},
		{"Std. Deviation", fmt.Sprintf("%.1f", a.StdDev), -1},
		{"Coeff. of variation", fmt.Sprintf("%.1f", a.CoeffVariation), -1},
		{"Gini Coeff", fmt.Sprintf("%.2f", a.Gini), -1},
		{"Density", fmt.Sprintf("%.7f", a.Density), -1},
		{"Max Out-Degree", fmt.Sprint(a.MaxOutDegree), -1},
		{"Max In-Degree", fmt.Sprint(a.MaxInDegree), -1},
		countRow("Rings", a.Rings),
		countRow("Out-Degree = 0", a.OutDegree0),
	}
	if a.Directed {
		rows = append(rows, countRow("In-Degree = 0", a.InDegree0))
	}
	rows = append(rows, countRow("Out-Degree = 1", a.OutDegree1))
	if a.Directed {
		rows = append(rows, countRow("In-Degree = 1", a.InDegree1))
	}
	return append(rows,
		countRow("Leaf", a.Leaves),
		countRow("Out-Leaf", a.OutLeaves),
		countRow("In-Leaf", a.InLeaves),
	)
}

func countRow(label string, c Count) Row {
	return Row{Label: label, Value: fmt.Sprint(c.N), Percent: c.Percent}
}

// WriteAnalysis writes a as an aligned plain text table.
func WriteAnalysis(w io.Writer, a Analysis) error {
	bw := bufio.NewWriter(w)
	fmt.Fprint(bw, "Degree analysis:\n\n")
	for _, r := range a.Rows() {
		fmt.Fprintf(bw, "%28s  %10s", r.Label+":", r.Value)
		if r.Percent >= 0 {
			fmt.Fprintf(bw, "%8.1f%%", r.Percent)
		}
		bw.WriteByte('\n')
	}
	return bw.Flush()
}
