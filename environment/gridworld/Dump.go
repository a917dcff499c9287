package gridworld

import (
	"bufio"
	"fmt"
	"io"

	"gonum.org/v1/gonum/mat"
)

// Dump writes a description of every cell in the Grid to w: its
// index, its reward, and each of its four edges with their current
// values. Missing edges are written as null. Dump does not modify the
// Grid.
func (g *Grid) Dump(w io.Writer) error {
	buf := bufio.NewWriter(w)
	fmt.Fprintln(buf, "TABLE:")

	for i, cell := range g.cells {
		fmt.Fprintf(buf, "Index[%d] Reward[%d]\t{", i, cell.reward)
		for j, d := range Directions {
			if j > 0 {
				fmt.Fprint(buf, ", ")
			}
			fmt.Fprintf(buf, "%v:%v", d, edgeString(cell.edges[d]))
		}
		fmt.Fprintln(buf, "}")
	}

	return buf.Flush()
}

func edgeString(e *Edge) string {
	if e == nil {
		return "null"
	}
	return e.String()
}

// Format formats a matrix for printing, for example the output of
// Grid.Values()
func Format(X mat.Matrix) string {
	fa := mat.Formatted(X, mat.Prefix(""), mat.Squeeze())
	return fmt.Sprintf("%.3f", fa)
}
