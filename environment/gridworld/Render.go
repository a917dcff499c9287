package gridworld

import (
	"strings"

	"github.com/logrusorgru/aurora"
)

var arrows = [...]string{Left: "<", Up: "^", Right: ">", Down: "v"}

// Render draws the Grid as one line of text per row. The goal is drawn
// as G and hazards as X. Every other cell shows the direction of its
// best edge, highlighted if the cell lies on path. Colours are applied
// through au, so passing aurora.NewAurora(false) renders plain text.
func Render(g *Grid, path, hazards []int, au aurora.Aurora) string {
	onPath := make(map[int]bool, len(path))
	for _, i := range path {
		onPath[i] = true
	}
	isHazard := make(map[int]bool, len(hazards))
	for _, i := range hazards {
		isHazard[i] = true
	}

	var b strings.Builder
	for y := 0; y < g.h; y++ {
		for x := 0; x < g.w; x++ {
			i := g.Index(x, y)

			var symbol aurora.Value
			switch {
			case i == g.goal:
				symbol = au.Bold(au.Yellow("G"))
			case isHazard[i]:
				symbol = au.Red("X")
			default:
				arrow := "."
				if e := g.cells[i].BestEdge(); e != nil {
					arrow = arrows[directionOf(g.cells[i], e)]
				}
				if onPath[i] {
					symbol = au.Green(arrow)
				} else {
					symbol = au.Blue(arrow)
				}
			}

			b.WriteString(symbol.String())
			if x < g.w-1 {
				b.WriteString(" ")
			}
		}
		b.WriteString("\n")
	}
	return b.String()
}

func directionOf(c *Cell, e *Edge) Direction {
	for _, d := range Directions {
		if c.edges[d] == e {
			return d
		}
	}
	panic("directionOf: edge does not belong to cell")
}
