// levelcheck loads a level list, builds every level's grid and prints its
// tile counts and outline mask.
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/tilecircuit/circuit/internal/circuit"
	"github.com/tilecircuit/circuit/internal/data"
	"github.com/tilecircuit/circuit/internal/render"
)

func main() {
	if len(os.Args) < 3 {
		fmt.Fprintln(os.Stderr, "Usage: levelcheck <level_list.yaml> <tiles_dir>")
		os.Exit(1)
	}

	levels, err := data.LoadLevels(os.Args[1], os.Args[2])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	failed := 0
	for _, id := range levels.IDs() {
		l, _ := levels.Get(id)
		g, err := circuit.New(l.Layout(), l.Info.Width, l.Info.Height)
		if err != nil {
			fmt.Fprintf(os.Stderr, "level %d: %v\n", id, err)
			failed++
			continue
		}
		fmt.Printf("level %d %q %dx%d\n", id, l.Title(), g.Width(), g.Height())
		for _, k := range []circuit.Kind{circuit.Empty, circuit.Unbuildable, circuit.Input, circuit.Output} {
			fmt.Printf("  %-12s %d\n", k, g.Count(k))
		}
		printMask(render.OutlineMask(g))
	}

	fmt.Printf("Checked %d levels, %d failed\n", levels.Count(), failed)
	if failed > 0 {
		os.Exit(1)
	}
}

// printMask prints one character per tile, top row first.
func printMask(m *render.Mask) {
	w, h := m.Width/render.MaskScale, m.Height/render.MaskScale
	for y := h - 1; y >= 0; y-- {
		var b strings.Builder
		b.WriteString("  ")
		for x := 0; x < w; x++ {
			if m.TileOpaque(circuit.Point{X: x, Y: y}) {
				b.WriteByte('.')
			} else {
				b.WriteByte('#')
			}
		}
		fmt.Println(b.String())
	}
}
