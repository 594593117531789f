// Package render derives display data from a circuit grid and draws it on a
// terminal screen.
package render

import "github.com/tilecircuit/circuit/internal/circuit"

// MaskScale is the number of mask pixels per tile edge.
const MaskScale = 4

// Mask is an alpha mask over the grid: opaque where tiles can be built on,
// transparent over Unbuildable, Input and Output tiles. Row 0 is grid row 0.
type Mask struct {
	Width  int
	Height int
	Alpha  []uint8
}

// OutlineMask derives the outline mask from the tile kinds of g. It is a pure
// function of tile state and is meant to be computed once after creation.
func OutlineMask(g *circuit.Grid) *Mask {
	m := &Mask{
		Width:  g.Width() * MaskScale,
		Height: g.Height() * MaskScale,
	}
	m.Alpha = make([]uint8, m.Width*m.Height)
	kinds := g.Kinds()
	for py := 0; py < m.Height; py++ {
		row := py / MaskScale * g.Width()
		for px := 0; px < m.Width; px++ {
			if !kinds[row+px/MaskScale].Fixed() {
				m.Alpha[py*m.Width+px] = 0xff
			}
		}
	}
	return m
}

// Opaque reports whether pixel (px, py) is opaque. Out of range pixels are
// transparent.
func (m *Mask) Opaque(px, py int) bool {
	if px < 0 || px >= m.Width || py < 0 || py >= m.Height {
		return false
	}
	return m.Alpha[py*m.Width+px] != 0
}

// TileOpaque samples the mask at the center of tile p.
func (m *Mask) TileOpaque(p circuit.Point) bool {
	return m.Opaque(p.X*MaskScale+MaskScale/2, p.Y*MaskScale+MaskScale/2)
}
