// Package circuit holds the authoritative tile grid of a logic circuit, the
// edit rules that mutate it, and the rebuild/step protocol that drives the
// live component instances placed on it.
//
// A Grid is owned by a single update loop. Edits, resynchronization and
// pipeline passes must not run concurrently; callers that accept edits from
// other goroutines queue them and apply them on the loop goroutine.
package circuit

import (
	"errors"
	"fmt"
)

// ErrInvalidLayout is returned by New when the layout does not describe a
// width*height grid.
var ErrInvalidLayout = errors.New("invalid layout")

// Point is an integer grid (local) coordinate.
type Point struct {
	X, Y int
}

// Vec is a point in continuous world space.
type Vec struct {
	X, Y float64
}

// Tile is one cell of the grid.
//
// Local, World and Port never change after the grid is created. Kind changes
// only through edit operations, and Instance only through resynchronization.
type Tile struct {
	Local Point
	World Vec
	Kind  Kind
	// Port is the input or output port number for Input/Output tiles, -1 otherwise.
	Port int
	// Instance is the live instance bound to this tile. The tile does not own
	// it; the pool does.
	Instance Instance
	// Signal is the last committed output seen on this tile. It survives
	// rebuilds and seeds the next instance spawned here.
	Signal bool
}

// Grid is a fixed-size rectangular tile array addressed row-major
// (index = y*width + x).
type Grid struct {
	width  int
	height int
	tiles  []Tile

	inputs      []bool // input port values
	inputTiles  []int  // tile index per input port
	outputTiles []int  // tile index per output port

	dirty bool
}

// New builds a grid from a row-major layout of level markers.
// Input and Output ports are numbered in scan order with separate counters.
// The new grid is dirty, so the first frame spawns its instances.
func New(layout []int, width, height int) (*Grid, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("grid size %dx%d: %w", width, height, ErrInvalidLayout)
	}
	if len(layout) != width*height {
		return nil, fmt.Errorf("layout has %d cells, want %d (%dx%d): %w",
			len(layout), width*height, width, height, ErrInvalidLayout)
	}

	g := &Grid{
		width:  width,
		height: height,
		tiles:  make([]Tile, width*height),
	}
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			i := y*width + x
			p := Point{x, y}
			t := Tile{Local: p, World: g.LocalToWorld(p), Kind: kindForMarker(layout[i]), Port: -1}
			switch t.Kind {
			case Input:
				t.Port = len(g.inputTiles)
				g.inputTiles = append(g.inputTiles, i)
			case Output:
				t.Port = len(g.outputTiles)
				g.outputTiles = append(g.outputTiles, i)
			}
			g.tiles[i] = t
		}
	}
	g.inputs = make([]bool, len(g.inputTiles))
	g.dirty = true
	return g, nil
}

func (g *Grid) Width() int  { return g.width }
func (g *Grid) Height() int { return g.height }

// Len returns the number of tiles.
func (g *Grid) Len() int { return len(g.tiles) }

func (g *Grid) index(x, y int) int { return y*g.width + x }

// InBounds reports whether (x, y) addresses a tile.
func (g *Grid) InBounds(x, y int) bool {
	return x >= 0 && x < g.width && y >= 0 && y < g.height
}

// TileAt returns a copy of the tile at (x, y). Out of bounds coordinates are
// a normal query result: an Unbuildable tile and false are returned.
func (g *Grid) TileAt(x, y int) (Tile, bool) {
	if !g.InBounds(x, y) {
		return Tile{Local: Point{x, y}, Kind: Unbuildable, Port: -1}, false
	}
	return g.tiles[g.index(x, y)], true
}

// Each calls fn for every tile in row-major order.
func (g *Grid) Each(fn func(t Tile)) {
	for i := range g.tiles {
		fn(g.tiles[i])
	}
}

// Kinds returns the tile kinds in row-major order.
func (g *Grid) Kinds() []Kind {
	ks := make([]Kind, len(g.tiles))
	for i := range g.tiles {
		ks[i] = g.tiles[i].Kind
	}
	return ks
}

// Count returns the number of tiles of kind k.
func (g *Grid) Count(k Kind) int {
	n := 0
	for i := range g.tiles {
		if g.tiles[i].Kind == k {
			n++
		}
	}
	return n
}

// Dirty reports whether edits are pending a resynchronization.
func (g *Grid) Dirty() bool { return g.dirty }

// MarkDirty requests a resynchronization (and therefore one pipeline cycle)
// on the next frame.
func (g *Grid) MarkDirty() { g.dirty = true }
