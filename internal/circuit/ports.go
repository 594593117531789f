package circuit

import (
	"errors"
	"fmt"
)

// ErrUnknownPort is returned for port numbers the grid does not have.
var ErrUnknownPort = errors.New("unknown port")

// Inputs returns the number of input ports.
func (g *Grid) Inputs() int { return len(g.inputTiles) }

// Outputs returns the number of output ports.
func (g *Grid) Outputs() int { return len(g.outputTiles) }

// SetInput drives input port n. Changing an input marks the grid dirty so the
// next frame steps the circuit.
func (g *Grid) SetInput(n int, v bool) error {
	if n < 0 || n >= len(g.inputs) {
		return fmt.Errorf("input %d of %d: %w", n, len(g.inputs), ErrUnknownPort)
	}
	g.inputs[n] = v
	g.dirty = true
	return nil
}

// Input returns the value driven on input port n.
func (g *Grid) Input(n int) (bool, error) {
	if n < 0 || n >= len(g.inputs) {
		return false, fmt.Errorf("input %d of %d: %w", n, len(g.inputs), ErrUnknownPort)
	}
	return g.inputs[n], nil
}

// InputAt returns the grid coordinate of input port n.
func (g *Grid) InputAt(n int) (Point, bool) {
	if n < 0 || n >= len(g.inputTiles) {
		return Point{}, false
	}
	return g.tiles[g.inputTiles[n]].Local, true
}

// OutputAt returns the grid coordinate of output port n.
func (g *Grid) OutputAt(n int) (Point, bool) {
	if n < 0 || n >= len(g.outputTiles) {
		return Point{}, false
	}
	return g.tiles[g.outputTiles[n]].Local, true
}

// SignalAt returns the committed signal visible at (x, y): the port value for
// Input tiles, the committed output of the live instance otherwise. Tiles
// without an instance and out of bounds coordinates read false.
//
// Instances call this from Prepare only.
func (g *Grid) SignalAt(x, y int) bool {
	if !g.InBounds(x, y) {
		return false
	}
	t := &g.tiles[g.index(x, y)]
	switch {
	case t.Kind == Input:
		return g.inputs[t.Port]
	case t.Instance != nil:
		return t.Instance.Output()
	}
	return false
}

// Neighbors4 are the offsets of the four edge neighbors.
var Neighbors4 = [4]Point{{1, 0}, {-1, 0}, {0, 1}, {0, -1}}

// GateOutput is the offset from a gate to the one tile it drives.
var GateOutput = Point{1, 0}

// DrivenSignal returns the committed signal tile from pushes into the
// adjacent tile to. Input ports and wires drive every neighbor; a gate drives
// only the tile at from+GateOutput. Everything else drives nothing.
//
// Instances call this from Prepare only.
func (g *Grid) DrivenSignal(from, to Point) bool {
	if !g.InBounds(from.X, from.Y) {
		return false
	}
	t := &g.tiles[g.index(from.X, from.Y)]
	if t.Kind.Gate() && (Point{from.X + GateOutput.X, from.Y + GateOutput.Y}) != to {
		return false
	}
	return g.SignalAt(from.X, from.Y)
}

// NetworkSignal returns the value of the wire network containing the Wire
// tile at p: the OR of every Input port and gate driving any tile of the
// network. Wires never drive each other, so a network goes low as soon as
// its drivers do.
//
// It reads committed state only; instances call it from Prepare.
func (g *Grid) NetworkSignal(p Point) bool {
	if !g.InBounds(p.X, p.Y) || g.tiles[g.index(p.X, p.Y)].Kind != Wire {
		return false
	}
	seen := map[Point]bool{p: true}
	stack := []Point{p}
	for len(stack) > 0 {
		w := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, d := range Neighbors4 {
			n := Point{w.X + d.X, w.Y + d.Y}
			if !g.InBounds(n.X, n.Y) {
				continue
			}
			if g.tiles[g.index(n.X, n.Y)].Kind == Wire {
				if !seen[n] {
					seen[n] = true
					stack = append(stack, n)
				}
				continue
			}
			if g.DrivenSignal(n, w) {
				return true
			}
		}
	}
	return false
}

// OutputValue returns the value seen by output port n: the OR of the signals
// its four neighbors drive into it.
func (g *Grid) OutputValue(n int) (bool, error) {
	if n < 0 || n >= len(g.outputTiles) {
		return false, fmt.Errorf("output %d of %d: %w", n, len(g.outputTiles), ErrUnknownPort)
	}
	p := g.tiles[g.outputTiles[n]].Local
	for _, d := range Neighbors4 {
		if g.DrivenSignal(Point{p.X + d.X, p.Y + d.Y}, p) {
			return true, nil
		}
	}
	return false, nil
}
