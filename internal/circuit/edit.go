package circuit

import (
	"errors"
	"fmt"
)

// ErrNotPlaceable is returned by Place for kinds that cannot be placed by hand.
var ErrNotPlaceable = errors.New("kind is not placeable")

// area is a half-open rectangle [minX,maxX) x [minY,maxY) already clipped to
// the grid. It may be empty.
type area struct {
	minX, maxX int
	minY, maxY int
}

// clip orders the corners a and b and intersects the inclusive rectangle they
// span with the grid.
func (g *Grid) clip(a, b Point) area {
	return area{
		minX: max(0, min(a.X, b.X)),
		maxX: min(g.width, max(a.X, b.X)+1),
		minY: max(0, min(a.Y, b.Y)),
		maxY: min(g.height, max(a.Y, b.Y)+1),
	}
}

func (g *Grid) eachIn(r area, fn func(t *Tile)) {
	for y := r.minY; y < r.maxY; y++ {
		for x := r.minX; x < r.maxX; x++ {
			fn(&g.tiles[g.index(x, y)])
		}
	}
}

// ClearArea empties every editable tile in the rectangle spanned by a and b.
// Unbuildable, Input and Output tiles are kept. The rectangle is clipped to
// the grid. The grid is marked dirty even when nothing changed.
// It returns the number of tiles that changed.
func (g *Grid) ClearArea(a, b Point) int {
	n := 0
	g.eachIn(g.clip(a, b), func(t *Tile) {
		if t.Kind.Fixed() || t.Kind == Empty {
			return
		}
		t.Kind = Empty
		n++
	})
	g.dirty = true
	return n
}

// PaintWire turns every Empty tile in the rectangle spanned by a and b into a
// Wire. Any other kind is left alone. The grid is marked dirty even when
// nothing changed. It returns the number of tiles that changed.
func (g *Grid) PaintWire(a, b Point) int {
	n := 0
	g.eachIn(g.clip(a, b), func(t *Tile) {
		if t.Kind == Empty {
			t.Kind = Wire
			n++
		}
	})
	g.dirty = true
	return n
}

// Place puts a gate of kind k on the tile at p. Only Empty and Wire tiles
// accept a gate. Out of bounds or occupied targets are left unchanged and
// report false. The grid is marked dirty whenever k is placeable.
func (g *Grid) Place(p Point, k Kind) (bool, error) {
	if !k.Gate() {
		return false, fmt.Errorf("place %s: %w", k, ErrNotPlaceable)
	}
	g.dirty = true
	if !g.InBounds(p.X, p.Y) {
		return false, nil
	}
	t := &g.tiles[g.index(p.X, p.Y)]
	if t.Kind != Empty && t.Kind != Wire {
		return false, nil
	}
	t.Kind = k
	return true, nil
}
