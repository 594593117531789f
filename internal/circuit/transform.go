package circuit

import "math"

// WorldToLocal maps a world-space point to a grid coordinate. World (0,0) is
// the visual center of the grid. Halfway values round to even.
//
// With clamp the result is forced into the grid; without it the result may be
// out of bounds and the caller must check.
func (g *Grid) WorldToLocal(v Vec, clamp bool) Point {
	p := Point{
		X: int(math.RoundToEven(v.X + float64(g.width-1)*0.5)),
		Y: int(math.RoundToEven(v.Y + float64(g.height-1)*0.5)),
	}
	if clamp {
		p.X = clampInt(p.X, 0, g.width-1)
		p.Y = clampInt(p.Y, 0, g.height-1)
	}
	return p
}

// LocalToWorld returns the world anchor of grid coordinate p. It is the exact
// inverse of the unclamped WorldToLocal.
func (g *Grid) LocalToWorld(p Point) Vec {
	return Vec{
		X: float64(p.X) - float64(g.width-1)*0.5,
		Y: float64(p.Y) - float64(g.height-1)*0.5,
	}
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
