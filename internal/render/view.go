package render

import (
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/tilecircuit/circuit/internal/circuit"
)

// Each tile takes two columns so the board keeps a square-ish aspect.
const cellWidth = 2

var glyphs = map[circuit.Kind]rune{
	circuit.Wire:        '+',
	circuit.Not:         '!',
	circuit.And:         '&',
	circuit.Or:          '|',
	circuit.Nor:         'v',
	circuit.Nand:        'n',
	circuit.Xor:         '^',
	circuit.Empty:       '.',
	circuit.Unbuildable: '#',
	circuit.Input:       'I',
	circuit.Output:      'O',
}

var (
	styleBase      = tcell.StyleDefault
	styleBuildable = tcell.StyleDefault.Foreground(tcell.ColorGray)
	styleFixed     = tcell.StyleDefault.Foreground(tcell.ColorDarkGray)
	styleHigh      = tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true)
	styleTitle     = tcell.StyleDefault.Foreground(tcell.ColorWhite).Bold(true)
	styleStatus    = tcell.StyleDefault.Foreground(tcell.ColorTeal)
)

// View draws one grid on a tcell screen and tracks the edit cursor and the
// pending selection. Grid row 0 is drawn at the bottom, matching world space.
type View struct {
	screen tcell.Screen
	title  string
	mask   *Mask

	cursor    circuit.Point
	anchor    circuit.Point
	selecting bool
	status    string
}

// NewView creates a view of g on screen. The cursor starts at the grid center.
func NewView(screen tcell.Screen, g *circuit.Grid, title string) *View {
	return &View{
		screen: screen,
		title:  title,
		mask:   OutlineMask(g),
		cursor: g.WorldToLocal(circuit.Vec{}, true),
	}
}

// Cursor returns the grid coordinate under the cursor.
func (v *View) Cursor() circuit.Point { return v.cursor }

// MoveCursor moves the cursor by (dx, dy) grid cells, staying on the grid.
func (v *View) MoveCursor(g *circuit.Grid, dx, dy int) {
	w := g.LocalToWorld(v.cursor)
	v.cursor = g.WorldToLocal(circuit.Vec{X: w.X + float64(dx), Y: w.Y + float64(dy)}, true)
}

// ToggleSelection starts a selection at the cursor, or ends the current one
// and returns its corners.
func (v *View) ToggleSelection() (a, b circuit.Point, done bool) {
	if !v.selecting {
		v.selecting = true
		v.anchor = v.cursor
		return circuit.Point{}, circuit.Point{}, false
	}
	v.selecting = false
	return v.anchor, v.cursor, true
}

// Selection returns the corners of the area an edit applies to: the pending
// selection when there is one, the cursor tile otherwise.
func (v *View) Selection() (a, b circuit.Point) {
	if v.selecting {
		return v.anchor, v.cursor
	}
	return v.cursor, v.cursor
}

// CancelSelection drops a pending selection.
func (v *View) CancelSelection() { v.selecting = false }

// SetStatus replaces the status line text.
func (v *View) SetStatus(s string) { v.status = s }

// origin returns the screen cell of grid tile (0, height-1).
func (v *View) origin(g *circuit.Grid) (int, int) {
	sw, sh := v.screen.Size()
	ox := (sw - g.Width()*cellWidth) / 2
	oy := (sh - g.Height()) / 2
	return max(ox, 0), max(oy, 2)
}

// ScreenToLocal maps a screen cell to the grid tile drawn there.
func (v *View) ScreenToLocal(g *circuit.Grid, sx, sy int) (circuit.Point, bool) {
	ox, oy := v.origin(g)
	col := sx - ox
	if col < 0 {
		return circuit.Point{}, false
	}
	// Screen rows grow downwards, world y grows upwards.
	w := circuit.Vec{
		X: float64(col/cellWidth) - float64(g.Width()-1)*0.5,
		Y: float64(g.Height()-1)*0.5 - float64(sy-oy),
	}
	p := g.WorldToLocal(w, false)
	return p, g.InBounds(p.X, p.Y)
}

// LocalToScreen returns the screen cell where tile p is drawn.
func (v *View) LocalToScreen(g *circuit.Grid, p circuit.Point) (int, int) {
	ox, oy := v.origin(g)
	w := g.LocalToWorld(p)
	col := int(w.X + float64(g.Width()-1)*0.5)
	row := int(float64(g.Height()-1)*0.5 - w.Y)
	return ox + col*cellWidth, oy + row
}

func (v *View) inSelection(p circuit.Point) bool {
	if !v.selecting {
		return false
	}
	a, b := v.anchor, v.cursor
	return p.X >= min(a.X, b.X) && p.X <= max(a.X, b.X) &&
		p.Y >= min(a.Y, b.Y) && p.Y <= max(a.Y, b.Y)
}

// Draw renders the whole grid, the title and the status line, then shows
// the screen.
func (v *View) Draw(g *circuit.Grid) {
	v.screen.Clear()
	ox, oy := v.origin(g)

	tw := TextWidth(v.title)
	sw, _ := v.screen.Size()
	drawText(v.screen, max((sw-tw)/2, 0), oy-2, v.title, styleTitle)

	g.Each(func(t circuit.Tile) {
		sx, sy := v.LocalToScreen(g, t.Local)
		style := styleFixed
		if v.mask.TileOpaque(t.Local) {
			style = styleBuildable
		}
		if g.SignalAt(t.Local.X, t.Local.Y) {
			style = styleHigh
		}
		if v.inSelection(t.Local) {
			style = style.Background(tcell.ColorNavy)
		}
		if t.Local == v.cursor {
			style = style.Reverse(true)
		}
		v.screen.SetContent(sx, sy, glyphs[t.Kind], nil, style)
	})

	_, sy := v.LocalToScreen(g, circuit.Point{X: 0, Y: 0})
	drawText(v.screen, ox, sy+2, portLine(g), styleStatus)
	if v.status != "" {
		drawText(v.screen, ox, sy+3, v.status, styleBase)
	}
	v.screen.Show()
}

// portLine summarizes the port values, e.g. "in 0:1 1:0 | out 0:1".
func portLine(g *circuit.Grid) string {
	var b strings.Builder
	b.WriteString("in")
	for i := 0; i < g.Inputs(); i++ {
		on, _ := g.Input(i)
		fmt.Fprintf(&b, " %d:%d", i, bit(on))
	}
	b.WriteString(" | out")
	for i := 0; i < g.Outputs(); i++ {
		on, _ := g.OutputValue(i)
		fmt.Fprintf(&b, " %d:%d", i, bit(on))
	}
	return b.String()
}

func bit(v bool) int {
	if v {
		return 1
	}
	return 0
}
