package render

import (
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/tilecircuit/circuit/internal/circuit"
)

func testGrid(t *testing.T) *circuit.Grid {
	t.Helper()
	g, err := circuit.New([]int{
		1, 1, 1, 1, 1,
		2, 0, 0, 0, 3,
		1, 1, 1, 1, 1,
	}, 5, 3)
	if err != nil {
		t.Fatal(err)
	}
	return g
}

func TestOutlineMask(t *testing.T) {
	g := testGrid(t)
	m := OutlineMask(g)
	if m.Width != 5*MaskScale || m.Height != 3*MaskScale || len(m.Alpha) != m.Width*m.Height {
		t.Fatalf("mask %dx%d with %d pixels", m.Width, m.Height, len(m.Alpha))
	}
	g.Each(func(tl circuit.Tile) {
		if got, want := m.TileOpaque(tl.Local), !tl.Kind.Fixed(); got != want {
			t.Errorf("tile %v (%s) opaque = %v, want %v", tl.Local, tl.Kind, got, want)
		}
	})
	// Every pixel of tile (1,1) is opaque, none of (0,1).
	for py := MaskScale; py < 2*MaskScale; py++ {
		for px := 0; px < MaskScale; px++ {
			if m.Opaque(px, py) || !m.Opaque(MaskScale+px, py) {
				t.Fatalf("pixel row %d col %d wrong", py, px)
			}
		}
	}
	if m.Opaque(-1, 0) || m.Opaque(m.Width, 0) {
		t.Error("out of range pixel is opaque")
	}

	// Gates on buildable tiles do not change the mask.
	g.Place(circuit.Point{X: 2, Y: 1}, circuit.Xor)
	if again := OutlineMask(g); string(again.Alpha) != string(m.Alpha) {
		t.Error("mask depends on gate placement")
	}
}

func TestTextWidth(t *testing.T) {
	for _, tc := range []struct {
		in   string
		want int
	}{
		{"", 0},
		{"XOR", 3},
		{"ＸＯＲ", 6},
		{"回路 lab", 8},
		{"in 0:1 out", 10},
	} {
		if got := TextWidth(tc.in); got != tc.want {
			t.Errorf("TextWidth(%q) = %d, want %d", tc.in, got, tc.want)
		}
	}
}

func newScreen(t *testing.T, w, h int) tcell.SimulationScreen {
	t.Helper()
	s := tcell.NewSimulationScreen("UTF-8")
	if err := s.Init(); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(s.Fini)
	s.SetSize(w, h)
	return s
}

func TestView_screenMapping(t *testing.T) {
	g := testGrid(t)
	v := NewView(newScreen(t, 40, 20), g, "test")

	if v.Cursor() != (circuit.Point{X: 2, Y: 1}) {
		t.Errorf("initial cursor %v, want grid center", v.Cursor())
	}
	g.Each(func(tl circuit.Tile) {
		sx, sy := v.LocalToScreen(g, tl.Local)
		for dx := 0; dx < cellWidth; dx++ {
			p, ok := v.ScreenToLocal(g, sx+dx, sy)
			if !ok || p != tl.Local {
				t.Errorf("ScreenToLocal(%d, %d) = %v %v, want %v", sx+dx, sy, p, ok, tl.Local)
			}
		}
	})

	// Row 0 is drawn below row 1.
	_, y0 := v.LocalToScreen(g, circuit.Point{X: 0, Y: 0})
	_, y1 := v.LocalToScreen(g, circuit.Point{X: 0, Y: 1})
	if y0 != y1+1 {
		t.Errorf("row 0 at screen y %d, row 1 at %d", y0, y1)
	}
	if _, ok := v.ScreenToLocal(g, 0, 0); ok {
		t.Error("screen corner maps onto the grid")
	}
}

func TestView_cursorAndSelection(t *testing.T) {
	g := testGrid(t)
	v := NewView(newScreen(t, 40, 20), g, "test")

	v.MoveCursor(g, 10, -10)
	if v.Cursor() != (circuit.Point{X: 4, Y: 0}) {
		t.Errorf("cursor %v, want clamped to {4 0}", v.Cursor())
	}
	if a, b := v.Selection(); a != v.Cursor() || b != v.Cursor() {
		t.Errorf("selection without anchor = %v %v", a, b)
	}

	if _, _, done := v.ToggleSelection(); done {
		t.Fatal("first toggle finished a selection")
	}
	v.MoveCursor(g, -2, 1)
	a, b := v.Selection()
	if a != (circuit.Point{X: 4, Y: 0}) || b != (circuit.Point{X: 2, Y: 1}) {
		t.Errorf("selection = %v %v", a, b)
	}
	if a, b, done := v.ToggleSelection(); !done || a != (circuit.Point{X: 4, Y: 0}) || b != (circuit.Point{X: 2, Y: 1}) {
		t.Errorf("second toggle = %v %v %v", a, b, done)
	}
	v.ToggleSelection()
	v.CancelSelection()
	if a, b := v.Selection(); a != b {
		t.Error("selection survived CancelSelection")
	}
}

func TestView_draw(t *testing.T) {
	g := testGrid(t)
	g.Place(circuit.Point{X: 1, Y: 1}, circuit.Not)
	s := newScreen(t, 40, 20)
	v := NewView(s, g, "Two Lanes")
	v.SetStatus("ready")
	v.Draw(g)

	for _, tc := range []struct {
		p    circuit.Point
		want rune
	}{
		{circuit.Point{X: 0, Y: 0}, '#'},
		{circuit.Point{X: 0, Y: 1}, 'I'},
		{circuit.Point{X: 1, Y: 1}, '!'},
		{circuit.Point{X: 2, Y: 1}, '.'},
		{circuit.Point{X: 4, Y: 1}, 'O'},
	} {
		sx, sy := v.LocalToScreen(g, tc.p)
		if r, _, _, _ := s.GetContent(sx, sy); r != tc.want {
			t.Errorf("tile %v drawn as %q, want %q", tc.p, r, tc.want)
		}
	}

	// Cursor cell is drawn reversed.
	sx, sy := v.LocalToScreen(g, v.Cursor())
	_, _, style, _ := s.GetContent(sx, sy)
	if _, _, attrs := style.Decompose(); attrs&tcell.AttrReverse == 0 {
		t.Error("cursor cell not reversed")
	}

	_, y0 := v.LocalToScreen(g, circuit.Point{})
	ox, _ := v.LocalToScreen(g, circuit.Point{})
	if got := rowText(s, ox, y0+2, 40); !strings.HasPrefix(got, "in 0:0 | out 0:0") {
		t.Errorf("port line = %q", got)
	}
	if got := rowText(s, ox, y0+3, 40); !strings.HasPrefix(got, "ready") {
		t.Errorf("status line = %q", got)
	}
}

func rowText(s tcell.Screen, x, y, w int) string {
	var b strings.Builder
	for ; x < w; x++ {
		r, _, _, _ := s.GetContent(x, y)
		b.WriteRune(r)
	}
	return b.String()
}

func TestPortLine(t *testing.T) {
	g := testGrid(t)
	g.SetInput(0, true)
	if got := portLine(g); got != "in 0:1 | out 0:0" {
		t.Errorf("portLine = %q", got)
	}
}
