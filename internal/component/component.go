// Package component implements the live instances spawned on circuit tiles:
// wires and the logic gates.
package component

import (
	"fmt"

	"github.com/tilecircuit/circuit/internal/circuit"
)

// Component is a poolable circuit instance.
type Component interface {
	circuit.Instance
	// Activate marks the component in use under handle h at world point at and
	// resets its signal state.
	Activate(h Handle, at circuit.Vec)
	Deactivate()
	Handle() Handle
	// Position is the world anchor given to the last Activate.
	Position() circuit.Vec
	// Local is the tile the component is bound to.
	Local() circuit.Point
}

// Logic evaluates the truth table of a gate kind. Single-input kinds ignore b.
type Logic interface {
	Eval(k circuit.Kind, a, b bool) bool
}

// New builds an inactive component of kind k. Gates evaluate through logic;
// a nil logic selects the built-in truth tables.
func New(k circuit.Kind, logic Logic) (Component, error) {
	if logic == nil {
		logic = TruthTable{}
	}
	switch {
	case k == circuit.Wire:
		return &Wire{base: base{kind: k}}, nil
	case k == circuit.Not:
		return &UnaryGate{base: base{kind: k}, logic: logic}, nil
	case k.Gate():
		return &BinaryGate{base: base{kind: k}, logic: logic}, nil
	}
	return nil, fmt.Errorf("no component for kind %s", k)
}

// base carries the state shared by every component.
type base struct {
	kind   circuit.Kind
	handle Handle
	active bool
	pos    circuit.Vec

	grid *circuit.Grid
	at   circuit.Point

	out  bool // committed, visible to neighbors
	next bool // computed, not yet committed
}

func (b *base) Kind() circuit.Kind    { return b.kind }
func (b *base) Handle() Handle        { return b.handle }
func (b *base) Active() bool          { return b.active }
func (b *base) Position() circuit.Vec { return b.pos }
func (b *base) Local() circuit.Point  { return b.at }
func (b *base) Output() bool          { return b.out }
func (b *base) Commit()               { b.out = b.next }

// input returns the signal the neighbor at offset (dx, dy) drives into b.
func (b *base) input(dx, dy int) bool {
	return b.grid.DrivenSignal(circuit.Point{X: b.at.X + dx, Y: b.at.Y + dy}, b.at)
}

func (b *base) Activate(h Handle, at circuit.Vec) {
	b.handle = h
	b.pos = at
	b.active = true
	b.grid = nil
	b.at = circuit.Point{}
	b.out, b.next = false, false
}

func (b *base) Deactivate() {
	b.active = false
	b.grid = nil
}

func (b *base) Bind(g *circuit.Grid, at circuit.Point, signal bool) {
	b.grid = g
	b.at = at
	b.out, b.next = signal, signal
}

// Wire carries the value of its wire network: high while any input port or
// gate driving the network is high.
type Wire struct {
	base
	staged bool
}

func (w *Wire) Prepare() { w.staged = w.grid.NetworkSignal(w.at) }

func (w *Wire) Compute() { w.next = w.staged }

// UnaryGate reads its input from the west neighbor. Like every gate it drives
// the tile at circuit.GateOutput.
type UnaryGate struct {
	base
	logic Logic
	in    bool
}

func (g *UnaryGate) Prepare() { g.in = g.input(-1, 0) }

func (g *UnaryGate) Compute() { g.next = g.logic.Eval(g.kind, g.in, false) }

// BinaryGate reads input a from the tile above (y+1) and b from the tile
// below (y-1).
type BinaryGate struct {
	base
	logic Logic
	a, b  bool
}

func (g *BinaryGate) Prepare() {
	g.a = g.input(0, 1)
	g.b = g.input(0, -1)
}

func (g *BinaryGate) Compute() { g.next = g.logic.Eval(g.kind, g.a, g.b) }
