package event

import "github.com/tilecircuit/circuit/internal/circuit"

// AreaCleared is emitted after a ClearArea edit.
type AreaCleared struct {
	A, B    circuit.Point
	Changed int
}

// WirePainted is emitted after a PaintWire edit.
type WirePainted struct {
	A, B    circuit.Point
	Changed int
}

// GatePlaced is emitted after a successful Place edit.
type GatePlaced struct {
	At   circuit.Point
	Kind circuit.Kind
}

// InputChanged is emitted when an input port is driven to a new value.
type InputChanged struct {
	Port  int
	Value bool
}

// Resynchronized is emitted after a frame rebuilt the instance set and ran a
// pipeline cycle.
type Resynchronized struct {
	Frame     uint64
	Instances int
}
