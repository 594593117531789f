package system

import (
	"fmt"
	"time"

	"github.com/tilecircuit/circuit/internal/circuit"
	"github.com/tilecircuit/circuit/internal/core/event"
	coresys "github.com/tilecircuit/circuit/internal/core/system"
	"go.uber.org/zap"
)

// Command is an edit queued by input handling and applied on the frame loop.
type Command interface {
	Apply(g *circuit.Grid, bus *event.Bus) error
}

// ClearArea empties the rectangle spanned by A and B.
type ClearArea struct{ A, B circuit.Point }

func (c ClearArea) Apply(g *circuit.Grid, bus *event.Bus) error {
	n := g.ClearArea(c.A, c.B)
	event.Emit(bus, event.AreaCleared{A: c.A, B: c.B, Changed: n})
	return nil
}

// PaintWire paints wire over the empty tiles of the rectangle spanned by A and B.
type PaintWire struct{ A, B circuit.Point }

func (c PaintWire) Apply(g *circuit.Grid, bus *event.Bus) error {
	n := g.PaintWire(c.A, c.B)
	event.Emit(bus, event.WirePainted{A: c.A, B: c.B, Changed: n})
	return nil
}

// PlaceGate puts a gate on one tile.
type PlaceGate struct {
	At   circuit.Point
	Kind circuit.Kind
}

func (c PlaceGate) Apply(g *circuit.Grid, bus *event.Bus) error {
	ok, err := g.Place(c.At, c.Kind)
	if err != nil {
		return err
	}
	if ok {
		event.Emit(bus, event.GatePlaced{At: c.At, Kind: c.Kind})
	}
	return nil
}

// SetInput drives an input port.
type SetInput struct {
	Port  int
	Value bool
}

func (c SetInput) Apply(g *circuit.Grid, bus *event.Bus) error {
	if err := g.SetInput(c.Port, c.Value); err != nil {
		return err
	}
	event.Emit(bus, event.InputChanged{Port: c.Port, Value: c.Value})
	return nil
}

// ToggleInput flips an input port.
type ToggleInput struct{ Port int }

func (c ToggleInput) Apply(g *circuit.Grid, bus *event.Bus) error {
	v, err := g.Input(c.Port)
	if err != nil {
		return err
	}
	return SetInput{Port: c.Port, Value: !v}.Apply(g, bus)
}

// Step forces one rebuild and pipeline cycle on the next resync phase.
type Step struct{}

func (Step) Apply(g *circuit.Grid, _ *event.Bus) error {
	g.MarkDirty()
	return nil
}

// EditQueue carries commands from input goroutines to the frame loop.
type EditQueue struct {
	ch chan Command
}

func NewEditQueue(size int) *EditQueue {
	return &EditQueue{ch: make(chan Command, size)}
}

// Push queues c without blocking. It reports false when the queue is full and
// c was dropped.
func (q *EditQueue) Push(c Command) bool {
	select {
	case q.ch <- c:
		return true
	default:
		return false
	}
}

// Len returns the number of queued commands.
func (q *EditQueue) Len() int { return len(q.ch) }

// InputSystem applies queued edits to the grid. Phase 1 (Input).
// Edits and resynchronization both run on the frame loop goroutine, so they
// never overlap.
type InputSystem struct {
	grid        *circuit.Grid
	queue       *EditQueue
	bus         *event.Bus
	maxPerFrame int
	log         *zap.Logger
}

func NewInputSystem(g *circuit.Grid, q *EditQueue, bus *event.Bus, maxPerFrame int, log *zap.Logger) *InputSystem {
	return &InputSystem{grid: g, queue: q, bus: bus, maxPerFrame: maxPerFrame, log: log}
}

func (s *InputSystem) Phase() coresys.Phase { return coresys.PhaseInput }

func (s *InputSystem) Update(_ time.Duration) {
	for i := 0; i < s.maxPerFrame; i++ {
		select {
		case c := <-s.queue.ch:
			if err := c.Apply(s.grid, s.bus); err != nil {
				s.log.Warn("edit rejected", zap.String("edit", describe(c)), zap.Error(err))
				continue
			}
			s.log.Debug("edit applied", zap.String("edit", describe(c)))
		default:
			return
		}
	}
}

func describe(c Command) string {
	return fmt.Sprintf("%T%+v", c, c)
}
