package world

import (
	"fmt"

	"github.com/tilecircuit/circuit/internal/circuit"
	"github.com/tilecircuit/circuit/internal/component"
	"go.uber.org/zap"
)

// Factory builds a new inactive component of the given kind.
type Factory func(k circuit.Kind) (component.Component, error)

// LogicFactory returns a Factory that builds components evaluating gates
// through logic.
func LogicFactory(logic component.Logic) Factory {
	return func(k circuit.Kind) (component.Component, error) {
		return component.New(k, logic)
	}
}

// Pool recycles components per kind. Each component keeps the slot it was
// created in for its whole life; the slot generation moves on every release so
// handles from earlier activations stop resolving.
//
// Accessed only from the frame loop goroutine.
type Pool struct {
	factory     Factory
	slots       []component.Component
	generations []uint32
	free        map[circuit.Kind][]uint32
	active      int
	log         *zap.Logger
}

func NewPool(f Factory, log *zap.Logger) *Pool {
	return &Pool{
		factory:     f,
		slots:       make([]component.Component, 0, 256),
		generations: make([]uint32, 0, 256),
		free:        make(map[circuit.Kind][]uint32, len(circuit.BehavioralKinds)),
		log:         log,
	}
}

// Obtain implements circuit.Pool. An inactive component of kind k is reused
// when one is filed; otherwise a new one is built.
func (p *Pool) Obtain(k circuit.Kind, at circuit.Vec) (circuit.Instance, error) {
	var slot uint32
	if fl := p.free[k]; len(fl) > 0 {
		slot = fl[len(fl)-1]
		p.free[k] = fl[:len(fl)-1]
	} else {
		c, err := p.factory(k)
		if err != nil {
			return nil, fmt.Errorf("build %s: %w", k, err)
		}
		slot = uint32(len(p.slots))
		p.slots = append(p.slots, c)
		p.generations = append(p.generations, 0)
		p.log.Debug("pool grew", zap.Stringer("kind", k), zap.Int("slots", len(p.slots)))
	}

	c := p.slots[slot]
	c.Activate(component.NewHandle(slot, p.generations[slot]), at)
	p.active++
	return c, nil
}

// Release implements circuit.Pool. Releasing an inactive component does
// nothing. Components this pool did not hand out cause a panic.
func (p *Pool) Release(inst circuit.Instance) {
	c, ok := inst.(component.Component)
	if !ok {
		panic(fmt.Sprintf("world: release of foreign instance %T", inst))
	}
	if !c.Active() {
		return
	}
	slot := c.Handle().Slot()
	if int(slot) >= len(p.slots) || p.slots[slot] != c {
		panic(fmt.Sprintf("world: release of %s not owned by this pool", c.Kind()))
	}
	c.Deactivate()
	p.generations[slot]++
	p.free[c.Kind()] = append(p.free[c.Kind()], slot)
	p.active--
}

// Lookup resolves h to its component while that activation is current.
func (p *Pool) Lookup(h component.Handle) (component.Component, bool) {
	slot := h.Slot()
	if int(slot) >= len(p.slots) || p.generations[slot] != h.Generation() {
		return nil, false
	}
	c := p.slots[slot]
	if !c.Active() {
		return nil, false
	}
	return c, true
}

// Stats is a snapshot of pool occupancy.
type Stats struct {
	Active int
	Slots  int
	Free   map[circuit.Kind]int
}

func (p *Pool) Stats() Stats {
	s := Stats{Active: p.active, Slots: len(p.slots), Free: make(map[circuit.Kind]int, len(p.free))}
	for k, fl := range p.free {
		if len(fl) > 0 {
			s.Free[k] = len(fl)
		}
	}
	return s
}
