package system

import (
	"time"

	"github.com/tilecircuit/circuit/internal/core/event"
	coresys "github.com/tilecircuit/circuit/internal/core/system"
)

// DispatchSystem delivers the previous frame's events. Phase 0 (Dispatch).
type DispatchSystem struct {
	bus *event.Bus
}

func NewDispatchSystem(bus *event.Bus) *DispatchSystem {
	return &DispatchSystem{bus: bus}
}

func (s *DispatchSystem) Phase() coresys.Phase { return coresys.PhaseDispatch }

func (s *DispatchSystem) Update(_ time.Duration) {
	s.bus.Dispatch()
}
