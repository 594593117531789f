package system

import (
	"time"

	"github.com/tilecircuit/circuit/internal/circuit"
	"github.com/tilecircuit/circuit/internal/core/event"
	coresys "github.com/tilecircuit/circuit/internal/core/system"
	"go.uber.org/zap"
)

// ResyncSystem is the single resynchronization point of the loop. When the
// grid is dirty it rebuilds every instance and runs one Prepare/Compute/Commit
// cycle. Phase 2 (Resync).
type ResyncSystem struct {
	sync   *circuit.Synchronizer
	bus    *event.Bus
	log    *zap.Logger
	frame  uint64
	cycles uint64
}

func NewResyncSystem(sync *circuit.Synchronizer, bus *event.Bus, log *zap.Logger) *ResyncSystem {
	return &ResyncSystem{sync: sync, bus: bus, log: log}
}

func (s *ResyncSystem) Phase() coresys.Phase { return coresys.PhaseResync }

func (s *ResyncSystem) Update(_ time.Duration) {
	s.frame++
	stepped, err := s.sync.Frame()
	if err != nil {
		// The grid stays dirty; the next frame retries.
		s.log.Error("resync failed", zap.Uint64("frame", s.frame), zap.Error(err))
		return
	}
	if !stepped {
		return
	}
	s.cycles++
	n := len(s.sync.Live())
	s.log.Debug("resynchronized",
		zap.Uint64("frame", s.frame),
		zap.Int("instances", n),
	)
	event.Emit(s.bus, event.Resynchronized{Frame: s.frame, Instances: n})
}

// Cycles returns the number of pipeline cycles run so far.
func (s *ResyncSystem) Cycles() uint64 { return s.cycles }
