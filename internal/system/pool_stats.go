package system

import (
	"time"

	coresys "github.com/tilecircuit/circuit/internal/core/system"
	"github.com/tilecircuit/circuit/internal/world"
	"go.uber.org/zap"
)

// PoolStatsSystem logs pool occupancy whenever it changes. Phase 4 (Cleanup).
type PoolStatsSystem struct {
	pool *world.Pool
	log  *zap.Logger
	last world.Stats
}

func NewPoolStatsSystem(pool *world.Pool, log *zap.Logger) *PoolStatsSystem {
	return &PoolStatsSystem{pool: pool, log: log}
}

func (s *PoolStatsSystem) Phase() coresys.Phase { return coresys.PhaseCleanup }

func (s *PoolStatsSystem) Update(_ time.Duration) {
	st := s.pool.Stats()
	if st.Active == s.last.Active && st.Slots == s.last.Slots {
		return
	}
	s.last = st
	fields := []zap.Field{
		zap.Int("active", st.Active),
		zap.Int("slots", st.Slots),
	}
	for k, n := range st.Free {
		fields = append(fields, zap.Int("free_"+k.String(), n))
	}
	s.log.Debug("instance pool", fields...)
}
