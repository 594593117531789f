package circuit

import "fmt"

// Synchronizer rebuilds the live instance set of a grid from its tile kinds.
//
// Every resynchronization is a full rebuild: all instances are released and
// respawned, whichever tiles changed.
type Synchronizer struct {
	grid *Grid
	pool Pool
	live []Instance
}

func NewSynchronizer(g *Grid, p Pool) *Synchronizer {
	return &Synchronizer{grid: g, pool: p, live: make([]Instance, 0, g.Len())}
}

// Live returns the instances spawned by the last resynchronization in
// row-major order. The slice is reused by the next Resync.
func (s *Synchronizer) Live() []Instance { return s.live }

// Resync tears down every live instance, spawns one instance per behavioral
// tile in row-major order and clears the dirty flag.
//
// If the pool fails the grid stays dirty and the partial instance set is
// returned with the error.
func (s *Synchronizer) Resync() ([]Instance, error) {
	g := s.grid

	for i := range g.tiles {
		t := &g.tiles[i]
		// A failed spawn leaves tiles without an instance; their signal still
		// seeds the retry. The spawn pass below resets non-behavioral tiles.
		if t.Instance == nil {
			continue
		}
		t.Signal = t.Instance.Output()
		s.pool.Release(t.Instance)
		t.Instance = nil
	}
	s.live = s.live[:0]

	for i := range g.tiles {
		t := &g.tiles[i]
		if !t.Kind.Behavioral() {
			t.Signal = false
			continue
		}
		inst, err := s.pool.Obtain(t.Kind, t.World)
		if err != nil {
			return s.live, fmt.Errorf("spawn %s at %d,%d: %w", t.Kind, t.Local.X, t.Local.Y, err)
		}
		inst.Bind(g, t.Local, t.Signal)
		t.Instance = inst
		s.live = append(s.live, inst)
	}

	g.dirty = false
	return s.live, nil
}

// Frame runs one frame of the update loop: when the grid is dirty it
// resynchronizes and runs one pipeline cycle over the new instance set.
// It reports whether a cycle ran.
func (s *Synchronizer) Frame() (bool, error) {
	if !s.grid.dirty {
		return false, nil
	}
	live, err := s.Resync()
	if err != nil {
		return false, err
	}
	Step(live)
	return true, nil
}
