package system

import (
	"time"

	"github.com/tilecircuit/circuit/internal/circuit"
	coresys "github.com/tilecircuit/circuit/internal/core/system"
	"github.com/tilecircuit/circuit/internal/render"
)

// RenderSystem draws the grid once per frame. Phase 3 (Output).
type RenderSystem struct {
	view *render.View
	grid *circuit.Grid
}

func NewRenderSystem(v *render.View, g *circuit.Grid) *RenderSystem {
	return &RenderSystem{view: v, grid: g}
}

func (s *RenderSystem) Phase() coresys.Phase { return coresys.PhaseOutput }

func (s *RenderSystem) Update(_ time.Duration) {
	s.view.Draw(s.grid)
}
