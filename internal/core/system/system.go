package system

import "time"

// Phase defines execution ordering within a single frame.
type Phase int

const (
	PhaseDispatch Phase = iota // 0: deliver last frame's events
	PhaseInput                 // 1: apply queued edits
	PhaseResync                // 2: rebuild instances + pipeline cycle when dirty
	PhaseOutput                // 3: draw
	PhaseCleanup               // 4: end-of-frame bookkeeping
)

func (p Phase) String() string {
	switch p {
	case PhaseDispatch:
		return "dispatch"
	case PhaseInput:
		return "input"
	case PhaseResync:
		return "resync"
	case PhaseOutput:
		return "output"
	case PhaseCleanup:
		return "cleanup"
	}
	return "phase?"
}

// System is the interface every frame system implements.
type System interface {
	Phase() Phase
	Update(dt time.Duration)
}
