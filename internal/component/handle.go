package component

// Handle identifies one activation of a pooled component. The lower 32 bits
// are the pool slot, the upper 32 bits its generation. The generation moves
// on every release, so a handle kept across a rebuild goes stale.
type Handle uint64

func NewHandle(slot uint32, generation uint32) Handle {
	return Handle(uint64(generation)<<32 | uint64(slot))
}

func (h Handle) Slot() uint32       { return uint32(h) }
func (h Handle) Generation() uint32 { return uint32(h >> 32) }
func (h Handle) IsZero() bool       { return h == 0 }
