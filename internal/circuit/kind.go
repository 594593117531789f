package circuit

// Kind is the category of a tile's content.
type Kind int

const (
	Wire Kind = iota
	Not
	And
	Or
	Nor
	Nand
	Xor
	Empty
	Unbuildable
	Input
	Output
)

// Layout markers used by level files. Any other value is an Empty tile.
const (
	MarkerUnbuildable = 1
	MarkerInput       = 2
	MarkerOutput      = 3
)

var kindNames = [...]string{
	Wire:        "Wire",
	Not:         "Not",
	And:         "And",
	Or:          "Or",
	Nor:         "Nor",
	Nand:        "Nand",
	Xor:         "Xor",
	Empty:       "Empty",
	Unbuildable: "Unbuildable",
	Input:       "Input",
	Output:      "Output",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "Kind(?)"
	}
	return kindNames[k]
}

// Behavioral reports whether tiles of this kind get a live instance on resync.
func (k Kind) Behavioral() bool { return k >= Wire && k <= Xor }

// Gate reports whether k is one of the logic gate kinds (Wire excluded).
func (k Kind) Gate() bool { return k >= Not && k <= Xor }

// Fixed reports whether k is assigned at creation and never edited afterwards.
func (k Kind) Fixed() bool { return k == Unbuildable || k == Input || k == Output }

// Behavioral kinds in declaration order.
var BehavioralKinds = []Kind{Wire, Not, And, Or, Nor, Nand, Xor}

func kindForMarker(m int) Kind {
	switch m {
	case MarkerUnbuildable:
		return Unbuildable
	case MarkerInput:
		return Input
	case MarkerOutput:
		return Output
	default:
		return Empty
	}
}
