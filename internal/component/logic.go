package component

import "github.com/tilecircuit/circuit/internal/circuit"

// TruthTable is the built-in Logic.
type TruthTable struct{}

func (TruthTable) Eval(k circuit.Kind, a, b bool) bool {
	switch k {
	case circuit.Not:
		return !a
	case circuit.And:
		return a && b
	case circuit.Or:
		return a || b
	case circuit.Nor:
		return !(a || b)
	case circuit.Nand:
		return !(a && b)
	case circuit.Xor:
		return a != b
	case circuit.Wire:
		return a || b
	}
	return false
}
