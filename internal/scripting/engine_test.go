package scripting

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/tilecircuit/circuit/internal/circuit"
	"github.com/tilecircuit/circuit/internal/component"
	"go.uber.org/zap"
)

func mustEngine(t *testing.T, src string) *Engine {
	t.Helper()
	e, err := NewEngineFromSource(src, zap.NewNop())
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(e.Close)
	return e
}

func TestEngine_scriptedAndFallback(t *testing.T) {
	// gate_and inverted so script and table disagree.
	e := mustEngine(t, `
function gate_and(a, b)
  return not (a and b)
end
`)
	if !e.Scripted(circuit.And) || e.Scripted(circuit.Or) || e.Scripted(circuit.Wire) {
		t.Fatal("Scripted misreports")
	}
	if !e.Eval(circuit.And, false, false) || e.Eval(circuit.And, true, true) {
		t.Error("gate_and script not used")
	}
	if !e.Eval(circuit.Or, true, false) || e.Eval(circuit.Or, false, false) {
		t.Error("Or did not fall back to the built-in table")
	}
}

func TestEngine_scriptErrorFallsBack(t *testing.T) {
	e := mustEngine(t, `
function gate_xor(a, b)
  error("broken")
end
`)
	if !e.Eval(circuit.Xor, true, false) || e.Eval(circuit.Xor, true, true) {
		t.Error("failing script did not fall back to the built-in table")
	}
}

func TestEngine_badSource(t *testing.T) {
	if _, err := NewEngineFromSource("function (", zap.NewNop()); err == nil {
		t.Error("NewEngineFromSource accepted a syntax error")
	}
}

func TestNewEngine_shippedScripts(t *testing.T) {
	e, err := NewEngine(filepath.Join("..", "..", "scripts"), zap.NewNop())
	if err != nil {
		t.Fatal(err)
	}
	defer e.Close()

	tt := component.TruthTable{}
	for _, k := range circuit.BehavioralKinds {
		if !k.Gate() {
			continue
		}
		if !e.Scripted(k) {
			t.Errorf("%s not scripted", k)
		}
		for _, in := range [][2]bool{{false, false}, {false, true}, {true, false}, {true, true}} {
			if got, want := e.Eval(k, in[0], in[1]), tt.Eval(k, in[0], in[1]); got != want {
				t.Errorf("%s%v = %v, want %v", k, in, got, want)
			}
		}
	}
}

func TestNewEngine_missingDir(t *testing.T) {
	e, err := NewEngine(t.TempDir(), zap.NewNop())
	if err != nil {
		t.Fatal(err)
	}
	defer e.Close()
	if e.Scripted(circuit.Xor) {
		t.Error("empty script dir produced a scripted gate")
	}
}

func TestNewEngine_loadError(t *testing.T) {
	dir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(dir, "gates"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "gates", "bad.lua"), []byte("gate_or = ("), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := NewEngine(dir, zap.NewNop()); err == nil {
		t.Error("NewEngine accepted a broken script")
	}
}
