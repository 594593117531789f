package scripting

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/tilecircuit/circuit/internal/circuit"
	"github.com/tilecircuit/circuit/internal/component"
	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"
)

// Engine wraps a single gopher-lua VM that evaluates gate truth tables.
// A gate kind is scripted when a global function named gate_<kind> exists,
// e.g. gate_xor(a, b). Kinds without a script use the built-in tables.
//
// Single-goroutine access only (frame loop).
type Engine struct {
	vm       *lua.LState
	log      *zap.Logger
	fallback component.TruthTable
	fns      map[circuit.Kind]lua.LValue
}

// NewEngine creates a Lua engine and loads every .lua file under
// scriptsDir/gates. A missing directory leaves all gates on the built-in
// tables.
func NewEngine(scriptsDir string, log *zap.Logger) (*Engine, error) {
	vm := lua.NewState(lua.Options{
		SkipOpenLibs: false,
	})
	vm.SetGlobal("API_VERSION", lua.LNumber(1))

	e := &Engine{vm: vm, log: log, fns: make(map[circuit.Kind]lua.LValue)}
	if err := e.loadDir(filepath.Join(scriptsDir, "gates")); err != nil {
		vm.Close()
		return nil, fmt.Errorf("load gate scripts: %w", err)
	}
	e.bind()
	return e, nil
}

// NewEngineFromSource creates an engine from a single script.
func NewEngineFromSource(src string, log *zap.Logger) (*Engine, error) {
	vm := lua.NewState()
	vm.SetGlobal("API_VERSION", lua.LNumber(1))
	e := &Engine{vm: vm, log: log, fns: make(map[circuit.Kind]lua.LValue)}
	if err := vm.DoString(src); err != nil {
		vm.Close()
		return nil, fmt.Errorf("load gate script: %w", err)
	}
	e.bind()
	return e, nil
}

// loadDir loads all .lua files in a directory.
func (e *Engine) loadDir(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".lua" {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		if err := e.vm.DoFile(path); err != nil {
			return fmt.Errorf("load %s: %w", path, err)
		}
		e.log.Debug("loaded lua script", zap.String("file", path))
	}
	return nil
}

// bind resolves the gate_<kind> globals once so Eval does no string work.
func (e *Engine) bind() {
	for _, k := range circuit.BehavioralKinds {
		if !k.Gate() {
			continue
		}
		name := "gate_" + strings.ToLower(k.String())
		if fn := e.vm.GetGlobal(name); fn.Type() == lua.LTFunction {
			e.fns[k] = fn
			e.log.Info("scripted gate", zap.Stringer("kind", k), zap.String("func", name))
		}
	}
}

// Scripted reports whether kind k is evaluated by a script.
func (e *Engine) Scripted(k circuit.Kind) bool {
	_, ok := e.fns[k]
	return ok
}

// Eval implements component.Logic. Script errors are logged and answered by
// the built-in table.
func (e *Engine) Eval(k circuit.Kind, a, b bool) bool {
	fn, ok := e.fns[k]
	if !ok {
		return e.fallback.Eval(k, a, b)
	}
	if err := e.vm.CallByParam(lua.P{
		Fn:      fn,
		NRet:    1,
		Protect: true,
	}, lua.LBool(a), lua.LBool(b)); err != nil {
		e.log.Error("lua gate error", zap.Stringer("kind", k), zap.Error(err))
		return e.fallback.Eval(k, a, b)
	}
	ret := e.vm.Get(-1)
	e.vm.Pop(1)
	return lua.LVAsBool(ret)
}

// Close releases the VM.
func (e *Engine) Close() {
	e.vm.Close()
}
