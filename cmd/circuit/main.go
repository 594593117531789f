package main

import (
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/tilecircuit/circuit/internal/circuit"
	"github.com/tilecircuit/circuit/internal/component"
	"github.com/tilecircuit/circuit/internal/config"
	"github.com/tilecircuit/circuit/internal/core/event"
	coresys "github.com/tilecircuit/circuit/internal/core/system"
	"github.com/tilecircuit/circuit/internal/data"
	"github.com/tilecircuit/circuit/internal/render"
	"github.com/tilecircuit/circuit/internal/scripting"
	"github.com/tilecircuit/circuit/internal/system"
	"github.com/tilecircuit/circuit/internal/world"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

// ── Startup display helpers ────────────────────────────────────────

func printSection(title string) {
	lineLen := max(46-render.TextWidth(title)-1, 3)
	fmt.Printf("  \033[33m── %s %s\033[0m\n", title, strings.Repeat("─", lineLen))
}

func printStat(label string, count int) {
	numStr := fmt.Sprintf("%d", count)
	dotsLen := max(42-render.TextWidth(label)-len(numStr), 3)
	fmt.Printf("  %s \033[90m%s\033[0m \033[32m%s\033[0m\n", label, strings.Repeat("·", dotsLen), numStr)
}

func printOK(msg string) {
	fmt.Printf("  \033[32m✓\033[0m %s\n", msg)
}

// ── Main loop ──────────────────────────────────────────────────────

func run() error {
	// 1. Load config
	cfgPath := "config/circuit.toml"
	if p := os.Getenv("CIRCUIT_CONFIG"); p != "" {
		cfgPath = p
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	// 2. Init logger
	log, err := newLogger(cfg.Logging)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer log.Sync()

	// 3. Load level and gate scripts
	printSection("Level")
	levels, err := data.LoadLevels(cfg.Level.List, cfg.Level.TilesDir)
	if err != nil {
		return fmt.Errorf("load levels: %w", err)
	}
	printStat("levels", levels.Count())
	level, ok := levels.Get(cfg.Level.ID)
	if !ok {
		return fmt.Errorf("level %d not in %s", cfg.Level.ID, cfg.Level.List)
	}

	var logic component.Logic = component.TruthTable{}
	if cfg.Sim.ScriptsDir != "" {
		engine, err := scripting.NewEngine(cfg.Sim.ScriptsDir, log)
		if err != nil {
			return fmt.Errorf("lua engine: %w", err)
		}
		defer engine.Close()
		logic = engine
		printOK("gate scripts loaded")
	}

	// 4. Build grid, pool and synchronizer
	grid, err := circuit.New(level.Layout(), level.Info.Width, level.Info.Height)
	if err != nil {
		return fmt.Errorf("level %d: %w", level.Info.ID, err)
	}
	printStat("tiles", grid.Len())
	printStat("inputs", grid.Inputs())
	printStat("outputs", grid.Outputs())
	log.Info("level loaded",
		zap.Int("id", level.Info.ID),
		zap.String("title", level.Title()),
		zap.Int("width", grid.Width()),
		zap.Int("height", grid.Height()),
	)

	pool := world.NewPool(world.LogicFactory(logic), log)
	sync := circuit.NewSynchronizer(grid, pool)
	bus := event.NewBus()
	edits := system.NewEditQueue(cfg.Sim.MaxEditsPerFrame * 4)
	resync := system.NewResyncSystem(sync, bus, log)

	event.Subscribe(bus, func(ev event.Resynchronized) {
		log.Debug("cycle", zap.Uint64("frame", ev.Frame), zap.Int("instances", ev.Instances))
	})

	runner := coresys.NewRunner()
	runner.Register(system.NewDispatchSystem(bus))
	runner.Register(system.NewInputSystem(grid, edits, bus, cfg.Sim.MaxEditsPerFrame, log))
	runner.Register(resync)
	runner.Register(system.NewPoolStatsSystem(pool, log))

	if cfg.View.Headless {
		return runHeadless(cfg, runner, resync, grid, log)
	}

	// 5. Terminal view
	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("screen init: %w", err)
	}
	defer screen.Fini()
	screen.EnableMouse()

	view := render.NewView(screen, grid, level.Title())
	runner.Register(system.NewRenderSystem(view, grid))
	event.Subscribe(bus, func(ev event.Resynchronized) {
		view.SetStatus(fmt.Sprintf("cycle %d: %d instances", resync.Cycles(), ev.Instances))
	})

	// 6. Frame loop
	shutdownCh := make(chan os.Signal, 1)
	signal.Notify(shutdownCh, syscall.SIGINT, syscall.SIGTERM)

	eventCh := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				return
			}
			eventCh <- ev
		}
	}()

	ticker := time.NewTicker(cfg.Sim.FrameRate)
	defer ticker.Stop()

	for {
		select {
		case ev := <-eventCh:
			if !handleEvent(ev, view, grid, edits, log) {
				log.Info("quit", zap.Uint64("frames", runner.Frames()), zap.Uint64("cycles", resync.Cycles()))
				return nil
			}
		case <-ticker.C:
			runner.Frame(cfg.Sim.FrameRate)
		case sig := <-shutdownCh:
			log.Info("shutdown signal", zap.String("signal", sig.String()))
			return nil
		}
	}
}

// runHeadless runs the configured number of frames without a screen and logs
// the output ports.
func runHeadless(cfg *config.Config, runner *coresys.Runner, resync *system.ResyncSystem, grid *circuit.Grid, log *zap.Logger) error {
	for i := 0; i < cfg.View.Frames; i++ {
		runner.Frame(cfg.Sim.FrameRate)
	}
	fields := []zap.Field{
		zap.Uint64("frames", runner.Frames()),
		zap.Uint64("cycles", resync.Cycles()),
	}
	for i := 0; i < grid.Outputs(); i++ {
		v, err := grid.OutputValue(i)
		if err != nil {
			return err
		}
		fields = append(fields, zap.Bool(fmt.Sprintf("out%d", i), v))
	}
	log.Info("headless run finished", fields...)
	return nil
}

var gateKeys = map[rune]circuit.Kind{
	'n': circuit.Not,
	'a': circuit.And,
	'o': circuit.Or,
	'r': circuit.Nor,
	'd': circuit.Nand,
	'e': circuit.Xor,
}

// handleEvent turns terminal input into queued edits. It returns false when
// the user asked to quit. Only the frame loop touches the grid.
func handleEvent(ev tcell.Event, view *render.View, grid *circuit.Grid, edits *system.EditQueue, log *zap.Logger) bool {
	push := func(c system.Command) {
		if !edits.Push(c) {
			log.Warn("edit queue full, dropping edit")
		}
	}

	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			return false
		case tcell.KeyUp:
			view.MoveCursor(grid, 0, 1)
		case tcell.KeyDown:
			view.MoveCursor(grid, 0, -1)
		case tcell.KeyLeft:
			view.MoveCursor(grid, -1, 0)
		case tcell.KeyRight:
			view.MoveCursor(grid, 1, 0)
		case tcell.KeyRune:
			r := ev.Rune()
			switch {
			case r == 'q':
				return false
			case r == 'v':
				view.ToggleSelection()
			case r == 'w':
				a, b := view.Selection()
				view.CancelSelection()
				push(system.PaintWire{A: a, B: b})
			case r == 'x':
				a, b := view.Selection()
				view.CancelSelection()
				push(system.ClearArea{A: a, B: b})
			case r == 's':
				push(system.Step{})
			case r >= '0' && r <= '9':
				push(system.ToggleInput{Port: int(r - '0')})
			default:
				if k, ok := gateKeys[r]; ok {
					push(system.PlaceGate{At: view.Cursor(), Kind: k})
				}
			}
		}
	case *tcell.EventMouse:
		if ev.Buttons()&tcell.Button1 == 0 {
			break
		}
		x, y := ev.Position()
		if p, ok := view.ScreenToLocal(grid, x, y); ok {
			view.MoveCursor(grid, p.X-view.Cursor().X, p.Y-view.Cursor().Y)
		}
	}
	return true
}

func newLogger(cfg config.LoggingConfig) (*zap.Logger, error) {
	var level zapcore.Level
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		level = zapcore.InfoLevel
	}

	var zapCfg zap.Config
	if cfg.Format == "json" {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
		zapCfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		zapCfg.EncoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05")
		zapCfg.EncoderConfig.ConsoleSeparator = "  "
		zapCfg.DisableCaller = true
		zapCfg.DisableStacktrace = true
	}
	zapCfg.Level = zap.NewAtomicLevelAt(level)
	if cfg.File != "" {
		zapCfg.OutputPaths = []string{cfg.File}
		zapCfg.ErrorOutputPaths = []string{cfg.File}
	}

	return zapCfg.Build()
}
