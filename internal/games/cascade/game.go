package cascade

import (
	"github.com/vovakirdan/tui-cascade/internal/config"
	"github.com/vovakirdan/tui-cascade/internal/core"
	"github.com/vovakirdan/tui-cascade/internal/engine"
	"github.com/vovakirdan/tui-cascade/internal/registry"
)

// Package-level knobs set by the CLI before the game is created.
var (
	configPath       string
	difficultyPreset config.DifficultyPreset = config.DifficultyNormal
)

// SetConfigPath sets an explicit config file path.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset sets the difficulty preset applied on top of the
// loaded config.
func SetDifficultyPreset(preset config.DifficultyPreset) {
	difficultyPreset = preset
}

// Game adapts the cascade engine to the platform game interface. All rules
// live in the engine; this layer maps input actions to engine commands,
// paces the engine's discrete steps against the platform tick rate, and
// draws the field.
type Game struct {
	size engine.FieldSize
	eng  *engine.Engine
	cfg  config.CascadeConfig

	tick       uint64
	stepTicker int

	// Screen dimensions
	screenW int
	screenH int

	// Game state flags
	gameOver bool
	paused   bool
	tooSmall bool

	// Last clear, kept briefly for the HUD.
	lastDelta      int
	lastBonus      int
	deltaShowTicks int

	seed int64
}

func init() {
	registry.Register("cascade", func() registry.Game {
		return New()
	})
	registry.Register("cascade_large", func() registry.Game {
		return NewLarge()
	})
}

// New creates a cascade game on the standard 20x10 field.
func New() *Game {
	return &Game{size: engine.SizeStandard}
}

// NewLarge creates a cascade game on the large 30x15 field.
func NewLarge() *Game {
	return &Game{size: engine.SizeLarge}
}

// ID returns the game identifier.
func (g *Game) ID() string {
	if g.size == engine.SizeLarge {
		return "cascade_large"
	}
	return "cascade"
}

// Title returns the display name.
func (g *Game) Title() string {
	if g.size == engine.SizeLarge {
		return "Cascade (Large Field)"
	}
	return "Cascade"
}

// Reset initializes/restarts the game.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	g.tick = 0
	g.stepTicker = 0
	g.gameOver = false
	g.paused = false
	g.screenW = cfg.ScreenW
	g.screenH = cfg.ScreenH
	g.seed = cfg.Seed
	g.lastDelta = 0
	g.lastBonus = 0
	g.deltaShowTicks = 0

	g.tooSmall = g.screenW < g.requiredWidth() || g.screenH < g.requiredHeight()

	if g.eng == nil {
		g.cfg, _ = config.LoadCascade(configPath)
		config.ApplyCascadePreset(&g.cfg, difficultyPreset)
		g.eng = engine.NewWithTuning(engine.Tuning{
			FlashToggles:       g.cfg.Animation.FlashToggles,
			BaseFallDelay:      g.cfg.Pacing.BaseFallDelay,
			MinFallDelay:       g.cfg.Pacing.MinFallDelay,
			LevelSpeedup:       g.cfg.Pacing.LevelSpeedup,
			LandingsPerSpeedup: g.cfg.Pacing.LandingsPerSpeedup,
		})
		g.eng.SetObserver(g)
	}
	g.eng.Reset(g.size, cfg.Seed)
}

// Step advances the game by one tick.
func (g *Game) Step(input core.InputFrame) core.StepResult {
	g.tick++
	if g.deltaShowTicks > 0 {
		g.deltaShowTicks--
	}

	// Handle restart
	if input.Has(core.ActionRestart) && g.gameOver {
		g.Reset(core.RuntimeConfig{
			Seed:    g.seed + 1,
			ScreenW: g.screenW,
			ScreenH: g.screenH,
		})
		return core.StepResult{State: g.State()}
	}

	// Handle pause toggle
	if input.Has(core.ActionPause) && !g.gameOver {
		g.paused = !g.paused
	}

	if g.gameOver || g.paused || g.tooSmall {
		return core.StepResult{State: g.State()}
	}

	g.processInput(input)

	// Advance the engine at the pace of its current phase. Commands above
	// take effect immediately; only the state machine is throttled.
	g.stepTicker++
	if g.stepTicker >= g.stepEveryTicks() {
		g.stepTicker = 0
		g.eng.Tick()
	}

	return core.StepResult{State: g.State()}
}

// processInput maps platform actions to engine commands. The engine itself
// ignores commands outside the falling phase.
func (g *Game) processInput(input core.InputFrame) {
	if input.Has(core.ActionLeft) {
		g.eng.MoveLeft()
	}
	if input.Has(core.ActionRight) {
		g.eng.MoveRight()
	}
	if input.Has(core.ActionRotateCW) {
		g.eng.RotateCW()
	}
	if input.Has(core.ActionRotateCCW) {
		g.eng.RotateCCW()
	}
	if input.Has(core.ActionDrop) {
		g.eng.SoftDrop()
	}
}

// stepEveryTicks returns how many platform ticks one engine step takes in
// the current phase. Clearing and cascading run at fixed animation rates;
// falling speeds up with level and landings.
func (g *Game) stepEveryTicks() int {
	switch g.eng.Phase() {
	case engine.PhaseClearing:
		return g.cfg.Animation.FlashEveryTicks
	case engine.PhaseCascading:
		return g.cfg.Animation.CascadeEveryTicks
	case engine.PhaseFalling:
		return g.eng.FallDelay()
	default:
		return 1
	}
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:    g.eng.Score(),
		Lines:    g.eng.Lines(),
		Level:    g.eng.Level(),
		GameOver: g.gameOver,
		Paused:   g.paused,
	}
}

// Observer callbacks. The engine pushes change notifications here; the
// adapter only latches what the renderer cannot query back.

// BoardChanged is a no-op: the renderer reads the field every frame.
func (g *Game) BoardChanged() {}

// ScoreChanged latches the last clear for the HUD.
func (g *Game) ScoreChanged(_, delta, bonus int) {
	g.lastDelta = delta
	g.lastBonus = bonus
	g.deltaShowTicks = 120 // ~2 seconds at 60 FPS
}

// LinesChanged is a no-op: the line counter is queried.
func (g *Game) LinesChanged(_, _ int) {}

// LevelChanged is a no-op: the level is queried.
func (g *Game) LevelChanged(_ int) {}

// ReservePieceChanged is a no-op: the preview is queried.
func (g *Game) ReservePieceChanged(_ engine.ShapeID) {}

// GameOver latches the terminal state.
func (g *Game) GameOver() {
	g.gameOver = true
}
