package cascade

import "github.com/vovakirdan/tui-cascade/internal/engine"

// GameStateType represents the current game state.
type GameStateType string

const (
	StatePlaying     GameStateType = "playing"
	StatePaused      GameStateType = "paused"
	StateGameOver    GameStateType = "game_over"
	StatePausedSmall GameStateType = "paused_small_window"
)

// Snapshot captures the complete game state for determinism testing and replay.
type Snapshot struct {
	Tick     uint64
	Phase    string
	Score    int
	Lines    int
	Level    int
	Landings int
	Occupied int // Occupied field cells
	Falling  string
	FallingX int
	FallingY int
	Reserve  string
	State    GameStateType
}

// Snapshot returns the current game snapshot for determinism verification.
func (g *Game) Snapshot() Snapshot {
	state := StatePlaying
	switch {
	case g.tooSmall:
		state = StatePausedSmall
	case g.gameOver:
		state = StateGameOver
	case g.paused:
		state = StatePaused
	}

	falling := ""
	fx, fy := 0, 0
	if shape, ok := g.eng.FallingPieceShape(); ok {
		falling = shape.String()
		fx, fy, _ = g.eng.FallingPiecePosition()
	}

	return Snapshot{
		Tick:     g.tick,
		Phase:    g.eng.Phase().String(),
		Score:    g.eng.Score(),
		Lines:    g.eng.Lines(),
		Level:    g.eng.Level(),
		Landings: g.eng.Landings(),
		Occupied: g.eng.OccupiedCells(),
		Falling:  falling,
		FallingX: fx,
		FallingY: fy,
		Reserve:  g.eng.ReservedShape().String(),
		State:    state,
	}
}

var _ engine.Observer = (*Game)(nil)
