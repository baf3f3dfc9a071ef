package engine

import (
	"math/rand"

	"github.com/vovakirdan/tui-cascade/internal/core"
)

// Phase is the controller state. The engine is a cooperative state machine:
// each Tick advances exactly one discrete step of whichever phase is active,
// so the presentation layer can redraw between steps.
type Phase int

const (
	PhaseSpawning Phase = iota
	PhaseFalling
	PhaseClearing
	PhaseCascading
	PhaseGameOver
)

// String returns a human-readable name for the phase.
func (p Phase) String() string {
	switch p {
	case PhaseSpawning:
		return "Spawning"
	case PhaseFalling:
		return "Falling"
	case PhaseClearing:
		return "Clearing"
	case PhaseCascading:
		return "Cascading"
	case PhaseGameOver:
		return "GameOver"
	default:
		return "Unknown"
	}
}

// Tuning holds the pacing parameters of the controller.
type Tuning struct {
	// FlashToggles is how many times a completed row alternates lit/unlit
	// before it is erased.
	FlashToggles int

	// BaseFallDelay is the number of platform ticks between gravity steps
	// at level 1 before any landings.
	BaseFallDelay int

	// MinFallDelay is the floor for the fall delay.
	MinFallDelay int

	// LevelSpeedup is the fall-delay reduction per level gained.
	LevelSpeedup int

	// LandingsPerSpeedup is how many landings shave one tick off the delay.
	LandingsPerSpeedup int
}

// DefaultTuning returns the standard pacing.
func DefaultTuning() Tuning {
	return Tuning{
		FlashToggles:       6,
		BaseFallDelay:      30,
		MinFallDelay:       2,
		LevelSpeedup:       2,
		LandingsPerSpeedup: 8,
	}
}

// Engine is the game controller. It exclusively owns the playfield and the
// falling/reserved pieces; the presentation layer reads state through the
// query API and receives change notifications through the Observer.
type Engine struct {
	field    *Field
	rng      *rand.Rand
	tuning   Tuning
	observer Observer

	falling     *Piece
	nextFalling ShapeID // promoted reserve, spawned on the next Spawning tick
	reserved    ShapeID

	phase   Phase
	running bool

	score    int
	lines    int
	level    int
	landings int

	// Cascade round state.
	bonus       int
	pendingRows []int
	flashLeft   int
	flashOn     bool
	groups      []*Group
}

// New creates an engine with default tuning. Reset must be called before
// the first Tick.
func New() *Engine {
	return NewWithTuning(DefaultTuning())
}

// NewWithTuning creates an engine with explicit pacing parameters.
func NewWithTuning(t Tuning) *Engine {
	return &Engine{
		tuning:   t,
		observer: nopObserver{},
	}
}

// SetObserver installs the presentation-layer observer. Passing nil removes
// the current observer.
func (e *Engine) SetObserver(o Observer) {
	if o == nil {
		e.observer = nopObserver{}
		return
	}
	e.observer = o
}

// Reset starts a new game session on an empty field of the given size.
// The seed makes shape selection and spawn rotations reproducible.
func (e *Engine) Reset(size FieldSize, seed int64) {
	e.field = NewField(size)
	e.rng = rand.New(rand.NewSource(seed))
	e.falling = nil
	e.nextFalling = RandomShape(e.rng)
	e.reserved = RandomShape(e.rng)
	e.phase = PhaseSpawning
	e.running = true
	e.score = 0
	e.lines = 0
	e.level = 1
	e.landings = 0
	e.bonus = 1
	e.pendingRows = nil
	e.flashLeft = 0
	e.flashOn = false
	e.groups = nil
	e.observer.ReservePieceChanged(e.reserved)
	e.observer.BoardChanged()
}

// ForceExit interrupts the session at the next step boundary, discarding
// any scheduled flash or descent steps. The field is left whole; every step
// is atomic at single-row-shift granularity.
func (e *Engine) ForceExit() {
	e.running = false
	e.pendingRows = nil
	e.groups = nil
}

// Tick advances the state machine by one discrete step: a one-row piece
// drop while falling, one flash toggle while clearing, or a one-row descent
// of every active floating group while cascading.
func (e *Engine) Tick() {
	if !e.running || e.phase == PhaseGameOver {
		return
	}
	switch e.phase {
	case PhaseSpawning:
		e.spawn()
	case PhaseFalling:
		e.fall()
	case PhaseClearing:
		e.flashStep()
	case PhaseCascading:
		e.cascadeStep()
	}
}

// spawn performs the game-over check and, if the field is playable, puts
// the promoted reserve piece in flight.
func (e *Engine) spawn() {
	if e.field.TopRowBlocked() {
		e.phase = PhaseGameOver
		e.observer.GameOver()
		return
	}
	e.falling = SpawnPiece(e.nextFalling, e.field.Cols(), e.rng)
	e.phase = PhaseFalling
	e.observer.BoardChanged()
}

// fall drops the piece one row, or lands it when blocked.
func (e *Engine) fall() {
	if e.field.CanMove(e.falling, 0, 1) {
		e.falling.Y++
		e.observer.BoardChanged()
		return
	}
	e.land()
}

// land merges the piece into the field, promotes the reserve, and starts
// the clear-cascade cycle for this landing.
func (e *Engine) land() {
	e.field.Place(e.falling)
	e.falling = nil
	e.landings++

	e.nextFalling = e.reserved
	e.reserved = RandomShape(e.rng)
	e.observer.ReservePieceChanged(e.reserved)

	e.bonus = 1
	rows := e.field.FullRows()
	if len(rows) == 0 {
		e.phase = PhaseSpawning
	} else {
		e.beginClearing(rows)
	}
	e.observer.BoardChanged()
}

// beginClearing marks the completed rows flashing and schedules the erase.
func (e *Engine) beginClearing(rows []int) {
	e.pendingRows = rows
	for _, y := range rows {
		e.field.MarkRowFlashing(y)
	}
	e.flashLeft = e.tuning.FlashToggles
	e.flashOn = true
	e.phase = PhaseClearing
}

// flashStep advances the erase animation one toggle, then erases the rows,
// awards score, and hands off to the gravity resolver.
func (e *Engine) flashStep() {
	if e.flashLeft > 0 {
		e.flashOn = !e.flashOn
		e.flashLeft--
		e.observer.BoardChanged()
		return
	}

	delta := baseScore(e.pendingRows) * e.level * e.bonus
	for _, y := range e.pendingRows {
		e.field.ClearRow(y)
	}
	cleared := len(e.pendingRows)
	e.pendingRows = nil

	e.score += delta
	e.observer.ScoreChanged(e.score, delta, e.bonus)

	e.lines += cleared
	e.observer.LinesChanged(e.lines, cleared)

	if newLevel := e.lines/10 + 1; newLevel != e.level {
		e.level = newLevel
		e.observer.LevelChanged(e.level)
	}

	e.groups = FloatingGroups(e.field)
	e.phase = PhaseCascading
	e.observer.BoardChanged()
}

// cascadeStep advances every active floating group by exactly one row. The
// cascade is finished on the first tick where nothing moved: groups blocked
// only by other groups resume once the blocker has descended, so quiescence
// means every component is grounded. A fresh scan then either starts
// another clear round with a doubled bonus or returns to spawning.
func (e *Engine) cascadeStep() {
	moved := false
	for _, g := range e.groups {
		if g.Drop(e.field) {
			moved = true
		}
	}
	if moved {
		e.observer.BoardChanged()
		return
	}
	e.groups = nil

	if rows := e.field.FullRows(); len(rows) > 0 {
		e.bonus *= 2
		e.beginClearing(rows)
		e.observer.BoardChanged()
		return
	}
	e.phase = PhaseSpawning
}

// commandActive reports whether user commands are currently accepted.
// Commands are only valid while a piece is in flight; anything else is a
// silent no-op, not an error.
func (e *Engine) commandActive() bool {
	return e.running && e.phase == PhaseFalling && e.falling != nil
}

// MoveLeft shifts the falling piece one column left if nothing blocks it.
func (e *Engine) MoveLeft() {
	if !e.commandActive() || !e.field.CanMove(e.falling, -1, 0) {
		return
	}
	e.falling.X--
	e.observer.BoardChanged()
}

// MoveRight shifts the falling piece one column right if nothing blocks it.
func (e *Engine) MoveRight() {
	if !e.commandActive() || !e.field.CanMove(e.falling, 1, 0) {
		return
	}
	e.falling.X++
	e.observer.BoardChanged()
}

// RotateCW rotates the falling piece clockwise, nudging it back inside the
// walls if the rotation overhangs; see rotate.
func (e *Engine) RotateCW() {
	e.rotate(true)
}

// RotateCCW rotates the falling piece counterclockwise; see rotate.
func (e *Engine) RotateCCW() {
	e.rotate(false)
}

// rotate applies the rotation correction protocol: snapshot, rotate, then
// repeatedly nudge the piece toward the field interior while it overhangs a
// wall. A rotation that lands on occupied cells (or cannot be nudged clear)
// is abandoned and the snapshot restored. The loop is bounded by the field
// width.
func (e *Engine) rotate(clockwise bool) {
	if !e.commandActive() {
		return
	}
	snapshot := e.falling.Clone()
	if clockwise {
		e.falling.RotateCW()
	} else {
		e.falling.RotateCCW()
	}

	for range e.field.Cols() {
		switch e.field.Overlap(e.falling) {
		case NotOverlapped:
			e.observer.BoardChanged()
			return
		case OverLeft:
			if !e.field.CanMove(e.falling, 1, 0) {
				*e.falling = *snapshot
				return
			}
			e.falling.X++
		case OverRight:
			if !e.field.CanMove(e.falling, -1, 0) {
				*e.falling = *snapshot
				return
			}
			e.falling.X--
		case Overlapped:
			*e.falling = *snapshot
			return
		}
	}
	*e.falling = *snapshot
}

// SoftDrop slides the falling piece straight down and lands it immediately.
func (e *Engine) SoftDrop() {
	if !e.commandActive() {
		return
	}
	for e.field.CanMove(e.falling, 0, 1) {
		e.falling.Y++
	}
	e.land()
}

// Field queries.

// CellStatus returns the field cell status at (y, x).
func (e *Engine) CellStatus(y, x int) Status {
	return e.field.CellStatus(y, x)
}

// CellColor returns the field cell color at (y, x).
func (e *Engine) CellColor(y, x int) core.Color {
	return e.field.CellColor(y, x)
}

// Rows returns the field height.
func (e *Engine) Rows() int { return e.field.Rows() }

// Cols returns the field width.
func (e *Engine) Cols() int { return e.field.Cols() }

// FallingPiece returns a copy of the piece currently in flight, or nil when
// no piece is falling (spawning, clearing, cascading, game over).
func (e *Engine) FallingPiece() *Piece {
	if e.falling == nil {
		return nil
	}
	return e.falling.Clone()
}

// FallingPiecePosition returns the grid position of the falling piece.
// ok is false when no piece is in flight.
func (e *Engine) FallingPiecePosition() (x, y int, ok bool) {
	if e.falling == nil {
		return 0, 0, false
	}
	return e.falling.X, e.falling.Y, true
}

// FallingPieceShape returns the shape of the falling piece.
// ok is false when no piece is in flight.
func (e *Engine) FallingPieceShape() (ShapeID, bool) {
	if e.falling == nil {
		return 0, false
	}
	return e.falling.Shape, true
}

// ReservedShape returns the preview (next) piece shape.
func (e *Engine) ReservedShape() ShapeID {
	return e.reserved
}

// Counters and session state.

// Score returns the current score.
func (e *Engine) Score() int { return e.score }

// Lines returns the total number of cleared rows.
func (e *Engine) Lines() int { return e.lines }

// Level returns the current level (1-based; advances every 10 lines).
func (e *Engine) Level() int { return e.level }

// CascadeBonus returns the bonus multiplier of the current cascade round.
func (e *Engine) CascadeBonus() int { return e.bonus }

// Landings returns how many pieces have been fixed to the field.
func (e *Engine) Landings() int { return e.landings }

// OccupiedCells returns the number of occupied field cells.
func (e *Engine) OccupiedCells() int { return e.field.OccupiedCount() }

// Phase returns the current controller phase.
func (e *Engine) Phase() Phase { return e.phase }

// Running reports whether the session is live (not exited, not game over).
func (e *Engine) Running() bool {
	return e.running && e.phase != PhaseGameOver
}

// FlashVisible reports the lit/unlit state of the row-erase flash; the
// renderer uses it to blink flashing cells.
func (e *Engine) FlashVisible() bool {
	return e.flashOn
}

// FallDelay returns the number of platform ticks between gravity steps.
// The interval shortens after every few landings and as levels advance.
func (e *Engine) FallDelay() int {
	t := e.tuning
	delay := t.BaseFallDelay - (e.level-1)*t.LevelSpeedup
	if t.LandingsPerSpeedup > 0 {
		delay -= e.landings / t.LandingsPerSpeedup
	}
	return core.Max(delay, t.MinFallDelay)
}
