package engine

import (
	"testing"

	"github.com/vovakirdan/tui-cascade/internal/core"
)

type scoreEvent struct {
	total, delta, bonus int
}

// recordingObserver captures notifications for assertions.
type recordingObserver struct {
	scores       []scoreEvent
	lineDeltas   []int
	levels       []int
	reserves     []ShapeID
	boardChanges int
	gameOver     bool
}

func (r *recordingObserver) BoardChanged() { r.boardChanges++ }
func (r *recordingObserver) ScoreChanged(total, delta, bonus int) {
	r.scores = append(r.scores, scoreEvent{total, delta, bonus})
}
func (r *recordingObserver) LinesChanged(_, delta int) {
	r.lineDeltas = append(r.lineDeltas, delta)
}
func (r *recordingObserver) LevelChanged(level int) {
	r.levels = append(r.levels, level)
}
func (r *recordingObserver) ReservePieceChanged(shape ShapeID) {
	r.reserves = append(r.reserves, shape)
}
func (r *recordingObserver) GameOver() { r.gameOver = true }

func newTestEngine(seed int64) (*Engine, *recordingObserver) {
	e := New()
	obs := &recordingObserver{}
	e.SetObserver(obs)
	e.Reset(SizeStandard, seed)
	return e, obs
}

// fillRow occupies row y except the listed columns.
func fillRow(f *Field, y int, except ...int) {
	skip := make(map[int]bool, len(except))
	for _, x := range except {
		skip[x] = true
	}
	for x := 0; x < f.Cols(); x++ {
		if !skip[x] {
			f.setOccupied(y, x, core.ColorGray)
		}
	}
}

// settle ticks the engine until it returns to Spawning (or gives up).
func settle(t *testing.T, e *Engine) {
	t.Helper()
	for i := 0; i < 500; i++ {
		if e.Phase() == PhaseSpawning || e.Phase() == PhaseGameOver {
			return
		}
		e.Tick()
	}
	t.Fatal("engine did not settle")
}

func TestSingleRowClear(t *testing.T) {
	// Row 19 is full except two cells; an O piece fills them, clears the
	// row, and the two leftover O blocks cascade down onto the floor.
	e, obs := newTestEngine(1)
	fillRow(e.field, 19, 4, 5)

	e.falling = NewPiece(ShapeO, 4, 18)
	e.phase = PhaseFalling

	e.Tick() // cannot move down: lands, detects the full row
	if e.Phase() != PhaseClearing {
		t.Fatalf("phase after landing = %v, expected Clearing", e.Phase())
	}
	settle(t, e)

	if e.Score() != 40 {
		t.Errorf("score = %d, expected 40 (single clear at level 1, bonus 1)", e.Score())
	}
	if e.Lines() != 1 {
		t.Errorf("lines = %d, expected 1", e.Lines())
	}
	if len(obs.scores) != 1 || obs.scores[0] != (scoreEvent{40, 40, 1}) {
		t.Errorf("score events = %v, expected [{40 40 1}]", obs.scores)
	}
	if len(obs.lineDeltas) != 1 || obs.lineDeltas[0] != 1 {
		t.Errorf("line deltas = %v, expected [1]", obs.lineDeltas)
	}

	// The upper half of the O piece has fallen onto the floor.
	if e.field.OccupiedCount() != 2 {
		t.Errorf("occupied count = %d, expected 2", e.field.OccupiedCount())
	}
	if e.CellStatus(19, 4) != StatusOccupied || e.CellStatus(19, 5) != StatusOccupied {
		t.Error("leftover blocks should have cascaded to the bottom row")
	}
}

func TestCascadeChainDoublesBonus(t *testing.T) {
	// Rows 18 and 19 clear simultaneously. Row 17 (cols 0-8) and a lone
	// block at (16,9) then fall; they line up on the bottom row and fire a
	// second clear round with the bonus doubled.
	e, obs := newTestEngine(1)
	fillRow(e.field, 18, 4, 5)
	fillRow(e.field, 19, 4, 5)
	fillRow(e.field, 17, 9)
	e.field.setOccupied(16, 9, core.ColorGray)

	e.falling = NewPiece(ShapeO, 4, 18)
	e.phase = PhaseFalling
	e.Tick() // lands, completing rows 18 and 19
	settle(t, e)

	// Round 1: adjacent double, base 100 × level 1 × bonus 1.
	// Round 2: single row, base 40 × level 1 × bonus 2.
	expected := []scoreEvent{{100, 100, 1}, {180, 80, 2}}
	if len(obs.scores) != 2 || obs.scores[0] != expected[0] || obs.scores[1] != expected[1] {
		t.Errorf("score events = %v, expected %v", obs.scores, expected)
	}
	if e.Score() != 180 {
		t.Errorf("score = %d, expected 180", e.Score())
	}
	if e.Lines() != 3 {
		t.Errorf("lines = %d, expected 3", e.Lines())
	}
	if e.field.OccupiedCount() != 0 {
		t.Errorf("occupied count = %d, expected 0 after the chain clears everything", e.field.OccupiedCount())
	}
}

func TestGameOverAfterCascadeCompletes(t *testing.T) {
	// A blocked top row must only end the game at the next spawn
	// evaluation, never mid-cascade: the pending clear still scores.
	e, obs := newTestEngine(1)
	e.field.setOccupied(0, 0, core.ColorGray)
	fillRow(e.field, 19, 4, 5)

	e.falling = NewPiece(ShapeO, 4, 18)
	e.phase = PhaseFalling
	e.Tick()
	settle(t, e)

	if obs.gameOver {
		t.Fatal("game over must not fire before the spawn evaluation")
	}
	if len(obs.scores) != 1 {
		t.Fatalf("the clear should score before game over, events = %v", obs.scores)
	}

	e.Tick() // Spawning: top row blocked
	if !obs.gameOver {
		t.Error("game over should fire on the spawn evaluation")
	}
	if e.Phase() != PhaseGameOver {
		t.Errorf("phase = %v, expected GameOver", e.Phase())
	}
	if e.Running() {
		t.Error("Running() should be false after game over")
	}
}

func TestMoveCommands(t *testing.T) {
	e, _ := newTestEngine(1)
	e.falling = NewPiece(ShapeO, 0, 5)
	e.phase = PhaseFalling

	e.MoveLeft() // against the wall: silent no-op
	if e.falling.X != 0 {
		t.Errorf("X = %d, blocked MoveLeft should not shift", e.falling.X)
	}

	e.MoveRight()
	if e.falling.X != 1 {
		t.Errorf("X = %d, expected 1 after MoveRight", e.falling.X)
	}

	e.field.setOccupied(5, 3, core.ColorGray)
	e.field.setOccupied(6, 3, core.ColorGray)
	e.MoveRight() // blocked by landed blocks
	if e.falling.X != 1 {
		t.Errorf("X = %d, MoveRight into occupied cells should not shift", e.falling.X)
	}
}

func TestCommandsIgnoredOutsideFalling(t *testing.T) {
	e, _ := newTestEngine(1)

	// Fresh reset: Spawning, no piece in flight. Nothing should panic or
	// change state.
	e.MoveLeft()
	e.MoveRight()
	e.RotateCW()
	e.RotateCCW()
	e.SoftDrop()

	if e.Phase() != PhaseSpawning {
		t.Errorf("phase = %v, commands must not advance the state machine", e.Phase())
	}
}

func TestRotationNudgesOffWall(t *testing.T) {
	// A vertical I against the right wall rotates to horizontal: the
	// rotation overhangs the wall and is nudged back inside.
	e, _ := newTestEngine(1)
	p := NewPiece(ShapeI, 7, 5)
	p.RotateCW() // vertical, occupying grid column 2 (field column 9)
	e.falling = p
	e.phase = PhaseFalling

	e.RotateCW()

	if e.falling.X != 6 {
		t.Errorf("X = %d, expected 6 after wall correction", e.falling.X)
	}
	if e.field.Overlap(e.falling) != NotOverlapped {
		t.Error("corrected rotation should leave the piece fully inside the field")
	}
}

func TestRotationRolledBackWhenBlocked(t *testing.T) {
	e, _ := newTestEngine(1)
	e.falling = NewPiece(ShapeT, 4, 10)
	e.phase = PhaseFalling

	// The clockwise T would claim (12,5); occupy it so the rotation must
	// be discarded entirely.
	e.field.setOccupied(12, 5, core.ColorGray)

	before := e.falling.Clone()
	e.RotateCW()

	if !gridsEqual(e.falling.Grid, before.Grid) {
		t.Error("blocked rotation should restore the original grid")
	}
	if e.falling.X != before.X || e.falling.Y != before.Y {
		t.Error("blocked rotation should restore the original position")
	}
}

func TestSoftDropLandsImmediately(t *testing.T) {
	e, _ := newTestEngine(1)
	e.falling = NewPiece(ShapeO, 4, 0)
	e.phase = PhaseFalling

	e.SoftDrop()

	if e.falling != nil {
		t.Error("soft drop should land the piece immediately")
	}
	if e.Phase() != PhaseSpawning {
		t.Errorf("phase = %v, expected Spawning after a landing with no clears", e.Phase())
	}
	for _, p := range []Point{{4, 18}, {5, 18}, {4, 19}, {5, 19}} {
		if e.CellStatus(p.Y, p.X) != StatusOccupied {
			t.Errorf("cell (%d,%d) should be occupied after soft drop", p.Y, p.X)
		}
	}
}

func TestReservePromotion(t *testing.T) {
	e, obs := newTestEngine(3)
	promoted := e.nextFalling
	reserved := e.reserved

	e.Tick() // spawn
	if shape, ok := e.FallingPieceShape(); !ok || shape != promoted {
		t.Errorf("spawned shape = %v, expected the promoted %v", shape, promoted)
	}

	e.SoftDrop()
	if e.nextFalling != reserved {
		t.Errorf("next falling = %v, expected the old reserve %v", e.nextFalling, reserved)
	}
	if len(obs.reserves) != 2 { // one from Reset, one from the landing
		t.Errorf("reserve notifications = %d, expected 2", len(obs.reserves))
	}
	if obs.reserves[len(obs.reserves)-1] != e.ReservedShape() {
		t.Error("last reserve notification should match the current reserve")
	}
}

func TestLevelAdvancesEveryTenLines(t *testing.T) {
	e, obs := newTestEngine(1)
	e.lines = 9
	fillRow(e.field, 19, 4, 5)

	e.falling = NewPiece(ShapeO, 4, 18)
	e.phase = PhaseFalling
	e.Tick()
	settle(t, e)

	if e.Level() != 2 {
		t.Errorf("level = %d, expected 2 after the tenth line", e.Level())
	}
	if len(obs.levels) != 1 || obs.levels[0] != 2 {
		t.Errorf("level events = %v, expected [2]", obs.levels)
	}
	// The clear itself is scored at the level in effect before the lines
	// were credited.
	if len(obs.scores) != 1 || obs.scores[0].delta != 40 {
		t.Errorf("score events = %v, expected a 40-point clear at level 1", obs.scores)
	}
}

func TestForceExitStopsAtStepBoundary(t *testing.T) {
	e, _ := newTestEngine(1)
	e.falling = NewPiece(ShapeT, 4, 5)
	e.phase = PhaseFalling

	e.ForceExit()

	if e.Running() {
		t.Error("Running() should be false after ForceExit")
	}
	y := e.falling.Y
	e.Tick()
	if e.falling.Y != y {
		t.Error("ticks after ForceExit must not advance the simulation")
	}
	e.MoveLeft()
	if e.falling.X != 4 {
		t.Error("commands after ForceExit must be ignored")
	}
}

func TestFallDelay(t *testing.T) {
	e, _ := newTestEngine(1)
	if e.FallDelay() != 30 {
		t.Errorf("initial fall delay = %d, expected 30", e.FallDelay())
	}

	e.level = 3
	e.landings = 16
	if e.FallDelay() != 24 { // 30 - 2*2 - 16/8
		t.Errorf("fall delay = %d, expected 24", e.FallDelay())
	}

	e.level = 100
	if e.FallDelay() != 2 {
		t.Errorf("fall delay = %d, expected the 2-tick floor", e.FallDelay())
	}
}

func TestEngineDeterminism(t *testing.T) {
	// Same seed, same command script: identical outcomes.
	run := func() (*Engine, *recordingObserver) {
		e, obs := newTestEngine(99)
		for i := 0; i < 2000; i++ {
			switch {
			case i%11 == 0:
				e.MoveLeft()
			case i%13 == 0:
				e.MoveRight()
			case i%17 == 0:
				e.RotateCW()
			case i%19 == 0:
				e.RotateCCW()
			case i%97 == 0:
				e.SoftDrop()
			}
			e.Tick()
			if !e.Running() {
				break
			}
		}
		return e, obs
	}

	e1, obs1 := run()
	e2, obs2 := run()

	if e1.Score() != e2.Score() {
		t.Errorf("scores differ: %d vs %d", e1.Score(), e2.Score())
	}
	if e1.Lines() != e2.Lines() {
		t.Errorf("lines differ: %d vs %d", e1.Lines(), e2.Lines())
	}
	if e1.Landings() != e2.Landings() {
		t.Errorf("landings differ: %d vs %d", e1.Landings(), e2.Landings())
	}
	if e1.ReservedShape() != e2.ReservedShape() {
		t.Errorf("reserves differ: %v vs %v", e1.ReservedShape(), e2.ReservedShape())
	}
	if e1.field.OccupiedCount() != e2.field.OccupiedCount() {
		t.Errorf("occupied counts differ: %d vs %d", e1.field.OccupiedCount(), e2.field.OccupiedCount())
	}
	if obs1.boardChanges != obs2.boardChanges {
		t.Errorf("board change counts differ: %d vs %d", obs1.boardChanges, obs2.boardChanges)
	}
}
