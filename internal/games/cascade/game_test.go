package cascade

import (
	"testing"

	"github.com/vovakirdan/tui-cascade/internal/core"
)

func testConfig(seed int64) core.RuntimeConfig {
	return core.RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
		Seed:     seed,
	}
}

func TestGameDeterminism(t *testing.T) {
	// Same seed and input sequence must produce identical snapshots.
	inputSequence := make([]core.InputFrame, 3000)
	for i := range inputSequence {
		inputSequence[i] = core.NewInputFrame()
		switch {
		case i%23 == 0:
			inputSequence[i].Set(core.ActionLeft)
		case i%29 == 0:
			inputSequence[i].Set(core.ActionRight)
		case i%31 == 0:
			inputSequence[i].Set(core.ActionRotateCW)
		case i%150 == 0:
			inputSequence[i].Set(core.ActionDrop)
		}
	}

	run := func() Snapshot {
		g := New()
		g.Reset(testConfig(12345))
		for _, in := range inputSequence {
			if g.Step(in).State.GameOver {
				break
			}
		}
		return g.Snapshot()
	}

	s1 := run()
	s2 := run()
	if s1 != s2 {
		t.Errorf("Determinism failed: snapshots differ.\nRun1: %+v\nRun2: %+v", s1, s2)
	}
}

func TestGameReset(t *testing.T) {
	g := New()
	g.Reset(testConfig(42))

	// Play a while, dropping pieces to accumulate landings.
	for i := 0; i < 600; i++ {
		in := core.NewInputFrame()
		if i%40 == 0 {
			in.Set(core.ActionDrop)
		}
		g.Step(in)
	}

	g.Reset(testConfig(42))

	s := g.Snapshot()
	if s.Score != 0 {
		t.Errorf("Reset should clear score, got %d", s.Score)
	}
	if s.Lines != 0 {
		t.Errorf("Reset should clear lines, got %d", s.Lines)
	}
	if s.Occupied != 0 {
		t.Errorf("Reset should empty the field, got %d occupied cells", s.Occupied)
	}
	if s.State != StatePlaying {
		t.Errorf("Reset should return to playing, got %q", s.State)
	}
	if g.tick != 0 {
		t.Errorf("Reset should clear tick counter, got %d", g.tick)
	}
}

func TestGamePause(t *testing.T) {
	g := New()
	g.Reset(testConfig(1))

	pauseInput := core.NewInputFrame()
	pauseInput.Set(core.ActionPause)
	g.Step(pauseInput)

	if !g.paused {
		t.Fatal("Game should be paused")
	}

	before := g.Snapshot()
	noInput := core.NewInputFrame()
	for i := 0; i < 120; i++ {
		g.Step(noInput)
	}
	after := g.Snapshot()

	if before.Phase != after.Phase || before.FallingY != after.FallingY || before.Landings != after.Landings {
		t.Errorf("Simulation should not advance while paused:\nbefore: %+v\nafter: %+v", before, after)
	}

	g.Step(pauseInput)
	if g.paused {
		t.Error("Game should be unpaused")
	}
}

func TestGameOverAndRestart(t *testing.T) {
	g := New()
	g.Reset(testConfig(7))

	// Drop every piece in place without moving; the stack reaches the top.
	dropInput := core.NewInputFrame()
	dropInput.Set(core.ActionDrop)
	for i := 0; i < 5000 && !g.gameOver; i++ {
		g.Step(dropInput)
	}
	if !g.gameOver {
		t.Fatal("stacking pieces in one column should end the game")
	}
	if !g.State().GameOver {
		t.Error("State() should report game over")
	}

	restartInput := core.NewInputFrame()
	restartInput.Set(core.ActionRestart)
	g.Step(restartInput)

	if g.gameOver {
		t.Error("Restart should start a fresh session")
	}
	if s := g.Snapshot(); s.Score != 0 || s.Occupied != 0 {
		t.Errorf("Restart should reset the session, snapshot: %+v", s)
	}
}

func TestInputMapsToEngineCommands(t *testing.T) {
	g := New()
	g.Reset(testConfig(5))

	// Tick until a piece is in flight and fully on the field.
	noInput := core.NewInputFrame()
	for i := 0; i < 300; i++ {
		g.Step(noInput)
		if _, y, ok := g.eng.FallingPiecePosition(); ok && y >= 0 {
			break
		}
	}
	x, _, ok := g.eng.FallingPiecePosition()
	if !ok {
		t.Fatal("no piece in flight after stepping")
	}

	left := core.NewInputFrame()
	left.Set(core.ActionLeft)
	g.Step(left)

	if nx, _, _ := g.eng.FallingPiecePosition(); nx != x-1 {
		t.Errorf("ActionLeft should shift the piece from %d to %d, got %d", x, x-1, nx)
	}
}

func TestRenderDrawsFieldAndSidebar(t *testing.T) {
	cfg := testConfig(1)
	g := New()
	g.Reset(cfg)

	noInput := core.NewInputFrame()
	for i := 0; i < 60; i++ {
		g.Step(noInput)
	}

	screen := core.NewScreen(cfg.ScreenW, cfg.ScreenH)
	g.Render(screen)

	str := screen.String()
	hasContent := false
	for _, ch := range str {
		if ch != ' ' && ch != '\n' {
			hasContent = true
			break
		}
	}
	if !hasContent {
		t.Fatal("Render should draw something to the screen")
	}
}

func TestLargeFieldTooSmallOnDefaultScreen(t *testing.T) {
	// The 30-row field does not fit a 24-row terminal; the game must pause
	// with a size warning instead of drawing out of bounds.
	g := NewLarge()
	g.Reset(testConfig(1))

	if !g.tooSmall {
		t.Error("large field on an 80x24 screen should report too small")
	}
	if s := g.Snapshot(); s.State != StatePausedSmall {
		t.Errorf("snapshot state = %q, expected %q", s.State, StatePausedSmall)
	}

	// Must not advance or panic while too small.
	noInput := core.NewInputFrame()
	for i := 0; i < 60; i++ {
		g.Step(noInput)
	}
	if g.Snapshot().Landings != 0 {
		t.Error("simulation should not advance while the window is too small")
	}

	screen := core.NewScreen(80, 24)
	g.Render(screen)
}
