package engine

// Observer is the boundary contract exposed to the presentation layer. The
// engine never draws; it reports state changes and the presentation layer
// redraws from the query API. All callbacks fire synchronously from within
// engine command or tick processing, so implementations must not call back
// into the engine.
type Observer interface {
	// BoardChanged signals that field or piece state changed and a redraw
	// is needed.
	BoardChanged()

	// ScoreChanged reports the new total, the points just awarded, and the
	// cascade bonus multiplier that was in effect.
	ScoreChanged(total, delta, bonus int)

	// LinesChanged reports the new cleared-lines total and the delta.
	LinesChanged(total, delta int)

	// LevelChanged reports a level advance.
	LevelChanged(level int)

	// ReservePieceChanged reports the new preview piece.
	ReservePieceChanged(shape ShapeID)

	// GameOver signals the terminal state.
	GameOver()
}

// nopObserver keeps the engine's notify paths nil-safe.
type nopObserver struct{}

func (nopObserver) BoardChanged()                 {}
func (nopObserver) ScoreChanged(_, _, _ int)      {}
func (nopObserver) LinesChanged(_, _ int)         {}
func (nopObserver) LevelChanged(_ int)            {}
func (nopObserver) ReservePieceChanged(_ ShapeID) {}
func (nopObserver) GameOver()                     {}
