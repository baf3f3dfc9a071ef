package engine

import (
	"testing"

	"github.com/vovakirdan/tui-cascade/internal/core"
)

func TestFieldCellReadsBoundsChecked(t *testing.T) {
	f := NewField(SizeStandard)

	if f.CellStatus(-1, 0) != StatusEmpty {
		t.Error("out-of-bounds status read should be Empty")
	}
	if f.CellStatus(0, -1) != StatusEmpty {
		t.Error("out-of-bounds status read should be Empty")
	}
	if f.CellStatus(20, 0) != StatusEmpty {
		t.Error("out-of-bounds status read should be Empty")
	}
	if f.CellColor(0, 100) != core.ColorDefault {
		t.Error("out-of-bounds color read should be the default color")
	}
}

func TestCanMove(t *testing.T) {
	f := NewField(SizeStandard)
	f.setOccupied(10, 4, core.ColorRed)

	tests := []struct {
		name     string
		piece    *Piece
		dx, dy   int
		expected bool
	}{
		{"free space", NewPiece(ShapeO, 4, 4), 0, 1, true},
		{"left wall", NewPiece(ShapeO, 0, 4), -1, 0, false},
		{"right wall", NewPiece(ShapeO, 8, 4), 1, 0, false},
		{"floor", NewPiece(ShapeO, 4, 18), 0, 1, false},
		{"onto occupied cell", NewPiece(ShapeO, 4, 8), 0, 1, false},
		{"beside occupied cell", NewPiece(ShapeO, 6, 9), 0, 1, true},
		{"above visible field", NewPiece(ShapeO, 4, -2), 0, 1, true},
		{"lateral while entering", NewPiece(ShapeO, 4, -2), 1, 0, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := f.CanMove(tc.piece, tc.dx, tc.dy); got != tc.expected {
				t.Errorf("CanMove(%v, %d, %d) = %v, expected %v", tc.piece.Shape, tc.dx, tc.dy, got, tc.expected)
			}
		})
	}
}

func TestOverlapStates(t *testing.T) {
	f := NewField(SizeStandard)
	f.setOccupied(5, 5, core.ColorGreen)

	tests := []struct {
		name     string
		piece    *Piece
		expected OverlapState
	}{
		{"fully inside over empty cells", NewPiece(ShapeO, 4, 10), NotOverlapped},
		{"beyond left wall", NewPiece(ShapeO, -1, 10), OverLeft},
		{"beyond right wall", NewPiece(ShapeO, 9, 10), OverRight},
		{"coincides with occupied", NewPiece(ShapeO, 5, 5), Overlapped},
		{"below the floor", NewPiece(ShapeO, 4, 19), Overlapped},
		{"partly above visible field", NewPiece(ShapeO, 4, -1), NotOverlapped},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := f.Overlap(tc.piece); got != tc.expected {
				t.Errorf("Overlap = %v, expected %v", got, tc.expected)
			}
		})
	}
}

func TestOverlapReportsFirstViolation(t *testing.T) {
	// Scan order is top-to-bottom, left-to-right and the first violation
	// wins. An I piece hanging over the left wall with its inner cells on
	// occupied ground must report OverLeft, because x=-1 is hit first.
	f := NewField(SizeStandard)
	f.setOccupied(11, 0, core.ColorBlue)

	p := NewPiece(ShapeI, -1, 10) // filled row occupies x=-1..2 at y=11
	if got := f.Overlap(p); got != OverLeft {
		t.Errorf("Overlap = %v, expected OverLeft (first violation in scan order)", got)
	}
}

func TestPlace(t *testing.T) {
	f := NewField(SizeStandard)
	p := NewPiece(ShapeT, 3, 10)

	before := f.OccupiedCount()
	f.Place(p)

	if got := f.OccupiedCount(); got != before+4 {
		t.Errorf("occupied count = %d, expected %d", got, before+4)
	}
	for _, b := range p.Blocks() {
		if f.CellStatus(b.Y, b.X) != StatusOccupied {
			t.Errorf("cell (%d,%d) should be occupied", b.Y, b.X)
		}
		if f.CellColor(b.Y, b.X) != p.Color {
			t.Errorf("cell (%d,%d) should carry the piece color", b.Y, b.X)
		}
	}
}

func TestPlaceSkipsCellsAboveField(t *testing.T) {
	f := NewField(SizeStandard)
	p := NewPiece(ShapeO, 4, -1) // top half above the field

	f.Place(p)

	if got := f.OccupiedCount(); got != 2 {
		t.Errorf("occupied count = %d, expected 2 (only on-field cells placed)", got)
	}
	if f.CellStatus(0, 4) != StatusOccupied || f.CellStatus(0, 5) != StatusOccupied {
		t.Error("on-field half of the piece should be placed in row 0")
	}
}

func TestPlacePanicsOnOccupiedCell(t *testing.T) {
	f := NewField(SizeStandard)
	p := NewPiece(ShapeO, 4, 10)
	f.Place(p)

	defer func() {
		if recover() == nil {
			t.Error("placing onto an occupied cell must panic")
		}
	}()
	f.Place(NewPiece(ShapeO, 4, 10))
}

func TestRowFullAndClear(t *testing.T) {
	f := NewField(SizeStandard)

	y := 19
	for x := 0; x < f.Cols(); x++ {
		f.setOccupied(y, x, core.ColorYellow)
	}

	if !f.IsRowFull(y) {
		t.Error("row with every cell occupied should be full")
	}
	if f.IsRowFull(18) {
		t.Error("empty row should not be full")
	}

	f.clearCell(y, 3)
	if f.IsRowFull(y) {
		t.Error("row with a hole should not be full")
	}

	f.setOccupied(y, 3, core.ColorYellow)
	f.ClearRow(y)
	if f.IsRowFull(y) {
		t.Error("row should not be full immediately after ClearRow")
	}
	for x := 0; x < f.Cols(); x++ {
		if f.CellStatus(y, x) != StatusEmpty {
			t.Errorf("cell (%d,%d) should be empty after ClearRow", y, x)
		}
	}
}

func TestFullRowsOrder(t *testing.T) {
	f := NewField(SizeStandard)
	for _, y := range []int{19, 15} {
		for x := 0; x < f.Cols(); x++ {
			f.setOccupied(y, x, core.ColorCyan)
		}
	}

	rows := f.FullRows()
	if len(rows) != 2 || rows[0] != 15 || rows[1] != 19 {
		t.Errorf("FullRows = %v, expected [15 19] (top to bottom)", rows)
	}
}

func TestMarkRowFlashing(t *testing.T) {
	f := NewField(SizeStandard)
	for x := 0; x < f.Cols(); x++ {
		f.setOccupied(19, x, core.ColorRed)
	}

	f.MarkRowFlashing(19)
	for x := 0; x < f.Cols(); x++ {
		if f.CellStatus(19, x) != StatusFlashing {
			t.Errorf("cell (19,%d) should be flashing", x)
		}
	}
	// A flashing row still counts as full until it is erased.
	if !f.IsRowFull(19) {
		t.Error("flashing row should still be reported full")
	}
}

func TestTopRowBlocked(t *testing.T) {
	f := NewField(SizeStandard)
	if f.TopRowBlocked() {
		t.Error("empty field should not report a blocked top row")
	}

	f.setOccupied(0, 7, core.ColorMagenta)
	if !f.TopRowBlocked() {
		t.Error("occupied cell in row 0 should block the top row")
	}
}

func TestLargeFieldPreset(t *testing.T) {
	f := NewField(SizeLarge)
	if f.Rows() != 30 || f.Cols() != 15 {
		t.Errorf("large preset = %dx%d, expected 30x15", f.Rows(), f.Cols())
	}
}
