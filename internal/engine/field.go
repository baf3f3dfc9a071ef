package engine

import (
	"fmt"

	"github.com/vovakirdan/tui-cascade/internal/core"
)

// Status describes the state of a single field cell.
type Status uint8

const (
	StatusEmpty Status = iota
	StatusOccupied
	StatusFlashing
)

// Cell is one field cell: its status plus the color of the landed block, if any.
type Cell struct {
	Status Status
	Color  core.Color
}

// FieldSize is a playfield dimension preset.
type FieldSize struct {
	Rows, Cols int
}

// Field size presets. Standard is the classic 20×10 well; Large is the
// 30×15 alternate kept as a configurable option.
var (
	SizeStandard = FieldSize{Rows: 20, Cols: 10}
	SizeLarge    = FieldSize{Rows: 30, Cols: 15}
)

// OverlapState classifies how a piece relates to the field bounds and the
// blocks already landed on it. Used by the rotation correction protocol.
type OverlapState int

const (
	NotOverlapped OverlapState = iota
	OverLeft
	OverRight
	Overlapped
)

// String returns a human-readable name for the overlap state.
func (o OverlapState) String() string {
	switch o {
	case NotOverlapped:
		return "NotOverlapped"
	case OverLeft:
		return "OverLeft"
	case OverRight:
		return "OverRight"
	case Overlapped:
		return "Overlapped"
	default:
		return "Unknown"
	}
}

// Field is the fixed-size grid of cells holding landed block state.
// Row 0 is the top visible row; pieces enter from negative Y.
type Field struct {
	rows, cols int
	cells      [][]Cell
}

// NewField creates an empty field of the given size.
func NewField(size FieldSize) *Field {
	f := &Field{rows: size.Rows, cols: size.Cols}
	f.cells = make([][]Cell, size.Rows)
	for y := range f.cells {
		f.cells[y] = make([]Cell, size.Cols)
	}
	return f
}

// Rows returns the number of visible rows.
func (f *Field) Rows() int { return f.rows }

// Cols returns the number of columns.
func (f *Field) Cols() int { return f.cols }

// CellStatus returns the status at (y, x). Out-of-bounds reads are Empty.
func (f *Field) CellStatus(y, x int) Status {
	if y < 0 || y >= f.rows || x < 0 || x >= f.cols {
		return StatusEmpty
	}
	return f.cells[y][x].Status
}

// CellColor returns the block color at (y, x). Out-of-bounds reads are the
// default color.
func (f *Field) CellColor(y, x int) core.Color {
	if y < 0 || y >= f.rows || x < 0 || x >= f.cols {
		return core.ColorDefault
	}
	return f.cells[y][x].Color
}

// CanMove reports whether the piece can shift by (dx, dy) without leaving
// the side walls or floor or colliding with an occupied cell. Cells above
// the visible field (y < 0) never block, so a piece can shift and rotate
// while still entering from off-screen.
func (f *Field) CanMove(p *Piece, dx, dy int) bool {
	for y := 0; y < p.Size; y++ {
		for x := 0; x < p.Size; x++ {
			if !p.Grid[y][x] {
				continue
			}
			tx := p.X + x + dx
			ty := p.Y + y + dy
			if tx < 0 || tx >= f.cols || ty >= f.rows {
				return false
			}
			if ty >= 0 && f.cells[ty][tx].Status == StatusOccupied {
				return false
			}
		}
	}
	return true
}

// Overlap scans the piece's filled cells top-to-bottom, left-to-right and
// reports the first violation found: a cell beyond the left or right wall,
// or a cell coinciding with a landed block (or the floor). The first-hit
// semantics matter: rotation correction branches on exactly one state.
func (f *Field) Overlap(p *Piece) OverlapState {
	for y := 0; y < p.Size; y++ {
		for x := 0; x < p.Size; x++ {
			if !p.Grid[y][x] {
				continue
			}
			fx := p.X + x
			fy := p.Y + y
			if fx < 0 {
				return OverLeft
			}
			if fx >= f.cols {
				return OverRight
			}
			if fy >= f.rows {
				return Overlapped
			}
			if fy >= 0 && f.cells[fy][fx].Status == StatusOccupied {
				return Overlapped
			}
		}
	}
	return NotOverlapped
}

// Place copies every filled, on-field cell of the piece into the grid as an
// occupied cell with the piece's color. Placing onto an already occupied
// cell means the collision checks upstream are broken; that is engine-state
// corruption, so it panics rather than being silently recovered.
func (f *Field) Place(p *Piece) {
	for y := 0; y < p.Size; y++ {
		for x := 0; x < p.Size; x++ {
			if !p.Grid[y][x] {
				continue
			}
			fy := p.Y + y
			fx := p.X + x
			if fy < 0 {
				continue
			}
			if f.cells[fy][fx].Status == StatusOccupied {
				panic(fmt.Sprintf("engine: piece %v placed onto occupied cell (%d,%d)", p.Shape, fy, fx))
			}
			f.cells[fy][fx] = Cell{Status: StatusOccupied, Color: p.Color}
		}
	}
}

// IsRowFull reports whether every cell in row y is occupied (or flashing,
// which only ever marks cells of a full row pending erase).
func (f *Field) IsRowFull(y int) bool {
	if y < 0 || y >= f.rows {
		return false
	}
	for x := 0; x < f.cols; x++ {
		if f.cells[y][x].Status == StatusEmpty {
			return false
		}
	}
	return true
}

// FullRows returns the indices of all completed rows, top to bottom.
func (f *Field) FullRows() []int {
	var rows []int
	for y := 0; y < f.rows; y++ {
		if f.IsRowFull(y) {
			rows = append(rows, y)
		}
	}
	return rows
}

// MarkRowFlashing flips row y's cells to the flashing state used by the
// erase animation.
func (f *Field) MarkRowFlashing(y int) {
	if y < 0 || y >= f.rows {
		return
	}
	for x := 0; x < f.cols; x++ {
		if f.cells[y][x].Status != StatusEmpty {
			f.cells[y][x].Status = StatusFlashing
		}
	}
}

// ClearRow empties row y. The legacy center-outward erase order only
// affected the animation; the end state is identical, so cells are cleared
// left to right.
func (f *Field) ClearRow(y int) {
	if y < 0 || y >= f.rows {
		return
	}
	for x := 0; x < f.cols; x++ {
		f.cells[y][x] = Cell{}
	}
}

// TopRowBlocked is the game-over predicate: true when any cell of row 0 is
// occupied after a merge-and-cascade round has completed.
func (f *Field) TopRowBlocked() bool {
	for x := 0; x < f.cols; x++ {
		if f.cells[0][x].Status == StatusOccupied {
			return true
		}
	}
	return false
}

// OccupiedCount returns the number of occupied cells on the field.
func (f *Field) OccupiedCount() int {
	count := 0
	for y := 0; y < f.rows; y++ {
		for x := 0; x < f.cols; x++ {
			if f.cells[y][x].Status == StatusOccupied {
				count++
			}
		}
	}
	return count
}

// setOccupied writes a landed block directly; used by the gravity resolver
// and tests.
func (f *Field) setOccupied(y, x int, c core.Color) {
	f.cells[y][x] = Cell{Status: StatusOccupied, Color: c}
}

// clearCell empties a single cell.
func (f *Field) clearCell(y, x int) {
	f.cells[y][x] = Cell{}
}
