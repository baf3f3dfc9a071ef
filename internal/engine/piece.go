package engine

import (
	"math/rand"

	"github.com/vovakirdan/tui-cascade/internal/core"
)

// Point is a field coordinate. Y grows downward; negative Y is the hidden
// area above the visible field that pieces enter from.
type Point struct {
	X, Y int
}

// Piece is a falling instance of a catalog shape. Position and rotation are
// the only state that mutates while the piece is in flight.
type Piece struct {
	Shape ShapeID
	Size  int
	Grid  [][]bool
	Color core.Color

	// X, Y locate the grid's top-left corner on the field.
	X, Y int
}

// NewPiece constructs a piece of the given shape at the given position.
func NewPiece(id ShapeID, x, y int) *Piece {
	s := GetShape(id)
	return &Piece{
		Shape: id,
		Size:  s.Size,
		Grid:  s.Grid,
		Color: s.Color,
		X:     x,
		Y:     y,
	}
}

// SpawnPiece constructs a piece horizontally centered at cols/2-2 (the
// legacy centering formula, deliberately not width-adjusted), positioned so
// its lowest filled row sits just above the visible field, with 0-3 random
// clockwise pre-rotations.
func SpawnPiece(id ShapeID, cols int, rng *rand.Rand) *Piece {
	p := NewPiece(id, cols/2-2, 0)
	for range rng.Intn(4) {
		p.RotateCW()
	}
	p.Y = -p.bottomFilledRow() - 1
	return p
}

// bottomFilledRow returns the largest grid row index holding a filled cell.
func (p *Piece) bottomFilledRow() int {
	for y := p.Size - 1; y >= 0; y-- {
		for x := 0; x < p.Size; x++ {
			if p.Grid[y][x] {
				return y
			}
		}
	}
	return 0
}

// RotateCW rotates the occupancy grid a quarter turn clockwise in place:
// new[x][N-1-y] = old[y][x]. The transform is purely geometric; collision
// correction is the controller's job.
func (p *Piece) RotateCW() {
	n := p.Size
	rotated := make([][]bool, n)
	for i := range rotated {
		rotated[i] = make([]bool, n)
	}
	for y := 0; y < n; y++ {
		for x := 0; x < n; x++ {
			rotated[x][n-1-y] = p.Grid[y][x]
		}
	}
	p.Grid = rotated
}

// RotateCCW rotates the occupancy grid a quarter turn counterclockwise in
// place: new[N-1-x][y] = old[y][x].
func (p *Piece) RotateCCW() {
	n := p.Size
	rotated := make([][]bool, n)
	for i := range rotated {
		rotated[i] = make([]bool, n)
	}
	for y := 0; y < n; y++ {
		for x := 0; x < n; x++ {
			rotated[n-1-x][y] = p.Grid[y][x]
		}
	}
	p.Grid = rotated
}

// Clone returns a deep copy, used to snapshot pre-rotation state so a
// rejected rotation can be rolled back.
func (p *Piece) Clone() *Piece {
	grid := make([][]bool, p.Size)
	for y := range grid {
		grid[y] = make([]bool, p.Size)
		copy(grid[y], p.Grid[y])
	}
	c := *p
	c.Grid = grid
	return &c
}

// Blocks returns the field coordinates of the piece's filled cells in
// top-to-bottom, left-to-right order.
func (p *Piece) Blocks() []Point {
	blocks := make([]Point, 0, 4)
	for y := 0; y < p.Size; y++ {
		for x := 0; x < p.Size; x++ {
			if p.Grid[y][x] {
				blocks = append(blocks, Point{X: p.X + x, Y: p.Y + y})
			}
		}
	}
	return blocks
}

// FilledCount returns the number of filled cells in the occupancy grid.
func (p *Piece) FilledCount() int {
	count := 0
	for y := 0; y < p.Size; y++ {
		for x := 0; x < p.Size; x++ {
			if p.Grid[y][x] {
				count++
			}
		}
	}
	return count
}
