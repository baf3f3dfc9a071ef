// Package engine implements the cascade falling-block simulation: the
// playfield, piece movement and rotation, line clearing, and the
// connected-component gravity resolver that lets freed blocks fall as
// independent groups and chain further clears.
//
// The package contains pure logic with no external dependencies beyond the
// shared core types, so the whole simulation is testable without a terminal.
package engine

import (
	"math/rand"

	"github.com/vovakirdan/tui-cascade/internal/core"
)

// ShapeID identifies one of the seven tetromino shapes.
type ShapeID int

const (
	ShapeI ShapeID = iota
	ShapeZ
	ShapeS
	ShapeJ
	ShapeL
	ShapeO
	ShapeT

	// ShapeCount is the number of shapes in the catalog.
	ShapeCount = 7
)

// String returns the conventional one-letter name of the shape.
func (id ShapeID) String() string {
	switch id {
	case ShapeI:
		return "I"
	case ShapeZ:
		return "Z"
	case ShapeS:
		return "S"
	case ShapeJ:
		return "J"
	case ShapeL:
		return "L"
	case ShapeO:
		return "O"
	case ShapeT:
		return "T"
	default:
		return "?"
	}
}

// Shape is an immutable catalog entry: an N×N occupancy grid (N is 2, 3 or 4
// depending on the shape) plus the shape's base color.
type Shape struct {
	ID    ShapeID
	Size  int
	Grid  [][]bool
	Color core.Color
}

// shapeSpecs defines the seven shapes as string rows ('X' = filled).
// Row count equals the rotation grid size for each shape.
var shapeSpecs = [ShapeCount]struct {
	rows  []string
	color core.Color
}{
	ShapeI: {
		rows:  []string{"....", "XXXX", "....", "...."},
		color: core.ColorCyan,
	},
	ShapeZ: {
		rows:  []string{"XX.", ".XX", "..."},
		color: core.ColorRed,
	},
	ShapeS: {
		rows:  []string{".XX", "XX.", "..."},
		color: core.ColorGreen,
	},
	ShapeJ: {
		rows:  []string{"X..", "XXX", "..."},
		color: core.ColorBlue,
	},
	ShapeL: {
		rows:  []string{"..X", "XXX", "..."},
		color: core.ColorOrange,
	},
	ShapeO: {
		rows:  []string{"XX", "XX"},
		color: core.ColorYellow,
	},
	ShapeT: {
		rows:  []string{".X.", "XXX", "..."},
		color: core.ColorMagenta,
	},
}

// GetShape returns the catalog entry for the given shape id.
// The returned grid is freshly allocated and safe to mutate.
func GetShape(id ShapeID) Shape {
	spec := shapeSpecs[id]
	size := len(spec.rows)
	grid := make([][]bool, size)
	for y, row := range spec.rows {
		grid[y] = make([]bool, size)
		for x, ch := range row {
			grid[y][x] = ch == 'X'
		}
	}
	return Shape{
		ID:    id,
		Size:  size,
		Grid:  grid,
		Color: spec.color,
	}
}

// RandomShape picks a shape id uniformly at random.
func RandomShape(rng *rand.Rand) ShapeID {
	return ShapeID(rng.Intn(ShapeCount))
}
