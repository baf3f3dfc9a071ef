package engine

import (
	"math/rand"
	"testing"
)

func TestShapeCatalog(t *testing.T) {
	tests := []struct {
		id   ShapeID
		size int
	}{
		{ShapeI, 4},
		{ShapeZ, 3},
		{ShapeS, 3},
		{ShapeJ, 3},
		{ShapeL, 3},
		{ShapeO, 2},
		{ShapeT, 3},
	}

	for _, tc := range tests {
		t.Run(tc.id.String(), func(t *testing.T) {
			s := GetShape(tc.id)
			if s.Size != tc.size {
				t.Errorf("Size = %d, expected %d", s.Size, tc.size)
			}
			if len(s.Grid) != tc.size {
				t.Errorf("Grid has %d rows, expected %d", len(s.Grid), tc.size)
			}

			filled := 0
			for _, row := range s.Grid {
				if len(row) != tc.size {
					t.Errorf("Grid row has %d cells, expected %d", len(row), tc.size)
				}
				for _, b := range row {
					if b {
						filled++
					}
				}
			}
			if filled != 4 {
				t.Errorf("Shape has %d filled cells, expected 4", filled)
			}
		})
	}
}

func TestGetShapeReturnsFreshGrid(t *testing.T) {
	a := GetShape(ShapeT)
	b := GetShape(ShapeT)

	a.Grid[0][0] = !a.Grid[0][0]
	if a.Grid[0][0] == b.Grid[0][0] {
		t.Error("mutating one catalog lookup should not affect another")
	}
}

func gridsEqual(a, b [][]bool) bool {
	if len(a) != len(b) {
		return false
	}
	for y := range a {
		for x := range a[y] {
			if a[y][x] != b[y][x] {
				return false
			}
		}
	}
	return true
}

func TestRotateRoundTrip(t *testing.T) {
	// CW followed by CCW must return the original bitmask for every shape
	// in every orientation.
	for id := ShapeID(0); id < ShapeCount; id++ {
		p := NewPiece(id, 0, 0)
		for turn := 0; turn < 4; turn++ {
			before := p.Clone()
			p.RotateCW()
			if p.FilledCount() != 4 {
				t.Errorf("%v: filled count changed to %d after CW rotation", id, p.FilledCount())
			}
			p.RotateCCW()
			if !gridsEqual(p.Grid, before.Grid) {
				t.Errorf("%v turn %d: CW then CCW did not restore the grid", id, turn)
			}
			p.RotateCW() // advance to the next orientation
		}
	}
}

func TestRotateFourTimesIsIdentity(t *testing.T) {
	for id := ShapeID(0); id < ShapeCount; id++ {
		p := NewPiece(id, 0, 0)
		original := p.Clone()
		for range 4 {
			p.RotateCW()
		}
		if !gridsEqual(p.Grid, original.Grid) {
			t.Errorf("%v: four CW rotations should be the identity", id)
		}
	}
}

func TestRandomShapeDeterminism(t *testing.T) {
	r1 := rand.New(rand.NewSource(7))
	r2 := rand.New(rand.NewSource(7))

	for i := 0; i < 50; i++ {
		a, b := RandomShape(r1), RandomShape(r2)
		if a != b {
			t.Fatalf("draw %d: same seed produced %v and %v", i, a, b)
		}
		if a < 0 || a >= ShapeCount {
			t.Fatalf("draw %d: shape %d out of range", i, a)
		}
	}
}

func TestSpawnPieceCentering(t *testing.T) {
	// The centering formula is cols/2-2 for every shape, deliberately not
	// adjusted for shape width.
	rng := rand.New(rand.NewSource(1))
	for _, cols := range []int{10, 15} {
		for id := ShapeID(0); id < ShapeCount; id++ {
			p := SpawnPiece(id, cols, rng)
			if p.X != cols/2-2 {
				t.Errorf("cols=%d shape=%v: spawn X = %d, expected %d", cols, id, p.X, cols/2-2)
			}

			// The whole bounding box sits above the visible field, with the
			// lowest filled cell in row -1.
			maxY := -100
			for _, b := range p.Blocks() {
				if b.Y > maxY {
					maxY = b.Y
				}
			}
			if maxY != -1 {
				t.Errorf("cols=%d shape=%v: lowest filled cell at y=%d, expected -1", cols, id, maxY)
			}
		}
	}
}

func TestPieceClone(t *testing.T) {
	p := NewPiece(ShapeS, 3, 5)
	c := p.Clone()

	c.RotateCW()
	c.X = 9

	if p.X != 3 {
		t.Errorf("clone mutation changed original X to %d", p.X)
	}
	if !gridsEqual(p.Grid, GetShape(ShapeS).Grid) {
		t.Error("clone mutation changed the original grid")
	}
}

func TestPieceBlocksOrder(t *testing.T) {
	// Blocks must come out top-to-bottom, left-to-right; overlap checks rely
	// on first-violation semantics in this order.
	p := NewPiece(ShapeT, 0, 0)
	blocks := p.Blocks()

	expected := []Point{{X: 1, Y: 0}, {X: 0, Y: 1}, {X: 1, Y: 1}, {X: 2, Y: 1}}
	if len(blocks) != len(expected) {
		t.Fatalf("got %d blocks, expected %d", len(blocks), len(expected))
	}
	for i := range expected {
		if blocks[i] != expected[i] {
			t.Errorf("block %d = %v, expected %v", i, blocks[i], expected[i])
		}
	}
}
