package engine

// Gravity resolution. After rows are erased, the remaining blocks do not
// shift down row-by-row: they are partitioned into maximal 4-connected
// components, and every component that is not resting on the floor or on a
// block outside itself falls as a rigid unit, one row per tick, until it
// grounds. Groups descend independently, which is what lets them separate
// mid-air and land at different times, producing chain clears.

// floodNeighbors is the canonical flood-fill traversal order: down, right,
// left, up. The order is fixed because different traversals can produce
// different (equally valid) partitions for shapes touching at a corner, and
// the partition must be reproducible.
var floodNeighbors = [4]Point{
	{X: 0, Y: 1},
	{X: 1, Y: 0},
	{X: -1, Y: 0},
	{X: 0, Y: -1},
}

// Group is a transient floating component produced during gravity
// resolution: the coordinates of a maximal connected set of occupied cells.
type Group struct {
	cells []Point
}

// Cells returns the member coordinates of the group.
func (g *Group) Cells() []Point {
	return g.cells
}

// FloatingGroups partitions the field's occupied cells into maximal
// 4-connected components and returns the floating ones in discovery order.
// The outer scan runs bottom-to-top, left-to-right; both it and the
// flood-fill order are fixed so the partition is deterministic.
//
// A component is grounded when some member sits in the bottom row or
// directly atop an occupied cell outside the component; everything else
// floats.
func FloatingGroups(f *Field) []*Group {
	visited := make([][]bool, f.rows)
	for y := range visited {
		visited[y] = make([]bool, f.cols)
	}

	var groups []*Group
	for y := f.rows - 1; y >= 0; y-- {
		for x := 0; x < f.cols; x++ {
			if visited[y][x] || f.cells[y][x].Status != StatusOccupied {
				continue
			}
			g := collectComponent(f, visited, Point{X: x, Y: y})
			if !grounded(f, g) {
				groups = append(groups, g)
			}
		}
	}
	return groups
}

// collectComponent flood-fills the occupied component containing start,
// marking every reached cell visited.
func collectComponent(f *Field, visited [][]bool, start Point) *Group {
	g := &Group{}
	stack := []Point{start}
	visited[start.Y][start.X] = true

	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		g.cells = append(g.cells, p)

		for _, d := range floodNeighbors {
			nx, ny := p.X+d.X, p.Y+d.Y
			if nx < 0 || nx >= f.cols || ny < 0 || ny >= f.rows {
				continue
			}
			if visited[ny][nx] || f.cells[ny][nx].Status != StatusOccupied {
				continue
			}
			visited[ny][nx] = true
			stack = append(stack, Point{X: nx, Y: ny})
		}
	}
	return g
}

// grounded reports whether the component rests on the floor or on an
// occupied cell that is not one of its own members.
func grounded(f *Field, g *Group) bool {
	members := make(map[Point]bool, len(g.cells))
	for _, p := range g.cells {
		members[p] = true
	}
	for _, p := range g.cells {
		below := Point{X: p.X, Y: p.Y + 1}
		if below.Y >= f.rows {
			return true
		}
		if f.cells[below.Y][below.X].Status == StatusOccupied && !members[below] {
			return true
		}
	}
	return false
}

// CanDrop reports whether every member cell can move down one row without
// hitting the floor or an occupied cell outside the group.
func (g *Group) CanDrop(f *Field) bool {
	members := make(map[Point]bool, len(g.cells))
	for _, p := range g.cells {
		members[p] = true
	}
	for _, p := range g.cells {
		below := Point{X: p.X, Y: p.Y + 1}
		if below.Y >= f.rows {
			return false
		}
		if f.cells[below.Y][below.X].Status == StatusOccupied && !members[below] {
			return false
		}
	}
	return true
}

// Drop shifts the whole group down one row. Cells are rewritten bottom-up
// so members stacked in one column never clobber each other. Returns false
// without touching the field when the group cannot drop.
func (g *Group) Drop(f *Field) bool {
	if !g.CanDrop(f) {
		return false
	}

	// Order members bottom-to-top before moving.
	ordered := make([]Point, len(g.cells))
	copy(ordered, g.cells)
	for i := 1; i < len(ordered); i++ {
		for j := i; j > 0 && ordered[j].Y > ordered[j-1].Y; j-- {
			ordered[j], ordered[j-1] = ordered[j-1], ordered[j]
		}
	}

	for _, p := range ordered {
		cell := f.cells[p.Y][p.X]
		f.clearCell(p.Y, p.X)
		f.setOccupied(p.Y+1, p.X, cell.Color)
	}
	for i := range g.cells {
		g.cells[i].Y++
	}
	return true
}
