package mines

import "iter"

type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

type Cell struct {
	X           int  `json:"x"`
	Y           int  `json:"y"`
	Mine        bool `json:"mine"`
	Open        bool `json:"open"`
	Flag        bool `json:"flag"`
	AroundMines int  `json:"around_mines"`
}

var (
	aroundOffsets = [...][2]int{
		{0, 1}, {0, -1}, {-1, 0}, {1, 0},
		{1, 1}, {1, -1}, {-1, 1}, {-1, -1},
	}
	siblingOffsets = [...][2]int{
		{0, 1}, {0, -1}, {-1, 0}, {1, 0},
	}
)

// grid stores cells row-major, i = y*width + x.
type grid struct {
	width, height int
	cells         []Cell
}

func newGrid(width, height int) grid {
	cells := make([]Cell, width*height)
	for y := range height {
		for x := range width {
			cells[y*width+x] = Cell{X: x, Y: y}
		}
	}
	return grid{width: width, height: height, cells: cells}
}

func (g grid) index(x, y int) (int, bool) {
	if x < 0 || x >= g.width || y < 0 || y >= g.height {
		return 0, false
	}
	return y*g.width + x, true
}

func (g grid) offsets(i int, offsets [][2]int) iter.Seq[int] {
	return func(yield func(int) bool) {
		x, y := i%g.width, i/g.width
		for _, d := range offsets {
			if j, ok := g.index(x+d[0], y+d[1]); ok {
				if !yield(j) {
					return
				}
			}
		}
	}
}

// around yields the up-to-8 neighbours of i, diagonals included.
func (g grid) around(i int) iter.Seq[int] {
	return g.offsets(i, aroundOffsets[:])
}

// siblings yields the up-to-4 orthogonal neighbours of i.
func (g grid) siblings(i int) iter.Seq[int] {
	return g.offsets(i, siblingOffsets[:])
}
