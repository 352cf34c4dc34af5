package mines

import (
	"iter"

	"github.com/gammazero/deque"
)

// expand opens everything reachable from the already opened start cell.
// Cells are marked open before they are queued, so none is visited twice.
func (g *Game) expand(start int) {
	var queue deque.Deque[int]
	queue.PushBack(start)

	for queue.Len() > 0 {
		i := queue.PopFront()
		for j := range g.spread(i) {
			c := &g.grid.cells[j]
			if c.Flag || c.Mine || c.Open {
				continue
			}
			c.Open = true
			queue.PushBack(j)
		}
	}
}

func (g *Game) spread(i int) iter.Seq[int] {
	if g.params.Expansion == ExpandZero {
		if g.grid.cells[i].AroundMines != 0 {
			return func(func(int) bool) {}
		}
		return g.grid.around(i)
	}
	return g.grid.siblings(i)
}
